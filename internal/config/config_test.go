package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, []string{".vimgolf/challenges"}, d.ChallengeDirs)
	assert.Equal(t, 200000, d.MaxTokens)
	assert.True(t, d.Editor.SmartCase)
	assert.True(t, d.Editor.AutoIndent)
	assert.Equal(t, 2, d.Editor.ShiftWidth)
	assert.False(t, d.Tracing.Enabled)
}

func TestValidateChallengeDirs_Empty(t *testing.T) {
	err := ValidateChallengeDirs(nil)
	require.Error(t, err)
}

func TestValidateChallengeDirs_RejectsEmptyEntry(t *testing.T) {
	err := ValidateChallengeDirs([]string{"ok", ""})
	require.Error(t, err)
}

func TestValidateChallengeDirs_Valid(t *testing.T) {
	err := ValidateChallengeDirs([]string{"fixtures/golf"})
	require.NoError(t, err)
}

func TestValidateTracing_DisabledSkipsExporterCheck(t *testing.T) {
	err := ValidateTracing(TracingConfig{Enabled: false, Exporter: "nonsense"})
	require.NoError(t, err)
}

func TestValidateTracing_UnknownExporter(t *testing.T) {
	err := ValidateTracing(TracingConfig{Enabled: true, Exporter: "carrier-pigeon"})
	require.Error(t, err)
}

func TestValidateTracing_KnownExporters(t *testing.T) {
	for _, exp := range []string{"stdout", "otlp"} {
		err := ValidateTracing(TracingConfig{Enabled: true, Exporter: exp})
		require.NoError(t, err, exp)
	}
}

func TestDefaultConfigTemplate_ParsesAsValidYAML(t *testing.T) {
	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &parsed))
	assert.Contains(t, DefaultConfigTemplate(), "challenge_dirs")
	assert.Contains(t, DefaultConfigTemplate(), "shift_width")
}
