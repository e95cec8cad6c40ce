package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveChallengeDirs_CreatesNewFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".vimgolf.yaml")

	err := SaveChallengeDirs(configPath, []string{"fixtures/golf"})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fixtures/golf")
}

func TestSaveChallengeDirs_PreservesOtherConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".vimgolf.yaml")

	initial := "max_tokens: 50000\nchallenge_dirs:\n  - old/dir\n"
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0o600))

	err := SaveChallengeDirs(configPath, []string{"new/dir"})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_tokens: 50000")
	assert.Contains(t, string(data), "new/dir")
	assert.NotContains(t, string(data), "old/dir")
}

func TestAddChallengeDir_SkipsDuplicate(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".vimgolf.yaml")

	existing := []string{"fixtures/golf"}
	err := AddChallengeDir(configPath, "fixtures/golf", existing)
	require.NoError(t, err)

	_, statErr := os.Stat(configPath)
	assert.True(t, os.IsNotExist(statErr), "no write should happen for a duplicate")
}

func TestAddChallengeDir_AppendsNew(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".vimgolf.yaml")

	err := AddChallengeDir(configPath, "fixtures/more", []string{"fixtures/golf"})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fixtures/golf")
	assert.Contains(t, string(data), "fixtures/more")
}

func TestRemoveChallengeDir_RejectsLastDir(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".vimgolf.yaml")

	err := RemoveChallengeDir(configPath, "fixtures/golf", []string{"fixtures/golf"})
	require.Error(t, err)
}

func TestRemoveChallengeDir_RemovesMatching(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".vimgolf.yaml")

	err := RemoveChallengeDir(configPath, "fixtures/golf", []string{"fixtures/golf", "fixtures/more"})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "fixtures/golf\n")
	assert.Contains(t, string(data), "fixtures/more")
}
