package evalrun

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadChallenge_ExplicitID(t *testing.T) {
	path := writeFixture(t, "fixture.golf", "id: swap-lines\nstart: \"a\\nb\\n\"\nkeystrokes: \"ddp\"\nexpected: \"b\\na\\n\"\n")

	c, err := LoadChallenge(path)
	require.NoError(t, err)
	assert.Equal(t, "swap-lines", c.ID)
	assert.Equal(t, "ddp", c.Keystrokes)
}

func TestLoadChallenge_DefaultsIDToFileName(t *testing.T) {
	path := writeFixture(t, "swap_lines.golf", "start: \"a\\nb\\n\"\nkeystrokes: \"ddp\"\nexpected: \"b\\na\\n\"\n")

	c, err := LoadChallenge(path)
	require.NoError(t, err)
	assert.Equal(t, "swap_lines", c.ID)
}

func TestLoadChallenge_MissingFile(t *testing.T) {
	_, err := LoadChallenge("/nonexistent/path.golf")
	assert.Error(t, err)
}
