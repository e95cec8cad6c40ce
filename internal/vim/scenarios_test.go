package vim_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vimgolf-core/vimgolf/internal/vim"
)

// fixture mirrors the .golf YAML shape internal/evalrun parses.
type fixture struct {
	ID         string `yaml:"id"`
	Start      string `yaml:"start"`
	Keystrokes string `yaml:"keystrokes"`
	Expected   string `yaml:"expected"`
}

func loadFixture(t *testing.T, name string) fixture {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)

	var f fixture
	require.NoError(t, yaml.Unmarshal(data, &f))
	return f
}

func TestEndToEndScenarios(t *testing.T) {
	names := []string{
		"numbered_list.golf",
		"remove_duplicates.golf",
		"reverse_lines.golf",
		"visual_block_append.golf",
		"yaml_to_dotenv.golf",
		"macro_replay.golf",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			f := loadFixture(t, name)

			s := vim.NewDriverState(f.Start)
			err := vim.Execute(s, f.Keystrokes)
			require.NoError(t, err)

			got := vim.NormalizeText(vim.FinalText(s))
			want := vim.NormalizeText(f.Expected)
			assert.Equal(t, want, got, "fixture %s", f.ID)
		})
	}
}

// TestLaw_EmptyKeystrokesIsIdentity checks L1: executing no keystrokes
// leaves the buffer textually unchanged under normalization.
func TestLaw_EmptyKeystrokesIsIdentity(t *testing.T) {
	inputs := []string{"", "a\nb\nc", "hello world", "one\r\ntwo\r\n"}
	for _, in := range inputs {
		s := vim.NewDriverState(in)
		require.NoError(t, vim.Execute(s, ""))
		assert.Equal(t, vim.NormalizeText(in), vim.NormalizeText(vim.FinalText(s)))
	}
}

// TestLaw_YankPutDuplicatesText checks L2: yank then put duplicates the
// yanked text into the buffer.
func TestLaw_YankPutDuplicatesText(t *testing.T) {
	s := vim.NewDriverState("hello")
	require.NoError(t, vim.Execute(s, "ywP"))
	assert.Equal(t, "hellohello", vim.FinalText(s))
}

// TestLaw_SubmatchZeroReplacementIsIdentity checks L5: substituting with
// \=submatch(0) leaves matched text unchanged.
func TestLaw_SubmatchZeroReplacementIsIdentity(t *testing.T) {
	s := vim.NewDriverState("foo bar baz")
	require.NoError(t, vim.Execute(s, `:%s/\w\+/\=submatch(0)/g`+"<CR>"))
	assert.Equal(t, "foo bar baz", vim.FinalText(s))
}

// TestInvariant_LinesNeverEmpty checks I1 across a mutating sequence.
func TestInvariant_LinesNeverEmpty(t *testing.T) {
	s := vim.NewDriverState("a\nb\nc")
	require.NoError(t, vim.Execute(s, "dddddd"))
	assert.GreaterOrEqual(t, len(s.Lines), 1)
	for _, l := range s.Lines {
		assert.NotContains(t, l, "\n")
	}
}

// TestInvariant_UndoRedoRoundTrips checks I5 on a simple mutating stream.
func TestInvariant_UndoRedoRoundTrips(t *testing.T) {
	s := vim.NewDriverState("hello")
	require.NoError(t, vim.Execute(s, "x"))
	afterMutation := vim.FinalText(s)
	cursorAfterMutation := s.Cursor

	require.NoError(t, vim.Execute(s, "u"))
	require.NoError(t, vim.Execute(s, "<C-r>"))

	assert.Equal(t, afterMutation, vim.FinalText(s))
	assert.Equal(t, cursorAfterMutation, s.Cursor)
}
