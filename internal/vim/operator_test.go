package vim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimgolf-core/vimgolf/internal/vim"
)

func TestOperator_DeleteWord(t *testing.T) {
	s := vim.NewDriverState("foo bar")
	require.NoError(t, vim.Execute(s, "dw"))
	assert.Equal(t, "bar", vim.FinalText(s))
}

func TestOperator_DeleteLine(t *testing.T) {
	s := vim.NewDriverState("one\ntwo\nthree")
	require.NoError(t, vim.Execute(s, "dd"))
	assert.Equal(t, "two\nthree", vim.FinalText(s))
}

func TestOperator_YankAndPutDuplicatesLine(t *testing.T) {
	s := vim.NewDriverState("one\ntwo")
	require.NoError(t, vim.Execute(s, "yyp"))
	assert.Equal(t, "one\none\ntwo", vim.FinalText(s))
}

func TestOperator_ChangeWordEntersInsertMode(t *testing.T) {
	s := vim.NewDriverState("foo bar")
	require.NoError(t, vim.Execute(s, "cwbaz<Esc>"))
	assert.Equal(t, "baz bar", vim.FinalText(s))
	assert.Equal(t, vim.ModeNormal, s.Mode)
}

func TestOperator_UpperCaseLine(t *testing.T) {
	s := vim.NewDriverState("hello world")
	require.NoError(t, vim.Execute(s, "gUU"))
	assert.Equal(t, "HELLO WORLD", vim.FinalText(s))
}

func TestOperator_TildeTogglesCase(t *testing.T) {
	s := vim.NewDriverState("aBc")
	require.NoError(t, vim.Execute(s, "~~~"))
	assert.Equal(t, "AbC", vim.FinalText(s))
}

func TestOperator_IncrementNumber(t *testing.T) {
	s := vim.NewDriverState("count: 9")
	require.NoError(t, vim.Execute(s, "<C-a>"))
	assert.Equal(t, "count: 10", vim.FinalText(s))
}

func TestOperator_ShiftRightIndentsLine(t *testing.T) {
	opts := vim.DefaultOptions()
	opts.ShiftWidth = 2
	s := vim.NewDriverState("hello", opts)
	require.NoError(t, vim.Execute(s, ">>"))
	assert.Equal(t, "  hello", vim.FinalText(s))
}
