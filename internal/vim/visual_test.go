package vim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimgolf-core/vimgolf/internal/vim"
)

func TestVisual_CharwiseDelete(t *testing.T) {
	s := vim.NewDriverState("hello world")
	require.NoError(t, vim.Execute(s, "vlld"))
	assert.Equal(t, "lo world", vim.FinalText(s))
}

func TestVisual_LinewiseDeleteRemovesWholeLines(t *testing.T) {
	s := vim.NewDriverState("one\ntwo\nthree")
	require.NoError(t, vim.Execute(s, "Vjd"))
	assert.Equal(t, "three", vim.FinalText(s))
}

func TestVisual_BlockAppend(t *testing.T) {
	s := vim.NewDriverState("let x = 1\nlet y = 2\nlet z = 3")
	require.NoError(t, vim.Execute(s, "<C-v>G$A;<Esc>"))
	assert.Equal(t, "let x = 1;\nlet y = 2;\nlet z = 3;", vim.FinalText(s))
}

func TestVisual_ReplaceFillsSelectionWithChar(t *testing.T) {
	s := vim.NewDriverState("hello")
	require.NoError(t, vim.Execute(s, "vllrX"))
	assert.Equal(t, "XXXlo", vim.FinalText(s))
}

func TestVisual_EscReturnsToNormalMode(t *testing.T) {
	s := vim.NewDriverState("hello")
	require.NoError(t, vim.Execute(s, "v<Esc>"))
	assert.Equal(t, vim.ModeNormal, s.Mode)
}
