package vim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimgolf-core/vimgolf/internal/vim"
)

func TestMotion_WordForwardStopsAtNextWordStart(t *testing.T) {
	s := vim.NewDriverState("foo bar baz")
	require.NoError(t, vim.Execute(s, "w"))
	assert.Equal(t, vim.Position{Line: 0, Col: 4}, s.Cursor)
}

func TestMotion_WordForwardCount(t *testing.T) {
	s := vim.NewDriverState("foo bar baz")
	require.NoError(t, vim.Execute(s, "2w"))
	assert.Equal(t, vim.Position{Line: 0, Col: 8}, s.Cursor)
}

func TestMotion_DollarGoesToLastGrapheme(t *testing.T) {
	s := vim.NewDriverState("hello")
	require.NoError(t, vim.Execute(s, "$"))
	assert.Equal(t, 4, s.Cursor.Col)
}

func TestMotion_ZeroGoesToLineStart(t *testing.T) {
	s := vim.NewDriverState("hello")
	require.NoError(t, vim.Execute(s, "$0"))
	assert.Equal(t, 0, s.Cursor.Col)
}

func TestMotion_GGGoesToFirstLine(t *testing.T) {
	s := vim.NewDriverState("a\nb\nc")
	require.NoError(t, vim.Execute(s, "Ggg"))
	assert.Equal(t, 0, s.Cursor.Line)
}

func TestMotion_GGoesToLastLine(t *testing.T) {
	s := vim.NewDriverState("a\nb\nc")
	require.NoError(t, vim.Execute(s, "G"))
	assert.Equal(t, 2, s.Cursor.Line)
}

func TestMotion_JKMoveBetweenLines(t *testing.T) {
	s := vim.NewDriverState("a\nb\nc")
	require.NoError(t, vim.Execute(s, "jj"))
	assert.Equal(t, 2, s.Cursor.Line)
	require.NoError(t, vim.Execute(s, "k"))
	assert.Equal(t, 1, s.Cursor.Line)
}

func TestMotion_FindCharForward(t *testing.T) {
	s := vim.NewDriverState("abcdef")
	require.NoError(t, vim.Execute(s, "fd"))
	assert.Equal(t, 3, s.Cursor.Col)
}

func TestMotion_TillCharForward(t *testing.T) {
	s := vim.NewDriverState("abcdef")
	require.NoError(t, vim.Execute(s, "td"))
	assert.Equal(t, 2, s.Cursor.Col)
}
