package vim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimgolf-core/vimgolf/internal/vim"
)

func TestTextObject_DeleteInnerWord(t *testing.T) {
	s := vim.NewDriverState("foo bar baz")
	require.NoError(t, vim.Execute(s, "wdiw"))
	assert.Equal(t, "foo  baz", vim.FinalText(s))
}

func TestTextObject_DeleteAroundWordIncludesSpace(t *testing.T) {
	s := vim.NewDriverState("foo bar baz")
	require.NoError(t, vim.Execute(s, "wdaw"))
	assert.Equal(t, "foo baz", vim.FinalText(s))
}

func TestTextObject_DeleteInnerParens(t *testing.T) {
	s := vim.NewDriverState("f(abc)")
	require.NoError(t, vim.Execute(s, "f(di("))
	assert.Equal(t, "f()", vim.FinalText(s))
}

func TestTextObject_DeleteAroundQuotes(t *testing.T) {
	s := vim.NewDriverState(`say "hello" now`)
	require.NoError(t, vim.Execute(s, `fhda"`))
	assert.Equal(t, "say  now", vim.FinalText(s))
}
