package vim_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vimgolf-core/vimgolf/internal/vim"
)

// keyAlphabet is a small, mostly-safe set of normal-mode tokens used to
// generate random keystroke streams for the invariant checks below. It
// deliberately excludes tokens that block on further input this harness
// never supplies (e.g. an unterminated "f" or "/" search).
var keyAlphabet = []string{
	"h", "j", "k", "l", "w", "b", "e", "0", "$", "gg", "G",
	"x", "dd", "dw", "yy", "p", "P", "u", "<C-r>", "i<Esc>", "a<Esc>",
	"o<Esc>", "O<Esc>", "v$d", "~", "J",
}

// TestProperty_StepNeverPanicsAndKeepsBufferWellFormed checks invariant I1
// (the buffer is never empty and no line contains an embedded newline) and
// I2 (cursor stays within buffer bounds) after an arbitrary stream of
// normal-mode tokens.
func TestProperty_StepNeverPanicsAndKeepsBufferWellFormed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numLines := rapid.IntRange(1, 5).Draw(t, "numLines")
		lines := make([]string, numLines)
		for i := range lines {
			lines[i] = rapid.StringMatching(`[a-z ]{0,12}`).Draw(t, "line")
		}
		start := strings.Join(lines, "\n")

		numTokens := rapid.IntRange(0, 20).Draw(t, "numTokens")
		var keys strings.Builder
		for i := 0; i < numTokens; i++ {
			keys.WriteString(rapid.SampledFrom(keyAlphabet).Draw(t, "token"))
		}

		s := vim.NewDriverState(start)
		require.NotPanics(t, func() {
			_ = vim.Execute(s, keys.String())
		})

		require.GreaterOrEqual(t, len(s.Lines), 1)
		for _, l := range s.Lines {
			require.NotContains(t, l, "\n")
		}

		require.GreaterOrEqual(t, s.Cursor.Line, 0)
		require.Less(t, s.Cursor.Line, len(s.Lines))
		require.GreaterOrEqual(t, s.Cursor.Col, 0)
	})
}

// TestProperty_NormalizeTextIsIdempotent checks law L1: normalizing an
// already-normalized buffer is a no-op, regardless of what keystrokes
// produced it.
func TestProperty_NormalizeTextIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 \n\r]{0,40}`).Draw(t, "text")
		once := vim.NormalizeText(text)
		twice := vim.NormalizeText(once)
		require.Equal(t, once, twice)
	})
}
