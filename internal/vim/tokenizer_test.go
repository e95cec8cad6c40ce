package vim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vimgolf-core/vimgolf/internal/vim"
)

func TestTokenize_PlainGraphemes(t *testing.T) {
	assert.Equal(t, []string{"d", "d"}, vim.Tokenize("dd"))
}

func TestTokenize_Mnemonics(t *testing.T) {
	assert.Equal(t, []string{"i", "<Esc>"}, vim.Tokenize("i<Esc>"))
	assert.Equal(t, []string{"<C-v>", "G", "$", "A"}, vim.Tokenize("<C-v>G$A"))
}

func TestTokenize_UnterminatedMnemonicIsLiteralLess(t *testing.T) {
	assert.Equal(t, []string{"<", "x"}, vim.Tokenize("<x"))
}

func TestTokenize_MnemonicWithEmbeddedSpaceIsLiteral(t *testing.T) {
	got := vim.Tokenize("<a b>")
	assert.Equal(t, []string{"<", "a", " ", "b", ">"}, got)
}

func TestTokenize_MultibyteGrapheme(t *testing.T) {
	assert.Equal(t, []string{"é", "x"}, vim.Tokenize("éx"))
}

func TestNormalizeMnemonic_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "<Esc>", vim.NormalizeMnemonic("<esc>"))
	assert.Equal(t, "<Esc>", vim.NormalizeMnemonic("<ESC>"))
}

func TestNormalizeMnemonic_NonMnemonicUnchanged(t *testing.T) {
	assert.Equal(t, "x", vim.NormalizeMnemonic("x"))
}
