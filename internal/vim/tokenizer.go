package vim

import "strings"

// Tokenize splits a keystroke stream into tokens: either a single grapheme
// cluster, or a bracketed mnemonic like "<Esc>", "<CR>", "<C-v>", "<C-w>".
// Mnemonics are matched up to the first unescaped '>'; anything that opens
// with '<' but never closes is treated as a literal '<' grapheme, matching
// how a real terminal would deliver an unterminated escape.
func Tokenize(keys string) []string {
	runes := []rune(keys)
	var tokens []string
	i := 0
	for i < len(runes) {
		if runes[i] == '<' {
			if end, ok := findMnemonicEnd(runes, i); ok {
				tokens = append(tokens, string(runes[i:end+1]))
				i = end + 1
				continue
			}
		}
		cluster, size := nextGraphemeCluster(string(runes[i:]))
		if size == 0 {
			break
		}
		tokens = append(tokens, cluster)
		i += len([]rune(cluster))
	}
	return tokens
}

func nextGraphemeCluster(s string) (string, int) {
	iter := NewGraphemeIterator(s)
	if !iter.Next() {
		return "", 0
	}
	return iter.Cluster(), len(iter.Cluster())
}

// findMnemonicEnd scans forward from a '<' for a matching '>' within a
// reasonable mnemonic length, rejecting runs that contain another '<' or
// whitespace (which real mnemonics never do).
func findMnemonicEnd(runes []rune, start int) (int, bool) {
	const maxMnemonicLen = 16
	for i := start + 1; i < len(runes) && i-start <= maxMnemonicLen; i++ {
		switch runes[i] {
		case '>':
			return i, true
		case '<', ' ', '\t', '\n':
			return 0, false
		}
	}
	return 0, false
}

// NormalizeMnemonic canonicalizes a mnemonic token's case for dispatch
// (e.g. "<esc>" and "<ESC>" both mean "<Esc>"), while leaving printable
// graphemes untouched.
func NormalizeMnemonic(tok string) string {
	if !strings.HasPrefix(tok, "<") || !strings.HasSuffix(tok, ">") {
		return tok
	}
	inner := tok[1 : len(tok)-1]
	lower := strings.ToLower(inner)
	if canon, ok := mnemonicCanon[lower]; ok {
		return canon
	}
	return tok
}

var mnemonicCanon = map[string]string{
	"esc":    "<Esc>",
	"cr":     "<CR>",
	"enter":  "<CR>",
	"return": "<CR>",
	"bs":     "<BS>",
	"del":    "<Del>",
	"tab":    "<Tab>",
	"space":  "<Space>",
	"c-v":    "<C-v>",
	"c-a":    "<C-a>",
	"c-x":    "<C-x>",
	"c-r":    "<C-r>",
	"c-o":    "<C-o>",
	"c-w":    "<C-w>",
	"c-u":    "<C-u>",
	"c-t":    "<C-t>",
	"c-d":    "<C-d>",
	"c-c":    "<C-c>",
	"c-k":    "<C-k>",
	"up":     "<Up>",
	"down":   "<Down>",
	"left":   "<Left>",
	"right":  "<Right>",
	"plug":   "<Plug>",
}
