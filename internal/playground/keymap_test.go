package playground

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestTokenFromKey_NamedKeys(t *testing.T) {
	cases := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyEsc, "<Esc>"},
		{tea.KeyEnter, "<CR>"},
		{tea.KeyBackspace, "<BS>"},
		{tea.KeyTab, "<Tab>"},
		{tea.KeyUp, "<Up>"},
		{tea.KeyCtrlW, "<C-w>"},
	}
	for _, c := range cases {
		got := tokenFromKey(tea.KeyMsg{Type: c.key})
		assert.Equal(t, c.want, got)
	}
}

func TestTokenFromKey_Runes(t *testing.T) {
	got := tokenFromKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "x", got)
}

func TestTokenFromKey_Unmapped(t *testing.T) {
	got := tokenFromKey(tea.KeyMsg{Type: tea.KeyF1})
	assert.Equal(t, "", got)
}
