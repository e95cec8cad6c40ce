package playground

import tea "github.com/charmbracelet/bubbletea"

// tokenFromKey translates a bubbletea key event into the vim token
// vocabulary Tokenize produces, so the playground can feed real keypresses
// straight into EditorState.Step without going through the string tokenizer.
func tokenFromKey(msg tea.KeyMsg) string {
	if tok, ok := namedKeyTokens[msg.Type]; ok {
		return tok
	}
	if msg.Type == tea.KeyRunes {
		return string(msg.Runes)
	}
	return ""
}

var namedKeyTokens = map[tea.KeyType]string{
	tea.KeyEsc:       "<Esc>",
	tea.KeyEnter:     "<CR>",
	tea.KeyBackspace: "<BS>",
	tea.KeyDelete:    "<Del>",
	tea.KeyTab:       "<Tab>",
	tea.KeySpace:     "<Space>",
	tea.KeyUp:        "<Up>",
	tea.KeyDown:      "<Down>",
	tea.KeyLeft:      "<Left>",
	tea.KeyRight:     "<Right>",
	tea.KeyCtrlV:     "<C-v>",
	tea.KeyCtrlA:     "<C-a>",
	tea.KeyCtrlX:     "<C-x>",
	tea.KeyCtrlR:     "<C-r>",
	tea.KeyCtrlO:     "<C-o>",
	tea.KeyCtrlW:     "<C-w>",
	tea.KeyCtrlU:     "<C-u>",
	tea.KeyCtrlT:     "<C-t>",
	tea.KeyCtrlD:     "<C-d>",
	tea.KeyCtrlK:     "<C-k>",
}
