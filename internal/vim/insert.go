package vim

import "strings"

// insertStep handles one token while in Insert or Replace mode.
func (s *EditorState) insertStep(tok string) error {
	if s.insertAwaiting != "" {
		return s.insertAwaitingStep(tok)
	}

	switch tok {
	case "<Esc>", "<C-c>":
		return s.exitInsert()
	case "<CR>":
		s.splitLineAtCursor()
		return nil
	case "<BS>":
		s.backspace()
		return nil
	case "<Del>":
		s.deleteForward()
		return nil
	case "<C-w>":
		s.deleteWordBeforeCursor()
		return nil
	case "<C-u>":
		s.deleteToInsertStartOrLineStart()
		return nil
	case "<C-t>":
		s.shiftCurrentLine(1)
		return nil
	case "<C-d>":
		s.shiftCurrentLine(-1)
		return nil
	case "<C-v>":
		s.insertAwaiting = "literal"
		return nil
	case "<C-r>":
		s.insertAwaiting = "register"
		return nil
	case "<C-o>":
		s.ctrlOArmed = true
		return nil
	case "<C-k>":
		s.insertAwaiting = "digraph1"
		return nil
	case "<Tab>":
		s.insertText("\t")
		return nil
	case "<Space>":
		s.insertText(" ")
		return nil
	case "<Left>":
		if s.Cursor.Col > 0 {
			s.Cursor.Col--
		}
		return nil
	case "<Right>":
		if s.Cursor.Col < s.lineGraphemes(s.Cursor.Line) {
			s.Cursor.Col++
		}
		return nil
	case "<Up>":
		if s.Cursor.Line > 0 {
			s.Cursor.Line--
			s.clampCursor()
		}
		return nil
	case "<Down>":
		if s.Cursor.Line < len(s.Lines)-1 {
			s.Cursor.Line++
			s.clampCursor()
		}
		return nil
	}

	if strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">") {
		return nil // unrecognized mnemonic: ignored rather than inserted literally
	}

	s.insertText(tok)
	return nil
}

func (s *EditorState) insertAwaitingStep(tok string) error {
	awaiting := s.insertAwaiting
	s.insertAwaiting = ""
	switch awaiting {
	case "literal":
		s.insertLiteral(tok)
	case "register":
		if tok == "=" {
			s.CommandLine = &CommandLineState{Prefix: "=", FromInsert: true, ReturnMode: s.Mode}
			s.Mode = ModeCommandLine
			return nil
		}
		reg := s.Registers.Read(tok, func(src string) string { return EvalExpr(src, s.exprContext()) })
		s.insertText(reg.Text)
	case "digraph1":
		s.insertDigraph1 = []rune(tok)[0]
		s.insertAwaiting = "digraph2"
	case "digraph2":
		s.insertText(resolveDigraph(s.insertDigraph1, []rune(tok)[0]))
	case "literal-digits":
		s.insertLiteralDigits(tok)
	}
	return nil
}

// insertLiteral handles <C-v>{char} and <C-v>{3 digits}: a literal escape
// inserts the next keystroke verbatim (bypassing mnemonic interpretation,
// moot here since the tokenizer already resolved it) or, for a decimal
// digit, begins accumulating a 3-digit character code.
func (s *EditorState) insertLiteral(tok string) {
	if len(tok) == 1 && tok[0] >= '0' && tok[0] <= '9' {
		s.PendingDigraph = tok // reused as a scratch accumulator for the decimal code
		s.insertAwaiting = "literal-digits"
		return
	}
	s.insertText(tok)
}

func (s *EditorState) insertLiteralDigits(tok string) {
	if len(tok) == 1 && tok[0] >= '0' && tok[0] <= '9' && len(s.PendingDigraph) < 3 {
		s.PendingDigraph += tok
		if len(s.PendingDigraph) == 3 {
			code := 0
			for _, c := range s.PendingDigraph {
				code = code*10 + int(c-'0')
			}
			s.PendingDigraph = ""
			s.insertText(string(rune(code)))
		} else {
			s.insertAwaiting = "literal-digits"
		}
		return
	}
	code := 0
	for _, c := range s.PendingDigraph {
		code = code*10 + int(c-'0')
	}
	s.PendingDigraph = ""
	if code > 0 {
		s.insertText(string(rune(code)))
	}
	s.insertText(tok)
}

// digraphs is the small built-in table <C-k> looks up; unlisted pairs fall
// back to the second character, matching Vim's behavior for unknown digraphs
// entered without a custom digraph file.
var digraphs = map[[2]rune]rune{
	{'a', ':'}: 'ä', {'o', ':'}: 'ö', {'u', ':'}: 'ü',
	{'A', ':'}: 'Ä', {'O', ':'}: 'Ö', {'U', ':'}: 'Ü',
	{'s', 's'}: 'ß',
	{'e', '\''}: 'é', {'e', '!'}: 'è',
	{'a', '!'}: 'à', {'n', '~'}: 'ñ',
	{'c', ','}: 'ç',
	{'O', 'K'}: '✓', {'X', 'X'}: '✗',
}

func resolveDigraph(a, b rune) string {
	if r, ok := digraphs[[2]rune{a, b}]; ok {
		return string(r)
	}
	if r, ok := digraphs[[2]rune{b, a}]; ok {
		return string(r)
	}
	return string(b)
}

func (s *EditorState) exprContext() exprContext {
	return exprContext{Lnum: s.Cursor.Line + 1}
}

// insertText inserts tok at the cursor, overwriting the grapheme under the
// cursor first when in Replace mode.
func (s *EditorState) insertText(tok string) {
	if s.Mode == ModeReplace {
		n := s.lineGraphemes(s.Cursor.Line)
		if s.Cursor.Col < n {
			g := graphemesOf(s.curLine())
			g[s.Cursor.Col] = tok
			s.Lines[s.Cursor.Line] = joinGraphemes(g)
			s.Cursor.Col++
			return
		}
	}
	pos := s.insertLines(s.Cursor.Line, s.Cursor.Col, tok)
	s.Cursor = pos
}

func (s *EditorState) splitLineAtCursor() {
	indent := ""
	if s.Options.AutoIndent {
		indent = leadingWhitespace(s.curLine())
	}
	pos := s.insertLines(s.Cursor.Line, s.Cursor.Col, "\n"+indent)
	s.Cursor = pos
}

func (s *EditorState) backspace() {
	if s.Cursor.Col > 0 {
		s.Lines[s.Cursor.Line] = DeleteGraphemeRange(s.curLine(), s.Cursor.Col-1, s.Cursor.Col)
		s.Cursor.Col--
		return
	}
	if s.Cursor.Line > 0 {
		prevLen := GraphemeCount(s.Lines[s.Cursor.Line-1])
		s.Lines[s.Cursor.Line-1] += s.Lines[s.Cursor.Line]
		s.Lines = append(s.Lines[:s.Cursor.Line], s.Lines[s.Cursor.Line+1:]...)
		s.Cursor.Line--
		s.Cursor.Col = prevLen
	}
}

func (s *EditorState) deleteForward() {
	n := s.lineGraphemes(s.Cursor.Line)
	if s.Cursor.Col < n {
		s.Lines[s.Cursor.Line] = DeleteGraphemeRange(s.curLine(), s.Cursor.Col, s.Cursor.Col+1)
	}
}

func (s *EditorState) deleteWordBeforeCursor() {
	line, col := prevWordStart(s.Lines, s.Cursor.Line, s.Cursor.Col, false)
	if line != s.Cursor.Line {
		line = s.Cursor.Line
		col = 0
	}
	s.Lines[s.Cursor.Line] = DeleteGraphemeRange(s.curLine(), col, s.Cursor.Col)
	s.Cursor.Col = col
}

func (s *EditorState) deleteToInsertStartOrLineStart() {
	col := 0
	if s.InsertStartPos.Line == s.Cursor.Line && s.InsertStartPos.Col < s.Cursor.Col {
		col = s.InsertStartPos.Col
	}
	s.Lines[s.Cursor.Line] = DeleteGraphemeRange(s.curLine(), col, s.Cursor.Col)
	s.Cursor.Col = col
}

func (s *EditorState) shiftCurrentLine(dir int) {
	width := s.Options.ShiftWidth
	if width <= 0 {
		width = 8
	}
	if dir > 0 {
		s.Lines[s.Cursor.Line] = strings.Repeat(" ", width) + s.curLine()
		s.Cursor.Col += width
		return
	}
	trimmed := strings.TrimLeft(s.curLine(), " \t")
	removed := len(s.curLine()) - len(trimmed)
	if removed > width {
		removed = width
	}
	s.Lines[s.Cursor.Line] = s.curLine()[removed:]
	s.Cursor.Col -= width
	if s.Cursor.Col < 0 {
		s.Cursor.Col = 0
	}
}

// exitInsert leaves Insert/Replace mode, replaying the typed text
// InsertRepeat-1 additional times (the "3ihello<Esc>" repeat-count form),
// then records the whole insert session for dot-repeat and the "." register.
func (s *EditorState) exitInsert() error {
	typed := joinTokens(s.LastTypedRun())
	for i := 1; i < s.InsertRepeat; i++ {
		pos := s.insertLines(s.Cursor.Line, s.Cursor.Col, typed)
		s.Cursor = pos
	}
	s.Registers.SetLastInsert(typed)

	if s.VisualBlock.Active {
		s.replayVisualBlockInsert(typed)
		s.VisualBlock = VisualBlockInsert{}
	}

	if s.Cursor.Col > 0 {
		s.Cursor.Col--
	}
	s.Mode = ModeNormal
	s.clampCursor()
	s.finishCommand(true)
	return nil
}

// replayVisualBlockInsert repeats the just-typed text onto every other line
// of a Visual-Block A/I session. Lines shorter than the block's column that
// were never part of a ragged $ selection are skipped for I (insert can't
// start past end of line), matching Vim's "ragged" rule.
func (s *EditorState) replayVisualBlockInsert(typed string) {
	vb := s.VisualBlock
	if strings.Contains(typed, "\n") {
		return // multi-line inserts don't replay across the block
	}
	for l := vb.StartLine; l <= vb.EndLine; l++ {
		if l == s.Cursor.Line {
			continue // the first line already has the text from live typing
		}
		n := s.lineGraphemes(l)
		col := vb.Col
		if col > n {
			if !vb.Append {
				continue
			}
			col = n
		}
		pos := s.insertLines(l, col, typed)
		_ = pos
	}
}

// LastTypedRun returns the literal characters inserted during the current
// insert session, derived from the recorded command tokens (mnemonics like
// <BS> are excluded: this feeds the count-repeat of "3ihello<Esc>", which
// only replays printable insertion, not edits).
func (s *EditorState) LastTypedRun() []string {
	var out []string
	for _, t := range s.pendingTokens {
		if strings.HasPrefix(t, "<") && strings.HasSuffix(t, ">") {
			continue
		}
		out = append(out, t)
	}
	return out
}
