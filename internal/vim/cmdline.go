package vim

import "strings"

// cmdlineStep handles one token while in Command-Line mode: building up the
// "/", "?", ":", or "=" buffer incrementally and dispatching on submission.
func (s *EditorState) cmdlineStep(tok string) error {
	cl := s.CommandLine

	switch tok {
	case "<Esc>", "<C-c>":
		return s.cancelCommandLine()
	case "<CR>":
		return s.submitCommandLine()
	case "<BS>":
		if cl.Buffer == "" {
			return s.cancelCommandLine()
		}
		g := graphemesOf(cl.Buffer)
		cl.Buffer = joinGraphemes(g[:len(g)-1])
		s.updateIncSearch()
		return nil
	case "<C-u>":
		cl.Buffer = ""
		s.updateIncSearch()
		return nil
	case "<Tab>":
		cl.Buffer += "\t"
		return nil
	case "<Space>":
		cl.Buffer += " "
		return nil
	}

	if strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">") {
		return nil // unrecognized mnemonic ignored in command-line mode too
	}

	cl.Buffer += tok
	s.updateIncSearch()
	return nil
}

func (s *EditorState) cancelCommandLine() error {
	cl := s.CommandLine
	fromInsert := cl.FromInsert
	returnMode := cl.ReturnMode
	s.CommandLine = nil
	if fromInsert {
		s.Mode = returnMode
		return nil
	}
	s.Mode = ModeNormal
	s.PendingOperator = nil
	s.finishCommand(false)
	return nil
}

// updateIncSearch recomputes the live highlight position while typing a
// "/" or "?" pattern, when incsearch is enabled; it never moves the cursor
// permanently, only what PerformSearch would land on.
func (s *EditorState) updateIncSearch() {
	cl := s.CommandLine
	if cl == nil || !s.Options.IncSearch {
		return
	}
	if cl.Prefix != "/" && cl.Prefix != "?" {
		return
	}
	if cl.Buffer == "" {
		return
	}
	re, err := CompileVimPattern(cl.Buffer, s.Options.IgnoreCase, s.Options.SmartCase)
	if err != nil {
		return
	}
	dir := 1
	if cl.Prefix == "?" {
		dir = -1
	}
	if m, ok := PerformSearch(s.Lines, re, s.Cursor.Line, s.Cursor.Col, dir, false, s.Search.AllowWrap); ok {
		s.Search.LastMatches = []MatchRange{m}
	}
}

func (s *EditorState) submitCommandLine() error {
	cl := s.CommandLine
	s.CommandLine = nil

	switch cl.Prefix {
	case "/", "?":
		return s.submitSearch(cl)
	case "=":
		return s.submitExprRegister(cl)
	default: // ":"
		s.Mode = ModeNormal
		s.PendingOperator = nil
		before := len(s.UndoStack)
		s.ExecuteExCommand(cl.Buffer)
		s.finishCommand(len(s.UndoStack) > before)
		return nil
	}
}

func (s *EditorState) submitSearch(cl *CommandLineState) error {
	pattern := cl.Buffer
	if pattern == "" {
		pattern = s.Search.Pattern
	}
	dir := 1
	if cl.Prefix == "?" {
		dir = -1
	}
	op := ""
	if s.PendingOperator != nil {
		op = s.PendingOperator.Token
	}
	s.Mode = ModeNormal

	if pattern == "" {
		s.PendingOperator = nil
		s.finishCommand(false)
		return nil
	}

	s.Search = SearchState{Pattern: pattern, Direction: dir, AllowWrap: true}
	s.Registers.SetSearch(pattern)

	re, err := CompileVimPattern(pattern, s.Options.IgnoreCase, s.Options.SmartCase)
	if err != nil {
		s.PendingOperator = nil
		s.finishCommand(false)
		return nil
	}
	m, ok := PerformSearch(s.Lines, re, s.Cursor.Line, s.Cursor.Col, dir, false, true)
	if !ok {
		s.PendingOperator = nil
		s.finishCommand(false)
		return nil
	}
	res := MotionResult{Pos: Position{m.StartLine, m.StartCol}, Found: true}
	if op != "" {
		return s.completeOperatorMotion(op, res)
	}
	return s.completeMotion(res)
}

func (s *EditorState) submitExprRegister(cl *CommandLineState) error {
	s.Registers.SetExpr(cl.Buffer)
	result := EvalExpr(cl.Buffer, s.exprContext())
	if cl.FromInsert {
		s.Mode = cl.ReturnMode
		s.insertText(result)
		return nil
	}
	s.Mode = ModeNormal
	s.PendingOperator = nil
	s.finishCommand(false)
	return nil
}
