package vim

import "strings"

// visualRange normalizes VisualStart/Cursor into an ordered start/end pair
// plus the effective linewise flag for the active visual submode.
func (s *EditorState) visualRange() (startLine, startCol, endLine, endCol int, linewise bool) {
	a, b := s.VisualStart, s.Cursor
	if a.Line > b.Line || (a.Line == b.Line && a.Col > b.Col) {
		a, b = b, a
	}
	startLine, startCol = a.Line, a.Col
	endLine, endCol = b.Line, b.Col
	linewise = s.Mode == ModeVisualLine
	return
}

// blockCols returns the [minCol,maxCol] column span between the Visual-Block
// anchor and the cursor. A ragged $ selection gets no special treatment here:
// every line of the block gets the same span.
func (s *EditorState) blockCols() (minCol, maxCol int) {
	minCol, maxCol = s.VisualStart.Col, s.Cursor.Col
	if minCol > maxCol {
		minCol, maxCol = maxCol, minCol
	}
	return
}

func (s *EditorState) visualStep(tok string) error {
	if s.awaiting != "" {
		return s.visualAwaiting(tok)
	}
	if isDigitTok(tok) && !(tok == "0" && s.CountBuffer == "") {
		s.CountBuffer += tok
		return nil
	}

	switch tok {
	case "<Esc>", "<C-c>":
		s.saveLastVisual()
		s.Mode = ModeNormal
		s.clampCursor()
		return nil
	case "o":
		s.VisualStart, s.Cursor = s.Cursor, s.VisualStart
		return nil
	case "O":
		if s.Mode == ModeVisualBlock {
			s.VisualStart.Col, s.Cursor.Col = s.Cursor.Col, s.VisualStart.Col
		} else {
			s.VisualStart, s.Cursor = s.Cursor, s.VisualStart
		}
		return nil
	case "v":
		return s.toggleVisualMode(ModeVisual)
	case "V":
		return s.toggleVisualMode(ModeVisualLine)
	case "<C-v>":
		return s.toggleVisualMode(ModeVisualBlock)
	case "i":
		s.awaiting = "vtextobj:i"
		return nil
	case "a":
		s.awaiting = "vtextobj:a"
		return nil
	case "f", "F", "t", "T":
		s.awaiting = "vfind:" + tok
		return nil
	case "g":
		s.awaiting = "vg"
		return nil
	case "r":
		s.awaiting = "vreplace"
		return nil
	case ":":
		s.saveLastVisual()
		s.enterRangeCommandLine("")
		return nil
	case "!":
		s.saveLastVisual()
		s.enterRangeCommandLine("!")
		return nil
	case "d", "x", "<Del>":
		return s.applyVisualOperator("d")
	case "c", "s":
		return s.applyVisualOperator("c")
	case "y":
		return s.applyVisualOperator("y")
	case "D", "X":
		s.forceLinewise()
		return s.applyVisualOperator("d")
	case "C", "S", "R":
		s.forceLinewise()
		return s.applyVisualOperator("c")
	case "Y":
		s.forceLinewise()
		return s.applyVisualOperator("y")
	case "<":
		s.forceLinewise()
		return s.applyVisualOperator("<")
	case ">":
		s.forceLinewise()
		return s.applyVisualOperator(">")
	case "=":
		s.forceLinewise()
		return s.applyVisualOperator("=")
	case "U":
		return s.applyVisualOperator("gU")
	case "u":
		return s.applyVisualOperator("gu")
	case "~":
		return s.applyVisualOperator("g~")
	case "J":
		startLine, _, endLine, _, _ := s.visualRange()
		s.saveLastVisual()
		s.Mode = ModeNormal
		s.Cursor = Position{startLine, 0}
		return s.joinLinesCommand(endLine-startLine+1, true)
	case "p", "P":
		return s.visualPaste()
	case "A":
		if s.Mode == ModeVisualBlock {
			return s.startVisualBlockInsert(true)
		}
		return nil
	case "I":
		if s.Mode == ModeVisualBlock {
			return s.startVisualBlockInsert(false)
		}
		return nil
	}

	count := s.takeCount()
	if res, ok := s.resolveSimpleMotion(tok, count); ok {
		if res.Found {
			s.Cursor = res.Pos
			s.clampCursor()
		}
		return nil
	}
	return nil
}

func (s *EditorState) forceLinewise() {
	s.Mode = ModeVisualLine
}

func (s *EditorState) toggleVisualMode(target Mode) error {
	if s.Mode == target {
		s.saveLastVisual()
		s.Mode = ModeNormal
		s.clampCursor()
		return nil
	}
	s.Mode = target
	return nil
}

func (s *EditorState) saveLastVisual() {
	s.LastVisualMode = s.Mode
	s.LastVisualStart = s.VisualStart
	s.LastVisualEnd = s.Cursor
	s.HasLastVisual = true
}

func (s *EditorState) visualAwaiting(tok string) error {
	awaiting := s.awaiting
	s.awaiting = ""
	switch {
	case awaiting == "vfind:f" || awaiting == "vfind:F" || awaiting == "vfind:t" || awaiting == "vfind:T":
		dir := awaiting[len("vfind:")]
		count := s.takeCount()
		res := motionFindChar(s, dir, []rune(tok)[0], count)
		if res.Found {
			s.LastFindChar = FindCharState{Direction: dir, Char: []rune(tok)[0], Set: true}
			s.Cursor = res.Pos
			s.clampCursor()
		}
		return nil
	case awaiting == "vg":
		return s.visualGCommand(tok)
	case awaiting == "vreplace":
		return s.applyVisualReplace(tok)
	case strings.HasPrefix(awaiting, "vtextobj:"):
		kind := byte('i')
		if awaiting == "vtextobj:a" {
			kind = 'a'
		}
		startMotion, endMotion, ok := textObjectRange(s, kind, byte([]rune(tok)[0]))
		if ok {
			s.VisualStart = startMotion.Pos
			s.Cursor = endMotion.Pos
			if endMotion.Linewise {
				s.Mode = ModeVisualLine
			}
			s.clampCursor()
		}
		return nil
	}
	return nil
}

func (s *EditorState) visualGCommand(tok string) error {
	switch tok {
	case "g":
		count := s.takeCount()
		res := motionGG(s, count != 1, count)
		s.Cursor = res.Pos
		s.clampCursor()
	case "U":
		return s.applyVisualOperator("gU")
	case "u":
		return s.applyVisualOperator("gu")
	case "~":
		return s.applyVisualOperator("g~")
	case "v":
		return s.restoreLastVisual()
	}
	return nil
}

// applyVisualOperator runs op over the current selection (charwise,
// linewise, or block) and returns to Normal mode.
func (s *EditorState) applyVisualOperator(op string) error {
	mode := s.Mode
	reg := s.ActiveRegister
	s.saveLastVisual()
	s.Mode = ModeNormal

	if mode == ModeVisualBlock {
		return s.applyBlockOperator(op, reg)
	}

	startLine, startCol, endLine, endCol, linewise := s.visualRange()
	if !linewise {
		endCol++ // visual selection's end is inclusive; operators want it exclusive
	}
	pos := applyOperator(s, op, startLine, startCol, endLine, endCol, linewise, reg)
	s.Cursor = pos
	s.clampCursor()
	s.finishCommand(op != "y" && op != "=")
	return nil
}

// applyBlockOperator applies op independently to each line's [minCol,maxCol]
// span, the column-rectangle semantics of Visual-Block.
func (s *EditorState) applyBlockOperator(op string, reg string) error {
	startLine := s.VisualStart.Line
	endLine := s.Cursor.Line
	if startLine > endLine {
		startLine, endLine = endLine, startLine
	}
	minCol, maxCol := s.blockCols()
	s.pushUndo()

	var collected []string
	for l := startLine; l <= endLine; l++ {
		n := s.lineGraphemes(l)
		lo, hi := minCol, maxCol+1
		if lo > n {
			lo = n
		}
		if hi > n {
			hi = n
		}
		if hi < lo {
			hi = lo
		}
		switch op {
		case "d", "c":
			collected = append(collected, SliceByGraphemes(s.Lines[l], lo, hi))
			s.Lines[l] = SliceByGraphemes(s.Lines[l], 0, lo) + SliceByGraphemes(s.Lines[l], hi, n)
		case "y":
			collected = append(collected, SliceByGraphemes(s.Lines[l], lo, hi))
		case "gU":
			s.Lines[l] = transformGraphemes(s.Lines[l], lo, hi-1, strings.ToUpper)
		case "gu":
			s.Lines[l] = transformGraphemes(s.Lines[l], lo, hi-1, strings.ToLower)
		}
	}
	if op == "y" || op == "d" || op == "c" {
		text := strings.Join(collected, "\n")
		if reg != "" {
			s.Registers.writeTarget(reg, Register{Text: text})
		} else if op == "y" {
			s.Registers.WriteYank(s.ActiveRegister, text, false)
		} else {
			s.Registers.WriteDelete(s.ActiveRegister, text, false, true)
		}
	}
	s.Cursor = Position{startLine, minCol}
	s.clampCursor()
	if op == "c" {
		s.Mode = ModeInsert
		s.VisualBlock = VisualBlockInsert{Active: true, StartLine: startLine, EndLine: endLine, Col: minCol, Append: false}
		s.InsertStartPos = s.Cursor
		s.InsertRepeat = 1
		return nil
	}
	s.finishCommand(op != "y")
	return nil
}

func (s *EditorState) applyVisualReplace(ch string) error {
	mode := s.Mode
	s.saveLastVisual()
	s.Mode = ModeNormal
	s.pushUndo()
	if mode == ModeVisualBlock {
		startLine := s.VisualStart.Line
		endLine := s.Cursor.Line
		if startLine > endLine {
			startLine, endLine = endLine, startLine
		}
		minCol, maxCol := s.blockCols()
		for l := startLine; l <= endLine; l++ {
			g := graphemesOf(s.Lines[l])
			for c := minCol; c <= maxCol && c < len(g); c++ {
				g[c] = ch
			}
			s.Lines[l] = joinGraphemes(g)
		}
		s.Cursor = Position{startLine, minCol}
	} else {
		startLine, startCol, endLine, endCol, linewise := s.visualRange()
		if linewise {
			for l := startLine; l <= endLine; l++ {
				g := graphemesOf(s.Lines[l])
				for c := range g {
					g[c] = ch
				}
				s.Lines[l] = joinGraphemes(g)
			}
		} else if startLine == endLine {
			g := graphemesOf(s.Lines[startLine])
			for c := startCol; c <= endCol && c < len(g); c++ {
				g[c] = ch
			}
			s.Lines[startLine] = joinGraphemes(g)
		} else {
			for l := startLine; l <= endLine; l++ {
				g := graphemesOf(s.Lines[l])
				lo, hi := 0, len(g)-1
				if l == startLine {
					lo = startCol
				}
				if l == endLine {
					hi = endCol
				}
				for c := lo; c <= hi && c < len(g); c++ {
					g[c] = ch
				}
				s.Lines[l] = joinGraphemes(g)
			}
		}
		s.Cursor = Position{startLine, startCol}
	}
	s.clampCursor()
	s.finishCommand(true)
	return nil
}

func (s *EditorState) visualPaste() error {
	mode := s.Mode
	s.saveLastVisual()
	s.Mode = ModeNormal
	startLine, startCol, endLine, endCol, linewise := s.visualRange()
	if mode == ModeVisualBlock {
		linewise = false
		endCol = s.Cursor.Col + 1
	}
	if !linewise {
		endCol++
	}
	s.pushUndo()
	s.deleteRange(startLine, startCol, endLine, endCol, linewise)
	s.Cursor = Position{startLine, startCol}
	if linewise {
		s.Cursor.Col = 0
	}
	s.pasteNoUndo(1, false)
	s.finishCommand(true)
	return nil
}

// startVisualBlockInsert begins an A/I session on a Visual-Block selection:
// the typed text is inserted on the first line now, and replayed onto every
// other line of the block when Insert mode exits.
func (s *EditorState) startVisualBlockInsert(after bool) error {
	startLine := s.VisualStart.Line
	endLine := s.Cursor.Line
	if startLine > endLine {
		startLine, endLine = endLine, startLine
	}
	minCol, maxCol := s.blockCols()
	col := minCol
	ragged := false
	if after {
		col = maxCol + 1
		if s.VisualStart.Col == maxCol || s.Cursor.Col == maxCol {
			ragged = s.VisualBlockRagged
		}
	}
	s.saveLastVisual()
	s.Mode = ModeInsert
	s.pushUndo()
	s.VisualBlock = VisualBlockInsert{Active: true, StartLine: startLine, EndLine: endLine, Col: col, Append: after, Ragged: ragged}
	s.Cursor = Position{startLine, col}
	s.InsertStartPos = s.Cursor
	s.InsertRepeat = 1
	return nil
}

func (s *EditorState) enterRangeCommandLine(suffix string) {
	s.Mode = ModeCommandLine
	s.CommandLine = &CommandLineState{Prefix: ":", Buffer: "'<,'>" + suffix}
}
