package vim

import "strings"

// OperatorResult is what an operator produces once it has a target range:
// the cursor position afterward.
type OperatorResult struct {
	Cursor Position
}

// applyOperator runs op (d, c, y, gU, gu, g~, <, >, =) against the grapheme
// range [startLine,startCol) .. (endLine,endCol), endCol exclusive, already
// resolved from a motion's Inclusive flag or a text object. It returns the
// resulting cursor position. Register writes and undo-snapshot pushing
// happen here so every call site — normal mode, visual mode, and doubled
// operators like dd/yy — shares one code path.
func applyOperator(s *EditorState, op string, startLine, startCol, endLine, endCol int, linewise bool, register string) Position {
	switch op {
	case "d", "c":
		return applyDeleteOperator(s, op, startLine, startCol, endLine, endCol, linewise, register)
	case "y":
		return applyYankOperator(s, startLine, startCol, endLine, endCol, linewise, register)
	case "gU", "gu", "g~":
		return applyCaseOperator(s, op, startLine, startCol, endLine, endCol, linewise)
	case "<", ">":
		return applyShiftOperator(s, op, startLine, endLine)
	case "=":
		return Position{startLine, 0}
	case "gq":
		// No formatting engine is wired up (no filetype/textwidth model), so
		// gq is identity: the range is acknowledged but the buffer is
		// untouched, matching gq's role as a no-op place-holder here.
		return Position{startLine, firstNonBlankCol(s.Lines[startLine])}
	}
	return s.Cursor
}

func applyDeleteOperator(s *EditorState, op string, startLine, startCol, endLine, endCol int, linewise bool, register string) Position {
	s.pushUndo()
	text, wasLinewise := s.deleteRange(startLine, startCol, endLine, endCol, linewise)
	multiline := strings.Contains(text, "\n")
	if register != "" {
		s.Registers.writeTarget(register, Register{Text: text, Linewise: wasLinewise})
	} else {
		s.Registers.WriteDelete(s.ActiveRegister, text, wasLinewise, multiline)
	}
	pos := Position{startLine, startCol}
	if wasLinewise {
		pos.Col = 0
		if pos.Line >= len(s.Lines) {
			pos.Line = len(s.Lines) - 1
		}
		line := s.Lines[pos.Line]
		pos.Col = GraphemeToByteOffset(line, 0)
		_ = line
		pos.Col = firstNonBlankCol(s.Lines[pos.Line])
	}
	s.Cursor = pos
	if op == "c" {
		s.Mode = ModeInsert
		s.InsertStartPos = s.Cursor
		s.InsertRepeat = 1
	}
	return pos
}

func applyYankOperator(s *EditorState, startLine, startCol, endLine, endCol int, linewise bool, register string) Position {
	var text string
	if linewise {
		lines := s.Lines[startLine : endLine+1]
		text = strings.Join(lines, "\n") + "\n"
	} else {
		text = extractRange(s.Lines, startLine, startCol, endLine, endCol)
	}
	if register != "" {
		s.Registers.writeTarget(register, Register{Text: text, Linewise: linewise})
	} else {
		s.Registers.WriteYank(s.ActiveRegister, text, linewise)
	}
	if linewise {
		return Position{startLine, firstNonBlankCol(s.Lines[startLine])}
	}
	return Position{startLine, startCol}
}

func applyCaseOperator(s *EditorState, op string, startLine, startCol, endLine, endCol int, linewise bool) Position {
	s.pushUndo()
	transform := func(g string) string {
		switch op {
		case "gU":
			return strings.ToUpper(g)
		case "gu":
			return strings.ToLower(g)
		default: // g~
			if strings.ToUpper(g) == g && strings.ToLower(g) != g {
				return strings.ToLower(g)
			}
			return strings.ToUpper(g)
		}
	}
	if linewise {
		for l := startLine; l <= endLine; l++ {
			s.Lines[l] = transformGraphemes(s.Lines[l], 0, GraphemeCount(s.Lines[l])-1, transform)
		}
		return Position{startLine, 0}
	}
	if startLine == endLine {
		s.Lines[startLine] = transformGraphemes(s.Lines[startLine], startCol, endCol-1, transform)
		return Position{startLine, startCol}
	}
	s.Lines[startLine] = transformGraphemes(s.Lines[startLine], startCol, GraphemeCount(s.Lines[startLine])-1, transform)
	for l := startLine + 1; l < endLine; l++ {
		s.Lines[l] = transformGraphemes(s.Lines[l], 0, GraphemeCount(s.Lines[l])-1, transform)
	}
	s.Lines[endLine] = transformGraphemes(s.Lines[endLine], 0, endCol-1, transform)
	return Position{startLine, startCol}
}

func transformGraphemes(line string, fromCol, toCol int, f func(string) string) string {
	g := graphemesOf(line)
	for i := fromCol; i <= toCol && i < len(g); i++ {
		if i < 0 {
			continue
		}
		g[i] = f(g[i])
	}
	return strings.Join(g, "")
}

func applyShiftOperator(s *EditorState, op string, startLine, endLine int) Position {
	s.pushUndo()
	width := s.Options.ShiftWidth
	if width <= 0 {
		width = 8
	}
	for l := startLine; l <= endLine; l++ {
		if s.Lines[l] == "" {
			continue
		}
		if op == ">" {
			s.Lines[l] = strings.Repeat(" ", width) + s.Lines[l]
		} else {
			trimmed := strings.TrimLeft(s.Lines[l], " \t")
			removed := len(s.Lines[l]) - len(trimmed)
			if removed > width {
				removed = width
			}
			s.Lines[l] = s.Lines[l][min(removed, len(s.Lines[l])):]
		}
	}
	return Position{startLine, firstNonBlankCol(s.Lines[startLine])}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func firstNonBlankCol(line string) int {
	g := graphemesOf(line)
	for i, gr := range g {
		if graphemeType(gr) != graphemeWhitespace {
			return i
		}
	}
	return 0
}

// extractRange returns the charwise text in [startLine,startCol) ..
// (endLine,endCol), endCol exclusive, matching deleteRange's contract.
func extractRange(lines []string, startLine, startCol, endLine, endCol int) string {
	if startLine == endLine {
		return SliceByGraphemes(lines[startLine], startCol, endCol)
	}
	var b strings.Builder
	b.WriteString(SliceByGraphemes(lines[startLine], startCol, GraphemeCount(lines[startLine])))
	b.WriteString("\n")
	for l := startLine + 1; l < endLine; l++ {
		b.WriteString(lines[l])
		b.WriteString("\n")
	}
	b.WriteString(SliceByGraphemes(lines[endLine], 0, endCol))
	return b.String()
}

// applyIncrementOperator implements <C-a>/<C-x>: find the first number at or
// after the cursor on the current line and add delta to it. g<C-a>/g<C-x>
// are not mapped in any mode, so there is no sequential Visual-Block form.
func applyIncrementOperator(s *EditorState, delta int) {
	s.pushUndo()
	line := s.Lines[s.Cursor.Line]
	start, end, ok := findNumberAt(line, s.Cursor.Col)
	if !ok {
		return
	}
	numText := line[start:end]
	newText := incrementNumberText(numText, delta)
	s.Lines[s.Cursor.Line] = line[:start] + newText + line[end:]
	s.Cursor.Col = ByteToGraphemeOffset(s.Lines[s.Cursor.Line], start+len(newText)-1)
}

func findNumberAt(line string, fromCol int) (int, int, bool) {
	byteStart := GraphemeToByteOffset(line, fromCol)
	i := byteStart
	for i < len(line) && !isDigitByte(line[i]) {
		i++
	}
	if i >= len(line) {
		return 0, 0, false
	}
	start := i
	for start > 0 && isDigitByte(line[start-1]) {
		start--
	}
	if start > 0 && line[start-1] == '-' {
		start--
	}
	end := i
	for end < len(line) && isDigitByte(line[end]) {
		end++
	}
	return start, end, true
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

func incrementNumberText(numText string, delta int) string {
	neg := strings.HasPrefix(numText, "-")
	digits := strings.TrimPrefix(numText, "-")
	width := len(digits)
	leadingZero := width > 1 && digits[0] == '0'

	n := 0
	for _, c := range digits {
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	n += delta

	neg = n < 0
	if neg {
		n = -n
	}
	result := itoa(n)
	if leadingZero && len(result) < width {
		result = strings.Repeat("0", width-len(result)) + result
	}
	if neg {
		result = "-" + result
	}
	return result
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}
