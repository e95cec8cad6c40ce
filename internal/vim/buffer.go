package vim

// maxColFor returns the highest column legal for the given mode on a line
// with the given grapheme count: len() in Insert/Replace, max(0,len-1)
// otherwise (including CommandLine).
func maxColFor(mode Mode, graphemes int) int {
	switch mode {
	case ModeInsert, ModeReplace:
		return graphemes
	default:
		if graphemes == 0 {
			return 0
		}
		return graphemes - 1
	}
}

// clampCursor re-establishes the cursor invariants (I2) for the current mode.
func (s *EditorState) clampCursor() {
	if len(s.Lines) == 0 {
		s.Lines = []string{""}
	}
	if s.Cursor.Line < 0 {
		s.Cursor.Line = 0
	}
	if s.Cursor.Line >= len(s.Lines) {
		s.Cursor.Line = len(s.Lines) - 1
	}
	line := s.Lines[s.Cursor.Line]
	mc := maxColFor(s.Mode, GraphemeCount(line))
	if s.Cursor.Col < 0 {
		s.Cursor.Col = 0
	}
	if s.Cursor.Col > mc {
		s.Cursor.Col = mc
	}
}

// lineGraphemes returns the grapheme count of the line at idx, or 0 if out
// of range.
func (s *EditorState) lineGraphemes(idx int) int {
	if idx < 0 || idx >= len(s.Lines) {
		return 0
	}
	return GraphemeCount(s.Lines[idx])
}

// curLine returns the text of the cursor's current line.
func (s *EditorState) curLine() string {
	return s.Lines[s.Cursor.Line]
}

// deleteRange removes the span [startLine,startCol) .. (endLine,endCol)
// (end exclusive in grapheme terms), joining surrounding parts. When
// linewise is true, whole lines startLine..endLine are removed. The removed
// text and its linewise flag are returned; writing them into a register is
// left to the caller. Ensures Lines stays non-empty (I1).
func (s *EditorState) deleteRange(startLine, startCol, endLine, endCol int, linewise bool) (deleted string, wasLinewise bool) {
	if linewise {
		if startLine > endLine {
			startLine, endLine = endLine, startLine
		}
		if startLine < 0 {
			startLine = 0
		}
		if endLine >= len(s.Lines) {
			endLine = len(s.Lines) - 1
		}
		var removed []string
		removed = append(removed, s.Lines[startLine:endLine+1]...)
		remaining := make([]string, 0, len(s.Lines)-(endLine-startLine+1))
		remaining = append(remaining, s.Lines[:startLine]...)
		remaining = append(remaining, s.Lines[endLine+1:]...)
		if len(remaining) == 0 {
			remaining = []string{""}
		}
		s.Lines = remaining
		s.Cursor.Line = startLine
		if s.Cursor.Line >= len(s.Lines) {
			s.Cursor.Line = len(s.Lines) - 1
		}
		s.Cursor.Col = 0
		s.clampCursor()
		return joinLines(removed), true
	}

	if startLine > endLine || (startLine == endLine && startCol > endCol) {
		startLine, startCol, endLine, endCol = endLine, endCol, startLine, startCol
	}

	if startLine == endLine {
		line := s.Lines[startLine]
		deleted = SliceByGraphemes(line, startCol, endCol)
		s.Lines[startLine] = SliceByGraphemes(line, 0, startCol) + SliceByGraphemes(line, endCol, GraphemeCount(line))
		s.Cursor = Position{startLine, startCol}
		s.clampCursor()
		return deleted, false
	}

	// Multi-line charwise delete: join the remainder of startLine with the
	// remainder of endLine, dropping everything in between.
	first := s.Lines[startLine]
	last := s.Lines[endLine]
	headKeep := SliceByGraphemes(first, 0, startCol)
	tailDrop := SliceByGraphemes(first, startCol, GraphemeCount(first))
	tailKeep := SliceByGraphemes(last, endCol, GraphemeCount(last))
	midDrop := SliceByGraphemes(last, 0, endCol)

	var removedParts []string
	removedParts = append(removedParts, tailDrop)
	removedParts = append(removedParts, s.Lines[startLine+1:endLine]...)
	removedParts = append(removedParts, midDrop)
	deleted = joinLines(removedParts)

	newLine := headKeep + tailKeep
	newLines := make([]string, 0, len(s.Lines)-(endLine-startLine))
	newLines = append(newLines, s.Lines[:startLine]...)
	newLines = append(newLines, newLine)
	newLines = append(newLines, s.Lines[endLine+1:]...)
	s.Lines = newLines
	s.Cursor = Position{startLine, startCol}
	s.clampCursor()
	return deleted, false
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

// insertLines splits text on "\n" and inserts the resulting lines starting
// at (line, col), moving any trailing content of the original line onto
// the last inserted line. Returns the cursor position just past the
// inserted text.
func (s *EditorState) insertLines(line, col int, text string) Position {
	if text == "" {
		return Position{line, col}
	}
	parts := splitLines(text)
	orig := s.Lines[line]
	before := SliceByGraphemes(orig, 0, col)
	after := SliceByGraphemes(orig, col, GraphemeCount(orig))

	if len(parts) == 1 {
		s.Lines[line] = before + parts[0] + after
		return Position{line, col + GraphemeCount(parts[0])}
	}

	newLines := make([]string, 0, len(s.Lines)+len(parts)-1)
	newLines = append(newLines, s.Lines[:line]...)
	newLines = append(newLines, before+parts[0])
	newLines = append(newLines, parts[1:len(parts)-1]...)
	lastIdx := len(parts) - 1
	newLines = append(newLines, parts[lastIdx]+after)
	newLines = append(newLines, s.Lines[line+1:]...)
	s.Lines = newLines
	return Position{line + lastIdx, GraphemeCount(parts[lastIdx])}
}

// leadingWhitespace returns the leading run of spaces/tabs of a line.
func leadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}
