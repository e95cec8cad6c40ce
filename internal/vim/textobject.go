package vim

import "strings"

// textObjectRange computes the start and inclusive end for a text object like
// "iw", "aw", "i(", "at", etc. kind is 'i' or 'a'; obj is the object letter
// (w, W, s, p, (, ), b, {, }, B, [, ], <, >, ", ', `, t).
func textObjectRange(s *EditorState, kind byte, obj byte) (MotionResult, MotionResult, bool) {
	switch obj {
	case 'w':
		return wordObject(s, kind, false)
	case 'W':
		return wordObject(s, kind, true)
	case 's':
		return sentenceObject(s, kind)
	case 'p':
		return paragraphObject(s, kind)
	case '(', ')', 'b':
		return bracketObject(s, kind, '(', ')')
	case '{', '}', 'B':
		return bracketObject(s, kind, '{', '}')
	case '[', ']':
		return bracketObject(s, kind, '[', ']')
	case '<', '>':
		return bracketObject(s, kind, '<', '>')
	case '"':
		return quoteObject(s, kind, '"')
	case '\'':
		return quoteObject(s, kind, '\'')
	case '`':
		return quoteObject(s, kind, '`')
	case 't':
		return tagObject(s, kind)
	}
	return MotionResult{}, MotionResult{}, false
}

func wordObject(s *EditorState, kind byte, big bool) (MotionResult, MotionResult, bool) {
	g := graphemesOf(s.curLine())
	col := s.Cursor.Col
	if col >= len(g) {
		return MotionResult{}, MotionResult{}, false
	}
	cls := classify(g[col], big)
	start, end := col, col
	for start > 0 && classify(g[start-1], big) == cls {
		start--
	}
	for end+1 < len(g) && classify(g[end+1], big) == cls {
		end++
	}
	if kind == 'a' {
		// include trailing whitespace, or leading if no trailing
		trailEnd := end
		for trailEnd+1 < len(g) && classify(g[trailEnd+1], big) == graphemeWhitespace {
			trailEnd++
		}
		if trailEnd > end {
			end = trailEnd
		} else {
			for start > 0 && classify(g[start-1], big) == graphemeWhitespace {
				start--
			}
		}
	}
	line := s.Cursor.Line
	return simpleMotion(Position{line, start}), MotionResult{Pos: Position{line, end}, Inclusive: true, Found: true}, true
}

func sentenceObject(s *EditorState, kind byte) (MotionResult, MotionResult, bool) {
	startLine, startCol := prevSentence(s.Lines, s.Cursor.Line, s.Cursor.Col)
	endLine, endCol := nextSentence(s.Lines, s.Cursor.Line, s.Cursor.Col)
	if endCol > 0 {
		endCol--
	}
	if kind == 'i' {
		// trim trailing whitespace included by nextSentence's skip
		g := graphemesOf(s.Lines[endLine])
		for endCol > 0 && endCol < len(g) && classify(g[endCol], false) == graphemeWhitespace {
			endCol--
		}
	}
	return simpleMotion(Position{startLine, startCol}), MotionResult{Pos: Position{endLine, endCol}, Inclusive: true, Found: true}, true
}

func paragraphObject(s *EditorState, kind byte) (MotionResult, MotionResult, bool) {
	start := s.Cursor.Line
	for start > 0 && !isBlankLine(s.Lines[start-1]) {
		start--
	}
	end := s.Cursor.Line
	for end+1 < len(s.Lines) && !isBlankLine(s.Lines[end+1]) {
		end++
	}
	if kind == 'a' {
		for end+1 < len(s.Lines) && isBlankLine(s.Lines[end+1]) {
			end++
		}
	}
	sm := simpleMotion(Position{start, 0})
	sm.Linewise = true
	em := MotionResult{Pos: Position{end, 0}, Linewise: true, Found: true}
	return sm, em, true
}

func bracketObject(s *EditorState, kind byte, open, close rune) (MotionResult, MotionResult, bool) {
	startLine, startCol, ok := findEnclosing(s, open, close, true)
	if !ok {
		return MotionResult{}, MotionResult{}, false
	}
	endLine, endCol, ok := findEnclosing(s, open, close, false)
	if !ok {
		return MotionResult{}, MotionResult{}, false
	}
	if kind == 'i' {
		startCol++
		if startCol >= GraphemeCount(s.Lines[startLine]) {
			startLine++
			startCol = 0
		}
		endCol--
		if endCol < 0 {
			endLine--
			if endLine >= 0 {
				endCol = GraphemeCount(s.Lines[endLine]) - 1
			}
		}
		if endLine < startLine || (endLine == startLine && endCol < startCol-1) {
			// empty inner: iw on "()" -> empty range at the gap
			return simpleMotion(Position{startLine, startCol}), MotionResult{Pos: Position{startLine, startCol - 1}, Inclusive: true, Found: true}, true
		}
	}
	return simpleMotion(Position{startLine, startCol}), MotionResult{Pos: Position{endLine, endCol}, Inclusive: true, Found: true}, true
}

// findEnclosing scans outward from the cursor for the nearest enclosing
// open or close bracket of the given pair.
func findEnclosing(s *EditorState, open, close rune, wantOpen bool) (int, int, bool) {
	line, col := s.Cursor.Line, s.Cursor.Col
	depth := 0
	if wantOpen {
		for l := line; l >= 0; l-- {
			g := graphemesOf(s.Lines[l])
			start := len(g) - 1
			if l == line {
				start = col
			}
			for c := start; c >= 0; c-- {
				r := []rune(g[c])[0]
				if r == close && !(l == line && c == col) {
					depth++
				} else if r == open {
					if depth == 0 {
						return l, c, true
					}
					depth--
				}
			}
		}
		return 0, 0, false
	}
	for l := line; l < len(s.Lines); l++ {
		g := graphemesOf(s.Lines[l])
		start := 0
		if l == line {
			start = col
		}
		for c := start; c < len(g); c++ {
			r := []rune(g[c])[0]
			if r == open && !(l == line && c == col) {
				depth++
			} else if r == close {
				if depth == 0 {
					return l, c, true
				}
				depth--
			}
		}
	}
	return 0, 0, false
}

func quoteObject(s *EditorState, kind byte, quote rune) (MotionResult, MotionResult, bool) {
	g := graphemesOf(s.curLine())
	// find quote pairs on the current line; choose the pair the cursor
	// sits within or the next one on the line.
	var positions []int
	for i, gr := range g {
		if []rune(gr)[0] == quote {
			positions = append(positions, i)
		}
	}
	for i := 0; i+1 < len(positions); i += 2 {
		start, end := positions[i], positions[i+1]
		if s.Cursor.Col <= end {
			if kind == 'i' {
				return simpleMotion(Position{s.Cursor.Line, start + 1}), MotionResult{Pos: Position{s.Cursor.Line, end - 1}, Inclusive: true, Found: end-1 >= start+1 || true}, true
			}
			return simpleMotion(Position{s.Cursor.Line, start}), MotionResult{Pos: Position{s.Cursor.Line, end}, Inclusive: true, Found: true}, true
		}
	}
	return MotionResult{}, MotionResult{}, false
}

func tagObject(s *EditorState, kind byte) (MotionResult, MotionResult, bool) {
	text := s.FinalText()
	openIdx, closeStart, closeEnd, ok := findEnclosingTag(text, offsetOf(s))
	if !ok {
		return MotionResult{}, MotionResult{}, false
	}
	var startOff, endOff int
	if kind == 'a' {
		startOff, endOff = openIdx, closeEnd-1
	} else {
		// inner: after the opening tag's '>' to before the closing tag's '<'
		gt := strings.IndexByte(text[openIdx:], '>')
		startOff = openIdx + gt + 1
		endOff = closeStart - 1
		if endOff < startOff {
			endOff = startOff - 1
		}
	}
	startLine, startCol := lineColOf(s.Lines, startOff)
	endLine, endCol := lineColOf(s.Lines, endOff)
	return simpleMotion(Position{startLine, startCol}), MotionResult{Pos: Position{endLine, endCol}, Inclusive: true, Found: true}, true
}

func offsetOf(s *EditorState) int {
	off := 0
	for i := 0; i < s.Cursor.Line; i++ {
		off += len(s.Lines[i]) + 1
	}
	return off + GraphemeToByteOffset(s.Lines[s.Cursor.Line], s.Cursor.Col)
}

func lineColOf(lines []string, byteOffset int) (int, int) {
	off := byteOffset
	for i, l := range lines {
		if off <= len(l) {
			return i, ByteToGraphemeOffset(l, off)
		}
		off -= len(l) + 1
	}
	last := len(lines) - 1
	return last, GraphemeCount(lines[last])
}

// findEnclosingTag finds the innermost <tag>...</tag> pair enclosing
// byteOffset in a flattened buffer, supporting nested tags of the same
// name. Returns the byte offset of the opening '<', the opening '<' of the
// closing tag, and the offset just past the closing tag's '>'.
func findEnclosingTag(text string, pos int) (openStart, closeStart, closeEnd int, ok bool) {
	type tag struct {
		name       string
		start, end int
		closing    bool
	}
	var tags []tag
	i := 0
	for i < len(text) {
		if text[i] == '<' {
			j := strings.IndexByte(text[i:], '>')
			if j < 0 {
				break
			}
			raw := text[i : i+j+1]
			closing := strings.HasPrefix(raw, "</")
			nameStart := 1
			if closing {
				nameStart = 2
			}
			name := ""
			for k := nameStart; k < len(raw)-1; k++ {
				c := raw[k]
				if c == ' ' || c == '>' || c == '/' {
					break
				}
				name += string(c)
			}
			tags = append(tags, tag{name: name, start: i, end: i + j + 1, closing: closing})
			i += j + 1
			continue
		}
		i++
	}

	var stack []tag
	for _, t := range tags {
		if !t.closing {
			if strings.HasSuffix(strings.TrimSpace(t.name), "/") {
				continue
			}
			stack = append(stack, t)
			continue
		}
		if len(stack) == 0 {
			continue
		}
		open := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if open.name == t.name && open.start <= pos && pos < t.end {
			return open.start, t.start, t.end, true
		}
	}
	return 0, 0, 0, false
}
