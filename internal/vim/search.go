package vim

import (
	"regexp"
	"strings"
)

// findAllMatches returns every match of re across the whole buffer, in
// document order, as line/col positions (grapheme columns).
func findAllMatches(lines []string, re *regexp.Regexp) []MatchRange {
	var matches []MatchRange
	for lineIdx, line := range lines {
		idxs := re.FindAllStringIndex(line, -1)
		for _, pair := range idxs {
			startCol := ByteToGraphemeOffset(line, pair[0])
			endCol := ByteToGraphemeOffset(line, pair[1])
			if startCol == endCol {
				endCol++ // zero-width matches still occupy one column for navigation
			}
			matches = append(matches, MatchRange{lineIdx, startCol, lineIdx, endCol})
		}
	}
	return matches
}

// PerformSearch returns matches strictly after (forward) or before
// (backward) the given start position, wrapping once if allowWrap and no
// match is found in the un-wrapped direction.
func PerformSearch(lines []string, re *regexp.Regexp, fromLine, fromCol int, direction int, inclusive, allowWrap bool) (MatchRange, bool) {
	all := findAllMatches(lines, re)
	if len(all) == 0 {
		return MatchRange{}, false
	}

	after := func(m MatchRange) bool {
		if inclusive {
			if m.StartLine != fromLine {
				return m.StartLine > fromLine
			}
			return m.EndCol > fromCol
		}
		if m.StartLine != fromLine {
			return m.StartLine > fromLine
		}
		return m.StartCol > fromCol
	}
	before := func(m MatchRange) bool {
		if m.StartLine != fromLine {
			return m.StartLine < fromLine
		}
		return m.StartCol < fromCol
	}

	if direction > 0 {
		for _, m := range all {
			if after(m) {
				return m, true
			}
		}
		if allowWrap {
			return all[0], true
		}
		return MatchRange{}, false
	}

	for i := len(all) - 1; i >= 0; i-- {
		if before(all[i]) {
			return all[i], true
		}
	}
	if allowWrap {
		return all[len(all)-1], true
	}
	return MatchRange{}, false
}

// wordUnderCursor returns the word-character run at or after the cursor on
// its line, used by * and #.
func wordUnderCursor(line string, col int) string {
	graphemes := graphemesOf(line)
	if len(graphemes) == 0 {
		return ""
	}
	if col >= len(graphemes) {
		col = len(graphemes) - 1
	}
	// scan forward from col to the first word-character grapheme
	start := col
	for start < len(graphemes) && graphemeType(graphemes[start]) != graphemeWord {
		start++
	}
	if start >= len(graphemes) {
		return ""
	}
	end := start
	for end < len(graphemes) && graphemeType(graphemes[end]) == graphemeWord {
		end++
	}
	return strings.Join(graphemes[start:end], "")
}

func graphemesOf(s string) []string {
	var out []string
	iter := NewGraphemeIterator(s)
	for iter.Next() {
		out = append(out, iter.Cluster())
	}
	return out
}

// wordBoundaryPattern literal-escapes a word and wraps it with \< \>-style
// boundaries (translated directly to Go's \b, which is ASCII-boundary
// equivalent for the word-class corpus exercises).
func wordBoundaryPattern(word string) string {
	return `\b` + regexp.QuoteMeta(word) + `\b`
}
