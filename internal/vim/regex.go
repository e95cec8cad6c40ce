package vim

import (
	"regexp"
	"strings"
)

// maxPatternLength bounds the Vim pattern length; longer patterns are not
// translated and match as literal text.
const maxPatternLength = 2000

// translateVimPattern converts a Vim-dialect pattern to a Go regexp source
// string. There is no ecosystem package that implements Vim's regex magic
// levels, so this hand-rolled translator layers rewrites on top of the
// standard library's RE2 engine (documented in DESIGN.md).
func translateVimPattern(pattern string) string {
	if len(pattern) > maxPatternLength {
		return regexp.QuoteMeta(pattern)
	}

	veryMagic := strings.HasPrefix(pattern, `\v`)
	if veryMagic {
		pattern = pattern[2:]
	}

	var out strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if veryMagic {
			// All meta-characters are already active; only \c/\C are
			// dropped, everything else passes through unchanged.
			if c == '\\' && i+1 < len(runes) {
				nxt := runes[i+1]
				switch nxt {
				case 'c', 'C':
					i++
					continue
				default:
					out.WriteRune(c)
					out.WriteRune(nxt)
					i++
					continue
				}
			}
			out.WriteRune(c)
			continue
		}

		if c == '\\' && i+1 < len(runes) {
			nxt := runes[i+1]
			switch nxt {
			case '(':
				out.WriteString("(")
				i++
			case ')':
				out.WriteString(")")
				i++
			case '+':
				out.WriteString("+")
				i++
			case '?':
				out.WriteString("?")
				i++
			case '|':
				out.WriteString("|")
				i++
			case '{':
				// \{-}  -> *?   \{-1,} -> +?   otherwise pass through as {...}
				end := strings.IndexByte(string(runes[i+2:]), '\\')
				body := ""
				consumed := 0
				for j := i + 2; j < len(runes); j++ {
					if runes[j] == '\\' && j+1 < len(runes) && runes[j+1] == '}' {
						consumed = j - (i + 2) + 2
						break
					}
					body += string(runes[j])
				}
				_ = end
				if body == "-" {
					out.WriteString("*?")
				} else if body == "-1," {
					out.WriteString("+?")
				} else {
					out.WriteString("{" + body + "}")
				}
				i = i + 1 + consumed
			case 'c', 'C':
				i++ // case flags handled by computeCaseInsensitive
			case 'n':
				out.WriteString(`\n`)
				i++
			case '.':
				out.WriteString(`\.`)
				i++
			default:
				out.WriteRune('\\')
				out.WriteRune(nxt)
				i++
			}
			continue
		}

		switch c {
		case '(', ')', '+', '?', '|', '{', '}':
			out.WriteString(regexp.QuoteMeta(string(c)))
		case '[':
			// pass bracket expressions through verbatim (with ]^ normalization below)
			j := i + 1
			neg := false
			if j < len(runes) && runes[j] == '^' {
				neg = true
				j++
			}
			cls := "["
			if neg {
				cls += "^"
			}
			for j < len(runes) && runes[j] != ']' {
				cls += string(runes[j])
				j++
			}
			cls += "]"
			if neg && strings.HasPrefix(cls, "[^]") {
				cls = "[^\\]" + cls[3:]
			}
			out.WriteString(cls)
			i = j
		default:
			out.WriteRune(c)
		}
	}

	translated := out.String()
	// Mirror Vim's backtracking for ".*" before a capture group: make every
	// such ".*" non-greedy so the first viable match wins, as Vim's engine does.
	translated = rewriteGreedyBeforeCapture(translated)
	return translated
}

func rewriteGreedyBeforeCapture(s string) string {
	return strings.ReplaceAll(s, ".*(", ".*?(")
}

// computeCaseInsensitive resolves ignorecase/smartcase/\c/\C.
func computeCaseInsensitive(pattern string, ignoreCase, smartCase bool) bool {
	if strings.Contains(pattern, `\C`) {
		return false
	}
	if strings.Contains(pattern, `\c`) {
		return true
	}
	if !ignoreCase {
		return false
	}
	if smartCase {
		for _, r := range pattern {
			if r >= 'A' && r <= 'Z' {
				return false
			}
		}
	}
	return true
}

// CompileVimPattern translates and compiles a Vim pattern, falling back to
// a fully-escaped literal match and finally returning an error only if even
// the literal fails to compile.
func CompileVimPattern(pattern string, ignoreCase, smartCase bool) (*regexp.Regexp, error) {
	src := translateVimPattern(pattern)
	ci := computeCaseInsensitive(pattern, ignoreCase, smartCase)
	if ci {
		src = "(?i)" + src
	}
	re, err := regexp.Compile(src)
	if err == nil {
		return re, nil
	}

	literal := regexp.QuoteMeta(pattern)
	if ci {
		literal = "(?i)" + literal
	}
	re, err = regexp.Compile(literal)
	if err != nil {
		return nil, err
	}
	return re, nil
}

// vimMatch is one match produced by findVimMatches: groups[0] is the whole
// match text, groups[n] is capture group n (empty if that group didn't
// participate).
type vimMatch struct {
	start, end int
	groups     []string
}

// compileVimMatcher resolves a Vim pattern to a translated regex source
// usable with findVimMatches, falling back to an escaped literal if the
// translation doesn't compile (mirroring CompileVimPattern's fallback).
// Unlike CompileVimPattern this path also tolerates in-pattern
// backreferences (\1..\9 referring to an earlier group in the same
// pattern), which RE2 can't compile directly.
func compileVimMatcher(pattern string, ignoreCase, smartCase bool) (translated string, ci bool, err error) {
	translated = translateVimPattern(pattern)
	ci = computeCaseInsensitive(pattern, ignoreCase, smartCase)
	if _, verr := findVimMatches(translated, ci, ""); verr != nil {
		literal := regexp.QuoteMeta(pattern)
		if _, verr2 := findVimMatches(literal, ci, ""); verr2 != nil {
			return "", false, verr2
		}
		return literal, ci, nil
	}
	return translated, ci, nil
}

// splitOnBackreferences splits a translated pattern at each literal \N
// backreference token (N in 1..9), returning the segments between them and
// the referenced group number at each split point. A backreference can only
// point at an already-closed earlier group, so each segment up to and
// including that group is independently compilable.
func splitOnBackreferences(translated string) (segments []string, refs []int) {
	runes := []rune(translated)
	var cur strings.Builder
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) && runes[i+1] >= '1' && runes[i+1] <= '9' {
			segments = append(segments, cur.String())
			cur.Reset()
			refs = append(refs, int(runes[i+1]-'0'))
			i++
			continue
		}
		if runes[i] == '\\' && i+1 < len(runes) {
			cur.WriteRune(runes[i])
			cur.WriteRune(runes[i+1])
			i++
			continue
		}
		cur.WriteRune(runes[i])
	}
	segments = append(segments, cur.String())
	return segments, refs
}

// findVimMatches finds all non-overlapping matches of a translated pattern
// in text, in left-to-right order. Patterns without in-pattern
// backreferences take the normal RE2 path; patterns with one or more \N
// backreferences fall back to a segment-by-segment anchored matcher, since
// RE2 cannot backtrack to verify them natively.
func findVimMatches(translated string, ci bool, text string) ([]vimMatch, error) {
	segments, refs := splitOnBackreferences(translated)
	if len(refs) == 0 {
		src := translated
		if ci {
			src = "(?i)" + src
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, err
		}
		locs := re.FindAllStringSubmatchIndex(text, -1)
		matches := make([]vimMatch, 0, len(locs))
		for _, loc := range locs {
			groups := make([]string, len(loc)/2)
			for i := range groups {
				gs, ge := loc[2*i], loc[2*i+1]
				if gs >= 0 && ge >= 0 {
					groups[i] = text[gs:ge]
				}
			}
			matches = append(matches, vimMatch{start: loc[0], end: loc[1], groups: groups})
		}
		return matches, nil
	}

	compiled := make([]*regexp.Regexp, len(segments))
	groupCounts := make([]int, len(segments))
	for i, seg := range segments {
		src := seg
		if ci {
			src = "(?i)" + src
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, err
		}
		compiled[i] = re
		groupCounts[i] = re.NumSubexp()
	}

	// Re-anchoring a leading "^" at each candidate offset (below) would
	// otherwise make it match vacuously at every byte position instead of
	// only real line starts, so restrict candidates to line starts when
	// the pattern is anchored.
	var positions []int
	if strings.HasPrefix(segments[0], "^") {
		positions = append(positions, 0)
		for i := 0; i < len(text); i++ {
			if text[i] == '\n' {
				positions = append(positions, i+1)
			}
		}
	} else {
		positions = make([]int, len(text)+1)
		for i := range positions {
			positions[i] = i
		}
	}

	var matches []vimMatch
	idx := 0
	for idx < len(positions) {
		pos := positions[idx]
		end, groups, ok := matchSegmentsAt(compiled, groupCounts, refs, text, pos)
		if !ok {
			idx++
			continue
		}
		matches = append(matches, vimMatch{start: pos, end: end, groups: groups})
		advanceTo := end
		if end == pos {
			advanceTo = pos + 1
		}
		for idx < len(positions) && positions[idx] < advanceTo {
			idx++
		}
	}
	return matches, nil
}

// matchSegmentsAt tries to match compiled[0], then the text literally
// captured by the group refs[0] points at, then compiled[1], and so on,
// all anchored back-to-back starting at pos. It returns the offset just
// past the full match and the flattened group captures across all segments.
func matchSegmentsAt(compiled []*regexp.Regexp, groupCounts []int, refs []int, text string, pos int) (int, []string, bool) {
	total := 0
	for _, n := range groupCounts {
		total += n
	}
	allGroups := make([]string, total+1)

	cur := pos
	offset := 0
	for i, re := range compiled {
		loc := re.FindStringSubmatchIndex(text[cur:])
		if loc == nil || loc[0] != 0 {
			return 0, nil, false
		}
		for g := 1; g <= groupCounts[i]; g++ {
			gs, ge := loc[2*g], loc[2*g+1]
			if gs >= 0 && ge >= 0 {
				allGroups[offset+g] = text[cur+gs : cur+ge]
			}
		}
		cur += loc[1]
		offset += groupCounts[i]

		if i < len(refs) {
			refText := ""
			if n := refs[i]; n >= 0 && n < len(allGroups) {
				refText = allGroups[n]
			}
			if !strings.HasPrefix(text[cur:], refText) {
				return 0, nil, false
			}
			cur += len(refText)
		}
	}
	allGroups[0] = text[pos:cur]
	return cur, allGroups, true
}
