package vim

import (
	"sort"
	"strconv"
	"strings"
)

// exRange is a resolved, 0-indexed, inclusive line range.
type exRange struct {
	start, end int
	has        bool
}

// ExecuteExCommand runs one Ex command line (without its leading ":"). The
// line is one command: "|" does not separate commands here, it only joins
// the stages of a "!" filter. Unknown commands are no-ops per the error
// taxonomy.
func (s *EditorState) ExecuteExCommand(cmdline string) error {
	rng, rest := s.parseExRange(cmdline)
	rest = strings.TrimLeft(rest, " ")

	switch {
	case rest == "":
		if rng.has {
			s.Cursor = Position{clampInt(rng.end, 0, len(s.Lines)-1), 0}
			s.Cursor.Col = firstNonBlankCol(s.curLine())
		}
		return nil
	case matchExCmd(rest, "delete", "d"):
		return s.exDelete(rng, rest)
	case strings.HasPrefix(rest, "s") && (len(rest) == 1 || !isAlphaByte(rest[1])):
		return s.exSubstitute(rng, rest)
	case strings.HasPrefix(rest, "g!") || matchExCmdPrefix(rest, "global!"):
		return s.exGlobal(rng, rest, true)
	case matchExCmdPrefix(rest, "global") || strings.HasPrefix(rest, "g/") || strings.HasPrefix(rest, "g"):
		return s.exGlobal(rng, rest, false)
	case strings.HasPrefix(rest, "v/") || matchExCmdPrefix(rest, "vglobal"):
		return s.exGlobal(rng, rest, true)
	case matchExCmdPrefix(rest, "move") || strings.HasPrefix(rest, "m"):
		return s.exMoveOrCopy(rng, rest, true)
	case matchExCmdPrefix(rest, "copy") || strings.HasPrefix(rest, "t") || strings.HasPrefix(rest, "co"):
		return s.exMoveOrCopy(rng, rest, false)
	case matchExCmdPrefix(rest, "sort"):
		return s.exSort(rng, rest)
	case matchExCmdPrefix(rest, "normal"):
		return s.exNormal(rng, rest)
	case matchExCmdPrefix(rest, "put"):
		return s.exPut(rng, rest)
	case strings.HasPrefix(rest, "r ") || matchExCmdPrefix(rest, "read"):
		return s.exRead(rng, rest)
	case strings.HasPrefix(rest, "!"):
		return s.exFilter(rng, rest[1:])
	case matchExCmdPrefix(rest, "earlier"):
		return s.exEarlier(rest)
	case matchExCmdPrefix(rest, "later"):
		return s.exLater(rest)
	}
	return nil // unknown command: no-op
}

func isAlphaByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// matchExCmd reports whether rest begins with any of the full or
// abbreviated spellings, followed by end-of-string or a non-letter.
func matchExCmd(rest string, full string, abbrevs ...string) bool {
	if matchExCmdPrefix(rest, full) {
		return true
	}
	for _, a := range abbrevs {
		if rest == a || (strings.HasPrefix(rest, a) && (len(rest) == len(a) || !isAlphaByte(rest[len(a)]))) {
			return true
		}
	}
	return false
}

func matchExCmdPrefix(rest, full string) bool {
	if !strings.HasPrefix(rest, full) {
		return false
	}
	if len(rest) == len(full) {
		return true
	}
	return !isAlphaByte(rest[len(full)])
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// parseExRange parses the leading [range] portion of an Ex command line,
// returning the resolved range and the remaining command text.
func (s *EditorState) parseExRange(cmdline string) (exRange, string) {
	if strings.HasPrefix(cmdline, "%") {
		return exRange{0, len(s.Lines) - 1, true}, cmdline[1:]
	}
	line1, rest, ok1 := s.parseExAddress(cmdline)
	if !ok1 {
		return exRange{}, cmdline
	}
	rest = strings.TrimLeft(rest, " ")
	if strings.HasPrefix(rest, ",") {
		line2, rest2, ok2 := s.parseExAddress(rest[1:])
		if !ok2 {
			line2 = s.Cursor.Line
			rest2 = rest[1:]
		}
		start, end := line1, line2
		if start > end {
			start, end = end, start
		}
		return exRange{clampInt(start, 0, len(s.Lines)-1), clampInt(end, 0, len(s.Lines)-1), true}, rest2
	}
	return exRange{clampInt(line1, 0, len(s.Lines)-1), clampInt(line1, 0, len(s.Lines)-1), true}, rest
}

// parseExAddress parses a single address (., $, number, '<mark>, +N, -N)
// from the front of src, returning the 0-indexed line and what's left.
func (s *EditorState) parseExAddress(src string) (int, string, bool) {
	if src == "" {
		return 0, src, false
	}
	i := 0
	base := -1
	switch {
	case src[0] == '.':
		base = s.Cursor.Line
		i = 1
	case src[0] == '$':
		base = len(s.Lines) - 1
		i = 1
	case src[0] == '\'':
		if len(src) < 2 {
			return 0, src, false
		}
		switch src[1] {
		case '<':
			base = s.LastVisualStart.Line
		case '>':
			base = s.LastVisualEnd.Line
		default:
			if pos, ok := s.Marks[rune(src[1])]; ok {
				base = pos.Line
			} else {
				return 0, src, false
			}
		}
		i = 2
	case src[0] >= '0' && src[0] <= '9':
		j := 0
		for j < len(src) && src[j] >= '0' && src[j] <= '9' {
			j++
		}
		n, _ := strconv.Atoi(src[:j])
		base = n - 1
		i = j
	case src[0] == '+' || src[0] == '-':
		base = s.Cursor.Line
	default:
		return 0, src, false
	}

	for i < len(src) && (src[i] == '+' || src[i] == '-') {
		sign := 1
		if src[i] == '-' {
			sign = -1
		}
		i++
		j := i
		for j < len(src) && src[j] >= '0' && src[j] <= '9' {
			j++
		}
		n := 1
		if j > i {
			n, _ = strconv.Atoi(src[i:j])
		}
		base += sign * n
		i = j
	}
	return base, src[i:], true
}

func (s *EditorState) exDelete(rng exRange, rest string) error {
	r := rng
	if !r.has {
		r = exRange{s.Cursor.Line, s.Cursor.Line, true}
	}
	s.pushUndo()
	text := strings.Join(s.Lines[r.start:r.end+1], "\n") + "\n"
	s.Registers.WriteDelete(s.ActiveRegister, text, true, r.end > r.start)
	s.Lines = append(s.Lines[:r.start], s.Lines[r.end+1:]...)
	if len(s.Lines) == 0 {
		s.Lines = []string{""}
	}
	s.Cursor = Position{clampInt(r.start, 0, len(s.Lines)-1), 0}
	s.Cursor.Col = firstNonBlankCol(s.curLine())
	s.clampCursor()
	return nil
}

// exSubstitute implements :{range}s/pat/rep/flags.
func (s *EditorState) exSubstitute(rng exRange, rest string) error {
	rest = rest[1:] // drop leading 's'
	if rest == "" {
		return nil
	}
	delim := rest[0]
	parts := splitExDelim(rest[1:], delim)
	if len(parts) < 2 {
		return nil
	}
	pattern, repl := parts[0], parts[1]
	flags := ""
	if len(parts) >= 3 {
		flags = parts[2]
	}
	if pattern == "" {
		pattern = s.Search.Pattern
	}

	ignoreCase := s.Options.IgnoreCase
	if strings.Contains(flags, "i") {
		ignoreCase = true
	}
	if strings.Contains(flags, "I") {
		ignoreCase = false
	}
	translated, ci, err := compileVimMatcher(pattern, ignoreCase, s.Options.SmartCase)
	if err != nil {
		return nil // skip silently
	}
	global := strings.Contains(flags, "g")

	r := rng
	if !r.has {
		r = exRange{s.Cursor.Line, s.Cursor.Line, true}
	}

	s.pushUndo()
	s.Search.Pattern = pattern
	s.Registers.SetSearch(pattern)

	// A pattern that matches across a line break only makes sense run
	// against the whole buffer at once, joined on "\n" (e.g. \v(.*)\n\1
	// for deduplicating adjacent lines).
	if patternSpansLines(pattern) && r.start == 0 && r.end == len(s.Lines)-1 {
		return s.substituteMultiline(r, translated, ci, repl, global)
	}

	var newLines []string
	for l := r.start; l <= r.end && l < len(s.Lines); l++ {
		replaced := s.substituteLine(s.Lines[l], translated, ci, repl, global, l)
		newLines = append(newLines, strings.Split(replaced, "\n")...)
	}
	tail := s.Lines[r.end+1:]
	head := s.Lines[:r.start]
	combined := append(append(append([]string{}, head...), newLines...), tail...)
	s.Lines = combined
	s.Cursor.Line = clampInt(r.start, 0, len(s.Lines)-1)
	s.Cursor.Col = 0
	s.clampCursor()
	return nil
}

// substituteMultiline runs a line-spanning pattern against the range's
// lines joined by "\n", rewrites matches, and re-splits the result back into
// s.Lines. Used for patterns like \v(.*)\n\1 that can only match across a
// line boundary, which a line-by-line pass could never satisfy (no single
// entry of s.Lines ever contains an embedded newline).
//
// With the g flag, a self-referential pattern is reapplied to its own
// output until it stops changing, so a run of three or more consecutive
// duplicate lines collapses all the way down instead of leaving one
// left-over pair behind (a single non-overlapping pass only ever merges
// adjacent matches two at a time).
func (s *EditorState) substituteMultiline(r exRange, translated string, ci bool, repl string, global bool) error {
	joined := strings.Join(s.Lines[r.start:r.end+1], "\n")
	changed := false

	for pass := 0; pass <= len(s.Lines); pass++ {
		matches, err := findVimMatches(translated, ci, joined)
		if err != nil || len(matches) == 0 {
			break
		}
		if !global {
			matches = matches[:1]
		}

		var out strings.Builder
		last := 0
		for _, m := range matches {
			out.WriteString(joined[last:m.start])
			lnum := r.start + strings.Count(joined[:m.start], "\n")
			out.WriteString(expandReplacement(repl, m.groups, s, lnum))
			last = m.end
		}
		out.WriteString(joined[last:])

		next := out.String()
		if next == joined {
			break
		}
		joined = next
		changed = true
		if !global {
			break
		}
	}

	if !changed {
		return nil
	}
	newLines := strings.Split(joined, "\n")
	tail := s.Lines[r.end+1:]
	head := s.Lines[:r.start]
	s.Lines = append(append(append([]string{}, head...), newLines...), tail...)
	s.Cursor.Line = clampInt(r.start, 0, len(s.Lines)-1)
	s.Cursor.Col = 0
	s.clampCursor()
	return nil
}

// substituteLine runs a translated pattern against line, replacing each
// match (or only the first, unless global) with repl expanded per Vim's
// replacement syntax: &, \0..\9 backreferences, \r/\n newline splits, \t,
// the \u\l\U\L\E case operators, and a \=expr tail evaluated with
// submatch() bound.
func (s *EditorState) substituteLine(line string, translated string, ci bool, repl string, global bool, lineIdx int) string {
	matches, err := findVimMatches(translated, ci, line)
	if err != nil || len(matches) == 0 {
		return line
	}
	if !global {
		matches = matches[:1]
	}

	var out strings.Builder
	last := 0
	for _, m := range matches {
		out.WriteString(line[last:m.start])
		out.WriteString(expandReplacement(repl, m.groups, s, lineIdx))
		last = m.end
	}
	out.WriteString(line[last:])
	return out.String()
}

// patternSpansLines reports whether pattern contains a literal newline
// escape, meaning it can only match across a line boundary.
func patternSpansLines(pattern string) bool {
	return strings.Contains(pattern, `\n`)
}

func splitExDelim(s string, delim byte) []string {
	var parts []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == delim {
			cur.WriteByte(delim)
			i++
			continue
		}
		if s[i] == delim {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(s[i])
	}
	parts = append(parts, cur.String())
	return parts
}

// expandReplacement expands one Vim substitution replacement string against
// a set of submatch groups (groups[0] is the whole match). A trailing
// "\=expr" form is evaluated instead, with submatch() bound to groups.
func expandReplacement(repl string, groups []string, s *EditorState, lineIdx int) string {
	if strings.HasPrefix(repl, `\=`) {
		ctx := s.exprContext()
		ctx.Lnum = lineIdx + 1
		ctx.Submatches = groups
		return EvalExpr(repl[2:], ctx)
	}

	var out strings.Builder
	caseOne := byte(0) // 'u' or 'l': applies to the next character only
	caseRun := byte(0) // 'U' or 'L': applies until \e/\E

	emit := func(str string) {
		for _, r := range str {
			ch := string(r)
			switch {
			case caseOne == 'u':
				ch = strings.ToUpper(ch)
				caseOne = 0
			case caseOne == 'l':
				ch = strings.ToLower(ch)
				caseOne = 0
			case caseRun == 'U':
				ch = strings.ToUpper(ch)
			case caseRun == 'L':
				ch = strings.ToLower(ch)
			}
			out.WriteString(ch)
		}
	}

	runes := []rune(repl)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '&' {
			emit(groups[0])
			continue
		}
		if c != '\\' || i+1 >= len(runes) {
			emit(string(c))
			continue
		}
		nxt := runes[i+1]
		i++
		switch {
		case nxt >= '0' && nxt <= '9':
			idx := int(nxt - '0')
			if idx < len(groups) {
				emit(groups[idx])
			}
		case nxt == 'r' || nxt == 'n':
			out.WriteString("\n")
		case nxt == 't':
			out.WriteString("\t")
		case nxt == 'u':
			caseOne = 'u'
		case nxt == 'l':
			caseOne = 'l'
		case nxt == 'U':
			caseRun = 'U'
		case nxt == 'L':
			caseRun = 'L'
		case nxt == 'e' || nxt == 'E':
			caseRun = 0
		case nxt == '\\':
			emit(`\`)
		case nxt == '&':
			emit("&")
		default:
			emit(string(nxt))
		}
	}
	return out.String()
}

func (s *EditorState) exGlobal(rng exRange, rest string, invert bool) error {
	body := rest
	if strings.HasPrefix(body, "g!") {
		body = body[2:]
		invert = true
	} else if strings.HasPrefix(body, "global!") {
		body = body[7:]
		invert = true
	} else if matchExCmdPrefix(body, "vglobal") {
		body = body[7:]
		invert = true
	} else if matchExCmdPrefix(body, "global") {
		body = body[6:]
	} else if strings.HasPrefix(body, "v") {
		body = body[1:]
		invert = true
	} else if strings.HasPrefix(body, "g") {
		body = body[1:]
	}
	if body == "" {
		return nil
	}
	delim := body[0]
	parts := splitExDelim(body[1:], delim)
	pattern := parts[0]
	cmd := ""
	if len(parts) > 1 {
		cmd = parts[1]
	}
	re, err := CompileVimPattern(pattern, s.Options.IgnoreCase, s.Options.SmartCase)
	if err != nil {
		return nil
	}

	r := rng
	if !r.has {
		r = exRange{0, len(s.Lines) - 1, true}
	}

	var matched []int
	for l := r.start; l <= r.end && l < len(s.Lines); l++ {
		hit := re.MatchString(s.Lines[l])
		if hit != invert {
			matched = append(matched, l)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	switch {
	case cmd == "d":
		s.pushUndo()
		sort.Sort(sort.Reverse(sort.IntSlice(matched)))
		var removed []string
		for _, l := range matched {
			removed = append([]string{s.Lines[l]}, removed...)
			s.Lines = append(s.Lines[:l], s.Lines[l+1:]...)
		}
		if len(s.Lines) == 0 {
			s.Lines = []string{""}
		}
		s.Registers.WriteDelete(s.ActiveRegister, strings.Join(removed, "\n")+"\n", true, len(removed) > 1)
	case strings.HasPrefix(cmd, "m0") || strings.HasPrefix(cmd, "move0"):
		s.pushUndo()
		var moved []string
		sort.Sort(sort.Reverse(sort.IntSlice(matched)))
		for _, l := range matched {
			moved = append(moved, s.Lines[l])
			s.Lines = append(s.Lines[:l], s.Lines[l+1:]...)
		}
		s.Lines = append(moved, s.Lines...)
	default:
		return nil // bare :g/pat/ (print) has no headless effect
	}
	s.clampCursor()
	return nil
}

func (s *EditorState) exMoveOrCopy(rng exRange, rest string, move bool) error {
	var body string
	switch {
	case matchExCmdPrefix(rest, "move"):
		body = rest[4:]
	case matchExCmdPrefix(rest, "copy"):
		body = rest[4:]
		move = false
	case strings.HasPrefix(rest, "co"):
		body = rest[2:]
		move = false
	case strings.HasPrefix(rest, "t"):
		body = rest[1:]
		move = false
	case strings.HasPrefix(rest, "m"):
		body = rest[1:]
	}
	body = strings.TrimSpace(body)
	target, _, ok := s.parseExAddress(body)
	if !ok {
		if body == "0" {
			target = -1
		} else {
			return nil
		}
	}

	r := rng
	if !r.has {
		r = exRange{s.Cursor.Line, s.Cursor.Line, true}
	}

	s.pushUndo()
	block := append([]string{}, s.Lines[r.start:r.end+1]...)

	if move {
		s.Lines = append(s.Lines[:r.start], s.Lines[r.end+1:]...)
		if target > r.end {
			target -= len(block)
		}
	}
	insertAt := target + 1
	insertAt = clampInt(insertAt, 0, len(s.Lines))
	newLines := make([]string, 0, len(s.Lines)+len(block))
	newLines = append(newLines, s.Lines[:insertAt]...)
	newLines = append(newLines, block...)
	newLines = append(newLines, s.Lines[insertAt:]...)
	s.Lines = newLines
	s.Cursor = Position{insertAt + len(block) - 1, 0}
	s.clampCursor()
	return nil
}

func (s *EditorState) exSort(rng exRange, rest string) error {
	body := rest[4:]
	reverse := strings.Contains(body, "!")
	dedup := strings.Contains(body, "u")

	r := rng
	if !r.has {
		r = exRange{0, len(s.Lines) - 1, true}
	}

	s.pushUndo()
	block := append([]string{}, s.Lines[r.start:r.end+1]...)
	sort.Strings(block)
	if reverse {
		for i, j := 0, len(block)-1; i < j; i, j = i+1, j-1 {
			block[i], block[j] = block[j], block[i]
		}
	}
	if dedup {
		var deduped []string
		for i, l := range block {
			if i == 0 || l != block[i-1] {
				deduped = append(deduped, l)
			}
		}
		block = deduped
	}
	newLines := make([]string, 0, len(s.Lines))
	newLines = append(newLines, s.Lines[:r.start]...)
	newLines = append(newLines, block...)
	newLines = append(newLines, s.Lines[r.end+1:]...)
	s.Lines = newLines
	s.clampCursor()
	return nil
}

func (s *EditorState) exNormal(rng exRange, rest string) error {
	body := rest
	body = strings.TrimPrefix(body, "normal!")
	if body == rest {
		body = strings.TrimPrefix(body, "normal")
	}
	body = strings.TrimPrefix(body, " ")

	r := rng
	if !r.has {
		r = exRange{s.Cursor.Line, s.Cursor.Line, true}
	}

	keys := expandCtrlRExpr(body, s)
	for l := r.start; l <= r.end && l < len(s.Lines); l++ {
		s.Cursor = Position{l, 0}
		s.awaiting = ""
		s.PendingOperator = nil
		s.CountBuffer = ""
		for _, tok := range Tokenize(keys) {
			_ = s.Step(tok)
			if s.Mode == ModeInsert || s.Mode == ModeReplace {
				_ = s.Step("<Esc>")
			}
		}
	}
	return nil
}

// expandCtrlRExpr replaces <C-R>={expr}<CR> segments in an Ex :normal
// argument with the evaluated expression's text, evaluated against the
// current line at time of expansion.
func expandCtrlRExpr(body string, s *EditorState) string {
	const marker = "<C-R>="
	idx := strings.Index(body, marker)
	if idx < 0 {
		return body
	}
	rest := body[idx+len(marker):]
	end := strings.Index(rest, "<CR>")
	if end < 0 {
		return body
	}
	expr := rest[:end]
	val := EvalExpr(expr, s.exprContext())
	return body[:idx] + val + rest[end+4:]
}

func (s *EditorState) exPut(rng exRange, rest string) error {
	body := rest[3:]
	before := strings.HasPrefix(body, "!")
	body = strings.TrimPrefix(body, "!")
	body = strings.TrimSpace(body)

	var text string
	if strings.HasPrefix(body, "=") {
		text = EvalExpr(body[1:], s.exprContext())
	} else {
		text = s.Registers.Read(s.ActiveRegister, nil).Text
		text = strings.TrimSuffix(text, "\n")
	}

	r := rng
	target := s.Cursor.Line
	if r.has {
		target = r.end
	}
	lines := strings.Split(text, "\n")
	insertAt := target + 1
	if before {
		insertAt = target
	}
	insertAt = clampInt(insertAt, 0, len(s.Lines))

	s.pushUndo()
	newLines := make([]string, 0, len(s.Lines)+len(lines))
	newLines = append(newLines, s.Lines[:insertAt]...)
	newLines = append(newLines, lines...)
	newLines = append(newLines, s.Lines[insertAt:]...)
	s.Lines = newLines
	s.Cursor = Position{insertAt, 0}
	s.clampCursor()
	return nil
}

func (s *EditorState) exRead(rng exRange, rest string) error {
	body := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(rest, "read"), "r"))
	if !strings.HasPrefix(body, "!") {
		return nil
	}
	cmd := strings.TrimSpace(body[1:])
	out, ok := runBuiltinFilter(cmd, "")
	if !ok {
		if s.Runner == nil {
			return nil // shell-runner absent, abort only this command
		}
		var err error
		out, err = s.Runner.Run(cmd, "")
		if err != nil {
			return nil
		}
	}

	r := rng
	target := s.Cursor.Line
	if r.has {
		target = r.end
	}
	s.pushUndo()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	insertAt := clampInt(target+1, 0, len(s.Lines))
	newLines := make([]string, 0, len(s.Lines)+len(lines))
	newLines = append(newLines, s.Lines[:insertAt]...)
	newLines = append(newLines, lines...)
	newLines = append(newLines, s.Lines[insertAt:]...)
	s.Lines = newLines
	s.clampCursor()
	return nil
}

func (s *EditorState) exFilter(rng exRange, cmd string) error {
	r := rng
	if !r.has {
		r = exRange{s.Cursor.Line, s.Cursor.Line, true}
	}
	stdin := strings.Join(s.Lines[r.start:r.end+1], "\n")
	out, ok := runBuiltinFilterChain(cmd, stdin)
	if !ok {
		if s.Runner == nil {
			return nil
		}
		var err error
		out, err = s.Runner.Run(cmd, stdin)
		if err != nil {
			return nil
		}
	}

	s.pushUndo()
	replacement := strings.Split(out, "\n")
	newLines := make([]string, 0, len(s.Lines))
	newLines = append(newLines, s.Lines[:r.start]...)
	newLines = append(newLines, replacement...)
	newLines = append(newLines, s.Lines[r.end+1:]...)
	s.Lines = newLines
	s.Cursor.Line = clampInt(r.start, 0, len(s.Lines)-1)
	s.clampCursor()
	return nil
}

// runBuiltinFilterChain splits cmd on "|" and runs each stage through
// runBuiltinFilter, failing (ok=false) as soon as a stage isn't built in.
func runBuiltinFilterChain(cmd, stdin string) (string, bool) {
	stages := strings.Split(cmd, "|")
	cur := stdin
	for _, stage := range stages {
		out, ok := runBuiltinFilter(strings.TrimSpace(stage), cur)
		if !ok {
			return "", false
		}
		cur = out
	}
	return cur, true
}

func runBuiltinFilter(cmd, stdin string) (string, bool) {
	switch {
	case cmd == "tac":
		lines := strings.Split(stdin, "\n")
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
		return strings.Join(lines, "\n"), true
	case cmd == `tr '\012' ,`:
		joined := strings.ReplaceAll(stdin, "\n", ",")
		return joined, true
	case strings.Contains(cmd, "Pi()"):
		return piDigits, true
	}
	return "", false
}

func (s *EditorState) exEarlier(rest string) error {
	n := parseUnitCount(rest[len("earlier"):])
	s.undoCount(n)
	return nil
}

func (s *EditorState) exLater(rest string) error {
	n := parseUnitCount(rest[len("later"):])
	s.redoCount(n)
	return nil
}

// parseUnitCount reads "{n}[smhd]" (time units collapse to one undo step
// per unit, a deliberate approximation) or a bare count.
func parseUnitCount(arg string) int {
	arg = strings.TrimSpace(arg)
	i := 0
	for i < len(arg) && arg[i] >= '0' && arg[i] <= '9' {
		i++
	}
	if i == 0 {
		return 1
	}
	n, _ := strconv.Atoi(arg[:i])
	if n <= 0 {
		return 1
	}
	return n
}
