package vim

import "strconv"

// Step advances the editor by exactly one token (as produced by Tokenize).
// It is the single entry point external drivers use to replay a keystroke
// stream one token at a time.
func (s *EditorState) Step(rawToken string) error {
	s.tokenBudget--
	if s.tokenBudget < 0 {
		return errTokenBudgetExceeded
	}
	tok := NormalizeMnemonic(rawToken)

	if s.RecordingMacro != "" && !(s.Mode == ModeNormal && s.awaiting == "" && tok == "q") {
		s.MacroBuffer = append(s.MacroBuffer, tok)
	}

	if s.ctrlOArmed {
		err := s.normalStep(tok)
		if s.awaiting == "" && s.PendingOperator == nil {
			s.ctrlOArmed = false
		}
		return err
	}

	switch {
	case s.Mode == ModeInsert || s.Mode == ModeReplace:
		return s.insertStep(tok)
	case s.Mode.IsVisual():
		return s.visualStep(tok)
	case s.Mode == ModeCommandLine:
		return s.cmdlineStep(tok)
	default:
		return s.normalStep(tok)
	}
}

type stepError string

func (e stepError) Error() string { return string(e) }

const (
	errTokenBudgetExceeded = stepError("token budget exceeded")
	errReplayTooDeep       = stepError("replay recursion too deep")
)

// takeCount consumes the accumulated count buffer, returning 1 if empty.
func (s *EditorState) takeCount() int {
	n := parseCountBuf(s.CountBuffer)
	s.CountBuffer = ""
	return n
}

func parseCountBuf(buf string) int {
	if buf == "" {
		return 1
	}
	n, err := strconv.Atoi(buf)
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// finishCommand clears per-command transient state and, when the command
// mutated the buffer, records its tokens for dot-repeat.
func (s *EditorState) finishCommand(mutating bool) {
	if mutating {
		s.LastChange = LastChange{Keys: append([]string(nil), s.pendingTokens...), IsChange: true}
	}
	s.pendingTokens = nil
	s.CountBuffer = ""
	s.ActiveRegister = ""
	s.PendingOperator = nil
	s.awaiting = ""
}

func isDigitTok(tok string) bool {
	return len(tok) == 1 && tok[0] >= '0' && tok[0] <= '9'
}

func (s *EditorState) normalStep(tok string) error {
	s.pendingTokens = append(s.pendingTokens, tok)

	if s.awaiting != "" {
		return s.normalAwaiting(tok)
	}

	if isDigitTok(tok) && !(tok == "0" && s.CountBuffer == "") {
		s.CountBuffer += tok
		return nil
	}

	if tok == `"` {
		s.awaiting = "register"
		return nil
	}

	if s.PendingOperator != nil {
		return s.normalWithPendingOperator(tok)
	}

	return s.normalCommand(tok)
}

func (s *EditorState) normalAwaiting(tok string) error {
	awaiting := s.awaiting
	s.awaiting = ""
	switch awaiting {
	case "register":
		s.ActiveRegister = tok
		return nil
	case "find:f", "find:F", "find:t", "find:T":
		dir := awaiting[len("find:")]
		return s.applyFindChar(dir, []rune(tok)[0])
	case "mark:set":
		if len(tok) > 0 {
			s.Marks[[]rune(tok)[0]] = s.Cursor
		}
		s.finishCommand(false)
		return nil
	case "mark:backtick":
		return s.jumpToMark(tok, false)
	case "mark:quote":
		return s.jumpToMark(tok, true)
	case "replace":
		return s.applyReplaceChar(tok)
	case "macro:record":
		s.RecordingMacro = tok
		s.MacroBuffer = nil
		s.finishCommand(false)
		return nil
	case "macro:play":
		return s.playMacro(tok)
	case "g":
		return s.normalGCommand(tok)
	case "Z":
		s.finishCommand(false) // ZZ/ZQ: no file I/O target in this emulator
		return nil
	case "textobj:i", "textobj:a":
		kind := byte('i')
		if awaiting == "textobj:a" {
			kind = 'a'
		}
		return s.applyTextObject(kind, []rune(tok)[0])
	}
	s.finishCommand(false)
	return nil
}

func (s *EditorState) applyFindChar(dir byte, ch rune) error {
	count := s.takeCount()
	res := motionFindChar(s, dir, ch, count)
	if !res.Found {
		s.PendingOperator = nil
		s.finishCommand(false)
		return nil
	}
	s.LastFindChar = FindCharState{Direction: dir, Char: ch, Set: true}
	if s.PendingOperator != nil {
		return s.completeOperatorMotion(s.PendingOperator.Token, res)
	}
	return s.completeMotion(res)
}

func (s *EditorState) jumpToMark(tok string, linewise bool) error {
	if len(tok) == 0 {
		s.finishCommand(false)
		return nil
	}
	pos, ok := s.Marks[[]rune(tok)[0]]
	if !ok {
		s.finishCommand(false)
		return nil
	}
	res := MotionResult{Pos: pos, Found: true}
	if linewise {
		res = motionFirstNonBlank(s, pos.Line)
		res.Linewise = true
	}
	if s.PendingOperator != nil {
		return s.completeOperatorMotion(s.PendingOperator.Token, res)
	}
	return s.completeMotion(res)
}

func (s *EditorState) playMacro(reg string) error {
	count := s.takeCount()
	if reg == "@" {
		reg = s.lastMacroReg
	}
	s.lastMacroReg = reg
	keys := s.Registers.Read(reg, nil).Text
	if keys == "" {
		s.finishCommand(false)
		return nil
	}
	tokens := Tokenize(keys)
	if s.replayDepth > 100 {
		return errReplayTooDeep
	}
	s.replayDepth++
	for i := 0; i < count; i++ {
		for _, t := range tokens {
			if err := s.Step(t); err != nil {
				s.replayDepth--
				return err
			}
		}
	}
	s.replayDepth--
	s.finishCommand(false)
	return nil
}

func (s *EditorState) normalGCommand(tok string) error {
	switch tok {
	case "g":
		count := s.takeCount()
		hasCount := count != 1
		return s.dispatchGMotion(motionGG(s, hasCount, count))
	case "_":
		line := s.Cursor.Line
		res := motionFirstNonBlank(s, line)
		res.Inclusive = true
		return s.dispatchGMotion(res)
	case "e":
		return s.dispatchGMotion(motionWordEndBackward2(s))
	case "E":
		return s.dispatchGMotion(motionWordEndBackwardBig2(s))
	case "U", "u", "~", "q":
		s.PendingOperator = &PendingOperator{Token: "g" + tok}
		return nil
	case "J":
		return s.joinLinesCommand(s.takeCount(), false)
	case "v":
		return s.restoreLastVisual()
	case "-":
		s.undoCount(s.takeCount())
		s.finishCommand(false)
		return nil
	case "+":
		s.redoCount(s.takeCount())
		s.finishCommand(false)
		return nil
	case "i":
		s.pushUndo()
		s.Mode = ModeInsert
		s.InsertStartPos = s.Cursor
		s.InsertRepeat = 1
		return nil
	}
	s.finishCommand(false)
	return nil
}

func (s *EditorState) dispatchGMotion(res MotionResult) error {
	if s.PendingOperator != nil {
		return s.completeOperatorMotion(s.PendingOperator.Token, res)
	}
	return s.completeMotion(res)
}

func motionWordEndBackward2(s *EditorState) MotionResult {
	return motionWordEndBackward(s, s.takeCount(), false)
}

func motionWordEndBackwardBig2(s *EditorState) MotionResult {
	return motionWordEndBackward(s, s.takeCount(), true)
}

// normalWithPendingOperator resolves the motion or text object completing a
// pending operator, including the doubled forms (dd, yy, cc, gUU, <<, >>, ==).
func (s *EditorState) normalWithPendingOperator(tok string) error {
	op := s.PendingOperator.Token
	lastChar := op[len(op)-1:]
	doubled := tok == op || tok == lastChar
	if doubled {
		count := s.takeCount()
		startLine := s.Cursor.Line
		endLine := startLine + count - 1
		if endLine >= len(s.Lines) {
			endLine = len(s.Lines) - 1
		}
		pos := applyOperator(s, op, startLine, 0, endLine, 0, true, s.ActiveRegister)
		s.Cursor = pos
		s.clampCursor()
		s.finishCommand(op != "y" && op != "=" && op != "gq")
		return nil
	}

	switch tok {
	case "i":
		s.awaiting = "textobj:i"
		return nil
	case "a":
		s.awaiting = "textobj:a"
		return nil
	case "f", "F", "t", "T":
		s.awaiting = "find:" + tok
		return nil
	case "g":
		s.awaiting = "g"
		return nil
	case "/", "?":
		s.Mode = ModeCommandLine
		s.CommandLine = &CommandLineState{Prefix: tok}
		return nil
	}

	count := s.takeCount()
	// cw/cW on a non-blank act like ce/cE: the blanks after the word stay.
	if op == "c" && (tok == "w" || tok == "W") {
		big := tok == "W"
		g := graphemesOf(s.curLine())
		if s.Cursor.Col < len(g) && classify(g[s.Cursor.Col], big) != graphemeWhitespace {
			line, col := s.Cursor.Line, s.Cursor.Col-1
			for i := 0; i < count; i++ {
				line, col = nextWordEndBig(s.Lines, line, col, big)
			}
			return s.completeOperatorMotion(op, MotionResult{Pos: Position{line, col}, Inclusive: true, Found: true})
		}
	}
	res, ok := s.resolveSimpleMotion(tok, count)
	if !ok {
		s.PendingOperator = nil
		s.finishCommand(false)
		return nil
	}
	if !res.Found {
		s.PendingOperator = nil
		s.finishCommand(false)
		return nil
	}
	return s.completeOperatorMotion(op, res)
}

func (s *EditorState) applyTextObject(kind byte, obj rune) error {
	op := ""
	if s.PendingOperator != nil {
		op = s.PendingOperator.Token
	}
	startMotion, endMotion, ok := textObjectRange(s, kind, byte(obj))
	if !ok {
		s.PendingOperator = nil
		s.finishCommand(false)
		return nil
	}
	if op == "" {
		s.Cursor = startMotion.Pos
		s.clampCursor()
		s.finishCommand(false)
		return nil
	}
	reg := s.ActiveRegister
	endCol := endMotion.Pos.Col + 1
	if endMotion.Linewise {
		endCol = 0
	}
	pos := applyOperator(s, op, startMotion.Pos.Line, startMotion.Pos.Col, endMotion.Pos.Line, endCol, endMotion.Linewise, reg)
	s.Cursor = pos
	s.clampCursor()
	s.finishCommand(op != "y" && op != "=" && op != "gq")
	return nil
}

// completeOperatorMotion applies op across [cursor, motion result), honoring
// inclusive/linewise, then clears the pending operator.
func (s *EditorState) completeOperatorMotion(op string, res MotionResult) error {
	startLine, startCol := s.Cursor.Line, s.Cursor.Col
	endLine, endCol := res.Pos.Line, res.Pos.Col
	linewise := res.Linewise

	if !linewise {
		if startLine > endLine || (startLine == endLine && startCol > endCol) {
			startLine, startCol, endLine, endCol = endLine, endCol, startLine, startCol
		}
		if res.Inclusive {
			endCol++
		}
	}
	reg := s.ActiveRegister
	pos := applyOperator(s, op, startLine, startCol, endLine, endCol, linewise, reg)
	s.Cursor = pos
	s.clampCursor()
	s.finishCommand(op != "y" && op != "=" && op != "gq")
	return nil
}

// completeMotion applies a plain (non-operator) motion: move the cursor.
func (s *EditorState) completeMotion(res MotionResult) error {
	if !res.Found {
		s.finishCommand(false)
		return nil
	}
	s.Cursor = res.Pos
	s.clampCursor()
	s.finishCommand(false)
	return nil
}

// resolveSimpleMotion dispatches the single-token motions (not f/F/t/T, not
// g-prefixed, not text objects — those are handled via s.awaiting chains).
func (s *EditorState) resolveSimpleMotion(tok string, count int) (MotionResult, bool) {
	switch tok {
	case "h", "<Left>", "<BS>":
		return motionLeft(s, count), true
	case "l", "<Right>", " ":
		return motionRight(s, count), true
	case "0":
		return motionLineStart(s), true
	case "^":
		return motionFirstNonBlank(s, s.Cursor.Line), true
	case "$":
		return motionLineEnd(s, count), true
	case "|":
		return motionGotoColumn(s, count), true
	case "j", "<Down>":
		return motionDown(s, count), true
	case "k", "<Up>":
		return motionUp(s, count), true
	case "G":
		return motionG(s, count != 1, count), true
	case "w":
		return motionWordForward(s, count, false), true
	case "W":
		return motionWordForward(s, count, true), true
	case "b":
		return motionWordBackward(s, count, false), true
	case "B":
		return motionWordBackward(s, count, true), true
	case "e":
		return motionWordEnd(s, count, false), true
	case "E":
		return motionWordEnd(s, count, true), true
	case "{":
		return motionParagraphBackward(s, count), true
	case "}":
		return motionParagraphForward(s, count), true
	case "(":
		return motionSentenceBackward(s, count), true
	case ")":
		return motionSentenceForward(s, count), true
	case "%":
		return motionMatchBracket(s), true
	case ";":
		return s.repeatFindChar(count, false), true
	case ",":
		return s.repeatFindChar(count, true), true
	}
	return MotionResult{}, false
}

func (s *EditorState) repeatFindChar(count int, reversed bool) MotionResult {
	if !s.LastFindChar.Set {
		return MotionResult{}
	}
	dir := s.LastFindChar.Direction
	if reversed {
		switch dir {
		case 'f':
			dir = 'F'
		case 'F':
			dir = 'f'
		case 't':
			dir = 'T'
		case 'T':
			dir = 't'
		}
	}
	return motionFindChar(s, dir, s.LastFindChar.Char, count)
}

func (s *EditorState) applyReplaceChar(ch string) error {
	count := s.takeCount()
	g := graphemesOf(s.curLine())
	if s.Cursor.Col+count > len(g) {
		s.finishCommand(false)
		return nil
	}
	s.pushUndo()
	for i := 0; i < count; i++ {
		g[s.Cursor.Col+i] = ch
	}
	s.Lines[s.Cursor.Line] = joinGraphemes(g)
	s.Cursor.Col += count - 1
	s.clampCursor()
	s.finishCommand(true)
	return nil
}

func joinGraphemes(g []string) string {
	out := ""
	for _, x := range g {
		out += x
	}
	return out
}

func (s *EditorState) joinLinesCommand(count int, withSpace bool) error {
	if count < 2 {
		count = 2
	}
	s.pushUndo()
	end := s.Cursor.Line + count - 1
	if end >= len(s.Lines) {
		end = len(s.Lines) - 1
	}
	for s.Cursor.Line < end {
		next := s.Lines[s.Cursor.Line+1]
		trimmed := trimLeadingBlank(next)
		joinCol := GraphemeCount(s.Lines[s.Cursor.Line])
		sep := " "
		if s.Lines[s.Cursor.Line] == "" || trimmed == "" {
			sep = ""
		}
		if !withSpace {
			trimmed, sep = next, ""
		}
		s.Lines[s.Cursor.Line] = s.Lines[s.Cursor.Line] + sep + trimmed
		s.Lines = append(s.Lines[:s.Cursor.Line+1], s.Lines[s.Cursor.Line+2:]...)
		s.Cursor.Col = joinCol
		if sep != "" {
			// cursor lands on the inserted space, matching J's documented behavior
		}
		end--
	}
	s.clampCursor()
	s.finishCommand(true)
	return nil
}

func trimLeadingBlank(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}

func (s *EditorState) restoreLastVisual() error {
	if !s.HasLastVisual {
		s.finishCommand(false)
		return nil
	}
	s.Mode = s.LastVisualMode
	s.VisualStart = s.LastVisualStart
	s.Cursor = s.LastVisualEnd
	s.clampCursor()
	return nil
}

func (s *EditorState) normalCommand(tok string) error {
	count := s.takeCountPeek()

	switch tok {
	case "h", "l", "0", "^", "$", "|", "j", "k", "G", "w", "W", "b", "B", "e", "E",
		"{", "}", "(", ")", "%", ";", ",", "<Left>", "<Right>", "<Up>", "<Down>", " ":
		s.dropCount()
		res, ok := s.resolveSimpleMotion(tok, count)
		if !ok {
			s.finishCommand(false)
			return nil
		}
		return s.completeMotion(res)
	case "f", "F", "t", "T":
		s.dropCount()
		s.CountBuffer = itoa(count)
		if count == 1 {
			s.CountBuffer = ""
		}
		s.awaiting = "find:" + tok
		return nil
	case "g":
		s.dropCount()
		s.CountBuffer = itoa(count)
		if count == 1 {
			s.CountBuffer = ""
		}
		s.awaiting = "g"
		return nil
	case "d", "c", "y", "<", ">", "=":
		s.dropCount()
		s.CountBuffer = itoa(count)
		if count == 1 {
			s.CountBuffer = ""
		}
		s.PendingOperator = &PendingOperator{Token: tok}
		return nil
	case "i":
		s.dropCount()
		s.pushUndo()
		s.Mode = ModeInsert
		s.InsertStartPos = s.Cursor
		s.InsertRepeat = count
		return nil
	case "I":
		s.dropCount()
		s.pushUndo()
		r := motionFirstNonBlank(s, s.Cursor.Line)
		s.Cursor = r.Pos
		s.Mode = ModeInsert
		s.InsertStartPos = s.Cursor
		s.InsertRepeat = count
		return nil
	case "a":
		s.dropCount()
		s.pushUndo()
		mc := s.lineGraphemes(s.Cursor.Line)
		if s.Cursor.Col < mc {
			s.Cursor.Col++
		}
		s.Mode = ModeInsert
		s.InsertStartPos = s.Cursor
		s.InsertRepeat = count
		return nil
	case "A":
		s.dropCount()
		s.pushUndo()
		s.Cursor.Col = s.lineGraphemes(s.Cursor.Line)
		s.Mode = ModeInsert
		s.InsertStartPos = s.Cursor
		s.InsertRepeat = count
		return nil
	case "o":
		s.dropCount()
		s.pushUndo()
		indent := ""
		if s.Options.AutoIndent {
			indent = leadingWhitespace(s.curLine())
		}
		s.Lines = append(s.Lines[:s.Cursor.Line+1], append([]string{indent}, s.Lines[s.Cursor.Line+1:]...)...)
		s.Cursor = Position{s.Cursor.Line + 1, GraphemeCount(indent)}
		s.Mode = ModeInsert
		s.InsertStartPos = s.Cursor
		s.InsertRepeat = count
		return nil
	case "O":
		s.dropCount()
		s.pushUndo()
		indent := ""
		if s.Options.AutoIndent {
			indent = leadingWhitespace(s.curLine())
		}
		s.Lines = append(s.Lines[:s.Cursor.Line], append([]string{indent}, s.Lines[s.Cursor.Line:]...)...)
		s.Cursor = Position{s.Cursor.Line, GraphemeCount(indent)}
		s.Mode = ModeInsert
		s.InsertStartPos = s.Cursor
		s.InsertRepeat = count
		return nil
	case "R":
		s.dropCount()
		s.pushUndo()
		s.Mode = ModeReplace
		s.InsertStartPos = s.Cursor
		s.InsertRepeat = count
		return nil
	case "v":
		s.dropCount()
		s.Mode = ModeVisual
		s.VisualStart = s.Cursor
		return nil
	case "V":
		s.dropCount()
		s.Mode = ModeVisualLine
		s.VisualStart = s.Cursor
		return nil
	case "<C-v>":
		s.dropCount()
		s.Mode = ModeVisualBlock
		s.VisualStart = s.Cursor
		return nil
	case "x":
		s.dropCount()
		n := s.lineGraphemes(s.Cursor.Line)
		end := s.Cursor.Col + count
		if end > n {
			end = n
		}
		if end <= s.Cursor.Col {
			s.finishCommand(false)
			return nil
		}
		return s.completeOperatorMotion("d", MotionResult{Pos: Position{s.Cursor.Line, end}, Found: true})
	case "X":
		s.dropCount()
		start := s.Cursor.Col - count
		if start < 0 {
			start = 0
		}
		if start == s.Cursor.Col {
			s.finishCommand(false)
			return nil
		}
		return s.completeOperatorMotion("d", MotionResult{Pos: Position{s.Cursor.Line, start}, Found: true})
	case "D":
		s.dropCount()
		return s.completeOperatorMotion("d", motionLineEnd(s, 1))
	case "C":
		s.dropCount()
		return s.completeOperatorMotion("c", motionLineEnd(s, 1))
	case "Y":
		s.dropCount()
		endLine := s.Cursor.Line + count - 1
		if endLine >= len(s.Lines) {
			endLine = len(s.Lines) - 1
		}
		return s.completeOperatorMotion("y", MotionResult{Pos: Position{endLine, 0}, Linewise: true, Found: true})
	case "s":
		s.dropCount()
		n := s.lineGraphemes(s.Cursor.Line)
		end := s.Cursor.Col + count
		if end > n {
			end = n
		}
		return s.completeOperatorMotion("c", MotionResult{Pos: Position{s.Cursor.Line, end}, Found: true})
	case "S":
		s.dropCount()
		endLine := s.Cursor.Line + count - 1
		if endLine >= len(s.Lines) {
			endLine = len(s.Lines) - 1
		}
		return s.completeOperatorMotion("c", MotionResult{Pos: Position{endLine, 0}, Linewise: true, Found: true})
	case "~":
		s.dropCount()
		return s.tildeToggle(count)
	case "p":
		s.dropCount()
		return s.pasteAfter(count)
	case "P":
		s.dropCount()
		return s.pasteBefore(count)
	case "r":
		s.dropCount()
		s.CountBuffer = itoa(count)
		if count == 1 {
			s.CountBuffer = ""
		}
		s.awaiting = "replace"
		return nil
	case "J":
		s.dropCount()
		return s.joinLinesCommand(count, true)
	case "u":
		s.dropCount()
		s.undoCount(count)
		s.finishCommand(false)
		return nil
	case "<C-r>":
		s.dropCount()
		s.redoCount(count)
		s.finishCommand(false)
		return nil
	case "U":
		s.dropCount()
		s.undoCount(1)
		s.finishCommand(false)
		return nil
	case ".":
		s.dropCount()
		return s.repeatLastChange(count)
	case "m":
		s.dropCount()
		s.awaiting = "mark:set"
		return nil
	case "`":
		s.dropCount()
		s.awaiting = "mark:backtick"
		return nil
	case "'":
		s.dropCount()
		s.awaiting = "mark:quote"
		return nil
	case "q":
		s.dropCount()
		if s.RecordingMacro != "" {
			s.Registers.writeTarget(s.RecordingMacro, Register{Text: joinTokens(s.MacroBuffer)})
			s.RecordingMacro = ""
			s.finishCommand(false)
			return nil
		}
		s.awaiting = "macro:record"
		return nil
	case "@":
		s.dropCount()
		s.awaiting = "macro:play"
		return nil
	case "n":
		s.dropCount()
		return s.repeatSearch(count, false)
	case "N":
		s.dropCount()
		return s.repeatSearch(count, true)
	case "*":
		s.dropCount()
		return s.searchWordUnderCursor(1)
	case "#":
		s.dropCount()
		return s.searchWordUnderCursor(-1)
	case "/":
		s.dropCount()
		s.Mode = ModeCommandLine
		s.CommandLine = &CommandLineState{Prefix: "/"}
		return nil
	case "?":
		s.dropCount()
		s.Mode = ModeCommandLine
		s.CommandLine = &CommandLineState{Prefix: "?"}
		return nil
	case ":":
		s.dropCount()
		s.Mode = ModeCommandLine
		s.CommandLine = &CommandLineState{Prefix: ":"}
		return nil
	case "<C-a>":
		s.dropCount()
		applyIncrementOperator(s, count)
		s.finishCommand(true)
		return nil
	case "<C-x>":
		s.dropCount()
		applyIncrementOperator(s, -count)
		s.finishCommand(true)
		return nil
	case "Z":
		s.dropCount()
		s.awaiting = "Z"
		return nil
	case "<Esc>", "<C-c>":
		s.dropCount()
		s.finishCommand(false)
		return nil
	}
	s.dropCount()
	s.finishCommand(false)
	return nil
}

// takeCountPeek resolves the current count without clearing CountBuffer
// (dropCount clears it explicitly once the command is known).
func (s *EditorState) takeCountPeek() int {
	return parseCountBuf(s.CountBuffer)
}

func (s *EditorState) dropCount() { s.CountBuffer = "" }

func (s *EditorState) repeatLastChange(count int) error {
	if len(s.LastChange.Keys) == 0 {
		s.finishCommand(false)
		return nil
	}
	if s.replayDepth > 100 {
		return errReplayTooDeep
	}
	keys := s.LastChange.Keys
	s.replayDepth++
	for i := 0; i < count; i++ {
		for _, t := range keys {
			if err := s.Step(t); err != nil {
				s.replayDepth--
				return err
			}
		}
	}
	s.replayDepth--
	return nil
}

func (s *EditorState) tildeToggle(count int) error {
	g := graphemesOf(s.curLine())
	end := s.Cursor.Col + count
	if end > len(g) {
		end = len(g)
	}
	if end <= s.Cursor.Col {
		s.finishCommand(false)
		return nil
	}
	s.pushUndo()
	for i := s.Cursor.Col; i < end; i++ {
		upper := toUpperGrapheme(g[i])
		lower := toLowerGrapheme(g[i])
		if upper == g[i] && lower != g[i] {
			g[i] = lower
		} else {
			g[i] = upper
		}
	}
	s.Lines[s.Cursor.Line] = joinGraphemes(g)
	s.Cursor.Col = end
	s.clampCursor()
	s.finishCommand(true)
	return nil
}

func (s *EditorState) pasteAfter(count int) error {
	return s.paste(count, true)
}

func (s *EditorState) pasteBefore(count int) error {
	return s.paste(count, false)
}

func (s *EditorState) paste(count int, after bool) error {
	if s.Registers.Read(s.ActiveRegister, nil).Text == "" {
		s.finishCommand(false)
		return nil
	}
	s.pushUndo()
	s.pasteNoUndo(count, after)
	s.finishCommand(true)
	return nil
}

// pasteNoUndo performs the actual paste insertion without pushing an undo
// snapshot, so callers that already pushed one for a compound command (like
// visualPaste's delete-then-paste) don't split it across two undo steps.
func (s *EditorState) pasteNoUndo(count int, after bool) {
	reg := s.Registers.Read(s.ActiveRegister, nil)
	if reg.Text == "" {
		return
	}
	text := repeatString(reg.Text, count)
	if reg.Linewise {
		lines := splitLinesTrimTrailing(text)
		insertAt := s.Cursor.Line
		if after {
			insertAt++
		}
		newLines := make([]string, 0, len(s.Lines)+len(lines))
		newLines = append(newLines, s.Lines[:insertAt]...)
		newLines = append(newLines, lines...)
		newLines = append(newLines, s.Lines[insertAt:]...)
		s.Lines = newLines
		s.Cursor = Position{insertAt, firstNonBlankCol(s.Lines[insertAt])}
	} else {
		col := s.Cursor.Col
		if after && s.lineGraphemes(s.Cursor.Line) > 0 {
			col++
		}
		endPos := s.insertLines(s.Cursor.Line, col, text)
		s.Cursor = endPos
		if !contains(text, "\n") {
			s.Cursor.Col--
		}
	}
	s.clampCursor()
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func repeatString(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}

func splitLinesTrimTrailing(text string) []string {
	if len(text) > 0 && text[len(text)-1] == '\n' {
		text = text[:len(text)-1]
	}
	return splitLines(text)
}

func joinTokens(tokens []string) string {
	out := ""
	for _, t := range tokens {
		out += t
	}
	return out
}

func toUpperGrapheme(g string) string {
	r := []rune(g)
	if len(r) == 1 && r[0] >= 'a' && r[0] <= 'z' {
		return string(r[0] - 32)
	}
	return g
}

func toLowerGrapheme(g string) string {
	r := []rune(g)
	if len(r) == 1 && r[0] >= 'A' && r[0] <= 'Z' {
		return string(r[0] + 32)
	}
	return g
}

func (s *EditorState) repeatSearch(count int, reversed bool) error {
	if s.Search.Pattern == "" {
		s.finishCommand(false)
		return nil
	}
	re, err := CompileVimPattern(s.Search.Pattern, s.Options.IgnoreCase, s.Options.SmartCase)
	if err != nil {
		s.finishCommand(false)
		return nil
	}
	dir := s.Search.Direction
	if reversed {
		dir = -dir
	}
	line, col := s.Cursor.Line, s.Cursor.Col
	for i := 0; i < count; i++ {
		m, ok := PerformSearch(s.Lines, re, line, col, dir, false, s.Search.AllowWrap)
		if !ok {
			s.finishCommand(false)
			return nil
		}
		line, col = m.StartLine, m.StartCol
	}
	return s.completeMotion(MotionResult{Pos: Position{line, col}, Found: true})
}

func (s *EditorState) searchWordUnderCursor(dir int) error {
	word := wordUnderCursor(s.curLine(), s.Cursor.Col)
	if word == "" {
		s.finishCommand(false)
		return nil
	}
	pattern := wordBoundaryPattern(word)
	s.Search = SearchState{Pattern: pattern, Direction: dir, AllowWrap: true}
	s.Registers.SetSearch(pattern)
	re, err := CompileVimPattern(pattern, s.Options.IgnoreCase, s.Options.SmartCase)
	if err != nil {
		s.finishCommand(false)
		return nil
	}
	m, ok := PerformSearch(s.Lines, re, s.Cursor.Line, s.Cursor.Col, dir, false, true)
	if !ok {
		s.finishCommand(false)
		return nil
	}
	return s.completeMotion(MotionResult{Pos: Position{m.StartLine, m.StartCol}, Found: true})
}
