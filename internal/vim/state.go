package vim

// Position is a zero-indexed line/column pair. Col is a grapheme index,
// not a byte offset.
type Position struct {
	Line int
	Col  int
}

// Options holds editor-wide behavior toggles.
type Options struct {
	IgnoreCase bool
	SmartCase  bool
	HLSearch   bool
	IncSearch  bool
	AutoIndent bool
	Magic      bool // default magic mode (vs \v very-magic only)
	ShiftWidth int
}

// DefaultOptions returns the defaults a freshly created editor starts with.
func DefaultOptions() Options {
	return Options{
		IgnoreCase: false,
		SmartCase:  false,
		HLSearch:   true,
		IncSearch:  true,
		AutoIndent: false,
		Magic:      true,
		ShiftWidth: 8,
	}
}

// PendingOperator buffers the operator keystroke awaiting a motion or
// text-object to complete it (d, c, y, <, >, =, gU, gu, g~, gq). Other
// multi-key commands such as f/t/r/g are tracked through awaiting.
type PendingOperator struct {
	Token string
}

// VisualBlockInsert tracks a Visual-Block A/I session so the typed insert
// can be replayed onto every line of the block on <Esc>.
type VisualBlockInsert struct {
	Active           bool
	StartLine        int
	EndLine          int
	Col              int
	Append           bool
	Ragged           bool
	InsertStartIndex int // not read or written by this package
}

// SearchState tracks the last search pattern and navigation direction.
type SearchState struct {
	Pattern       string
	Direction     int // +1 forward, -1 backward
	LastMatches   []MatchRange
	CurrentIndex  int
	AllowWrap     bool
}

// MatchRange is an inclusive-start/exclusive-end match location.
type MatchRange struct {
	StartLine, StartCol int
	EndLine, EndCol      int
}

// FindCharState remembers the last f/F/t/T invocation for ; and ,.
type FindCharState struct {
	Direction byte // 'f', 'F', 't', 'T'
	Char      rune
	Set       bool
}

// LastChange records the keystrokes of the last mutating normal-mode command
// or completed insert, replayed by the dot command.
type LastChange struct {
	Keys     []string
	IsChange bool
}

// CommandLineState holds the in-progress Ex/search buffer.
type CommandLineState struct {
	Prefix string // ":", "/", "?", "="
	Buffer string
	// FromInsert is true when command-line was entered via <C-r>= from Insert
	// or Replace mode; ReturnMode is the mode to restore on submission.
	FromInsert bool
	ReturnMode Mode
}

// EditorState is the single mutable owner of all editing state. All
// mutations happen through the mode handlers in this package.
type EditorState struct {
	Lines  []string
	Cursor Position
	Mode   Mode

	PendingOperator *PendingOperator
	CountBuffer     string
	ActiveRegister  string

	Registers *RegisterFile

	UndoStack []Snapshot
	RedoStack []Snapshot

	LastChange       LastChange
	LastInsertKeys   []string
	InsertRepeat     int
	InsertStartPos   Position
	insertInCount    bool // true while replaying the count-1 repeats on <Esc>

	VisualStart          Position
	VisualBlock          VisualBlockInsert
	VisualBlockRagged    bool
	LastVisualMode       Mode
	LastVisualStart      Position
	LastVisualEnd        Position
	HasLastVisual        bool

	Search SearchState

	Marks map[rune]Position

	LastFindChar FindCharState

	RecordingMacro string
	MacroBuffer    []string
	lastMacroReg   string

	PendingDigraph string

	CommandLine *CommandLineState

	Options Options

	// CommandBuffer is not read or written by this package; dot-repeat
	// capture uses pendingTokens.
	CommandBuffer []string

	// Runner executes external shell commands for :r ! and :! when the
	// built-in filters don't cover the command. Optional.
	Runner ShellRunner

	// replayDepth guards against runaway recursive macro/dot replay.
	replayDepth int
	// tokenBudget caps total tokens processed via Step across the state's
	// lifetime (macro replay inherits the same budget).
	tokenBudget int

	// awaiting names what the next normal-mode token completes: "", "g",
	// "Z", "register", "find:f"/"find:F"/"find:t"/"find:T", "mark:set",
	// "mark:backtick", "mark:quote", "replace", "macro:record",
	// "macro:play", "textobj:i", "textobj:a".
	awaiting string
	// pendingTokens buffers the raw tokens of the in-progress normal-mode
	// command, flushed into LastChange on completion of a mutating command.
	pendingTokens []string

	// ctrlOArmed is true after <C-o> in Insert mode until the single normal
	// command it borrows has fully resolved.
	ctrlOArmed bool
	// insertAwaiting tracks a pending Insert-mode multi-token sequence:
	// "literal" (<C-v>{char}), "register" (<C-r>{reg}), "digraph1"/"digraph2".
	insertAwaiting string
	insertDigraph1 rune
}

// ShellRunner executes an external command synchronously, used by :r ! and
// :!. It is a pluggable collaborator; the core ships built-in handlers for a
// small whitelist (tac, tr, Pi()) and falls back to Runner otherwise.
type ShellRunner interface {
	Run(cmd string, stdin string) (stdout string, err error)
}

// Snapshot is a point-in-time copy of the buffer and cursor, pushed to the
// undo/redo stacks before every mutation.
type Snapshot struct {
	Lines  []string
	Cursor Position
}

func snapshotOf(s *EditorState) Snapshot {
	lines := make([]string, len(s.Lines))
	copy(lines, s.Lines)
	return Snapshot{Lines: lines, Cursor: s.Cursor}
}

func (s *EditorState) restore(snap Snapshot) {
	lines := make([]string, len(snap.Lines))
	copy(lines, snap.Lines)
	s.Lines = lines
	s.Cursor = snap.Cursor
	s.clampCursor()
}

// NewState creates an EditorState from initial text, splitting on "\n".
// Empty input yields a single empty line, per invariant I1.
func NewState(initialText string, opts ...Options) *EditorState {
	o := DefaultOptions()
	if len(opts) > 0 {
		o = opts[0]
	}

	lines := splitLines(initialText)
	s := &EditorState{
		Lines:     lines,
		Cursor:    Position{0, 0},
		Mode:      ModeNormal,
		Registers: NewRegisterFile(),
		Marks:     make(map[rune]Position),
		Options:   o,
		tokenBudget: maxTokensDefault,
	}
	s.Search.AllowWrap = true
	return s
}

func splitLines(text string) []string {
	if text == "" {
		return []string{""}
	}
	lines := []string{}
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	lines = append(lines, text[start:])
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// FinalText returns the lines joined with "\n".
func (s *EditorState) FinalText() string {
	out := ""
	for i, l := range s.Lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

// NormalizeText replaces CRLF with LF and strips one trailing newline, the
// canonical form used for parity comparisons.
func NormalizeText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			continue
		}
		out = append(out, s[i])
	}
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return string(out)
}
