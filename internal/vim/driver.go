package vim

// maxTokensDefault is the token budget NewState gives every state: it caps
// the tokens processed via Step over the state's whole lifetime (macro
// replay included), not a single Execute call.
const maxTokensDefault = 200000

// NewDriverState is the concept-level new_state constructor: split
// initial_text on "\n" and apply any option overrides.
func NewDriverState(initialText string, opts ...Options) *EditorState {
	return NewState(initialText, opts...)
}

// TokenizeKeystrokes is the concept-level tokenize entry point. maxTokens
// of 0 means unbounded (aside from the state's own token budget once
// Execute/Step runs); when set, tokenization itself stops early.
func TokenizeKeystrokes(keys string, maxTokens int) []string {
	tokens := Tokenize(keys)
	if maxTokens > 0 && len(tokens) > maxTokens {
		return tokens[:maxTokens]
	}
	return tokens
}

// Execute folds Step over every token produced by tokenizing keystrokes,
// stopping at the first error (a token-budget or replay-depth abort) but
// leaving the state exactly as Step left it: the propagation policy
// contains failures within the command that caused them, never bubbling an
// exception past the driver.
func Execute(s *EditorState, keystrokes string) error {
	for _, tok := range Tokenize(keystrokes) {
		if err := s.Step(tok); err != nil {
			return err
		}
	}
	return nil
}

// FinalText is the concept-level final_text accessor.
func FinalText(s *EditorState) string {
	return s.FinalText()
}

// ReplayTrace re-executes a keystroke stream step by step, returning the
// buffer text after every token — useful for driver-side debugging and for
// the token_timeline field of the persisted evaluation record.
func ReplayTrace(s *EditorState, keystrokes string) []string {
	var trace []string
	for _, tok := range Tokenize(keystrokes) {
		_ = s.Step(tok)
		trace = append(trace, s.FinalText())
	}
	return trace
}
