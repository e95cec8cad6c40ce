package evalrun

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vimgolf-core/vimgolf/internal/pubsub"
	"github.com/vimgolf-core/vimgolf/internal/runs/domain"
	"github.com/vimgolf-core/vimgolf/internal/vim"
)

// StepEvent is published once per keystroke token processed by a scored
// run, the in-process seam an attached watcher (e.g. an HTTP handler
// streaming progress to a client) observes.
type StepEvent struct {
	Token     string
	FinalText string
}

// Runner replays keystrokes against the vim core one token at a time,
// broadcasting a StepEvent after each step.
type Runner struct {
	broker *pubsub.Broker[StepEvent]
}

// NewRunner creates a Runner with its own step-event broker.
func NewRunner() *Runner {
	return &Runner{broker: pubsub.NewBroker[StepEvent]()}
}

// Broker returns the step-event broker so callers can attach watchers
// before calling Run.
func (r *Runner) Broker() *pubsub.Broker[StepEvent] {
	return r.broker
}

// Run tokenizes keystrokes and steps s through each token, publishing a
// StepEvent after every step. It returns the final buffer text.
func (r *Runner) Run(s *vim.EditorState, keystrokes string) string {
	var final string
	for _, tok := range vim.Tokenize(keystrokes) {
		_ = s.Step(tok)
		final = s.FinalText()
		r.broker.Publish(pubsub.CreatedEvent, StepEvent{Token: tok, FinalText: final})
	}
	return final
}

// Close shuts down the runner's broker.
func (r *Runner) Close() {
	r.broker.Close()
}

// Result is the outcome of scoring one keystroke sequence against one
// challenge.
type Result struct {
	RunID          string
	ChallengeID    string
	ModelID        string
	Keystrokes     string
	KeystrokeCount int
	TimeMs         int64
	Success        bool
	FinalText      string
	DiffFromBest   string
	TokenTimeline  []string
}

// Score replays keystrokes against challenge's start text and compares the
// normalized result against the expected text. The replay trace (one
// entry per keystroke token) is captured as the run's token timeline.
func Score(challenge *Challenge, modelID, keystrokes string) Result {
	start := time.Now()

	s := vim.NewDriverState(challenge.StartText)
	trace := vim.ReplayTrace(s, keystrokes)

	elapsed := time.Since(start)
	final := vim.NormalizeText(s.FinalText())
	expected := vim.NormalizeText(challenge.Expected)
	success := final == expected

	var diff string
	if !success {
		diff = LineDiff(expected, final)
	}

	return Result{
		RunID:          uuid.New().String(),
		ChallengeID:    challenge.ID,
		ModelID:        modelID,
		Keystrokes:     keystrokes,
		KeystrokeCount: len(vim.Tokenize(keystrokes)),
		TimeMs:         elapsed.Milliseconds(),
		Success:        success,
		FinalText:      final,
		DiffFromBest:   diff,
		TokenTimeline:  trace,
	}
}

// ToRunRecord converts a scoring result into a persistable domain entity.
// The token timeline is newline-joined into a single blob column, per the
// evaluation record's storage layout.
func (res Result) ToRunRecord() *domain.RunRecord {
	return domain.NewRunRecord(
		res.RunID,
		res.ChallengeID,
		res.ModelID,
		res.Keystrokes,
		res.KeystrokeCount,
		res.TimeMs,
		res.Success,
		res.FinalText,
		res.DiffFromBest,
		[]byte(strings.Join(res.TokenTimeline, "\n")),
	)
}
