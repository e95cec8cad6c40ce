package tracing

// Span attribute keys for a Run span per scored keystroke sequence. These
// keys and SpanNameRun are declared here only; no code in this module starts
// a span with them.
const (
	AttrChallengeID     = "run.challenge_id"
	AttrModelID         = "run.model_id"
	AttrKeystrokeCount  = "run.keystroke_count"
	AttrSuccess         = "run.success"
	AttrTimeMs          = "run.time_ms"
)

// SpanNameRun names the single span wrapping one scored run.
const SpanNameRun = "run.score"
