// Package domain provides the pure domain layer for scored runs, with no
// infrastructure dependencies.
//
// A run record is the append-only result of replaying one keystroke
// sequence against one challenge's start buffer. Unlike a session, a run
// is never updated after creation: the core produces a final outcome,
// cmd/ persists it once, and nothing downstream mutates it.
package domain

import "time"

// RunRecord is a single scored run of one model against one challenge.
type RunRecord struct {
	id             int64
	runID          string
	challengeID    string
	modelID        string
	keystrokes     string
	keystrokeCount int
	timeMs         int64
	success        bool
	finalText      string
	diffFromBest   string
	tokenTimeline  []byte
	createdAt      time.Time
}

// NewRunRecord creates a RunRecord for a just-completed run. createdAt is
// set to the current time; id is left at zero until persisted.
func NewRunRecord(
	runID, challengeID, modelID, keystrokes string,
	keystrokeCount int,
	timeMs int64,
	success bool,
	finalText, diffFromBest string,
	tokenTimeline []byte,
) *RunRecord {
	return &RunRecord{
		runID:          runID,
		challengeID:    challengeID,
		modelID:        modelID,
		keystrokes:     keystrokes,
		keystrokeCount: keystrokeCount,
		timeMs:         timeMs,
		success:        success,
		finalText:      finalText,
		diffFromBest:   diffFromBest,
		tokenTimeline:  tokenTimeline,
		createdAt:      time.Now(),
	}
}

// ReconstituteRunRecord builds a RunRecord from persisted fields, typically
// when hydrating a row read back from sqlite.
func ReconstituteRunRecord(
	id int64,
	runID, challengeID, modelID, keystrokes string,
	keystrokeCount int,
	timeMs int64,
	success bool,
	finalText, diffFromBest string,
	tokenTimeline []byte,
	createdAt time.Time,
) *RunRecord {
	return &RunRecord{
		id:             id,
		runID:          runID,
		challengeID:    challengeID,
		modelID:        modelID,
		keystrokes:     keystrokes,
		keystrokeCount: keystrokeCount,
		timeMs:         timeMs,
		success:        success,
		finalText:      finalText,
		diffFromBest:   diffFromBest,
		tokenTimeline:  tokenTimeline,
		createdAt:      createdAt,
	}
}

func (r *RunRecord) ID() int64              { return r.id }
func (r *RunRecord) RunID() string          { return r.runID }
func (r *RunRecord) ChallengeID() string    { return r.challengeID }
func (r *RunRecord) ModelID() string        { return r.modelID }
func (r *RunRecord) Keystrokes() string     { return r.keystrokes }
func (r *RunRecord) KeystrokeCount() int    { return r.keystrokeCount }
func (r *RunRecord) TimeMs() int64          { return r.timeMs }
func (r *RunRecord) Success() bool          { return r.success }
func (r *RunRecord) FinalText() string      { return r.finalText }
func (r *RunRecord) DiffFromBest() string   { return r.diffFromBest }
func (r *RunRecord) TokenTimeline() []byte  { return r.tokenTimeline }
func (r *RunRecord) CreatedAt() time.Time   { return r.createdAt }

// SetID assigns the database identifier after insert.
func (r *RunRecord) SetID(id int64) { r.id = id }
