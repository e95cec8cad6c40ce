package sqlite

import (
	"time"

	"github.com/vimgolf-core/vimgolf/internal/runs/domain"
)

// RunModel represents the database row for the runs table.
// created_at is stored as a Unix timestamp.
type RunModel struct {
	ID             int64
	RunID          string
	ChallengeID    string
	ModelID        string
	Keystrokes     string
	KeystrokeCount int
	TimeMs         int64
	Success        bool
	FinalText      string
	DiffFromBest   *string // nullable
	TokenTimeline  []byte  // nullable
	CreatedAt      int64
}

// toRunModel converts a domain RunRecord entity to a database RunModel.
func toRunModel(r *domain.RunRecord) *RunModel {
	m := &RunModel{
		ID:             r.ID(),
		RunID:          r.RunID(),
		ChallengeID:    r.ChallengeID(),
		ModelID:        r.ModelID(),
		Keystrokes:     r.Keystrokes(),
		KeystrokeCount: r.KeystrokeCount(),
		TimeMs:         r.TimeMs(),
		Success:        r.Success(),
		FinalText:      r.FinalText(),
		TokenTimeline:  r.TokenTimeline(),
		CreatedAt:      r.CreatedAt().Unix(),
	}
	if r.DiffFromBest() != "" {
		diff := r.DiffFromBest()
		m.DiffFromBest = &diff
	}
	return m
}

// toDomain converts a database RunModel to a domain RunRecord entity.
func (m *RunModel) toDomain() *domain.RunRecord {
	var diffFromBest string
	if m.DiffFromBest != nil {
		diffFromBest = *m.DiffFromBest
	}
	return domain.ReconstituteRunRecord(
		m.ID,
		m.RunID,
		m.ChallengeID,
		m.ModelID,
		m.Keystrokes,
		m.KeystrokeCount,
		m.TimeMs,
		m.Success,
		m.FinalText,
		diffFromBest,
		m.TokenTimeline,
		time.Unix(m.CreatedAt, 0),
	)
}
