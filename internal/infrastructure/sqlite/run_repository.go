package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vimgolf-core/vimgolf/internal/runs/domain"
)

// runColumns is the list of columns to select for run queries.
const runColumns = `rowid, run_id, challenge_id, model_id, keystrokes, keystroke_count,
	time_ms, success, final_text, diff_from_best, token_timeline, created_at`

// runRepository implements domain.RunRepository using SQLite.
type runRepository struct {
	db *sql.DB
}

// newRunRepository creates a new runRepository instance.
func newRunRepository(db *sql.DB) *runRepository {
	return &runRepository{db: db}
}

// Ensure runRepository implements domain.RunRepository.
var _ domain.RunRepository = (*runRepository)(nil)

// scanRun scans a row into a RunModel.
func scanRun(scanner interface{ Scan(...any) error }) (*RunModel, error) {
	var model RunModel
	err := scanner.Scan(
		&model.ID, &model.RunID, &model.ChallengeID, &model.ModelID,
		&model.Keystrokes, &model.KeystrokeCount, &model.TimeMs, &model.Success,
		&model.FinalText, &model.DiffFromBest, &model.TokenTimeline, &model.CreatedAt,
	)
	return &model, err
}

// Save inserts a new run record and assigns its database ID.
func (r *runRepository) Save(run *domain.RunRecord) error {
	model := toRunModel(run)

	result, err := r.db.Exec(
		`INSERT INTO runs (
			run_id, challenge_id, model_id, keystrokes, keystroke_count,
			time_ms, success, final_text, diff_from_best, token_timeline, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		model.RunID, model.ChallengeID, model.ModelID, model.Keystrokes, model.KeystrokeCount,
		model.TimeMs, model.Success, model.FinalText, model.DiffFromBest, model.TokenTimeline, model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	run.SetID(id)
	return nil
}

// FindByRunID retrieves a run by its UUID.
// Returns RunNotFoundError if no matching run exists.
func (r *runRepository) FindByRunID(runID string) (*domain.RunRecord, error) {
	row := r.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	model, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.RunNotFoundError{RunID: runID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find run by run_id: %w", err)
	}
	return model.toDomain(), nil
}

// BestForChallenge returns the successful run with the fewest keystrokes
// for the given challenge.
// Returns NoBestRunError if no successful run is on record.
func (r *runRepository) BestForChallenge(challengeID string) (*domain.RunRecord, error) {
	row := r.db.QueryRow(
		`SELECT `+runColumns+` FROM runs
		 WHERE challenge_id = ? AND success = 1
		 ORDER BY keystroke_count ASC, created_at ASC
		 LIMIT 1`,
		challengeID,
	)
	model, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NoBestRunError{ChallengeID: challengeID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find best run: %w", err)
	}
	return model.toDomain(), nil
}

// List retrieves runs matching filter, ordered by created_at descending.
func (r *runRepository) List(filter domain.ListFilter) ([]*domain.RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE 1 = 1`
	var args []any

	if filter.ChallengeID != "" {
		query += ` AND challenge_id = ?`
		args = append(args, filter.ChallengeID)
	}
	if filter.ModelID != "" {
		query += ` AND model_id = ?`
		args = append(args, filter.ModelID)
	}
	if filter.SuccessOnly {
		query += ` AND success = 1`
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*domain.RunRecord
	for rows.Next() {
		model, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}

	return runs, nil
}

// Close releases any resources held by the repository.
// This is a no-op because the connection is owned by the DB struct.
func (r *runRepository) Close() error {
	return nil
}
