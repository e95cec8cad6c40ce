package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vimgolf-core/vimgolf/internal/runs/domain"
)

// setupTestRepo creates a new DB and returns the repository for testing.
// The DB is closed when the test completes.
func setupTestRepo(t *testing.T) domain.RunRepository {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDB(dbPath)
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { db.Close() })
	return db.RunRepository()
}

func TestRunRepository_Save_AssignsID(t *testing.T) {
	repo := setupTestRepo(t)

	run := domain.NewRunRecord("run-1", "challenge-a", "model-x", "dd", 2, 150, true, "hello", "", nil)
	require.Equal(t, int64(0), run.ID(), "New run should have ID 0")

	err := repo.Save(run)
	require.NoError(t, err, "Save should succeed")
	require.Greater(t, run.ID(), int64(0), "Run should have ID assigned after insert")

	found, err := repo.FindByRunID("run-1")
	require.NoError(t, err)
	require.Equal(t, "run-1", found.RunID())
	require.Equal(t, "challenge-a", found.ChallengeID())
	require.Equal(t, "model-x", found.ModelID())
	require.Equal(t, "dd", found.Keystrokes())
	require.Equal(t, 2, found.KeystrokeCount())
	require.Equal(t, int64(150), found.TimeMs())
	require.True(t, found.Success())
	require.Equal(t, "hello", found.FinalText())
	require.WithinDuration(t, run.CreatedAt(), found.CreatedAt(), time.Second)
}

func TestRunRepository_FindByRunID_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByRunID("nonexistent")
	require.Error(t, err)

	var notFound *domain.RunNotFoundError
	require.True(t, errors.As(err, &notFound), "Error should be RunNotFoundError")
	require.Equal(t, "nonexistent", notFound.RunID)
}

func TestRunRepository_BestForChallenge_PicksFewestKeystrokes(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Save(domain.NewRunRecord("run-1", "challenge-a", "model-x", "dddd", 4, 200, true, "x", "", nil)))
	require.NoError(t, repo.Save(domain.NewRunRecord("run-2", "challenge-a", "model-y", "dd", 2, 100, true, "x", "", nil)))
	require.NoError(t, repo.Save(domain.NewRunRecord("run-3", "challenge-a", "model-z", "d", 1, 50, false, "y", "", nil)))

	best, err := repo.BestForChallenge("challenge-a")
	require.NoError(t, err)
	require.Equal(t, "run-2", best.RunID(), "best should ignore the unsuccessful shorter run")
}

func TestRunRepository_BestForChallenge_NoSuccessfulRuns(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Save(domain.NewRunRecord("run-1", "challenge-a", "model-x", "d", 1, 50, false, "x", "", nil)))

	_, err := repo.BestForChallenge("challenge-a")
	require.Error(t, err)

	var noBest *domain.NoBestRunError
	require.True(t, errors.As(err, &noBest), "Error should be NoBestRunError")
	require.Equal(t, "challenge-a", noBest.ChallengeID)
}

func TestRunRepository_List_FiltersByChallengeAndModel(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Save(domain.NewRunRecord("run-1", "challenge-a", "model-x", "d", 1, 50, true, "x", "", nil)))
	require.NoError(t, repo.Save(domain.NewRunRecord("run-2", "challenge-a", "model-y", "d", 1, 50, true, "x", "", nil)))
	require.NoError(t, repo.Save(domain.NewRunRecord("run-3", "challenge-b", "model-x", "d", 1, 50, true, "x", "", nil)))

	byChallenge, err := repo.List(domain.ListFilter{ChallengeID: "challenge-a"})
	require.NoError(t, err)
	require.Len(t, byChallenge, 2)

	byModel, err := repo.List(domain.ListFilter{ModelID: "model-x"})
	require.NoError(t, err)
	require.Len(t, byModel, 2)

	byBoth, err := repo.List(domain.ListFilter{ChallengeID: "challenge-a", ModelID: "model-x"})
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
	require.Equal(t, "run-1", byBoth[0].RunID())
}

func TestRunRepository_List_RespectsLimitAndOrder(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Save(domain.NewRunRecord("run-1", "challenge-a", "model-x", "d", 1, 50, true, "x", "", nil)))
	time.Sleep(1100 * time.Millisecond)
	require.NoError(t, repo.Save(domain.NewRunRecord("run-2", "challenge-a", "model-x", "d", 1, 50, true, "x", "", nil)))

	runs, err := repo.List(domain.ListFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "run-2", runs[0].RunID(), "newest run should come first")
}

func TestRunRepository_List_SuccessOnly(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Save(domain.NewRunRecord("run-1", "challenge-a", "model-x", "d", 1, 50, true, "x", "", nil)))
	require.NoError(t, repo.Save(domain.NewRunRecord("run-2", "challenge-a", "model-x", "dd", 2, 60, false, "y", "", nil)))

	runs, err := repo.List(domain.ListFilter{SuccessOnly: true})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "run-1", runs[0].RunID())
}

func TestRunRepository_TokenTimeline_RoundTrips(t *testing.T) {
	repo := setupTestRepo(t)

	timeline := []byte("dd\nx\n:wq\n")
	run := domain.NewRunRecord("run-1", "challenge-a", "model-x", "dd", 2, 50, true, "x", "", timeline)
	require.NoError(t, repo.Save(run))

	found, err := repo.FindByRunID("run-1")
	require.NoError(t, err)
	require.Equal(t, timeline, found.TokenTimeline())
}
