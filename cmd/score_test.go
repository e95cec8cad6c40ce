package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vimgolf-core/vimgolf/internal/infrastructure/sqlite"
	"github.com/vimgolf-core/vimgolf/internal/runs/domain"
)

// TestRunScore_FixturesPass drives the score command's RunE directly
// against every end-to-end fixture, the cmd-level half of the pairing
// alongside internal/vim's scenario tests.
func TestRunScore_FixturesPass(t *testing.T) {
	cfg.Store.DBPath = filepath.Join(t.TempDir(), "runs.db")

	fixtures := []struct {
		file       string
		keystrokes string
	}{
		{"numbered_list.golf", `:%s/^/\=line('.') . '. '/` + "<CR>"},
		{"remove_duplicates.golf", `:%s/\v^(.*)\n\1/\1/g` + "<CR>"},
		{"reverse_lines.golf", ":g/^/m0<CR>"},
		{"visual_block_append.golf", "<C-v>G$A;<Esc>"},
		{"yaml_to_dotenv.golf", `:v/!ENV/d<CR>:%s/.*!ENV\s*[${]\([^}]*\).*/\1=/` + "<CR>"},
		{"macro_replay.golf", "qaI-<Esc>jq@a"},
	}

	for _, f := range fixtures {
		t.Run(f.file, func(t *testing.T) {
			path := filepath.Join("..", "testdata", f.file)
			scoreModelID = "test-model"
			err := runScore(scoreCmd, []string{path, f.keystrokes})
			require.NoError(t, err)
		})
	}
}

// TestRunScore_FailureReturnsError checks that a keystroke sequence
// producing the wrong text surfaces as a non-nil error, not a silent
// pass, while still persisting the run record.
func TestRunScore_FailureReturnsError(t *testing.T) {
	cfg.Store.DBPath = filepath.Join(t.TempDir(), "runs.db")
	scoreModelID = "test-model"

	path := filepath.Join("..", "testdata", "reverse_lines.golf")
	err := runScore(scoreCmd, []string{path, "x"})
	require.Error(t, err)

	db, err := sqlite.NewDB(cfg.Store.DBPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	runs, err := db.RunRepository().List(domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.False(t, runs[0].Success())
}
