package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/vimgolf-core/vimgolf/internal/cachemanager"
	"github.com/vimgolf-core/vimgolf/internal/evalrun"
	"github.com/vimgolf-core/vimgolf/internal/infrastructure/sqlite"
	"github.com/vimgolf-core/vimgolf/internal/log"
)

var scoreModelID string

var scoreCmd = &cobra.Command{
	Use:   "score <challenge.golf> <keystrokes>",
	Short: "Score a keystroke solution against a challenge",
	Args:  cobra.ExactArgs(2),
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreModelID, "model", "unknown", "identifier of the model/solver being scored")
	rootCmd.AddCommand(scoreCmd)
}

// scoreCache memoizes identical (challenge, model, keystrokes) scoring
// requests within the process. Entries expire after cache.ttl_seconds, or
// after cachemanager.DefaultExpiration when that setting is zero.
var scoreCache = cachemanager.NewInMemoryCacheManager[string, evalrun.Result](
	"score-cache",
	cachemanager.DefaultExpiration,
	cachemanager.DefaultCleanupInterval,
)

func runScore(cmd *cobra.Command, args []string) error {
	challengePath, keystrokes := args[0], args[1]

	challenge, err := evalrun.LoadChallenge(challengePath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	cacheKey := challenge.ID + "|" + scoreModelID + "|" + keystrokes

	result, hit := scoreCache.Get(ctx, cacheKey)
	if !hit {
		result = evalrun.Score(challenge, scoreModelID, keystrokes)
		scoreCache.Set(ctx, cacheKey, result, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		log.Info(log.CatCLI, "scored run", "challenge", challenge.ID, "success", result.Success, "keystrokes", result.KeystrokeCount)
	}

	db, err := sqlite.NewDB(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("opening run store: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.RunRepository().Save(result.ToRunRecord()); err != nil {
		return fmt.Errorf("saving run record: %w", err)
	}

	printScoreSummary(result)
	if !result.Success {
		return fmt.Errorf("challenge %s: keystrokes did not produce the expected text", challenge.ID)
	}
	return nil
}

var (
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	labelPad  = 16
)

func printScoreSummary(res evalrun.Result) {
	status := failStyle.Render("FAIL")
	if res.Success {
		status = passStyle.Render("PASS")
	}

	rows := [][2]string{
		{"challenge", res.ChallengeID},
		{"model", res.ModelID},
		{"keystrokes", fmt.Sprintf("%d", res.KeystrokeCount)},
		{"time_ms", fmt.Sprintf("%d", res.TimeMs)},
		{"status", status},
	}
	for _, r := range rows {
		pad := labelPad - runewidth.StringWidth(r[0])
		if pad < 1 {
			pad = 1
		}
		fmt.Printf("%s%*s%s\n", r[0], pad, "", r[1])
	}

	if !res.Success {
		fmt.Println()
		fmt.Print(res.DiffFromBest)
	}
}
