package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vimgolf-core/vimgolf/internal/config"
	"github.com/vimgolf-core/vimgolf/internal/evalrun"
	"github.com/vimgolf-core/vimgolf/internal/infrastructure/sqlite"
	"github.com/vimgolf-core/vimgolf/internal/log"
	"github.com/vimgolf-core/vimgolf/internal/paths"
	"github.com/vimgolf-core/vimgolf/internal/tracing"
	"github.com/vimgolf-core/vimgolf/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Watch the challenge corpus and report fixtures as they change",
	Long: `Run a foreground process that watches the first configured challenge
directory for new or changed .golf fixtures and reports each changed
challenge id as soon as its debounce window settles. The changed fixture
is not rescored.

This is not a network service: there is no HTTP listener here, only a
file-watch loop with in-process pub/sub for progress events.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := config.ValidateChallengeDirs(cfg.ChallengeDirs); err != nil {
		return err
	}

	db, err := sqlite.NewDB(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("opening run store: %w", err)
	}
	defer func() { _ = db.Close() }()

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:  cfg.Tracing.Enabled,
		Exporter: cfg.Tracing.Exporter,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func() { _ = provider.Shutdown(ctx) }()

	challengeDir := paths.ResolveChallengeDir(cfg.ChallengeDirs[0])
	w, err := watcher.New(watcher.DefaultConfig(challengeDir))
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	changed, err := w.Start()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = w.Stop() }()

	runner := evalrun.NewRunner()
	defer runner.Close()

	events := runner.Broker().Subscribe(ctx)
	go func() {
		for ev := range events {
			log.Debug(log.CatCLI, "step", "token", ev.Payload.Token)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("watching %s for .golf changes\n", challengeDir)
	fmt.Println("press ctrl-c to stop")

	for {
		select {
		case id := <-changed:
			log.Info(log.CatCLI, "challenge fixture changed", "challenge", id)
			fmt.Printf("changed %s\n", id)
		case sig := <-sigCh:
			fmt.Printf("received %s, shutting down\n", sig)
			return nil
		}
	}
}
