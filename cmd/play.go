package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vimgolf-core/vimgolf/internal/evalrun"
	"github.com/vimgolf-core/vimgolf/internal/playground"
)

var playCmd = &cobra.Command{
	Use:   "play [challenge.golf]",
	Short: "Interactively explore a challenge in the vim playground",
	Long: `Launch an interactive playground seeded with a challenge fixture's
starting text, or an empty buffer when no fixture is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	var id, startText string
	if len(args) == 1 {
		challenge, err := evalrun.LoadChallenge(args[0])
		if err != nil {
			return err
		}
		id, startText = challenge.ID, challenge.StartText
	}

	model := playground.New(id, startText)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running playground: %w", err)
	}
	return nil
}
