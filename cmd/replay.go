package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vimgolf-core/vimgolf/internal/evalrun"
	"github.com/vimgolf-core/vimgolf/internal/vim"
)

var replayShowDiff bool

var replayCmd = &cobra.Command{
	Use:   "replay <challenge.golf> <keystrokes>",
	Short: "Replay a keystroke solution one token at a time",
	Args:  cobra.ExactArgs(2),
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayShowDiff, "diff", false, "show a line diff against the expected text instead of the full trace")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	challengePath, keystrokes := args[0], args[1]

	challenge, err := evalrun.LoadChallenge(challengePath)
	if err != nil {
		return err
	}

	s := vim.NewDriverState(challenge.StartText)
	trace := vim.ReplayTrace(s, keystrokes)

	if replayShowDiff {
		final := vim.NormalizeText(s.FinalText())
		expected := vim.NormalizeText(challenge.Expected)
		fmt.Print(evalrun.LineDiff(expected, final))
		return nil
	}

	tokens := vim.Tokenize(keystrokes)
	for i, snapshot := range trace {
		tok := ""
		if i < len(tokens) {
			tok = tokens[i]
		}
		fmt.Printf("--- after %q ---\n%s\n", tok, snapshot)
	}
	return nil
}
