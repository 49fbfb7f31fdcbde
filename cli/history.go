package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"termsweeper/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
	JSON  bool
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List finished games",
		Long: `List finished games, newest first, and the best winning time.

Examples:
  termsweeper history
  termsweeper history --limit 50
  termsweeper history --json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "number of games to list, 0 for all")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print records as JSON")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	st, err := history.Open(cfg.Game.HistoryFile)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	games, err := st.List(ctx, opts.Limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.JSON {
		if games == nil {
			games = []history.GameRecord{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(games)
	}

	if len(games) == 0 {
		fmt.Fprintln(out, "No games played yet.")
		return nil
	}
	fmt.Fprintf(out, "%-19s  %-4s  %6s  %5s  %8s\n", "FINISHED", "", "TIME", "FLAGS", "REVEALED")
	for _, g := range games {
		result := "lost"
		if g.Won {
			result = "won"
		}
		fmt.Fprintf(out, "%-19s  %-4s  %5ds  %5d  %8d\n",
			g.FinishedAt.Local().Format("2006-01-02 15:04:05"), result, g.ElapsedSecs, g.FlagsUsed, g.RevealedCells)
	}

	best, err := st.Best(ctx)
	switch {
	case errors.Is(err, history.ErrNoWins):
		fmt.Fprintln(out, "\nNo wins yet.")
	case err != nil:
		return err
	default:
		fmt.Fprintf(out, "\nBest time: %ds\n", best.ElapsedSecs)
	}
	return nil
}
