package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"termsweeper/engine/local"
	"termsweeper/engine/mtp"
	"termsweeper/history"
	"termsweeper/types"
)

// MTPOptions holds flags for the mtp command.
type MTPOptions struct {
	*RootOptions
	Record bool
}

// NewMTPCommand creates the mtp command.
func NewMTPCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MTPOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "mtp",
		Short: "Serve the Minesweeper Text Protocol on stdin and stdout",
		Long: `Serve the Minesweeper Text Protocol on stdin and stdout.

Commands are read one per line, optionally prefixed by a numeric id.
Replies start with "=" on success or "?" on error and end with a
blank line. Cells are written as a column letter A-J and a row
number 1-10 counted from the top.

Examples:
  printf 'reveal E5\nshowboard\nquit\n' | termsweeper mtp --seed 7`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMTP(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Record, "record", false, "record finished games in the history")

	return cmd
}

func runMTP(opts *MTPOptions, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	log, logFile, err := opts.openLog()
	if err != nil {
		return err
	}
	defer logFile.Close()

	eng := local.NewLocalEngine(opts.engineConfig(cfg, log))

	if opts.Record {
		st, err := history.Open(cfg.Game.HistoryFile)
		if err != nil {
			return err
		}
		defer st.Close()
		eng.OnGameEnd(recordGame(cmd, st, log))
	}

	ctx := cmd.Context()
	eng.Start(ctx)
	defer eng.Close()

	srv := mtp.NewServer(eng, cmd.InOrStdin(), cmd.OutOrStdout(), log)
	srv.Version = Version
	log.Info("mtp session started")
	return srv.Serve(ctx)
}

// recordGame returns a game-end callback storing the game. Failures are
// logged and never interrupt play.
func recordGame(cmd *cobra.Command, st *history.Store, log logrus.FieldLogger) func(types.GameState, *types.BoardState) {
	return func(outcome types.GameState, state *types.BoardState) {
		r, err := st.Record(cmd.Context(), history.NewRecord(outcome, state))
		if err != nil {
			log.WithError(err).Warn("record game failed")
			return
		}
		log.WithFields(logrus.Fields{
			"id":      r.ID,
			"won":     r.Won,
			"elapsed": r.ElapsedSecs,
		}).Info("game recorded")
	}
}
