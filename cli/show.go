package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"termsweeper/board"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print a save file as a board",
		Long: `Print a save file as a board.

Hidden cells are "-", flagged cells "F", mines "*", revealed cells
without neighboring mines "." and the rest show their mine count.

Examples:
  termsweeper show ~/.local/share/termsweeper/minesweeper_save.txt`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0])
		},
	}
	return cmd
}

func runShow(cmd *cobra.Command, path string) error {
	b := board.Blank()
	if err := b.Load(path); err != nil {
		return err
	}
	b.RebuildAdjacency()
	out := cmd.OutOrStdout()
	fmt.Fprint(out, b.String())
	fmt.Fprintf(out, "\nstate: %s  revealed: %d/%d\n", b.State(), b.RevealedCount(), b.Size()*b.Size()-b.MineCount())
	return nil
}
