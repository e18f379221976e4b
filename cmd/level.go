package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabo/internal/progress"
)

var levelCmd = &cobra.Command{
	Use:       "level [A1|A2|B1|B2|C1]",
	Short:     "Show or set your CEFR level, used to pitch translations",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"A1", "A2", "B1", "B2", "C1"},
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			lvl, err := e.trainer.Level(ctx, e.cfg.User)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (%s)\n", lvl, lvl.Description())
			return nil
		}

		lvl, err := progress.ParseLevel(args[0])
		if err != nil {
			return err
		}
		if err := e.trainer.SetLevel(ctx, e.cfg.User, lvl); err != nil {
			return err
		}
		fmt.Fprintf(out, "Level set to %s (%s)\n", lvl, lvl.Description())
		return nil
	},
}
