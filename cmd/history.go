package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent review sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.trainer.History(cmd.Context(), e.cfg.User, limit)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No sessions yet.")
			return nil
		}

		fmt.Fprintf(out, "%-19s  %7s  %7s  %8s  %6s  %s\n",
			"Finished", "Graded", "Correct", "Accuracy", "Secs", "")
		fmt.Fprintln(out, strings.Repeat(rule, 64))
		for _, ev := range events {
			acc := 0
			if ev.GradedCount > 0 {
				acc = ev.CorrectCount * 100 / ev.GradedCount
			}
			note := ""
			if ev.Cancelled {
				note = "ended early"
			}
			fmt.Fprintf(out, "%-19s  %3d/%-3d  %7d  %7d%%  %6d  %s\n",
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.GradedCount, ev.PlannedCount, ev.CorrectCount, acc, ev.DurationSecs, note)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
