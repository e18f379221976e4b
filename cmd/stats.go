package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabo/internal/cards"
	"github.com/abhisek/vocabo/internal/progress"
	"github.com/abhisek/vocabo/internal/trainer"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := e.trainer.Stats(cmd.Context(), e.cfg.User)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		out := cmd.OutOrStdout()
		p := st.Progress

		fmt.Fprintf(out, "Level:      %s (%s)\n", p.Level, p.Level.Description())
		fmt.Fprintf(out, "Streak:     %d days (longest %d)\n", p.CurrentStreak, p.LongestStreak)
		goal := fmt.Sprintf("%d/%d", st.TodayGraded, st.DailyGoal)
		if st.GoalMet() {
			goal += " ✓"
		}
		fmt.Fprintf(out, "Today:      %s\n", goal)
		fmt.Fprintf(out, "Reviews:    %d (%.0f%% correct)\n", p.TotalReviews, p.Accuracy()*100)
		fmt.Fprintf(out, "Cards:      %d in %d decks, %d due\n", st.Cards.Total, st.Decks, st.Cards.Due)
		if st.HasNextReview {
			fmt.Fprintf(out, "Next:       %s\n", trainer.Until(time.Now(), st.NextReview))
		}

		if st.Cards.Total > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "By Maturity")
			fmt.Fprintln(out, strings.Repeat(rule, 32))
			for _, m := range cards.AllMaturities() {
				n := st.Cards.ByMaturity[m]
				if n == 0 {
					continue
				}
				fmt.Fprintf(out, "%-12s  %6d\n", m.DisplayName(), n)
			}
		}

		unlocked := p.UnlockedAchievements()
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Achievements (%d/%d)\n", len(unlocked), len(progress.AllAchievements()))
		fmt.Fprintln(out, strings.Repeat(rule, 32))
		for _, a := range progress.AllAchievements() {
			mark := "  "
			if p.HasAchievement(a) {
				mark = a.Icon()
			}
			fmt.Fprintf(out, "%s %s\n", mark, a.DisplayName())
		}
		return nil
	},
}
