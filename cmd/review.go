package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabo/internal/review"
	"github.com/abhisek/vocabo/internal/trainer"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start a review session",
	Long: "Review the cards that are due, plus up to --new-card-limit new ones.\n" +
		"Type your answer or just reveal the back, then grade your recall 0-5.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deck, _ := cmd.Flags().GetString("deck")
		return runReview(cmd, deck)
	},
}

// runReview starts a session on deck and hands the terminal to the
// review screen.
func runReview(cmd *cobra.Command, deck string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	user := e.cfg.User
	h, err := e.trainer.StartReview(ctx, user, deck, e.cfg.Session.NewCardLimit)
	var nothing *trainer.NothingDueError
	if errors.As(err, &nothing) {
		fmt.Fprintln(cmd.OutOrStdout(), capitalize(nothing.Error())+".")
		return nil
	}
	if err != nil {
		return fmt.Errorf("start review: %w", err)
	}

	res, err := review.Run(ctx, e.trainer.Sessions(), h, deckLabel(deck))
	if err != nil {
		if errors.Is(err, review.ErrAborted) {
			return nil
		}
		return err
	}
	e.logger.Info("review finished",
		"user", user, "graded", res.GradedCount, "correct", res.CorrectCount, "cancelled", res.Cancelled)
	return nil
}

func init() {
	reviewCmd.Flags().StringP("deck", "d", "", "Deck to review (default \"default\")")
	reviewCmd.Flags().IntP("new-card-limit", "n", 0, "Maximum new cards to introduce (overrides session.new_card_limit)")
	reviewCmd.Flags().String("order", "", "Card order: shuffle or due-first")
}
