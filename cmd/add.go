package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <front> <back>",
	Short: "Add a card (native word first, target word second)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deck, _ := cmd.Flags().GetString("deck")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		added, err := e.trainer.AddCard(cmd.Context(), e.cfg.User, deck, args[0], args[1])
		if err != nil {
			return fmt.Errorf("add card: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Added %s → %s to %s\n", added.Card.Front, added.Card.Back, added.Deck.Name)
		printUnlocked(out, added.Unlocked)
		return nil
	},
}

func init() {
	addCmd.Flags().StringP("deck", "d", "", "Deck to add to (created if missing)")
}
