package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabo/internal/trainer"
)

var translateCmd = &cobra.Command{
	Use:   "translate <text>",
	Short: "Translate a word or phrase, optionally saving it as a card",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		add, _ := cmd.Flags().GetBool("add")
		deck, _ := cmd.Flags().GetString("deck")
		text := strings.Join(args, " ")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		if !add {
			res, err := e.trainer.Translate(ctx, e.cfg.User, text)
			if err != nil {
				return translateErr(err, e.llmErr)
			}
			fmt.Fprintln(out, res)
			return nil
		}

		res, added, err := e.trainer.QuickAdd(ctx, e.cfg.User, deck, text)
		if err != nil {
			return translateErr(err, e.llmErr)
		}
		fmt.Fprintln(out, res)
		fmt.Fprintf(out, "Added %s → %s to %s\n", added.Card.Front, added.Card.Back, added.Deck.Name)
		printUnlocked(out, added.Unlocked)
		return nil
	},
}

func translateErr(err, cause error) error {
	if errors.Is(err, trainer.ErrNoTranslator) {
		return fmt.Errorf("%w (%v): set llm.provider and an API key, or export GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY", err, cause)
	}
	return fmt.Errorf("translate: %w", err)
}

func init() {
	translateCmd.Flags().BoolP("add", "a", false, "Save the translation as a card")
	translateCmd.Flags().StringP("deck", "d", "", "Deck for --add (created if missing)")
	translateCmd.Flags().String("provider", "", "LLM provider: anthropic, openai, gemini or openrouter")
}
