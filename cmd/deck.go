package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabo/internal/cards"
	"github.com/abhisek/vocabo/internal/trainer"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage decks",
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List decks with card counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		decks, err := e.trainer.Decks(cmd.Context(), e.cfg.User)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(decks) == 0 {
			fmt.Fprintln(out, "No decks yet. Add a card with: vocabo add <front> <back>")
			return nil
		}

		fmt.Fprintf(out, "%-24s  %6s  %5s  %5s  %8s\n", "Deck", "Cards", "Due", "New", "Mastered")
		fmt.Fprintln(out, strings.Repeat(rule, 56))
		for _, d := range decks {
			fmt.Fprintf(out, "%-24s  %6d  %5d  %5d  %8d\n",
				truncate(d.Deck.Name, 24), d.Stats.Total, d.Stats.Due,
				d.Stats.ByMaturity[cards.MaturityNew], d.Stats.ByMaturity[cards.MaturityMastered])
		}
		return nil
	},
}

var deckCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		d, err := e.trainer.CreateDeck(cmd.Context(), e.cfg.User, args[0])
		if err != nil {
			return fmt.Errorf("create deck: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created deck %s\n", d.Name)
		return nil
	},
}

var deckExportCmd = &cobra.Command{
	Use:   "export [deck]",
	Short: "Export a deck as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")
		name := ""
		if len(args) == 1 {
			name = args[0]
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		var w io.Writer = cmd.OutOrStdout()
		if outPath != "" && outPath != "-" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			defer f.Close()
			w = f
		}

		n, err := e.trainer.ExportDeck(cmd.Context(), e.cfg.User, name, w)
		if err != nil {
			return fmt.Errorf("export deck: %w", err)
		}
		if outPath != "" && outPath != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d cards to %s\n", n, outPath)
		}
		return nil
	},
}

var deckImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import cards from a YAML deck file (\"-\" reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deck, _ := cmd.Flags().GetString("deck")
		reset, _ := cmd.Flags().GetBool("reset")

		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.trainer.ImportDeck(cmd.Context(), e.cfg.User, r, trainer.ImportOptions{Deck: deck, Reset: reset})
		if err != nil {
			return fmt.Errorf("import deck: %w", err)
		}
		note := ""
		if res.Created {
			note = " (new deck)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cards into %s%s\n", res.Added, res.Deck.Name, note)
		return nil
	},
}

func init() {
	deckExportCmd.Flags().StringP("out", "o", "", "Write to file instead of stdout")
	deckImportCmd.Flags().StringP("deck", "d", "", "Target deck (default: the name stored in the file)")
	deckImportCmd.Flags().Bool("reset", false, "Import cards as new, discarding their scheduling")

	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckCreateCmd)
	deckCmd.AddCommand(deckExportCmd)
	deckCmd.AddCommand(deckImportCmd)
}
