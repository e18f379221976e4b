package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vocabo",
	Short: "Spaced-repetition vocabulary trainer",
	Long: "Vocabo is a terminal flashcard trainer. It schedules vocabulary with SM-2,\n" +
		"tracks streaks and achievements, and can translate new words with an LLM.\n\n" +
		"Run without a subcommand to review the default deck.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReview(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/vocabo/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides VOCABO_DB)")
	pf.StringP("user", "u", "", "Learner profile to act for")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
