package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Release builds stamp these with -ldflags "-X github.com/abhisek/vocabo/cmd.version=...".
var (
	version = "(devel)"
	commit  = ""
)

func versionString() string {
	if commit == "" {
		return "vocabo " + version
	}
	return "vocabo " + version + " (" + commit + ")"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the vocabo version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
	},
}
