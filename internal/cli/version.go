package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var versionCmd = LeafCommand{
	Use:   "version",
	Short: "Print the version information",
	BoolFlags: []BoolFlag{
		{Name: "short", Usage: "print the version number only"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		short, _ := cmd.Flags().GetBool("short")
		if short {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), appVersion)
			return nil
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rekap %s (commit: %s, built: %s)\n", appVersion, appCommit, appDate)
		return nil
	},
}.Build()
