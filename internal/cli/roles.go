package cli

import "github.com/spf13/cobra"

var rolesCmd = GroupCommand{
	Use:   "roles",
	Short: "Manage role thresholds",
	Subcommands: []*cobra.Command{
		rolesListCmd,
		rolesSetCmd,
		rolesResetCmd,
	},
}.Build()
