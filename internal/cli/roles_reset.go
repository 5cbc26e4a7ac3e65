package cli

import (
	"fmt"
	"os"

	"github.com/emRival/rekap-absensi/internal/settings"
	"github.com/spf13/cobra"
)

var rolesResetCmd = LeafCommand{
	Use:   "reset",
	Short: "Reset roles to the built-in SMPSMK, ASRAMA and MUSYRIF thresholds",
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		confirm := ResolveConfirmFunc(yes)

		return runRolesReset(cmd, homeDir, confirm)
	},
}.Build()

func runRolesReset(cmd *cobra.Command, homeDir string, confirm ConfirmFunc) error {
	confirmed, err := confirm("Reset roles to the built-in thresholds?")
	if err != nil {
		return err
	}
	if !confirmed {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
		return nil
	}

	cfg, err := settings.ReadConfig(homeDir)
	if err != nil {
		return err
	}
	cfg.Default = ""
	cfg.Roles = nil
	if err := settings.WriteConfig(homeDir, cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text("roles reset to built-in thresholds"))
	return nil
}
