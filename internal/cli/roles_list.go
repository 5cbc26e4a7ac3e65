package cli

import (
	"fmt"
	"os"

	"github.com/emRival/rekap-absensi/internal/role"
	"github.com/emRival/rekap-absensi/internal/settings"
	"github.com/spf13/cobra"
)

var rolesListCmd = LeafCommand{
	Use:   "list",
	Short: "List the configured roles and their thresholds",
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		return runRolesList(cmd, homeDir)
	},
}.Build()

func runRolesList(cmd *cobra.Command, homeDir string) error {
	cfg, err := settings.ReadConfig(homeDir)
	if err != nil {
		return err
	}
	table, err := cfg.Table(role.DefaultTable())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, c := range table.Configs() {
		marker := "  "
		if c.Name == table.DefaultName() {
			marker = "* "
		}
		_, _ = fmt.Fprintf(w, "%s%s  %s  %s\n",
			marker,
			Primary(padRight(c.Name, roleColWidth)),
			Text(fmt.Sprintf("in %s  out %s", c.CheckIn, c.CheckOut)),
			Silent(c.Shift.String()))
	}
	_, _ = fmt.Fprintln(w, Silent("* default role for unknown names"))
	return nil
}
