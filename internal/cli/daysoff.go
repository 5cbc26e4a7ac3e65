package cli

import (
	"fmt"
	"os"

	"github.com/emRival/rekap-absensi/internal/calendar"
	"github.com/emRival/rekap-absensi/internal/settings"
	"github.com/spf13/cobra"
)

var daysOffCmd = GroupCommand{
	Use:   "days-off",
	Short: "Manage saved days off applied to every recap",
	Subcommands: []*cobra.Command{
		daysOffListCmd,
		daysOffAddCmd,
		daysOffClearCmd,
	},
}.Build()

var daysOffListCmd = LeafCommand{
	Use:   "list",
	Short: "List saved days off",
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		return runDaysOffList(cmd, homeDir)
	},
}.Build()

var daysOffAddCmd = LeafCommand{
	Use:   "add RULE",
	Short: `Save a day off, e.g. "every sunday", "weekends" or 2025-06-17`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		return runDaysOffAdd(cmd, homeDir, args[0])
	},
}.Build()

var daysOffClearCmd = LeafCommand{
	Use:   "clear",
	Short: "Remove all saved days off",
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")
		return runDaysOffClear(cmd, homeDir, ResolveConfirmFunc(yes))
	},
}.Build()

func runDaysOffList(cmd *cobra.Command, homeDir string) error {
	cfg, err := settings.ReadConfig(homeDir)
	if err != nil {
		return err
	}

	if len(cfg.DaysOff) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Silent("No days off saved."))
		return nil
	}
	for i, rule := range cfg.DaysOff {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", Silent(fmt.Sprintf("%d.", i+1)), Primary(rule))
	}
	return nil
}

func runDaysOffAdd(cmd *cobra.Command, homeDir, rule string) error {
	if _, err := calendar.ParseDayOff(rule); err != nil {
		return fmt.Errorf("invalid day off %q: %w", rule, err)
	}

	cfg, err := settings.ReadConfig(homeDir)
	if err != nil {
		return err
	}
	for _, existing := range cfg.DaysOff {
		if existing == rule {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Warning(fmt.Sprintf("day off %q is already saved", rule)))
			return nil
		}
	}

	cfg.DaysOff = append(cfg.DaysOff, rule)
	if err := settings.WriteConfig(homeDir, cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("day off %s saved", Primary(rule))))
	return nil
}

func runDaysOffClear(cmd *cobra.Command, homeDir string, confirm ConfirmFunc) error {
	confirmed, err := confirm("Remove all saved days off?")
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
	cfg.DaysOff = nil
	if err := settings.WriteConfig(homeDir, cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text("days off cleared"))
	return nil
}
