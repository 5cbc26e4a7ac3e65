package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/emRival/rekap-absensi/internal/punch"
	"github.com/emRival/rekap-absensi/internal/role"
	"github.com/emRival/rekap-absensi/internal/settings"
	"github.com/spf13/cobra"
)

var rolesSetCmd = LeafCommand{
	Use:   "set NAME",
	Short: "Add or change a role's check-in and check-out thresholds",
	Args:  cobra.ExactArgs(1),
	StrFlags: []StringFlag{
		{Name: "check-in", Usage: "latest on-time check-in (HH:MM)"},
		{Name: "check-out", Usage: "earliest on-time check-out (HH:MM)"},
	},
	BoolFlags: []BoolFlag{
		{Name: "overnight", Usage: "check-out happens on the next day"},
		{Name: "default", Usage: "use this role for unknown role names"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		checkIn, _ := cmd.Flags().GetString("check-in")
		checkOut, _ := cmd.Flags().GetString("check-out")
		overnight, _ := cmd.Flags().GetBool("overnight")
		makeDefault, _ := cmd.Flags().GetBool("default")
		overnightChanged := cmd.Flags().Changed("overnight")

		return runRolesSet(cmd, homeDir, args[0], checkIn, checkOut, overnight, overnightChanged, makeDefault, NewPromptKit())
	},
}.Build()

var shiftOptions = []string{"daytime (same-day check-out)", "overnight (check-out next day)"}

func runRolesSet(
	cmd *cobra.Command,
	homeDir, name, checkIn, checkOut string,
	overnight, overnightChanged, makeDefault bool,
	pk PromptKit,
) error {
	name = role.NormalizeName(name)
	if name == "" {
		return fmt.Errorf("role name is required")
	}

	cfg, err := settings.ReadConfig(homeDir)
	if err != nil {
		return err
	}
	table, err := cfg.Table(role.DefaultTable())
	if err != nil {
		return err
	}
	current, exists := table.Lookup(name)

	prompted := false
	if checkIn == "" {
		if checkIn, err = promptThreshold(pk.Prompt, fmt.Sprintf("Check-in threshold for %s (HH:MM)", name), current.CheckIn); err != nil {
			return err
		}
		prompted = true
	}
	if checkOut == "" {
		if checkOut, err = promptThreshold(pk.Prompt, fmt.Sprintf("Check-out threshold for %s (HH:MM)", name), current.CheckOut); err != nil {
			return err
		}
		prompted = true
	}

	shift := current.Shift
	switch {
	case overnightChanged:
		shift = role.DaytimeShift
		if overnight {
			shift = role.OvernightShift
		}
	case prompted || !exists:
		idx, err := pk.Select(fmt.Sprintf("Shift model for %s", name), shiftOptions)
		if err != nil {
			return err
		}
		shift = role.Shift(idx)
	}

	if checkIn, err = normalizeThreshold("check-in", checkIn); err != nil {
		return err
	}
	if checkOut, err = normalizeThreshold("check-out", checkOut); err != nil {
		return err
	}

	c := role.Config{Name: name, CheckIn: checkIn, CheckOut: checkOut, Shift: shift}

	cfg.SetRole(c)
	if makeDefault {
		cfg.Default = name
	}
	if err := settings.WriteConfig(homeDir, cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("role %s saved: in %s, out %s, %s",
		Primary(name), c.CheckIn, c.CheckOut, c.Shift)))
	return nil
}

// promptThreshold asks for an HH:MM value; an empty answer keeps current.
func promptThreshold(prompt PromptFunc, title, current string) (string, error) {
	if current != "" {
		title = fmt.Sprintf("%s [%s]", title, current)
	}
	answer, err := prompt(title)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = current
	}
	return answer, nil
}

// normalizeThreshold zero-pads a threshold such as "7:30" to "07:30".
func normalizeThreshold(label, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%s threshold is required", label)
	}
	tok, err := punch.ParseToken(value)
	if err != nil {
		return "", fmt.Errorf("invalid %s threshold: %w", label, err)
	}
	return tok.String(), nil
}
