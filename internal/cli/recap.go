package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/emRival/rekap-absensi/internal/calendar"
	"github.com/emRival/rekap-absensi/internal/export"
	"github.com/emRival/rekap-absensi/internal/recap"
	"github.com/emRival/rekap-absensi/internal/role"
	"github.com/emRival/rekap-absensi/internal/settings"
	"github.com/emRival/rekap-absensi/internal/sheet"
	"github.com/emRival/rekap-absensi/internal/stringutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultTitle = "Rekap Absensi"

// recapFlags holds the raw flag values of the recap command.
type recapFlags struct {
	file       string
	startMonth string
	endMonth   string
	year       string
	roles      string
	export     string
	output     string
	workers    string
	headerRow  string
	title      string
	daysOff    []string
}

var recapCmd = LeafCommand{
	Use:   "recap",
	Short: "Classify an attendance sheet and show or export the recap",
	StrFlags: []StringFlag{
		{Name: "file", Usage: "attendance sheet (.xlsx or .csv)"},
		{Name: "start-month", Usage: "month of the first header column 1-12 (default: current month)"},
		{Name: "end-month", Usage: "month the header wraps into 1-12 (default: the month after --start-month)"},
		{Name: "year", Usage: "year of the window (default: current year)"},
		{Name: "roles", Usage: "role file (.json, .yaml or .toml) layered over saved roles"},
		{Name: "export", Usage: "export format (csv, json, md, html, pdf)"},
		{Name: "output", Usage: "export path (default: <file>-<year>-<start>-<end>.<format>)"},
		{Name: "workers", Usage: "rows classified concurrently (default: number of CPUs)"},
		{Name: "header-row", Usage: "1-based row holding the day numbers", Default: "5"},
		{Name: "title", Usage: "report title", Default: defaultTitle},
	},
	SliceFlags: []StringSliceFlag{
		{Name: "day-off", Usage: `day off for everyone, e.g. "every sunday" or 2025-06-17 (repeatable)`},
	},
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "overwrite an existing export without asking"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		var f recapFlags
		f.file, _ = cmd.Flags().GetString("file")
		f.startMonth, _ = cmd.Flags().GetString("start-month")
		f.endMonth, _ = cmd.Flags().GetString("end-month")
		f.year, _ = cmd.Flags().GetString("year")
		f.roles, _ = cmd.Flags().GetString("roles")
		f.export, _ = cmd.Flags().GetString("export")
		f.output, _ = cmd.Flags().GetString("output")
		f.workers, _ = cmd.Flags().GetString("workers")
		f.headerRow, _ = cmd.Flags().GetString("header-row")
		f.title, _ = cmd.Flags().GetString("title")
		f.daysOff, _ = cmd.Flags().GetStringArray("day-off")

		yes, _ := cmd.Flags().GetBool("yes")

		return runRecap(cmd, homeDir, f, ResolveConfirmFunc(yes), getLogger(), time.Now)
	},
}.Build()

func runRecap(cmd *cobra.Command, homeDir string, f recapFlags, confirm ConfirmFunc, log *zap.Logger, nowFn func() time.Time) error {
	if f.file == "" {
		return fmt.Errorf("--file is required")
	}

	start, end, year, err := parseWindowFlags(f.startMonth, f.endMonth, f.year, nowFn())
	if err != nil {
		return err
	}

	workers := 0
	if f.workers != "" {
		workers, err = strconv.Atoi(f.workers)
		if err != nil || workers < 1 {
			return fmt.Errorf("invalid --workers value %q (expected a positive number)", f.workers)
		}
	}

	layout, err := parseLayoutFlags(f.headerRow)
	if err != nil {
		return err
	}

	cfg, err := settings.ReadConfig(homeDir)
	if err != nil {
		return err
	}

	table, err := loadRoleTable(cfg, f.roles, log)
	if err != nil {
		return err
	}

	rules, err := calendar.ParseDaysOff(append(append([]string{}, cfg.DaysOff...), f.daysOff...))
	if err != nil {
		return err
	}

	s, err := sheet.Load(f.file, layout)
	if err != nil {
		return err
	}

	g := s.Grid(start, end, year)
	off, err := g.DaysOff(rules)
	if err != nil {
		return err
	}

	records, err := recap.Build(g, table,
		recap.WithLogger(log),
		recap.WithWorkers(workers),
		recap.WithDaysOff(off),
	)
	var lenErr *recap.RowLengthError
	if errors.As(err, &lenErr) {
		return fmt.Errorf("%s: %w", f.file, err)
	}
	if err != nil {
		return err
	}

	rep := export.Report{
		Title:      f.title,
		StartMonth: start,
		EndMonth:   end,
		Year:       year,
		Records:    records,
	}
	if rep.Title == "" {
		rep.Title = defaultTitle
	}

	if len(records) == 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No employees found in %s.\n", f.file)
		return nil
	}

	if f.export == "" {
		return runRecapTable(cmd, rep)
	}
	return exportRecap(cmd, rep, f, confirm)
}

func exportRecap(cmd *cobra.Command, rep export.Report, f recapFlags, confirm ConfirmFunc) error {
	format := strings.ToLower(f.export)
	if !isExportFormat(format) {
		return fmt.Errorf("unsupported export format %q (supported: %s)", f.export, strings.Join(export.Formats, ", "))
	}

	outputPath := f.output
	if outputPath == "" {
		outputPath = exportFileName(f.file, format, rep)
	}

	if _, err := os.Stat(outputPath); err == nil {
		ok, err := confirm(fmt.Sprintf("%s already exists. Overwrite?", outputPath))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
			return nil
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := export.Write(out, format, rep); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported recap to %s\n", Primary(outputPath))
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), Silent(summaryLine(recap.Summarize(rep.Records))))
	return nil
}

func isExportFormat(format string) bool {
	for _, f := range export.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// exportFileName derives "<slug>-<year>-<mm>-<mm>.<ext>" from the input path.
func exportFileName(input, format string, rep export.Report) string {
	slug := stringutil.FileSlug(input, "rekap")
	return fmt.Sprintf("%s-%d-%02d-%02d.%s", slug, rep.Year, rep.StartMonth, rep.EndMonth, format)
}

// loadRoleTable layers the saved roles and an optional role file over the
// built-in table. Thresholds that are not HH:MM are kept but logged.
func loadRoleTable(cfg *settings.Config, rolesFile string, log *zap.Logger) (*role.Table, error) {
	table, err := cfg.Table(role.DefaultTable())
	if err != nil {
		return nil, fmt.Errorf("saved roles: %w", err)
	}
	if rolesFile != "" {
		table, err = role.LoadFile(rolesFile, table)
		if err != nil {
			return nil, err
		}
	}
	for _, c := range table.Configs() {
		if err := c.Validate(); err != nil {
			log.Warn("role threshold is compared as text", zap.Error(err))
		}
	}
	return table, nil
}

func parseMonthFlag(name, value string) (time.Month, error) {
	m, err := strconv.Atoi(value)
	if err != nil || m < 1 || m > 12 {
		return 0, fmt.Errorf("invalid --%s value %q (expected 1-12)", name, value)
	}
	return time.Month(m), nil
}

// parseWindowFlags resolves --start-month, --end-month and --year.
// The start month defaults to the current month and the end month to the
// month after it, staying in December for a December start.
func parseWindowFlags(startFlag, endFlag, yearFlag string, now time.Time) (start, end time.Month, year int, err error) {
	year = now.Year()
	if yearFlag != "" {
		y, convErr := strconv.Atoi(yearFlag)
		if convErr != nil || y <= 0 {
			return 0, 0, 0, fmt.Errorf("invalid --year value %q (expected a positive number)", yearFlag)
		}
		year = y
	}

	start = now.Month()
	if startFlag != "" {
		if start, err = parseMonthFlag("start-month", startFlag); err != nil {
			return 0, 0, 0, err
		}
	}

	end = start + 1
	if start == time.December {
		end = time.December
	}
	if endFlag != "" {
		if end, err = parseMonthFlag("end-month", endFlag); err != nil {
			return 0, 0, 0, err
		}
	}

	return start, end, year, nil
}

// parseLayoutFlags builds the sheet layout from the 1-based --header-row.
func parseLayoutFlags(headerRow string) (sheet.Layout, error) {
	layout := sheet.DefaultLayout()
	if headerRow == "" {
		return layout, nil
	}
	n, err := strconv.Atoi(headerRow)
	if err != nil || n < 1 {
		return layout, fmt.Errorf("invalid --header-row value %q (expected a positive number)", headerRow)
	}
	layout.HeaderRow = n - 1
	layout.FirstDataRow = n
	return layout, nil
}
