package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/emRival/rekap-absensi/internal/role"
	"github.com/emRival/rekap-absensi/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
}

const recapCSV = `LAPORAN ABSENSI,,,,,,
,,,,,,
,,,,,,
,,,,,,
Nama,Role,28,29,30,1,2
Siti,SMPSMK,"07:30
15:00",,"07:00
15:00",L,"07:00
15:00"
Budi,guru,"07:00
15:00","07:00
15:00","07:00
15:00","07:00
15:00","07:00
15:00"
`

type jsonBucket struct {
	Count int      `json:"count"`
	Dates []string `json:"dates"`
}

type jsonRecord struct {
	Name   string     `json:"name"`
	Role   string     `json:"role"`
	Tier   string     `json:"tier"`
	Absent jsonBucket `json:"absent"`
	Late   jsonBucket `json:"late_arrival"`
}

func setupRecapTest(t *testing.T) (homeDir, file string) {
	t.Helper()
	t.Setenv(settings.HomeEnv, "")
	homeDir = t.TempDir()
	file = filepath.Join(t.TempDir(), "Absensi Juni.csv")
	require.NoError(t, os.WriteFile(file, []byte(recapCSV), 0644))
	return homeDir, file
}

func execRecap(homeDir string, f recapFlags, confirm ConfirmFunc) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := recapCmd
	cmd.SetOut(stdout)
	err := runRecap(cmd, homeDir, f, confirm, zap.NewNop(), fixedNow)
	return stdout.String(), err
}

func readJSONExport(t *testing.T, path string) []jsonRecord {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []jsonRecord
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

func TestRecapStaticTable(t *testing.T) {
	homeDir, file := setupRecapTest(t)

	stdout, err := execRecap(homeDir, recapFlags{file: file, title: defaultTitle}, AlwaysYes())

	require.NoError(t, err)
	assert.Contains(t, stdout, "Rekap Absensi, June - July 2025")
	assert.Contains(t, stdout, "Siti")
	assert.Contains(t, stdout, "Poor")
	assert.Contains(t, stdout, "Budi")
	assert.Contains(t, stdout, "Excellent")
	assert.Contains(t, stdout, "2 employees, 2 issues, 0 excessive-entry days, 1 role fallbacks")
}

func TestRecapExportJSON(t *testing.T) {
	homeDir, file := setupRecapTest(t)
	out := filepath.Join(t.TempDir(), "recap.json")

	stdout, err := execRecap(homeDir, recapFlags{file: file, export: "json", output: out}, AlwaysYes())

	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported recap to")

	records := readJSONExport(t, out)
	require.Len(t, records, 2)
	assert.Equal(t, "Siti", records[0].Name)
	assert.Equal(t, []string{"29-Jun"}, records[0].Absent.Dates)
	assert.Equal(t, []string{"28-Jun"}, records[0].Late.Dates)
	assert.Equal(t, "SMPSMK", records[1].Role)
}

func TestRecapExportDefaultPath(t *testing.T) {
	homeDir, file := setupRecapTest(t)
	t.Chdir(t.TempDir())

	_, err := execRecap(homeDir, recapFlags{file: file, export: "csv"}, AlwaysYes())

	require.NoError(t, err)
	_, err = os.Stat("absensi-juni-2025-06-07.csv")
	assert.NoError(t, err)
}

func TestRecapExportEveryFormat(t *testing.T) {
	homeDir, file := setupRecapTest(t)
	dir := t.TempDir()

	for _, format := range []string{"csv", "json", "md", "html", "pdf"} {
		t.Run(format, func(t *testing.T) {
			out := filepath.Join(dir, "recap."+format)
			_, err := execRecap(homeDir, recapFlags{file: file, export: format, output: out}, AlwaysYes())
			require.NoError(t, err)

			info, err := os.Stat(out)
			require.NoError(t, err)
			assert.NotZero(t, info.Size())
		})
	}
}

func TestRecapExportOverwriteDeclined(t *testing.T) {
	homeDir, file := setupRecapTest(t)
	out := filepath.Join(t.TempDir(), "recap.csv")
	require.NoError(t, os.WriteFile(out, []byte("keep"), 0644))

	decline := func(_ string) (bool, error) { return false, nil }
	stdout, err := execRecap(homeDir, recapFlags{file: file, export: "csv", output: out}, decline)

	require.NoError(t, err)
	assert.Contains(t, stdout, "cancelled")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestRecapDayOffFlag(t *testing.T) {
	homeDir, file := setupRecapTest(t)
	out := filepath.Join(t.TempDir(), "recap.json")

	_, err := execRecap(homeDir, recapFlags{file: file, export: "json", output: out, daysOff: []string{"every sunday"}}, AlwaysYes())
	require.NoError(t, err)

	// 29 June 2025 is a Sunday.
	records := readJSONExport(t, out)
	assert.Zero(t, records[0].Absent.Count)
}

func TestRecapSavedSettings(t *testing.T) {
	homeDir, file := setupRecapTest(t)
	out := filepath.Join(t.TempDir(), "recap.json")

	cfg := &settings.Config{DaysOff: []string{"2025-06-29"}}
	cfg.SetRole(role.Config{Name: "GURU", CheckIn: "07:30", CheckOut: "14:00"})
	require.NoError(t, settings.WriteConfig(homeDir, cfg))

	_, err := execRecap(homeDir, recapFlags{file: file, export: "json", output: out}, AlwaysYes())
	require.NoError(t, err)

	records := readJSONExport(t, out)
	assert.Zero(t, records[0].Absent.Count)
	assert.Equal(t, "GURU", records[1].Role)
	assert.Equal(t, "Excellent", records[1].Tier)
}

func TestRecapRolesFile(t *testing.T) {
	homeDir, file := setupRecapTest(t)
	out := filepath.Join(t.TempDir(), "recap.json")
	rolesFile := filepath.Join(t.TempDir(), "roles.yaml")
	require.NoError(t, os.WriteFile(rolesFile, []byte("roles:\n  SMPSMK:\n    check_in: \"07:45\"\n    check_out: \"15:00\"\n"), 0644))

	_, err := execRecap(homeDir, recapFlags{file: file, export: "json", output: out, roles: rolesFile}, AlwaysYes())
	require.NoError(t, err)

	records := readJSONExport(t, out)
	assert.Zero(t, records[0].Late.Count)
}

func TestRecapNoEmployees(t *testing.T) {
	homeDir, _ := setupRecapTest(t)
	file := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(file, []byte(",,\n,,\n,,\n,,\nNama,Role,1\n"), 0644))

	stdout, err := execRecap(homeDir, recapFlags{file: file}, AlwaysYes())

	require.NoError(t, err)
	assert.Contains(t, stdout, "No employees found")
}

func TestRecapErrors(t *testing.T) {
	homeDir, file := setupRecapTest(t)

	tests := []struct {
		name  string
		flags recapFlags
		msg   string
	}{
		{"missing file flag", recapFlags{}, "--file is required"},
		{"missing file", recapFlags{file: filepath.Join(t.TempDir(), "nope.csv")}, "nope.csv"},
		{"bad start month", recapFlags{file: file, startMonth: "13"}, "--start-month"},
		{"bad end month", recapFlags{file: file, endMonth: "x"}, "--end-month"},
		{"bad year", recapFlags{file: file, year: "-1"}, "--year"},
		{"bad workers", recapFlags{file: file, workers: "0"}, "--workers"},
		{"bad header row", recapFlags{file: file, headerRow: "0"}, "--header-row"},
		{"bad day off", recapFlags{file: file, daysOff: []string{"sometimes"}}, "sometimes"},
		{"bad export", recapFlags{file: file, export: "docx"}, "unsupported export format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execRecap(homeDir, tt.flags, AlwaysYes())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseWindowFlags(t *testing.T) {
	now := fixedNow()

	tests := []struct {
		name       string
		start, end string
		year       string
		wantStart  time.Month
		wantEnd    time.Month
		wantYear   int
	}{
		{"defaults", "", "", "", time.June, time.July, 2025},
		{"start only", "3", "", "", time.March, time.April, 2025},
		{"december start", "12", "", "", time.December, time.December, 2025},
		{"explicit", "6", "6", "2024", time.June, time.June, 2024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, year, err := parseWindowFlags(tt.start, tt.end, tt.year, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.Equal(t, tt.wantYear, year)
		})
	}
}

func TestParseLayoutFlags(t *testing.T) {
	layout, err := parseLayoutFlags("1")
	require.NoError(t, err)
	assert.Equal(t, 0, layout.HeaderRow)
	assert.Equal(t, 1, layout.FirstDataRow)

	layout, err = parseLayoutFlags("")
	require.NoError(t, err)
	assert.Equal(t, 4, layout.HeaderRow)
}
