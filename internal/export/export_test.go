package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/emRival/rekap-absensi/internal/recap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(m time.Month, day int) time.Time {
	return time.Date(2025, m, day, 0, 0, 0, 0, time.UTC)
}

func sampleReport() Report {
	return Report{
		Title:      "Rekap Absensi",
		StartMonth: time.June,
		EndMonth:   time.July,
		Year:       2025,
		Records: []recap.Record{
			{
				Name:          "Siti",
				Role:          "SMPSMK",
				Tier:          recap.Poor,
				EvaluableDays: 4,
				Absent:        []time.Time{d(time.June, 30)},
				Late:          []time.Time{d(time.June, 29), d(time.July, 1)},
				Early:         []time.Time{d(time.June, 29)},
			},
			{
				Name:          "Ikhsan | Asrama",
				Role:          "ASRAMA",
				Tier:          recap.Excellent,
				EvaluableDays: 5,
				Excessive:     []time.Time{d(time.June, 28)},
			},
		},
	}
}

func TestPeriod(t *testing.T) {
	rep := sampleReport()
	assert.Equal(t, "June - July 2025", rep.Period())

	rep.EndMonth = time.June
	assert.Equal(t, "June 2025", rep.Period())
}

func TestColumnsAndValues(t *testing.T) {
	assert.Equal(t, []string{
		"Name", "Role", "Tier",
		"Absent", "Absent Dates",
		"Incomplete", "Incomplete Dates",
		"Excessive Entries", "Excessive Entries Dates",
		"Late Arrival", "Late Arrival Dates",
		"Early Departure", "Early Departure Dates",
	}, Columns())

	vals := Values(sampleReport().Records[0])
	assert.Equal(t, []string{
		"Siti", "SMPSMK", "Poor",
		"1", "30-Jun",
		"0", "",
		"0", "",
		"2", "29-Jun, 01-Jul",
		"1", "29-Jun",
	}, vals)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "csv", sampleReport()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns(), rows[0])
	assert.Equal(t, "Siti", rows[1][0])
	assert.Equal(t, "29-Jun, 01-Jul", rows[1][10])
	assert.Equal(t, "Ikhsan | Asrama", rows[2][0])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", sampleReport()))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "Siti", got[0]["name"])
	assert.Equal(t, "Poor", got[0]["tier"])
	assert.Equal(t, float64(4), got[0]["total_issues"])
	assert.Equal(t, map[string]any{"count": float64(2), "dates": []any{"29-Jun", "01-Jul"}}, got[0]["late_arrival"])
	assert.Equal(t, map[string]any{"count": float64(0), "dates": []any{}}, got[1]["absent"])
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "md", sampleReport()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Rekap Absensi\n\nJune - July 2025\n\n"))
	assert.Contains(t, out, "| Name | Role | Tier |")
	assert.Contains(t, out, `| Ikhsan \| Asrama | ASRAMA | Excellent |`)
	assert.Equal(t, 2+2, strings.Count(out, "\n|"))
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "html", sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "<title>Rekap Absensi</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>Name</th>")
	assert.Contains(t, out, "<td>Siti</td>")
	assert.Contains(t, out, "<td>Ikhsan | Asrama</td>")
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "pdf", sampleReport()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteUnsupported(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xlsx", sampleReport())
	assert.Error(t, err)
}
