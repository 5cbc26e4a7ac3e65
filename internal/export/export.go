package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/emRival/rekap-absensi/internal/calendar"
	"github.com/emRival/rekap-absensi/internal/classify"
	"github.com/emRival/rekap-absensi/internal/recap"
)

// Report is everything an exporter needs to render one recap run.
type Report struct {
	Title      string
	StartMonth time.Month
	EndMonth   time.Month
	Year       int
	Records    []recap.Record
}

// Period renders the evaluation window, e.g. "June - July 2025".
func (r Report) Period() string {
	if r.StartMonth == r.EndMonth {
		return fmt.Sprintf("%s %d", r.StartMonth, r.Year)
	}
	return fmt.Sprintf("%s - %s %d", r.StartMonth, r.EndMonth, r.Year)
}

// Formats lists the supported export formats.
var Formats = []string{"csv", "json", "md", "html", "pdf"}

// Write renders rep in the given format.
func Write(w io.Writer, format string, rep Report) error {
	switch format {
	case "csv":
		return WriteCSV(w, rep.Records)
	case "json":
		return WriteJSON(w, rep.Records)
	case "md":
		return WriteMarkdown(w, rep)
	case "html":
		return WriteHTML(w, rep)
	case "pdf":
		return WritePDF(w, rep)
	}
	return fmt.Errorf("unsupported export format %q (supported: csv, json, md, html, pdf)", format)
}

var categoryLabels = map[classify.Category]string{
	classify.Absent:           "Absent",
	classify.Incomplete:       "Incomplete",
	classify.ExcessiveEntries: "Excessive Entries",
	classify.LateArrival:      "Late Arrival",
	classify.EarlyDeparture:   "Early Departure",
}

// Label returns the column title of a category.
func Label(c classify.Category) string {
	return categoryLabels[c]
}

// Columns returns the flat tabular header: identity, tier, then a count
// and a date list per category.
func Columns() []string {
	cols := []string{"Name", "Role", "Tier"}
	for _, c := range classify.Categories {
		cols = append(cols, Label(c), Label(c)+" Dates")
	}
	return cols
}

// Values returns the tabular row of a record, aligned with Columns.
func Values(r recap.Record) []string {
	vals := []string{r.Name, r.Role, r.Tier.String()}
	for _, c := range classify.Categories {
		vals = append(vals, strconv.Itoa(r.Count(c)), calendar.FormatDates(r.Dates(c)))
	}
	return vals
}

// WriteCSV writes one line per record under the Columns header.
func WriteCSV(w io.Writer, records []recap.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns()); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(Values(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Bucket is the serialized form of one exception category.
type Bucket struct {
	Count int      `json:"count"`
	Dates []string `json:"dates"`
}

// JSONRecord is the serialized form of a record.
type JSONRecord struct {
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	Tier          recap.Tier `json:"tier"`
	EvaluableDays int        `json:"evaluable_days"`
	TotalIssues   int        `json:"total_issues"`
	Absent        Bucket     `json:"absent"`
	Incomplete    Bucket     `json:"incomplete"`
	Excessive     Bucket     `json:"excessive_entries"`
	Late          Bucket     `json:"late_arrival"`
	Early         Bucket     `json:"early_departure"`
}

func bucket(dates []time.Time) Bucket {
	b := Bucket{Count: len(dates), Dates: make([]string, len(dates))}
	for i, d := range dates {
		b.Dates[i] = calendar.FormatDate(d)
	}
	return b
}

// ToJSON converts records into their serialized form.
func ToJSON(records []recap.Record) []JSONRecord {
	out := make([]JSONRecord, len(records))
	for i, r := range records {
		out[i] = JSONRecord{
			Name:          r.Name,
			Role:          r.Role,
			Tier:          r.Tier,
			EvaluableDays: r.EvaluableDays,
			TotalIssues:   r.TotalIssues(),
			Absent:        bucket(r.Absent),
			Incomplete:    bucket(r.Incomplete),
			Excessive:     bucket(r.Excessive),
			Late:          bucket(r.Late),
			Early:         bucket(r.Early),
		}
	}
	return out
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []recap.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToJSON(records))
}
