package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emRival/rekap-absensi/internal/calendar"
	"github.com/emRival/rekap-absensi/internal/classify"
	"github.com/emRival/rekap-absensi/internal/export"
	"github.com/emRival/rekap-absensi/internal/recap"
)

var countHeaders = map[classify.Category]string{
	classify.Absent:           "Abs",
	classify.Incomplete:       "Inc",
	classify.ExcessiveEntries: ">2x",
	classify.LateArrival:      "Late",
	classify.EarlyDeparture:   "Early",
}

func (m recapModel) View() string {
	var b strings.Builder
	b.WriteString(renderRecapTable(m.report, m.scrollY, m.visibleRows(), m.cursorRow))

	if m.cursorRow >= 0 && m.cursorRow < len(m.report.Records) {
		b.WriteString(renderRecordDetails(m.report.Records[m.cursorRow]))
	}

	b.WriteString("\n")
	footer := fmt.Sprintf("%s  |  %s  |  ↑/↓ navigate  |  g/G first/last  |  q quit",
		m.report.Period(), summaryLine(m.summary))
	b.WriteString(footerStyle.Render(footer))
	b.WriteString("\n")
	return b.String()
}

func separator() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("-", nameColWidth))
	b.WriteString("-+-")
	b.WriteString(strings.Repeat("-", roleColWidth))
	b.WriteString("-+-")
	b.WriteString(strings.Repeat("-", tierColWidth))
	for range classify.Categories {
		b.WriteString("-+-")
		b.WriteString(strings.Repeat("-", countColWidth))
	}
	b.WriteString("\n")
	return b.String()
}

// renderRecapTable renders visibleRows records starting at scrollY. The
// record at cursorRow is highlighted; -1 highlights nothing.
func renderRecapTable(rep export.Report, scrollY, visibleRows, cursorRow int) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("--- %s, %s ---", rep.Title, rep.Period())))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render(padRight("Name", nameColWidth)))
	b.WriteString(" | ")
	b.WriteString(headerStyle.Render(padRight("Role", roleColWidth)))
	b.WriteString(" | ")
	b.WriteString(headerStyle.Render(padRight("Tier", tierColWidth)))
	for _, c := range classify.Categories {
		b.WriteString(" | ")
		b.WriteString(headerStyle.Render(padCenter(countHeaders[c], countColWidth)))
	}
	b.WriteString("\n")
	b.WriteString(separator())

	end := scrollY + visibleRows
	if end > len(rep.Records) {
		end = len(rep.Records)
	}
	for i := scrollY; i < end; i++ {
		b.WriteString(renderRecordRow(rep.Records[i], i == cursorRow))
		b.WriteString("\n")
	}
	b.WriteString(separator())

	return b.String()
}

func renderRecordRow(r recap.Record, selected bool) string {
	name := r.Name
	if len([]rune(name)) > nameColWidth {
		name = string([]rune(name)[:nameColWidth-3]) + "..."
	}
	name = padRight(name, nameColWidth)
	if selected {
		name = selectedStyle.Render(name)
	}

	role := padRight(r.Role, roleColWidth)
	if r.RoleFallback {
		role = Warning(role)
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString(" | ")
	b.WriteString(role)
	b.WriteString(" | ")
	b.WriteString(tierStyles[r.Tier].Render(padRight(r.Tier.String(), tierColWidth)))
	for _, c := range classify.Categories {
		b.WriteString(" | ")
		n := r.Count(c)
		cell := padCenter(strconv.Itoa(n), countColWidth)
		if n == 0 {
			cell = dotStyle.Render(padCenter(".", countColWidth))
		}
		b.WriteString(cell)
	}
	return b.String()
}

// renderRecordDetails lists the dates behind each count of r.
func renderRecordDetails(r recap.Record) string {
	var b strings.Builder
	for _, c := range classify.Categories {
		dates := calendar.FormatDates(r.Dates(c))
		if dates == "" {
			dates = Silent("-")
		}
		fmt.Fprintf(&b, "%s %s\n", Info(padRight(export.Label(c)+":", 18)), dates)
	}
	return b.String()
}

func summaryLine(s recap.Summary) string {
	line := fmt.Sprintf("%d employees, %d issues, %d excessive-entry days", s.Employees, s.Issues, s.Excessive)
	if s.RoleFallbacks > 0 {
		line += fmt.Sprintf(", %d role fallbacks", s.RoleFallbacks)
	}
	return line
}

func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-n)
}

func padCenter(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return string([]rune(s)[:width])
	}
	total := width - n
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
