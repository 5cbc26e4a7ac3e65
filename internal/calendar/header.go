package calendar

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Reconstruct maps a row of day-of-month headers onto absolute dates.
//
// The window starts in start and switches to end the first time a day is
// smaller than the previously parsed day; only one wrap is supported.
// Positions that are not a number, or that name a day the active month
// does not have, come back nil.
func Reconstruct(header []string, start, end time.Month, year int) []*time.Time {
	dates := make([]*time.Time, len(header))

	month := start
	prev, hasPrev := 0, false
	for i, raw := range header {
		day, ok := parseDay(raw)
		if !ok {
			continue
		}
		if hasPrev && day < prev {
			month = end
		}
		prev, hasPrev = day, true

		if !validMonth(month) || day < 1 || day > DaysIn(year, month) {
			continue
		}
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		dates[i] = &d
	}

	return dates
}

// parseDay reads a header cell as an integer day. Spreadsheet numbers
// rendered as "28.0" are accepted when integral.
func parseDay(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func validMonth(m time.Month) bool {
	return m >= time.January && m <= time.December
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatDate renders a date in the fixed "DD-Mon" form used by reports.
func FormatDate(t time.Time) string {
	return t.Format("02-Jan")
}

// FormatDates joins dates in "DD-Mon" form with ", ".
func FormatDates(dates []time.Time) string {
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = FormatDate(d)
	}
	return strings.Join(parts, ", ")
}

// Span returns the first and last resolved date, or false if none resolved.
func Span(dates []*time.Time) (from, to time.Time, ok bool) {
	for _, d := range dates {
		if d == nil {
			continue
		}
		if !ok || d.Before(from) {
			from = *d
		}
		if !ok || d.After(to) {
			to = *d
		}
		ok = true
	}
	return from, to, ok
}
