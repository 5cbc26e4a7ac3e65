package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

var everyNWeeks = regexp.MustCompile(`^every (\d+) weeks?$`)

// DayOff is a rule naming calendar days on which nobody is expected to
// clock in. Date and RRule are mutually exclusive.
type DayOff struct {
	Source string
	Date   *time.Time
	RRule  *rrule.RRule
}

// DateSet holds days keyed by "2006-01-02".
type DateSet map[string]struct{}

// Has reports whether the set contains the calendar day of t.
func (s DateSet) Has(t time.Time) bool {
	_, ok := s[dateKey(t)]
	return ok
}

// Add inserts the calendar day of t.
func (s DateSet) Add(t time.Time) {
	s[dateKey(t)] = struct{}{}
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDayOff parses a day-off rule. Supported forms: "2025-06-17",
// "every sunday", "weekends", "every day", "every 2 weeks", and raw
// "FREQ=..." / "RRULE:..." strings.
func ParseDayOff(s string) (DayOff, error) {
	normalized := strings.TrimSpace(strings.ToLower(s))
	if normalized == "" {
		return DayOff{}, fmt.Errorf("empty day-off rule")
	}

	if d, err := time.Parse("2006-01-02", normalized); err == nil {
		return DayOff{Source: s, Date: &d}, nil
	}

	r, err := parseRecurrence(normalized)
	if err != nil {
		return DayOff{}, err
	}
	return DayOff{Source: s, RRule: r}, nil
}

// ParseDaysOff parses every rule, failing on the first invalid one.
func ParseDaysOff(rules []string) ([]DayOff, error) {
	out := make([]DayOff, 0, len(rules))
	for _, r := range rules {
		d, err := ParseDayOff(r)
		if err != nil {
			return nil, fmt.Errorf("invalid day off %q: %w", r, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// ExpandDaysOff evaluates rules into the set of days between from and to
// (inclusive).
func ExpandDaysOff(rules []DayOff, from, to time.Time) (DateSet, error) {
	set := make(DateSet)
	from = truncateToDay(from)
	to = truncateToDay(to)

	for _, rule := range rules {
		if rule.Date != nil {
			d := truncateToDay(*rule.Date)
			if !d.Before(from) && !d.After(to) {
				set.Add(d)
			}
			continue
		}
		if rule.RRule == nil {
			continue
		}

		// Unbounded rules start at the window so Between covers it.
		opts := rule.RRule.OrigOptions
		if opts.Dtstart.IsZero() {
			opts.Dtstart = from
		}
		r, err := rrule.NewRRule(opts)
		if err != nil {
			return nil, err
		}
		for _, d := range r.Between(from, to, true) {
			set.Add(d)
		}
	}

	return set, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseRecurrence parses a natural language or raw RRULE recurrence string.
func parseRecurrence(s string) (*rrule.RRule, error) {
	if strings.HasPrefix(s, "freq=") || strings.HasPrefix(s, "rrule:") {
		raw := strings.TrimPrefix(strings.ToUpper(s), "RRULE:")
		r, err := rrule.StrToRRule(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RRULE %q: %w", raw, err)
		}
		return r, nil
	}

	switch s {
	case "every day", "daily":
		return rrule.NewRRule(rrule.ROption{Freq: rrule.DAILY})

	case "every weekend", "weekends":
		return rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.SA, rrule.SU},
		})
	}

	if m := everyNWeeks.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return rrule.NewRRule(rrule.ROption{
			Freq:     rrule.WEEKLY,
			Interval: n,
		})
	}

	if strings.HasPrefix(s, "every ") {
		if wd, ok := rruleWeekdays[strings.TrimPrefix(s, "every ")]; ok {
			return rrule.NewRRule(rrule.ROption{
				Freq:      rrule.WEEKLY,
				Byweekday: []rrule.Weekday{wd},
			})
		}
	}

	return nil, fmt.Errorf("unrecognized day-off rule %q", s)
}

var rruleWeekdays = map[string]rrule.Weekday{
	"sunday":    rrule.SU,
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
}
