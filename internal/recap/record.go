package recap

import (
	"time"

	"github.com/emRival/rekap-absensi/internal/classify"
)

// Record is the exception summary of one employee over the whole window.
// Every date list is in column order.
type Record struct {
	Name          string
	Role          string
	RoleFallback  bool // the roster role was unknown or blank
	Tier          Tier
	EvaluableDays int

	Absent     []time.Time
	Incomplete []time.Time
	Excessive  []time.Time
	Late       []time.Time
	Early      []time.Time
}

// Dates returns the bucket for category c.
func (r Record) Dates(c classify.Category) []time.Time {
	switch c {
	case classify.Absent:
		return r.Absent
	case classify.Incomplete:
		return r.Incomplete
	case classify.ExcessiveEntries:
		return r.Excessive
	case classify.LateArrival:
		return r.Late
	case classify.EarlyDeparture:
		return r.Early
	}
	return nil
}

// Count returns the number of dates in the bucket for category c.
func (r Record) Count(c classify.Category) int {
	return len(r.Dates(c))
}

// TotalIssues counts the attendance and punctuality findings. Excessive
// entries is a data-quality flag and is left out.
func (r Record) TotalIssues() int {
	return len(r.Absent) + len(r.Incomplete) + len(r.Late) + len(r.Early)
}

// IssueRate returns TotalIssues per evaluable day, or 0 without data.
func (r Record) IssueRate() float64 {
	if r.EvaluableDays == 0 {
		return 0
	}
	return float64(r.TotalIssues()) / float64(r.EvaluableDays)
}

func (r *Record) add(c classify.Category, d time.Time) {
	switch c {
	case classify.Absent:
		r.Absent = append(r.Absent, d)
	case classify.Incomplete:
		r.Incomplete = append(r.Incomplete, d)
	case classify.ExcessiveEntries:
		r.Excessive = append(r.Excessive, d)
	case classify.LateArrival:
		r.Late = append(r.Late, d)
	case classify.EarlyDeparture:
		r.Early = append(r.Early, d)
	}
}

// Summary aggregates records for a run-level overview.
type Summary struct {
	Employees     int
	Tiers         map[Tier]int
	Issues        int
	Excessive     int
	RoleFallbacks int
}

// Summarize builds a Summary over records.
func Summarize(records []Record) Summary {
	s := Summary{Employees: len(records), Tiers: make(map[Tier]int)}
	for _, r := range records {
		s.Tiers[r.Tier]++
		s.Issues += r.TotalIssues()
		s.Excessive += len(r.Excessive)
		if r.RoleFallback {
			s.RoleFallbacks++
		}
	}
	return s
}
