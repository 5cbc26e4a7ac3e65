package classify

import (
	"github.com/emRival/rekap-absensi/internal/punch"
	"github.com/emRival/rekap-absensi/internal/role"
	"github.com/emRival/rekap-absensi/internal/shift"
)

// Category is an attendance exception bucket.
type Category int

const (
	Absent Category = iota
	Incomplete
	ExcessiveEntries
	LateArrival
	EarlyDeparture
)

// Categories lists every bucket in report order.
var Categories = []Category{Absent, Incomplete, ExcessiveEntries, LateArrival, EarlyDeparture}

func (c Category) String() string {
	switch c {
	case Absent:
		return "absent"
	case Incomplete:
		return "incomplete"
	case ExcessiveEntries:
		return "excessive"
	case LateArrival:
		return "late"
	case EarlyDeparture:
		return "early"
	}
	return "unknown"
}

// maxEntries is the number of entries a cell may hold before the day is
// flagged as excessive.
const maxEntries = 2

// Day is the input for one employee-day: today's cell and, when the window
// has one, the next column's cell.
type Day struct {
	Today    punch.Cell
	Tomorrow *punch.Cell
}

// Result is the classification of one employee-day.
type Result struct {
	Skipped    bool // holiday; the day is not evaluable
	Entries    int  // entries counted for completeness
	Pairing    shift.Pairing
	Categories []Category
}

// Has reports whether the day landed in bucket c.
func (r Result) Has(c Category) bool {
	for _, got := range r.Categories {
		if got == c {
			return true
		}
	}
	return false
}

// Classify assigns one employee-day to zero or more exception buckets using
// the thresholds of cfg.
//
// Absent and incomplete are exclusive and stop the punctuality checks.
// Excessive entries is evaluated on its own: for overnight roles each
// column is checked separately instead of the combined count.
func Classify(d Day, cfg role.Config) Result {
	overnight := cfg.CheckOutIsNextDay()

	if d.Today.IsHoliday() || (overnight && d.Tomorrow != nil && d.Tomorrow.IsHoliday()) {
		return Result{Skipped: true}
	}

	today := d.Today.Len()
	tomorrow := 0
	if overnight && d.Tomorrow != nil {
		tomorrow = d.Tomorrow.Len()
	}

	r := Result{Entries: today + tomorrow}
	switch r.Entries {
	case 0:
		r.Categories = append(r.Categories, Absent)
	case 1:
		r.Categories = append(r.Categories, Incomplete)
	default:
		r.Pairing = shift.For(cfg.Shift).Pair(d.Today, d.Tomorrow)
		if !r.Pairing.Complete() {
			r.Categories = append(r.Categories, Incomplete)
			break
		}
		if r.Pairing.CheckIn.After(cfg.CheckIn) {
			r.Categories = append(r.Categories, LateArrival)
		}
		if r.Pairing.CheckOut.Before(cfg.CheckOut) {
			r.Categories = append(r.Categories, EarlyDeparture)
		}
	}

	if excessive(today, tomorrow, overnight) {
		r.Categories = append(r.Categories, ExcessiveEntries)
	}

	return r
}

func excessive(today, tomorrow int, overnight bool) bool {
	if overnight {
		return today > maxEntries || tomorrow > maxEntries
	}
	return today > maxEntries
}
