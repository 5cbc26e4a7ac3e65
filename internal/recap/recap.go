package recap

import (
	"fmt"
	"runtime"
	"time"

	"github.com/emRival/rekap-absensi/internal/calendar"
	"github.com/emRival/rekap-absensi/internal/classify"
	"github.com/emRival/rekap-absensi/internal/punch"
	"github.com/emRival/rekap-absensi/internal/role"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Row is one roster line: an employee, their role as written in the
// roster, and one raw cell per header column.
type Row struct {
	Name  string
	Role  string
	Cells []string
}

// Grid is an extracted attendance sheet together with its window bounds.
type Grid struct {
	Header     []string
	Rows       []Row
	StartMonth time.Month
	EndMonth   time.Month
	Year       int
}

// RowLengthError reports a roster row whose cells are not aligned with the
// header.
type RowLengthError struct {
	Row  int // 0-based roster index
	Name string
	Got  int
	Want int
}

func (e *RowLengthError) Error() string {
	return fmt.Sprintf("row %d (%s): %d cells, header has %d columns", e.Row+1, e.Name, e.Got, e.Want)
}

type options struct {
	logger  *zap.Logger
	workers int
	daysOff calendar.DateSet
}

// Option configures Build.
type Option func(*options)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithWorkers bounds the number of rows classified concurrently.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithDaysOff treats every column whose date is in set as holiday-marked
// for all employees.
func WithDaysOff(set calendar.DateSet) Option {
	return func(o *options) {
		o.daysOff = set
	}
}

// Validate checks that every row has exactly one cell per header column.
func Validate(g Grid) error {
	for i, row := range g.Rows {
		if len(row.Cells) != len(g.Header) {
			return &RowLengthError{Row: i, Name: row.Name, Got: len(row.Cells), Want: len(g.Header)}
		}
	}
	return nil
}

// Dates reconstructs the column dates of g.
func (g Grid) Dates() []*time.Time {
	return calendar.Reconstruct(g.Header, g.StartMonth, g.EndMonth, g.Year)
}

// DaysOff expands rules over the resolved dates of g.
func (g Grid) DaysOff(rules []calendar.DayOff) (calendar.DateSet, error) {
	from, to, ok := calendar.Span(g.Dates())
	if !ok || len(rules) == 0 {
		return calendar.DateSet{}, nil
	}
	return calendar.ExpandDaysOff(rules, from, to)
}

// Build classifies every employee-day of the grid and returns one record
// per roster row, in roster order. A nil table uses the built-in roles.
//
// Rows are independent and are classified concurrently; within a row the
// columns are walked in order because overnight roles look one column
// ahead.
func Build(g Grid, table *role.Table, opts ...Option) ([]Record, error) {
	o := options{logger: zap.NewNop(), workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&o)
	}
	if table == nil {
		table = role.DefaultTable()
	}

	if err := Validate(g); err != nil {
		return nil, err
	}

	dates := g.Dates()
	offColumns := make([]bool, len(dates))
	for i, d := range dates {
		if d == nil {
			o.logger.Debug("skipping unresolved column",
				zap.Int("column", i),
				zap.String("header", g.Header[i]))
			continue
		}
		offColumns[i] = o.daysOff != nil && o.daysOff.Has(*d)
	}

	records := make([]Record, len(g.Rows))

	var eg errgroup.Group
	eg.SetLimit(o.workers)
	for i, row := range g.Rows {
		eg.Go(func() error {
			cfg, fellBack := table.Resolve(row.Role)
			if fellBack {
				o.logger.Debug("role fallback",
					zap.String("name", row.Name),
					zap.String("role", row.Role),
					zap.String("default", cfg.Name))
			}
			records[i] = buildRecord(row, cfg, fellBack, dates, offColumns)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	s := Summarize(records)
	o.logger.Info("recap built",
		zap.Int("employees", s.Employees),
		zap.Int("columns", len(dates)),
		zap.Int("issues", s.Issues),
		zap.Int("role_fallbacks", s.RoleFallbacks))

	return records, nil
}

// buildRecord walks one row in column order.
func buildRecord(row Row, cfg role.Config, fellBack bool, dates []*time.Time, offColumns []bool) Record {
	cells := punch.ParseAll(row.Cells)
	for i, off := range offColumns {
		if off {
			cells[i] = punch.Cell{Kind: punch.Holiday}
		}
	}

	rec := Record{Name: row.Name, Role: cfg.Name, RoleFallback: fellBack}
	for i, d := range dates {
		if d == nil {
			continue
		}
		day := classify.Day{Today: cells[i]}
		if i+1 < len(cells) {
			day.Tomorrow = &cells[i+1]
		}

		res := classify.Classify(day, cfg)
		if res.Skipped {
			continue
		}
		rec.EvaluableDays++
		for _, c := range res.Categories {
			rec.add(c, *d)
		}
	}
	rec.Tier = TierFor(rec.TotalIssues(), rec.EvaluableDays)
	return rec
}
