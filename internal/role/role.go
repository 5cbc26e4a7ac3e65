package role

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emRival/rekap-absensi/internal/punch"
)

// Shift selects how check-in and check-out are paired for a role.
type Shift int

const (
	// DaytimeShift checks in and out on the same calendar day.
	DaytimeShift Shift = iota
	// OvernightShift checks in in the evening and out the next morning.
	OvernightShift
)

func (s Shift) String() string {
	if s == OvernightShift {
		return "overnight"
	}
	return "daytime"
}

// ParseShift parses "daytime"/"day" or "overnight"/"night".
func ParseShift(s string) (Shift, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "day", "daytime":
		return DaytimeShift, nil
	case "night", "overnight":
		return OvernightShift, nil
	}
	return DaytimeShift, fmt.Errorf("unknown shift %q (expected daytime or overnight)", s)
}

// Config holds the punctuality thresholds of one role. Thresholds are kept
// as written and compared as text against canonical "HH:MM" tokens.
type Config struct {
	Name     string
	CheckIn  string
	CheckOut string
	Shift    Shift
}

// CheckOutIsNextDay reports whether check-out is read from the next column.
func (c Config) CheckOutIsNextDay() bool {
	return c.Shift == OvernightShift
}

// Validate reports thresholds that are not canonical "HH:MM". Such values
// still work, but compare as plain text.
func (c Config) Validate() error {
	if !punch.IsCanonical(c.CheckIn) {
		return fmt.Errorf("role %s: check-in threshold %q is not HH:MM", c.Name, c.CheckIn)
	}
	if !punch.IsCanonical(c.CheckOut) {
		return fmt.Errorf("role %s: check-out threshold %q is not HH:MM", c.Name, c.CheckOut)
	}
	return nil
}

const (
	SMPSMK  = "SMPSMK"
	ASRAMA  = "ASRAMA"
	MUSYRIF = "MUSYRIF"
)

// Defaults returns the built-in role configurations.
func Defaults() []Config {
	return []Config{
		{Name: SMPSMK, CheckIn: "07:00", CheckOut: "15:00", Shift: DaytimeShift},
		{Name: ASRAMA, CheckIn: "15:00", CheckOut: "07:00", Shift: OvernightShift},
		{Name: MUSYRIF, CheckIn: "15:00", CheckOut: "07:00", Shift: OvernightShift},
	}
}

// Table maps role names onto configurations. It is never modified after
// construction; With returns a new table.
type Table struct {
	defaultName string
	configs     map[string]Config
}

// NewTable builds a table whose unknown names resolve to defaultName.
func NewTable(defaultName string, configs ...Config) (*Table, error) {
	t := &Table{
		defaultName: NormalizeName(defaultName),
		configs:     make(map[string]Config, len(configs)),
	}
	for _, c := range configs {
		c.Name = NormalizeName(c.Name)
		if c.Name == "" {
			return nil, fmt.Errorf("role name is required")
		}
		t.configs[c.Name] = c
	}
	if _, ok := t.configs[t.defaultName]; !ok {
		return nil, fmt.Errorf("default role %q is not configured", defaultName)
	}
	return t, nil
}

// DefaultTable returns the built-in table with SMPSMK as the default role.
func DefaultTable() *Table {
	t, err := NewTable(SMPSMK, Defaults()...)
	if err != nil {
		panic(err)
	}
	return t
}

// NormalizeName trims and upper-cases a role name.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Resolve returns the configuration for name. Unknown or blank names fall
// back to the default role and report fellBack.
func (t *Table) Resolve(name string) (cfg Config, fellBack bool) {
	if c, ok := t.configs[NormalizeName(name)]; ok {
		return c, false
	}
	return t.configs[t.defaultName], true
}

// Lookup returns the configuration registered under name, if any.
func (t *Table) Lookup(name string) (Config, bool) {
	c, ok := t.configs[NormalizeName(name)]
	return c, ok
}

// DefaultName returns the fallback role name.
func (t *Table) DefaultName() string {
	return t.defaultName
}

// Configs returns all configurations sorted by name.
func (t *Table) Configs() []Config {
	out := make([]Config, 0, len(t.configs))
	for _, c := range t.configs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// With returns a copy of t with the given configurations added or replaced.
func (t *Table) With(configs ...Config) *Table {
	next := &Table{
		defaultName: t.defaultName,
		configs:     make(map[string]Config, len(t.configs)+len(configs)),
	}
	for k, v := range t.configs {
		next.configs[k] = v
	}
	for _, c := range configs {
		c.Name = NormalizeName(c.Name)
		if c.Name == "" {
			continue
		}
		next.configs[c.Name] = c
	}
	return next
}

// WithDefault returns a copy of t that falls back to name.
func (t *Table) WithDefault(name string) (*Table, error) {
	name = NormalizeName(name)
	if _, ok := t.configs[name]; !ok {
		return nil, fmt.Errorf("default role %q is not configured", name)
	}
	next := t.With()
	next.defaultName = name
	return next, nil
}
