package punch

import "strings"

// HolidayMarker marks a day off ("libur") anywhere in a cell.
const HolidayMarker = "l"

// Kind classifies the content of a single time-clock cell.
type Kind int

const (
	Empty Kind = iota
	Holiday
	Times
)

func (k Kind) String() string {
	switch k {
	case Holiday:
		return "holiday"
	case Times:
		return "times"
	default:
		return "empty"
	}
}

// Cell is the parsed content of one employee-day. Tokens keep the order
// in which they were entered, which is not necessarily chronological.
type Cell struct {
	Kind   Kind
	Tokens []Token
}

// Len returns the number of valid time entries in the cell.
func (c Cell) Len() int {
	return len(c.Tokens)
}

// IsHoliday reports whether the cell carries the holiday marker.
func (c Cell) IsHoliday() bool {
	return c.Kind == Holiday
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Parse normalizes a raw cell into a Cell. The holiday marker wins over any
// times in the same cell. Entries that are not valid times are dropped.
func Parse(raw string) Cell {
	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "" {
		return Cell{Kind: Empty}
	}
	if strings.Contains(s, HolidayMarker) {
		return Cell{Kind: Holiday}
	}

	var tokens []Token
	for _, line := range strings.Split(lineBreaks.Replace(s), "\n") {
		tok, err := ParseToken(line)
		if err != nil {
			continue
		}
		tokens = append(tokens, tok)
	}
	return Cell{Kind: Times, Tokens: tokens}
}

// ParseAll parses a row of raw cells, keeping positions aligned.
func ParseAll(raw []string) []Cell {
	cells := make([]Cell, len(raw))
	for i, r := range raw {
		cells[i] = Parse(r)
	}
	return cells
}
