package shift

import (
	"github.com/emRival/rekap-absensi/internal/punch"
	"github.com/emRival/rekap-absensi/internal/role"
)

// Pairing is the effective check-in and check-out of one employee-day.
// A nil side means the entry could not be found.
type Pairing struct {
	CheckIn  *punch.Token
	CheckOut *punch.Token
}

// Complete reports whether both sides were found.
func (p Pairing) Complete() bool {
	return p.CheckIn != nil && p.CheckOut != nil
}

// Strategy picks check-in and check-out entries for one employee-day.
// Entries are scanned in the order they were entered and never sorted.
// tomorrow is nil when today is the last column of the window.
type Strategy interface {
	Pair(today punch.Cell, tomorrow *punch.Cell) Pairing
}

// SameDay pairs the first entry of the day with the last one.
type SameDay struct{}

// Pair implements Strategy. A single entry is both check-in and check-out;
// callers classify such days as incomplete before pairing.
func (SameDay) Pair(today punch.Cell, _ *punch.Cell) Pairing {
	var p Pairing
	for i := range today.Tokens {
		tok := today.Tokens[i]
		if p.CheckIn == nil {
			p.CheckIn = &tok
		}
		p.CheckOut = &tok
	}
	return p
}

// Overnight takes check-in from the bottom of today's cell and check-out
// from the top of tomorrow's.
type Overnight struct{}

// Pair implements Strategy. A missing or holiday-marked tomorrow leaves
// check-out empty.
func (Overnight) Pair(today punch.Cell, tomorrow *punch.Cell) Pairing {
	var p Pairing
	if n := len(today.Tokens); n > 0 {
		tok := today.Tokens[n-1]
		p.CheckIn = &tok
	}
	if tomorrow != nil && !tomorrow.IsHoliday() && len(tomorrow.Tokens) > 0 {
		tok := tomorrow.Tokens[0]
		p.CheckOut = &tok
	}
	return p
}

// For returns the pairing strategy of a shift model.
func For(s role.Shift) Strategy {
	if s == role.OvernightShift {
		return Overnight{}
	}
	return SameDay{}
}
