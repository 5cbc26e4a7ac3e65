package punch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// numeric matches the hour or minute part of "07:30".
var numeric = regexp.MustCompile(`^\d+$`)

// Token is a validated clock reading from a time-clock cell.
type Token struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// String returns Token in "HH:MM" format.
func (t Token) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// After reports whether t sorts after the given threshold text.
// Thresholds are compared as written, so a malformed threshold still
// yields a result instead of an error.
func (t Token) After(threshold string) bool {
	return t.String() > threshold
}

// Before reports whether t sorts before the given threshold text.
func (t Token) Before(threshold string) bool {
	return t.String() < threshold
}

// ParseToken parses one candidate entry such as "07:30", "7.30" or
// "07:30:15" into a Token. Only hour and minute are read; anything after
// them is dropped.
func ParseToken(s string) (Token, error) {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, ":.") {
		return Token{}, fmt.Errorf("no separator in %q", s)
	}

	parts := strings.Split(strings.ReplaceAll(s, ".", ":"), ":")
	if len(parts) < 2 {
		return Token{}, fmt.Errorf("unrecognized time format %q", s)
	}
	for _, p := range parts[:2] {
		if !numeric.MatchString(p) {
			return Token{}, fmt.Errorf("non-numeric part %q in %q", p, s)
		}
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Token{}, err
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return Token{}, err
	}

	if hour < 0 || hour > 23 {
		return Token{}, fmt.Errorf("hour %d out of range", hour)
	}
	if minute < 0 || minute > 59 {
		return Token{}, fmt.Errorf("minute %d out of range", minute)
	}

	return Token{Hour: hour, Minute: minute}, nil
}

// IsCanonical reports whether s is already in zero-padded "HH:MM" form.
func IsCanonical(s string) bool {
	t, err := ParseToken(s)
	if err != nil {
		return false
	}
	return t.String() == s
}
