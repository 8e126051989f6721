// Package timestamp implements the canonical encode/decode/compare
// rules for the fixed-width YYYYMMDD-HHMMSS identifiers that name and
// order backup snapshots.
package timestamp

import (
	"fmt"
	"regexp"
	"sort"
	"time"
)

// Layout is the Go time layout for snapshot identifiers.
const Layout = "20060102-150405"

var wellFormed = regexp.MustCompile(`^\d{8}-\d{6}$`)

// Parsed is the soft result of decoding an identifier. Invalid input
// yields IsValid=false with human-readable reasons instead of an error,
// so display paths never have to handle a failure.
type Parsed struct {
	Raw     string
	Year    int
	Month   int
	Day     int
	Hour    int
	Minute  int
	Second  int
	Time    time.Time
	IsValid bool
	Reasons []string
}

// Generate encodes an instant as a snapshot identifier using the local
// calendar, truncated to whole seconds. It is a pure function of its
// input: two calls with the same instant produce identical strings.
func Generate(t time.Time) string {
	return t.Format(Layout)
}

// IsWellFormed is the cheap lexical pre-filter: eight digits, a dash,
// six digits. It performs no calendar validation.
func IsWellFormed(s string) bool {
	return wellFormed.MatchString(s)
}

// Parse decodes an identifier, checking lexical shape, per-field
// ranges, and finally that the components survive a round trip through
// a real calendar date. The round trip rejects impossible dates such as
// November 31 that pass the individual range checks.
func Parse(s string) Parsed {
	p := Parsed{Raw: s}

	if !IsWellFormed(s) {
		p.Reasons = append(p.Reasons, fmt.Sprintf("%q does not match YYYYMMDD-HHMMSS", s))
		return p
	}

	read := func(from, to int) int {
		n := 0
		for _, c := range s[from:to] {
			n = n*10 + int(c-'0')
		}
		return n
	}
	p.Year = read(0, 4)
	p.Month = read(4, 6)
	p.Day = read(6, 8)
	p.Hour = read(9, 11)
	p.Minute = read(11, 13)
	p.Second = read(13, 15)

	check := func(ok bool, what string, v, lo, hi int) {
		if !ok {
			p.Reasons = append(p.Reasons, fmt.Sprintf("%s %d out of range %d-%d", what, v, lo, hi))
		}
	}
	check(p.Year >= 2000 && p.Year <= 2100, "year", p.Year, 2000, 2100)
	check(p.Month >= 1 && p.Month <= 12, "month", p.Month, 1, 12)
	check(p.Day >= 1 && p.Day <= 31, "day", p.Day, 1, 31)
	check(p.Hour <= 23, "hour", p.Hour, 0, 23)
	check(p.Minute <= 59, "minute", p.Minute, 0, 59)
	check(p.Second <= 59, "second", p.Second, 0, 59)
	if len(p.Reasons) > 0 {
		return p
	}

	t := time.Date(p.Year, time.Month(p.Month), p.Day, p.Hour, p.Minute, p.Second, 0, time.Local)
	if t.Year() != p.Year || int(t.Month()) != p.Month || t.Day() != p.Day ||
		t.Hour() != p.Hour || t.Minute() != p.Minute || t.Second() != p.Second {
		p.Reasons = append(p.Reasons, fmt.Sprintf("%q is not a real calendar date", s))
		return p
	}

	p.Time = t
	p.IsValid = true
	return p
}

// Compare orders two identifiers chronologically, returning -1, 0 or 1.
// Comparison is undefined for malformed input, so either side being
// invalid is an error rather than a silent "equal".
func Compare(a, b string) (int, error) {
	pa, pb := Parse(a), Parse(b)
	if !pa.IsValid {
		return 0, fmt.Errorf("invalid timestamp %q: %v", a, pa.Reasons)
	}
	if !pb.IsValid {
		return 0, fmt.Errorf("invalid timestamp %q: %v", b, pb.Reasons)
	}
	switch {
	case pa.Time.Before(pb.Time):
		return -1, nil
	case pa.Time.After(pb.Time):
		return 1, nil
	default:
		return 0, nil
	}
}

// SortAscending returns a new slice ordered oldest-first. Every element
// must be a valid identifier.
func SortAscending(list []string) ([]string, error) {
	for _, s := range list {
		if p := Parse(s); !p.IsValid {
			return nil, fmt.Errorf("invalid timestamp %q: %v", s, p.Reasons)
		}
	}
	out := make([]string, len(list))
	copy(out, list)
	// Zero-padded fixed-width encoding makes lexical order chronological,
	// but we still sort through Compare so ordering has a single source.
	sort.Slice(out, func(i, j int) bool {
		c, _ := Compare(out[i], out[j])
		return c < 0
	})
	return out, nil
}

// MostRecent returns the newest identifier in the list, or false for an
// empty list.
func MostRecent(list []string) (string, bool, error) {
	sorted, err := SortAscending(list)
	if err != nil {
		return "", false, err
	}
	if len(sorted) == 0 {
		return "", false, nil
	}
	return sorted[len(sorted)-1], true, nil
}

// Oldest returns the oldest identifier in the list, or false for an
// empty list.
func Oldest(list []string) (string, bool, error) {
	sorted, err := SortAscending(list)
	if err != nil {
		return "", false, err
	}
	if len(sorted) == 0 {
		return "", false, nil
	}
	return sorted[0], true, nil
}

// FormatOptions controls human rendering of an identifier.
type FormatOptions struct {
	TwelveHour  bool
	ShowSeconds bool
}

// Format renders an identifier for humans. This is a display path, so
// invalid input yields a clearly marked string instead of an error.
func Format(s string, opts FormatOptions) string {
	p := Parse(s)
	if !p.IsValid {
		return fmt.Sprintf("invalid timestamp (%s)", s)
	}

	layout := "2006-01-02 15:04"
	if opts.ShowSeconds {
		layout = "2006-01-02 15:04:05"
	}
	if opts.TwelveHour {
		layout = "2006-01-02 3:04 PM"
		if opts.ShowSeconds {
			layout = "2006-01-02 3:04:05 PM"
		}
	}
	return p.Time.Format(layout)
}
