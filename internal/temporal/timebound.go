package temporal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rohankatakam/gitclock/internal/errors"
)

// BoundKind identifies a symbolic or literal time bound
type BoundKind int

const (
	Always BoundKind = iota
	Today
	Yesterday
	ThisWeek
	LastWeek
	Date
)

const dateLayout = "2006-01-02"

// TimeBound is an unresolved since/until expression. Year, Month and Day are
// only meaningful for Kind == Date.
type TimeBound struct {
	Kind  BoundKind
	Year  int
	Month time.Month
	Day   int
}

// DateBound returns a literal calendar date bound
func DateBound(year int, month time.Month, day int) TimeBound {
	return TimeBound{Kind: Date, Year: year, Month: month, Day: day}
}

// ParseTimeBound accepts always, today, yesterday, thisweek, lastweek
// (case insensitive) or a YYYY-MM-DD date.
func ParseTimeBound(s string) (TimeBound, error) {
	value := strings.ToLower(s)
	switch value {
	case "always":
		return TimeBound{Kind: Always}, nil
	case "today":
		return TimeBound{Kind: Today}, nil
	case "yesterday":
		return TimeBound{Kind: Yesterday}, nil
	case "thisweek":
		return TimeBound{Kind: ThisWeek}, nil
	case "lastweek":
		return TimeBound{Kind: LastWeek}, nil
	}

	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return TimeBound{}, errors.ParseErrorf("could not parse date '%s' using YYYY-mm-dd format", s)
	}
	return DateBound(d.Year(), d.Month(), d.Day()), nil
}

// String returns the textual form accepted by ParseTimeBound
func (b TimeBound) String() string {
	switch b.Kind {
	case Always:
		return "always"
	case Today:
		return "today"
	case Yesterday:
		return "yesterday"
	case ThisWeek:
		return "thisweek"
	case LastWeek:
		return "lastweek"
	case Date:
		return fmt.Sprintf("%04d-%02d-%02d", b.Year, int(b.Month), b.Day)
	default:
		return "unknown"
	}
}

// Resolve converts the bound to a midnight instant in now's location.
// ok is false for Always.
//
// ThisWeek resolves to the Sunday that closes the ISO week containing now,
// not the Monday that opens it. LastWeek is that Sunday minus seven days.
func (b TimeBound) Resolve(now time.Time) (t time.Time, ok bool) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch b.Kind {
	case Always:
		return time.Time{}, false
	case Today:
		return today, true
	case Yesterday:
		return today.AddDate(0, 0, -1), true
	case ThisWeek:
		return isoWeekSunday(today), true
	case LastWeek:
		return isoWeekSunday(today).AddDate(0, 0, -7), true
	case Date:
		return time.Date(b.Year, b.Month, b.Day, 0, 0, 0, 0, loc), true
	default:
		return time.Time{}, false
	}
}

// isoWeekSunday returns the last day of the ISO week (Monday..Sunday) holding day
func isoWeekSunday(day time.Time) time.Time {
	sinceMonday := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, 6-sinceMonday)
}

// Window holds resolved filter bounds. A zero Since or Until means unbounded.
type Window struct {
	Since time.Time
	Until time.Time
}

// ResolveWindow evaluates both bounds against a single clock reading so every
// commit in a run is compared against the same instants.
func ResolveWindow(since, until TimeBound, now time.Time) Window {
	var w Window
	if t, ok := since.Resolve(now); ok {
		w.Since = t
	}
	if t, ok := until.Resolve(now); ok {
		w.Until = t
	}
	return w
}

// Contains reports whether t passes both bounds. Boundary instants are kept.
func (w Window) Contains(t time.Time) bool {
	if !w.Since.IsZero() && t.Before(w.Since) {
		return false
	}
	if !w.Until.IsZero() && t.After(w.Until) {
		return false
	}
	return true
}
