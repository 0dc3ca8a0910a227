// Package dayctx resolves wall-clock instants and explicit day strings into
// the family's notion of "today". All day semantics are anchored to one fixed
// IANA timezone so that the board looks the same no matter where a request
// comes from.
package dayctx

import "time"

// DayFormat is the canonical calendar-day form. Day strings in this form
// compare correctly with plain string ordering.
const DayFormat = "2006-01-02"

// Context is a resolved calendar day plus the instant it was resolved at.
// Now is the instant the day semantics run against (noon when the day was
// given explicitly); Wall is always the real clock, for the few rules that
// care about elapsed time rather than the calendar.
type Context struct {
	Day     string       // YYYY-MM-DD in the family timezone
	Weekday time.Weekday // 0=Sunday .. 6=Saturday
	Now     time.Time    // in the family timezone
	Wall    time.Time    // real clock in the family timezone
}

// Resolve builds a Context for the given instant. If explicitDay is a valid
// YYYY-MM-DD string the context represents noon of that day in loc, which
// keeps "view a past or future day" deterministic across DST transitions.
// Anything else falls back to the wall-clock now.
func Resolve(explicitDay string, now time.Time, loc *time.Location) Context {
	now = now.In(loc)
	if explicitDay != "" {
		if d, err := time.ParseInLocation(DayFormat, explicitDay, loc); err == nil {
			noon := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc)
			return Context{Day: noon.Format(DayFormat), Weekday: noon.Weekday(), Now: noon, Wall: now}
		}
	}
	return Context{Day: now.Format(DayFormat), Weekday: now.Weekday(), Now: now, Wall: now}
}

// DayOf converts an instant to its calendar day in the context's timezone.
func (c Context) DayOf(t time.Time) string {
	return t.In(c.Now.Location()).Format(DayFormat)
}

// Valid reports whether s is a well-formed YYYY-MM-DD day string.
func Valid(s string) bool {
	_, err := time.Parse(DayFormat, s)
	return err == nil
}

// AddDays shifts a day string by n calendar days. Invalid input returns the
// empty string.
func AddDays(day string, n int) string {
	d, err := time.Parse(DayFormat, day)
	if err != nil {
		return ""
	}
	return d.AddDate(0, 0, n).Format(DayFormat)
}

// WeekdayOf returns the weekday of a day string. Invalid input returns
// Sunday; callers validate first.
func WeekdayOf(day string) time.Weekday {
	d, err := time.Parse(DayFormat, day)
	if err != nil {
		return time.Sunday
	}
	return d.Weekday()
}
