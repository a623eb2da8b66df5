package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Day aligns t to midnight of its calendar day, keeping t's location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateKey identifies the calendar day of t independently of its location.
func DateKey(t time.Time) string { return t.Format(DateLayout) }

// ParseDate parses a YYYY-MM-DD date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two instants, keeping only their days.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Day(start), End: Day(end)}
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool { return r.Start.IsZero() && r.End.IsZero() }

// Days returns the number of calendar days in the range, or 0 when End is
// before Start or the range is unset.
func (r DateRange) Days() int {
	if r.IsZero() {
		return 0
	}
	n := civilDays(r.Start, r.End) + 1
	if n < 0 {
		return 0
	}
	return n
}

// Contains reports whether the calendar day of t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	k := DateKey(t)
	return k >= DateKey(r.Start) && k <= DateKey(r.End)
}

// Dates lists every day from Start to End inclusive. It is empty when End is
// before Start.
func (r DateRange) Dates() []time.Time {
	n := r.Days()
	out := make([]time.Time, 0, n)
	d := Day(r.Start)
	for i := 0; i < n; i++ {
		out = append(out, d.AddDate(0, 0, i))
	}
	return out
}

// String renders the range as "start..end".
func (r DateRange) String() string {
	return DateKey(r.Start) + ".." + DateKey(r.End)
}

// MarshalJSON renders the bounds as YYYY-MM-DD with the day count. An unset
// range has empty bounds.
func (r DateRange) MarshalJSON() ([]byte, error) {
	var start, end string
	if !r.IsZero() {
		start, end = DateKey(r.Start), DateKey(r.End)
	}
	return json.Marshal(struct {
		Start string `json:"start"`
		End   string `json:"end"`
		Days  int    `json:"days"`
	}{start, end, r.Days()})
}

// civilDays counts calendar days from a to b, ignoring DST and locations.
// Unix seconds are used because a time.Duration cannot span more than about
// 292 years.
func civilDays(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int((ub.Unix() - ua.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60
