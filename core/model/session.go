package model

import (
	"strings"
	"time"
)

// RawSession is a transaction row as read from the source table. Empty strings
// mark missing cells.
type RawSession struct {
	ID        string
	VehicleID string
	Start     string
	End       string
	Energy    string
}

// RosterEntry is a vehicle known to be valid.
type RosterEntry struct {
	VehicleID string
}

// Session represents a single charging event.
type Session struct {
	ID        string
	VehicleID string
	Start     time.Time
	End       *time.Time // nil when the source has no usable end timestamp
	EnergyKWh float64
}

// Date returns the calendar day of the session start.
func (s Session) Date() time.Time { return Day(s.Start) }

// Duration returns End-Start. ok is false when End is absent or not after Start.
func (s Session) Duration() (d time.Duration, ok bool) {
	if s.End == nil {
		return 0, false
	}
	d = s.End.Sub(s.Start)
	if d <= 0 {
		return 0, false
	}
	return d, true
}

// DurationMinutes is Duration expressed in minutes.
func (s Session) DurationMinutes() (float64, bool) {
	d, ok := s.Duration()
	if !ok {
		return 0, false
	}
	return d.Minutes(), true
}

// Selection is the user's choice of date range and vehicles.
type Selection struct {
	Range    DateRange `json:"range"`
	Vehicles []string  `json:"vehicles"`
}

// NormalizeID trims the surrounding whitespace the spreadsheet exports tend to
// leave around identifiers.
func NormalizeID(s string) string { return strings.TrimSpace(s) }
