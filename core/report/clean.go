package report

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/chargereport/core/model"
)

// DefaultTimeLayouts are tried in order when no layouts are configured.
var DefaultTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
}

// TimeParser parses source timestamps. Timestamps without an offset are read
// as wall-clock times in Location; timestamps with one are converted to it.
type TimeParser struct {
	Layouts  []string
	Location *time.Location
}

// Parse returns the first successful layout match.
func (p TimeParser) Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	layouts := p.Layouts
	if len(layouts) == 0 {
		layouts = DefaultTimeLayouts
	}
	for _, l := range layouts {
		if t, err := time.ParseInLocation(l, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// CleanStats counts what Clean did with the raw rows.
type CleanStats struct {
	Read        int `json:"read"`
	Incomplete  int `json:"incomplete"`
	NotInRoster int `json:"not_in_roster"`
	DuplicateID int `json:"duplicate_id"`
	EndUnparsed int `json:"end_unparsed"`
	// NegativeEnergy counts kept sessions below 0 kWh. They are summed and
	// counted like any other session but fall outside every kWh bin.
	NegativeEnergy int `json:"negative_energy"`
	Kept           int `json:"kept"`
	RosterVehicle  int `json:"roster_vehicles"`
}

// Clean drops rows missing an id, vehicle, start timestamp or energy value,
// parses timestamps and keeps only vehicles listed in the roster. Rows are
// never reported as errors. An end timestamp that is missing or cannot be
// parsed leaves Session.End nil. A row repeating an id that was already kept
// is dropped.
func Clean(raw []model.RawSession, roster []model.RosterEntry, p TimeParser) ([]model.Session, CleanStats) {
	valid := make(map[string]struct{}, len(roster))
	for _, r := range roster {
		if id := model.NormalizeID(r.VehicleID); id != "" {
			valid[id] = struct{}{}
		}
	}
	stats := CleanStats{Read: len(raw), RosterVehicle: len(valid)}
	seen := make(map[string]struct{}, len(raw))
	out := make([]model.Session, 0, len(raw))
	for _, r := range raw {
		id := model.NormalizeID(r.ID)
		vehicle := model.NormalizeID(r.VehicleID)
		start, okStart := p.Parse(r.Start)
		energy, okEnergy := ParseEnergy(r.Energy)
		if id == "" || vehicle == "" || !okStart || !okEnergy {
			stats.Incomplete++
			continue
		}
		if _, ok := valid[vehicle]; !ok {
			stats.NotInRoster++
			continue
		}
		if _, dup := seen[id]; dup {
			stats.DuplicateID++
			continue
		}
		seen[id] = struct{}{}
		s := model.Session{ID: id, VehicleID: vehicle, Start: start, EnergyKWh: energy}
		if end, ok := p.Parse(r.End); ok {
			s.End = &end
		} else if strings.TrimSpace(r.End) != "" {
			stats.EndUnparsed++
		}
		if energy < 0 {
			stats.NegativeEnergy++
		}
		out = append(out, s)
	}
	stats.Kept = len(out)
	return out, stats
}

// ParseEnergy reads a kWh value, accepting a decimal comma when the value has
// no decimal point.
func ParseEnergy(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		v, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	}
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
