package report

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/chargereport/core/model"
)

// HoursPerDay is the number of hour-of-day buckets.
const HoursPerDay = 24

// HourMark is one occupied hour of a session.
type HourMark struct {
	SessionID string
	Date      string
	Hour      int
}

// HourlyRow is the activity of one hour of the day.
type HourlyRow struct {
	Hour          int     `json:"hour"`
	TotalSessions int     `json:"total_sessions"`
	AvgSessions   float64 `json:"avg_sessions"`
}

// OccupiedHours lists the whole-hour marks from the hour of the session
// start to the hour of its end, both included. It is empty for sessions
// without a positive duration.
func OccupiedHours(s model.Session) []time.Time {
	if _, ok := s.Duration(); !ok {
		return nil
	}
	last := hourFloor(*s.End)
	var out []time.Time
	for h := hourFloor(s.Start); !h.After(last); {
		out = append(out, h)
		next := hourFloor(h.Add(time.Hour))
		if !next.After(h) {
			// repeated wall-clock hour at a DST change
			next = h.Add(time.Hour)
		}
		h = next
	}
	return out
}

// ExpandHours flattens sessions into one mark per occupied hour.
func ExpandHours(sessions []model.Session) []HourMark {
	var marks []HourMark
	for _, s := range sessions {
		for _, h := range OccupiedHours(s) {
			marks = append(marks, HourMark{SessionID: s.ID, Date: model.DateKey(h), Hour: h.Hour()})
		}
	}
	return marks
}

type dayHour struct {
	date string
	hour int
}

// Hourly returns, for every hour of the day, the number of distinct sessions
// occupying it over the whole selection and the average number per day. The
// average is taken over every day with at least one occupied hour, counting
// zero for the hours of those days without activity.
func Hourly(filtered []model.Session) []HourlyRow {
	marks := ExpandHours(filtered)

	byHour := make(map[int]map[string]struct{})
	byDayHour := make(map[dayHour]map[string]struct{})
	var dates []string
	seenDate := make(map[string]struct{})
	for _, m := range marks {
		addToSet(byHour, m.Hour, m.SessionID)
		addToSet(byDayHour, dayHour{m.Date, m.Hour}, m.SessionID)
		if _, ok := seenDate[m.Date]; !ok {
			seenDate[m.Date] = struct{}{}
			dates = append(dates, m.Date)
		}
	}

	hours := make([]int, HoursPerDay)
	for h := range hours {
		hours[h] = h
	}
	totals := ZeroFill(hours, setSizes(byHour))

	grid := make([]dayHour, 0, len(dates)*HoursPerDay)
	for _, d := range dates {
		for _, h := range hours {
			grid = append(grid, dayHour{d, h})
		}
	}
	perHour := make([][]float64, HoursPerDay)
	for _, e := range ZeroFill(grid, setSizes(byDayHour)) {
		perHour[e.Key.hour] = append(perHour[e.Key.hour], float64(e.Value))
	}

	rows := make([]HourlyRow, HoursPerDay)
	for i, t := range totals {
		row := HourlyRow{Hour: t.Key, TotalSessions: t.Value}
		if len(perHour[i]) > 0 {
			row.AvgSessions = stat.Mean(perHour[i], nil)
		}
		rows[i] = row
	}
	return rows
}

func hourFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

func addToSet[K comparable](m map[K]map[string]struct{}, k K, id string) {
	set, ok := m[k]
	if !ok {
		set = make(map[string]struct{})
		m[k] = set
	}
	set[id] = struct{}{}
}

func setSizes[K comparable](m map[K]map[string]struct{}) map[K]int {
	out := make(map[K]int, len(m))
	for k, set := range m {
		out[k] = len(set)
	}
	return out
}
