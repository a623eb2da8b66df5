package report

import (
	"encoding/json"
	"time"

	"github.com/kilianp07/chargereport/core/model"
)

// DailyRow is the consumption of one calendar day.
type DailyRow struct {
	Date      time.Time
	EnergyKWh float64
	Sessions  int
}

// MarshalJSON renders Date as YYYY-MM-DD.
func (r DailyRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date      string  `json:"date"`
		EnergyKWh float64 `json:"energy_kwh"`
		Sessions  int     `json:"sessions"`
	}{model.DateKey(r.Date), r.EnergyKWh, r.Sessions})
}

// Daily returns one row per day of rng, in order, including days without
// sessions.
func Daily(filtered []model.Session, rng model.DateRange) []DailyRow {
	dates := rng.Dates()
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = model.DateKey(d)
	}
	energy := make(map[string]float64)
	count := make(map[string]int)
	for _, s := range filtered {
		k := model.DateKey(s.Start)
		energy[k] += s.EnergyKWh
		count[k]++
	}
	e := ZeroFill(keys, energy)
	c := ZeroFill(keys, count)
	rows := make([]DailyRow, len(dates))
	for i, d := range dates {
		rows[i] = DailyRow{Date: d, EnergyKWh: e[i].Value, Sessions: c[i].Value}
	}
	return rows
}
