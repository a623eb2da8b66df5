package report

import (
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/chargereport/core/model"
)

// Summary holds the headline numbers of a selection.
type Summary struct {
	TotalKWh          float64 `json:"total_kwh"`
	Sessions          int     `json:"sessions"`
	ActiveVehicles    int     `json:"active_vehicles"`
	AvgKWhPerDay      float64 `json:"avg_kwh_per_day"`
	AvgSessionsPerDay float64 `json:"avg_sessions_per_day"`
	Days              int     `json:"days"`
}

// Summarize computes the headline numbers of filtered over rng. Averages are
// 0 when the range holds no day.
func Summarize(filtered []model.Session, rng model.DateRange) Summary {
	energy := lo.Map(filtered, func(s model.Session, _ int) float64 { return s.EnergyKWh })
	vehicles := lo.Uniq(lo.Map(filtered, func(s model.Session, _ int) string { return s.VehicleID }))
	sum := Summary{
		TotalKWh:       floats.Sum(energy),
		Sessions:       len(filtered),
		ActiveVehicles: len(vehicles),
		Days:           rng.Days(),
	}
	sum.AvgKWhPerDay = perDay(sum.TotalKWh, sum.Days)
	sum.AvgSessionsPerDay = perDay(float64(sum.Sessions), sum.Days)
	return sum
}

func perDay(v float64, days int) float64 {
	if days <= 0 {
		return 0
	}
	return v / float64(days)
}
