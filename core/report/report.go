package report

import (
	"github.com/kilianp07/chargereport/core/model"
)

// Report is everything the dashboard shows for one selection.
type Report struct {
	Selection model.Selection `json:"selection"`
	Summary   Summary         `json:"summary"`
	Daily     []DailyRow      `json:"daily"`
	KWh       []Bucket        `json:"kwh"`
	Duration  []Bucket        `json:"duration"`
	Frequency []FrequencyRow  `json:"frequency"`
	Hourly    []HourlyRow     `json:"hourly"`
}

// Build filters sessions by sel and computes every table. It is pure and
// recomputes everything on each call.
func Build(sessions []model.Session, sel model.Selection) Report {
	filtered := Filter(sessions, sel)
	return Report{
		Selection: sel,
		Summary:   Summarize(filtered, sel.Range),
		Daily:     Daily(filtered, sel.Range),
		KWh:       KWhHistogram(filtered),
		Duration:  DurationHistogram(filtered),
		Frequency: FrequencyHistogram(filtered),
		Hourly:    Hourly(filtered),
	}
}
