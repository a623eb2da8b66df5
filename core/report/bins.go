package report

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/kilianp07/chargereport/core/model"
)

// Binning maps a value to a labelled interval. Bin i covers
// [Edges[i], Edges[i+1]); the last bin is unbounded above. Labels has one
// entry per edge.
type Binning struct {
	Edges  []float64
	Labels []string
}

// Bin returns the label of the interval holding v. ok is false for values
// below the first edge and for NaN.
func (b Binning) Bin(v float64) (label string, ok bool) {
	if len(b.Edges) == 0 || math.IsNaN(v) || v < b.Edges[0] {
		return "", false
	}
	i := sort.SearchFloat64s(b.Edges, v)
	if i < len(b.Edges) && b.Edges[i] == v {
		return b.Labels[i], true
	}
	return b.Labels[i-1], true
}

// Count bins every value and returns the count per label, all labels
// present.
func (b Binning) Count(values []float64) []Bucket {
	counts := make(map[string]int, len(b.Labels))
	for _, v := range values {
		if l, ok := b.Bin(v); ok {
			counts[l]++
		}
	}
	filled := ZeroFill(b.Labels, counts)
	out := make([]Bucket, len(filled))
	for i, e := range filled {
		out[i] = Bucket{Label: e.Key, Sessions: e.Value}
	}
	return out
}

var (
	// KWhBins buckets session energy.
	KWhBins = Binning{
		Edges:  []float64{0, 10, 20, 30, 40, 50, 60},
		Labels: []string{"0–10", "10–20", "20–30", "30–40", "40–50", "50–60", "60+"},
	}
	// DurationBins buckets session duration in minutes.
	DurationBins = Binning{
		Edges:  []float64{0, 10, 20, 30, 40, 50, 60},
		Labels: []string{"0–10", "10–20", "20–30", "30–40", "40–50", "50–60", "60+"},
	}
	// FrequencyBins buckets the number of sessions per vehicle. A vehicle
	// with no session lands in the lowest bin.
	FrequencyBins = Binning{
		Edges:  []float64{0, 5, 10, 15, 20, 25, 30},
		Labels: []string{"0–5", "5–10", "10–15", "15–20", "20–25", "25–30", "30+"},
	}
)

// Bucket is one histogram bar.
type Bucket struct {
	Label    string `json:"label"`
	Sessions int    `json:"sessions"`
}

// KWhHistogram counts filtered sessions by delivered energy. Sessions below
// 0 kWh fall outside every bin; Clean counts them in CleanStats.NegativeEnergy.
func KWhHistogram(filtered []model.Session) []Bucket {
	values := make([]float64, len(filtered))
	for i, s := range filtered {
		values[i] = s.EnergyKWh
	}
	return KWhBins.Count(values)
}

// DurationHistogram counts sessions by duration in minutes. Sessions without
// an end or with a non-positive duration are left out.
func DurationHistogram(filtered []model.Session) []Bucket {
	values := make([]float64, 0, len(filtered))
	for _, s := range filtered {
		if m, ok := s.DurationMinutes(); ok {
			values = append(values, m)
		}
	}
	return DurationBins.Count(values)
}

// FrequencyRow is one bucket of vehicles grouped by session count.
type FrequencyRow struct {
	Label    string  `json:"label"`
	Vehicles int     `json:"vehicles"`
	Share    float64 `json:"share"`
	Percent  string  `json:"percent"`
}

// FrequencyHistogram counts the sessions of every vehicle, then the vehicles
// per session-count bucket. Share is the percentage of vehicles, rounded to
// two decimals.
func FrequencyHistogram(filtered []model.Session) []FrequencyRow {
	perVehicle := make(map[string]int)
	for _, s := range filtered {
		perVehicle[s.VehicleID]++
	}
	values := make([]float64, 0, len(perVehicle))
	for _, n := range perVehicle {
		values = append(values, float64(n))
	}
	buckets := FrequencyBins.Count(values)
	total := len(perVehicle)
	rows := make([]FrequencyRow, len(buckets))
	for i, b := range buckets {
		share := 0.0
		if total > 0 {
			share = math.Round(float64(b.Sessions)/float64(total)*100*100) / 100
		}
		rows[i] = FrequencyRow{Label: b.Label, Vehicles: b.Sessions, Share: share, Percent: FormatPercent(share)}
	}
	return rows
}

// FormatPercent renders a percentage with at least one decimal digit, e.g.
// "50.0%" or "33.33%".
func FormatPercent(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "%"
}
