package report

import (
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/chargereport/core/model"
)

func TestBinBoundaries(t *testing.T) {
	cases := []struct {
		b     Binning
		v     float64
		label string
		ok    bool
	}{
		{KWhBins, 0, "0–10", true},
		{KWhBins, 9.99, "0–10", true},
		{KWhBins, 10, "10–20", true},
		{KWhBins, 25, "20–30", true},
		{KWhBins, 60, "60+", true},
		{KWhBins, 1e6, "60+", true},
		{KWhBins, -0.5, "", false},
		{KWhBins, math.NaN(), "", false},
		{DurationBins, 65, "60+", true},
		{DurationBins, 59.5, "50–60", true},
		{FrequencyBins, 0, "0–5", true},
		{FrequencyBins, 4, "0–5", true},
		{FrequencyBins, 5, "5–10", true},
		{FrequencyBins, 30, "30+", true},
	}
	for _, c := range cases {
		label, ok := c.b.Bin(c.v)
		assert.Equal(t, c.ok, ok, "value %v", c.v)
		assert.Equal(t, c.label, label, "value %v", c.v)
	}
}

func TestKWhHistogramCountsEverySession(t *testing.T) {
	sessions := []model.Session{
		session("1", "A", at(1, 8, 0), nil, 0),
		session("2", "A", at(1, 9, 0), nil, 25),
		session("3", "B", at(1, 9, 0), nil, 25.5),
		session("4", "B", at(1, 9, 0), nil, 75),
	}
	h := KWhHistogram(sessions)
	require.Len(t, h, len(KWhBins.Labels))
	total := 0
	for i, b := range h {
		assert.Equal(t, KWhBins.Labels[i], b.Label)
		total += b.Sessions
	}
	assert.Equal(t, len(sessions), total)
	assert.Equal(t, 1, h[0].Sessions)
	assert.Equal(t, 2, h[2].Sessions)
	assert.Equal(t, 1, h[6].Sessions)
}

func TestDurationHistogramSkipsInvalidDurations(t *testing.T) {
	start := at(1, 9, 0)
	sessions := []model.Session{
		session("1", "A", start, ptr(start.Add(65*time.Minute)), 1),
		session("2", "A", start, ptr(start.Add(5*time.Minute)), 1),
		session("3", "A", start, nil, 1),
		session("4", "A", start, ptr(start), 1),
		session("5", "A", start, ptr(start.Add(-time.Hour)), 1),
	}
	h := DurationHistogram(sessions)
	require.Len(t, h, 7)
	total := 0
	for _, b := range h {
		total += b.Sessions
	}
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, h[0].Sessions)
	assert.Equal(t, "60+", h[6].Label)
	assert.Equal(t, 1, h[6].Sessions)
}

func TestHistogramsEmptyInput(t *testing.T) {
	for _, h := range [][]Bucket{KWhHistogram(nil), DurationHistogram(nil)} {
		require.Len(t, h, 7)
		for _, b := range h {
			assert.Zero(t, b.Sessions)
		}
	}
	f := FrequencyHistogram(nil)
	require.Len(t, f, 7)
	for _, r := range f {
		assert.Zero(t, r.Vehicles)
		assert.Equal(t, "0.0%", r.Percent)
	}
}

func TestFrequencyHistogram(t *testing.T) {
	var sessions []model.Session
	add := func(vehicle string, n int) {
		for i := 0; i < n; i++ {
			sessions = append(sessions, session(vehicle+strconv.Itoa(i), vehicle, at(1, 10, 0), nil, 1))
		}
	}
	add("A", 5)
	add("B", 4)
	add("C", 31)

	f := FrequencyHistogram(sessions)
	require.Len(t, f, 7)
	assert.Equal(t, FrequencyRow{Label: "0–5", Vehicles: 1, Share: 33.33, Percent: "33.33%"}, f[0])
	assert.Equal(t, FrequencyRow{Label: "5–10", Vehicles: 1, Share: 33.33, Percent: "33.33%"}, f[1])
	assert.Equal(t, FrequencyRow{Label: "10–15", Vehicles: 0, Share: 0, Percent: "0.0%"}, f[2])
	assert.Equal(t, "30+", f[6].Label)
	assert.Equal(t, 1, f[6].Vehicles)

	sum := 0.0
	for _, r := range f {
		sum += r.Share
	}
	assert.InDelta(t, 100, sum, 0.05)
}

func TestFrequencySharesSumToHundred(t *testing.T) {
	var sessions []model.Session
	for v := 0; v < 7; v++ {
		for i := 0; i <= v*6; i++ {
			id := strings.Repeat("x", v) + strconv.Itoa(i)
			sessions = append(sessions, session(id, "V"+strconv.Itoa(v), at(1, 10, 0), nil, 1))
		}
	}
	sum := 0.0
	vehicles := 0
	for _, r := range FrequencyHistogram(sessions) {
		sum += r.Share
		vehicles += r.Vehicles
	}
	assert.Equal(t, 7, vehicles)
	assert.InDelta(t, 100, sum, 0.05)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "50.0%", FormatPercent(50))
	assert.Equal(t, "12.5%", FormatPercent(12.5))
	assert.Equal(t, "33.33%", FormatPercent(33.33))
	assert.Equal(t, "0.0%", FormatPercent(0))
	assert.Equal(t, "100.0%", FormatPercent(100))
}
