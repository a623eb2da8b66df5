package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/chargereport/core/model"
)

func TestBuild(t *testing.T) {
	sessions := []model.Session{
		session("1", "A", at(1, 9, 50), ptr(at(1, 11, 10)), 4),
		session("2", "B", at(1, 18, 0), ptr(at(1, 18, 30)), 6),
		session("3", "A", at(3, 9, 0), nil, 5),
		session("4", "C", at(3, 9, 0), nil, 50),
		session("5", "A", at(9, 9, 0), nil, 50),
	}
	sel := model.Selection{Range: jan(1, 3), Vehicles: []string{"A", "B"}}
	rep := Build(sessions, sel)

	assert.Equal(t, sel, rep.Selection)
	assert.Equal(t, Summary{TotalKWh: 15, Sessions: 3, ActiveVehicles: 2, AvgKWhPerDay: 5, AvgSessionsPerDay: 1, Days: 3}, rep.Summary)
	require.Len(t, rep.Daily, 3)
	assert.Equal(t, 0, rep.Daily[1].Sessions)
	assert.Len(t, rep.KWh, 7)
	assert.Equal(t, 3, rep.KWh[0].Sessions)
	durations := 0
	for _, b := range rep.Duration {
		durations += b.Sessions
	}
	assert.Equal(t, 2, durations)
	assert.Equal(t, 2, rep.Frequency[0].Vehicles)
	assert.Equal(t, "100.0%", rep.Frequency[0].Percent)
	assert.Len(t, rep.Hourly, 24)
	assert.Equal(t, 1, rep.Hourly[10].TotalSessions)
}

func TestBuildEmptySelection(t *testing.T) {
	rep := Build(nil, model.Selection{Range: jan(1, 3)})
	assert.Len(t, rep.Daily, 3)
	assert.Len(t, rep.KWh, 7)
	assert.Len(t, rep.Duration, 7)
	assert.Len(t, rep.Frequency, 7)
	assert.Len(t, rep.Hourly, 24)
	assert.Zero(t, rep.Summary.TotalKWh)
}
