package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/chargereport/core/metrics"
	"github.com/kilianp07/chargereport/core/model"
	"github.com/kilianp07/chargereport/core/report"
)

type captureServer struct {
	mu     sync.Mutex
	bodies []string
}

func (c *captureServer) handler(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	c.mu.Lock()
	c.bodies = append(c.bodies, strings.TrimSpace(string(data)))
	c.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (c *captureServer) lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, b := range c.bodies {
		out = append(out, strings.Split(b, "\n")...)
	}
	return out
}

func protocol(p *write.Point) string {
	return strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
}

func TestInfluxSink_RecordReport(t *testing.T) {
	capture := &captureServer{}
	srv := httptest.NewServer(http.HandlerFunc(capture.handler))
	defer srv.Close()

	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket"})
	defer sink.Close()

	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	jan2 := jan1.AddDate(0, 0, 1)
	now := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	ev := coremetrics.ReportEvent{
		RunID:     "run-1",
		Selection: model.Selection{Range: model.NewDateRange(jan1, jan2), Vehicles: []string{"A", "B"}},
		Summary: report.Summary{
			TotalKWh: 10.12345, Sessions: 2, ActiveVehicles: 1,
			AvgKWhPerDay: 5.061725, AvgSessionsPerDay: 1, Days: 2,
		},
		Daily: []report.DailyRow{
			{Date: jan1, EnergyKWh: 10.12345, Sessions: 2},
			{Date: jan2},
		},
		Elapsed: 1500 * time.Microsecond,
		Time:    now,
	}
	require.NoError(t, sink.RecordReport(ev))

	summary := write.NewPointWithMeasurement("charging_report").
		AddTag("run_id", "run-1").
		AddTag("range", "2025-01-01..2025-01-02").
		AddField("total_kwh", 10.123).
		AddField("sessions", 2).
		AddField("active_vehicles", 1).
		AddField("selected_vehicles", 2).
		AddField("avg_kwh_per_day", 5.062).
		AddField("avg_sessions_per_day", 1.0).
		AddField("days", 2).
		AddField("elapsed_ms", 1.5).
		SetTime(now)
	day1 := write.NewPointWithMeasurement("daily_consumption").
		AddTag("run_id", "run-1").
		AddField("energy_kwh", 10.123).
		AddField("sessions", 2).
		SetTime(jan1)
	day2 := write.NewPointWithMeasurement("daily_consumption").
		AddTag("run_id", "run-1").
		AddField("energy_kwh", 0.0).
		AddField("sessions", 0).
		SetTime(jan2)

	assert.Equal(t, []string{protocol(summary), protocol(day1), protocol(day2)}, capture.lines())
}

func TestInfluxSink_RecordLoad(t *testing.T) {
	capture := &captureServer{}
	srv := httptest.NewServer(http.HandlerFunc(capture.handler))
	defer srv.Close()

	sink := NewInfluxSink(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "token", Org: "org", Bucket: "bucket"})
	now := time.Now()
	ev := coremetrics.LoadEvent{
		Source: "xlsx",
		Stats:  report.CleanStats{Read: 10, Incomplete: 2, NotInRoster: 1, DuplicateID: 1, EndUnparsed: 1, Kept: 6, RosterVehicle: 3},
		Time:   now,
	}
	require.NoError(t, sink.RecordLoad(ev))

	p := write.NewPointWithMeasurement("dataset_load").
		AddTag("source", "xlsx").
		AddField("read", 10).
		AddField("kept", 6).
		AddField("incomplete", 2).
		AddField("not_in_roster", 1).
		AddField("duplicate_id", 1).
		AddField("end_unparsed", 1).
		AddField("negative_energy", 0).
		AddField("roster_vehicles", 3).
		SetTime(now)
	assert.Equal(t, []string{protocol(p)}, capture.lines())
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "tok", Org: "org", Bucket: "bucket"})
	assert.IsType(t, coremetrics.NopSink{}, sink)
	assert.True(t, called, "health endpoint not called")
}

func TestInfluxSink_WriteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"invalid","message":"bad point"}`))
	}))
	defer srv.Close()

	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket"})
	err := sink.RecordReport(coremetrics.ReportEvent{RunID: "r", Time: time.Now()})
	assert.Error(t, err)
}
