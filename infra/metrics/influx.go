package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/chargereport/core/metrics"
	"github.com/kilianp07/chargereport/infra/logger"
)

// InfluxConfig locates the bucket receiving report points.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes report computations to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordReport writes the summary of the selection followed by one point per
// day of the daily table.
func (s *InfluxSink) RecordReport(ev coremetrics.ReportEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := make([]*write.Point, 0, len(ev.Daily)+1)
	points = append(points, reportPoint(ev))
	for _, d := range ev.Daily {
		points = append(points, write.NewPointWithMeasurement("daily_consumption").
			AddTag("run_id", ev.RunID).
			AddField("energy_kwh", round3(d.EnergyKWh)).
			AddField("sessions", d.Sessions).
			SetTime(d.Date))
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

func reportPoint(ev coremetrics.ReportEvent) *write.Point {
	sum := ev.Summary
	return write.NewPointWithMeasurement("charging_report").
		AddTag("run_id", ev.RunID).
		AddTag("range", ev.Selection.Range.String()).
		AddField("total_kwh", round3(sum.TotalKWh)).
		AddField("sessions", sum.Sessions).
		AddField("active_vehicles", sum.ActiveVehicles).
		AddField("selected_vehicles", len(ev.Selection.Vehicles)).
		AddField("avg_kwh_per_day", round3(sum.AvgKWhPerDay)).
		AddField("avg_sessions_per_day", round3(sum.AvgSessionsPerDay)).
		AddField("days", sum.Days).
		AddField("elapsed_ms", round3(ev.Elapsed.Seconds()*1000)).
		SetTime(ev.Time)
}

// RecordLoad persists the cleaning statistics of a dataset load.
func (s *InfluxSink) RecordLoad(ev coremetrics.LoadEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st := ev.Stats
	p := write.NewPointWithMeasurement("dataset_load").
		AddTag("source", ev.Source).
		AddField("read", st.Read).
		AddField("kept", st.Kept).
		AddField("incomplete", st.Incomplete).
		AddField("not_in_roster", st.NotInRoster).
		AddField("duplicate_id", st.DuplicateID).
		AddField("end_unparsed", st.EndUnparsed).
		AddField("negative_energy", st.NegativeEnergy).
		AddField("roster_vehicles", st.RosterVehicle).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
