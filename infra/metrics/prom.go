package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/chargereport/core/metrics"
)

const namespace = "chargereport"

// PromSink records report computations in Prometheus metrics.
type PromSink struct {
	builds   prometheus.Counter
	duration prometheus.Histogram
	energy   prometheus.Gauge
	sessions prometheus.Gauge
	vehicles prometheus.Gauge
	days     prometheus.Gauge
	rows     *prometheus.GaugeVec
}

// NewPromSink registers report metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// that are already registered are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	if s.builds, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_builds_total",
		Help:      "Number of report computations",
	})); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_build_seconds",
		Help:      "Time spent computing a report",
		Buckets:   prometheus.DefBuckets,
	})); err != nil {
		return nil, err
	}
	if s.energy, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "report_energy_kwh",
		Help:      "Total energy of the last computed selection",
	})); err != nil {
		return nil, err
	}
	if s.sessions, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "report_sessions",
		Help:      "Charging sessions in the last computed selection",
	})); err != nil {
		return nil, err
	}
	if s.vehicles, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "report_active_vehicles",
		Help:      "Distinct vehicles in the last computed selection",
	})); err != nil {
		return nil, err
	}
	if s.days, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "report_days",
		Help:      "Calendar days covered by the last computed selection",
	})); err != nil {
		return nil, err
	}
	if s.rows, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dataset_rows",
		Help:      "Transaction rows by cleaning outcome",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}

// RecordReport updates the selection gauges and the build counters.
func (s *PromSink) RecordReport(ev coremetrics.ReportEvent) error {
	s.builds.Inc()
	s.duration.Observe(ev.Elapsed.Seconds())
	s.energy.Set(ev.Summary.TotalKWh)
	s.sessions.Set(float64(ev.Summary.Sessions))
	s.vehicles.Set(float64(ev.Summary.ActiveVehicles))
	s.days.Set(float64(ev.Summary.Days))
	return nil
}

// RecordLoad publishes how many rows each cleaning step kept or dropped.
func (s *PromSink) RecordLoad(ev coremetrics.LoadEvent) error {
	st := ev.Stats
	s.rows.WithLabelValues("read").Set(float64(st.Read))
	s.rows.WithLabelValues("kept").Set(float64(st.Kept))
	s.rows.WithLabelValues("incomplete").Set(float64(st.Incomplete))
	s.rows.WithLabelValues("not_in_roster").Set(float64(st.NotInRoster))
	s.rows.WithLabelValues("duplicate_id").Set(float64(st.DuplicateID))
	s.rows.WithLabelValues("negative_energy").Set(float64(st.NegativeEnergy))
	return nil
}
