package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	apireport "github.com/kilianp07/chargereport/api/report"
	"github.com/kilianp07/chargereport/config"
	coremetrics "github.com/kilianp07/chargereport/core/metrics"
	"github.com/kilianp07/chargereport/core/model"
	"github.com/kilianp07/chargereport/core/report"
	"github.com/kilianp07/chargereport/infra/charts"
	"github.com/kilianp07/chargereport/infra/logger"
	"github.com/kilianp07/chargereport/infra/metrics"
	"github.com/kilianp07/chargereport/infra/source"
)

// Service holds the cleaned dataset and computes reports over it. The
// dataset is read-only after construction, so Report may be called
// concurrently.
type Service struct {
	sessions []model.Session
	stats    report.CleanStats
	loc      *time.Location
	sink     coremetrics.MetricsSink
	charts   *charts.Renderer
	log      logger.Logger
	cfg      *config.Config
	now      func() time.Time
}

// New loads and cleans the configured dataset and builds the metrics sinks.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	loc, err := cfg.Sources.Location()
	if err != nil {
		return nil, err
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	start := time.Now()
	ds, err := source.NewLoader(cfg.Sources, logger.New("source")).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	sessions, stats := report.Clean(ds.Transactions, ds.Roster, report.TimeParser{
		Layouts:  cfg.Sources.TimeLayouts,
		Location: loc,
	})
	logg.Debugw("dataset cleaned", map[string]any{
		"read":            stats.Read,
		"incomplete":      stats.Incomplete,
		"not_in_roster":   stats.NotInRoster,
		"duplicate_id":    stats.DuplicateID,
		"end_unparsed":    stats.EndUnparsed,
		"negative_energy": stats.NegativeEnergy,
		"kept":            stats.Kept,
		"roster_vehicles": stats.RosterVehicle,
	})
	logg.Infof("loaded %d sessions of %d vehicles", len(sessions), len(report.Vehicles(sessions)))

	svc := NewFromSessions(sessions, loc, sink)
	svc.stats = stats
	svc.cfg = cfg
	svc.log = logg
	svc.charts = charts.NewRenderer(cfg.Charts)
	if rec, ok := sink.(coremetrics.LoadRecorder); ok {
		ev := coremetrics.LoadEvent{
			Source:  cfg.Sources.Transactions.Path,
			Stats:   stats,
			Elapsed: time.Since(start),
			Time:    time.Now(),
		}
		if err := rec.RecordLoad(ev); err != nil {
			logg.Warnf("record load: %v", err)
		}
	}
	return svc, nil
}

// NewFromSessions builds a service over already cleaned sessions. A nil
// location selects UTC and a nil sink records nothing.
func NewFromSessions(sessions []model.Session, loc *time.Location, sink coremetrics.MetricsSink) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	cfg := &config.Config{}
	cfg.Server.SetDefaults()
	cfg.Charts.SetDefaults()
	return &Service{
		sessions: sessions,
		stats:    report.CleanStats{Kept: len(sessions)},
		loc:      loc,
		sink:     sink,
		charts:   charts.NewRenderer(cfg.Charts),
		log:      logger.New("service"),
		cfg:      cfg,
		now:      time.Now,
	}
}

// Vehicles returns the vehicle options, sorted.
func (s *Service) Vehicles() []string { return report.Vehicles(s.sessions) }

// DefaultSelection is the full date span with every vehicle.
func (s *Service) DefaultSelection() model.Selection { return report.DefaultSelection(s.sessions) }

// Location is the timezone dates are interpreted in.
func (s *Service) Location() *time.Location { return s.loc }

// Stats reports what cleaning dropped at load time.
func (s *Service) Stats() report.CleanStats { return s.stats }

// Charts returns the chart renderer configured for the service.
func (s *Service) Charts() *charts.Renderer { return s.charts }

// Report computes every table for sel and records the run in the metrics
// sinks. Sink failures are logged, never returned.
func (s *Service) Report(sel model.Selection) report.Report {
	runID := uuid.NewString()
	start := s.now()
	rep := report.Build(s.sessions, sel)
	elapsed := s.now().Sub(start)
	s.log.Infow("report built", map[string]any{
		"run_id":    runID,
		"range":     sel.Range.String(),
		"vehicles":  len(sel.Vehicles),
		"sessions":  rep.Summary.Sessions,
		"total_kwh": rep.Summary.TotalKWh,
		"elapsed":   elapsed.String(),
	})
	ev := coremetrics.ReportEvent{
		RunID:     runID,
		Selection: sel,
		Summary:   rep.Summary,
		Daily:     rep.Daily,
		Elapsed:   elapsed,
		Time:      start,
	}
	if err := s.sink.RecordReport(ev); err != nil {
		s.log.Warnf("record report %s: %v", runID, err)
	}
	return rep
}

// Handler returns the HTTP API of the service.
func (s *Service) Handler() http.Handler {
	return apireport.NewRouter(s, s.charts, logger.New("api"))
}

// Run serves the HTTP API, and the Prometheus endpoint when an address is
// configured, until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if addr := s.cfg.Metrics.PrometheusAddress; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http server shutdown: %v", err)
		}
	}()
	s.log.Infof("serving report on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Close releases the metrics sinks that hold connections.
func (s *Service) Close() error {
	closeSink(s.sink)
	return nil
}

func closeSink(sink coremetrics.MetricsSink) {
	switch v := sink.(type) {
	case *coremetrics.MultiSink:
		for _, inner := range v.Sinks {
			closeSink(inner)
		}
	case interface{ Close() }:
		v.Close()
	}
}
