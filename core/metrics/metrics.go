package metrics

import (
	"time"

	"github.com/kilianp07/chargereport/core/model"
	"github.com/kilianp07/chargereport/core/report"
)

// ReportEvent describes one computation of the report for a selection.
type ReportEvent struct {
	RunID     string
	Selection model.Selection
	Summary   report.Summary
	Daily     []report.DailyRow
	Elapsed   time.Duration
	Time      time.Time
}

// MetricsSink records report computations for observability purposes.
type MetricsSink interface {
	RecordReport(ev ReportEvent) error
}

// LoadEvent captures the outcome of loading and cleaning the dataset.
type LoadEvent struct {
	Source  string
	Stats   report.CleanStats
	Elapsed time.Duration
	Time    time.Time
}

// LoadRecorder is implemented by sinks able to record dataset loads.
type LoadRecorder interface {
	RecordLoad(ev LoadEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordReport(ReportEvent) error { return nil }
func (NopSink) RecordLoad(LoadEvent) error     { return nil }
