package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordReport forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordReport(ev ReportEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordReport(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordLoad forwards load events to the sinks that support them.
func (m *MultiSink) RecordLoad(ev LoadEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(LoadRecorder); ok {
			if err := rec.RecordLoad(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
