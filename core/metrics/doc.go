// Package metrics defines the sinks that observe report computations and
// dataset loads. Implementations such as PromSink and InfluxSink live in
// infra/metrics and register themselves by name; NewMetricsSink builds them
// from configuration and wraps several in a MultiSink.
package metrics
