// Package factory instantiates pluggable modules from configuration. A
// module is selected by a type string and carries a map of raw settings,
// typically the `conf` block of a metrics sink entry. Factories decode the
// settings into typed structs with Decode and return the implementation.
//
// The metrics sinks are registered this way:
//
//	reg := factory.NewRegistry[metrics.MetricsSink]()
//	_ = reg.Register("influx", func(conf map[string]any) (metrics.MetricsSink, error) {
//	    var c InfluxConfig
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return NewInfluxSinkWithFallback(c), nil
//	})
//	sink, err := reg.Create(factory.ModuleConfig{
//	    Type: "influx",
//	    Conf: map[string]any{"url": "http://localhost:8086", "bucket": "charging"},
//	})
package factory
