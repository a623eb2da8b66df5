package metrics

import (
	"fmt"

	"github.com/kilianp07/chargereport/core/factory"
)

// Config defines settings for metrics sinks.
type Config struct {
	Sinks             []factory.ModuleConfig `json:"sinks"`
	PrometheusAddress string                 `json:"prometheus_address"`
}

// Validate checks that every configured sink names a type.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics.sinks[%d]: type is required", i)
		}
	}
	return nil
}
