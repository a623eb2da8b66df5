package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// LoggingConfig sets the level and output format of the application logs.
type LoggingConfig struct {
	// Level is a zerolog level name; empty defers to LOG_LEVEL.
	Level string `json:"level"`
	// Format is "json" or "console"; empty defers to APP_ENV.
	Format string `json:"format"`
}

// Validate checks the level and format names.
func (c LoggingConfig) Validate() error {
	if c.Level != "" {
		if _, err := zerolog.ParseLevel(c.Level); err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
	}
	switch c.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format: unknown format %s", c.Format)
	}
	return nil
}
