package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/chargereport/core/metrics"
	"github.com/kilianp07/chargereport/infra/charts"
	"github.com/kilianp07/chargereport/infra/source"
)

// Config is the application configuration.
type Config struct {
	Sources source.Config  `json:"sources"`
	Server  ServerConfig   `json:"server"`
	Metrics metrics.Config `json:"metrics"`
	Charts  charts.Config  `json:"charts"`
	Logging LoggingConfig  `json:"logging"`
}

// Load reads the yaml or json file at path, then applies K_ prefixed
// environment overrides (K_SERVER__ADDRESS sets server.address). An empty
// path loads defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Sources.SetDefaults()
	cfg.Server.SetDefaults()
	cfg.Charts.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section and reports all problems at once.
func (c Config) Validate() error {
	return errors.Join(
		c.Sources.Validate(),
		c.Server.Validate(),
		c.Metrics.Validate(),
		c.Logging.Validate(),
	)
}
