package config

import "fmt"

// ServerConfig sets where the HTTP API listens.
type ServerConfig struct {
	Address string `json:"address"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	return nil
}
