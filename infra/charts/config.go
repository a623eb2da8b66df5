package charts

// Config sets the size of rendered charts and where the charts command
// writes them.
type Config struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	OutputDir string `json:"output_dir"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Width <= 0 {
		c.Width = 1024
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.OutputDir == "" {
		c.OutputDir = "charts"
	}
}
