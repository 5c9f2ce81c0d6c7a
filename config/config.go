package config

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// AppName names the per-user config directory.
const AppName = "histoedit"

// Config holds runtime configuration for the viewer and the highlight pipeline.
// Fields are loaded from a JSON file; missing fields keep their defaults.
type Config struct {
	Debug bool `json:"debug"`

	// Highlight pipeline
	DebounceMS        int     `json:"debounce_ms"`
	ShutdownTimeoutMS int     `json:"shutdown_timeout_ms"`
	ResultCacheSize   int     `json:"result_cache_size"`
	EngineWorkers     int     `json:"engine_workers"` // 0 = one per CPU
	MaxHighlightWidth float64 `json:"max_highlight_width"`
	DefaultBrightness float64 `json:"default_brightness"`
	HighlightEnabled  bool    `json:"highlight_enabled"`

	// Window layout
	DarkMode        bool `json:"dark_mode"`
	HistogramHeight int  `json:"histogram_height"`
	WindowWidth     int  `json:"window_width"`
	WindowHeight    int  `json:"window_height"`

	// Last directory an image was opened from
	LastDir string `json:"last_dir"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		DebounceMS:        30,
		ShutdownTimeoutMS: 500,
		ResultCacheSize:   1,
		EngineWorkers:     0,
		MaxHighlightWidth: 0.1,
		DefaultBrightness: 0.5,
		HighlightEnabled:  true,
		HistogramHeight:   350,
		WindowWidth:       1200,
		WindowHeight:      700,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.DebounceMS <= 0 {
		c.DebounceMS = 30
	}
	if c.DebounceMS > 1000 {
		c.DebounceMS = 1000
	}
	if c.ShutdownTimeoutMS <= 0 {
		c.ShutdownTimeoutMS = 500
	}
	if c.ResultCacheSize < 1 {
		c.ResultCacheSize = 1
	}
	if c.EngineWorkers < 0 {
		c.EngineWorkers = 0
	}
	if c.MaxHighlightWidth <= 0 || c.MaxHighlightWidth > 0.1 || math.IsNaN(c.MaxHighlightWidth) {
		c.MaxHighlightWidth = 0.1
	}
	if c.DefaultBrightness < 0 || c.DefaultBrightness > 1 || math.IsNaN(c.DefaultBrightness) {
		c.DefaultBrightness = 0.5
	}
	if c.HistogramHeight < 120 {
		c.HistogramHeight = 350
	}
	if c.WindowWidth < 400 {
		c.WindowWidth = 1200
	}
	if c.WindowHeight < 300 {
		c.WindowHeight = 700
	}
	return nil
}

// Debounce is the quiet period for continuous input.
func (c *Config) Debounce() time.Duration { return time.Duration(c.DebounceMS) * time.Millisecond }

// ShutdownTimeout bounds how long exit waits for the highlight worker.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}

// DefaultPath returns the per-user config file location
// ($XDG_CONFIG_HOME/histoedit/config.json), creating the directory.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(AppName, "config.json"))
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
