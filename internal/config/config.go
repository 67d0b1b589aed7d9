package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/agemap/internal/geo"
)

const (
	DefaultYearProperty   = "start_date"
	DefaultSeed           = 7
	DefaultBlocks         = 400
	DefaultTimeoutSeconds = 90
	DefaultTheme          = "harbor"
	DefaultSnapshotWidth  = 960
	DefaultSnapshotHeight = 720
)

type Config struct {
	Source       string         `yaml:"source"` // geojson | overpass | synth
	Path         string         `yaml:"path"`
	YearProperty string         `yaml:"year_property"`
	BBox         geo.BBox       `yaml:"bbox"`
	Theme        string         `yaml:"theme"`
	LogLevel     string         `yaml:"log_level"`
	Overpass     OverpassConfig `yaml:"overpass"`
	Synth        SynthConfig    `yaml:"synth"`
	Snapshot     SnapshotConfig `yaml:"snapshot"`
}

type SnapshotConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type OverpassConfig struct {
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type SynthConfig struct {
	Seed   int64 `yaml:"seed"`
	Blocks int   `yaml:"blocks"`
}

func DefaultConfig() *Config {
	return &Config{
		Source:       "synth",
		YearProperty: DefaultYearProperty,
		Theme:        DefaultTheme,
		LogLevel:     "info",
		Overpass: OverpassConfig{
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Synth: SynthConfig{
			Seed:   DefaultSeed,
			Blocks: DefaultBlocks,
		},
		Snapshot: SnapshotConfig{
			Width:  DefaultSnapshotWidth,
			Height: DefaultSnapshotHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overlays AGEMAP_* environment variables onto the config. main
// loads .env first, so both real environment and dotenv entries land here.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("AGEMAP_OVERPASS_URL"); v != "" {
		c.Overpass.Endpoint = v
	}
	if v := os.Getenv("AGEMAP_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("AGEMAP_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// SnapshotSize returns the configured export dimensions, falling back to
// the defaults when either side is unset.
func (c *Config) SnapshotSize() (w, h int) {
	w, h = c.Snapshot.Width, c.Snapshot.Height
	if w <= 0 {
		w = DefaultSnapshotWidth
	}
	if h <= 0 {
		h = DefaultSnapshotHeight
	}
	return w, h
}

// Timeout converts the configured Overpass timeout, falling back to the
// default when unset.
func (c *Config) Timeout() time.Duration {
	secs := c.Overpass.TimeoutSeconds
	if secs <= 0 {
		secs = DefaultTimeoutSeconds
	}
	return time.Duration(secs) * time.Second
}
