// Package config provides configuration loading and access for the graph viewer.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/morphgraph/schedule"
	"github.com/pthm-cable/morphgraph/surface"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all viewer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen" toml:"screen"`
	Graph     GraphConfig     `yaml:"graph" toml:"graph"`
	Schedule  ScheduleConfig  `yaml:"schedule" toml:"schedule"`
	Camera    CameraConfig    `yaml:"camera" toml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-" toml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width" toml:"width"`
	Height    int `yaml:"height" toml:"height"`
	TargetFPS int `yaml:"target_fps" toml:"target_fps"`
}

// Backend selects how the host consumes positions.
type Backend string

const (
	BackendCPU    Backend = "cpu"    // One ECS entity per grid cell
	BackendBuffer Backend = "buffer" // Packed float32 position buffer
)

// ParseBackend converts a CLI/config string into a Backend.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendCPU, BackendBuffer:
		return b, nil
	case "gpu":
		return BackendBuffer, nil
	}
	return "", fmt.Errorf("unknown backend %q", s)
}

// GraphConfig holds grid and function settings.
type GraphConfig struct {
	Backend             Backend      `yaml:"backend" toml:"backend"`
	Resolution          int          `yaml:"resolution" toml:"resolution"`
	MinResolution       int          `yaml:"min_resolution" toml:"min_resolution"`               // Lower bound offered by the UI
	MaxResolutionCPU    int          `yaml:"max_resolution_cpu" toml:"max_resolution_cpu"`       // Per-entity cost caps this low
	MaxResolutionBuffer int          `yaml:"max_resolution_buffer" toml:"max_resolution_buffer"` // Packed buffers scale further
	Function            surface.Name `yaml:"function" toml:"function"`
}

// MaxResolutionFor returns the resolution bound of a backend.
func (g GraphConfig) MaxResolutionFor(b Backend) int {
	if b == BackendBuffer {
		return g.MaxResolutionBuffer
	}
	return g.MaxResolutionCPU
}

// ScheduleConfig holds the transition policy and RNG seed.
type ScheduleConfig struct {
	schedule.Config `yaml:",inline"`
	Seed            int64 `yaml:"seed" toml:"seed"` // 0 = time-based
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Distance    float64 `yaml:"distance" toml:"distance"`
	Height      float64 `yaml:"height" toml:"height"`
	Fovy        float64 `yaml:"fovy" toml:"fovy"`
	OrbitSpeed  float64 `yaml:"orbit_speed" toml:"orbit_speed"`
	MinDistance float64 `yaml:"min_distance" toml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance" toml:"max_distance"`
}

// TelemetryConfig holds frame-rate and perf reporting parameters.
type TelemetryConfig struct {
	SampleDuration float64 `yaml:"sample_duration" toml:"sample_duration"`
	DisplayMode    string  `yaml:"display_mode" toml:"display_mode"`
	PerfWindow     int     `yaml:"perf_window" toml:"perf_window"`
	LogInterval    float64 `yaml:"log_interval" toml:"log_interval"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MaxResolution int     // Bound for the configured backend
	Step          float64 // 2 / Graph.Resolution
	ScreenW32     float32
	ScreenH32     float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML or TOML file, merging with embedded defaults.
// Files ending in .toml are decoded as TOML; anything else as YAML.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := unmarshalFile(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()
	return cfg, nil
}

func unmarshalFile(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks ranges that the engine would otherwise reject at runtime.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height)
	}
	backend, err := ParseBackend(string(c.Graph.Backend))
	if err != nil {
		return fmt.Errorf("graph.backend: %w", err)
	}
	c.Graph.Backend = backend
	if c.Graph.MinResolution < 1 {
		return fmt.Errorf("graph.min_resolution %d must be at least 1", c.Graph.MinResolution)
	}
	if c.Graph.MaxResolutionCPU < c.Graph.MinResolution || c.Graph.MaxResolutionBuffer < c.Graph.MinResolution {
		return fmt.Errorf("graph max resolutions (%d, %d) below min_resolution %d",
			c.Graph.MaxResolutionCPU, c.Graph.MaxResolutionBuffer, c.Graph.MinResolution)
	}
	limit := c.Graph.MaxResolutionFor(c.Graph.Backend)
	if c.Graph.Resolution < 1 || c.Graph.Resolution > limit {
		return fmt.Errorf("graph.resolution %d outside [1, %d] for backend %s", c.Graph.Resolution, limit, c.Graph.Backend)
	}
	if !c.Graph.Function.Valid() {
		return fmt.Errorf("graph.function %d is not a known function", c.Graph.Function)
	}
	if err := c.Schedule.Config.Validate(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	if c.Telemetry.SampleDuration <= 0 {
		return fmt.Errorf("telemetry.sample_duration %v must be positive", c.Telemetry.SampleDuration)
	}
	switch c.Telemetry.DisplayMode {
	case "fps", "ms":
	default:
		return fmt.Errorf("telemetry.display_mode %q must be fps or ms", c.Telemetry.DisplayMode)
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config. Call again after
// mutating Graph fields.
func (c *Config) ComputeDerived() {
	c.Derived.MaxResolution = c.Graph.MaxResolutionFor(c.Graph.Backend)
	c.Derived.Step = 2.0 / float64(c.Graph.Resolution)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
