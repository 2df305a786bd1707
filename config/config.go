// Package config provides configuration loading and access for the fluid.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tunable parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Particles ParticlesConfig `yaml:"particles"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Forces    ForcesConfig    `yaml:"forces"`
	Morph     MorphConfig     `yaml:"morph"`
	Shapes    ShapesConfig    `yaml:"shapes"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Workers   int             `yaml:"workers"` // 0 = one per CPU

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the background lattice dimensions.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Depth  int `yaml:"depth"`
}

// ParticlesConfig sizes the particle buffers. Max is the allocation size;
// Count is the active count and may be raised at runtime up to Max.
type ParticlesConfig struct {
	Max   int `yaml:"max"`
	Count int `yaml:"count"`
}

// PhysicsConfig holds the material and integration parameters.
type PhysicsConfig struct {
	Gravity       []float64 `yaml:"gravity"` // grid-space acceleration, 3 components
	Viscosity     float64   `yaml:"viscosity"`
	RestDensity   float64   `yaml:"rest_density"`
	EOSStiffness  float64   `yaml:"eos_stiffness"` // 0 = viscosity-only fluid
	EOSPower      float64   `yaml:"eos_power"`
	Stiffness     float64   `yaml:"stiffness"` // morph spring constant
	Damping       float64   `yaml:"damping"`   // per-frame velocity decay
	FluidStrength float64   `yaml:"fluid_strength"`
}

// ForcesConfig holds the procedural field and pointer parameters.
type ForcesConfig struct {
	TurbFrequency  float64 `yaml:"turb_frequency"`
	TurbStrength   float64 `yaml:"turb_strength"`
	Wave2Frequency float64 `yaml:"wave2_frequency"`
	Wave2Strength  float64 `yaml:"wave2_strength"`
	MouseForce     float64 `yaml:"mouse_force"`
}

// MorphConfig holds shape transition parameters.
type MorphConfig struct {
	Duration   float64 `yaml:"duration"`    // seconds per transition
	AutoRotate float64 `yaml:"auto_rotate"` // camera radians/sec feeding the trigger
}

// ShapesConfig selects the three target shapes. Files, when set, must name
// exactly three point clouds (.obj or .csv); empty means the built-in
// procedural set.
type ShapesConfig struct {
	Files []string `yaml:"files"`
	Seed  int64    `yaml:"seed"`
}

// TelemetryConfig holds stats output settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
	PerfWindow  int     `yaml:"perf_window"`  // frames in the perf rolling window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CellCount int
	Gravity   [3]float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
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

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
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
		// Unmarshal into the same struct - only overwrites fields present
		// in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate checks the preconditions the pipeline cannot run without. These
// are fatal at startup, never mid-frame.
func (c *Config) Validate() error {
	if c.Grid.Width < 4 || c.Grid.Height < 4 || c.Grid.Depth < 4 {
		return fmt.Errorf("config: grid %dx%dx%d below minimum 4x4x4",
			c.Grid.Width, c.Grid.Height, c.Grid.Depth)
	}
	if c.Particles.Max <= 0 {
		return fmt.Errorf("config: particles.max %d must be positive", c.Particles.Max)
	}
	if c.Particles.Count <= 0 || c.Particles.Count > c.Particles.Max {
		return fmt.Errorf("config: particles.count %d outside [1, %d]",
			c.Particles.Count, c.Particles.Max)
	}
	if len(c.Physics.Gravity) != 3 {
		return fmt.Errorf("config: gravity needs 3 components, got %d", len(c.Physics.Gravity))
	}
	if c.Physics.RestDensity <= 0 {
		return fmt.Errorf("config: rest_density %g must be positive", c.Physics.RestDensity)
	}
	if c.Morph.Duration <= 0 {
		return fmt.Errorf("config: morph.duration %g must be positive", c.Morph.Duration)
	}
	if n := len(c.Shapes.Files); n != 0 && n != 3 {
		return fmt.Errorf("config: shapes.files needs exactly 3 entries, got %d", n)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers %d must be non-negative", c.Workers)
	}
	return nil
}

// computeDerived calculates values derived from the loaded config.
func (c *Config) computeDerived() {
	c.Derived.CellCount = c.Grid.Width * c.Grid.Height * c.Grid.Depth
	for i, g := range c.Physics.Gravity {
		c.Derived.Gravity[i] = float32(g)
	}
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
