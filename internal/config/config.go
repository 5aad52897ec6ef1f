package config

import (
	"fmt"
	"math"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/oscillo/internal/dynamo"
	"github.com/san-kum/oscillo/internal/integrators"
	"github.com/san-kum/oscillo/internal/physics"
	"github.com/san-kum/oscillo/internal/sim"
)

const (
	DefaultDt     = 0.025
	DefaultColor  = "#fe98a0"
	DefaultTicks  = 400
	DefaultRateHz = 60
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type Config struct {
	Dt         float64    `yaml:"dt"`
	Integrator string     `yaml:"integrator"`
	Mass       float64    `yaml:"mass"`
	Color      string     `yaml:"color"`
	Axes       AxesConfig `yaml:"axes"`
}

type AxesConfig struct {
	X AxisConfig `yaml:"x"`
	Y AxisConfig `yaml:"y"`
	Z AxisConfig `yaml:"z"`
}

type AxisConfig struct {
	Damping          float64 `yaml:"damping"`
	Stiffness        float64 `yaml:"stiffness"`
	ForcingAmplitude float64 `yaml:"forcing_amplitude"`
	ForcingFrequency float64 `yaml:"forcing_frequency"`
	Position         float64 `yaml:"position"`
	Velocity         float64 `yaml:"velocity"`
}

func (a AxisConfig) Params() dynamo.Params {
	return dynamo.Params{
		Damping:          a.Damping,
		Stiffness:        a.Stiffness,
		ForcingAmplitude: a.ForcingAmplitude,
		ForcingFrequency: a.ForcingFrequency,
	}
}

func (a AxisConfig) State() dynamo.State {
	return dynamo.State{Position: a.Position, Velocity: a.Velocity}
}

func (a *AxisConfig) setParams(p dynamo.Params) {
	a.Damping = p.Damping
	a.Stiffness = p.Stiffness
	a.ForcingAmplitude = p.ForcingAmplitude
	a.ForcingFrequency = p.ForcingFrequency
}

func defaultAxis(stiffness, pos float64) AxisConfig {
	return AxisConfig{
		Stiffness:        stiffness,
		ForcingAmplitude: physics.DefaultForcingAmplitude,
		ForcingFrequency: physics.DefaultForcingFrequency,
		Position:         pos,
	}
}

// DefaultConfig is the original scene: three undamped axes driven at
// ω = 1 with stiffness 10, 20 and 30.
func DefaultConfig() *Config {
	return &Config{
		Dt:         DefaultDt,
		Integrator: integrators.Default,
		Mass:       physics.DefaultMass,
		Color:      DefaultColor,
		Axes: AxesConfig{
			X: defaultAxis(10, 20),
			Y: defaultAxis(20, 20),
			Z: defaultAxis(30, 50),
		},
	}
}

// Load reads path over DefaultConfig.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the keys present in path onto cfg. Keys the file
// omits keep their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Axis(a dynamo.Axis) *AxisConfig {
	switch a {
	case dynamo.X:
		return &c.Axes.X
	case dynamo.Y:
		return &c.Axes.Y
	default:
		return &c.Axes.Z
	}
}

// Validate reports the first value outside its documented range.
func (c *Config) Validate() error {
	if c.Dt <= 0 || math.IsNaN(c.Dt) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt=%v", dynamo.ErrInvalidStep, c.Dt)
	}
	if !integrators.Known(c.Integrator) {
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownScheme, c.Integrator)
	}
	if err := dynamo.ValidateMass(c.Mass); err != nil {
		return err
	}
	for _, a := range dynamo.Axes {
		ac := c.Axis(a)
		if err := ac.Params().Validate(); err != nil {
			return fmt.Errorf("axis %s: %w", a, err)
		}
		if !ac.State().IsValid() {
			return fmt.Errorf("axis %s: initial state %v is not finite", a, ac.State())
		}
	}
	if c.Color != "" && !colorPattern.MatchString(c.Color) {
		return fmt.Errorf("color %q: expected #rrggbb", c.Color)
	}
	return nil
}

// Clamp forces mass and every coefficient into range. It does not touch
// dt, the scheme, or the initial states.
func (c *Config) Clamp() {
	c.Mass = dynamo.ClampMass(c.Mass)
	for _, a := range dynamo.Axes {
		ac := c.Axis(a)
		ac.setParams(ac.Params().Clamp())
	}
}

func (c *Config) InitialStates() [3]dynamo.State {
	var out [3]dynamo.State
	for _, a := range dynamo.Axes {
		out[a] = c.Axis(a).State()
	}
	return out
}

func (c *Config) AxisParams() [3]dynamo.Params {
	var out [3]dynamo.Params
	for _, a := range dynamo.Axes {
		out[a] = c.Axis(a).Params()
	}
	return out
}

func (c *Config) Panel() *sim.Panel {
	return sim.NewPanel(c.AxisParams(), c.Mass)
}

// Driver builds a driver over a fresh panel. The panel is returned so the
// caller can edit it between ticks.
func (c *Config) Driver(opts ...sim.Option) (*sim.Driver, *sim.Panel, error) {
	stepper, err := integrators.New(c.Integrator)
	if err != nil {
		return nil, nil, err
	}
	panel := c.Panel()
	d, err := sim.New(panel, stepper, c.InitialStates(), c.Dt, opts...)
	if err != nil {
		return nil, nil, err
	}
	return d, panel, nil
}
