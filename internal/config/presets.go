package config

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/oscillo/internal/dynamo"
)

var Presets = map[string]func() *Config{
	"default": DefaultConfig,
	"undamped": func() *Config {
		cfg := DefaultConfig()
		for _, a := range dynamo.Axes {
			cfg.Axis(a).ForcingAmplitude = 0
		}
		return cfg
	},
	"damped": func() *Config {
		cfg := DefaultConfig()
		for _, a := range dynamo.Axes {
			ac := cfg.Axis(a)
			ac.Damping = 1.5
			ac.ForcingAmplitude = 0
		}
		return cfg
	},
	"resonance": func() *Config {
		cfg := DefaultConfig()
		for _, a := range dynamo.Axes {
			ac := cfg.Axis(a)
			ac.Damping = 0.2
			ac.ForcingFrequency = math.Sqrt(ac.Stiffness / cfg.Mass)
			ac.Position = 0
		}
		return cfg
	},
	"beats": func() *Config {
		cfg := DefaultConfig()
		for _, a := range dynamo.Axes {
			ac := cfg.Axis(a)
			ac.ForcingAmplitude = 40
			ac.ForcingFrequency = math.Sqrt(ac.Stiffness/cfg.Mass) * 1.1
			ac.Position = 0
		}
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset.
func GetPreset(name string) (*Config, error) {
	fn, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownPreset, name)
	}
	return fn(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
