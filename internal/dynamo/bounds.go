package dynamo

import (
	"fmt"
	"math"
)

// Range is a closed interval of accepted parameter values.
type Range struct {
	Min, Max float64
}

// Ranges the parameter editor clamps to. Inside them the default step
// stays numerically stable.
var (
	DampingRange          = Range{0, 10}
	StiffnessRange        = Range{0, 100}
	ForcingAmplitudeRange = Range{0, 100}
	ForcingFrequencyRange = Range{0, 100}
	MassRange             = Range{0.1, 10}
)

func (r Range) Contains(v float64) bool {
	return !math.IsNaN(v) && v >= r.Min && v <= r.Max
}

// Clamp pulls v into the range. NaN maps to Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

func (r Range) describe(v float64) string {
	return fmt.Sprintf("%g not in [%g, %g]", v, r.Min, r.Max)
}

// Clamp returns p with every coefficient forced into its range.
func (p Params) Clamp() Params {
	return Params{
		Damping:          DampingRange.Clamp(p.Damping),
		Stiffness:        StiffnessRange.Clamp(p.Stiffness),
		ForcingAmplitude: ForcingAmplitudeRange.Clamp(p.ForcingAmplitude),
		ForcingFrequency: ForcingFrequencyRange.Clamp(p.ForcingFrequency),
	}
}

// Validate returns a *BoundsError for the first coefficient out of range.
func (p Params) Validate() error {
	checks := []struct {
		name string
		v    float64
		r    Range
	}{
		{"damping", p.Damping, DampingRange},
		{"stiffness", p.Stiffness, StiffnessRange},
		{"forcing_amplitude", p.ForcingAmplitude, ForcingAmplitudeRange},
		{"forcing_frequency", p.ForcingFrequency, ForcingFrequencyRange},
	}
	for _, c := range checks {
		if !c.r.Contains(c.v) {
			return &BoundsError{Name: c.name, Value: c.v, Range: c.r}
		}
	}
	return nil
}

func ClampMass(m float64) float64 {
	return MassRange.Clamp(m)
}

func ValidateMass(m float64) error {
	if !MassRange.Contains(m) {
		return &BoundsError{Name: "mass", Value: m, Range: MassRange}
	}
	return nil
}
