package physics

import (
	"math"

	"github.com/san-kum/oscillo/internal/dynamo"
)

const (
	DefaultMass             = 1.0
	DefaultStiffness        = 10.0
	DefaultForcingAmplitude = 10.0
	DefaultForcingFrequency = 1.0
)

// Law computes the acceleration of one axis. Accel is the only
// implementation outside of tests.
type Law func(t, v, x float64, p dynamo.Params, mass float64) float64

// Accel is the damped driven oscillator force law divided by mass:
//
//	a = (F0·cos(ω·t) − b·v − k·x) / m
//
// mass must be positive; it is not checked.
func Accel(t, v, x float64, p dynamo.Params, mass float64) float64 {
	drive := p.ForcingAmplitude * math.Cos(p.ForcingFrequency*t)
	return (drive - p.Damping*v - p.Stiffness*x) / mass
}

// SpringMass binds one axis's coefficients to the shared mass.
type SpringMass struct {
	Params dynamo.Params
	Mass   float64
	Law    Law
}

func NewSpringMass(p dynamo.Params, mass float64) *SpringMass {
	return &SpringMass{Params: p, Mass: mass, Law: Accel}
}

// Accel adapts the bound law to the stepper signature.
func (s *SpringMass) Accel() dynamo.Accel {
	law := s.Law
	if law == nil {
		law = Accel
	}
	p, m := s.Params, s.Mass
	return func(t, v, x float64) float64 {
		return law(t, v, x, p, m)
	}
}

// Energy is the mechanical energy ½mv² + ½kx²; the drive and damping are
// not included.
func (s *SpringMass) Energy(st dynamo.State) float64 {
	return Energy(st, s.Params, s.Mass)
}

func Energy(st dynamo.State, p dynamo.Params, mass float64) float64 {
	return 0.5*mass*st.Velocity*st.Velocity + 0.5*p.Stiffness*st.Position*st.Position
}

// NaturalFrequency is the undamped angular frequency √(k/m).
func NaturalFrequency(p dynamo.Params, mass float64) float64 {
	return math.Sqrt(p.Stiffness / mass)
}
