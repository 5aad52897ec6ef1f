package dynamo

import (
	"fmt"
	"math"
)

// Axis identifies one of the three independent oscillators.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// Axes lists every axis in tick order.
var Axes = [3]Axis{X, Y, Z}

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// State is the position and velocity of one axis.
type State struct {
	Position float64
	Velocity float64
}

// AtRest returns a state displaced to pos with zero velocity.
func AtRest(pos float64) State {
	return State{Position: pos}
}

func (s State) IsValid() bool {
	return isFinite(s.Position) && isFinite(s.Velocity)
}

func (s State) String() string {
	return fmt.Sprintf("x=%.6f v=%.6f", s.Position, s.Velocity)
}

// Params holds the live coefficients of one axis. ForcingFrequency is angular (rad/s).
type Params struct {
	Damping          float64
	Stiffness        float64
	ForcingAmplitude float64
	ForcingFrequency float64
}

// Accel is the acceleration of one axis at time t for velocity v and position x.
type Accel func(t, v, x float64) float64

// Stepper advances one axis by a fixed step.
type Stepper interface {
	Step(a Accel, s State, t, dt float64) State
}

// Vec3 is the position projection handed to renderers.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Get(a Axis) float64 {
	switch a {
	case X:
		return v.X
	case Y:
		return v.Y
	default:
		return v.Z
	}
}

func (v *Vec3) Set(a Axis, val float64) {
	switch a {
	case X:
		v.X = val
	case Y:
		v.Y = val
	default:
		v.Z = val
	}
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Length is the distance of the mass from the rest point.
func (v Vec3) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
