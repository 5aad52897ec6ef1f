package integrators

import "github.com/san-kum/oscillo/internal/dynamo"

// Derivative is the slope of a stepped value u, given its companion w.
type Derivative func(t, u, w float64) float64

// Stage4 advances u by one weighted four-stage step. Each stage shifts both
// u and its companion w by the previous stage's slope.
func Stage4(f Derivative, u, w, t, dt float64) float64 {
	half := dt * 0.5

	k1 := f(t, u, w)
	k2 := f(t+half, u+half*k1, w+half*k1)
	k3 := f(t+half, u+half*k2, w+half*k2)
	k4 := f(t+dt, u+dt*k3, w+dt*k3)

	return u + dt/6.0*(k1+2*k2+2*k3+k4)
}

// Split steps velocity with Stage4 and then moves position by the new
// velocity. The position derivative is the velocity itself and its
// stage-local value never changes, so the position update is a single
// explicit step: x' = x + dt·v'.
type Split struct{}

func NewSplit() *Split {
	return &Split{}
}

func (Split) Step(a dynamo.Accel, s dynamo.State, t, dt float64) dynamo.State {
	v := Stage4(Derivative(a), s.Velocity, s.Position, t, dt)
	return dynamo.State{
		Position: s.Position + dt*v,
		Velocity: v,
	}
}

// Legacy steps velocity like Split but also pushes position through
// Stage4, returning the companion as the slope. The companion velocity is
// shifted between stages, so the position gains the higher-order terms
// v'·(dt + dt²/2 + dt³/6 + dt⁴/24).
type Legacy struct{}

func NewLegacy() *Legacy {
	return &Legacy{}
}

func (Legacy) Step(a dynamo.Accel, s dynamo.State, t, dt float64) dynamo.State {
	v := Stage4(Derivative(a), s.Velocity, s.Position, t, dt)
	x := Stage4(companion, s.Position, v, t, dt)
	return dynamo.State{Position: x, Velocity: v}
}

func companion(_, _, w float64) float64 { return w }

// RK4 is the classical Runge-Kutta method on the coupled (x, v) pair.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (RK4) Step(a dynamo.Accel, s dynamo.State, t, dt float64) dynamo.State {
	half := dt * 0.5
	x, v := s.Position, s.Velocity

	k1x, k1v := v, a(t, v, x)
	k2x, k2v := v+half*k1v, a(t+half, v+half*k1v, x+half*k1x)
	k3x, k3v := v+half*k2v, a(t+half, v+half*k2v, x+half*k2x)
	k4x, k4v := v+dt*k3v, a(t+dt, v+dt*k3v, x+dt*k3x)

	dt6 := dt / 6.0
	return dynamo.State{
		Position: x + dt6*(k1x+2*k2x+2*k3x+k4x),
		Velocity: v + dt6*(k1v+2*k2v+2*k3v+k4v),
	}
}
