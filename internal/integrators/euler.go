package integrators

import "github.com/san-kum/oscillo/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (Euler) Step(a dynamo.Accel, s dynamo.State, t, dt float64) dynamo.State {
	return dynamo.State{
		Position: s.Position + dt*s.Velocity,
		Velocity: s.Velocity + dt*a(t, s.Velocity, s.Position),
	}
}
