package integrators

import "github.com/san-kum/oscillo/internal/dynamo"

// Verlet is velocity Verlet. The end-of-step acceleration is sampled with
// the pre-step velocity, so damping is only first-order accurate.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (Verlet) Step(a dynamo.Accel, s dynamo.State, t, dt float64) dynamo.State {
	acc := a(t, s.Velocity, s.Position)
	x := s.Position + s.Velocity*dt + 0.5*acc*dt*dt
	accNew := a(t+dt, s.Velocity, x)

	return dynamo.State{
		Position: x,
		Velocity: s.Velocity + (acc+accNew)*0.5*dt,
	}
}
