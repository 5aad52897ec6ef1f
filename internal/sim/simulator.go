package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/oscillo/internal/dynamo"
	"github.com/san-kum/oscillo/internal/physics"
)

// Driver advances the three axes on one shared clock. It is not safe for
// concurrent use; the host calls Tick from a single goroutine.
type Driver struct {
	src       ParamSource
	stepper   dynamo.Stepper
	law       physics.Law
	observers []Observer

	clock  Clock
	init   [3]dynamo.State
	states [3]dynamo.State
	pos    dynamo.Vec3
}

type Option func(*Driver)

// WithForceLaw replaces physics.Accel.
func WithForceLaw(law physics.Law) Option {
	return func(d *Driver) { d.law = law }
}

func WithObserver(o Observer) Option {
	return func(d *Driver) { d.observers = append(d.observers, o) }
}

func New(src ParamSource, stepper dynamo.Stepper, init [3]dynamo.State, dt float64, opts ...Option) (*Driver, error) {
	if src == nil {
		return nil, dynamo.ErrNilSource
	}
	if dt <= 0 || math.IsInf(dt, 0) || math.IsNaN(dt) {
		return nil, fmt.Errorf("%w: got %v", dynamo.ErrInvalidStep, dt)
	}
	if stepper == nil {
		return nil, fmt.Errorf("%w: nil stepper", dynamo.ErrUnknownScheme)
	}

	d := &Driver{
		src:     src,
		stepper: stepper,
		law:     physics.Accel,
		clock:   Clock{Dt: dt},
		init:    init,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.Reset(init)
	return d, nil
}

func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

// Tick steps X, Y and Z in order at the current time, publishes their
// positions, and only then advances the clock.
func (d *Driver) Tick() {
	t, dt := d.clock.Time, d.clock.Dt
	mass := d.src.Mass()

	for _, a := range dynamo.Axes {
		p := d.src.AxisParams(a)
		d.states[a] = d.stepper.Step(d.accel(p, mass), d.states[a], t, dt)
		d.pos.Set(a, d.states[a].Position)
	}

	d.clock.Advance()

	for _, o := range d.observers {
		o.OnTick(d.clock.Time, d.states, d.pos)
	}
}

func (d *Driver) accel(p dynamo.Params, mass float64) dynamo.Accel {
	law := d.law
	return func(t, v, x float64) float64 {
		return law(t, v, x, p, mass)
	}
}

// Run ticks up to n times, or forever when n <= 0. It stops early when cb
// returns false or ctx is done; cancellation is only checked between ticks.
func (d *Driver) Run(ctx context.Context, n int, cb func(t float64, pos dynamo.Vec3) bool) error {
	for i := 0; n <= 0 || i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		d.Tick()

		if cb != nil && !cb(d.clock.Time, d.pos) {
			return nil
		}
	}
	return nil
}

// Reset replaces the initial states, restores them and rewinds the clock.
func (d *Driver) Reset(init [3]dynamo.State) {
	d.init = init
	d.states = init
	d.clock.Time = 0
	for _, a := range dynamo.Axes {
		d.pos.Set(a, init[a].Position)
	}
}

// Restart rewinds to the last initial states.
func (d *Driver) Restart() { d.Reset(d.init) }

// Position is the render projection. It is a copy.
func (d *Driver) Position() dynamo.Vec3 { return d.pos }

func (d *Driver) State(a dynamo.Axis) dynamo.State { return d.states[a] }

func (d *Driver) States() [3]dynamo.State { return d.states }

func (d *Driver) Clock() Clock { return d.clock }

func (d *Driver) Source() ParamSource { return d.src }
