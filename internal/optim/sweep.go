package optim

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/oscillo/internal/dynamo"
	"github.com/san-kum/oscillo/internal/sim"
)

// Build returns a fresh driver and the panel feeding it.
type Build func() (*sim.Driver, *sim.Panel, error)

// Sweep runs one driver per value of a single param key and measures the
// steady-state amplitude once Settle ticks have passed.
type Sweep struct {
	Param  string
	Values []float64
	Ticks  int
	Settle int
}

type Point struct {
	Value     float64
	Amplitude [3]float64
}

func NewSweep(param string, values []float64, ticks, settle int) *Sweep {
	return &Sweep{Param: param, Values: values, Ticks: ticks, Settle: settle}
}

// Linspace returns n evenly spaced values from lo to hi inclusive. It
// returns nil for n < 1 and [lo] for n == 1.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n < 1:
		return nil
	case n == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

func (s *Sweep) Run(ctx context.Context, build Build) ([]Point, error) {
	if _, ok := sim.Range(s.Param); !ok {
		return nil, fmt.Errorf("unknown param: %s", s.Param)
	}
	if len(s.Values) == 0 {
		return nil, fmt.Errorf("no values to sweep")
	}
	if s.Settle < 0 || s.Settle >= s.Ticks {
		return nil, fmt.Errorf("settle (%d) must be below ticks (%d)", s.Settle, s.Ticks)
	}

	drivers := make([]*sim.Driver, len(s.Values))
	amps := make([]*amplitude, len(s.Values))
	for i, v := range s.Values {
		d, panel, err := build()
		if err != nil {
			return nil, err
		}
		if err := panel.SetParam(s.Param, v); err != nil {
			return nil, err
		}
		amps[i] = &amplitude{skip: s.Settle}
		d.AddObserver(amps[i])
		drivers[i] = d
	}

	if _, err := sim.NewEnsemble(s.Ticks, drivers...).Run(ctx); err != nil {
		return nil, err
	}

	points := make([]Point, len(s.Values))
	for i, v := range s.Values {
		points[i] = Point{Value: v, Amplitude: amps[i].peak}
	}
	return points, nil
}

// Best returns the point with the largest amplitude on axis a.
func Best(points []Point, a dynamo.Axis) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.Amplitude[a] > best.Amplitude[a] {
			best = p
		}
	}
	return best, true
}

type amplitude struct {
	skip int
	seen int
	peak [3]float64
}

func (m *amplitude) OnTick(_ float64, states [3]dynamo.State, _ dynamo.Vec3) {
	m.seen++
	if m.seen <= m.skip {
		return
	}
	for _, a := range dynamo.Axes {
		m.peak[a] = math.Max(m.peak[a], math.Abs(states[a].Position))
	}
}
