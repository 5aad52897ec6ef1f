package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/oscillo/internal/dynamo"
	"github.com/san-kum/oscillo/internal/integrators"
	"github.com/san-kum/oscillo/internal/sim"
)

var _ Metric = (*EnergyDrift)(nil)
var _ Metric = (*Peak)(nil)

func undampedPanel(k float64) *sim.Panel {
	p := dynamo.Params{Stiffness: k}
	return sim.NewPanel([3]dynamo.Params{p, p, p}, 1)
}

func TestEnergyDrift_Undamped(t *testing.T) {
	panel := undampedPanel(1)
	drift := NewEnergyDrift(panel)
	init := [3]dynamo.State{dynamo.AtRest(1), dynamo.AtRest(2), dynamo.AtRest(3)}

	d, err := sim.New(panel, integrators.NewSplit(), init, 0.01, sim.WithObserver(drift))
	if err != nil {
		t.Fatal(err)
	}
	drift.Observe(d.States())

	for i := 0; i < 10000; i++ {
		d.Tick()
	}

	for _, a := range dynamo.Axes {
		v := drift.Value(a)
		if v <= 0 || v > 0.02 {
			t.Errorf("axis %s: expected bounded non-zero drift, got %e", a, v)
		}
	}
}

func TestEnergyDrift_Reset(t *testing.T) {
	panel := undampedPanel(1)
	drift := NewEnergyDrift(panel)

	drift.OnTick(0, [3]dynamo.State{dynamo.AtRest(1), dynamo.AtRest(1), dynamo.AtRest(1)}, dynamo.Vec3{})
	drift.OnTick(0, [3]dynamo.State{dynamo.AtRest(2), dynamo.AtRest(1), dynamo.AtRest(1)}, dynamo.Vec3{})

	if got := drift.Value(dynamo.X); math.Abs(got-3) > 1e-12 {
		t.Errorf("expected drift 3, got %f", got)
	}
	if drift.Value(dynamo.Y) != 0 {
		t.Errorf("expected zero drift on y, got %f", drift.Value(dynamo.Y))
	}

	drift.Reset()
	if drift.Value(dynamo.X) != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestPeak(t *testing.T) {
	p := NewPeak(10)

	p.OnTick(0, [3]dynamo.State{dynamo.AtRest(-4), dynamo.AtRest(2), dynamo.AtRest(1)}, dynamo.Vec3{})
	p.OnTick(0, [3]dynamo.State{dynamo.AtRest(3), dynamo.AtRest(12), dynamo.AtRest(1)}, dynamo.Vec3{})

	if p.Value(dynamo.X) != 4 || p.Value(dynamo.Y) != 12 {
		t.Errorf("unexpected peaks: x=%v y=%v", p.Value(dynamo.X), p.Value(dynamo.Y))
	}
	if p.Stability() != 0.5 {
		t.Errorf("expected stability 0.5, got %v", p.Stability())
	}

	p.OnTick(0, [3]dynamo.State{{Position: math.NaN()}, {}, {}}, dynamo.Vec3{})
	if math.Abs(p.Stability()-1.0/3.0) > 1e-12 {
		t.Errorf("NaN should count as a violation, got %v", p.Stability())
	}

	p.Reset()
	if p.Stability() != 1 || p.Value(dynamo.Y) != 0 {
		t.Error("expected clean state after reset")
	}
}
