package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/oscillo/internal/dynamo"
	"github.com/san-kum/oscillo/internal/physics"
)

func accel(p dynamo.Params, mass float64) dynamo.Accel {
	return physics.NewSpringMass(p, mass).Accel()
}

func run(s dynamo.Stepper, a dynamo.Accel, x dynamo.State, dt float64, steps int) dynamo.State {
	for i := 0; i < steps; i++ {
		x = s.Step(a, x, float64(i)*dt, dt)
	}
	return x
}

func TestStage4_Polynomial(t *testing.T) {
	// du/dt = 2t integrates exactly: 4 stages are exact for a quadratic.
	f := func(t, u, w float64) float64 { return 2 * t }
	got := Stage4(f, 1, 0, 0.5, 0.1)
	expected := 1 + (0.6*0.6 - 0.5*0.5)

	if math.Abs(got-expected) > 1e-12 {
		t.Errorf("got %.12f, expected %.12f", got, expected)
	}
}

func TestStage4_ShiftsCompanion(t *testing.T) {
	var ws []float64
	f := func(t, u, w float64) float64 {
		ws = append(ws, w)
		return 1
	}
	Stage4(f, 0, 10, 0, 0.2)

	expected := []float64{10, 10.1, 10.1, 10.2}
	for i := range expected {
		if math.Abs(ws[i]-expected[i]) > 1e-12 {
			t.Errorf("stage %d: companion %.6f, expected %.6f", i+1, ws[i], expected[i])
		}
	}
}

// One tick of the reference scenario, spelled out by hand.
func TestSplit_Golden(t *testing.T) {
	p := dynamo.Params{Damping: 0, Stiffness: 10, ForcingAmplitude: 10, ForcingFrequency: 1}
	dt, x0, v0 := 0.025, 20.0, 0.0

	f := func(t, v, x float64) float64 { return 10*math.Cos(t) - 10*x }
	k1 := f(0, v0, x0)
	k2 := f(dt/2, v0+dt*k1/2, x0+dt*k1/2)
	k3 := f(dt/2, v0+dt*k2/2, x0+dt*k2/2)
	k4 := f(dt, v0+dt*k3, x0+dt*k3)
	vNext := v0 + dt/6*(k1+2*k2+2*k3+k4)
	xNext := x0 + dt*vNext

	got := NewSplit().Step(accel(p, 1), dynamo.State{Position: x0, Velocity: v0}, 0, dt)

	if math.Abs(got.Velocity-vNext) > 1e-12 {
		t.Errorf("velocity: got %.12f, expected %.12f", got.Velocity, vNext)
	}
	if math.Abs(got.Position-xNext) > 1e-12 {
		t.Errorf("position: got %.12f, expected %.12f", got.Position, xNext)
	}

	// regression values
	if math.Abs(got.Velocity-(-4.202661233709932)) > 1e-9 {
		t.Errorf("velocity regression: got %.15f", got.Velocity)
	}
	if math.Abs(got.Position-19.89493346915725) > 1e-9 {
		t.Errorf("position regression: got %.15f", got.Position)
	}
}

func TestSchemes_Golden(t *testing.T) {
	p := dynamo.Params{Stiffness: 10, ForcingAmplitude: 10, ForcingFrequency: 1}
	tests := []struct {
		name string
		x, v float64
	}{
		{"split", 19.89493346915725, -4.202661233709932},
		{"legacy", 19.89360912468873, -4.202661233709932},
		{"rk4", 19.94065576172087, -4.745078113979911},
	}

	for _, tt := range tests {
		s, err := New(tt.name)
		if err != nil {
			t.Fatal(err)
		}
		got := s.Step(accel(p, 1), dynamo.AtRest(20), 0, 0.025)
		if math.Abs(got.Position-tt.x) > 1e-9 || math.Abs(got.Velocity-tt.v) > 1e-9 {
			t.Errorf("%s: got %v, expected x=%.12f v=%.12f", tt.name, got, tt.x, tt.v)
		}
	}
}

func TestSchemes_Inertial(t *testing.T) {
	p := dynamo.Params{ForcingFrequency: 37}
	dt := 0.025

	// legacy is excluded: its position stages shift the velocity.
	for _, name := range []string{"split", "rk4", "euler", "verlet"} {
		s, _ := New(name)
		a := accel(p, 1)
		x := dynamo.State{Position: 3, Velocity: 1.5}

		for i := 0; i < 100; i++ {
			next := s.Step(a, x, float64(i)*dt, dt)
			if next.Velocity != 1.5 {
				t.Fatalf("%s: velocity changed to %v at step %d", name, next.Velocity, i)
			}
			if math.Abs(next.Position-(x.Position+1.5*dt)) > 1e-12 {
				t.Fatalf("%s: position advanced by %v, expected %v", name, next.Position-x.Position, 1.5*dt)
			}
			x = next
		}
	}
}

func TestSchemes_Period(t *testing.T) {
	k, x0, dt := 4.0, 2.0, 0.001
	steps := int(math.Round(2 * math.Pi / math.Sqrt(k) / dt))
	p := dynamo.Params{Stiffness: k}

	tests := []struct {
		name string
		tol  float64
	}{
		{"split", 1e-3},
		{"legacy", 1e-3},
		{"rk4", 1e-4},
		{"verlet", 1e-4},
		{"euler", 2e-2},
	}

	for _, tt := range tests {
		s, _ := New(tt.name)
		x := run(s, accel(p, 1), dynamo.AtRest(x0), dt, steps)
		if rel := math.Abs(x.Position-x0) / x0; rel > tt.tol {
			t.Errorf("%s: after one period x=%.6f, relative error %e", tt.name, x.Position, rel)
		}
	}
}

func TestSchemes_EnergyBounded(t *testing.T) {
	p := dynamo.Params{Stiffness: 1}
	dt := 0.01

	tests := []struct {
		name string
		tol  float64
	}{
		{"split", 0.02},
		{"legacy", 0.03},
		{"rk4", 1e-8},
		{"verlet", 1e-4},
	}

	for _, tt := range tests {
		s, _ := New(tt.name)
		a := accel(p, 1)
		x := dynamo.AtRest(1)
		e0 := physics.Energy(x, p, 1)

		maxDrift := 0.0
		for i := 0; i < 10000; i++ {
			x = s.Step(a, x, float64(i)*dt, dt)
			drift := math.Abs(physics.Energy(x, p, 1)-e0) / e0
			maxDrift = math.Max(maxDrift, drift)
		}

		if maxDrift > tt.tol {
			t.Errorf("%s: energy drift %e exceeds %e", tt.name, maxDrift, tt.tol)
		}
	}
}

func TestEuler_EnergyGrows(t *testing.T) {
	p := dynamo.Params{Stiffness: 1}
	x := run(NewEuler(), accel(p, 1), dynamo.AtRest(1), 0.01, 10000)

	if physics.Energy(x, p, 1) <= 0.5 {
		t.Error("explicit euler should gain energy on an undamped oscillator")
	}
}

func TestSplit_DampedDecays(t *testing.T) {
	p := dynamo.Params{Damping: 2, Stiffness: 10}
	x := run(NewSplit(), accel(p, 1), dynamo.AtRest(20), 0.025, 2000)

	if !x.IsValid() {
		t.Fatal("state diverged")
	}
	if math.Abs(x.Position) > 1e-3 {
		t.Errorf("damped oscillator should settle, got %v", x)
	}
}

func TestNew_Unknown(t *testing.T) {
	if _, err := New("rk45"); err == nil {
		t.Error("expected error for unknown scheme")
	}
	s, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*Split); !ok {
		t.Errorf("default scheme should be split, got %T", s)
	}
	if !Known("legacy") || Known("nope") {
		t.Error("Known misreports registry membership")
	}
}
