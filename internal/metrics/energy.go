package metrics

import (
	"math"

	"github.com/san-kum/oscillo/internal/dynamo"
	"github.com/san-kum/oscillo/internal/physics"
	"github.com/san-kum/oscillo/internal/sim"
)

// Metric is a sim.Observer that reduces a run to one number per axis.
type Metric interface {
	sim.Observer
	Name() string
	Value(a dynamo.Axis) float64
	Reset()
}

// EnergyDrift tracks the largest relative change of ½mv² + ½kx² since the
// first tick it observed. It is only meaningful without damping or drive.
type EnergyDrift struct {
	src      sim.ParamSource
	initial  [3]float64
	maxDrift [3]float64
	samples  int
}

func NewEnergyDrift(src sim.ParamSource) *EnergyDrift {
	return &EnergyDrift{src: src}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) OnTick(_ float64, states [3]dynamo.State, _ dynamo.Vec3) {
	mass := e.src.Mass()
	for _, a := range dynamo.Axes {
		energy := physics.Energy(states[a], e.src.AxisParams(a), mass)
		if e.samples == 0 {
			e.initial[a] = energy
			continue
		}
		if e.initial[a] != 0 {
			drift := math.Abs(energy-e.initial[a]) / math.Abs(e.initial[a])
			e.maxDrift[a] = math.Max(e.maxDrift[a], drift)
		}
	}
	e.samples++
}

// Observe seeds the baseline from the initial states, before any tick.
func (e *EnergyDrift) Observe(states [3]dynamo.State) {
	e.Reset()
	e.OnTick(0, states, dynamo.Vec3{})
}

func (e *EnergyDrift) Value(a dynamo.Axis) float64 { return e.maxDrift[a] }

func (e *EnergyDrift) Reset() {
	e.initial = [3]float64{}
	e.maxDrift = [3]float64{}
	e.samples = 0
}
