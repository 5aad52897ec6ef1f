package metrics

import (
	"math"

	"github.com/san-kum/oscillo/internal/dynamo"
)

// Peak records the largest |position| per axis and counts ticks where any
// axis left the threshold or went non-finite.
type Peak struct {
	threshold  float64
	peak       [3]float64
	violations int
	samples    int
}

func NewPeak(threshold float64) *Peak {
	return &Peak{threshold: threshold}
}

func (p *Peak) Name() string { return "peak" }

func (p *Peak) OnTick(_ float64, states [3]dynamo.State, _ dynamo.Vec3) {
	p.samples++
	violated := false
	for _, a := range dynamo.Axes {
		x := math.Abs(states[a].Position)
		if !states[a].IsValid() || x > p.threshold {
			violated = true
		}
		if !math.IsNaN(x) {
			p.peak[a] = math.Max(p.peak[a], x)
		}
	}
	if violated {
		p.violations++
	}
}

func (p *Peak) Value(a dynamo.Axis) float64 { return p.peak[a] }

// Stability is the fraction of ticks without a violation.
func (p *Peak) Stability() float64 {
	if p.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(p.violations)/float64(p.samples)
}

func (p *Peak) Reset() {
	p.peak = [3]float64{}
	p.violations = 0
	p.samples = 0
}
