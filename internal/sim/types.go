package sim

import (
	"fmt"

	"github.com/san-kum/oscillo/internal/dynamo"
)

// Clock is the simulation time. Time only ever grows by Dt.
type Clock struct {
	Time float64
	Dt   float64
}

func (c *Clock) Advance() { c.Time += c.Dt }

// ParamSource is read once per axis per tick. Implementations are owned by
// the parameter editor and must not change while a tick runs.
type ParamSource interface {
	AxisParams(a dynamo.Axis) dynamo.Params
	Mass() float64
}

type Observer interface {
	OnTick(t float64, states [3]dynamo.State, pos dynamo.Vec3)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(t float64, states [3]dynamo.State, pos dynamo.Vec3)

func (f ObserverFunc) OnTick(t float64, states [3]dynamo.State, pos dynamo.Vec3) {
	f(t, states, pos)
}

// Panel is a mutable ParamSource. Setters clamp to the documented ranges.
type Panel struct {
	Axes [3]dynamo.Params
	M    float64
}

func NewPanel(axes [3]dynamo.Params, mass float64) *Panel {
	p := &Panel{}
	for _, a := range dynamo.Axes {
		p.SetAxis(a, axes[a])
	}
	p.SetMass(mass)
	return p
}

func (p *Panel) AxisParams(a dynamo.Axis) dynamo.Params { return p.Axes[a] }
func (p *Panel) Mass() float64                          { return p.M }

func (p *Panel) SetAxis(a dynamo.Axis, params dynamo.Params) {
	p.Axes[a] = params.Clamp()
}

func (p *Panel) SetMass(m float64) {
	p.M = dynamo.ClampMass(m)
}

// Param names accepted by GetParams and SetParam.
const (
	ParamDamping          = "b"
	ParamStiffness        = "k"
	ParamForcingAmplitude = "F0"
	ParamForcingFrequency = "w"
	ParamMass             = "m"
)

// ParamKeys lists the editable keys in display order: "m" then "x.b", "x.k", ...
func ParamKeys() []string {
	keys := []string{ParamMass}
	for _, a := range dynamo.Axes {
		for _, n := range []string{ParamDamping, ParamStiffness, ParamForcingAmplitude, ParamForcingFrequency} {
			keys = append(keys, a.String()+"."+n)
		}
	}
	return keys
}

func (p *Panel) GetParams() map[string]float64 {
	out := map[string]float64{ParamMass: p.M}
	for _, a := range dynamo.Axes {
		ap := p.Axes[a]
		prefix := a.String() + "."
		out[prefix+ParamDamping] = ap.Damping
		out[prefix+ParamStiffness] = ap.Stiffness
		out[prefix+ParamForcingAmplitude] = ap.ForcingAmplitude
		out[prefix+ParamForcingFrequency] = ap.ForcingFrequency
	}
	return out
}

// splitKey parses an axis key such as "x.k" into its axis and param name.
func splitKey(name string) (dynamo.Axis, string, bool) {
	if len(name) < 3 || name[1] != '.' {
		return 0, "", false
	}
	for _, a := range dynamo.Axes {
		if name[0] == a.String()[0] {
			return a, name[2:], true
		}
	}
	return 0, "", false
}

// SetParam sets one key from ParamKeys, clamped.
func (p *Panel) SetParam(name string, value float64) error {
	if name == ParamMass {
		p.SetMass(value)
		return nil
	}

	axis, param, ok := splitKey(name)
	if !ok {
		return fmt.Errorf("unknown param: %s", name)
	}
	ap := p.Axes[axis]
	switch param {
	case ParamDamping:
		ap.Damping = value
	case ParamStiffness:
		ap.Stiffness = value
	case ParamForcingAmplitude:
		ap.ForcingAmplitude = value
	case ParamForcingFrequency:
		ap.ForcingFrequency = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	p.SetAxis(axis, ap)
	return nil
}

// Range returns the documented range of a param key.
func Range(name string) (dynamo.Range, bool) {
	if name == ParamMass {
		return dynamo.MassRange, true
	}
	_, param, ok := splitKey(name)
	if !ok {
		return dynamo.Range{}, false
	}
	switch param {
	case ParamDamping:
		return dynamo.DampingRange, true
	case ParamStiffness:
		return dynamo.StiffnessRange, true
	case ParamForcingAmplitude:
		return dynamo.ForcingAmplitudeRange, true
	case ParamForcingFrequency:
		return dynamo.ForcingFrequencyRange, true
	}
	return dynamo.Range{}, false
}
