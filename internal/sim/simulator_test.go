package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/oscillo/internal/dynamo"
	"github.com/san-kum/oscillo/internal/integrators"
	"github.com/san-kum/oscillo/internal/physics"
	"github.com/san-kum/oscillo/internal/sim"
)

// recordingSource logs which axis was read, in order.
type recordingSource struct {
	*sim.Panel
	reads []dynamo.Axis
}

func (r *recordingSource) AxisParams(a dynamo.Axis) dynamo.Params {
	r.reads = append(r.reads, a)
	return r.Panel.AxisParams(a)
}

// onceStepper calls the acceleration once and records the time it was given.
type onceStepper struct {
	times []float64
}

func (s *onceStepper) Step(a dynamo.Accel, st dynamo.State, t, dt float64) dynamo.State {
	s.times = append(s.times, t)
	a(t, st.Velocity, st.Position)
	return st
}

var defaultAxes = [3]dynamo.Params{
	{Stiffness: 10, ForcingAmplitude: 10, ForcingFrequency: 1},
	{Stiffness: 20, ForcingAmplitude: 10, ForcingFrequency: 1},
	{Stiffness: 30, ForcingAmplitude: 10, ForcingFrequency: 1},
}

var defaultInit = [3]dynamo.State{dynamo.AtRest(20), dynamo.AtRest(20), dynamo.AtRest(50)}

var _ = Describe("Driver", func() {
	var panel *sim.Panel

	BeforeEach(func() {
		panel = sim.NewPanel(defaultAxes, 1)
	})

	Describe("New", func() {
		It("rejects a non-positive step", func() {
			_, err := sim.New(panel, integrators.NewSplit(), defaultInit, 0)
			Expect(err).To(MatchError(dynamo.ErrInvalidStep))

			_, err = sim.New(panel, integrators.NewSplit(), defaultInit, math.NaN())
			Expect(err).To(MatchError(dynamo.ErrInvalidStep))
		})

		It("rejects a nil source", func() {
			_, err := sim.New(nil, integrators.NewSplit(), defaultInit, 0.025)
			Expect(err).To(MatchError(dynamo.ErrNilSource))
		})

		It("publishes the initial position before any tick", func() {
			d, err := sim.New(panel, integrators.NewSplit(), defaultInit, 0.025)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Position()).To(Equal(dynamo.Vec3{X: 20, Y: 20, Z: 50}))
			Expect(d.Clock().Time).To(BeZero())
		})
	})

	Describe("Tick", func() {
		It("advances the clock by exactly dt", func() {
			d, _ := sim.New(panel, integrators.NewSplit(), defaultInit, 0.025)
			d.Tick()
			Expect(d.Clock().Time).To(Equal(0.025))

			prev := d.Clock().Time
			for i := 0; i < 100; i++ {
				d.Tick()
				Expect(d.Clock().Time - prev).To(BeNumerically("~", 0.025, 1e-12))
				prev = d.Clock().Time
			}
		})

		It("gives every axis the same pre-tick time", func() {
			stepper := &onceStepper{}
			var lawTimes []float64
			law := func(t, v, x float64, p dynamo.Params, m float64) float64 {
				lawTimes = append(lawTimes, t)
				return physics.Accel(t, v, x, p, m)
			}

			d, _ := sim.New(panel, stepper, defaultInit, 0.025, sim.WithForceLaw(law))
			d.Tick()
			d.Tick()

			Expect(stepper.times).To(Equal([]float64{0, 0, 0, 0.025, 0.025, 0.025}))
			Expect(lawTimes).To(Equal(stepper.times))
		})

		It("evaluates the force law four times per axis with split", func() {
			calls := 0
			law := func(t, v, x float64, p dynamo.Params, m float64) float64 {
				calls++
				Expect(t).To(BeNumerically(">=", 0))
				Expect(t).To(BeNumerically("<=", 0.025))
				return physics.Accel(t, v, x, p, m)
			}

			d, _ := sim.New(panel, integrators.NewSplit(), defaultInit, 0.025, sim.WithForceLaw(law))
			d.Tick()
			Expect(calls).To(Equal(12))
		})

		It("reads axes in X, Y, Z order", func() {
			src := &recordingSource{Panel: panel}
			d, _ := sim.New(src, integrators.NewSplit(), defaultInit, 0.025)
			d.Tick()
			Expect(src.reads).To(Equal([]dynamo.Axis{dynamo.X, dynamo.Y, dynamo.Z}))
		})

		It("matches a single split step on each axis", func() {
			d, _ := sim.New(panel, integrators.NewSplit(), defaultInit, 0.025)
			d.Tick()

			for _, a := range dynamo.Axes {
				osc := physics.NewSpringMass(defaultAxes[a], 1)
				want := integrators.NewSplit().Step(osc.Accel(), defaultInit[a], 0, 0.025)
				Expect(d.State(a)).To(Equal(want))
				Expect(d.Position().Get(a)).To(Equal(want.Position))
			}

			Expect(d.State(dynamo.X).Position).To(BeNumerically("~", 19.89493346915725, 1e-9))
			Expect(d.State(dynamo.X).Velocity).To(BeNumerically("~", -4.202661233709932, 1e-9))
		})

		It("sees parameter edits made between ticks", func() {
			zero := [3]dynamo.Params{}
			p := sim.NewPanel(zero, 1)
			init := [3]dynamo.State{{Velocity: 1}, {Velocity: 1}, {Velocity: 1}}
			d, _ := sim.New(p, integrators.NewSplit(), init, 0.1)

			d.Tick()
			Expect(d.State(dynamo.Y).Velocity).To(Equal(1.0))

			p.SetAxis(dynamo.Y, dynamo.Params{Damping: 10})
			d.Tick()
			Expect(d.State(dynamo.Y).Velocity).To(BeNumerically("<", 1.0))
			Expect(d.State(dynamo.X).Velocity).To(Equal(1.0))
		})

		It("keeps the default scene finite over many ticks", func() {
			d, _ := sim.New(panel, integrators.NewSplit(), defaultInit, 0.025)
			for i := 0; i < 10000; i++ {
				d.Tick()
			}
			for _, a := range dynamo.Axes {
				Expect(d.State(a).IsValid()).To(BeTrue())
			}
		})

		It("notifies observers after the clock advances", func() {
			var seen []float64
			obs := sim.ObserverFunc(func(t float64, _ [3]dynamo.State, pos dynamo.Vec3) {
				seen = append(seen, t)
			})
			d, _ := sim.New(panel, integrators.NewSplit(), defaultInit, 0.5, sim.WithObserver(obs))
			d.Tick()
			d.Tick()
			Expect(seen).To(Equal([]float64{0.5, 1.0}))
		})
	})

	Describe("Run", func() {
		It("stops after n ticks", func() {
			d, _ := sim.New(panel, integrators.NewSplit(), defaultInit, 0.025)
			Expect(d.Run(context.Background(), 40, nil)).To(Succeed())
			Expect(d.Clock().Time).To(BeNumerically("~", 1.0, 1e-12))
		})

		It("stops when the callback returns false", func() {
			d, _ := sim.New(panel, integrators.NewSplit(), defaultInit, 0.025)
			n := 0
			err := d.Run(context.Background(), 0, func(float64, dynamo.Vec3) bool {
				n++
				return n < 5
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(5))
		})

		It("returns the context error between ticks", func() {
			d, _ := sim.New(panel, integrators.NewSplit(), defaultInit, 0.025)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			Expect(d.Run(ctx, 10, nil)).To(MatchError(context.Canceled))
			Expect(d.Clock().Time).To(BeZero())
		})
	})

	Describe("Reset", func() {
		It("restores the initial states and rewinds time", func() {
			d, _ := sim.New(panel, integrators.NewSplit(), defaultInit, 0.025)
			for i := 0; i < 10; i++ {
				d.Tick()
			}
			d.Restart()
			Expect(d.States()).To(Equal(defaultInit))
			Expect(d.Clock().Time).To(BeZero())
			Expect(d.Position()).To(Equal(dynamo.Vec3{X: 20, Y: 20, Z: 50}))
		})
	})
})

var _ = Describe("Ensemble", func() {
	It("runs drivers independently and keeps input order", func() {
		panel := sim.NewPanel(defaultAxes, 1)
		var drivers []*sim.Driver
		for _, name := range []string{"split", "rk4"} {
			s, err := integrators.New(name)
			Expect(err).NotTo(HaveOccurred())
			d, err := sim.New(panel, s, defaultInit, 0.025)
			Expect(err).NotTo(HaveOccurred())
			drivers = append(drivers, d)
		}

		got, err := sim.NewEnsemble(20, drivers...).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(HaveLen(2))

		ref, _ := sim.New(panel, integrators.NewSplit(), defaultInit, 0.025)
		Expect(ref.Run(context.Background(), 20, nil)).To(Succeed())
		Expect(got[0]).To(Equal(ref.Position()))
		Expect(got[1]).NotTo(Equal(got[0]))
	})
})

var _ = Describe("Panel", func() {
	It("clamps on construction and on every setter", func() {
		p := sim.NewPanel([3]dynamo.Params{{Damping: 50}}, 0)
		Expect(p.AxisParams(dynamo.X).Damping).To(Equal(10.0))
		Expect(p.Mass()).To(Equal(0.1))

		p.SetMass(42)
		Expect(p.Mass()).To(Equal(10.0))
	})

	It("edits params by key", func() {
		p := sim.NewPanel(defaultAxes, 1)
		Expect(p.SetParam("y.k", 55)).To(Succeed())
		Expect(p.AxisParams(dynamo.Y).Stiffness).To(Equal(55.0))

		Expect(p.SetParam("z.w", 500)).To(Succeed())
		Expect(p.AxisParams(dynamo.Z).ForcingFrequency).To(Equal(100.0))

		Expect(p.SetParam("m", 2)).To(Succeed())
		Expect(p.GetParams()).To(HaveKeyWithValue("m", 2.0))

		Expect(p.SetParam("q.k", 1)).NotTo(Succeed())
		Expect(p.SetParam("x.zz", 1)).NotTo(Succeed())
	})

	It("lists every key with a range", func() {
		keys := sim.ParamKeys()
		Expect(keys).To(HaveLen(13))
		for _, k := range keys {
			_, ok := sim.Range(k)
			Expect(ok).To(BeTrue(), k)
		}
		Expect(sim.NewPanel(defaultAxes, 1).GetParams()).To(HaveLen(13))
	})

	It("rejects keys with an unknown axis or param", func() {
		for _, k := range []string{"q.k", "w.b", "x.q", "x", "xk", "", "x.kk"} {
			_, ok := sim.Range(k)
			Expect(ok).To(BeFalse(), k)
		}
	})
})
