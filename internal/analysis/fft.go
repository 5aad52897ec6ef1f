package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/oscillo/internal/dynamo"
	"github.com/san-kum/oscillo/internal/sim"
)

// PowerSpectrum returns the magnitudes of the first half of the real FFT of
// data, zero-padded to the next power of two, and the padded length.
func PowerSpectrum(data []float64) ([]float64, int) {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps, n
}

// DominantFrequency estimates the strongest angular frequency (rad/s) in a
// series sampled every dt. The mean is removed first so DC never wins; a
// peak between bins is refined by parabolic interpolation.
func DominantFrequency(samples []float64, dt float64) float64 {
	if len(samples) < 4 || dt <= 0 {
		return 0
	}

	centered := make([]float64, len(samples))
	copy(centered, samples)
	floats.AddConst(-floats.Sum(samples)/float64(len(samples)), centered)

	ps, n := PowerSpectrum(centered)

	peak := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}

	bin := float64(peak)
	if peak > 0 && peak < len(ps)-1 {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if denom := a - 2*b + c; denom != 0 {
			bin += 0.5 * (a - c) / denom
		}
	}

	return 2 * math.Pi * bin / (float64(n) * dt)
}

// Sample ticks d n times and returns the position of one axis after each tick.
// A non-positive n ticks nothing.
func Sample(d *sim.Driver, a dynamo.Axis, n int) []float64 {
	n = max(n, 0)
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		d.Tick()
		out = append(out, d.State(a).Position)
	}
	return out
}

// SampleAll ticks d n times and returns every axis's positions.
func SampleAll(d *sim.Driver, n int) [3][]float64 {
	n = max(n, 0)
	var out [3][]float64
	for _, a := range dynamo.Axes {
		out[a] = make([]float64, 0, n)
	}
	for i := 0; i < n; i++ {
		d.Tick()
		pos := d.Position()
		for _, a := range dynamo.Axes {
			out[a] = append(out[a], pos.Get(a))
		}
	}
	return out
}
