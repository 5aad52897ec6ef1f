// Package analysis provides offline tools that run a driver and inspect the
// resulting series. Nothing here feeds back into the simulation.
//
//   - [DominantFrequency]: peak angular frequency of a sampled axis
//   - [PowerSpectrum]: FFT magnitudes of a series
//   - [GeneratePhasePortrait]: position/velocity trajectory of one axis
//
// # Natural Frequency Check
//
// An undamped, undriven axis should ring at √(k/m):
//
//	xs := analysis.Sample(driver, dynamo.X, 4096)
//	w := analysis.DominantFrequency(xs, dt)
package analysis
