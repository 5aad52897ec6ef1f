// Package dynamo provides the core types shared by the oscillator engine.
//
// The package defines:
//
//   - [State]: position and velocity of one axis
//   - [Params]: damping, stiffness and forcing coefficients of one axis
//   - [Accel]: acceleration as a function of time, velocity and position
//   - [Stepper]: fixed-step integrator interface
//   - [Vec3]: the three-axis position projection read by renderers
//
// # Ranges
//
// The documented parameter ranges ([DampingRange], [StiffnessRange], ...)
// are enforced by whoever owns the parameters. Steppers and force laws never
// validate; a non-positive mass reaching them is a contract violation.
package dynamo
