// Package physics provides the force law of a damped driven oscillator.
//
// [Accel] is a pure function of time, velocity, position, coefficients and
// mass. [SpringMass] binds one axis's coefficients to the shared mass and
// adapts the law to the [dynamo.Accel] signature expected by steppers:
//
//	osc := physics.NewSpringMass(params, mass)
//	next := stepper.Step(osc.Accel(), state, t, dt)
//
// # Energy
//
// [Energy] reports ½mv² + ½kx². It is only conserved when damping and
// forcing are zero.
package physics
