// Package viz draws a running oscillator in the terminal.
//
// [Model] is a Bubble Tea program that advances a sim.Driver by one tick
// per frame and renders the mass position in 3D on a braille [Canvas],
// next to a panel of editable parameters.
//
// # Key Bindings
//
//	Tab/Shift+Tab - Select parameter
//	Up/Down       - Scale the selected parameter by 5%
//	Space         - Pause/Resume, "." steps once while paused
//	R             - Restart from the initial states
//	X/Y/Z         - Rotate the camera
//	+/-           - Zoom
//	T             - Cycle color themes
//	Q             - Quit
package viz
