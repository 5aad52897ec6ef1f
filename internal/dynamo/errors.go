package dynamo

import "errors"

// Domain errors for simulation setup.
var (
	// ErrParameterBounds indicates a parameter value is outside its documented range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidStep indicates a non-positive or non-finite step size.
	ErrInvalidStep = errors.New("dynamo: step size must be positive and finite")

	// ErrNilSource indicates a driver was built without a parameter source.
	ErrNilSource = errors.New("dynamo: nil parameter source")

	// ErrUnknownScheme indicates an integrator name with no registered stepper.
	ErrUnknownScheme = errors.New("dynamo: unknown integration scheme")

	// ErrUnknownPreset indicates a preset name that is not defined.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")
)

// BoundsError reports which parameter left its range.
type BoundsError struct {
	Name  string
	Value float64
	Range Range
}

func (e *BoundsError) Error() string {
	return e.Name + ": " + e.Range.describe(e.Value)
}

func (e *BoundsError) Unwrap() error {
	return ErrParameterBounds
}
