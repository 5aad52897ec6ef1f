package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/oscillo/internal/dynamo"
)

// Default is the scheme used when none is named.
const Default = "split"

var registry = map[string]func() dynamo.Stepper{
	"split":  func() dynamo.Stepper { return NewSplit() },
	"legacy": func() dynamo.Stepper { return NewLegacy() },
	"rk4":    func() dynamo.Stepper { return NewRK4() },
	"euler":  func() dynamo.Stepper { return NewEuler() },
	"verlet": func() dynamo.Stepper { return NewVerlet() },
}

// New returns the stepper registered under name. An empty name selects Default.
func New(name string) (dynamo.Stepper, error) {
	if name == "" {
		name = Default
	}
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownScheme, name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Known(name string) bool {
	_, ok := registry[name]
	return ok || name == ""
}
