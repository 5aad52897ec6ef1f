package sim

import (
	"context"
	"sync"

	"github.com/san-kum/oscillo/internal/dynamo"
)

// Ensemble runs independent drivers side by side, one goroutine each. A
// driver is never shared between goroutines.
type Ensemble struct {
	drivers []*Driver
	ticks   int
}

func NewEnsemble(ticks int, drivers ...*Driver) *Ensemble {
	return &Ensemble{drivers: drivers, ticks: ticks}
}

// Run returns the final position of every driver in input order.
func (e *Ensemble) Run(ctx context.Context) ([]dynamo.Vec3, error) {
	results := make([]dynamo.Vec3, len(e.drivers))
	errs := make([]error, len(e.drivers))

	var wg sync.WaitGroup
	for i, d := range e.drivers {
		wg.Add(1)
		go func(idx int, d *Driver) {
			defer wg.Done()
			ticks := e.ticks
			if ticks <= 0 {
				ticks = 1
			}
			errs[idx] = d.Run(ctx, ticks, nil)
			results[idx] = d.Position()
		}(i, d)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
