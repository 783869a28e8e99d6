package svf

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/banshee-data/skyview.report/internal/monitoring"
)

// Compute validates the inputs, then sweeps every pixel in parallel and
// returns the 15 output grids.
//
// Rows are sharded across workers over a channel; every worker reads the
// shared immutable height fields and writes only its own rows' cells, so no
// locking is needed and the result is identical for any worker count.
func Compute(h *HeightFields, p Params, workers int) (*Results, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("svf: %w", err)
	}
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("svf: %w", err)
	}

	hem := newHemisphere(p)
	res := newResults(h.Width, h.Height)

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	monitoring.Logf("svf: sweeping %dx%d cells (%d rings x %d slices, trace radius %g) on %d workers",
		h.Width, h.Height, len(hem.rings), len(hem.slices), p.TraceRadius, workers)

	start := time.Now()
	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				for x := 0; x < h.Width; x++ {
					computePixel(h, hem, p, res, x, y)
				}
			}
		}()
	}
	for y := 0; y < h.Height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	monitoring.Logf("svf: sweep finished in %s", time.Since(start).Round(time.Millisecond))
	return res, nil
}
