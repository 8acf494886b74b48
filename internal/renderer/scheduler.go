// Scheduler implements the parallel pixel dispatch contract of spec.md §5:
// one sample pass fans out across disjoint row bands with no
// synchronization needed between pixel tasks, and joins before the caller
// may proceed. Grounded on gazed-vu's eg/rt.go (runtime.NumCPU() workers
// draining row work, one RNG per worker, joined with a WaitGroup before the
// image is considered done) but built on golang.org/x/sync/errgroup instead
// of a hand-rolled channel + WaitGroup, for free error propagation. The
// group's context.Context is not passed to the workers, so a pass cannot be
// cancelled once started.
package renderer

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/barretodiego/pathtracer/pkg/mathutil"
)

// pixelFn is evaluated once per pixel; rng is exclusive to the calling
// worker for the lifetime of one row band.
type pixelFn func(x, y int, rng *rand.Rand)

// parallelPixels partitions [0, height) into one contiguous row band per
// available processor (spec.md §5: "work-stealing worker pool... Each pixel
// is an independent task"). Bands, not individual pixels, are the unit of
// work: this keeps goroutine fan-out proportional to core count rather than
// pixel count, while every pixel within a band is still an independent,
// disjoint-write task. sampleIndex mixes into the per-worker seed so
// repeated passes over the same image do not reuse the previous pass's RNG
// stream.
func parallelPixels(width, height int, seed int64, sampleIndex int, fn pixelFn) error {
	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}

	g, _ := errgroup.WithContext(context.Background())
	rowsPerWorker := (height + workers - 1) / workers

	for w := 0; w < workers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > height {
			endRow = height
		}
		if startRow >= endRow {
			continue
		}
		workerIdx := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(mathutil.Mix(seed+int64(sampleIndex), workerIdx)))
			for y := startRow; y < endRow; y++ {
				for x := 0; x < width; x++ {
					fn(x, y, rng)
				}
			}
			return nil
		})
	}
	return g.Wait()
}
