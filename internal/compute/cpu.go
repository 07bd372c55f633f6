package compute

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultMinChunk is the smallest number of work items handed to one worker.
const DefaultMinChunk = 16

// CPUBackend splits work items into contiguous chunks and runs them on a
// bounded set of goroutines.
type CPUBackend struct {
	workers  int
	minChunk int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers:  runtime.NumCPU(),
		minChunk: DefaultMinChunk,
	}
}

// NewCPUBackendWith uses the given worker count and minimum chunk size;
// non-positive values fall back to the defaults.
func NewCPUBackendWith(workers, minChunk int) *CPUBackend {
	c := NewCPUBackend()
	if workers > 0 {
		c.workers = workers
	}
	if minChunk > 0 {
		c.minChunk = minChunk
	}
	return c
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}
func (c *CPUBackend) Workers() int    { return c.workers }

func (c *CPUBackend) Launch(ctx context.Context, n int, k Kernel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n <= c.minChunk || c.workers <= 1 {
		for i := 0; i < n; i++ {
			k(i)
		}
		return nil
	}

	workers := c.workers
	if n/c.minChunk < workers {
		workers = n / c.minChunk
	}
	if workers < 1 {
		workers = 1
	}
	chunkSize := (n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		s, e := start, end
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := s; i < e; i++ {
				k(i)
			}
			return nil
		})
	}

	return g.Wait()
}
