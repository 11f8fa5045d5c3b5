// Package parallel schedules per-row render work across goroutines.
//
// Rendering is embarrassingly parallel: every pixel is independent, so
// the only scheduling concern is keeping all cores busy when rows have
// uneven cost (rays that miss the volume return almost immediately,
// rays through dense regions march hundreds of steps). Rows are handed
// out through a shared atomic cursor, which is work stealing in its
// simplest form: a worker that finishes a cheap row immediately claims
// the next unclaimed one.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool runs row-granular work across a fixed number of goroutines.
//
// Thread safety: Pool is safe for concurrent use; independent Rows calls
// may run at the same time.
type Pool struct {
	workers int
}

// New creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int { return p.workers }

// Rows invokes fn(y) for every y in [0, n), distributing rows across
// the pool's workers, and returns once all rows are done. fn must not
// touch state shared with other rows.
func (p *Pool) Rows(n int, fn func(y int)) {
	if n <= 0 {
		return
	}
	workers := p.workers
	if workers > n {
		workers = n
	}
	if workers == 1 {
		for y := 0; y < n; y++ {
			fn(y)
		}
		return
	}

	var cursor atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				y := int(cursor.Add(1)) - 1
				if y >= n {
					return
				}
				fn(y)
			}
		}()
	}
	wg.Wait()
}

// Rows is a convenience for a one-shot pool.
func Rows(workers, n int, fn func(y int)) {
	New(workers).Rows(n, fn)
}
