// Package gopool runs replay jobs on a bounded goroutine pool.
package gopool

import (
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
)

// Threads returns the number of workers to use for jobs, capped at the number
// of CPUs.
func Threads(jobs int) int {
	threads := jobs
	if threads > runtime.NumCPU() {
		threads = runtime.NumCPU()
	} else if threads == 0 {
		threads = 1
	}
	return threads
}

// Pool is a fixed size worker pool for independent jobs.
type Pool struct {
	pool *ants.Pool
}

// New returns a pool running at most workers jobs at once. A non-positive
// size selects one worker per CPU.
func New(workers int) (*Pool, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p, err := ants.NewPool(workers, ants.WithExpiryDuration(10*time.Second))
	if err != nil {
		return nil, errors.Wrap(err, "creating worker pool")
	}
	return &Pool{pool: p}, nil
}

// ForEach calls fn for every index in [0, n) on the pool and waits for all of
// them. The returned slice holds the error of each job.
func (p *Pool) ForEach(n int, fn func(i int) error) []error {
	var (
		wg   sync.WaitGroup
		errs = make([]error, n)
	)
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()
			errs[i] = fn(i)
		}); err != nil {
			wg.Done()
			errs[i] = errors.Wrap(err, "submitting job")
		}
	}
	wg.Wait()
	return errs
}

// Release closes the pool.
func (p *Pool) Release() {
	p.pool.Release()
}
