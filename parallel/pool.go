// Package parallel runs independent jobs on a fixed set of workers.
package parallel

import (
	"runtime"
	"sync"
)

// Pool feeds jobs to its workers. A pool with a single worker runs every job
// inline in Do.
type Pool struct {
	wg      sync.WaitGroup
	work    chan func()
	workers int
	close   func()
}

// Start launches numWorkers workers, or GOMAXPROCS workers if numWorkers < 1.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		close:   func() {},
	}
	if numWorkers == 1 {
		return pool
	}

	pool.work = make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range pool.work {
				f()
			}
		})
	}
	pool.close = sync.OnceFunc(func() { close(pool.work) })

	return pool
}

// Workers returns the number of workers.
func (p *Pool) Workers() int {
	return p.workers
}

// Do queues f, blocking while all workers are busy. It must not be called
// after Wait.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait stops accepting work and blocks until every queued job has finished.
// It is safe to call more than once.
func (p *Pool) Wait() {
	p.close()
	p.wg.Wait()
}
