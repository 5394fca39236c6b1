package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestPool_RunsEveryJob(t *testing.T) {
	for _, tc := range []struct {
		name    string
		workers int
	}{
		{name: "inline", workers: 1},
		{name: "four", workers: 4},
		{name: "default", workers: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			pool := Start(tc.workers)
			var n atomic.Int64
			for i := range 100 {
				pool.Do(func() { n.Add(int64(i)) })
			}
			pool.Wait()
			pool.Wait()

			if got := n.Load(); got != 4950 {
				t.Fatalf("sum = %d, want 4950", got)
			}
		})
	}
}

func TestPool_Workers(t *testing.T) {
	p3 := Start(3)
	defer p3.Wait()
	if got := p3.Workers(); got != 3 {
		t.Fatalf("Workers = %d, want 3", got)
	}
	p := Start(0)
	defer p.Wait()
	if got := p.Workers(); got != runtime.GOMAXPROCS(0) {
		t.Fatalf("Workers = %d, want GOMAXPROCS", got)
	}
}
