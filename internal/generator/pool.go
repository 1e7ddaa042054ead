package generator

import (
	"runtime"
	"sync"
)

// pool runs submitted functions on a fixed number of goroutines.
// With a single worker, do runs the function inline.
type pool struct {
	wg   sync.WaitGroup
	work chan func()
}

func startPool(workers int) *pool {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &pool{}
	if workers == 1 {
		return p
	}

	p.work = make(chan func(), workers)
	for range workers {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for f := range p.work {
				f()
			}
		}()
	}
	return p
}

func (p *pool) do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// wait stops accepting work and blocks until every queued function returns.
func (p *pool) wait() {
	if p.work != nil {
		close(p.work)
	}
	p.wg.Wait()
}
