// Package parallel provides the worker pool the rasterizer uses for its parallel-for loops
// (vertex shading and per-triangle rasterization).
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of goroutines executing ranges of a loop.
//
// Each worker owns a queue and steals from the others when its own runs dry, so a few slow chunks
// (large triangles) don't leave the rest of the pool idle.
//
// For may be called from several goroutines at once, but never from inside the body of another
// For on the same Pool: the outer chunk would hold a worker the inner loop is waiting on. For and
// Close may race; a loop either gets all of its ranges queued before the workers stop, or runs inline.
type Pool struct {
	workers int

	// queues holds one work queue per worker.
	queues []chan func()

	done chan struct{}
	wg   sync.WaitGroup

	// mu is held for reading while a For queues its ranges, and for writing while Close stops
	// accepting work.
	mu sync.RWMutex
	// running reports whether the pool still accepts work.
	running atomic.Bool
}

// NewPool starts a pool with the given number of workers. Zero or a negative count means GOMAXPROCS.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}

	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(own)
			return

		case work := <-own:
			work()

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case work := <-own:
				work()
			}
		}
	}
}

func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case work := <-p.queues[i]:
			return work
		default:
		}
	}
	return nil
}

// For calls fn over [0, n) split into contiguous [lo, hi) ranges and returns once every range is done.
//
// When n is below threshold (or the pool has a single worker, or has been closed) fn runs once, inline,
// over the whole range. The calling goroutine always executes one of the ranges itself.
//
// A panic inside fn is recovered on the worker and raised again from For on the calling goroutine,
// after every other range has finished.
func (p *Pool) For(n, threshold int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}

	if n < threshold || p.workers == 1 {
		fn(0, n)
		return
	}

	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		fn(0, n)
		return
	}

	chunks := p.workers * 4
	if chunks > n {
		chunks = n
	}
	size := (n + chunks - 1) / chunks
	chunks = (n + size - 1) / size

	var (
		wg       sync.WaitGroup
		panicked atomic.Pointer[workerPanic]
	)

	run := func(lo, hi int) {
		defer func() {
			if r := recover(); r != nil {
				panicked.CompareAndSwap(nil, &workerPanic{value: r})
			}
		}()
		fn(lo, hi)
	}

	wg.Add(chunks - 1)
	for c := 1; c < chunks; c++ {
		lo := c * size
		hi := min(lo+size, n)
		work := func() {
			defer wg.Done()
			run(lo, hi)
		}
		// The workers keep draining until Close, which can't get past mu before this loop is done.
		p.queues[c%p.workers] <- work
	}
	p.mu.RUnlock()

	run(0, min(size, n))
	wg.Wait()

	if wp := panicked.Load(); wp != nil {
		panic(wp.value)
	}
}

type workerPanic struct {
	value any
}

// Close stops the workers after the queued work has run. Calling Close more than once is fine;
// a closed pool keeps working by running every loop inline.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.running.Load() {
		p.mu.Unlock()
		return
	}
	p.running.Store(false)
	p.mu.Unlock()

	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool has not been closed.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
