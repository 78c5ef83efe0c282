// Package parallel runs independent jobs on a fixed set of goroutines.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Job is one unit of work. The first job to fail cancels the batch.
type Job func(ctx context.Context) error

// WorkerPool is a pool of goroutines with one queue per worker. A worker
// whose queue is empty steals from the others, which balances batches where
// some jobs (large glyphs, distance fields) are much slower than the rest.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers. If workers
// is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case fn := <-own:
			fn()
		default:
			if fn := p.steal(id); fn != nil {
				fn()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case fn := <-own:
				fn()
			}
		}
	}
}

func (p *WorkerPool) drain(q chan func()) {
	for {
		select {
		case fn := <-q:
			fn()
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(id int) func() {
	for i := 0; i < p.workers; i++ {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// Run executes jobs across the workers and waits for all of them. It returns
// the first error, after which the remaining jobs see a cancelled context
// and are skipped if they have not started. A closed pool runs nothing and
// returns ctx.Err().
func (p *WorkerPool) Run(ctx context.Context, jobs []Job) error {
	if len(jobs) == 0 || !p.running.Load() {
		return ctx.Err()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	wg.Add(len(jobs))
	for i, job := range jobs {
		job := job
		fn := func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			if err := job(ctx); err != nil {
				fail(err)
			}
		}
		select {
		case p.queues[i%p.workers] <- fn:
		case <-p.done:
			wg.Done()
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// Close stops the workers after the queued jobs finish. Close is safe to
// call more than once.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int { return p.workers }
