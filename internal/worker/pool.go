// Package worker runs queued jobs on a fixed number of goroutines.
package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/nguyentantai21042004/audio-report/internal/logger"
)

// ErrPoolClosed is returned by Submit after Shutdown.
var ErrPoolClosed = errors.New("worker pool is shut down")

// Runner executes one job to completion.
type Runner interface {
	Run(ctx context.Context, jobID string)
}

// Pool executes submitted job ids in arrival order on exactly size workers.
// Submit never waits for a free worker: ids queue in memory until one is.
type Pool struct {
	runner Runner
	logger logger.Logger
	size   int

	mu     sync.Mutex
	closed bool
	intake chan string
	work   chan string
	wg     sync.WaitGroup
}

// New creates a pool with size workers. A size below one is treated as one.
func New(runner Runner, l logger.Logger, size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		runner: runner,
		logger: l,
		size:   size,
		intake: make(chan string),
		work:   make(chan string),
	}
}

// Start launches the dispatcher and workers. Jobs run detached from ctx's
// cancellation so that shutdown drains them instead of aborting them.
func (p *Pool) Start(ctx context.Context) {
	runCtx := context.WithoutCancel(ctx)

	go p.dispatch(ctx)

	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go func(worker int) {
			defer p.wg.Done()
			for id := range p.work {
				p.logger.Debug(runCtx, "Worker %d picked job %s", worker, id)
				p.runner.Run(runCtx, id)
			}
		}(i + 1)
	}

	p.logger.Info(ctx, "Worker pool started with %d workers", p.size)
}

// Submit queues jobID for execution.
func (p *Pool) Submit(jobID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}
	p.intake <- jobID
	return nil
}

// Shutdown stops accepting jobs and waits for running ones to finish. Jobs
// still waiting for a worker are dropped from memory; they remain queued in
// the store. It returns ctx's error if the wait is cut short.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.intake)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info(ctx, "Worker pool drained")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// dispatch moves ids from intake to the workers through an unbounded FIFO.
func (p *Pool) dispatch(ctx context.Context) {
	defer close(p.work)

	var queue []string
	for {
		var out chan string
		var next string
		if len(queue) > 0 {
			out = p.work
			next = queue[0]
		}

		select {
		case id, ok := <-p.intake:
			if !ok {
				if len(queue) > 0 {
					p.logger.Info(ctx, "Leaving %d queued job(s) for the next start", len(queue))
				}
				return
			}
			queue = append(queue, id)
		case out <- next:
			queue = queue[1:]
		}
	}
}
