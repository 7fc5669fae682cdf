package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var ErrPoolStopped = errors.New("worker pool stopped")

// Job is one unit of work. Key identifies it in logs, e.g. "update:812".
type Job struct {
	Key string
	Run func(ctx context.Context) error
}

// Pool handles Telegram updates on a fixed number of goroutines. A job that fails or panics
// is logged under its key; the worker carries on with the next one.
type Pool struct {
	size    int
	queue   chan Job
	closing chan struct{}
	closed  sync.Once
	running sync.WaitGroup
	log     *zerolog.Logger
}

func NewPool(size int, logger *zerolog.Logger) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &Pool{
		size:    size,
		queue:   make(chan Job, size*4),
		closing: make(chan struct{}),
		log:     logger,
	}
}

// Start launches the workers; they exit when ctx ends or Stop is called.
func (p *Pool) Start(ctx context.Context) {
	p.running.Add(p.size)
	for w := 0; w < p.size; w++ {
		go p.work(ctx, w)
	}
}

func (p *Pool) work(ctx context.Context, worker int) {
	defer p.running.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.closing:
			return
		case job := <-p.queue:
			p.run(ctx, worker, job)
		}
	}
}

func (p *Pool) run(ctx context.Context, worker int, job Job) {
	start := time.Now()
	l := p.log.With().Str("job", job.Key).Int("worker", worker).Logger()
	defer func() {
		if rec := recover(); rec != nil {
			l.Error().Str("panic", fmt.Sprint(rec)).Msg("job panicked")
		}
	}()
	if err := job.Run(ctx); err != nil {
		l.Error().Err(err).Dur("took", time.Since(start)).Msg("job failed")
		return
	}
	l.Debug().Dur("took", time.Since(start)).Msg("job done")
}

// Stop waits for jobs already running. Jobs still queued are dropped.
func (p *Pool) Stop() {
	p.closed.Do(func() { close(p.closing) })
	p.running.Wait()
}

// Submit blocks until the job is queued, the pool stops, or ctx ends.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	if job.Run == nil {
		return fmt.Errorf("job %q has nothing to run", job.Key)
	}
	select {
	case <-p.closing:
		return ErrPoolStopped
	default:
	}
	select {
	case p.queue <- job:
		return nil
	case <-p.closing:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}
