package task

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

const defaultRetention = 256

// Runner starts tasks and bounds how many run at once. Tasks waiting for a
// slot stay pending.
type Runner struct {
	base context.Context
	stop context.CancelFunc
	sem  *semaphore.Weighted
	wg   sync.WaitGroup

	mu    sync.Mutex
	tasks map[string]*Handle
	order []string

	onFinish  []func(Info)
	now       func() time.Time
	retention int
}

// Option configures a Runner.
type Option func(*Runner)

// WithOnFinish registers a hook called after every task finishes.
func WithOnFinish(fn func(Info)) Option {
	return func(r *Runner) { r.onFinish = append(r.onFinish, fn) }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithRetention sets how many tasks are remembered before the oldest finished
// ones are forgotten.
func WithRetention(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.retention = n
		}
	}
}

// NewRunner creates a Runner allowing maxConcurrent tasks to run at once.
func NewRunner(maxConcurrent int64, opts ...Option) *Runner {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	base, stop := context.WithCancel(context.Background())
	r := &Runner{
		base:      base,
		stop:      stop,
		sem:       semaphore.NewWeighted(maxConcurrent),
		tasks:     make(map[string]*Handle),
		now:       time.Now,
		retention: defaultRetention,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches fn in the background. The task's context is independent of
// any request context and is canceled by Handle.Cancel or Shutdown.
func (r *Runner) Start(kind string, owner int64, fn Func) (*Handle, error) {
	if r.base.Err() != nil {
		return nil, ErrClosed
	}
	ctx, cancel := context.WithCancel(r.base)
	h := &Handle{
		id:      newID(),
		kind:    kind,
		owner:   owner,
		cancel:  cancel,
		done:    make(chan struct{}),
		status:  StatusPending,
		created: r.now(),
	}

	r.mu.Lock()
	r.tasks[h.id] = h
	r.order = append(r.order, h.id)
	r.pruneLocked()
	r.mu.Unlock()

	r.wg.Add(1)
	go r.run(ctx, h, fn)
	return h, nil
}

func (r *Runner) run(ctx context.Context, h *Handle, fn Func) {
	defer r.wg.Done()
	defer h.cancel()

	if err := r.sem.Acquire(ctx, 1); err != nil {
		h.finish(r.now(), StatusCanceled, nil, err)
		r.notify(h)
		return
	}
	defer r.sem.Release(1)

	h.markRunning(r.now())
	result, err := safeCall(ctx, fn)

	status := StatusSucceeded
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), ctx.Err() != nil:
		status = StatusCanceled
	default:
		status = StatusFailed
	}
	h.finish(r.now(), status, result, err)
	r.notify(h)
}

func (r *Runner) notify(h *Handle) {
	info := h.Info()
	for _, fn := range r.onFinish {
		fn(info)
	}
}

// pruneLocked forgets the oldest finished tasks beyond the retention limit.
func (r *Runner) pruneLocked() {
	if len(r.order) <= r.retention {
		return
	}
	excess := len(r.order) - r.retention
	kept := r.order[:0]
	for _, id := range r.order {
		h := r.tasks[id]
		if excess > 0 && h.Info().Status.Terminal() {
			delete(r.tasks, id)
			excess--
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
}

// Get returns the handle for id.
func (r *Runner) Get(id string) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return h, nil
}

// GetOwned returns the handle for id only if it belongs to owner.
func (r *Runner) GetOwned(id string, owner int64) (*Handle, error) {
	h, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if h.owner != owner {
		return nil, ErrNotFound
	}
	return h, nil
}

// List returns snapshots of the owner's tasks, newest first.
func (r *Runner) List(owner int64) []Info {
	r.mu.Lock()
	handles := make([]*Handle, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		h := r.tasks[r.order[i]]
		if h.owner == owner {
			handles = append(handles, h)
		}
	}
	r.mu.Unlock()

	out := make([]Info, 0, len(handles))
	for _, h := range handles {
		out = append(out, h.Info())
	}
	return out
}

// Shutdown cancels every task and waits for them to finish or for ctx.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.stop()
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
