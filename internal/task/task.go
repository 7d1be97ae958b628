// Package task runs simulated background work (device sync, export, barcode
// scan) with an explicit completion and cancellation contract.
//
// Every started task gets a Handle. The handle's Done channel closes exactly
// once, after the task has reached a terminal status. Cancel is safe to call
// at any time and from any goroutine.
package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrNotFound is returned for unknown task ids.
	ErrNotFound = errors.New("task not found")
	// ErrClosed is returned by Start after Shutdown.
	ErrClosed = errors.New("task runner closed")
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Terminal reports whether no further transitions can happen.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed || s == StatusCanceled
}

// Func is the body of a task. It must return promptly once ctx is done.
type Func func(ctx context.Context) (any, error)

// Info is a point-in-time snapshot of a task.
type Info struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	Owner      int64      `json:"owner"`
	Status     Status     `json:"status"`
	Result     any        `json:"result,omitempty"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// Duration returns how long the task ran, or zero if it has not finished.
func (i Info) Duration() time.Duration {
	if i.StartedAt == nil || i.FinishedAt == nil {
		return 0
	}
	return i.FinishedAt.Sub(*i.StartedAt)
}

// Handle controls a single started task.
type Handle struct {
	id     string
	kind   string
	owner  int64
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	status   Status
	result   any
	err      error
	created  time.Time
	started  time.Time
	finished time.Time
}

// ID returns the task id.
func (h *Handle) ID() string { return h.id }

// Done returns a channel closed once the task reaches a terminal status.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Cancel requests cancellation. A task that already finished is unaffected.
func (h *Handle) Cancel() { h.cancel() }

// Wait blocks until the task finishes or ctx is done.
func (h *Handle) Wait(ctx context.Context) (any, error) {
	select {
	case <-h.done:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.result, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Info returns a snapshot of the task.
func (h *Handle) Info() Info {
	h.mu.Lock()
	defer h.mu.Unlock()
	info := Info{
		ID:        h.id,
		Kind:      h.kind,
		Owner:     h.owner,
		Status:    h.status,
		Result:    h.result,
		CreatedAt: h.created,
	}
	if h.err != nil {
		info.Error = h.err.Error()
	}
	if !h.started.IsZero() {
		t := h.started
		info.StartedAt = &t
	}
	if !h.finished.IsZero() {
		t := h.finished
		info.FinishedAt = &t
	}
	return info
}

func (h *Handle) markRunning(at time.Time) {
	h.mu.Lock()
	h.status = StatusRunning
	h.started = at
	h.mu.Unlock()
}

func (h *Handle) finish(at time.Time, status Status, result any, err error) {
	h.mu.Lock()
	h.status = status
	h.result = result
	h.err = err
	if h.started.IsZero() {
		h.started = at
	}
	h.finished = at
	h.mu.Unlock()
	close(h.done)
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newID() string {
	return ulid.Make().String()
}

func safeCall(ctx context.Context, fn Func) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn(ctx)
}
