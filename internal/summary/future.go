package summary

import (
	"context"
	"sync"
)

// Status of a deferred summary.
type Status string

const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

// Future is a write-once deferred string: the pipeline hands it to the
// presentation layer before the summary resolves, so the result list can
// render immediately while the summary arrives later. Pending and failed are
// distinct observable states.
type Future struct {
	mu   sync.Mutex
	done chan struct{}
	text string
	err  error
}

func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved returns an already-completed Future. Used for the empty-query
// short-circuit.
func Resolved(text string) *Future {
	f := NewFuture()
	f.Resolve(text)
	return f
}

// Resolve completes the future with text. Calls after the first resolution
// or failure are no-ops.
func (f *Future) Resolve(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	select {
	case <-f.done:
		return
	default:
	}
	f.text = text
	close(f.done)
}

// Fail completes the future with an error.
func (f *Future) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	select {
	case <-f.done:
		return
	default:
	}
	f.err = err
	close(f.done)
}

// Poll reports the current state without blocking.
func (f *Future) Poll() (Status, string, error) {
	select {
	case <-f.done:
	default:
		return StatusPending, "", nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return StatusFailed, "", f.err
	}
	return StatusComplete, f.text, nil
}

// Wait blocks until the future resolves or ctx is done. A ctx expiry leaves
// the future pending for later polls; it is not a failure of the summary.
func (f *Future) Wait(ctx context.Context) (Status, string, error) {
	select {
	case <-f.done:
		return f.Poll()
	case <-ctx.Done():
		return StatusPending, "", ctx.Err()
	}
}
