package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	app_errors "loomchat/backend/internal/errors"
	"loomchat/backend/internal/model"
)

// Status tracks where a live session is in its lifecycle.
type Status string

const (
	StatusInitializing Status = "initializing"
	StatusActive       Status = "active"
	StatusProcessing   Status = "processing"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
	StatusCancelled    Status = "cancelled"
)

// Sender delivers one stream event to the subscriber. Implementations are
// called from the detached generation goroutine and must not block
// indefinitely; a failed delivery is reported, never fatal.
type Sender interface {
	Send(event model.StreamEvent) error
}

type entry struct {
	sender     Sender
	transcript strings.Builder
	status     Status
	lastActive time.Time
	cancel     context.CancelFunc
}

// Registry is the process-wide table of live streaming sessions, at most
// one per branch id. It is the single point of contention between the
// detached generation task and the control surface; every mutation goes
// through its short key-scoped critical sections.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Create inserts a new session for the branch. A branch with an in-flight
// session is rejected so that two generations never interleave output on
// the same subscription.
func (r *Registry) Create(branchID string, sender Sender) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[branchID]; ok {
		return fmt.Errorf("%w: %s", app_errors.ErrAlreadyActive, branchID)
	}
	r.entries[branchID] = &entry{
		sender:     sender,
		status:     StatusInitializing,
		lastActive: time.Now(),
	}
	return nil
}

// Attach replaces the session's sender with a reconnecting subscriber's.
// The accumulated transcript is left untouched and is not replayed to the
// new sender. Attaching to a branch without a session reports
// ErrNoActiveStream and creates nothing.
func (r *Registry) Attach(branchID string, sender Sender) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[branchID]
	if !ok {
		return fmt.Errorf("%w: %s", app_errors.ErrNoActiveStream, branchID)
	}
	e.sender = sender
	e.status = StatusActive
	e.lastActive = time.Now()
	return nil
}

// Send delivers one event to the branch's current subscriber, best-effort.
// A missing session, a detached sender, or a failed delivery all come back
// as errors for the caller to log; none of them may abort a generation.
func (r *Registry) Send(branchID string, event model.StreamEvent) error {
	r.mu.Lock()
	e, ok := r.entries[branchID]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", app_errors.ErrNoActiveStream, branchID)
	}
	sender := e.sender
	e.lastActive = time.Now()
	r.mu.Unlock()

	if sender == nil {
		return fmt.Errorf("%w: no subscriber attached to %s", app_errors.ErrNoActiveStream, branchID)
	}
	// Delivery happens outside the lock: a slow subscriber must not hold
	// up registry operations on other branches.
	if err := sender.Send(event); err != nil {
		return fmt.Errorf("send to branch %s failed: %w", branchID, err)
	}
	return nil
}

// AppendTranscript accumulates generated text server-side for the lifetime
// of one generation. A no-op when the session no longer exists.
func (r *Registry) AppendTranscript(branchID, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[branchID]; ok {
		e.transcript.WriteString(text)
		e.lastActive = time.Now()
	}
}

// Transcript returns the accumulated text and whether the session exists.
func (r *Registry) Transcript(branchID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[branchID]
	if !ok {
		return "", false
	}
	return e.transcript.String(), true
}

// SetStatus records lifecycle transitions; a no-op for removed sessions.
func (r *Registry) SetStatus(branchID string, status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[branchID]; ok {
		e.status = status
	}
}

// Status reports the session's current status.
func (r *Registry) Status(branchID string) (Status, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[branchID]
	if !ok {
		return "", false
	}
	return e.status, true
}

// SetCancel stores the cancel function of the detached generation task so
// Remove can stop the in-flight upstream request.
func (r *Registry) SetCancel(branchID string, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[branchID]; ok {
		e.cancel = cancel
	}
}

// Remove deletes the session and its transcript unconditionally and cancels
// the detached task if one is registered. Idempotent.
func (r *Registry) Remove(branchID string) {
	r.mu.Lock()
	e, ok := r.entries[branchID]
	if ok {
		delete(r.entries, branchID)
	}
	r.mu.Unlock()

	if ok && e.cancel != nil {
		e.cancel()
	}
}
