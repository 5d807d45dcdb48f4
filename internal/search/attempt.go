package search

import (
	"context"

	"github.com/google/uuid"
)

// AttemptState is the lifecycle of one logical search attempt.
type AttemptState int

const (
	AttemptIdle AttemptState = iota
	AttemptInFlight
	AttemptApplied
	AttemptCancelled
	AttemptFailed
)

func (s AttemptState) String() string {
	switch s {
	case AttemptInFlight:
		return "in-flight"
	case AttemptApplied:
		return "applied"
	case AttemptCancelled:
		return "cancelled"
	case AttemptFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Terminal reports whether no further transition is allowed.
func (s AttemptState) Terminal() bool {
	return s == AttemptApplied || s == AttemptCancelled || s == AttemptFailed
}

// Attempt is the cancellation token handed to an asynchronous search. The
// coordinator cancels it when a newer search supersedes it; the response
// handler checks Superseded before touching any state, so a transport that
// cannot abort in time is still harmless.
//
// State is only read and written from the event loop goroutine.
type Attempt struct {
	ID     string
	Key    string
	Query  string
	state  AttemptState
	ctx    context.Context
	cancel context.CancelFunc
}

func newAttempt(key, query string) *Attempt {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()
	return &Attempt{
		ID:     id,
		Key:    key,
		Query:  query,
		state:  AttemptIdle,
		ctx:    WithRequestID(ctx, id),
		cancel: cancel,
	}
}

// State returns the current lifecycle state.
func (a *Attempt) State() AttemptState {
	return a.state
}

// Context is cancelled once the attempt is superseded or finished.
func (a *Attempt) Context() context.Context {
	return a.ctx
}

// Superseded reports whether a newer attempt took over.
func (a *Attempt) Superseded() bool {
	return a.state == AttemptCancelled
}

func (a *Attempt) start() bool {
	return a.transition(AttemptIdle, AttemptInFlight)
}

// Cancel aborts the transport and marks the attempt cancelled. It is a
// no-op once the attempt reached a terminal state.
func (a *Attempt) Cancel() bool {
	if !a.transition(AttemptInFlight, AttemptCancelled) {
		return false
	}
	a.cancel()
	return true
}

func (a *Attempt) finish(to AttemptState) bool {
	if !a.transition(AttemptInFlight, to) {
		return false
	}
	a.cancel()
	return true
}

func (a *Attempt) transition(from, to AttemptState) bool {
	if a.state != from {
		return false
	}
	a.state = to
	return true
}
