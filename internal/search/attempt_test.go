package search

import (
	"context"
	"errors"
	"testing"
)

func TestAttemptLifecycle(t *testing.T) {
	a := newAttempt("key", "plumber")
	if a.State() != AttemptIdle {
		t.Fatalf("new attempt should be idle, got %v", a.State())
	}
	if a.ID == "" || RequestIDFrom(a.Context()) != a.ID {
		t.Fatalf("attempt context should carry its id, got %q / %q", a.ID, RequestIDFrom(a.Context()))
	}
	if a.Cancel() {
		t.Fatalf("an idle attempt cannot be cancelled")
	}

	if !a.start() {
		t.Fatalf("expected idle -> in-flight")
	}
	if a.start() {
		t.Fatalf("start must not run twice")
	}
	if !a.finish(AttemptApplied) {
		t.Fatalf("expected in-flight -> applied")
	}
	if !a.State().Terminal() {
		t.Fatalf("applied should be terminal")
	}
	if a.Cancel() || a.finish(AttemptFailed) {
		t.Fatalf("terminal attempts must ignore further transitions")
	}
	if a.State() != AttemptApplied {
		t.Fatalf("state changed after terminal: %v", a.State())
	}
	if !errors.Is(a.Context().Err(), context.Canceled) {
		t.Fatalf("finished attempt should release its context")
	}
}

func TestAttemptCancelMarksSuperseded(t *testing.T) {
	a := newAttempt("key", "plumber")
	a.start()

	if !a.Cancel() {
		t.Fatalf("expected in-flight -> cancelled")
	}
	if !a.Superseded() {
		t.Fatalf("cancelled attempt should report superseded")
	}
	if !errors.Is(a.Context().Err(), context.Canceled) {
		t.Fatalf("cancel should abort the transport context")
	}
	if a.finish(AttemptApplied) {
		t.Fatalf("a late response must not apply a cancelled attempt")
	}
}

func TestAttemptStateString(t *testing.T) {
	tests := map[AttemptState]string{
		AttemptIdle:      "idle",
		AttemptInFlight:  "in-flight",
		AttemptApplied:   "applied",
		AttemptCancelled: "cancelled",
		AttemptFailed:    "failed",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Fatalf("%d: expected %q, got %q", state, want, got)
		}
	}
}
