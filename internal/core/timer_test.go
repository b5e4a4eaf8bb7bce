package core

import (
	"testing"
	"time"
)

func TestFixedStepDue(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	if got := fs.Due(5); got != 1 {
		t.Fatalf("first call should release the primed step, got %d", got)
	}
	clock = clock.Add(250 * time.Millisecond)
	if got := fs.Due(5); got != 2 {
		t.Fatalf("250ms at 10/s should release 2 steps, got %d", got)
	}
	clock = clock.Add(10 * time.Second)
	if got := fs.Due(3); got != 3 {
		t.Fatalf("stall should be capped at the limit, got %d", got)
	}
	clock = clock.Add(50 * time.Millisecond)
	if got := fs.Due(3); got != 0 {
		t.Fatalf("backlog must be dropped after a capped burst, got %d", got)
	}
}
