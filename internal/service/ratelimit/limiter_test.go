package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAllowExhaustsBurst(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("k", 3, 0.001) {
			t.Fatalf("request %d should pass within burst capacity", i)
		}
	}
	if l.Allow("k", 3, 0.001) {
		t.Fatalf("request past capacity should be denied before refill")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0.001) {
		t.Fatalf("first request for key a should pass")
	}
	if !l.Allow("b", 1, 0.001) {
		t.Fatalf("key b must have its own bucket")
	}
	if l.Allow("a", 1, 0.001) {
		t.Fatalf("key a should be exhausted")
	}
}

func TestWaitReturnsImmediatelyWithTokens(t *testing.T) {
	l := New()
	start := time.Now()
	if err := l.Wait(context.Background(), "k", 5, 5); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if time.Since(start) > 20*time.Millisecond {
		t.Fatalf("Wait should not block while tokens remain")
	}
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	l := New()
	// Drain the bucket with a refill rate too slow to recover in-test.
	if !l.Allow("k", 1, 0.0001) {
		t.Fatalf("drain request should pass")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	err := l.Wait(ctx, "k", 1, 0.0001)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}
