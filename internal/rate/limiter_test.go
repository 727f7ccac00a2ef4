package rate

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	l := New(10.0, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Errorf("expected Allow to return true for burst request %d", i+1)
		}
	}
	if l.Allow() {
		t.Error("expected Allow to return false after burst exhausted")
	}
}

func TestLimiter_Wait(t *testing.T) {
	l := New(100.0, 1)

	start := time.Now()
	if err := l.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := l.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	duration := time.Since(start)

	// Second wait should have delayed approximately 10ms (1/100 second).
	if duration < 5*time.Millisecond {
		t.Errorf("expected Wait to delay, got %v", duration)
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	l := New(0.001, 1)
	if !l.Allow() {
		t.Fatal("first request should pass")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx); err == nil {
		t.Error("expected Wait to fail once context expires")
	}
}

func TestLimiter_BurstFloor(t *testing.T) {
	l := New(1.0, 0)
	if !l.Allow() {
		t.Error("burst should be floored at 1")
	}
}
