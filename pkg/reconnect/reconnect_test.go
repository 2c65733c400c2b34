package reconnect

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestExhaustsMaxRetriesThenReturnsFalse(t *testing.T) {
	var errorCount int32
	var attemptCount int32

	connect := func(ctx context.Context) error {
		atomic.AddInt32(&attemptCount, 1)
		return errors.New("unreachable host")
	}
	onError := func(err error) {
		atomic.AddInt32(&errorCount, 1)
	}

	r := New(3, 10*time.Millisecond, connect, onError)
	ok := r.Run(context.Background())

	if ok {
		t.Fatal("expected Run to return false after exhausting retries")
	}
	if got := atomic.LoadInt32(&attemptCount); got != 3 {
		t.Fatalf("attemptCount = %d, want 3", got)
	}
	if got := atomic.LoadInt32(&errorCount); got != 3 {
		t.Fatalf("errorCount = %d, want 3", got)
	}
}

func TestSucceedsOnEventualConnect(t *testing.T) {
	attempts := 0
	connect := func(ctx context.Context) error {
		attempts++
		if attempts < 2 {
			return errors.New("not yet")
		}
		return nil
	}

	r := New(-1, time.Millisecond, connect, nil)
	if ok := r.Run(context.Background()); !ok {
		t.Fatal("expected Run to succeed")
	}
	if attempts != 2 {
		t.Fatalf("attempts = %d, want 2", attempts)
	}
}

func TestCancelDuringSleepReturnsImmediately(t *testing.T) {
	var attemptCount int32
	connect := func(ctx context.Context) error {
		atomic.AddInt32(&attemptCount, 1)
		return errors.New("down")
	}

	r := New(-1, time.Hour, connect, nil)

	done := make(chan bool)
	go func() { done <- r.Run(context.Background()) }()

	time.Sleep(20 * time.Millisecond) // let the first attempt fail and enter the long sleep
	r.Cancel()

	select {
	case ok := <-done:
		if ok {
			t.Fatal("expected Run to return false after Cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("Cancel did not interrupt the retry sleep")
	}
	if got := atomic.LoadInt32(&attemptCount); got != 1 {
		t.Fatalf("attemptCount = %d, want exactly 1 (no attempt after Cancel)", got)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	r := New(1, time.Millisecond, func(ctx context.Context) error { return errors.New("x") }, nil)
	r.Cancel()
	r.Cancel() // must not panic
}
