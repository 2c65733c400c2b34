// Package reconnect implements the Reconnector retry/backoff loop:
// cancellable, honoring a configurable maxRetries/retryInterval.
package reconnect

import (
	"context"
	"sync"
	"time"
)

// Reconnector drives a connect function in a retry loop up to
// maxRetries (unbounded if negative), sleeping retryInterval between
// attempts, until it succeeds or is cancelled.
type Reconnector struct {
	maxRetries    int32
	retryInterval time.Duration
	connect       func(ctx context.Context) error
	onError       func(err error)

	cancelCh chan struct{}
	once     sync.Once
}

// New builds a Reconnector. connect is attempted until it returns nil;
// onError (if non-nil) is invoked synchronously on Run's goroutine
// after every failed attempt. The Subscriber passes each failure to
// its emitError, which logs it and publishes it to telemetry; no
// CallbackPump runs while it reconnects, so the registered error
// callback is not invoked for these failures.
func New(maxRetries int32, retryInterval time.Duration, connect func(ctx context.Context) error, onError func(err error)) *Reconnector {
	return &Reconnector{
		maxRetries:    maxRetries,
		retryInterval: retryInterval,
		connect:       connect,
		onError:       onError,
		cancelCh:      make(chan struct{}),
	}
}

// Run attempts connect in a loop until it succeeds (returns true),
// maxRetries is exhausted (returns false), or Cancel is called
// (returns false immediately, including mid-sleep).
func (r *Reconnector) Run(ctx context.Context) bool {
	var attempt int32
	for {
		select {
		case <-r.cancelCh:
			return false
		default:
		}

		if err := r.connect(ctx); err == nil {
			return true
		} else {
			attempt++
			if r.onError != nil {
				r.onError(err)
			}
			if r.maxRetries >= 0 && attempt >= r.maxRetries {
				return false
			}
		}

		select {
		case <-time.After(r.retryInterval):
		case <-r.cancelCh:
			return false
		case <-ctx.Done():
			return false
		}
	}
}

// Cancel aborts the retry loop, whether it is between attempts or
// asleep. Safe to call more than once and from any goroutine.
func (r *Reconnector) Cancel() {
	r.once.Do(func() { close(r.cancelCh) })
}
