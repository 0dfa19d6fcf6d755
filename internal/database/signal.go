package database

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// SignalContext derives a context from parent that is cancelled on SIGTERM or
// SIGINT. onSignal, when non-nil, runs before cancellation. The returned stop
// function releases the signal subscription.
func SignalContext(parent context.Context, onSignal func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		select {
		case sig := <-sigChan:
			if onSignal != nil {
				onSignal(sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	stop := func() {
		signal.Stop(sigChan)
		cancel()
	}
	return ctx, stop
}

// WithOptionalTimeout bounds ctx by seconds when seconds is positive.
// Remote reads against the site otherwise have no deadline.
func WithOptionalTimeout(ctx context.Context, seconds int) (context.Context, context.CancelFunc) {
	if seconds <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
}
