package store

import (
	"context"
	"sync"
)

// subscribeLoop drives one live query: it emits the full current result set
// immediately, then re-queries and re-emits after every change ping until
// the subscription is released or the context ends. The output channel is
// closed once the loop stops, so view code can simply range over it.
func subscribeLoop[T any](ctx context.Context, pings chan struct{}, stopPings func(), query func(context.Context) ([]T, error)) (<-chan []T, func()) {
	out := make(chan []T, 1)
	done := make(chan struct{})
	var once sync.Once
	release := func() {
		once.Do(func() {
			stopPings()
			close(done)
		})
	}

	go func() {
		defer close(out)
		emit := func() bool {
			docs, err := query(ctx)
			if err != nil {
				// A failed refresh leaves the view on its last snapshot;
				// the next change ping retries.
				return true
			}
			select {
			case out <- docs:
				return true
			case <-done:
				return false
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			release()
			return
		}
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				release()
				return
			case <-pings:
				if !emit() {
					release()
					return
				}
			}
		}
	}()

	return out, release
}
