package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks a remote cache failure. Only errors wrapping it are
// retried.
var ErrUnavailable = errors.New("cache unavailable")

// Backoff retries remote cache calls that fail with [ErrUnavailable].
type Backoff struct {
	// Attempts is the total number of calls, including the first.
	Attempts int
	// Delay is the wait before the first retry. It doubles on each retry.
	Delay time.Duration
}

// DefaultBackoff is used by [RedisCache].
var DefaultBackoff = Backoff{Attempts: 3, Delay: 100 * time.Millisecond}

// Do calls fn until it succeeds, fails with an error other than
// ErrUnavailable, or the attempts are used up. It returns ctx.Err() if ctx
// ends while waiting.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	delay := b.Delay
	var err error
	for i := range max(b.Attempts, 1) {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
		if err = fn(); err == nil || !errors.Is(err, ErrUnavailable) {
			return err
		}
	}
	return err
}
