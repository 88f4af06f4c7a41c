package provisioning

import (
	"context"
	"time"
)

// Waiter polls a condition a bounded number of times with a fixed interval.
type Waiter struct {
	Attempts int
	Interval time.Duration

	// Sleep replaces the interval wait. Tests use it to avoid real sleeps.
	Sleep func(time.Duration)
}

// NewWaiter creates a waiter with the given bounds.
func NewWaiter(attempts int, interval time.Duration) Waiter {
	return Waiter{Attempts: attempts, Interval: interval}
}

// Until calls check until it reports true or the attempts are used up.
// It returns false without an error when the condition never held.
// An error from check stops the wait and is returned as is.
// The full interval is always slept between attempts; ctx is only checked before each attempt.
func (w Waiter) Until(ctx context.Context, check func(context.Context) (bool, error)) (bool, error) {
	sleep := w.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for attempt := 1; attempt <= w.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		ok, err := check(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}

		if attempt < w.Attempts {
			sleep(w.Interval)
		}
	}
	return false, nil
}
