// Package poll repeats a check at a fixed interval until it reports done,
// fails, or runs out of time.
package poll

import (
	"context"
	"fmt"
	"time"
)

// Condition reports whether the awaited state was reached. A non-nil error
// stops polling immediately.
type Condition func(ctx context.Context) (done bool, err error)

// TimeoutError is returned when the condition was not met in time.
type TimeoutError struct {
	What     string
	Attempts int
	Elapsed  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s not ready after %d attempts (%s)", e.What, e.Attempts, e.Elapsed.Round(time.Millisecond))
}

// Until evaluates cond immediately and then every interval until it is done,
// returns an error, timeout elapses, or ctx is cancelled.
func Until(ctx context.Context, what string, interval, timeout time.Duration, cond Condition) error {
	if interval <= 0 {
		interval = time.Second
	}

	start := time.Now()
	deadline := start.Add(timeout)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	attempts := 0
	for {
		attempts++
		done, err := cond(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if !time.Now().Add(interval).Before(deadline) {
			return &TimeoutError{What: what, Attempts: attempts, Elapsed: time.Since(start)}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
