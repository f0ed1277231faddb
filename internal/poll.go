package internal

import (
	"context"
	"time"
)

// Poll calls fn every interval until it reports done, the attempt budget is
// spent, or the context is cancelled. It returns false when the budget runs
// out before fn reports done, and fn's error as soon as one occurs.
func Poll(ctx context.Context, attempts int, interval time.Duration, fn func() (bool, error)) (bool, error) {
	for i := 0; i < attempts; i++ {
		done, err := fn()
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
		if i < attempts-1 {
			select {
			case <-time.After(interval):
			case <-ctx.Done():
				return false, ctx.Err()
			}
		}
	}
	return false, nil
}
