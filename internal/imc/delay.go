package imc

import (
	"context"
	"time"
)

// Delay waits d before a result is shown. It is purely cosmetic, so it
// gives up as soon as ctx is done. A non-positive d returns immediately.
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
