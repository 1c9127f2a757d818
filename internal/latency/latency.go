// Package latency inserts the artificial delay submit handlers wait before
// resolving, so clients can show their spinners.
package latency

import (
	"context"
	"time"
)

// Wait blocks for d or until ctx is done. A non-positive d returns at once.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
