package foxess

import (
	"context"
	"sync"
	"time"
)

// Vendor limits: 1440 calls/day/inverter, 1 request/second for reads and
// 1 request per 2 seconds for writes.
const (
	readInterval  = time.Second
	writeInterval = 2 * time.Second
	// Padding added when a call arrives early, so wall-clock drift never
	// lands a request just under the limit.
	catchUp = 200 * time.Millisecond
)

// limiter enforces a minimum interval between consecutive vendor calls. It
// is a two-timestamp gate, not a token bucket; there is no burst allowance.
type limiter struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func newLimiter() *limiter {
	return &limiter{now: time.Now}
}

// wait blocks until the next call is allowed, or until ctx is done. Holding
// mu for the sleep is intentional: it serialises callers in arrival order.
func (l *limiter) wait(ctx context.Context, write bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	interval := readInterval
	if write {
		interval = writeInterval
	}

	if !l.last.IsZero() {
		if diff := l.now().Sub(l.last); diff < interval {
			timer := time.NewTimer(interval - diff + catchUp)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	l.last = l.now()
	return nil
}
