package core

import (
	"context"
	"time"
)

// TimeProvider abstracts time operations so that tests can control the
// clock and the quote lookup backoff can be observed without sleeping.
type TimeProvider interface {
	// Now returns the current time
	Now() time.Time
	// Since returns the time elapsed since t
	Since(t time.Time) time.Duration
	// Sleep pauses the current goroutine, honoring ctx cancellation.
	// Returns ctx.Err() if the context ended before the full duration.
	Sleep(ctx context.Context, d time.Duration) error
	// WithTimeout returns a context that is canceled after the timeout
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
