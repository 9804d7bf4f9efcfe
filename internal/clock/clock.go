// Package clock abstracts time for components that schedule retries.
package clock

import (
	"context"
	"time"
)

// Clock supplies the current time and context-aware sleeping. Retry delays
// go through it so tests can observe backoff without waiting it out.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}
