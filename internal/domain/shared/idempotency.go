package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers keys of work that was already applied, such as
// gateway notifications that providers deliver more than once
type IdempotencyStore interface {
	// MarkProcessed records key for ttl. It returns false if the key was
	// already recorded and has not expired.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether key is recorded and unexpired
	IsProcessed(ctx context.Context, key string) (bool, error)

	Close() error
}

// DefaultIdempotencyTTL is how long processed keys are remembered
const DefaultIdempotencyTTL = 24 * time.Hour
