// Package cache stores rendered documents keyed by request fingerprint.
// Entries expire by TTL and the in-memory store evicts least-recently-used
// entries beyond a size cap. A cache is an optimization only: every backend
// failure degrades to a miss, never to a render failure.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks backend connectivity failures so callers can tell an
// outage apart from a corrupt request.
var ErrUnavailable = errors.New("cache unavailable")

// Entry is one cached render result. Bytes are never mutated after Put.
type Entry struct {
	PDF       []byte
	PageCount int
}

// Store is the backend interface. Get returns (entry, true, nil) on a hit and
// (zero, false, nil) on a clean miss; an error means the backend itself is
// unavailable. Invalidate removes every entry whose key starts with prefix
// and reports how many were dropped; key structure is owned by the caller.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, e Entry, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Invalidate(ctx context.Context, prefix string) (int, error)
}
