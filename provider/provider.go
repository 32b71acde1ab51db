// Package provider defines the blob storage abstraction used by store.
//
// A provider holds one opaque blob per key. Implementations MUST be
// byte-for-byte transparent: Get must return exactly the []byte previously
// passed to Set for a key (no prepended/appended metadata, no re-encoding, no
// mutation). The store frames blobs itself (see internal/wire) and treats any
// other bytes as a bare payload in its configured format.
//
// Implementations:
//   - file:      one file per key under a root directory (plain JSON text).
//   - ristretto: in-process, cost-bounded (dgraph-io/ristretto).
//   - bigcache:  in-process, sharded, global TTL (allegro/bigcache/v3).
//   - redis:     remote, per-key TTL (redis/go-redis/v9).
package provider

import (
	"context"
	"time"
)

// Provider is a minimal blob store with TTLs. Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL (<= 0 means no expiry). cost is the
	// size hint used by cost-bounded stores; others ignore it.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key. Deleting a missing key is not an error.
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
