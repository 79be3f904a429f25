// Package provider defines the persistent store abstraction behind a keyedcache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// same []byte that was previously passed to Set for a key (no prepended/appended
// metadata, no re-encoding, no mutation). If a store performs internal transforms
// (e.g., compression), they MUST be fully reversed so that the bytes returned by
// Get are identical to the bytes provided to Set.
//
// Important: keys under a cache's prefix ("odoo-buddy-" by default) are owned by
// that cache. Foreign writes under the prefix surface as decode errors on read.
package provider

import (
	"context"
	"errors"
)

var (
	// ErrRejected is returned by Set when the store refused the write
	// (admission control, size limits). Nothing was stored.
	ErrRejected = errors.New("provider: write rejected")

	// ErrNotFound may be returned by Del for a missing key. The cache treats
	// it as success.
	ErrNotFound = errors.New("provider: key not found")
)

// Provider is a minimal, durable byte store.
// Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value, replacing any previous one.
	Set(ctx context.Context, key string, value []byte) error

	// Del removes a key. Deleting a missing key is not an error.
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
