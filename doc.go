// Package keyedcache implements a read-through/write-through cache over an
// external string-keyed persistent store (synced browser settings, Redis,
// a NATS key-value bucket, a file on disk...).
//
// The cache namespaces keys, serializes values before they reach the store,
// memoizes reads and keeps "never seen" apart from "explicitly empty".
//
// Components:
//   - Getter/Setter/Remover or a provider.Provider: the persistent store.
//   - Codec[V]: (de)serializes V <-> bytes. JSON by default.
//   - Empty: the per-instance sentinel meaning "this key has no value".
//
// Keys:
//
//	<prefix><key>  - every logical key, prefix defaults to "odoo-buddy-"
//
// Typical startup:
//
//	cfg, _ := cache.Default(ctx, "config", defaults) // get-or-initialize once
//	_, _ = cache.Set(ctx, "config", updated)        // write-through afterwards
package keyedcache
