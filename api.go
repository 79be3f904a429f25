package keyedcache

import (
	"context"

	c "github.com/unkn0wn-root/keyedcache/codec"
	pr "github.com/unkn0wn-root/keyedcache/provider"
)

// Getter reads the raw value stored under storageKey.
// It returns ok=false when the store holds nothing for the key.
type Getter func(ctx context.Context, storageKey string) (raw string, ok bool, err error)

// Setter writes raw under storageKey.
type Setter func(ctx context.Context, storageKey, raw string) error

// Remover deletes storageKey from the store.
type Remover func(ctx context.Context, storageKey string) error

// Cache is a memoizing, namespace-aware facade over a string-keyed persistent store.
// Every operation that touches the store blocks until the store round trip is done.
type Cache[V any] interface {
	// Get resolves key, loading it from the store on first access.
	// A key the store has never seen resolves to the empty value and stays unknown.
	Get(ctx context.Context, key string) (V, error)

	// Has reports whether key resolves to a non-empty value.
	Has(ctx context.Context, key string) (bool, error)

	// Set writes value through to the store and returns it. Setting the empty
	// value removes the key. Setting the value already held is not written again.
	Set(ctx context.Context, key string, value V) (V, error)

	// Remove deletes key from the store and marks it empty.
	Remove(ctx context.Context, key string) error

	// Default returns the current value of key, persisting def first when the
	// store has nothing for it.
	Default(ctx context.Context, key string, def V) (V, error)

	// Clear removes every key loaded or written through this instance.
	Clear(ctx context.Context) error

	Close(ctx context.Context) error
}

// Options configure a Cache. Either Getter and Setter or a Provider is required.
type Options[V any] struct {
	Prefix string // default DefaultPrefix

	Getter  Getter
	Setter  Setter
	Remover Remover // nil => write the encoded empty value through Setter

	// Provider backs any of Getter/Setter/Remover left nil. Closed by Cache.Close.
	Provider pr.Provider

	Empty V                 // empty sentinel; zero value of V by default
	Equal func(a, b V) bool // nil => V.Equal when implemented, else reflect.DeepEqual
	Codec c.Codec[V]        // nil => codec.JSON[V]

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}

// Bind adapts p to the Getter/Setter/Remover contract without handing over
// ownership: a Cache built from the returned funcs never closes p. Use it to
// share one provider between several caches.
func Bind(p pr.Provider) (Getter, Setter, Remover) {
	return bindProvider(p)
}
