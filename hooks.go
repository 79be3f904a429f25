package keyedcache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// storageKey is always the prefixed key.
type Hooks interface {
	// The store held a value that was decoded into the in-memory layer.
	Loaded(storageKey string)

	// The store had nothing for the key on a read.
	Missed(storageKey string)

	// Set found the value already cached and skipped the store write.
	WriteSkipped(storageKey string)

	// Default persisted the default value because the store had none.
	Defaulted(storageKey string)

	// A stored payload could not be decoded.
	DecodeError(storageKey string, err error)

	// The persistent store failed.
	// op ∈ {"get", "set", "remove"}
	StoreError(op, storageKey string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Loaded(string)                    {}
func (NopHooks) Missed(string)                    {}
func (NopHooks) WriteSkipped(string)              {}
func (NopHooks) Defaulted(string)                 {}
func (NopHooks) DecodeError(string, error)        {}
func (NopHooks) StoreError(string, string, error) {}
