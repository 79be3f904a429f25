package keyedcache

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigError reports an unusable Options value at construction time.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("keyedcache: invalid option %s: %s", e.Field, e.Reason)
}

// ArgumentError reports a bad argument to a public operation.
// It is returned before the store is touched.
type ArgumentError struct {
	Op     string
	Arg    string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("keyedcache: %s: argument %s %s", e.Op, e.Arg, e.Reason)
}

// SerializationError wraps a codec failure for a single key.
type SerializationError struct {
	Op  string
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("keyedcache: %s %q: serialization: %v", e.Op, e.Key, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// StoreError wraps a failure of the underlying persistent store.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("keyedcache: %s %q: store: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ClearError collects the per-key failures of Clear.
// Keys missing from Errs were cleared.
type ClearError struct {
	Errs map[string]error
}

func (e *ClearError) Error() string {
	keys := make([]string, 0, len(e.Errs))
	for k := range e.Errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "keyedcache: clear failed for %d key(s)", len(keys))
	for _, k := range keys {
		fmt.Fprintf(&b, "; %q: %v", k, e.Errs[k])
	}
	return b.String()
}

func (e *ClearError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errs))
	for _, err := range e.Errs {
		errs = append(errs, err)
	}
	return errs
}
