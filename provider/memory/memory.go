// Package memory is an in-process provider backed by a map. It is the
// reference implementation of the provider contract and the usual store in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	pr "github.com/unkn0wn-root/keyedcache/provider"
)

// Store keeps raw values in-process.
type Store struct {
	mu sync.RWMutex
	m  map[string][]byte
}

var _ pr.Provider = (*Store)(nil)

// New returns a store seeded with a copy of items (may be nil).
func New(items map[string]string) *Store {
	s := &Store{m: make(map[string][]byte, len(items))}
	for k, v := range items {
		s.m[k] = []byte(v)
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	v, ok := s.m[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	cp := append([]byte(nil), value...)
	s.mu.Lock()
	s.m[key] = cp
	s.mu.Unlock()
	return nil
}

func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
	return nil
}

func (s *Store) Close(_ context.Context) error { return nil }

// Snapshot copies the current contents as strings.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.m))
	for k, v := range s.m {
		out[k] = string(v)
	}
	return out
}

// Keys returns the stored keys in ascending order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys
}
