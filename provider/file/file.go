// Package file keeps keyedcache entries in a single JSON document on disk,
// laid out like an exported synced-storage area: {"odoo-buddy-config": "..."}.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	pr "github.com/unkn0wn-root/keyedcache/provider"
)

// Store loads the document once and rewrites it atomically on every change.
// Values must be valid UTF-8 to survive the JSON round trip.
type Store struct {
	path string

	mu    sync.RWMutex
	items map[string]string
}

var _ pr.Provider = (*Store)(nil)

// Open reads path, creating parent directories when needed.
// A missing file is an empty store.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("file provider: create directory: %w", err)
	}
	s := &Store{path: path, items: make(map[string]string)}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file provider: read %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		return nil, fmt.Errorf("file provider: parse %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	v, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.items[key]
	s.items[key] = string(value)
	if err := s.flushLocked(); err != nil {
		if had {
			s.items[key] = prev
		} else {
			delete(s.items, key)
		}
		return err
	}
	return nil
}

func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.items[key]
	if !had {
		return nil
	}
	delete(s.items, key)
	if err := s.flushLocked(); err != nil {
		s.items[key] = prev
		return err
	}
	return nil
}

func (s *Store) Close(_ context.Context) error { return nil }

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// flushLocked writes the document to a temp file and renames it over path.
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return fmt.Errorf("file provider: encode: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".odoo-buddy-*.tmp")
	if err != nil {
		return fmt.Errorf("file provider: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file provider: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file provider: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file provider: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("file provider: replace %s: %w", s.path, err)
	}
	return nil
}
