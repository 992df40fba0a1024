// Package cache memoizes loaded tables by input content identity, so
// re-analyzing an unchanged upload skips reparsing. It is an optimization
// only: callers must stay correct when every load runs fresh.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Digest returns the content identity of an input: its SHA-256 hex digest.
// A new file means a new key, which is the entire invalidation story.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Store memoizes values of one table type by digest.
type Store[T any] struct {
	mu      sync.Mutex
	entries map[string]T
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{entries: make(map[string]T)}
}

// GetOrLoad returns the cached value for key, calling load on a miss. Load
// errors are not cached.
func (s *Store[T]) GetOrLoad(key string, load func() (T, error)) (T, error) {
	s.mu.Lock()
	if v, ok := s.entries[key]; ok {
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	v, err := load()
	if err != nil {
		return v, err
	}

	s.mu.Lock()
	s.entries[key] = v
	s.mu.Unlock()
	return v, nil
}

// Len reports how many tables are cached.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
