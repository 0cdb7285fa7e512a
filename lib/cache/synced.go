// Package cache provides lock-guarded wrappers around lru_cache.LRU.
package cache

import (
	"sync"

	lru "github.com/pyropy/lru/lib/lru_cache"
)

// Synced guards the index and the recency list of a single LRU with one mutex,
// so every call is atomic and recency order stays global.
type Synced[K comparable, V any] struct {
	mu  sync.Mutex
	lru *lru.LRU[K, V]
}

func NewSynced[K comparable, V any](capacity int, opts ...lru.Option[K, V]) (*Synced[K, V], error) {
	l, err := lru.New[K, V](capacity, opts...)
	if err != nil {
		return nil, err
	}

	return &Synced[K, V]{lru: l}, nil
}

func (s *Synced[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Get(key)
}

func (s *Synced[K, V]) Put(key K, value V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Put(key, value)
}

// PutIfAbsent inserts value only when key is not cached yet.
func (s *Synced[K, V]) PutIfAbsent(key K, value V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lru.Contains(key) {
		return false
	}

	s.lru.Put(key, value)
	return true
}

func (s *Synced[K, V]) Peek(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Peek(key)
}

func (s *Synced[K, V]) Contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Contains(key)
}

func (s *Synced[K, V]) Remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Remove(key)
}

func (s *Synced[K, V]) Keys() []K {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Keys()
}

func (s *Synced[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

func (s *Synced[K, V]) Cap() int {
	return s.lru.Cap()
}

func (s *Synced[K, V]) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Purge()
}
