// Package lru_cache implements a fixed-capacity least-recently-used cache.
//
// Entries live in an arena and link to each other through integer handles
// instead of pointers. Handles 0 and 1 are the head and tail sentinels of the
// recency list: head.next is the most recently used entry, tail.prev the least.
//
// LRU is not safe for concurrent use; see lib/cache for locked wrappers.
package lru_cache

import "errors"

var (
	ErrInvalidCapacity = errors.New("lru: capacity must be positive")
)

type Option[K comparable, V any] func(*LRU[K, V])

// WithEvictCallback registers fn to be called with every entry evicted for
// capacity. It is not called for Remove or Purge.
func WithEvictCallback[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(l *LRU[K, V]) {
		l.onEvict = fn
	}
}

type LRU[K comparable, V any] struct {
	capacity int
	index    map[K]int

	entries []entry[K, V]
	free    []int

	onEvict func(K, V)
}

func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*LRU[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	l := &LRU[K, V]{
		capacity: capacity,
		index:    make(map[K]int, min(capacity, 1024)),
		entries:  make([]entry[K, V], 2, 2+min(capacity, 1024)),
	}
	l.entries[head].next = tail
	l.entries[tail].prev = head

	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// Get returns the value stored under key and marks it most recently used.
func (l *LRU[K, V]) Get(key K) (V, bool) {
	h, exists := l.index[key]
	if !exists {
		var zero V
		return zero, false
	}

	l.promote(h)

	return l.entries[h].value, true
}

// Put inserts or updates key. It reports whether an entry had to be evicted
// to stay within capacity.
func (l *LRU[K, V]) Put(key K, value V) bool {
	if h, exists := l.index[key]; exists {
		l.entries[h].value = value
		l.promote(h)
		return false
	}

	h := l.alloc(key, value)
	l.index[key] = h
	l.linkFront(h)

	if l.CapacityExceeded() {
		l.evict()
		return true
	}

	return false
}

// Peek returns the value stored under key without touching its recency.
func (l *LRU[K, V]) Peek(key K) (V, bool) {
	h, exists := l.index[key]
	if !exists {
		var zero V
		return zero, false
	}

	return l.entries[h].value, true
}

func (l *LRU[K, V]) Contains(key K) bool {
	_, exists := l.index[key]
	return exists
}

func (l *LRU[K, V]) Remove(key K) bool {
	h, exists := l.index[key]
	if !exists {
		return false
	}

	l.unlink(h)
	delete(l.index, key)
	l.release(h)

	return true
}

// Oldest returns the least recently used entry without promoting it.
func (l *LRU[K, V]) Oldest() (K, V, bool) {
	h := l.entries[tail].prev
	if h == head {
		var (
			key   K
			value V
		)
		return key, value, false
	}

	e := l.entries[h]
	return e.key, e.value, true
}

// Keys returns the cached keys ordered from most to least recently used.
func (l *LRU[K, V]) Keys() []K {
	keys := make([]K, 0, len(l.index))
	for h := l.entries[head].next; h != tail; h = l.entries[h].next {
		keys = append(keys, l.entries[h].key)
	}

	return keys
}

func (l *LRU[K, V]) Len() int {
	return len(l.index)
}

func (l *LRU[K, V]) Cap() int {
	return l.capacity
}

func (l *LRU[K, V]) CapacityExceeded() bool {
	return len(l.index) > l.capacity
}

// Purge drops every entry. Sentinels and capacity are kept.
func (l *LRU[K, V]) Purge() {
	clear(l.index)
	clear(l.entries[2:])
	l.entries = l.entries[:2]
	l.entries[head].next = tail
	l.entries[tail].prev = head
	l.free = l.free[:0]
}
