package cache

import (
	"errors"

	"github.com/cespare/xxhash/v2"
	lru "github.com/pyropy/lru/lib/lru_cache"
)

var (
	ErrInvalidShards = errors.New("cache: shard count must be positive")
	ErrTooManyShards = errors.New("cache: capacity too small for shard count")
)

type Hasher[K comparable] func(K) uint64

func StringHasher(key string) uint64 {
	return xxhash.Sum64String(key)
}

// IntHasher spreads sequential keys with the splitmix64 finalizer.
func IntHasher(key int) uint64 {
	x := uint64(key)
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Sharded spreads keys over independent Synced caches to cut lock contention.
// Eviction order is least recently used per shard, not across the whole cache:
// a put may evict a key from its own shard while an older key lives elsewhere.
type Sharded[K comparable, V any] struct {
	shards []*Synced[K, V]
	hasher Hasher[K]
}

// NewSharded splits capacity evenly over shards; the first capacity%shards
// shards get one extra slot.
func NewSharded[K comparable, V any](capacity, shards int, hasher Hasher[K], opts ...lru.Option[K, V]) (*Sharded[K, V], error) {
	if capacity <= 0 {
		return nil, lru.ErrInvalidCapacity
	}
	if shards <= 0 {
		return nil, ErrInvalidShards
	}
	if capacity < shards {
		return nil, ErrTooManyShards
	}

	base, rem := capacity/shards, capacity%shards
	s := &Sharded[K, V]{
		shards: make([]*Synced[K, V], shards),
		hasher: hasher,
	}

	for i := range s.shards {
		shardCap := base
		if i < rem {
			shardCap++
		}

		shard, err := NewSynced[K, V](shardCap, opts...)
		if err != nil {
			return nil, err
		}
		s.shards[i] = shard
	}

	return s, nil
}

func (s *Sharded[K, V]) shard(key K) *Synced[K, V] {
	return s.shards[s.hasher(key)%uint64(len(s.shards))]
}

func (s *Sharded[K, V]) Get(key K) (V, bool) {
	return s.shard(key).Get(key)
}

func (s *Sharded[K, V]) Put(key K, value V) bool {
	return s.shard(key).Put(key, value)
}

func (s *Sharded[K, V]) PutIfAbsent(key K, value V) bool {
	return s.shard(key).PutIfAbsent(key, value)
}

func (s *Sharded[K, V]) Peek(key K) (V, bool) {
	return s.shard(key).Peek(key)
}

func (s *Sharded[K, V]) Contains(key K) bool {
	return s.shard(key).Contains(key)
}

func (s *Sharded[K, V]) Remove(key K) bool {
	return s.shard(key).Remove(key)
}

// Keys concatenates each shard's most-to-least recently used keys in shard order.
func (s *Sharded[K, V]) Keys() []K {
	var keys []K
	for _, shard := range s.shards {
		keys = append(keys, shard.Keys()...)
	}

	return keys
}

func (s *Sharded[K, V]) Len() int {
	n := 0
	for _, shard := range s.shards {
		n += shard.Len()
	}

	return n
}

func (s *Sharded[K, V]) Cap() int {
	n := 0
	for _, shard := range s.shards {
		n += shard.Cap()
	}

	return n
}

func (s *Sharded[K, V]) Shards() int {
	return len(s.shards)
}

func (s *Sharded[K, V]) Purge() {
	for _, shard := range s.shards {
		shard.Purge()
	}
}
