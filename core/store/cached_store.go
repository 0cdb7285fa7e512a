package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	ds "github.com/ipfs/go-datastore"
	dslvl "github.com/ipfs/go-ds-leveldb"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/pyropy/lru/lib/cache"
	"github.com/pyropy/lru/lib/logger"
	lru "github.com/pyropy/lru/lib/lru_cache"
	"github.com/pyropy/lru/lib/metrics"
)

var log, _ = logger.New("store")

var (
	ErrNotFound = errors.New("key not found")
)

// CachedStore is a read-through, write-through LRU in front of a datastore.
// Only the datastore is durable; the cache starts empty on every open.
type CachedStore struct {
	ID        uuid.UUID
	Datastore ds.Datastore
	Cache     *cache.Synced[string, []byte]
	Metrics   *metrics.Metrics

	log   *zap.SugaredLogger
	loads singleflight.Group

	// mu orders cache fills from loads against Put and Delete. generation is
	// bumped by every write so a load that raced a write does not cache.
	mu         sync.Mutex
	generation uint64
}

type Options struct {
	// Registerer receives the cache metrics. Nil leaves them unregistered.
	Registerer prometheus.Registerer
}

func NewCachedStore(store ds.Datastore, capacity int, opts Options) (*CachedStore, error) {
	m, err := metrics.New("lru", "store", opts.Registerer)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	s := &CachedStore{
		ID:        uuid.New(),
		Datastore: store,
		Metrics:   m,
	}
	s.log = log.With("store_id", s.ID)

	s.Cache, err = cache.NewSynced[string, []byte](capacity, lru.WithEvictCallback(s.onEvict))
	if err != nil {
		return nil, err
	}

	return s, nil
}

// OpenLevelDB opens a leveldb datastore at path and puts a cache in front of it.
func OpenLevelDB(path string, capacity int, opts Options) (*CachedStore, error) {
	store, err := dslvl.NewDatastore(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}

	s, err := NewCachedStore(store, capacity, opts)
	if err != nil {
		store.Close()
		return nil, err
	}

	s.log.Infow("open", "path", path, "capacity", capacity)
	return s, nil
}

func (s *CachedStore) onEvict(key string, value []byte) {
	s.Metrics.Evictions.Inc()
	s.log.Debugw("cache", "event", "evict", "key", key, "bytes", len(value))
}

// Get serves key from the cache or loads it from the datastore. Concurrent
// misses for the same key share one load. The load is detached from ctx so a
// canceled caller does not fail the others; ctx only bounds this caller's wait.
func (s *CachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	k := ds.NewKey(key)

	if v, exists := s.Cache.Get(k.String()); exists {
		s.Metrics.Hits.Inc()
		return clone(v), nil
	}
	s.Metrics.Misses.Inc()

	loadCtx := context.WithoutCancel(ctx)
	ch := s.loads.DoChan(k.String(), func() (interface{}, error) {
		return s.load(loadCtx, k)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return clone(res.Val.([]byte)), nil
	}
}

func (s *CachedStore) load(ctx context.Context, k ds.Key) ([]byte, error) {
	s.mu.Lock()
	started := s.generation
	s.mu.Unlock()

	b, err := s.Datastore.Get(ctx, k)
	if errors.Is(err, ds.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", k, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A Put or Delete finished while we were reading; what we read may be stale.
	if s.generation != started {
		s.log.Debugw("cache", "event", "stale load", "key", k.String())
		return b, nil
	}

	s.Cache.PutIfAbsent(k.String(), b)
	s.Metrics.Entries.Set(float64(s.Cache.Len()))
	s.log.Debugw("cache", "event", "load", "key", k.String(), "bytes", len(b))

	return b, nil
}

func (s *CachedStore) Put(ctx context.Context, key string, value []byte) error {
	k := ds.NewKey(key)
	v := clone(value)

	if err := s.Datastore.Put(ctx, k, v); err != nil {
		return fmt.Errorf("put %s: %w", k, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.loads.Forget(k.String())
	s.Cache.Put(k.String(), v)
	s.Metrics.Entries.Set(float64(s.Cache.Len()))

	return nil
}

func (s *CachedStore) Delete(ctx context.Context, key string) error {
	k := ds.NewKey(key)

	if err := s.Datastore.Delete(ctx, k); err != nil {
		return fmt.Errorf("delete %s: %w", k, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.loads.Forget(k.String())
	s.Cache.Remove(k.String())
	s.Metrics.Entries.Set(float64(s.Cache.Len()))

	return nil
}

func (s *CachedStore) Close() error {
	s.Cache.Purge()
	return s.Datastore.Close()
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}

	return append([]byte(nil), b...)
}
