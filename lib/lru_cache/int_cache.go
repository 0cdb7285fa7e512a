package lru_cache

// NotFound is what IntCache.Get returns for absent keys. It cannot be told
// apart from a cached -1; use Lookup when that matters.
const NotFound = -1

// IntCache is an int to int LRU with the classic -1-on-miss interface.
type IntCache struct {
	lru *LRU[int, int]
}

func NewIntCache(capacity int) (*IntCache, error) {
	l, err := New[int, int](capacity)
	if err != nil {
		return nil, err
	}

	return &IntCache{lru: l}, nil
}

func (c *IntCache) Get(key int) int {
	v, exists := c.lru.Get(key)
	if !exists {
		return NotFound
	}

	return v
}

func (c *IntCache) Lookup(key int) (int, bool) {
	return c.lru.Get(key)
}

func (c *IntCache) Put(key, value int) {
	c.lru.Put(key, value)
}

func (c *IntCache) Keys() []int {
	return c.lru.Keys()
}

func (c *IntCache) Len() int {
	return c.lru.Len()
}
