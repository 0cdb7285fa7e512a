package lru_cache

const (
	head = 0
	tail = 1
)

type entry[K comparable, V any] struct {
	key   K
	value V

	prev int
	next int
}

// alloc stores key/value in a free arena slot and returns its handle.
// The entry is not linked into the recency list.
func (l *LRU[K, V]) alloc(key K, value V) int {
	if n := len(l.free); n > 0 {
		h := l.free[n-1]
		l.free = l.free[:n-1]
		l.entries[h] = entry[K, V]{key: key, value: value}
		return h
	}

	l.entries = append(l.entries, entry[K, V]{key: key, value: value})
	return len(l.entries) - 1
}

// release zeroes the slot so the arena does not keep key/value reachable.
func (l *LRU[K, V]) release(h int) {
	l.entries[h] = entry[K, V]{}
	l.free = append(l.free, h)
}

func (l *LRU[K, V]) unlink(h int) {
	prev, next := l.entries[h].prev, l.entries[h].next

	l.entries[prev].next = next
	l.entries[next].prev = prev
}

func (l *LRU[K, V]) linkFront(h int) {
	first := l.entries[head].next

	l.entries[h].prev = head
	l.entries[h].next = first

	l.entries[first].prev = h
	l.entries[head].next = h
}

func (l *LRU[K, V]) promote(h int) {
	if l.entries[head].next == h {
		return
	}

	l.unlink(h)
	l.linkFront(h)
}

// evict drops tail.prev. Callers guarantee the list is not empty.
func (l *LRU[K, V]) evict() {
	victim := l.entries[tail].prev
	key, value := l.entries[victim].key, l.entries[victim].value

	l.unlink(victim)
	delete(l.index, key)
	l.release(victim)

	if l.onEvict != nil {
		l.onEvict(key, value)
	}
}
