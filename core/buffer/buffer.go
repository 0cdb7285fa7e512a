package buffer

import (
	"bytes"
	"errors"

	"github.com/pyropy/lru/lib/cache"
	"github.com/pyropy/lru/lib/checksum"
	"github.com/pyropy/lru/lib/logger"
	lru "github.com/pyropy/lru/lib/lru_cache"
)

var log, _ = logger.New("buffer")

var (
	ErrDataNotFound      = errors.New("data not found in buffer")
	ErrChecksumCollision = errors.New("different data already buffered under checksum")
)

// Buffer stages pushed blobs by checksum until a writer picks them up.
// Old blobs are dropped least recently used first once capacity is reached.
type Buffer struct {
	data *cache.Sharded[int, []byte]
	sum  func([]byte) int
}

func NewBuffer(capacity, shards int) (*Buffer, error) {
	data, err := cache.NewSharded[int, []byte](capacity, shards, cache.IntHasher,
		lru.WithEvictCallback(func(sum int, b []byte) {
			log.Debugw("buffer", "event", "evict", "checksum", sum, "bytes", len(b))
		}),
	)
	if err != nil {
		return nil, err
	}

	return &Buffer{data: data, sum: checksum.CalculateCheckSum}, nil
}

// Push stores a copy of data and returns the checksum it is keyed by.
// Pushing the same blob again only refreshes it. A different blob with the
// same checksum is rejected with ErrChecksumCollision and the buffered one kept.
func (b *Buffer) Push(data []byte) (int, error) {
	sum := b.sum(data)
	blob := append([]byte(nil), data...)

	for {
		if b.data.PutIfAbsent(sum, blob) {
			return sum, nil
		}

		existing, exists := b.data.Get(sum)
		if !exists {
			// evicted between the two calls
			continue
		}
		if !bytes.Equal(existing, data) {
			return 0, ErrChecksumCollision
		}

		return sum, nil
	}
}

func (b *Buffer) Get(sum int) ([]byte, error) {
	data, exists := b.data.Get(sum)
	if !exists {
		return nil, ErrDataNotFound
	}

	return append([]byte(nil), data...), nil
}

// Take returns the blob and drops it from the buffer.
func (b *Buffer) Take(sum int) ([]byte, error) {
	data, exists := b.data.Peek(sum)
	if !exists || !b.data.Remove(sum) {
		return nil, ErrDataNotFound
	}

	return data, nil
}

func (b *Buffer) Len() int {
	return b.data.Len()
}
