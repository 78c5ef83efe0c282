// Package cache memoizes values computed from small keys, such as per-rune
// shaping results, for lookups spread over many goroutines.
package cache

import "sync"

// shardCount must be a power of two.
const shardCount = 16

// Hasher maps a key to the value its shard is selected by.
type Hasher[K any] func(K) uint64

// RuneHasher spreads neighbouring code points over the shards.
func RuneHasher(r rune) uint64 {
	return uint64(r) * 0x9e3779b97f4a7c15 >> 32
}

// Sharded is a concurrent map split into independently locked shards.
// Entries are never evicted; a Sharded lives as long as the font it serves.
type Sharded[K comparable, V any] struct {
	hasher Hasher[K]
	shards [shardCount]shard[K, V]
}

type shard[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// NewSharded returns an empty cache using hasher for shard selection.
func NewSharded[K comparable, V any](hasher Hasher[K]) *Sharded[K, V] {
	c := &Sharded[K, V]{hasher: hasher}
	for i := range c.shards {
		c.shards[i].entries = make(map[K]V)
	}
	return c
}

func (c *Sharded[K, V]) shard(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&(shardCount-1)]
}

// Get returns the value stored for key.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.shard(key)
	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	return v, ok
}

// GetOrCreate returns the value for key, calling create to compute it on a
// miss. create runs under the shard lock, so it is called once per key and
// must not use the cache.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.entries[key]; ok {
		return v
	}
	v := create()
	s.entries[key] = v
	return v
}

// Len returns the number of cached entries.
func (c *Sharded[K, V]) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}
