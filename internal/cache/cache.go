package cache

import "sync"

// Cache is a generic thread-safe LRU cache with a soft cost limit.
//
// Every entry carries a cost (for textures, its texel count). Insertion
// never evicts: entries handed out during a frame stay valid until the
// owner calls Evict at a point where nothing references them.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*entry[K, V]
	lru       recency[K, V]
	softLimit int

	hits, misses, evictions uint64
}

// New creates a new cache with the given soft cost limit.
// A softLimit of 0 means unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*entry[K, V]),
		softLimit: softLimit,
	}
}

// Get retrieves a value from the cache and marks it most recently used.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}

	c.hits++
	c.lru.touch(e)
	return e.value, true
}

// Set stores a value with its cost, replacing any previous entry.
func (c *Cache[K, V]) Set(key K, value V, cost int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok {
		c.lru.unlink(old)
	}
	e := &entry[K, V]{key: key, value: value, cost: cost}
	c.entries[key] = e
	c.lru.pushFront(e)
}

// GetOrCreate returns the cached value or creates and stores it.
// create is called under lock to prevent duplicate creation. When create
// fails nothing is stored and the error is returned.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, int, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.hits++
		c.lru.touch(e)
		return e.value, nil
	}
	c.misses++

	value, cost, err := create()
	if err != nil {
		var zero V
		return zero, err
	}

	e := &entry[K, V]{key: key, value: value, cost: cost}
	c.entries[key] = e
	c.lru.pushFront(e)
	return value, nil
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.lru.unlink(e)
	delete(c.entries, key)
	return true
}

// Clear removes all entries from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*entry[K, V])
	c.lru.reset()
}

// Evict removes least recently used entries until the total cost is
// within the soft limit. Returns the number of evicted entries.
func (c *Cache[K, V]) Evict() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.softLimit <= 0 {
		return 0
	}

	n := 0
	for c.lru.cost > c.softLimit {
		e := c.lru.popBack()
		if e == nil {
			break
		}
		delete(c.entries, e.key)
		n++
	}
	c.evictions += uint64(n)
	return n
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Capacity returns the soft cost limit of the cache.
func (c *Cache[K, V]) Capacity() int {
	return c.softLimit
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Cost:      c.lru.cost,
		Capacity:  c.softLimit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Cost is the summed cost of all entries.
	Cost int
	// Capacity is the soft cost limit.
	Capacity int
	// Hits is the number of cache hits.
	Hits uint64
	// Misses is the number of cache misses.
	Misses uint64
	// HitRate is the cache hit rate 0.0 to 1.0.
	HitRate float64
	// Evictions is the number of evicted entries.
	Evictions uint64
}
