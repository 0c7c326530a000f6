// Package cache provides a generic LRU cache with cost-based eviction.
//
// Entries are weighted by a caller supplied cost and evicted, least recently
// used first, only when Evict is called:
//
//	c := cache.New[uint64, []byte](1 << 20)
//	c.Set(key, data, len(data))
//	value, ok := c.Get(key)
//	c.Evict() // once nothing references evicted values
//
// # Thread Safety
//
// Cache is safe for concurrent use. It must not be copied after creation
// (it contains a mutex).
package cache
