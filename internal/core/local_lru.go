package core

import (
	"container/list"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// LocalLRU is a small in-memory LRU cache with per-entry TTL.
// It is the per-process tier of ReadCache. Methods are safe for concurrent use.
type LocalLRU struct {
	mu     sync.Mutex
	cap    int
	ll     *list.List               // front = most-recently used
	items  map[string]*list.Element // key -> element
	now    func() time.Time
	hits   atomic.Uint64
	misses atomic.Uint64
	evicts atomic.Uint64
}

type lruEntry struct {
	key    string
	value  []byte
	expiry time.Time // zero means no expiry
}

// LocalLRUConfig groups constructor options.
type LocalLRUConfig struct {
	Capacity int
	Now      func() time.Time
}

// NewLocalLRU creates a LocalLRU. Capacity defaults to 1024.
func NewLocalLRU(cfg LocalLRUConfig) *LocalLRU {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 1024
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return &LocalLRU{
		cap:   capacity,
		ll:    list.New(),
		items: make(map[string]*list.Element, capacity),
		now:   nowFn,
	}
}

// Get returns the value for key if present and not expired.
func (c *LocalLRU) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, found := c.items[key]
	if !found {
		c.misses.Add(1)
		return nil, false
	}
	ent := el.Value.(*lruEntry)
	if !ent.expiry.IsZero() && c.now().After(ent.expiry) {
		c.removeElement(el)
		c.misses.Add(1)
		return nil, false
	}
	c.ll.MoveToFront(el)
	c.hits.Add(1)
	return ent.value, true
}

// Set inserts or updates a value. ttl <= 0 means no expiration.
func (c *LocalLRU) Set(key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var exp time.Time
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}

	if el, found := c.items[key]; found {
		ent := el.Value.(*lruEntry)
		ent.value = value
		ent.expiry = exp
		c.ll.MoveToFront(el)
		return
	}

	c.items[key] = c.ll.PushFront(&lruEntry{key: key, value: value, expiry: exp})
	for c.ll.Len() > c.cap {
		c.removeElement(c.ll.Back())
		c.evicts.Add(1)
	}
}

// Delete removes a key from the cache.
func (c *LocalLRU) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.removeElement(el)
		return true
	}
	return false
}

// DeletePrefix removes every key starting with prefix and returns how many were removed.
func (c *LocalLRU) DeletePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k, el := range c.items {
		if strings.HasPrefix(k, prefix) {
			c.removeElement(el)
			n++
		}
	}
	return n
}

// Len returns the current number of items in the cache.
func (c *LocalLRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// LocalLRUStats are simple counters for observability.
type LocalLRUStats struct {
	Hits, Misses, Evictions uint64
	Size, Capacity          int
}

// Stats returns a snapshot of counters and sizes.
func (c *LocalLRU) Stats() LocalLRUStats {
	return LocalLRUStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evicts.Load(),
		Size:      c.Len(),
		Capacity:  c.cap,
	}
}

// caller must hold c.mu.
func (c *LocalLRU) removeElement(el *list.Element) {
	c.ll.Remove(el)
	delete(c.items, el.Value.(*lruEntry).key)
}
