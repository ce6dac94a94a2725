package search

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value     string
	expiresAt time.Time
	createdAt time.Time
}

// Cache is a size-bounded in-memory TTL cache of lookup results.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache. A non-positive ttl disables caching.
func NewCache(maxSize int, ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a live entry.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

// Set stores value, evicting the oldest entry when full.
func (c *Cache) Set(key, value string) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	now := c.now()
	c.entries[key] = cacheEntry{value: value, createdAt: now, expiresAt: now.Add(c.ttl)}
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, e := range c.entries {
		if oldestKey == "" || e.createdAt.Before(oldest) {
			oldestKey, oldest = key, e.createdAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
