package role

import (
	"context"
	"sync"
)

type cacheEntry struct {
	userID     string
	resolution Resolution
}

// Cache holds one resolution per session. Entries are dropped explicitly: on
// refresh, logout, a change of identity on the session, or a role change made
// elsewhere (InvalidateUser).
type Cache struct {
	resolver *Resolver

	mu      sync.Mutex
	entries map[string]cacheEntry
}

func NewCache(resolver *Resolver) *Cache {
	return &Cache{resolver: resolver, entries: make(map[string]cacheEntry)}
}

func (c *Cache) Get(ctx context.Context, sessionID, userID string) Resolution {
	if sessionID == "" || userID == "" {
		return c.resolver.Resolve(ctx, userID)
	}
	c.mu.Lock()
	entry, ok := c.entries[sessionID]
	c.mu.Unlock()
	if ok && entry.userID == userID {
		return entry.resolution
	}

	res := c.resolver.Resolve(ctx, userID)
	c.mu.Lock()
	if res.Degraded {
		// A fallback is not cached; the next call retries the lookup.
		delete(c.entries, sessionID)
	} else {
		c.entries[sessionID] = cacheEntry{userID: userID, resolution: res}
	}
	c.mu.Unlock()
	return res
}

func (c *Cache) Invalidate(sessionID string) {
	c.mu.Lock()
	delete(c.entries, sessionID)
	c.mu.Unlock()
}

func (c *Cache) InvalidateUser(userID string) {
	c.mu.Lock()
	for sessionID, entry := range c.entries {
		if entry.userID == userID {
			delete(c.entries, sessionID)
		}
	}
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
