package images

import "sync"

// Source ranks where a cached URL came from. Higher values win.
type Source int

const (
	SourcePlaceholder Source = iota
	SourcePrimary
	SourceCatalog
)

func (s Source) String() string {
	switch s {
	case SourceCatalog:
		return "catalog"
	case SourcePrimary:
		return "primary"
	default:
		return "placeholder"
	}
}

type cacheKey struct {
	typ    EntityType
	name   string
	artist string
}

type cacheEntry struct {
	url    string
	source Source
}

// cache holds resolved URLs for the session. An entry is only ever
// replaced by one from a strictly higher-priority source.
type cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
}

func newCache() *cache {
	return &cache{entries: make(map[cacheKey]cacheEntry)}
}

func (c *cache) get(key cacheKey) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// put stores url under key and reports whether it was written.
func (c *cache) put(key cacheKey, url string, source Source) bool {
	if url == "" || key.name == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok && existing.source >= source {
		return false
	}
	c.entries[key] = cacheEntry{url: url, source: source}
	return true
}
