package tokenizer

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of distinct inputs kept by a Cache.
const DefaultCacheSize = 256

// Cache memoizes Tokenize for repeated inputs such as type-ahead queries.
// Safe for concurrent use.
type Cache struct {
	cache *lru.Cache[string, Text]
}

// NewCache creates a tokenization cache holding up to size entries.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails for a non-positive size, ruled out above.
	cache, _ := lru.New[string, Text](size)
	return &Cache{cache: cache}
}

// Tokenize returns the cached tokenization of text, computing it on a miss.
func (c *Cache) Tokenize(text string) Text {
	if t, ok := c.cache.Get(text); ok {
		return t
	}
	t := Tokenize(text)
	c.cache.Add(text, t)
	return t
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return c.cache.Len() }
