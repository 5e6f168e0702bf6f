package texture

import (
	"image"
	"os"
	"sync"
)

// Resolver resolves a texture name to a decoded NRGBA image.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache. Names are looked up as file
// paths first, then through the index. Unresolvable names fall back to the
// default glow texture.
type Cache struct {
	mu       sync.RWMutex
	items    map[string]*image.NRGBA
	index    *Index
	fallback *image.NRGBA
}

// NewCache creates a texture cache backed by index, which may be nil.
func NewCache(index *Index, fallback *image.NRGBA) *Cache {
	if index == nil {
		index = &Index{entries: map[string]string{}}
	}
	return &Cache{
		items:    make(map[string]*image.NRGBA),
		index:    index,
		fallback: fallback,
	}
}

// Resolve loads and caches a texture by name.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	if texName == "" {
		return c.fallback
	}
	path := texName
	if _, err := os.Stat(path); err != nil {
		p, ok := c.index.ResolvePath(texName)
		if !ok {
			return c.fallback
		}
		path = p
	}

	// Fast path: read lock
	c.mu.RLock()
	if img, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return img
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := LoadTexture(path)
	if err != nil {
		img = c.fallback
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, exists := c.items[path]; exists {
		return existing
	}
	c.items[path] = img
	return img
}
