package extract

import (
	"sync"

	"github.com/ironsheep/dominant-color-mcp/internal/imaging"
)

// ColorCache maps image source strings to their extracted colors.
//
// Keys are compared as exact strings: two spellings of the same URL are two
// entries. The cache is unbounded and has no eviction; entries live until
// Clear is called or the cache is dropped.
//
// ColorCache is safe for concurrent use by multiple goroutines.
type ColorCache struct {
	mu     sync.RWMutex
	colors map[string]imaging.RGBColor
}

// NewColorCache creates and initializes a new empty color cache.
func NewColorCache() *ColorCache {
	return &ColorCache{
		colors: make(map[string]imaging.RGBColor),
	}
}

// Get returns the cached color for src, if any.
func (c *ColorCache) Get(src string) (imaging.RGBColor, bool) {
	c.mu.RLock()
	color, ok := c.colors[src]
	c.mu.RUnlock()
	return color, ok
}

// Store records color for src. A concurrent Store for the same key wins if it
// runs last.
func (c *ColorCache) Store(src string, color imaging.RGBColor) {
	c.mu.Lock()
	c.colors[src] = color
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *ColorCache) Clear() {
	c.mu.Lock()
	c.colors = make(map[string]imaging.RGBColor)
	c.mu.Unlock()
}

// Size returns the number of cached colors.
func (c *ColorCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.colors)
}
