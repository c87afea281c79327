package menu

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mchmarny/navd/pkg/metric"
)

// Cache label values.
const (
	cacheHit  = "hit"
	cacheMiss = "miss"
)

// Cache memoizes compiled markup by case-insensitive menu name. It is not
// safe for concurrent use; Service serializes access to it.
type Cache struct {
	compiled map[string]string
	lookups  *metric.Counter
}

// NewCache returns an empty cache recording hits and misses in reg.
func NewCache(reg prometheus.Registerer) *Cache {
	return &Cache{
		compiled: make(map[string]string),
		lookups: metric.NewCounterWithRegistry(reg, "menu_cache_total",
			"Compiled menu cache lookups by result.", "result"),
	}
}

// Get returns the compiled markup for name, if present.
func (c *Cache) Get(name string) (string, bool) {
	markup, ok := c.compiled[key(name)]
	if ok {
		c.lookups.Increment(cacheHit)
	} else {
		c.lookups.Increment(cacheMiss)
	}
	return markup, ok
}

// Has reports whether markup is cached for name without counting a lookup.
func (c *Cache) Has(name string) bool {
	_, ok := c.compiled[key(name)]
	return ok
}

// Put stores compiled markup for name.
func (c *Cache) Put(name, markup string) {
	c.compiled[key(name)] = markup
}

// Delete drops the entry for name.
func (c *Cache) Delete(name string) {
	delete(c.compiled, key(name))
}

// Invalidate drops the entry for name. An empty name drops every entry.
func (c *Cache) Invalidate(name string) {
	if name == "" {
		c.Reset()
		return
	}
	c.Delete(name)
}

// Reset drops every entry.
func (c *Cache) Reset() {
	clear(c.compiled)
}

// Len returns the number of cached menus.
func (c *Cache) Len() int {
	return len(c.compiled)
}
