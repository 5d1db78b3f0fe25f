package graphcalc

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/golang/groupcache/lru"
)

// DefaultCacheSize is the capacity used by NewCache for non-positive sizes.
const DefaultCacheSize = 256

// Cache memoizes parsed expressions by source text and parse options, evicting
// the least recently used entry once full. Errors are not cached. A Cache is
// safe for concurrent use; the expressions it returns are shared.
type Cache struct {
	mu  sync.Mutex
	lru *lru.Cache

	hits, misses atomic.Int64
}

// NewCache creates a cache holding up to size expressions.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{lru: lru.New(size)}
}

// Parse returns the cached expression for src and opts, parsing and caching it
// if necessary.
func (c *Cache) Parse(src string, opts ...ParseOption) (*Expr, error) {
	p := newparsectx(opts)
	key := p.key() + "\x00" + src
	c.mu.Lock()
	v, ok := c.lru.Get(key)
	c.mu.Unlock()
	if ok {
		c.hits.Add(1)
		return v.(*Expr), nil
	}
	c.misses.Add(1)
	// Parse outside the lock. Concurrent misses on one key parse twice, which
	// is harmless since equal sources give equal expressions.
	e, err := parse(src, &p)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.lru.Add(key, e)
	c.mu.Unlock()
	return e, nil
}

// Recompute parses src through the cache with default options and evaluates
// it against vars. It is the single entry point a calculator needs on each
// edit of an expression field.
func (c *Cache) Recompute(src string, vars Bindings) (float64, error) {
	e, err := c.Parse(src)
	if err != nil {
		return math.NaN(), err
	}
	return e.Eval(vars)
}

// Len returns the number of cached expressions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Resize changes the capacity of the cache, evicting entries as needed.
func (c *Cache) Resize(size int) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.MaxEntries = size
	for c.lru.Len() > size {
		c.lru.RemoveOldest()
	}
}

// Stats returns the number of lookups that found and missed a cached
// expression.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
