// Package cache provides a thread-safe LRU cache for compiled golox programs.
//
// A resolved types.Program is immutable, so the same Program can be handed to
// any number of interpreters. The cache avoids scanning, parsing and
// resolving the same source text again, which pays off when a host runs the
// same script repeatedly.
//
// # Example
//
//	c := cache.New(1024)
//	prog, err := c.GetOrCompile(source, compile)
package cache

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/sandrolain/golox/pkg/types"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

// Cache is an LRU cache of compiled programs keyed by source text.
// Once the capacity is reached, the least recently used entry is evicted.
//
// Safe for concurrent use by multiple goroutines.
type Cache struct {
	capacity int
	programs *lru.Cache
}

// New creates a new LRU cache with the given capacity.
// capacity must be > 0; if <= 0, DefaultCapacity is used.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	// lru.New only fails for a non-positive size.
	programs, _ := lru.New(capacity)
	return &Cache{
		capacity: capacity,
		programs: programs,
	}
}

// Get retrieves a compiled program and marks it most recently used.
func (c *Cache) Get(source string) (*types.Program, bool) {
	v, ok := c.programs.Get(source)
	if !ok {
		return nil, false
	}
	return v.(*types.Program), true
}

// Set inserts or replaces a program, evicting the least recently used entry
// when full.
func (c *Cache) Set(source string, prog *types.Program) {
	c.programs.Add(source, prog)
}

// GetOrCompile returns the cached program for source, or calls compile,
// caches a successful result and returns it. Failures are not cached.
func (c *Cache) GetOrCompile(source string, compile func() (*types.Program, error)) (*types.Program, error) {
	if prog, ok := c.Get(source); ok {
		return prog, nil
	}
	prog, err := compile()
	if err != nil {
		return nil, err
	}
	c.Set(source, prog)
	return prog, nil
}

// Len returns the number of entries currently in the cache.
func (c *Cache) Len() int {
	return c.programs.Len()
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Invalidate removes a single entry from the cache.
func (c *Cache) Invalidate(source string) {
	c.programs.Remove(source)
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.programs.Purge()
}
