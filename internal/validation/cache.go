// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package validation

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the default number of compiled validators kept in a Cache.
const DefaultCacheSize = 20

// CacheStats is a snapshot of a Cache.
type CacheStats struct {
	Size    int    `json:"size"`
	MaxSize int    `json:"maxSize"`
	Version string `json:"version"`
}

// Cache memoizes compiled validators for a single schema version.
//
// Entries for two different versions never coexist: any access under a version other than
// the current one clears the whole cache first. Once full, the oldest inserted entry is
// evicted; lookups use Peek so reads never refresh an entry.
type Cache struct {
	mu      sync.Mutex
	maxSize int
	version string
	entries *lru.Cache[string, *CompiledValidator]
}

// NewCache creates a cache holding at most maxSize validators.
// A non-positive maxSize selects DefaultCacheSize.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	entries, err := lru.New[string, *CompiledValidator](maxSize)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &Cache{
		maxSize: maxSize,
		entries: entries,
	}
}

// Get returns the validator compiled for sectionPath under version, or nil.
func (c *Cache) Get(sectionPath, version string) *CompiledValidator {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.switchVersionLocked(version)
	v, _ := c.entries.Peek(cacheKey(version, sectionPath))
	return v
}

// Set stores a validator for sectionPath under version.
func (c *Cache) Set(sectionPath, version string, v *CompiledValidator) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.switchVersionLocked(version)
	c.entries.Add(cacheKey(version, sectionPath), v)
}

// Clear drops every entry. The remembered version is kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Purge()
}

// Stats returns the current size, capacity and version.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Size: c.entries.Len(), MaxSize: c.maxSize, Version: c.version}
}

func (c *Cache) switchVersionLocked(version string) {
	if c.version == version {
		return
	}
	c.entries.Purge()
	c.version = version
}

func cacheKey(version, sectionPath string) string {
	return version + ":" + sectionPath
}
