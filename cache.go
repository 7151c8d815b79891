package hoodviz

import (
	"fmt"
	"log"
	"os"
	"time"
)

// CacheTTL is how long a saved snapshot remains trusted. Holdings barely move
// within a day for the charts' purpose, and the brokerage rate-limits eager
// clients.
const CacheTTL = 24 * time.Hour

// Cache persists the latest normalized snapshot to a single local file and
// serves it back as long as it is younger than the TTL. Any read problem is
// treated as a miss, never as a failure: the worst case is a refetch.
type Cache struct {
	path        string
	ttl         time.Duration
	invalidated bool

	now func() time.Time // injectable for expiry tests
}

// NewCache returns a cache backed by the file at path with the default TTL.
func NewCache(path string) *Cache {
	return &Cache{path: path, ttl: CacheTTL, now: time.Now}
}

// Invalidate forces the next Load to miss. The underlying file is left in
// place until the next Save overwrites it, so a failed refresh does not
// destroy the previous snapshot.
func (c *Cache) Invalidate() { c.invalidated = true }

// Load returns the cached snapshot when one exists and is fresh.
// Stale, corrupt, unreadable or invalidated caches all report a miss.
func (c *Cache) Load() (*Snapshot, bool) {
	if c.invalidated {
		return nil, false
	}

	f, err := os.Open(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: %v: %v", ErrCacheRead, err)
		}
		return nil, false
	}
	defer f.Close()

	s, err := DecodeSnapshot(f)
	if err != nil {
		log.Printf("warning: %v: %v", ErrCacheRead, err)
		return nil, false
	}

	if age := c.now().Sub(s.Time); age > c.ttl {
		log.Printf("cache is %s old, refetching", age.Round(time.Minute))
		return nil, false
	}
	return s, true
}

// Save overwrites the cache with s and re-arms an invalidated cache.
func (c *Cache) Save(s *Snapshot) error {
	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("cannot write cache %q: %w", c.path, err)
	}
	defer f.Close()

	if err := EncodeSnapshot(f, s); err != nil {
		return fmt.Errorf("cannot write cache %q: %w", c.path, err)
	}
	c.invalidated = false
	return nil
}
