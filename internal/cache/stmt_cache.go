// Package cache provides caching utilities for database prepared statements.
package cache

import (
	"database/sql"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

const (
	// DefaultStmtCacheCapacity is the default maximum number of cached prepared statements.
	DefaultStmtCacheCapacity = 1000
)

// StmtCache stores prepared statements keyed by SQL text with LRU eviction.
// Evicted statements are closed so the database does not accumulate handles.
type StmtCache struct {
	lru *lru.Cache

	// Metrics using atomic for lock-free access.
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// NewStmtCache creates a new prepared statement cache with default capacity.
func NewStmtCache() *StmtCache {
	return NewStmtCacheWithCapacity(DefaultStmtCacheCapacity)
}

// NewStmtCacheWithCapacity creates a new prepared statement cache with specified capacity.
func NewStmtCacheWithCapacity(capacity int) *StmtCache {
	if capacity <= 0 {
		capacity = DefaultStmtCacheCapacity
	}

	sc := &StmtCache{}
	// Capacity is positive, so construction cannot fail.
	sc.lru, _ = lru.NewWithEvict(capacity, func(_, value interface{}) {
		sc.evictions.Add(1)
		if stmt, ok := value.(*sql.Stmt); ok {
			_ = stmt.Close()
		}
	})
	return sc
}

// Get retrieves a prepared statement from cache by SQL query string.
// Returns the statement and true if found, nil and false otherwise.
func (sc *StmtCache) Get(key string) (*sql.Stmt, bool) {
	value, ok := sc.lru.Get(key)
	if !ok {
		sc.misses.Add(1)
		return nil, false
	}
	sc.hits.Add(1)
	return value.(*sql.Stmt), true
}

// Set stores a prepared statement in the cache.
// If the cache is at capacity, the least recently used statement is evicted and closed.
func (sc *StmtCache) Set(key string, stmt *sql.Stmt) {
	sc.lru.Add(key, stmt)
}

// Clear closes and removes all cached statements.
func (sc *StmtCache) Clear() {
	sc.lru.Purge()
}

// Len returns the number of cached statements.
func (sc *StmtCache) Len() int {
	return sc.lru.Len()
}

// Stats returns cache hit, miss, and eviction counters.
func (sc *StmtCache) Stats() (hits, misses, evictions uint64) {
	return sc.hits.Load(), sc.misses.Load(), sc.evictions.Load()
}
