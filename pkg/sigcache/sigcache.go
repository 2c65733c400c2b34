// Package sigcache implements the SignalIndexCache: the dynamically
// updated signalIndex -> (GUID, source, id) mapping rebuilt wholesale on
// every UpdateSignalIndexCache response.
//
// Per spec, SignalIndexCache writes and reads happen only from handler
// execution contexts (the command-reader goroutine), which in the normal,
// conforming-publisher case is the only writer and the only in-process
// reader. The cache nonetheless guards itself with a RWMutex and
// publishes updates by building a fresh map and atomically swapping it
// in, so that an active UDP data-reader goroutine can safely read a
// consistent snapshot concurrently with a TCP-channel reload.
package sigcache

import (
	"sync"

	"github.com/google/uuid"
)

// Entry is one signal index cache row.
type Entry struct {
	SignalIndex uint16
	SignalID    uuid.UUID
	Source      string
	ID          uint32
}

// Cache maps signalIndex to Entry. The zero value is ready to use.
type Cache struct {
	mu      sync.RWMutex
	byIndex map[uint16]Entry
	byGUID  map[uuid.UUID]uint16
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{byIndex: make(map[uint16]Entry), byGUID: make(map[uuid.UUID]uint16)}
}

// Lookup resolves a signalIndex to its Entry. Per spec, a data packet
// referencing an unknown signalIndex is silently dropped by the caller,
// not treated as an error; this method simply reports absence.
func (c *Cache) Lookup(signalIndex uint16) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.byIndex[signalIndex]
	return e, ok
}

// SignalIndexOf resolves a GUID to its currently assigned signalIndex.
func (c *Cache) SignalIndexOf(id uuid.UUID) (uint16, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byGUID[id]
	return idx, ok
}

// Len reports the number of entries currently loaded.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byIndex)
}

// Load replaces the entire cache contents with entries, atomically. It is
// the only mutator: the cache is always cleared and rebuilt wholesale, per
// spec, never patched incrementally. Callers must finish building entries
// off to the side (e.g. after a successful parse) before calling Load, so
// that a parse error never corrupts the previously loaded cache.
func (c *Cache) Load(entries []Entry) {
	byIndex := make(map[uint16]Entry, len(entries))
	byGUID := make(map[uuid.UUID]uint16, len(entries))
	for _, e := range entries {
		byIndex[e.SignalIndex] = e
		byGUID[e.SignalID] = e.SignalIndex
	}

	c.mu.Lock()
	c.byIndex = byIndex
	c.byGUID = byGUID
	c.mu.Unlock()
}
