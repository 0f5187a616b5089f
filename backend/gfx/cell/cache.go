package cell

import (
	"sync"
	"time"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/celltype/backend/gfx"
	"github.com/npillmayer/celltype/backend/gfx/atlas"
	"github.com/npillmayer/celltype/core/font"
)

// Cache bounds: cleanup triggers when the entry count exceeds the
// threshold, and entries older than the TTL are evicted.
const (
	maxCacheEntries = 10000
	tileTTL         = 60 * time.Second
)

// tileKey identifies a finished cell tile.
type tileKey struct {
	CodePoint rune
	Font      font.FontID
	SizeQ     uint32
	Style     atlas.StyleMask
	Fg, Bg    gfx.Color
	Effects   Effects
}

// Tile is an owned RGBA bitmap of exactly CellW×CellH pixels plus the
// metrics needed for placement.
type Tile struct {
	Pix       []byte // CellW×CellH×4 bytes, straight alpha
	CellW     int
	CellH     int
	BearingX  int
	BearingY  int
	Advance   float64
	BaselineY int
}

type tileEntry struct {
	tile     *Tile
	created  time.Time
	lastUsed time.Time
	usage    uint64
}

// tileCache is an LRU tile store. The linked map keeps usage order:
// a hit re-appends its key, so eviction walks from the front.
type tileCache struct {
	mutex   sync.Mutex
	entries *linkedhashmap.Map
}

func newTileCache() *tileCache {
	return &tileCache{entries: linkedhashmap.New()}
}

func (tc *tileCache) lookup(key tileKey) (*Tile, bool) {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()
	v, ok := tc.entries.Get(key)
	if !ok {
		return nil, false
	}
	entry := v.(*tileEntry)
	if time.Since(entry.created) > tileTTL {
		tc.entries.Remove(key)
		return nil, false
	}
	entry.lastUsed = time.Now()
	entry.usage++
	// refresh LRU position
	tc.entries.Remove(key)
	tc.entries.Put(key, entry)
	return entry.tile, true
}

func (tc *tileCache) insert(key tileKey, tile *Tile) {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()
	now := time.Now()
	tc.entries.Put(key, &tileEntry{tile: tile, created: now, lastUsed: now, usage: 1})
	if tc.entries.Size() > maxCacheEntries {
		tc.cleanupLocked()
	}
}

// cleanupLocked drops expired entries first, then the least recently
// used ones until the cache is back under its cap.
func (tc *tileCache) cleanupLocked() {
	keys := tc.entries.Keys()
	for _, k := range keys {
		if v, ok := tc.entries.Get(k); ok {
			if time.Since(v.(*tileEntry).created) > tileTTL {
				tc.entries.Remove(k)
			}
		}
	}
	for _, k := range tc.entries.Keys() {
		if tc.entries.Size() <= maxCacheEntries {
			break
		}
		tc.entries.Remove(k) // front of the linked map is least recent
	}
}

func (tc *tileCache) clear() {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()
	tc.entries.Clear()
}

func (tc *tileCache) size() int {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()
	return tc.entries.Size()
}
