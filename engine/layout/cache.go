package layout

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

// Cached layouts expire after this long.
const cacheTTL = 60 * time.Second

// lineCache memoizes full line-segment lists, keyed by a hash of the
// text plus the layout-relevant parameters.
type lineCache struct {
	mutex   sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	layout  *Layout
	created time.Time
}

func newLineCache() *lineCache {
	return &lineCache{entries: make(map[string]cacheEntry)}
}

func cacheKey(text string, width int, fontSize float64) string {
	h := fnv.New64a()
	h.Write([]byte(text))
	return fmt.Sprintf("%x-%d-%.2f", h.Sum64(), width, fontSize)
}

func (lc *lineCache) lookup(text string, width int, fontSize float64) (*Layout, bool) {
	lc.mutex.Lock()
	defer lc.mutex.Unlock()
	key := cacheKey(text, width, fontSize)
	entry, ok := lc.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.created) > cacheTTL {
		delete(lc.entries, key)
		return nil, false
	}
	return entry.layout, true
}

func (lc *lineCache) insert(text string, width int, fontSize float64, layout *Layout) {
	lc.mutex.Lock()
	defer lc.mutex.Unlock()
	// drop stale entries opportunistically
	for key, entry := range lc.entries {
		if time.Since(entry.created) > cacheTTL {
			delete(lc.entries, key)
		}
	}
	lc.entries[cacheKey(text, width, fontSize)] = cacheEntry{
		layout:  layout,
		created: time.Now(),
	}
}
