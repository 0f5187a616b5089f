package atlas

import (
	"image"
	"math"
	"sync"
	"sync/atomic"

	"github.com/npillmayer/celltype/backend/gfx"
	"github.com/npillmayer/celltype/core"
	"github.com/npillmayer/celltype/core/font"
	"github.com/npillmayer/celltype/core/font/ot"
	"github.com/npillmayer/celltype/core/font/otquery"
)

// StyleMask selects style variants of a rasterized glyph.
type StyleMask uint8

// Style bits participating in the cache key.
const (
	StyleRegular StyleMask = 0
	StyleBold    StyleMask = 1 << iota
	StyleItalic
)

// Key identifies a rasterized glyph. The size is quantized to whole
// 1/1000ths of a point so equal sizes hit the same entry.
type Key struct {
	Font  font.FontID
	Glyph ot.GlyphIndex
	SizeQ uint32
	Style StyleMask
}

// QuantizeSize maps a point-size to its cache representation.
func QuantizeSize(size float64) uint32 {
	return uint32(math.Round(size * 1000))
}

// Entry describes a packed glyph: its rectangle in the texture, its
// bearings (pixel offset of the bitmap relative to origin and
// baseline) and its advance in pixels.
type Entry struct {
	X, Y, W, H int
	BearingX   int
	BearingY   int
	Advance    float64
	lastUsed   *int64 // LRU clock tick, shared across index snapshots
}

type shelf struct {
	y, height int
	x         int // next free column
}

// Atlas is a bounded glyph-texture cache.
type Atlas struct {
	mutex      sync.Mutex   // serializes writers
	index      atomic.Value // map[Key]Entry, immutable snapshots
	texture    *image.Alpha // coverage texture, guarded by mutex
	width      int
	height     int
	shelves    []shelf
	clock      int64 // atomic LRU tick
	generation uint64
}

// New creates an atlas with a texture of w×h pixels.
func New(w, h int) *Atlas {
	a := &Atlas{
		texture: image.NewAlpha(image.Rect(0, 0, w, h)),
		width:   w,
		height:  h,
	}
	a.index.Store(make(map[Key]Entry))
	return a
}

// Generation increments whenever the texture content changes; backends
// use it to decide when to re-upload.
func (a *Atlas) Generation() uint64 {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.generation
}

// Texture returns the coverage texture. The caller must treat it as
// read-only and should pair accesses with Generation.
func (a *Atlas) Texture() *image.Alpha {
	return a.texture
}

// Lookup finds a packed glyph without rasterizing. Safe from any
// goroutine without locking.
func (a *Atlas) Lookup(key Key) (Entry, bool) {
	idx := a.index.Load().(map[Key]Entry)
	entry, ok := idx[key]
	if ok {
		atomic.StoreInt64(entry.lastUsed, atomic.AddInt64(&a.clock, 1))
	}
	return entry, ok
}

// GetOrRaster returns the atlas entry for a glyph, rasterizing and
// packing it on first use. The typecase identifies font and size; the
// fontID keys the entry. Returns a recoverable "exhausted" error if
// even full eviction cannot make room.
func (a *Atlas) GetOrRaster(fontID font.FontID, typecase *font.TypeCase,
	gid ot.GlyphIndex, style StyleMask) (Entry, error) {
	//
	key := Key{Font: fontID, Glyph: gid, SizeQ: QuantizeSize(typecase.PtSize()), Style: style}
	if entry, ok := a.Lookup(key); ok {
		return entry, nil
	}
	a.mutex.Lock()
	defer a.mutex.Unlock()
	// re-check: another writer may have inserted while we waited
	if entry, ok := a.index.Load().(map[Key]Entry)[key]; ok {
		return entry, nil
	}
	entry, coverage, err := a.rasterize(typecase, gid)
	if err != nil {
		return Entry{}, err
	}
	x, y, err := a.pack(entry.W, entry.H)
	if err != nil {
		return Entry{}, err
	}
	entry.X, entry.Y = x, y
	tick := atomic.AddInt64(&a.clock, 1)
	entry.lastUsed = &tick
	if coverage != nil {
		for row := 0; row < entry.H; row++ {
			src := coverage.Pix[row*coverage.Stride : row*coverage.Stride+entry.W]
			dstOff := (y+row)*a.texture.Stride + x
			copy(a.texture.Pix[dstOff:dstOff+entry.W], src)
		}
	}
	a.publish(key, entry)
	a.generation++
	return entry, nil
}

// rasterize renders a glyph into a tight coverage bitmap.
func (a *Atlas) rasterize(typecase *font.TypeCase, gid ot.GlyphIndex) (Entry, *image.Alpha, error) {
	otf := typecase.ScalableFontParent().SFNT
	scale := typecase.PtSize() / float64(typecase.UnitsPerEm())
	mtx := otquery.GlyphMetrics(otf, gid)
	entry := Entry{Advance: float64(mtx.Advance) * scale}
	contours := otquery.Outline(otf, gid)
	if len(contours) == 0 {
		entry.W, entry.H = 0, 0
		return entry, nil, nil
	}
	minX, minY, maxX, maxY := gfx.OutlineBounds(contours)
	w := int(math.Ceil(float64(maxX)*scale)) - int(math.Floor(float64(minX)*scale)) + 1
	h := int(math.Ceil(float64(maxY)*scale)) - int(math.Floor(float64(minY)*scale)) + 1
	if w > a.width || h > a.height {
		return entry, nil, core.Error(core.EEXHAUSTED,
			"glyph %d at %gpt larger than atlas texture", gid, typecase.PtSize())
	}
	dx := -math.Floor(float64(minX) * scale)
	dy := math.Ceil(float64(maxY) * scale)
	coverage := gfx.RasterizeOutline(contours, scale, w, h, dx, dy)
	entry.W, entry.H = w, h
	entry.BearingX = int(math.Floor(float64(minX) * scale))
	entry.BearingY = int(math.Ceil(float64(maxY) * scale))
	return entry, coverage, nil
}

// pack finds room for a w×h rectangle, evicting least-recently-used
// shelves if necessary. Caller holds the writer lock.
func (a *Atlas) pack(w, h int) (int, int, error) {
	if w == 0 || h == 0 {
		return 0, 0, nil // blank glyph, occupies no texture space
	}
	if x, y, ok := a.tryPack(w, h); ok {
		return x, y, nil
	}
	// evict shelves in LRU order until the rectangle fits; bounded by
	// the shelf count so a too-tall rectangle cannot loop
	for attempts := len(a.shelves); attempts > 0 && a.evictLRUShelf(); attempts-- {
		if x, y, ok := a.tryPack(w, h); ok {
			return x, y, nil
		}
	}
	return 0, 0, core.Error(core.EEXHAUSTED, "glyph atlas full")
}

func (a *Atlas) tryPack(w, h int) (int, int, bool) {
	for i := range a.shelves {
		s := &a.shelves[i]
		if h <= s.height && s.x+w <= a.width {
			x := s.x
			s.x += w
			return x, s.y, true
		}
	}
	// open a new shelf
	bottom := 0
	if n := len(a.shelves); n > 0 {
		bottom = a.shelves[n-1].y + a.shelves[n-1].height
	}
	if bottom+h <= a.height {
		a.shelves = append(a.shelves, shelf{y: bottom, height: h, x: w})
		return 0, bottom, true
	}
	return 0, 0, false
}

// evictLRUShelf drops the shelf whose most recent use lies furthest in
// the past, removing its entries from the index. Returns false if
// nothing is left to evict.
func (a *Atlas) evictLRUShelf() bool {
	if len(a.shelves) == 0 {
		return false
	}
	idx := a.index.Load().(map[Key]Entry)
	newest := make([]int64, len(a.shelves))
	for _, entry := range idx {
		for i := range a.shelves {
			if entry.Y == a.shelves[i].y {
				if t := atomic.LoadInt64(entry.lastUsed); t > newest[i] {
					newest[i] = t
				}
			}
		}
	}
	victim := 0
	for i := range newest {
		if newest[i] < newest[victim] {
			victim = i
		}
	}
	tracer().Debugf("atlas evicts shelf %d (y=%d)", victim, a.shelves[victim].y)
	next := make(map[Key]Entry, len(idx))
	for key, entry := range idx {
		if entry.Y != a.shelves[victim].y {
			next[key] = entry
		}
	}
	a.index.Store(next)
	// reclaim by resetting the shelf; height stays, so only equal or
	// smaller glyphs reuse the row
	a.shelves[victim].x = 0
	// if the victim is the last shelf, give the space back entirely
	if victim == len(a.shelves)-1 {
		a.shelves = a.shelves[:victim]
	}
	a.generation++
	return true
}

// publish installs a new immutable index snapshot including the entry.
func (a *Atlas) publish(key Key, entry Entry) {
	idx := a.index.Load().(map[Key]Entry)
	next := make(map[Key]Entry, len(idx)+1)
	for k, v := range idx {
		next[k] = v
	}
	next[key] = entry
	a.index.Store(next)
}

// Len returns the number of packed glyphs.
func (a *Atlas) Len() int {
	return len(a.index.Load().(map[Key]Entry))
}
