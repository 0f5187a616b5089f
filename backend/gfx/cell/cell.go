package cell

import (
	"math"
	"sync"

	"github.com/npillmayer/celltype/backend/gfx"
	"github.com/npillmayer/celltype/backend/gfx/atlas"
	"github.com/npillmayer/celltype/backend/gfx/symbol"
	"github.com/npillmayer/celltype/core"
	"github.com/npillmayer/celltype/core/config"
	"github.com/npillmayer/celltype/core/font"
	"github.com/npillmayer/celltype/core/font/otquery"
)

// Alignment selects how a glyph is placed inside its cell.
type Alignment uint8

// Alignment policy bits.
const (
	SnapToPixel Alignment = 1 << iota
	CenterGlyphs
	AlignBaseline
)

// Renderer rasterizes characters into fixed-size cells. All methods
// are safe for concurrent use; the tile cache is guarded by a single
// mutex, held only for the duration of hit-check and insert.
type Renderer struct {
	mutex sync.Mutex
	cellW int
	cellH int
	align Alignment
	atlas *atlas.Atlas
	cache *tileCache
}

// NewRenderer creates a cell renderer for a fixed cell size.
func NewRenderer(cellW, cellH int, align Alignment, glyphs *atlas.Atlas) *Renderer {
	return &Renderer{
		cellW: cellW,
		cellH: cellH,
		align: align,
		atlas: glyphs,
		cache: newTileCache(),
	}
}

// CellSize returns the dimensions all cells share.
func (rend *Renderer) CellSize() (int, int) {
	rend.mutex.Lock()
	defer rend.mutex.Unlock()
	return rend.cellW, rend.cellH
}

// SetCellSize changes the cell dimensions. The entire tile cache is
// invalidated.
func (rend *Renderer) SetCellSize(cellW, cellH int) {
	rend.mutex.Lock()
	defer rend.mutex.Unlock()
	if cellW == rend.cellW && cellH == rend.cellH {
		return
	}
	rend.cellW, rend.cellH = cellW, cellH
	rend.cache.clear()
	tracer().Infof("cell size set to %d×%d, tile cache flushed", cellW, cellH)
}

// Invalidate flushes the tile cache. Called on any font change.
func (rend *Renderer) Invalidate() {
	rend.mutex.Lock()
	defer rend.mutex.Unlock()
	rend.cache.clear()
}

// AttachConfig subscribes the renderer to configuration changes: any
// reload flushes the tile cache, since font family or size may have
// changed.
func (rend *Renderer) AttachConfig(store *config.Store) {
	store.Notify(func(config.Settings) {
		rend.Invalidate()
	})
}

// RenderCell rasterizes a character into the caller-owned RGBA buffer
// at cell position (x, y). The buffer covers w×h pixels with a stride
// of w×4. The returned flag reports whether the cell wants to blink;
// honoring it is the caller's business.
//
// A failure is reported before the first pixel is written, so the
// buffer is never torn mid-cell.
func (rend *Renderer) RenderCell(cp rune, x, y int, fontID font.FontID,
	typecase *font.TypeCase, style atlas.StyleMask, fg, bg gfx.Color,
	effects Effects, buffer []byte, w, h int) (bool, error) {
	//
	rend.mutex.Lock()
	cellW, cellH := rend.cellW, rend.cellH
	rend.mutex.Unlock()
	if len(buffer) < w*h*4 {
		return false, core.Error(core.EINVALID,
			"pixel buffer has %d bytes, need %d", len(buffer), w*h*4)
	}
	key := tileKey{
		CodePoint: cp,
		Font:      fontID,
		SizeQ:     atlas.QuantizeSize(typecase.PtSize()),
		Style:     style,
		Fg:        fg,
		Bg:        bg,
		Effects:   effects,
	}
	tile, ok := rend.cache.lookup(key)
	if !ok {
		var err error
		tile, err = rend.rasterTile(key, typecase)
		if err != nil {
			return false, err
		}
		// cache-insert failures degrade to uncached rendering
		rend.cache.insert(key, tile)
	}
	blit(tile, x, y, buffer, w, h, cellW, cellH)
	return effects.Has(EffectBlink), nil
}

// blit copies a finished tile into the output buffer, clipped.
func blit(tile *Tile, x, y int, buffer []byte, w, h, cellW, cellH int) {
	for row := 0; row < cellH; row++ {
		ty := y + row
		if ty < 0 || ty >= h {
			continue
		}
		for col := 0; col < cellW; col++ {
			tx := x + col
			if tx < 0 || tx >= w {
				continue
			}
			src := (row*cellW + col) * 4
			dst := (ty*w + tx) * 4
			copy(buffer[dst:dst+4], tile.Pix[src:src+4])
		}
	}
}

// rasterTile renders a cell tile from scratch.
func (rend *Renderer) rasterTile(key tileKey, typecase *font.TypeCase) (*Tile, error) {
	rend.mutex.Lock()
	cellW, cellH := rend.cellW, rend.cellH
	align := rend.align
	rend.mutex.Unlock()
	//
	fg, bg := key.Fg, key.Bg
	if key.Effects.Has(EffectReverse) {
		fg, bg = bg, fg
	}
	if key.Effects.Has(EffectDim) {
		fg = fg.WithAlpha(fg.A() / dimAlphaFactor)
	}
	tile := &Tile{
		Pix:   make([]byte, cellW*cellH*4),
		CellW: cellW,
		CellH: cellH,
	}
	// background fill
	for i := 0; i < cellW*cellH; i++ {
		tile.Pix[i*4+0] = bg.R()
		tile.Pix[i*4+1] = bg.G()
		tile.Pix[i*4+2] = bg.B()
		tile.Pix[i*4+3] = bg.A()
	}
	scale := typecase.PtSize() / float64(typecase.UnitsPerEm())
	metrics := typecase.Metrics()
	baseline := int(math.Round(float64(metrics.Ascent) * scale))
	if baseline >= cellH {
		baseline = cellH - 1
	}
	tile.BaselineY = baseline
	//
	if !key.Effects.Has(EffectInvisible) {
		if err := rend.drawGlyph(tile, key, typecase, align, baseline, fg); err != nil {
			return nil, err
		}
	}
	rend.drawEffects(tile, key.Effects, typecase, scale, baseline, fg)
	return tile, nil
}

// drawGlyph composites the character's coverage over the tile
// background: symbols from the vector path, everything else from the
// glyph atlas.
func (rend *Renderer) drawGlyph(tile *Tile, key tileKey, typecase *font.TypeCase,
	align Alignment, baseline int, fg gfx.Color) error {
	//
	if symbol.Covers(key.CodePoint) {
		coverage := symbol.Raster(key.CodePoint, tile.CellW, tile.CellH)
		compositeCoverage(tile, coverage.Pix, tile.CellW, tile.CellH, 0, 0, fg)
		tile.Advance = float64(tile.CellW)
		return nil
	}
	otf := typecase.ScalableFontParent().SFNT
	gid := otquery.GlyphIndex(otf, key.CodePoint)
	entry, err := rend.atlas.GetOrRaster(key.Font, typecase, gid, key.Style)
	if err != nil {
		if core.Code(err) == core.EEXHAUSTED {
			// degrade: leave the cell background-only; the atlas can be
			// resized at the next idle point
			tracer().Infof("atlas exhausted, cell %#U left blank", key.CodePoint)
			return nil
		}
		return err
	}
	tile.Advance = entry.Advance
	tile.BearingX = entry.BearingX
	tile.BearingY = entry.BearingY
	if entry.W == 0 || entry.H == 0 {
		return nil
	}
	x := entry.BearingX
	y := 0
	if align&CenterGlyphs != 0 {
		x = int(math.Round(float64(tile.CellW-entry.W) / 2))
	}
	if align&AlignBaseline != 0 {
		y = baseline - entry.BearingY
	} else {
		y = (tile.CellH - entry.H) / 2
	}
	// SnapToPixel is implicit: placements are integral
	texture := rend.atlas.Texture()
	for row := 0; row < entry.H; row++ {
		srcOff := (entry.Y+row)*texture.Stride + entry.X
		compositeCoverage(tile, texture.Pix[srcOff:srcOff+entry.W], entry.W, 1, x, y+row, fg)
	}
	return nil
}

// compositeCoverage alpha-blends fg over the tile using per-pixel
// coverage. Output alpha is the maximum of the effective foreground
// alpha and the background alpha.
func compositeCoverage(tile *Tile, coverage []byte, w, h, dx, dy int, fg gfx.Color) {
	for row := 0; row < h; row++ {
		ty := dy + row
		if ty < 0 || ty >= tile.CellH {
			continue
		}
		for col := 0; col < w; col++ {
			tx := dx + col
			if tx < 0 || tx >= tile.CellW {
				continue
			}
			cov := coverage[row*w+col]
			if cov == 0 {
				continue
			}
			off := (ty*tile.CellW + tx) * 4
			a := uint32(fg.A()) * uint32(cov) / 255
			tile.Pix[off+0] = blendChannel(fg.R(), tile.Pix[off+0], a)
			tile.Pix[off+1] = blendChannel(fg.G(), tile.Pix[off+1], a)
			tile.Pix[off+2] = blendChannel(fg.B(), tile.Pix[off+2], a)
			if out := uint8(a); out > tile.Pix[off+3] {
				tile.Pix[off+3] = out
			}
		}
	}
}

func blendChannel(src, dst uint8, alpha uint32) uint8 {
	return uint8((uint32(src)*alpha + uint32(dst)*(255-alpha)) / 255)
}

// drawEffects paints underline, strikethrough and overline.
func (rend *Renderer) drawEffects(tile *Tile, effects Effects, typecase *font.TypeCase,
	scale float64, baseline int, fg gfx.Color) {
	//
	metrics := typecase.Metrics()
	if effects.Has(EffectUnderline) {
		// underline position is negative below the baseline
		row := baseline - int(math.Round(float64(metrics.UnderlinePos)*scale))
		thickness := lineThickness(float64(metrics.UnderlineThickness) * scale)
		fillRows(tile, row, thickness, fg)
	}
	if effects.Has(EffectStrikethrough) {
		row := baseline - int(math.Round(float64(metrics.StrikeoutPos)*scale))
		thickness := lineThickness(float64(metrics.StrikeoutThickness) * scale)
		if metrics.StrikeoutPos == 0 {
			row = tile.CellH / 2
		}
		fillRows(tile, row, thickness, fg)
	}
	if effects.Has(EffectOverline) {
		fillRows(tile, overlineRow, 1, fg)
	}
}

func lineThickness(t float64) int {
	thickness := int(math.Round(t))
	if thickness < 1 {
		thickness = 1
	}
	return thickness
}

// fillRows paints full-width opaque rows, clipped to the cell.
func fillRows(tile *Tile, row, thickness int, fg gfx.Color) {
	for r := row; r < row+thickness; r++ {
		if r < 0 || r >= tile.CellH {
			continue
		}
		for x := 0; x < tile.CellW; x++ {
			off := (r*tile.CellW + x) * 4
			tile.Pix[off+0] = fg.R()
			tile.Pix[off+1] = fg.G()
			tile.Pix[off+2] = fg.B()
			tile.Pix[off+3] = fg.A()
		}
	}
}
