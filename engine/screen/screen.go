package screen

import (
	"image"
	"unicode/utf8"

	"github.com/npillmayer/celltype/backend/gfx"
	"github.com/npillmayer/celltype/backend/gfx/atlas"
	"github.com/npillmayer/celltype/backend/gfx/cell"
	"github.com/npillmayer/celltype/core"
	"github.com/npillmayer/celltype/core/font"
	"github.com/npillmayer/celltype/engine/glyphing"
	"github.com/npillmayer/celltype/engine/glyphing/shaper"
	"github.com/npillmayer/celltype/engine/layout"
	"github.com/npillmayer/celltype/engine/uniprop"
)

// Options configure a screen.
type Options struct {
	CellWidth, CellHeight int
	FontSize              float64
	AtlasSize             int // texture edge length; 0 selects a default
	EastAsianMode         uniprop.EastAsianMode
	Alignment             cell.Alignment
}

// Screen renders text into a terminal grid. It owns the planner, the
// shaper and the cell renderer; fonts come from an injected arena.
type Screen struct {
	arena    *font.Arena
	fontID   font.FontID
	typecase *font.TypeCase
	planner  *layout.Planner
	shaper   *shaper.Shaper
	renderer *cell.Renderer
	opts     Options
	dirty    gfx.DirtyList
}

// New creates a screen rendering with a font from the arena. An
// unknown font name falls back to the built-in font (and the error is
// swallowed here; the screen stays usable).
func New(arena *font.Arena, fontName string, opts Options) (*Screen, error) {
	if opts.CellWidth <= 0 || opts.CellHeight <= 0 {
		return nil, core.Error(core.EINVALID, "cell dimensions %d×%d invalid",
			opts.CellWidth, opts.CellHeight)
	}
	if opts.FontSize == 0 {
		opts.FontSize = 12.0
	}
	if opts.AtlasSize == 0 {
		opts.AtlasSize = 1024
	}
	if opts.Alignment == 0 {
		opts.Alignment = cell.SnapToPixel | cell.AlignBaseline
	}
	typecase, err := arena.TypeCase(fontName, opts.FontSize)
	if typecase == nil {
		return nil, err
	}
	if err != nil {
		tracer().Infof("screen falls back to built-in font: %v", err)
	}
	fontID, _ := arena.Lookup(typecase.ScalableFontParent().Fontname)
	scr := &Screen{
		arena:    arena,
		fontID:   fontID,
		typecase: typecase,
		planner:  layout.NewPlanner(opts.EastAsianMode),
		shaper:   shaper.New(),
		renderer: cell.NewRenderer(opts.CellWidth, opts.CellHeight, opts.Alignment,
			atlas.New(opts.AtlasSize, opts.AtlasSize)),
		opts: opts,
	}
	return scr, nil
}

// Shaper exposes the screen's shaper, e.g. to register font ligatures.
func (scr *Screen) Shaper() *shaper.Shaper {
	return scr.shaper
}

// Grid describes the cell grid of a render target.
type Grid struct {
	Columns, Rows int
}

// GridFor computes how many cells fit a pixel buffer.
func (scr *Screen) GridFor(w, h int) Grid {
	return Grid{Columns: w / scr.opts.CellWidth, Rows: h / scr.opts.CellHeight}
}

// RenderText lays out a text, shapes the lines overlapping the
// viewport byte range, and rasterizes them cell by cell into the
// caller-owned RGBA buffer of w×h pixels. Rendering stops at the first
// failing cell; everything rendered up to that point stays valid.
func (scr *Screen) RenderText(text string, viewportFrom, viewportTo int,
	fg, bg gfx.Color, effects cell.Effects, buffer []byte, w, h int) error {
	//
	if len(buffer) < w*h*4 {
		return core.Error(core.EINVALID, "pixel buffer has %d bytes, need %d",
			len(buffer), w*h*4)
	}
	grid := scr.GridFor(w, h)
	if grid.Columns == 0 || grid.Rows == 0 {
		return core.Error(core.EINVALID, "buffer smaller than one cell")
	}
	plan := scr.planner.Plan(text, grid.Columns, scr.opts.FontSize)
	visible := plan.Viewport(viewportFrom, viewportTo)
	tracer().Debugf("rendering %d of %d lines", len(visible), len(plan.Lines))
	row := 0
	for _, line := range visible {
		if row >= grid.Rows {
			break
		}
		if err := scr.renderLine(text[line.Start:line.End], row, fg, bg, effects,
			buffer, w, h); err != nil {
			return err
		}
		row++
	}
	scr.dirty.AgeAndDrop()
	return nil
}

// renderLine shapes one line and rasterizes its clusters into grid
// cells of a single row.
func (scr *Screen) renderLine(line string, row int, fg, bg gfx.Color,
	effects cell.Effects, buffer []byte, w, h int) error {
	//
	params := glyphing.Params{
		Font:          scr.typecase,
		EastAsianMode: scr.opts.EastAsianMode,
	}
	seq, err := scr.shaper.Shape(line, params)
	if err != nil {
		return err
	}
	grid := scr.GridFor(w, h)
	column := 0
	// index shaped glyphs by cluster id; clusters consumed by a
	// ligature or mark composition have no entry of their own
	byCluster := make(map[int]glyphing.ShapedGlyph, len(seq.Glyphs))
	for _, g := range seq.Glyphs {
		byCluster[g.ClusterID] = g
	}
	// walk clusters in logical order: every cluster owns one cell (two
	// for wide characters); storage order of seq is visual, so render
	// placement follows the grapheme walk instead
	iter := uniprop.NewGraphemeIterator(line)
	for iter.Next() {
		if column >= grid.Columns {
			break
		}
		r, _ := utf8.DecodeRuneInString(iter.Grapheme())
		if g, ok := byCluster[iter.Offset()]; ok {
			r = g.CodePoint
		}
		width := uniprop.WidthOf(r, scr.opts.EastAsianMode)
		if width == 0 {
			continue // combining marks were composed during shaping
		}
		x := column * scr.opts.CellWidth
		y := row * scr.opts.CellHeight
		_, err := scr.renderer.RenderCell(r, x, y, scr.fontID, scr.typecase,
			atlas.StyleRegular, fg, bg, effects, buffer, w, h)
		if err != nil {
			return err
		}
		scr.dirty.Mark(image.Rect(x, y, x+width*scr.opts.CellWidth,
			y+scr.opts.CellHeight))
		column += width
	}
	return nil
}

// DirtyRegions returns the rectangles changed since the last Flush.
func (scr *Screen) DirtyRegions() []image.Rectangle {
	return scr.dirty.Regions()
}

// Flush hands the dirty regions to a backend and clears them.
func (scr *Screen) Flush(backend gfx.Backend, buffer []byte, w, h int) error {
	for _, r := range scr.dirty.Regions() {
		r = r.Intersect(image.Rect(0, 0, w, h))
		if r.Empty() {
			continue
		}
		region := make([]byte, r.Dx()*r.Dy()*4)
		for row := 0; row < r.Dy(); row++ {
			src := ((r.Min.Y+row)*w + r.Min.X) * 4
			copy(region[row*r.Dx()*4:(row+1)*r.Dx()*4], buffer[src:src+r.Dx()*4])
		}
		if err := backend.BlitRegion(region, r.Min.X, r.Min.Y, r.Dx(), r.Dy()); err != nil {
			return err
		}
	}
	scr.dirty.Clear()
	return backend.Flush()
}
