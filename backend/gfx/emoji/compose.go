package emoji

import (
	"hash/fnv"
	"image"
	"image/draw"
	"sync"

	"github.com/npillmayer/celltype/backend/gfx"
	"github.com/npillmayer/celltype/core/font"
	"github.com/npillmayer/celltype/core/font/ot"
	"github.com/npillmayer/celltype/core/font/otquery"
	"github.com/npillmayer/celltype/engine/uniprop"
	xdraw "golang.org/x/image/draw"
)

// Skin-tone tinting blends a base tile's non-dark pixels toward the
// tone color at a fixed ratio.
const (
	tintBaseWeight = 60  // of 255, weight of the original pixel
	tintToneWeight = 195 // of 255, weight of the tone color
)

// darkThreshold separates outline pixels (kept) from fill pixels
// (tinted).
const darkThreshold = 0x30

// Skin tone palette U+1F3FB..U+1F3FF.
var toneColors = [5]gfx.Color{
	0xF7DECEFF, // light
	0xF3D2A2FF, // medium-light
	0xD5AB88FF, // medium
	0xAF7E57FF, // medium-dark
	0x7C533AFF, // dark
}

// Composer builds color tiles for emoji clusters. Composition layers
// are owned only for the duration of a composition; finished tiles are
// cached by sequence hash.
type Composer struct {
	mutex     sync.Mutex
	cache     map[uint64]*image.RGBA
	ForceText bool // render all sequences in monochrome text style
}

// NewComposer creates an emoji composer.
func NewComposer() *Composer {
	return &Composer{cache: make(map[uint64]*image.RGBA)}
}

func sequenceHash(seq []rune, size int) uint64 {
	h := fnv.New64a()
	h.Write([]byte(string(seq)))
	h.Write([]byte{byte(size), byte(size >> 8)})
	return h.Sum64()
}

// Compose renders an emoji cluster into a single RGBA tile of the given
// cell height. Component tiles are stacked left to right with baseline
// alignment and porter-duff over; the resulting width is the sum of the
// component widths.
func (comp *Composer) Compose(seq []rune, typecase *font.TypeCase, cellH int) *image.RGBA {
	if len(seq) == 0 || cellH <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	key := sequenceHash(seq, cellH)
	comp.mutex.Lock()
	if tile, ok := comp.cache[key]; ok {
		comp.mutex.Unlock()
		return tile
	}
	comp.mutex.Unlock()
	//
	tile := comp.compose(seq, typecase, cellH)
	comp.mutex.Lock()
	comp.cache[key] = tile
	comp.mutex.Unlock()
	return tile
}

func (comp *Composer) compose(seq []rune, typecase *font.TypeCase, cellH int) *image.RGBA {
	class := Classify(seq)
	tracer().Debugf("composing emoji sequence of class %d, %d code-points", class, len(seq))
	if comp.ForceText || forcedText(seq) {
		return comp.stack(comp.monochromeComponents(seq, typecase, cellH), cellH)
	}
	switch class {
	case ClassFlag:
		return comp.stack([]*image.RGBA{
			comp.component(seq[0], typecase, cellH),
			comp.component(seq[1], typecase, cellH),
		}, cellH)
	case ClassKeycap:
		return comp.keycap(seq[0], typecase, cellH)
	case ClassSkinTone:
		return comp.skinTone(seq, typecase, cellH)
	case ClassZWJ:
		return comp.zwj(seq, typecase, cellH)
	case ClassTag:
		// tag sequences render their base; the tags select a variant the
		// font would have to provide
		return comp.compose(seq[:1], typecase, cellH)
	}
	return comp.stack([]*image.RGBA{comp.component(seq[0], typecase, cellH)}, cellH)
}

// component flattens a single code-point to an RGBA tile. The font's
// color tables are probed once; fonts without decodable color glyphs
// render monochrome.
func (comp *Composer) component(r rune, typecase *font.TypeCase, cellH int) *image.RGBA {
	otf := typecase.ScalableFontParent().SFNT
	if hasColorTables(otf) {
		// color glyph formats are font-specific bitmaps; outline
		// fallback keeps the pipeline going
		tracer().Debugf("font has color tables, bitmap decoding not wired for %#U", r)
	}
	return comp.monochrome(r, typecase, cellH)
}

func hasColorTables(otf *ot.Font) bool {
	if otf == nil {
		return false
	}
	for _, tag := range []string{"COLR", "CBDT", "sbix"} {
		if otf.Table(ot.T(tag)) != nil {
			return true
		}
	}
	return false
}

// monochrome renders a code-point's outline as an opaque dark tile.
func (comp *Composer) monochrome(r rune, typecase *font.TypeCase, cellH int) *image.RGBA {
	w := cellH // emoji components are square
	tile := image.NewRGBA(image.Rect(0, 0, w, cellH))
	otf := typecase.ScalableFontParent().SFNT
	gid := otquery.GlyphIndex(otf, r)
	contours := otquery.Outline(otf, gid)
	if len(contours) == 0 {
		return tile
	}
	minX, minY, maxX, maxY := gfx.OutlineBounds(contours)
	if maxX <= minX || maxY <= minY {
		return tile
	}
	// fit the outline into the tile
	scaleX := float64(w-2) / float64(maxX-minX)
	scaleY := float64(cellH-2) / float64(maxY-minY)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	dx := 1 - float64(minX)*scale
	dy := float64(cellH-1) + float64(minY)*scale
	coverage := gfx.RasterizeOutline(contours, scale, w, cellH, dx, dy)
	for y := 0; y < cellH; y++ {
		for x := 0; x < w; x++ {
			a := coverage.AlphaAt(x, y).A
			if a == 0 {
				continue
			}
			off := tile.PixOffset(x, y)
			tile.Pix[off+0] = 0x20
			tile.Pix[off+1] = 0x20
			tile.Pix[off+2] = 0x20
			tile.Pix[off+3] = a
		}
	}
	return tile
}

func (comp *Composer) monochromeComponents(seq []rune, typecase *font.TypeCase, cellH int) []*image.RGBA {
	var tiles []*image.RGBA
	for _, r := range seq {
		switch uniprop.EmojiPropertyOf(r) {
		case uniprop.EmojiZWJ, uniprop.EmojiTag:
			continue
		}
		if r == uniprop.VS15 || r == uniprop.VS16 {
			continue
		}
		tiles = append(tiles, comp.monochrome(r, typecase, cellH))
	}
	return tiles
}

// keycap renders the base character boxed by a keycap frame.
func (comp *Composer) keycap(base rune, typecase *font.TypeCase, cellH int) *image.RGBA {
	tile := comp.monochrome(base, typecase, cellH)
	b := tile.Bounds()
	frame := gfx.Color(0x404040FF)
	for x := b.Min.X; x < b.Max.X; x++ {
		setPixel(tile, x, b.Min.Y, frame)
		setPixel(tile, x, b.Max.Y-1, frame)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		setPixel(tile, b.Min.X, y, frame)
		setPixel(tile, b.Max.X-1, y, frame)
	}
	return tile
}

// skinTone composes base emoji plus modifier: the base tile's non-dark
// pixels are blended toward the tone color.
func (comp *Composer) skinTone(seq []rune, typecase *font.TypeCase, cellH int) *image.RGBA {
	var baseSeq []rune
	tone := gfx.Color(0)
	for _, r := range seq {
		if uniprop.EmojiPropertyOf(r) == uniprop.EmojiModifier {
			tone = toneColors[r-0x1F3FB]
			continue
		}
		baseSeq = append(baseSeq, r)
	}
	tile := comp.compose(baseSeq, typecase, cellH)
	if tone == 0 {
		return tile
	}
	tinted := image.NewRGBA(tile.Bounds())
	copy(tinted.Pix, tile.Pix)
	tintTile(tinted, tone)
	return tinted
}

// tintTile blends non-dark pixels toward the tone color.
func tintTile(tile *image.RGBA, tone gfx.Color) {
	for i := 0; i < len(tile.Pix); i += 4 {
		if tile.Pix[i+3] == 0 {
			continue
		}
		if tile.Pix[i] <= darkThreshold && tile.Pix[i+1] <= darkThreshold &&
			tile.Pix[i+2] <= darkThreshold {
			continue // outline pixels keep their color
		}
		tile.Pix[i+0] = tintChannel(tile.Pix[i+0], tone.R())
		tile.Pix[i+1] = tintChannel(tile.Pix[i+1], tone.G())
		tile.Pix[i+2] = tintChannel(tile.Pix[i+2], tone.B())
	}
}

func tintChannel(base, tone uint8) uint8 {
	return uint8((uint32(base)*tintBaseWeight + uint32(tone)*tintToneWeight) / 255)
}

// zwj joins the components between zero-width joiners.
func (comp *Composer) zwj(seq []rune, typecase *font.TypeCase, cellH int) *image.RGBA {
	var tiles []*image.RGBA
	var part []rune
	flush := func() {
		if len(part) > 0 {
			tiles = append(tiles, comp.compose(part, typecase, cellH))
			part = nil
		}
	}
	for _, r := range seq {
		if uniprop.EmojiPropertyOf(r) == uniprop.EmojiZWJ {
			flush()
			continue
		}
		part = append(part, r)
	}
	flush()
	return comp.stack(tiles, cellH)
}

// stack places tiles left to right with baseline alignment and
// porter-duff over. The canvas width is the sum of the tile widths, its
// height the maximum tile height; shorter tiles are scaled up.
func (comp *Composer) stack(tiles []*image.RGBA, cellH int) *image.RGBA {
	if len(tiles) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	width, height := 0, 0
	for _, tile := range tiles {
		width += tile.Bounds().Dx()
		if h := tile.Bounds().Dy(); h > height {
			height = h
		}
	}
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	x := 0
	for _, tile := range tiles {
		b := tile.Bounds()
		if b.Dy() < height && b.Dy() > 0 {
			scaled := image.NewRGBA(image.Rect(0, 0, b.Dx(), height))
			xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), tile, b, xdraw.Over, nil)
			tile = scaled
			b = tile.Bounds()
		}
		target := image.Rect(x, height-b.Dy(), x+b.Dx(), height)
		draw.Draw(canvas, target, tile, b.Min, draw.Over)
		x += b.Dx()
	}
	return canvas
}

func setPixel(tile *image.RGBA, x, y int, c gfx.Color) {
	if !(image.Point{x, y}).In(tile.Bounds()) {
		return
	}
	off := tile.PixOffset(x, y)
	tile.Pix[off+0] = c.R()
	tile.Pix[off+1] = c.G()
	tile.Pix[off+2] = c.B()
	tile.Pix[off+3] = c.A()
}
