package glyphing

import (
	"fmt"

	"github.com/npillmayer/celltype/core/font"
	"github.com/npillmayer/celltype/core/font/ot"
	"github.com/npillmayer/celltype/engine/uniprop"
	"golang.org/x/text/language"
)

// Direction is the direction to set text in.
type Direction int

// Direction to set text in.
//
//go:generate stringer -type=Direction
const (
	LeftToRight Direction = iota
	RightToLeft
)

// GlyphInfo identifies one shaped glyph. ClusterID is the byte offset of
// the glyph's first code-point in the source string; it is monotonically
// non-decreasing in logical order and stable across substitution: a
// ligature inherits the lowest cluster id of its constituents.
type GlyphInfo struct {
	CodePoint rune          // code-point of first rune to produce this glyph
	GID       ot.GlyphIndex // glyph index within font
	ClusterID int           // position of code-point(s) for this glyph in original string
	Mask      uint32        // feature mask applied during shaping
}

// GlyphPosition places one shaped glyph, in design units at the shaping
// size. Offsets position the glyph relative to its anchor dot.
type GlyphPosition struct {
	XAdvance float64
	YAdvance float64
	XOffset  float64
	YOffset  float64
}

// ShapedGlyph pairs a glyph info with its position.
type ShapedGlyph struct {
	GlyphInfo
	GlyphPosition
}

func (g ShapedGlyph) String() string {
	return fmt.Sprintf("(GID=%d, cluster=%d, advance=%.2f)", g.GID, g.ClusterID, g.XAdvance)
}

// GlyphSequence contains a sequence of shaped glyphs. Glyph infos and
// positions appear in visual order across runs, but cluster ids
// preserve the logical order within each run.
type GlyphSequence struct {
	Glyphs  []ShapedGlyph // resulting sequence of glyphs
	W, H, D float64       // width, height, depth of bounding box in design units
}

// BoundingBox returns the dimensions of the shaped sequence.
func (seq GlyphSequence) BoundingBox() (w float64, h float64, d float64) {
	return seq.W, seq.H, seq.D
}

// A Shaper creates a sequence of glyphs from a sequence of Unicode
// code-points. Glyphs are taken from a font, given in a specific
// point-size.
type Shaper interface {
	Shape(text string, params Params) (GlyphSequence, error)
}

// Params collects shaping parameters.
type Params struct {
	Font          *font.TypeCase        // use a font at a given point-size
	Direction     Direction             // writing direction
	Language      language.Tag          // BCP 47 language tag
	Features      []FeatureRange        // OpenType features to apply
	EastAsianMode uniprop.EastAsianMode // resolution of ambiguous widths
}

// FeatureRange tells a shaper to turn a certain OpenType feature on or
// off for a run of code-points. Start/End of (0, −1) covers all of the
// text.
type FeatureRange struct {
	Feature    ot.Tag // 4-letter feature tag
	On         bool   // turn it on or off?
	Start, End int    // position of code-points to apply feature for
}

// Feature tags known to the shaper.
var (
	FeatureKern = ot.T("kern")
	FeatureLiga = ot.T("liga")
	FeatureClig = ot.T("clig")
)

// WholeText covers all of a text with a feature setting.
func WholeText(feature ot.Tag, on bool) FeatureRange {
	return FeatureRange{Feature: feature, On: on, Start: 0, End: -1}
}
