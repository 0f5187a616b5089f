package otquery

import (
	"github.com/npillmayer/celltype/core/font/ot"
)

// NOTDEF is the glyph index of the “missing character” glyph.
const NOTDEF = ot.GlyphIndex(0)

// GlyphIndex returns the glyph index for a code-point, or NOTDEF if the
// font does not contain the code-point. Lookup errors degrade to NOTDEF;
// shaping must not fail on text input.
func GlyphIndex(otf *ot.Font, r rune) ot.GlyphIndex {
	if otf == nil {
		return NOTDEF
	}
	gid, err := otf.GlyphIndex(r)
	if err != nil {
		tracer().Debugf("glyph lookup for %#U: %v", r, err)
		return NOTDEF
	}
	return gid
}

// Outline returns the contours of a glyph, or nil for fonts without
// TrueType outlines (or for blank glyphs).
func Outline(otf *ot.Font, gid ot.GlyphIndex) []ot.Contour {
	if otf == nil {
		return nil
	}
	t := otf.Table(ot.T("glyf"))
	if t == nil {
		return nil
	}
	glyf := t.Base().AsGlyf()
	if glyf == nil {
		return nil
	}
	contours, err := glyf.Outline(gid)
	if err != nil {
		tracer().Debugf("outline of glyph %d: %v", gid, err)
		return nil
	}
	return contours
}

// FontName returns the full font name recorded in the font's naming
// table, or the family name if the full name is missing.
func FontName(otf *ot.Font) string {
	if otf == nil {
		return ""
	}
	t := otf.Table(ot.T("name"))
	if t == nil {
		return ""
	}
	name := t.Base().AsName()
	if name == nil {
		return ""
	}
	if full := name.Name(ot.NameFullFontName); full != "" {
		return full
	}
	return name.Name(ot.NameFontFamily)
}
