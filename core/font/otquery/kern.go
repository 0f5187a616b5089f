package otquery

import (
	"github.com/npillmayer/celltype/core/font/ot"
)

// Kerning returns the kerning value for a pair of glyphs, in font units.
// Fonts without a classic kern table yield 0 for every pair, as do pairs
// not covered by a format-0 sub-table.
func Kerning(otf *ot.Font, left, right ot.GlyphIndex) int16 {
	if otf == nil {
		return 0
	}
	t := otf.Table(ot.T("kern"))
	if t == nil {
		return 0
	}
	kern := t.Base().AsKern()
	if kern == nil {
		return 0
	}
	return kern.Kerning(left, right)
}
