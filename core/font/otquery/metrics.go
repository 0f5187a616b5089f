package otquery

import (
	"github.com/npillmayer/celltype/core"
	"github.com/npillmayer/celltype/core/font/ot"
)

// FontMetrics collects the global metrics of a font, in font units.
// Descent is negative for fonts following the OpenType recommendation.
type FontMetrics struct {
	Ascent              int16
	Descent             int16
	LineGap             int16
	LineHeight          int32 // ascent − descent + line gap
	UnderlinePos        int16
	UnderlineThickness  int16
	StrikeoutPos        int16
	StrikeoutThickness  int16
}

// UnitsPerEm reads the em-square resolution from the font's head table.
func UnitsPerEm(otf *ot.Font) (uint16, error) {
	if otf == nil {
		return 0, core.Error(core.EINVALID, "no font given")
	}
	t := otf.Table(ot.T("head"))
	if t == nil {
		return 0, core.Error(core.EINVALID, "font has no head table")
	}
	head := t.Base().AsHead()
	if head == nil || head.UnitsPerEm == 0 {
		return 0, core.Error(core.EINVALID, "font has corrupt head table")
	}
	return head.UnitsPerEm, nil
}

// Metrics reads the global font metrics. The vertical metrics come from
// the hhea table; decoration metrics from post and OS/2, with zero
// values where those tables are absent.
func Metrics(otf *ot.Font) (FontMetrics, error) {
	m := FontMetrics{}
	if otf == nil {
		return m, core.Error(core.EINVALID, "no font given")
	}
	t := otf.Table(ot.T("hhea"))
	if t == nil {
		return m, core.Error(core.EINVALID, "font has no hhea table")
	}
	hhea := t.Base().AsHHea()
	m.Ascent = hhea.Ascent
	m.Descent = hhea.Descent
	m.LineGap = hhea.LineGap
	m.LineHeight = hhea.LineHeight()
	if post := otf.Table(ot.T("post")); post != nil {
		b := post.Binary()
		if len(b) >= 12 {
			m.UnderlinePos = int16(uint16(b[8])<<8 | uint16(b[9]))
			m.UnderlineThickness = int16(uint16(b[10])<<8 | uint16(b[11]))
		}
	}
	if os2 := otf.Table(ot.T("OS/2")); os2 != nil {
		b := os2.Binary()
		if len(b) >= 30 {
			m.StrikeoutThickness = int16(uint16(b[26])<<8 | uint16(b[27]))
			m.StrikeoutPos = int16(uint16(b[28])<<8 | uint16(b[29]))
		}
	}
	tracer().Debugf("font metrics: ascent=%d descent=%d line-gap=%d",
		m.Ascent, m.Descent, m.LineGap)
	return m, nil
}

// GlyphMetricsInfo holds metrics for a single glyph, in font units.
type GlyphMetricsInfo struct {
	Advance int32
	LSB     int16 // left side bearing
}

// GlyphMetrics reads the horizontal metrics of a glyph.
func GlyphMetrics(otf *ot.Font, gid ot.GlyphIndex) GlyphMetricsInfo {
	if otf == nil {
		return GlyphMetricsInfo{}
	}
	t := otf.Table(ot.T("hmtx"))
	if t == nil {
		return GlyphMetricsInfo{}
	}
	hmtx := t.Base().AsHMtx()
	if hmtx == nil {
		return GlyphMetricsInfo{}
	}
	adv, lsb := hmtx.Metrics(gid)
	return GlyphMetricsInfo{Advance: int32(adv), LSB: lsb}
}
