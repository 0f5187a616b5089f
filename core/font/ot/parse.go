package ot

import (
	"bytes"
	"encoding/binary"

	"github.com/npillmayer/celltype/core"
)

// Code comments often will cite passages from the OpenType specification
// version 1.8.4; see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// Parse parses an OpenType font from a byte slice.
// An ot.Font needs ongoing access to the font's byte-data after the Parse
// function returns. Its elements are assumed immutable while the ot.Font
// remains in use.
//
// Unknown sfnt magic numbers are rejected as unsupported; a table
// directory pointing outside of the data is rejected as invalid.
func Parse(font []byte) (*Font, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	r := bytes.NewReader(font)
	h := FontHeader{}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return nil, errFontFormat("offset table")
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())
	if !(h.FontType == 0x4f54544f || // OTTO
		h.FontType == 0x00010000 || // TrueType
		h.FontType == 0x74727565) { // true
		return nil, core.Error(core.EUNSUPPORT, "font type not supported: %x", h.FontType)
	}
	otf := &Font{Header: &h, data: fontBinSegm(font), tables: make(map[Tag]Table)}
	src := fontBinSegm(font)
	// "The Offset Table is followed immediately by the Table Record entries",
	// 16 bytes each.
	buf, err := src.view(12, 16*int(h.TableCount))
	if err != nil {
		return nil, errFontFormat("table record entries")
	}
	for b := buf; len(b) > 0; b = b[16:] {
		tag := MakeTag(b)
		off, size := u32(b[8:12]), u32(b[12:16])
		if uint64(off)+uint64(size) > uint64(len(font)) {
			return nil, errFontFormat("table " + tag.String() + " outside of font data")
		}
		otf.tables[tag], err = parseTable(tag, src[off:off+size], off, size)
		if err != nil {
			return nil, err
		}
	}
	if err := checkConsistency(otf); err != nil {
		return nil, err
	}
	return otf, nil
}

func parseTable(t Tag, b fontBinSegm, offset, size uint32) (Table, error) {
	switch t {
	case T("cmap"):
		return parseCMap(t, b, offset, size)
	case T("head"):
		return parseHead(t, b, offset, size)
	case T("glyf"):
		return parseGlyf(t, b, offset, size)
	case T("hhea"):
		return parseHHea(t, b, offset, size)
	case T("hmtx"):
		return parseHMtx(t, b, offset, size)
	case T("kern"):
		return parseKern(t, b, offset, size)
	case T("loca"):
		return parseLoca(t, b, offset, size)
	case T("maxp"):
		return parseMaxP(t, b, offset, size)
	case T("name"):
		return parseName(t, b, offset, size)
	}
	tracer().Debugf("font contains table (%s), will not be interpreted", t)
	return newTable(t, b, offset, size), nil
}

// checkConsistency wires up cross-table dependencies: the loca format
// flag lives in head, the hmtx entry count in hhea, and the cmap lookup
// is selected from the decoded subtables. A font without a usable cmap
// is still a valid container; glyph lookups will report the error.
func checkConsistency(otf *Font) error {
	head := asHead(otf.Table(T("head")))
	if head != nil {
		if loca := asLoca(otf.Table(T("loca"))); loca != nil {
			if head.IndexToLocFormat == 1 {
				loca.short = false
				loca.loca = longLocaVersion
			}
		}
	}
	if hhea := asHHea(otf.Table(T("hhea"))); hhea != nil {
		if hmtx := asHMtx(otf.Table(T("hmtx"))); hmtx != nil {
			hmtx.NumberOfHMetrics = hhea.NumberOfHMetrics
		}
	}
	if glyf := asGlyf(otf.Table(T("glyf"))); glyf != nil {
		glyf.loca = asLoca(otf.Table(T("loca")))
		if maxp := asMaxP(otf.Table(T("maxp"))); maxp != nil {
			glyf.numGlyphs = maxp.NumGlyphs
		}
	}
	if cmap := asCMap(otf.Table(T("cmap"))); cmap != nil {
		otf.glyphIndex = cmap.lookup
	}
	return nil
}

func asHead(t Table) *HeadTable {
	if t == nil {
		return nil
	}
	return t.Base().AsHead()
}

func asHHea(t Table) *HHeaTable {
	if t == nil {
		return nil
	}
	return t.Base().AsHHea()
}

func asHMtx(t Table) *HMtxTable {
	if t == nil {
		return nil
	}
	return t.Base().AsHMtx()
}

func asMaxP(t Table) *MaxPTable {
	if t == nil {
		return nil
	}
	return t.Base().AsMaxP()
}

func asLoca(t Table) *LocaTable {
	if t == nil {
		return nil
	}
	return t.Base().AsLoca()
}

func asGlyf(t Table) *GlyfTable {
	if t == nil {
		return nil
	}
	return t.Base().AsGlyf()
}

func asCMap(t Table) *CMapTable {
	if t == nil {
		return nil
	}
	return t.Base().AsCMap()
}

// --- Head table ------------------------------------------------------------

func parseHead(tag Tag, b fontBinSegm, offset, size uint32) (Table, error) {
	if size < 54 {
		return nil, errFontFormat("size of head table")
	}
	t := newHeadTable(tag, b, offset, size)
	t.Flags, _ = b.u16(16)      // flags
	t.UnitsPerEm, _ = b.u16(18) // units per em
	// IndexToLocFormat is needed to interpret the loca table:
	// 0 for short offsets, 1 for long
	t.IndexToLocFormat, _ = b.u16(50)
	return t, nil
}

// --- HHea table ------------------------------------------------------------

// The horizontal header table contains the typographic ascent, descent and
// line gap, plus the entry count for the horizontal metrics table.
func parseHHea(tag Tag, b fontBinSegm, offset, size uint32) (Table, error) {
	if size < 36 {
		return nil, errFontFormat("hhea table incomplete")
	}
	t := newHHeaTable(tag, b, offset, size)
	t.Ascent, _ = b.i16(4)
	t.Descent, _ = b.i16(6)
	t.LineGap, _ = b.i16(8)
	n, _ := b.u16(34)
	t.NumberOfHMetrics = int(n)
	return t, nil
}

// --- HMtx table ------------------------------------------------------------

// Fonts that lack an 'hhea' table must not have an 'hmtx' table. The
// NumberOfHMetrics field is copied over from hhea after all tables have
// been read.
func parseHMtx(tag Tag, b fontBinSegm, offset, size uint32) (Table, error) {
	if size == 0 {
		return nil, nil
	}
	return newHMtxTable(tag, b, offset, size), nil
}

// --- MaxP table ------------------------------------------------------------

// The 'maxp' table establishes the memory requirements for the font. We read
// the glyph count only.
func parseMaxP(tag Tag, b fontBinSegm, offset, size uint32) (Table, error) {
	if size < 6 {
		return nil, errFontFormat("size of maxp table")
	}
	t := newMaxPTable(tag, b, offset, size)
	n, _ := b.u16(4)
	t.NumGlyphs = int(n)
	return t, nil
}

// --- Loca table ------------------------------------------------------------

// The size of entries in the 'loca' table depends on the value of the
// indexToLocFormat field of the 'head' table, which is applied after all
// tables have been read.
func parseLoca(tag Tag, b fontBinSegm, offset, size uint32) (Table, error) {
	return newLocaTable(tag, b, offset, size), nil
}
