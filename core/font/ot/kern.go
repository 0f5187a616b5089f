package ot

// TrueType and OpenType slightly differ on formats of kern tables: see
// https://developer.apple.com/fonts/TrueType-Reference-Manual/RM06/Chap6kern.html
// and https://docs.microsoft.com/en-us/typography/opentype/spec/kern
//
// We only support kern sub-table format 0, which should be supported on any
// platform. In the real world, fonts usually have just one kern sub-table,
// and older Windows versions cannot handle more than one.

// KernTable gives information about kerning and kern pairs.
// The kerning table contains the values that control the inter-character
// spacing for the glyphs in a font. OpenType fonts containing CFF outlines
// are not supported by the 'kern' table and must use the GPOS layout table.
type KernTable struct {
	TableBase
	headers []kernSubTableHeader
}

type kernSubTableHeader struct {
	offset   int    // start position of this sub-table's kern pairs
	npairs   int    // number of kern pairs
	coverage uint16 // info about type of information contained in this sub-table
}

func newKernTable(tag Tag, b fontBinSegm, offset, size uint32) *KernTable {
	t := &KernTable{}
	t.TableBase = TableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.self = t
	return t
}

func (t *KernTable) Base() *TableBase {
	return &t.TableBase
}

func parseKern(tag Tag, b fontBinSegm, offset, size uint32) (Table, error) {
	if size <= 4 {
		return nil, nil
	}
	var N, suboffset, subheaderlen int
	if version, _ := b.u32(0); version == 0x00010000 {
		tracer().Debugf("font has Apple TTF kern table format")
		n, _ := b.u32(4) // number of kerning tables is uint32
		N, suboffset, subheaderlen = int(n), 8, 16
	} else {
		tracer().Debugf("font has OTF (MS) kern table format")
		n, _ := b.u16(2) // number of kerning tables is uint16
		N, suboffset, subheaderlen = int(n), 4, 14
	}
	t := newKernTable(tag, b, offset, size)
	for i := 0; i < N; i++ {
		if suboffset+subheaderlen > int(size) {
			return nil, errFontFormat("kern table format")
		}
		length := int(u16(b[suboffset+2:]))
		coverage := u16(b[suboffset+4:])
		if format := coverage >> 8; format != 0 {
			tracer().Infof("kern sub-table format %d not supported, ignoring sub-table", format)
			suboffset += length
			continue // we only support format 0 kerning tables; skip this one
		}
		npairs := int(u16(b[suboffset+subheaderlen-8:]))
		h := kernSubTableHeader{
			offset:   suboffset + subheaderlen,
			npairs:   npairs,
			coverage: coverage,
		}
		// For some fonts, size calculation of kern sub-tables is off; see
		// https://github.com/fonttools/fonttools/issues/314
		// Testable with the Calibri font.
		if h.offset+h.npairs*6 > int(size) {
			return nil, errFontFormat("kern sub-table size exceeds kern table bounds")
		}
		t.headers = append(t.headers, h)
		if length <= 0 {
			break
		}
		suboffset += length
	}
	tracer().Debugf("table kern has %d sub-table(s)", len(t.headers))
	return t, nil
}

// KernSubTableInfo contains header information for a kerning sub-table.
type KernSubTableInfo struct {
	IsHorizontal  bool // kern data may be horizontal or vertical
	IsMinimum     bool // if false, table has kerning values, otherwise has minimum values
	IsCrossStream bool // if true, kerning is perpendicular to the flow of the text
	PairCount     int
}

// SubTableInfo returns information about a kerning sub-table. n is 0…N-1.
func (t *KernTable) SubTableInfo(n int) KernSubTableInfo {
	info := KernSubTableInfo{}
	if n >= 0 && n < len(t.headers) {
		h := t.headers[n]
		info.IsHorizontal = h.coverage&0x8000 == 0
		info.IsMinimum = h.coverage&0x4000 > 0
		info.IsCrossStream = h.coverage&0x2000 > 0
		info.PairCount = h.npairs
	}
	return info
}

// Kerning returns the kern value for a pair of glyphs, in font units.
// Pairs not present in any format-0 sub-table yield 0, as does a missing
// kern table (the caller treats a nil table the same way).
func (t *KernTable) Kerning(left, right GlyphIndex) int16 {
	key := uint32(left)<<16 | uint32(right)
	for _, h := range t.headers {
		// binary search over the sorted kern pairs
		lo, hi := 0, h.npairs
		for lo < hi {
			mid := lo + (hi-lo)/2
			rec, err := t.data.view(h.offset+mid*6, 6)
			if err != nil {
				return 0
			}
			pair := u32(rec)
			if pair < key {
				lo = mid + 1
			} else if pair > key {
				hi = mid
			} else {
				return i16(rec[4:])
			}
		}
	}
	return 0
}
