package ot

// The cmap table defines the mapping of character codes to a default glyph
// index. Different subtables may be defined that each contain mappings for
// different character encoding schemes.
//
// From the spec: “If a font includes Unicode subtables for both 16-bit
// encoding (typically, format 4) and also 32-bit encoding (formats 10 or
// 12), then the characters supported by the subtable for 32-bit encoding
// should be a superset of the characters supported by the subtable for
// 16-bit encoding, and the 32-bit encoding should be used by applications.”
//
// We support the following platform/encoding/format combinations:
//   0 (Unicode)  3    4   Unicode BMP
//   0 (Unicode)  4    12  Unicode full
//   3 (Win)      1    4   Unicode BMP
//   3 (Win)      1    6   trimmed table mapping
//   3 (Win)      10   12  Unicode full

// CMapTable represents an OpenType cmap table, i.e. the table to receive
// glyphs from code-points.
type CMapTable struct {
	TableBase
	numTables int
	lookup    glyphIndexFunc
}

func newCMapTable(tag Tag, b fontBinSegm, offset, size uint32) *CMapTable {
	t := &CMapTable{}
	t.TableBase = TableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.self = t
	return t
}

func (t *CMapTable) Base() *TableBase {
	return &t.TableBase
}

// Platform IDs and Platform Specific IDs as per
// https://www.microsoft.com/typography/otspec/name.htm
const (
	pidUnicode   = 0
	pidMacintosh = 1
	pidWindows   = 3

	psidUnicode2BMPOnly        = 3
	psidUnicode2FullRepertoire = 4
	psidWindowsSymbol          = 0
	psidWindowsUCS2            = 1
	psidWindowsUCS4            = 10
)

// This value is arbitrary, but defends against parsing malicious font
// files causing excessive memory allocations. For reference, Adobe's
// SourceHanSansSC-Regular.otf has 65535 glyphs and:
//	- its format-4  cmap table has  1581 segments.
//	- its format-12 cmap table has 16498 segments.
const maxCMapSegments = 20000

type glyphIndexFunc func(otf *Font, r rune) (GlyphIndex, error)

// rank orders candidate subtables; a higher rank wins. Windows Unicode
// subtables are preferred, full-repertoire over BMP-only.
func cmapSubtableRank(pid, psid uint16) int {
	switch pid {
	case pidWindows:
		switch psid {
		case psidWindowsUCS4:
			return 5
		case psidWindowsUCS2:
			return 4
		case psidWindowsSymbol:
			return 1
		}
	case pidUnicode:
		switch psid {
		case psidUnicode2FullRepertoire:
			return 3
		case psidUnicode2BMPOnly:
			return 2
		}
	}
	return 0
}

func parseCMap(tag Tag, b fontBinSegm, offset, size uint32) (Table, error) {
	const headerSize, entrySize = 4, 8
	t := newCMapTable(tag, b, offset, size)
	n, err := b.u16(2)
	if err != nil {
		return nil, errFontFormat("size of cmap table")
	}
	t.numTables = int(n)
	if size < headerSize+entrySize*uint32(t.numTables) {
		return nil, errFontFormat("size of cmap table")
	}
	bestRank, bestOffset := 0, uint32(0)
	for i := 0; i < t.numTables; i++ {
		rec, _ := b.view(headerSize+entrySize*i, entrySize)
		pid, psid := u16(rec), u16(rec[2:])
		if rank := cmapSubtableRank(pid, psid); rank > bestRank {
			subOffset := u32(rec[4:])
			if subOffset+2 > size {
				continue
			}
			bestRank, bestOffset = rank, subOffset
		}
	}
	if bestRank == 0 {
		tracer().Infof("font has no usable cmap subtable")
		return t, nil
	}
	format, _ := b.u16(int(bestOffset))
	switch format {
	case 4:
		t.lookup, err = makeGlyphIndexFormat4(b, bestOffset)
	case 6:
		t.lookup, err = makeGlyphIndexFormat6(b, bestOffset)
	case 12:
		t.lookup, err = makeGlyphIndexFormat12(b, bestOffset)
	default:
		tracer().Infof("cmap subtable format %d not supported", format)
		return t, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// --- Format 4: segment mapping to delta values ------------------------------

// This is the standard character-to-glyph-index mapping subtable for fonts
// that support only Unicode Basic Multilingual Plane characters (U+0000 to
// U+FFFF). Four parallel arrays describe the segments; a variable-length
// array of glyph IDs follows.
type cmapEntry16 struct {
	end, start, delta, offset uint16
}

func makeGlyphIndexFormat4(b fontBinSegm, offset uint32) (glyphIndexFunc, error) {
	const headerSize = 14
	sub, err := b.view(int(offset), headerSize)
	if err != nil {
		return nil, errFontFormat("cmap subtable bounds overflow")
	}
	length := uint32(u16(sub[2:]))
	if offset+length > uint32(b.Size()) {
		return nil, errFontFormat("cmap subtable bounds overflow")
	}
	segCount := u16(sub[6:])
	if segCount&1 != 0 {
		return nil, errFontFormat("cmap table format, illegal segment count")
	}
	segCount /= 2
	if segCount > maxCMapSegments {
		return nil, errFontFormat("too many cmap segments")
	}
	eLength := 8*int(segCount) + 2
	segmentsData, err := b.view(int(offset)+headerSize, eLength)
	if err != nil {
		return nil, errFontFormat("cmap internal structure")
	}
	entries := make([]cmapEntry16, segCount)
	for i := range entries {
		entries[i] = cmapEntry16{
			end:    u16(segmentsData[0*len(entries)+0+2*i:]),
			start:  u16(segmentsData[2*len(entries)+2+2*i:]),
			delta:  u16(segmentsData[4*len(entries)+2+2*i:]),
			offset: u16(segmentsData[6*len(entries)+2+2*i:]),
		}
	}
	return func(otf *Font, r rune) (GlyphIndex, error) {
		if uint32(r) > 0xffff {
			return 0, nil
		}
		c := uint16(r)
		for i, j := 0, len(entries); i < j; {
			h := i + (j-i)/2
			entry := &entries[h]
			if c < entry.start {
				j = h
			} else if entry.end < c {
				i = h + 1
			} else if entry.offset == 0 {
				return GlyphIndex(c + entry.delta), nil
			} else {
				// The idRangeOffset trick: the offset is relative to the
				// position of the idRangeOffset word itself.
				idRangeOffsetPos := offset + headerSize + uint32(6*len(entries)) + 2 + uint32(2*h)
				pos := idRangeOffsetPos + uint32(entry.offset) + 2*uint32(c-entry.start)
				x, err := b.view(int(pos), 2)
				if err != nil {
					return 0, errFontFormat("cmap bounds overflow")
				}
				gid := u16(x)
				if gid == 0 {
					return 0, nil
				}
				return GlyphIndex(gid + entry.delta), nil
			}
		}
		return 0, nil
	}, nil
}

// --- Format 6: trimmed table mapping ----------------------------------------

func makeGlyphIndexFormat6(b fontBinSegm, offset uint32) (glyphIndexFunc, error) {
	const headerSize = 10
	sub, err := b.view(int(offset), headerSize)
	if err != nil {
		return nil, errFontFormat("cmap subtable bounds overflow")
	}
	first := u16(sub[6:])
	count := u16(sub[8:])
	glyphs, err := b.view(int(offset)+headerSize, int(count)*2)
	if err != nil {
		return nil, errFontFormat("cmap subtable bounds overflow")
	}
	entries := make([]GlyphIndex, count)
	for i := range entries {
		entries[i] = GlyphIndex(u16(glyphs[2*i:]))
	}
	return func(otf *Font, r rune) (GlyphIndex, error) {
		if uint32(r) < uint32(first) || uint32(r) >= uint32(first)+uint32(count) {
			return 0, nil
		}
		return entries[uint16(r)-first], nil
	}, nil
}

// --- Format 12: segmented coverage ------------------------------------------

type cmapEntry32 struct {
	start, end, delta uint32
}

func makeGlyphIndexFormat12(b fontBinSegm, offset uint32) (glyphIndexFunc, error) {
	const headerSize = 16
	sub, err := b.view(int(offset), headerSize)
	if err != nil {
		return nil, errFontFormat("cmap subtable bounds overflow")
	}
	length := u32(sub[4:])
	if offset+length > uint32(b.Size()) {
		return nil, errFontFormat("cmap bounds overflow")
	}
	numGroups := u32(sub[12:])
	if numGroups > maxCMapSegments {
		return nil, errFontFormat("too many cmap segments")
	}
	eLength := 12 * numGroups
	if headerSize+eLength != length {
		return nil, errFontFormat("cmap table format")
	}
	buf, err := b.view(int(offset)+headerSize, int(eLength))
	if err != nil {
		return nil, errFontFormat("cmap bounds overflow")
	}
	entries := make([]cmapEntry32, numGroups)
	for i := range entries {
		entries[i] = cmapEntry32{
			start: u32(buf[0+12*i:]),
			end:   u32(buf[4+12*i:]),
			delta: u32(buf[8+12*i:]),
		}
	}
	return func(otf *Font, r rune) (GlyphIndex, error) {
		c := uint32(r)
		for i, j := 0, len(entries); i < j; {
			h := i + (j-i)/2
			entry := &entries[h]
			if c < entry.start {
				j = h
			} else if entry.end < c {
				i = h + 1
			} else {
				return GlyphIndex(c - entry.start + entry.delta), nil
			}
		}
		return 0, nil
	}, nil
}
