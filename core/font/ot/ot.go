package ot

// Font represents the internal structure of an OpenType font.
// It is used to navigate properties of a font for terminal rendering tasks.
// A Font needs ongoing access to the font's byte-data after the Parse
// function returns. Its elements are assumed immutable while the Font
// remains in use, therefore any number of goroutines may decode from it.
type Font struct {
	Header     *FontHeader
	data       fontBinSegm
	tables     map[Tag]Table
	glyphIndex glyphIndexFunc
}

// FontHeader is a directory of the top-level tables in a font. If the font
// file contains only one font, the table directory will begin at byte 0 of
// the file.
type FontHeader struct {
	// Fonts that contain TrueType outlines use the value 0x00010000 or the
	// legacy Apple tag 'true'. Fonts containing CFF data use 'OTTO'.
	FontType   uint32
	TableCount uint16
}

// Table returns the font table for a given tag. If a table for a tag cannot
// be found in the font, nil is returned.
//
// Table tag names are case-sensitive, following the names in the OpenType
// specification.
func (otf *Font) Table(tag Tag) Table {
	if t, ok := otf.tables[tag]; ok {
		return t
	}
	return nil
}

// TableTags returns a list of tags, one for each table contained in the font.
func (otf *Font) TableTags() []Tag {
	var tags = make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	return tags
}

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// GlyphIndex returns the glyph index for the given rune.
//
// It returns (0, nil) if there is no glyph for r. The OpenType
// specification says: “Character codes that do not correspond to any
// glyph in the font should be mapped to glyph index 0. The glyph at this
// location must be a special glyph representing a missing character,
// commonly known as .notdef.”
func (otf *Font) GlyphIndex(codePoint rune) (GlyphIndex, error) {
	if otf.glyphIndex == nil {
		return 0, errFontFormat("font has no usable cmap subtable")
	}
	return otf.glyphIndex(otf, codePoint)
}

// --- Tag -------------------------------------------------------------------

// Tag is defined by the spec as:
// Array of four uint8s (length = 32 bits) used to identify a table,
// design-variation axis, script, language system, feature, or baseline.
type Tag uint32

// MakeTag creates a Tag from 4 bytes.
// If b is shorter or longer, it will be silently extended or cut as
// appropriate.
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as
// appropriate.
func T(t string) Tag {
	if len(t) > 4 {
		t = t[:4]
	}
	t = "    "[:4-len(t)] + t
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Table -----------------------------------------------------------------

// Table represents one of the various OpenType font tables.
//
// Required tables, according to the OpenType specification:
// 'cmap' (character to glyph mapping), 'head' (font header), 'hhea'
// (horizontal header), 'hmtx' (horizontal metrics), 'maxp' (maximum
// profile), 'name' (naming table).
//
// For TrueType outline fonts: 'glyf' (glyph data) and 'loca' (index to
// location). Kerning of the classic kind lives in 'kern'.
//
// Color-emoji tables ('COLR', 'CPAL', 'CBDT', 'CBLC', 'sbix') are kept
// as generic tables; their interpretation is up to the emoji compositor.
type Table interface {
	Offset() uint32   // offset within the font's binary data
	Len() uint32      // byte size of table
	Binary() []byte   // the bytes of this table; should be treated as read-only by clients
	String() string   // 4-letter table name, e.g., "cmap"
	Base() *TableBase // every table we use will be derived from TableBase
}

func newTable(tag Tag, b fontBinSegm, offset, size uint32) *genericTable {
	t := &genericTable{TableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	},
	}
	t.self = t
	return t
}

type genericTable struct {
	TableBase
}

func (t *genericTable) Base() *TableBase {
	return &t.TableBase
}

// TableBase is a common parent for all kinds of OpenType tables.
type TableBase struct {
	data   fontBinSegm // a table is a slice of font data
	name   Tag         // 4-byte name as an integer
	offset uint32      // from offset
	length uint32      // to offset + length
	self   interface{}
}

// Offset returns the offset of this table within the OpenType font.
func (tb *TableBase) Offset() uint32 {
	return tb.offset
}

// Len returns the size of this table in bytes.
func (tb *TableBase) Len() uint32 {
	return tb.length
}

// Binary returns the bytes of this table. Should be treated as read-only by
// clients, as it is a view into the original data.
func (tb *TableBase) Binary() []byte {
	return tb.data
}

// String returns the 4-letter name of a table.
func (tb *TableBase) String() string {
	return tb.name.String()
}

func (tb *TableBase) bytes() fontBinSegm {
	return tb.data
}

// AsCMap returns this table as a cmap table, or nil.
func (tb *TableBase) AsCMap() *CMapTable {
	if tb == nil || tb.self == nil {
		return nil
	}
	if c, ok := tb.self.(*CMapTable); ok {
		return c
	}
	return nil
}

// AsHead returns this table as a head table, or nil.
func (tb *TableBase) AsHead() *HeadTable {
	if tb == nil || tb.self == nil {
		return nil
	}
	if h, ok := tb.self.(*HeadTable); ok {
		return h
	}
	return nil
}

// AsHHea returns this table as a hhea table, or nil.
func (tb *TableBase) AsHHea() *HHeaTable {
	if tb == nil || tb.self == nil {
		return nil
	}
	if h, ok := tb.self.(*HHeaTable); ok {
		return h
	}
	return nil
}

// AsHMtx returns this table as an hmtx table, or nil.
func (tb *TableBase) AsHMtx() *HMtxTable {
	if tb == nil || tb.self == nil {
		return nil
	}
	if h, ok := tb.self.(*HMtxTable); ok {
		return h
	}
	return nil
}

// AsMaxP returns this table as a maxp table, or nil.
func (tb *TableBase) AsMaxP() *MaxPTable {
	if tb == nil || tb.self == nil {
		return nil
	}
	if m, ok := tb.self.(*MaxPTable); ok {
		return m
	}
	return nil
}

// AsLoca returns this table as a loca table, or nil.
func (tb *TableBase) AsLoca() *LocaTable {
	if tb == nil || tb.self == nil {
		return nil
	}
	if l, ok := tb.self.(*LocaTable); ok {
		return l
	}
	return nil
}

// AsGlyf returns this table as a glyf table, or nil.
func (tb *TableBase) AsGlyf() *GlyfTable {
	if tb == nil || tb.self == nil {
		return nil
	}
	if g, ok := tb.self.(*GlyfTable); ok {
		return g
	}
	return nil
}

// AsKern returns this table as a kern table, or nil.
func (tb *TableBase) AsKern() *KernTable {
	if tb == nil || tb.self == nil {
		return nil
	}
	if k, ok := tb.self.(*KernTable); ok {
		return k
	}
	return nil
}

// --- Concrete table implementations ----------------------------------------

// HeadTable gives global information about the font.
type HeadTable struct {
	TableBase
	Flags            uint16
	UnitsPerEm       uint16
	IndexToLocFormat uint16 // needed to read loca table
}

func newHeadTable(tag Tag, b fontBinSegm, offset, size uint32) *HeadTable {
	t := &HeadTable{}
	t.TableBase = TableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.self = t
	return t
}

func (t *HeadTable) Base() *TableBase {
	return &t.TableBase
}

// HHeaTable contains information for horizontal layout.
type HHeaTable struct {
	TableBase
	Ascent           int16 // typographic ascent, in font units
	Descent          int16 // typographic descent (negative), in font units
	LineGap          int16 // typographic line gap, in font units
	NumberOfHMetrics int
}

func newHHeaTable(tag Tag, b fontBinSegm, offset, size uint32) *HHeaTable {
	t := &HHeaTable{}
	t.TableBase = TableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.self = t
	return t
}

// LineHeight returns the default line height: ascent − descent + line gap.
func (t *HHeaTable) LineHeight() int32 {
	return int32(t.Ascent) - int32(t.Descent) + int32(t.LineGap)
}

func (t *HHeaTable) Base() *TableBase {
	return &t.TableBase
}

// HMtxTable contains metric information for the horizontal layout of each of
// the glyphs in the font. Each element in the hMetrics-array has two parts:
// the advance width and the left side bearing. The value NumberOfHMetrics is
// taken from the `hhea` table. In a monospaced font, only one entry is
// required but that entry may not be omitted. Glyphs past NumberOfHMetrics
// are assumed to have the same advance width as the last entry.
type HMtxTable struct {
	TableBase
	NumberOfHMetrics int
}

func newHMtxTable(tag Tag, b fontBinSegm, offset, size uint32) *HMtxTable {
	t := &HMtxTable{}
	t.TableBase = TableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.self = t
	return t
}

// Metrics returns the advance width and left side bearing of a glyph.
func (t *HMtxTable) Metrics(g GlyphIndex) (uint16, int16) {
	if t.NumberOfHMetrics == 0 {
		return 0, 0
	}
	if int(g) < t.NumberOfHMetrics {
		a, _ := t.data.u16(int(g) * 4)
		lsb, _ := t.data.i16(int(g)*4 + 2)
		return a, lsb
	}
	// monospace-style tail: advance of the last full entry, then an
	// array of left side bearings only
	diff := int(g) - t.NumberOfHMetrics
	a, _ := t.data.u16((t.NumberOfHMetrics - 1) * 4)
	lsb, _ := t.data.i16(t.NumberOfHMetrics*4 + diff*2)
	return a, lsb
}

func (t *HMtxTable) Base() *TableBase {
	return &t.TableBase
}

// MaxPTable establishes the memory requirements for this font.
// The 'maxp' table contains a count for the number of glyphs in the font.
type MaxPTable struct {
	TableBase
	NumGlyphs int
}

func newMaxPTable(tag Tag, b fontBinSegm, offset, size uint32) *MaxPTable {
	t := &MaxPTable{}
	t.TableBase = TableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.self = t
	return t
}

func (t *MaxPTable) Base() *TableBase {
	return &t.TableBase
}

// LocaTable stores the offsets to the locations of the glyphs in the font,
// relative to the beginning of the glyph data table.
// By definition, index zero points to the “missing character”.
type LocaTable struct {
	TableBase
	short bool                            // offsets stored as uint16, scaled by 2
	loca  func(t *LocaTable, n int) uint32 // returns glyph location for glyph n
}

func newLocaTable(tag Tag, b fontBinSegm, offset, size uint32) *LocaTable {
	t := &LocaTable{}
	t.TableBase = TableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.short = true
	t.loca = shortLocaVersion // may get changed by font consistency check
	t.self = t
	return t
}

// EntryCount returns the number of offsets stored in the loca table
// (number of glyphs + 1).
func (t *LocaTable) EntryCount() int {
	if t.short {
		return len(t.data) / 2
	}
	return len(t.data) / 4
}

func shortLocaVersion(t *LocaTable, n int) uint32 {
	loc, err := t.data.u16(n * 2)
	if err != nil {
		return 0
	}
	return uint32(loc) * 2
}

func longLocaVersion(t *LocaTable, n int) uint32 {
	loc, err := t.data.u32(n * 4)
	if err != nil {
		return 0
	}
	return loc
}

func (t *LocaTable) Base() *TableBase {
	return &t.TableBase
}
