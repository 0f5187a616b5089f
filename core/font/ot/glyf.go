package ot

// Decoding of TrueType glyph outlines from the glyf table.
//
// A simple glyph description begins with the number of contours and the
// bounding box, followed by the contour end-point indices, hinting
// instructions (skipped), per-point flags with run-length compression, and
// finally delta-encoded x- and y-coordinates. A composite glyph references
// component glyphs, each with a translation and an optional 2×2 transform.

// GlyfTable holds the glyph outline data of a TrueType font.
type GlyfTable struct {
	TableBase
	loca      *LocaTable // wired up after all tables have been read
	numGlyphs int
}

func parseGlyf(tag Tag, b fontBinSegm, offset, size uint32) (Table, error) {
	t := &GlyfTable{}
	t.TableBase = TableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.self = t
	return t, nil
}

func (t *GlyfTable) Base() *TableBase {
	return &t.TableBase
}

// OutlinePoint is a point of a glyph contour, in font units. Off-curve
// points are control points of quadratic Bézier segments.
type OutlinePoint struct {
	X, Y    int16
	OnCurve bool
}

// Contour is a closed sequence of outline points.
type Contour []OutlinePoint

// Glyph flag bits, as per the TrueType reference manual.
const (
	flagOnCurve = 1 << iota // 0x0001
	flagXShortVector
	flagYShortVector
	flagRepeat
	flagPositiveXShortVector
	flagPositiveYShortVector
)

// Composite glyph flag bits.
const (
	flagArg1And2AreWords = 1 << iota // 0x0001
	flagArgsAreXYValues
	flagRoundXYToGrid
	flagWeHaveAScale
	flagUnused
	flagMoreComponents
	flagWeHaveAnXAndYScale
	flagWeHaveATwoByTwo
	flagWeHaveInstructions
	flagUseMyMetrics
	flagOverlapCompound
)

// Composite glyphs may reference other composites; we bound the nesting
// depth against malicious fonts.
const maxCompositeRecursion = 8

// Outline returns the contours of a glyph, in font units. For composite
// glyphs the referenced components are resolved recursively, applying
// each component's transform and translation. An empty glyph (e.g. a
// space) yields a nil contour list and no error.
func (t *GlyfTable) Outline(gid GlyphIndex) ([]Contour, error) {
	return t.outline(gid, 0)
}

func (t *GlyfTable) outline(gid GlyphIndex, recursion int) ([]Contour, error) {
	if recursion >= maxCompositeRecursion {
		return nil, errFontFormat("composite glyph recursion too deep")
	}
	if t.loca == nil {
		return nil, errFontFormat("glyf table without loca table")
	}
	if t.numGlyphs > 0 && int(gid) >= t.numGlyphs {
		return nil, errFontFormat("glyph index out of range")
	}
	lo := t.loca.loca(t.loca, int(gid))
	hi := t.loca.loca(t.loca, int(gid)+1)
	if lo == hi {
		return nil, nil // glyph has no outline, e.g. a space
	}
	if hi < lo || uint32(len(t.data)) < hi {
		return nil, errFontFormat("loca entry outside of glyf table")
	}
	glyf := t.data[lo:hi]
	if len(glyf) < 10 {
		return nil, errFontFormat("glyph description truncated")
	}
	numContours := int16(u16(glyf))
	if numContours >= 0 {
		return t.simpleOutline(glyf, int(numContours))
	}
	return t.compositeOutline(glyf, recursion)
}

func (t *GlyfTable) simpleOutline(glyf fontBinSegm, ne int) ([]Contour, error) {
	// The first 10 bytes are the number of contours and the bounding box.
	offset := 10
	ends := make([]int, ne)
	for i := 0; i < ne; i++ {
		e, err := glyf.u16(offset)
		if err != nil {
			return nil, errFontFormat("glyph contour ends truncated")
		}
		ends[i] = 1 + int(e)
		offset += 2
	}
	np := 0
	if ne > 0 {
		np = ends[ne-1]
	}
	// Skip the TrueType hinting instructions.
	instrLen, err := glyf.u16(offset)
	if err != nil {
		return nil, errFontFormat("glyph instructions truncated")
	}
	offset += 2 + int(instrLen)

	// Decode the flags.
	flags := make([]uint8, 0, np)
	for len(flags) < np {
		if offset >= len(glyf) {
			return nil, errFontFormat("glyph flags truncated")
		}
		c := glyf[offset]
		offset++
		flags = append(flags, c)
		if c&flagRepeat != 0 {
			if offset >= len(glyf) {
				return nil, errFontFormat("glyph flags truncated")
			}
			count := glyf[offset]
			offset++
			for ; count > 0 && len(flags) < np; count-- {
				flags = append(flags, c)
			}
		}
	}

	points := make([]OutlinePoint, np)
	// Decode the x-coordinates.
	var x int16
	for i := 0; i < np; i++ {
		f := flags[i]
		if f&flagXShortVector != 0 {
			if offset >= len(glyf) {
				return nil, errFontFormat("glyph coordinates truncated")
			}
			dx := int16(glyf[offset])
			offset++
			if f&flagPositiveXShortVector == 0 {
				x -= dx
			} else {
				x += dx
			}
		} else if f&flagPositiveXShortVector == 0 { // "this x is same" not set
			d, err := glyf.u16(offset)
			if err != nil {
				return nil, errFontFormat("glyph coordinates truncated")
			}
			x += int16(d)
			offset += 2
		}
		points[i].X = x
		points[i].OnCurve = f&flagOnCurve != 0
	}
	// Decode the y-coordinates.
	var y int16
	for i := 0; i < np; i++ {
		f := flags[i]
		if f&flagYShortVector != 0 {
			if offset >= len(glyf) {
				return nil, errFontFormat("glyph coordinates truncated")
			}
			dy := int16(glyf[offset])
			offset++
			if f&flagPositiveYShortVector == 0 {
				y -= dy
			} else {
				y += dy
			}
		} else if f&flagPositiveYShortVector == 0 { // "this y is same" not set
			d, err := glyf.u16(offset)
			if err != nil {
				return nil, errFontFormat("glyph coordinates truncated")
			}
			y += int16(d)
			offset += 2
		}
		points[i].Y = y
	}

	contours := make([]Contour, 0, ne)
	start := 0
	for _, end := range ends {
		if end < start || end > np {
			return nil, errFontFormat("glyph contour ends inconsistent")
		}
		contours = append(contours, Contour(points[start:end]))
		start = end
	}
	return contours, nil
}

func (t *GlyfTable) compositeOutline(glyf fontBinSegm, recursion int) ([]Contour, error) {
	offset := 10
	var contours []Contour
	for {
		flags, err := glyf.u16(offset)
		if err != nil {
			return nil, errFontFormat("composite glyph truncated")
		}
		component, err := glyf.u16(offset + 2)
		if err != nil {
			return nil, errFontFormat("composite glyph truncated")
		}
		offset += 4
		var dx, dy int16
		if flags&flagArg1And2AreWords != 0 {
			a1, err1 := glyf.i16(offset)
			a2, err2 := glyf.i16(offset + 2)
			if err1 != nil || err2 != nil {
				return nil, errFontFormat("composite glyph truncated")
			}
			dx, dy = a1, a2
			offset += 4
		} else {
			if offset+2 > len(glyf) {
				return nil, errFontFormat("composite glyph truncated")
			}
			dx, dy = int16(int8(glyf[offset])), int16(int8(glyf[offset+1]))
			offset += 2
		}
		if flags&flagArgsAreXYValues == 0 {
			// point-matching component placement is exceedingly rare;
			// treat the component as untranslated
			dx, dy = 0, 0
		}
		// The transform is stored as F2Dot14 fixed-point values.
		xx, xy, yx, yy := int16(1<<14), int16(0), int16(0), int16(1<<14)
		if flags&flagWeHaveAScale != 0 {
			s, err := glyf.i16(offset)
			if err != nil {
				return nil, errFontFormat("composite glyph truncated")
			}
			xx, yy = s, s
			offset += 2
		} else if flags&flagWeHaveAnXAndYScale != 0 {
			sx, err1 := glyf.i16(offset)
			sy, err2 := glyf.i16(offset + 2)
			if err1 != nil || err2 != nil {
				return nil, errFontFormat("composite glyph truncated")
			}
			xx, yy = sx, sy
			offset += 4
		} else if flags&flagWeHaveATwoByTwo != 0 {
			var errs [4]error
			xx, errs[0] = glyf.i16(offset)
			xy, errs[1] = glyf.i16(offset + 2)
			yx, errs[2] = glyf.i16(offset + 4)
			yy, errs[3] = glyf.i16(offset + 6)
			for _, e := range errs {
				if e != nil {
					return nil, errFontFormat("composite glyph truncated")
				}
			}
			offset += 8
		}
		sub, err := t.outline(GlyphIndex(component), recursion+1)
		if err != nil {
			return nil, err
		}
		for _, c := range sub {
			transformed := make(Contour, len(c))
			for i, p := range c {
				px := int32(p.X)
				py := int32(p.Y)
				tx := (px*int32(xx) + py*int32(yx)) >> 14
				ty := (px*int32(xy) + py*int32(yy)) >> 14
				transformed[i] = OutlinePoint{
					X:       int16(tx) + dx,
					Y:       int16(ty) + dy,
					OnCurve: p.OnCurve,
				}
			}
			contours = append(contours, transformed)
		}
		if flags&flagMoreComponents == 0 {
			break
		}
	}
	return contours, nil
}
