package shaper

import (
	"github.com/npillmayer/celltype/engine/glyphing"
)

// Buffer is the shaping buffer: parallel sequences of glyph infos and
// glyph positions. The two sequences have equal length at all times.
type Buffer struct {
	infos     []glyphing.GlyphInfo
	positions []glyphing.GlyphPosition
}

// NewBuffer creates a shaping buffer with a capacity hint.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{
		infos:     make([]glyphing.GlyphInfo, 0, capacity),
		positions: make([]glyphing.GlyphPosition, 0, capacity),
	}
}

// Len returns the number of glyphs in the buffer.
func (buf *Buffer) Len() int {
	return len(buf.infos)
}

// Append adds a glyph to the end of the buffer.
func (buf *Buffer) Append(info glyphing.GlyphInfo, pos glyphing.GlyphPosition) {
	buf.infos = append(buf.infos, info)
	buf.positions = append(buf.positions, pos)
}

// Info returns the glyph info at index i.
func (buf *Buffer) Info(i int) *glyphing.GlyphInfo {
	return &buf.infos[i]
}

// Position returns the glyph position at index i.
func (buf *Buffer) Position(i int) *glyphing.GlyphPosition {
	return &buf.positions[i]
}

// Collapse replaces the glyphs in [i, j) with a single glyph. The
// replacement inherits the lowest cluster id of the collapsed range and
// the summed x-advances; later duplicates are removed.
func (buf *Buffer) Collapse(i, j int, info glyphing.GlyphInfo) {
	if i < 0 || j > len(buf.infos) || i >= j {
		return
	}
	info.ClusterID = buf.infos[i].ClusterID
	for k := i; k < j; k++ {
		if buf.infos[k].ClusterID < info.ClusterID {
			info.ClusterID = buf.infos[k].ClusterID
		}
	}
	pos := glyphing.GlyphPosition{}
	for k := i; k < j; k++ {
		pos.XAdvance += buf.positions[k].XAdvance
		pos.YAdvance += buf.positions[k].YAdvance
	}
	pos.XOffset = buf.positions[i].XOffset
	pos.YOffset = buf.positions[i].YOffset
	buf.infos[i] = info
	buf.positions[i] = pos
	buf.infos = append(buf.infos[:i+1], buf.infos[j:]...)
	buf.positions = append(buf.positions[:i+1], buf.positions[j:]...)
}

// Reverse reverses the storage order of the glyphs in [i, j). Cluster
// ids travel with their glyphs, so a reversed right-to-left run keeps
// logical cluster numbering while its storage order becomes visual.
func (buf *Buffer) Reverse(i, j int) {
	if i < 0 || j > len(buf.infos) || i >= j {
		return
	}
	for lo, hi := i, j-1; lo < hi; lo, hi = lo+1, hi-1 {
		buf.infos[lo], buf.infos[hi] = buf.infos[hi], buf.infos[lo]
		buf.positions[lo], buf.positions[hi] = buf.positions[hi], buf.positions[lo]
	}
}

// Glyphs returns the buffer contents as a sequence of shaped glyphs.
func (buf *Buffer) Glyphs() []glyphing.ShapedGlyph {
	glyphs := make([]glyphing.ShapedGlyph, len(buf.infos))
	for i := range buf.infos {
		glyphs[i] = glyphing.ShapedGlyph{
			GlyphInfo:     buf.infos[i],
			GlyphPosition: buf.positions[i],
		}
	}
	return glyphs
}
