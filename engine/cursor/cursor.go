package cursor

import (
	"github.com/npillmayer/celltype/engine/glyphing"
	"github.com/npillmayer/celltype/engine/uniprop"
)

// Cursor is a position within analyzed text. The logical index is the
// authoritative coordinate; every movement rederives visual index,
// grapheme index, line and column from the analysis tables.
type Cursor struct {
	analysis *ShapingAnalysis
	Logical  int // byte offset in logical order
	Visual   int // byte offset in visual order
	Grapheme int // index of the grapheme cluster
	Line     int
	Column   int
	RTLContext    bool
	ScriptContext uniprop.Script
}

// New places a cursor at the start of analyzed text.
func New(a *ShapingAnalysis) *Cursor {
	c := &Cursor{analysis: a}
	c.sync()
	return c
}

// sync rederives all dependent coordinates from the logical index.
func (c *Cursor) sync() {
	a := c.analysis
	if c.Logical < 0 {
		c.Logical = 0
	}
	if c.Logical > len(a.Text) {
		c.Logical = len(a.Text)
	}
	c.Visual = a.VisualIndexOf(c.Logical)
	c.Grapheme = a.GraphemeIndexAt(c.Logical)
	c.Line = a.LineAt(c.Logical)
	c.Column = a.ColumnAt(c.Logical)
	run := a.RunAt(c.Logical)
	c.RTLContext = run.Dir == glyphing.RightToLeft
	c.ScriptContext = a.ScriptAt(c.Logical)
}

// MoveTo places the cursor at a logical byte offset, snapped to the
// containing grapheme boundary.
func (c *Cursor) MoveTo(logical int) {
	a := c.analysis
	if logical < 0 {
		logical = 0
	}
	if logical > len(a.Text) {
		logical = len(a.Text)
	}
	g := a.GraphemeIndexAt(logical)
	c.Logical = a.GraphemeBreaks[g]
	c.sync()
}

// Right moves the cursor one visual column towards the end of reading
// order. In a right-to-left context the arrow direction swaps, so the
// logical index always advances while the visual index follows the
// text direction (it decreases inside right-to-left runs).
func (c *Cursor) Right() {
	c.GraphemeRight()
}

// Left is the counterpart of Right: the logical index always retreats.
func (c *Cursor) Left() {
	c.GraphemeLeft()
}

// GraphemeRight moves one grapheme cluster forward in logical order.
func (c *Cursor) GraphemeRight() {
	a := c.analysis
	if c.Grapheme+1 < len(a.GraphemeBreaks) {
		c.Logical = a.GraphemeBreaks[c.Grapheme+1]
		c.sync()
	}
}

// GraphemeLeft moves one grapheme cluster backward in logical order.
func (c *Cursor) GraphemeLeft() {
	a := c.analysis
	if c.Grapheme > 0 {
		c.Logical = a.GraphemeBreaks[c.Grapheme-1]
		c.sync()
	}
}

// WordRight moves to the next word boundary in logical order.
func (c *Cursor) WordRight() {
	for _, b := range uniprop.WordBreaks(c.analysis.Text) {
		if b > c.Logical {
			c.Logical = b
			c.sync()
			return
		}
	}
	c.Logical = len(c.analysis.Text)
	c.sync()
}

// WordLeft moves to the previous word boundary in logical order.
func (c *Cursor) WordLeft() {
	prev := 0
	for _, b := range uniprop.WordBreaks(c.analysis.Text) {
		if b >= c.Logical {
			break
		}
		prev = b
	}
	c.Logical = prev
	c.sync()
}

// LineStart moves to the first logical offset of the cursor's line.
func (c *Cursor) LineStart() {
	start, _ := c.analysis.LineSpan(c.Line)
	c.Logical = start
	c.sync()
}

// LineEnd moves to the last logical offset of the cursor's line,
// placing the cursor before the line terminator if the line has one.
func (c *Cursor) LineEnd() {
	a := c.analysis
	start, end := a.LineSpan(c.Line)
	if end > start && end-1 < len(a.Text) && a.Text[end-1] == '\n' {
		g := a.GraphemeIndexAt(end - 1)
		end = a.GraphemeBreaks[g]
	}
	c.Logical = end
	c.sync()
}

// Up moves to the same display column on the previous line, clamping to
// that line's end if it is shorter.
func (c *Cursor) Up() {
	c.moveVertically(c.Line - 1)
}

// Down moves to the same display column on the next line, clamping to
// that line's end if it is shorter.
func (c *Cursor) Down() {
	c.moveVertically(c.Line + 1)
}

func (c *Cursor) moveVertically(line int) {
	a := c.analysis
	if line < 0 || line >= a.LineCount() {
		return
	}
	targetColumn := c.Column
	start, end := a.LineSpan(line)
	offset := start
	column := 0
	g := a.GraphemeIndexAt(start)
	for ; g+1 < len(a.GraphemeBreaks) && a.GraphemeBreaks[g+1] <= end; g++ {
		if column >= targetColumn {
			break
		}
		cluster := a.Text[a.GraphemeBreaks[g]:a.GraphemeBreaks[g+1]]
		if cluster == "\n" || cluster == "\r\n" {
			break
		}
		column += uniprop.StringWidth(cluster, a.mode)
		offset = a.GraphemeBreaks[g+1]
	}
	c.Logical = offset
	c.sync()
}
