package layout

import (
	"bufio"
	"strings"

	"github.com/npillmayer/celltype/engine/uniprop"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
)

// Complexity classifies text by the machinery needed to lay it out.
type Complexity int

// Complexity tiers.
const (
	Simple      Complexity = iota // ASCII only: no shaping
	Moderate                      // non-ASCII, no bidi: grapheme widths, not segmented by script
	Complex                       // right-to-left or shaping-heavy scripts, not both
	VeryComplex                   // right-to-left plus shaping-heavy scripts (Arabic alone qualifies)
)

//go:generate stringer -type=Complexity

// complexitySampleSize is the number of code-points examined for
// classification.
const complexitySampleSize = 200

// Classify samples the beginning of a text and grades its layout
// complexity.
func Classify(text string) Complexity {
	seen := 0
	nonASCII := false
	rtl := false
	complexScript := false
	for _, r := range text {
		if seen++; seen > complexitySampleSize {
			break
		}
		if r >= 0x80 {
			nonASCII = true
		}
		if uniprop.IsRightToLeft(r) {
			rtl = true
		}
		if uniprop.ScriptFor(r).IsComplex() {
			complexScript = true
		}
	}
	switch {
	case rtl && complexScript:
		return VeryComplex
	case rtl || complexScript:
		return Complex
	case nonASCII:
		return Moderate
	}
	return Simple
}

// LineSegment is one displayed line: a byte range of the source text
// plus its width in terminal cells.
type LineSegment struct {
	Start, End int // byte range [Start, End), line terminator excluded
	Width      int // width in cells
}

// Layout is the line-segment list of a text at a given terminal width.
type Layout struct {
	Lines      []LineSegment
	Complexity Complexity
}

// Planner performs tiered line breaking. A zero Planner is usable; the
// optional cache is enabled with NewPlanner.
type Planner struct {
	mode  uniprop.EastAsianMode
	cache *lineCache
}

// NewPlanner creates a planner with a line-layout cache.
func NewPlanner(mode uniprop.EastAsianMode) *Planner {
	return &Planner{mode: mode, cache: newLineCache()}
}

// Plan computes the line segments of a text at a terminal width (in
// cells) and a font size. The font size participates in cache keying
// only; widths are cell counts. A terminalWidth of 0 breaks on
// newlines alone.
func (p *Planner) Plan(text string, terminalWidth int, fontSize float64) *Layout {
	if p.cache != nil {
		if layout, ok := p.cache.lookup(text, terminalWidth, fontSize); ok {
			return layout
		}
	}
	complexity := Classify(text)
	tracer().Debugf("layout: text classified as %d", complexity)
	var layout *Layout
	switch complexity {
	case Simple:
		layout = p.planSimple(text, terminalWidth)
	case Moderate:
		layout = p.planModerate(text, terminalWidth)
	default:
		layout = p.planComplex(text, terminalWidth)
	}
	layout.Complexity = complexity
	if p.cache != nil {
		p.cache.insert(text, terminalWidth, fontSize, layout)
	}
	return layout
}

// planSimple breaks ASCII text on newlines and the terminal width; one
// byte is one cell.
func (p *Planner) planSimple(text string, width int) *Layout {
	layout := &Layout{}
	lineStart := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			layout.Lines = append(layout.Lines,
				LineSegment{Start: lineStart, End: i, Width: i - lineStart})
			lineStart = i + 1
			continue
		}
		if width > 0 && i-lineStart >= width {
			layout.Lines = append(layout.Lines,
				LineSegment{Start: lineStart, End: i, Width: i - lineStart})
			lineStart = i
		}
	}
	layout.Lines = append(layout.Lines,
		LineSegment{Start: lineStart, End: len(text), Width: len(text) - lineStart})
	return layout
}

// planModerate walks grapheme clusters with their cell widths, breaking
// at overflow and newlines. No bidi resolution.
func (p *Planner) planModerate(text string, width int) *Layout {
	layout := &Layout{}
	lineStart, column := 0, 0
	iter := uniprop.NewGraphemeIterator(text)
	for iter.Next() {
		cluster := iter.Grapheme()
		if cluster == "\n" || cluster == "\r\n" {
			layout.Lines = append(layout.Lines,
				LineSegment{Start: lineStart, End: iter.Offset(), Width: column})
			lineStart = iter.Offset() + iter.Len()
			column = 0
			continue
		}
		w := uniprop.StringWidth(cluster, p.mode)
		if width > 0 && column+w > width && column > 0 {
			layout.Lines = append(layout.Lines,
				LineSegment{Start: lineStart, End: iter.Offset(), Width: column})
			lineStart = iter.Offset()
			column = 0
		}
		column += w
	}
	layout.Lines = append(layout.Lines,
		LineSegment{Start: lineStart, End: len(text), Width: column})
	return layout
}

// planComplex uses the UAX #14 line-wrap segmenter to find break
// opportunities and fills lines greedily: a fragment that would
// overflow the terminal width starts the next line.
func (p *Planner) planComplex(text string, width int) *Layout {
	layout := &Layout{}
	linewrap := uax14.NewLineWrap()
	seg := segment.NewSegmenter(linewrap)
	seg.Init(bufio.NewReader(strings.NewReader(text)))
	lineStart, column, offset := 0, 0, 0
	for seg.Next() {
		frag := string(seg.Bytes())
		body := frag
		mandatory := false
		if i := strings.IndexByte(frag, '\n'); i >= 0 {
			mandatory = true
			body = strings.TrimRight(frag, "\r\n")
		}
		w := uniprop.StringWidth(body, p.mode)
		if width > 0 && column+w > width && column > 0 {
			layout.Lines = append(layout.Lines,
				LineSegment{Start: lineStart, End: offset, Width: column})
			lineStart = offset
			column = 0
		}
		offset += len(frag)
		column += w
		if mandatory {
			layout.Lines = append(layout.Lines,
				LineSegment{Start: lineStart, End: lineStart + (offset - lineStart) -
					(len(frag) - len(body)), Width: column})
			lineStart = offset
			column = 0
		}
	}
	layout.Lines = append(layout.Lines,
		LineSegment{Start: lineStart, End: len(text), Width: column})
	return layout
}

// Viewport returns the lines overlapping a byte range of the source
// text; this is the window handed to the shaper.
func (layout *Layout) Viewport(from, to int) []LineSegment {
	var visible []LineSegment
	for _, line := range layout.Lines {
		if line.End < from || line.Start > to {
			continue
		}
		visible = append(visible, line)
	}
	return visible
}
