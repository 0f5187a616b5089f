package cursor

import (
	"unicode/utf8"

	"github.com/npillmayer/celltype/engine/glyphing"
	"github.com/npillmayer/celltype/engine/uniprop"
	"golang.org/x/text/unicode/bidi"
)

// BidiRun is a maximal run of text with a single direction.
type BidiRun struct {
	Start, Length int
	Dir           glyphing.Direction
	Level         uint8
}

// CodePointFlags collects the per-code-point analysis results.
type CodePointFlags struct {
	Script    uniprop.Script
	Emoji     bool
	FullWidth bool
}

// ShapingAnalysis holds every mapping table cursor movement needs for a
// given text. The analysis is immutable once built; any number of
// cursors may share it.
type ShapingAnalysis struct {
	Text            string
	GraphemeBreaks  []int      // sorted byte offsets of cluster starts, incl. 0 and len
	BidiRuns        []BidiRun  // runs in logical order
	LineBreaks      []int      // sorted byte offsets at which a displayed line starts
	LogicalToVisual []int      // byte-index permutation
	VisualToLogical []int      // inverse permutation
	Flags           map[int]CodePointFlags // keyed by byte offset of the code-point
	mode            uniprop.EastAsianMode
}

// Analyze builds the shaping analysis for a text displayed at a given
// terminal width (in cells). A width of 0 disables soft line breaking.
func Analyze(text string, terminalWidth int, mode uniprop.EastAsianMode) *ShapingAnalysis {
	a := &ShapingAnalysis{
		Text:  text,
		Flags: make(map[int]CodePointFlags),
		mode:  mode,
	}
	a.GraphemeBreaks = uniprop.GraphemeBreaks(text)
	a.analyzeCodePoints()
	a.resolveBidi()
	a.buildPermutations()
	a.breakLines(terminalWidth)
	tracer().Debugf("analysis: %d graphemes, %d bidi runs, %d lines",
		len(a.GraphemeBreaks)-1, len(a.BidiRuns), len(a.LineBreaks)-1)
	return a
}

func (a *ShapingAnalysis) analyzeCodePoints() {
	for i, r := range a.Text {
		a.Flags[i] = CodePointFlags{
			Script:    uniprop.ScriptFor(r),
			Emoji:     uniprop.IsEmoji(r),
			FullWidth: uniprop.WidthOf(r, a.mode) == 2,
		}
	}
}

func (a *ShapingAnalysis) resolveBidi() {
	if a.Text == "" {
		return
	}
	var p bidi.Paragraph
	p.SetString(a.Text)
	ordering, err := p.Order()
	if err != nil {
		tracer().Infof("bidi resolution failed, assuming left-to-right: %v", err)
		a.BidiRuns = []BidiRun{{Start: 0, Length: len(a.Text), Dir: glyphing.LeftToRight}}
		return
	}
	rtlParagraph := !p.IsLeftToRight()
	for i := 0; i < ordering.NumRuns(); i++ {
		r := ordering.Run(i)
		start, _ := r.Pos()
		length := len(r.String())
		dir := glyphing.LeftToRight
		level := uint8(0)
		if r.Direction() == bidi.RightToLeft {
			dir = glyphing.RightToLeft
			level = 1
		} else if rtlParagraph {
			level = 2
		}
		a.BidiRuns = append(a.BidiRuns, BidiRun{
			Start: start, Length: length, Dir: dir, Level: level,
		})
	}
	// runs are reported in visual order; movement wants logical order
	for i := 1; i < len(a.BidiRuns); i++ {
		for j := i; j > 0 && a.BidiRuns[j].Start < a.BidiRuns[j-1].Start; j-- {
			a.BidiRuns[j], a.BidiRuns[j-1] = a.BidiRuns[j-1], a.BidiRuns[j]
		}
	}
}

// buildPermutations constructs the mutually inverse logical↔visual byte
// permutations: identity on left-to-right regions, reversed on each
// right-to-left run.
func (a *ShapingAnalysis) buildPermutations() {
	n := len(a.Text)
	a.LogicalToVisual = make([]int, n)
	a.VisualToLogical = make([]int, n)
	for i := 0; i < n; i++ {
		a.LogicalToVisual[i] = i
	}
	for _, run := range a.BidiRuns {
		if run.Dir != glyphing.RightToLeft {
			continue
		}
		lo, hi := run.Start, run.Start+run.Length-1
		for lo < hi {
			a.LogicalToVisual[lo], a.LogicalToVisual[hi] =
				a.LogicalToVisual[hi], a.LogicalToVisual[lo]
			lo++
			hi--
		}
	}
	for logical, visual := range a.LogicalToVisual {
		a.VisualToLogical[visual] = logical
	}
}

// breakLines derives the line-start table from explicit newlines plus
// soft breaks at terminal-column overflow.
func (a *ShapingAnalysis) breakLines(terminalWidth int) {
	a.LineBreaks = []int{0}
	column := 0
	for i := 0; i+1 < len(a.GraphemeBreaks); i++ {
		start, end := a.GraphemeBreaks[i], a.GraphemeBreaks[i+1]
		cluster := a.Text[start:end]
		if cluster == "\n" || cluster == "\r\n" {
			if end < len(a.Text) {
				a.LineBreaks = append(a.LineBreaks, end)
			}
			column = 0
			continue
		}
		w := uniprop.StringWidth(cluster, a.mode)
		if terminalWidth > 0 && column+w > terminalWidth && column > 0 {
			a.LineBreaks = append(a.LineBreaks, start)
			column = 0
		}
		column += w
	}
	if last := a.LineBreaks[len(a.LineBreaks)-1]; last != len(a.Text) {
		a.LineBreaks = append(a.LineBreaks, len(a.Text))
	}
}

// --- lookups ---------------------------------------------------------------

// GraphemeIndexAt returns the index of the grapheme cluster containing
// the byte offset.
func (a *ShapingAnalysis) GraphemeIndexAt(offset int) int {
	lo, hi := 0, len(a.GraphemeBreaks)-1
	for lo < hi {
		mid := lo + (hi-lo)/2
		if a.GraphemeBreaks[mid+1] <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// LineAt returns the display line containing the byte offset.
func (a *ShapingAnalysis) LineAt(offset int) int {
	line := 0
	for i := 1; i < len(a.LineBreaks)-1; i++ {
		if a.LineBreaks[i] <= offset {
			line = i
		}
	}
	return line
}

// LineSpan returns the byte range [start, end) of a display line.
func (a *ShapingAnalysis) LineSpan(line int) (int, int) {
	if line < 0 {
		line = 0
	}
	last := len(a.LineBreaks) - 2
	if last < 0 {
		return 0, 0
	}
	if line > last {
		line = last
	}
	return a.LineBreaks[line], a.LineBreaks[line+1]
}

// LineCount returns the number of display lines.
func (a *ShapingAnalysis) LineCount() int {
	if len(a.LineBreaks) < 2 {
		return 1
	}
	return len(a.LineBreaks) - 1
}

// ColumnAt returns the display column of a byte offset on its line.
func (a *ShapingAnalysis) ColumnAt(offset int) int {
	start, _ := a.LineSpan(a.LineAt(offset))
	column := 0
	g := a.GraphemeIndexAt(start)
	for ; g+1 < len(a.GraphemeBreaks) && a.GraphemeBreaks[g] < offset; g++ {
		column += uniprop.StringWidth(a.Text[a.GraphemeBreaks[g]:a.GraphemeBreaks[g+1]], a.mode)
	}
	return column
}

// RunAt returns the bidi run containing the byte offset.
func (a *ShapingAnalysis) RunAt(offset int) BidiRun {
	for _, run := range a.BidiRuns {
		if offset >= run.Start && offset < run.Start+run.Length {
			return run
		}
	}
	return BidiRun{Start: 0, Length: len(a.Text), Dir: glyphing.LeftToRight}
}

// VisualIndexOf maps a logical byte index to its visual position.
// The end-of-text index maps to itself.
func (a *ShapingAnalysis) VisualIndexOf(logical int) int {
	if logical < 0 || logical >= len(a.LogicalToVisual) {
		return len(a.Text)
	}
	return a.LogicalToVisual[logical]
}

// ScriptAt returns the script of the code-point at a byte offset.
func (a *ShapingAnalysis) ScriptAt(offset int) uniprop.Script {
	if flags, ok := a.Flags[offset]; ok {
		return flags.Script
	}
	if offset < len(a.Text) {
		r, _ := utf8.DecodeRuneInString(a.Text[offset:])
		return uniprop.ScriptFor(r)
	}
	return uniprop.ScriptCommon
}
