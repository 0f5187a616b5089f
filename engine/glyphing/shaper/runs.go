package shaper

import (
	"unicode/utf8"

	"github.com/npillmayer/celltype/engine/glyphing"
	"github.com/npillmayer/celltype/engine/uniprop"
	"golang.org/x/text/unicode/bidi"
)

// codepoint is one decoded code-point with its cluster id, i.e. the
// byte offset of the code-point in the source string.
type codepoint struct {
	r       rune
	cluster int
}

// decode turns UTF-8 bytes into code-points with cluster ids. Invalid
// sequences contribute a U+FFFD code-point and one source byte of
// advance; decoding never fails.
func decode(text string) []codepoint {
	cps := make([]codepoint, 0, len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size <= 1 {
			cps = append(cps, codepoint{r: '�', cluster: i})
			i++
			continue
		}
		cps = append(cps, codepoint{r: r, cluster: i})
		i += size
	}
	return cps
}

// run is a maximal contiguous sub-range of the decoded text with a
// single script, a single bidi embedding level and a single direction.
// Runs partition the text.
type run struct {
	start, end int // code-point indices [start, end)
	script     uniprop.Script
	level      uint8 // bidi embedding level; odd levels are right-to-left
	dir        glyphing.Direction
}

// itemizeScripts partitions code-points into runs of a single script.
// Code-points with script Common or Inherited join the previous run.
func itemizeScripts(cps []codepoint) []run {
	var runs []run
	current := uniprop.ScriptCommon
	start := 0
	for i, cp := range cps {
		script := uniprop.ScriptFor(cp.r)
		if script == uniprop.ScriptCommon || script == uniprop.ScriptInherited {
			continue
		}
		if current == uniprop.ScriptCommon {
			// the leading common-prefix joins the first real run
			current = script
			continue
		}
		if script != current {
			runs = append(runs, run{start: start, end: i, script: current})
			start = i
			current = script
		}
	}
	if start < len(cps) {
		runs = append(runs, run{start: start, end: len(cps), script: current})
	}
	return runs
}

// resolveBidi assigns a bidi embedding level to every code-point,
// following the implicit resolution of UAX #9, and splits the script
// runs at embedding-level boundaries. Levels are 0 for left-to-right
// text, 1 for right-to-left runs, and 2 for left-to-right runs embedded
// in a right-to-left paragraph.
func resolveBidi(text string, cps []codepoint, runs []run) []run {
	if len(cps) == 0 {
		return runs
	}
	levels := make([]uint8, len(cps))
	var p bidi.Paragraph
	p.SetString(text)
	ordering, err := p.Order()
	if err != nil {
		tracer().Infof("bidi resolution failed, assuming left-to-right: %v", err)
	} else {
		rtlParagraph := !p.IsLeftToRight()
		byOffset := make(map[int]int, len(cps)) // byte offset → code-point index
		for i, cp := range cps {
			byOffset[cp.cluster] = i
		}
		for i := 0; i < ordering.NumRuns(); i++ {
			r := ordering.Run(i)
			start, _ := r.Pos()
			length := len(r.String())
			level := uint8(0)
			if r.Direction() == bidi.RightToLeft {
				level = 1
			} else if rtlParagraph {
				level = 2
			}
			for b := start; b < start+length; b++ {
				if idx, ok := byOffset[b]; ok {
					levels[idx] = level
				}
			}
		}
	}
	// split runs where the level changes
	var out []run
	for _, r := range runs {
		start := r.start
		for i := r.start + 1; i < r.end; i++ {
			if levels[i] != levels[start] {
				out = append(out, makeRun(start, i, r.script, levels[start]))
				start = i
			}
		}
		out = append(out, makeRun(start, r.end, r.script, levels[start]))
	}
	return out
}

func makeRun(start, end int, script uniprop.Script, level uint8) run {
	dir := glyphing.LeftToRight
	if level&1 == 1 {
		dir = glyphing.RightToLeft
	}
	return run{start: start, end: end, script: script, level: level, dir: dir}
}

// segmentRuns performs the run segmentation pipeline: script itemization
// followed by bidi splitting.
func segmentRuns(text string, cps []codepoint) []run {
	runs := itemizeScripts(cps)
	return resolveBidi(text, cps, runs)
}

// visualRunOrder applies rule L2 of UAX #9 to a sequence of runs in
// logical order: from the highest embedding level down to 1, every
// maximal sequence of runs at that level or higher is reversed. The
// glyphs inside a right-to-left run are reversed separately (once, by
// the shaper), so only the order of the runs is permuted here.
//
// Two adjacent right-to-left runs — e.g. a Hebrew and an Arabic span
// split by script itemization — therefore swap places: the logically
// later run ends up leftmost, as a single right-to-left region would.
func visualRunOrder(levels []uint8) []int {
	order := make([]int, len(levels))
	for i := range order {
		order[i] = i
	}
	highest := uint8(0)
	for _, level := range levels {
		if level > highest {
			highest = level
		}
	}
	for level := highest; level >= 1; level-- {
		for i := 0; i < len(order); {
			if levels[order[i]] < level {
				i++
				continue
			}
			j := i
			for j < len(order) && levels[order[j]] >= level {
				j++
			}
			for lo, hi := i, j-1; lo < hi; lo, hi = lo+1, hi-1 {
				order[lo], order[hi] = order[hi], order[lo]
			}
			i = j
		}
	}
	return order
}
