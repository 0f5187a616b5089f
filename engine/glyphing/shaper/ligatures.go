package shaper

import (
	"github.com/derekparker/trie"
	"github.com/npillmayer/celltype/core/font/ot"
)

// Ligature substitution works on sequences of cluster code-points of
// length 2 to 4, longest-match-wins. A matched ligature replaces the
// run of glyphs with a single glyph carrying the lowest cluster id of
// its constituents; the corresponding positions are collapsed with
// summed x-advances.

// Minimum and maximum length of ligature sequences.
const (
	minLigatureLen = 2
	maxLigatureLen = 4
)

// LigatureSet is a registry of ligature substitutions, keyed by
// code-point sequences. A glyph index of 0 means "merge into the first
// component's glyph": the components collapse into one cell-wide glyph
// without a dedicated ligature glyph from the font.
type LigatureSet struct {
	index *trie.Trie
}

type ligature struct {
	gid    ot.GlyphIndex
	length int // number of code-points consumed
}

// NewLigatureSet creates an empty ligature registry.
func NewLigatureSet() *LigatureSet {
	return &LigatureSet{index: trie.New()}
}

// Add registers a ligature substitution for a sequence of 2 to 4
// code-points. Shorter or longer sequences are ignored.
func (ls *LigatureSet) Add(seq []rune, gid ot.GlyphIndex) {
	if len(seq) < minLigatureLen || len(seq) > maxLigatureLen {
		tracer().Infof("ligature sequences are 2…4 code-points, ignoring %v", seq)
		return
	}
	ls.index.Add(string(seq), ligature{gid: gid, length: len(seq)})
}

// match finds the longest registered ligature starting at cps[0].
func (ls *LigatureSet) match(cps []rune) (ligature, bool) {
	limit := maxLigatureLen
	if len(cps) < limit {
		limit = len(cps)
	}
	for length := limit; length >= minLigatureLen; length-- {
		key := string(cps[:length])
		if node, ok := ls.index.Find(key); ok {
			lig := node.Meta().(ligature)
			return lig, true
		}
	}
	return ligature{}, false
}

// prefixable is a cheap pre-test whether any ligature could start here.
func (ls *LigatureSet) prefixable(r rune) bool {
	return ls.index.HasKeysWithPrefix(string(r))
}

// StandardLigatures returns the built-in 'liga' set: typographic
// f-ligatures plus the double-character sequences terminal fonts
// traditionally merge. All of them merge into the first component's
// glyph unless a font-specific substitution overrides them.
func StandardLigatures() *LigatureSet {
	ls := NewLigatureSet()
	for _, seq := range []string{
		"ff", "fi", "fl", "ffi", "ffl",
		"==", "!=", "===", "!==",
		"->", "<-", "=>", "<=", ">=", "<=>",
		"::", "&&", "||", "//", "/*", "*/",
	} {
		ls.Add([]rune(seq), 0)
	}
	return ls
}

// ContextualLigatures returns the built-in 'clig' set: sequences which
// only merge in context, e.g. long arrows.
func ContextualLigatures() *LigatureSet {
	ls := NewLigatureSet()
	for _, seq := range []string{
		"-->", "<--", "==>", "<==", "~~>", "<~~",
	} {
		ls.Add([]rune(seq), 0)
	}
	return ls
}
