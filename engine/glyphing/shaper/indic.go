package shaper

import (
	"sort"
	"unicode"
)

// Indic shaping follows the Devanagari model, extended to Bengali,
// Tamil, Telugu, Kannada and Malayalam. Syllables are segmented, the
// base character identified, and the marks of the syllable reordered by
// their reorder class using a stable sort.

// indicCategory classifies a code-point within an Indic script run.
type indicCategory int

const (
	indicOther indicCategory = iota
	indicConsonant
	indicVowelIndependent
	indicMatraPre
	indicMatraAbove
	indicMatraPost
	indicMatraBelow
	indicHalant
	indicNukta
	indicZWJ
	indicZWNJ
	indicNumber
	indicSymbol
)

// reorderClass orders marks within a syllable: pre-base matras first,
// then above, post, below, halant, nukta.
func (cat indicCategory) reorderClass() int {
	switch cat {
	case indicMatraPre:
		return 1
	case indicMatraAbove:
		return 2
	case indicMatraPost:
		return 3
	case indicMatraBelow:
		return 4
	case indicHalant:
		return 5
	case indicNukta:
		return 6
	}
	return 0
}

func (cat indicCategory) isMark() bool {
	return cat.reorderClass() > 0
}

// Viramas (halants) of the supported scripts.
var viramas = map[rune]bool{
	0x094D: true, // Devanagari
	0x09CD: true, // Bengali
	0x0BCD: true, // Tamil
	0x0C4D: true, // Telugu
	0x0CCD: true, // Kannada
	0x0D4D: true, // Malayalam
}

// Nukta marks.
var nuktas = map[rune]bool{
	0x093C: true, // Devanagari
	0x09BC: true, // Bengali
	0x0CBC: true, // Kannada
}

// Pre-base matras across the supported scripts.
var preBaseMatras = map[rune]bool{
	0x093F: true,               // Devanagari i
	0x09BF: true,               // Bengali i
	0x09C7: true, 0x09C8: true, // Bengali e, ai
	0x0BC6: true, 0x0BC7: true, 0x0BC8: true, // Tamil e, ee, ai
	0x0D46: true, 0x0D47: true, 0x0D48: true, // Malayalam e, ee, ai
}

// Below-base matras (vocalic u/uu/r/rr groups).
var belowBaseMatras = []struct{ lo, hi rune }{
	{0x0941, 0x0944}, // Devanagari
	{0x09C1, 0x09C4}, // Bengali
	{0x0C56, 0x0C56}, // Telugu
	{0x0CC4, 0x0CC4}, // Kannada
	{0x0D43, 0x0D44}, // Malayalam
}

// Independent vowel ranges per script block.
var independentVowels = []struct{ lo, hi rune }{
	{0x0904, 0x0914}, // Devanagari
	{0x0960, 0x0961},
	{0x0985, 0x0994}, // Bengali
	{0x0B85, 0x0B94}, // Tamil
	{0x0C05, 0x0C14}, // Telugu
	{0x0C85, 0x0C94}, // Kannada
	{0x0D05, 0x0D14}, // Malayalam
}

func inRanges(r rune, ranges []struct{ lo, hi rune }) bool {
	for _, rng := range ranges {
		if r >= rng.lo && r <= rng.hi {
			return true
		}
	}
	return false
}

// classifyIndic categorizes a code-point of an Indic run.
func classifyIndic(r rune) indicCategory {
	switch {
	case r == 0x200D:
		return indicZWJ
	case r == 0x200C:
		return indicZWNJ
	case viramas[r]:
		return indicHalant
	case nuktas[r]:
		return indicNukta
	case preBaseMatras[r]:
		return indicMatraPre
	case inRanges(r, belowBaseMatras):
		return indicMatraBelow
	case inRanges(r, independentVowels):
		return indicVowelIndependent
	case unicode.In(r, unicode.Mc):
		return indicMatraPost
	case unicode.In(r, unicode.Mn):
		return indicMatraAbove
	case unicode.IsDigit(r):
		return indicNumber
	case unicode.IsLetter(r):
		return indicConsonant
	case unicode.IsSymbol(r) || unicode.IsPunct(r):
		return indicSymbol
	}
	return indicOther
}

// indicSyllables splits the code-points of an Indic run into syllables.
// A syllable boundary occurs before an independent vowel and before a
// consonant which is not immediately preceded by a halant.
func indicSyllables(cps []codepoint) [][2]int {
	var syllables [][2]int
	start := 0
	for i := 1; i < len(cps); i++ {
		cat := classifyIndic(cps[i].r)
		boundary := false
		switch cat {
		case indicVowelIndependent:
			boundary = true
		case indicConsonant:
			prev := classifyIndic(cps[i-1].r)
			boundary = prev != indicHalant
		}
		if boundary {
			syllables = append(syllables, [2]int{start, i})
			start = i
		}
	}
	if start < len(cps) {
		syllables = append(syllables, [2]int{start, len(cps)})
	}
	return syllables
}

// reorderIndic performs the syllable-wise mark reordering of an Indic
// run in place. Within a syllable the base is the first consonant or
// independent vowel; the trailing matras and marks are stable-sorted by
// reorder class. A halant which forms a conjunct (i.e. is immediately
// followed by a consonant) belongs to the consonant cluster and is not
// reordered.
func reorderIndic(cps []codepoint) {
	for _, syl := range indicSyllables(cps) {
		reorderSyllable(cps[syl[0]:syl[1]])
	}
}

func reorderSyllable(syl []codepoint) {
	// find the trailing run of reorderable marks
	end := len(syl)
	start := end
	for start > 0 {
		if !classifyIndic(syl[start-1].r).isMark() {
			break
		}
		start--
	}
	if end-start < 2 {
		return
	}
	marks := syl[start:end]
	sort.SliceStable(marks, func(i, j int) bool {
		return classifyIndic(marks[i].r).reorderClass() <
			classifyIndic(marks[j].r).reorderClass()
	})
}
