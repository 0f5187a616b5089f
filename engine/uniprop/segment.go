package uniprop

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax29"
)

// --- Grapheme clusters -----------------------------------------------------

// GraphemeIterator walks a string by extended grapheme clusters
// (UAX #29). Iterators are restartable lazy sequences: create one per
// traversal; the underlying text is never modified. Any number of
// iterators may run concurrently on the same text.
type GraphemeIterator struct {
	seg    *segment.Segmenter
	cur    []byte
	offset int // byte offset of the current cluster
	next   int // byte offset of the following cluster
}

// NewGraphemeIterator creates an iterator over the grapheme clusters of
// a string.
func NewGraphemeIterator(text string) *GraphemeIterator {
	onGraphemes := grapheme.NewBreaker(1)
	seg := segment.NewSegmenter(onGraphemes)
	grapheme.SetupGraphemeClasses()
	seg.Init(strings.NewReader(text))
	return &GraphemeIterator{seg: seg}
}

// Next advances the iterator to the next grapheme cluster, returning
// false at the end of text.
func (iter *GraphemeIterator) Next() bool {
	if !iter.seg.Next() {
		return false
	}
	iter.cur = iter.seg.Bytes()
	iter.offset = iter.next
	iter.next += len(iter.cur)
	return true
}

// Grapheme returns the current cluster.
func (iter *GraphemeIterator) Grapheme() string {
	return string(iter.cur)
}

// Offset returns the byte offset of the current cluster within the text.
func (iter *GraphemeIterator) Offset() int {
	return iter.offset
}

// Len returns the byte length of the current cluster.
func (iter *GraphemeIterator) Len() int {
	return len(iter.cur)
}

// GraphemeBreaks returns the sorted byte offsets at which grapheme
// clusters begin, including 0 and len(text). No two boundaries are equal.
func GraphemeBreaks(text string) []int {
	breaks := []int{0}
	iter := NewGraphemeIterator(text)
	for iter.Next() {
		breaks = append(breaks, iter.Offset()+iter.Len())
	}
	return breaks
}

// --- Words -----------------------------------------------------------------

// WordClass is a coarse classification of a word segment.
type WordClass int

// Word classes.
const (
	WordOther WordClass = iota
	WordAlphabetic
	WordNumeric
	WordPunctuation
	WordWhitespace
	WordEmoji
)

//go:generate stringer -type=WordClass

// WordIterator walks a string by word boundaries (UAX #29) and
// classifies each segment.
type WordIterator struct {
	seg    *segment.Segmenter
	cur    []byte
	offset int
	next   int
}

// NewWordIterator creates an iterator over the words of a string.
// Whitespace between words forms segments of its own.
func NewWordIterator(text string) *WordIterator {
	onWords := uax29.NewWordBreaker(1)
	seg := segment.NewSegmenter(onWords)
	seg.BreakOnZero(true, false)
	seg.Init(strings.NewReader(text))
	return &WordIterator{seg: seg}
}

// Next advances the iterator to the next word, returning false at the
// end of text.
func (iter *WordIterator) Next() bool {
	if !iter.seg.Next() {
		return false
	}
	iter.cur = iter.seg.Bytes()
	iter.offset = iter.next
	iter.next += len(iter.cur)
	return true
}

// Word returns the current word segment.
func (iter *WordIterator) Word() string {
	return string(iter.cur)
}

// Offset returns the byte offset of the current word within the text.
func (iter *WordIterator) Offset() int {
	return iter.offset
}

// Class classifies the current word by its first code-point.
func (iter *WordIterator) Class() WordClass {
	r, _ := utf8.DecodeRune(iter.cur)
	return ClassifyWord(r)
}

// ClassifyWord returns the word class for a word starting with r.
func ClassifyWord(r rune) WordClass {
	switch {
	case IsEmoji(r):
		return WordEmoji
	case unicode.IsSpace(r):
		return WordWhitespace
	case unicode.IsLetter(r) || unicode.In(r, unicode.Mn, unicode.Mc):
		return WordAlphabetic
	case unicode.IsDigit(r) || unicode.IsNumber(r):
		return WordNumeric
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return WordPunctuation
	}
	return WordOther
}

// WordBreaks returns the sorted byte offsets of word boundaries,
// including 0 and len(text).
func WordBreaks(text string) []int {
	breaks := []int{0}
	iter := NewWordIterator(text)
	for iter.Next() {
		breaks = append(breaks, iter.offset+len(iter.cur))
	}
	return breaks
}

// --- Grapheme break classes ------------------------------------------------

// GraphemeBreakClass is the UAX #29 grapheme cluster break property of a
// single code-point.
type GraphemeBreakClass int

// Grapheme cluster break classes.
const (
	GraphemeOther GraphemeBreakClass = iota
	GraphemeControl
	GraphemeCR
	GraphemeLF
	GraphemeExtend
	GraphemeZWJ
	GraphemeRegionalIndicator
	GraphemePrepend
	GraphemeSpacingMark
	GraphemeHangulL
	GraphemeHangulV
	GraphemeHangulT
	GraphemeHangulLV
	GraphemeHangulLVT
)

//go:generate stringer -type=GraphemeBreakClass

// GraphemeBreakClassOf returns the grapheme cluster break property of a
// code-point.
func GraphemeBreakClassOf(r rune) GraphemeBreakClass {
	switch {
	case r == '\r':
		return GraphemeCR
	case r == '\n':
		return GraphemeLF
	case r == 0x200D:
		return GraphemeZWJ
	case isRegionalIndicator(r):
		return GraphemeRegionalIndicator
	case r < 0x20 || (r >= 0x7F && r < 0xA0) || unicode.In(r, unicode.Cf):
		return GraphemeControl
	case unicode.In(r, unicode.Mn, unicode.Me) || r == 0xFE0E || r == 0xFE0F:
		return GraphemeExtend
	case unicode.In(r, unicode.Mc):
		return GraphemeSpacingMark
	case r >= 0x1100 && r <= 0x115F:
		return GraphemeHangulL
	case r >= 0x1160 && r <= 0x11A7:
		return GraphemeHangulV
	case r >= 0x11A8 && r <= 0x11FF:
		return GraphemeHangulT
	case r >= 0xAC00 && r <= 0xD7A3:
		if (r-0xAC00)%28 == 0 {
			return GraphemeHangulLV
		}
		return GraphemeHangulLVT
	}
	return GraphemeOther
}
