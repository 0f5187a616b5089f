package uniprop

import (
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/uax/uax11"
)

// EastAsianMode selects the resolution of East-Asian-ambiguous
// code-points, which legacy CJK encodings rendered double-width.
type EastAsianMode int

// Recognized East Asian width modes.
const (
	EastAsianStandard EastAsianMode = iota // ambiguous → 1 cell
	EastAsianWide                          // ambiguous → 2 cells
)

// Cells occupied by a horizontal tab. Tab expansion is the terminal
// host's business; for width classification a tab occupies one cell.
const tabWidth = 1

// East-Asian-ambiguous ranges, condensed from EastAsianWidth.txt. Legacy
// CJK environments render these double-width. The table is not the full
// property file: it covers the ranges that occur in terminal output.
var eastAsianAmbiguous = &unicode.RangeTable{
	R16: []unicode.Range16{
		{0x00A1, 0x00A1, 1},
		{0x00A4, 0x00A4, 1},
		{0x00A7, 0x00A8, 1},
		{0x00AA, 0x00AA, 1},
		{0x00AD, 0x00AE, 1},
		{0x00B0, 0x00B4, 1},
		{0x00B6, 0x00BA, 1},
		{0x00BC, 0x00BF, 1},
		{0x00C6, 0x00C6, 1},
		{0x00D0, 0x00D0, 1},
		{0x00D7, 0x00D8, 1},
		{0x00DE, 0x00E1, 1},
		{0x00E6, 0x00E6, 1},
		{0x00E8, 0x00EA, 1},
		{0x00EC, 0x00ED, 1},
		{0x00F0, 0x00F0, 1},
		{0x00F2, 0x00F3, 1},
		{0x00F7, 0x00FA, 1},
		{0x00FC, 0x00FC, 1},
		{0x00FE, 0x00FE, 1},
		{0x0391, 0x03A1, 1},
		{0x03A3, 0x03A9, 1},
		{0x03B1, 0x03C1, 1},
		{0x03C3, 0x03C9, 1},
		{0x0401, 0x0401, 1},
		{0x0410, 0x044F, 1},
		{0x0451, 0x0451, 1},
		{0x2010, 0x2010, 1},
		{0x2013, 0x2016, 1},
		{0x2018, 0x2019, 1},
		{0x201C, 0x201D, 1},
		{0x2020, 0x2022, 1},
		{0x2024, 0x2027, 1},
		{0x2030, 0x2030, 1},
		{0x2032, 0x2033, 1},
		{0x2035, 0x2035, 1},
		{0x203B, 0x203B, 1},
		{0x2074, 0x2074, 1},
		{0x207F, 0x207F, 1},
		{0x2081, 0x2084, 1},
		{0x20AC, 0x20AC, 1},
		{0x2103, 0x2103, 1},
		{0x2105, 0x2105, 1},
		{0x2109, 0x2109, 1},
		{0x2121, 0x2122, 1},
		{0x2126, 0x2126, 1},
		{0x212B, 0x212B, 1},
		{0x2190, 0x2199, 1},
		{0x21B8, 0x21B9, 1},
		{0x2460, 0x24E9, 1},
		{0x24EB, 0x254B, 1},
		{0x2550, 0x2573, 1},
		{0x2580, 0x258F, 1},
		{0x2592, 0x2595, 1},
		{0x25A0, 0x25A1, 1},
		{0x25A3, 0x25A9, 1},
		{0x25B2, 0x25B3, 1},
		{0x25B6, 0x25B7, 1},
		{0x25BC, 0x25BD, 1},
		{0x25C0, 0x25C1, 1},
		{0x25C6, 0x25C8, 1},
		{0x25CB, 0x25CB, 1},
		{0x25CE, 0x25D1, 1},
		{0x25E2, 0x25E5, 1},
		{0x25EF, 0x25EF, 1},
		{0x2605, 0x2606, 1},
		{0x2609, 0x2609, 1},
		{0x260E, 0x260F, 1},
		{0x261C, 0x261C, 1},
		{0x261E, 0x261E, 1},
		{0x2640, 0x2640, 1},
		{0x2642, 0x2642, 1},
		{0x2660, 0x2661, 1},
		{0x2663, 0x2665, 1},
		{0x2667, 0x266A, 1},
		{0x266C, 0x266D, 1},
		{0x266F, 0x266F, 1},
	},
}

// WidthOf returns the number of terminal cells a single code-point
// occupies: 0 for zero-width controls and combining marks, 2 for
// explicit wide/fullwidth forms and emoji presentation, 1 otherwise.
// Ambiguous code-points resolve according to mode.
func WidthOf(r rune, mode EastAsianMode) int {
	switch {
	case r == 0:
		return 0
	case r == '\t':
		return tabWidth
	case r < 0x20 || (r >= 0x7F && r < 0xA0):
		return 0 // other controls
	case r == 0x200B || r == 0x200C || r == 0x200D: // zero width space/joiners
		return 0
	case r == 0xFE0E || r == 0xFE0F: // variation selectors
		return 0
	case IsCombiningMark(r):
		return 0
	case isRegionalIndicator(r):
		return 2
	case EmojiPropertyOf(r) == EmojiPresentation:
		return 2
	case unicode.In(r, eastAsianAmbiguous):
		if mode == EastAsianWide {
			return 2
		}
		return 1
	}
	// Delegate wide/fullwidth classification to the UAX#11 tables.
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	w := uax11.Width(buf[:n], uax11.LatinContext)
	if w < 0 {
		return 1
	}
	return w
}

// StringWidth returns the number of terminal cells a string occupies,
// summing per-grapheme widths. The width of a grapheme cluster is the
// width of its base code-point.
func StringWidth(s string, mode EastAsianMode) int {
	total := 0
	iter := NewGraphemeIterator(s)
	for iter.Next() {
		r, _ := utf8.DecodeRuneInString(iter.Grapheme())
		total += WidthOf(r, mode)
	}
	return total
}

func isRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}
