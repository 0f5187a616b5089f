package uniprop

import (
	"unicode"

	"golang.org/x/text/unicode/bidi"
)

// Script identifies the writing system of a code-point. The set is
// restricted to scripts the shaper distinguishes; everything else is
// ScriptOther.
type Script int

// Scripts relevant for shaping decisions.
const (
	ScriptCommon Script = iota
	ScriptInherited
	ScriptLatin
	ScriptGreek
	ScriptCyrillic
	ScriptArabic
	ScriptHebrew
	ScriptSyriac
	ScriptThaana
	ScriptDevanagari
	ScriptBengali
	ScriptTamil
	ScriptTelugu
	ScriptKannada
	ScriptMalayalam
	ScriptThai
	ScriptHan
	ScriptHangul
	ScriptHiragana
	ScriptKatakana
	ScriptOther
)

//go:generate stringer -type=Script

var scriptTables = []struct {
	script Script
	table  *unicode.RangeTable
}{
	{ScriptLatin, unicode.Latin},
	{ScriptGreek, unicode.Greek},
	{ScriptCyrillic, unicode.Cyrillic},
	{ScriptArabic, unicode.Arabic},
	{ScriptHebrew, unicode.Hebrew},
	{ScriptSyriac, unicode.Syriac},
	{ScriptThaana, unicode.Thaana},
	{ScriptDevanagari, unicode.Devanagari},
	{ScriptBengali, unicode.Bengali},
	{ScriptTamil, unicode.Tamil},
	{ScriptTelugu, unicode.Telugu},
	{ScriptKannada, unicode.Kannada},
	{ScriptMalayalam, unicode.Malayalam},
	{ScriptThai, unicode.Thai},
	{ScriptHan, unicode.Han},
	{ScriptHangul, unicode.Hangul},
	{ScriptHiragana, unicode.Hiragana},
	{ScriptKatakana, unicode.Katakana},
}

// ScriptFor returns the script of a code-point. Combining marks resolve
// to ScriptInherited, scriptless punctuation and spaces to ScriptCommon.
func ScriptFor(r rune) Script {
	if unicode.In(r, unicode.Inherited) {
		return ScriptInherited
	}
	if unicode.In(r, unicode.Common) {
		return ScriptCommon
	}
	for _, entry := range scriptTables {
		if unicode.In(r, entry.table) {
			return entry.script
		}
	}
	return ScriptOther
}

// IsComplex reports whether a script needs contextual shaping beyond
// ligatures and kerning (cursive joining or syllable reordering).
func (s Script) IsComplex() bool {
	switch s {
	case ScriptArabic, ScriptSyriac, ScriptThaana,
		ScriptDevanagari, ScriptBengali, ScriptTamil,
		ScriptTelugu, ScriptKannada, ScriptMalayalam:
		return true
	}
	return false
}

// IsIndic reports whether a script follows the Indic syllable model.
func (s Script) IsIndic() bool {
	switch s {
	case ScriptDevanagari, ScriptBengali, ScriptTamil,
		ScriptTelugu, ScriptKannada, ScriptMalayalam:
		return true
	}
	return false
}

// --- BiDi classes ----------------------------------------------------------

// BidiClass returns the bidirectional class of a code-point, as defined
// by UAX #9.
func BidiClass(r rune) bidi.Class {
	props, _ := bidi.LookupRune(r)
	return props.Class()
}

// IsRightToLeft reports whether a code-point has a right-to-left bidi
// class (R or AL).
func IsRightToLeft(r rune) bool {
	switch BidiClass(r) {
	case bidi.R, bidi.AL:
		return true
	}
	return false
}

// --- General category ------------------------------------------------------

// GeneralCategory returns the two-letter Unicode general category of a
// code-point, e.g. "Lu" or "Mn". Unassigned code-points yield "Cn".
func GeneralCategory(r rune) string {
	for name, table := range unicode.Categories {
		if len(name) == 2 && unicode.In(r, table) {
			return name
		}
	}
	return "Cn"
}

// IsCombiningMark reports whether a code-point is a combining mark
// (categories Mn, Mc, Me).
func IsCombiningMark(r rune) bool {
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Me)
}

// --- Joining types ---------------------------------------------------------

// JoiningType describes how a code-point of a cursive script connects to
// its neighbors, following the Arabic joining model of UAX #9 / ArabicShaping.
type JoiningType int

// Joining types for cursive scripts.
const (
	JoiningNone JoiningType = iota
	JoiningTransparent
	JoiningRight // joins to the glyph at its right (logical: previous)
	JoiningLeft
	JoiningDual
	JoiningCausing
)

//go:generate stringer -type=JoiningType

type joiningRange struct {
	lo, hi rune
	jt     JoiningType
}

// The Arabic block, condensed from ArabicShaping.txt. Right-joining
// letters are listed explicitly; unlisted Arabic letters other than
// hamza are dual-joining.
var rightJoining = []joiningRange{
	{0x0622, 0x0625, JoiningRight}, // alef variants
	{0x0627, 0x0627, JoiningRight}, // alef
	{0x0629, 0x0629, JoiningRight}, // teh marbuta
	{0x062F, 0x0632, JoiningRight}, // dal, thal, reh, zain
	{0x0648, 0x0648, JoiningRight}, // waw
	{0x0671, 0x0673, JoiningRight},
	{0x0675, 0x0677, JoiningRight},
	{0x0688, 0x0699, JoiningRight},
	{0x06C0, 0x06CB, JoiningRight},
	{0x06CD, 0x06CD, JoiningRight},
	{0x06CF, 0x06CF, JoiningRight},
	{0x06D2, 0x06D3, JoiningRight},
	{0x06D5, 0x06D5, JoiningRight},
	{0x0710, 0x0710, JoiningRight}, // syriac alaph
	{0x0715, 0x0716, JoiningRight},
	{0x0718, 0x0719, JoiningRight},
	{0x071E, 0x071E, JoiningRight},
	{0x0728, 0x0728, JoiningRight},
	{0x072A, 0x072A, JoiningRight},
	{0x072C, 0x072C, JoiningRight},
}

// JoiningTypeFor returns the joining type of a code-point. Code-points
// outside of cursive scripts are JoiningNone; combining marks and format
// controls are transparent so they do not interrupt joining.
func JoiningTypeFor(r rune) JoiningType {
	if r == 0x200D { // zero width joiner
		return JoiningCausing
	}
	if r == 0x200C { // zero width non-joiner
		return JoiningNone
	}
	if unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf) {
		return JoiningTransparent
	}
	script := ScriptFor(r)
	if script != ScriptArabic && script != ScriptSyriac && script != ScriptThaana {
		return JoiningNone
	}
	if !unicode.IsLetter(r) {
		return JoiningNone
	}
	for _, jr := range rightJoining {
		if r >= jr.lo && r <= jr.hi {
			return jr.jt
		}
	}
	if r == 0x0621 { // hamza stands alone
		return JoiningNone
	}
	// Thaana and the remaining Arabic/Syriac letters join on both sides.
	return JoiningDual
}
