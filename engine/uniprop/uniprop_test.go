package uniprop

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/bidi"
)

func TestScriptFor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	assert.Equal(t, ScriptLatin, ScriptFor('A'))
	assert.Equal(t, ScriptArabic, ScriptFor('م'))
	assert.Equal(t, ScriptHebrew, ScriptFor('מ'))
	assert.Equal(t, ScriptDevanagari, ScriptFor('क'))
	assert.Equal(t, ScriptHan, ScriptFor('漢'))
	assert.Equal(t, ScriptCommon, ScriptFor(' '))
}

func TestScriptComplexity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	assert.True(t, ScriptArabic.IsComplex())
	assert.True(t, ScriptDevanagari.IsComplex())
	assert.True(t, ScriptDevanagari.IsIndic())
	assert.False(t, ScriptArabic.IsIndic())
	assert.False(t, ScriptLatin.IsComplex())
}

func TestBidiClass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	assert.Equal(t, bidi.L, BidiClass('A'))
	assert.Equal(t, bidi.AL, BidiClass('م'))
	assert.Equal(t, bidi.R, BidiClass('מ'))
	assert.True(t, IsRightToLeft('م'))
	assert.False(t, IsRightToLeft('A'))
}

func TestGeneralCategory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	assert.Equal(t, "Lu", GeneralCategory('A'))
	assert.Equal(t, "Nd", GeneralCategory('7'))
	assert.True(t, IsCombiningMark(0x0301)) // combining acute
}

func TestJoiningTypes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	assert.Equal(t, JoiningDual, JoiningTypeFor('ب'))     // beh
	assert.Equal(t, JoiningRight, JoiningTypeFor('ا'))    // alef
	assert.Equal(t, JoiningRight, JoiningTypeFor('د'))    // dal
	assert.Equal(t, JoiningNone, JoiningTypeFor('ء'))     // hamza
	assert.Equal(t, JoiningNone, JoiningTypeFor('A'))
	assert.Equal(t, JoiningTransparent, JoiningTypeFor(0x064B)) // fathatan
	assert.Equal(t, JoiningCausing, JoiningTypeFor(0x200D))
}

func TestWidthOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	assert.Equal(t, 1, WidthOf('A', EastAsianStandard))
	assert.Equal(t, 2, WidthOf('漢', EastAsianStandard))
	assert.Equal(t, 0, WidthOf(0x0301, EastAsianStandard))
	assert.Equal(t, 0, WidthOf(0x200B, EastAsianStandard))
	assert.Equal(t, 2, WidthOf(0x1F1E9, EastAsianStandard)) // regional indicator
	assert.Equal(t, 2, WidthOf(0x1F600, EastAsianStandard)) // emoji grinning face
}

func TestWidthAmbiguous(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	// Greek alpha is East-Asian-ambiguous
	assert.Equal(t, 1, WidthOf('α', EastAsianStandard))
	assert.Equal(t, 2, WidthOf('α', EastAsianWide))
}

func TestGraphemeBreaksASCII(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	breaks := GraphemeBreaks("abc")
	assert.Equal(t, []int{0, 1, 2, 3}, breaks)
}

func TestGraphemeBreaksCombining(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	// e + combining acute forms one cluster of 3 bytes
	breaks := GraphemeBreaks("éx")
	assert.Equal(t, []int{0, 3, 4}, breaks)
}

func TestGraphemeBreaksZWJFamily(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	family := "👨‍👩‍👧‍👦" // 25 bytes in UTF-8
	assert.Equal(t, 25, len(family))
	breaks := GraphemeBreaks(family + "a")
	assert.Equal(t, []int{0, 25, 26}, breaks)
}

func TestGraphemeBreaksEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	assert.Equal(t, []int{0}, GraphemeBreaks(""))
}

func TestWordIteration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	iter := NewWordIterator("war 42!")
	var words []string
	var classes []WordClass
	for iter.Next() {
		words = append(words, iter.Word())
		classes = append(classes, iter.Class())
	}
	assert.Contains(t, words, "war")
	assert.Contains(t, words, "42")
	assert.Contains(t, classes, WordAlphabetic)
	assert.Contains(t, classes, WordNumeric)
}

func TestGraphemeBreakClassOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	assert.Equal(t, GraphemeCR, GraphemeBreakClassOf('\r'))
	assert.Equal(t, GraphemeLF, GraphemeBreakClassOf('\n'))
	assert.Equal(t, GraphemeZWJ, GraphemeBreakClassOf(0x200D))
	assert.Equal(t, GraphemeExtend, GraphemeBreakClassOf(0x0301))
	assert.Equal(t, GraphemeRegionalIndicator, GraphemeBreakClassOf(0x1F1E6))
	assert.Equal(t, GraphemeOther, GraphemeBreakClassOf('x'))
}

func TestStringWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	assert.Equal(t, 5, StringWidth("hello", EastAsianStandard))
	assert.Equal(t, 4, StringWidth("漢字", EastAsianStandard))
	assert.Equal(t, 1, StringWidth("é", EastAsianStandard))
}
