package cursor

import (
	"testing"

	"github.com/npillmayer/celltype/engine/uniprop"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, text string, width int) *ShapingAnalysis {
	t.Helper()
	return Analyze(text, width, uniprop.EastAsianStandard)
}

func TestPermutationsInverse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	for _, text := range []string{"", "Hello", "Hello מרחב", "שלום world", "漢字 kanji"} {
		a := analyze(t, text, 0)
		require.Equal(t, len(text), len(a.LogicalToVisual))
		require.Equal(t, len(text), len(a.VisualToLogical))
		for logical, visual := range a.LogicalToVisual {
			assert.Equal(t, logical, a.VisualToLogical[visual])
		}
	}
}

func TestGraphemeBreakEndpoints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	for _, text := range []string{"", "a", "héllo", "👨‍👩‍👧‍👦a"} {
		a := analyze(t, text, 0)
		assert.Equal(t, 0, a.GraphemeBreaks[0])
		assert.Equal(t, len(text), a.GraphemeBreaks[len(a.GraphemeBreaks)-1])
		for i := 1; i < len(a.GraphemeBreaks); i++ {
			assert.Greater(t, a.GraphemeBreaks[i], a.GraphemeBreaks[i-1])
		}
	}
}

func TestLineBreaksExplicit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	a := analyze(t, "one\ntwo\nthree", 0)
	assert.Equal(t, []int{0, 4, 8, 13}, a.LineBreaks)
	assert.Equal(t, 3, a.LineCount())
}

func TestLineBreaksSoft(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	a := analyze(t, "abcdefgh", 4)
	assert.Equal(t, []int{0, 4, 8}, a.LineBreaks)
}

func TestCursorRightThroughBidiText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	text := "Hello مرحبا"
	a := analyze(t, text, 0)
	c := New(a)
	assert.Equal(t, 0, c.Logical)
	assert.False(t, c.RTLContext)
	//
	prevLogical := -1
	var visualInRTL []int
	sawRTL := false
	for i := 0; i < 11; i++ {
		assert.Greater(t, c.Logical, prevLogical, "logical index must advance monotonically")
		prevLogical = c.Logical
		if c.RTLContext {
			sawRTL = true
			visualInRTL = append(visualInRTL, c.Visual)
		}
		c.Right()
	}
	assert.True(t, sawRTL, "cursor must flip rtl_context inside the Arabic run")
	for i := 1; i < len(visualInRTL); i++ {
		assert.Less(t, visualInRTL[i], visualInRTL[i-1],
			"visual index must decrease while logical advances in RTL")
	}
	assert.Equal(t, uniprop.ScriptArabic, New(a).ScriptContextAt(7))
}

// ScriptContextAt is a test helper placing a cursor and reading its context.
func (c *Cursor) ScriptContextAt(logical int) uniprop.Script {
	c.MoveTo(logical)
	return c.ScriptContext
}

func TestCursorGraphemeMovement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	text := "a👨‍👩‍👧‍👦b"
	a := analyze(t, text, 0)
	c := New(a)
	c.GraphemeRight()
	assert.Equal(t, 1, c.Logical)
	c.GraphemeRight()
	assert.Equal(t, 26, c.Logical) // skipped the whole family sequence
	c.GraphemeLeft()
	assert.Equal(t, 1, c.Logical)
	c.GraphemeLeft()
	assert.Equal(t, 0, c.Logical)
	c.GraphemeLeft() // at start: no-op
	assert.Equal(t, 0, c.Logical)
}

func TestCursorWordMovement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	c := New(analyze(t, "foo bar baz", 0))
	c.WordRight()
	assert.Greater(t, c.Logical, 0)
	c.MoveTo(11)
	c.WordLeft()
	assert.Less(t, c.Logical, 11)
}

func TestCursorLineMovement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	c := New(analyze(t, "short\nlonger line\nx", 0))
	c.MoveTo(8)
	assert.Equal(t, 1, c.Line)
	c.LineStart()
	assert.Equal(t, 6, c.Logical)
	c.LineEnd()
	assert.Equal(t, 17, c.Logical) // before the newline
}

func TestCursorUpDownClamped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	c := New(analyze(t, "abcdef\nxy\nlmnopq", 0))
	c.MoveTo(4) // column 4 on line 0
	assert.Equal(t, 4, c.Column)
	c.Down() // line 1 is shorter: clamp to its end
	assert.Equal(t, 1, c.Line)
	assert.LessOrEqual(t, c.Column, 2)
	c.Down()
	assert.Equal(t, 2, c.Line)
	c.Up()
	c.Up()
	assert.Equal(t, 0, c.Line)
}

func TestCursorColumnAccountsForWideChars(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	c := New(analyze(t, "漢a", 0))
	c.GraphemeRight()
	assert.Equal(t, 2, c.Column) // CJK ideograph occupies two cells
}
