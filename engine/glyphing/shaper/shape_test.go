package shaper

import (
	"testing"

	"github.com/npillmayer/celltype/core/font"
	"github.com/npillmayer/celltype/core/font/ot"
	"github.com/npillmayer/celltype/core/font/otquery"
	"github.com/npillmayer/celltype/engine/glyphing"
	"github.com/npillmayer/celltype/engine/uniprop"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams(t *testing.T) glyphing.Params {
	tc, err := font.FallbackFont().PrepareCase(12.0)
	require.NoError(t, err)
	return glyphing.Params{Font: tc}
}

func ligaturesOff() []glyphing.FeatureRange {
	return []glyphing.FeatureRange{
		glyphing.WholeText(glyphing.FeatureLiga, false),
		glyphing.WholeText(glyphing.FeatureClig, false),
	}
}

func TestShapeSimple(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	sh := New()
	seq, err := sh.Shape("Hello", testParams(t))
	require.NoError(t, err)
	assert.Equal(t, 5, len(seq.Glyphs))
	for i, g := range seq.Glyphs {
		assert.Equal(t, i, g.ClusterID)
		assert.NotZero(t, g.GID, "expected a glyph for %#U", g.CodePoint)
		assert.Greater(t, g.XAdvance, 0.0)
	}
	assert.Greater(t, seq.W, 0.0)
	assert.Greater(t, seq.H, 0.0)
}

func TestShapeEqualsLigature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	params := testParams(t)
	sh := New()
	//
	// with ligatures on, "==" collapses into a single glyph with the
	// summed (and kerned) advance
	otf := params.Font.ScalableFontParent().SFNT
	gid := otquery.GlyphIndex(otf, '=')
	adv := params.Font.Scale(otquery.GlyphMetrics(otf, gid).Advance)
	kern := params.Font.Scale(int32(otquery.Kerning(otf, gid, gid)))
	//
	seq, err := sh.Shape("==", params)
	require.NoError(t, err)
	require.Equal(t, 1, len(seq.Glyphs))
	assert.Equal(t, 0, seq.Glyphs[0].ClusterID)
	assert.NotZero(t, seq.Glyphs[0].Mask&MaskLiga)
	assert.InDelta(t, adv+adv+kern, seq.Glyphs[0].XAdvance, 0.001)
	//
	// with ligatures off, two glyphs with cluster ids 0 and 1
	params.Features = ligaturesOff()
	seq, err = sh.Shape("==", params)
	require.NoError(t, err)
	require.Equal(t, 2, len(seq.Glyphs))
	assert.Equal(t, 0, seq.Glyphs[0].ClusterID)
	assert.Equal(t, 1, seq.Glyphs[1].ClusterID)
}

func TestShapeFontLigature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	sh := New()
	sh.AddLigature([]rune("ff"), ot.GlyphIndex(0xE100))
	seq, err := sh.Shape("ff", testParams(t))
	require.NoError(t, err)
	require.Equal(t, 1, len(seq.Glyphs))
	assert.EqualValues(t, 0xE100, seq.Glyphs[0].GID)
	assert.Equal(t, 0, seq.Glyphs[0].ClusterID)
}

func TestShapeLongestMatchWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	sh := New()
	// "===" must be matched as one 3-glyph ligature, not "==" + "="
	seq, err := sh.Shape("===", testParams(t))
	require.NoError(t, err)
	require.Equal(t, 1, len(seq.Glyphs))
	assert.Equal(t, 0, seq.Glyphs[0].ClusterID)
}

func TestShapeBidiRuns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	sh := New()
	text := "Hello מרחב"
	seq, err := sh.Shape(text, testParams(t))
	require.NoError(t, err)
	require.Equal(t, 10, len(seq.Glyphs))
	//
	// Hebrew glyphs appear reversed relative to logical order: their
	// cluster ids strictly decrease in storage order
	var hebrew []int
	for _, g := range seq.Glyphs {
		if g.CodePoint >= 0x0590 && g.CodePoint <= 0x05FF {
			hebrew = append(hebrew, g.ClusterID)
		}
	}
	require.Equal(t, 4, len(hebrew))
	for i := 1; i < len(hebrew); i++ {
		assert.Less(t, hebrew[i], hebrew[i-1])
	}
	// the Latin prefix stays in logical = visual order
	assert.Equal(t, 0, seq.Glyphs[0].ClusterID)
}

func TestShapeAdjacentRTLRuns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	// Hebrew followed by Arabic: script itemization splits the text
	// into two runs, both at embedding level 1. Rule L2 places the
	// logically later (Arabic) run leftmost, so cluster ids decrease
	// strictly across the whole storage order, exactly as for a single
	// right-to-left region.
	sh := New()
	seq, err := sh.Shape("שלום مرحبا", testParams(t))
	require.NoError(t, err)
	require.Equal(t, 10, len(seq.Glyphs))
	for i := 1; i < len(seq.Glyphs); i++ {
		assert.Less(t, seq.Glyphs[i].ClusterID, seq.Glyphs[i-1].ClusterID,
			"glyph %d out of visual order", i)
	}
	// the Arabic run (logically last) must come first in storage
	assert.Equal(t, uniprop.ScriptArabic, uniprop.ScriptFor(seq.Glyphs[0].CodePoint))
	last := seq.Glyphs[len(seq.Glyphs)-1]
	assert.Equal(t, uniprop.ScriptHebrew, uniprop.ScriptFor(last.CodePoint))
}

func TestVisualRunOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	// all left-to-right: identity
	assert.Equal(t, []int{0, 1}, visualRunOrder([]uint8{0, 0}))
	// two adjacent RTL runs swap
	assert.Equal(t, []int{1, 0}, visualRunOrder([]uint8{1, 1}))
	// LTR, RTL, RTL, LTR: only the RTL pair reverses
	assert.Equal(t, []int{0, 2, 1, 3}, visualRunOrder([]uint8{0, 1, 1, 0}))
	// an LTR run embedded between RTL runs (levels 1,2,1): the level-2
	// sequence reverses first (a no-op for one run), then the whole
	// level-1..2 stretch reverses
	assert.Equal(t, []int{2, 1, 0}, visualRunOrder([]uint8{1, 2, 1}))
	assert.Empty(t, visualRunOrder(nil))
}

func TestShapeClusterInvariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	sh := New()
	text := "a≤b ≠ c"
	seq, err := sh.Shape(text, testParams(t))
	require.NoError(t, err)
	// the set of distinct cluster ids is a subset of byte offsets of
	// cluster starts
	starts := make(map[int]bool)
	for i := range text {
		starts[i] = true
	}
	for _, g := range seq.Glyphs {
		assert.True(t, starts[g.ClusterID], "cluster id %d is not a rune start", g.ClusterID)
	}
}

func TestShapeInvalidUTF8(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	sh := New()
	seq, err := sh.Shape("a\xffb", testParams(t))
	require.NoError(t, err) // shaping never fails on text input
	require.Equal(t, 3, len(seq.Glyphs))
	assert.Equal(t, '�', seq.Glyphs[1].CodePoint)
	assert.Equal(t, 1, seq.Glyphs[1].ClusterID)
	assert.Equal(t, 2, seq.Glyphs[2].ClusterID) // one byte of advance
}

func TestShapeArabicJoiningForms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	sh := New()
	seq, err := sh.Shape("مرحبا", testParams(t))
	require.NoError(t, err)
	require.Equal(t, 5, len(seq.Glyphs))
	forms := make(map[rune]uint32)
	for _, g := range seq.Glyphs {
		forms[g.CodePoint] = g.Mask & (MaskIsol | MaskInit | MaskMedi | MaskFina)
	}
	assert.Equal(t, MaskInit, forms['م'], "meem should take initial form")
	assert.Equal(t, MaskFina, forms['ر'], "reh should take final form")
	assert.Equal(t, MaskInit, forms['ح'], "hah should take initial form")
	assert.Equal(t, MaskMedi, forms['ب'], "beh should take medial form")
	assert.Equal(t, MaskFina, forms['ا'], "alef should take final form")
}

func TestShapeArabicIsVisuallyReversed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	sh := New()
	seq, err := sh.Shape("مرحبا", testParams(t))
	require.NoError(t, err)
	for i := 1; i < len(seq.Glyphs); i++ {
		assert.Less(t, seq.Glyphs[i].ClusterID, seq.Glyphs[i-1].ClusterID)
	}
}

func TestShapePrefixConsistency(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	// ligature application is idempotent: shaping a prefix that does not
	// cut a ligature equals the prefix of shaping the full text
	sh := New()
	params := testParams(t)
	full, err := sh.Shape("abc def", params)
	require.NoError(t, err)
	prefix, err := sh.Shape("abc", params)
	require.NoError(t, err)
	for i := range prefix.Glyphs {
		assert.Equal(t, full.Glyphs[i].GID, prefix.Glyphs[i].GID)
		assert.Equal(t, full.Glyphs[i].ClusterID, prefix.Glyphs[i].ClusterID)
	}
}

func TestShapeComposesMarks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	sh := New()
	// decomposed e + combining acute: the font has a precomposed é
	seq, err := sh.Shape("éx", testParams(t))
	require.NoError(t, err)
	require.Equal(t, 2, len(seq.Glyphs))
	assert.Equal(t, 'é', seq.Glyphs[0].CodePoint)
	assert.Equal(t, 0, seq.Glyphs[0].ClusterID)
	assert.Equal(t, 'x', seq.Glyphs[1].CodePoint)
	assert.Equal(t, 3, seq.Glyphs[1].ClusterID)
}

func TestShapeBufferInvariant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	buf := NewBuffer(4)
	buf.Append(glyphing.GlyphInfo{ClusterID: 0}, glyphing.GlyphPosition{XAdvance: 1})
	buf.Append(glyphing.GlyphInfo{ClusterID: 1}, glyphing.GlyphPosition{XAdvance: 2})
	buf.Append(glyphing.GlyphInfo{ClusterID: 2}, glyphing.GlyphPosition{XAdvance: 3})
	buf.Collapse(0, 2, glyphing.GlyphInfo{GID: 7})
	assert.Equal(t, 2, buf.Len())
	assert.Equal(t, 0, buf.Info(0).ClusterID) // lowest cluster id inherited
	assert.InDelta(t, 3.0, buf.Position(0).XAdvance, 0.001)
	assert.Equal(t, 2, buf.Info(1).ClusterID)
}
