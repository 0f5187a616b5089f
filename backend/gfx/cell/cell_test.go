package cell

import (
	"math"
	"testing"

	"github.com/npillmayer/celltype/backend/gfx"
	"github.com/npillmayer/celltype/backend/gfx/atlas"
	"github.com/npillmayer/celltype/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	white = gfx.Color(0xFFFFFFFF)
	black = gfx.Color(0x000000FF)
	clear = gfx.Color(0x00000000)
)

func testSetup(t *testing.T, cellW, cellH int, align Alignment) (*Renderer, *font.TypeCase) {
	t.Helper()
	tc, err := font.FallbackFont().PrepareCase(12.0)
	require.NoError(t, err)
	rend := NewRenderer(cellW, cellH, align, atlas.New(256, 256))
	return rend, tc
}

func renderOne(t *testing.T, rend *Renderer, tc *font.TypeCase, cp rune,
	fg, bg gfx.Color, effects Effects) []byte {
	t.Helper()
	cellW, cellH := rend.CellSize()
	buffer := make([]byte, cellW*cellH*4)
	_, err := rend.RenderCell(cp, 0, 0, 1, tc, atlas.StyleRegular, fg, bg,
		effects, buffer, cellW, cellH)
	require.NoError(t, err)
	return buffer
}

func opaqueCount(buffer []byte) int {
	n := 0
	for i := 3; i < len(buffer); i += 4 {
		if buffer[i] == 0xff {
			n++
		}
	}
	return n
}

func TestRenderCellDimensions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	rend, tc := testSetup(t, 12, 16, AlignBaseline)
	buffer := renderOne(t, rend, tc, 'A', white, clear, 0)
	assert.Equal(t, 12*16*4, len(buffer))
	assert.Greater(t, opaqueCount(buffer), 5, "glyph should cover pixels")
}

func TestRenderCellUnderline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	rend, tc := testSetup(t, 12, 16, AlignBaseline)
	plain := renderOne(t, rend, tc, 'A', white, clear, 0)
	underlined := renderOne(t, rend, tc, 'A', white, clear, EffectUnderline)
	//
	// the underline contributes at least one full row of opaque pixels
	// beyond the glyph's own coverage
	scale := tc.PtSize() / float64(tc.UnitsPerEm())
	baseline := int(math.Round(float64(tc.Metrics().Ascent) * scale))
	if baseline >= 16 {
		baseline = 15
	}
	row := baseline - int(math.Round(float64(tc.Metrics().UnderlinePos)*scale))
	if row >= 0 && row < 16 {
		for x := 0; x < 12; x++ {
			off := (row*12 + x) * 4
			assert.EqualValues(t, 0xff, underlined[off+3],
				"underline row %d should be opaque at column %d", row, x)
			assert.EqualValues(t, 0xff, underlined[off+0])
		}
	}
	assert.Greater(t, opaqueCount(underlined), opaqueCount(plain))
}

func TestRenderCellOverlineRow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	rend, tc := testSetup(t, 10, 14, AlignBaseline)
	buffer := renderOne(t, rend, tc, ' ', white, clear, EffectOverline)
	for x := 0; x < 10; x++ {
		off := (overlineRow*10 + x) * 4
		assert.EqualValues(t, 0xff, buffer[off+3], "overline missing at column %d", x)
	}
}

func TestRenderCellReverse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	rend, tc := testSetup(t, 8, 12, AlignBaseline)
	buffer := renderOne(t, rend, tc, ' ', white, black, EffectReverse)
	// reversed: the background is filled with the foreground color
	assert.EqualValues(t, 0xff, buffer[0]) // red channel of white
	assert.EqualValues(t, 0xff, buffer[3])
}

func TestRenderCellInvisible(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	rend, tc := testSetup(t, 8, 12, AlignBaseline)
	visible := renderOne(t, rend, tc, 'X', white, black, 0)
	invisible := renderOne(t, rend, tc, 'X', white, black, EffectInvisible)
	assert.NotEqual(t, visible, invisible)
	// invisible renders background only
	for i := 0; i < len(invisible); i += 4 {
		assert.EqualValues(t, 0x00, invisible[i+0])
		assert.EqualValues(t, 0xff, invisible[i+3])
	}
}

func TestRenderCellBlinkFlag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	rend, tc := testSetup(t, 8, 12, AlignBaseline)
	buffer := make([]byte, 8*12*4)
	blink, err := rend.RenderCell('A', 0, 0, 1, tc, atlas.StyleRegular,
		white, clear, EffectBlink, buffer, 8, 12)
	require.NoError(t, err)
	assert.True(t, blink)
	blink, err = rend.RenderCell('A', 0, 0, 1, tc, atlas.StyleRegular,
		white, clear, 0, buffer, 8, 12)
	require.NoError(t, err)
	assert.False(t, blink)
}

func TestRenderCellCachePurity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	rend, tc := testSetup(t, 12, 16, CenterGlyphs|AlignBaseline)
	first := renderOne(t, rend, tc, 'Q', white, black, EffectUnderline)
	second := renderOne(t, rend, tc, 'Q', white, black, EffectUnderline)
	assert.Equal(t, first, second, "identical keys must yield identical bytes")
	assert.Equal(t, 1, rend.cache.size())
}

func TestRenderCellSymbolPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	rend, tc := testSetup(t, 10, 20, AlignBaseline)
	buffer := renderOne(t, rend, tc, 0xE0B0, white, clear, 0)
	assert.Greater(t, opaqueCount(buffer), 20, "powerline triangle should cover pixels")
}

func TestSetCellSizeInvalidates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	rend, tc := testSetup(t, 12, 16, AlignBaseline)
	renderOne(t, rend, tc, 'A', white, clear, 0)
	assert.Equal(t, 1, rend.cache.size())
	rend.SetCellSize(14, 18)
	assert.Equal(t, 0, rend.cache.size())
	buffer := renderOne(t, rend, tc, 'A', white, clear, 0)
	assert.Equal(t, 14*18*4, len(buffer))
}

func TestRenderCellBadBuffer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	rend, tc := testSetup(t, 12, 16, AlignBaseline)
	short := make([]byte, 16)
	_, err := rend.RenderCell('A', 0, 0, 1, tc, atlas.StyleRegular,
		white, clear, 0, short, 12, 16)
	assert.Error(t, err)
}
