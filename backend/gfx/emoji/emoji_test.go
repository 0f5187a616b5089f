package emoji

import (
	"testing"

	"github.com/npillmayer/celltype/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTypeCase(t *testing.T) *font.TypeCase {
	t.Helper()
	tc, err := font.FallbackFont().PrepareCase(12.0)
	require.NoError(t, err)
	return tc
}

func TestClassify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	assert.Equal(t, ClassSimple, Classify([]rune{0x1F600}))
	assert.Equal(t, ClassFlag, Classify([]rune{0x1F1E9, 0x1F1EA})) // DE
	assert.Equal(t, ClassKeycap, Classify([]rune{'1', 0xFE0F, 0x20E3}))
	assert.Equal(t, ClassKeycap, Classify([]rune{'#', 0x20E3}))
	assert.Equal(t, ClassSkinTone, Classify([]rune{0x1F44B, 0x1F3FD})) // wave + tone
	assert.Equal(t, ClassZWJ, Classify([]rune{0x1F468, 0x200D, 0x1F469, 0x200D, 0x1F466}))
	assert.Equal(t, ClassTag, Classify([]rune{0x1F3F4, 0xE0067, 0xE0062, 0xE007F}))
}

func TestComposeSimple(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	comp := NewComposer()
	tile := comp.Compose([]rune{'@'}, testTypeCase(t), 16)
	assert.Equal(t, 16, tile.Bounds().Dx())
	assert.Equal(t, 16, tile.Bounds().Dy())
	nonzero := 0
	for i := 3; i < len(tile.Pix); i += 4 {
		if tile.Pix[i] > 0 {
			nonzero++
		}
	}
	assert.Greater(t, nonzero, 0, "expected monochrome rendering to cover pixels")
}

func TestComposeFlagStacksTwoComponents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	comp := NewComposer()
	tile := comp.Compose([]rune{0x1F1E9, 0x1F1EA}, testTypeCase(t), 16)
	// width = sum of component widths, height = max
	assert.Equal(t, 32, tile.Bounds().Dx())
	assert.Equal(t, 16, tile.Bounds().Dy())
}

func TestComposeCached(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	comp := NewComposer()
	tc := testTypeCase(t)
	seq := []rune{'1', 0x20E3}
	first := comp.Compose(seq, tc, 16)
	second := comp.Compose(seq, tc, 16)
	assert.Same(t, first, second, "composed tiles are cached by sequence hash")
	other := comp.Compose(seq, tc, 20)
	assert.NotSame(t, first, other, "cell height participates in the key")
}

func TestSkinToneTinting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	// tinting blends a light pixel toward the tone color at the fixed
	// 60/195 ratio
	base := uint8(0xC8)
	tone := toneColors[2]
	got := tintChannel(base, tone.R())
	want := uint8((uint32(base)*60 + uint32(tone.R())*195) / 255)
	assert.Equal(t, want, got)
	// dark pixels are preserved by tintTile
	assert.LessOrEqual(t, uint8(0x20), uint8(darkThreshold))
}

func TestComposeZWJ(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	comp := NewComposer()
	// man ZWJ woman: two components side by side
	tile := comp.Compose([]rune{0x1F468, 0x200D, 0x1F469}, testTypeCase(t), 16)
	assert.Equal(t, 32, tile.Bounds().Dx())
}

func TestComposeForcedText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	comp := NewComposer()
	// explicit VS15 keeps the digit out of emoji presentation
	tile := comp.Compose([]rune{'1', 0xFE0E}, testTypeCase(t), 16)
	assert.Equal(t, 16, tile.Bounds().Dx())
}

func TestComposeEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	comp := NewComposer()
	tile := comp.Compose(nil, testTypeCase(t), 16)
	assert.Equal(t, 0, tile.Bounds().Dx())
}
