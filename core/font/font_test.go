package font

import (
	"testing"

	"github.com/npillmayer/celltype/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseOpenTypeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.fonts")
	defer teardown()
	//
	f, err := ParseOpenTypeFont(goregular.TTF)
	assert.NoError(t, err)
	assert.NotNil(t, f.SFNT)
	assert.NotEmpty(t, f.Fontname)
}

func TestPrepareCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.fonts")
	defer teardown()
	//
	f := FallbackFont()
	tc, err := f.PrepareCase(12.0)
	assert.NoError(t, err)
	assert.Equal(t, 12.0, tc.PtSize())
	assert.EqualValues(t, 2048, tc.UnitsPerEm())
	// one em scales to the point-size
	assert.InDelta(t, 12.0, tc.Scale(2048), 0.001)
}

func TestArenaHandles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.fonts")
	defer teardown()
	//
	arena := NewArena()
	id, err := arena.StoreFont(FallbackFont())
	assert.NoError(t, err)
	assert.NotZero(t, id)
	f, err := arena.Font(id)
	assert.NoError(t, err)
	assert.Equal(t, "Go Regular", f.Fontname)
	//
	_, err = arena.Font(FontID(99))
	assert.Error(t, err)
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestArenaUnloadInvalidates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.fonts")
	defer teardown()
	//
	arena := NewArena()
	id, _ := arena.StoreFont(FallbackFont())
	v1 := arena.Version()
	_, err := arena.TypeCase("Go Regular", 12.0)
	assert.NoError(t, err)
	arena.Unload(id)
	assert.Greater(t, arena.Version(), v1)
	_, err = arena.Font(id)
	assert.Error(t, err)
}

func TestArenaFallbackTypeCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.fonts")
	defer teardown()
	//
	arena := NewArena()
	tc, err := arena.TypeCase("No Such Font", 10.0)
	assert.Error(t, err) // reported as missing …
	assert.NotNil(t, tc) // … but usable fallback is returned
	assert.Equal(t, "Go Regular", tc.ScalableFontParent().Fontname)
}

func TestNormalizeFontname(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.fonts")
	defer teardown()
	//
	assert.Equal(t, "jetbrains_mono", NormalizeFontname("JetBrains Mono.ttf"))
}
