package gfx

import (
	"image"
	"testing"

	"github.com/npillmayer/celltype/core/font/ot"
	"github.com/npillmayer/celltype/core/font/otquery"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestColorComponents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	c := Color(0x11223344)
	assert.EqualValues(t, 0x11, c.R())
	assert.EqualValues(t, 0x22, c.G())
	assert.EqualValues(t, 0x33, c.B())
	assert.EqualValues(t, 0x44, c.A())
	assert.Equal(t, c, RGBA(0x11, 0x22, 0x33, 0x44))
	assert.EqualValues(t, 0xff, c.WithAlpha(0xff).A())
}

func TestSoftwareBackendBlit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	target := make([]byte, 4*4*4)
	backend, err := NewSoftwareBackend(target, 4, 4)
	require.NoError(t, err)
	tile := []byte{1, 2, 3, 4, 5, 6, 7, 8} // 2×1 pixels
	require.NoError(t, backend.BlitRegion(tile, 1, 2, 2, 1))
	offset := (2*4 + 1) * 4
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, target[offset:offset+8])
	require.NoError(t, backend.Flush())
}

func TestSoftwareBackendClips(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	target := make([]byte, 2*2*4)
	backend, err := NewSoftwareBackend(target, 2, 2)
	require.NoError(t, err)
	tile := make([]byte, 3*3*4)
	// partially outside: must not panic and must not fail
	assert.NoError(t, backend.BlitRegion(tile, -1, -1, 3, 3))
}

func TestDirtyList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	var dl DirtyList
	dl.Mark(image.Rect(0, 0, 10, 10))
	dl.Mark(image.Rect(5, 5, 15, 15)) // overlaps: merged
	assert.Equal(t, 1, len(dl.Regions()))
	assert.Equal(t, image.Rect(0, 0, 15, 15), dl.Regions()[0])
	dl.Mark(image.Rect(100, 100, 110, 110))
	assert.Equal(t, 2, len(dl.Regions()))
	for i := 0; i <= maxDirtyAge; i++ {
		dl.AgeAndDrop()
	}
	assert.Equal(t, 0, len(dl.Regions()))
}

func TestRasterizeOutline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	otf, err := ot.Parse(goregular.TTF)
	require.NoError(t, err)
	gid := otquery.GlyphIndex(otf, 'A')
	contours := otquery.Outline(otf, gid)
	require.NotEmpty(t, contours)
	//
	upem, _ := otquery.UnitsPerEm(otf)
	scale := 16.0 / float64(upem)
	coverage := RasterizeOutline(contours, scale, 16, 20, 1, 16)
	//
	opaque := 0
	for _, a := range coverage.Pix {
		if a > 0 {
			opaque++
		}
	}
	assert.Greater(t, opaque, 10, "expected 'A' at 16px to cover pixels")
}

func TestRasterizeEmptyOutline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	coverage := RasterizeOutline(nil, 1.0, 8, 8, 0, 0)
	for _, a := range coverage.Pix {
		assert.Zero(t, a)
	}
}
