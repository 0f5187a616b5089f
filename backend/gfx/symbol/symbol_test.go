package symbol

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestCovers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	assert.True(t, Covers(PowerlineRightTriangle))
	assert.True(t, Covers(GitBranch))
	assert.True(t, Covers(Home))
	assert.False(t, Covers('A'))
	assert.False(t, Covers(0xE0B4))
}

func TestRightTriangle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	img := Raster(PowerlineRightTriangle, 10, 20)
	// left edge is fully covered
	covered := 0
	for y := 0; y < 20; y++ {
		if img.Pix[y*img.Stride] > 0 {
			covered++
		}
	}
	assert.Greater(t, covered, 16)
	// tip row (vertical center) reaches the right edge
	assert.NotZero(t, img.Pix[10*img.Stride+9])
	// corners are empty
	assert.Zero(t, img.Pix[0*img.Stride+9])
	assert.Zero(t, img.Pix[19*img.Stride+9])
}

func TestLeftTriangleMirrorsRight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	right := Raster(PowerlineRightTriangle, 8, 16)
	left := Raster(PowerlineLeftTriangle, 8, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, right.Pix[y*right.Stride+x], left.Pix[y*left.Stride+(7-x)],
				"mirror mismatch at (%d,%d)", x, y)
		}
	}
}

func TestThinSeparators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	img := Raster(PowerlineRightThin, 8, 16)
	for y := 0; y < 16; y++ {
		assert.NotZero(t, img.Pix[y*img.Stride+7], "right bar missing at row %d", y)
		assert.Zero(t, img.Pix[y*img.Stride+0])
	}
	img = Raster(PowerlineLeftThin, 8, 16)
	for y := 0; y < 16; y++ {
		assert.NotZero(t, img.Pix[y*img.Stride+0], "left bar missing at row %d", y)
	}
}

func TestGitBranchAndHomeNonEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	for _, cp := range []rune{GitBranch, Home} {
		img := Raster(cp, 12, 16)
		nonzero := 0
		for _, a := range img.Pix {
			if a > 0 {
				nonzero++
			}
		}
		assert.Greater(t, nonzero, 10, "symbol %#U should cover pixels", cp)
	}
}

func TestUncoveredSymbolIsBlank(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.render")
	defer teardown()
	//
	img := Raster('X', 8, 8)
	for _, a := range img.Pix {
		assert.Zero(t, a)
	}
}
