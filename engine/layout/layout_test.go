package layout

import (
	"testing"

	"github.com/npillmayer/celltype/engine/uniprop"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	assert.Equal(t, Simple, Classify("plain ascii text\n"))
	assert.Equal(t, Moderate, Classify("naïve café"))
	assert.Equal(t, Complex, Classify("shalom שלום"))
	assert.Equal(t, Complex, Classify("किराया"))
	assert.Equal(t, VeryComplex, Classify("مرحبا and नमस्ते"))
}

func TestPlanSimple(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	p := NewPlanner(uniprop.EastAsianStandard)
	layout := p.Plan("hello\nworld", 80, 12)
	assert.Equal(t, Simple, layout.Complexity)
	assert.Equal(t, 2, len(layout.Lines))
	assert.Equal(t, LineSegment{Start: 0, End: 5, Width: 5}, layout.Lines[0])
	assert.Equal(t, LineSegment{Start: 6, End: 11, Width: 5}, layout.Lines[1])
}

func TestPlanSimpleOverflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	p := NewPlanner(uniprop.EastAsianStandard)
	layout := p.Plan("abcdefghij", 4, 12)
	assert.Equal(t, 3, len(layout.Lines))
	assert.Equal(t, 4, layout.Lines[0].Width)
	assert.Equal(t, 4, layout.Lines[1].Width)
	assert.Equal(t, 2, layout.Lines[2].Width)
}

func TestPlanModerateWideChars(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	p := NewPlanner(uniprop.EastAsianStandard)
	layout := p.Plan("漢字漢字", 4, 12) // each ideograph is 2 cells
	assert.Equal(t, Moderate, layout.Complexity)
	assert.Equal(t, 2, len(layout.Lines))
	assert.Equal(t, 4, layout.Lines[0].Width)
	assert.Equal(t, 4, layout.Lines[1].Width)
}

func TestPlanComplex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	p := NewPlanner(uniprop.EastAsianStandard)
	layout := p.Plan("שלום עולם שלום עולם", 10, 12)
	assert.GreaterOrEqual(t, len(layout.Lines), 2)
	for _, line := range layout.Lines {
		assert.LessOrEqual(t, line.Width, 10)
	}
}

func TestPlanCached(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	p := NewPlanner(uniprop.EastAsianStandard)
	first := p.Plan("cache me", 80, 12)
	second := p.Plan("cache me", 80, 12)
	assert.Same(t, first, second) // cache hit returns the same layout
	third := p.Plan("cache me", 40, 12)
	assert.NotSame(t, first, third) // width participates in the key
}

func TestViewport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.shape")
	defer teardown()
	//
	p := NewPlanner(uniprop.EastAsianStandard)
	layout := p.Plan("aa\nbb\ncc\ndd", 80, 12)
	assert.Equal(t, 4, len(layout.Lines))
	visible := layout.Viewport(3, 7)
	assert.Equal(t, 2, len(visible))
	assert.Equal(t, 3, visible[0].Start)
}
