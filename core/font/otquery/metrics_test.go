package otquery

import (
	"testing"

	"github.com/npillmayer/celltype/core/font/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font/gofont/goregular"
)

func parseTestFont(t *testing.T) *ot.Font {
	otf, err := ot.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	return otf
}

func TestUnitsPerEm(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.fonts")
	defer teardown()
	//
	otf := parseTestFont(t)
	upem, err := UnitsPerEm(otf)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("units per em = %d", upem)
	if upem != 2048 {
		t.Errorf("expected Go Regular to have 2048 units per em, got %d", upem)
	}
}

func TestMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.fonts")
	defer teardown()
	//
	otf := parseTestFont(t)
	m, err := Metrics(otf)
	if err != nil {
		t.Fatal(err)
	}
	if m.Ascent <= 0 {
		t.Errorf("expected positive ascent, got %d", m.Ascent)
	}
	if m.Descent >= 0 {
		t.Errorf("expected negative descent, got %d", m.Descent)
	}
	if m.LineHeight != int32(m.Ascent)-int32(m.Descent)+int32(m.LineGap) {
		t.Error("line height deviates from ascent - descent + line gap")
	}
}

func TestGlyphMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.fonts")
	defer teardown()
	//
	otf := parseTestFont(t)
	gid := GlyphIndex(otf, 'M')
	if gid == NOTDEF {
		t.Fatal("expected 'M' to have a glyph")
	}
	mtx := GlyphMetrics(otf, gid)
	if mtx.Advance == 0 {
		t.Error("expected non-zero advance for 'M'")
	}
}

func TestKerningAbsentTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.fonts")
	defer teardown()
	//
	otf := parseTestFont(t)
	l := GlyphIndex(otf, 'A')
	r := GlyphIndex(otf, 'V')
	// whatever the font contains, the lookup must not fail
	k := Kerning(otf, l, r)
	t.Logf("kern(A, V) = %d", k)
}

func TestFontName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.fonts")
	defer teardown()
	//
	otf := parseTestFont(t)
	name := FontName(otf)
	t.Logf("font name = '%s'", name)
	if name == "" {
		t.Error("expected font to carry a name")
	}
}
