package resources

import (
	"testing"

	"github.com/npillmayer/celltype/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestResolveMissingFontFallsBack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.resources")
	defer teardown()
	//
	promise := ResolveFont("no-such-font-family-exists")
	f, err := promise()
	if err == nil {
		t.Log("system surprisingly has a matching font; skipping fallback check")
		return
	}
	if core.Code(err) != core.EMISSING {
		t.Errorf("expected EMISSING, got error code %d", core.Code(err))
	}
	if f == nil {
		t.Fatal("expected fallback font instead of nil")
	}
	if f.Fontname != "Go Regular" {
		t.Errorf("expected fallback Go Regular, got %s", f.Fontname)
	}
}

func TestListFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "celltype.resources")
	defer teardown()
	//
	// result depends on the host; the call itself must be robust
	fonts := ListFonts("")
	t.Logf("system has %d font files", len(fonts))
}
