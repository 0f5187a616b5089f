/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Helvetica".

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc. An example is "Helvetica regular".

* A "typecase" is a scaled font, i.e. a font in a certain size. The name
is reminiscent of the wooden boxes of typesetters in the era of metal
type. An example is "Helvetica regular 11pt".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Fonts are owned by an arena, which hands out small integer handles
(FontID). Caches and fallback chains store handles, never pointers, so
unloading a font invalidates dependent entries without dangling
references.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"io/ioutil"
	"strings"
	"sync"

	"github.com/npillmayer/celltype/core"
	"github.com/npillmayer/celltype/core/font/ot"
	"github.com/npillmayer/celltype/core/font/otquery"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/goregular"
)

// tracer traces with key 'celltype.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.fonts")
}

// ScalableFont is an immutable font resource: the raw bytes of a font
// file together with the decoded sfnt container.
type ScalableFont struct {
	Fontname string
	Filepath string   // file path
	Binary   []byte   // raw data
	SFNT     *ot.Font // the font's container
}

// TypeCase is a scalable font at a fixed point-size.
type TypeCase struct {
	scalableFontParent *ScalableFont
	size               float64
	unitsPerEm         uint16
	metrics            otquery.FontMetrics
}

// LoadOpenTypeFont loads a font file from the file system.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := ioutil.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "font file not readable: %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont decodes a font from an in-memory sfnt container.
// The byte slice is retained by the returned font.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = ot.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname = otquery.FontName(f.SFNT)
	return
}

// PrepareCase scales a font to a given point-size.
func (sf *ScalableFont) PrepareCase(fontsize float64) (*TypeCase, error) {
	if fontsize < 5.0 || fontsize > 500.0 {
		tracer().Infof("font size must be 5pt ≤ size ≤ 500pt, is %g (set to 10pt)", fontsize)
		fontsize = 10.0
	}
	upem, err := otquery.UnitsPerEm(sf.SFNT)
	if err != nil {
		return nil, err
	}
	metrics, err := otquery.Metrics(sf.SFNT)
	if err != nil {
		return nil, err
	}
	return &TypeCase{
		scalableFontParent: sf,
		size:               fontsize,
		unitsPerEm:         upem,
		metrics:            metrics,
	}, nil
}

// ScalableFontParent returns the unscaled font this typecase was prepared from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// PtSize returns the point-size of this typecase.
func (tc *TypeCase) PtSize() float64 {
	return tc.size
}

// UnitsPerEm returns the em-square resolution of the underlying font.
func (tc *TypeCase) UnitsPerEm() uint16 {
	return tc.unitsPerEm
}

// Metrics returns the global metrics of the underlying font, in font units.
func (tc *TypeCase) Metrics() otquery.FontMetrics {
	return tc.metrics
}

// Scale converts a value in font units to design units at this
// typecase's size.
func (tc *TypeCase) Scale(v int32) float64 {
	if tc.unitsPerEm == 0 {
		return 0
	}
	return float64(v) * tc.size / float64(tc.unitsPerEm)
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else fails. It is
// always present. Currently we use Go Regular.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: "Go Regular",
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	gofont.SFNT, err = ot.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}

// ---------------------------------------------------------------------------

// NormalizeFontname returns a canonical version of a font name: lowercase,
// spaces replaced, file suffix cut off.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	return fname
}
