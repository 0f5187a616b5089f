/*
Package otquery provides decoded access to properties of OpenType fonts.

Package ot navigates the binary tables of a font; this package answers
the questions rendering code actually asks: units-per-em, vertical
metrics, decoration metrics, glyph indices, glyph metrics and kerning.
All values are in font units unless noted otherwise.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'celltype.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.fonts")
}
