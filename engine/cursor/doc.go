/*
Package cursor maintains cursor positions over shaped terminal text.

A cursor tracks four coordinates at once — logical byte index, visual
byte index, grapheme index and (line, column) — tied to a shaping
analysis of the text. Movement operations update the logical index and
rederive every other coordinate from the analysis tables, so the
coordinates can never drift apart.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cursor

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'celltype.shape'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.shape")
}
