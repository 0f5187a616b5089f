/*
Package glyphing defines the types passed between text shaping and
glyph rendering.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'celltype.shape'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.shape")
}
