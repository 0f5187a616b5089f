/*
Package gfx is the rendering backend layer for terminal cells.

The package owns the capability interface towards concrete graphics
backends (GPU surfaces are collaborator territory; a software
implementation writing into caller-owned RGBA memory is provided),
the glyph-outline rasterizer, and dirty-region bookkeeping.

Pixel buffers are RGBA8 in row-major order with a stride of width×4.
Alpha is straight, not premultiplied.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gfx

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'celltype.render'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.render")
}
