/*
Package screen drives the full rendering pipeline for a terminal grid.

The screen connects the layers of the module: the layout planner
windows the source text into visible lines, the shaper turns each line
into positioned glyphs, and the cell renderer rasterizes them into a
caller-owned RGBA buffer aligned to the terminal grid. Dirty-region
bookkeeping tells the backend which parts of the buffer changed.

A render pass that fails leaves the buffer either untouched (failure
before the first cell) or in a well-defined partially-rendered state:
the last successful cell is the last written cell.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package screen

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'celltype.render'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.render")
}
