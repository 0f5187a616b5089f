/*
Package cell rasterizes characters into terminal-grid cells.

Every character is forced into a fixed-size monospace cell: glyphs are
aligned by policy (pixel snapping, centering, baseline alignment),
composited over the cell background, decorated with text effects and
cached as finished RGBA tiles. The cell cache is capped by entry count
and entry age; any font change or cell-size change flushes it entirely.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cell

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'celltype.render'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.render")
}
