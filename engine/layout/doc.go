/*
Package layout plans line breaking and viewport windowing for scrolling
terminal text.

Layout cost is dominated by shaping, so the planner classifies text by
complexity first and picks the cheapest path that is still correct:
plain ASCII breaks on newlines and column counts alone, moderate text
breaks by grapheme cell widths without being segmented by script, and
complex text (right-to-left or shaping-heavy
scripts) runs the full segmentation machinery. Only the lines inside
the viewport are handed to the shaper.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'celltype.shape'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.shape")
}
