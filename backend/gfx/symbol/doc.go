/*
Package symbol rasterizes terminal-specific symbols without a font file.

Prompt separators (Powerline triangles), the git branch glyph and a few
companions are private-use-area code-points that most fonts lack, yet
terminals want them pixel-perfect at any cell size. This package draws
them directly from vector primitives. Output is coverage (alpha) only;
color is applied at composite time.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package symbol

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'celltype.render'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.render")
}
