/*
Package emoji composes emoji sequences into single color tiles.

Flags, keycaps, skin-tone modifiers, ZWJ joins and tag sequences all
map several code-points onto one displayed unit. The composer flattens
every component to an RGBA tile, stacks the tiles horizontally with
porter-duff over, and caches the finished tile by a hash of the full
sequence.

Color glyph tables (COLR/CBDT/sbix) are probed once per component;
fonts without them render monochrome coverage, as does an explicit
text-presentation selector.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package emoji

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'celltype.render'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.render")
}
