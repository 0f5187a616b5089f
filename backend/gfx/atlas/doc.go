/*
Package atlas implements a content-addressed cache of rasterized glyphs
packed into a bounded 2D texture.

Packing is shelf-based: glyphs fill rows left to right; a new row opens
when the current one is too narrow. When vertical space runs out, the
least-recently-used shelf is reclaimed. The texture never grows beyond
its configured size; if not even full eviction can make room, the
caller receives a recoverable "exhausted" error.

Reads are lock-free over an immutable index published by the writer;
the writer takes a single lock during packing and eviction. Writers run
on any caller thread.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package atlas

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'celltype.render'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.render")
}
