/*
Package shaper implements Unicode-aware text shaping for terminal
rendering.

Shaping proceeds in the classic stages: code-point decoding with
cluster assignment, script itemization, bidi resolution, glyph mapping,
substitution (ligatures and contextual forms), and positioning
(kerning). The buffer holds glyph infos and positions as two parallel
sequences of equal length at all times; cluster ids stay in logical
order even where storage order becomes visual.

A Shaper instance holds only immutable configuration; every Shape call
owns its buffers, so concurrent calls are independent.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package shaper

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'celltype.shape'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.shape")
}
