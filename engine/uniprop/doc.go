/*
Package uniprop answers Unicode property questions for terminal rendering.

The oracle is stateless: every function is a pure lookup over immutable
tables and may be called from any goroutine. Grapheme and word iteration
carry a small amount of iteration state and are therefore provided as
restartable iterators over immutable text.

Property sources: segmentation is delegated to the npillmayer/uax
segmenters (UAX #29 graphemes and words, UAX #11 widths), bidi classes
to golang.org/x/text. Joining types for cursive scripts and emoji
sequence properties are compact range tables in this package.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package uniprop

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'celltype.shape'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.shape")
}
