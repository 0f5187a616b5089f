/*
Package ot decodes OpenType and TrueType font containers.

The sfnt container format is a directory of binary tables, each
identified by a 4-byte tag. This package validates the container,
provides access to the tables needed for terminal rendering (character
mapping, metrics, glyph outlines, kerning), and leaves all other
tables accessible as generic byte segments.

All multi-byte integers in font tables are big-endian, and every read
is bounds-checked against the enclosing table before dereferencing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ot

import (
	"github.com/npillmayer/celltype/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'celltype.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.fonts")
}

// errFontFormat produces user level errors for font parsing.
func errFontFormat(x string) error {
	return core.Error(core.EINVALID, "OpenType font format: %s", x)
}
