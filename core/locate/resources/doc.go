/*
Package resources locates font resources on the host system.

System font discovery is collaborator territory: this package wraps a
font-path enumerator and hands loaded fonts to the caller. Resolution
is asynchronous, promise-style, since font loading is the only blocking
I/O in the rendering stack and must stay out of render paths.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'celltype.resources'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.resources")
}
