/*
Package config implements the flat configuration format for terminal
rendering options.

Configuration is a plain text format of `key=value` lines with `#` line
comments. The set of recognized keys is closed; unknown keys are ignored
(with a trace message), so configuration files may be shared with newer
or older versions of the renderer.

Dynamic reconfiguration is mediated by a mutex. File watching itself is
the job of an external collaborator; callbacks registered with
Store.Notify are invoked after a successful reload, outside of the
configuration lock.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'celltype.config'.
func tracer() tracing.Trace {
	return tracing.Select("celltype.config")
}
