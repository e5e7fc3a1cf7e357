// Package builtins populates the global object with the standard
// library spec.md §6 enumerates: Math, JSON, console, Array, Object,
// Number, String, Function, Boolean, Error, the URI codecs, and the
// bare global functions (NaN, Infinity, parseFloat, parseInt, isFinite,
// isNaN). Grounded on the teacher's per-domain `builtins_*.go` split
// (builtins_math.go, builtins_json.go, …), one file per family here.
package builtins

import (
	"io"

	"github.com/go-jsvm/jsvm/internal/value"
)

// Install wires every builtin family onto global. Its signature matches
// internal/interp.Install so it can be passed directly to interp.New.
func Install(global *value.Object, output io.Writer) {
	installMath(global)
	installJSON(global)
	installConsole(global, output)
	installObject(global)
	installArray(global)
	installNumber(global)
	installString(global)
	installFunction(global)
	installBoolean(global)
	installError(global)
	installURI(global)
	installGlobalFunctions(global)
}
