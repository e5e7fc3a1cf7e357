package builtins

import "github.com/go-jsvm/jsvm/internal/value"

// installFunction installs the `Function` constructor as an identity
// marker: every function value the evaluator itself produces is
// already callable, so `Function` here exists only to satisfy
// `typeof Function === "function"` and to give user code something to
// check against, not to support `new Function(body)` source synthesis
// (which would require re-entering the parser — out of scope per
// spec.md §1's evaluator-only boundary).
func installFunction(global *value.Object) {
	ctorFn := value.NewNativeFunction("Function", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		return callee, nil
	})
	global.SetValue("Function", ctorFn)
}
