package builtins

import "github.com/go-jsvm/jsvm/internal/value"

// installBoolean installs the `Boolean` constructor, coercing through
// Value.Truthy (spec.md §4.4 "Truthiness").
func installBoolean(global *value.Object) {
	ctorFn := value.NewNativeFunction("Boolean", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Bool(false), nil
		}
		return value.Bool(args[0].Truthy()), nil
	})
	global.SetValue("Boolean", ctorFn)
}
