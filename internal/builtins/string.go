package builtins

import "github.com/go-jsvm/jsvm/internal/value"

// installString installs the `String` constructor: called as a
// function it stringifies its argument per Value.String (spec.md §4.4).
func installString(global *value.Object) {
	ctorFn := value.NewNativeFunction("String", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		return value.String(args[0].String()), nil
	})
	global.SetValue("String", ctorFn)
}
