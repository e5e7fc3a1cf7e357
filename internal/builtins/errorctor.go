package builtins

import "github.com/go-jsvm/jsvm/internal/value"

// installError installs the `Error` constructor: a plain object
// carrying a `message` field and a `name` of "Error", suitable both as
// a `throw`n value and as a `new Error(...)` constructed one (spec.md
// §6 lists `Error` among the standard-library surface without further
// per-method detail).
func installError(global *value.Object) {
	proto := value.NewObject()
	proto.SetValue("name", value.String("Error"))

	ctorFn := value.NewNativeFunction("Error", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		msg := ""
		if len(args) > 0 {
			msg = args[0].String()
		}
		obj := this.AsObject()
		if obj == nil || obj == global.AsObject() {
			obj = value.NewObject()
			obj.SetValue(value.InstancePrototypeKey, value.FromObject(proto))
		}
		obj.SetValue("message", value.String(msg))
		return value.FromObject(obj), nil
	})
	ctorFn.AsObject().SetValue(value.PrototypeKey, value.FromObject(proto))

	global.SetValue("Error", ctorFn)
}
