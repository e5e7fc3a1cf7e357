package builtins

import (
	"strconv"

	"github.com/go-jsvm/jsvm/internal/value"
)

// installArray installs the `Array` constructor and its prototype,
// which every array-literal links to via __proto__ (interp.
// evalArrayDecl). `new Array(n)` makes a length-n hole-filled array;
// `new Array(a, b, c)` makes an array of those elements, matching the
// two-overload JS constructor shape.
func installArray(global *value.Object) {
	proto := value.NewObject()
	proto.IsArray = true

	ctorFn := value.NewNativeFunction("Array", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		arr := value.NewObject()
		arr.IsArray = true
		arr.SetValue(value.InstancePrototypeKey, value.FromObject(proto))

		if len(args) == 1 && args[0].Kind() == value.KindNumber {
			n := int(args[0].AsNumber())
			for i := 0; i < n; i++ {
				arr.SetValue(strconv.Itoa(i), value.Undefined)
			}
			arr.SetValue("length", value.Number(float64(n)))
			return value.FromObject(arr), nil
		}

		for i, a := range args {
			arr.SetValue(strconv.Itoa(i), a)
		}
		arr.SetValue("length", value.Number(float64(len(args))))
		return value.FromObject(arr), nil
	})
	ctorFn.AsObject().SetValue(value.PrototypeKey, value.FromObject(proto))

	ctorFn.AsObject().SetValue("isArray", value.NewNativeFunction("isArray", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Bool(false), nil
		}
		o := args[0].AsObject()
		return value.Bool(o != nil && o.IsArray), nil
	}))

	global.SetValue("Array", ctorFn)
}
