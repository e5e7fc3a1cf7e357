package builtins

import (
	"strconv"

	"github.com/go-jsvm/jsvm/internal/value"
)

// installObject installs the `Object` constructor, its prototype (the
// root every plain object literal links to, see interp.evalObjectDecl),
// and `Object.defineProperty`/`Object.keys` (spec.md §8 S10 exercises
// defineProperty directly).
func installObject(global *value.Object) {
	proto := value.NewObject()

	ctorFn := value.NewNativeFunction("Object", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		if len(args) > 0 && args[0].IsObjectLike() {
			return args[0], nil
		}
		o := value.NewObject()
		o.SetValue(value.InstancePrototypeKey, value.FromObject(proto))
		return value.FromObject(o), nil
	})
	ctor := ctorFn.AsObject()
	ctor.SetValue(value.PrototypeKey, value.FromObject(proto))

	ctor.SetValue("defineProperty", value.NewNativeFunction("defineProperty", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		if len(args) < 3 {
			return value.Undefined, nil
		}
		target := args[0].AsObject()
		if target == nil {
			return args[0], nil
		}
		name := args[1].ToPropertyKeyString()
		desc := args[2]

		d := value.PropertyDescriptor{Get: value.Undefined, Set: value.Undefined}
		if v, ok := value.GetProp(desc, "value"); ok {
			d.Value = v.Value
		} else {
			d.Value = value.Undefined
		}
		if g, ok := value.GetProp(desc, "get"); ok {
			d.Get = g.Value
		}
		if s, ok := value.GetProp(desc, "set"); ok {
			d.Set = s.Value
		}
		if w, ok := value.GetProp(desc, "writable"); ok {
			d.Writable = w.Value.Truthy()
		}
		if e, ok := value.GetProp(desc, "enumerable"); ok {
			d.Enumerable = e.Value.Truthy()
		}
		if cf, ok := value.GetProp(desc, "configurable"); ok {
			d.Configurable = cf.Value.Truthy()
		}
		target.Set(name, d)
		return args[0], nil
	}))

	ctor.SetValue("keys", value.NewNativeFunction("keys", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		var keys []string
		if len(args) > 0 {
			if o := args[0].AsObject(); o != nil {
				keys = o.Keys()
			}
		}
		arr := value.NewObject()
		arr.IsArray = true
		for i, k := range keys {
			arr.SetValue(strconv.Itoa(i), value.String(k))
		}
		arr.SetValue("length", value.Number(float64(len(keys))))
		return value.FromObject(arr), nil
	}))

	ctor.SetValue("getPrototypeOf", value.NewNativeFunction("getPrototypeOf", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Null, nil
		}
		o := args[0].AsObject()
		if o == nil {
			return value.Null, nil
		}
		if d, ok := o.Get(value.InstancePrototypeKey); ok {
			return d.Value, nil
		}
		return value.Null, nil
	}))

	hasOwnProperty := value.NewNativeFunction("hasOwnProperty", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		o := this.AsObject()
		if o == nil || len(args) == 0 {
			return value.Bool(false), nil
		}
		_, ok := o.Get(args[0].ToPropertyKeyString())
		return value.Bool(ok), nil
	})
	// Plain object literals (interp.evalObjectDecl) and Object()/new
	// Object() link __proto__ to proto; the constructor carries its own
	// copy as well.
	proto.SetValue("hasOwnProperty", hasOwnProperty)
	ctor.SetValue("hasOwnProperty", hasOwnProperty)

	global.SetValue("Object", ctorFn)
}
