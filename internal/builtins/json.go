package builtins

import (
	"github.com/go-jsvm/jsvm/internal/jsonvalue"
	"github.com/go-jsvm/jsvm/internal/value"
)

// installJSON installs `JSON.parse`/`JSON.stringify` (spec.md §6, §8
// S5), built on internal/value's adapted jsonvalue algebra (spec.md
// §4.5 "JSON interop").
func installJSON(global *value.Object) {
	j := value.NewObject()

	j.SetValue("parse", value.NewNativeFunction("parse", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		text := ""
		if len(args) > 0 {
			text = args[0].String()
		}
		jv, err := jsonvalue.Parse([]byte(text))
		if err != nil {
			return value.Undefined, value.Throw(value.String(err.Error()))
		}
		return value.FromJSON(jv), nil
	}))

	j.SetValue("stringify", value.NewNativeFunction("stringify", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Undefined, nil
		}
		jv := value.ToJSON(args[0])
		out, err := jv.MarshalJSON()
		if err != nil {
			return value.Undefined, value.Throw(value.String(err.Error()))
		}
		return value.String(string(out)), nil
	}))

	global.SetValue("JSON", value.FromObject(j))
}
