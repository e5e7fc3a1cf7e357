package value

import (
	"fmt"
	"reflect"

	"github.com/go-jsvm/jsvm/internal/jsonvalue"
)

// ToValue converts a host Go value into a Value, implementing spec.md
// §4.5's to_value for bool, ints, floats, strings, slices (array-shaped
// objects with a length property), map[string]Value, JSON values, nil
// (unit), and NativeFn. Anything else is rejected so host bridge bugs
// surface immediately instead of silently producing undefined.
func ToValue(v interface{}) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Undefined, nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Integer(int32(x)), nil
	case int32:
		return Integer(x), nil
	case int64:
		return Number(float64(x)), nil
	case float64:
		return Number(x), nil
	case string:
		return String(x), nil
	case NativeFn:
		return NewNativeFunction("", x), nil
	case *jsonvalue.Value:
		return FromJSON(x), nil
	case []string:
		return sliceToArray(len(x), func(i int) (Value, error) { return String(x[i]), nil })
	case []int64:
		return sliceToArray(len(x), func(i int) (Value, error) { return Number(float64(x[i])), nil })
	case []Value:
		return sliceToArray(len(x), func(i int) (Value, error) { return x[i], nil })
	case map[string]Value:
		obj := NewObject()
		for k, fv := range x {
			obj.SetValue(k, fv)
		}
		return FromObject(obj), nil
	default:
		return Undefined, fmt.Errorf("ToValue: unsupported host type %s", reflect.TypeOf(v))
	}
}

func sliceToArray(n int, at func(int) (Value, error)) (Value, error) {
	obj := NewObject()
	obj.IsArray = true
	for i := 0; i < n; i++ {
		ev, err := at(i)
		if err != nil {
			return Undefined, err
		}
		obj.SetValue(fmt.Sprintf("%d", i), ev)
	}
	obj.SetValue("length", Number(float64(n)))
	return FromObject(obj), nil
}

// FromValue is the inverse of ToValue for the subset of host types
// listed in its switch, reporting an explicit error
// on mismatch (spec.md §4.5 "from_value").
func FromValue(v Value, out interface{}) error {
	switch p := out.(type) {
	case *bool:
		if v.Kind() != KindBool {
			return fmt.Errorf("FromValue: expected boolean, got %s", v.Kind())
		}
		*p = v.AsBool()
	case *string:
		*p = v.String()
	case *float64:
		*p = v.ToNumber()
	case *int64:
		*p = int64(v.ToNumber())
	case *int32:
		*p = v.ToInt32()
	case *Value:
		*p = v
	default:
		return fmt.Errorf("FromValue: unsupported target type %T", out)
	}
	return nil
}

// ToJSON converts a Value into a jsonvalue.Value tree, skipping the
// __proto__ key when serializing objects (spec.md §4.5 "JSON interop").
func ToJSON(v Value) *jsonvalue.Value {
	switch v.Kind() {
	case KindNull, KindUndefined:
		return jsonvalue.NewNull()
	case KindBool:
		return jsonvalue.NewBoolean(v.AsBool())
	case KindNumber:
		return jsonvalue.NewNumber(v.AsNumber())
	case KindInteger:
		return jsonvalue.NewNumber(float64(v.AsInteger()))
	case KindString:
		return jsonvalue.NewString(v.AsString())
	case KindObject:
		o := v.AsObject()
		if o == nil {
			return jsonvalue.NewNull()
		}
		if o.IsArray {
			arr := jsonvalue.NewArray()
			n := 0
			if d, ok := o.Get("length"); ok {
				n = int(d.Value.ToNumber())
			}
			for i := 0; i < n; i++ {
				d, ok := o.Get(fmt.Sprintf("%d", i))
				if !ok {
					arr.ArrayAppend(jsonvalue.NewNull())
					continue
				}
				arr.ArrayAppend(ToJSON(d.Value))
			}
			return arr
		}
		obj := jsonvalue.NewObject()
		for _, k := range o.OwnKeys() {
			d, _ := o.Get(k)
			obj.ObjectSet(k, ToJSON(d.Value))
		}
		return obj
	default:
		return jsonvalue.NewNull()
	}
}

// FromJSON converts a jsonvalue.Value tree into a Value, the inverse of
// ToJSON (spec.md §4.5), used by both ToValue and the JSON.parse
// builtin.
func FromJSON(j *jsonvalue.Value) Value {
	switch j.Kind() {
	case jsonvalue.KindNull, jsonvalue.KindUndefined:
		return Null
	case jsonvalue.KindBoolean:
		return Bool(j.BoolValue())
	case jsonvalue.KindNumber:
		return Number(j.NumberValue())
	case jsonvalue.KindString:
		return String(j.StringValue())
	case jsonvalue.KindArray:
		elems := j.ArrayElements()
		obj := NewObject()
		obj.IsArray = true
		for i, e := range elems {
			obj.SetValue(fmt.Sprintf("%d", i), FromJSON(e))
		}
		obj.SetValue("length", Number(float64(len(elems))))
		return FromObject(obj)
	case jsonvalue.KindObject:
		obj := NewObject()
		for _, k := range j.ObjectKeys() {
			obj.SetValue(k, FromJSON(j.ObjectGet(k)))
		}
		return FromObject(obj)
	default:
		return Undefined
	}
}
