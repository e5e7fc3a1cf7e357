// Package jsonvalue is a small, type-safe JSON value algebra used to
// stage data between encoding/json and the engine's value.Value during
// JSON.parse/JSON.stringify (spec.md §4.5 "JSON interop"). It avoids
// interface{} so object/array accessors stay compile-time checked.
package jsonvalue

import (
	"bytes"
	"encoding/json"
)

// Kind represents the type of a JSON value.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindObject
	KindArray
	KindString
	KindNumber
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "Undefined"
	case KindNull:
		return "Null"
	case KindObject:
		return "Object"
	case KindArray:
		return "Array"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindBoolean:
		return "Boolean"
	default:
		return "Unknown"
	}
}

// Value represents a JSON value in memory.
type Value struct {
	kind Kind

	objEntries map[string]*Value
	objKeys    []string // preserves insertion order

	arrElems []*Value

	str  string
	num  float64
	bool bool
}

func (v *Value) Kind() Kind {
	if v == nil {
		return KindUndefined
	}
	return v.kind
}

func NewUndefined() *Value       { return &Value{kind: KindUndefined} }
func NewNull() *Value            { return &Value{kind: KindNull} }
func NewBoolean(b bool) *Value   { return &Value{kind: KindBoolean, bool: b} }
func NewNumber(n float64) *Value { return &Value{kind: KindNumber, num: n} }
func NewString(s string) *Value  { return &Value{kind: KindString, str: s} }

func NewArray() *Value {
	return &Value{kind: KindArray, arrElems: make([]*Value, 0)}
}

func NewObject() *Value {
	return &Value{kind: KindObject, objEntries: make(map[string]*Value), objKeys: make([]string, 0)}
}

// ObjectGet returns the value associated with key, or nil if the
// receiver is not an object or the key is absent.
func (v *Value) ObjectGet(key string) *Value {
	if v == nil || v.kind != KindObject {
		return nil
	}
	return v.objEntries[key]
}

// ObjectSet associates key with child, preserving insertion order on
// first write.
func (v *Value) ObjectSet(key string, child *Value) {
	if v == nil || v.kind != KindObject {
		return
	}
	if _, exists := v.objEntries[key]; !exists {
		v.objKeys = append(v.objKeys, key)
	}
	v.objEntries[key] = child
}

// ObjectKeys returns keys in insertion order.
func (v *Value) ObjectKeys() []string {
	if v == nil || v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.objKeys))
	copy(keys, v.objKeys)
	return keys
}

func (v *Value) ArrayLen() int {
	if v == nil || v.kind != KindArray {
		return 0
	}
	return len(v.arrElems)
}

func (v *Value) ArrayGet(index int) *Value {
	if v == nil || v.kind != KindArray || index < 0 || index >= len(v.arrElems) {
		return nil
	}
	return v.arrElems[index]
}

func (v *Value) ArrayAppend(child *Value) {
	if v == nil || v.kind != KindArray {
		return
	}
	v.arrElems = append(v.arrElems, child)
}

func (v *Value) ArrayElements() []*Value {
	if v == nil || v.kind != KindArray {
		return nil
	}
	out := make([]*Value, len(v.arrElems))
	copy(out, v.arrElems)
	return out
}

func (v *Value) BoolValue() bool {
	if v == nil || v.kind != KindBoolean {
		return false
	}
	return v.bool
}

func (v *Value) StringValue() string {
	if v == nil || v.kind != KindString {
		return ""
	}
	return v.str
}

func (v *Value) NumberValue() float64 {
	if v == nil || v.kind != KindNumber {
		return 0
	}
	return v.num
}

// MarshalJSON implements json.Marshaler so a Value round-trips through
// encoding/json directly, in insertion order for objects.
func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	switch v.kind {
	case KindUndefined, KindNull:
		return []byte("null"), nil
	case KindBoolean:
		return json.Marshal(v.bool)
	case KindNumber:
		return json.Marshal(v.num)
	case KindString:
		return json.Marshal(v.str)
	case KindArray:
		return json.Marshal(v.arrElems)
	case KindObject:
		var buf []byte
		buf = append(buf, '{')
		for i, k := range v.objKeys {
			if i > 0 {
				buf = append(buf, ',')
			}
			kb, _ := json.Marshal(k)
			buf = append(buf, kb...)
			buf = append(buf, ':')
			vb, err := v.objEntries[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(buf, vb...)
		}
		buf = append(buf, '}')
		return buf, nil
	default:
		return []byte("null"), nil
	}
}

// Parse decodes JSON text into a Value tree. Object key order is not
// preserved on parse (encoding/json decodes objects into Go maps,
// which are unordered); only values built via ObjectSet retain
// insertion order.
func Parse(data []byte) (*Value, error) {
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return fromInterface(raw), nil
}

func fromInterface(raw interface{}) *Value {
	switch x := raw.(type) {
	case nil:
		return NewNull()
	case bool:
		return NewBoolean(x)
	case json.Number:
		f, _ := x.Float64()
		return NewNumber(f)
	case float64:
		return NewNumber(x)
	case string:
		return NewString(x)
	case []interface{}:
		arr := NewArray()
		for _, e := range x {
			arr.ArrayAppend(fromInterface(e))
		}
		return arr
	case map[string]interface{}:
		obj := NewObject()
		for k, e := range x {
			obj.ObjectSet(k, fromInterface(e))
		}
		return obj
	default:
		return NewNull()
	}
}
