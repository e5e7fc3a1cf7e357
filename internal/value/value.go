// Package value implements the tagged runtime value, the property-
// descriptor object model, prototype-chain lookup, coercion rules and
// the host-language bridge (spec.md §3 "Values (C4)", §4.5).
package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind tags the variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindUndefined
	KindBool
	KindString
	KindNumber
	KindInteger
	KindObject
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Reserved property keys that participate in prototype-chain lookup
// (spec.md §3 "Object data").
const (
	PrototypeKey         = "prototype"
	InstancePrototypeKey = "__proto__"
)

// Value is the engine's tagged runtime value. It is shared by reference:
// Object and Function hold pointers, so copying a Value copies the
// reference, not the underlying data.
type Value struct {
	kind   Kind
	bool_  bool
	str    string
	num    float64
	i32    int32
	object *Object
	fn     *Function
}

// Null is the JS null value.
var Null = Value{kind: KindNull}

// Undefined is the JS undefined value.
var Undefined = Value{kind: KindUndefined}

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, bool_: b} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a 64-bit float.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Integer wraps a 32-bit signed integer.
func Integer(n int32) Value { return Value{kind: KindInteger, i32: n} }

// FromObject wraps an object reference.
func FromObject(o *Object) Value { return Value{kind: KindObject, object: o} }

// FromFunction wraps a function reference.
func FromFunction(f *Function) Value { return Value{kind: KindFunction, fn: f} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }
func (v Value) IsNullish() bool { return v.kind == KindNull || v.kind == KindUndefined }
func (v Value) IsObjectLike() bool { return v.kind == KindObject || v.kind == KindFunction }

// AsBool returns the boolean payload; valid only when Kind() == KindBool.
func (v Value) AsBool() bool { return v.bool_ }

// AsString returns the string payload; valid only when Kind() == KindString.
func (v Value) AsString() string { return v.str }

// AsNumber returns the float payload; valid only when Kind() == KindNumber.
func (v Value) AsNumber() float64 { return v.num }

// AsInteger returns the int32 payload; valid only when Kind() == KindInteger.
func (v Value) AsInteger() int32 { return v.i32 }

// AsObject returns the object pointer for KindObject, or the function's
// own property map wrapped as an *Object for KindFunction. Returns nil
// for any other kind.
func (v Value) AsObject() *Object {
	switch v.kind {
	case KindObject:
		return v.object
	case KindFunction:
		return v.fn.Object
	default:
		return nil
	}
}

// AsFunction returns the function payload, or nil if Kind() != KindFunction.
func (v Value) AsFunction() *Function {
	if v.kind == KindFunction {
		return v.fn
	}
	return nil
}

// TypeOf implements the `typeof` operator (spec.md §4.4).
func (v Value) TypeOf() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull, KindObject:
		return "object"
	case KindBool:
		return "boolean"
	case KindNumber, KindInteger:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	default:
		return "undefined"
	}
}

// Truthy implements spec.md §4.4's truthiness table: object/function;
// the string "1"; a number >= 1 with no fractional part; an integer >
// 1; boolean true are truthy. Everything else, including 0, false,
// null, undefined and most strings/numbers, is falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindObject, KindFunction:
		return true
	case KindString:
		return v.str == "1"
	case KindNumber:
		return v.num >= 1 && math.Mod(v.num, 1) == 0
	case KindInteger:
		return v.i32 > 1
	case KindBool:
		return v.bool_
	default:
		return false
	}
}

// ToNumber implements spec.md §4.4's numeric coercion: object/
// undefined/function -> NaN; string -> parsed float or NaN; boolean ->
// 1 or 0; null -> 0.
func (v Value) ToNumber() float64 {
	switch v.kind {
	case KindObject, KindFunction, KindUndefined:
		return math.NaN()
	case KindString:
		n, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return math.NaN()
		}
		return n
	case KindNumber:
		return v.num
	case KindInteger:
		return float64(v.i32)
	case KindBool:
		if v.bool_ {
			return 1
		}
		return 0
	case KindNull:
		return 0
	default:
		return math.NaN()
	}
}

// ToInt32 implements spec.md §4.4's integer coercion: NaN and
// non-parseable strings become 0; booleans become 0/1.
func (v Value) ToInt32() int32 {
	switch v.kind {
	case KindObject, KindFunction, KindNull, KindUndefined:
		return 0
	case KindString:
		n, err := strconv.ParseFloat(v.str, 64)
		if err != nil || math.IsNaN(n) {
			return 0
		}
		return int32(n)
	case KindNumber:
		if math.IsNaN(v.num) {
			return 0
		}
		return int32(v.num)
	case KindInteger:
		return v.i32
	case KindBool:
		if v.bool_ {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// ToPropertyKeyString coerces a value used as a computed property key
// (spec.md §4.4 "GetField(obj, key)").
func (v Value) ToPropertyKeyString() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindInteger:
		return strconv.FormatInt(int64(v.i32), 10)
	case KindBool:
		return strconv.FormatBool(v.bool_)
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	default:
		return v.String()
	}
}

// String renders a value for console/string-conversion contexts. It is
// not the JS ToString algorithm in full (no Symbol.toPrimitive, no
// valueOf) but covers every kind the engine produces.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindBool:
		return strconv.FormatBool(v.bool_)
	case KindString:
		return v.str
	case KindNumber:
		if math.IsNaN(v.num) {
			return "NaN"
		}
		if math.IsInf(v.num, 1) {
			return "Infinity"
		}
		if math.IsInf(v.num, -1) {
			return "-Infinity"
		}
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindInteger:
		return strconv.FormatInt(int64(v.i32), 10)
	case KindObject:
		if v.object != nil && v.object.IsArray {
			return v.object.arrayString()
		}
		return "[object Object]"
	case KindFunction:
		return "[object Function]"
	default:
		return "<invalid>"
	}
}

// SameValue implements identity comparison used for === on objects and
// functions (spec.md §4.4 "if either side is an object, use identity
// comparison").
func SameValue(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindObject:
		return a.object == b.object
	case KindFunction:
		return a.fn == b.fn
	case KindBool:
		return a.bool_ == b.bool_
	case KindString:
		return a.str == b.str
	case KindNumber:
		return a.num == b.num
	case KindInteger:
		return a.i32 == b.i32
	case KindNull, KindUndefined:
		return true
	default:
		return false
	}
}

// PropertyDescriptor is the {configurable, enumerable, writable, value,
// get, set} record every object field is stored as (spec.md §3). A
// descriptor is either a short-form data descriptor (Get/Set both
// undefined) or an accessor descriptor (Value undefined); the two
// shapes are disjoint by convention, not enforced.
type PropertyDescriptor struct {
	Configurable bool
	Enumerable   bool
	Writable     bool
	Value        Value
	Get          Value
	Set          Value
}

// NewDataDescriptor builds the descriptor short-form assignment
// produces: all flags false, accessors undefined.
func NewDataDescriptor(v Value) PropertyDescriptor {
	return PropertyDescriptor{Value: v, Get: Undefined, Set: Undefined}
}

// Object is a mapping from property name to descriptor (spec.md §3
// "Object data"). IsArray marks objects created by ArrayDecl/the Array
// constructor; display, Array.isArray and ToJSON (which encodes such an
// object as a JSON array) consult it.
type Object struct {
	entries map[string]PropertyDescriptor
	keys    []string // preserves insertion order
	IsArray bool

	// Native can hold a Go-side value for host code; nothing in this
	// module sets or reads it (ToValue/FromValue do not use it), so it is
	// nil for every object the engine creates.
	Native interface{}
}

// NewObject returns an empty object with no prototype linkage.
func NewObject() *Object {
	return &Object{entries: make(map[string]PropertyDescriptor)}
}

// Get returns the direct descriptor stored under name, without walking
// any prototype chain.
func (o *Object) Get(name string) (PropertyDescriptor, bool) {
	d, ok := o.entries[name]
	return d, ok
}

// Set stores or replaces the descriptor under name.
func (o *Object) Set(name string, d PropertyDescriptor) {
	if _, exists := o.entries[name]; !exists {
		o.keys = append(o.keys, name)
	}
	o.entries[name] = d
}

// SetValue is shorthand for Set(name, NewDataDescriptor(v)).
func (o *Object) SetValue(name string, v Value) {
	o.Set(name, NewDataDescriptor(v))
}

// Delete removes a direct property.
func (o *Object) Delete(name string) {
	if _, ok := o.entries[name]; !ok {
		return
	}
	delete(o.entries, name)
	for i, k := range o.keys {
		if k == name {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns enumerable property names in insertion order, excluding
// the reserved prototype-linkage keys.
func (o *Object) Keys() []string {
	out := make([]string, 0, len(o.keys))
	for _, k := range o.keys {
		if k == PrototypeKey || k == InstancePrototypeKey {
			continue
		}
		if d, ok := o.entries[k]; ok && d.Enumerable {
			out = append(out, k)
		}
	}
	return out
}

// OwnKeys returns every direct property name in insertion order,
// excluding the reserved prototype-linkage keys, regardless of the
// Enumerable flag. Unlike Keys, this is for callers that need every own
// field irrespective of descriptor flags (e.g. JSON serialization),
// since object-literal/short-form assignment produces descriptors with
// Enumerable false (spec.md §3 "Property descriptor").
func (o *Object) OwnKeys() []string {
	out := make([]string, 0, len(o.keys))
	for _, k := range o.keys {
		if k == PrototypeKey || k == InstancePrototypeKey {
			continue
		}
		out = append(out, k)
	}
	return out
}

// SortedKeys returns every direct key (including non-enumerable ones),
// sorted, for debug display.
func (o *Object) SortedKeys() []string {
	out := make([]string, 0, len(o.entries))
	for k := range o.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (o *Object) arrayString() string {
	n := 0
	if d, ok := o.Get("length"); ok {
		n = int(d.Value.ToNumber())
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		if d, ok := o.Get(strconv.Itoa(i)); ok {
			parts[i] = d.Value.String()
		}
	}
	s := ""
	for i, p := range parts {
		if i > 0 {
			s += ","
		}
		s += p
	}
	return s
}

const maxPrototypeDepth = 1000

// GetProp resolves name against obj, walking the prototype chain
// (spec.md §4.4 "Prototype-chain lookup"): the direct descriptor if
// present, else recursively through __proto__, and — if the original
// object itself carries a `prototype` field — also through that. The
// walk is depth-bounded rather than cycle-detecting (spec.md §9 Open
// Questions, option (a)): a chain deeper than maxPrototypeDepth is
// treated as exhausted rather than hung.
func GetProp(obj Value, name string) (PropertyDescriptor, bool) {
	return getProp(obj, obj, name, 0)
}

func getProp(original, obj Value, name string, depth int) (PropertyDescriptor, bool) {
	if depth > maxPrototypeDepth {
		return PropertyDescriptor{}, false
	}
	o := obj.AsObject()
	if o == nil {
		return PropertyDescriptor{}, false
	}
	if d, ok := o.Get(name); ok {
		return d, true
	}
	if protoDesc, ok := o.Get(InstancePrototypeKey); ok && protoDesc.Value.IsObjectLike() {
		if d, ok := getProp(original, protoDesc.Value, name, depth+1); ok {
			return d, true
		}
	}
	if depth == 0 {
		if protoDesc, ok := o.Get(PrototypeKey); ok && protoDesc.Value.IsObjectLike() {
			if d, ok := getProp(original, protoDesc.Value, name, depth+1); ok {
				return d, true
			}
		}
	}
	return PropertyDescriptor{}, false
}

// GetField resolves name and returns its value, or Undefined when the
// lookup fails or obj carries no properties at all.
func GetField(obj Value, name string) Value {
	d, ok := GetProp(obj, name)
	if !ok {
		return Undefined
	}
	return d.Value
}

// SetField writes a plain data descriptor for name on obj. Non-object,
// non-function values silently ignore the write (mirrors the host
// engine's set_field).
func SetField(obj Value, name string, v Value) {
	o := obj.AsObject()
	if o == nil {
		return
	}
	o.SetValue(name, v)
}

// NativeFn is the Go-side implementation backing a native function
// value: it receives the evaluated arguments, the global object, the
// call's `this` (the receiver object for a field-access call, the new
// object under `new`, otherwise the global), and the original callee value, returning the
// result or a thrown value (spec.md §3 "Function").
type NativeFn func(args []Value, global Value, this Value, callee Value) (Value, error)

// Function is either native-backed or AST-backed (spec.md §3
// "Function"). Exactly one of Native/Body is set.
type Function struct {
	Object *Object
	Name   string

	Native NativeFn

	Params []string
	Body   FunctionBody
}

// FunctionBody is satisfied by *ast.Expr-shaped bodies; declared here
// as an interface to avoid a value->ast import (interp supplies the
// concrete type).
type FunctionBody interface {
	String() string
}

// NewNativeFunction wraps fn as a callable Value with an empty own
// property object.
func NewNativeFunction(name string, fn NativeFn) Value {
	f := &Function{Object: NewObject(), Name: name, Native: fn}
	return FromFunction(f)
}

// NewRegularFunction wraps a parsed function body as a callable Value.
// object.arguments is initialized to the parameter count, per spec.md
// §3 "Function".
func NewRegularFunction(name string, params []string, body FunctionBody) Value {
	f := &Function{Object: NewObject(), Name: name, Params: params, Body: body}
	f.Object.SetValue("arguments", Number(float64(len(params))))
	return FromFunction(f)
}

// ThrownError wraps a thrown JS value so it can travel as a Go error.
type ThrownError struct {
	Value Value
}

func (e *ThrownError) Error() string {
	return fmt.Sprintf("Failed with %s", e.Value.String())
}

// Throw builds the error Go's error-return convention expects from a
// thrown JS value.
func Throw(v Value) error { return &ThrownError{Value: v} }
