package value

import (
	"math"
	"testing"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"object", FromObject(NewObject()), true},
		{"string one", String("1"), true},
		{"string other", String("2"), false},
		{"empty string", String(""), false},
		{"number >= 1 integral", Number(3), true},
		{"number fractional", Number(3.5), false},
		{"number below one", Number(0.5), false},
		{"integer above one", Integer(2), true},
		{"integer one", Integer(1), false},
		{"bool true", Bool(true), true},
		{"bool false", Bool(false), false},
		{"zero", Number(0), false},
		{"null", Null, false},
		{"undefined", Undefined, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want float64
	}{
		{"string parses", String("42"), 42},
		{"string garbage is NaN", String("abc"), math.NaN()},
		{"bool true", Bool(true), 1},
		{"bool false", Bool(false), 0},
		{"null", Null, 0},
		{"number", Number(3.14), 3.14},
		{"integer", Integer(7), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.ToNumber()
			if math.IsNaN(tt.want) {
				if !math.IsNaN(got) {
					t.Errorf("ToNumber() = %v, want NaN", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ToNumber() = %v, want %v", got, tt.want)
			}
		})
	}
	if !math.IsNaN(Undefined.ToNumber()) {
		t.Errorf("undefined.ToNumber() should be NaN")
	}
	if !math.IsNaN(FromObject(NewObject()).ToNumber()) {
		t.Errorf("object.ToNumber() should be NaN")
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Undefined, "undefined"},
		{Null, "object"},
		{FromObject(NewObject()), "object"},
		{Bool(true), "boolean"},
		{Number(1), "number"},
		{Integer(1), "number"},
		{String("x"), "string"},
		{NewNativeFunction("f", func(args []Value, global, this, callee Value) (Value, error) {
			return Undefined, nil
		}), "function"},
	}
	for _, tt := range tests {
		if got := tt.v.TypeOf(); got != tt.want {
			t.Errorf("TypeOf(%v) = %q, want %q", tt.v.Kind(), got, tt.want)
		}
	}
}

func TestGetPropPrototypeChain(t *testing.T) {
	proto := NewObject()
	proto.SetValue("greeting", String("hi"))

	child := NewObject()
	child.SetValue(InstancePrototypeKey, FromObject(proto))
	child.SetValue("name", String("kid"))

	if d, ok := GetProp(FromObject(child), "name"); !ok || d.Value.AsString() != "kid" {
		t.Fatalf("direct property lookup failed: %+v", d)
	}
	if d, ok := GetProp(FromObject(child), "greeting"); !ok || d.Value.AsString() != "hi" {
		t.Fatalf("prototype chain lookup failed: %+v", d)
	}
	if _, ok := GetProp(FromObject(child), "missing"); ok {
		t.Fatalf("missing property should not be found")
	}
}

func TestGetPropFollowsPrototypeField(t *testing.T) {
	ctorProto := NewObject()
	ctorProto.SetValue("shared", Number(7))

	ctor := NewObject()
	ctor.SetValue(PrototypeKey, FromObject(ctorProto))

	if d, ok := GetProp(FromObject(ctor), "shared"); !ok || d.Value.AsNumber() != 7 {
		t.Fatalf("prototype field lookup failed: %+v", d)
	}
}

func TestGetPropCycleIsBounded(t *testing.T) {
	a := NewObject()
	b := NewObject()
	a.SetValue(InstancePrototypeKey, FromObject(b))
	b.SetValue(InstancePrototypeKey, FromObject(a))

	if _, ok := GetProp(FromObject(a), "nonexistent"); ok {
		t.Fatalf("cyclic prototype chain should terminate without a match")
	}
}

func TestSameValue(t *testing.T) {
	obj := NewObject()
	if !SameValue(FromObject(obj), FromObject(obj)) {
		t.Errorf("same object pointer should compare equal")
	}
	if SameValue(FromObject(obj), FromObject(NewObject())) {
		t.Errorf("different object pointers should not compare equal")
	}
	if !SameValue(Number(1), Number(1)) {
		t.Errorf("equal numbers should compare equal")
	}
}

func TestArrayDeclString(t *testing.T) {
	arr := NewObject()
	arr.IsArray = true
	arr.SetValue("0", String("a"))
	arr.SetValue("1", Number(2))
	arr.SetValue("length", Number(2))

	if got := FromObject(arr).String(); got != "a,2" {
		t.Errorf("array String() = %q, want %q", got, "a,2")
	}
}
