package interp

import "github.com/go-jsvm/jsvm/internal/value"

// looseEquals implements `==`/`!=` (spec.md §4.4 "BinOp(comp op, a, b)"):
// if either side is an object or function, use identity comparison;
// otherwise compare by value, cross-coercing string/number pairs
// through ToNumber.
func looseEquals(a, b value.Value) bool {
	if a.IsObjectLike() || b.IsObjectLike() {
		return value.SameValue(a, b)
	}
	if a.Kind() == b.Kind() {
		return value.SameValue(a, b)
	}
	return a.ToNumber() == b.ToNumber()
}

// strictEquals implements `===`/`!==`: same kind, then same value.
func strictEquals(a, b value.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	return value.SameValue(a, b)
}

// orderCompare implements `<`, `<=`, `>`, `>=`: both sides coerce to
// number (spec.md §4.4 "Order comparisons coerce to number").
func orderCompare(op string, a, b value.Value) bool {
	x, y := a.ToNumber(), b.ToNumber()
	switch op {
	case "<":
		return x < y
	case "<=":
		return x <= y
	case ">":
		return x > y
	case ">=":
		return x >= y
	default:
		return false
	}
}
