package builtins

import (
	"math"

	"github.com/go-jsvm/jsvm/internal/value"
)

// installNumber installs the `Number` constructor: called as a
// function it coerces its argument (spec.md §4.4 "Numeric coercion");
// constructed with `new` it still returns the primitive, since the
// value model has no boxed-Number object kind. The constructor also
// carries a handful of named constants, same as Math's (see math.go).
func installNumber(global *value.Object) {
	ctorFn := value.NewNativeFunction("Number", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Number(0), nil
		}
		return value.Number(args[0].ToNumber()), nil
	})
	n := ctorFn.AsObject()
	n.SetValue("MAX_VALUE", value.Number(math.MaxFloat64))
	n.SetValue("MIN_VALUE", value.Number(math.SmallestNonzeroFloat64))
	n.SetValue("EPSILON", value.Number(2.220446049250313e-16))
	n.SetValue("NaN", value.Number(math.NaN()))
	n.SetValue("POSITIVE_INFINITY", value.Number(math.Inf(1)))
	n.SetValue("NEGATIVE_INFINITY", value.Number(math.Inf(-1)))
	global.SetValue("Number", ctorFn)
}
