package builtins

import (
	"math"
	"math/rand"

	"github.com/go-jsvm/jsvm/internal/value"
)

// installMath installs the `Math` object (spec.md §6): the eight named
// constants and the nineteen named methods, each a thin native wrapper
// over the standard library's math package — no ecosystem math library
// is warranted for single-argument trig/rounding calls (see DESIGN.md).
func installMath(global *value.Object) {
	m := value.NewObject()

	m.SetValue("E", value.Number(math.E))
	m.SetValue("LN2", value.Number(math.Ln2))
	m.SetValue("LN10", value.Number(math.Ln10))
	m.SetValue("LOG2E", value.Number(math.Log2E))
	m.SetValue("LOG10E", value.Number(math.Log10E))
	m.SetValue("SQRT1_2", value.Number(math.Sqrt(0.5)))
	m.SetValue("SQRT2", value.Number(math.Sqrt2))
	m.SetValue("PI", value.Number(math.Pi))

	unary := func(f func(float64) float64) value.NativeFn {
		return func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
			return value.Number(f(arg(args, 0))), nil
		}
	}

	m.SetValue("abs", value.NewNativeFunction("abs", unary(math.Abs)))
	m.SetValue("acos", value.NewNativeFunction("acos", unary(math.Acos)))
	m.SetValue("asin", value.NewNativeFunction("asin", unary(math.Asin)))
	m.SetValue("atan", value.NewNativeFunction("atan", unary(math.Atan)))
	m.SetValue("cbrt", value.NewNativeFunction("cbrt", unary(math.Cbrt)))
	m.SetValue("ceil", value.NewNativeFunction("ceil", unary(math.Ceil)))
	m.SetValue("cos", value.NewNativeFunction("cos", unary(math.Cos)))
	m.SetValue("exp", value.NewNativeFunction("exp", unary(math.Exp)))
	m.SetValue("floor", value.NewNativeFunction("floor", unary(math.Floor)))
	m.SetValue("log", value.NewNativeFunction("log", unary(math.Log)))
	m.SetValue("round", value.NewNativeFunction("round", unary(math.Round)))
	m.SetValue("sin", value.NewNativeFunction("sin", unary(math.Sin)))
	m.SetValue("sqrt", value.NewNativeFunction("sqrt", unary(math.Sqrt)))
	m.SetValue("tan", value.NewNativeFunction("tan", unary(math.Tan)))

	m.SetValue("atan2", value.NewNativeFunction("atan2", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		return value.Number(math.Atan2(arg(args, 0), arg(args, 1))), nil
	}))
	m.SetValue("pow", value.NewNativeFunction("pow", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		return value.Number(math.Pow(arg(args, 0), arg(args, 1))), nil
	}))
	m.SetValue("max", value.NewNativeFunction("max", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Number(math.Inf(-1)), nil
		}
		best := args[0].ToNumber()
		for _, a := range args[1:] {
			best = math.Max(best, a.ToNumber())
		}
		return value.Number(best), nil
	}))
	m.SetValue("min", value.NewNativeFunction("min", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Number(math.Inf(1)), nil
		}
		best := args[0].ToNumber()
		for _, a := range args[1:] {
			best = math.Min(best, a.ToNumber())
		}
		return value.Number(best), nil
	}))
	m.SetValue("random", value.NewNativeFunction("random", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		return value.Number(rand.Float64()), nil
	}))

	global.SetValue("Math", value.FromObject(m))
}

// arg returns args[i] coerced to a number, or NaN (ToNumber of
// Undefined) if the argument is missing.
func arg(args []value.Value, i int) float64 {
	if i >= len(args) {
		return value.Undefined.ToNumber()
	}
	return args[i].ToNumber()
}
