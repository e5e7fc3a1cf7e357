package builtins

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-jsvm/jsvm/internal/value"
)

// installGlobalFunctions installs the bare global bindings spec.md §6
// names outside any namespace object: NaN, Infinity, parseFloat,
// parseInt, isFinite, isNaN.
func installGlobalFunctions(global *value.Object) {
	global.SetValue("NaN", value.Number(math.NaN()))
	global.SetValue("Infinity", value.Number(math.Inf(1)))

	global.SetValue("parseFloat", value.NewNativeFunction("parseFloat", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		s := strings.TrimSpace(str(args))
		end := len(s)
		for end > 0 {
			if _, err := strconv.ParseFloat(s[:end], 64); err == nil {
				break
			}
			end--
		}
		if end == 0 {
			return value.Number(math.NaN()), nil
		}
		n, err := strconv.ParseFloat(s[:end], 64)
		if err != nil {
			return value.Number(math.NaN()), nil
		}
		return value.Number(n), nil
	}))

	global.SetValue("parseInt", value.NewNativeFunction("parseInt", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		s := strings.TrimSpace(str(args))
		base := 10
		if len(args) > 1 {
			if b := int(args[1].ToNumber()); b != 0 {
				base = b
			}
		}
		neg := false
		if strings.HasPrefix(s, "-") {
			neg = true
			s = s[1:]
		} else if strings.HasPrefix(s, "+") {
			s = s[1:]
		}
		if base == 16 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
			s = s[2:]
		} else if base == 10 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
			base = 16
			s = s[2:]
		}
		end := 0
		for end < len(s) {
			if _, err := strconv.ParseInt(s[:end+1], base, 64); err != nil {
				break
			}
			end++
		}
		if end == 0 {
			return value.Number(math.NaN()), nil
		}
		n, err := strconv.ParseInt(s[:end], base, 64)
		if err != nil {
			return value.Number(math.NaN()), nil
		}
		if neg {
			n = -n
		}
		return value.Number(float64(n)), nil
	}))

	global.SetValue("isFinite", value.NewNativeFunction("isFinite", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		n := 0.0
		if len(args) > 0 {
			n = args[0].ToNumber()
		}
		return value.Bool(!math.IsNaN(n) && !math.IsInf(n, 0)), nil
	}))

	global.SetValue("isNaN", value.NewNativeFunction("isNaN", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		n := 0.0
		if len(args) > 0 {
			n = args[0].ToNumber()
		}
		return value.Bool(math.IsNaN(n)), nil
	}))
}
