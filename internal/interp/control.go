package interp

import "github.com/go-jsvm/jsvm/internal/value"

// returnSignal threads a function's `return` out through nested Block/
// If/While/Switch evaluation without unwinding the Go call stack. This
// is the tri-state Control{Normal, Return, Throw} spec.md §9's
// "Exceptions / control flow" recommends (option (b)): Normal is a nil
// error, Throw is *value.ThrownError, and Return is this type. Only a
// regular-function call site (callRegular) and the top-level Run ever
// consume a *returnSignal; everywhere else it propagates exactly like a thrown
// error, which is what lets a `return` nested inside an `if` or `while`
// body escape those constructs without extra plumbing.
type returnSignal struct {
	value value.Value
}

func (r *returnSignal) Error() string { return "return outside of function" }

// isReturn reports whether err is a returnSignal and, if so, its value.
func isReturn(err error) (value.Value, bool) {
	rs, ok := err.(*returnSignal)
	if !ok {
		return value.Undefined, false
	}
	return rs.value, true
}
