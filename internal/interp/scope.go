package interp

import "github.com/go-jsvm/jsvm/internal/value"

// scope is one stack frame: a `this` binding and a `vars` object
// (spec.md §3 "Scope"). Local-variable writes always target the
// topmost scope's vars, never an enclosing one — per spec.md §9
// "Closures", function invocation does not capture a lexical
// environment, so there is no notion of an "outer" scope to write
// through.
type scope struct {
	this value.Value
	vars *value.Object
}

func newScope(this value.Value) *scope {
	return &scope{this: this, vars: value.NewObject()}
}

// top returns the interpreter's current (innermost) scope.
func (it *Interpreter) top() *scope {
	return it.scopes[len(it.scopes)-1]
}

// push enters a new call frame.
func (it *Interpreter) push(this value.Value) {
	it.scopes = append(it.scopes, newScope(this))
}

// pop leaves the current call frame. Called on every exit path — normal,
// return, or throw (spec.md §3 invariant "pushes exactly one scope and
// pops exactly one scope on every exit path").
func (it *Interpreter) pop() {
	it.scopes = it.scopes[:len(it.scopes)-1]
}

// lookupLocal walks the scope stack most-recent-first, falling back to
// the global object, per spec.md §4.4 "Local(name)". "this" is not a
// variable: it always reads the innermost call frame's binding, never
// an enclosing one and never the global object.
func (it *Interpreter) lookupLocal(name string) value.Value {
	if name == "this" {
		return it.top().this
	}
	for i := len(it.scopes) - 1; i >= 0; i-- {
		if d, ok := it.scopes[i].vars.Get(name); ok {
			return d.Value
		}
	}
	if d, ok := it.global.Get(name); ok {
		return d.Value
	}
	return value.Undefined
}
