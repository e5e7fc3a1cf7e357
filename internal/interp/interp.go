// Package interp is the tree-walking evaluator (spec.md §4.4, C6):
// recursively evaluates an AST against a scope chain and a global
// object populated with the standard library (internal/builtins).
package interp

import (
	"fmt"
	"io"

	"github.com/go-jsvm/jsvm/internal/ast"
	"github.com/go-jsvm/jsvm/internal/value"
)

// Interpreter executes a parsed program. It is strictly single-threaded
// and synchronous (spec.md §5) — no operation suspends, so one
// Interpreter is never shared across goroutines.
type Interpreter struct {
	global *value.Object
	scopes []*scope
	output io.Writer
}

// Install registers a builtin onto an Interpreter's global object. C5
// (internal/builtins) implements this signature without importing
// internal/interp, avoiding an import cycle.
type Install func(global *value.Object, output io.Writer)

// New creates an Interpreter with a fresh global object, installs the
// given builtins, and seeds the initial scope (spec.md §4.4 "State":
// "the initial stack has one frame where both this and vars point at
// global").
func New(output io.Writer, installs ...Install) *Interpreter {
	global := value.NewObject()
	it := &Interpreter{global: global, output: output}
	for _, install := range installs {
		install(global, output)
	}
	it.scopes = []*scope{{this: value.FromObject(global), vars: global}}
	return it
}

// GlobalObject exposes the engine's global object. Hosts set bindings
// on it directly; ExecuteWithEnv copies an env object's own properties
// onto it. An env object is not linked into the global's prototype
// chain, so later changes to env are not seen by the script.
func (it *Interpreter) GlobalObject() *value.Object { return it.global }

// Run evaluates a top-level Block, spec.md §4.4's `run(expr)` contract.
// A `return` reaching the top level (outside any function call) simply
// yields its value rather than erroring, since §4.4's Return rule only
// promises well-defined behavior at a function's tail.
func (it *Interpreter) Run(block *ast.Block) (value.Value, error) {
	v, err := it.eval(block)
	if rv, ok := isReturn(err); ok {
		return rv, nil
	}
	return v, err
}

func (it *Interpreter) eval(node ast.Expr) (value.Value, error) {
	switch n := node.(type) {
	case *ast.Const:
		return it.evalConst(n), nil
	case *ast.Block:
		return it.evalBlock(n)
	case *ast.Local:
		return it.lookupLocal(n.Name), nil
	case *ast.GetConstField:
		return it.evalGetConstField(n)
	case *ast.GetField:
		return it.evalGetField(n)
	case *ast.Call:
		return it.evalCall(n)
	case *ast.Construct:
		return it.evalConstruct(n)
	case *ast.While:
		return it.evalWhile(n)
	case *ast.If:
		return it.evalIf(n)
	case *ast.Switch:
		return it.evalSwitch(n)
	case *ast.ObjectDecl:
		return it.evalObjectDecl(n)
	case *ast.ArrayDecl:
		return it.evalArrayDecl(n)
	case *ast.FunctionDecl:
		return it.evalFunctionDecl(n)
	case *ast.ArrowFunctionDecl:
		return it.evalArrowFunctionDecl(n)
	case *ast.BinaryOp:
		return it.evalBinaryOp(n)
	case *ast.UnaryOp:
		return it.evalUnaryOp(n)
	case *ast.Return:
		return it.evalReturn(n)
	case *ast.Throw:
		return it.evalThrow(n)
	case *ast.Assign:
		return it.evalAssign(n)
	case *ast.VarDecl:
		return it.evalVarDecl(n)
	case *ast.TypeOf:
		return it.evalTypeOf(n)
	default:
		return value.Undefined, fmt.Errorf("interp: unhandled node type %T", node)
	}
}

func (it *Interpreter) evalConst(c *ast.Const) value.Value {
	switch c.Kind {
	case ast.ConstNull:
		return value.Null
	case ast.ConstUndefined:
		return value.Undefined
	case ast.ConstBool:
		return value.Bool(c.Bool)
	case ast.ConstNumber:
		return value.Number(c.Number)
	case ast.ConstString:
		return value.String(c.Str)
	default:
		return value.Undefined
	}
}

// evalBlock evaluates each expression in order; the result is the
// last, and the first error (return or throw) stops the scan (spec.md
// §4.4 "Block(es)").
func (it *Interpreter) evalBlock(b *ast.Block) (value.Value, error) {
	result := value.Undefined
	for _, e := range b.Exprs {
		v, err := it.eval(e)
		if err != nil {
			return value.Undefined, err
		}
		result = v
	}
	return result, nil
}

func (it *Interpreter) evalGetConstField(g *ast.GetConstField) (value.Value, error) {
	obj, err := it.eval(g.Object)
	if err != nil {
		return value.Undefined, err
	}
	return value.GetField(obj, g.Name), nil
}

func (it *Interpreter) evalGetField(g *ast.GetField) (value.Value, error) {
	obj, err := it.eval(g.Object)
	if err != nil {
		return value.Undefined, err
	}
	key, err := it.eval(g.Key)
	if err != nil {
		return value.Undefined, err
	}
	return value.GetField(obj, key.ToPropertyKeyString()), nil
}

// evalCall implements spec.md §4.4 "Call(callee, args)". `this` binds
// to the evaluated object when callee is a field access, else global;
// arguments evaluate left to right before dispatch (spec.md §5
// "Ordering").
func (it *Interpreter) evalCall(c *ast.Call) (value.Value, error) {
	this := value.FromObject(it.global)
	var callee value.Value
	var err error

	switch co := c.Callee.(type) {
	case *ast.GetConstField:
		obj, oerr := it.eval(co.Object)
		if oerr != nil {
			return value.Undefined, oerr
		}
		this = obj
		callee = value.GetField(obj, co.Name)
	case *ast.GetField:
		obj, oerr := it.eval(co.Object)
		if oerr != nil {
			return value.Undefined, oerr
		}
		key, kerr := it.eval(co.Key)
		if kerr != nil {
			return value.Undefined, kerr
		}
		this = obj
		callee = value.GetField(obj, key.ToPropertyKeyString())
	default:
		callee, err = it.eval(c.Callee)
		if err != nil {
			return value.Undefined, err
		}
	}

	args, err := it.evalArgs(c.Args)
	if err != nil {
		return value.Undefined, err
	}

	fn := callee.AsFunction()
	if fn == nil {
		return value.Undefined, value.Throw(value.Undefined)
	}
	return it.callFunction(fn, callee, args, this)
}

func (it *Interpreter) evalArgs(exprs []ast.Expr) ([]value.Value, error) {
	args := make([]value.Value, len(exprs))
	for i, e := range exprs {
		v, err := it.eval(e)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// callFunction dispatches to a native or regular function body
// (spec.md §4.4 "Function dispatch").
func (it *Interpreter) callFunction(fn *value.Function, callee value.Value, args []value.Value, this value.Value) (value.Value, error) {
	if fn.Native != nil {
		return fn.Native(args, value.FromObject(it.global), this, callee)
	}
	return it.callRegular(fn, args, this)
}

// callRegular pushes a new scope with `this` bound and each parameter
// name set in vars, evaluates the body, and pops the scope on every
// exit path — normal, return, or throw.
func (it *Interpreter) callRegular(fn *value.Function, args []value.Value, this value.Value) (v value.Value, err error) {
	it.push(this)
	defer it.pop()

	frame := it.top()
	for i, name := range fn.Params {
		if i < len(args) {
			frame.vars.SetValue(name, args[i])
		} else {
			frame.vars.SetValue(name, value.Undefined)
		}
	}

	bodyExpr, ok := fn.Body.(ast.Expr)
	if !ok || bodyExpr == nil {
		return value.Undefined, nil
	}

	v, err = it.eval(bodyExpr)
	if rv, ok := isReturn(err); ok {
		return rv, nil
	}
	return v, err
}

// evalConstruct implements spec.md §4.4 "Construct(callee, args)": a
// fresh object is always returned for regular functions, regardless of
// what the body's tail expression evaluates to; native constructors
// return whatever the native call produces.
func (it *Interpreter) evalConstruct(c *ast.Construct) (value.Value, error) {
	callee, err := it.eval(c.Callee)
	if err != nil {
		return value.Undefined, err
	}
	args, err := it.evalArgs(c.Args)
	if err != nil {
		return value.Undefined, err
	}
	fn := callee.AsFunction()
	if fn == nil {
		return value.Undefined, value.Throw(value.Undefined)
	}

	obj := value.NewObject()
	obj.SetValue(value.InstancePrototypeKey, value.GetField(callee, value.PrototypeKey))
	this := value.FromObject(obj)

	if fn.Native != nil {
		return fn.Native(args, value.FromObject(it.global), this, callee)
	}
	if _, err := it.callRegular(fn, args, this); err != nil {
		return value.Undefined, err
	}
	return this, nil
}

func (it *Interpreter) evalWhile(w *ast.While) (value.Value, error) {
	result := value.Undefined
	for {
		cond, err := it.eval(w.Cond)
		if err != nil {
			return value.Undefined, err
		}
		if !cond.Truthy() {
			return result, nil
		}
		v, err := it.eval(w.Body)
		if err != nil {
			return value.Undefined, err
		}
		result = v
	}
}

func (it *Interpreter) evalIf(i *ast.If) (value.Value, error) {
	cond, err := it.eval(i.Cond)
	if err != nil {
		return value.Undefined, err
	}
	if cond.Truthy() {
		return it.eval(i.Then)
	}
	if i.Else != nil {
		return it.eval(i.Else)
	}
	return value.Undefined, nil
}

// evalSwitch implements spec.md §4.4 "Switch(val, cases, default?)": a
// linear top-to-bottom scan, `==` comparison, and no fall-through
// between arms (spec.md §9 "Switch fall-through").
func (it *Interpreter) evalSwitch(s *ast.Switch) (value.Value, error) {
	val, err := it.eval(s.Value)
	if err != nil {
		return value.Undefined, err
	}
	for _, c := range s.Cases {
		caseVal, err := it.eval(c.Expr)
		if err != nil {
			return value.Undefined, err
		}
		if looseEquals(val, caseVal) {
			return it.eval(c.Body)
		}
	}
	if s.Default != nil {
		return it.eval(s.Default)
	}
	return value.Undefined, nil
}

func (it *Interpreter) evalObjectDecl(o *ast.ObjectDecl) (value.Value, error) {
	obj := value.NewObject()
	objectCtor := value.GetField(value.FromObject(it.global), "Object")
	obj.SetValue(value.InstancePrototypeKey, value.GetField(objectCtor, value.PrototypeKey))
	for i, name := range o.Names {
		v, err := it.eval(o.Values[i])
		if err != nil {
			return value.Undefined, err
		}
		obj.SetValue(name, v)
	}
	return value.FromObject(obj), nil
}

func (it *Interpreter) evalArrayDecl(a *ast.ArrayDecl) (value.Value, error) {
	obj := value.NewObject()
	obj.IsArray = true
	for i, e := range a.Elems {
		v, err := it.eval(e)
		if err != nil {
			return value.Undefined, err
		}
		obj.SetValue(fmt.Sprintf("%d", i), v)
	}
	obj.SetValue("length", value.Number(float64(len(a.Elems))))
	arrayCtor := value.GetField(value.FromObject(it.global), "Array")
	obj.SetValue(value.InstancePrototypeKey, value.GetField(arrayCtor, value.PrototypeKey))
	return value.FromObject(obj), nil
}

func (it *Interpreter) evalFunctionDecl(f *ast.FunctionDecl) (value.Value, error) {
	fn := value.NewRegularFunction(f.Name, f.Params, f.Body)
	if f.Name != "" {
		it.global.SetValue(f.Name, fn)
	}
	return fn, nil
}

func (it *Interpreter) evalArrowFunctionDecl(a *ast.ArrowFunctionDecl) (value.Value, error) {
	return value.NewRegularFunction("", a.Params, a.Body), nil
}

func (it *Interpreter) evalReturn(r *ast.Return) (value.Value, error) {
	v := value.Undefined
	if r.Value != nil {
		var err error
		v, err = it.eval(r.Value)
		if err != nil {
			return value.Undefined, err
		}
	}
	return value.Undefined, &returnSignal{value: v}
}

func (it *Interpreter) evalThrow(t *ast.Throw) (value.Value, error) {
	v, err := it.eval(t.Value)
	if err != nil {
		return value.Undefined, err
	}
	return value.Undefined, value.Throw(v)
}

// evalAssign implements spec.md §4.4 "Assign(lhs, rhs)": a Local target
// writes to the current scope's vars (never an outer scope, matching
// §9's closures note); a GetConstField or GetField target writes to the
// object; any other lhs shape silently no-ops and the assignment still
// yields rhs's value.
func (it *Interpreter) evalAssign(a *ast.Assign) (value.Value, error) {
	rhs, err := it.eval(a.Value)
	if err != nil {
		return value.Undefined, err
	}
	switch lhs := a.Target.(type) {
	case *ast.Local:
		it.top().vars.SetValue(lhs.Name, rhs)
	case *ast.GetConstField:
		obj, err := it.eval(lhs.Object)
		if err != nil {
			return value.Undefined, err
		}
		value.SetField(obj, lhs.Name, rhs)
	case *ast.GetField:
		obj, err := it.eval(lhs.Object)
		if err != nil {
			return value.Undefined, err
		}
		key, err := it.eval(lhs.Key)
		if err != nil {
			return value.Undefined, err
		}
		value.SetField(obj, key.ToPropertyKeyString(), rhs)
	}
	return rhs, nil
}

func (it *Interpreter) evalVarDecl(v *ast.VarDecl) (value.Value, error) {
	for _, entry := range v.Entries {
		val := value.Undefined
		if entry.Init != nil {
			var err error
			val, err = it.eval(entry.Init)
			if err != nil {
				return value.Undefined, err
			}
		}
		it.top().vars.SetValue(entry.Name, val)
	}
	return value.Undefined, nil
}

func (it *Interpreter) evalTypeOf(t *ast.TypeOf) (value.Value, error) {
	v, err := it.eval(t.Value)
	if err != nil {
		return value.Undefined, err
	}
	return value.String(v.TypeOf()), nil
}
