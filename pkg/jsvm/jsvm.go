// Package jsvm is the public embedding API: compile and run scripts,
// splice host functions and values into the global object, and collect
// captured console output — shaped after the teacher's pkg/dwscript
// Engine façade (New/Eval/RegisterFunction/SetOutput).
package jsvm

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/go-jsvm/jsvm/internal/ast"
	"github.com/go-jsvm/jsvm/internal/builtins"
	"github.com/go-jsvm/jsvm/internal/errors"
	"github.com/go-jsvm/jsvm/internal/interp"
	"github.com/go-jsvm/jsvm/internal/lexer"
	"github.com/go-jsvm/jsvm/internal/parser"
	"github.com/go-jsvm/jsvm/internal/value"
)

// Program is a parsed, not-yet-evaluated script. Compiling once and
// running it repeatedly skips the lex/parse cost on every run.
type Program struct {
	block  *ast.Block
	source string
}

// Result is what one Eval/Run produces: the tail value, anything
// written to console during that call, and whether it completed
// without a thrown error.
type Result struct {
	Value   value.Value
	Output  string
	Success bool
}

// Engine holds host functions registered via RegisterFunction and an
// optional output sink; every Eval/Run gets a fresh interp.Interpreter
// seeded with both.
type Engine struct {
	buf        *bytes.Buffer
	userOut    io.Writer
	registered map[string]value.Value
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOutput mirrors console output to w in addition to the Engine's
// own internal buffer (which Result.Output is always drawn from).
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.userOut = w }
}

// New creates an Engine. Without options, console output is only
// available via Result.Output.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{buf: &bytes.Buffer{}}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// SetOutput changes the mirrored output sink after construction.
func (e *Engine) SetOutput(w io.Writer) { e.userOut = w }

func (e *Engine) writer() io.Writer {
	if e.userOut != nil {
		return io.MultiWriter(e.buf, e.userOut)
	}
	return e.buf
}

// Compile lexes and parses source without evaluating it.
func (e *Engine) Compile(source string) (*Program, error) {
	toks, err := lexer.Lex(source)
	if err != nil {
		if le, ok := err.(*lexer.Error); ok {
			return nil, errors.NewCompilerError(le.Pos, le.Reason, source, "")
		}
		return nil, err
	}
	block, err := parser.Parse(toks)
	if err != nil {
		if pe, ok := err.(*parser.Error); ok {
			return nil, errors.NewCompilerError(pe.Pos, pe.Error(), source, "")
		}
		return nil, err
	}
	return &Program{block: block, source: source}, nil
}

// Run evaluates an already-compiled Program, wiring in every function
// registered via RegisterFunction.
func (e *Engine) Run(p *Program) (*Result, error) {
	start := e.buf.Len()
	it := interp.New(e.writer(), builtins.Install)
	for name, fn := range e.registered {
		it.GlobalObject().SetValue(name, fn)
	}

	v, err := it.Run(p.block)
	out := e.buf.String()[start:]
	if err != nil {
		if thrown, ok := err.(*value.ThrownError); ok {
			return &Result{Output: out}, fmt.Errorf("%s", errors.FromThrown("", thrown.Value.String()))
		}
		return &Result{Output: out}, err
	}
	return &Result{Value: v, Output: out, Success: true}, nil
}

// Eval compiles and runs source in one step.
func (e *Engine) Eval(source string) (*Result, error) {
	p, err := e.Compile(source)
	if err != nil {
		return nil, err
	}
	return e.Run(p)
}

// RegisterFunction exposes a Go function to scripts under name,
// wrapping arbitrary Go arguments/returns through value.FromValue/
// value.ToValue-equivalent reflection (spec.md §4.5's from_value/
// to_value trait), generalized from the teacher's FFI registration.
// fn's last return value may optionally be an error; a non-nil error
// becomes a thrown value instead of a returned one.
func (e *Engine) RegisterFunction(name string, fn interface{}) error {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return fmt.Errorf("RegisterFunction: %s is not a function", name)
	}
	ft := fv.Type()

	native := value.NativeFn(func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		in := make([]reflect.Value, ft.NumIn())
		for i := 0; i < ft.NumIn(); i++ {
			var a value.Value
			if i < len(args) {
				a = args[i]
			} else {
				a = value.Undefined
			}
			pv, err := convertArg(a, ft.In(i))
			if err != nil {
				return value.Undefined, value.Throw(value.String(fmt.Sprintf("%s: argument %d: %v", name, i, err)))
			}
			in[i] = pv
		}
		return convertResults(fv.Call(in))
	})

	if e.registered == nil {
		e.registered = make(map[string]value.Value)
	}
	e.registered[name] = value.NewNativeFunction(name, native)
	return nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func convertArg(v value.Value, t reflect.Type) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.ValueOf(v.ToNumber()).Convert(t), nil
	case reflect.Float64, reflect.Float32:
		return reflect.ValueOf(v.ToNumber()).Convert(t), nil
	case reflect.String:
		return reflect.ValueOf(v.String()), nil
	case reflect.Bool:
		return reflect.ValueOf(v.Truthy()), nil
	case reflect.Slice:
		return convertSliceArg(v, t)
	default:
		return reflect.Value{}, fmt.Errorf("unsupported parameter type %s", t)
	}
}

// convertSliceArg reads an array-shaped object's numeric-index/length
// properties, the same shape value.ToJSON walks for array encoding.
func convertSliceArg(v value.Value, t reflect.Type) (reflect.Value, error) {
	obj := v.AsObject()
	if obj == nil {
		return reflect.Value{}, fmt.Errorf("expected array, got %s", v.Kind())
	}
	n := 0
	if d, ok := obj.Get("length"); ok {
		n = int(d.Value.ToNumber())
	}
	out := reflect.MakeSlice(t, n, n)
	for i := 0; i < n; i++ {
		elem := value.GetField(v, fmt.Sprintf("%d", i))
		ev, err := convertArg(elem, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(i).Set(ev)
	}
	return out, nil
}

// convertResults converts a registered function's return values: an
// optional trailing error becomes a thrown value, and the remaining
// single result is bridged with value.ToValue rather than a
// hand-rolled kind switch, reusing the same host-bridge logic
// internal/value already implements for ToValue.
func convertResults(out []reflect.Value) (value.Value, error) {
	if len(out) > 0 && out[len(out)-1].Type().Implements(errType) {
		if errv := out[len(out)-1].Interface(); errv != nil {
			return value.Undefined, value.Throw(value.String(errv.(error).Error()))
		}
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return value.Undefined, nil
	}
	return hostToValue(out[0].Interface())
}

// hostToValue extends value.ToValue with the one host shape it does
// not cover: a plain map[string]string, converted field-by-field.
func hostToValue(i interface{}) (value.Value, error) {
	if m, ok := i.(map[string]string); ok {
		conv := make(map[string]value.Value, len(m))
		for k, s := range m {
			conv[k] = value.String(s)
		}
		return value.ToValue(conv)
	}
	return value.ToValue(i)
}

// Execute compiles and runs source with no host environment, returning
// its tail value (spec.md §6).
func Execute(source string) (value.Value, error) {
	return ExecuteWithEnv(source, nil)
}

// ExecuteWithEnv is Execute with env's own properties copied onto the
// global object before the script runs, giving a script access to
// host-supplied bindings without a persistent Engine.
func ExecuteWithEnv(source string, env *value.Object) (value.Value, error) {
	toks, err := lexer.Lex(source)
	if err != nil {
		if le, ok := err.(*lexer.Error); ok {
			return value.Undefined, errors.NewCompilerError(le.Pos, le.Reason, source, "")
		}
		return value.Undefined, err
	}
	block, err := parser.Parse(toks)
	if err != nil {
		if pe, ok := err.(*parser.Error); ok {
			return value.Undefined, errors.NewCompilerError(pe.Pos, pe.Error(), source, "")
		}
		return value.Undefined, err
	}

	it := interp.New(io.Discard, builtins.Install)
	if env != nil {
		for _, k := range env.OwnKeys() {
			if d, ok := env.Get(k); ok {
				it.GlobalObject().SetValue(k, d.Value)
			}
		}
	}
	return it.Run(block)
}
