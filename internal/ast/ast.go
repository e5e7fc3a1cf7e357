// Package ast defines the abstract syntax tree produced by the parser.
// Nodes are pure data: formatting aside, they carry no behavior. The two
// operations the parser needs over operators — Precedence and
// Associativity — live here too (spec.md §4.2).
package ast

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-jsvm/jsvm/pkg/token"
)

// Node is implemented by every AST node.
type Node interface {
	String() string
	Span() token.Span
}

// Expr is implemented by every expression node. The grammar has no
// separate statement form — a Block's entries, an if-branch, a function
// body are all Exprs, matching spec.md §3's "typed sum" of expression
// variants (the teacher's split Statement interface collapses here since
// there is nothing outside that sum).
type Expr interface {
	Node
	exprNode()
}

// Base carries the source span every node embeds. The parser sets Sp
// only on the top-level Block that Parse returns; every other node keeps
// the zero span, which is valid but carries no location.
type Base struct {
	Sp token.Span
}

func (b Base) Span() token.Span { return b.Sp }

// ConstKind distinguishes the literal payload carried by a Const node.
type ConstKind int

const (
	ConstNull ConstKind = iota
	ConstUndefined
	ConstBool
	ConstNumber
	ConstString
)

// Const is a literal value baked into the source (spec.md §4.4 "Const(c)").
// Regex literals are not part of the grammar: the lexer never produces one,
// so there is no regexp variant to carry (spec.md's Non-goals exclude regex
// matching, and nothing in this module scans `/pattern/` as a literal).
type Const struct {
	Base
	Kind   ConstKind
	Bool   bool
	Number float64
	Str    string
}

func (c *Const) exprNode() {}
func (c *Const) String() string {
	switch c.Kind {
	case ConstNull:
		return "null"
	case ConstUndefined:
		return "undefined"
	case ConstBool:
		return strconv.FormatBool(c.Bool)
	case ConstNumber:
		return strconv.FormatFloat(c.Number, 'g', -1, 64)
	case ConstString:
		return strconv.Quote(c.Str)
	default:
		return "<const>"
	}
}

// BinaryOp is a two-operand operator application. Op is one of the
// punctuator strings from pkg/token (numeric, bitwise, comparison or
// logical).
type BinaryOp struct {
	Base
	Op    string
	Left  Expr
	Right Expr
}

func (b *BinaryOp) exprNode() {}
func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// UnaryPosition distinguishes prefix from postfix unary forms; only
// ++/-- take both.
type UnaryPosition int

const (
	Prefix UnaryPosition = iota
	Postfix
)

// UnaryOp is a single-operand operator application: -x +x !x ++x x++
// --x x--.
type UnaryOp struct {
	Base
	Op       string
	Operand  Expr
	Position UnaryPosition
}

func (u *UnaryOp) exprNode() {}
func (u *UnaryOp) String() string {
	if u.Position == Postfix {
		return fmt.Sprintf("(%s%s)", u.Operand, u.Op)
	}
	return fmt.Sprintf("(%s%s)", u.Op, u.Operand)
}

// Block is a sequence of expressions evaluated in order; its value is
// the last one evaluated (spec.md §4.4 "Block(es)").
type Block struct {
	Base
	Exprs []Expr
}

func (b *Block) exprNode() {}
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{")
	for i, e := range b.Exprs {
		if i > 0 {
			out.WriteString("; ")
		}
		out.WriteString(e.String())
	}
	out.WriteString("}")
	return out.String()
}

// Local is a bare identifier reference, resolved against the scope
// chain then the global object at evaluation time.
type Local struct {
	Base
	Name string
}

func (l *Local) exprNode()      {}
func (l *Local) String() string { return l.Name }

// GetConstField is property access with a literal name: obj.name.
type GetConstField struct {
	Base
	Object Expr
	Name   string
}

func (g *GetConstField) exprNode() {}
func (g *GetConstField) String() string {
	return fmt.Sprintf("%s.%s", g.Object, g.Name)
}

// GetField is property access with a computed key: obj[keyExpr].
type GetField struct {
	Base
	Object Expr
	Key    Expr
}

func (g *GetField) exprNode() {}
func (g *GetField) String() string {
	return fmt.Sprintf("%s[%s]", g.Object, g.Key)
}

// Call invokes callee with args. If callee is a GetConstField/GetField,
// the evaluator binds `this` to the evaluated object (spec.md §4.4).
type Call struct {
	Base
	Callee Expr
	Args   []Expr
}

func (c *Call) exprNode() {}
func (c *Call) String() string {
	return fmt.Sprintf("%s(%s)", c.Callee, joinExprs(c.Args))
}

// Construct is `new callee(args)`.
type Construct struct {
	Base
	Callee Expr
	Args   []Expr
}

func (c *Construct) exprNode() {}
func (c *Construct) String() string {
	return fmt.Sprintf("new %s(%s)", c.Callee, joinExprs(c.Args))
}

// While loops while Cond is truthy.
type While struct {
	Base
	Cond Expr
	Body Expr
}

func (w *While) exprNode() {}
func (w *While) String() string {
	return fmt.Sprintf("while (%s) %s", w.Cond, w.Body)
}

// If branches on Cond's truthiness; Else is nil when absent.
type If struct {
	Base
	Cond Expr
	Then Expr
	Else Expr
}

func (i *If) exprNode() {}
func (i *If) String() string {
	if i.Else == nil {
		return fmt.Sprintf("if (%s) %s", i.Cond, i.Then)
	}
	return fmt.Sprintf("if (%s) %s else %s", i.Cond, i.Then, i.Else)
}

// SwitchCase is one `case Expr: Body` arm.
type SwitchCase struct {
	Expr Expr
	Body Expr
}

// Switch performs a linear, first-match, no-fallthrough scan over Cases
// (spec.md §4.4, §9). Default is nil when absent.
type Switch struct {
	Base
	Value   Expr
	Cases   []SwitchCase
	Default Expr
}

func (s *Switch) exprNode() {}
func (s *Switch) String() string {
	var out bytes.Buffer
	fmt.Fprintf(&out, "switch (%s) {", s.Value)
	for _, c := range s.Cases {
		fmt.Fprintf(&out, " case %s: %s", c.Expr, c.Body)
	}
	if s.Default != nil {
		fmt.Fprintf(&out, " default: %s", s.Default)
	}
	out.WriteString(" }")
	return out.String()
}

// ObjectDecl is an object literal; Names preserves declaration order.
type ObjectDecl struct {
	Base
	Names  []string
	Values []Expr
}

func (o *ObjectDecl) exprNode() {}
func (o *ObjectDecl) String() string {
	parts := make([]string, len(o.Names))
	for i, n := range o.Names {
		parts[i] = fmt.Sprintf("%s: %s", n, o.Values[i])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ArrayDecl is an array literal. A trailing-comma hole is represented as
// a *Const with Kind == ConstNull (spec.md §4.3 edge-case policy).
type ArrayDecl struct {
	Base
	Elems []Expr
}

func (a *ArrayDecl) exprNode() {}
func (a *ArrayDecl) String() string {
	return "[" + joinExprs(a.Elems) + "]"
}

// FunctionDecl is a `function` expression. Name is "" when anonymous; a
// named declaration also binds Name on the global object (spec.md
// §4.4).
type FunctionDecl struct {
	Base
	Name   string
	Params []string
	Body   Expr
}

func (f *FunctionDecl) exprNode() {}
func (f *FunctionDecl) String() string {
	name := f.Name
	return fmt.Sprintf("function %s(%s) %s", name, strings.Join(f.Params, ", "), f.Body)
}

// ArrowFunctionDecl is an arrow function; it never binds a name.
type ArrowFunctionDecl struct {
	Base
	Params []string
	Body   Expr
}

func (a *ArrowFunctionDecl) exprNode() {}
func (a *ArrowFunctionDecl) String() string {
	return fmt.Sprintf("(%s) => %s", strings.Join(a.Params, ", "), a.Body)
}

// Return evaluates Value (or undefined, if nil) and exits the enclosing
// call, also from inside a nested if, while or switch (spec.md §4.4).
type Return struct {
	Base
	Value Expr
}

func (r *Return) exprNode() {}
func (r *Return) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}

// Throw evaluates Value and surfaces it as the error result.
type Throw struct {
	Base
	Value Expr
}

func (t *Throw) exprNode() {}
func (t *Throw) String() string {
	return "throw " + t.Value.String()
}

// Assign writes Value to Target. Local, GetConstField and GetField
// targets are written; other target shapes silently no-op
// (spec.md §4.4, §9).
type Assign struct {
	Base
	Target Expr
	Value  Expr
}

func (a *Assign) exprNode() {}
func (a *Assign) String() string {
	return fmt.Sprintf("%s = %s", a.Target, a.Value)
}

// VarDeclEntry is one `name [= init]` binding within a VarDecl.
type VarDeclEntry struct {
	Name string
	Init Expr // nil when no initializer
}

// VarDecl is a `var` statement: one or more comma-separated bindings.
type VarDecl struct {
	Base
	Entries []VarDeclEntry
}

func (v *VarDecl) exprNode() {}
func (v *VarDecl) String() string {
	parts := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		if e.Init == nil {
			parts[i] = e.Name
		} else {
			parts[i] = fmt.Sprintf("%s = %s", e.Name, e.Init)
		}
	}
	return "var " + strings.Join(parts, ", ")
}

// TypeOf is the `typeof` unary keyword operator.
type TypeOf struct {
	Base
	Value Expr
}

func (t *TypeOf) exprNode() {}
func (t *TypeOf) String() string {
	return "typeof " + t.Value.String()
}

func joinExprs(es []Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// NewSpan returns s unchanged as a node span. The parser does not call
// it; nodes other than Parse's top-level Block carry the zero span.
func NewSpan(s token.Span) token.Span { return s }

// Precedence returns the binding power for a binary operator token,
// lower value binds tighter, per spec.md §3. Operators outside the
// table (unary, assignment, call/field forms) are handled structurally
// by the parser rather than through this table.
func Precedence(op string) int {
	switch op {
	case "*", "/", "%":
		return 5
	case "+", "-":
		return 6
	case "<<", ">>", ">>>":
		return 7
	case "<", "<=", ">", ">=":
		return 8
	case "==", "!=", "===", "!==":
		return 9
	case "&":
		return 10
	case "^":
		return 11
	case "|":
		return 12
	case "&&":
		return 13
	case "||":
		return 14
	default:
		return 0
	}
}

// Associativity reports the associativity of a binary operator. Every
// binary operator in the table is left-associative (spec.md §3).
func Associativity(op string) string { return "left" }

// IsBinaryOp reports whether op names one of the binary operators
// Precedence knows about.
func IsBinaryOp(op string) bool { return Precedence(op) > 0 }
