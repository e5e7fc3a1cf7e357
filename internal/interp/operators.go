package interp

import (
	"math"

	"github.com/go-jsvm/jsvm/internal/ast"
	"github.com/go-jsvm/jsvm/internal/value"
)

// evalBinaryOp dispatches a binary operator over its evaluated operands
// (spec.md §4.4, four `BinOp` rows: numeric, bitwise, comparison,
// logical). Operands always evaluate left then right (spec.md §5
// "Ordering"), even for operators whose spec-given semantics don't need
// the right side (there are none among the ones implemented).
func (it *Interpreter) evalBinaryOp(b *ast.BinaryOp) (value.Value, error) {
	left, err := it.eval(b.Left)
	if err != nil {
		return value.Undefined, err
	}
	right, err := it.eval(b.Right)
	if err != nil {
		return value.Undefined, err
	}

	switch b.Op {
	case "+":
		if left.Kind() == value.KindString || right.Kind() == value.KindString {
			return value.String(left.String() + right.String()), nil
		}
		return value.Number(left.ToNumber() + right.ToNumber()), nil
	case "-":
		return value.Number(left.ToNumber() - right.ToNumber()), nil
	case "*":
		return value.Number(left.ToNumber() * right.ToNumber()), nil
	case "/":
		return value.Number(left.ToNumber() / right.ToNumber()), nil
	case "%":
		return value.Number(math.Mod(left.ToNumber(), right.ToNumber())), nil

	case "&":
		return value.Integer(left.ToInt32() & right.ToInt32()), nil
	case "|":
		return value.Integer(left.ToInt32() | right.ToInt32()), nil
	case "^":
		return value.Integer(left.ToInt32() ^ right.ToInt32()), nil
	case "<<":
		return value.Integer(left.ToInt32() << (uint32(right.ToInt32()) & 31)), nil
	case ">>":
		return value.Integer(left.ToInt32() >> (uint32(right.ToInt32()) & 31)), nil
	case ">>>":
		shifted := uint32(left.ToInt32()) >> (uint32(right.ToInt32()) & 31)
		return value.Integer(int32(shifted)), nil

	case "==":
		return value.Bool(looseEquals(left, right)), nil
	case "!=":
		return value.Bool(!looseEquals(left, right)), nil
	case "===":
		return value.Bool(strictEquals(left, right)), nil
	case "!==":
		return value.Bool(!strictEquals(left, right)), nil
	case "<", "<=", ">", ">=":
		return value.Bool(orderCompare(b.Op, left, right)), nil

	case "&&":
		return value.Bool(left.Truthy() && right.Truthy()), nil
	case "||":
		return value.Bool(left.Truthy() || right.Truthy()), nil

	default:
		return value.Undefined, nil
	}
}

// evalUnaryOp implements spec.md §4.4's three `UnaryOp` rows plus the
// increment/decrement forms the precedence table (spec.md §3) reserves
// but the evaluator table leaves implicit: `++`/`--` read-modify-write
// through the same lvalue shapes Assign supports.
func (it *Interpreter) evalUnaryOp(u *ast.UnaryOp) (value.Value, error) {
	switch u.Op {
	case "-":
		v, err := it.eval(u.Operand)
		if err != nil {
			return value.Undefined, err
		}
		return value.Number(-v.ToNumber()), nil
	case "+":
		v, err := it.eval(u.Operand)
		if err != nil {
			return value.Undefined, err
		}
		return value.Number(v.ToNumber()), nil
	case "!":
		v, err := it.eval(u.Operand)
		if err != nil {
			return value.Undefined, err
		}
		return value.Bool(!v.Truthy()), nil
	case "++", "--":
		return it.evalIncDec(u)
	default:
		return value.Undefined, nil
	}
}

func (it *Interpreter) evalIncDec(u *ast.UnaryOp) (value.Value, error) {
	old, err := it.eval(u.Operand)
	if err != nil {
		return value.Undefined, err
	}
	delta := 1.0
	if u.Op == "--" {
		delta = -1.0
	}
	updated := value.Number(old.ToNumber() + delta)

	switch lhs := u.Operand.(type) {
	case *ast.Local:
		it.top().vars.SetValue(lhs.Name, updated)
	case *ast.GetConstField:
		obj, err := it.eval(lhs.Object)
		if err != nil {
			return value.Undefined, err
		}
		value.SetField(obj, lhs.Name, updated)
	case *ast.GetField:
		obj, err := it.eval(lhs.Object)
		if err != nil {
			return value.Undefined, err
		}
		key, err := it.eval(lhs.Key)
		if err != nil {
			return value.Undefined, err
		}
		value.SetField(obj, key.ToPropertyKeyString(), updated)
	}

	if u.Position == ast.Postfix {
		return value.Number(old.ToNumber()), nil
	}
	return updated, nil
}
