package parser

import (
	"testing"

	"github.com/go-jsvm/jsvm/internal/ast"
	"github.com/go-jsvm/jsvm/internal/lexer"
)

func mustParse(t *testing.T, src string) *ast.Block {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("lex(%q) error: %v", src, err)
	}
	block, err := Parse(toks)
	if err != nil {
		t.Fatalf("parse(%q) error: %v", src, err)
	}
	return block
}

func firstExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	block := mustParse(t, src)
	if len(block.Exprs) != 1 {
		t.Fatalf("parse(%q) produced %d top-level exprs, want 1", src, len(block.Exprs))
	}
	return block.Exprs[0]
}

func TestPrecedenceLaw(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"mul binds tighter than add", "a + b * c", "(a + (b * c))"},
		{"add left-associative", "a - b + c", "((a - b) + c)"},
		{"mul left-associative", "a / b * c", "((a / b) * c)"},
		{"comparison looser than add", "a + b < c", "((a + b) < c)"},
		{"and looser than or-bit", "a | b && c", "((a | b) && c)"},
		{"equality looser than comparison", "a < b == c < d", "((a < b) == (c < d))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := firstExpr(t, tt.src)
			if got := expr.String(); got != tt.want {
				t.Errorf("parse(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParsesLiterals(t *testing.T) {
	tests := []struct {
		src  string
		kind ast.ConstKind
	}{
		{"42", ast.ConstNumber},
		{`"hello"`, ast.ConstString},
		{"true", ast.ConstBool},
		{"null", ast.ConstNull},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			c, ok := firstExpr(t, tt.src).(*ast.Const)
			if !ok {
				t.Fatalf("parse(%q) did not produce *ast.Const", tt.src)
			}
			if c.Kind != tt.kind {
				t.Errorf("parse(%q) kind = %v, want %v", tt.src, c.Kind, tt.kind)
			}
		})
	}
}

func TestParsesCallAndNew(t *testing.T) {
	call, ok := firstExpr(t, "foo(1, 2)").(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call")
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}

	construct, ok := firstExpr(t, "new Foo(1)").(*ast.Construct)
	if !ok {
		t.Fatalf("expected *ast.Construct")
	}
	if len(construct.Args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(construct.Args))
	}
}

func TestNewRequiresCallForm(t *testing.T) {
	toks, err := lexer.Lex("new 5")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, err = Parse(toks)
	if err == nil {
		t.Fatalf("expected parse error for `new 5`")
	}
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ExpectedExpr {
		t.Fatalf("expected ExpectedExpr error, got %#v", err)
	}
}

func TestParsesArrayHoles(t *testing.T) {
	arr, ok := firstExpr(t, "[,'home',,'school']").(*ast.ArrayDecl)
	if !ok {
		t.Fatalf("expected *ast.ArrayDecl")
	}
	if len(arr.Elems) != 4 {
		t.Fatalf("expected 4 elements, got %d", len(arr.Elems))
	}
	hole, ok := arr.Elems[0].(*ast.Const)
	if !ok || hole.Kind != ast.ConstNull {
		t.Fatalf("expected first element to be a null hole, got %#v", arr.Elems[0])
	}
}

func TestParsesObjectLiteral(t *testing.T) {
	obj, ok := firstExpr(t, "{num: 42, name: 'x'}").(*ast.ObjectDecl)
	if !ok {
		t.Fatalf("expected *ast.ObjectDecl")
	}
	if len(obj.Names) != 2 || obj.Names[0] != "num" || obj.Names[1] != "name" {
		t.Fatalf("unexpected object keys: %v", obj.Names)
	}
}

func TestParsesArrowFunctions(t *testing.T) {
	single, ok := firstExpr(t, "x => x + 1").(*ast.ArrowFunctionDecl)
	if !ok || len(single.Params) != 1 || single.Params[0] != "x" {
		t.Fatalf("expected single-param arrow function, got %#v", single)
	}

	multi, ok := firstExpr(t, "(a, b) => a + b").(*ast.ArrowFunctionDecl)
	if !ok || len(multi.Params) != 2 {
		t.Fatalf("expected two-param arrow function, got %#v", multi)
	}

	nullary, ok := firstExpr(t, "() => 1").(*ast.ArrowFunctionDecl)
	if !ok || len(nullary.Params) != 0 {
		t.Fatalf("expected zero-param arrow function, got %#v", nullary)
	}
}

func TestParsesFunctionDeclaration(t *testing.T) {
	fn, ok := firstExpr(t, "function add(a, b) { return a + b }").(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl")
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function shape: %#v", fn)
	}
}

func TestParsesIfWhileSwitch(t *testing.T) {
	ifExpr, ok := firstExpr(t, "if (a) b else c").(*ast.If)
	if !ok || ifExpr.Else == nil {
		t.Fatalf("expected if/else, got %#v", ifExpr)
	}

	whileExpr, ok := firstExpr(t, "while (a) b").(*ast.While)
	if !ok {
		t.Fatalf("expected *ast.While")
	}
	_ = whileExpr

	sw, ok := firstExpr(t, "switch (a) { case 1: b; default: c }").(*ast.Switch)
	if !ok || len(sw.Cases) != 1 || sw.Default == nil {
		t.Fatalf("expected switch with one case and a default, got %#v", sw)
	}
}

func TestParsesVarAndAssign(t *testing.T) {
	v, ok := firstExpr(t, "var a = 1, b").(*ast.VarDecl)
	if !ok || len(v.Entries) != 2 {
		t.Fatalf("expected var decl with 2 entries, got %#v", v)
	}
	if v.Entries[0].Init == nil {
		t.Fatalf("expected initializer for a")
	}
	if v.Entries[1].Init != nil {
		t.Fatalf("expected no initializer for b")
	}

	assign, ok := firstExpr(t, "a = 5").(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign")
	}
	if _, ok := assign.Target.(*ast.Local); !ok {
		t.Fatalf("expected Local assignment target")
	}
}

func TestUnexpectedKeywordError(t *testing.T) {
	toks, err := lexer.Lex("break")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, err = Parse(toks)
	if err == nil {
		t.Fatalf("expected error for reserved keyword `break`")
	}
	perr, ok := err.(*Error)
	if !ok || perr.Kind != UnexpectedKeyword {
		t.Fatalf("expected UnexpectedKeyword error, got %#v", err)
	}
}
