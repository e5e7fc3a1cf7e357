package interp

import (
	"bytes"
	"testing"

	"github.com/go-jsvm/jsvm/internal/builtins"
	"github.com/go-jsvm/jsvm/internal/lexer"
	"github.com/go-jsvm/jsvm/internal/parser"
	"github.com/go-jsvm/jsvm/internal/value"
)

func run(t *testing.T, src string) value.Value {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("lex(%q): %v", src, err)
	}
	block, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse(%q): %v", src, err)
	}
	it := New(&bytes.Buffer{}, builtins.Install)
	v, err := it.Run(block)
	if err != nil {
		t.Fatalf("run(%q): %v", src, err)
	}
	return v
}

// TestEndToEndScenarios exercises spec.md §8's concrete scenarios S1-S10.
func TestEndToEndScenarios(t *testing.T) {
	t.Run("S1 string literal", func(t *testing.T) {
		if got := run(t, `'Hello, world!'`).String(); got != "Hello, world!" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("S2 arithmetic precedence", func(t *testing.T) {
		if got := run(t, `((4 + 2) / 3) * 5`).ToNumber(); got != 10 {
			t.Errorf("got %v", got)
		}
	})
	t.Run("S3 function call with string concat", func(t *testing.T) {
		if got := run(t, `(function(a){return a + '!'})('Function')`).String(); got != "Function!" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("S4 constructor sets field via this", func(t *testing.T) {
		src := `function Text(p){this.phrase=p;}; new Text('Hello').phrase`
		if got := run(t, src).String(); got != "Hello" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("S5 JSON round trip", func(t *testing.T) {
		src := `JSON.parse(JSON.stringify({num:42})).num`
		if got := run(t, src).ToNumber(); got != 42 {
			t.Errorf("got %v", got)
		}
	})
	t.Run("S6 typeof totality", func(t *testing.T) {
		if got := run(t, `typeof Math.PI`).String(); got != "number" {
			t.Errorf("got %q", got)
		}
		if got := run(t, `typeof true`).String(); got != "boolean" {
			t.Errorf("got %q", got)
		}
		if got := run(t, `typeof ''`).String(); got != "string" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("S7 array hole is null", func(t *testing.T) {
		got := run(t, `[,'home',,'school'][0]`)
		if !got.IsNull() {
			t.Errorf("got %#v, want null", got)
		}
	})
	t.Run("S8 string escape", func(t *testing.T) {
		if got := run(t, `'Newline:\''`).String(); got != "Newline:'" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("S9 coercion for plus", func(t *testing.T) {
		if got := run(t, `117 + ''`).String(); got != "117" {
			t.Errorf("got %q", got)
		}
		if got := run(t, `null + ''`).String(); got != "null" {
			t.Errorf("got %q", got)
		}
		if got := run(t, `unexisty + ''`).String(); got != "undefined" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("S10 Object.defineProperty", func(t *testing.T) {
		src := `var obj={}; Object.defineProperty(obj,'x',{value:true}); obj.x`
		if got := run(t, src); !got.Truthy() {
			t.Errorf("got %#v, want true", got)
		}
	})
}

func TestWhileAndIf(t *testing.T) {
	src := `var i = 0; var sum = 0; while (i < 5) { sum = sum + i; i = i + 1; }; sum`
	if got := run(t, src).ToNumber(); got != 10 {
		t.Errorf("got %v, want 10", got)
	}

	if got := run(t, `if (1) 'yes'; else 'no'`).String(); got != "yes" {
		t.Errorf("got %q", got)
	}
}

func TestSwitchNoFallthrough(t *testing.T) {
	src := `switch (2) { case 1: 'one'; case 2: 'two'; default: 'other' }`
	if got := run(t, src).String(); got != "two" {
		t.Errorf("got %q", got)
	}
}

func TestNestedReturnEscapesIf(t *testing.T) {
	src := `(function(x){ if (x) { return 'early'; } return 'late'; })(true)`
	if got := run(t, src).String(); got != "early" {
		t.Errorf("got %q", got)
	}
}

func TestThrowPropagates(t *testing.T) {
	toks, err := lexer.Lex(`throw 'boom'`)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	block, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	it := New(&bytes.Buffer{}, builtins.Install)
	_, err = it.Run(block)
	if err == nil {
		t.Fatalf("expected thrown error")
	}
	thrown, ok := err.(*value.ThrownError)
	if !ok || thrown.Value.String() != "boom" {
		t.Fatalf("expected thrown 'boom', got %#v", err)
	}
}

func TestAssignTargetsCurrentScope(t *testing.T) {
	src := `var x = 1; (function(){ x = 2; })(); x`
	if got := run(t, src).ToNumber(); got != 1 {
		t.Errorf("got %v, want 1 (assignment inside call must not leak to global scope)", got)
	}
}

func TestPostfixAndPrefixIncrement(t *testing.T) {
	if got := run(t, `var x = 1; x++; x`).ToNumber(); got != 2 {
		t.Errorf("got %v", got)
	}
	if got := run(t, `var x = 1; ++x`).ToNumber(); got != 2 {
		t.Errorf("got %v", got)
	}
	if got := run(t, `var x = 5; x--`).ToNumber(); got != 5 {
		t.Errorf("postfix should yield the old value, got %v", got)
	}
}
