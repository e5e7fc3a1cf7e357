package jsvm_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"testing"

	"github.com/go-jsvm/jsvm/internal/value"
	"github.com/go-jsvm/jsvm/pkg/jsvm"
)

// Example shows basic usage of the engine.
func Example() {
	engine, err := jsvm.New()
	if err != nil {
		log.Fatal(err)
	}

	result, err := engine.Eval(`console.log('Hello, world!')`)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(result.Output)
	// Output: Hello, world!
}

// Example_compile demonstrates compiling once and running multiple times.
func Example_compile() {
	engine, err := jsvm.New()
	if err != nil {
		log.Fatal(err)
	}

	program, err := engine.Compile(`console.log('tick')`)
	if err != nil {
		log.Fatal(err)
	}

	result1, _ := engine.Run(program)
	fmt.Print(result1.Output)

	result2, _ := engine.Run(program)
	fmt.Print(result2.Output)

	// Output:
	// tick
	// tick
}

func TestEvalTailValue(t *testing.T) {
	engine, err := jsvm.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := engine.Eval(`1 + 2 * 3`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !result.Success || result.Value.ToNumber() != 7 {
		t.Fatalf("got %#v", result)
	}
}

func TestEvalWithCapturedOutput(t *testing.T) {
	var buf bytes.Buffer
	engine, err := jsvm.New(jsvm.WithOutput(&buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := engine.Eval(`console.log('captured')`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got := buf.String(); got != "captured\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEvalThrowIsAnError(t *testing.T) {
	engine, err := jsvm.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = engine.Eval(`throw 'boom'`)
	if err == nil {
		t.Fatalf("expected an error")
	}
}

func TestCompileSyntaxError(t *testing.T) {
	engine, err := jsvm.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := engine.Compile(`var = ;`); err == nil {
		t.Fatalf("expected a compile error")
	}
}

func TestRegisterSimpleFunction(t *testing.T) {
	engine, err := jsvm.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := engine.RegisterFunction("addNumbers", func(a, b int64) int64 {
		return a + b
	}); err != nil {
		t.Fatalf("RegisterFunction: %v", err)
	}

	result, err := engine.Eval(`addNumbers(40, 2)`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if result.Value.ToNumber() != 42 {
		t.Fatalf("got %v", result.Value.ToNumber())
	}
}

func TestRegisterFunctionWithError(t *testing.T) {
	engine, err := jsvm.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := engine.RegisterFunction("divide", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, errors.New("division by zero")
		}
		return a / b, nil
	}); err != nil {
		t.Fatalf("RegisterFunction: %v", err)
	}

	if _, err := engine.Eval(`divide(1, 0)`); err == nil {
		t.Fatalf("expected a thrown error")
	}
}

func TestRegisterFunctionWithSliceArgsAndReturn(t *testing.T) {
	engine, err := jsvm.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := engine.RegisterFunction("sumArray", func(numbers []int64) int64 {
		var sum int64
		for _, n := range numbers {
			sum += n
		}
		return sum
	}); err != nil {
		t.Fatalf("RegisterFunction: %v", err)
	}

	result, err := engine.Eval(`sumArray([1, 2, 3, 4])`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if result.Value.ToNumber() != 10 {
		t.Fatalf("got %v", result.Value.ToNumber())
	}
}

func TestExecuteWithEnv(t *testing.T) {
	env := value.NewObject()
	env.SetValue("greeting", value.String("hi"))
	v, err := jsvm.ExecuteWithEnv(`greeting + ' there'`, env)
	if err != nil {
		t.Fatalf("ExecuteWithEnv: %v", err)
	}
	if v.String() != "hi there" {
		t.Fatalf("got %q", v.String())
	}
}
