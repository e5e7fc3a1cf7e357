package cmd

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-jsvm/jsvm/internal/builtins"
	"github.com/go-jsvm/jsvm/internal/errors"
	"github.com/go-jsvm/jsvm/internal/interp"
	"github.com/go-jsvm/jsvm/internal/lexer"
	"github.com/go-jsvm/jsvm/internal/parser"
	"github.com/go-jsvm/jsvm/internal/value"
	"github.com/go-jsvm/jsvm/pkg/token"
)

// runSource reads path, lexes, parses and evaluates it against a fresh
// interpreter, printing the tail value to out (spec.md §6 "-s/positional
// path ... execute file, print result").
func runSource(path string, out io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	source := string(content)

	v, err := evalSource(source, path, out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("execution failed")
	}
	fmt.Fprintln(out, v.String())
	return nil
}

// evalSource lexes, parses and runs source, translating lex/parse/thrown
// failures into formatted *errors.CompilerError-shaped messages (spec.md
// §7). file is used only for error display; pass "" for unnamed sources
// (the REPL, inline test files already report their own path).
func evalSource(source, file string, out io.Writer) (value.Value, error) {
	toks, err := lexer.Lex(source)
	if err != nil {
		if le, ok := err.(*lexer.Error); ok {
			return value.Undefined, errors.NewCompilerError(le.Pos, le.Reason, source, file)
		}
		return value.Undefined, err
	}

	block, err := parser.Parse(toks)
	if err != nil {
		if pe, ok := err.(*parser.Error); ok {
			return value.Undefined, errors.NewCompilerError(pe.Pos, pe.Error(), source, file)
		}
		return value.Undefined, err
	}

	it := interp.New(out, builtins.Install)
	v, err := it.Run(block)
	if err != nil {
		if thrown, ok := err.(*value.ThrownError); ok {
			return value.Undefined, fmt.Errorf("%s", errors.FromThrown("", thrown.Value.String()))
		}
		return value.Undefined, err
	}
	return v, nil
}

// runInteractive is a REPL: read a line, lex+parse+evaluate it against a
// single long-lived interpreter (so var/function declarations persist
// across lines), print the value or error, repeat (spec.md §6
// "-i/--interactive").
func runInteractive(in io.Reader, out io.Writer) error {
	it := interp.New(out, builtins.Install)
	scanner := bufio.NewScanner(in)

	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := scanner.Text()

		toks, err := lexer.Lex(line)
		if err != nil {
			if le, ok := err.(*lexer.Error); ok {
				fmt.Fprintln(out, errors.NewCompilerError(le.Pos, le.Reason, line, "").Format(false))
			} else {
				fmt.Fprintln(out, err)
			}
			fmt.Fprint(out, "> ")
			continue
		}

		block, err := parser.Parse(toks)
		if err != nil {
			if pe, ok := err.(*parser.Error); ok {
				fmt.Fprintln(out, errors.NewCompilerError(pe.Pos, pe.Error(), line, "").Format(false))
			} else {
				fmt.Fprintln(out, err)
			}
			fmt.Fprint(out, "> ")
			continue
		}

		v, err := it.Run(block)
		if err != nil {
			if thrown, ok := err.(*value.ThrownError); ok {
				fmt.Fprintln(out, errors.FromThrown("", thrown.Value.String()))
			} else {
				fmt.Fprintln(out, err)
			}
		} else {
			fmt.Fprintln(out, v.String())
		}
		fmt.Fprint(out, "> ")
	}
	return nil
}

// testOutcome is one executed tests/*.js fixture's verdict.
type testOutcome struct {
	path        string
	description string
	passed      bool
	detail      string // thrown value on failure
}

// runTestsMode walks a tests/ (falling back to ../tests/) directory and
// reports pass/fail (spec.md §6 "-t/--tests"), per SPEC_FULL.md §10's
// supplemented detail drawn from the original's src/front/tests.rs.
func runTestsMode(out io.Writer) error {
	dir := "tests"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../tests"
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		fmt.Fprintln(out, "no tests directory found")
		return nil
	}

	outcomes, err := runTestsInDir(dir)
	if err != nil {
		return err
	}
	writeTestReport(out, outcomes)

	for _, o := range outcomes {
		if !o.passed {
			return fmt.Errorf("%d of %d tests failed", countFailed(outcomes), len(outcomes))
		}
	}
	return nil
}

// runTestsInDir is the reusable walk-and-run method: both runTestsMode
// and the CLI's own snapshot test (run_test.go) call this directly so
// the walking/extraction/execution logic is exercised identically from
// both call sites.
func runTestsInDir(dir string) ([]testOutcome, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".js") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	sort.Strings(paths)

	outcomes := make([]testOutcome, 0, len(paths))
	for _, p := range paths {
		outcomes = append(outcomes, runTestFile(p))
	}
	return outcomes, nil
}

// runTestFile lexes path to extract its @description attribute (from the
// first leading comment token, not any comment — SPEC_FULL.md §10), then
// evaluates it with an injected "assert(condition, description)" global,
// the shape the original test harness's find_attrs/assert function use.
func runTestFile(path string) testOutcome {
	content, err := os.ReadFile(path)
	if err != nil {
		return testOutcome{path: path, passed: false, detail: err.Error()}
	}
	source := string(content)

	toks, err := lexer.Lex(source)
	if err != nil {
		return testOutcome{path: path, passed: false, detail: err.Error()}
	}
	desc := findDescription(toks)

	block, err := parser.Parse(toks)
	if err != nil {
		return testOutcome{path: path, description: desc, passed: false, detail: err.Error()}
	}

	it := interp.New(io.Discard, builtins.Install, installAssert)
	v, err := it.Run(block)
	if err != nil {
		if thrown, ok := err.(*value.ThrownError); ok {
			return testOutcome{path: path, description: desc, passed: false, detail: thrown.Value.String()}
		}
		return testOutcome{path: path, description: desc, passed: false, detail: err.Error()}
	}
	_ = v
	return testOutcome{path: path, description: desc, passed: true}
}

// installAssert adds the test harness's "assert(condition, description)"
// global: truthy condition returns description, falsy condition throws
// it. Grounded on original_source/src/front/tests.rs's `assert` closure.
func installAssert(global *value.Object, _ io.Writer) {
	fn := value.NativeFn(func(args []value.Value, _, _, _ value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.Undefined, value.Throw(value.String("'assert' function expects assertion and description arguments"))
		}
		if args[0].Truthy() {
			return args[1], nil
		}
		return value.Undefined, value.Throw(args[1])
	})
	global.SetValue("assert", value.NewNativeFunction("assert", fn))
}

// findDescription extracts the value of "@description" from the first
// leading comment token whose text starts with " @" (per
// SPEC_FULL.md §10: "the first leading comment token, not any comment"),
// mirroring original_source/src/front/tests.rs's find_attrs.
func findDescription(toks []token.Token) string {
	for _, tk := range toks {
		if tk.Kind != token.COMMENT {
			break // only comments before the first code token are leading
		}
		text := tk.Literal
		if !strings.HasPrefix(text, " @") {
			continue
		}
		rest := text[1:] // drop the leading space: "@key value..."
		sp := strings.IndexByte(rest, ' ')
		if sp < 2 {
			continue
		}
		key := rest[1:sp]
		if key != "description" {
			continue
		}
		return strings.TrimSpace(rest[sp+1:])
	}
	return ""
}

func countFailed(outcomes []testOutcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.passed {
			n++
		}
	}
	return n
}

// writeTestReport prints one line per fixture ("<path>: <description>:
// All tests passed successfully" / "...: Failed with <value>") followed
// by a pass-count summary line, per SPEC_FULL.md §10.
func writeTestReport(out io.Writer, outcomes []testOutcome) {
	passed := 0
	for _, o := range outcomes {
		if o.passed {
			passed++
			fmt.Fprintf(out, "%s: %s: All tests passed successfully\n", o.path, o.description)
		} else {
			fmt.Fprintf(out, "%s: %s: Failed with %s\n", o.path, o.description, o.detail)
		}
	}
	fmt.Fprintf(out, "%d of %d tests passed\n", passed, len(outcomes))
}
