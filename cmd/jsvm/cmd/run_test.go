package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/go-jsvm/jsvm/internal/lexer"
	"github.com/go-jsvm/jsvm/pkg/token"
)

// TestRunTestsInDir snapshot-tests the -t/--tests report text produced
// for a fixed testdata/tests fixture tree (one passing top-level
// fixture, one failing one, and one passing fixture nested a directory
// deep, to exercise the recursive walk), the same shape go-snaps is
// wired into the teacher's internal/interp/fixture_test.go for.
func TestRunTestsInDir(t *testing.T) {
	outcomes, err := runTestsInDir("testdata/tests")
	if err != nil {
		t.Fatalf("runTestsInDir: %v", err)
	}

	var buf bytes.Buffer
	writeTestReport(&buf, outcomes)

	snaps.MatchSnapshot(t, buf.String())
}

func TestFindDescription(t *testing.T) {
	toks := mustLex(t, "// @description hello world\nassert(true, 'ok');")
	if got := findDescription(toks); got != "hello world" {
		t.Errorf("findDescription = %q, want %q", got, "hello world")
	}
}

func TestFindDescriptionIgnoresNonLeadingAttrComment(t *testing.T) {
	toks := mustLex(t, "// just a remark\nassert(true, 'ok');")
	if got := findDescription(toks); got != "" {
		t.Errorf("findDescription = %q, want empty", got)
	}

	toks = mustLex(t, "assert(true, 'ok');\n// @description late remark")
	if got := findDescription(toks); got != "" {
		t.Errorf("findDescription = %q, want empty for an attr comment after code", got)
	}
}

func TestInstallAssertPassAndFail(t *testing.T) {
	outcome := runTestFile("testdata/tests/arithmetic.js")
	if !outcome.passed {
		t.Errorf("expected arithmetic.js to pass, got detail %q", outcome.detail)
	}

	outcome = runTestFile("testdata/tests/failing.js")
	if outcome.passed {
		t.Errorf("expected failing.js to fail")
	}
	if !strings.Contains(outcome.detail, "one does not equal two") {
		t.Errorf("detail = %q, want it to contain the thrown description", outcome.detail)
	}
}

func mustLex(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	return toks
}
