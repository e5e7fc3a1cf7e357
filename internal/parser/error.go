package parser

import (
	"fmt"
	"strings"

	"github.com/go-jsvm/jsvm/pkg/token"
)

// ErrorKind distinguishes the four parse-failure shapes spec.md §4.3
// names.
type ErrorKind int

const (
	Expected ErrorKind = iota
	ExpectedExpr
	UnexpectedKeyword
	AbruptEnd
)

// Error is a parse failure. Fatal: the parser does not attempt
// recovery or partial output.
type Error struct {
	Kind     ErrorKind
	Pos      token.Position
	Expected []string // valid for Kind == Expected
	Actual   string   // token literal/kind actually found
	Context  string   // production name, e.g. "arrow function"
	Keyword  string   // valid for Kind == UnexpectedKeyword
}

func (e *Error) Error() string {
	switch e.Kind {
	case Expected:
		return fmt.Sprintf("%s: expected %s in %s, got %s", e.Pos, strings.Join(e.Expected, " or "), e.Context, e.Actual)
	case ExpectedExpr:
		return fmt.Sprintf("%s: expected expression in %s, got %s", e.Pos, e.Context, e.Actual)
	case UnexpectedKeyword:
		return fmt.Sprintf("%s: unexpected keyword %q", e.Pos, e.Keyword)
	case AbruptEnd:
		return fmt.Sprintf("%s: unexpected end of input", e.Pos)
	default:
		return fmt.Sprintf("%s: parse error", e.Pos)
	}
}
