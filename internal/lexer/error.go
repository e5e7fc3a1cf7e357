package lexer

import (
	"fmt"

	"github.com/go-jsvm/jsvm/pkg/token"
)

// Error is a malformed-input failure raised while scanning. It is fatal to
// the current script: the first malformed token aborts the whole lex and
// any tokens already produced are discarded (spec.md §4.1 "Failure
// policy").
type Error struct {
	Pos    token.Position
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Reason)
}
