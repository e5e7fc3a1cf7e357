// Package errors formats the engine's failures. Lex and parse errors are
// wrapped in a CompilerError and rendered with source context, line/column
// information, and a caret pointing at the offending column; a thrown
// value is rendered as plain text by FromThrown, with no source context.
package errors

import (
	"fmt"
	"strings"

	"github.com/go-jsvm/jsvm/pkg/token"
)

// CompilerError wraps a single lex or parse failure with the source text
// and file name needed to render it with context.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// NewCompilerError creates a new compiler error.
func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format formats the error message with source context. If color is true,
// ANSI color codes are used for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if sourceLine := e.getSourceLine(e.Pos.Line); sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		col := e.Pos.Column - 1 // columns are 1-based
		if col < 0 {
			col = 0
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// getSourceLine extracts a specific 1-indexed line from the source code.
func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors formats one or more compiler errors for display.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Failed with %d error(s):\n\n", len(errs))
	for i, err := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// FromThrown formats a thrown value the way the test harness and REPL
// print it (spec.md §7 "User-visible behavior"): "Failed with <value>",
// optionally prefixed by a test description.
func FromThrown(description, thrown string) string {
	if description == "" {
		return fmt.Sprintf("Failed with %s", thrown)
	}
	return fmt.Sprintf("%s: Failed with %s", description, thrown)
}
