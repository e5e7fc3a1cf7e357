// Package lexer converts JavaScript source text into a token stream
// (spec.md §4.1, component C1).
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-jsvm/jsvm/pkg/token"
)

const (
	lineSeparator      rune = 0x2028
	paragraphSeparator rune = 0x2029
)

// Lexer is a rune-based scanner over JS source text. It keeps a single
// rune of lookahead (ch); multi-rune punctuators are matched by
// snapshotting and restoring the whole scanner state (see matchLiteral),
// which plays the role of the "one-char pushback buffer" spec.md §4.1
// calls for without a separate buffer field. Column positions are rune
// counts, not byte offsets, following the teacher's lexer.
type Lexer struct {
	input        string
	position     int // byte offset of ch
	readPosition int // byte offset of the next rune to read
	line         int
	column       int
	ch           rune
}

// New creates a Lexer over input.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.position = l.readPosition
	l.readPosition += size
	l.ch = r

	switch r {
	case '\n', lineSeparator, paragraphSeparator:
		l.line++
		l.column = 0
	case '\r':
		l.column = 0
	default:
		l.column++
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', lineSeparator, paragraphSeparator:
		return true
	}
	return false
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// Lex tokenizes the whole input, returning every token up to and including
// EOF, or the first Error encountered. Partial output is discarded on
// failure (spec.md §4.1).
func Lex(input string) ([]token.Token, error) {
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) next() (token.Token, error) {
	l.skipWhitespace()
	start := l.pos()

	if l.ch == 0 {
		return token.Token{Kind: token.EOF, Pos: token.Span{Start: start, End: start}}, nil
	}

	switch {
	case l.ch == '"' || l.ch == '\'':
		return l.lexString(start)
	case isDigit(l.ch):
		return l.lexNumber(start)
	case isIdentStart(l.ch):
		return l.lexIdent(start)
	case l.ch == '/' && (l.peekChar() == '/' || l.peekChar() == '*'):
		return l.lexComment(start)
	default:
		return l.lexPunct(start)
	}
}

func (l *Lexer) lexIdent(start token.Position) (token.Token, error) {
	var sb strings.Builder
	for isIdentPart(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	lit := sb.String()
	end := l.pos()
	span := token.Span{Start: start, End: end}

	switch lit {
	case "true", "false":
		return token.Token{Kind: token.BOOLEAN, Literal: lit, Pos: span}, nil
	case "null":
		return token.Token{Kind: token.NULL, Literal: lit, Pos: span}, nil
	}
	if token.IsKeyword(lit) {
		return token.Token{Kind: token.KEYWORD, Literal: lit, Pos: span}, nil
	}
	return token.Token{Kind: token.IDENT, Literal: lit, Pos: span}, nil
}

func (l *Lexer) lexNumber(start token.Position) (token.Token, error) {
	var sb strings.Builder

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		sb.WriteRune(l.ch)
		l.readChar()
		sb.WriteRune(l.ch)
		l.readChar()
		digitsStart := sb.Len()
		for isHexDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
		if sb.Len() == digitsStart {
			return token.Token{}, &Error{Pos: start, Reason: "malformed hex literal: no digits"}
		}
		n, err := strconv.ParseInt(sb.String()[2:], 16, 64)
		if err != nil {
			return token.Token{}, &Error{Pos: start, Reason: "malformed hex literal: " + err.Error()}
		}
		return token.Token{Kind: token.NUMBER, Literal: sb.String(), Num: float64(n), Pos: token.Span{Start: start, End: l.pos()}}, nil
	}

	if l.ch == '0' && isDigit(l.peekChar()) {
		return l.lexOctalOrDecimal(start)
	}

	for isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		sb.WriteRune(l.ch)
		l.readChar()
		for isDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
	n, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return token.Token{}, &Error{Pos: start, Reason: "malformed number literal: " + err.Error()}
	}
	return token.Token{Kind: token.NUMBER, Literal: sb.String(), Num: n, Pos: token.Span{Start: start, End: l.pos()}}, nil
}

// lexOctalOrDecimal implements spec.md §4.1: a leading 0 followed by
// [0-7]+ is octal, but is promoted to decimal if any digit is 8, 9, or a
// '.' follows.
func (l *Lexer) lexOctalOrDecimal(start token.Position) (token.Token, error) {
	var sb strings.Builder
	sb.WriteRune(l.ch) // the leading '0'
	l.readChar()

	octal := true
	for isDigit(l.ch) {
		if l.ch == '8' || l.ch == '9' {
			octal = false
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		octal = false
		sb.WriteRune(l.ch)
		l.readChar()
		for isDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}

	lit := sb.String()
	if octal {
		n, err := strconv.ParseInt(lit[1:], 8, 64)
		if err != nil {
			return token.Token{}, &Error{Pos: start, Reason: "malformed octal literal: " + err.Error()}
		}
		return token.Token{Kind: token.NUMBER, Literal: lit, Num: float64(n), Pos: token.Span{Start: start, End: l.pos()}}, nil
	}
	n, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return token.Token{}, &Error{Pos: start, Reason: "malformed number literal: " + err.Error()}
	}
	return token.Token{Kind: token.NUMBER, Literal: lit, Num: n, Pos: token.Span{Start: start, End: l.pos()}}, nil
}

func (l *Lexer) lexString(start token.Position) (token.Token, error) {
	delim := l.ch
	l.readChar()

	var sb strings.Builder
	for {
		if l.ch == 0 {
			return token.Token{}, &Error{Pos: start, Reason: "unterminated string literal"}
		}
		if l.ch == delim {
			l.readChar()
			break
		}
		if l.ch == '\\' {
			if err := l.lexEscape(&sb); err != nil {
				return token.Token{}, err
			}
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return token.Token{Kind: token.STRING, Literal: sb.String(), Pos: token.Span{Start: start, End: l.pos()}}, nil
}

func (l *Lexer) lexEscape(sb *strings.Builder) error {
	escPos := l.pos()
	l.readChar() // consume '\'
	switch l.ch {
	case 'n':
		sb.WriteByte('\n')
		l.readChar()
	case 'r':
		sb.WriteByte('\r')
		l.readChar()
	case 't':
		sb.WriteByte('\t')
		l.readChar()
	case 'b':
		sb.WriteByte('\b')
		l.readChar()
	case 'f':
		sb.WriteByte('\f')
		l.readChar()
	case '0':
		sb.WriteByte(0)
		l.readChar()
	case '\'':
		sb.WriteByte('\'')
		l.readChar()
	case '"':
		sb.WriteByte('"')
		l.readChar()
	case '\\':
		sb.WriteByte('\\')
		l.readChar()
	case '\n', lineSeparator, paragraphSeparator:
		l.readChar() // line continuation: produces nothing
	case '\r':
		l.readChar()
		if l.ch == '\n' {
			l.readChar()
		}
	case 'x':
		l.readChar()
		digits := make([]rune, 0, 2)
		for i := 0; i < 2; i++ {
			if !isHexDigit(l.ch) {
				return &Error{Pos: escPos, Reason: "malformed \\x escape"}
			}
			digits = append(digits, l.ch)
			l.readChar()
		}
		n, err := strconv.ParseInt(string(digits), 16, 32)
		if err != nil {
			return &Error{Pos: escPos, Reason: "malformed \\x escape"}
		}
		sb.WriteRune(rune(n))
	case 'u':
		l.readChar()
		digits := make([]rune, 0, 4)
		for i := 0; i < 4; i++ {
			if !isHexDigit(l.ch) {
				return &Error{Pos: escPos, Reason: "malformed \\u escape"}
			}
			digits = append(digits, l.ch)
			l.readChar()
		}
		n, err := strconv.ParseInt(string(digits), 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return &Error{Pos: escPos, Reason: "malformed \\u escape: invalid unicode scalar"}
		}
		sb.WriteRune(rune(n))
	default:
		return &Error{Pos: escPos, Reason: "unknown escape sequence"}
	}
	return nil
}

func (l *Lexer) lexComment(start token.Position) (token.Token, error) {
	var sb strings.Builder
	if l.peekChar() == '/' {
		l.readChar() // consume first '/'
		l.readChar() // consume second '/'
		for l.ch != '\n' && l.ch != 0 && l.ch != lineSeparator && l.ch != paragraphSeparator {
			sb.WriteRune(l.ch)
			l.readChar()
		}
		return token.Token{Kind: token.COMMENT, Literal: sb.String(), Pos: token.Span{Start: start, End: l.pos()}}, nil
	}

	l.readChar() // consume '/'
	l.readChar() // consume '*'
	for {
		if l.ch == 0 {
			return token.Token{}, &Error{Pos: start, Reason: "unterminated block comment"}
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			break
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return token.Token{Kind: token.COMMENT, Literal: sb.String(), Pos: token.Span{Start: start, End: l.pos()}}, nil
}

func (l *Lexer) lexPunct(start token.Position) (token.Token, error) {
	for _, p := range token.Punctuators {
		if l.matchLiteral(p) {
			return token.Token{Kind: token.PUNCT, Literal: p, Pos: token.Span{Start: start, End: l.pos()}}, nil
		}
	}
	return token.Token{}, &Error{Pos: start, Reason: "unexpected character " + strconv.QuoteRune(l.ch)}
}

// matchLiteral consumes len(lit) runes from the current position if they
// equal lit exactly, advancing the lexer and reporting success.
func (l *Lexer) matchLiteral(lit string) bool {
	runes := []rune(lit)
	save := *l
	for _, r := range runes {
		if l.ch != r {
			*l = save
			return false
		}
		l.readChar()
	}
	return true
}
