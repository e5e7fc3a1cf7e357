// Package parser turns a token stream into an AST using Pratt parsing
// with a prefix/infix split and a precedence-fixup rotation pass
// instead of a classic binding-power table (spec.md §4.3).
package parser

import (
	"strconv"

	"github.com/go-jsvm/jsvm/internal/ast"
	"github.com/go-jsvm/jsvm/pkg/token"
)

type parser struct {
	tokens []token.Token
	pos    int
}

// Parse consumes every token and returns the program as a single Block,
// or the first Error encountered (spec.md §4.3 contract). Comments are
// trivia: the grammar has no production for them, so they're dropped
// here rather than threaded through every parse function.
func Parse(tokens []token.Token) (*ast.Block, error) {
	p := &parser{tokens: stripComments(tokens)}
	start := p.cur().Pos.Start
	var exprs []ast.Expr
	for !p.atEOF() {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		for p.isPunct(";") {
			p.advance()
		}
	}
	end := p.cur().Pos.Start
	return &ast.Block{Base: ast.Base{Sp: token.Span{Start: start, End: end}}, Exprs: exprs}, nil
}

func stripComments(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != token.COMMENT {
			out = append(out, t)
		}
	}
	return out
}

func (p *parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *parser) atEOF() bool { return p.cur().Kind == token.EOF }

func (p *parser) isPunct(lit string) bool {
	t := p.cur()
	return t.Kind == token.PUNCT && t.Literal == lit
}

func (p *parser) expectPunct(lit, context string) error {
	if !p.isPunct(lit) {
		return p.expectedErr([]string{lit}, context)
	}
	p.advance()
	return nil
}

func (p *parser) expectedErr(expected []string, context string) error {
	return &Error{Kind: Expected, Pos: p.cur().Pos.Start, Expected: expected, Actual: describeToken(p.cur()), Context: context}
}

func (p *parser) exprErr(context string) error {
	return &Error{Kind: ExpectedExpr, Pos: p.cur().Pos.Start, Actual: describeToken(p.cur()), Context: context}
}

func describeToken(t token.Token) string {
	if t.Kind == token.EOF {
		return "end of input"
	}
	return t.Kind.String() + "(" + strconv.Quote(t.Literal) + ")"
}

// parseExpr is the "parse" production: one prefix production, then
// zero or more infix/postfix extensions via parseInfix (spec.md §4.3
// algorithm step 1).
func (p *parser) parseExpr() (ast.Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		next, handled, err := p.parseInfix(left)
		if err != nil {
			return nil, err
		}
		if !handled {
			return left, nil
		}
		left = next
	}
}

func (p *parser) parsePrefix() (ast.Expr, error) {
	t := p.cur()
	switch t.Kind {
	case token.EOF:
		return nil, &Error{Kind: AbruptEnd, Pos: t.Pos.Start}
	case token.NUMBER:
		p.advance()
		return &ast.Const{Kind: ast.ConstNumber, Number: t.Num}, nil
	case token.STRING:
		p.advance()
		return &ast.Const{Kind: ast.ConstString, Str: t.Literal}, nil
	case token.BOOLEAN:
		p.advance()
		return &ast.Const{Kind: ast.ConstBool, Bool: t.Literal == "true"}, nil
	case token.NULL:
		p.advance()
		return &ast.Const{Kind: ast.ConstNull}, nil
	case token.IDENT:
		p.advance()
		return &ast.Local{Name: t.Literal}, nil
	case token.KEYWORD:
		if t.Literal == "this" {
			p.advance()
			return &ast.Local{Name: "this"}, nil
		}
		return p.parseKeyword(t)
	case token.PUNCT:
		return p.parsePunctPrefix(t)
	default:
		return nil, p.exprErr("expression")
	}
}

func (p *parser) parsePunctPrefix(t token.Token) (ast.Expr, error) {
	switch t.Literal {
	case "(":
		return p.parseParenOrArrow()
	case "[":
		return p.parseArrayLiteral()
	case "{":
		return p.parseObjectOrBlock()
	case "-", "+", "!":
		p.advance()
		operand, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: t.Literal, Operand: operand, Position: ast.Prefix}, nil
	case "++", "--":
		p.advance()
		operand, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: t.Literal, Operand: operand, Position: ast.Prefix}, nil
	default:
		return nil, p.exprErr("expression")
	}
}

func (p *parser) parseKeyword(t token.Token) (ast.Expr, error) {
	if !token.Implemented[t.Literal] {
		return nil, &Error{Kind: UnexpectedKeyword, Pos: t.Pos.Start, Keyword: t.Literal}
	}
	switch t.Literal {
	case "throw":
		p.advance()
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Throw{Value: v}, nil
	case "var":
		return p.parseVarDecl()
	case "return":
		p.advance()
		if p.atEOF() || p.isPunct(";") || p.isPunct("}") {
			return &ast.Return{}, nil
		}
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Return{Value: v}, nil
	case "new":
		return p.parseNew()
	case "typeof":
		p.advance()
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.TypeOf{Value: v}, nil
	case "if":
		return p.parseIf()
	case "while":
		return p.parseWhile()
	case "switch":
		return p.parseSwitch()
	case "function":
		return p.parseFunction()
	default:
		return nil, &Error{Kind: UnexpectedKeyword, Pos: t.Pos.Start, Keyword: t.Literal}
	}
}

func (p *parser) parseVarDecl() (ast.Expr, error) {
	p.advance() // 'var'
	var entries []ast.VarDeclEntry
	for {
		name := p.cur()
		if name.Kind != token.IDENT {
			return nil, p.expectedErr([]string{"identifier"}, "var declaration")
		}
		p.advance()
		entry := ast.VarDeclEntry{Name: name.Literal}
		if p.isPunct("=") {
			p.advance()
			init, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			entry.Init = init
		}
		entries = append(entries, entry)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return &ast.VarDecl{Entries: entries}, nil
}

// parseNew binds tighter than member/call postfix access: it parses
// only the constructor's callee and argument list into a Construct,
// leaving any trailing `.field`/`[key]`/`(...)` for the enclosing
// parseExpr loop to apply to the Construct result (spec.md §4.3 "new
// f(x) must parse as a call"). This matters for e.g. `new Text('Hi').phrase`,
// where `.phrase` must read off the constructed object, not get folded
// into the constructor expression before Construct even exists.
func (p *parser) parseNew() (ast.Expr, error) {
	p.advance() // 'new'
	callee, err := p.parseNewCallee()
	if err != nil {
		return nil, err
	}
	if !p.isPunct("(") {
		return nil, &Error{Kind: ExpectedExpr, Pos: p.cur().Pos.Start, Actual: describeToken(p.cur()), Context: "constructor"}
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return &ast.Construct{Callee: callee, Args: args}, nil
}

// parseNewCallee parses the constructor's callee expression, allowing
// only member access (`.field`), never a call — `new` must reach the
// first `(...)` before any nested call can bind.
func (p *parser) parseNewCallee() (ast.Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for p.isPunct(".") {
		p.advance()
		name := p.cur()
		if name.Kind != token.IDENT {
			return nil, p.expectedErr([]string{"identifier"}, "field access")
		}
		p.advance()
		left = &ast.GetConstField{Object: left, Name: name.Literal}
	}
	return left, nil
}

func (p *parser) parseIf() (ast.Expr, error) {
	p.advance() // 'if'
	if err := p.expectPunct("(", "if expression"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")", "if expression"); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	ifExpr := &ast.If{Cond: cond, Then: then}
	if p.isPunct(";") && p.peek().Kind == token.KEYWORD && p.peek().Literal == "else" {
		p.advance() // ';' ending the then-branch
	}
	if p.cur().Kind == token.KEYWORD && p.cur().Literal == "else" {
		p.advance()
		elseExpr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		ifExpr.Else = elseExpr
	}
	return ifExpr, nil
}

func (p *parser) parseWhile() (ast.Expr, error) {
	p.advance() // 'while'
	if err := p.expectPunct("(", "while loop"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")", "while loop"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body}, nil
}

func (p *parser) parseSwitch() (ast.Expr, error) {
	p.advance() // 'switch'
	if err := p.expectPunct("(", "switch"); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")", "switch"); err != nil {
		return nil, err
	}
	if err := p.expectPunct("{", "switch"); err != nil {
		return nil, err
	}
	sw := &ast.Switch{Value: val}
	for !p.isPunct("}") {
		if p.atEOF() {
			return nil, &Error{Kind: AbruptEnd, Pos: p.cur().Pos.Start}
		}
		if p.cur().Kind == token.KEYWORD && p.cur().Literal == "case" {
			p.advance()
			caseExpr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(":", "switch case"); err != nil {
				return nil, err
			}
			body, err := p.parseCaseBody()
			if err != nil {
				return nil, err
			}
			sw.Cases = append(sw.Cases, ast.SwitchCase{Expr: caseExpr, Body: body})
			continue
		}
		if p.cur().Kind == token.KEYWORD && p.cur().Literal == "default" {
			p.advance()
			if err := p.expectPunct(":", "switch default"); err != nil {
				return nil, err
			}
			body, err := p.parseCaseBody()
			if err != nil {
				return nil, err
			}
			sw.Default = body
			continue
		}
		return nil, p.expectedErr([]string{"case", "default"}, "switch")
	}
	p.advance() // '}'
	return sw, nil
}

// parseCaseBody gathers the expressions belonging to one switch arm
// into a Block, stopping at the next case/default/closing brace (no
// fall-through is specified, spec.md §4.4/§9).
func (p *parser) parseCaseBody() (ast.Expr, error) {
	var exprs []ast.Expr
	for {
		if p.isPunct("}") {
			break
		}
		if p.cur().Kind == token.KEYWORD && (p.cur().Literal == "case" || p.cur().Literal == "default") {
			break
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		for p.isPunct(";") {
			p.advance()
		}
	}
	return &ast.Block{Exprs: exprs}, nil
}

func (p *parser) parseFunction() (ast.Expr, error) {
	p.advance() // 'function'
	name := ""
	if p.cur().Kind == token.IDENT {
		name = p.cur().Literal
		p.advance()
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{Name: name, Params: params, Body: body}, nil
}

func (p *parser) parseParamList() ([]string, error) {
	if err := p.expectPunct("(", "function parameters"); err != nil {
		return nil, err
	}
	var params []string
	if p.isPunct(")") {
		p.advance()
		return params, nil
	}
	for {
		if p.cur().Kind != token.IDENT {
			return nil, p.expectedErr([]string{"identifier"}, "function parameters")
		}
		params = append(params, p.cur().Literal)
		p.advance()
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(")", "function parameters"); err != nil {
		return nil, err
	}
	return params, nil
}

// parseParenOrArrow handles `(`: a parenthesized expression, or — if
// followed by `,` or the bare `() =>` form — an arrow function
// parameter list (spec.md §4.3 step 2).
func (p *parser) parseParenOrArrow() (ast.Expr, error) {
	p.advance() // '('
	if p.isPunct(")") && p.peek().Kind == token.PUNCT && p.peek().Literal == "=>" {
		p.advance() // ')'
		p.advance() // '=>'
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ArrowFunctionDecl{Params: nil, Body: body}, nil
	}
	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.isPunct(")") {
		p.advance()
		if _, ok := inner.(*ast.BinaryOp); ok {
			// A one-entry Block keeps parseBinOp from rotating into the group.
			return &ast.Block{Exprs: []ast.Expr{inner}}, nil
		}
		return inner, nil
	}
	if p.isPunct(",") {
		params, err := p.parseArrowParamTail(inner)
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct("=>", "arrow function"); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ArrowFunctionDecl{Params: params, Body: body}, nil
	}
	return nil, p.expectedErr([]string{")"}, "brackets")
}

func (p *parser) parseArrowParamTail(first ast.Expr) ([]string, error) {
	firstName := ""
	if loc, ok := first.(*ast.Local); ok {
		firstName = loc.Name
	}
	params := []string{firstName}
	expectIdent := true
	for {
		p.advance() // consumes the ',' or continues after an ident
		if expectIdent {
			if p.cur().Kind != token.IDENT {
				return nil, p.expectedErr([]string{"identifier"}, "arrow function")
			}
			params = append(params, p.cur().Literal)
			expectIdent = false
			continue
		}
		if p.isPunct(",") {
			expectIdent = true
			continue
		}
		if p.isPunct(")") {
			p.advance()
			return params, nil
		}
		return nil, p.expectedErr([]string{",", ")"}, "arrow function")
	}
}

// parseArrayLiteral parses `[elems]`; trailing/interior commas with no
// expression between them insert a Const(null) hole (spec.md §4.3 edge
// case).
func (p *parser) parseArrayLiteral() (ast.Expr, error) {
	p.advance() // '['
	var elems []ast.Expr
	if p.isPunct("]") {
		p.advance()
		return &ast.ArrayDecl{}, nil
	}
	expectCommaOrEnd := false
	for {
		if p.isPunct("]") {
			p.advance()
			break
		}
		if p.isPunct(",") {
			if expectCommaOrEnd {
				p.advance()
				expectCommaOrEnd = false
				continue
			}
			elems = append(elems, &ast.Const{Kind: ast.ConstNull})
			p.advance()
			expectCommaOrEnd = false
			continue
		}
		if expectCommaOrEnd {
			return nil, p.expectedErr([]string{",", "]"}, "array declaration")
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		expectCommaOrEnd = true
	}
	return &ast.ArrayDecl{Elems: elems}, nil
}

// parseObjectOrBlock disambiguates `{}` into an empty object, a
// key-value object literal (lookahead finds `<ident-or-string> :`), or
// a block expression (spec.md §4.3 step 2).
func (p *parser) parseObjectOrBlock() (ast.Expr, error) {
	p.advance() // '{'
	if p.isPunct("}") {
		p.advance()
		return &ast.ObjectDecl{}, nil
	}
	keyish := p.cur().Kind == token.IDENT || p.cur().Kind == token.STRING
	if keyish && p.peek().Kind == token.PUNCT && p.peek().Literal == ":" {
		return p.parseObjectBody()
	}
	var exprs []ast.Expr
	for !p.isPunct("}") {
		if p.atEOF() {
			return nil, &Error{Kind: AbruptEnd, Pos: p.cur().Pos.Start}
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		for p.isPunct(";") {
			p.advance()
		}
	}
	p.advance() // '}'
	return &ast.Block{Exprs: exprs}, nil
}

func (p *parser) parseObjectBody() (ast.Expr, error) {
	obj := &ast.ObjectDecl{}
	for {
		nameTok := p.cur()
		if nameTok.Kind != token.IDENT && nameTok.Kind != token.STRING {
			return nil, p.expectedErr([]string{"identifier", "string"}, "object declaration")
		}
		p.advance()
		if err := p.expectPunct(":", "object declaration"); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		obj.Names = append(obj.Names, nameTok.Literal)
		obj.Values = append(obj.Values, val)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct("}", "object declaration"); err != nil {
		return nil, err
	}
	return obj, nil
}

// parseInfix is the "parse_next" production: it extends left by at
// most one infix/postfix construct per call, reporting whether it
// matched anything (spec.md §4.3 step 4).
func (p *parser) parseInfix(left ast.Expr) (ast.Expr, bool, error) {
	t := p.cur()
	if t.Kind != token.PUNCT {
		return left, false, nil
	}
	switch t.Literal {
	case ".":
		p.advance()
		name := p.cur()
		if name.Kind != token.IDENT {
			return nil, false, p.expectedErr([]string{"identifier"}, "field access")
		}
		p.advance()
		return &ast.GetConstField{Object: left, Name: name.Literal}, true, nil
	case "(":
		args, err := p.parseArgs()
		if err != nil {
			return nil, false, err
		}
		return &ast.Call{Callee: left, Args: args}, true, nil
	case "?":
		p.advance()
		then, err := p.parseExpr()
		if err != nil {
			return nil, false, err
		}
		if err := p.expectPunct(":", "if expression"); err != nil {
			return nil, false, err
		}
		els, err := p.parseExpr()
		if err != nil {
			return nil, false, err
		}
		return &ast.If{Cond: left, Then: then, Else: els}, true, nil
	case "[":
		p.advance()
		key, err := p.parseExpr()
		if err != nil {
			return nil, false, err
		}
		if err := p.expectPunct("]", "array declaration"); err != nil {
			return nil, false, err
		}
		return &ast.GetField{Object: left, Key: key}, true, nil
	case "=":
		p.advance()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, false, err
		}
		return &ast.Assign{Target: left, Value: rhs}, true, nil
	case "=>":
		loc, ok := left.(*ast.Local)
		if !ok {
			return nil, false, p.expectedErr([]string{"identifier"}, "arrow function")
		}
		p.advance()
		body, err := p.parseExpr()
		if err != nil {
			return nil, false, err
		}
		return &ast.ArrowFunctionDecl{Params: []string{loc.Name}, Body: body}, true, nil
	case "++", "--":
		p.advance()
		return &ast.UnaryOp{Op: t.Literal, Operand: left, Position: ast.Postfix}, true, nil
	default:
		if ast.IsBinaryOp(t.Literal) {
			result, err := p.parseBinOp(t.Literal, left)
			if err != nil {
				return nil, false, err
			}
			return result, true, nil
		}
		return left, false, nil
	}
}

func (p *parser) parseArgs() ([]ast.Expr, error) {
	p.advance() // '('
	var args []ast.Expr
	if p.isPunct(")") {
		p.advance()
		return args, nil
	}
	for {
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(")", "function call arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

// parseBinOp implements spec.md §4.3 step 5's precedence fix-up: the
// right side is parsed as a full recursive expression; if it is itself
// a binary op that should bind looser than (or equally, given
// left-associativity) op, the tree is rotated so op becomes the inner
// node, preserving left-to-right evaluation order (spec.md §5).
func (p *parser) parseBinOp(op string, left ast.Expr) (ast.Expr, error) {
	p.advance() // operator token
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	// The rotation follows the left spine of right, so a chain such as
	// a - b + c - d groups as ((a - b) + c) - d.
	var rotate func(left, right ast.Expr) ast.Expr
	rotate = func(left, right ast.Expr) ast.Expr {
		inner, ok := right.(*ast.BinaryOp)
		if !ok || ast.Precedence(op) > ast.Precedence(inner.Op) {
			return &ast.BinaryOp{Op: op, Left: left, Right: right}
		}
		return &ast.BinaryOp{Op: inner.Op, Left: rotate(left, inner.Left), Right: inner.Right}
	}
	return rotate(left, right), nil
}
