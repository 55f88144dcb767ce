/*
File: loxscript/parser/parser.go

Package parser implements a recursive-descent parser with panic-mode
recovery over the grammar in spec.md §6. A syntax error inside a
statement panics with a *parseError; the top-level declaration loop
recovers, calls synchronize, and resumes at the next statement boundary,
so one malformed statement does not abort parsing of the rest of the
file. Grounded on parser/parser.go's Parser struct shape (two-token
lookahead, Errors collection) and its init-time function-table wiring
style, adapted from Pratt-table dispatch to a direct recursive-descent
implementation of spec.md's explicit grammar.
*/
package parser

import (
	"fmt"

	"github.com/akashmaji946/loxscript/ast"
	"github.com/akashmaji946/loxscript/diag"
	"github.com/akashmaji946/loxscript/lexer"
)

const maxArgs = 255

// Parser holds the token stream and current read position.
type Parser struct {
	tokens   []lexer.Token
	current  int
	reporter *diag.Reporter
}

// New creates a Parser over an already-scanned token vector.
func New(tokens []lexer.Token, r *diag.Reporter) *Parser {
	return &Parser{tokens: tokens, reporter: r}
}

// parseError signals a syntax error to be caught by the declaration
// loop's panic-mode recovery; it is never returned as a normal error.
type parseError struct{ tok lexer.Token }

func (e *parseError) Error() string { return "parse error" }

// Parse runs the parser to completion, returning the top-level statement
// list. Errors are reported through the Reporter as they are found;
// callers must check the Reporter's HadError before trusting the result.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if s := p.declarationRecovering(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

func (p *Parser) declarationRecovering() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()
	return p.declaration()
}

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.check(lexer.CLASS):
		p.advance()
		return p.classDecl()
	case p.checkFunctionDecl():
		p.advance()
		return p.functionDecl("function")
	case p.check(lexer.LET):
		p.advance()
		return p.letDecl()
	default:
		return p.statement()
	}
}

// checkFunctionDecl implements the one-token lookahead that disambiguates
// `fn` as a declaration (followed by an identifier) from `fn` as an
// anonymous-function expression.
func (p *Parser) checkFunctionDecl() bool {
	return p.check(lexer.FN) && p.checkNext(lexer.IDENTIFIER)
}

func (p *Parser) classDecl() ast.Stmt {
	name := p.consume(lexer.IDENTIFIER, "Expect class name.")

	var superclass *ast.Variable
	if p.match(lexer.LESS) {
		superName := p.consume(lexer.IDENTIFIER, "Expect superclass name.")
		superclass = &ast.Variable{Name: superName}
	}

	p.consume(lexer.LEFT_BRACE, "Expect '{' before class body.")
	var methods []*ast.FunctionStmt
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		methods = append(methods, p.functionDecl("method").(*ast.FunctionStmt))
	}
	p.consume(lexer.RIGHT_BRACE, "Expect '}' after class body.")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) functionDecl(kind string) ast.Stmt {
	name := p.consume(lexer.IDENTIFIER, fmt.Sprintf("Expect %s name.", kind))
	fn := p.functionBody(name, kind)
	return &ast.FunctionStmt{Name: name, Fn: fn}
}

func (p *Parser) functionBody(keyword lexer.Token, kind string) *ast.FunctionExpr {
	p.consume(lexer.LEFT_PAREN, fmt.Sprintf("Expect '(' after %s name.", kind))
	var params []lexer.Token
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.reportErrorAt(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			params = append(params, p.consume(lexer.IDENTIFIER, "Expect parameter name."))
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.consume(lexer.RIGHT_PAREN, "Expect ')' after parameters.")
	p.consume(lexer.LEFT_BRACE, fmt.Sprintf("Expect '{' before %s body.", kind))
	body := p.block()
	return &ast.FunctionExpr{Keyword: keyword, Params: params, Body: body}
}

func (p *Parser) letDecl() ast.Stmt {
	name := p.consume(lexer.IDENTIFIER, "Expect variable name.")
	var init ast.Expr
	if p.match(lexer.EQUAL) {
		init = p.expression()
	}
	p.consume(lexer.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.LetStmt{Name: name, Init: init}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(lexer.FOR):
		return p.forStmt()
	case p.match(lexer.IF):
		return p.ifStmt()
	case p.match(lexer.ECHO):
		return p.echoStmt()
	case p.match(lexer.RETURN):
		return p.returnStmt()
	case p.match(lexer.WHILE):
		return p.whileStmt()
	case p.match(lexer.BREAK):
		return p.breakStmt()
	case p.match(lexer.LEFT_BRACE):
		return &ast.BlockStmt{Statements: p.block()}
	default:
		return p.exprStmt()
	}
}

// forStmt desugars `for (init; cond; incr) body` into
// `{ init; while (cond) { body; incr; } }` at parse time, per spec.md
// §4.2. A missing condition becomes the literal `true`; a missing
// initializer or increment is simply elided.
func (p *Parser) forStmt() ast.Stmt {
	p.consume(lexer.LEFT_PAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(lexer.SEMICOLON):
		init = nil
	case p.check(lexer.LET):
		p.advance()
		init = p.letDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(lexer.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(lexer.SEMICOLON, "Expect ';' after loop condition.")

	var incr ast.Expr
	if !p.check(lexer.RIGHT_PAREN) {
		incr = p.expression()
	}
	p.consume(lexer.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if incr != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expression: incr}}}
	}
	if cond == nil {
		cond = &ast.Literal{Value: true}
	}
	body = &ast.WhileStmt{Cond: cond, Body: body}

	if init != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{init, body}}
	}
	return body
}

func (p *Parser) ifStmt() ast.Stmt {
	p.consume(lexer.LEFT_PAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(lexer.RIGHT_PAREN, "Expect ')' after if condition.")
	then := p.statement()
	var els ast.Stmt
	if p.match(lexer.ELSE) {
		els = p.statement()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els}
}

func (p *Parser) echoStmt() ast.Stmt {
	value := p.expression()
	p.consume(lexer.SEMICOLON, "Expect ';' after value.")
	return &ast.EchoStmt{Expression: value}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(lexer.SEMICOLON) {
		value = p.expression()
	}
	p.consume(lexer.SEMICOLON, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) whileStmt() ast.Stmt {
	p.consume(lexer.LEFT_PAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(lexer.RIGHT_PAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Cond: cond, Body: body}
}

func (p *Parser) breakStmt() ast.Stmt {
	keyword := p.previous()
	p.consume(lexer.SEMICOLON, "Expect ';' after 'break'.")
	return &ast.BreakStmt{Keyword: keyword}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		if s := p.declarationRecovering(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(lexer.RIGHT_BRACE, "Expect '}' after block.")
	return stmts
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(lexer.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expression: expr}
}

// Expressions, in ascending precedence order per spec.md §6.

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses its left side as an rvalue, then rewrites it into an
// Assign or Set on seeing '='. Anything else that precedes '=' is an
// invalid target: reported but not thrown, so parsing continues.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(lexer.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.reportErrorAt(equals, "Invalid assignment target.")
		}
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(lexer.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.conditional()
	for p.match(lexer.AND) {
		op := p.previous()
		right := p.conditional()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

// conditional implements the right-associative ternary `cond ? then : else`,
// sitting between logical-and and equality per spec.md §4.2.
func (p *Parser) conditional() ast.Expr {
	expr := p.equality()
	if p.match(lexer.QUESTION) {
		question := p.previous()
		then := p.expression()
		p.consume(lexer.COLON, "Expect ':' after then branch of conditional expression.")
		els := p.conditional()
		return &ast.Conditional{Cond: expr, Question: question, Then: then, Else: els}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(lexer.BANG_EQUAL, lexer.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(lexer.MINUS, lexer.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(lexer.SLASH, lexer.STAR) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(lexer.BANG, lexer.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

// call parses the left-associative chain of invocations and property
// accesses that follow a primary expression.
func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(lexer.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(lexer.DOT):
			name := p.consume(lexer.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.reportErrorAt(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			args = append(args, p.expression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	paren := p.consume(lexer.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(lexer.FALSE):
		return &ast.Literal{Value: false}
	case p.match(lexer.TRUE):
		return &ast.Literal{Value: true}
	case p.match(lexer.NIL):
		return &ast.Literal{Value: nil}
	case p.match(lexer.NUMBER, lexer.STRING):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(lexer.SUPER):
		keyword := p.previous()
		p.consume(lexer.DOT, "Expect '.' after 'super'.")
		method := p.consume(lexer.IDENTIFIER, "Expect superclass method name.")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(lexer.THIS):
		return &ast.This{Keyword: p.previous()}
	case p.match(lexer.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}
	case p.match(lexer.LEFT_PAREN):
		expr := p.expression()
		p.consume(lexer.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.Grouping{Inner: expr}
	case p.match(lexer.FN):
		keyword := p.previous()
		return p.functionBody(keyword, "function")
	}
	panic(p.errorAt(p.peek(), "Expect expression."))
}

// Token stream primitives.

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t lexer.TokenType) bool {
	if p.isAtEnd() {
		return t == lexer.EOF
	}
	return p.peek().Type == t
}

func (p *Parser) checkNext(t lexer.TokenType) bool {
	if p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Type == t
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(t lexer.TokenType, message string) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), message))
}

// reportErrorAt reports without throwing, for diagnostics that should
// not interrupt parsing (invalid assignment target, argument/parameter
// count caps).
func (p *Parser) reportErrorAt(tok lexer.Token, message string) {
	p.reporter.Error(tok.Line, tok.Column, diag.AtToken(tok.IsEOF(), tok.Lexeme), message)
}

// errorAt reports and returns a *parseError for the caller to panic
// with, used where the grammar cannot proceed at all.
func (p *Parser) errorAt(tok lexer.Token, message string) *parseError {
	p.reportErrorAt(tok, message)
	return &parseError{tok: tok}
}

// synchronize discards tokens until it has just consumed a ';' or the
// next token starts a new statement, so one bad statement doesn't cascade
// into spurious errors for the rest of the file.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		switch p.peek().Type {
		case lexer.CLASS, lexer.ECHO, lexer.FN, lexer.FOR, lexer.IF, lexer.LET, lexer.WHILE, lexer.RETURN:
			return
		}
		p.advance()
		if p.previous().Type == lexer.SEMICOLON {
			return
		}
	}
}
