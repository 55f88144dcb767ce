/*
File: loxscript/printer/printer.go

Package printer renders a parsed program for the REPL's `.ast` and
`.expr` debug commands (spec.md §6): Dump produces an indented tree,
SExpr a compact Lisp-style rendering. Grounded on print_visitor.go's
PrintingVisitor (indent-tracking buffer, one render method per node
kind), ported from its double-dispatch Accept/Visit pairing to a direct
type switch over ast.Stmt/ast.Expr per spec.md's REDESIGN FLAGS - the
same tagged-sum-over-visitor trade the interpreter and resolver make.
*/
package printer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/akashmaji946/loxscript/ast"
	"github.com/akashmaji946/loxscript/lexer"
)

const indentSize = 2

// Dump renders stmts as an indented tree, one node per line.
func Dump(stmts []ast.Stmt) string {
	p := &dumper{}
	for _, s := range stmts {
		p.stmt(s)
	}
	return p.buf.String()
}

type dumper struct {
	buf    bytes.Buffer
	indent int
}

func (p *dumper) line(format string, args ...interface{}) {
	p.buf.WriteString(strings.Repeat(" ", p.indent))
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *dumper) nested(f func()) {
	p.indent += indentSize
	f()
	p.indent -= indentSize
}

func (p *dumper) stmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		p.line("Expression")
		p.nested(func() { p.expr(s.Expression) })
	case *ast.EchoStmt:
		p.line("Echo")
		p.nested(func() { p.expr(s.Expression) })
	case *ast.LetStmt:
		p.line("Let %s", s.Name.Lexeme)
		if s.Init != nil {
			p.nested(func() { p.expr(s.Init) })
		}
	case *ast.BlockStmt:
		p.line("Block")
		p.nested(func() {
			for _, inner := range s.Statements {
				p.stmt(inner)
			}
		})
	case *ast.IfStmt:
		p.line("If")
		p.nested(func() {
			p.line("cond:")
			p.nested(func() { p.expr(s.Cond) })
			p.line("then:")
			p.nested(func() { p.stmt(s.Then) })
			if s.Else != nil {
				p.line("else:")
				p.nested(func() { p.stmt(s.Else) })
			}
		})
	case *ast.WhileStmt:
		p.line("While")
		p.nested(func() {
			p.expr(s.Cond)
			p.stmt(s.Body)
		})
	case *ast.BreakStmt:
		p.line("Break")
	case *ast.ReturnStmt:
		p.line("Return")
		if s.Value != nil {
			p.nested(func() { p.expr(s.Value) })
		}
	case *ast.FunctionStmt:
		p.line("Function %s(%s)", s.Name.Lexeme, paramList(s.Fn.Params))
		p.nested(func() {
			for _, inner := range s.Fn.Body {
				p.stmt(inner)
			}
		})
	case *ast.ClassStmt:
		if s.Superclass != nil {
			p.line("Class %s < %s", s.Name.Lexeme, s.Superclass.Name.Lexeme)
		} else {
			p.line("Class %s", s.Name.Lexeme)
		}
		p.nested(func() {
			for _, m := range s.Methods {
				p.stmt(m)
			}
		})
	default:
		p.line("<unknown statement>")
	}
}

func (p *dumper) expr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		p.line("Literal %v", e.Value)
	case *ast.Grouping:
		p.line("Grouping")
		p.nested(func() { p.expr(e.Inner) })
	case *ast.Unary:
		p.line("Unary %s", e.Op.Lexeme)
		p.nested(func() { p.expr(e.Right) })
	case *ast.Binary:
		p.line("Binary %s", e.Op.Lexeme)
		p.nested(func() {
			p.expr(e.Left)
			p.expr(e.Right)
		})
	case *ast.Logical:
		p.line("Logical %s", e.Op.Lexeme)
		p.nested(func() {
			p.expr(e.Left)
			p.expr(e.Right)
		})
	case *ast.Conditional:
		p.line("Conditional")
		p.nested(func() {
			p.expr(e.Cond)
			p.expr(e.Then)
			p.expr(e.Else)
		})
	case *ast.Variable:
		p.line("Variable %s", e.Name.Lexeme)
	case *ast.Assign:
		p.line("Assign %s", e.Name.Lexeme)
		p.nested(func() { p.expr(e.Value) })
	case *ast.Call:
		p.line("Call")
		p.nested(func() {
			p.expr(e.Callee)
			for _, a := range e.Args {
				p.expr(a)
			}
		})
	case *ast.Get:
		p.line("Get %s", e.Name.Lexeme)
		p.nested(func() { p.expr(e.Object) })
	case *ast.Set:
		p.line("Set %s", e.Name.Lexeme)
		p.nested(func() {
			p.expr(e.Object)
			p.expr(e.Value)
		})
	case *ast.This:
		p.line("This")
	case *ast.Super:
		p.line("Super.%s", e.Method.Lexeme)
	case *ast.FunctionExpr:
		p.line("FunctionExpr(%s)", paramList(e.Params))
		p.nested(func() {
			for _, inner := range e.Body {
				p.stmt(inner)
			}
		})
	default:
		p.line("<unknown expression>")
	}
}

// SExpr renders stmts as a compact Lisp-style expression string,
// intended for single-expression REPL turns. Function and class
// declarations render only their header (name and parameters, or name and
// superclass); their bodies are omitted.
func SExpr(stmts []ast.Stmt) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = sexprStmt(s)
	}
	return strings.Join(parts, " ")
}

func sexprStmt(stmt ast.Stmt) string {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		return sexprExpr(s.Expression)
	case *ast.EchoStmt:
		return fmt.Sprintf("(echo %s)", sexprExpr(s.Expression))
	case *ast.LetStmt:
		if s.Init != nil {
			return fmt.Sprintf("(let %s %s)", s.Name.Lexeme, sexprExpr(s.Init))
		}
		return fmt.Sprintf("(let %s)", s.Name.Lexeme)
	case *ast.BlockStmt:
		inner := make([]string, len(s.Statements))
		for i, st := range s.Statements {
			inner[i] = sexprStmt(st)
		}
		return fmt.Sprintf("(block %s)", strings.Join(inner, " "))
	case *ast.IfStmt:
		if s.Else != nil {
			return fmt.Sprintf("(if %s %s %s)", sexprExpr(s.Cond), sexprStmt(s.Then), sexprStmt(s.Else))
		}
		return fmt.Sprintf("(if %s %s)", sexprExpr(s.Cond), sexprStmt(s.Then))
	case *ast.WhileStmt:
		return fmt.Sprintf("(while %s %s)", sexprExpr(s.Cond), sexprStmt(s.Body))
	case *ast.BreakStmt:
		return "(break)"
	case *ast.ReturnStmt:
		if s.Value != nil {
			return fmt.Sprintf("(return %s)", sexprExpr(s.Value))
		}
		return "(return)"
	case *ast.FunctionStmt:
		return fmt.Sprintf("(fn %s (%s))", s.Name.Lexeme, paramList(s.Fn.Params))
	case *ast.ClassStmt:
		if s.Superclass != nil {
			return fmt.Sprintf("(class %s %s)", s.Name.Lexeme, s.Superclass.Name.Lexeme)
		}
		return fmt.Sprintf("(class %s)", s.Name.Lexeme)
	default:
		return "(?)"
	}
}

func sexprExpr(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Literal:
		return fmt.Sprintf("%v", e.Value)
	case *ast.Grouping:
		return fmt.Sprintf("(group %s)", sexprExpr(e.Inner))
	case *ast.Unary:
		return fmt.Sprintf("(%s %s)", e.Op.Lexeme, sexprExpr(e.Right))
	case *ast.Binary:
		return fmt.Sprintf("(%s %s %s)", e.Op.Lexeme, sexprExpr(e.Left), sexprExpr(e.Right))
	case *ast.Logical:
		return fmt.Sprintf("(%s %s %s)", e.Op.Lexeme, sexprExpr(e.Left), sexprExpr(e.Right))
	case *ast.Conditional:
		return fmt.Sprintf("(?: %s %s %s)", sexprExpr(e.Cond), sexprExpr(e.Then), sexprExpr(e.Else))
	case *ast.Variable:
		return e.Name.Lexeme
	case *ast.Assign:
		return fmt.Sprintf("(= %s %s)", e.Name.Lexeme, sexprExpr(e.Value))
	case *ast.Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = sexprExpr(a)
		}
		return fmt.Sprintf("(call %s %s)", sexprExpr(e.Callee), strings.Join(args, " "))
	case *ast.Get:
		return fmt.Sprintf("(get %s %s)", sexprExpr(e.Object), e.Name.Lexeme)
	case *ast.Set:
		return fmt.Sprintf("(set %s %s %s)", sexprExpr(e.Object), e.Name.Lexeme, sexprExpr(e.Value))
	case *ast.This:
		return "this"
	case *ast.Super:
		return fmt.Sprintf("(super %s)", e.Method.Lexeme)
	case *ast.FunctionExpr:
		return fmt.Sprintf("(fn (%s))", paramList(e.Params))
	default:
		return "?"
	}
}

func paramList(params []lexer.Token) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Lexeme
	}
	return strings.Join(names, " ")
}
