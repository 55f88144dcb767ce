/*
File: loxscript/resolver/resolver.go

Package resolver implements the static pass described in spec.md §4.3: a
single walk over the parsed statement list that computes, for every
variable-like expression, the number of environment hops between its use
site and the scope that declares it. The result is a ResolutionMap keyed
on expression pointer identity, consulted later by the interpreter - the
two packages never need to import one another, since the map is plain
data rather than a callback.

Grounded on the teacher's scope-stack bookkeeping in scope/scope.go
(named scope slots, push/pop around block and function bodies) and on
eval/evaluator.go's per-construct dispatch shape, adapted from visitor
double-dispatch to a direct type switch per spec.md's REDESIGN FLAGS.
The self-read-in-initializer and duplicate-declaration rules follow
other_examples/df22c164_mna-nenuphar-resolver's declare/define split.
*/
package resolver

import (
	"github.com/akashmaji946/loxscript/ast"
	"github.com/akashmaji946/loxscript/diag"
	"github.com/akashmaji946/loxscript/lexer"
)

// ResolutionMap is the process-wide side-table from expression identity
// to lexical depth. Absence of an entry means "resolve against globals".
type ResolutionMap map[ast.Expr]int

// Resolve records that expr refers to a binding depth scopes outward
// from wherever it is evaluated.
func (m ResolutionMap) Resolve(expr ast.Expr, depth int) { m[expr] = depth }

// Lookup reports the recorded depth for expr, if any.
func (m ResolutionMap) Lookup(expr ast.Expr) (int, bool) {
	d, ok := m[expr]
	return d, ok
}

type variableState int

const (
	declaredState variableState = iota
	definedState
	readState
)

type variableSlot struct {
	token lexer.Token
	state variableState
}

type functionKind int

const (
	noFunction functionKind = iota
	funcKind
	initializerKind
	methodKind
)

type classKind int

const (
	noClass classKind = iota
	classKindPlain
	classKindSubclass
)

// Resolver runs the single-pass static analysis over a parsed program.
type Resolver struct {
	reporter        *diag.Reporter
	scopes          []map[string]*variableSlot
	resolutions     ResolutionMap
	currentFunction functionKind
	currentClass    classKind
}

// New creates a Resolver reporting through r.
func New(r *diag.Reporter) *Resolver {
	return &Resolver{reporter: r, resolutions: ResolutionMap{}}
}

// Resolve walks the program and returns the populated ResolutionMap.
// Diagnostics are reported as encountered; callers should check the
// Reporter's HadError before handing the map to the interpreter.
func (r *Resolver) Resolve(stmts []ast.Stmt) ResolutionMap {
	r.resolveStmts(stmts)
	return r.resolutions
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)
	case *ast.EchoStmt:
		r.resolveExpr(s.Expression)
	case *ast.LetStmt:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	case *ast.BreakStmt:
		// Break-outside-loop is a runtime concern per spec.md §4.6.
	case *ast.ReturnStmt:
		r.resolveReturn(s)
	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s.Fn, funcKind)
	case *ast.ClassStmt:
		r.resolveClass(s)
	}
}

func (r *Resolver) resolveReturn(s *ast.ReturnStmt) {
	if r.currentFunction == noFunction {
		r.reportError(s.Keyword, "Can't return from top-level code.")
	}
	if s.Value != nil {
		if r.currentFunction == initializerKind {
			r.reportError(s.Keyword, "Can't return a value from an initializer.")
		}
		r.resolveExpr(s.Value)
	}
}

func (r *Resolver) resolveClass(s *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classKindPlain
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil && s.Superclass.Name.Lexeme == s.Name.Lexeme {
		r.reportError(s.Superclass.Name, "A class cannot inherit from itself.")
	}

	if s.Superclass != nil {
		r.currentClass = classKindSubclass
		r.resolveExpr(s.Superclass)
		r.beginScope()
		r.defineSynthetic("super", s.Name)
	}

	r.beginScope()
	r.defineSynthetic("this", s.Name)

	for _, m := range s.Methods {
		kind := methodKind
		if m.Name.Lexeme == "init" {
			kind = initializerKind
		}
		r.resolveFunction(m.Fn, kind)
	}

	r.endScope() // this

	if s.Superclass != nil {
		r.endScope() // super
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionExpr, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		// no sub-expressions
	case *ast.Grouping:
		r.resolveExpr(e.Inner)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Conditional:
		r.resolveExpr(e.Cond)
		r.resolveExpr(e.Then)
		r.resolveExpr(e.Else)
	case *ast.Variable:
		r.resolveVariable(e)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name, false)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Set:
		r.resolveExpr(e.Object)
		r.resolveExpr(e.Value)
	case *ast.This:
		if r.currentClass == noClass {
			r.reportError(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword, true)
	case *ast.Super:
		r.resolveSuper(e)
	case *ast.FunctionExpr:
		r.resolveFunction(e, funcKind)
	}
}

func (r *Resolver) resolveSuper(e *ast.Super) {
	switch r.currentClass {
	case noClass:
		r.reportError(e.Keyword, "Can't use 'super' outside of a class.")
		return
	case classKindPlain:
		r.reportError(e.Keyword, "Can't use 'super' in a class with no superclass.")
		return
	}
	r.resolveLocal(e, e.Keyword, true)
}

// resolveVariable checks the self-read-in-initializer rule before
// resolving: a DECLARED-but-not-yet-DEFINED slot of the same name in the
// innermost scope means the initializer is reading the variable it is
// still initializing.
func (r *Resolver) resolveVariable(e *ast.Variable) {
	if len(r.scopes) > 0 {
		top := r.scopes[len(r.scopes)-1]
		if slot, ok := top[e.Name.Lexeme]; ok && slot.state == declaredState {
			r.reportError(e.Name, "Cannot read local variable in its own initializer.")
		}
	}
	r.resolveLocal(e, e.Name, true)
}

// resolveLocal walks the scope stack from innermost outward, recording
// the matching depth in the resolution map. markRead controls whether a
// match promotes the slot to readState: a Variable read does, an Assign
// does not, per spec.md §4.3's documented (and preserved) asymmetry.
func (r *Resolver) resolveLocal(expr ast.Expr, name lexer.Token, markRead bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if slot, ok := r.scopes[i][name.Lexeme]; ok {
			r.resolutions.Resolve(expr, len(r.scopes)-1-i)
			if markRead {
				slot.state = readState
			}
			return
		}
	}
	// No match: assumed global, left unresolved.
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]*variableSlot{})
}

// endScope pops the innermost scope, warning on every slot that was
// defined but never read.
func (r *Resolver) endScope() {
	top := r.scopes[len(r.scopes)-1]
	for _, slot := range top {
		if slot.state == definedState {
			r.reportWarning(slot.token, "Local variable is defined but never used.")
		}
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reportError(name, "Variable with this name already declared in this scope.")
	}
	scope[name.Lexeme] = &variableSlot{token: name, state: declaredState}
}

func (r *Resolver) define(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if slot, ok := scope[name.Lexeme]; ok {
		slot.state = definedState
		return
	}
	scope[name.Lexeme] = &variableSlot{token: name, state: definedState}
}

// defineSynthetic installs a compiler-introduced binding (`this`,
// `super`) already in readState, so it never triggers an unused-local
// warning.
func (r *Resolver) defineSynthetic(lexeme string, pos lexer.Token) {
	scope := r.scopes[len(r.scopes)-1]
	scope[lexeme] = &variableSlot{
		token: lexer.Token{Lexeme: lexeme, Line: pos.Line, Column: pos.Column},
		state: readState,
	}
}

func (r *Resolver) reportError(tok lexer.Token, message string) {
	r.reporter.Error(tok.Line, tok.Column, diag.AtToken(tok.IsEOF(), tok.Lexeme), message)
}

func (r *Resolver) reportWarning(tok lexer.Token, message string) {
	r.reporter.Warning(tok.Line, tok.Column, diag.AtToken(tok.IsEOF(), tok.Lexeme), message)
}
