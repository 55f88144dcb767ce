/*
File: loxscript/resolver/resolver_test.go
*/
package resolver

import (
	"bytes"
	"testing"

	"github.com/akashmaji946/loxscript/ast"
	"github.com/akashmaji946/loxscript/diag"
	"github.com/akashmaji946/loxscript/lexer"
	"github.com/akashmaji946/loxscript/parser"
	"github.com/stretchr/testify/assert"
)

func resolve(src string) ([]ast.Stmt, ResolutionMap, *diag.Reporter) {
	r := diag.New(&bytes.Buffer{})
	toks := lexer.New(src, r).ScanTokens()
	stmts := parser.New(toks, r).Parse()
	resMap := New(r).Resolve(stmts)
	return stmts, resMap, r
}

func TestResolve_LocalVariableResolvesToDepthZero(t *testing.T) {
	stmts, resMap, r := resolve(`{ let x = 1; echo x; }`)
	assert.False(t, r.HadError)
	block := stmts[0].(*ast.BlockStmt)
	echo := block.Statements[1].(*ast.EchoStmt)
	v := echo.Expression.(*ast.Variable)
	depth, ok := resMap.Lookup(v)
	assert.True(t, ok)
	assert.Equal(t, 0, depth)
}

func TestResolve_OuterScopeVariableHasPositiveDepth(t *testing.T) {
	stmts, resMap, r := resolve(`{ let x = 1; { echo x; } }`)
	assert.False(t, r.HadError)
	outer := stmts[0].(*ast.BlockStmt)
	inner := outer.Statements[1].(*ast.BlockStmt)
	echo := inner.Statements[0].(*ast.EchoStmt)
	v := echo.Expression.(*ast.Variable)
	depth, ok := resMap.Lookup(v)
	assert.True(t, ok)
	assert.Equal(t, 1, depth)
}

func TestResolve_GlobalReferenceIsUnresolved(t *testing.T) {
	stmts, resMap, r := resolve(`let g = 1; echo g;`)
	assert.False(t, r.HadError)
	echo := stmts[1].(*ast.EchoStmt)
	v := echo.Expression.(*ast.Variable)
	_, ok := resMap.Lookup(v)
	assert.False(t, ok)
}

func TestResolve_SelfReadInInitializerErrors(t *testing.T) {
	_, _, r := resolve(`{ let a = a; }`)
	assert.True(t, r.HadError)
}

func TestResolve_DuplicateDeclarationInSameScopeErrors(t *testing.T) {
	_, _, r := resolve(`{ let a = 1; let a = 2; }`)
	assert.True(t, r.HadError)
}

func TestResolve_ShadowingInNestedScopeIsFine(t *testing.T) {
	_, _, r := resolve(`{ let a = 1; { let a = 2; echo a; } echo a; }`)
	assert.False(t, r.HadError)
}

func TestResolve_UnusedLocalWarns(t *testing.T) {
	_, _, r := resolve(`fn f() { let unused = 1; } f();`)
	assert.False(t, r.HadError)
	assert.Contains(t, r.Out.(*bytes.Buffer).String(), "Warning at 'unused': Local variable is defined but never used.")
}

func TestResolve_AssignDoesNotSuppressUnusedWarning(t *testing.T) {
	// spec.md §9 open question: Assign does not promote to READ, so a
	// variable only ever assigned (never read) is still "unused".
	_, resMap, r := resolve(`fn f() { let x = 1; x = 2; } f();`)
	assert.False(t, r.HadError)
	assert.Contains(t, r.Out.(*bytes.Buffer).String(), "Warning at 'x': Local variable is defined but never used.")
	_ = resMap
}

func TestResolve_ReturnOutsideFunctionErrors(t *testing.T) {
	_, _, r := resolve(`return 1;`)
	assert.True(t, r.HadError)
}

func TestResolve_ReturnValueInInitializerErrors(t *testing.T) {
	_, _, r := resolve(`class C { init() { return 1; } }`)
	assert.True(t, r.HadError)
}

func TestResolve_BareReturnInInitializerIsLegal(t *testing.T) {
	_, _, r := resolve(`class C { init() { return; } }`)
	assert.False(t, r.HadError)
}

func TestResolve_ThisOutsideClassErrors(t *testing.T) {
	_, _, r := resolve(`echo this;`)
	assert.True(t, r.HadError)
}

func TestResolve_SuperOutsideClassErrors(t *testing.T) {
	_, _, r := resolve(`fn f() { return super.m(); } f();`)
	assert.True(t, r.HadError)
}

func TestResolve_SuperWithoutSuperclassErrors(t *testing.T) {
	_, _, r := resolve(`class C { m() { return super.m(); } }`)
	assert.True(t, r.HadError)
}

func TestResolve_ClassInheritingFromItselfErrors(t *testing.T) {
	_, _, r := resolve(`class C < C { }`)
	assert.True(t, r.HadError)
}

func TestResolve_ValidSubclassWithSuperResolvesSuperAndThis(t *testing.T) {
	_, _, r := resolve(`
		class A { greet() { echo "A"; } }
		class B < A { greet() { super.greet(); } }
	`)
	assert.False(t, r.HadError)
}

func TestResolve_ThisInsideMethodResolves(t *testing.T) {
	stmts, resMap, r := resolve(`class C { m() { echo this; } }`)
	assert.False(t, r.HadError)
	cls := stmts[0].(*ast.ClassStmt)
	echo := cls.Methods[0].Fn.Body[0].(*ast.EchoStmt)
	this := echo.Expression.(*ast.This)
	depth, ok := resMap.Lookup(this)
	assert.True(t, ok)
	assert.Equal(t, 1, depth)
}
