/*
File: loxscript/interpreter/interpreter.go

Package interpreter implements the tree-walking evaluator of spec.md
§4.6: it consumes a parsed statement list and the resolver's
ResolutionMap and produces observable effects (writes to Out, diagnostic
reports, process exit status via the Reporter's sticky flags).

Grounded on eval/evaluator.go's per-construct dispatch and
eval/eval_controls.go / eval/eval_loops.go's loop/return handling, ported
from the teacher's visitor double-dispatch and panic-based control flow
to a direct type switch returning an explicit ctrlSignal, per spec.md's
REDESIGN FLAGS. Callable invocation is a type switch over concrete
*function.Function / *function.NativeFunction / *function.Class rather
than a Call method on values.Callable, avoiding a values<->interpreter
import cycle (see values.Callable's doc comment).
*/
package interpreter

import (
	"fmt"
	"io"

	"github.com/akashmaji946/loxscript/ast"
	"github.com/akashmaji946/loxscript/diag"
	"github.com/akashmaji946/loxscript/environment"
	"github.com/akashmaji946/loxscript/function"
	"github.com/akashmaji946/loxscript/lexer"
	"github.com/akashmaji946/loxscript/resolver"
	"github.com/akashmaji946/loxscript/std"
	"github.com/akashmaji946/loxscript/values"
)

// Interpreter holds the runtime state that must persist across REPL
// turns: the global environment (so top-level bindings survive between
// inputs), the current scope pointer, and the accumulated resolution map.
// Each Interpret call merges its map into the accumulated one, because a
// function or class defined in an earlier turn still evaluates the AST
// nodes that turn's resolver recorded.
type Interpreter struct {
	Globals  *environment.Environment
	env      *environment.Environment
	reporter *diag.Reporter
	out      io.Writer

	resolutions resolver.ResolutionMap

	// ReplMode additionally prints the value of expression statements,
	// per spec.md §6.
	ReplMode bool
}

// New creates an Interpreter with the three native functions and PI
// already bound in its global scope.
func New(r *diag.Reporter, out io.Writer) *Interpreter {
	globals := environment.New(nil)
	for name, v := range std.Globals() {
		globals.Define(name, v)
	}
	return &Interpreter{Globals: globals, env: globals, reporter: r, out: out}
}

// Interpret executes a top-level statement list. Per spec.md §7, a
// runtime error or an escaping break aborts only the statement it
// occurred in; the loop reports it and moves on to the next top-level
// statement.
func (in *Interpreter) Interpret(stmts []ast.Stmt, resolutions resolver.ResolutionMap) {
	if in.resolutions == nil {
		in.resolutions = resolver.ResolutionMap{}
	}
	for expr, depth := range resolutions {
		in.resolutions.Resolve(expr, depth)
	}
	for _, stmt := range stmts {
		sig, err := in.execute(stmt)
		if err != nil {
			if re, ok := err.(*RuntimeError); ok {
				in.reporter.RuntimeError(re.Token.Line, re.Message)
			} else {
				in.reporter.RuntimeError(0, err.Error())
			}
			continue
		}
		if sig.kind == signalBreak {
			in.reporter.RuntimeError(sig.keyword.Line, "Break statement used outside of loop.")
		}
		// signalReturn escaping top level would mean the grammar/resolver
		// let `return` appear outside a function, which cannot happen for
		// a program that resolved without error.
	}
}

func (in *Interpreter) execute(stmt ast.Stmt) (ctrlSignal, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		return in.executeExpressionStmt(s)
	case *ast.EchoStmt:
		return in.executeEchoStmt(s)
	case *ast.LetStmt:
		return in.executeLetStmt(s)
	case *ast.BlockStmt:
		return in.executeBlock(s.Statements, environment.New(in.env))
	case *ast.IfStmt:
		return in.executeIfStmt(s)
	case *ast.WhileStmt:
		return in.executeWhileStmt(s)
	case *ast.BreakStmt:
		return breakSignal(s.Keyword), nil
	case *ast.ReturnStmt:
		return in.executeReturnStmt(s)
	case *ast.FunctionStmt:
		in.env.Define(s.Name.Lexeme, in.makeFunction(s.Fn, s.Name.Lexeme, false))
		return normalSignal, nil
	case *ast.ClassStmt:
		return normalSignal, in.executeClassStmt(s)
	}
	return normalSignal, nil
}

func (in *Interpreter) executeExpressionStmt(s *ast.ExpressionStmt) (ctrlSignal, error) {
	v, err := in.evaluate(s.Expression)
	if err != nil {
		return normalSignal, err
	}
	if in.ReplMode {
		fmt.Fprintln(in.out, stringify(v))
	}
	return normalSignal, nil
}

func (in *Interpreter) executeEchoStmt(s *ast.EchoStmt) (ctrlSignal, error) {
	v, err := in.evaluate(s.Expression)
	if err != nil {
		return normalSignal, err
	}
	fmt.Fprintln(in.out, stringify(v))
	return normalSignal, nil
}

func (in *Interpreter) executeLetStmt(s *ast.LetStmt) (ctrlSignal, error) {
	var v values.Value = values.Nil{}
	if s.Init != nil {
		var err error
		v, err = in.evaluate(s.Init)
		if err != nil {
			return normalSignal, err
		}
	}
	in.env.Define(s.Name.Lexeme, v)
	return normalSignal, nil
}

func (in *Interpreter) executeIfStmt(s *ast.IfStmt) (ctrlSignal, error) {
	cond, err := in.evaluate(s.Cond)
	if err != nil {
		return normalSignal, err
	}
	if values.Truthy(cond) {
		return in.execute(s.Then)
	}
	if s.Else != nil {
		return in.execute(s.Else)
	}
	return normalSignal, nil
}

func (in *Interpreter) executeWhileStmt(s *ast.WhileStmt) (ctrlSignal, error) {
	for {
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return normalSignal, err
		}
		if !values.Truthy(cond) {
			return normalSignal, nil
		}
		sig, err := in.execute(s.Body)
		if err != nil {
			return normalSignal, err
		}
		switch sig.kind {
		case signalBreak:
			return normalSignal, nil
		case signalReturn:
			return sig, nil
		}
	}
}

func (in *Interpreter) executeReturnStmt(s *ast.ReturnStmt) (ctrlSignal, error) {
	var v values.Value = values.Nil{}
	if s.Value != nil {
		var err error
		v, err = in.evaluate(s.Value)
		if err != nil {
			return normalSignal, err
		}
	}
	return returnSignal(v), nil
}

// executeBlock runs stmts in env, restoring the caller's environment on
// every exit path (normal, error, or signal) per spec.md §5's RAII-like
// invariant on the environment pointer.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *environment.Environment) (ctrlSignal, error) {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		sig, err := in.execute(stmt)
		if err != nil {
			return normalSignal, err
		}
		if sig.kind != signalNone {
			return sig, nil
		}
	}
	return normalSignal, nil
}

// executeClassStmt builds the class's methods under an environment that
// has `super` bound (if there is a superclass), matching the scope the
// resolver pushed around the method bodies, then installs the class
// value in the defining scope. Defining the name before building the
// class lets methods refer to their own class name recursively.
func (in *Interpreter) executeClassStmt(s *ast.ClassStmt) error {
	var superclass *function.Class
	if s.Superclass != nil {
		v, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*function.Class)
		if !ok {
			return in.runtimeErr(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.env.Define(s.Name.Lexeme, values.Nil{})

	classEnv := in.env
	if superclass != nil {
		classEnv = environment.New(in.env)
		classEnv.Define("super", superclass)
	}

	previous := in.env
	in.env = classEnv
	methods := make(map[string]*function.Function, len(s.Methods))
	for _, m := range s.Methods {
		isInit := m.Name.Lexeme == "init"
		methods[m.Name.Lexeme] = in.makeFunction(m.Fn, m.Name.Lexeme, isInit)
	}
	in.env = previous

	class := &function.Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	return in.env.Assign(s.Name.Lexeme, class)
}

func (in *Interpreter) makeFunction(fe *ast.FunctionExpr, name string, isInitializer bool) *function.Function {
	params := make([]string, len(fe.Params))
	for i, p := range fe.Params {
		params[i] = p.Lexeme
	}
	return &function.Function{
		Name:          name,
		Params:        params,
		Body:          fe.Body,
		Closure:       in.env,
		IsInitializer: isInitializer,
	}
}

// Expressions.

func (in *Interpreter) evaluate(expr ast.Expr) (values.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil
	case *ast.Grouping:
		return in.evaluate(e.Inner)
	case *ast.Unary:
		return in.evalUnary(e)
	case *ast.Binary:
		return in.evalBinary(e)
	case *ast.Logical:
		return in.evalLogical(e)
	case *ast.Conditional:
		return in.evalConditional(e)
	case *ast.Variable:
		return in.lookupVariable(e.Name, e)
	case *ast.Assign:
		return in.evalAssign(e)
	case *ast.Call:
		return in.evalCall(e)
	case *ast.Get:
		return in.evalGet(e)
	case *ast.Set:
		return in.evalSet(e)
	case *ast.This:
		return in.lookupVariable(e.Keyword, e)
	case *ast.Super:
		return in.evalSuper(e)
	case *ast.FunctionExpr:
		return in.makeFunction(e, "", false), nil
	}
	return values.Nil{}, nil
}

func literalValue(v interface{}) values.Value {
	switch vv := v.(type) {
	case nil:
		return values.Nil{}
	case bool:
		return values.Boolean{Value: vv}
	case float64:
		return values.Number{Value: vv}
	case string:
		return values.String{Value: vv}
	default:
		return values.Nil{}
	}
}

func (in *Interpreter) lookupVariable(name lexer.Token, expr ast.Expr) (values.Value, error) {
	if depth, ok := in.resolutions.Lookup(expr); ok {
		return in.env.GetAt(depth, name.Lexeme), nil
	}
	v, err := in.Globals.Get(name.Lexeme)
	if err != nil {
		return nil, in.runtimeErr(name, err.Error())
	}
	return v, nil
}

func (in *Interpreter) evalAssign(e *ast.Assign) (values.Value, error) {
	v, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := in.resolutions.Lookup(e); ok {
		in.env.AssignAt(depth, e.Name.Lexeme, v)
		return v, nil
	}
	if err := in.Globals.Assign(e.Name.Lexeme, v); err != nil {
		return nil, in.runtimeErr(e.Name, err.Error())
	}
	return v, nil
}

func (in *Interpreter) evalUnary(e *ast.Unary) (values.Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Type {
	case lexer.BANG:
		return values.Boolean{Value: !values.Truthy(right)}, nil
	case lexer.MINUS:
		n, ok := right.(values.Number)
		if !ok {
			return nil, in.runtimeErr(e.Op, "Operand must be a number.")
		}
		return values.Number{Value: -n.Value}, nil
	}
	return nil, in.runtimeErr(e.Op, "Unknown unary operator.")
}

func (in *Interpreter) evalBinary(e *ast.Binary) (values.Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case lexer.MINUS, lexer.STAR:
		return in.evalArithmetic(e.Op, left, right)
	case lexer.SLASH:
		return in.evalDivide(e.Op, left, right)
	case lexer.PLUS:
		return in.evalPlus(e.Op, left, right)
	case lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL:
		return in.evalComparison(e.Op, left, right)
	case lexer.BANG_EQUAL:
		return values.Boolean{Value: !values.Equal(left, right)}, nil
	case lexer.EQUAL_EQUAL:
		return values.Boolean{Value: values.Equal(left, right)}, nil
	}
	return nil, in.runtimeErr(e.Op, "Unknown binary operator.")
}

func (in *Interpreter) evalArithmetic(op lexer.Token, left, right values.Value) (values.Value, error) {
	ln, lok := left.(values.Number)
	rn, rok := right.(values.Number)
	if !lok || !rok {
		return nil, in.runtimeErr(op, "Operands must be numbers.")
	}
	switch op.Type {
	case lexer.MINUS:
		return values.Number{Value: ln.Value - rn.Value}, nil
	case lexer.STAR:
		return values.Number{Value: ln.Value * rn.Value}, nil
	}
	return nil, in.runtimeErr(op, "Unknown arithmetic operator.")
}

func (in *Interpreter) evalDivide(op lexer.Token, left, right values.Value) (values.Value, error) {
	ln, lok := left.(values.Number)
	rn, rok := right.(values.Number)
	if !lok || !rok {
		return nil, in.runtimeErr(op, "Operands must be numbers.")
	}
	if rn.Value == 0 {
		return nil, in.runtimeErr(op, "Division by zero is not allowed.")
	}
	return values.Number{Value: ln.Value / rn.Value}, nil
}

// evalPlus implements spec.md §4.6's three-way `+` contract: number+number
// adds, string+string concatenates, exactly one string stringifies both
// operands and concatenates, anything else is a type error.
func (in *Interpreter) evalPlus(op lexer.Token, left, right values.Value) (values.Value, error) {
	ln, lok := left.(values.Number)
	rn, rok := right.(values.Number)
	if lok && rok {
		return values.Number{Value: ln.Value + rn.Value}, nil
	}

	ls, lsok := left.(values.String)
	rs, rsok := right.(values.String)
	if lsok && rsok {
		return values.String{Value: ls.Value + rs.Value}, nil
	}
	if lsok || rsok {
		return values.String{Value: stringify(left) + stringify(right)}, nil
	}
	return nil, in.runtimeErr(op, "Operands must be two numbers or two strings.")
}

func (in *Interpreter) evalComparison(op lexer.Token, left, right values.Value) (values.Value, error) {
	ln, lok := left.(values.Number)
	rn, rok := right.(values.Number)
	if !lok || !rok {
		return nil, in.runtimeErr(op, "Operands must be numbers.")
	}
	switch op.Type {
	case lexer.GREATER:
		return values.Boolean{Value: ln.Value > rn.Value}, nil
	case lexer.GREATER_EQUAL:
		return values.Boolean{Value: ln.Value >= rn.Value}, nil
	case lexer.LESS:
		return values.Boolean{Value: ln.Value < rn.Value}, nil
	case lexer.LESS_EQUAL:
		return values.Boolean{Value: ln.Value <= rn.Value}, nil
	}
	return nil, in.runtimeErr(op, "Unknown comparison operator.")
}

func (in *Interpreter) evalLogical(e *ast.Logical) (values.Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Type == lexer.OR {
		if values.Truthy(left) {
			return left, nil
		}
		return in.evaluate(e.Right)
	}
	// AND
	if !values.Truthy(left) {
		return left, nil
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) evalConditional(e *ast.Conditional) (values.Value, error) {
	cond, err := in.evaluate(e.Cond)
	if err != nil {
		return nil, err
	}
	if values.Truthy(cond) {
		return in.evaluate(e.Then)
	}
	return in.evaluate(e.Else)
}

func (in *Interpreter) evalCall(e *ast.Call) (values.Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]values.Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return in.callValue(callee, e.Paren, args)
}

// callValue dispatches invocation by concrete type, since values.Callable
// intentionally exposes no Call method (see values.Callable's doc
// comment for why).
func (in *Interpreter) callValue(callee values.Value, paren lexer.Token, args []values.Value) (values.Value, error) {
	callable, ok := callee.(values.Callable)
	if !ok {
		return nil, in.runtimeErr(paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, in.runtimeErr(paren, fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)))
	}

	switch c := callee.(type) {
	case *function.NativeFunction:
		v, err := c.Fn(args)
		if err != nil {
			return nil, in.runtimeErr(paren, err.Error())
		}
		return v, nil
	case *function.Function:
		return in.callFunction(c, args)
	case *function.Class:
		return in.instantiate(c, args)
	default:
		return nil, in.runtimeErr(paren, "Can only call functions and classes.")
	}
}

func (in *Interpreter) callFunction(fn *function.Function, args []values.Value) (values.Value, error) {
	env := environment.New(fn.Closure)
	for i, p := range fn.Params {
		env.Define(p, args[i])
	}
	sig, err := in.executeBlock(fn.Body, env)
	if err != nil {
		return nil, err
	}
	if sig.kind == signalBreak {
		return nil, &RuntimeError{Token: sig.keyword, Message: "Break statement used outside of loop."}
	}
	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this"), nil
	}
	if sig.kind == signalReturn {
		return sig.value, nil
	}
	return values.Nil{}, nil
}

func (in *Interpreter) instantiate(cls *function.Class, args []values.Value) (values.Value, error) {
	instance := function.NewInstance(cls)
	if init, ok := cls.FindMethod("init"); ok {
		if _, err := in.callFunction(init.Bind(instance), args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (in *Interpreter) evalGet(e *ast.Get) (values.Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*function.Instance)
	if !ok {
		return nil, in.runtimeErr(e.Name, "Only objects have properties.")
	}
	v, err := inst.Get(e.Name.Lexeme)
	if err != nil {
		return nil, in.runtimeErr(e.Name, err.Error())
	}
	return v, nil
}

func (in *Interpreter) evalSet(e *ast.Set) (values.Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*function.Instance)
	if !ok {
		return nil, in.runtimeErr(e.Name, "Only objects have fields.")
	}
	v, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(e.Name.Lexeme, v)
	return v, nil
}

// evalSuper implements spec.md §4.5's super-dispatch recipe: `super` lives
// at the resolved depth, `this` one scope inward of it.
func (in *Interpreter) evalSuper(e *ast.Super) (values.Value, error) {
	depth, ok := in.resolutions.Lookup(e)
	if !ok {
		return nil, in.runtimeErr(e.Keyword, "Can't use 'super' outside of a class.")
	}
	superclass, ok := in.env.GetAt(depth, "super").(*function.Class)
	if !ok {
		return nil, in.runtimeErr(e.Keyword, "Can't use 'super' outside of a class.")
	}
	instance, ok := in.env.GetAt(depth-1, "this").(*function.Instance)
	if !ok {
		return nil, in.runtimeErr(e.Keyword, "Can't use 'super' outside of a class.")
	}
	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, in.runtimeErr(e.Method, fmt.Sprintf("Undefined property '%s'.", e.Method.Lexeme))
	}
	return method.Bind(instance), nil
}

func (in *Interpreter) runtimeErr(tok lexer.Token, message string) *RuntimeError {
	return &RuntimeError{Token: tok, Message: message}
}

// stringify renders a value the way `echo` and string concatenation do.
// Primitive-specific rendering lives on the Value types themselves
// (values.Number trims trailing zeros, values.String is verbatim);
// stringify only needs to special-case nothing beyond what Value.String
// already provides, so it is a thin pass-through kept here because it is
// an interpreter-level concept named directly in spec.md §4.6.
func stringify(v values.Value) string {
	return v.String()
}
