/*
File: loxscript/function/function.go

Package function holds the callable-like runtime values - Function,
NativeFunction, Class, Instance - that sit above values.Value but below
the interpreter. They live in their own package (rather than inside
values) because Function needs to capture an *environment.Environment
and Class needs to hold ast.Stmt method bodies; values stays a leaf so
environment can import it without a cycle. Grounded on the teacher's own
split: function/function.go is a separate package from objects for
exactly this reason (it imports both objects and scope).
*/
package function

import (
	"fmt"

	"github.com/akashmaji946/loxscript/ast"
	"github.com/akashmaji946/loxscript/environment"
	"github.com/akashmaji946/loxscript/values"
)

// Function is a user-defined closure: optional name, parameter names,
// body, the environment captured at definition time, and whether it is a
// class's `init` method. Grounded on function/function.go's
// Name/Params/Body/Scp shape, extended with IsInitializer.
type Function struct {
	Name          string
	Params        []string
	Body          []ast.Stmt
	Closure       *environment.Environment
	IsInitializer bool
}

func (f *Function) Type() values.Type { return values.FunctionType }

func (f *Function) String() string {
	if f.Name == "" {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}

func (f *Function) Arity() int { return len(f.Params) }

// Bind produces a new Function whose closure is a fresh scope enclosing
// f's closure and defining `this` as instance. Used for method lookup on
// an Instance and for super-method dispatch.
func (f *Function) Bind(instance *Instance) *Function {
	env := environment.New(f.Closure)
	env.Define("this", instance)
	return &Function{
		Name:          f.Name,
		Params:        f.Params,
		Body:          f.Body,
		Closure:       env,
		IsInitializer: f.IsInitializer,
	}
}

// NativeFunction wraps a host Go closure exposed to loxscript (clock,
// len, type). Grounded on std/builtins.go's Builtin/CallbackFunc shape.
type NativeFunction struct {
	Name string
	Arty int
	Fn   func(args []values.Value) (values.Value, error)
}

func (n *NativeFunction) Type() values.Type { return values.FunctionType }
func (n *NativeFunction) String() string    { return "<native fn>" }
func (n *NativeFunction) Arity() int        { return n.Arty }
