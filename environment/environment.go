/*
File: loxscript/environment/environment.go

Package environment implements the lexically scoped binding chain that
spec.md §4.4 calls the Environment: an ordered chain of scopes, each a
name->value map plus an enclosing pointer. Grounded almost directly on
scope/scope.go's LookUp/Assign/Bind, which this package renames to
Get/Assign/Define; Ancestor/GetAt/AssignAt are new, added because the
resolver (which the teacher's language has none of) requires indexed
ancestor walks that never fall through to an enclosing scope.
*/
package environment

import (
	"fmt"

	"github.com/akashmaji946/loxscript/values"
)

// Environment is one scope in the chain. A nil Enclosing marks the
// distinguished global scope, which the resolver never counts.
type Environment struct {
	vars      map[string]values.Value
	Enclosing *Environment
}

// New creates a scope enclosed by parent (nil for the global scope).
func New(parent *Environment) *Environment {
	return &Environment{vars: make(map[string]values.Value), Enclosing: parent}
}

// Define installs a binding in this scope unconditionally, shadowing any
// existing binding of the same name in this scope. It never consults
// enclosing scopes.
func (e *Environment) Define(name string, v values.Value) {
	e.vars[name] = v
}

// Get looks up name in this scope, then recurses outward through
// enclosing scopes, failing if no scope in the chain binds it.
func (e *Environment) Get(name string) (values.Value, error) {
	if v, ok := e.vars[name]; ok {
		return v, nil
	}
	if e.Enclosing != nil {
		return e.Enclosing.Get(name)
	}
	return nil, fmt.Errorf("Undefined variable '%s'.", name)
}

// Assign overwrites an existing binding of name, searching this scope
// then enclosing scopes, failing if the name is bound nowhere in the
// chain. Unlike Define, it never creates a new binding.
func (e *Environment) Assign(name string, v values.Value) error {
	if _, ok := e.vars[name]; ok {
		e.vars[name] = v
		return nil
	}
	if e.Enclosing != nil {
		return e.Enclosing.Assign(name, v)
	}
	return fmt.Errorf("Undefined variable '%s'.", name)
}

// Ancestor walks Enclosing d times. A resolver bug that computes a depth
// deeper than the live environment chain is a programming error, not a
// user-facing one, so this panics rather than returning an error -
// mirroring spec.md §4.4's "panic on underrun (indicates a resolver
// bug)" contract.
func (e *Environment) Ancestor(d int) *Environment {
	env := e
	for i := 0; i < d; i++ {
		if env.Enclosing == nil {
			panic(fmt.Sprintf("environment: ancestor(%d) underran the scope chain", d))
		}
		env = env.Enclosing
	}
	return env
}

// GetAt reads name from exactly Ancestor(d)'s local map, never walking
// further outward. The resolver guarantees this always finds the name.
func (e *Environment) GetAt(d int, name string) values.Value {
	return e.Ancestor(d).vars[name]
}

// AssignAt writes name into exactly Ancestor(d)'s local map.
func (e *Environment) AssignAt(d int, name string, v values.Value) {
	e.Ancestor(d).vars[name] = v
}

// Snapshot returns a shallow copy of this scope's own bindings, for the
// REPL's `.env` debug command. It never walks into enclosing scopes.
func (e *Environment) Snapshot() map[string]values.Value {
	out := make(map[string]values.Value, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}
