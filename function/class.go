/*
File: loxscript/function/class.go
*/
package function

import (
	"fmt"

	"github.com/akashmaji946/loxscript/values"
)

// Class carries a name, an optional superclass, and its own method
// table (name -> Function). Grounded on objects/struct.go's GoMixStruct
// (Name/Methods map, GetMethod/GetConstructor lookup pattern).
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) Type() values.Type { return values.ClassType }
func (c *Class) String() string    { return c.Name }

// Arity equals the `init` method's arity, or 0 if the class declares
// none (its own, or inherited).
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// FindMethod consults this class's own method table, then recurses into
// the superclass chain on a miss.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Instance is a class instance: a back-reference to its class and a
// mutable field map. Grounded on objects/struct.go's
// GoMixObjectInstance (Struct/Fields shape).
type Instance struct {
	Class  *Class
	Fields map[string]values.Value
}

// NewInstance creates a zero-field instance of c.
func NewInstance(c *Class) *Instance {
	return &Instance{Class: c, Fields: make(map[string]values.Value)}
}

func (i *Instance) Type() values.Type { return values.ObjectType }
func (i *Instance) String() string    { return fmt.Sprintf("'%s' instance", i.Class.Name) }

// Get reads a field first, then a bound method, failing if neither
// exists. Spec.md §4.5: "runtime error 'Undefined property' if neither."
func (i *Instance) Get(name string) (values.Value, error) {
	if v, ok := i.Fields[name]; ok {
		return v, nil
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return m.Bind(i), nil
	}
	return nil, fmt.Errorf("Undefined property '%s'.", name)
}

// Set always installs into the field map, creating the field on first
// write.
func (i *Instance) Set(name string, v values.Value) {
	i.Fields[name] = v
}
