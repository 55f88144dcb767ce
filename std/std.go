/*
File: loxscript/std/std.go

Package std defines the three native functions spec.md §4.5 names -
clock, len, type - plus the PI global, as values.Value-returning Go
closures wrapped in function.NativeFunction. Grounded on
std/builtins.go's Builtin/CallbackFunc registration pattern and
std/time.go's wall-clock native.
*/
package std

import (
	"fmt"
	"time"

	"github.com/akashmaji946/loxscript/function"
	"github.com/akashmaji946/loxscript/values"
)

// Globals returns the name->value bindings that belong in the
// interpreter's global environment before any user code runs: the three
// native functions and the PI constant.
func Globals() map[string]values.Value {
	return map[string]values.Value{
		"clock": &function.NativeFunction{Name: "clock", Arty: 0, Fn: clock},
		"len":   &function.NativeFunction{Name: "len", Arty: 1, Fn: length},
		"type":  &function.NativeFunction{Name: "type", Arty: 1, Fn: typeOf},
		"PI":    values.Number{Value: 3.141592653589793},
	}
}

// clock returns the current wall-clock time in milliseconds since epoch.
func clock(args []values.Value) (values.Value, error) {
	return values.Number{Value: float64(time.Now().UnixMilli())}, nil
}

// length requires a string argument and returns its character count.
func length(args []values.Value) (values.Value, error) {
	s, ok := args[0].(values.String)
	if !ok {
		return nil, fmt.Errorf("len() expects a string argument.")
	}
	return values.Number{Value: float64(len([]rune(s.Value)))}, nil
}

// typeOf returns the value's primitive tag, per spec.md §4.5: "nil" for
// nil, "class" for classes, "function" for non-class callables, "object"
// for instances, otherwise the lowercase primitive tag.
func typeOf(args []values.Value) (values.Value, error) {
	v := args[0]
	switch v.(type) {
	case values.Nil:
		return values.String{Value: "nil"}, nil
	case *function.Class:
		return values.String{Value: "class"}, nil
	case *function.Instance:
		return values.String{Value: "object"}, nil
	case *function.Function, *function.NativeFunction:
		return values.String{Value: "function"}, nil
	default:
		return values.String{Value: string(v.Type())}, nil
	}
}
