/*
File: loxscript/interpreter/signal.go

Non-local control flow is modeled as an explicit value returned from
execute, rather than a host exception, per spec.md §9's REDESIGN FLAGS
("Control-flow-by-exception -> explicit signals"). executeBlock and the
loop/call boundaries collapse a ctrlSignal the same way eval/eval_loops.go
collapses the teacher's panic-based break/return today, just without the
panic/recover machinery.
*/
package interpreter

import (
	"github.com/akashmaji946/loxscript/lexer"
	"github.com/akashmaji946/loxscript/values"
)

type signalKind int

const (
	signalNone signalKind = iota
	signalReturn
	signalBreak
)

// ctrlSignal is the non-error half of a statement's outcome: either
// "keep going" (signalNone), "unwind to the nearest loop" (signalBreak,
// carrying the keyword for error position), or "unwind to the nearest
// call" (signalReturn, carrying the returned value).
type ctrlSignal struct {
	kind    signalKind
	value   values.Value
	keyword lexer.Token
}

var normalSignal = ctrlSignal{kind: signalNone}

func returnSignal(v values.Value) ctrlSignal {
	return ctrlSignal{kind: signalReturn, value: v}
}

func breakSignal(keyword lexer.Token) ctrlSignal {
	return ctrlSignal{kind: signalBreak, keyword: keyword}
}

// RuntimeError is the interpreter's one true error type: a message paired
// with the token whose line drives the "<message>\n[line L]" diagnostic
// format from spec.md §6. It is kept distinct from ctrlSignal because it
// propagates like a normal Go error (and must short-circuit evaluation),
// whereas Return/Break are ordinary control-flow outcomes.
type RuntimeError struct {
	Token   lexer.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }
