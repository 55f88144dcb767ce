/*
File: loxscript/diag/diag.go

Package diag centralizes the interpreter's diagnostic state and
formatting. The lexer, parser, resolver, and interpreter all report
through a single *Reporter so that the two sticky flags the driver
checks at each pipeline boundary - HadError and HadRuntimeError - are
always accurate, and so that error/warning text is formatted exactly
once in one place.
*/
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errColor  = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
)

// Reporter accumulates the two sticky error flags the driver consults
// between pipeline stages and writes formatted diagnostics to Out.
//
// HadError gates whether the parser's output is forwarded to the
// resolver, and the resolver's output to the interpreter. HadRuntimeError
// is sticky for the lifetime of a single file-mode run and determines the
// process exit code; it is never consulted in REPL mode.
type Reporter struct {
	Out             io.Writer
	HadError        bool
	HadRuntimeError bool
}

// New creates a Reporter writing to w.
func New(w io.Writer) *Reporter {
	return &Reporter{Out: w}
}

// ResetTurn clears HadError at the end of a REPL turn. HadRuntimeError is
// untouched - the REPL never inspects it - but file-mode drivers should
// not call ResetTurn between statements of the same run.
func (r *Reporter) ResetTurn() {
	r.HadError = false
}

// Error reports a lexical, syntax, or resolution error at the given
// source position, formatted per the "[line L : col C] Error <where>:
// <message>" convention.
func (r *Reporter) Error(line, col int, where, message string) {
	r.HadError = true
	errColor.Fprintf(r.Out, "[line %d : col %d] Error %s: %s\n", line, col, where, message)
}

// Warning reports a non-fatal diagnostic (currently only the resolver's
// unused-local warning). Warnings never set HadError.
func (r *Reporter) Warning(line, col int, where, message string) {
	warnColor.Fprintf(r.Out, "[line %d : col %d] Warning %s: %s\n", line, col, where, message)
}

// RuntimeError reports an error raised during evaluation, formatted per
// the "<message>\n[line L]" convention, and marks HadRuntimeError.
func (r *Reporter) RuntimeError(line int, message string) {
	r.HadRuntimeError = true
	errColor.Fprintf(r.Out, "%s\n[line %d]\n", message, line)
}

// AtToken renders the "<where>" clause of a parse/resolution diagnostic:
// "at end" for an EOF-like token, otherwise "at '<lexeme>'".
func AtToken(isEOF bool, lexeme string) string {
	if isEOF {
		return "at end"
	}
	return fmt.Sprintf("at '%s'", lexeme)
}
