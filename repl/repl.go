/*
File: loxscript/repl/repl.go

Package repl implements the interactive Read-Eval-Print Loop described in
spec.md §6: prompt `[lox]>`, meta-commands beginning with `.`, persistent
interpreter/resolver state across turns, and per-turn had_error reset.

Grounded on repl/repl.go's readline-backed loop (history, colored
banner/output, panic recovery around each turn) and main/main.go's
banner/prompt constants, adapted to drive the lexer/parser/resolver/
interpreter pipeline instead of go-mix's single-pass eval.Evaluator, and
to dispatch `.`-prefixed lines as the meta-commands spec.md §6 names
instead of go-mix's `/exit` and `/scope`.
*/
package repl

import (
	"io"
	"strings"

	"github.com/akashmaji946/loxscript/diag"
	"github.com/akashmaji946/loxscript/file"
	"github.com/akashmaji946/loxscript/interpreter"
	"github.com/akashmaji946/loxscript/lexer"
	"github.com/akashmaji946/loxscript/parser"
	"github.com/akashmaji946/loxscript/printer"
	"github.com/akashmaji946/loxscript/resolver"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

const prompt = "[lox]> "

var (
	blueColor   = color.New(color.FgBlue)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
	yellowColor = color.New(color.FgYellow)
)

// Repl holds the state that persists across turns: the shared Reporter
// and Interpreter, plus the two debug-dump toggles.
type Repl struct {
	reporter  *diag.Reporter
	interp    *interpreter.Interpreter
	showAST   bool
	showSExpr bool
}

// New creates a Repl writing output and diagnostics to out.
func New(out io.Writer) *Repl {
	r := diag.New(out)
	in := interpreter.New(r, out)
	in.ReplMode = true
	return &Repl{reporter: r, interp: in}
}

func (rp *Repl) printBanner(out io.Writer) {
	blueColor.Fprintln(out, "----------------------------------------------------------------")
	greenColor.Fprintln(out, "loxscript")
	blueColor.Fprintln(out, "----------------------------------------------------------------")
	cyanColor.Fprintln(out, "Type loxscript code and press enter.")
	cyanColor.Fprintln(out, "Meta-commands: .exit  .ast  .expr  .env  .load <path>")
	blueColor.Fprintln(out, "----------------------------------------------------------------")
}

// Start runs the REPL loop until the user exits or input ends.
func (rp *Repl) Start(out io.Writer) {
	rp.printBanner(out)

	rl, err := readline.New(prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			out.Write([]byte("Good bye!\n"))
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rl.SaveHistory(line)

		if strings.HasPrefix(line, ".") {
			if !rp.metaCommand(out, line) {
				return
			}
			continue
		}

		rp.runTurn(out, line)
	}
}

// metaCommand handles a `.`-prefixed input line. It returns false when
// the REPL should stop.
func (rp *Repl) metaCommand(out io.Writer, line string) bool {
	switch {
	case line == ".exit":
		out.Write([]byte("Good bye!\n"))
		return false
	case line == ".ast":
		rp.showAST = !rp.showAST
		yellowColor.Fprintf(out, "AST dump: %v\n", rp.showAST)
	case line == ".expr":
		rp.showSExpr = !rp.showSExpr
		yellowColor.Fprintf(out, "S-expression print: %v\n", rp.showSExpr)
	case line == ".env":
		rp.dumpEnv(out)
	case strings.HasPrefix(line, ".load "):
		path := strings.TrimSpace(strings.TrimPrefix(line, ".load "))
		rp.loadFile(out, path)
	default:
		color.New(color.FgRed).Fprintf(out, "Unknown command '%s'\n", line)
	}
	return true
}

func (rp *Repl) dumpEnv(out io.Writer) {
	for name, v := range rp.interp.Globals.Snapshot() {
		yellowColor.Fprintf(out, "%s = %s\n", name, v.String())
	}
}

func (rp *Repl) loadFile(out io.Writer, path string) {
	src, err := file.Read(path)
	if err != nil {
		color.New(color.FgRed).Fprintf(out, "Could not read file '%s': %v\n", path, err)
		return
	}
	rp.runTurn(out, src)
}

// runTurn lexes, parses, resolves, and interprets one chunk of source,
// resetting had_error at the end per spec.md §6.
func (rp *Repl) runTurn(out io.Writer, src string) {
	defer rp.reporter.ResetTurn()

	toks := lexer.New(src, rp.reporter).ScanTokens()
	stmts := parser.New(toks, rp.reporter).Parse()
	if rp.reporter.HadError {
		return
	}

	if rp.showAST {
		out.Write([]byte(printer.Dump(stmts)))
	}
	if rp.showSExpr {
		yellowColor.Fprintln(out, printer.SExpr(stmts))
	}

	resMap := resolver.New(rp.reporter).Resolve(stmts)
	if rp.reporter.HadError {
		return
	}

	rp.interp.Interpret(stmts, resMap)
}
