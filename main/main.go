/*
File: loxscript/main/main.go

Package main is the loxscript CLI entry point: `lox [path]`. Zero
arguments starts the REPL; one argument runs a file; more is a usage
error. Exit codes follow spec.md §6 exactly: 0 success, 65 syntax/static
error, 70 runtime error, 69 CLI misuse.

Grounded on main/main.go's argument dispatch (flag check, then file-mode
vs REPL-mode branch) and its os.ReadFile-based runFile, trimmed of the
teacher's --help/--version/server-mode branches (server mode is explicit
REPL-shell machinery, out of this module's scope per spec.md §1).
*/
package main

import (
	"fmt"
	"os"

	"github.com/akashmaji946/loxscript/diag"
	"github.com/akashmaji946/loxscript/file"
	"github.com/akashmaji946/loxscript/interpreter"
	"github.com/akashmaji946/loxscript/lexer"
	"github.com/akashmaji946/loxscript/parser"
	"github.com/akashmaji946/loxscript/repl"
	"github.com/akashmaji946/loxscript/resolver"
)

const (
	exitOK       = 0
	exitUsage    = 69
	exitDataErr  = 65
	exitSoftware = 70
)

func main() {
	switch len(os.Args) {
	case 1:
		repl.New(os.Stdout).Start(os.Stdout)
	case 2:
		os.Exit(runFile(os.Args[1]))
	default:
		fmt.Println("Usage: lox [script]")
		os.Exit(exitUsage)
	}
}

// runFile executes a loxscript source file and returns the process exit
// code per spec.md §6.
func runFile(path string) int {
	src, err := file.Read(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not read file '%s': %v\n", path, err)
		return exitUsage
	}

	reporter := diag.New(os.Stdout)

	toks := lexer.New(src, reporter).ScanTokens()
	stmts := parser.New(toks, reporter).Parse()
	if reporter.HadError {
		return exitDataErr
	}

	resMap := resolver.New(reporter).Resolve(stmts)
	if reporter.HadError {
		return exitDataErr
	}

	in := interpreter.New(reporter, os.Stdout)
	in.Interpret(stmts, resMap)
	if reporter.HadRuntimeError {
		return exitSoftware
	}
	return exitOK
}
