/*
File: loxscript/interpreter/interpreter_test.go
*/
package interpreter

import (
	"bytes"
	"testing"

	"github.com/akashmaji946/loxscript/diag"
	"github.com/akashmaji946/loxscript/lexer"
	"github.com/akashmaji946/loxscript/parser"
	"github.com/akashmaji946/loxscript/resolver"
	"github.com/stretchr/testify/assert"
)

// run drives the full pipeline (lexer -> parser -> resolver ->
// interpreter) over src and returns everything written to standard
// output plus the reporter, so tests can assert both behavior and
// diagnostics in one place.
func run(t *testing.T, src string) (string, *diag.Reporter) {
	t.Helper()
	var out bytes.Buffer
	r := diag.New(&out)
	toks := lexer.New(src, r).ScanTokens()
	stmts := parser.New(toks, r).Parse()
	if r.HadError {
		return out.String(), r
	}
	resMap := resolver.New(r).Resolve(stmts)
	if r.HadError {
		return out.String(), r
	}
	New(r, &out).Interpret(stmts, resMap)
	return out.String(), r
}

func TestInterpret_S1_Closures(t *testing.T) {
	out, r := run(t, `
		fn makeCounter() {
			let i = 0;
			fn count() { i = i + 1; echo i; }
			return count;
		}
		let c = makeCounter();
		c(); c(); c();
	`)
	assert.False(t, r.HadRuntimeError)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestInterpret_S2_InheritanceAndSuper(t *testing.T) {
	out, r := run(t, `
		class A { greet() { echo "A"; } }
		class B < A { greet() { super.greet(); echo "B"; } }
		B().greet();
	`)
	assert.False(t, r.HadRuntimeError)
	assert.Equal(t, "A\nB\n", out)
}

func TestInterpret_S3_TernaryAndShortCircuit(t *testing.T) {
	out, r := run(t, `
		echo (1 == 1 ? "yes" : "no");
		let x = nil or "fallback";
		echo x;
	`)
	assert.False(t, r.HadRuntimeError)
	assert.Equal(t, "yes\nfallback\n", out)
}

func TestInterpret_S4_BreakAndRuntimeErrorContinuation(t *testing.T) {
	out, r := run(t, `
		let i = 0;
		while (true) { if (i == 3) break; i = i + 1; }
		echo i;
		echo 1 / 0;
		echo "after";
	`)
	assert.True(t, r.HadRuntimeError)
	assert.Contains(t, out, "3\n")
	assert.Contains(t, out, "Division by zero is not allowed.")
	assert.Contains(t, out, "after\n")
}

func TestInterpret_BreakEscapingFunctionCallIsRuntimeError(t *testing.T) {
	out, r := run(t, `
		fn f() { break; }
		f();
		echo "after";
	`)
	assert.True(t, r.HadRuntimeError)
	assert.Contains(t, out, "after\n")
}

func TestInterpret_S5_InitializerSemantics(t *testing.T) {
	out, r := run(t, `
		class Box { init(v) { this.v = v; } }
		let b = Box(42);
		echo b.v;
		echo type(b);
	`)
	assert.False(t, r.HadRuntimeError)
	assert.Equal(t, "42\nobject\n", out)
}

func TestInterpret_S6_UnusedLocalWarningDoesNotFailRun(t *testing.T) {
	out, r := run(t, `
		fn f() { let unused = 1; }
		f();
	`)
	assert.False(t, r.HadError)
	assert.False(t, r.HadRuntimeError)
	assert.Contains(t, out, "unused")
}

func TestInterpret_DivisionByZero(t *testing.T) {
	_, r := run(t, `echo 1 / 0;`)
	assert.True(t, r.HadRuntimeError)
}

func TestInterpret_ArityMismatchErrorsAtParen(t *testing.T) {
	_, r := run(t, `fn f(a, b) { return a + b; } f(1);`)
	assert.True(t, r.HadRuntimeError)
}

func TestInterpret_SuperclassMustBeClass(t *testing.T) {
	_, r := run(t, `let NotAClass = 1; class C < NotAClass {}`)
	assert.True(t, r.HadRuntimeError)
}

func TestInterpret_StringNumberConcatenationStringifiesBoth(t *testing.T) {
	out, r := run(t, `echo "n=" + 3;`)
	assert.False(t, r.HadRuntimeError)
	assert.Equal(t, "n=3\n", out)
}

func TestInterpret_NumericAdditionStillAdds(t *testing.T) {
	out, r := run(t, `echo 1 + 2;`)
	assert.False(t, r.HadRuntimeError)
	assert.Equal(t, "3\n", out)
}

func TestInterpret_BooleanPlusNumberErrors(t *testing.T) {
	_, r := run(t, `echo true + 1;`)
	assert.True(t, r.HadRuntimeError)
}

func TestInterpret_AnonymousFunctionExpression(t *testing.T) {
	out, r := run(t, `
		let square = fn (x) { return x * x; };
		echo square(5);
	`)
	assert.False(t, r.HadRuntimeError)
	assert.Equal(t, "25\n", out)
}

func TestInterpret_ShortCircuitOrSkipsRightSideSideEffect(t *testing.T) {
	out, r := run(t, `
		let calls = 0;
		fn sideEffect() { calls = calls + 1; return true; }
		let x = true or sideEffect();
		echo calls;
	`)
	assert.False(t, r.HadRuntimeError)
	assert.Equal(t, "0\n", out)
}

func TestInterpret_ShortCircuitAndSkipsRightSideSideEffect(t *testing.T) {
	out, r := run(t, `
		let calls = 0;
		fn sideEffect() { calls = calls + 1; return true; }
		let x = false and sideEffect();
		echo calls;
	`)
	assert.False(t, r.HadRuntimeError)
	assert.Equal(t, "0\n", out)
}

func TestInterpret_ForLoopDesugaring(t *testing.T) {
	out, r := run(t, `
		for (let i = 0; i < 3; i = i + 1) echo i;
	`)
	assert.False(t, r.HadRuntimeError)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpret_UndefinedGlobalIsRuntimeError(t *testing.T) {
	_, r := run(t, `echo undefinedThing;`)
	assert.True(t, r.HadRuntimeError)
}

func TestInterpret_ClassToStringIsItsName(t *testing.T) {
	out, r := run(t, `class Foo {} echo Foo;`)
	assert.False(t, r.HadRuntimeError)
	assert.Equal(t, "Foo\n", out)
}

func TestInterpret_InstanceToString(t *testing.T) {
	out, r := run(t, `class Foo {} echo Foo();`)
	assert.False(t, r.HadRuntimeError)
	assert.Equal(t, "'Foo' instance\n", out)
}

func TestInterpret_NativeClockReturnsNumber(t *testing.T) {
	out, r := run(t, `echo type(clock());`)
	assert.False(t, r.HadRuntimeError)
	assert.Equal(t, "number\n", out)
}

func TestInterpret_LenNative(t *testing.T) {
	out, r := run(t, `echo len("hello");`)
	assert.False(t, r.HadRuntimeError)
	assert.Equal(t, "5\n", out)
}

func TestInterpret_EnvironmentRestoredAfterBlockError(t *testing.T) {
	out, r := run(t, `
		let x = "outer";
		{
			let x = "inner";
			echo 1 / 0;
		}
		echo x;
	`)
	assert.True(t, r.HadRuntimeError)
	assert.Contains(t, out, "outer\n")
}
