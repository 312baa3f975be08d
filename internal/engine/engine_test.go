package engine_test

import (
	"errors"
	"testing"

	"mathcli/internal/catalog"
	"mathcli/internal/config"
	"mathcli/internal/engine"
	"mathcli/internal/funcs"
	"mathcli/internal/operror"
	"mathcli/internal/ops"
	"mathcli/internal/persist"
	"mathcli/internal/session"
	"mathcli/internal/value"
	"mathcli/internal/vars"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	port := persist.NewMemoryStore()
	store := vars.NewStore(port, nil)
	fnReg, err := funcs.NewRegistry(port, nil)
	if err != nil {
		t.Fatalf("funcs.NewRegistry: %v", err)
	}
	sessions, err := session.NewManager(port, store, nil)
	if err != nil {
		t.Fatalf("session.NewManager: %v", err)
	}

	reg := catalog.NewRegistry()
	eng := engine.New(reg, store, fnReg, sessions)
	ops.RegisterAll(reg, eng, config.DefaultLimits())
	return eng
}

func run(t *testing.T, eng *engine.Engine, line string) value.Value {
	t.Helper()
	v, err := eng.Execute(line)
	if err != nil {
		t.Fatalf("Execute(%q): %v", line, err)
	}
	return v
}

func TestArithmetic(t *testing.T) {
	eng := newTestEngine(t)

	if v := run(t, eng, "add 2 3"); v.Num() != 5 {
		t.Errorf("add 2 3 = %v", v)
	}
	if v := run(t, eng, "divide 7 2"); v.Num() != 3.5 {
		t.Errorf("divide 7 2 = %v", v)
	}

	_, err := eng.Execute("divide 1 0")
	if !errors.Is(err, operror.ErrDivisionByZero) {
		t.Errorf("divide 1 0 = %v, want DivisionByZero", err)
	}
}

func TestVariableLifecycle(t *testing.T) {
	eng := newTestEngine(t)

	run(t, eng, "set radius 4")
	if v := run(t, eng, "get radius"); v.Kind() != value.KindNumber || v.Num() != 4 {
		t.Fatalf("get radius = %v (%s)", v, v.Kind())
	}

	if v := run(t, eng, "multiply $radius $radius"); v.Num() != 16 {
		t.Fatalf("multiply $radius $radius = %v", v)
	}

	run(t, eng, "unset radius")
	_, err := eng.Execute("get radius")
	if !errors.Is(err, operror.ErrVariableNotFound) {
		t.Fatalf("get after unset = %v, want VariableNotFound", err)
	}
}

func TestUnresolvedReferencePassesThrough(t *testing.T) {
	eng := newTestEngine(t)

	// $nothing resolves to the literal token, which then fails coercion.
	_, err := eng.Execute("add $nothing 1")
	if !errors.Is(err, operror.ErrInvalidArgumentType) {
		t.Fatalf("add $nothing 1 = %v, want InvalidArgumentType", err)
	}
}

func TestUnknownOperation(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Execute("frobnicate 1 2")
	if !errors.Is(err, operror.ErrOperationNotFound) {
		t.Fatalf("frobnicate = %v, want OperationNotFound", err)
	}
}

func TestEmptyCommand(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Execute("   ")
	if !errors.Is(err, operror.ErrParsingError) {
		t.Fatalf("blank line = %v, want ParsingError", err)
	}
}

func TestArityChecking(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Execute("add 1")
	if !errors.Is(err, operror.ErrInvalidArgumentCount) {
		t.Fatalf("add 1 = %v, want InvalidArgumentCount", err)
	}
	_, err = eng.Execute("add 1 2 3")
	if !errors.Is(err, operror.ErrInvalidArgumentCount) {
		t.Fatalf("add 1 2 3 = %v, want InvalidArgumentCount", err)
	}
}

func TestVariadicFloor(t *testing.T) {
	eng := newTestEngine(t)

	// stdev requires at least two values.
	_, err := eng.Execute("stdev 1")
	if !errors.Is(err, operror.ErrInvalidArgumentCount) {
		t.Fatalf("stdev 1 = %v, want InvalidArgumentCount", err)
	}
	if v := run(t, eng, "stdev 1 2"); v.Kind() != value.KindNumber {
		t.Fatalf("stdev 1 2 = %v", v)
	}
}

func TestOptionalTrailingParameter(t *testing.T) {
	eng := newTestEngine(t)

	if v := run(t, eng, "round 4.567"); v.Num() != 5 {
		t.Errorf("round 4.567 = %v", v)
	}
	if v := run(t, eng, "round 4.567 2"); v.Num() != 4.57 {
		t.Errorf("round 4.567 2 = %v", v)
	}
}

func TestDivisors(t *testing.T) {
	eng := newTestEngine(t)

	v := run(t, eng, "divisors 28")
	if v.Kind() != value.KindSequence {
		t.Fatalf("divisors 28 kind = %s", v.Kind())
	}
	want := []float64{1, 2, 4, 7, 14, 28}
	got := v.Seq()
	if len(got) != len(want) {
		t.Fatalf("divisors 28 = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("divisors 28 = %v, want %v", got, want)
		}
	}
}

func TestUserFunctionCall(t *testing.T) {
	eng := newTestEngine(t)

	run(t, eng, "def square x = multiply $x $x")
	if v := run(t, eng, "square 7"); v.Num() != 49 {
		t.Fatalf("square 7 = %v", v)
	}

	// Parameter bindings vanish after the call.
	_, err := eng.Execute("get x")
	if !errors.Is(err, operror.ErrVariableNotFound) {
		t.Fatalf("get x after call = %v, want VariableNotFound", err)
	}

	// Exact arity for user functions.
	_, err = eng.Execute("square 1 2")
	if !errors.Is(err, operror.ErrInvalidArgumentCount) {
		t.Fatalf("square 1 2 = %v, want InvalidArgumentCount", err)
	}
}

func TestUserFunctionShadowing(t *testing.T) {
	eng := newTestEngine(t)

	run(t, eng, "set x 100")
	run(t, eng, "def double x = add $x $x")
	if v := run(t, eng, "double 3"); v.Num() != 6 {
		t.Fatalf("double 3 = %v", v)
	}
	// Outer binding untouched by the call frame.
	if v := run(t, eng, "get x"); v.Num() != 100 {
		t.Fatalf("outer x = %v", v)
	}
}

func TestFunctionComposition(t *testing.T) {
	eng := newTestEngine(t)

	run(t, eng, "def square x = multiply $x $x")
	run(t, eng, "def quad x = square $x")
	// quad squares once, then the result flows back up.
	if v := run(t, eng, "quad 3"); v.Num() != 9 {
		t.Fatalf("quad 3 = %v", v)
	}
}

func TestRecursionDepthCap(t *testing.T) {
	eng := newTestEngine(t)

	run(t, eng, "def loop x = loop $x")
	_, err := eng.Execute("loop 1")
	if !errors.Is(err, operror.ErrExecutionError) {
		t.Fatalf("infinite recursion = %v, want ExecutionError", err)
	}
}

func TestImportedTextReparses(t *testing.T) {
	eng := newTestEngine(t)

	err := eng.Vars().ImportVariables(map[string]string{"a": "true", "n": "2.5"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if v := run(t, eng, "get a"); v.Kind() != value.KindBoolean || !v.Bool() {
		t.Fatalf("get a = %v (%s), want Boolean(true)", v, v.Kind())
	}
	if v := run(t, eng, "get n"); v.Kind() != value.KindNumber || v.Num() != 2.5 {
		t.Fatalf("get n = %v (%s), want Number(2.5)", v, v.Kind())
	}
}

func TestSafetyLimits(t *testing.T) {
	eng := newTestEngine(t)

	cases := []string{
		"factorial 171",
		"fibonacci 1001",
		"arithmetic_series 1 1 10001",
		"next_prime 999999",
	}
	for _, line := range cases {
		_, err := eng.Execute(line)
		if !errors.Is(err, operror.ErrInvalidValue) {
			t.Errorf("%q = %v, want InvalidValue", line, err)
		}
	}
}

func TestDescribeUsage(t *testing.T) {
	d := &catalog.Descriptor{
		Name:       "round",
		Parameters: []string{"x", "digits"},
		Optional:   1,
	}
	if got := engine.DescribeUsage(d); got != "round <x> [digits]" {
		t.Errorf("DescribeUsage = %q", got)
	}
}
