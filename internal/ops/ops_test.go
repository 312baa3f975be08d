package ops

import (
	"errors"
	"math"
	"testing"

	"mathcli/internal/catalog"
	"mathcli/internal/config"
	"mathcli/internal/engine"
	"mathcli/internal/funcs"
	"mathcli/internal/operror"
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
	RegisterAll(reg, eng, config.DefaultLimits())
	return eng
}

// expectNum runs line and checks the numeric result within tolerance.
func expectNum(t *testing.T, eng *engine.Engine, line string, want float64) {
	t.Helper()
	v, err := eng.Execute(line)
	if err != nil {
		t.Fatalf("Execute(%q): %v", line, err)
	}
	var got float64
	switch v.Kind() {
	case value.KindNumber:
		got = v.Num()
	case value.KindInteger:
		got = float64(v.Int())
	default:
		t.Fatalf("Execute(%q) = %v (%s), want a numeric result", line, v, v.Kind())
	}
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Execute(%q) = %v, want %v", line, got, want)
	}
}

func expectErr(t *testing.T, eng *engine.Engine, line string, sentinel error) {
	t.Helper()
	_, err := eng.Execute(line)
	if !errors.Is(err, sentinel) {
		t.Fatalf("Execute(%q) = %v, want %v", line, err, sentinel)
	}
}

func expectFormat(t *testing.T, eng *engine.Engine, line, want string) {
	t.Helper()
	v, err := eng.Execute(line)
	if err != nil {
		t.Fatalf("Execute(%q): %v", line, err)
	}
	if got := v.Format(); got != want {
		t.Fatalf("Execute(%q) = %q, want %q", line, got, want)
	}
}

func TestArithmeticOps(t *testing.T) {
	eng := newTestEngine(t)

	expectNum(t, eng, "subtract 10 4", 6)
	expectNum(t, eng, "power 2 10", 1024)
	expectNum(t, eng, "sqrt 16", 4)
	expectNum(t, eng, "abs -3.5", 3.5)
	expectNum(t, eng, "mod 10 3", 1)
	expectNum(t, eng, "nth_root 27 3", 3)
	expectNum(t, eng, "log 8 2", 3)

	expectErr(t, eng, "sqrt -1", operror.ErrNegativeSquareRoot)
	expectErr(t, eng, "reciprocal 0", operror.ErrDivisionByZero)
	expectErr(t, eng, "mod 5 0", operror.ErrDivisionByZero)
}

func TestTrigOps(t *testing.T) {
	eng := newTestEngine(t)

	expectNum(t, eng, "sin 0", 0)
	expectNum(t, eng, "cos 0", 1)
	expectNum(t, eng, "atan2 1 1", math.Pi/4)
	expectNum(t, eng, "to_degrees 3.141592653589793", 180)
	expectNum(t, eng, "hypot 3 4", 5)

	expectErr(t, eng, "asin 2", operror.ErrInvalidValue)
	expectErr(t, eng, "acosh 0.5", operror.ErrInvalidValue)
	expectErr(t, eng, "atanh 1", operror.ErrInvalidValue)
}

func TestNumberTheoryOps(t *testing.T) {
	eng := newTestEngine(t)

	expectFormat(t, eng, "is_prime 17", "true")
	expectFormat(t, eng, "is_prime 1", "false")
	expectNum(t, eng, "next_prime 10", 11)
	expectNum(t, eng, "nth_prime 4", 7)
	expectNum(t, eng, "prime_count 10", 4)
	expectFormat(t, eng, "prime_factors 12", "[2, 2, 3]")
	expectFormat(t, eng, "divisors 28", "[1, 2, 4, 7, 14, 28]")
	expectNum(t, eng, "gcd 12 18", 6)
	expectNum(t, eng, "lcm 4 6", 12)
	expectNum(t, eng, "mod_power 2 10 1000", 24)
	expectNum(t, eng, "mod_inverse 3 11", 4)
	expectNum(t, eng, "euler_phi 12", 4)
	expectNum(t, eng, "factorial 5", 120)
	expectNum(t, eng, "fibonacci 10", 55)
	expectNum(t, eng, "digit_sum 1234", 10)
	expectNum(t, eng, "reverse_number 123", 321)
	expectFormat(t, eng, "is_perfect_square 49", "true")
	expectFormat(t, eng, "is_coprime 8 15", "true")
	expectNum(t, eng, "combinations 5 2", 10)
	expectNum(t, eng, "permutations 5 2", 20)

	expectErr(t, eng, "mod_inverse 2 4", operror.ErrInvalidValue)
	expectErr(t, eng, "factorial -1", operror.ErrInvalidValue)
}

func TestSequenceOps(t *testing.T) {
	eng := newTestEngine(t)

	expectFormat(t, eng, "arithmetic_series 1 2 5", "[1, 3, 5, 7, 9]")
	expectFormat(t, eng, "geometric_series 1 2 5", "[1, 2, 4, 8, 16]")
	expectFormat(t, eng, "fibonacci_series 6", "[0, 1, 1, 2, 3, 5]")
	expectFormat(t, eng, "range 0 10 2", "[0, 2, 4, 6, 8]")

	expectErr(t, eng, "range 0 10 0", operror.ErrInvalidValue)
}

func TestStatisticsOps(t *testing.T) {
	eng := newTestEngine(t)

	expectNum(t, eng, "mean 1 2 3", 2)
	expectNum(t, eng, "median 1 3 2", 2)
	expectNum(t, eng, "median 1 2 3 4", 2.5)
	expectNum(t, eng, "mode 1 2 2 3", 2)
	// Values closer than the comparison tolerance group together.
	expectNum(t, eng, "mode 1 1.00000000000001 2", 1)
	expectNum(t, eng, "stdev 2 4 4 4 5 5 7 9", 2)
	expectNum(t, eng, "variance 1 2 3 4", 1.25)
	expectNum(t, eng, "sum 1 2 3", 6)
	expectNum(t, eng, "product 2 3 4", 24)
	expectNum(t, eng, "min 3 1 2", 1)
	expectNum(t, eng, "max 3 1 2", 3)
	expectNum(t, eng, "count 5 6 7", 3)
	expectNum(t, eng, "percentile 50 1 2 3 4", 2.5)
	expectNum(t, eng, "correlation [1,2,3] [2,4,6]", 1)
	expectNum(t, eng, "zscore 5 1 3 5 7 9", 0)

	// Sequence arguments flatten into the sample.
	expectNum(t, eng, "mean [1,2,3] 4", 2.5)

	expectErr(t, eng, "correlation [1,1] [2,3]", operror.ErrInvalidValue)
}

func TestComplexOps(t *testing.T) {
	eng := newTestEngine(t)

	expectFormat(t, eng, "complex 3 4", "3+4i")
	expectFormat(t, eng, "cadd 1+2i 3+4i", "4+6i")
	expectFormat(t, eng, "cmul 1+2i 3+4i", "-5+10i")
	expectFormat(t, eng, "conjugate 3+4i", "3-4i")
	expectNum(t, eng, "magnitude 3+4i", 5)
	expectNum(t, eng, "real_part 3+4i", 3)
	expectNum(t, eng, "imag_part 3+4i", 4)

	expectErr(t, eng, "cdiv 1+2i 0", operror.ErrDivisionByZero)
}

func TestMatrixOps(t *testing.T) {
	eng := newTestEngine(t)

	expectFormat(t, eng, "matrix 1,2;3,4", "[[1, 2], [3, 4]]")
	expectFormat(t, eng, "madd 1,2;3,4 5,6;7,8", "[[6, 8], [10, 12]]")
	expectFormat(t, eng, "mmul 1,2;3,4 5,6;7,8", "[[19, 22], [43, 50]]")
	expectFormat(t, eng, "transpose 1,2;3,4", "[[1, 3], [2, 4]]")
	expectNum(t, eng, "det 1,2;3,4", -2)
	expectNum(t, eng, "trace 1,2;3,4", 5)
	expectNum(t, eng, "mrank 1,2;2,4", 1)
	expectFormat(t, eng, "identity 2", "[[1, 0], [0, 1]]")

	expectErr(t, eng, "inverse 1,2;2,4", operror.ErrSingularMatrix)
	expectErr(t, eng, "mmul 1,2;3,4 1,2,3;4,5,6;7,8,9", operror.ErrMatrixDimensionMismatch)
	expectErr(t, eng, "madd 1,2;3,4 1,2,3;4,5,6", operror.ErrMatrixDimensionMismatch)
}

func TestMatrixInverse(t *testing.T) {
	eng := newTestEngine(t)

	v, err := eng.Execute("inverse 4,7;2,6")
	if err != nil {
		t.Fatalf("inverse: %v", err)
	}
	want := [][]float64{{0.6, -0.7}, {-0.2, 0.4}}
	got := v.Mat()
	for i := range want {
		for j := range want[i] {
			if math.Abs(got[i][j]-want[i][j]) > 1e-9 {
				t.Fatalf("inverse = %v, want %v", got, want)
			}
		}
	}
}

func TestCalculusOps(t *testing.T) {
	eng := newTestEngine(t)

	expectNum(t, eng, "polyval [1,0,-2] 3", 7)
	expectFormat(t, eng, "derivative [1,0,-2]", "[2, 0]")
	expectNum(t, eng, "derivative [1,0,-2] 3", 6)
	expectNum(t, eng, "integrate [1,0,0] 0 3", 9)
	expectNum(t, eng, "limit_at [1,0] 2", 2)

	expectErr(t, eng, "ode_solve [1] 0 0 1 1001", operror.ErrInvalidValue)
}

func TestGeometryOps(t *testing.T) {
	eng := newTestEngine(t)

	expectNum(t, eng, "circle_area 2", 4*math.Pi)
	expectNum(t, eng, "rectangle_area 3 4", 12)
	expectNum(t, eng, "triangle_area_sides 3 4 5", 6)
	expectNum(t, eng, "distance 0 0 3 4", 5)
	expectFormat(t, eng, "midpoint 0 0 4 6", "[2, 3]")
	expectNum(t, eng, "slope 0 0 2 4", 2)

	expectErr(t, eng, "circle_area -1", operror.ErrInvalidValue)
	expectErr(t, eng, "triangle_area_sides 1 1 5", operror.ErrInvalidValue)
	expectErr(t, eng, "slope 1 1 1 5", operror.ErrInvalidValue)
}

func TestConversionOps(t *testing.T) {
	eng := newTestEngine(t)

	expectNum(t, eng, "celsius_to_fahrenheit 100", 212)
	expectNum(t, eng, "fahrenheit_to_celsius 212", 100)
	expectFormat(t, eng, "to_binary 10", "1010")
	expectNum(t, eng, "from_binary 1010", 10)
	expectFormat(t, eng, "to_hex 255", "ff")
	expectNum(t, eng, "from_hex ff", 255)
	expectFormat(t, eng, "to_roman 1987", "MCMLXXXVII")
	expectNum(t, eng, "from_roman MCMLXXXVII", 1987)

	expectErr(t, eng, "to_roman 4000", operror.ErrInvalidValue)
	expectErr(t, eng, "kelvin_to_celsius -1", operror.ErrInvalidValue)
}

func TestConstants(t *testing.T) {
	eng := newTestEngine(t)

	expectNum(t, eng, "pi", math.Pi)
	expectNum(t, eng, "e", math.E)
	expectNum(t, eng, "tau", 2*math.Pi)
}

func TestControlFlowOps(t *testing.T) {
	eng := newTestEngine(t)

	// Tolerance-based equality: a nanoscopic difference still compares equal.
	expectFormat(t, eng, "eq 1 1.00000000000001", "true")
	expectFormat(t, eng, "eq 1 2", "false")
	expectFormat(t, eng, "gt 2 1", "true")
	expectFormat(t, eng, "lte 2 2", "true")
	expectFormat(t, eng, "and true false", "false")
	expectFormat(t, eng, "or true false", "true")
	expectFormat(t, eng, "not true", "false")
	expectFormat(t, eng, "if true 1 2", "1")
	expectFormat(t, eng, "if false 1 2", "2")
	expectFormat(t, eng, "is_number 4.5", "true")
	expectFormat(t, eng, "is_number banana", "false")
	expectFormat(t, eng, "is_bool true", "true")
	expectFormat(t, eng, "is_string hello", "true")
	expectFormat(t, eng, "is_string 4", "false")
}

func TestSetStoresTypedValues(t *testing.T) {
	eng := newTestEngine(t)

	cases := []struct {
		set  string
		get  string
		kind value.Kind
	}{
		{"set radius 4", "get radius", value.KindNumber},
		{"set flag true", "get flag", value.KindBoolean},
		{"set label hello", "get label", value.KindText},
	}
	for _, tc := range cases {
		if _, err := eng.Execute(tc.set); err != nil {
			t.Fatalf("Execute(%q): %v", tc.set, err)
		}
		v, err := eng.Execute(tc.get)
		if err != nil {
			t.Fatalf("Execute(%q): %v", tc.get, err)
		}
		if v.Kind() != tc.kind {
			t.Errorf("%s stored as %s, want %s", tc.set, v.Kind(), tc.kind)
		}
	}

	// Typed storage means the value arithmetic ops see is numeric.
	expectNum(t, eng, "multiply $radius 2", 8)
}

func TestPersistStoresAndPromotes(t *testing.T) {
	eng := newTestEngine(t)

	// Two-argument form stores a typed value directly in the persistent tier.
	v, err := eng.Execute("persist tax_rate 0.2")
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	if v.Kind() != value.KindNumber || v.Num() != 0.2 {
		t.Fatalf("persist tax_rate 0.2 = %v (%s), want Number(0.2)", v, v.Kind())
	}
	expectNum(t, eng, "get tax_rate", 0.2)

	// One-argument form promotes an existing scoped variable.
	expectNum(t, eng, "set radius 4", 4)
	if _, err := eng.Execute("persist radius"); err != nil {
		t.Fatalf("persist radius: %v", err)
	}

	expectErr(t, eng, "persist nothing", operror.ErrVariableNotFound)
}

func TestClearVarsKeepsPersistentByDefault(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.Execute("persist tax_rate 0.2"); err != nil {
		t.Fatalf("persist: %v", err)
	}
	expectNum(t, eng, "set radius 4", 4)

	if _, err := eng.Execute("clear_vars"); err != nil {
		t.Fatalf("clear_vars: %v", err)
	}
	expectErr(t, eng, "get radius", operror.ErrVariableNotFound)
	expectNum(t, eng, "get tax_rate", 0.2)

	if _, err := eng.Execute("clear_vars true"); err != nil {
		t.Fatalf("clear_vars true: %v", err)
	}
	expectErr(t, eng, "get tax_rate", operror.ErrVariableNotFound)
}

func TestIntrospectionOps(t *testing.T) {
	eng := newTestEngine(t)

	v, err := eng.Execute("search divisors")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if v.Kind() != value.KindText || v.Str() == "" {
		t.Fatalf("search divisors = %v", v)
	}

	if _, err := eng.Execute("ops number_theory"); err != nil {
		t.Fatalf("ops number_theory: %v", err)
	}
	expectErr(t, eng, "ops bogus_category", operror.ErrInvalidValue)

	if _, err := eng.Execute("help divisors"); err != nil {
		t.Fatalf("help divisors: %v", err)
	}
	expectErr(t, eng, "help frobnicate", operror.ErrOperationNotFound)
}
