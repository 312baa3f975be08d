package ops

import (
	"math"

	"mathcli/internal/catalog"
	"mathcli/internal/operror"
	"mathcli/internal/value"
)

func registerArithmetic(r *catalog.Registry) {
	cat := catalog.CategoryArithmetic

	r.MustRegister(binary("add", "a", "b", cat, "Add two numbers: add 3 4 -> 7",
		func(a, b float64) (value.Value, error) { return value.Number(a + b), nil }))

	r.MustRegister(binary("subtract", "a", "b", cat, "Subtract b from a: subtract 10 4 -> 6",
		func(a, b float64) (value.Value, error) { return value.Number(a - b), nil }))

	r.MustRegister(binary("multiply", "a", "b", cat, "Multiply two numbers: multiply 6 7 -> 42",
		func(a, b float64) (value.Value, error) { return value.Number(a * b), nil }))

	r.MustRegister(binary("divide", "a", "b", cat, "Divide a by b: divide 10 4 -> 2.5",
		func(a, b float64) (value.Value, error) {
			if b == 0 {
				return value.Unit(), operror.DivisionByZero()
			}
			return value.Number(a / b), nil
		}))

	r.MustRegister(binary("power", "base", "exponent", cat, "Raise base to exponent: power 2 10 -> 1024",
		func(a, b float64) (value.Value, error) {
			res := math.Pow(a, b)
			if math.IsNaN(res) || math.IsInf(res, 0) {
				return value.Unit(), operror.InvalidValue("power result out of range")
			}
			return value.Number(res), nil
		}))

	r.MustRegister(unary("sqrt", "x", cat, "Square root: sqrt 16 -> 4",
		func(x float64) (value.Value, error) {
			if x < 0 {
				return value.Unit(), operror.NegativeSquareRoot()
			}
			return value.Number(math.Sqrt(x)), nil
		}))

	r.MustRegister(numUnary("abs", "x", cat, "Absolute value: abs -5 -> 5", math.Abs))
	r.MustRegister(numUnary("negate", "x", cat, "Negate: negate 5 -> -5", func(x float64) float64 { return -x }))
	r.MustRegister(numUnary("ceil", "x", cat, "Ceiling, smallest integer >= x: ceil 2.1 -> 3", math.Ceil))
	r.MustRegister(numUnary("floor", "x", cat, "Floor, largest integer <= x: floor 2.9 -> 2", math.Floor))
	r.MustRegister(numUnary("trunc", "x", cat, "Truncate fractional part: trunc 2.9 -> 2", math.Trunc))
	r.MustRegister(numUnary("exp", "x", cat, "e raised to x: exp 1 -> 2.718...", math.Exp))

	r.MustRegister(&catalog.Descriptor{
		Name:       "round",
		Parameters: []string{"x", "digits"},
		Optional:   1,
		Category:   cat,
		Help:       "Round x to digits decimal places: round 3.14159 2 -> 3.14",
		Capability: func(args []value.Value) (value.Value, error) {
			x, err := value.AsNumber(args[0], "x")
			if err != nil {
				return value.Unit(), err
			}
			var digits int64
			if len(args) > 1 {
				digits, err = value.AsInteger(args[1], "digits")
				if err != nil {
					return value.Unit(), err
				}
			}
			scale := math.Pow(10, float64(digits))
			return value.Number(math.Round(x*scale) / scale), nil
		},
	})

	r.MustRegister(binary("mod", "a", "b", cat, "Remainder of a divided by b: mod 10 3 -> 1",
		func(a, b float64) (value.Value, error) {
			if b == 0 {
				return value.Unit(), operror.DivisionByZero()
			}
			return value.Number(math.Mod(a, b)), nil
		}))

	r.MustRegister(binary("remainder", "a", "b", cat, "IEEE remainder of a divided by b: remainder 10 3 -> 1",
		func(a, b float64) (value.Value, error) {
			if b == 0 {
				return value.Unit(), operror.DivisionByZero()
			}
			return value.Number(math.Remainder(a, b)), nil
		}))

	r.MustRegister(unary("reciprocal", "x", cat, "1 divided by x: reciprocal 4 -> 0.25",
		func(x float64) (value.Value, error) {
			if x == 0 {
				return value.Unit(), operror.DivisionByZero()
			}
			return value.Number(1 / x), nil
		}))

	r.MustRegister(&catalog.Descriptor{
		Name:       "log",
		Parameters: []string{"x", "base"},
		Optional:   1,
		Category:   catalog.CategoryAlgebra,
		Help:       "Logarithm of x, natural or in the given base: log 8 2 -> 3",
		Capability: func(args []value.Value) (value.Value, error) {
			x, err := value.AsNumber(args[0], "x")
			if err != nil {
				return value.Unit(), err
			}
			if x <= 0 {
				return value.Unit(), operror.InvalidValue("logarithm requires a positive argument")
			}
			if len(args) == 1 {
				return value.Number(math.Log(x)), nil
			}
			base, err := value.AsNumber(args[1], "base")
			if err != nil {
				return value.Unit(), err
			}
			if base <= 0 || base == 1 {
				return value.Unit(), operror.InvalidValue("logarithm base must be positive and not 1")
			}
			return value.Number(math.Log(x) / math.Log(base)), nil
		},
	})

	r.MustRegister(unary("log10", "x", catalog.CategoryAlgebra, "Base-10 logarithm: log10 1000 -> 3",
		func(x float64) (value.Value, error) {
			if x <= 0 {
				return value.Unit(), operror.InvalidValue("logarithm requires a positive argument")
			}
			return value.Number(math.Log10(x)), nil
		}))

	r.MustRegister(unary("log2", "x", catalog.CategoryAlgebra, "Base-2 logarithm: log2 8 -> 3",
		func(x float64) (value.Value, error) {
			if x <= 0 {
				return value.Unit(), operror.InvalidValue("logarithm requires a positive argument")
			}
			return value.Number(math.Log2(x)), nil
		}))

	r.MustRegister(&catalog.Descriptor{
		Name:       "nth_root",
		Parameters: []string{"x", "n"},
		Category:   catalog.CategoryAlgebra,
		Help:       "nth root of x: nth_root 27 3 -> 3",
		Capability: func(args []value.Value) (value.Value, error) {
			x, err := value.AsNumber(args[0], "x")
			if err != nil {
				return value.Unit(), err
			}
			n, err := value.AsNumber(args[1], "n")
			if err != nil {
				return value.Unit(), err
			}
			if n == 0 {
				return value.Unit(), operror.DivisionByZero()
			}
			if x < 0 {
				return value.Unit(), operror.NegativeSquareRoot()
			}
			return value.Number(math.Pow(x, 1/n)), nil
		},
	})
}
