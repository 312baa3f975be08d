package ops

import (
	"math"

	"mathcli/internal/catalog"
	"mathcli/internal/config"
	"mathcli/internal/operror"
	"mathcli/internal/value"
)

// polyEval evaluates a polynomial given coefficients in descending degree
// order, so [1, 0, -2] is x^2 - 2.
func polyEval(coeffs []float64, x float64) float64 {
	result := 0.0
	for _, c := range coeffs {
		result = result*x + c
	}
	return result
}

func registerCalculus(r *catalog.Registry, limits config.LimitsConfig) {
	cat := catalog.CategoryCalculus

	r.MustRegister(&catalog.Descriptor{
		Name:       "polyval",
		Parameters: []string{"coefficients", "x"},
		Category:   cat,
		Help:       "Evaluate polynomial with coefficients in descending degree: polyval [1,0,-2] 3 -> 7",
		Capability: func(args []value.Value) (value.Value, error) {
			coeffs, err := value.AsSequence(args[0], "coefficients")
			if err != nil {
				return value.Unit(), err
			}
			if len(coeffs) == 0 {
				return value.Unit(), operror.InvalidValue("polyval requires at least one coefficient")
			}
			x, err := value.AsNumber(args[1], "x")
			if err != nil {
				return value.Unit(), err
			}
			return value.Number(polyEval(coeffs, x)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "derivative",
		Parameters: []string{"coefficients", "x"},
		Optional:   1,
		Category:   cat,
		Help:       "Differentiate a polynomial; with x, evaluate it there: derivative [1,0,-2] -> [2, 0]",
		Capability: func(args []value.Value) (value.Value, error) {
			coeffs, err := value.AsSequence(args[0], "coefficients")
			if err != nil {
				return value.Unit(), err
			}
			if len(coeffs) == 0 {
				return value.Unit(), operror.InvalidValue("derivative requires at least one coefficient")
			}
			deriv := make([]float64, 0, len(coeffs))
			degree := len(coeffs) - 1
			for i, c := range coeffs[:len(coeffs)-1] {
				deriv = append(deriv, c*float64(degree-i))
			}
			if len(deriv) == 0 {
				deriv = []float64{0}
			}
			if len(args) == 2 {
				x, err := value.AsNumber(args[1], "x")
				if err != nil {
					return value.Unit(), err
				}
				return value.Number(polyEval(deriv, x)), nil
			}
			return value.Sequence(deriv), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "integrate",
		Parameters: []string{"coefficients", "lower", "upper"},
		Category:   cat,
		Help:       "Definite integral of a polynomial by Simpson's rule: integrate [1,0,0] 0 3 -> 9",
		Capability: func(args []value.Value) (value.Value, error) {
			coeffs, err := value.AsSequence(args[0], "coefficients")
			if err != nil {
				return value.Unit(), err
			}
			if len(coeffs) == 0 {
				return value.Unit(), operror.InvalidValue("integrate requires at least one coefficient")
			}
			lo, err := value.AsNumber(args[1], "lower")
			if err != nil {
				return value.Unit(), err
			}
			hi, err := value.AsNumber(args[2], "upper")
			if err != nil {
				return value.Unit(), err
			}
			return value.Number(simpson(func(x float64) float64 { return polyEval(coeffs, x) }, lo, hi, 1000)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "ode_solve",
		Parameters: []string{"coefficients", "y0", "x0", "x1", "steps"},
		Optional:   1,
		Category:   cat,
		Help:       "Euler's method for dy/dx = p(x): ode_solve [2,0] 0 0 3 -> 9",
		Capability: func(args []value.Value) (value.Value, error) {
			coeffs, err := value.AsSequence(args[0], "coefficients")
			if err != nil {
				return value.Unit(), err
			}
			if len(coeffs) == 0 {
				return value.Unit(), operror.InvalidValue("ode_solve requires at least one coefficient")
			}
			y0, err := value.AsNumber(args[1], "y0")
			if err != nil {
				return value.Unit(), err
			}
			x0, err := value.AsNumber(args[2], "x0")
			if err != nil {
				return value.Unit(), err
			}
			x1, err := value.AsNumber(args[3], "x1")
			if err != nil {
				return value.Unit(), err
			}
			steps := limits.ODEMaxSteps
			if len(args) == 5 {
				steps, err = value.AsInteger(args[4], "steps")
				if err != nil {
					return value.Unit(), err
				}
			}
			if steps < 1 {
				return value.Unit(), operror.InvalidValue("ode_solve requires steps >= 1")
			}
			if steps > limits.ODEMaxSteps {
				return value.Unit(), operror.InvalidValue("ode_solve step count %d exceeds limit %d", steps, limits.ODEMaxSteps)
			}
			h := (x1 - x0) / float64(steps)
			y, x := y0, x0
			for i := int64(0); i < steps; i++ {
				y += h * polyEval(coeffs, x)
				x += h
			}
			return value.Number(y), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "limit_at",
		Parameters: []string{"coefficients", "x"},
		Category:   cat,
		Help:       "Limit of a polynomial approaching x: limit_at [1,0] 2 -> 2",
		Capability: func(args []value.Value) (value.Value, error) {
			coeffs, err := value.AsSequence(args[0], "coefficients")
			if err != nil {
				return value.Unit(), err
			}
			if len(coeffs) == 0 {
				return value.Unit(), operror.InvalidValue("limit_at requires at least one coefficient")
			}
			x, err := value.AsNumber(args[1], "x")
			if err != nil {
				return value.Unit(), err
			}
			return value.Number(polyEval(coeffs, x)), nil
		},
	})
}

// simpson integrates fn over [a, b] with n even subintervals.
func simpson(fn func(float64) float64, a, b float64, n int) float64 {
	if n%2 == 1 {
		n++
	}
	h := (b - a) / float64(n)
	sum := fn(a) + fn(b)
	for i := 1; i < n; i++ {
		x := a + float64(i)*h
		if i%2 == 1 {
			sum += 4 * fn(x)
		} else {
			sum += 2 * fn(x)
		}
	}
	result := sum * h / 3
	if math.IsNaN(result) {
		return 0
	}
	return result
}
