package ops

import (
	"math/cmplx"

	"mathcli/internal/catalog"
	"mathcli/internal/operror"
	"mathcli/internal/value"
)

func fromComplex(c complex128) value.Value {
	return value.Complex(real(c), imag(c))
}

func cplxUnary(name, param string, help string, fn func(complex128) (value.Value, error)) *catalog.Descriptor {
	return &catalog.Descriptor{
		Name:       name,
		Parameters: []string{param},
		Category:   catalog.CategoryComplex,
		Help:       help,
		Capability: func(args []value.Value) (value.Value, error) {
			c, err := value.AsComplex(args[0], param)
			if err != nil {
				return value.Unit(), err
			}
			return fn(c)
		},
	}
}

func cplxBinary(name string, help string, fn func(a, b complex128) (value.Value, error)) *catalog.Descriptor {
	return &catalog.Descriptor{
		Name:       name,
		Parameters: []string{"a", "b"},
		Category:   catalog.CategoryComplex,
		Help:       help,
		Capability: func(args []value.Value) (value.Value, error) {
			a, err := value.AsComplex(args[0], "a")
			if err != nil {
				return value.Unit(), err
			}
			b, err := value.AsComplex(args[1], "b")
			if err != nil {
				return value.Unit(), err
			}
			return fn(a, b)
		},
	}
}

func registerComplex(r *catalog.Registry) {
	r.MustRegister(&catalog.Descriptor{
		Name:       "complex",
		Parameters: []string{"real", "imaginary"},
		Category:   catalog.CategoryComplex,
		Help:       "Build a complex number from parts: complex 3 4 -> 3+4i",
		Capability: func(args []value.Value) (value.Value, error) {
			re, err := value.AsNumber(args[0], "real")
			if err != nil {
				return value.Unit(), err
			}
			im, err := value.AsNumber(args[1], "imaginary")
			if err != nil {
				return value.Unit(), err
			}
			return value.Complex(re, im), nil
		},
	})

	r.MustRegister(cplxBinary("cadd", "Complex addition: cadd 1+2i 3+4i -> 4+6i",
		func(a, b complex128) (value.Value, error) { return fromComplex(a + b), nil }))
	r.MustRegister(cplxBinary("csub", "Complex subtraction: csub 3+4i 1+2i -> 2+2i",
		func(a, b complex128) (value.Value, error) { return fromComplex(a - b), nil }))
	r.MustRegister(cplxBinary("cmul", "Complex multiplication: cmul 1+2i 3+4i -> -5+10i",
		func(a, b complex128) (value.Value, error) { return fromComplex(a * b), nil }))

	r.MustRegister(cplxBinary("cdiv", "Complex division: cdiv 1+2i 3+4i -> 0.44+0.08i",
		func(a, b complex128) (value.Value, error) {
			if b == 0 {
				return value.Unit(), operror.DivisionByZero()
			}
			return fromComplex(a / b), nil
		}))

	r.MustRegister(cplxBinary("cpow", "Complex exponentiation: cpow 0+1i 2 -> -1",
		func(a, b complex128) (value.Value, error) {
			res := cmplx.Pow(a, b)
			if cmplx.IsNaN(res) || cmplx.IsInf(res) {
				return value.Unit(), operror.InvalidValue("cpow produced a non-finite result")
			}
			return fromComplex(res), nil
		}))

	r.MustRegister(cplxUnary("magnitude", "z", "Modulus of a complex number: magnitude 3+4i -> 5",
		func(c complex128) (value.Value, error) { return value.Number(cmplx.Abs(c)), nil }))

	r.MustRegister(cplxUnary("phase", "z", "Argument in radians: phase 0+1i -> 1.5707...",
		func(c complex128) (value.Value, error) { return value.Number(cmplx.Phase(c)), nil }))

	r.MustRegister(cplxUnary("conjugate", "z", "Complex conjugate: conjugate 3+4i -> 3-4i",
		func(c complex128) (value.Value, error) { return fromComplex(cmplx.Conj(c)), nil }))

	r.MustRegister(cplxUnary("real_part", "z", "Real component: real_part 3+4i -> 3",
		func(c complex128) (value.Value, error) { return value.Number(real(c)), nil }))

	r.MustRegister(cplxUnary("imag_part", "z", "Imaginary component: imag_part 3+4i -> 4",
		func(c complex128) (value.Value, error) { return value.Number(imag(c)), nil }))

	r.MustRegister(cplxUnary("polar", "z", "Polar form [r, theta]: polar 0+1i -> [1, 1.5707...]",
		func(c complex128) (value.Value, error) {
			rr, theta := cmplx.Polar(c)
			return value.Sequence([]float64{rr, theta}), nil
		}))

	r.MustRegister(&catalog.Descriptor{
		Name:       "from_polar",
		Parameters: []string{"r", "theta"},
		Category:   catalog.CategoryComplex,
		Help:       "Complex number from polar coordinates: from_polar 1 3.14159 -> -1",
		Capability: func(args []value.Value) (value.Value, error) {
			rr, err := value.AsNumber(args[0], "r")
			if err != nil {
				return value.Unit(), err
			}
			theta, err := value.AsNumber(args[1], "theta")
			if err != nil {
				return value.Unit(), err
			}
			return fromComplex(cmplx.Rect(rr, theta)), nil
		},
	})

	r.MustRegister(cplxUnary("cexp", "z", "Complex exponential: cexp 0+3.14159i -> -1",
		func(c complex128) (value.Value, error) { return fromComplex(cmplx.Exp(c)), nil }))

	r.MustRegister(cplxUnary("clog", "z", "Principal complex logarithm: clog -1 -> 0+3.1415...i",
		func(c complex128) (value.Value, error) {
			if c == 0 {
				return value.Unit(), operror.InvalidValue("clog is undefined at zero")
			}
			return fromComplex(cmplx.Log(c)), nil
		}))

	r.MustRegister(cplxUnary("csqrt", "z", "Principal complex square root: csqrt -4 -> 0+2i",
		func(c complex128) (value.Value, error) { return fromComplex(cmplx.Sqrt(c)), nil }))
}
