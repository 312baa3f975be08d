package ops

import (
	"strings"

	"mathcli/internal/catalog"
	"mathcli/internal/value"
)

// unary builds a one-number operation descriptor.
func unary(name, param string, cat catalog.Category, help string, fn func(float64) (value.Value, error)) *catalog.Descriptor {
	return &catalog.Descriptor{
		Name:       name,
		Parameters: []string{param},
		Category:   cat,
		Help:       help,
		Capability: func(args []value.Value) (value.Value, error) {
			x, err := value.AsNumber(args[0], param)
			if err != nil {
				return value.Unit(), err
			}
			return fn(x)
		},
	}
}

// binary builds a two-number operation descriptor.
func binary(name, p1, p2 string, cat catalog.Category, help string, fn func(a, b float64) (value.Value, error)) *catalog.Descriptor {
	return &catalog.Descriptor{
		Name:       name,
		Parameters: []string{p1, p2},
		Category:   cat,
		Help:       help,
		Capability: func(args []value.Value) (value.Value, error) {
			a, err := value.AsNumber(args[0], p1)
			if err != nil {
				return value.Unit(), err
			}
			b, err := value.AsNumber(args[1], p2)
			if err != nil {
				return value.Unit(), err
			}
			return fn(a, b)
		},
	}
}

// numUnary wraps a pure float function as a Number-returning descriptor.
func numUnary(name, param string, cat catalog.Category, help string, fn func(float64) float64) *catalog.Descriptor {
	return unary(name, param, cat, help, func(x float64) (value.Value, error) {
		return value.Number(fn(x)), nil
	})
}

// intUnary builds a one-integer operation descriptor.
func intUnary(name, param string, cat catalog.Category, help string, fn func(int64) (value.Value, error)) *catalog.Descriptor {
	return &catalog.Descriptor{
		Name:       name,
		Parameters: []string{param},
		Category:   cat,
		Help:       help,
		Capability: func(args []value.Value) (value.Value, error) {
			n, err := value.AsInteger(args[0], param)
			if err != nil {
				return value.Unit(), err
			}
			return fn(n)
		},
	}
}

// intBinary builds a two-integer operation descriptor.
func intBinary(name, p1, p2 string, cat catalog.Category, help string, fn func(a, b int64) (value.Value, error)) *catalog.Descriptor {
	return &catalog.Descriptor{
		Name:       name,
		Parameters: []string{p1, p2},
		Category:   cat,
		Help:       help,
		Capability: func(args []value.Value) (value.Value, error) {
			a, err := value.AsInteger(args[0], p1)
			if err != nil {
				return value.Unit(), err
			}
			b, err := value.AsInteger(args[1], p2)
			if err != nil {
				return value.Unit(), err
			}
			return fn(a, b)
		},
	}
}

// constant builds a zero-argument descriptor returning a fixed number.
func constant(name string, cat catalog.Category, help string, v float64) *catalog.Descriptor {
	return &catalog.Descriptor{
		Name:     name,
		Category: cat,
		Help:     help,
		Capability: func(args []value.Value) (value.Value, error) {
			return value.Number(v), nil
		},
	}
}

// gatherNumbers flattens variadic arguments into one float slice. Sequence
// values (typed or bracketed text) contribute all of their elements;
// scalars contribute one.
func gatherNumbers(args []value.Value, param string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		if a.Kind() == value.KindSequence ||
			(a.Kind() == value.KindText && strings.HasPrefix(a.Str(), "[")) {
			xs, err := value.AsSequence(a, param)
			if err != nil {
				return nil, err
			}
			out = append(out, xs...)
			continue
		}
		f, err := value.AsNumber(a, param)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// variadicNums builds a variadic descriptor over a flattened number list.
func variadicNums(name string, min int, cat catalog.Category, help string, fn func(xs []float64) (value.Value, error)) *catalog.Descriptor {
	return &catalog.Descriptor{
		Name:       name,
		Parameters: []string{"values"},
		Variadic:   true,
		MinArgs:    min,
		Category:   cat,
		Help:       help,
		Capability: func(args []value.Value) (value.Value, error) {
			xs, err := gatherNumbers(args, "values")
			if err != nil {
				return value.Unit(), err
			}
			return fn(xs)
		},
	}
}
