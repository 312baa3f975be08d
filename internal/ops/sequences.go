package ops

import (
	"mathcli/internal/catalog"
	"mathcli/internal/config"
	"mathcli/internal/operror"
	"mathcli/internal/value"
)

func registerSequences(r *catalog.Registry, limits config.LimitsConfig) {
	cat := catalog.CategorySequences

	r.MustRegister(&catalog.Descriptor{
		Name:       "arithmetic_series",
		Parameters: []string{"first", "difference", "count"},
		Category:   cat,
		Help:       "Arithmetic progression: arithmetic_series 1 2 5 -> [1, 3, 5, 7, 9]",
		Capability: func(args []value.Value) (value.Value, error) {
			first, err := value.AsNumber(args[0], "first")
			if err != nil {
				return value.Unit(), err
			}
			diff, err := value.AsNumber(args[1], "difference")
			if err != nil {
				return value.Unit(), err
			}
			count, err := value.AsInteger(args[2], "count")
			if err != nil {
				return value.Unit(), err
			}
			if count < 1 {
				return value.Unit(), operror.InvalidValue("arithmetic_series requires count >= 1")
			}
			if count > limits.SeriesMax {
				return value.Unit(), operror.InvalidValue("series length %d exceeds limit %d", count, limits.SeriesMax)
			}
			terms := make([]float64, count)
			for i := range terms {
				terms[i] = first + float64(i)*diff
			}
			return value.Sequence(terms), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "geometric_series",
		Parameters: []string{"first", "ratio", "count"},
		Category:   cat,
		Help:       "Geometric progression: geometric_series 1 2 5 -> [1, 2, 4, 8, 16]",
		Capability: func(args []value.Value) (value.Value, error) {
			first, err := value.AsNumber(args[0], "first")
			if err != nil {
				return value.Unit(), err
			}
			ratio, err := value.AsNumber(args[1], "ratio")
			if err != nil {
				return value.Unit(), err
			}
			count, err := value.AsInteger(args[2], "count")
			if err != nil {
				return value.Unit(), err
			}
			if count < 1 {
				return value.Unit(), operror.InvalidValue("geometric_series requires count >= 1")
			}
			if count > limits.SeriesMax {
				return value.Unit(), operror.InvalidValue("series length %d exceeds limit %d", count, limits.SeriesMax)
			}
			terms := make([]float64, count)
			term := first
			for i := range terms {
				terms[i] = term
				term *= ratio
			}
			return value.Sequence(terms), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "fibonacci_series",
		Parameters: []string{"count"},
		Category:   cat,
		Help:       "First count Fibonacci numbers: fibonacci_series 6 -> [0, 1, 1, 2, 3, 5]",
		Capability: func(args []value.Value) (value.Value, error) {
			count, err := value.AsInteger(args[0], "count")
			if err != nil {
				return value.Unit(), err
			}
			if count < 1 {
				return value.Unit(), operror.InvalidValue("fibonacci_series requires count >= 1")
			}
			if count > limits.SeriesMax {
				return value.Unit(), operror.InvalidValue("series length %d exceeds limit %d", count, limits.SeriesMax)
			}
			terms := make([]float64, count)
			a, b := 0.0, 1.0
			for i := range terms {
				terms[i] = a
				a, b = b, a+b
			}
			return value.Sequence(terms), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "range",
		Parameters: []string{"start", "stop", "step"},
		Optional:   1,
		Category:   cat,
		Help:       "Numbers from start up to stop exclusive: range 0 10 2 -> [0, 2, 4, 6, 8]",
		Capability: func(args []value.Value) (value.Value, error) {
			start, err := value.AsNumber(args[0], "start")
			if err != nil {
				return value.Unit(), err
			}
			stop, err := value.AsNumber(args[1], "stop")
			if err != nil {
				return value.Unit(), err
			}
			step := 1.0
			if len(args) == 3 {
				step, err = value.AsNumber(args[2], "step")
				if err != nil {
					return value.Unit(), err
				}
			}
			if step == 0 {
				return value.Unit(), operror.InvalidValue("range requires a non-zero step")
			}
			var terms []float64
			if step > 0 {
				for x := start; x < stop; x += step {
					if int64(len(terms)) >= limits.SeriesMax {
						return value.Unit(), operror.InvalidValue("series length exceeds limit %d", limits.SeriesMax)
					}
					terms = append(terms, x)
				}
			} else {
				for x := start; x > stop; x += step {
					if int64(len(terms)) >= limits.SeriesMax {
						return value.Unit(), operror.InvalidValue("series length exceeds limit %d", limits.SeriesMax)
					}
					terms = append(terms, x)
				}
			}
			return value.Sequence(terms), nil
		},
	})
}
