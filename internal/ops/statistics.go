package ops

import (
	"math"
	"sort"

	"mathcli/internal/catalog"
	"mathcli/internal/operror"
	"mathcli/internal/value"
)

func meanOf(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func varianceOf(xs []float64) float64 {
	m := meanOf(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(xs))
}

func sortedCopy(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	sort.Float64s(out)
	return out
}

// twoSeries coerces a pair of sequence arguments of equal length.
func twoSeries(args []value.Value) ([]float64, []float64, error) {
	xn, err := value.AsSequence(args[0], "first")
	if err != nil {
		return nil, nil, err
	}
	yn, err := value.AsSequence(args[1], "second")
	if err != nil {
		return nil, nil, err
	}
	if len(xn) != len(yn) {
		return nil, nil, operror.InvalidValue("series lengths differ: %d vs %d", len(xn), len(yn))
	}
	if len(xn) < 2 {
		return nil, nil, operror.InvalidValue("need at least 2 paired values")
	}
	return xn, yn, nil
}

func registerStatistics(r *catalog.Registry) {
	cat := catalog.CategoryStatistics

	r.MustRegister(variadicNums("mean", 1, cat, "Arithmetic mean: mean 1 2 3 -> 2",
		func(xs []float64) (value.Value, error) {
			return value.Number(meanOf(xs)), nil
		}))

	r.MustRegister(variadicNums("median", 1, cat, "Middle value of sorted inputs: median 1 3 2 -> 2",
		func(xs []float64) (value.Value, error) {
			s := sortedCopy(xs)
			n := len(s)
			if n%2 == 1 {
				return value.Number(s[n/2]), nil
			}
			return value.Number((s[n/2-1] + s[n/2]) / 2), nil
		}))

	r.MustRegister(variadicNums("mode", 1, cat, "Most frequent value: mode 1 2 2 3 -> 2",
		func(xs []float64) (value.Value, error) {
			// Values within Epsilon of each other count as one group.
			s := sortedCopy(xs)
			best, bestCount := s[0], 1
			start, count := s[0], 1
			for _, x := range s[1:] {
				if x-start <= value.Epsilon {
					count++
				} else {
					start, count = x, 1
				}
				if count > bestCount {
					best, bestCount = start, count
				}
			}
			return value.Number(best), nil
		}))

	r.MustRegister(variadicNums("stdev", 2, cat, "Population standard deviation: stdev 2 4 4 4 5 5 7 9 -> 2",
		func(xs []float64) (value.Value, error) {
			return value.Number(math.Sqrt(varianceOf(xs))), nil
		}))

	r.MustRegister(variadicNums("variance", 2, cat, "Population variance: variance 1 2 3 4 -> 1.25",
		func(xs []float64) (value.Value, error) {
			return value.Number(varianceOf(xs)), nil
		}))

	r.MustRegister(variadicNums("sum", 1, cat, "Sum of all inputs: sum 1 2 3 -> 6",
		func(xs []float64) (value.Value, error) {
			total := 0.0
			for _, x := range xs {
				total += x
			}
			return value.Number(total), nil
		}))

	r.MustRegister(variadicNums("product", 1, cat, "Product of all inputs: product 2 3 4 -> 24",
		func(xs []float64) (value.Value, error) {
			total := 1.0
			for _, x := range xs {
				total *= x
			}
			return value.Number(total), nil
		}))

	r.MustRegister(variadicNums("min", 1, cat, "Smallest input: min 3 1 2 -> 1",
		func(xs []float64) (value.Value, error) {
			m := xs[0]
			for _, x := range xs[1:] {
				m = math.Min(m, x)
			}
			return value.Number(m), nil
		}))

	r.MustRegister(variadicNums("max", 1, cat, "Largest input: max 3 1 2 -> 3",
		func(xs []float64) (value.Value, error) {
			m := xs[0]
			for _, x := range xs[1:] {
				m = math.Max(m, x)
			}
			return value.Number(m), nil
		}))

	r.MustRegister(variadicNums("count", 1, cat, "Number of inputs: count 5 6 7 -> 3",
		func(xs []float64) (value.Value, error) {
			return value.Integer(int64(len(xs))), nil
		}))

	r.MustRegister(variadicNums("span", 1, cat, "Difference between largest and smallest: span 4 9 1 -> 8",
		func(xs []float64) (value.Value, error) {
			lo, hi := xs[0], xs[0]
			for _, x := range xs[1:] {
				lo = math.Min(lo, x)
				hi = math.Max(hi, x)
			}
			return value.Number(hi - lo), nil
		}))

	r.MustRegister(&catalog.Descriptor{
		Name:       "percentile",
		Parameters: []string{"p", "values"},
		Variadic:   true,
		MinArgs:    2,
		Category:   cat,
		Help:       "The p-th percentile by linear interpolation: percentile 50 1 2 3 4 -> 2.5",
		Capability: func(args []value.Value) (value.Value, error) {
			p, err := value.AsNumber(args[0], "p")
			if err != nil {
				return value.Unit(), err
			}
			if p < 0 || p > 100 {
				return value.Unit(), operror.InvalidValue("percentile requires p in [0, 100]")
			}
			xs, err := gatherNumbers(args[1:], "values")
			if err != nil {
				return value.Unit(), err
			}
			if len(xs) == 0 {
				return value.Unit(), operror.InvalidValue("percentile requires at least one value")
			}
			s := sortedCopy(xs)
			if len(s) == 1 {
				return value.Number(s[0]), nil
			}
			rank := p / 100 * float64(len(s)-1)
			lo := int(math.Floor(rank))
			hi := int(math.Ceil(rank))
			if lo == hi {
				return value.Number(s[lo]), nil
			}
			frac := rank - float64(lo)
			return value.Number(s[lo] + frac*(s[hi]-s[lo])), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "correlation",
		Parameters: []string{"xs", "ys"},
		Category:   cat,
		Help:       "Pearson correlation of two sequences: correlation [1,2,3] [2,4,6] -> 1",
		Capability: func(args []value.Value) (value.Value, error) {
			xs, ys, err := twoSeries(args)
			if err != nil {
				return value.Unit(), err
			}
			sx := math.Sqrt(varianceOf(xs))
			sy := math.Sqrt(varianceOf(ys))
			if sx == 0 || sy == 0 {
				return value.Unit(), operror.InvalidValue("correlation undefined for a constant series")
			}
			return value.Number(covarianceOf(xs, ys) / (sx * sy)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "covariance",
		Parameters: []string{"xs", "ys"},
		Category:   cat,
		Help:       "Population covariance of two sequences: covariance [1,2,3] [2,4,6] -> 0.666...",
		Capability: func(args []value.Value) (value.Value, error) {
			xs, ys, err := twoSeries(args)
			if err != nil {
				return value.Unit(), err
			}
			return value.Number(covarianceOf(xs, ys)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "zscore",
		Parameters: []string{"x", "values"},
		Variadic:   true,
		MinArgs:    3,
		Category:   cat,
		Help:       "Standard score of x within the values: zscore 5 1 3 5 7 9 -> 0",
		Capability: func(args []value.Value) (value.Value, error) {
			x, err := value.AsNumber(args[0], "x")
			if err != nil {
				return value.Unit(), err
			}
			xs, err := gatherNumbers(args[1:], "values")
			if err != nil {
				return value.Unit(), err
			}
			sd := math.Sqrt(varianceOf(xs))
			if sd == 0 {
				return value.Unit(), operror.InvalidValue("zscore undefined for a constant series")
			}
			return value.Number((x - meanOf(xs)) / sd), nil
		},
	})
}

func covarianceOf(xs, ys []float64) float64 {
	mx, my := meanOf(xs), meanOf(ys)
	sum := 0.0
	for i := range xs {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum / float64(len(xs))
}
