package ops

import (
	"math"

	"mathcli/internal/catalog"
	"mathcli/internal/config"
	"mathcli/internal/operror"
	"mathcli/internal/value"
)

func isPrime(n int64) bool {
	if n < 2 {
		return false
	}
	if n < 4 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for d := int64(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func registerNumberTheory(r *catalog.Registry, limits config.LimitsConfig) {
	cat := catalog.CategoryNumberTheory

	r.MustRegister(intUnary("is_prime", "n", cat, "Whether n is prime: is_prime 17 -> true",
		func(n int64) (value.Value, error) {
			return value.Boolean(isPrime(n)), nil
		}))

	r.MustRegister(intUnary("next_prime", "n", cat, "Smallest prime greater than n: next_prime 10 -> 11",
		func(n int64) (value.Value, error) {
			if n < 1 {
				n = 1
			}
			for c := n + 1; c <= limits.PrimeSearchCeiling; c++ {
				if isPrime(c) {
					return value.Integer(c), nil
				}
			}
			return value.Unit(), operror.InvalidValue("no prime found below search ceiling %d", limits.PrimeSearchCeiling)
		}))

	r.MustRegister(intUnary("nth_prime", "n", cat, "The n-th prime, 1-indexed: nth_prime 4 -> 7",
		func(n int64) (value.Value, error) {
			if n < 1 {
				return value.Unit(), operror.InvalidValue("nth_prime requires n >= 1")
			}
			count := int64(0)
			for c := int64(2); c <= limits.PrimeSearchCeiling; c++ {
				if isPrime(c) {
					count++
					if count == n {
						return value.Integer(c), nil
					}
				}
			}
			return value.Unit(), operror.InvalidValue("prime index %d exceeds search ceiling %d", n, limits.PrimeSearchCeiling)
		}))

	r.MustRegister(intUnary("prime_count", "n", cat, "Number of primes <= n: prime_count 10 -> 4",
		func(n int64) (value.Value, error) {
			count := int64(0)
			for c := int64(2); c <= n; c++ {
				if isPrime(c) {
					count++
				}
			}
			return value.Integer(count), nil
		}))

	r.MustRegister(intUnary("prime_factors", "n", cat, "Prime factorization with multiplicity: prime_factors 12 -> [2, 2, 3]",
		func(n int64) (value.Value, error) {
			if n < 2 {
				return value.Unit(), operror.InvalidValue("prime_factors requires n >= 2")
			}
			var factors []float64
			for n%2 == 0 {
				factors = append(factors, 2)
				n /= 2
			}
			for d := int64(3); d*d <= n; d += 2 {
				for n%d == 0 {
					factors = append(factors, float64(d))
					n /= d
				}
			}
			if n > 1 {
				factors = append(factors, float64(n))
			}
			return value.Sequence(factors), nil
		}))

	r.MustRegister(intUnary("divisors", "n", cat, "All positive divisors in ascending order: divisors 28 -> [1, 2, 4, 7, 14, 28]",
		func(n int64) (value.Value, error) {
			if n < 1 {
				return value.Unit(), operror.InvalidValue("divisors requires n >= 1")
			}
			var low, high []int64
			for d := int64(1); d*d <= n; d++ {
				if n%d == 0 {
					low = append(low, d)
					if q := n / d; q != d {
						high = append(high, q)
					}
				}
			}
			out := make([]float64, 0, len(low)+len(high))
			for _, d := range low {
				out = append(out, float64(d))
			}
			for i := len(high) - 1; i >= 0; i-- {
				out = append(out, float64(high[i]))
			}
			return value.Sequence(out), nil
		}))

	r.MustRegister(intBinary("gcd", "a", "b", cat, "Greatest common divisor: gcd 12 18 -> 6",
		func(a, b int64) (value.Value, error) {
			return value.Integer(gcd(a, b)), nil
		}))

	r.MustRegister(intBinary("lcm", "a", "b", cat, "Least common multiple: lcm 4 6 -> 12",
		func(a, b int64) (value.Value, error) {
			if a == 0 || b == 0 {
				return value.Integer(0), nil
			}
			g := gcd(a, b)
			l := a / g * b
			if l < 0 {
				l = -l
			}
			return value.Integer(l), nil
		}))

	r.MustRegister(&catalog.Descriptor{
		Name:       "mod_power",
		Parameters: []string{"base", "exponent", "modulus"},
		Category:   cat,
		Help:       "Modular exponentiation: mod_power 2 10 1000 -> 24",
		Capability: func(args []value.Value) (value.Value, error) {
			base, err := value.AsInteger(args[0], "base")
			if err != nil {
				return value.Unit(), err
			}
			exp, err := value.AsInteger(args[1], "exponent")
			if err != nil {
				return value.Unit(), err
			}
			mod, err := value.AsInteger(args[2], "modulus")
			if err != nil {
				return value.Unit(), err
			}
			if exp < 0 {
				return value.Unit(), operror.InvalidValue("mod_power requires a non-negative exponent")
			}
			if mod <= 0 {
				return value.Unit(), operror.InvalidValue("mod_power requires a positive modulus")
			}
			result := int64(1)
			base %= mod
			if base < 0 {
				base += mod
			}
			for exp > 0 {
				if exp&1 == 1 {
					result = result * base % mod
				}
				base = base * base % mod
				exp >>= 1
			}
			return value.Integer(result), nil
		},
	})

	r.MustRegister(intBinary("mod_inverse", "a", "m", cat, "Modular multiplicative inverse: mod_inverse 3 11 -> 4",
		func(a, m int64) (value.Value, error) {
			if m <= 0 {
				return value.Unit(), operror.InvalidValue("mod_inverse requires a positive modulus")
			}
			// Extended Euclid.
			r0, r1 := a%m, m
			s0, s1 := int64(1), int64(0)
			for r1 != 0 {
				q := r0 / r1
				r0, r1 = r1, r0-q*r1
				s0, s1 = s1, s0-q*s1
			}
			if r0 != 1 && r0 != -1 {
				return value.Unit(), operror.InvalidValue("%d has no inverse modulo %d", a, m)
			}
			if r0 == -1 {
				s0 = -s0
			}
			inv := s0 % m
			if inv < 0 {
				inv += m
			}
			return value.Integer(inv), nil
		}))

	r.MustRegister(intUnary("euler_phi", "n", cat, "Euler's totient: euler_phi 12 -> 4",
		func(n int64) (value.Value, error) {
			if n < 1 {
				return value.Unit(), operror.InvalidValue("euler_phi requires n >= 1")
			}
			result := n
			for p := int64(2); p*p <= n; p++ {
				if n%p == 0 {
					for n%p == 0 {
						n /= p
					}
					result -= result / p
				}
			}
			if n > 1 {
				result -= result / n
			}
			return value.Integer(result), nil
		}))

	r.MustRegister(intUnary("factorial", "n", cat, "Factorial: factorial 5 -> 120",
		func(n int64) (value.Value, error) {
			if n < 0 {
				return value.Unit(), operror.InvalidValue("factorial requires a non-negative integer")
			}
			if n > limits.FactorialMax {
				return value.Unit(), operror.InvalidValue("factorial input %d exceeds limit %d", n, limits.FactorialMax)
			}
			result := 1.0
			for i := int64(2); i <= n; i++ {
				result *= float64(i)
			}
			return value.Number(result), nil
		}))

	r.MustRegister(intUnary("fibonacci", "n", cat, "The n-th Fibonacci number, 0-indexed: fibonacci 10 -> 55",
		func(n int64) (value.Value, error) {
			if n < 0 {
				return value.Unit(), operror.InvalidValue("fibonacci requires a non-negative index")
			}
			if n > limits.FibonacciMax {
				return value.Unit(), operror.InvalidValue("fibonacci index %d exceeds limit %d", n, limits.FibonacciMax)
			}
			a, b := 0.0, 1.0
			for i := int64(0); i < n; i++ {
				a, b = b, a+b
			}
			return value.Number(a), nil
		}))

	r.MustRegister(intUnary("digit_sum", "n", cat, "Sum of decimal digits: digit_sum 1234 -> 10",
		func(n int64) (value.Value, error) {
			if n < 0 {
				n = -n
			}
			sum := int64(0)
			for n > 0 {
				sum += n % 10
				n /= 10
			}
			return value.Integer(sum), nil
		}))

	r.MustRegister(intUnary("reverse_number", "n", cat, "Reverse decimal digits: reverse_number 123 -> 321",
		func(n int64) (value.Value, error) {
			neg := n < 0
			if neg {
				n = -n
			}
			rev := int64(0)
			for n > 0 {
				rev = rev*10 + n%10
				n /= 10
			}
			if neg {
				rev = -rev
			}
			return value.Integer(rev), nil
		}))

	r.MustRegister(intUnary("is_perfect_square", "n", cat, "Whether n is a perfect square: is_perfect_square 49 -> true",
		func(n int64) (value.Value, error) {
			if n < 0 {
				return value.Boolean(false), nil
			}
			root := int64(math.Sqrt(float64(n)))
			// Float sqrt can be off by one near large squares.
			for _, c := range []int64{root - 1, root, root + 1} {
				if c >= 0 && c*c == n {
					return value.Boolean(true), nil
				}
			}
			return value.Boolean(false), nil
		}))

	r.MustRegister(intBinary("is_coprime", "a", "b", cat, "Whether gcd(a, b) = 1: is_coprime 8 15 -> true",
		func(a, b int64) (value.Value, error) {
			return value.Boolean(gcd(a, b) == 1), nil
		}))

	r.MustRegister(intBinary("combinations", "n", "k", cat, "Binomial coefficient C(n, k): combinations 5 2 -> 10",
		func(n, k int64) (value.Value, error) {
			if n < 0 || k < 0 {
				return value.Unit(), operror.InvalidValue("combinations requires non-negative inputs")
			}
			if k > n {
				return value.Integer(0), nil
			}
			if k > n-k {
				k = n - k
			}
			result := 1.0
			for i := int64(1); i <= k; i++ {
				result = result * float64(n-k+i) / float64(i)
			}
			return value.Number(math.Round(result)), nil
		}))

	r.MustRegister(intBinary("permutations", "n", "k", cat, "Ordered arrangements P(n, k): permutations 5 2 -> 20",
		func(n, k int64) (value.Value, error) {
			if n < 0 || k < 0 {
				return value.Unit(), operror.InvalidValue("permutations requires non-negative inputs")
			}
			if k > n {
				return value.Integer(0), nil
			}
			result := 1.0
			for i := int64(0); i < k; i++ {
				result *= float64(n - i)
			}
			return value.Number(result), nil
		}))

	r.MustRegister(intUnary("is_even", "n", cat, "Whether n is even: is_even 4 -> true",
		func(n int64) (value.Value, error) {
			return value.Boolean(n%2 == 0), nil
		}))

	r.MustRegister(intUnary("is_odd", "n", cat, "Whether n is odd: is_odd 3 -> true",
		func(n int64) (value.Value, error) {
			return value.Boolean(n%2 != 0), nil
		}))
}
