package ops

import (
	"mathcli/internal/catalog"
	"mathcli/internal/value"
)

func comparison(name, help string, fn func(a, b float64) bool) *catalog.Descriptor {
	return binary(name, "a", "b", catalog.CategoryControlFlow, help,
		func(a, b float64) (value.Value, error) {
			return value.Boolean(fn(a, b)), nil
		})
}

func boolBinary(name, help string, fn func(a, b bool) bool) *catalog.Descriptor {
	return &catalog.Descriptor{
		Name:       name,
		Parameters: []string{"a", "b"},
		Category:   catalog.CategoryControlFlow,
		Help:       help,
		Capability: func(args []value.Value) (value.Value, error) {
			a, err := value.AsBoolean(args[0], "a")
			if err != nil {
				return value.Unit(), err
			}
			b, err := value.AsBoolean(args[1], "b")
			if err != nil {
				return value.Unit(), err
			}
			return value.Boolean(fn(a, b)), nil
		},
	}
}

func kindPredicate(name, help string, fn func(value.Value) bool) *catalog.Descriptor {
	return &catalog.Descriptor{
		Name:       name,
		Parameters: []string{"x"},
		Category:   catalog.CategoryControlFlow,
		Help:       help,
		Capability: func(args []value.Value) (value.Value, error) {
			return value.Boolean(fn(args[0])), nil
		},
	}
}

func registerControlFlow(r *catalog.Registry) {
	// Numeric equality is tolerance-based, matching NumericEqual.
	r.MustRegister(comparison("eq", "Whether two numbers are equal within tolerance: eq 1 1 -> true",
		func(a, b float64) bool { return value.NumericEqual(a, b) }))
	r.MustRegister(comparison("neq", "Whether two numbers differ beyond tolerance: neq 1 2 -> true",
		func(a, b float64) bool { return !value.NumericEqual(a, b) }))
	r.MustRegister(comparison("gt", "Strictly greater than: gt 2 1 -> true",
		func(a, b float64) bool { return a > b && !value.NumericEqual(a, b) }))
	r.MustRegister(comparison("gte", "Greater than or equal: gte 2 2 -> true",
		func(a, b float64) bool { return a > b || value.NumericEqual(a, b) }))
	r.MustRegister(comparison("lt", "Strictly less than: lt 1 2 -> true",
		func(a, b float64) bool { return a < b && !value.NumericEqual(a, b) }))
	r.MustRegister(comparison("lte", "Less than or equal: lte 2 2 -> true",
		func(a, b float64) bool { return a < b || value.NumericEqual(a, b) }))

	r.MustRegister(boolBinary("and", "Logical conjunction: and true false -> false",
		func(a, b bool) bool { return a && b }))
	r.MustRegister(boolBinary("or", "Logical disjunction: or true false -> true",
		func(a, b bool) bool { return a || b }))
	r.MustRegister(boolBinary("xor", "Exclusive or: xor true true -> false",
		func(a, b bool) bool { return a != b }))

	r.MustRegister(&catalog.Descriptor{
		Name:       "not",
		Parameters: []string{"a"},
		Category:   catalog.CategoryControlFlow,
		Help:       "Logical negation: not true -> false",
		Capability: func(args []value.Value) (value.Value, error) {
			a, err := value.AsBoolean(args[0], "a")
			if err != nil {
				return value.Unit(), err
			}
			return value.Boolean(!a), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "if",
		Parameters: []string{"condition", "then", "else"},
		Category:   catalog.CategoryControlFlow,
		Help:       "Select between two values: if true 1 2 -> 1",
		Capability: func(args []value.Value) (value.Value, error) {
			cond, err := value.AsBoolean(args[0], "condition")
			if err != nil {
				return value.Unit(), err
			}
			if cond {
				return args[1], nil
			}
			return args[2], nil
		},
	})

	r.MustRegister(kindPredicate("is_number", "Whether the input parses as a number: is_number 4.5 -> true",
		func(v value.Value) bool {
			_, err := value.AsNumber(v, "x")
			return err == nil
		}))
	r.MustRegister(kindPredicate("is_integer", "Whether the input is a whole number: is_integer 4 -> true",
		func(v value.Value) bool {
			_, err := value.AsInteger(v, "x")
			return err == nil
		}))
	r.MustRegister(kindPredicate("is_bool", "Whether the input is a boolean: is_bool true -> true",
		func(v value.Value) bool {
			_, err := value.AsBoolean(v, "x")
			return err == nil
		}))
	r.MustRegister(kindPredicate("is_string", "Whether the input is plain text: is_string hello -> true",
		func(v value.Value) bool {
			if v.Kind() != value.KindText {
				return false
			}
			if _, err := value.AsNumber(v, "x"); err == nil {
				return false
			}
			if _, err := value.AsBoolean(v, "x"); err == nil {
				return false
			}
			return true
		}))
}
