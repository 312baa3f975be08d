package ops

import (
	"fmt"
	"strconv"
	"strings"

	"mathcli/internal/catalog"
	"mathcli/internal/operror"
	"mathcli/internal/value"
)

func registerConversions(r *catalog.Registry) {
	cat := catalog.CategoryConversion

	conv := func(name, param, help string, factor float64) *catalog.Descriptor {
		return numUnary(name, param, cat, help, func(x float64) float64 { return x * factor })
	}

	r.MustRegister(numUnary("celsius_to_fahrenheit", "celsius", cat,
		"Convert Celsius to Fahrenheit: celsius_to_fahrenheit 100 -> 212",
		func(c float64) float64 { return c*9/5 + 32 }))
	r.MustRegister(numUnary("fahrenheit_to_celsius", "fahrenheit", cat,
		"Convert Fahrenheit to Celsius: fahrenheit_to_celsius 212 -> 100",
		func(f float64) float64 { return (f - 32) * 5 / 9 }))
	r.MustRegister(numUnary("celsius_to_kelvin", "celsius", cat,
		"Convert Celsius to Kelvin: celsius_to_kelvin 0 -> 273.15",
		func(c float64) float64 { return c + 273.15 }))
	r.MustRegister(unary("kelvin_to_celsius", "kelvin", cat,
		"Convert Kelvin to Celsius: kelvin_to_celsius 273.15 -> 0",
		func(k float64) (value.Value, error) {
			if k < 0 {
				return value.Unit(), operror.InvalidValue("temperature below absolute zero")
			}
			return value.Number(k - 273.15), nil
		}))

	r.MustRegister(conv("miles_to_km", "miles", "Convert miles to kilometres: miles_to_km 1 -> 1.60934", 1.60934))
	r.MustRegister(conv("km_to_miles", "km", "Convert kilometres to miles: km_to_miles 1.60934 -> 1", 1/1.60934))
	r.MustRegister(conv("inches_to_cm", "inches", "Convert inches to centimetres: inches_to_cm 1 -> 2.54", 2.54))
	r.MustRegister(conv("cm_to_inches", "cm", "Convert centimetres to inches: cm_to_inches 2.54 -> 1", 1/2.54))
	r.MustRegister(conv("feet_to_meters", "feet", "Convert feet to metres: feet_to_meters 1 -> 0.3048", 0.3048))
	r.MustRegister(conv("meters_to_feet", "meters", "Convert metres to feet: meters_to_feet 0.3048 -> 1", 1/0.3048))
	r.MustRegister(conv("pounds_to_kg", "pounds", "Convert pounds to kilograms: pounds_to_kg 1 -> 0.453592", 0.453592))
	r.MustRegister(conv("kg_to_pounds", "kg", "Convert kilograms to pounds: kg_to_pounds 0.453592 -> 1", 1/0.453592))
	r.MustRegister(conv("gallons_to_liters", "gallons", "Convert US gallons to litres: gallons_to_liters 1 -> 3.78541", 3.78541))
	r.MustRegister(conv("liters_to_gallons", "liters", "Convert litres to US gallons: liters_to_gallons 3.78541 -> 1", 1/3.78541))

	r.MustRegister(intUnary("to_binary", "n", cat, "Binary representation: to_binary 10 -> 1010",
		func(n int64) (value.Value, error) {
			if n < 0 {
				return value.Text("-" + strconv.FormatInt(-n, 2)), nil
			}
			return value.Text(strconv.FormatInt(n, 2)), nil
		}))

	r.MustRegister(intUnary("to_hex", "n", cat, "Hexadecimal representation: to_hex 255 -> ff",
		func(n int64) (value.Value, error) {
			if n < 0 {
				return value.Text("-" + strconv.FormatInt(-n, 16)), nil
			}
			return value.Text(strconv.FormatInt(n, 16)), nil
		}))

	r.MustRegister(intUnary("to_octal", "n", cat, "Octal representation: to_octal 8 -> 10",
		func(n int64) (value.Value, error) {
			if n < 0 {
				return value.Text("-" + strconv.FormatInt(-n, 8)), nil
			}
			return value.Text(strconv.FormatInt(n, 8)), nil
		}))

	baseParse := func(name, param string, base int, help string) *catalog.Descriptor {
		return &catalog.Descriptor{
			Name:       name,
			Parameters: []string{param},
			Category:   cat,
			Help:       help,
			Capability: func(args []value.Value) (value.Value, error) {
				s, err := value.AsText(args[0], param)
				if err != nil {
					return value.Unit(), err
				}
				n, err := strconv.ParseInt(strings.TrimSpace(s), base, 64)
				if err != nil {
					return value.Unit(), operror.InvalidValue("%q is not a valid base-%d integer", s, base)
				}
				return value.Integer(n), nil
			},
		}
	}
	r.MustRegister(baseParse("from_binary", "digits", 2, "Parse a binary string: from_binary 1010 -> 10"))
	r.MustRegister(baseParse("from_hex", "digits", 16, "Parse a hexadecimal string: from_hex ff -> 255"))
	r.MustRegister(baseParse("from_octal", "digits", 8, "Parse an octal string: from_octal 10 -> 8"))

	r.MustRegister(intUnary("to_roman", "n", cat, "Roman numeral form: to_roman 1987 -> MCMLXXXVII",
		func(n int64) (value.Value, error) {
			if n < 1 || n > 3999 {
				return value.Unit(), operror.InvalidValue("to_roman requires n in [1, 3999]")
			}
			vals := []int64{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
			syms := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
			var b strings.Builder
			for i, v := range vals {
				for n >= v {
					b.WriteString(syms[i])
					n -= v
				}
			}
			return value.Text(b.String()), nil
		}))

	r.MustRegister(&catalog.Descriptor{
		Name:       "from_roman",
		Parameters: []string{"numeral"},
		Category:   cat,
		Help:       "Parse a Roman numeral: from_roman MCMLXXXVII -> 1987",
		Capability: func(args []value.Value) (value.Value, error) {
			s, err := value.AsText(args[0], "numeral")
			if err != nil {
				return value.Unit(), err
			}
			digits := map[byte]int64{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000}
			upper := strings.ToUpper(strings.TrimSpace(s))
			if upper == "" {
				return value.Unit(), operror.InvalidValue("empty Roman numeral")
			}
			total := int64(0)
			for i := 0; i < len(upper); i++ {
				v, ok := digits[upper[i]]
				if !ok {
					return value.Unit(), operror.InvalidValue("invalid Roman digit %q", string(upper[i]))
				}
				if i+1 < len(upper) && digits[upper[i+1]] > v {
					total -= v
				} else {
					total += v
				}
			}
			return value.Integer(total), nil
		},
	})

	r.MustRegister(unary("to_scientific", "x", cat, "Scientific notation: to_scientific 12345 -> 1.2345e+04",
		func(x float64) (value.Value, error) {
			return value.Text(fmt.Sprintf("%e", x)), nil
		}))
}
