package ops

import (
	"math"

	"mathcli/internal/catalog"
	"mathcli/internal/operror"
	"mathcli/internal/value"
)

// maxAngle bounds angle input; beyond this, float precision makes the result
// meaningless.
const maxAngle = 1e6

func angleUnary(name string, cat catalog.Category, help string, fn func(float64) float64) *catalog.Descriptor {
	return unary(name, "angle", cat, help, func(x float64) (value.Value, error) {
		if math.Abs(x) > maxAngle {
			return value.Unit(), operror.InvalidValue("angle too large (>%g radians)", float64(maxAngle))
		}
		return value.Number(fn(x)), nil
	})
}

func registerTrig(r *catalog.Registry) {
	cat := catalog.CategoryTrigonometry

	r.MustRegister(angleUnary("sin", cat, "Sine of angle in radians: sin 0 -> 0", math.Sin))
	r.MustRegister(angleUnary("cos", cat, "Cosine of angle in radians: cos 0 -> 1", math.Cos))
	r.MustRegister(angleUnary("tan", cat, "Tangent of angle in radians: tan 0 -> 0", math.Tan))

	r.MustRegister(unary("asin", "x", cat, "Arc sine in radians: asin 1 -> 1.5707...",
		func(x float64) (value.Value, error) {
			if x < -1 || x > 1 {
				return value.Unit(), operror.InvalidValue("asin requires input in [-1, 1]")
			}
			return value.Number(math.Asin(x)), nil
		}))

	r.MustRegister(unary("acos", "x", cat, "Arc cosine in radians: acos 1 -> 0",
		func(x float64) (value.Value, error) {
			if x < -1 || x > 1 {
				return value.Unit(), operror.InvalidValue("acos requires input in [-1, 1]")
			}
			return value.Number(math.Acos(x)), nil
		}))

	r.MustRegister(numUnary("atan", "x", cat, "Arc tangent in radians: atan 1 -> 0.7853...", math.Atan))

	r.MustRegister(binary("atan2", "y", "x", cat, "Two-argument arc tangent: atan2 1 1 -> 0.7853...",
		func(y, x float64) (value.Value, error) { return value.Number(math.Atan2(y, x)), nil }))

	r.MustRegister(angleUnary("sinh", cat, "Hyperbolic sine: sinh 0 -> 0", math.Sinh))
	r.MustRegister(angleUnary("cosh", cat, "Hyperbolic cosine: cosh 0 -> 1", math.Cosh))
	r.MustRegister(angleUnary("tanh", cat, "Hyperbolic tangent: tanh 0 -> 0", math.Tanh))
	r.MustRegister(numUnary("asinh", "x", cat, "Inverse hyperbolic sine: asinh 0 -> 0", math.Asinh))

	r.MustRegister(unary("acosh", "x", cat, "Inverse hyperbolic cosine: acosh 1 -> 0",
		func(x float64) (value.Value, error) {
			if x < 1 {
				return value.Unit(), operror.InvalidValue("acosh requires input >= 1")
			}
			return value.Number(math.Acosh(x)), nil
		}))

	r.MustRegister(unary("atanh", "x", cat, "Inverse hyperbolic tangent: atanh 0 -> 0",
		func(x float64) (value.Value, error) {
			if x <= -1 || x >= 1 {
				return value.Unit(), operror.InvalidValue("atanh requires input in (-1, 1)")
			}
			return value.Number(math.Atanh(x)), nil
		}))

	r.MustRegister(numUnary("to_radians", "degrees", cat, "Convert degrees to radians: to_radians 180 -> 3.1415...",
		func(d float64) float64 { return d * math.Pi / 180 }))
	r.MustRegister(numUnary("to_degrees", "radians", cat, "Convert radians to degrees: to_degrees 3.14159 -> 180",
		func(rad float64) float64 { return rad * 180 / math.Pi }))

	r.MustRegister(binary("hypot", "x", "y", cat, "Euclidean hypotenuse: hypot 3 4 -> 5",
		func(x, y float64) (value.Value, error) { return value.Number(math.Hypot(x, y)), nil }))
}
