package ops

import (
	"math"

	"mathcli/internal/catalog"
	"mathcli/internal/operror"
	"mathcli/internal/value"
)

func positiveUnary(name, param string, help string, fn func(float64) float64) *catalog.Descriptor {
	return unary(name, param, catalog.CategoryGeometry, help, func(x float64) (value.Value, error) {
		if x < 0 {
			return value.Unit(), operror.InvalidValue("%s requires a non-negative %s", name, param)
		}
		return value.Number(fn(x)), nil
	})
}

func positiveBinary(name, p1, p2 string, help string, fn func(a, b float64) float64) *catalog.Descriptor {
	return binary(name, p1, p2, catalog.CategoryGeometry, help, func(a, b float64) (value.Value, error) {
		if a < 0 || b < 0 {
			return value.Unit(), operror.InvalidValue("%s requires non-negative dimensions", name)
		}
		return value.Number(fn(a, b)), nil
	})
}

func registerGeometry(r *catalog.Registry) {
	cat := catalog.CategoryGeometry

	r.MustRegister(positiveUnary("circle_area", "radius", "Area of a circle: circle_area 2 -> 12.566...",
		func(rad float64) float64 { return math.Pi * rad * rad }))
	r.MustRegister(positiveUnary("circle_circumference", "radius", "Circumference of a circle: circle_circumference 1 -> 6.283...",
		func(rad float64) float64 { return 2 * math.Pi * rad }))
	r.MustRegister(positiveUnary("sphere_volume", "radius", "Volume of a sphere: sphere_volume 1 -> 4.188...",
		func(rad float64) float64 { return 4.0 / 3.0 * math.Pi * rad * rad * rad }))
	r.MustRegister(positiveUnary("sphere_area", "radius", "Surface area of a sphere: sphere_area 1 -> 12.566...",
		func(rad float64) float64 { return 4 * math.Pi * rad * rad }))
	r.MustRegister(positiveUnary("square_area", "side", "Area of a square: square_area 3 -> 9",
		func(s float64) float64 { return s * s }))
	r.MustRegister(positiveUnary("cube_volume", "side", "Volume of a cube: cube_volume 3 -> 27",
		func(s float64) float64 { return s * s * s }))

	r.MustRegister(positiveBinary("rectangle_area", "width", "height", "Area of a rectangle: rectangle_area 3 4 -> 12",
		func(w, h float64) float64 { return w * h }))
	r.MustRegister(positiveBinary("rectangle_perimeter", "width", "height", "Perimeter of a rectangle: rectangle_perimeter 3 4 -> 14",
		func(w, h float64) float64 { return 2 * (w + h) }))
	r.MustRegister(positiveBinary("triangle_area", "base", "height", "Area of a triangle: triangle_area 6 4 -> 12",
		func(b, h float64) float64 { return b * h / 2 }))
	r.MustRegister(positiveBinary("cylinder_volume", "radius", "height", "Volume of a cylinder: cylinder_volume 2 5 -> 62.83...",
		func(rad, h float64) float64 { return math.Pi * rad * rad * h }))
	r.MustRegister(positiveBinary("cone_volume", "radius", "height", "Volume of a cone: cone_volume 3 4 -> 37.69...",
		func(rad, h float64) float64 { return math.Pi * rad * rad * h / 3 }))

	r.MustRegister(&catalog.Descriptor{
		Name:       "triangle_area_sides",
		Parameters: []string{"a", "b", "c"},
		Category:   cat,
		Help:       "Heron's formula from side lengths: triangle_area_sides 3 4 5 -> 6",
		Capability: func(args []value.Value) (value.Value, error) {
			a, err := value.AsNumber(args[0], "a")
			if err != nil {
				return value.Unit(), err
			}
			b, err := value.AsNumber(args[1], "b")
			if err != nil {
				return value.Unit(), err
			}
			c, err := value.AsNumber(args[2], "c")
			if err != nil {
				return value.Unit(), err
			}
			if a <= 0 || b <= 0 || c <= 0 {
				return value.Unit(), operror.InvalidValue("triangle sides must be positive")
			}
			if a+b <= c || a+c <= b || b+c <= a {
				return value.Unit(), operror.InvalidValue("sides %g, %g, %g violate the triangle inequality", a, b, c)
			}
			s := (a + b + c) / 2
			return value.Number(math.Sqrt(s * (s - a) * (s - b) * (s - c))), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "distance",
		Parameters: []string{"x1", "y1", "x2", "y2"},
		Category:   cat,
		Help:       "Euclidean distance between two points: distance 0 0 3 4 -> 5",
		Capability: func(args []value.Value) (value.Value, error) {
			coords := make([]float64, 4)
			names := []string{"x1", "y1", "x2", "y2"}
			for i := range coords {
				v, err := value.AsNumber(args[i], names[i])
				if err != nil {
					return value.Unit(), err
				}
				coords[i] = v
			}
			return value.Number(math.Hypot(coords[2]-coords[0], coords[3]-coords[1])), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "midpoint",
		Parameters: []string{"x1", "y1", "x2", "y2"},
		Category:   cat,
		Help:       "Midpoint of a segment: midpoint 0 0 4 6 -> [2, 3]",
		Capability: func(args []value.Value) (value.Value, error) {
			coords := make([]float64, 4)
			names := []string{"x1", "y1", "x2", "y2"}
			for i := range coords {
				v, err := value.AsNumber(args[i], names[i])
				if err != nil {
					return value.Unit(), err
				}
				coords[i] = v
			}
			return value.Sequence([]float64{(coords[0] + coords[2]) / 2, (coords[1] + coords[3]) / 2}), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "slope",
		Parameters: []string{"x1", "y1", "x2", "y2"},
		Category:   cat,
		Help:       "Slope of the line through two points: slope 0 0 2 4 -> 2",
		Capability: func(args []value.Value) (value.Value, error) {
			coords := make([]float64, 4)
			names := []string{"x1", "y1", "x2", "y2"}
			for i := range coords {
				v, err := value.AsNumber(args[i], names[i])
				if err != nil {
					return value.Unit(), err
				}
				coords[i] = v
			}
			dx := coords[2] - coords[0]
			if math.Abs(dx) < value.Epsilon {
				return value.Unit(), operror.InvalidValue("slope undefined for a vertical line")
			}
			return value.Number((coords[3] - coords[1]) / dx), nil
		},
	})
}
