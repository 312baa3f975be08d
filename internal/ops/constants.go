package ops

import (
	"math"

	"mathcli/internal/catalog"
)

func registerConstants(r *catalog.Registry) {
	cat := catalog.CategoryConstants

	r.MustRegister(constant("pi", cat, "The circle constant: pi -> 3.1415...", math.Pi))
	r.MustRegister(constant("e", cat, "Euler's number: e -> 2.7182...", math.E))
	r.MustRegister(constant("tau", cat, "Twice pi: tau -> 6.2831...", 2*math.Pi))
	r.MustRegister(constant("phi", cat, "The golden ratio: phi -> 1.6180...", math.Phi))
	r.MustRegister(constant("sqrt2", cat, "Square root of two: sqrt2 -> 1.4142...", math.Sqrt2))
	r.MustRegister(constant("ln2", cat, "Natural log of two: ln2 -> 0.6931...", math.Ln2))
	r.MustRegister(constant("ln10", cat, "Natural log of ten: ln10 -> 2.3025...", math.Log(10)))
	r.MustRegister(constant("euler_gamma", cat, "Euler-Mascheroni constant: euler_gamma -> 0.5772...", 0.5772156649015329))

	r.MustRegister(constant("speed_of_light", cat, "Speed of light in m/s: speed_of_light -> 299792458", 299792458))
	r.MustRegister(constant("gravity", cat, "Standard gravity in m/s^2: gravity -> 9.80665", 9.80665))
	r.MustRegister(constant("avogadro", cat, "Avogadro constant in 1/mol: avogadro -> 6.02214076e23", 6.02214076e23))
	r.MustRegister(constant("boltzmann", cat, "Boltzmann constant in J/K: boltzmann -> 1.380649e-23", 1.380649e-23))
	r.MustRegister(constant("planck", cat, "Planck constant in J*s: planck -> 6.62607015e-34", 6.62607015e-34))
	r.MustRegister(constant("gas_constant", cat, "Molar gas constant in J/(mol*K): gas_constant -> 8.31446...", 8.31446261815324))
	r.MustRegister(constant("elementary_charge", cat, "Elementary charge in coulombs: elementary_charge -> 1.602176634e-19", 1.602176634e-19))
}
