// Package catalog holds the static operation catalog: descriptors with their
// executable capabilities, indexed by unique name in a Registry.
//
// Descriptors are registered once at process start and never mutated or
// removed afterwards, so concurrent read-only lookups are safe.
package catalog

import (
	"mathcli/internal/value"
)

// Category classifies operations for help listing and search.
type Category string

const (
	CategoryArithmetic    Category = "arithmetic"
	CategoryTrigonometry  Category = "trigonometry"
	CategoryAlgebra       Category = "algebra"
	CategoryCalculus      Category = "calculus"
	CategoryStatistics    Category = "statistics"
	CategoryMatrix        Category = "matrix"
	CategoryComplex       Category = "complex"
	CategoryNumberTheory  Category = "number_theory"
	CategorySequences     Category = "sequences"
	CategoryGeometry      Category = "geometry"
	CategoryConversion    Category = "conversion"
	CategoryConstants     Category = "constants"
	CategoryControlFlow   Category = "control_flow"
	CategoryScripting     Category = "scripting"
	CategoryFunctions     Category = "functions"
	CategorySessions      Category = "sessions"
	CategoryIntegration   Category = "integration"
	CategoryIntrospection Category = "introspection"
	CategoryDataAnalysis  Category = "data_analysis"
	CategoryGeneral       Category = "general"
)

// Capability is the executable behavior attached to a descriptor. Arguments
// arrive as raw Values (typically Text tokens, or richer Values substituted
// from the variable store); the capability coerces them itself.
type Capability func(args []value.Value) (value.Value, error)

// Descriptor is the static metadata plus capability for one operation.
// Name is the globally unique, immutable registry key.
type Descriptor struct {
	// Name is the command token users type.
	Name string

	// Parameters are the ordered semantic argument names, used for help
	// text and arity checking.
	Parameters []string

	// Variadic marks an open-ended trailing argument list. MinArgs is the
	// arity floor; when zero it defaults to len(Parameters).
	Variadic bool
	MinArgs  int

	// Optional counts trailing parameters that may be omitted. Ignored for
	// variadic operations.
	Optional int

	// Raw suppresses variable substitution: arguments arrive as literal
	// Text tokens. Used by operations that store command text verbatim,
	// such as function definitions.
	Raw bool

	// Category groups the operation for listing and search.
	Category Category

	// Help is a one-line usage description.
	Help string

	// Capability executes the operation.
	Capability Capability
}

// Validate checks the descriptor invariants before registration.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return ErrNameEmpty
	}
	if d.Capability == nil {
		return ErrCapabilityNil
	}
	if d.Optional > len(d.Parameters) {
		return ErrOptionalExceedsParams
	}
	return nil
}

// MinimumArity returns the smallest accepted argument count.
func (d *Descriptor) MinimumArity() int {
	if d.Variadic {
		if d.MinArgs > 0 {
			return d.MinArgs
		}
		return len(d.Parameters)
	}
	return len(d.Parameters) - d.Optional
}
