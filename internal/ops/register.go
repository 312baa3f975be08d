// Package ops supplies the built-in operation catalog: stateless capabilities
// over Values, registered into a catalog.Registry at process start. Stateful
// operations (variables, functions, sessions, export) close over the engine
// context instead of reaching for globals.
package ops

import (
	"mathcli/internal/catalog"
	"mathcli/internal/config"
	"mathcli/internal/engine"
)

// RegisterAll installs the full built-in catalog into r. Limits supply the
// per-operation safety ceilings; eng provides the context for stateful
// operations.
func RegisterAll(r *catalog.Registry, eng *engine.Engine, limits config.LimitsConfig) {
	registerArithmetic(r)
	registerTrig(r)
	registerNumberTheory(r, limits)
	registerSequences(r, limits)
	registerStatistics(r)
	registerComplex(r)
	registerMatrix(r)
	registerCalculus(r, limits)
	registerGeometry(r)
	registerConversions(r)
	registerConstants(r)
	registerControlFlow(r)
	registerScripting(r, eng)
	registerFunctions(r, eng)
	registerSessions(r, eng)
	registerExport(r, eng)
	registerIntrospection(r, eng)
}
