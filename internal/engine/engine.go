// Package engine implements the command executor: it turns one raw command
// line into one Value or a typed error, never leaking an unhandled fault to
// the caller.
package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mathcli/internal/catalog"
	"mathcli/internal/funcs"
	"mathcli/internal/operror"
	"mathcli/internal/session"
	"mathcli/internal/value"
	"mathcli/internal/vars"
)

// Engine is an explicit execution context: registry, stores, and session
// manager wired together. A process may hold several independent engines.
type Engine struct {
	reg      *catalog.Registry
	vars     *vars.Store
	funcs    *funcs.Registry
	sessions *session.Manager
	log      *zap.Logger
	maxDepth int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithMaxRecursionDepth caps user-function call nesting.
func WithMaxRecursionDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// New wires an engine context. The session manager may be nil for engines
// that never touch session operations (some tests).
func New(reg *catalog.Registry, store *vars.Store, fnReg *funcs.Registry, sessions *session.Manager, opts ...Option) *Engine {
	e := &Engine{
		reg:      reg,
		vars:     store,
		funcs:    fnReg,
		sessions: sessions,
		log:      zap.NewNop(),
		maxDepth: 64,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the operation registry.
func (e *Engine) Registry() *catalog.Registry { return e.reg }

// Vars returns the variable store.
func (e *Engine) Vars() *vars.Store { return e.vars }

// Funcs returns the user function registry.
func (e *Engine) Funcs() *funcs.Registry { return e.funcs }

// Sessions returns the session manager.
func (e *Engine) Sessions() *session.Manager { return e.sessions }

// Execute runs one raw command line. Every failure is a member of the
// operror taxonomy; a failed command performs no partial writes and never
// terminates the process.
func (e *Engine) Execute(line string) (value.Value, error) {
	v, err := e.exec(line, 0)
	if err != nil {
		return value.Unit(), operror.Normalize(err)
	}
	return v, nil
}

func (e *Engine) exec(line string, depth int) (result value.Value, err error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return value.Unit(), operror.ParsingError("empty command")
	}
	name, rawArgs := tokens[0], tokens[1:]

	desc := e.reg.Resolve(name)
	if desc == nil {
		if fn, ok := e.funcs.Get(name); ok {
			return e.callFunction(fn, rawArgs, depth)
		}
		return value.Unit(), operror.OperationNotFound(name)
	}

	if err := checkArity(desc, len(rawArgs)); err != nil {
		return value.Unit(), err
	}

	var args []value.Value
	if desc.Raw {
		args = make([]value.Value, len(rawArgs))
		for i, tok := range rawArgs {
			args[i] = value.Text(tok)
		}
	} else {
		args = e.substitute(rawArgs)
	}

	// Capabilities may only fail with taxonomy errors; a panic inside one
	// is normalized instead of crossing the executor boundary.
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("Capability panicked", zap.String("operation", name), zap.Any("panic", r))
			result = value.Unit()
			err = operror.ExecutionError("operation %s failed: %v", name, r)
		}
	}()

	v, err := desc.Capability(args)
	if err != nil {
		return value.Unit(), operror.Normalize(err)
	}
	return v, nil
}

// checkArity enforces the descriptor's argument-count contract.
func checkArity(d *catalog.Descriptor, got int) error {
	if d.Variadic {
		if min := d.MinimumArity(); got < min {
			return operror.InvalidArgumentCountMin(min, got)
		}
		return nil
	}
	max := len(d.Parameters)
	min := d.MinimumArity()
	if got < min || got > max {
		return operror.InvalidArgumentCount(max, got)
	}
	return nil
}

// substitute resolves $name tokens against the variable store. An
// unresolvable reference passes through as literal text; plain tokens stay
// opaque Text values for the capability to coerce lazily.
func (e *Engine) substitute(rawArgs []string) []value.Value {
	args := make([]value.Value, len(rawArgs))
	for i, tok := range rawArgs {
		if strings.HasPrefix(tok, "$") && len(tok) > 1 {
			if v, ok := e.vars.Get(tok[1:]); ok {
				args[i] = v
				continue
			}
		}
		args[i] = value.Text(tok)
	}
	return args
}

// callFunction binds arguments in a fresh scope frame, executes the body
// line recursively, and pops the frame on all paths.
func (e *Engine) callFunction(fn funcs.UserFunction, rawArgs []string, depth int) (value.Value, error) {
	if depth >= e.maxDepth {
		return value.Unit(), operror.ExecutionError("function %s exceeds maximum call depth %d", fn.Name, e.maxDepth)
	}
	if len(rawArgs) != len(fn.Parameters) {
		return value.Unit(), operror.InvalidArgumentCount(len(fn.Parameters), len(rawArgs))
	}
	if strings.TrimSpace(fn.Body) == "" {
		return value.Unit(), operror.ExecutionError("function %s has empty body", fn.Name)
	}

	args := e.substitute(rawArgs)

	e.vars.PushScope()
	defer e.vars.PopScope()

	for i, param := range fn.Parameters {
		if err := e.vars.Set(param, args[i], false); err != nil {
			return value.Unit(), err
		}
	}
	return e.exec(fn.Body, depth+1)
}

// DescribeUsage renders "name <p1> <p2> ..." for help output.
func DescribeUsage(d *catalog.Descriptor) string {
	var b strings.Builder
	b.WriteString(d.Name)
	for i, p := range d.Parameters {
		if i >= len(d.Parameters)-d.Optional && !d.Variadic {
			fmt.Fprintf(&b, " [%s]", p)
		} else {
			fmt.Fprintf(&b, " <%s>", p)
		}
	}
	if d.Variadic {
		b.WriteString(" ...")
	}
	return b.String()
}
