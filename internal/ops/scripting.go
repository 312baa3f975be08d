package ops

import (
	"fmt"
	"sort"
	"strings"

	"mathcli/internal/catalog"
	"mathcli/internal/engine"
	"mathcli/internal/operror"
	"mathcli/internal/value"
)

// storedValue reparses literal text tokens so variables hold typed values:
// set radius 4 stores Number(4), not the token "4". Already-typed values
// (a substituted $name) pass through unchanged.
func storedValue(v value.Value) value.Value {
	if v.Kind() == value.KindText {
		return value.ParseText(v.Str())
	}
	return v
}

func registerScripting(r *catalog.Registry, eng *engine.Engine) {
	cat := catalog.CategoryScripting

	r.MustRegister(&catalog.Descriptor{
		Name:       "set",
		Parameters: []string{"name", "value"},
		Category:   cat,
		Help:       "Store a value under a name: set radius 4",
		Capability: func(args []value.Value) (value.Value, error) {
			name, err := value.AsText(args[0], "name")
			if err != nil {
				return value.Unit(), err
			}
			if name == "" {
				return value.Unit(), operror.InvalidValue("variable name must not be empty")
			}
			v := storedValue(args[1])
			if err := eng.Vars().Set(name, v, false); err != nil {
				return value.Unit(), err
			}
			return v, nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "get",
		Parameters: []string{"name"},
		Category:   cat,
		Help:       "Recall a stored value: get radius -> 4",
		Capability: func(args []value.Value) (value.Value, error) {
			name, err := value.AsText(args[0], "name")
			if err != nil {
				return value.Unit(), err
			}
			v, ok := eng.Vars().Get(name)
			if !ok {
				return value.Unit(), operror.VariableNotFound(name)
			}
			return v, nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "unset",
		Parameters: []string{"name"},
		Category:   cat,
		Help:       "Remove a stored value: unset radius",
		Capability: func(args []value.Value) (value.Value, error) {
			name, err := value.AsText(args[0], "name")
			if err != nil {
				return value.Unit(), err
			}
			if err := eng.Vars().Unset(name); err != nil {
				return value.Unit(), err
			}
			return value.Text(fmt.Sprintf("removed %s", name)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:     "vars",
		Category: cat,
		Help:     "List all visible variables: vars",
		Capability: func(args []value.Value) (value.Value, error) {
			all := eng.Vars().GetAllVariables()
			if len(all) == 0 {
				return value.Text("no variables defined"), nil
			}
			names := make([]string, 0, len(all))
			for name := range all {
				names = append(names, name)
			}
			sort.Strings(names)
			lines := make([]string, 0, len(names))
			for _, name := range names {
				lines = append(lines, fmt.Sprintf("%s = %s", name, all[name].Format()))
			}
			return value.Text(strings.Join(lines, "\n")), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "persist",
		Parameters: []string{"name", "value"},
		Optional:   1,
		Category:   cat,
		Help:       "Store a value in the persistent tier, or promote an existing variable: persist tax_rate 0.2",
		Capability: func(args []value.Value) (value.Value, error) {
			name, err := value.AsText(args[0], "name")
			if err != nil {
				return value.Unit(), err
			}
			if name == "" {
				return value.Unit(), operror.InvalidValue("variable name must not be empty")
			}
			if len(args) == 1 {
				if err := eng.Vars().Persist(name); err != nil {
					return value.Unit(), err
				}
				return value.Text(fmt.Sprintf("persisted %s", name)), nil
			}
			v := storedValue(args[1])
			if err := eng.Vars().Set(name, v, true); err != nil {
				return value.Unit(), err
			}
			return v, nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "clear_vars",
		Parameters: []string{"include_persistent"},
		Optional:   1,
		Category:   cat,
		Help:       "Remove scoped variables; clear_vars true removes persistent ones too",
		Capability: func(args []value.Value) (value.Value, error) {
			if len(args) == 1 {
				all, err := value.AsBoolean(args[0], "include_persistent")
				if err != nil {
					return value.Unit(), err
				}
				if all {
					if err := eng.Vars().ClearAll(); err != nil {
						return value.Unit(), err
					}
					return value.Text("all variables cleared"), nil
				}
			}
			eng.Vars().ClearScoped()
			return value.Text("scoped variables cleared"), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:     "scope_depth",
		Category: cat,
		Help:     "Current scope nesting depth: scope_depth -> 1",
		Capability: func(args []value.Value) (value.Value, error) {
			return value.Integer(int64(eng.Vars().Depth())), nil
		},
	})
}
