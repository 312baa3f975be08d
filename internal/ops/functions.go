package ops

import (
	"fmt"
	"strings"

	"mathcli/internal/catalog"
	"mathcli/internal/engine"
	"mathcli/internal/funcs"
	"mathcli/internal/operror"
	"mathcli/internal/value"
)

func registerFunctions(r *catalog.Registry, eng *engine.Engine) {
	cat := catalog.CategoryFunctions

	r.MustRegister(&catalog.Descriptor{
		Name:       "def",
		Parameters: []string{"name", "params", "body"},
		Variadic:   true,
		MinArgs:    3,
		Raw:        true,
		Category:   cat,
		Help:       "Define a function: def square x = multiply $x $x",
		Capability: func(args []value.Value) (value.Value, error) {
			tokens := make([]string, len(args))
			for i, a := range args {
				tokens[i] = a.Str()
			}
			sep := -1
			for i, tok := range tokens {
				if tok == "=" {
					sep = i
					break
				}
			}
			if sep < 1 {
				return value.Unit(), operror.ParsingError("def requires: def name [params...] = body")
			}
			name := tokens[0]
			params := tokens[1:sep]
			body := strings.Join(tokens[sep+1:], " ")
			if strings.TrimSpace(body) == "" {
				return value.Unit(), operror.ParsingError("def requires a non-empty body")
			}
			if eng.Registry().Has(name) {
				return value.Unit(), operror.InvalidValue("name %q is a built-in operation", name)
			}
			seen := make(map[string]bool, len(params))
			for _, p := range params {
				if seen[p] {
					return value.Unit(), operror.InvalidValue("duplicate parameter %q", p)
				}
				seen[p] = true
			}
			if err := eng.Funcs().Define(name, params, body, ""); err != nil {
				return value.Unit(), err
			}
			fn := funcs.UserFunction{Name: name, Parameters: params, Body: body}
			return value.Text(fmt.Sprintf("defined %s", fn.Signature())), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "undef",
		Parameters: []string{"name"},
		Category:   cat,
		Help:       "Remove a function definition: undef square",
		Capability: func(args []value.Value) (value.Value, error) {
			name, err := value.AsText(args[0], "name")
			if err != nil {
				return value.Unit(), err
			}
			if err := eng.Funcs().Undefine(name); err != nil {
				return value.Unit(), err
			}
			return value.Text(fmt.Sprintf("removed %s", name)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:     "funcs",
		Category: cat,
		Help:     "List all defined functions: funcs",
		Capability: func(args []value.Value) (value.Value, error) {
			fns := eng.Funcs().List()
			if len(fns) == 0 {
				return value.Text("no functions defined"), nil
			}
			lines := make([]string, 0, len(fns))
			for _, fn := range fns {
				lines = append(lines, fmt.Sprintf("%s = %s", fn.Signature(), fn.Body))
			}
			return value.Text(strings.Join(lines, "\n")), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "func_show",
		Parameters: []string{"name"},
		Category:   cat,
		Help:       "Show one function definition: func_show square",
		Capability: func(args []value.Value) (value.Value, error) {
			name, err := value.AsText(args[0], "name")
			if err != nil {
				return value.Unit(), err
			}
			fn, ok := eng.Funcs().Get(name)
			if !ok {
				return value.Unit(), operror.FunctionNotFound(name)
			}
			return value.Text(fmt.Sprintf("%s = %s", fn.Signature(), fn.Body)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:     "clear_funcs",
		Category: cat,
		Help:     "Remove every function definition: clear_funcs",
		Capability: func(args []value.Value) (value.Value, error) {
			if err := eng.Funcs().Clear(); err != nil {
				return value.Unit(), err
			}
			return value.Text("all functions cleared"), nil
		},
	})
}
