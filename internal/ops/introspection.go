package ops

import (
	"fmt"
	"strings"

	"mathcli/internal/catalog"
	"mathcli/internal/engine"
	"mathcli/internal/operror"
	"mathcli/internal/value"
)

func registerIntrospection(r *catalog.Registry, eng *engine.Engine) {
	cat := catalog.CategoryIntrospection

	r.MustRegister(&catalog.Descriptor{
		Name:       "ops",
		Parameters: []string{"category"},
		Optional:   1,
		Category:   cat,
		Help:       "List operations, optionally one category: ops matrix",
		Capability: func(args []value.Value) (value.Value, error) {
			reg := eng.Registry()
			if len(args) == 1 {
				name, err := value.AsText(args[0], "category")
				if err != nil {
					return value.Unit(), err
				}
				matches := reg.ListByCategory(catalog.Category(strings.ToLower(name)))
				if len(matches) == 0 {
					return value.Unit(), operror.InvalidValue("unknown category %q", name)
				}
				lines := make([]string, 0, len(matches))
				for _, d := range matches {
					lines = append(lines, engine.DescribeUsage(d))
				}
				return value.Text(strings.Join(lines, "\n")), nil
			}
			var lines []string
			for _, c := range reg.Categories() {
				names := make([]string, 0)
				for _, d := range reg.ListByCategory(c) {
					names = append(names, d.Name)
				}
				lines = append(lines, fmt.Sprintf("%s: %s", c, strings.Join(names, ", ")))
			}
			return value.Text(strings.Join(lines, "\n")), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "search",
		Parameters: []string{"query"},
		Variadic:   true,
		MinArgs:    1,
		Category:   cat,
		Help:       "Find operations by name or description: search prime",
		Capability: func(args []value.Value) (value.Value, error) {
			parts := make([]string, len(args))
			for i, a := range args {
				s, err := value.AsText(a, "query")
				if err != nil {
					return value.Unit(), err
				}
				parts[i] = s
			}
			query := strings.Join(parts, " ")
			matches := eng.Registry().Search(query)
			if len(matches) == 0 {
				return value.Text(fmt.Sprintf("no operations match %q", query)), nil
			}
			lines := make([]string, 0, len(matches))
			for _, m := range matches {
				lines = append(lines, fmt.Sprintf("%-24s %s", m.Name, m.Descriptor.Help))
			}
			return value.Text(strings.Join(lines, "\n")), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "help",
		Parameters: []string{"operation"},
		Optional:   1,
		Category:   cat,
		Help:       "Show usage for one operation: help divisors",
		Capability: func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return value.Text("type: ops [category] to list operations, search <query> to find one, help <name> for details"), nil
			}
			name, err := value.AsText(args[0], "operation")
			if err != nil {
				return value.Unit(), err
			}
			if d := eng.Registry().Resolve(name); d != nil {
				return value.Text(fmt.Sprintf("%s\n  %s", engine.DescribeUsage(d), d.Help)), nil
			}
			if fn, ok := eng.Funcs().Get(name); ok {
				return value.Text(fmt.Sprintf("%s = %s", fn.Signature(), fn.Body)), nil
			}
			return value.Unit(), operror.OperationNotFound(name)
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:     "op_count",
		Category: cat,
		Help:     "Number of registered operations: op_count",
		Capability: func(args []value.Value) (value.Value, error) {
			return value.Integer(int64(eng.Registry().Count())), nil
		},
	})
}
