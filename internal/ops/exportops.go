package ops

import (
	"fmt"
	"strings"

	"mathcli/internal/catalog"
	"mathcli/internal/engine"
	"mathcli/internal/export"
	"mathcli/internal/value"
)

// pathAndFormat pulls a file path plus an optional trailing format token.
func pathAndFormat(args []value.Value) (string, string, error) {
	path, err := value.AsText(args[0], "path")
	if err != nil {
		return "", "", err
	}
	format := "json"
	if len(args) == 2 {
		format, err = value.AsText(args[1], "format")
		if err != nil {
			return "", "", err
		}
	}
	return path, strings.ToLower(format), nil
}

// mergeFlag reads an optional trailing merge/replace token, defaulting to
// replace.
func mergeFlag(args []value.Value, idx int) (bool, error) {
	if len(args) <= idx {
		return false, nil
	}
	mode, err := value.AsText(args[idx], "mode")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(mode, "merge"), nil
}

func registerExport(r *catalog.Registry, eng *engine.Engine) {
	cat := catalog.CategoryIntegration

	r.MustRegister(&catalog.Descriptor{
		Name:       "export_session",
		Parameters: []string{"path", "format"},
		Optional:   1,
		Category:   cat,
		Help:       "Write variables and functions to a file: export_session work.json",
		Capability: func(args []value.Value) (value.Value, error) {
			path, format, err := pathAndFormat(args)
			if err != nil {
				return value.Unit(), err
			}
			snap := export.NewSnapshot(eng.Vars().ExportVariables(), eng.Funcs().Export())
			if err := export.Write(path, snap, format); err != nil {
				return value.Unit(), err
			}
			return value.Text(fmt.Sprintf("exported %d variables and %d functions to %s",
				len(snap.Variables), len(snap.Functions), path)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "import_session",
		Parameters: []string{"path", "mode"},
		Optional:   1,
		Category:   cat,
		Help:       "Load variables and functions from a JSON export: import_session work.json merge",
		Capability: func(args []value.Value) (value.Value, error) {
			path, err := value.AsText(args[0], "path")
			if err != nil {
				return value.Unit(), err
			}
			merge, err := mergeFlag(args, 1)
			if err != nil {
				return value.Unit(), err
			}
			snap, err := export.Read(path)
			if err != nil {
				return value.Unit(), err
			}
			if err := eng.Vars().ImportVariables(snap.Variables, merge); err != nil {
				return value.Unit(), err
			}
			if err := eng.Funcs().Import(snap.Functions, merge); err != nil {
				return value.Unit(), err
			}
			return value.Text(fmt.Sprintf("imported %d variables and %d functions from %s",
				len(snap.Variables), len(snap.Functions), path)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "export_vars",
		Parameters: []string{"path", "format"},
		Optional:   1,
		Category:   cat,
		Help:       "Write only variables to a file: export_vars vars.json",
		Capability: func(args []value.Value) (value.Value, error) {
			path, format, err := pathAndFormat(args)
			if err != nil {
				return value.Unit(), err
			}
			snap := export.NewSnapshot(eng.Vars().ExportVariables(), nil)
			if err := export.Write(path, snap, format); err != nil {
				return value.Unit(), err
			}
			return value.Text(fmt.Sprintf("exported %d variables to %s", len(snap.Variables), path)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "import_vars",
		Parameters: []string{"path", "mode"},
		Optional:   1,
		Category:   cat,
		Help:       "Load only variables from a JSON export: import_vars vars.json",
		Capability: func(args []value.Value) (value.Value, error) {
			path, err := value.AsText(args[0], "path")
			if err != nil {
				return value.Unit(), err
			}
			merge, err := mergeFlag(args, 1)
			if err != nil {
				return value.Unit(), err
			}
			snap, err := export.Read(path)
			if err != nil {
				return value.Unit(), err
			}
			if err := eng.Vars().ImportVariables(snap.Variables, merge); err != nil {
				return value.Unit(), err
			}
			return value.Text(fmt.Sprintf("imported %d variables from %s", len(snap.Variables), path)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "export_funcs",
		Parameters: []string{"path", "format"},
		Optional:   1,
		Category:   cat,
		Help:       "Write only functions to a file: export_funcs funcs.json",
		Capability: func(args []value.Value) (value.Value, error) {
			path, format, err := pathAndFormat(args)
			if err != nil {
				return value.Unit(), err
			}
			snap := export.NewSnapshot(nil, eng.Funcs().Export())
			if err := export.Write(path, snap, format); err != nil {
				return value.Unit(), err
			}
			return value.Text(fmt.Sprintf("exported %d functions to %s", len(snap.Functions), path)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "import_funcs",
		Parameters: []string{"path", "mode"},
		Optional:   1,
		Category:   cat,
		Help:       "Load only functions from a JSON export: import_funcs funcs.json merge",
		Capability: func(args []value.Value) (value.Value, error) {
			path, err := value.AsText(args[0], "path")
			if err != nil {
				return value.Unit(), err
			}
			merge, err := mergeFlag(args, 1)
			if err != nil {
				return value.Unit(), err
			}
			snap, err := export.Read(path)
			if err != nil {
				return value.Unit(), err
			}
			if err := eng.Funcs().Import(snap.Functions, merge); err != nil {
				return value.Unit(), err
			}
			return value.Text(fmt.Sprintf("imported %d functions from %s", len(snap.Functions), path)), nil
		},
	})
}
