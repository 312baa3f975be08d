// Package export reads and writes session snapshots: variables rendered in
// the canonical text encoding plus user functions as flat records. JSON is
// the round-trip format; Markdown and LaTeX are human-readable renderings of
// the same content.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"mathcli/internal/funcs"
	"mathcli/internal/operror"
)

// Version is the snapshot schema version.
const Version = "1.0"

// Snapshot is the JSON export shape. Variables-only and functions-only files
// use the same shape with the other field empty.
type Snapshot struct {
	ExportedAt string            `json:"exported_at"`
	Version    string            `json:"version"`
	Variables  map[string]string `json:"variables,omitempty"`
	Functions  []funcs.Record    `json:"functions,omitempty"`
}

// NewSnapshot stamps a snapshot with the current time and schema version.
func NewSnapshot(variables map[string]string, functions []funcs.Record) Snapshot {
	return Snapshot{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Version:    Version,
		Variables:  variables,
		Functions:  functions,
	}
}

// WriteJSON writes the snapshot as indented JSON.
func WriteJSON(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return operror.ExecutionError("failed to encode snapshot: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return operror.ExecutionError("failed to write %s: %v", path, err)
	}
	return nil
}

// WriteMarkdown renders the snapshot with a ## Variables and a ## Functions
// section.
func WriteMarkdown(path string, snap Snapshot) error {
	var b strings.Builder
	b.WriteString("# Math CLI Session\n\n")
	fmt.Fprintf(&b, "*Exported: %s*\n\n", snap.ExportedAt)

	if len(snap.Variables) > 0 {
		b.WriteString("## Variables\n\n")
		names := make([]string, 0, len(snap.Variables))
		for name := range snap.Variables {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "- `%s` = `%s`\n", name, snap.Variables[name])
		}
		b.WriteString("\n")
	}

	if len(snap.Functions) > 0 {
		b.WriteString("## Functions\n\n")
		for _, fn := range snap.Functions {
			fmt.Fprintf(&b, "- `%s(%s)` = `%s`\n", fn.Name, strings.Join(fn.Parameters, ", "), fn.Body)
		}
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return operror.ExecutionError("failed to write %s: %v", path, err)
	}
	return nil
}

// WriteLaTeX renders the snapshot as a standalone LaTeX document.
func WriteLaTeX(path string, snap Snapshot) error {
	var b strings.Builder
	b.WriteString("\\documentclass{article}\n")
	b.WriteString("\\usepackage{amsmath}\n")
	b.WriteString("\\title{Math CLI Session}\n")
	fmt.Fprintf(&b, "\\date{%s}\n", snap.ExportedAt)
	b.WriteString("\\begin{document}\n\\maketitle\n")

	if len(snap.Variables) > 0 {
		b.WriteString("\\section{Variables}\n\\begin{itemize}\n")
		names := make([]string, 0, len(snap.Variables))
		for name := range snap.Variables {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "\\item $%s = %s$\n", name, snap.Variables[name])
		}
		b.WriteString("\\end{itemize}\n")
	}

	if len(snap.Functions) > 0 {
		b.WriteString("\\section{Functions}\n\\begin{itemize}\n")
		for _, fn := range snap.Functions {
			fmt.Fprintf(&b, "\\item $\\text{%s}(%s) = \\text{%s}$\n",
				fn.Name, strings.Join(fn.Parameters, ", "), fn.Body)
		}
		b.WriteString("\\end{itemize}\n")
	}

	b.WriteString("\\end{document}\n")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return operror.ExecutionError("failed to write %s: %v", path, err)
	}
	return nil
}

// Write dispatches on format: json, markdown (md), or latex (tex).
func Write(path string, snap Snapshot, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		return WriteJSON(path, snap)
	case "markdown", "md":
		return WriteMarkdown(path, snap)
	case "latex", "tex":
		return WriteLaTeX(path, snap)
	}
	return operror.InvalidValue("unsupported export format %q", format)
}

// Read loads a JSON snapshot. A missing file fails FileNotFound; malformed
// JSON fails ImportError. Missing sections are tolerated.
func Read(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, operror.FileNotFound(path)
		}
		return Snapshot{}, operror.ImportError("failed to read %s: %v", path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, operror.ImportError("invalid session file %s: %v", path, err)
	}
	return snap, nil
}
