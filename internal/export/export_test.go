package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mathcli/internal/funcs"
	"mathcli/internal/operror"
)

func sampleSnapshot() Snapshot {
	return NewSnapshot(
		map[string]string{"radius": "4", "flag": "true"},
		[]funcs.Record{{Name: "square", Parameters: []string{"x"}, Body: "multiply $x $x"}},
	)
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	snap := sampleSnapshot()

	if err := Write(path, snap, "json"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.Version != Version {
		t.Errorf("Version = %q", got.Version)
	}
	if got.Variables["radius"] != "4" || got.Variables["flag"] != "true" {
		t.Errorf("Variables = %v", got.Variables)
	}
	if len(got.Functions) != 1 || got.Functions[0].Body != "multiply $x $x" {
		t.Errorf("Functions = %v", got.Functions)
	}
}

func TestJSONShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := WriteJSON(path, sampleSnapshot()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"exported_at", "version", "variables", "functions"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}
}

func TestEmptySectionsOmitted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.json")
	if err := WriteJSON(path, NewSnapshot(map[string]string{"a": "1"}, nil)); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"functions"`) {
		t.Error("empty functions section should be omitted")
	}
}

func TestMarkdownRendering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.md")
	if err := Write(path, sampleSnapshot(), "markdown"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	text := string(data)
	for _, want := range []string{
		"# Math CLI Session",
		"## Variables",
		"- `radius` = `4`",
		"## Functions",
		"- `square(x)` = `multiply $x $x`",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestLaTeXRendering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.tex")
	if err := Write(path, sampleSnapshot(), "latex"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	text := string(data)
	for _, want := range []string{
		`\documentclass{article}`,
		`\section{Variables}`,
		`\section{Functions}`,
		`\end{document}`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("latex missing %q", want)
		}
	}
}

func TestUnsupportedFormat(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "x"), sampleSnapshot(), "xml")
	if !errors.Is(err, operror.ErrInvalidValue) {
		t.Fatalf("Write(xml) = %v, want InvalidValue", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, operror.ErrFileNotFound) {
		t.Fatalf("Read(missing) = %v, want FileNotFound", err)
	}
}

func TestReadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Read(path)
	if !errors.Is(err, operror.ErrImportError) {
		t.Fatalf("Read(malformed) = %v, want ImportError", err)
	}
}
