// Package value defines the tagged result/argument type that flows through
// the command execution engine, its canonical text rendering, and the shared
// coercion helpers used by operation capabilities.
//
// The canonical text rendering doubles as the persistence and export encoding:
// round-tripping a Value through Format/ParseText is the only durability
// format, so the rendering must stay stable.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Epsilon is the absolute tolerance used by equality and comparison built-ins.
// All numeric input round-trips through text, so exact floating equality is
// never meaningful.
const Epsilon = 1e-10

// MaxNumberMagnitude bounds accepted numeric input.
const MaxNumberMagnitude = 1e15

// MaxIntegerMagnitude bounds accepted integer input.
const MaxIntegerMagnitude = 1e10

// Kind tags the active variant of a Value.
type Kind int

const (
	KindUnit Kind = iota
	KindNumber
	KindInteger
	KindText
	KindBoolean
	KindSequence
	KindMatrix
	KindComplex
	KindMapping
	KindTable
)

// String returns the human-readable kind name used in type-mismatch errors.
func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	case KindBoolean:
		return "boolean"
	case KindSequence:
		return "sequence"
	case KindMatrix:
		return "matrix"
	case KindComplex:
		return "complex"
	case KindMapping:
		return "mapping"
	case KindTable:
		return "table"
	}
	return "unknown"
}

// TableData holds a column-ordered table of Values.
type TableData struct {
	Columns []string
	Rows    [][]Value
}

// Value is a tagged union with exactly one variant active at a time.
// The zero Value is Unit.
type Value struct {
	kind    Kind
	num     float64
	integer int64
	text    string
	boolean bool
	seq     []float64
	matrix  [][]float64
	cplx    complex128
	mapping map[string]float64
	table   *TableData
}

// Unit returns the no-value Value.
func Unit() Value { return Value{kind: KindUnit} }

// Number wraps a float64.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Integer wraps an int64.
func Integer(i int64) Value { return Value{kind: KindInteger, integer: i} }

// Text wraps a string.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Boolean wraps a bool.
func Boolean(b bool) Value { return Value{kind: KindBoolean, boolean: b} }

// Sequence wraps a list of floats.
func Sequence(xs []float64) Value { return Value{kind: KindSequence, seq: xs} }

// Matrix wraps a row-major matrix.
func Matrix(m [][]float64) Value { return Value{kind: KindMatrix, matrix: m} }

// Complex wraps a complex number.
func Complex(re, im float64) Value { return Value{kind: KindComplex, cplx: complex(re, im)} }

// Mapping wraps a string-to-float mapping with unique keys.
func Mapping(m map[string]float64) Value { return Value{kind: KindMapping, mapping: m} }

// Table wraps tabular data.
func Table(columns []string, rows [][]Value) Value {
	return Value{kind: KindTable, table: &TableData{Columns: columns, Rows: rows}}
}

// Kind returns the active variant tag.
func (v Value) Kind() Kind { return v.kind }

// Num returns the float payload (valid for KindNumber).
func (v Value) Num() float64 { return v.num }

// Int returns the integer payload (valid for KindInteger).
func (v Value) Int() int64 { return v.integer }

// Str returns the text payload (valid for KindText).
func (v Value) Str() string { return v.text }

// Bool returns the boolean payload (valid for KindBoolean).
func (v Value) Bool() bool { return v.boolean }

// Seq returns the sequence payload (valid for KindSequence).
func (v Value) Seq() []float64 { return v.seq }

// Mat returns the matrix payload (valid for KindMatrix).
func (v Value) Mat() [][]float64 { return v.matrix }

// Cplx returns the complex payload (valid for KindComplex).
func (v Value) Cplx() complex128 { return v.cplx }

// Map returns the mapping payload (valid for KindMapping).
func (v Value) Map() map[string]float64 { return v.mapping }

// Tab returns the table payload (valid for KindTable).
func (v Value) Tab() *TableData { return v.table }

// IsUnit reports whether v carries no value.
func (v Value) IsUnit() bool { return v.kind == KindUnit }

// formatFloat renders a float in the canonical shortest form ("5" not "5.0").
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Format renders the canonical, stable text encoding of v. This is the
// persistence and export format; changing it breaks round-trips.
func (v Value) Format() string {
	switch v.kind {
	case KindUnit:
		return ""
	case KindNumber:
		return formatFloat(v.num)
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	case KindText:
		return v.text
	case KindBoolean:
		return strconv.FormatBool(v.boolean)
	case KindSequence:
		parts := make([]string, len(v.seq))
		for i, f := range v.seq {
			parts[i] = formatFloat(f)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMatrix:
		rows := make([]string, len(v.matrix))
		for i, row := range v.matrix {
			parts := make([]string, len(row))
			for j, f := range row {
				parts[j] = formatFloat(f)
			}
			rows[i] = "[" + strings.Join(parts, ", ") + "]"
		}
		return "[" + strings.Join(rows, ", ") + "]"
	case KindComplex:
		re, im := real(v.cplx), imag(v.cplx)
		if im < 0 {
			return fmt.Sprintf("%s-%si", formatFloat(re), formatFloat(-im))
		}
		return fmt.Sprintf("%s+%si", formatFloat(re), formatFloat(im))
	case KindMapping:
		keys := make([]string, 0, len(v.mapping))
		for k := range v.mapping {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + formatFloat(v.mapping[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindTable:
		var b strings.Builder
		b.WriteString(strings.Join(v.table.Columns, " | "))
		for _, row := range v.table.Rows {
			parts := make([]string, len(row))
			for i, cell := range row {
				parts[i] = cell.Format()
			}
			b.WriteString("\n" + strings.Join(parts, " | "))
		}
		return b.String()
	}
	return ""
}

// String implements fmt.Stringer with the canonical rendering.
func (v Value) String() string { return v.Format() }

// ParseText reparses canonical text into a Value, trying in order:
// floating-point literal, boolean literal, fallback to raw text. This is the
// documented import behavior; richer variants (sequences, matrices) re-enter
// as text and are re-coerced lazily by the consuming operation.
func ParseText(s string) Value {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(f)
	}
	switch strings.ToLower(s) {
	case "true":
		return Boolean(true)
	case "false":
		return Boolean(false)
	}
	return Text(s)
}

// NumericEqual reports |a-b| <= Epsilon.
func NumericEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= Epsilon
}
