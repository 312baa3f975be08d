package value

import (
	"math"
	"strconv"
	"strings"

	"mathcli/internal/operror"
)

// Coercion helpers. The executor hands raw tokens to capabilities as Text
// values; capabilities call these to obtain typed payloads. Coercion is lazy
// and operation-specific: an argument that is never coerced is never
// validated. Each helper takes the semantic argument name for error messages.

// AsNumber coerces v to a float64. Text is parsed as a numeric literal;
// NaN, infinities and magnitudes above MaxNumberMagnitude are rejected.
func AsNumber(v Value, arg string) (float64, error) {
	switch v.kind {
	case KindNumber:
		return checkNumber(v.num, arg)
	case KindInteger:
		return float64(v.integer), nil
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil {
			return 0, operror.InvalidArgumentType(arg, "a number", strconv.Quote(v.text))
		}
		return checkNumber(f, arg)
	}
	return 0, operror.InvalidArgumentType(arg, "a number", v.kind.String())
}

func checkNumber(f float64, arg string) (float64, error) {
	if math.IsNaN(f) {
		return 0, operror.InvalidValue("argument %q: NaN is not allowed", arg)
	}
	if math.IsInf(f, 0) {
		return 0, operror.InvalidValue("argument %q: infinity is not allowed", arg)
	}
	if math.Abs(f) > MaxNumberMagnitude {
		return 0, operror.InvalidValue("argument %q: number too large (>%g)", arg, MaxNumberMagnitude)
	}
	return f, nil
}

// AsInteger coerces v to an int64. Numbers must be whole; magnitudes above
// MaxIntegerMagnitude are rejected.
func AsInteger(v Value, arg string) (int64, error) {
	switch v.kind {
	case KindInteger:
		return v.integer, nil
	case KindNumber, KindText:
		f, err := AsNumber(v, arg)
		if err != nil {
			return 0, err
		}
		if f != math.Trunc(f) {
			return 0, operror.InvalidArgumentType(arg, "an integer", formatFloat(f))
		}
		if math.Abs(f) > MaxIntegerMagnitude {
			return 0, operror.InvalidValue("argument %q: integer too large (>%g)", arg, MaxIntegerMagnitude)
		}
		return int64(f), nil
	}
	return 0, operror.InvalidArgumentType(arg, "an integer", v.kind.String())
}

// AsBoolean coerces v to a bool, interpreting the case-insensitive literals
// "true" and "false".
func AsBoolean(v Value, arg string) (bool, error) {
	switch v.kind {
	case KindBoolean:
		return v.boolean, nil
	case KindText:
		switch strings.ToLower(strings.TrimSpace(v.text)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, operror.InvalidArgumentType(arg, "a boolean", strconv.Quote(v.text))
	}
	return false, operror.InvalidArgumentType(arg, "a boolean", v.kind.String())
}

// AsText coerces v to a string. Non-text values render canonically.
func AsText(v Value, arg string) (string, error) {
	if v.kind == KindUnit {
		return "", operror.InvalidArgumentType(arg, "text", v.kind.String())
	}
	return v.Format(), nil
}

// AsSequence coerces v to a list of floats. Sequence values pass through
// without re-parsing; scalars become singletons; text accepts either a
// bracketed canonical rendering or a bare comma-separated list.
func AsSequence(v Value, arg string) ([]float64, error) {
	switch v.kind {
	case KindSequence:
		return v.seq, nil
	case KindNumber:
		return []float64{v.num}, nil
	case KindInteger:
		return []float64{float64(v.integer)}, nil
	case KindText:
		s := strings.TrimSpace(v.text)
		s = strings.TrimPrefix(s, "[")
		s = strings.TrimSuffix(s, "]")
		if s == "" {
			return nil, nil
		}
		parts := strings.Split(s, ",")
		seq := make([]float64, len(parts))
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, operror.InvalidArgumentType(arg, "a sequence of numbers", strconv.Quote(v.text))
			}
			seq[i] = f
		}
		return seq, nil
	}
	return nil, operror.InvalidArgumentType(arg, "a sequence of numbers", v.kind.String())
}

// AsMatrix coerces v to a row-major matrix. Text uses the original literal
// syntax "1,2;3,4" (rows separated by semicolons) or the canonical bracketed
// rendering. All rows must have equal length.
func AsMatrix(v Value, arg string) ([][]float64, error) {
	switch v.kind {
	case KindMatrix:
		return v.matrix, nil
	case KindText:
		s := strings.TrimSpace(v.text)
		if strings.HasPrefix(s, "[[") {
			s = strings.TrimPrefix(s, "[")
			s = strings.TrimSuffix(s, "]")
			s = strings.ReplaceAll(s, "], [", ";")
			s = strings.Trim(s, "[]")
		}
		rowTexts := strings.Split(s, ";")
		m := make([][]float64, len(rowTexts))
		for i, rt := range rowTexts {
			row, err := AsSequence(Text(rt), arg)
			if err != nil {
				return nil, operror.InvalidArgumentType(arg, "a matrix", strconv.Quote(v.text))
			}
			m[i] = row
		}
		for i := 1; i < len(m); i++ {
			if len(m[i]) != len(m[0]) {
				return nil, operror.MatrixDimensionMismatch("ragged matrix: row %d has %d columns, expected %d", i+1, len(m[i]), len(m[0]))
			}
		}
		return m, nil
	}
	return nil, operror.InvalidArgumentType(arg, "a matrix", v.kind.String())
}

// AsComplex coerces v to a complex number. Real scalars promote with a zero
// imaginary part; text accepts the canonical "a+bi" rendering.
func AsComplex(v Value, arg string) (complex128, error) {
	switch v.kind {
	case KindComplex:
		return v.cplx, nil
	case KindNumber:
		return complex(v.num, 0), nil
	case KindInteger:
		return complex(float64(v.integer), 0), nil
	case KindText:
		if c, ok := parseComplex(strings.TrimSpace(v.text)); ok {
			return c, nil
		}
		return 0, operror.InvalidArgumentType(arg, "a complex number", strconv.Quote(v.text))
	}
	return 0, operror.InvalidArgumentType(arg, "a complex number", v.kind.String())
}

// parseComplex parses "a+bi", "a-bi", "bi", or a plain real literal.
func parseComplex(s string) (complex128, bool) {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return complex(f, 0), true
	}
	if !strings.HasSuffix(s, "i") {
		return 0, false
	}
	body := strings.TrimSuffix(s, "i")
	// Split on the last +/- that is not an exponent sign or leading sign.
	for idx := len(body) - 1; idx > 0; idx-- {
		ch := body[idx]
		if ch != '+' && ch != '-' {
			continue
		}
		if prev := body[idx-1]; prev == 'e' || prev == 'E' {
			continue
		}
		re, err1 := strconv.ParseFloat(body[:idx], 64)
		imText := body[idx:]
		if imText == "+" {
			imText = "1"
		} else if imText == "-" {
			imText = "-1"
		}
		im, err2 := strconv.ParseFloat(imText, 64)
		if err1 == nil && err2 == nil {
			return complex(re, im), true
		}
		return 0, false
	}
	// Pure imaginary: "3i", "i", "-i".
	switch body {
	case "", "+":
		return complex(0, 1), true
	case "-":
		return complex(0, -1), true
	}
	if im, err := strconv.ParseFloat(body, 64); err == nil {
		return complex(0, im), true
	}
	return 0, false
}
