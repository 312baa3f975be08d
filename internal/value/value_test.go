package value

import (
	"testing"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{4, "4"},
		{4.5, "4.5"},
		{-0.25, "-0.25"},
		{1e10, "1e+10"},
		{0, "0"},
	}
	for _, tc := range cases {
		if got := Number(tc.in).Format(); got != tc.want {
			t.Errorf("Number(%v).Format() = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatKinds(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Integer(42), "42"},
		{Boolean(true), "true"},
		{Boolean(false), "false"},
		{Text("hello"), "hello"},
		{Sequence([]float64{1, 2, 3}), "[1, 2, 3]"},
		{Sequence(nil), "[]"},
		{Matrix([][]float64{{1, 2}, {3, 4}}), "[[1, 2], [3, 4]]"},
		{Complex(3, 4), "3+4i"},
		{Complex(3, -4), "3-4i"},
		{Complex(0, 1), "0+1i"},
		{Unit(), ""},
	}
	for _, tc := range cases {
		if got := tc.v.Format(); got != tc.want {
			t.Errorf("Format() = %q, want %q (kind %s)", got, tc.want, tc.v.Kind())
		}
	}
}

func TestParseTextOrder(t *testing.T) {
	// Numeric first, then boolean, then raw text.
	if v := ParseText("4.5"); v.Kind() != KindNumber || v.Num() != 4.5 {
		t.Fatalf("ParseText(4.5) = %v (%s)", v, v.Kind())
	}
	if v := ParseText("true"); v.Kind() != KindBoolean || !v.Bool() {
		t.Fatalf("ParseText(true) = %v (%s)", v, v.Kind())
	}
	if v := ParseText("hello"); v.Kind() != KindText || v.Str() != "hello" {
		t.Fatalf("ParseText(hello) = %v (%s)", v, v.Kind())
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, v := range []Value{Number(4.5), Number(-17), Boolean(true), Text("abc")} {
		got := ParseText(v.Format())
		if got.Format() != v.Format() {
			t.Errorf("round trip changed %q to %q", v.Format(), got.Format())
		}
	}
}

func TestNumericEqual(t *testing.T) {
	if !NumericEqual(1.0, 1.0+Epsilon/2) {
		t.Error("values within Epsilon should compare equal")
	}
	if NumericEqual(1.0, 1.0+Epsilon*10) {
		t.Error("values beyond Epsilon should compare unequal")
	}
}
