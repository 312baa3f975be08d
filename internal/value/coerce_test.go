package value

import (
	"errors"
	"math"
	"testing"

	"mathcli/internal/operror"
)

func TestAsNumber(t *testing.T) {
	got, err := AsNumber(Text("4.5"), "x")
	if err != nil {
		t.Fatalf("AsNumber(4.5): %v", err)
	}
	if got != 4.5 {
		t.Fatalf("AsNumber(4.5) = %v", got)
	}

	if _, err := AsNumber(Text("banana"), "x"); !errors.Is(err, operror.ErrInvalidArgumentType) {
		t.Fatalf("expected InvalidArgumentType, got %v", err)
	}
	if _, err := AsNumber(Text("1e99"), "x"); err == nil {
		t.Fatal("expected magnitude rejection")
	}
	// Typed numbers are capped too, not just parsed text.
	if _, err := AsNumber(Number(1e20), "x"); err == nil {
		t.Fatal("expected magnitude rejection of a typed number")
	}
	if _, err := AsNumber(Number(math.NaN()), "x"); err == nil {
		t.Fatal("expected NaN rejection of a typed number")
	}
}

func TestAsInteger(t *testing.T) {
	got, err := AsInteger(Number(7), "n")
	if err != nil {
		t.Fatalf("AsInteger(7): %v", err)
	}
	if got != 7 {
		t.Fatalf("AsInteger(7) = %d", got)
	}
	if _, err := AsInteger(Number(7.5), "n"); err == nil {
		t.Fatal("expected rejection of fractional input")
	}
	if _, err := AsInteger(Number(1e12), "n"); err == nil {
		t.Fatal("expected magnitude rejection")
	}
}

func TestAsBoolean(t *testing.T) {
	for text, want := range map[string]bool{"true": true, "TRUE": true, "false": false, "False": false} {
		got, err := AsBoolean(Text(text), "b")
		if err != nil {
			t.Fatalf("AsBoolean(%s): %v", text, err)
		}
		if got != want {
			t.Errorf("AsBoolean(%s) = %v, want %v", text, got, want)
		}
	}
	if _, err := AsBoolean(Text("yes"), "b"); !errors.Is(err, operror.ErrInvalidArgumentType) {
		t.Fatalf("expected InvalidArgumentType, got %v", err)
	}
}

func TestAsSequence(t *testing.T) {
	got, err := AsSequence(Text("[1, 2, 3]"), "xs")
	if err != nil {
		t.Fatalf("AsSequence(bracketed): %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("AsSequence(bracketed) = %v", got)
	}

	// Scalars widen to a singleton.
	got, err = AsSequence(Number(5), "xs")
	if err != nil {
		t.Fatalf("AsSequence(scalar): %v", err)
	}
	if len(got) != 1 || got[0] != 5 {
		t.Fatalf("AsSequence(scalar) = %v", got)
	}
}

func TestAsMatrix(t *testing.T) {
	got, err := AsMatrix(Text("1,2;3,4"), "m")
	if err != nil {
		t.Fatalf("AsMatrix(literal): %v", err)
	}
	if len(got) != 2 || got[1][1] != 4 {
		t.Fatalf("AsMatrix(literal) = %v", got)
	}

	if _, err := AsMatrix(Text("1,2;3"), "m"); !errors.Is(err, operror.ErrMatrixDimensionMismatch) {
		t.Fatalf("ragged rows: expected MatrixDimensionMismatch, got %v", err)
	}
}

func TestAsComplex(t *testing.T) {
	cases := map[string]complex128{
		"3+4i": complex(3, 4),
		"3-4i": complex(3, -4),
		"4i":   complex(0, 4),
		"i":    complex(0, 1),
		"-i":   complex(0, -1),
		"5":    complex(5, 0),
	}
	for text, want := range cases {
		got, err := AsComplex(Text(text), "z")
		if err != nil {
			t.Fatalf("AsComplex(%s): %v", text, err)
		}
		if got != want {
			t.Errorf("AsComplex(%s) = %v, want %v", text, got, want)
		}
	}
	if _, err := AsComplex(Text("banana"), "z"); err == nil {
		t.Fatal("expected rejection of non-complex text")
	}
}
