package operror

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelMatching(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
	}{
		{InvalidArgumentCount(2, 3), ErrInvalidArgumentCount},
		{InvalidArgumentType("x", "a number", "banana"), ErrInvalidArgumentType},
		{DivisionByZero(), ErrDivisionByZero},
		{NegativeSquareRoot(), ErrNegativeSquareRoot},
		{SingularMatrix(), ErrSingularMatrix},
		{OperationNotFound("frobnicate"), ErrOperationNotFound},
		{VariableNotFound("radius"), ErrVariableNotFound},
		{FunctionNotFound("square"), ErrFunctionNotFound},
		{FileNotFound("/tmp/missing.json"), ErrFileNotFound},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, tc.sentinel) {
			t.Errorf("%v should match its sentinel", tc.err)
		}
	}
	if errors.Is(DivisionByZero(), ErrSingularMatrix) {
		t.Error("kinds must not cross-match")
	}
}

func TestWrappedMatching(t *testing.T) {
	wrapped := fmt.Errorf("while evaluating: %w", DivisionByZero())
	if !errors.Is(wrapped, ErrDivisionByZero) {
		t.Error("wrapped taxonomy errors should still match")
	}
}

func TestNormalize(t *testing.T) {
	// Taxonomy members pass through unchanged.
	orig := VariableNotFound("x")
	if got := Normalize(orig); !errors.Is(got, ErrVariableNotFound) {
		t.Errorf("Normalize changed kind: %v", got)
	}

	// Foreign errors become ExecutionError.
	foreign := errors.New("disk on fire")
	got := Normalize(foreign)
	if !errors.Is(got, ErrExecutionError) {
		t.Errorf("Normalize(foreign) = %v, want ExecutionError", got)
	}
}

func TestMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{InvalidArgumentCount(2, 3), "InvalidArgumentCount: expected 2 argument(s), got 3"},
		{DivisionByZero(), "DivisionByZero: division by zero"},
		{OperationNotFound("frob"), `OperationNotFound: unknown operation "frob"`},
		{VariableNotFound("radius"), `VariableNotFound: variable "radius" is not defined`},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q, want %q", got, tc.want)
		}
	}
}
