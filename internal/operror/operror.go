// Package operror defines the fixed error taxonomy surfaced by the command
// execution engine. Every failure a caller can observe is one of these kinds
// with a human-readable message; no other fault is allowed to propagate.
package operror

import (
	"errors"
	"fmt"
)

// Kind identifies one member of the error taxonomy.
type Kind int

const (
	KindInvalidArgumentCount Kind = iota
	KindInvalidArgumentType
	KindInvalidValue
	KindDivisionByZero
	KindNegativeSquareRoot
	KindMatrixDimensionMismatch
	KindSingularMatrix
	KindOperationNotFound
	KindVariableNotFound
	KindFunctionNotFound
	KindParsingError
	KindExecutionError
	KindFileNotFound
	KindImportError
)

// String returns the canonical kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgumentCount:
		return "InvalidArgumentCount"
	case KindInvalidArgumentType:
		return "InvalidArgumentType"
	case KindInvalidValue:
		return "InvalidValue"
	case KindDivisionByZero:
		return "DivisionByZero"
	case KindNegativeSquareRoot:
		return "NegativeSquareRoot"
	case KindMatrixDimensionMismatch:
		return "MatrixDimensionMismatch"
	case KindSingularMatrix:
		return "SingularMatrix"
	case KindOperationNotFound:
		return "OperationNotFound"
	case KindVariableNotFound:
		return "VariableNotFound"
	case KindFunctionNotFound:
		return "FunctionNotFound"
	case KindParsingError:
		return "ParsingError"
	case KindExecutionError:
		return "ExecutionError"
	case KindFileNotFound:
		return "FileNotFound"
	case KindImportError:
		return "ImportError"
	}
	return "UnknownError"
}

// Error is a structured engine error. Kind is always set; the remaining
// fields are populated per kind (Expected/Got for argument counts, Argument/
// Want/Have for type mismatches, Name for lookups, Path for file errors).
type Error struct {
	Kind     Kind
	Message  string
	Expected int
	Got      int
	Argument string
	Want     string
	Have     string
	Name     string
	Path     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any *Error of the same kind, so callers can test against the
// package sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is matching. These carry only a Kind.
var (
	ErrInvalidArgumentCount    = &Error{Kind: KindInvalidArgumentCount}
	ErrInvalidArgumentType     = &Error{Kind: KindInvalidArgumentType}
	ErrInvalidValue            = &Error{Kind: KindInvalidValue}
	ErrDivisionByZero          = &Error{Kind: KindDivisionByZero}
	ErrNegativeSquareRoot      = &Error{Kind: KindNegativeSquareRoot}
	ErrMatrixDimensionMismatch = &Error{Kind: KindMatrixDimensionMismatch}
	ErrSingularMatrix          = &Error{Kind: KindSingularMatrix}
	ErrOperationNotFound       = &Error{Kind: KindOperationNotFound}
	ErrVariableNotFound        = &Error{Kind: KindVariableNotFound}
	ErrFunctionNotFound        = &Error{Kind: KindFunctionNotFound}
	ErrParsingError            = &Error{Kind: KindParsingError}
	ErrExecutionError          = &Error{Kind: KindExecutionError}
	ErrFileNotFound            = &Error{Kind: KindFileNotFound}
	ErrImportError             = &Error{Kind: KindImportError}
)

// InvalidArgumentCount reports an arity mismatch.
func InvalidArgumentCount(expected, got int) *Error {
	return &Error{
		Kind:     KindInvalidArgumentCount,
		Message:  fmt.Sprintf("expected %d argument(s), got %d", expected, got),
		Expected: expected,
		Got:      got,
	}
}

// InvalidArgumentCountMin reports a variadic arity-floor violation.
func InvalidArgumentCountMin(min, got int) *Error {
	return &Error{
		Kind:     KindInvalidArgumentCount,
		Message:  fmt.Sprintf("expected at least %d argument(s), got %d", min, got),
		Expected: min,
		Got:      got,
	}
}

// InvalidArgumentType reports a failed coercion for a named argument.
func InvalidArgumentType(argument, want, have string) *Error {
	return &Error{
		Kind:     KindInvalidArgumentType,
		Message:  fmt.Sprintf("argument %q must be %s, got %s", argument, want, have),
		Argument: argument,
		Want:     want,
		Have:     have,
	}
}

// InvalidValue reports a semantically invalid input or exceeded safety limit.
func InvalidValue(format string, a ...any) *Error {
	return &Error{Kind: KindInvalidValue, Message: fmt.Sprintf(format, a...)}
}

// DivisionByZero reports division or modulo by zero.
func DivisionByZero() *Error {
	return &Error{Kind: KindDivisionByZero, Message: "division by zero"}
}

// NegativeSquareRoot reports a real square root of a negative number.
func NegativeSquareRoot() *Error {
	return &Error{Kind: KindNegativeSquareRoot, Message: "square root of negative number"}
}

// MatrixDimensionMismatch reports incompatible matrix shapes.
func MatrixDimensionMismatch(format string, a ...any) *Error {
	return &Error{Kind: KindMatrixDimensionMismatch, Message: fmt.Sprintf(format, a...)}
}

// SingularMatrix reports a non-invertible matrix.
func SingularMatrix() *Error {
	return &Error{Kind: KindSingularMatrix, Message: "matrix is singular"}
}

// OperationNotFound reports an unknown operation name.
func OperationNotFound(name string) *Error {
	return &Error{Kind: KindOperationNotFound, Message: fmt.Sprintf("unknown operation %q", name), Name: name}
}

// VariableNotFound reports an undefined variable.
func VariableNotFound(name string) *Error {
	return &Error{Kind: KindVariableNotFound, Message: fmt.Sprintf("variable %q is not defined", name), Name: name}
}

// FunctionNotFound reports an undefined user function.
func FunctionNotFound(name string) *Error {
	return &Error{Kind: KindFunctionNotFound, Message: fmt.Sprintf("function %q is not defined", name), Name: name}
}

// ParsingError reports malformed command or literal text.
func ParsingError(format string, a ...any) *Error {
	return &Error{Kind: KindParsingError, Message: fmt.Sprintf(format, a...)}
}

// ExecutionError reports an internal fault normalized into the taxonomy.
func ExecutionError(format string, a ...any) *Error {
	return &Error{Kind: KindExecutionError, Message: fmt.Sprintf(format, a...)}
}

// FileNotFound reports a missing import/export file.
func FileNotFound(path string) *Error {
	return &Error{Kind: KindFileNotFound, Message: fmt.Sprintf("file not found: %s", path), Path: path}
}

// ImportError reports a malformed import payload.
func ImportError(format string, a ...any) *Error {
	return &Error{Kind: KindImportError, Message: fmt.Sprintf(format, a...)}
}

// Normalize converts any error into a taxonomy member. Errors that already
// carry a kind pass through untouched; everything else becomes ExecutionError.
func Normalize(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindExecutionError, Message: err.Error()}
}
