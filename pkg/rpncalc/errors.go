package rpncalc

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/rpncalc/pkg/rpncalc/format"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/operator"
)

// Kind classifies a calculation failure.
type Kind int

const (
	// KindUnknown covers every failure without a more specific kind:
	// malformed postfix, missing operands, unknown operators, internal faults.
	KindUnknown Kind = iota

	// KindDividedByZero indicates a division whose divisor was zero.
	KindDividedByZero

	// KindNonFinite indicates the evaluated value was NaN or infinite
	// and could not be formatted.
	KindNonFinite
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDividedByZero:
		return "divided_by_zero"
	case KindNonFinite:
		return "non_finite"
	default:
		return "unknown"
	}
}

// Operation names reported in Error.Op.
const (
	OpEvaluate  = "evaluate"
	OpFormat    = "format"
	OpCalculate = "calculate"
)

// ErrInternal is wrapped by errors recovered from a panic.
var ErrInternal = errors.New("internal calculator error")

// Error is returned by every failed calculation.
type Error struct {
	// Kind is the failure classification.
	Kind Kind
	// Op is the stage that failed.
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// PanicError captures a panic raised while calculating.
type PanicError struct {
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("%v: panic: %v", ErrInternal, e.Value)
}

// Unwrap returns ErrInternal for errors.Is support.
func (e *PanicError) Unwrap() error {
	return ErrInternal
}

// KindOf classifies an error.
//
// An *Error anywhere in the chain decides the kind. Otherwise known causes
// are recognised and everything else is KindUnknown, including nil.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var calcErr *Error
	if errors.As(err, &calcErr) {
		return calcErr.Kind
	}
	return classify(err)
}

// classify maps a raw cause to its kind, ignoring any *Error wrapper.
func classify(err error) Kind {
	switch {
	case errors.Is(err, operator.ErrDivideByZero):
		return KindDividedByZero
	case errors.Is(err, format.ErrNonFinite):
		return KindNonFinite
	default:
		return KindUnknown
	}
}

// IsDividedByZero returns true if the error has KindDividedByZero.
func IsDividedByZero(err error) bool {
	return err != nil && KindOf(err) == KindDividedByZero
}

// IsUnknown returns true if err is non-nil and has KindUnknown.
func IsUnknown(err error) bool {
	return err != nil && KindOf(err) == KindUnknown
}
