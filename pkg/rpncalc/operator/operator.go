// Package operator defines the four binary arithmetic operators and their priorities.
package operator

import (
	"errors"
	"fmt"
)

// Sentinel errors for operator lookup and application.
var (
	// ErrUnknownOperator indicates a symbol that is not one of + - * /.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrDivideByZero indicates a division whose divisor is zero.
	ErrDivideByZero = errors.New("division by zero")
)

// Priority is the binding strength of an operator.
type Priority int

const (
	// PriorityLow is shared by addition and subtraction.
	PriorityLow Priority = iota

	// PriorityHigh is shared by multiplication and division.
	PriorityHigh
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Operator is one of the supported binary operators.
type Operator int

const (
	Plus Operator = iota
	Minus
	Multiply
	Divide
)

// Symbol returns the operator's token, e.g. "+".
func (o Operator) Symbol() string {
	switch o {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	default:
		return "?"
	}
}

// String implements fmt.Stringer.
func (o Operator) String() string {
	return o.Symbol()
}

// Priority returns the operator's priority.
func (o Operator) Priority() Priority {
	switch o {
	case Multiply, Divide:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// Parse returns the operator for symbol.
// Returns an error wrapping ErrUnknownOperator if symbol is not recognized.
func Parse(symbol string) (Operator, error) {
	switch symbol {
	case "+":
		return Plus, nil
	case "-":
		return Minus, nil
	case "*":
		return Multiply, nil
	case "/":
		return Divide, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, symbol)
}

// IsOperator reports whether symbol is one of the supported operators.
func IsOperator(symbol string) bool {
	_, err := Parse(symbol)
	return err == nil
}

// PriorityOf returns the priority of symbol.
// Unrecognized symbols rank as PriorityLow; the converter does not validate them.
func PriorityOf(symbol string) Priority {
	op, err := Parse(symbol)
	if err != nil {
		return PriorityLow
	}
	return op.Priority()
}

// Apply computes left op right.
// For postfix evaluation left is the operand pushed earlier.
func (o Operator) Apply(left, right float64) (float64, error) {
	switch o {
	case Plus:
		return left + right, nil
	case Minus:
		return left - right, nil
	case Multiply:
		return left * right, nil
	case Divide:
		if right == 0 {
			return 0, ErrDivideByZero
		}
		return left / right, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownOperator, int(o))
}
