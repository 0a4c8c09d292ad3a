package postfix

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/rpncalc/pkg/rpncalc/operator"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/stack"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/token"
)

// Sentinel errors for evaluation.
var (
	// ErrMissingOperand indicates an operator with fewer than two values below it.
	ErrMissingOperand = errors.New("operator is missing an operand")

	// ErrNoResult indicates the value stack was empty after the scan.
	ErrNoResult = errors.New("no result on the value stack")

	// ErrLeftoverOperands indicates more than one value remained after the scan.
	ErrLeftoverOperands = errors.New("leftover operands on the value stack")
)

// StepError wraps a failure with the postfix position that caused it.
type StepError struct {
	// Index is the position of Token in the postfix sequence.
	Index int
	// Token is the operator being applied.
	Token string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Token, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *StepError) Unwrap() error {
	return e.Err
}

type evalConfig struct {
	strict bool
}

// EvalOption configures Evaluate.
type EvalOption func(*evalConfig)

// WithStrictOperators makes an unknown operator symbol abort evaluation
// with operator.ErrUnknownOperator instead of being skipped.
func WithStrictOperators() EvalOption {
	return func(c *evalConfig) {
		c.strict = true
	}
}

// Evaluate computes the value of a postfix token sequence.
// Evaluation is all-or-nothing: on error the returned value is 0.
func Evaluate(tokens []string, opts ...EvalOption) (float64, error) {
	var cfg evalConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	values := stack.New[float64](len(tokens)/2 + 1)
	for i, tok := range tokens {
		if v, ok := token.Number(tok); ok {
			values.Push(v)
			continue
		}

		first, okFirst := values.Pop()
		second, okSecond := values.Pop()
		if !okFirst || !okSecond {
			return 0, &StepError{Index: i, Token: tok, Err: ErrMissingOperand}
		}

		op, err := operator.Parse(tok)
		if err != nil {
			if cfg.strict {
				return 0, &StepError{Index: i, Token: tok, Err: err}
			}
			// Permissive mode: both operands are consumed, nothing is pushed.
			continue
		}

		v, err := op.Apply(second, first)
		if err != nil {
			return 0, &StepError{Index: i, Token: tok, Err: err}
		}
		values.Push(v)
	}

	result, ok := values.Pop()
	if !ok {
		return 0, ErrNoResult
	}
	if !values.IsEmpty() {
		return 0, fmt.Errorf("%w: %d extra", ErrLeftoverOperands, values.Len())
	}
	return result, nil
}
