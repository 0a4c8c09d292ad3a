// Package token classifies calculator tokens and splits raw input into them.
//
// The calculator core works on an already-tokenized sequence of strings. A
// token is a Number if it parses as a float64; anything else is treated as an
// operator symbol. Lex exists for callers holding raw text, such as the CLI.
package token

import (
	"errors"
	"math"
	"strconv"
)

// Kind is the use-time classification of a token.
type Kind int

const (
	// KindNumber is a token that parses as a float64.
	KindNumber Kind = iota

	// KindOperator is any token that is not a number.
	KindOperator
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindOperator:
		return "operator"
	default:
		return "unknown"
	}
}

// Number parses s as a float64.
// The second result is false if s is not a numeric literal. A literal too
// large for a float64 is still a number and yields ±Inf.
func Number(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return f, true
	}
	if errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0) {
		return f, true
	}
	return 0, false
}

// IsNumber reports whether s parses as a float64.
func IsNumber(s string) bool {
	_, ok := Number(s)
	return ok
}

// Classify returns KindNumber or KindOperator for s.
func Classify(s string) Kind {
	if IsNumber(s) {
		return KindNumber
	}
	return KindOperator
}
