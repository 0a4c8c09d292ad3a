// Package format rounds calculation results for presentation.
//
// Rounding is half away from zero on the shortest decimal representation of
// the float64, so 0.123455 rounds to 0.12346 at five places even though its
// binary value is slightly below the midpoint.
package format

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// DefaultPlaces is the number of fractional digits kept by Format.
const DefaultPlaces = 5

// MaxPlaces is the largest supported number of fractional digits.
const MaxPlaces = 15

// Sentinel errors for rounding.
var (
	// ErrNonFinite indicates a NaN or infinite value.
	ErrNonFinite = errors.New("value is not finite")

	// ErrInvalidPlaces indicates a fractional digit count outside 0..MaxPlaces.
	ErrInvalidPlaces = errors.New("invalid number of decimal places")
)

// Round rounds v to at most places fractional digits, half away from zero.
func Round(v float64, places int) (float64, error) {
	d, err := toDecimal(v, places)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

// Format rounds v to DefaultPlaces fractional digits.
// It returns 0 if v cannot be rounded; use Round to see the error.
func Format(v float64) float64 {
	f, err := Round(v, DefaultPlaces)
	if err != nil {
		return 0
	}
	return f
}

// String renders v rounded to places fractional digits without trailing zeros.
// Non-finite values render as Go formats them ("NaN", "+Inf", "-Inf").
func String(v float64, places int) string {
	d, err := toDecimal(v, places)
	if err != nil {
		return fmt.Sprint(v)
	}
	return d.String()
}

func toDecimal(v float64, places int) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrNonFinite, v)
	}
	if places < 0 || places > MaxPlaces {
		return decimal.Decimal{}, fmt.Errorf("%w: %d", ErrInvalidPlaces, places)
	}
	return decimal.NewFromFloat(v).Round(int32(places)), nil
}
