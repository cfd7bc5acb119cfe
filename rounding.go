package fixedpoint

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// RoundingMode selects how an inexact result is brought back to an integer
// number of raw units.
// Every conversion takes the mode explicitly, there is no package-level
// rounding state.
type RoundingMode int

const (
	// RoundHalfCeil rounds to the nearest neighbour, ties towards positive
	// infinity: 0.125 -> 0.13, -0.125 -> -0.12.
	// It is the default mode for all conversions.
	RoundHalfCeil RoundingMode = iota
	// RoundHalfUp rounds to the nearest neighbour, ties away from zero.
	RoundHalfUp
	// RoundHalfEven rounds to the nearest neighbour, ties to the even one.
	RoundHalfEven
	// RoundDown truncates towards zero.
	RoundDown
	// RoundUp rounds away from zero.
	RoundUp
	// RoundFloor rounds towards negative infinity.
	RoundFloor
	// RoundCeil rounds towards positive infinity.
	RoundCeil
)

// DefaultRounding is the mode used by functions that do not take one.
const DefaultRounding = RoundHalfCeil

var roundingNames = [...]string{
	RoundHalfCeil: "half-ceil",
	RoundHalfUp:   "half-up",
	RoundHalfEven: "half-even",
	RoundDown:     "down",
	RoundUp:       "up",
	RoundFloor:    "floor",
	RoundCeil:     "ceil",
}

// String returns the name accepted by [ParseRoundingMode].
func (m RoundingMode) String() string {
	if m < 0 || int(m) >= len(roundingNames) {
		return "unknown"
	}
	return roundingNames[m]
}

// ParseRoundingMode converts a name such as "half-ceil" or "floor" into
// a rounding mode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	for i, name := range roundingNames {
		if name == s {
			return RoundingMode(i), nil
		}
	}
	return 0, errors.Errorf("unknown rounding mode %q", s)
}

// awayFromZero reports whether a truncated quotient must be moved one unit
// away from zero.
// neg is the sign of the exact quotient, half is the comparison of the
// discarded remainder with one half (-1 below, 0 tie, 1 above).
// Half-even ties are resolved by the caller, they depend on parity.
func (m RoundingMode) awayFromZero(neg bool, half int) bool {
	switch m {
	case RoundHalfCeil:
		return half > 0 || (half == 0 && !neg)
	case RoundHalfUp:
		return half >= 0
	case RoundHalfEven:
		return half > 0
	case RoundDown:
		return false
	case RoundUp:
		return true
	case RoundFloor:
		return neg
	case RoundCeil:
		return !neg
	}
	return false
}

// RoundDecimal quantizes d to the given number of fractional digits
// with an explicit rounding mode.
// Negative places are treated as 0.
func RoundDecimal(d decimal.Decimal, places int, mode RoundingMode) decimal.Decimal {
	if places < 0 {
		places = 0
	}
	return decimal.NewFromBigInt(scaleDecimal(d, places, mode), int32(-places))
}

// scaleDecimal returns round(d * 10^decimals) as an integer.
func scaleDecimal(d decimal.Decimal, decimals int, mode RoundingMode) *big.Int {
	coef := d.Coefficient()
	if coef.Sign() == 0 {
		return coef
	}
	shift := int(d.Exponent()) + decimals
	if shift >= 0 {
		return lsh(coef, shift)
	}
	return rsh(coef, -shift, mode)
}
