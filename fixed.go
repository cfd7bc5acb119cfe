package fixedpoint

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// MaxDecimals is the largest supported scale.
// It matches the range of ERC-20 decimals (uint8).
const MaxDecimals = 255

// fixed is the fixed-point core shared by Balance and Price.
// It represents raw / 10^decimals.
// A nil raw is 0, so the zero value is a valid 0 at scale 0.
// raw is never mutated once a fixed is built.
type fixed struct {
	raw      *big.Int
	decimals int
}

// newFixed copies raw so that the caller keeps ownership of its integer.
func newFixed(raw *big.Int, decimals int) fixed {
	if raw == nil {
		return fixed{raw: new(big.Int), decimals: decimals}
	}
	return fixed{raw: new(big.Int).Set(raw), decimals: decimals}
}

// wrapFixed takes ownership of raw, it is used for freshly computed results.
func wrapFixed(raw *big.Int, decimals int) fixed {
	return fixed{raw: raw, decimals: decimals}
}

// fromDecimal converts d into raw units at the given scale.
// A non-zero d whose scaled magnitude is below one raw unit is rejected,
// regardless of the rounding mode.
func fromDecimal(d decimal.Decimal, decimals int, mode RoundingMode) (fixed, error) {
	if err := checkDecimals(decimals); err != nil {
		return fixed{}, err
	}
	if err := checkShift(d, decimals); err != nil {
		return fixed{}, err
	}
	if !d.IsZero() && d.Abs().Shift(int32(decimals)).LessThan(decimal.New(1, 0)) {
		return fixed{}, errors.Wrapf(ErrUnderflow, "%v with %v decimals", d, decimals)
	}
	return wrapFixed(scaleDecimal(d, decimals, mode), decimals), nil
}

// maxShift bounds exp + decimals of a converted decimal.
// Beyond it the raw value would have more than 332 digits, far outside
// the 256-bit range of token amounts, and scaling it would be expensive.
const maxShift = maxCachedPow10 + MaxDecimals

// checkShift rejects a non-zero d whose scaled value coef * 10^(exp+decimals)
// needs a power of ten beyond maxShift.
// Errors describe d by coefficient and exponent, never by its expanded form.
func checkShift(d decimal.Decimal, decimals int) error {
	if d.IsZero() {
		return nil
	}
	shift := int(d.Exponent()) + decimals
	switch {
	case shift > maxShift:
		return errors.Wrapf(ErrOverflow, "%ve%v with %v decimals", d.Coefficient(), d.Exponent(), decimals)
	case shift < -maxShift:
		// |coef| < 8^-shift < 10^-shift, so the value is below one raw unit.
		if coef := d.Coefficient(); coef.BitLen() <= -3*shift {
			return errors.Wrapf(ErrUnderflow, "%ve%v with %v decimals", coef, d.Exponent(), decimals)
		}
		return errors.Wrapf(ErrInvalidAmount, "%v-bit coefficient with exponent %v", d.Coefficient().BitLen(), d.Exponent())
	}
	return nil
}

// parseDecimal parses a human decimal string, such as "1.25" or "-3e-2".
func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(ErrInvalidAmount, "%q", s)
	}
	return d, nil
}

func (f fixed) int() *big.Int {
	if f.raw == nil {
		return bzero
	}
	return f.raw
}

func (f fixed) value() *big.Int {
	return new(big.Int).Set(f.int())
}

func (f fixed) toDecimal() decimal.Decimal {
	return decimal.NewFromBigInt(f.int(), int32(-f.decimals))
}

func (f fixed) float64() float64 {
	return f.toDecimal().InexactFloat64()
}

func (f fixed) sign() int {
	return f.int().Sign()
}

func (f fixed) cmp(g fixed) int {
	return f.int().Cmp(g.int())
}

// rescale re-expresses f at another scale through its decimal value,
// using the same rounding and underflow rules as construction.
func (f fixed) rescale(decimals int, mode RoundingMode) (fixed, error) {
	if decimals == f.decimals {
		return f, nil
	}
	return fromDecimal(f.toDecimal(), decimals, mode)
}

// mul computes raw * x, brought back to f's scale with a single rounding.
func (f fixed) mul(op Operand, mode RoundingMode) *big.Int {
	t := op.term()
	prod := new(big.Int).Mul(f.int(), t.coef)
	if t.exp >= 0 {
		return lsh(prod, t.exp)
	}
	return rsh(prod, -t.exp, mode)
}

// div computes raw / x at f's scale, truncating towards zero.
// For an operand c * 10^e with e < 0 this is raw * 10^-e / c.
func (f fixed) div(op Operand) (*big.Int, error) {
	t := op.term()
	if t.coef.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	if t.exp <= 0 {
		return quoTrunc(lsh(f.int(), -t.exp), t.coef), nil
	}
	return quoTrunc(f.int(), lsh(t.coef, t.exp)), nil
}

// string returns raw / 10^decimals with exactly decimals fractional digits.
func (f fixed) string() string {
	raw := f.int()
	digits := new(big.Int).Abs(raw).String()
	if f.decimals > 0 {
		if pad := f.decimals + 1 - len(digits); pad > 0 {
			digits = strings.Repeat("0", pad) + digits
		}
		point := len(digits) - f.decimals
		digits = digits[:point] + "." + digits[point:]
	}
	if raw.Sign() < 0 {
		return "-" + digits
	}
	return digits
}
