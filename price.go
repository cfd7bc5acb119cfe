package fixedpoint

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// PriceDecimals is the fixed scale of every [Price].
const PriceDecimals = 18

// Price is an immutable per-share exchange rate with 18 decimals.
// The zero value is a price of 0.
// Prices of pool shares are non-negative, constructors from human values
// reject negative inputs.
type Price struct {
	raw *big.Int
}

// PriceOf returns a price equal to raw / 10^18, as reported by the chain.
// raw is copied as-is.
func PriceOf(raw *big.Int) Price {
	return Price{raw: newFixed(raw, PriceDecimals).raw}
}

// PriceFromDecimal converts a human rate, such as 1.05, into a price,
// rounding with [DefaultRounding].
// It returns [ErrNegativePrice] for negative values and [ErrUnderflow] for
// non-zero values below 10^-18.
func PriceFromDecimal(d decimal.Decimal) (Price, error) {
	return PriceFromDecimalMode(d, DefaultRounding)
}

// PriceFromDecimalMode is like [PriceFromDecimal] with an explicit rounding mode.
func PriceFromDecimalMode(d decimal.Decimal, mode RoundingMode) (Price, error) {
	if d.IsNegative() {
		return Price{}, errors.Wrapf(ErrNegativePrice, "%v", d)
	}
	f, err := fromDecimal(d, PriceDecimals, mode)
	if err != nil {
		return Price{}, err
	}
	return Price{raw: f.raw}, nil
}

// PriceFromFloat is like [PriceFromDecimal] but takes a float64.
func PriceFromFloat(f float64) (Price, error) {
	return PriceFromDecimal(decimal.NewFromFloat(f))
}

// ParsePrice is like [PriceFromDecimal] but takes a decimal string.
func ParsePrice(s string) (Price, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return Price{}, err
	}
	return PriceFromDecimal(d)
}

func (p Price) core() fixed {
	return fixed{raw: p.raw, decimals: PriceDecimals}
}

// Raw returns a copy of the raw integer.
func (p Price) Raw() *big.Int {
	return p.core().value()
}

// Decimals always returns [PriceDecimals].
func (p Price) Decimals() int {
	return PriceDecimals
}

// ToDecimal returns the human rate raw / 10^18.
func (p Price) ToDecimal() decimal.Decimal {
	return p.core().toDecimal()
}

// Float64 returns the nearest float64 to the human rate.
func (p Price) Float64() float64 {
	return p.core().float64()
}

// String returns the human rate with 18 fractional digits.
func (p Price) String() string {
	return p.core().string()
}

// Balance returns the price as a balance with 18 decimals.
func (p Price) Balance() Balance {
	return Balance{newFixed(p.core().int(), PriceDecimals)}
}

// IsZero reports whether the price is 0.
func (p Price) IsZero() bool {
	return p.core().sign() == 0
}

// Mul returns p * x, rounding with [DefaultRounding].
// Operands follow the rules of [Balance.Mul].
func (p Price) Mul(x Operand) Price {
	return Price{raw: p.core().mul(x, DefaultRounding)}
}

// Div returns p / x, truncating towards zero.
// Operands follow the rules of [Balance.Div].
func (p Price) Div(x Operand) (Price, error) {
	q, err := p.core().div(x)
	if err != nil {
		return Price{}, errors.Wrapf(err, "%v / 0", p)
	}
	return Price{raw: q}, nil
}

// Cmp compares p and q and returns -1, 0 or 1.
func (p Price) Cmp(q Price) int {
	return p.core().cmp(q.core())
}

// Eq reports whether p == q.
func (p Price) Eq(q Price) bool { return p.Cmp(q) == 0 }

// Lt reports whether p < q.
func (p Price) Lt(q Price) bool { return p.Cmp(q) < 0 }

// Lte reports whether p <= q.
func (p Price) Lte(q Price) bool { return p.Cmp(q) <= 0 }

// Gt reports whether p > q.
func (p Price) Gt(q Price) bool { return p.Cmp(q) > 0 }

// Gte reports whether p >= q.
func (p Price) Gte(q Price) bool { return p.Cmp(q) >= 0 }

// Format implements the [fmt.Formatter] interface, see [Balance.Format].
func (p Price) Format(state fmt.State, verb rune) {
	formatFixed(p.core(), state, verb)
}
