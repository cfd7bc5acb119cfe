package fixedpoint

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Balance is an immutable token amount: an arbitrary-precision raw integer
// tagged with its number of decimals.
// The zero value is 0 with 0 decimals.
// It is safe for concurrent use by multiple goroutines.
//
// Two balances can only be combined or compared when their decimals match.
// Add and Sub check this, comparisons do not: comparing balances with
// different decimals compares raw values and is meaningless.
type Balance struct {
	fixed
}

// BalanceOf returns a balance equal to raw / 10^decimals.
// No conversion is performed, raw is copied as-is.
// BalanceOf returns an error if decimals is negative or greater than [MaxDecimals].
func BalanceOf(raw *big.Int, decimals int) (Balance, error) {
	if err := checkDecimals(decimals); err != nil {
		return Balance{}, err
	}
	return Balance{newFixed(raw, decimals)}, nil
}

// BalanceOfInt64 is like [BalanceOf] but takes an int64 raw value.
func BalanceOfInt64(raw int64, decimals int) (Balance, error) {
	return BalanceOf(big.NewInt(raw), decimals)
}

// BalanceFromDecimal converts a human decimal value into a balance with the
// given decimals, rounding with [DefaultRounding].
// It returns [ErrUnderflow] if d is not zero but smaller than one raw unit,
// for example 0.0001 with 2 decimals.
func BalanceFromDecimal(d decimal.Decimal, decimals int) (Balance, error) {
	return BalanceFromDecimalMode(d, decimals, DefaultRounding)
}

// BalanceFromDecimalMode is like [BalanceFromDecimal] with an explicit
// rounding mode.
func BalanceFromDecimalMode(d decimal.Decimal, decimals int, mode RoundingMode) (Balance, error) {
	f, err := fromDecimal(d, decimals, mode)
	if err != nil {
		return Balance{}, err
	}
	return Balance{f}, nil
}

// BalanceFromFloat is like [BalanceFromDecimal] but takes a float64.
// The float is read using its shortest decimal representation,
// so 1.125 is exactly 1.125 and 0.1 is exactly 0.1.
func BalanceFromFloat(f float64, decimals int) (Balance, error) {
	return BalanceFromDecimal(decimal.NewFromFloat(f), decimals)
}

// ParseBalance is like [BalanceFromDecimal] but takes a decimal string
// such as "1.25", "-3" or "2.5e-3".
func ParseBalance(s string, decimals int) (Balance, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return Balance{}, err
	}
	return BalanceFromDecimal(d, decimals)
}

// Raw returns a copy of the raw integer.
func (b Balance) Raw() *big.Int {
	return b.value()
}

// Decimals returns the scale of b.
func (b Balance) Decimals() int {
	return b.decimals
}

// ToDecimal returns the human value raw / 10^decimals.
func (b Balance) ToDecimal() decimal.Decimal {
	return b.toDecimal()
}

// Float64 returns the nearest float64 to the human value.
// It is meant for charts and logs, never for further arithmetic.
func (b Balance) Float64() float64 {
	return b.float64()
}

// String returns the human value with exactly Decimals fractional digits,
// for example "1.500000".
func (b Balance) String() string {
	return b.string()
}

// Add returns b + x.
// A [Balance] operand must have the same decimals as b, otherwise
// [ErrDecimalsMismatch] is returned. A [RawOperand] is taken in raw units of b.
func (b Balance) Add(x Addend) (Balance, error) {
	t, err := b.sameScale(x)
	if err != nil {
		return Balance{}, errors.Wrap(err, "add")
	}
	return Balance{wrapFixed(new(big.Int).Add(b.int(), t.coef), b.decimals)}, nil
}

// Sub returns b - x, see [Balance.Add] for operand rules.
func (b Balance) Sub(x Addend) (Balance, error) {
	t, err := b.sameScale(x)
	if err != nil {
		return Balance{}, errors.Wrap(err, "sub")
	}
	return Balance{wrapFixed(new(big.Int).Sub(b.int(), t.coef), b.decimals)}, nil
}

func (b Balance) sameScale(x Addend) (term, error) {
	t := x.term()
	if t.amount && t.decimals != b.decimals {
		return term{}, errors.Wrapf(ErrDecimalsMismatch, "%v and %v decimals", b.decimals, t.decimals)
	}
	return t, nil
}

// Mul returns b * x at the decimals of b, rounding with [DefaultRounding].
// The product is computed exactly and rounded once:
//
//   - [RawOperand] n: raw * n, always exact.
//   - [DecimalOperand], [Balance], [Price]: the human value of b multiplied
//     by the human value of x.
func (b Balance) Mul(x Operand) Balance {
	return b.MulMode(x, DefaultRounding)
}

// MulMode is like [Balance.Mul] with an explicit rounding mode.
func (b Balance) MulMode(x Operand, mode RoundingMode) Balance {
	return Balance{wrapFixed(b.mul(x, mode), b.decimals)}
}

// Div returns b / x at the decimals of b.
// Division is integer division truncating towards zero, not rounding:
//
//   - [RawOperand] n: raw / n.
//   - [Balance] or [Price] with k decimals: raw * 10^k / x.raw.
//   - [DecimalOperand] c * 10^-e: raw * 10^e / c.
//
// Div returns [ErrDivisionByZero] if x is 0.
func (b Balance) Div(x Operand) (Balance, error) {
	q, err := b.div(x)
	if err != nil {
		return Balance{}, errors.Wrapf(err, "%v / 0", b)
	}
	return Balance{wrapFixed(q, b.decimals)}, nil
}

// DivPrice converts an amount into units priced at p, for example assets
// into shares: raw * 10^18 / p.raw, truncated, at the decimals of b.
// It returns [ErrDivisionByZero] if p is 0.
func (b Balance) DivPrice(p Price) (Balance, error) {
	return b.Div(p)
}

// MulPrice values an amount at p, for example shares into assets:
// raw * p.raw / 10^18 at the decimals of b, rounded with [DefaultRounding].
func (b Balance) MulPrice(p Price) Balance {
	return b.Mul(p)
}

// Scale returns b re-expressed with the given decimals, rounding with
// [DefaultRounding]. It returns b unchanged if decimals are equal.
// Narrowing is lossy: scaling 18 -> 6 -> 18 does not restore the value.
// Like construction, Scale returns [ErrUnderflow] if a non-zero b becomes
// smaller than one raw unit.
func (b Balance) Scale(decimals int) (Balance, error) {
	return b.ScaleMode(decimals, DefaultRounding)
}

// ScaleMode is like [Balance.Scale] with an explicit rounding mode.
func (b Balance) ScaleMode(decimals int, mode RoundingMode) (Balance, error) {
	f, err := b.rescale(decimals, mode)
	if err != nil {
		return Balance{}, err
	}
	return Balance{f}, nil
}

// Neg returns -b.
func (b Balance) Neg() Balance {
	return Balance{wrapFixed(new(big.Int).Neg(b.int()), b.decimals)}
}

// Abs returns |b|.
func (b Balance) Abs() Balance {
	return Balance{wrapFixed(new(big.Int).Abs(b.int()), b.decimals)}
}

// Sign returns -1, 0 or 1.
func (b Balance) Sign() int {
	return b.sign()
}

// IsZero reports whether the raw value is 0.
func (b Balance) IsZero() bool {
	return b.sign() == 0
}

// Cmp compares raw values and returns -1, 0 or 1.
// Decimals are not taken into account.
func (b Balance) Cmp(c Balance) int {
	return b.cmp(c.fixed)
}

// Eq reports whether b == c.
func (b Balance) Eq(c Balance) bool { return b.Cmp(c) == 0 }

// Lt reports whether b < c.
func (b Balance) Lt(c Balance) bool { return b.Cmp(c) < 0 }

// Lte reports whether b <= c.
func (b Balance) Lte(c Balance) bool { return b.Cmp(c) <= 0 }

// Gt reports whether b > c.
func (b Balance) Gt(c Balance) bool { return b.Cmp(c) > 0 }

// Gte reports whether b >= c.
func (b Balance) Gte(c Balance) bool { return b.Cmp(c) >= 0 }

// Min returns the smaller of b and c.
func (b Balance) Min(c Balance) Balance {
	if b.Lte(c) {
		return b
	}
	return c
}

// Max returns the larger of b and c.
func (b Balance) Max(c Balance) Balance {
	if b.Gte(c) {
		return b
	}
	return c
}

// Format implements the [fmt.Formatter] interface.
// %s and %v print the human value, %q quotes it, %d prints the raw integer
// and %f accepts a precision which is applied with [DefaultRounding].
func (b Balance) Format(state fmt.State, verb rune) {
	formatFixed(b.fixed, state, verb)
}

func formatFixed(f fixed, state fmt.State, verb rune) {
	var s string
	switch verb {
	case 'd':
		s = f.int().String()
	case 'q':
		s = `"` + f.string() + `"`
	case 'f':
		if p, ok := state.Precision(); ok {
			s = RoundDecimal(f.toDecimal(), p, DefaultRounding).StringFixed(int32(p))
		} else {
			s = f.string()
		}
	case 's', 'v':
		s = f.string()
	default:
		fmt.Fprintf(state, "%%!%c(%s)", verb, f.string())
		return
	}
	if w, ok := state.Width(); ok && w > len(s) {
		pad := make([]byte, w-len(s))
		for i := range pad {
			pad[i] = ' '
		}
		if state.Flag('-') {
			s += string(pad)
		} else {
			s = string(pad) + s
		}
	}
	fmt.Fprint(state, s)
}
