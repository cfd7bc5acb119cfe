package fixedpoint

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// term is the normalized form of an operand: coef * 10^exp.
// amount is set for Balance and Price operands, decimals is then their scale.
type term struct {
	coef     *big.Int
	exp      int
	amount   bool
	decimals int
}

// Operand is the closed set of values accepted by Mul and Div:
// [RawOperand], [DecimalOperand], [Balance] and [Price].
type Operand interface {
	term() term
}

// Addend is the subset of operands accepted by Add, Sub and schema bounds:
// [RawOperand] and [Balance].
type Addend interface {
	Operand
	addend()
}

// RawOperand is an integer taken as-is, in raw units of the receiver.
type RawOperand struct {
	v *big.Int
}

// Raw returns an operand holding a copy of v.
// A nil v is treated as 0.
func Raw(v *big.Int) RawOperand {
	if v == nil {
		return RawOperand{v: new(big.Int)}
	}
	return RawOperand{v: new(big.Int).Set(v)}
}

// RawInt64 returns an operand holding v.
func RawInt64(v int64) RawOperand {
	return RawOperand{v: big.NewInt(v)}
}

// Int returns a copy of the operand value.
func (r RawOperand) Int() *big.Int {
	if r.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(r.v)
}

func (r RawOperand) term() term {
	if r.v == nil {
		return term{coef: bzero}
	}
	return term{coef: r.v}
}

func (RawOperand) addend() {}

// DecimalOperand is a plain high-precision decimal, such as a ratio or a
// percentage, with no scale of its own.
type DecimalOperand struct {
	d decimal.Decimal
}

// Dec returns an operand holding d.
func Dec(d decimal.Decimal) DecimalOperand {
	return DecimalOperand{d: d}
}

// Decimal returns the operand value.
func (o DecimalOperand) Decimal() decimal.Decimal {
	return o.d
}

func (o DecimalOperand) term() term {
	return term{coef: o.d.Coefficient(), exp: int(o.d.Exponent())}
}

func (b Balance) term() term {
	return term{coef: b.int(), exp: -b.decimals, amount: true, decimals: b.decimals}
}

func (Balance) addend() {}

func (p Price) term() term {
	return term{coef: p.core().int(), exp: -PriceDecimals, amount: true, decimals: PriceDecimals}
}
