/*
Package fixedpoint implements immutable fixed-point token amounts and
per-share prices for tokenized asset pools.
It is the money-math layer underneath deposit and redeem flows:
every amount read from or written to the chain goes through it.

# Representation

[Balance] is a pair of:

  - Raw: an arbitrary-precision signed integer, the amount in atomic units.
  - Decimals: a non-negative integer, the scale of the token.
    For example, a raw value of 1500000 with 6 decimals represents 1.5.

[Price] has the same representation with the scale fixed at 18
([PriceDecimals]).

The numerical value of an amount is Raw / 10^Decimals.
Amounts are only comparable and combinable when their decimals match.
[Balance.Add] and [Balance.Sub] return [ErrDecimalsMismatch] otherwise.
Comparisons work on raw values and do not check decimals.

# Conversions

  - from a raw integer: [BalanceOf], [PriceOf], [ParseRaw], [BalanceFromUint256].
  - from a human value: [BalanceFromDecimal], [BalanceFromFloat],
    [ParseBalance], [PriceFromDecimal], [PriceFromFloat], [ParsePrice].
  - to a human value: [Balance.ToDecimal], [Balance.String], [Balance.Float64].
  - between scales: [Balance.Scale].

Human values are multiplied by 10^Decimals and rounded once.
A non-zero human value that is smaller than one raw unit is rejected with
[ErrUnderflow] instead of silently becoming 0.

# Operands

Arithmetic takes a closed set of operands:

  - [RawOperand]: an integer in raw units of the receiver, see [Raw].
  - [DecimalOperand]: a plain decimal such as a ratio, see [Dec].
  - [Balance] and [Price]: other amounts.

[Balance.Add] and [Balance.Sub] accept only an [Addend]
(raw integers and balances).
[Balance.Mul] and [Balance.Div] accept any [Operand].
The result always keeps the decimals of the receiver.

# Rounding

Every conversion takes a [RoundingMode], functions without one use
[DefaultRounding], which is [RoundHalfCeil]: ties go towards positive
infinity, so 1.125 with 2 decimals becomes 1.13.
Multiplication computes the exact product and rounds once.
Division is integer division truncating towards zero.

# Errors

All failures are returned synchronously:

  - [ErrUnderflow]: a non-zero value is below one raw unit.
  - [ErrDivisionByZero]: a divisor is 0.
  - [ErrDecimalsMismatch]: balances with different decimals are added
    or subtracted.
  - [ErrInvalidDecimals], [ErrInvalidAmount], [ErrNegativePrice], [ErrOverflow].

Use errors.Is to check for them.
*/
package fixedpoint
