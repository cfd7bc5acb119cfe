package fixedpoint

import (
	"fmt"
	"math/big"
)

// maxCachedPow10 is the largest power of 10 kept in bpow10.
// 10^77 is the first power of 10 that does not fit into 256 bits.
const maxCachedPow10 = 77

// bpow10 is a cache of powers of 10, where bpow10[x] = 10^x.
// Values in the cache are shared and must never be mutated.
var bpow10 = func() [maxCachedPow10 + 1]*big.Int {
	var cache [maxCachedPow10 + 1]*big.Int
	ten := big.NewInt(10)
	cache[0] = big.NewInt(1)
	for i := 1; i <= maxCachedPow10; i++ {
		cache[i] = new(big.Int).Mul(cache[i-1], ten)
	}
	return cache
}()

var (
	bzero = big.NewInt(0)
	bone  = big.NewInt(1)
)

// pow10 returns 10^power.
// The result may be shared and must be treated as read-only.
// pow10 panics if power is negative.
func pow10(power int) *big.Int {
	switch {
	case power < 0:
		panic(fmt.Sprintf("pow10(%v) failed: negative power", power))
	case power <= maxCachedPow10:
		return bpow10[power]
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(power)), nil)
}

// lsh (Left Shift) returns x * 10^shift as a new integer.
func lsh(x *big.Int, shift int) *big.Int {
	z := new(big.Int)
	if shift <= 0 {
		return z.Set(x)
	}
	return z.Mul(x, pow10(shift))
}

// rsh (Right Shift) returns round(x / 10^shift) using the given rounding mode.
func rsh(x *big.Int, shift int, mode RoundingMode) *big.Int {
	if shift <= 0 {
		return new(big.Int).Set(x)
	}
	if shift > maxCachedPow10 && x.BitLen() <= 3*(shift-1) {
		// |x| < 8^(shift-1) < 10^shift / 10: the quotient is 0 and the
		// remainder is below one half, no need to build 10^shift.
		return roundTiny(x, mode)
	}
	return quoRound(x, pow10(shift), mode)
}

// roundTiny rounds a non-integer quotient strictly between -1/2 and 1/2.
func roundTiny(x *big.Int, mode RoundingMode) *big.Int {
	neg := x.Sign() < 0
	switch {
	case x.Sign() == 0 || !mode.awayFromZero(neg, -1):
		return new(big.Int)
	case neg:
		return big.NewInt(-1)
	}
	return big.NewInt(1)
}

// quoTrunc returns x / y truncated towards zero.
// quoTrunc panics if y is 0, callers check the divisor first.
func quoTrunc(x, y *big.Int) *big.Int {
	return new(big.Int).Quo(x, y)
}

// quoRound returns round(x / y) using the given rounding mode.
// quoRound panics if y is 0, callers check the divisor first.
func quoRound(x, y *big.Int, mode RoundingMode) *big.Int {
	q, r := new(big.Int).QuoRem(x, y, new(big.Int))
	if r.Sign() == 0 {
		return q
	}
	// Sign of the exact quotient, q may be 0 here.
	neg := (x.Sign() < 0) != (y.Sign() < 0)

	// Compare 2|r| with |y| to locate the remainder relative to the half.
	r2 := r.Abs(r)
	r2.Lsh(r2, 1)
	half := r2.CmpAbs(y)

	if mode.awayFromZero(neg, half) {
		if neg {
			q.Sub(q, bone)
		} else {
			q.Add(q, bone)
		}
	} else if mode == RoundHalfEven && half == 0 && q.Bit(0) == 1 {
		if neg {
			q.Sub(q, bone)
		} else {
			q.Add(q, bone)
		}
	}
	return q
}
