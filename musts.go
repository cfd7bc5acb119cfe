package fixedpoint

import (
	"fmt"
	"math/big"
)

// MustBalanceOf is like [BalanceOf] but panics if decimals are out of range.
// It simplifies safe initialization of global variables holding balances.
func MustBalanceOf(raw *big.Int, decimals int) Balance {
	b, err := BalanceOf(raw, decimals)
	if err != nil {
		panic(fmt.Sprintf("MustBalanceOf(%v, %v) failed: %v", raw, decimals, err))
	}
	return b
}

// MustParseBalance is like [ParseBalance] but panics if the string cannot
// be converted.
func MustParseBalance(s string, decimals int) Balance {
	b, err := ParseBalance(s, decimals)
	if err != nil {
		panic(fmt.Sprintf("MustParseBalance(%q, %v) failed: %v", s, decimals, err))
	}
	return b
}

// MustParsePrice is like [ParsePrice] but panics if the string cannot
// be converted.
func MustParsePrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(fmt.Sprintf("MustParsePrice(%q) failed: %v", s, err))
	}
	return p
}

// MustAdd is like [Balance.Add] but panics on a decimals mismatch.
func (b Balance) MustAdd(x Addend) Balance {
	c, err := b.Add(x)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v) failed: %v", b, err))
	}
	return c
}

// MustSub is like [Balance.Sub] but panics on a decimals mismatch.
func (b Balance) MustSub(x Addend) Balance {
	c, err := b.Sub(x)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v) failed: %v", b, err))
	}
	return c
}
