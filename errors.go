package fixedpoint

import "github.com/pkg/errors"

var (
	// ErrUnderflow is returned when a non-zero value is smaller than one raw
	// unit at the requested precision and would silently become 0.
	ErrUnderflow = errors.New("value too small to be represented")
	// ErrDivisionByZero is returned when a divisor is 0.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrDecimalsMismatch is returned when two balances with different
	// decimals are added or subtracted.
	ErrDecimalsMismatch = errors.New("decimals mismatch")
	// ErrInvalidDecimals is returned for a negative number of decimals or
	// one above MaxDecimals.
	ErrInvalidDecimals = errors.New("invalid decimals")
	// ErrInvalidAmount is returned when a string does not hold a number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativePrice is returned when a price is built from a negative value.
	ErrNegativePrice = errors.New("negative price")
	// ErrOverflow is returned when a value does not fit into 256 unsigned bits.
	ErrOverflow = errors.New("value out of uint256 range")
)

func checkDecimals(decimals int) error {
	if decimals < 0 || decimals > MaxDecimals {
		return errors.Wrapf(ErrInvalidDecimals, "got %v, want 0..%v", decimals, MaxDecimals)
	}
	return nil
}
