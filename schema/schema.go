// Package schema turns user-typed decimal strings into balances and checks
// them against inclusive bounds.
//
// Bounds are [fixedpoint.Addend] values: a raw bound is read in the units of
// the field, a balance bound in its own decimals. Failure messages always
// show bounds as human decimals, never as raw integers.
package schema

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/rwapools/fixedpoint"
)

var (
	// ErrRequired is the cause of a validation error for an empty
	// mandatory field.
	ErrRequired = errors.New("required")
	// ErrOutOfRange is the cause of a validation error for a value outside
	// the field bounds.
	ErrOutOfRange = errors.New("out of range")
)

// ValidationError describes why the input of a single field was rejected.
// Message is meant to be shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the cause, one of [ErrRequired], [ErrOutOfRange],
// [fixedpoint.ErrInvalidAmount] or [fixedpoint.ErrUnderflow].
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Coerce converts input into a balance with the given decimals.
// Construction failures are not errors at this layer: ok is false and the
// caller keeps the raw string, leaving the message to [BalanceField.Parse].
func Coerce(input string, decimals int) (b fixedpoint.Balance, ok bool) {
	b, err := fixedpoint.ParseBalance(input, decimals)
	if err != nil {
		return fixedpoint.Balance{}, false
	}
	return b, true
}

// BalanceField is the schema of a single amount input.
type BalanceField struct {
	Name     string
	Decimals int
	Min      fixedpoint.Addend
	Max      fixedpoint.Addend
	Optional bool
}

// Parse converts input and validates the result.
// An empty optional input is 0.
func (f BalanceField) Parse(input string) (fixedpoint.Balance, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		if f.Optional {
			return fixedpoint.BalanceOf(nil, f.Decimals)
		}
		return fixedpoint.Balance{}, f.fail(ErrRequired, "%v is required", f.Name)
	}
	b, ok := Coerce(s, f.Decimals)
	if !ok {
		return fixedpoint.Balance{}, f.explain(s)
	}
	if err := f.Validate(b); err != nil {
		return fixedpoint.Balance{}, err
	}
	return b, nil
}

// explain reproduces the construction failure of s as a user message.
func (f BalanceField) explain(s string) error {
	_, err := fixedpoint.ParseBalance(s, f.Decimals)
	switch {
	case errors.Is(err, fixedpoint.ErrUnderflow):
		unit := decimal.New(1, -int32(f.Decimals))
		return f.fail(fixedpoint.ErrUnderflow, "%v must be at least %v or 0", f.Name, unit)
	case errors.Is(err, fixedpoint.ErrOverflow):
		return f.fail(fixedpoint.ErrOverflow, "%v is too large", f.Name)
	case errors.Is(err, fixedpoint.ErrInvalidDecimals):
		return f.fail(err, "%v accepts no amount: %v", f.Name, err)
	}
	return f.fail(fixedpoint.ErrInvalidAmount, "%v must be a number", f.Name)
}

// Validate checks b against the inclusive bounds of the field.
func (f BalanceField) Validate(b fixedpoint.Balance) error {
	v := b.ToDecimal()
	if f.Min != nil {
		if lo := bound(f.Min, f.Decimals); v.LessThan(lo) {
			return f.fail(ErrOutOfRange, "%v must be at least %v", f.Name, lo)
		}
	}
	if f.Max != nil {
		if hi := bound(f.Max, f.Decimals); v.GreaterThan(hi) {
			return f.fail(ErrOutOfRange, "%v must be at most %v", f.Name, hi)
		}
	}
	return nil
}

// Check is the string validator of the field, suitable for form inputs.
func (f BalanceField) Check(input string) error {
	_, err := f.Parse(input)
	return err
}

func (f BalanceField) fail(cause error, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   f.Name,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// bound returns the human value of a bound.
// decimal.Decimal.String drops trailing zeros, so 1500000 raw units at
// 6 decimals print as 1.5.
func bound(a fixedpoint.Addend, decimals int) decimal.Decimal {
	switch x := a.(type) {
	case fixedpoint.RawOperand:
		return decimal.NewFromBigInt(x.Int(), -int32(decimals))
	case fixedpoint.Balance:
		return x.ToDecimal()
	}
	panic(fmt.Sprintf("schema: unexpected bound type %T", a))
}

// Schema is an ordered set of fields.
type Schema struct {
	fields []BalanceField
}

// New returns a schema validating the given fields in order.
func New(fields ...BalanceField) *Schema {
	return &Schema{fields: fields}
}

// Field returns the field with the given name.
func (s *Schema) Field(name string) (BalanceField, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}
	return BalanceField{}, false
}

// Parse parses every field from values, missing keys count as empty input.
// All failures are reported together; use multierr.Errors to list them.
func (s *Schema) Parse(values map[string]string) (map[string]fixedpoint.Balance, error) {
	out := make(map[string]fixedpoint.Balance, len(s.fields))
	var err error
	for _, f := range s.fields {
		b, ferr := f.Parse(values[f.Name])
		if ferr != nil {
			err = multierr.Append(err, ferr)
			continue
		}
		out[f.Name] = b
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
