package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/rwapools/fixedpoint"
)

func TestCoerce(t *testing.T) {
	b, ok := Coerce("1.5", 6)
	require.True(t, ok)
	assert.Equal(t, "1500000", b.Raw().String())

	for _, in := range []string{"abc", "", "0.0001", "1,5", "1e30000000", "1e-30000000"} {
		_, ok := Coerce(in, 2)
		assert.False(t, ok, "Coerce(%q)", in)
	}
}

func TestBalanceField_Parse(t *testing.T) {
	deposit := BalanceField{
		Name:     "deposit",
		Decimals: 6,
		Min:      fixedpoint.RawInt64(1_500_000),
		Max:      fixedpoint.MustParseBalance("1000", 6),
	}

	t.Run("success", func(t *testing.T) {
		tests := []struct {
			in   string
			want string
		}{
			{"1.5", "1500000"},
			{" 2.25 ", "2250000"},
			{"1000", "1000000000"},
			{"1.5000004", "1500000"},
		}
		for _, tt := range tests {
			got, err := deposit.Parse(tt.in)
			require.NoError(t, err, "Parse(%q)", tt.in)
			assert.Equal(t, tt.want, got.Raw().String(), "Parse(%q)", tt.in)
			assert.Equal(t, 6, got.Decimals(), "Parse(%q)", tt.in)
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []struct {
			in      string
			cause   error
			message string
		}{
			{"", ErrRequired, "deposit is required"},
			{"1", ErrOutOfRange, "deposit must be at least 1.5"},
			{"1000.000001", ErrOutOfRange, "deposit must be at most 1000"},
			{"-2", ErrOutOfRange, "deposit must be at least 1.5"},
			{"ten", fixedpoint.ErrInvalidAmount, "deposit must be a number"},
			{"0.0000001", fixedpoint.ErrUnderflow, "deposit must be at least 0.000001 or 0"},
			{"1e30000000", fixedpoint.ErrOverflow, "deposit is too large"},
			{"-1e30000000", fixedpoint.ErrOverflow, "deposit is too large"},
			{"1e-30000000", fixedpoint.ErrUnderflow, "deposit must be at least 0.000001 or 0"},
		}
		for _, tt := range tests {
			_, err := deposit.Parse(tt.in)
			require.Error(t, err, "Parse(%q)", tt.in)
			assert.ErrorIs(t, err, tt.cause, "Parse(%q)", tt.in)
			assert.EqualError(t, err, tt.message, "Parse(%q)", tt.in)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "Parse(%q)", tt.in)
			assert.Equal(t, "deposit", verr.Field)
		}
	})

	t.Run("check", func(t *testing.T) {
		assert.NoError(t, deposit.Check("10"))
		assert.EqualError(t, deposit.Check("1"), "deposit must be at least 1.5")
	})
}

func TestBalanceField_Bounds(t *testing.T) {
	// A balance bound keeps its own decimals.
	f := BalanceField{
		Name:     "amount",
		Decimals: 18,
		Min:      fixedpoint.MustParseBalance("0.5", 2),
	}
	_, err := f.Parse("0.49")
	assert.EqualError(t, err, "amount must be at least 0.5")
	_, err = f.Parse("0.5")
	assert.NoError(t, err)

	// A raw bound is read in field units.
	f = BalanceField{Name: "amount", Decimals: 2, Max: fixedpoint.RawInt64(12345)}
	_, err = f.Parse("123.46")
	assert.EqualError(t, err, "amount must be at most 123.45")

	// No bounds accept any representable value.
	f = BalanceField{Name: "amount", Decimals: 2}
	b, err := f.Parse("-99999999999999999999")
	require.NoError(t, err)
	assert.Equal(t, "-9999999999999999999900", b.Raw().String())
}

func TestBalanceField_Optional(t *testing.T) {
	f := BalanceField{Name: "fee", Decimals: 6, Optional: true, Min: fixedpoint.RawInt64(1)}
	b, err := f.Parse("   ")
	require.NoError(t, err)
	assert.True(t, b.IsZero())
	assert.Equal(t, 6, b.Decimals())

	_, err = f.Parse("0")
	assert.EqualError(t, err, "fee must be at least 0.000001")
}

func TestSchema_Parse(t *testing.T) {
	s := New(
		BalanceField{Name: "deposit", Decimals: 6, Min: fixedpoint.RawInt64(1)},
		BalanceField{Name: "slippage", Decimals: 4, Max: fixedpoint.RawInt64(500)},
		BalanceField{Name: "tip", Decimals: 2, Optional: true},
	)

	got, err := s.Parse(map[string]string{"deposit": "10", "slippage": "0.01"})
	require.NoError(t, err)
	assert.Equal(t, "10000000", got["deposit"].Raw().String())
	assert.Equal(t, "100", got["slippage"].Raw().String())
	assert.True(t, got["tip"].IsZero())

	_, err = s.Parse(map[string]string{"slippage": "0.1", "tip": "x"})
	errs := multierr.Errors(err)
	require.Len(t, errs, 3)
	assert.EqualError(t, errs[0], "deposit is required")
	assert.EqualError(t, errs[1], "slippage must be at most 0.05")
	assert.EqualError(t, errs[2], "tip must be a number")

	f, ok := s.Field("slippage")
	require.True(t, ok)
	assert.Equal(t, 4, f.Decimals)
	_, ok = s.Field("missing")
	assert.False(t, ok)
}
