package fixedpoint

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterfaces(t *testing.T) {
	var v any = Balance{}
	assert.Implements(t, (*json.Marshaler)(nil), v)
	assert.Implements(t, (*driver.Valuer)(nil), v)
	v = &Balance{}
	assert.Implements(t, (*json.Unmarshaler)(nil), v)
	assert.Implements(t, (*sql.Scanner)(nil), v)

	v = Price{}
	assert.Implements(t, (*encoding.TextMarshaler)(nil), v)
	assert.Implements(t, (*driver.Valuer)(nil), v)
	v = &Price{}
	assert.Implements(t, (*encoding.TextUnmarshaler)(nil), v)
	assert.Implements(t, (*sql.Scanner)(nil), v)
}

func TestParseRaw(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			in   string
			want string
		}{
			{"1500000", "1.500000"},
			{"0x16e360", "1.500000"},
			{"0", "0.000000"},
			{"-1", "-0.000001"},
		}
		for _, tt := range tests {
			got, err := ParseRaw(tt.in, 6)
			require.NoError(t, err, "ParseRaw(%q)", tt.in)
			assert.Equal(t, tt.want, got.String(), "ParseRaw(%q)", tt.in)
		}
	})

	t.Run("error", func(t *testing.T) {
		tooWide := "1" + strings.Repeat("0", 78)
		for _, in := range []string{"", "1.5", "0xzz", tooWide} {
			_, err := ParseRaw(in, 6)
			assert.ErrorIs(t, err, ErrInvalidAmount, "ParseRaw(%q)", in)
		}
		_, err := ParseRaw("1", -1)
		assert.ErrorIs(t, err, ErrInvalidDecimals)
	})
}

func TestBalance_JSON(t *testing.T) {
	b := MustParseBalance("1.5", 6)
	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"1500000","decimals":6}`, string(data))

	var got Balance
	require.NoError(t, json.Unmarshal([]byte(`{"value":"0x16e360","decimals":6}`), &got))
	assert.True(t, got.Eq(b))
	assert.Equal(t, 6, got.Decimals())

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"value":"x","decimals":6}`), &got), ErrInvalidAmount)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"value":"1","decimals":-2}`), &got), ErrInvalidDecimals)
	assert.Error(t, json.Unmarshal([]byte(`[]`), &got))
}

func TestPrice_Text(t *testing.T) {
	p := MustParsePrice("1.05")
	data, err := json.Marshal(struct {
		Price Price `json:"price"`
	}{p})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":"1050000000000000000"}`, string(data))

	var got Price
	require.NoError(t, got.UnmarshalText([]byte("0xe92596fd6290000")))
	assert.True(t, got.Eq(p))

	assert.ErrorIs(t, got.UnmarshalText([]byte("-1")), ErrNegativePrice)
	assert.ErrorIs(t, got.UnmarshalText([]byte("1.5")), ErrInvalidAmount)
}

func TestBalance_Uint256(t *testing.T) {
	b := MustParseBalance("1.5", 6)
	u, err := b.Uint256()
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500_000), u.Uint64())

	back, err := BalanceFromUint256(u, 6)
	require.NoError(t, err)
	assert.True(t, back.Eq(b))

	zero, err := BalanceFromUint256(nil, 6)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = b.Neg().Uint256()
	assert.ErrorIs(t, err, ErrOverflow)

	wide := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = MustBalanceOf(wide, 0).Uint256()
	assert.ErrorIs(t, err, ErrOverflow)

	max := new(uint256.Int).SetAllOne()
	got, err := BalanceFromUint256(max, 18)
	require.NoError(t, err)
	assert.Equal(t, max.ToBig().String(), got.Raw().String())
}

func TestBalance_Hex(t *testing.T) {
	assert.Equal(t, "0x16e360", MustParseBalance("1.5", 6).Hex())
	assert.Equal(t, "0x0", Balance{}.Hex())
}

func TestBalance_SQL(t *testing.T) {
	t.Run("value", func(t *testing.T) {
		v, err := MustParseBalance("1.5", 6).Value()
		require.NoError(t, err)
		assert.Equal(t, "1.500000", v)
	})

	t.Run("scan", func(t *testing.T) {
		tests := []struct {
			in       any
			want     string
			decimals int
		}{
			{"1.500000", "1500000", 6},
			{[]byte("-0.25"), "-25", 2},
			{int64(42), "42", 0},
			{"100", "100", 0},
		}
		for _, tt := range tests {
			var b Balance
			require.NoError(t, b.Scan(tt.in), "Scan(%v)", tt.in)
			assert.Equal(t, tt.want, b.Raw().String(), "Scan(%v)", tt.in)
			assert.Equal(t, tt.decimals, b.Decimals(), "Scan(%v)", tt.in)
		}
	})

	t.Run("scan error", func(t *testing.T) {
		var b Balance
		assert.Error(t, b.Scan(1.5))
		assert.Error(t, b.Scan(nil))
		assert.ErrorIs(t, b.Scan("1,5"), ErrInvalidAmount)
		assert.ErrorIs(t, b.Scan("1e30000000"), ErrOverflow)
		assert.ErrorIs(t, b.Scan("1e-30000000"), ErrInvalidDecimals)
	})

	t.Run("price", func(t *testing.T) {
		var p Price
		require.NoError(t, p.Scan("1.05"))
		assert.Equal(t, "1050000000000000000", p.Raw().String())

		v, err := p.Value()
		require.NoError(t, err)
		assert.Equal(t, "1.050000000000000000", v)

		assert.ErrorIs(t, p.Scan("-1"), ErrNegativePrice)
		assert.ErrorIs(t, p.Scan("-0.0000000000000000001"), ErrNegativePrice)
	})
}
