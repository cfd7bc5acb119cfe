package fixedpoint

import (
	"database/sql/driver"
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ParseRaw returns a balance from a raw integer string as returned by
// contract calls and indexers: decimal ("1500000") or hex ("0x16e360").
// Values wider than 256 bits are rejected.
func ParseRaw(s string, decimals int) (Balance, error) {
	raw, err := parseRawInt(s)
	if err != nil {
		return Balance{}, err
	}
	return BalanceOf(raw, decimals)
}

func parseRawInt(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.Wrap(ErrInvalidAmount, "empty raw value")
	}
	raw, ok := math.ParseBig256(s)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidAmount, "raw value %q", s)
	}
	return raw, nil
}

// BalanceFromUint256 returns a balance from a uint256 contract value.
func BalanceFromUint256(u *uint256.Int, decimals int) (Balance, error) {
	if u == nil {
		return BalanceOf(nil, decimals)
	}
	return BalanceOf(u.ToBig(), decimals)
}

// Uint256 returns the raw value as a uint256 contract argument.
// It returns [ErrOverflow] for negative values and values wider than 256 bits.
func (b Balance) Uint256() (*uint256.Int, error) {
	if b.sign() < 0 {
		return nil, errors.Wrapf(ErrOverflow, "negative value %v", b)
	}
	u, overflow := uint256.FromBig(b.int())
	if overflow {
		return nil, errors.Wrapf(ErrOverflow, "%v", b)
	}
	return u, nil
}

// Hex returns the raw value as a 0x-prefixed hex quantity, the JSON-RPC form.
func (b Balance) Hex() string {
	return hexutil.EncodeBig(b.int())
}

type balanceJSON struct {
	Value    string `json:"value"`
	Decimals int    `json:"decimals"`
}

// MarshalJSON implements the [json.Marshaler] interface.
// The raw value is written as a decimal string next to the decimals:
//
//	{"value":"1500000","decimals":6}
func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(balanceJSON{Value: b.int().String(), Decimals: b.decimals})
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// The value may be a decimal or a 0x-prefixed hex string.
func (b *Balance) UnmarshalJSON(data []byte) error {
	var v balanceJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "decode balance")
	}
	c, err := ParseRaw(v.Value, v.Decimals)
	if err != nil {
		return err
	}
	*b = c
	return nil
}

// Value implements the [driver.Valuer] interface.
// The balance is stored as its human value, for example "1.500000",
// which keeps the decimals in the number of fractional digits.
func (b Balance) Value() (driver.Value, error) {
	return b.string(), nil
}

// Scan implements the [sql.Scanner] interface.
// The decimals are taken from the number of fractional digits.
func (b *Balance) Scan(value any) error {
	f, err := scanFixed(value)
	if err != nil {
		return err
	}
	*b = Balance{f}
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// The raw value is written as a decimal string.
func (p Price) MarshalText() ([]byte, error) {
	return []byte(p.core().int().String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// The raw value may be a decimal or a 0x-prefixed hex string.
func (p *Price) UnmarshalText(text []byte) error {
	raw, err := parseRawInt(string(text))
	if err != nil {
		return err
	}
	if raw.Sign() < 0 {
		return errors.Wrapf(ErrNegativePrice, "raw value %q", text)
	}
	*p = Price{raw: raw}
	return nil
}

// Value implements the [driver.Valuer] interface, see [Balance.Value].
func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements the [sql.Scanner] interface.
func (p *Price) Scan(value any) error {
	f, err := scanFixed(value)
	if err != nil {
		return err
	}
	if f.sign() < 0 {
		return errors.Wrapf(ErrNegativePrice, "%v", value)
	}
	f, err = f.rescale(PriceDecimals, DefaultRounding)
	if err != nil {
		return err
	}
	*p = Price{raw: f.raw}
	return nil
}

func scanFixed(value any) (fixed, error) {
	var d decimal.Decimal
	switch v := value.(type) {
	case string:
		p, err := parseDecimal(v)
		if err != nil {
			return fixed{}, err
		}
		d = p
	case []byte:
		p, err := parseDecimal(string(v))
		if err != nil {
			return fixed{}, err
		}
		d = p
	case int64:
		d = decimal.NewFromInt(v)
	default:
		return fixed{}, errors.Errorf("failed to scan %T into fixed-point value", value)
	}
	decimals := 0
	if exp := int(d.Exponent()); exp < 0 {
		decimals = -exp
	}
	if err := checkDecimals(decimals); err != nil {
		return fixed{}, err
	}
	if err := checkShift(d, decimals); err != nil {
		return fixed{}, err
	}
	return wrapFixed(scaleDecimal(d, decimals, RoundDown), decimals), nil
}
