package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwapools/fixedpoint"
)

func usdcClass() ShareClass {
	return ShareClass{
		Name:          "senior",
		AssetSymbol:   "USDC",
		AssetDecimals: 6,
		ShareDecimals: 18,
		Price:         fixedpoint.MustParsePrice("1.05"),
	}
}

func TestShareClass_SharesForDeposit(t *testing.T) {
	c := usdcClass()

	tests := []struct {
		assets string
		want   string
	}{
		{"105", "100.000000000000000000"},
		{"1", "0.952380952380952380"},
		{"0", "0.000000000000000000"},
	}
	for _, tt := range tests {
		got, err := c.SharesForDeposit(fixedpoint.MustParseBalance(tt.assets, 6))
		require.NoError(t, err, "SharesForDeposit(%v)", tt.assets)
		assert.Equal(t, tt.want, got.String(), "SharesForDeposit(%v)", tt.assets)
		assert.Equal(t, 18, got.Decimals())
	}
}

func TestShareClass_AssetsForRedeem(t *testing.T) {
	c := usdcClass()

	got, err := c.AssetsForRedeem(fixedpoint.MustParseBalance("100", 18))
	require.NoError(t, err)
	assert.Equal(t, "105.000000", got.String())

	// A deposit and its redemption never return more than was deposited.
	shares, err := c.SharesForDeposit(fixedpoint.MustParseBalance("1", 6))
	require.NoError(t, err)
	got, err = c.AssetsForRedeem(shares)
	require.NoError(t, err)
	assert.Equal(t, "0.999999", got.String())
}

func TestShareClass_Narrow(t *testing.T) {
	c := ShareClass{
		Name:          "junior",
		AssetSymbol:   "DAI",
		AssetDecimals: 18,
		ShareDecimals: 6,
		Price:         fixedpoint.MustParsePrice("2"),
	}

	got, err := c.SharesForDeposit(fixedpoint.MustParseBalance("1.000000000000000001", 18))
	require.NoError(t, err)
	assert.Equal(t, "0.500000", got.String())

	got, err = c.SharesForDeposit(fixedpoint.MustParseBalance("0.000000002", 18))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
	assert.Equal(t, 6, got.Decimals())

	got, err = c.AssetsForRedeem(fixedpoint.MustParseBalance("0.000001", 6))
	require.NoError(t, err)
	assert.Equal(t, "0.000002000000000000", got.String())
}

func TestShareClass_Errors(t *testing.T) {
	c := usdcClass()

	_, err := c.SharesForDeposit(fixedpoint.MustParseBalance("1", 18))
	assert.ErrorIs(t, err, fixedpoint.ErrDecimalsMismatch)
	assert.EqualError(t, err, "senior deposit has 18 decimals, want 6: decimals mismatch")

	_, err = c.AssetsForRedeem(fixedpoint.MustParseBalance("1", 6))
	assert.ErrorIs(t, err, fixedpoint.ErrDecimalsMismatch)

	c.Price = fixedpoint.PriceOf(nil)
	_, err = c.SharesForDeposit(fixedpoint.MustParseBalance("1", 6))
	assert.ErrorIs(t, err, fixedpoint.ErrDivisionByZero)
}

func TestShareClass_Quote(t *testing.T) {
	c := usdcClass()

	q, err := c.Deposit(fixedpoint.MustParseBalance("210", 6))
	require.NoError(t, err)
	assert.Equal(t, KindDeposit, q.Kind)
	assert.Equal(t, "senior", q.Class)
	assert.Equal(t, "200.000000000000000000", q.Out.String())
	assert.True(t, q.Price.Eq(c.Price))

	q, err = c.Redeem(fixedpoint.MustParseBalance("200", 18))
	require.NoError(t, err)
	assert.Equal(t, KindRedeem, q.Kind)
	assert.Equal(t, "210.000000", q.Out.String())

	_, err = c.Redeem(fixedpoint.MustParseBalance("200", 6))
	assert.ErrorIs(t, err, fixedpoint.ErrDecimalsMismatch)
}

func TestPosition_Total(t *testing.T) {
	c := usdcClass()

	p := Position{
		Pending:   fixedpoint.MustParseBalance("10", 6),
		Claimable: fixedpoint.MustParseBalance("50", 18),
		Shares:    fixedpoint.MustParseBalance("50", 18),
	}
	shares, err := p.TotalShares()
	require.NoError(t, err)
	assert.Equal(t, "100.000000000000000000", shares.String())

	total, err := p.Total(c)
	require.NoError(t, err)
	assert.Equal(t, "115.000000", total.String())

	p.Shares = fixedpoint.MustParseBalance("50", 6)
	_, err = p.Total(c)
	assert.ErrorIs(t, err, fixedpoint.ErrDecimalsMismatch)

	p.Shares = fixedpoint.MustParseBalance("50", 18)
	p.Pending = fixedpoint.MustParseBalance("10", 18)
	_, err = p.Total(c)
	assert.ErrorIs(t, err, fixedpoint.ErrDecimalsMismatch)
}
