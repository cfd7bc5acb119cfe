// Package quote converts between pool assets and shares at a share price.
//
// Quotes never over-promise: every conversion truncates, so the shares
// received for a deposit and the assets received for a redemption are
// rounded down.
package quote

import (
	"github.com/pkg/errors"

	"github.com/rwapools/fixedpoint"
)

// ShareClass is a pool token with its own price per share.
// Assets and shares may have different decimals, Price is always a
// number of assets per share.
type ShareClass struct {
	Name          string
	AssetSymbol   string
	AssetDecimals int
	ShareDecimals int
	Price         fixedpoint.Price
}

// Kind tells whether a quote is for a deposit or a redemption.
type Kind string

const (
	KindDeposit Kind = "deposit"
	KindRedeem  Kind = "redeem"
)

// Quote is the result of a conversion.
type Quote struct {
	Kind  Kind
	Class string
	In    fixedpoint.Balance
	Out   fixedpoint.Balance
	Price fixedpoint.Price
}

// SharesForDeposit returns the shares minted for a deposit of assets.
// assets must have the asset decimals of the class.
func (c ShareClass) SharesForDeposit(assets fixedpoint.Balance) (fixedpoint.Balance, error) {
	if err := c.expect(assets, c.AssetDecimals, "deposit"); err != nil {
		return fixedpoint.Balance{}, err
	}
	wide, err := assets.Scale(max(c.AssetDecimals, c.ShareDecimals))
	if err != nil {
		return fixedpoint.Balance{}, err
	}
	shares, err := wide.DivPrice(c.Price)
	if err != nil {
		return fixedpoint.Balance{}, errors.Wrapf(err, "%v price", c.Name)
	}
	return c.narrow(shares, c.ShareDecimals)
}

// AssetsForRedeem returns the assets paid out for shares.
// shares must have the share decimals of the class.
func (c ShareClass) AssetsForRedeem(shares fixedpoint.Balance) (fixedpoint.Balance, error) {
	if err := c.expect(shares, c.ShareDecimals, "redeem"); err != nil {
		return fixedpoint.Balance{}, err
	}
	wide, err := shares.Scale(max(c.AssetDecimals, c.ShareDecimals))
	if err != nil {
		return fixedpoint.Balance{}, err
	}
	return c.narrow(wide.MulMode(c.Price, fixedpoint.RoundDown), c.AssetDecimals)
}

// Deposit quotes a deposit of assets.
func (c ShareClass) Deposit(assets fixedpoint.Balance) (Quote, error) {
	shares, err := c.SharesForDeposit(assets)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Kind: KindDeposit, Class: c.Name, In: assets, Out: shares, Price: c.Price}, nil
}

// Redeem quotes a redemption of shares.
func (c ShareClass) Redeem(shares fixedpoint.Balance) (Quote, error) {
	assets, err := c.AssetsForRedeem(shares)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Kind: KindRedeem, Class: c.Name, In: shares, Out: assets, Price: c.Price}, nil
}

func (c ShareClass) expect(b fixedpoint.Balance, decimals int, what string) error {
	if b.Decimals() != decimals {
		return errors.Wrapf(fixedpoint.ErrDecimalsMismatch,
			"%v %v has %v decimals, want %v", c.Name, what, b.Decimals(), decimals)
	}
	return nil
}

// narrow truncates b to decimals. A non-zero amount worth less than one
// unit quotes as 0 rather than failing.
func (c ShareClass) narrow(b fixedpoint.Balance, decimals int) (fixedpoint.Balance, error) {
	out, err := b.ScaleMode(decimals, fixedpoint.RoundDown)
	if errors.Is(err, fixedpoint.ErrUnderflow) {
		return fixedpoint.BalanceOf(nil, decimals)
	}
	return out, err
}

// Position is an investor's holding in a share class.
// Pending assets are deposited but not yet converted, Claimable shares are
// converted but not yet collected.
type Position struct {
	Pending   fixedpoint.Balance
	Claimable fixedpoint.Balance
	Shares    fixedpoint.Balance
}

// TotalShares returns Claimable + Shares.
func (p Position) TotalShares() (fixedpoint.Balance, error) {
	total, err := p.Claimable.Add(p.Shares)
	if err != nil {
		return fixedpoint.Balance{}, errors.Wrap(err, "claimable + shares")
	}
	return total, nil
}

// Total values the whole position in assets of class c.
// Balances with unexpected decimals surface [fixedpoint.ErrDecimalsMismatch].
func (p Position) Total(c ShareClass) (fixedpoint.Balance, error) {
	shares, err := p.TotalShares()
	if err != nil {
		return fixedpoint.Balance{}, err
	}
	assets, err := c.AssetsForRedeem(shares)
	if err != nil {
		return fixedpoint.Balance{}, err
	}
	total, err := p.Pending.Add(assets)
	if err != nil {
		return fixedpoint.Balance{}, errors.Wrap(err, "pending + shares")
	}
	return total, nil
}
