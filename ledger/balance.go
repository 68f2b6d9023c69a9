// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/authority"
	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/fault"
)

// AdjustBalance - add a signed amount to the liquid balance or the
// vesting shares of an account
//
// a change of vesting shares moves the account's vote weight with it
func (l *Ledger) AdjustBalance(name string, amount asset.Asset) error {
	a, err := l.GetAccount(name)
	if nil != err {
		return err
	}

	switch amount.Symbol {
	case asset.Native:
		if a.Balance+amount.Amount < 0 {
			return errors.Wrapf(fault.ErrInsufficientFunds, "account: %q has: %s needs: %s",
				name, asset.NativeAmount(a.Balance), asset.NativeAmount(-amount.Amount))
		}
		a.Balance += amount.Amount
		l.PutAccount(a)

	case asset.Vesting:
		if a.VestingShares+amount.Amount < 0 {
			return errors.Wrapf(fault.ErrInsufficientVestingShares, "account: %q has: %s needs: %s",
				name, asset.VestingAmount(a.VestingShares), asset.VestingAmount(-amount.Amount))
		}
		a.VestingShares += amount.Amount
		l.PutAccount(a)
		l.AdjustProxiedWitnessVote(name, amount.Amount)

	default:
		return errors.Wrapf(fault.ErrInvalidSymbol, "symbol: %q", amount.Symbol)
	}
	return nil
}

// PayFee - move a fee from the payer, or its sponsor, to the pending
// rewards
func (l *Ledger) PayFee(payer string, fee int64) error {
	if fee <= 0 {
		return nil
	}
	if sponsor, ok := l.FindSponsor(payer); ok {
		payer = sponsor
	}
	if err := l.AdjustBalance(payer, asset.NativeAmount(-fee)); nil != err {
		return err
	}
	e := l.Economics()
	e.PendingRewards += fee
	l.PutEconomics(e)
	return nil
}

// AdjustSupply - change the amount of native currency in existence
func (l *Ledger) AdjustSupply(delta int64) {
	p := l.Properties()
	p.CurrentSupply += delta
	if p.CurrentSupply < 0 {
		fault.Panicf("ledger: current supply: %d is negative", p.CurrentSupply)
	}
	l.PutProperties(p)
}

// ToVestingShares - shares bought by a native amount at the current
// share price, one to one while nothing is vested
func ToVestingShares(p *Properties, amount int64) int64 {
	if 0 == p.TotalVestingFund || 0 == p.TotalVestingShares {
		return amount
	}
	return mulDiv(amount, p.TotalVestingShares, p.TotalVestingFund)
}

// ToNative - native amount redeemed by shares at the current share
// price
func ToNative(p *Properties, shares int64) int64 {
	if 0 == p.TotalVestingFund || 0 == p.TotalVestingShares {
		return shares
	}
	return mulDiv(shares, p.TotalVestingFund, p.TotalVestingShares)
}

// a*b/c without intermediate overflow, all arguments non-negative
func mulDiv(a int64, b int64, c int64) int64 {
	if a < 0 || b < 0 || c <= 0 {
		fault.Panicf("ledger: share price arithmetic on: %d * %d / %d", a, b, c)
	}
	x := uint256.NewInt(uint64(a))
	x.Mul(x, uint256.NewInt(uint64(b)))
	x.Div(x, uint256.NewInt(uint64(c)))
	if !x.IsUint64() || x.Uint64() > 1<<63-1 {
		fault.Panicf("ledger: share price overflow on: %d * %d / %d", a, b, c)
	}
	return int64(x.Uint64())
}

// Vest - convert a native amount already removed from a liquid
// balance into vesting shares of the account, returns the shares
func (l *Ledger) Vest(name string, amount int64) (int64, error) {
	if _, err := l.GetAccount(name); nil != err {
		return 0, err
	}

	p := l.Properties()
	shares := ToVestingShares(p, amount)
	p.TotalVestingFund += amount
	p.TotalVestingShares += shares
	l.PutProperties(p)

	if err := l.AdjustBalance(name, asset.VestingAmount(shares)); nil != err {
		return 0, err
	}
	return shares, nil
}

// Unvest - redeem vesting shares of the account into its liquid
// balance, returns the native amount
func (l *Ledger) Unvest(name string, shares int64) (int64, error) {
	if err := l.AdjustBalance(name, asset.VestingAmount(-shares)); nil != err {
		return 0, err
	}

	p := l.Properties()
	amount := ToNative(p, shares)
	p.TotalVestingFund -= amount
	p.TotalVestingShares -= shares
	l.PutProperties(p)

	if err := l.AdjustBalance(name, asset.NativeAmount(amount)); nil != err {
		return 0, err
	}
	return amount, nil
}

// UpdateOwnerAuthority - replace the owner authority keeping the old
// one in the history for recovery
func (l *Ledger) UpdateOwnerAuthority(name string, owner authority.Authority, now chaintime.Time) {
	auth := l.GetAuthority(name)
	l.AddOwnerHistory(&OwnerHistory{
		Account:                name,
		PreviousOwnerAuthority: auth.Owner,
		LastValidTime:          now,
	})
	auth.Owner = owner
	auth.LastOwnerUpdate = now
	l.PutAuthority(auth)
}
