// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evaluator

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/operation"
)

func transfer(ctx *Context, op *operation.Transfer) error {
	l := ctx.Ledger

	if !l.AccountExists(op.To) {
		return errors.Wrapf(fault.ErrUnknownAccount, "to: %q", op.To)
	}
	if err := l.AdjustBalance(op.From, asset.New(-op.Amount.Amount, op.Amount.Symbol)); nil != err {
		return err
	}
	return l.AdjustBalance(op.To, op.Amount)
}

func transferToVesting(ctx *Context, op *operation.TransferToVesting) error {
	l := ctx.Ledger

	to := op.To
	if "" == to {
		to = op.From
	}
	if !l.AccountExists(to) {
		return errors.Wrapf(fault.ErrUnknownAccount, "to: %q", to)
	}

	if err := l.AdjustBalance(op.From, asset.NativeAmount(-op.Amount.Amount)); nil != err {
		return err
	}
	_, err := l.Vest(to, op.Amount.Amount)
	return err
}

func withdrawVesting(ctx *Context, op *operation.WithdrawVesting) error {
	l := ctx.Ledger

	a, err := l.GetAccount(op.Account)
	if nil != err {
		return err
	}

	shares := op.VestingShares.Amount
	if a.VestingShares < shares {
		return errors.Wrapf(fault.ErrInsufficientVestingShares, "account: %q has: %s withdraw: %s",
			op.Account, asset.VestingAmount(a.VestingShares), op.VestingShares)
	}

	if 0 == shares {
		if !a.IsWithdrawing() {
			return errors.Wrapf(fault.ErrNothingToCancel, "account: %q is not withdrawing", op.Account)
		}
		a.VestingWithdrawRate = 0
		a.NextVestingWithdrawal = chaintime.Maximum
		a.ToWithdraw = 0
		a.Withdrawn = 0
		l.PutAccount(a)
		return nil
	}

	// an active witness keeps the stake it needs
	if w, ok := l.FindWitness(op.Account); ok && !w.Stopped {
		required := l.Properties().WitnessRequiredVesting
		if a.VestingShares-shares < required {
			return errors.Wrapf(fault.ErrInsufficientWitnessStake, "witness: %q must keep: %s",
				op.Account, asset.VestingAmount(required))
		}
	}

	rate := shares / constants.VestingWithdrawIntervals
	if 0 == rate {
		rate = 1
	}
	if rate == a.VestingWithdrawRate {
		return errors.Wrapf(fault.ErrWithdrawRateUnchanged, "rate: %s", asset.VestingAmount(rate))
	}

	a.VestingWithdrawRate = rate
	a.NextVestingWithdrawal = ctx.Now.Add(constants.VestingWithdrawInterval)
	a.ToWithdraw = shares
	a.Withdrawn = 0
	l.PutAccount(a)
	return nil
}
