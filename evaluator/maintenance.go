// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evaluator

import (
	"golang.org/x/exp/slices"

	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/operation"
)

// Maintain - the per block processing due at ctx.Now, run after the
// operations of the block
//
// any failure here is an inconsistent ledger
func Maintain(ctx *Context) {
	processVestingWithdrawals(ctx)
	expireEscrowRatification(ctx)
	processAccountRecovery(ctx)
	updateMedianProperties(ctx)
}

func processVestingWithdrawals(ctx *Context) {
	l := ctx.Ledger

	for _, name := range l.AccountsWithdrawingBy(ctx.Now) {
		a := l.MustGetAccount(name)

		// the last payment is the remainder
		shares := a.VestingWithdrawRate
		if a.ToWithdraw-a.Withdrawn < a.VestingWithdrawRate {
			shares = a.ToWithdraw % a.VestingWithdrawRate
		}
		if shares > a.VestingShares {
			shares = a.VestingShares
		}

		deposited, err := l.Unvest(name, shares)
		fault.PanicIfError("evaluator: vesting withdrawal", err)

		a = l.MustGetAccount(name)
		a.Withdrawn += shares
		if a.Withdrawn >= a.ToWithdraw || 0 == a.VestingShares {
			a.VestingWithdrawRate = 0
			a.NextVestingWithdrawal = chaintime.Maximum
		} else {
			a.NextVestingWithdrawal = a.NextVestingWithdrawal.Add(constants.VestingWithdrawInterval)
		}
		l.PutAccount(a)

		ctx.Emit(&operation.FillVestingWithdraw{
			Account:   name,
			Withdrawn: asset.VestingAmount(shares),
			Deposited: asset.NativeAmount(deposited),
		})
	}
}

func expireEscrowRatification(ctx *Context) {
	l := ctx.Ledger

	for _, e := range l.UnratifiedEscrowsDue(ctx.Now) {
		ctx.debugf("escrow from: %q id: %d not ratified by: %s", e.From, e.EscrowID, e.RatificationDeadline)
		err := refundEscrow(l, e)
		fault.PanicIfError("evaluator: escrow refund", err)
	}
}

func processAccountRecovery(ctx *Context) {
	l := ctx.Ledger

	for _, name := range l.RecoveryRequestsExpiredBy(ctx.Now) {
		l.DeleteRecoveryRequest(name)
	}

	l.RemoveOwnerHistoryBefore(ctx.Now.Add(-constants.OwnerAuthorityRecoveryPeriod))

	for _, name := range l.ChangeRecoveryRequestsDueBy(ctx.Now) {
		r, ok := l.FindChangeRecoveryRequest(name)
		if !ok {
			fault.Panicf("evaluator: change recovery index refers to missing request: %q", name)
		}
		a := l.MustGetAccount(name)
		a.RecoveryAccount = r.RecoveryAccount
		l.PutAccount(a)
		l.DeleteChangeRecoveryRequest(name)
	}
}

// medians over the top voted witnesses that are producing
func updateMedianProperties(ctx *Context) {
	l := ctx.Ledger

	active := []string{}
	fees := []int64{}
	sizes := []uint32{}
	for _, name := range l.RankedWitnesses(0) {
		if len(active) >= constants.MaxWitnesses {
			break
		}
		w, ok := l.FindWitness(name)
		if !ok {
			fault.Panicf("evaluator: witness rank refers to missing witness: %q", name)
		}
		if w.Stopped {
			continue
		}
		active = append(active, name)
		fees = append(fees, w.Props.AccountCreationFee.Amount)
		sizes = append(sizes, w.Props.MaximumBlockSize)
	}

	s := l.Schedule()
	s.CurrentWitnesses = active
	if len(active) > 0 {
		slices.Sort(fees)
		slices.Sort(sizes)
		middle := len(active) / 2
		s.MedianProps.AccountCreationFee = asset.NativeAmount(fees[middle])
		s.MedianProps.MaximumBlockSize = sizes[middle]
	}
	l.PutSchedule(s)
}
