// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/operation"
)

func TestTransferConservesSupply(t *testing.T) {
	ctx := setupContext(t)
	addAccount(t, ctx, "alice", 100, 0)
	addAccount(t, ctx, "bob", 7, 0)

	for _, amount := range []int64{1, 30, 69} {
		before := balanceOf(ctx, "alice") + balanceOf(ctx, "bob")
		apply(t, ctx, &operation.Transfer{From: "alice", To: "bob", Amount: asset.NativeAmount(amount)})
		assert.Equal(t, before, balanceOf(ctx, "alice")+balanceOf(ctx, "bob"))
	}
	assert.Equal(t, int64(0), balanceOf(ctx, "alice"))
	assert.Equal(t, int64(107), balanceOf(ctx, "bob"))

	reject(t, ctx, &operation.Transfer{From: "alice", To: "bob", Amount: asset.NativeAmount(1)}, fault.ErrInsufficientFunds)
	reject(t, ctx, &operation.Transfer{From: "bob", To: "nobody", Amount: asset.NativeAmount(1)}, fault.ErrUnknownAccount)
	reject(t, ctx, &operation.Transfer{From: "bob", To: "alice", Amount: asset.NativeAmount(0)}, fault.ErrInvalidAmount)
}

func TestTransferVestingMovesVotes(t *testing.T) {
	ctx := setupContext(t)
	addAccount(t, ctx, "alice", 0, 300)
	addAccount(t, ctx, "bob", 0, 0)
	addWitness(t, ctx, "w1", 5)

	apply(t, ctx, &operation.AccountWitnessVote{Account: "alice", Witness: "w1", Approve: true})
	assert.Equal(t, int64(300), votesOf(t, ctx, "w1"))

	apply(t, ctx, &operation.Transfer{From: "alice", To: "bob", Amount: asset.VestingAmount(100)})
	assert.Equal(t, int64(200), votesOf(t, ctx, "w1"))
	assert.Equal(t, int64(100), ctx.Ledger.MustGetAccount("bob").VestingShares)
}

func TestTransferToVesting(t *testing.T) {
	ctx := setupContext(t)
	addAccount(t, ctx, "alice", 100, 0)
	addAccount(t, ctx, "bob", 0, 0)

	apply(t, ctx, &operation.TransferToVesting{From: "alice", Amount: asset.NativeAmount(40)})
	apply(t, ctx, &operation.TransferToVesting{From: "alice", To: "bob", Amount: asset.NativeAmount(10)})

	alice := ctx.Ledger.MustGetAccount("alice")
	assert.Equal(t, int64(50), alice.Balance)
	assert.Equal(t, int64(40), alice.VestingShares)
	assert.Equal(t, int64(10), ctx.Ledger.MustGetAccount("bob").VestingShares)

	p := ctx.Ledger.Properties()
	assert.Equal(t, int64(50), p.TotalVestingFund)
	assert.Equal(t, int64(50), p.TotalVestingShares)

	reject(t, ctx, &operation.TransferToVesting{From: "alice", To: "nobody", Amount: asset.NativeAmount(1)}, fault.ErrUnknownAccount)
	reject(t, ctx, &operation.TransferToVesting{From: "alice", Amount: asset.NativeAmount(51)}, fault.ErrInsufficientFunds)
}

func TestWithdrawVestingRate(t *testing.T) {
	ctx := setupContext(t)
	addAccount(t, ctx, "alice", 0, 1000)

	reject(t, ctx, &operation.WithdrawVesting{Account: "alice", VestingShares: asset.VestingAmount(0)}, fault.ErrNothingToCancel)

	apply(t, ctx, &operation.WithdrawVesting{Account: "alice", VestingShares: asset.VestingAmount(260)})
	a := ctx.Ledger.MustGetAccount("alice")
	assert.Equal(t, int64(260/constants.VestingWithdrawIntervals), a.VestingWithdrawRate)
	assert.Equal(t, startTime.Add(constants.VestingWithdrawInterval), a.NextVestingWithdrawal)
	assert.Equal(t, int64(260), a.ToWithdraw)

	// 265/13 rounds to the same rate
	reject(t, ctx, &operation.WithdrawVesting{Account: "alice", VestingShares: asset.VestingAmount(265)}, fault.ErrWithdrawRateUnchanged)

	// small amounts withdraw one unit per interval
	apply(t, ctx, &operation.WithdrawVesting{Account: "alice", VestingShares: asset.VestingAmount(5)})
	assert.Equal(t, int64(1), ctx.Ledger.MustGetAccount("alice").VestingWithdrawRate)

	apply(t, ctx, &operation.WithdrawVesting{Account: "alice", VestingShares: asset.VestingAmount(0)})
	a = ctx.Ledger.MustGetAccount("alice")
	assert.Equal(t, int64(0), a.VestingWithdrawRate)
	assert.Equal(t, chaintime.Maximum, a.NextVestingWithdrawal)

	reject(t, ctx, &operation.WithdrawVesting{Account: "alice", VestingShares: asset.VestingAmount(1001)}, fault.ErrInsufficientVestingShares)
}

func TestWithdrawVestingKeepsWitnessStake(t *testing.T) {
	ctx := setupContext(t)
	addWitness(t, ctx, "w1", 5)

	// required stake is 100 of the 1000 shares
	reject(t, ctx, &operation.WithdrawVesting{Account: "w1", VestingShares: asset.VestingAmount(901)}, fault.ErrInsufficientWitnessStake)
	apply(t, ctx, &operation.WithdrawVesting{Account: "w1", VestingShares: asset.VestingAmount(900)})

	// a stopped witness may withdraw everything
	apply(t, ctx, &operation.WitnessStop{Owner: "w1"})
	apply(t, ctx, &operation.WithdrawVesting{Account: "w1", VestingShares: asset.VestingAmount(1000)})
}

func TestWithdrawVestingCancelBelowWitnessStake(t *testing.T) {
	ctx := setupContext(t)
	addWitness(t, ctx, "w1", 5)
	apply(t, ctx, &operation.WithdrawVesting{Account: "w1", VestingShares: asset.VestingAmount(900)})

	// the requirement rises above the remaining stake
	p := ctx.Ledger.Properties()
	p.WitnessRequiredVesting = 5000
	ctx.Ledger.PutProperties(p)

	reject(t, ctx, &operation.WithdrawVesting{Account: "w1", VestingShares: asset.VestingAmount(10)}, fault.ErrInsufficientWitnessStake)

	apply(t, ctx, &operation.WithdrawVesting{Account: "w1", VestingShares: asset.VestingAmount(0)})
	a := ctx.Ledger.MustGetAccount("w1")
	assert.False(t, a.IsWithdrawing())
	assert.Equal(t, chaintime.Maximum, a.NextVestingWithdrawal)
}
