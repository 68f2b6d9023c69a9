// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/authority"
	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/fixtures"
	"github.com/bitmark-inc/witnessd/ledger"
)

func TestAccountNotFound(t *testing.T) {
	l := setupLedger(t)

	_, err := l.GetAccount("nobody")
	assert.True(t, fault.IsErrNotFound(err), "wrong error: %s", err)
	assert.Equal(t, fault.ErrUnknownAccount, errorsCause(err))
}

func TestAccountsInOrder(t *testing.T) {
	l := setupLedger(t)
	addAccount(t, l, "carol", 0, 0)
	addAccount(t, l, "alice", 0, 0)
	addAccount(t, l, "bob", 0, 0)
	addAccount(t, l, "alice-x", 0, 0)

	assert.Equal(t, []string{"alice", "alice-x", "bob", "carol"}, l.Accounts())
}

func TestNestedLedgerAbort(t *testing.T) {
	l := setupLedger(t)
	addAccount(t, l, "alice", 10, 0)

	child := l.Begin()
	require.Nil(t, child.AdjustBalance("alice", asset.NativeAmount(5)))
	assert.Equal(t, int64(15), child.MustGetAccount("alice").Balance)
	child.Abort()

	assert.Equal(t, int64(10), l.MustGetAccount("alice").Balance)
}

func TestAdjustBalance(t *testing.T) {
	l := setupLedger(t)
	addAccount(t, l, "alice", 10, 0)

	err := l.AdjustBalance("alice", asset.NativeAmount(-11))
	assert.Equal(t, fault.ErrInsufficientFunds, errorsCause(err))
	assert.Equal(t, int64(10), l.MustGetAccount("alice").Balance)

	err = l.AdjustBalance("alice", asset.New(1, "XYZ"))
	assert.Equal(t, fault.ErrInvalidSymbol, errorsCause(err))

	require.Nil(t, l.AdjustBalance("alice", asset.NativeAmount(-10)))
	assert.Equal(t, int64(0), l.MustGetAccount("alice").Balance)
}

func TestPayFeeUsesSponsor(t *testing.T) {
	l := setupLedger(t)
	addAccount(t, l, "alice", 10, 0)
	addAccount(t, l, "bob", 0, 0)
	l.PutSponsor("alice", "bob")

	require.Nil(t, l.PayFee("bob", 4))
	assert.Equal(t, int64(6), l.MustGetAccount("alice").Balance)
	assert.Equal(t, int64(4), l.Economics().PendingRewards)

	l.DeleteSponsor("bob")
	err := l.PayFee("bob", 1)
	assert.Equal(t, fault.ErrInsufficientFunds, errorsCause(err))
}

func TestVestingSharePrice(t *testing.T) {
	p := &ledger.Properties{}
	assert.Equal(t, int64(100), ledger.ToVestingShares(p, 100))
	assert.Equal(t, int64(100), ledger.ToNative(p, 100))

	p.TotalVestingFund = 1000
	p.TotalVestingShares = 2000
	assert.Equal(t, int64(200), ledger.ToVestingShares(p, 100))
	assert.Equal(t, int64(50), ledger.ToNative(p, 100))

	// products beyond 64 bits
	p.TotalVestingFund = 1 << 62
	p.TotalVestingShares = 1 << 61
	assert.Equal(t, int64(1<<59), ledger.ToVestingShares(p, 1<<60))
}

func TestVestAndUnvest(t *testing.T) {
	l := setupLedger(t)
	addAccount(t, l, "alice", 0, 0)

	shares, err := l.Vest("alice", 500)
	require.Nil(t, err)
	assert.Equal(t, int64(500), shares)

	p := l.Properties()
	assert.Equal(t, int64(500), p.TotalVestingFund)
	assert.Equal(t, int64(500), p.TotalVestingShares)

	amount, err := l.Unvest("alice", 200)
	require.Nil(t, err)
	assert.Equal(t, int64(200), amount)

	a := l.MustGetAccount("alice")
	assert.Equal(t, int64(200), a.Balance)
	assert.Equal(t, int64(300), a.VestingShares)

	_, err = l.Unvest("alice", 301)
	assert.Equal(t, fault.ErrInsufficientVestingShares, errorsCause(err))
}

func TestWithdrawalIndex(t *testing.T) {
	l := setupLedger(t)
	addAccount(t, l, "alice", 0, 100)
	addAccount(t, l, "bob", 0, 100)

	a := l.MustGetAccount("alice")
	a.VestingWithdrawRate = 10
	a.NextVestingWithdrawal = 200
	l.PutAccount(a)

	b := l.MustGetAccount("bob")
	b.VestingWithdrawRate = 10
	b.NextVestingWithdrawal = 100
	l.PutAccount(b)

	assert.Equal(t, []string{}, l.AccountsWithdrawingBy(99))
	assert.Equal(t, []string{"bob"}, l.AccountsWithdrawingBy(100))
	assert.Equal(t, []string{"bob", "alice"}, l.AccountsWithdrawingBy(300))

	// moving the schedule moves the index entry
	b.NextVestingWithdrawal = 400
	l.PutAccount(b)
	assert.Equal(t, []string{"alice"}, l.AccountsWithdrawingBy(300))

	a.VestingWithdrawRate = 0
	a.NextVestingWithdrawal = chaintime.Maximum
	l.PutAccount(a)
	assert.Equal(t, []string{"bob"}, l.AccountsWithdrawingBy(chaintime.Maximum))
}

func TestOwnerHistory(t *testing.T) {
	l := setupLedger(t)
	addAccount(t, l, "alice", 0, 0)

	first := l.GetAuthority("alice").Owner
	second := authority.NewKey(1, fixtures.PublicKey(10), 1)
	third := authority.NewKey(1, fixtures.PublicKey(11), 1)

	l.UpdateOwnerAuthority("alice", second, 100)
	l.UpdateOwnerAuthority("alice", third, 200)

	auth := l.GetAuthority("alice")
	assert.True(t, auth.Owner.Equal(third))
	assert.Equal(t, chaintime.Time(200), auth.LastOwnerUpdate)

	history := l.OwnerHistoryOf("alice")
	require.Equal(t, 2, len(history))
	assert.True(t, history[0].PreviousOwnerAuthority.Equal(first))
	assert.True(t, history[1].PreviousOwnerAuthority.Equal(second))

	assert.Equal(t, 1, l.RemoveOwnerHistoryBefore(200))
	history = l.OwnerHistoryOf("alice")
	require.Equal(t, 1, len(history))
	assert.True(t, history[0].PreviousOwnerAuthority.Equal(second))
}
