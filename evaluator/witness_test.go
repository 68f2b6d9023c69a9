// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evaluator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/fixtures"
	"github.com/bitmark-inc/witnessd/ledger"
	"github.com/bitmark-inc/witnessd/operation"
	"github.com/bitmark-inc/witnessd/publickey"
)

func TestWitnessUpdate(t *testing.T) {
	ctx := setupContext(t)
	addAccount(t, ctx, "poor", 10, 99)

	op := &operation.WitnessUpdate{
		Owner:           "poor",
		URL:             "https://poor.example.com",
		BlockSigningKey: fixtures.PublicKey(9),
		Props: operation.ChainProperties{
			AccountCreationFee: asset.NativeAmount(3),
			MaximumBlockSize:   131072,
		},
		Fee: asset.NativeAmount(2),
	}
	reject(t, ctx, op, fault.ErrInsufficientWitnessStake)

	apply(t, ctx, &operation.TransferToVesting{From: "poor", Amount: asset.NativeAmount(1)})
	apply(t, ctx, op)

	w, err := ctx.Ledger.GetWitness("poor")
	require.Nil(t, err)
	assert.Equal(t, startTime, w.Created)
	assert.Equal(t, fixtures.PublicKey(9), w.SigningKey)
	assert.False(t, w.Stopped)
	assert.Equal(t, int64(3), w.Props.AccountCreationFee.Amount)

	// the fee was paid
	assert.Equal(t, int64(7), balanceOf(ctx, "poor"))
	assert.Equal(t, int64(2), ctx.Ledger.Economics().PendingRewards)

	// existing witnesses are updated in place, a null key stops them
	op.URL = "https://new.example.com"
	op.BlockSigningKey = publickey.Null
	op.Fee = asset.NativeAmount(0)
	apply(t, ctx, op)
	w, _ = ctx.Ledger.GetWitness("poor")
	assert.Equal(t, "https://new.example.com", w.URL)
	assert.True(t, w.Stopped)
	assert.Equal(t, startTime, w.Created)
}

func TestWitnessUpdateKeepsStakeRequirement(t *testing.T) {
	ctx := setupContext(t)
	addWitness(t, ctx, "w1", 5)

	p := ctx.Ledger.Properties()
	p.WitnessRequiredVesting = 5000
	ctx.Ledger.PutProperties(p)

	reject(t, ctx, &operation.WitnessUpdate{
		Owner:           "w1",
		URL:             "https://changed.example.com",
		BlockSigningKey: fixtures.PublicKey(9),
		Props: operation.ChainProperties{
			AccountCreationFee: asset.NativeAmount(5),
			MaximumBlockSize:   131072,
		},
		Fee: asset.NativeAmount(0),
	}, fault.ErrInsufficientWitnessStake)

	w, _ := ctx.Ledger.GetWitness("w1")
	assert.Equal(t, "https://w1.example.com", w.URL)
}

func TestWitnessUpdateFeeds(t *testing.T) {
	ctx := setupContext(t)
	addAccount(t, ctx, "w1", 0, 1000)

	op := &operation.WitnessUpdate{
		Owner:           "w1",
		URL:             "https://w1.example.com",
		BlockSigningKey: fixtures.PublicKey(9),
		Props: operation.ChainProperties{
			AccountCreationFee: asset.NativeAmount(5),
			MaximumBlockSize:   131072,
			PriceFeeds: []asset.Price{{
				Base:  asset.NativeAmount(1000000),
				Quote: asset.New(3000000, "EUR"),
			}},
		},
		Fee: asset.NativeAmount(0),
	}

	// a new witness records no feeds
	apply(t, ctx, op)
	w, _ := ctx.Ledger.GetWitness("w1")
	assert.Len(t, w.Feeds, 0)
	assert.Nil(t, w.Props.PriceFeeds)

	// an update records them
	ctx.Now = ctx.Now.Add(time.Minute)
	apply(t, ctx, op)
	w, _ = ctx.Ledger.GetWitness("w1")
	require.Len(t, w.Feeds, 1)
	assert.Equal(t, int64(3000000), w.Feeds["EUR"].Rate.Quote.Amount)
	assert.Equal(t, ctx.Now, w.Feeds["EUR"].Updated)
	assert.Nil(t, w.Props.PriceFeeds)
}

func TestWitnessFeedsNormalised(t *testing.T) {
	ctx := setupContext(t)
	addWitness(t, ctx, "w1", 5)

	// submitted inverted
	apply(t, ctx, &operation.FeedPublish{
		Publisher: "w1",
		ExchangeRate: asset.Price{
			Base:  asset.New(2000000, "USD"),
			Quote: asset.NativeAmount(1000000),
		},
	})

	w, _ := ctx.Ledger.GetWitness("w1")
	feed, ok := w.Feeds["USD"]
	require.True(t, ok)
	assert.Equal(t, asset.Native, feed.Rate.Base.Symbol)
	assert.Equal(t, int64(2000000), feed.Rate.Quote.Amount)
	assert.Equal(t, startTime, feed.Updated)

	reject(t, ctx, &operation.FeedPublish{
		Publisher:    "nobody",
		ExchangeRate: feed.Rate,
	}, fault.ErrWitnessNotFound)
}

func TestWitnessStop(t *testing.T) {
	ctx := setupContext(t)
	addWitness(t, ctx, "w1", 5)
	addAccount(t, ctx, "alice", 0, 0)

	apply(t, ctx, &operation.WitnessStop{Owner: "w1"})
	w, _ := ctx.Ledger.GetWitness("w1")
	assert.True(t, w.Stopped)
	assert.True(t, w.SigningKey.IsNull())

	// not a witness
	apply(t, ctx, &operation.WitnessStop{Owner: "alice"})
	_, found := ctx.Ledger.FindWitness("alice")
	assert.False(t, found)
}

func TestWitnessSetProperties(t *testing.T) {
	ctx := setupContext(t)
	addWitness(t, ctx, "w1", 5)

	props := operation.WitnessProperties{}
	props.Set(operation.PropertyKey, fixtures.PublicKey(8))
	props.Set(operation.PropertyAccountCreationFee, asset.NativeAmount(50))
	reject(t, ctx, &operation.WitnessSetProperties{Owner: "w1", Props: props}, fault.ErrSigningKeyMismatch)

	props.Set(operation.PropertyKey, fixtures.PublicKey(9))
	props.Set(operation.PropertyMaximumBlockSize, uint32(262144))
	props.Set(operation.PropertyNewSigningKey, fixtures.PublicKey(7))
	props.Set(operation.PropertyURL, "https://w1.example.org")
	props.Set(operation.PropertyExchangeRates, []asset.Price{{
		Base:  asset.NativeAmount(1),
		Quote: asset.New(3, "EUR"),
	}})
	apply(t, ctx, &operation.WitnessSetProperties{Owner: "w1", Props: props})

	w, _ := ctx.Ledger.GetWitness("w1")
	assert.Equal(t, int64(50), w.Props.AccountCreationFee.Amount)
	assert.Equal(t, uint32(262144), w.Props.MaximumBlockSize)
	assert.Equal(t, fixtures.PublicKey(7), w.SigningKey)
	assert.Equal(t, "https://w1.example.org", w.URL)
	assert.Equal(t, int64(3), w.Feeds["EUR"].Rate.Quote.Amount)

	// the old key no longer authorises
	reject(t, ctx, &operation.WitnessSetProperties{Owner: "w1", Props: props}, fault.ErrSigningKeyMismatch)

	missing := operation.WitnessProperties{}
	missing.Set(operation.PropertyURL, "https://x.example.com")
	reject(t, ctx, &operation.WitnessSetProperties{Owner: "w1", Props: missing}, fault.ErrMissingSigningKeyProperty)

	reject(t, ctx, &operation.WitnessSetProperties{Owner: "nobody", Props: props}, fault.ErrWitnessNotFound)
}

func TestWitnessVoteSymmetry(t *testing.T) {
	ctx := setupContext(t)
	addAccount(t, ctx, "alice", 0, 500)
	addWitness(t, ctx, "w1", 5)

	before := votesOf(t, ctx, "w1")
	reject(t, ctx, &operation.AccountWitnessVote{Account: "alice", Witness: "w1", Approve: false}, fault.ErrVoteNotFound)

	apply(t, ctx, &operation.AccountWitnessVote{Account: "alice", Witness: "w1", Approve: true})
	assert.Equal(t, before+500, votesOf(t, ctx, "w1"))
	assert.Equal(t, uint16(1), ctx.Ledger.MustGetAccount("alice").WitnessesVotedFor)
	reject(t, ctx, &operation.AccountWitnessVote{Account: "alice", Witness: "w1", Approve: true}, fault.ErrVoteAlreadyExists)

	apply(t, ctx, &operation.AccountWitnessVote{Account: "alice", Witness: "w1", Approve: false})
	assert.Equal(t, before, votesOf(t, ctx, "w1"))
	assert.Equal(t, uint16(0), ctx.Ledger.MustGetAccount("alice").WitnessesVotedFor)

	reject(t, ctx, &operation.AccountWitnessVote{Account: "alice", Witness: "alice", Approve: true}, fault.ErrWitnessNotFound)
}

func TestWitnessVoteLimit(t *testing.T) {
	ctx := setupContext(t)
	addAccount(t, ctx, "alice", 0, 10)

	a := ctx.Ledger.MustGetAccount("alice")
	a.WitnessesVotedFor = constants.MaxAccountWitnessVotes
	ctx.Ledger.PutAccount(a)
	addWitness(t, ctx, "w1", 5)

	reject(t, ctx, &operation.AccountWitnessVote{Account: "alice", Witness: "w1", Approve: true}, fault.ErrTooManyWitnessVotes)
}

func TestProxyMovesWeight(t *testing.T) {
	ctx := setupContext(t)
	addAccount(t, ctx, "alice", 0, 100)
	addAccount(t, ctx, "bob", 0, 200)
	addWitness(t, ctx, "w1", 5)
	addWitness(t, ctx, "w2", 5)

	apply(t, ctx, &operation.AccountWitnessVote{Account: "alice", Witness: "w1", Approve: true})
	apply(t, ctx, &operation.AccountWitnessVote{Account: "bob", Witness: "w2", Approve: true})
	assert.Equal(t, int64(100), votesOf(t, ctx, "w1"))
	assert.Equal(t, int64(200), votesOf(t, ctx, "w2"))

	// proxying clears the own votes of alice
	apply(t, ctx, &operation.AccountWitnessProxy{Account: "alice", Proxy: "bob"})
	assert.Equal(t, int64(0), votesOf(t, ctx, "w1"))
	assert.Equal(t, int64(300), votesOf(t, ctx, "w2"))
	assert.Equal(t, uint16(0), ctx.Ledger.MustGetAccount("alice").WitnessesVotedFor)
	assert.Equal(t, int64(100), ctx.Ledger.MustGetAccount("bob").ProxiedVotes[0])

	reject(t, ctx, &operation.AccountWitnessVote{Account: "alice", Witness: "w1", Approve: true}, fault.ErrCannotVoteWithProxy)
	reject(t, ctx, &operation.AccountWitnessProxy{Account: "alice", Proxy: "bob"}, fault.ErrProxyUnchanged)
	reject(t, ctx, &operation.AccountWitnessProxy{Account: "alice", Proxy: "alice"}, fault.ErrProxyToSelf)

	apply(t, ctx, &operation.AccountWitnessProxy{Account: "alice", Proxy: ""})
	assert.Equal(t, int64(200), votesOf(t, ctx, "w2"))
	assert.Equal(t, int64(0), ctx.Ledger.MustGetAccount("bob").ProxiedVotes[0])
	assert.Equal(t, "", ctx.Ledger.MustGetAccount("alice").Proxy)
}

func TestProxyLoopRejected(t *testing.T) {
	ctx := setupContext(t)
	addAccount(t, ctx, "alice", 0, 100)
	addAccount(t, ctx, "bob", 0, 200)
	addWitness(t, ctx, "w1", 5)

	apply(t, ctx, &operation.AccountWitnessVote{Account: "alice", Witness: "w1", Approve: true})
	apply(t, ctx, &operation.AccountWitnessProxy{Account: "bob", Proxy: "alice"})
	assert.Equal(t, int64(300), votesOf(t, ctx, "w1"))

	reject(t, ctx, &operation.AccountWitnessProxy{Account: "alice", Proxy: "bob"}, fault.ErrProxyLoop)

	// nothing moved
	assert.Equal(t, int64(300), votesOf(t, ctx, "w1"))
	assert.True(t, ctx.Ledger.HasWitnessVote("alice", "w1"))
	assert.Equal(t, "", ctx.Ledger.MustGetAccount("alice").Proxy)
}

func TestProxyChainTooLong(t *testing.T) {
	ctx := setupContext(t)
	names := []string{"acct-a", "acct-b", "acct-c", "acct-d", "acct-e"}
	for _, name := range names {
		addAccount(t, ctx, name, 0, 10)
	}

	// acct-b -> acct-c -> acct-d -> acct-e
	apply(t, ctx, &operation.AccountWitnessProxy{Account: "acct-d", Proxy: "acct-e"})
	apply(t, ctx, &operation.AccountWitnessProxy{Account: "acct-c", Proxy: "acct-d"})
	apply(t, ctx, &operation.AccountWitnessProxy{Account: "acct-b", Proxy: "acct-c"})

	reject(t, ctx, &operation.AccountWitnessProxy{Account: "acct-a", Proxy: "acct-b"}, fault.ErrProxyChainTooLong)

	// one level shorter is accepted
	apply(t, ctx, &operation.AccountWitnessProxy{Account: "acct-a", Proxy: "acct-c"})
	assert.Equal(t, ledger.ProxiedVotes{10, 10, 20, 0}, ctx.Ledger.MustGetAccount("acct-e").ProxiedVotes)
	assert.Equal(t, ledger.ProxiedVotes{20, 0, 0, 0}, ctx.Ledger.MustGetAccount("acct-c").ProxiedVotes)
}
