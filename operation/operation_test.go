// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/authority"
	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/fixtures"
	"github.com/bitmark-inc/witnessd/operation"
)

func TestEveryTagHasAName(t *testing.T) {
	for tag := operation.NullTag + 1; tag < operation.InvalidTag; tag += 1 {
		name := tag.RecordName()
		assert.NotEqual(t, "", name, "tag: %d", tag)

		back, ok := operation.TagFromName(name)
		assert.True(t, ok, name)
		assert.Equal(t, tag, back, name)

		op, err := operation.New(tag)
		require.Nil(t, err, name)
		assert.Equal(t, tag, op.Tag(), name)
	}
	_, err := operation.New(operation.InvalidTag)
	assert.Equal(t, fault.ErrInvalidOperation, err)
	assert.Equal(t, "*unknown*", operation.InvalidTag.String())
}

func TestVirtual(t *testing.T) {
	assert.True(t, operation.PromotionPoolWithdrawTag.IsVirtual())
	assert.True(t, operation.FillVestingWithdrawTag.IsVirtual())
	assert.False(t, operation.SponsorFeesTag.IsVirtual())
	assert.False(t, operation.InvalidTag.IsVirtual())
}

func TestRequiredAuthorities(t *testing.T) {
	key := fixtures.PublicKey(1)
	props := operation.WitnessProperties{}
	props.Set(operation.PropertyKey, key)

	owner := authority.NewKey(1, key, 1)

	items := []struct {
		op     operation.Operation
		active []string
		owner  []string
		other  []authority.Authority
	}{
		{&operation.AccountCreate{Creator: "alice"}, []string{"alice"}, nil, nil},
		{&operation.AccountUpdate{Account: "alice"}, []string{"alice"}, nil, nil},
		{&operation.AccountUpdate{Account: "alice", Owner: &owner}, nil, []string{"alice"}, nil},
		{&operation.AccountDelete{Account: "alice"}, nil, []string{"alice"}, nil},
		{&operation.Transfer{From: "alice", Amount: asset.NativeAmount(1)}, []string{"alice"}, nil, nil},
		{&operation.Transfer{From: "alice", Amount: asset.VestingAmount(1)}, nil, []string{"alice"}, nil},
		{&operation.EscrowApprove{From: "alice", Who: "bob"}, []string{"bob"}, nil, nil},
		{&operation.EscrowRelease{From: "alice", Who: "carol"}, []string{"carol"}, nil, nil},
		{&operation.Custom{RequiredAuths: []string{"bob", "alice", "bob"}}, []string{"alice", "bob"}, nil, nil},
		{&operation.RequestAccountRecovery{RecoveryAccount: "bob", AccountToRecover: "alice"}, []string{"bob"}, nil, nil},
		{&operation.ChangeRecoveryAccount{AccountToRecover: "alice"}, nil, []string{"alice"}, nil},
		{&operation.TransferFromPromotionPool{TransferTo: "alice"}, []string{constants.InitAccount}, nil, nil},
		{&operation.SponsorFees{Sponsored: "alice"}, []string{"alice"}, nil, nil},
		{&operation.SponsorFees{Sponsor: "bob", Sponsored: "alice"}, []string{"bob"}, nil, nil},
		{&operation.WitnessSetProperties{Owner: "alice", Props: props}, nil, nil, []authority.Authority{owner}},
		{&operation.WitnessSetProperties{Owner: "alice"}, nil, nil, []authority.Authority{authority.NullAccount()}},
		{&operation.FillVestingWithdraw{Account: "alice"}, nil, nil, nil},
	}

	for i, item := range items {
		r := operation.RequiredAuthorities(item.op)
		assert.Equal(t, item.active, r.Active, "%d: %s: active", i, item.op.Tag())
		assert.Equal(t, item.owner, r.Owner, "%d: %s: owner", i, item.op.Tag())
		assert.Nil(t, r.Posting, "%d: %s: posting", i, item.op.Tag())
		assert.Equal(t, item.other, r.Other, "%d: %s: other", i, item.op.Tag())
	}

	recent := authority.NewKey(1, fixtures.PublicKey(2), 1)
	r := operation.RequiredAuthorities(&operation.RecoverAccount{
		AccountToRecover:     "alice",
		NewOwnerAuthority:    owner,
		RecentOwnerAuthority: recent,
	})
	assert.Equal(t, []authority.Authority{owner, recent}, r.Other)
}

func TestValidate(t *testing.T) {
	deadline := chaintime.Time(1000)
	items := []struct {
		op  operation.Operation
		err error
	}{
		{&operation.Transfer{From: "alice", To: "bob", Amount: asset.NativeAmount(1)}, nil},
		{&operation.Transfer{From: "alice", To: "bob", Amount: asset.NativeAmount(0)}, fault.ErrInvalidAmount},
		{&operation.Transfer{From: "alice", To: "bob", Amount: asset.New(1, "USD")}, fault.ErrInvalidSymbol},
		{&operation.Transfer{From: "Alice", To: "bob", Amount: asset.NativeAmount(1)}, fault.ErrInvalidAccountName},
		{&operation.TransferToVesting{From: "alice", Amount: asset.VestingAmount(1)}, fault.ErrInvalidSymbol},
		{&operation.WithdrawVesting{Account: "alice", VestingShares: asset.VestingAmount(0)}, nil},
		{&operation.WithdrawVesting{Account: "alice", VestingShares: asset.NativeAmount(1)}, fault.ErrInvalidSymbol},
		{&operation.AccountWitnessProxy{Account: "alice", Proxy: "alice"}, fault.ErrProxyToSelf},
		{&operation.AccountWitnessProxy{Account: "alice"}, nil},
		{&operation.EscrowApprove{From: "alice", To: "bob", Agent: "carol", Who: "alice", Approve: true}, fault.ErrEscrowInvalidApprover},
		{&operation.EscrowApprove{From: "alice", To: "bob", Agent: "carol", Who: "carol", Approve: true}, nil},
		{&operation.EscrowDispute{From: "alice", To: "bob", Agent: "carol", Who: "carol"}, fault.ErrEscrowInvalidDisputer},
		{&operation.EscrowRelease{From: "alice", To: "bob", Agent: "carol", Who: "dave", Receiver: "bob", Amount: asset.NativeAmount(1)}, fault.ErrEscrowInvalidReleaser},
		{&operation.EscrowRelease{From: "alice", To: "bob", Agent: "carol", Who: "carol", Receiver: "carol", Amount: asset.NativeAmount(1)}, fault.ErrEscrowInvalidReceiver},
		{&operation.EscrowTransfer{From: "alice", To: "bob", Agent: "bob", Amount: asset.NativeAmount(1), Fee: asset.NativeAmount(0), RatificationDeadline: deadline, EscrowExpiration: deadline + 1}, fault.ErrEscrowInvalidAgent},
		{&operation.EscrowTransfer{From: "alice", To: "bob", Agent: "carol", Amount: asset.NativeAmount(1), Fee: asset.NativeAmount(0), RatificationDeadline: deadline, EscrowExpiration: deadline}, fault.ErrEscrowInvalidDeadline},
		{&operation.EscrowTransfer{From: "alice", To: "bob", Agent: "carol", Amount: asset.NativeAmount(1), Fee: asset.NativeAmount(0), RatificationDeadline: deadline, EscrowExpiration: deadline + 1, JSONMeta: "{"}, fault.ErrInvalidJSON},
		{&operation.CustomJSON{Sender: "alice", Recipients: []string{"bob"}, AppID: 1, JSON: `{"a":1}`}, nil},
		{&operation.CustomJSON{Sender: "alice", Recipients: []string{"bob", "bob"}, AppID: 1, JSON: `{}`}, fault.ErrInvalidAccountName},
		{&operation.CustomJSON{Sender: "alice", AppID: 1, JSON: `not json`}, fault.ErrInvalidJSON},
		{&operation.Custom{}, fault.ErrInvalidOperation},
		{&operation.SponsorFees{Sponsor: "alice", Sponsored: "alice"}, fault.ErrInvalidOperation},
		{&operation.ApplicationCreate{Author: "alice", Name: "app", PriceParam: 3}, fault.ErrInvalidOperation},
		{&operation.ApplicationCreate{Author: "alice", Name: "", PriceParam: 0}, fault.ErrInvalidOperation},
		{&operation.WitnessSetProperties{Owner: "alice"}, fault.ErrMissingSigningKeyProperty},
	}
	for i, item := range items {
		err := item.op.Validate()
		if nil == item.err {
			assert.Nil(t, err, "%d: %s", i, item.op.Tag())
		} else {
			require.NotNil(t, err, "%d: %s", i, item.op.Tag())
			assert.Equal(t, item.err, errorsCause(err), "%d: %s: %v", i, item.op.Tag(), err)
		}
	}
}

func TestValidateRecoverAccount(t *testing.T) {
	a := authority.NewKey(1, fixtures.PublicKey(1), 1)
	b := authority.NewKey(1, fixtures.PublicKey(2), 1)
	impossible := authority.NewKey(2, fixtures.PublicKey(3), 1)

	op := &operation.RecoverAccount{AccountToRecover: "alice", NewOwnerAuthority: a, RecentOwnerAuthority: b}
	assert.Nil(t, op.Validate())

	op.RecentOwnerAuthority = a
	assert.Equal(t, fault.ErrRecoveryToRecentAuthority, op.Validate())

	op.RecentOwnerAuthority = impossible
	assert.Equal(t, fault.ErrRecoveryAuthorityIsImpossible, errorsCause(op.Validate()))

	op.RecentOwnerAuthority = b
	op.NewOwnerAuthority = authority.Authority{KeyAuths: a.KeyAuths}
	assert.Equal(t, fault.ErrOpenAuthority, errorsCause(op.Validate()))
}

func TestWitnessProperties(t *testing.T) {
	props := operation.WitnessProperties{}
	props.Set(operation.PropertyKey, fixtures.PublicKey(1))
	props.Set(operation.PropertyAccountCreationFee, asset.NativeAmount(5))
	props.Set(operation.PropertyMaximumBlockSize, uint32(constants.MinBlockSizeLimit))
	props.Set(operation.PropertyURL, "https://example.org")
	props.Set(operation.PropertyExchangeRates, []asset.Price{{
		Base:  asset.New(2, "USD"),
		Quote: asset.NativeAmount(1),
	}})

	op := &operation.WitnessSetProperties{Owner: "alice", Props: props}
	assert.Nil(t, op.Validate())

	key, err := props.SigningKey()
	assert.Nil(t, err)
	assert.Equal(t, fixtures.PublicKey(1), key)

	fee, ok, err := props.AccountCreationFee()
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, asset.NativeAmount(5), fee)

	_, ok, err = props.NewSigningKey()
	assert.Nil(t, err)
	assert.False(t, ok)

	props.Set(operation.PropertyMaximumBlockSize, uint32(10))
	assert.Equal(t, fault.ErrBlockSizeTooSmall, op.Validate())

	props[operation.PropertyMaximumBlockSize] = []byte{0xff}
	assert.Equal(t, fault.ErrInvalidProperty, errorsCause(op.Validate()))
}

func TestEnvelope(t *testing.T) {
	original := &operation.Transfer{
		From:   "alice",
		To:     "bob",
		Amount: asset.NativeAmount(1500000),
		Memo:   "rent",
	}
	buffer, err := json.Marshal(operation.Envelope{Operation: original})
	require.Nil(t, err)
	assert.Equal(t, `["transfer",{"from":"alice","to":"bob","amount":"1.500000 WIT","memo":"rent"}]`, string(buffer))

	var e operation.Envelope
	require.Nil(t, json.Unmarshal(buffer, &e))
	assert.Equal(t, original, e.Operation)

	assert.NotNil(t, json.Unmarshal([]byte(`["no_such_op",{}]`), &e))
	assert.NotNil(t, json.Unmarshal([]byte(`["transfer"]`), &e))
	assert.NotNil(t, json.Unmarshal([]byte(`{"transfer":{}}`), &e))

	_, err = json.Marshal(operation.Envelope{})
	assert.NotNil(t, err)
}
