// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package genesis - the initial state of each chain
package genesis

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/authority"
	"github.com/bitmark-inc/witnessd/chain"
	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/ledger"
	"github.com/bitmark-inc/witnessd/operation"
	"github.com/bitmark-inc/witnessd/publickey"
)

// Data - parameters of a genesis state
type Data struct {
	Timestamp              chaintime.Time
	InitPublicKey          publickey.PublicKey
	InitSupply             int64
	InitVesting            int64
	WitnessRequiredVesting int64
}

// chain specific values
var chains = map[string]Data{
	chain.Witness: {
		Timestamp:              1577836800, // 2020-01-01T00:00:00Z
		InitSupply:             10000000000 * 1000000,
		InitVesting:            constants.DefaultWitnessVesting,
		WitnessRequiredVesting: constants.DefaultWitnessVesting,
	},
	chain.Testing: {
		Timestamp:              1577836800,
		InitSupply:             1000000000 * 1000000,
		InitVesting:            1000 * 1000000,
		WitnessRequiredVesting: 1000 * 1000000,
	},
	chain.Local: {
		Timestamp:              1577836800,
		InitSupply:             1000000 * 1000000,
		InitVesting:            1000000,
		WitnessRequiredVesting: 1000000,
	},
}

// ForChain - the genesis parameters of a chain, signed for by initKey
func ForChain(name string, initKey publickey.PublicKey) (*Data, error) {
	d, ok := chains[name]
	if !ok {
		return nil, errors.Wrapf(fault.ErrInvalidChain, "%q", name)
	}
	if initKey.IsNull() {
		return nil, errors.Wrap(fault.ErrInvalidPublicKey, "init public key must not be null")
	}
	d.InitPublicKey = initKey
	return &d, nil
}

// Apply - store the genesis state into an empty ledger
//
// creates the reserved accounts and the init account as the only
// witness holding the whole initial supply
func Apply(l *ledger.Ledger, d *Data) error {
	if l.IsInitialised() {
		return fault.ErrAlreadyInitialised
	}
	if d.InitVesting < 0 || d.InitVesting > d.InitSupply {
		return errors.Wrapf(fault.ErrInvalidAmount, "init vesting: %d supply: %d", d.InitVesting, d.InitSupply)
	}

	l.PutProperties(&ledger.Properties{
		HeadBlockNumber:        0,
		Time:                   d.Timestamp,
		CurrentSupply:          d.InitSupply,
		WitnessRequiredVesting: d.WitnessRequiredVesting,
	})
	l.PutEconomics(&ledger.Economics{})

	props := operation.ChainProperties{
		AccountCreationFee: asset.NativeAmount(constants.DefaultAccountCreationFee),
		MaximumBlockSize:   constants.DefaultMaximumBlockSize,
	}
	l.PutSchedule(&ledger.Schedule{
		MedianProps:      props,
		CurrentWitnesses: []string{constants.InitAccount},
	})

	// no one can sign for these
	for _, name := range []string{constants.NullAccount, constants.TemporaryAccount} {
		create(l, name, d.Timestamp, authority.Null(), 0)
	}

	initAuthority := authority.NewKey(1, d.InitPublicKey, 1)
	create(l, constants.InitAccount, d.Timestamp, initAuthority, d.InitSupply-d.InitVesting)
	if d.InitVesting > 0 {
		if _, err := l.Vest(constants.InitAccount, d.InitVesting); nil != err {
			return err
		}
	}

	l.PutWitness(&ledger.Witness{
		Owner:      constants.InitAccount,
		Created:    d.Timestamp,
		SigningKey: d.InitPublicKey,
		Props:      props,
	})
	return nil
}

func create(l *ledger.Ledger, name string, now chaintime.Time, a authority.Authority, balance int64) {
	l.PutAccount(&ledger.Account{
		Name:                  name,
		Created:               now,
		Balance:               balance,
		NextVestingWithdrawal: chaintime.Maximum,
		LastAccountRecovery:   chaintime.Minimum,
	})
	l.PutAuthority(&ledger.AccountAuthority{
		Account:         name,
		Owner:           a,
		Active:          a,
		LastOwnerUpdate: chaintime.Minimum,
	})
}
