// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/witnessd/authority"
	"github.com/bitmark-inc/witnessd/fixtures"
	"github.com/bitmark-inc/witnessd/ledger"
	"github.com/bitmark-inc/witnessd/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func setupLedger(t *testing.T) *ledger.Ledger {
	db, err := storage.OpenMemory()
	require.Nil(t, err)
	trx, err := db.Begin()
	require.Nil(t, err)
	t.Cleanup(func() {
		trx.Abort()
		db.Close()
	})

	l := ledger.New(db, trx)
	l.PutProperties(&ledger.Properties{})
	l.PutEconomics(&ledger.Economics{})
	l.PutSchedule(&ledger.Schedule{})
	return l
}

func addAccount(t *testing.T, l *ledger.Ledger, name string, balance int64, vesting int64) {
	require.False(t, l.AccountExists(name))
	l.PutAccount(&ledger.Account{
		Name:          name,
		Balance:       balance,
		VestingShares: vesting,
	})
	l.PutAuthority(&ledger.AccountAuthority{
		Account: name,
		Owner:   authority.NewKey(1, fixtures.PublicKey(1), 1),
		Active:  authority.NewKey(1, fixtures.PublicKey(2), 1),
	})
}

func addWitness(t *testing.T, l *ledger.Ledger, name string) {
	_, found := l.FindWitness(name)
	require.False(t, found)
	l.PutWitness(&ledger.Witness{
		Owner:      name,
		SigningKey: fixtures.PublicKey(3),
	})
}
