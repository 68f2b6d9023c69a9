// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/witnessd/fixtures"
	"github.com/bitmark-inc/witnessd/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestPoolsInitialised(t *testing.T) {
	db, err := storage.OpenMemory()
	require.Nil(t, err)
	defer db.Close()

	assert.NotNil(t, db.Pool.Accounts)
	assert.NotNil(t, db.Pool.TestData)
	assert.Equal(t, "Accounts", db.Pool.Accounts.Name())
}

func TestFileReopen(t *testing.T) {
	dir, err := os.MkdirTemp("", "witnessd-storage-")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	name := filepath.Join(dir, "ledger.leveldb")

	_, err = storage.Open(name, storage.ReadOnly)
	assert.NotNil(t, err, "read only open must not create a database")

	db, err := storage.Open(name, storage.ReadWrite)
	require.Nil(t, err)

	trx, err := db.Begin()
	require.Nil(t, err)
	trx.Put(db.Pool.TestData, []byte("key"), []byte("persisted"))
	require.Nil(t, trx.Commit())
	db.Close()

	db, err = storage.Open(name, storage.ReadOnly)
	require.Nil(t, err)
	defer db.Close()

	trx, err = db.Begin()
	require.Nil(t, err)
	defer trx.Abort()
	assert.Equal(t, []byte("persisted"), trx.Get(db.Pool.TestData, []byte("key")))
}

func TestReadOnlyCommitFails(t *testing.T) {
	dir, err := os.MkdirTemp("", "witnessd-storage-")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	name := filepath.Join(dir, "ledger.leveldb")
	db, err := storage.Open(name, storage.ReadWrite)
	require.Nil(t, err)
	db.Close()

	db, err = storage.Open(name, storage.ReadOnly)
	require.Nil(t, err)
	defer db.Close()

	trx, err := db.Begin()
	require.Nil(t, err)
	trx.Put(db.Pool.TestData, []byte("key"), []byte("value"))
	assert.NotNil(t, trx.Commit())

	// the writer lock was released
	trx, err = db.Begin()
	require.Nil(t, err)
	trx.Abort()
}
