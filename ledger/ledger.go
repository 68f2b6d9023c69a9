// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - typed access to the ledger entities
//
// every read returns a private copy of the stored record; a change is
// made by modifying the copy and writing it back with the matching
// Put, which also maintains the secondary indexes
package ledger

import (
	"github.com/bitmark-inc/witnessd/codec"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/storage"
)

// Ledger - entity access within one storage transaction
type Ledger struct {
	trx  *storage.Transaction
	pool *storage.Pools
}

// New - wrap a root transaction
func New(db *storage.Database, trx *storage.Transaction) *Ledger {
	return &Ledger{
		trx:  trx,
		pool: &db.Pool,
	}
}

// Begin - a nested ledger whose changes can be discarded
func (l *Ledger) Begin() *Ledger {
	return &Ledger{
		trx:  l.trx.Begin(),
		pool: l.pool,
	}
}

// Commit - keep the changes
func (l *Ledger) Commit() error {
	return l.trx.Commit()
}

// Abort - discard the changes
func (l *Ledger) Abort() {
	l.trx.Abort()
}

// read and decode a record, false if absent
//
// a record that cannot be decoded means the store is corrupt
func (l *Ledger) get(pool *storage.PoolHandle, key []byte, v interface{}) bool {
	data := l.trx.Get(pool, key)
	if nil == data {
		return false
	}
	decode(pool, key, data, v)
	return true
}

func decode(pool *storage.PoolHandle, key []byte, data []byte, v interface{}) {
	if err := codec.Unmarshal(data, v); nil != err {
		fault.Panicf("ledger: corrupt record in: %s key: %x error: %s", pool.Name(), key, err)
	}
}

func (l *Ledger) put(pool *storage.PoolHandle, key []byte, v interface{}) {
	l.trx.Put(pool, key, codec.MustMarshal(v))
}

// index entries carry no data
var present = []byte{1}

func (l *Ledger) putIndex(pool *storage.PoolHandle, key []byte) {
	l.trx.Put(pool, key, present)
}

// next value from a named counter, starting at 1
func (l *Ledger) nextID(name string) uint64 {
	key := []byte(name)
	n, _ := l.trx.GetN(l.pool.Counters, key)
	n += 1
	l.trx.PutN(l.pool.Counters, key, n)
	return n
}
