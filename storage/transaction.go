// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/bitmark-inc/witnessd/fault"
)

// Transaction - a unit of all or nothing change
//
// a child transaction sees its parent's uncommitted writes, committing
// the child moves its writes into the parent, aborting discards them
type Transaction struct {
	db       *Database
	parent   *Transaction
	overlay  *overlay
	child    bool
	finished bool
}

func newTransaction(db *Database, parent *Transaction) *Transaction {
	return &Transaction{
		db:      db,
		parent:  parent,
		overlay: newOverlay(),
		child:   nil != parent,
	}
}

// Begin - start a nested transaction
func (t *Transaction) Begin() *Transaction {
	t.mustBeOpen("Begin")
	return newTransaction(t.db, t)
}

// Put - store a key/value pair
func (t *Transaction) Put(pool *PoolHandle, key []byte, value []byte) {
	t.mustBeOpen("Put")
	v := make([]byte, len(value))
	copy(v, value)
	t.overlay.set(dbPut, string(pool.prefixKey(key)), v)
}

// PutN - store a big endian uint64
func (t *Transaction) PutN(pool *PoolHandle, key []byte, n uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	t.Put(pool, key, buffer)
}

// Delete - remove a key
func (t *Transaction) Delete(pool *PoolHandle, key []byte) {
	t.mustBeOpen("Delete")
	t.overlay.set(dbDelete, string(pool.prefixKey(key)), nil)
}

// Get - read a value, nil if not found
func (t *Transaction) Get(pool *PoolHandle, key []byte) []byte {
	t.mustBeOpen("Get")
	prefixedKey := pool.prefixKey(key)
	for level := t; nil != level; level = level.parent {
		if data, found := level.overlay.get(string(prefixedKey)); found {
			if dbDelete == data.op {
				return nil
			}
			return data.value
		}
	}

	value, err := t.db.db.Get(prefixedKey, nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	fault.PanicIfError("storage.Get", err)
	return value
}

// GetN - read a record and decode first 8 bytes as big endian uint64
//
// second parameter is false if record was not found
func (t *Transaction) GetN(pool *PoolHandle, key []byte) (uint64, bool) {
	buffer := t.Get(pool, key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		fault.Panicf("storage.GetN truncated record in: %s for: %x", pool.name, key)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

// Has - check if a key exists
func (t *Transaction) Has(pool *PoolHandle, key []byte) bool {
	return nil != t.Get(pool, key)
}

// Range - all elements of a pool whose keys start with prefix, in key order
func (t *Transaction) Range(pool *PoolHandle, prefix []byte) []Element {
	t.mustBeOpen("Range")
	prefixedKey := pool.prefixKey(prefix)

	merged := make(map[string][]byte)

	iter := t.db.db.NewIterator(ldb_util.BytesPrefix(prefixedKey), nil)
	for iter.Next() {
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		merged[string(iter.Key())] = value
	}
	iter.Release()
	fault.PanicIfError("storage.Range", iter.Error())

	// apply overlays from the root transaction down to this one
	levels := []*Transaction{}
	for level := t; nil != level; level = level.parent {
		levels = append(levels, level)
	}
	for i := len(levels) - 1; i >= 0; i -= 1 {
		for k, data := range levels[i].overlay.items() {
			if !bytes.HasPrefix([]byte(k), prefixedKey) {
				continue
			}
			if dbDelete == data.op {
				delete(merged, k)
			} else {
				merged[k] = data.value
			}
		}
	}

	keys := maps.Keys(merged)
	slices.Sort(keys)

	result := make([]Element, 0, len(keys))
	for _, k := range keys {
		result = append(result, Element{
			Key:   []byte(k[1:]), // strip the pool prefix
			Value: merged[k],
		})
	}
	return result
}

// Last - the element with the highest key having the prefix
func (t *Transaction) Last(pool *PoolHandle, prefix []byte) (Element, bool) {
	elements := t.Range(pool, prefix)
	if 0 == len(elements) {
		return Element{}, false
	}
	return elements[len(elements)-1], true
}

// First - the element with the lowest key having the prefix
func (t *Transaction) First(pool *PoolHandle, prefix []byte) (Element, bool) {
	elements := t.Range(pool, prefix)
	if 0 == len(elements) {
		return Element{}, false
	}
	return elements[0], true
}

// Commit - make the writes visible to the parent, or for a root
// transaction write them to the database
func (t *Transaction) Commit() error {
	t.mustBeOpen("Commit")
	t.finished = true

	if t.child {
		for k, data := range t.overlay.items() {
			t.parent.overlay.set(data.op, k, data.value)
		}
		t.overlay.clear()
		return nil
	}

	defer t.db.writer.Unlock()

	if 0 == t.overlay.count() {
		return nil
	}
	if t.db.readOnly {
		t.overlay.clear()
		return fault.ErrDatabaseIsNotSet
	}

	batch := new(leveldb.Batch)
	for k, data := range t.overlay.items() {
		switch data.op {
		case dbPut:
			batch.Put([]byte(k), data.value)
		case dbDelete:
			batch.Delete([]byte(k))
		}
	}
	t.overlay.clear()

	return t.db.db.Write(batch, nil)
}

// Abort - discard all writes
func (t *Transaction) Abort() {
	if t.finished {
		return
	}
	t.finished = true
	t.overlay.clear()
	if !t.child {
		t.db.writer.Unlock()
	}
}

func (t *Transaction) mustBeOpen(operation string) {
	if t.finished {
		fault.Panicf("storage.%s on a finished transaction", operation)
	}
}
