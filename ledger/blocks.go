// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/witnessd/storage"
)

func blockKey(number uint64) []byte {
	return storage.NewKey().Uint64(number).Bytes()
}

// PutBlock - keep the encoded form of an applied block
func (l *Ledger) PutBlock(number uint64, data []byte) {
	l.trx.Put(l.pool.Blocks, blockKey(number), data)
}

// GetBlock - the encoded block, false if not stored
func (l *Ledger) GetBlock(number uint64) ([]byte, bool) {
	data := l.trx.Get(l.pool.Blocks, blockKey(number))
	return data, nil != data
}
