// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// PoolHandle - a prefix identified table in the database
type PoolHandle struct {
	name   string
	prefix byte
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Name - the pool's field name, for logging
func (p *PoolHandle) Name() string {
	return p.name
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}
