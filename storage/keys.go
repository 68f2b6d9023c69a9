// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
)

// name terminator: account names cannot contain a zero byte, so a
// terminated name is never a prefix of a longer name's key
const nameTerminator = 0x00

// KeyBuilder - concatenate key components
type KeyBuilder struct {
	buffer []byte
}

// NewKey - start a key
func NewKey() *KeyBuilder {
	return &KeyBuilder{
		buffer: make([]byte, 0, 48),
	}
}

// Name - a terminated name
func (k *KeyBuilder) Name(name string) *KeyBuilder {
	k.buffer = append(k.buffer, name...)
	k.buffer = append(k.buffer, nameTerminator)
	return k
}

// Uint64 - big endian so that keys sort numerically
func (k *KeyBuilder) Uint64(n uint64) *KeyBuilder {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	k.buffer = append(k.buffer, b[:]...)
	return k
}

// Uint32 - big endian so that keys sort numerically
func (k *KeyBuilder) Uint32(n uint32) *KeyBuilder {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], n)
	k.buffer = append(k.buffer, b[:]...)
	return k
}

// Bytes - the completed key
func (k *KeyBuilder) Bytes() []byte {
	return k.buffer
}

// KeyReader - split a key built by KeyBuilder
type KeyReader struct {
	buffer []byte
	ok     bool
}

// ReadKey - start reading a key
func ReadKey(key []byte) *KeyReader {
	return &KeyReader{
		buffer: key,
		ok:     true,
	}
}

// Name - read a terminated name
func (k *KeyReader) Name() string {
	for i, c := range k.buffer {
		if nameTerminator == c {
			s := string(k.buffer[:i])
			k.buffer = k.buffer[i+1:]
			return s
		}
	}
	k.ok = false
	return ""
}

// Uint64 - read a big endian uint64
func (k *KeyReader) Uint64() uint64 {
	if len(k.buffer) < 8 {
		k.ok = false
		return 0
	}
	n := binary.BigEndian.Uint64(k.buffer[:8])
	k.buffer = k.buffer[8:]
	return n
}

// Uint32 - read a big endian uint32
func (k *KeyReader) Uint32() uint32 {
	if len(k.buffer) < 4 {
		k.ok = false
		return 0
	}
	n := binary.BigEndian.Uint32(k.buffer[:4])
	k.buffer = k.buffer[4:]
	return n
}

// Ok - every component was present
func (k *KeyReader) Ok() bool {
	return k.ok
}
