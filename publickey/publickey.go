// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publickey - ed25519 public keys used in authorities and
// as witness signing keys
//
// text form is the chain prefix followed by base58 of the key bytes
// and a four byte sha3 checksum
package publickey

import (
	"bytes"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
)

const (
	Size           = ed25519.PublicKeySize
	checksumLength = 4
)

// PublicKey - raw key bytes, the zero value is the null key
type PublicKey [Size]byte

// Null - a key no one can sign for
var Null PublicKey

// FromBytes - copy a key from a byte slice
func FromBytes(b []byte) (PublicKey, error) {
	var k PublicKey
	if Size != len(b) {
		return k, fault.ErrKeyLength
	}
	copy(k[:], b)
	return k, nil
}

// FromString - parse the prefixed text form
func FromString(s string) (PublicKey, error) {
	var k PublicKey
	if !strings.HasPrefix(s, constants.PublicKeyPrefix) {
		return k, fault.ErrInvalidPublicKey
	}
	decoded, err := base58.Decode(s[len(constants.PublicKeyPrefix):])
	if nil != err {
		return k, fault.ErrInvalidPublicKey
	}
	if Size+checksumLength != len(decoded) {
		return k, fault.ErrKeyLength
	}
	checksum := sha3.Sum256(decoded[:Size])
	if !bytes.Equal(checksum[:checksumLength], decoded[Size:]) {
		return k, fault.ErrKeyChecksumMismatch
	}
	copy(k[:], decoded[:Size])
	return k, nil
}

// IsNull - true for the all zero key
func (k PublicKey) IsNull() bool {
	return k == Null
}

// Bytes - the raw key
func (k PublicKey) Bytes() []byte {
	return k[:]
}

// Verify - check an ed25519 signature made by this key
func (k PublicKey) Verify(message []byte, signature []byte) bool {
	if k.IsNull() {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(k[:]), message, signature)
}

// String - prefixed base58 text
func (k PublicKey) String() string {
	checksum := sha3.Sum256(k[:])
	buffer := make([]byte, 0, Size+checksumLength)
	buffer = append(buffer, k[:]...)
	buffer = append(buffer, checksum[:checksumLength]...)
	return constants.PublicKeyPrefix + base58.Encode(buffer)
}

// MarshalText - convert to text, also used for JSON map keys
func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText - convert from text
func (k *PublicKey) UnmarshalText(s []byte) error {
	key, err := FromString(string(s))
	if nil != err {
		return err
	}
	*k = key
	return nil
}
