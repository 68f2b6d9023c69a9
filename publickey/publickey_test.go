// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publickey_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/publickey"
)

func TestTextRoundTrip(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, ed25519.SeedSize)
	private := ed25519.NewKeyFromSeed(seed)

	key, err := publickey.FromBytes(private.Public().(ed25519.PublicKey))
	assert.Nil(t, err)
	assert.False(t, key.IsNull())

	s := key.String()
	assert.Equal(t, "WIT", s[:3])

	parsed, err := publickey.FromString(s)
	assert.Nil(t, err)
	assert.Equal(t, key, parsed)

	message := []byte("block")
	assert.True(t, parsed.Verify(message, ed25519.Sign(private, message)))
	assert.False(t, parsed.Verify([]byte("other"), ed25519.Sign(private, message)))
}

func TestNull(t *testing.T) {
	assert.True(t, publickey.Null.IsNull())
	parsed, err := publickey.FromString(publickey.Null.String())
	assert.Nil(t, err)
	assert.True(t, parsed.IsNull())
	assert.False(t, parsed.Verify([]byte("x"), make([]byte, ed25519.SignatureSize)))
}

func TestInvalid(t *testing.T) {
	key, _ := publickey.FromBytes(bytes.Repeat([]byte{1}, publickey.Size))
	s := key.String()

	_, err := publickey.FromString("XYZ" + s[3:])
	assert.Equal(t, fault.ErrInvalidPublicKey, err)

	_, err = publickey.FromString(s[:len(s)-2])
	assert.NotNil(t, err)

	_, err = publickey.FromString("WIT0OIl")
	assert.Equal(t, fault.ErrInvalidPublicKey, err)

	_, err = publickey.FromBytes([]byte{1, 2, 3})
	assert.Equal(t, fault.ErrKeyLength, err)
}
