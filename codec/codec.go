// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package codec - deterministic binary encoding of ledger records
//
// every node must write identical bytes for identical records so the
// core deterministic CBOR rules are used (sorted map keys, shortest
// integer forms)
package codec

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/bitmark-inc/witnessd/fault"
)

var (
	encoder cbor.EncMode
	decoder cbor.DecMode
)

func init() {
	var err error
	encoder, err = cbor.CoreDetEncOptions().EncMode()
	fault.PanicIfError("codec: encoder", err)

	decoder, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	fault.PanicIfError("codec: decoder", err)
}

// Marshal - encode a record
func Marshal(v interface{}) ([]byte, error) {
	return encoder.Marshal(v)
}

// Unmarshal - decode a record
func Unmarshal(data []byte, v interface{}) error {
	return decoder.Unmarshal(data, v)
}

// MustMarshal - encode a record that is known to be encodable
func MustMarshal(v interface{}) []byte {
	data, err := encoder.Marshal(v)
	fault.PanicIfError("codec: marshal", err)
	return data
}
