// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package block - apply blocks of operations to the ledger
package block

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/operation"
)

// Transaction - operations that were signed together
type Transaction struct {
	Operations []operation.Envelope `json:"operations"`
}

// Block - the unit of application to the ledger
type Block struct {
	Number       uint64         `json:"block_number"`
	Timestamp    chaintime.Time `json:"timestamp"`
	Witness      string         `json:"witness"`
	Transactions []Transaction  `json:"transactions"`
}

// Operations - count of operations in all transactions
func (b *Block) Operations() int {
	n := 0
	for _, tx := range b.Transactions {
		n += len(tx.Operations)
	}
	return n
}

// Pack - the stored form of a block
func (b *Block) Pack() ([]byte, error) {
	return json.Marshal(b)
}

// Unpack - reverse of Pack
func Unpack(data []byte) (*Block, error) {
	b := &Block{}
	if err := json.Unmarshal(data, b); nil != err {
		return nil, errors.Wrap(fault.ErrInvalidBlock, err.Error())
	}
	return b, nil
}

// Reader - successive blocks from a stream of JSON block objects
type Reader struct {
	decoder *json.Decoder
}

// NewReader - read blocks from r
func NewReader(r io.Reader) *Reader {
	return &Reader{
		decoder: json.NewDecoder(r),
	}
}

// Next - the next block, io.EOF at the end of the stream
func (r *Reader) Next() (*Block, error) {
	b := &Block{}
	err := r.decoder.Decode(b)
	if io.EOF == err {
		return nil, err
	}
	if nil != err {
		return nil, errors.Wrap(fault.ErrInvalidBlock, err.Error())
	}
	return b, nil
}
