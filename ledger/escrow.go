// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/storage"
)

func escrowKey(from string, id uint32) []byte {
	return storage.NewKey().Name(from).Uint32(id).Bytes()
}

func ratificationKey(e *Escrow) []byte {
	return storage.NewKey().Uint32(uint32(e.RatificationDeadline)).Name(e.From).Uint32(e.EscrowID).Bytes()
}

// EscrowExists - true if from already uses the id
func (l *Ledger) EscrowExists(from string, id uint32) bool {
	return l.trx.Has(l.pool.Escrows, escrowKey(from, id))
}

// GetEscrow - the escrow or a not found rejection
func (l *Ledger) GetEscrow(from string, id uint32) (*Escrow, error) {
	e := &Escrow{}
	if !l.get(l.pool.Escrows, escrowKey(from, id), e) {
		return nil, errors.Wrapf(fault.ErrEscrowNotFound, "from: %q id: %d", from, id)
	}
	return e, nil
}

// PutEscrow - store the escrow, it stays on the ratification index
// until both approvals are recorded
func (l *Ledger) PutEscrow(e *Escrow) {
	key := ratificationKey(e)
	if e.IsApproved() {
		l.trx.Delete(l.pool.EscrowRatification, key)
	} else {
		l.putIndex(l.pool.EscrowRatification, key)
	}
	l.put(l.pool.Escrows, escrowKey(e.From, e.EscrowID), e)
}

// DeleteEscrow - remove the escrow and its index entry
func (l *Ledger) DeleteEscrow(e *Escrow) {
	l.trx.Delete(l.pool.EscrowRatification, ratificationKey(e))
	l.trx.Delete(l.pool.Escrows, escrowKey(e.From, e.EscrowID))
}

// UnratifiedEscrowsDue - escrows still awaiting approval whose
// ratification deadline is at or before now, earliest first
func (l *Ledger) UnratifiedEscrowsDue(now chaintime.Time) []*Escrow {
	result := []*Escrow{}
	for _, element := range l.trx.Range(l.pool.EscrowRatification, nil) {
		r := storage.ReadKey(element.Key)
		deadline := chaintime.Time(r.Uint32())
		if deadline.After(now) {
			break
		}
		from := r.Name()
		id := r.Uint32()
		e, err := l.GetEscrow(from, id)
		if nil != err {
			fault.Panicf("ledger: ratification index refers to missing escrow: %q id: %d", from, id)
		}
		result = append(result, e)
	}
	return result
}
