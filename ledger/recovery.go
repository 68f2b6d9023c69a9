// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/storage"
)

func timeNameKey(t chaintime.Time, name string) []byte {
	return storage.NewKey().Uint32(uint32(t)).Name(name).Bytes()
}

// FindRecoveryRequest - the pending recovery of an account
func (l *Ledger) FindRecoveryRequest(account string) (*RecoveryRequest, bool) {
	r := &RecoveryRequest{}
	if !l.get(l.pool.RecoveryRequests, nameKey(account), r) {
		return nil, false
	}
	return r, true
}

// PutRecoveryRequest - create or replace the request of an account
func (l *Ledger) PutRecoveryRequest(r *RecoveryRequest) {
	if old, ok := l.FindRecoveryRequest(r.AccountToRecover); ok {
		l.trx.Delete(l.pool.RecoveryExpiry, timeNameKey(old.Expires, old.AccountToRecover))
	}
	l.putIndex(l.pool.RecoveryExpiry, timeNameKey(r.Expires, r.AccountToRecover))
	l.put(l.pool.RecoveryRequests, nameKey(r.AccountToRecover), r)
}

// DeleteRecoveryRequest - remove the request of an account
func (l *Ledger) DeleteRecoveryRequest(account string) {
	if old, ok := l.FindRecoveryRequest(account); ok {
		l.trx.Delete(l.pool.RecoveryExpiry, timeNameKey(old.Expires, account))
		l.trx.Delete(l.pool.RecoveryRequests, nameKey(account))
	}
}

// RecoveryRequestsExpiredBy - accounts whose request expires at or
// before now
func (l *Ledger) RecoveryRequestsExpiredBy(now chaintime.Time) []string {
	return l.dueBy(l.pool.RecoveryExpiry, now)
}

// FindChangeRecoveryRequest - the pending recovery account change
func (l *Ledger) FindChangeRecoveryRequest(account string) (*ChangeRecoveryRequest, bool) {
	r := &ChangeRecoveryRequest{}
	if !l.get(l.pool.ChangeRecovery, nameKey(account), r) {
		return nil, false
	}
	return r, true
}

// PutChangeRecoveryRequest - create or replace the change request
func (l *Ledger) PutChangeRecoveryRequest(r *ChangeRecoveryRequest) {
	if old, ok := l.FindChangeRecoveryRequest(r.AccountToRecover); ok {
		l.trx.Delete(l.pool.ChangeRecoveryDue, timeNameKey(old.EffectiveOn, old.AccountToRecover))
	}
	l.putIndex(l.pool.ChangeRecoveryDue, timeNameKey(r.EffectiveOn, r.AccountToRecover))
	l.put(l.pool.ChangeRecovery, nameKey(r.AccountToRecover), r)
}

// DeleteChangeRecoveryRequest - remove the change request
func (l *Ledger) DeleteChangeRecoveryRequest(account string) {
	if old, ok := l.FindChangeRecoveryRequest(account); ok {
		l.trx.Delete(l.pool.ChangeRecoveryDue, timeNameKey(old.EffectiveOn, account))
		l.trx.Delete(l.pool.ChangeRecovery, nameKey(account))
	}
}

// ChangeRecoveryRequestsDueBy - accounts whose change takes effect at
// or before now
func (l *Ledger) ChangeRecoveryRequestsDueBy(now chaintime.Time) []string {
	return l.dueBy(l.pool.ChangeRecoveryDue, now)
}

// scan an index of time+name keys
func (l *Ledger) dueBy(pool *storage.PoolHandle, now chaintime.Time) []string {
	names := []string{}
	for _, e := range l.trx.Range(pool, nil) {
		r := storage.ReadKey(e.Key)
		t := chaintime.Time(r.Uint32())
		if t.After(now) {
			break
		}
		names = append(names, r.Name())
	}
	return names
}
