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

func nameKey(name string) []byte {
	return storage.NewKey().Name(name).Bytes()
}

// AccountExists - true if the name is taken
func (l *Ledger) AccountExists(name string) bool {
	return l.trx.Has(l.pool.Accounts, nameKey(name))
}

// FindAccount - the account or false if it does not exist
func (l *Ledger) FindAccount(name string) (*Account, bool) {
	a := &Account{}
	if !l.get(l.pool.Accounts, nameKey(name), a) {
		return nil, false
	}
	return a, true
}

// GetAccount - the account or an unknown account rejection
func (l *Ledger) GetAccount(name string) (*Account, error) {
	a, ok := l.FindAccount(name)
	if !ok {
		return nil, errors.Wrapf(fault.ErrUnknownAccount, "%q", name)
	}
	return a, nil
}

// MustGetAccount - for accounts whose existence is an invariant
func (l *Ledger) MustGetAccount(name string) *Account {
	a, ok := l.FindAccount(name)
	if !ok {
		fault.Panicf("ledger: account: %q must exist", name)
	}
	return a
}

// PutAccount - store the account and its withdrawal schedule index
func (l *Ledger) PutAccount(a *Account) {
	if old, ok := l.FindAccount(a.Name); ok && old.IsWithdrawing() {
		l.trx.Delete(l.pool.VestingWithdrawals, timeNameKey(old.NextVestingWithdrawal, old.Name))
	}
	if a.IsWithdrawing() {
		l.putIndex(l.pool.VestingWithdrawals, timeNameKey(a.NextVestingWithdrawal, a.Name))
	}
	l.put(l.pool.Accounts, nameKey(a.Name), a)
}

// Accounts - all account names in order
func (l *Ledger) Accounts() []string {
	elements := l.trx.Range(l.pool.Accounts, nil)
	names := make([]string, 0, len(elements))
	for _, e := range elements {
		names = append(names, storage.ReadKey(e.Key).Name())
	}
	return names
}

// AccountsWithdrawingBy - accounts whose next vesting withdrawal is
// due at or before the time, earliest first
func (l *Ledger) AccountsWithdrawingBy(now chaintime.Time) []string {
	return l.dueBy(l.pool.VestingWithdrawals, now)
}

// GetAuthority - the authorities of an existing account
func (l *Ledger) GetAuthority(name string) *AccountAuthority {
	a := &AccountAuthority{}
	if !l.get(l.pool.Authorities, nameKey(name), a) {
		fault.Panicf("ledger: authority of: %q must exist", name)
	}
	return a
}

// PutAuthority - store the authorities
func (l *Ledger) PutAuthority(a *AccountAuthority) {
	l.put(l.pool.Authorities, nameKey(a.Account), a)
}

func ownerHistoryKey(name string, sequence uint64) []byte {
	return storage.NewKey().Name(name).Uint64(sequence).Bytes()
}

func ownerHistoryExpiryKey(h *OwnerHistory) []byte {
	return storage.NewKey().Uint32(uint32(h.LastValidTime)).Name(h.Account).Uint64(h.Sequence).Bytes()
}

// AddOwnerHistory - append a replaced owner authority
func (l *Ledger) AddOwnerHistory(h *OwnerHistory) {
	h.Sequence = l.nextID("owner-history")
	l.put(l.pool.OwnerHistory, ownerHistoryKey(h.Account, h.Sequence), h)
	l.putIndex(l.pool.OwnerHistoryExpiry, ownerHistoryExpiryKey(h))
}

// OwnerHistoryOf - replaced owner authorities of an account, oldest first
func (l *Ledger) OwnerHistoryOf(name string) []*OwnerHistory {
	elements := l.trx.Range(l.pool.OwnerHistory, nameKey(name))
	result := make([]*OwnerHistory, 0, len(elements))
	for _, e := range elements {
		h := &OwnerHistory{}
		decode(l.pool.OwnerHistory, e.Key, e.Value, h)
		result = append(result, h)
	}
	return result
}

// RemoveOwnerHistoryBefore - drop history whose last valid time is
// strictly before the cutoff, returning the number removed
func (l *Ledger) RemoveOwnerHistoryBefore(cutoff chaintime.Time) int {
	count := 0
	for _, e := range l.trx.Range(l.pool.OwnerHistoryExpiry, nil) {
		r := storage.ReadKey(e.Key)
		t := chaintime.Time(r.Uint32())
		if !t.Before(cutoff) {
			break
		}
		name := r.Name()
		sequence := r.Uint64()
		l.trx.Delete(l.pool.OwnerHistory, ownerHistoryKey(name, sequence))
		l.trx.Delete(l.pool.OwnerHistoryExpiry, e.Key)
		count += 1
	}
	return count
}

// FindSponsor - the account paying fees for sponsored
func (l *Ledger) FindSponsor(sponsored string) (string, bool) {
	var sponsor string
	if !l.get(l.pool.Sponsorships, nameKey(sponsored), &sponsor) {
		return "", false
	}
	return sponsor, true
}

// PutSponsor - record a sponsorship
func (l *Ledger) PutSponsor(sponsor string, sponsored string) {
	l.put(l.pool.Sponsorships, nameKey(sponsored), sponsor)
}

// DeleteSponsor - end a sponsorship
func (l *Ledger) DeleteSponsor(sponsored string) {
	l.trx.Delete(l.pool.Sponsorships, nameKey(sponsored))
}
