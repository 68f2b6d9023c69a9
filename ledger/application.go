// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/storage"
)

func applicationKey(id uint64) []byte {
	return storage.NewKey().Uint64(id).Bytes()
}

func buyingKey(appID uint64, buyer string) []byte {
	return storage.NewKey().Uint64(appID).Name(buyer).Bytes()
}

// ApplicationNameExists - true if the name is registered
func (l *Ledger) ApplicationNameExists(name string) bool {
	return l.trx.Has(l.pool.ApplicationNames, nameKey(name))
}

// GetApplication - an application by id
func (l *Ledger) GetApplication(id uint64) (*Application, error) {
	a := &Application{}
	if !l.get(l.pool.Applications, applicationKey(id), a) {
		return nil, errors.Wrapf(fault.ErrApplicationNotFound, "id: %d", id)
	}
	return a, nil
}

// GetApplicationByName - an application by its unique name
func (l *Ledger) GetApplicationByName(name string) (*Application, error) {
	id, ok := l.trx.GetN(l.pool.ApplicationNames, nameKey(name))
	if !ok {
		return nil, errors.Wrapf(fault.ErrApplicationNotFound, "name: %q", name)
	}
	a, err := l.GetApplication(id)
	if nil != err {
		fault.Panicf("ledger: application name: %q refers to missing id: %d", name, id)
	}
	return a, nil
}

// CreateApplication - assign an id and store a new application
func (l *Ledger) CreateApplication(a *Application) {
	a.ID = l.nextID("application")
	l.trx.PutN(l.pool.ApplicationNames, nameKey(a.Name), a.ID)
	l.put(l.pool.Applications, applicationKey(a.ID), a)
}

// PutApplication - store a modified application
func (l *Ledger) PutApplication(a *Application) {
	l.put(l.pool.Applications, applicationKey(a.ID), a)
}

// DeleteApplication - remove the application and every buying of it
func (l *Ledger) DeleteApplication(a *Application) int {
	count := 0
	for _, e := range l.trx.Range(l.pool.ApplicationBuyings, applicationKey(a.ID)) {
		l.trx.Delete(l.pool.ApplicationBuyings, e.Key)
		count += 1
	}
	l.trx.Delete(l.pool.ApplicationNames, nameKey(a.Name))
	l.trx.Delete(l.pool.Applications, applicationKey(a.ID))
	return count
}

// FindApplicationBuying - the buying of an application by buyer
func (l *Ledger) FindApplicationBuying(appID uint64, buyer string) (*ApplicationBuying, bool) {
	b := &ApplicationBuying{}
	if !l.get(l.pool.ApplicationBuyings, buyingKey(appID, buyer), b) {
		return nil, false
	}
	return b, true
}

// PutApplicationBuying - record a buying
func (l *Ledger) PutApplicationBuying(b *ApplicationBuying) {
	l.put(l.pool.ApplicationBuyings, buyingKey(b.AppID, b.Buyer), b)
}

// DeleteApplicationBuying - remove a buying
func (l *Ledger) DeleteApplicationBuying(appID uint64, buyer string) {
	l.trx.Delete(l.pool.ApplicationBuyings, buyingKey(appID, buyer))
}

// ApplicationBuyers - the buyers of an application in name order
func (l *Ledger) ApplicationBuyers(appID uint64) []string {
	elements := l.trx.Range(l.pool.ApplicationBuyings, applicationKey(appID))
	names := make([]string, 0, len(elements))
	for _, e := range elements {
		r := storage.ReadKey(e.Key)
		r.Uint64()
		names = append(names, r.Name())
	}
	return names
}
