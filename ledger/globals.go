// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/witnessd/fault"
)

// keys of the singletons in the globals pool
var (
	propertiesKey = []byte("properties")
	economicsKey  = []byte("economics")
	scheduleKey   = []byte("schedule")
)

// IsInitialised - true once genesis has stored the properties
func (l *Ledger) IsInitialised() bool {
	return l.trx.Has(l.pool.Globals, propertiesKey)
}

// Properties - the chain wide totals
func (l *Ledger) Properties() *Properties {
	p := &Properties{}
	if !l.get(l.pool.Globals, propertiesKey, p) {
		fault.Panicf("ledger: properties must exist")
	}
	return p
}

// PutProperties - replace the chain wide totals
func (l *Ledger) PutProperties(p *Properties) {
	l.put(l.pool.Globals, propertiesKey, p)
}

// Economics - the pools outside any account
func (l *Ledger) Economics() *Economics {
	e := &Economics{}
	if !l.get(l.pool.Globals, economicsKey, e) {
		fault.Panicf("ledger: economics must exist")
	}
	return e
}

// PutEconomics - replace the pools
func (l *Ledger) PutEconomics(e *Economics) {
	l.put(l.pool.Globals, economicsKey, e)
}

// Schedule - the median chain properties
func (l *Ledger) Schedule() *Schedule {
	s := &Schedule{}
	if !l.get(l.pool.Globals, scheduleKey, s) {
		fault.Panicf("ledger: schedule must exist")
	}
	return s
}

// PutSchedule - replace the median chain properties
func (l *Ledger) PutSchedule(s *Schedule) {
	l.put(l.pool.Globals, scheduleKey, s)
}
