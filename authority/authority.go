// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authority - weighted threshold authorities
//
// an authority is satisfied when the weights of the keys that signed
// plus the weights of the accounts whose own authority is satisfied
// reach the threshold
package authority

import (
	"bytes"

	"golang.org/x/exp/slices"

	"github.com/bitmark-inc/witnessd/account"
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/publickey"
)

// Class - which of an account's authorities
type Class int

const (
	Owner Class = iota
	Active
	Posting
)

func (c Class) String() string {
	switch c {
	case Owner:
		return "owner"
	case Active:
		return "active"
	case Posting:
		return "posting"
	default:
		return "*unknown*"
	}
}

// AccountWeight - an account contributing to an authority
type AccountWeight struct {
	Account string `json:"account" cbor:"1,keyasint"`
	Weight  uint16 `json:"weight" cbor:"2,keyasint"`
}

// KeyWeight - a key contributing to an authority
type KeyWeight struct {
	Key    publickey.PublicKey `json:"key" cbor:"1,keyasint"`
	Weight uint16              `json:"weight" cbor:"2,keyasint"`
}

// Authority - threshold over weighted accounts and keys
type Authority struct {
	WeightThreshold uint32          `json:"weight_threshold" cbor:"1,keyasint"`
	AccountAuths    []AccountWeight `json:"account_auths" cbor:"2,keyasint,omitempty"`
	KeyAuths        []KeyWeight     `json:"key_auths" cbor:"3,keyasint,omitempty"`
}

// NewKey - an n of n authority over a single key
func NewKey(threshold uint32, key publickey.PublicKey, weight uint16) Authority {
	return Authority{
		WeightThreshold: threshold,
		KeyAuths:        []KeyWeight{{Key: key, Weight: weight}},
	}
}

// NewAccount - an authority delegated to a single account
func NewAccount(threshold uint32, name string, weight uint16) Authority {
	return Authority{
		WeightThreshold: threshold,
		AccountAuths:    []AccountWeight{{Account: name, Weight: weight}},
	}
}

// Null - an authority over the null key: it cannot be satisfied by
// any signature
func Null() Authority {
	return NewKey(1, publickey.Null, 1)
}

// NullAccount - delegated to the null account whose own authority is
// impossible
func NullAccount() Authority {
	return NewAccount(1, constants.NullAccount, 1)
}

// IsImpossible - the total of all weights is below the threshold
func (a Authority) IsImpossible() bool {
	total := uint64(0)
	for _, w := range a.AccountAuths {
		total += uint64(w.Weight)
	}
	for _, w := range a.KeyAuths {
		total += uint64(w.Weight)
	}
	return total < uint64(a.WeightThreshold)
}

// IsOpen - a zero threshold is satisfied by nothing at all
func (a Authority) IsOpen() bool {
	return 0 == a.WeightThreshold
}

// Validate - every account name well formed and no duplicate entries
func (a Authority) Validate() error {
	seenAccounts := make(map[string]struct{}, len(a.AccountAuths))
	for _, w := range a.AccountAuths {
		if !account.IsValidName(w.Account) {
			return fault.ErrInvalidAccountName
		}
		if _, ok := seenAccounts[w.Account]; ok {
			return fault.ErrInvalidAuthority
		}
		seenAccounts[w.Account] = struct{}{}
	}
	seenKeys := make(map[publickey.PublicKey]struct{}, len(a.KeyAuths))
	for _, w := range a.KeyAuths {
		if _, ok := seenKeys[w.Key]; ok {
			return fault.ErrInvalidAuthority
		}
		seenKeys[w.Key] = struct{}{}
	}
	return nil
}

// Accounts - names referenced by the authority in sorted order
func (a Authority) Accounts() []string {
	names := make([]string, 0, len(a.AccountAuths))
	for _, w := range a.AccountAuths {
		names = append(names, w.Account)
	}
	slices.Sort(names)
	return names
}

// Canonical - a copy with entries sorted so that equal authorities
// have identical representations
func (a Authority) Canonical() Authority {
	c := Authority{
		WeightThreshold: a.WeightThreshold,
	}
	if len(a.AccountAuths) > 0 {
		c.AccountAuths = slices.Clone(a.AccountAuths)
		slices.SortFunc(c.AccountAuths, func(x, y AccountWeight) bool {
			return x.Account < y.Account
		})
	}
	if len(a.KeyAuths) > 0 {
		c.KeyAuths = slices.Clone(a.KeyAuths)
		slices.SortFunc(c.KeyAuths, func(x, y KeyWeight) bool {
			return bytes.Compare(x.Key[:], y.Key[:]) < 0
		})
	}
	return c
}

// Equal - same threshold and same weighted entries irrespective of order
func (a Authority) Equal(b Authority) bool {
	if a.WeightThreshold != b.WeightThreshold ||
		len(a.AccountAuths) != len(b.AccountAuths) ||
		len(a.KeyAuths) != len(b.KeyAuths) {
		return false
	}
	ca := a.Canonical()
	cb := b.Canonical()
	return slices.Equal(ca.AccountAuths, cb.AccountAuths) &&
		slices.Equal(ca.KeyAuths, cb.KeyAuths)
}
