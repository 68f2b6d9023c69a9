// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - amounts of a symbol and prices between two symbols
package asset

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
)

// limits on symbol text
const (
	maxSymbolLength = 8
)

// Symbol - upper case asset name
type Symbol string

// well known symbols
const (
	Native  = Symbol(constants.NativeSymbol)
	Vesting = Symbol(constants.VestingSymbol)
)

// IsValid - 1 to 8 upper case letters
func (s Symbol) IsValid() bool {
	if 0 == len(s) || len(s) > maxSymbolLength {
		return false
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// Asset - an integer amount in the smallest unit of its symbol
type Asset struct {
	Amount int64  `cbor:"1,keyasint"`
	Symbol Symbol `cbor:"2,keyasint"`
}

// New - construct an asset
func New(amount int64, symbol Symbol) Asset {
	return Asset{
		Amount: amount,
		Symbol: symbol,
	}
}

// NativeAmount - construct an amount of the native asset
func NativeAmount(amount int64) Asset {
	return New(amount, Native)
}

// VestingAmount - construct an amount of vesting shares
func VestingAmount(amount int64) Asset {
	return New(amount, Vesting)
}

// FromString - parse "1.000000 WIT"
func FromString(s string) (Asset, error) {
	fields := strings.Fields(s)
	if 2 != len(fields) {
		return Asset{}, fault.ErrInvalidAmount
	}
	symbol := Symbol(fields[1])
	if !symbol.IsValid() {
		return Asset{}, fault.ErrInvalidSymbol
	}
	d, err := decimal.NewFromString(fields[0])
	if nil != err {
		return Asset{}, fault.ErrInvalidAmount
	}
	units := d.Shift(constants.AssetPrecision)
	if !units.Equal(units.Truncate(0)) {
		return Asset{}, fault.ErrWrongPrecision
	}
	if !units.BigInt().IsInt64() {
		return Asset{}, fault.ErrInvalidAmount
	}
	return New(units.IntPart(), symbol), nil
}

// IsNative - true for the chain's liquid asset
func (a Asset) IsNative() bool {
	return Native == a.Symbol
}

// IsVesting - true for vesting shares
func (a Asset) IsVesting() bool {
	return Vesting == a.Symbol
}

// String - fixed precision text with symbol
func (a Asset) String() string {
	d := decimal.New(a.Amount, -constants.AssetPrecision)
	return d.StringFixed(constants.AssetPrecision) + " " + string(a.Symbol)
}

// MarshalText - convert to text
func (a Asset) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert from text
func (a *Asset) UnmarshalText(s []byte) error {
	v, err := FromString(string(s))
	if nil != err {
		return err
	}
	*a = v
	return nil
}
