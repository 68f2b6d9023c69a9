// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/bitmark-inc/witnessd/fault"
)

// Price - exchange rate of base for quote
type Price struct {
	Base  Asset `json:"base" cbor:"1,keyasint"`
	Quote Asset `json:"quote" cbor:"2,keyasint"`
}

// Validate - both sides positive, distinct symbols and one side native
func (p Price) Validate() error {
	if p.Base.Amount <= 0 || p.Quote.Amount <= 0 {
		return fault.ErrInvalidPrice
	}
	if !p.Base.Symbol.IsValid() || !p.Quote.Symbol.IsValid() {
		return fault.ErrInvalidSymbol
	}
	if p.Base.Symbol == p.Quote.Symbol {
		return fault.ErrInvalidPrice
	}
	if !p.Base.IsNative() && !p.Quote.IsNative() {
		return fault.ErrInvalidPrice
	}
	return nil
}

// Normalised - the same rate with the native asset as the base
func (p Price) Normalised() Price {
	if !p.Base.IsNative() && p.Quote.IsNative() {
		return Price{
			Base:  p.Quote,
			Quote: p.Base,
		}
	}
	return p
}
