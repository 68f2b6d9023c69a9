// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/codec"
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/publickey"
)

// names of witness properties
const (
	PropertyKey                = "key"
	PropertyAccountCreationFee = "account_creation_fee"
	PropertyMaximumBlockSize   = "maximum_block_size"
	PropertyNewSigningKey      = "new_signing_key"
	PropertyExchangeRates      = "exchange_rates"
	PropertyURL                = "url"
)

// WitnessProperties - sparse map of encoded property values
type WitnessProperties map[string][]byte

// Set - encode and store a value
func (p WitnessProperties) Set(name string, value interface{}) {
	p[name] = codec.MustMarshal(value)
}

// Has - true if the property is present
func (p WitnessProperties) Has(name string) bool {
	_, ok := p[name]
	return ok
}

func (p WitnessProperties) decode(name string, v interface{}) (bool, error) {
	data, ok := p[name]
	if !ok {
		return false, nil
	}
	if err := codec.Unmarshal(data, v); nil != err {
		return true, errors.Wrapf(fault.ErrInvalidProperty, "%s: %v", name, err)
	}
	return true, nil
}

// SigningKey - the mandatory current signing key
func (p WitnessProperties) SigningKey() (publickey.PublicKey, error) {
	var key publickey.PublicKey
	ok, err := p.decode(PropertyKey, &key)
	if nil != err {
		return key, err
	}
	if !ok {
		return key, fault.ErrMissingSigningKeyProperty
	}
	return key, nil
}

// AccountCreationFee - optional
func (p WitnessProperties) AccountCreationFee() (asset.Asset, bool, error) {
	var fee asset.Asset
	ok, err := p.decode(PropertyAccountCreationFee, &fee)
	return fee, ok, err
}

// MaximumBlockSize - optional
func (p WitnessProperties) MaximumBlockSize() (uint32, bool, error) {
	var size uint32
	ok, err := p.decode(PropertyMaximumBlockSize, &size)
	return size, ok, err
}

// NewSigningKey - optional
func (p WitnessProperties) NewSigningKey() (publickey.PublicKey, bool, error) {
	var key publickey.PublicKey
	ok, err := p.decode(PropertyNewSigningKey, &key)
	return key, ok, err
}

// ExchangeRates - optional
func (p WitnessProperties) ExchangeRates() ([]asset.Price, bool, error) {
	var rates []asset.Price
	ok, err := p.decode(PropertyExchangeRates, &rates)
	return rates, ok, err
}

// URL - optional
func (p WitnessProperties) URL() (string, bool, error) {
	var url string
	ok, err := p.decode(PropertyURL, &url)
	return url, ok, err
}

// WitnessSetProperties - change any subset of witness settings,
// authorised by the witness signing key
type WitnessSetProperties struct {
	Owner string            `json:"owner"`
	Props WitnessProperties `json:"props"`
}

func (op *WitnessSetProperties) Tag() TagType { return WitnessSetPropertiesTag }

func (op *WitnessSetProperties) Validate() error {
	if err := validateName("owner", op.Owner); nil != err {
		return err
	}
	if _, err := op.Props.SigningKey(); nil != err {
		return err
	}
	if fee, ok, err := op.Props.AccountCreationFee(); nil != err {
		return err
	} else if ok {
		if err := validateNonNegative(PropertyAccountCreationFee, fee); nil != err {
			return err
		}
		if err := validateSymbol(PropertyAccountCreationFee, fee, asset.Native); nil != err {
			return err
		}
	}
	if size, ok, err := op.Props.MaximumBlockSize(); nil != err {
		return err
	} else if ok && size < constants.MinBlockSizeLimit {
		return fault.ErrBlockSizeTooSmall
	} else if ok && size > constants.MaxBlockSize {
		return fault.ErrBlockSizeTooLarge
	}
	if _, _, err := op.Props.NewSigningKey(); nil != err {
		return err
	}
	if rates, _, err := op.Props.ExchangeRates(); nil != err {
		return err
	} else {
		for _, rate := range rates {
			if err := rate.Validate(); nil != err {
				return errors.Wrap(err, PropertyExchangeRates)
			}
		}
	}
	if url, ok, err := op.Props.URL(); nil != err {
		return err
	} else if ok {
		return validateURL(PropertyURL, url, true)
	}
	return nil
}

func (op *WitnessSetProperties) required(r *Required) {
	r.Other = append(r.Other, signingKeyAuthority(op.Props))
}
