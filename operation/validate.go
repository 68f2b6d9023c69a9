// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/bitmark-inc/witnessd/account"
	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/authority"
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
)

// byte sizes for various fields
const (
	maxApplicationNameLength = 64
)

func validateName(field string, name string) error {
	if !account.IsValidName(name) {
		return errors.Wrapf(fault.ErrInvalidAccountName, "%s: %q", field, name)
	}
	return nil
}

func validateOptionalName(field string, name string) error {
	if "" == name {
		return nil
	}
	return validateName(field, name)
}

func validateNames(field string, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if err := validateName(field, name); nil != err {
			return err
		}
		if _, ok := seen[name]; ok {
			return errors.Wrapf(fault.ErrInvalidAccountName, "%s: duplicate: %q", field, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// strictly positive amount of a valid symbol
func validatePositive(field string, a asset.Asset) error {
	if !a.Symbol.IsValid() {
		return errors.Wrapf(fault.ErrInvalidSymbol, "%s: %q", field, a.Symbol)
	}
	if a.Amount <= 0 {
		return errors.Wrapf(fault.ErrInvalidAmount, "%s: must be positive: %s", field, a)
	}
	return nil
}

func validateNonNegative(field string, a asset.Asset) error {
	if !a.Symbol.IsValid() {
		return errors.Wrapf(fault.ErrInvalidSymbol, "%s: %q", field, a.Symbol)
	}
	if a.Amount < 0 {
		return errors.Wrapf(fault.ErrInvalidAmount, "%s: must not be negative: %s", field, a)
	}
	return nil
}

func validateSymbol(field string, a asset.Asset, symbol asset.Symbol) error {
	if symbol != a.Symbol {
		return errors.Wrapf(fault.ErrInvalidSymbol, "%s: must be: %s", field, symbol)
	}
	return nil
}

// empty is allowed, otherwise must parse
func validateJSON(field string, s string) error {
	if len(s) > constants.MaxMetadataLength {
		return errors.Wrapf(fault.ErrInvalidJSON, "%s: too long", field)
	}
	if "" != s && !gjson.Valid(s) {
		return errors.Wrapf(fault.ErrInvalidJSON, "%s", field)
	}
	return nil
}

func validateAuthority(field string, a authority.Authority) error {
	if err := a.Validate(); nil != err {
		return errors.Wrapf(err, "%s", field)
	}
	return nil
}

func validateURL(field string, url string, required bool) error {
	if required && "" == url {
		return errors.Wrapf(fault.ErrInvalidUrl, "%s: must not be empty", field)
	}
	if len(url) > constants.MaxUrlLength {
		return errors.Wrapf(fault.ErrInvalidUrl, "%s: too long", field)
	}
	return nil
}
