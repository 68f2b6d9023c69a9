// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/authority"
	"github.com/bitmark-inc/witnessd/publickey"
)

// AccountCreate - create a new account paying the creation fee
type AccountCreate struct {
	Fee            asset.Asset         `json:"fee"`
	Creator        string              `json:"creator"`
	NewAccountName string              `json:"new_account_name"`
	Owner          authority.Authority `json:"owner"`
	Active         authority.Authority `json:"active"`
	MemoKey        publickey.PublicKey `json:"memo_key"`
	JSONMetadata   string              `json:"json_metadata"`
}

func (op *AccountCreate) Tag() TagType { return AccountCreateTag }

func (op *AccountCreate) Validate() error {
	if err := validateName("creator", op.Creator); nil != err {
		return err
	}
	if err := validateName("new_account_name", op.NewAccountName); nil != err {
		return err
	}
	if err := validateNonNegative("fee", op.Fee); nil != err {
		return err
	}
	if err := validateSymbol("fee", op.Fee, asset.Native); nil != err {
		return err
	}
	if err := validateAuthority("owner", op.Owner); nil != err {
		return err
	}
	if err := validateAuthority("active", op.Active); nil != err {
		return err
	}
	return validateJSON("json_metadata", op.JSONMetadata)
}

func (op *AccountCreate) required(r *Required) {
	r.Active = append(r.Active, op.Creator)
}

// AccountUpdate - replace authorities, memo key or metadata
//
// a null memo key and empty metadata leave the current values
type AccountUpdate struct {
	Account      string               `json:"account"`
	Owner        *authority.Authority `json:"owner,omitempty"`
	Active       *authority.Authority `json:"active,omitempty"`
	MemoKey      publickey.PublicKey  `json:"memo_key"`
	JSONMetadata string               `json:"json_metadata"`
}

func (op *AccountUpdate) Tag() TagType { return AccountUpdateTag }

func (op *AccountUpdate) Validate() error {
	if err := validateName("account", op.Account); nil != err {
		return err
	}
	if nil != op.Owner {
		if err := validateAuthority("owner", *op.Owner); nil != err {
			return err
		}
	}
	if nil != op.Active {
		if err := validateAuthority("active", *op.Active); nil != err {
			return err
		}
	}
	return validateJSON("json_metadata", op.JSONMetadata)
}

func (op *AccountUpdate) required(r *Required) {
	if nil != op.Owner {
		r.Owner = append(r.Owner, op.Account)
	} else {
		r.Active = append(r.Active, op.Account)
	}
}

// AccountDelete - revoke all access to an account
type AccountDelete struct {
	Account string `json:"account"`
}

func (op *AccountDelete) Tag() TagType { return AccountDeleteTag }

func (op *AccountDelete) Validate() error {
	return validateName("account", op.Account)
}

func (op *AccountDelete) required(r *Required) {
	r.Owner = append(r.Owner, op.Account)
}
