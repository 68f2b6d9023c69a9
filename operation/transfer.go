// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
)

// Transfer - move an amount between accounts
type Transfer struct {
	From   string      `json:"from"`
	To     string      `json:"to"`
	Amount asset.Asset `json:"amount"`
	Memo   string      `json:"memo"`
}

func (op *Transfer) Tag() TagType { return TransferTag }

func (op *Transfer) Validate() error {
	if err := validateName("from", op.From); nil != err {
		return err
	}
	if err := validateName("to", op.To); nil != err {
		return err
	}
	if err := validatePositive("amount", op.Amount); nil != err {
		return err
	}
	if !op.Amount.IsNative() && !op.Amount.IsVesting() {
		return errors.Wrapf(fault.ErrInvalidSymbol, "amount: %s", op.Amount)
	}
	if len(op.Memo) > constants.MaxMemoLength {
		return errors.Wrap(fault.ErrInvalidOperation, "memo: too long")
	}
	return nil
}

// moving vesting shares needs the owner authority
func (op *Transfer) required(r *Required) {
	if op.Amount.IsVesting() {
		r.Owner = append(r.Owner, op.From)
	} else {
		r.Active = append(r.Active, op.From)
	}
}

// TransferToVesting - convert liquid funds to vesting shares of
// the sender, or of To when it is set
type TransferToVesting struct {
	From   string      `json:"from"`
	To     string      `json:"to,omitempty"`
	Amount asset.Asset `json:"amount"`
}

func (op *TransferToVesting) Tag() TagType { return TransferToVestingTag }

func (op *TransferToVesting) Validate() error {
	if err := validateName("from", op.From); nil != err {
		return err
	}
	if err := validateOptionalName("to", op.To); nil != err {
		return err
	}
	if err := validatePositive("amount", op.Amount); nil != err {
		return err
	}
	return validateSymbol("amount", op.Amount, asset.Native)
}

func (op *TransferToVesting) required(r *Required) {
	r.Active = append(r.Active, op.From)
}

// WithdrawVesting - start, change or with zero shares cancel a
// vesting withdrawal schedule
type WithdrawVesting struct {
	Account       string      `json:"account"`
	VestingShares asset.Asset `json:"vesting_shares"`
}

func (op *WithdrawVesting) Tag() TagType { return WithdrawVestingTag }

func (op *WithdrawVesting) Validate() error {
	if err := validateName("account", op.Account); nil != err {
		return err
	}
	if err := validateNonNegative("vesting_shares", op.VestingShares); nil != err {
		return err
	}
	return validateSymbol("vesting_shares", op.VestingShares, asset.Vesting)
}

func (op *WithdrawVesting) required(r *Required) {
	r.Active = append(r.Active, op.Account)
}
