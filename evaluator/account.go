// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evaluator

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/authority"
	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/ledger"
	"github.com/bitmark-inc/witnessd/operation"
	"github.com/bitmark-inc/witnessd/publickey"
)

func accountCreate(ctx *Context, op *operation.AccountCreate) error {
	l := ctx.Ledger

	creator, err := l.GetAccount(op.Creator)
	if nil != err {
		return err
	}
	if creator.Balance < op.Fee.Amount {
		return errors.Wrapf(fault.ErrInsufficientFunds, "creator: %q has: %s fee: %s",
			op.Creator, asset.NativeAmount(creator.Balance), op.Fee)
	}

	minimum := l.Schedule().MedianProps.AccountCreationFee.Amount
	if op.Fee.Amount < minimum {
		return errors.Wrapf(fault.ErrAccountCreationFeeTooLow, "fee: %s minimum: %s",
			op.Fee, asset.NativeAmount(minimum))
	}

	if err := authorityAccountsExist(l, op.Owner); nil != err {
		return err
	}
	if err := authorityAccountsExist(l, op.Active); nil != err {
		return err
	}

	if l.AccountExists(op.NewAccountName) {
		return errors.Wrapf(fault.ErrAccountExists, "%q", op.NewAccountName)
	}

	// the minimum is the fee, the excess belongs to the new account
	if err := l.AdjustBalance(op.Creator, asset.NativeAmount(-op.Fee.Amount)); nil != err {
		return err
	}
	e := l.Economics()
	e.PendingRewards += minimum
	l.PutEconomics(e)

	l.PutAccount(&ledger.Account{
		Name:                  op.NewAccountName,
		MemoKey:               op.MemoKey,
		JSONMetadata:          op.JSONMetadata,
		Created:               ctx.Now,
		Balance:               op.Fee.Amount - minimum,
		NextVestingWithdrawal: chaintime.Maximum,
		RecoveryAccount:       op.Creator,
		LastAccountRecovery:   chaintime.Minimum,
	})
	l.PutAuthority(&ledger.AccountAuthority{
		Account:         op.NewAccountName,
		Owner:           op.Owner,
		Active:          op.Active,
		LastOwnerUpdate: chaintime.Minimum,
	})
	return nil
}

func accountUpdate(ctx *Context, op *operation.AccountUpdate) error {
	l := ctx.Ledger

	if constants.TemporaryAccount == op.Account {
		return fault.ErrTempAccount
	}
	a, err := l.GetAccount(op.Account)
	if nil != err {
		return err
	}

	if nil != op.Owner {
		if err := ownerUpdateAllowed(ctx, op.Account); nil != err {
			return err
		}
		if err := authorityAccountsExist(l, *op.Owner); nil != err {
			return err
		}
	}
	if nil != op.Active {
		if err := authorityAccountsExist(l, *op.Active); nil != err {
			return err
		}
	}

	if !op.MemoKey.IsNull() {
		a.MemoKey = op.MemoKey
	}
	if "" != op.JSONMetadata {
		a.JSONMetadata = op.JSONMetadata
	}
	l.PutAccount(a)

	if nil != op.Owner {
		l.UpdateOwnerAuthority(op.Account, *op.Owner, ctx.Now)
	}
	if nil != op.Active {
		auth := l.GetAuthority(op.Account)
		auth.Active = *op.Active
		l.PutAuthority(auth)
	}
	return nil
}

// the account is kept with its balances, only access is revoked
func accountDelete(ctx *Context, op *operation.AccountDelete) error {
	l := ctx.Ledger

	if constants.TemporaryAccount == op.Account {
		return fault.ErrTempAccount
	}
	a, err := l.GetAccount(op.Account)
	if nil != err {
		return err
	}
	if err := ownerUpdateAllowed(ctx, op.Account); nil != err {
		return err
	}

	a.MemoKey = publickey.Null
	a.JSONMetadata = ""
	l.PutAccount(a)

	l.UpdateOwnerAuthority(op.Account, authority.Null(), ctx.Now)
	auth := l.GetAuthority(op.Account)
	auth.Active = authority.Null()
	l.PutAuthority(auth)
	return nil
}

func ownerUpdateAllowed(ctx *Context, name string) error {
	if ctx.Testing {
		return nil
	}
	auth := ctx.Ledger.GetAuthority(name)
	if ctx.Now.Sub(auth.LastOwnerUpdate) <= constants.OwnerUpdateLimit {
		return errors.Wrapf(fault.ErrOwnerUpdateTooSoon, "account: %q last update: %s", name, auth.LastOwnerUpdate)
	}
	return nil
}

// every account named by an authority must exist
func authorityAccountsExist(l *ledger.Ledger, a authority.Authority) error {
	for _, name := range a.Accounts() {
		if !l.AccountExists(name) {
			return errors.Wrapf(fault.ErrUnknownAccount, "authority refers to: %q", name)
		}
	}
	return nil
}
