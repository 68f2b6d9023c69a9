// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evaluator

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/ledger"
	"github.com/bitmark-inc/witnessd/operation"
)

func requestAccountRecovery(ctx *Context, op *operation.RequestAccountRecovery) error {
	l := ctx.Ledger

	a, err := l.GetAccount(op.AccountToRecover)
	if nil != err {
		return err
	}

	// without a recovery account the top witness acts as one
	if "" != a.RecoveryAccount {
		if a.RecoveryAccount != op.RecoveryAccount {
			return errors.Wrapf(fault.ErrNotRecoveryAccount, "account: %q recovery account: %q",
				op.AccountToRecover, a.RecoveryAccount)
		}
	} else {
		top, ok := l.TopWitness()
		if !ok || top != op.RecoveryAccount {
			return errors.Wrapf(fault.ErrNotTopWitness, "%q", op.RecoveryAccount)
		}
	}

	_, pending := l.FindRecoveryRequest(op.AccountToRecover)

	// an open authority withdraws a pending request
	if pending && op.NewOwnerAuthority.IsOpen() {
		l.DeleteRecoveryRequest(op.AccountToRecover)
		return nil
	}

	if op.NewOwnerAuthority.IsImpossible() {
		return fault.ErrRecoveryAuthorityIsImpossible
	}
	if op.NewOwnerAuthority.IsOpen() {
		return fault.ErrOpenAuthority
	}
	if err := authorityAccountsExist(l, op.NewOwnerAuthority); nil != err {
		return err
	}

	l.PutRecoveryRequest(&ledger.RecoveryRequest{
		AccountToRecover:  op.AccountToRecover,
		NewOwnerAuthority: op.NewOwnerAuthority,
		Expires:           ctx.Now.Add(constants.AccountRecoveryRequestExpiration),
	})
	return nil
}

func recoverAccount(ctx *Context, op *operation.RecoverAccount) error {
	l := ctx.Ledger

	a, err := l.GetAccount(op.AccountToRecover)
	if nil != err {
		return err
	}
	if ctx.Now.Sub(a.LastAccountRecovery) <= constants.OwnerUpdateLimit {
		return errors.Wrapf(fault.ErrRecoveryTooSoon, "last recovery: %s", a.LastAccountRecovery)
	}

	request, ok := l.FindRecoveryRequest(op.AccountToRecover)
	if !ok {
		return errors.Wrapf(fault.ErrRecoveryRequestNotFound, "%q", op.AccountToRecover)
	}
	if !request.NewOwnerAuthority.Equal(op.NewOwnerAuthority) {
		return fault.ErrRecoveryAuthorityMismatch
	}

	found := false
	for _, h := range l.OwnerHistoryOf(op.AccountToRecover) {
		if h.PreviousOwnerAuthority.Equal(op.RecentOwnerAuthority) {
			found = true
			break
		}
	}
	if !found {
		return errors.Wrapf(fault.ErrRecentAuthorityNotFound, "%q", op.AccountToRecover)
	}

	l.DeleteRecoveryRequest(op.AccountToRecover)
	l.UpdateOwnerAuthority(op.AccountToRecover, op.NewOwnerAuthority, ctx.Now)

	a = l.MustGetAccount(op.AccountToRecover)
	a.LastAccountRecovery = ctx.Now
	l.PutAccount(a)
	return nil
}

func changeRecoveryAccount(ctx *Context, op *operation.ChangeRecoveryAccount) error {
	l := ctx.Ledger

	if !l.AccountExists(op.NewRecoveryAccount) {
		return errors.Wrapf(fault.ErrUnknownAccount, "new recovery account: %q", op.NewRecoveryAccount)
	}
	a, err := l.GetAccount(op.AccountToRecover)
	if nil != err {
		return err
	}

	_, pending := l.FindChangeRecoveryRequest(op.AccountToRecover)
	if pending && a.RecoveryAccount == op.NewRecoveryAccount {
		// back to the current account, nothing left to change
		l.DeleteChangeRecoveryRequest(op.AccountToRecover)
		return nil
	}

	l.PutChangeRecoveryRequest(&ledger.ChangeRecoveryRequest{
		AccountToRecover: op.AccountToRecover,
		RecoveryAccount:  op.NewRecoveryAccount,
		EffectiveOn:      ctx.Now.Add(constants.OwnerAuthorityRecoveryPeriod),
	})
	return nil
}
