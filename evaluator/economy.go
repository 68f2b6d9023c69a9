// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evaluator

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/operation"
)

// pays at most what the pool holds
func transferFromPromotionPool(ctx *Context, op *operation.TransferFromPromotionPool) error {
	l := ctx.Ledger

	if !l.AccountExists(op.TransferTo) {
		return errors.Wrapf(fault.ErrUnknownAccount, "transfer to: %q", op.TransferTo)
	}

	e := l.Economics()
	withdrawn := op.Amount.Amount
	if withdrawn > e.PromotionPool {
		withdrawn = e.PromotionPool
	}
	e.PromotionPool -= withdrawn
	l.PutEconomics(e)

	if err := l.AdjustBalance(op.TransferTo, asset.NativeAmount(withdrawn)); nil != err {
		return err
	}
	l.AdjustSupply(withdrawn)

	ctx.Emit(&operation.PromotionPoolWithdraw{
		ToAccount: op.TransferTo,
		Withdrawn: asset.NativeAmount(withdrawn),
	})
	return nil
}

func sponsorFees(ctx *Context, op *operation.SponsorFees) error {
	l := ctx.Ledger

	if !l.AccountExists(op.Sponsored) {
		return errors.Wrapf(fault.ErrUnknownAccount, "sponsored: %q", op.Sponsored)
	}
	current, sponsored := l.FindSponsor(op.Sponsored)

	// the sponsored account ends its own sponsorship
	if "" == op.Sponsor {
		if !sponsored {
			return errors.Wrapf(fault.ErrSponsorshipNotFound, "sponsored: %q", op.Sponsored)
		}
		l.DeleteSponsor(op.Sponsored)
		return nil
	}

	if !l.AccountExists(op.Sponsor) {
		return errors.Wrapf(fault.ErrUnknownAccount, "sponsor: %q", op.Sponsor)
	}

	if op.IsSponsoring {
		if sponsored {
			return errors.Wrapf(fault.ErrSponsorshipExists, "sponsored: %q by: %q", op.Sponsored, current)
		}
		l.PutSponsor(op.Sponsor, op.Sponsored)
		return nil
	}

	if !sponsored {
		return errors.Wrapf(fault.ErrSponsorshipNotFound, "sponsored: %q", op.Sponsored)
	}
	if current != op.Sponsor {
		return errors.Wrapf(fault.ErrNotSponsor, "sponsored: %q by: %q", op.Sponsored, current)
	}
	l.DeleteSponsor(op.Sponsored)
	return nil
}
