// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evaluator

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/operation"
)

// Rejection - an operation that could not be applied
type Rejection struct {
	Operation operation.TagType
	Err       error
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Operation, r.Err)
}

// Cause - the underlying fault, for errors.Cause
func (r *Rejection) Cause() error {
	return errors.Cause(r.Err)
}

// Unwrap - for the standard errors package
func (r *Rejection) Unwrap() error {
	return r.Err
}

// Apply - validate and evaluate one operation: on success its changes
// and virtual operations are merged into ctx, on rejection nothing is
// changed
func Apply(ctx *Context, op operation.Operation) error {
	tag := op.Tag()
	if tag.IsVirtual() {
		return &Rejection{Operation: tag, Err: errors.Wrap(fault.ErrInvalidOperation, "virtual operation cannot be applied")}
	}

	if err := op.Validate(); nil != err {
		return &Rejection{Operation: tag, Err: err}
	}

	child := ctx.child()
	if err := evaluate(child, op); nil != err {
		child.Ledger.Abort()
		ctx.debugf("rejected: %s error: %s", tag, err)
		return &Rejection{Operation: tag, Err: err}
	}

	if err := child.Ledger.Commit(); nil != err {
		fault.Panicf("evaluator: commit of: %s error: %s", tag, err)
	}
	ctx.virtuals = append(ctx.virtuals, child.virtuals...)
	return nil
}

func evaluate(ctx *Context, op operation.Operation) error {
	switch o := op.(type) {

	case *operation.AccountCreate:
		return accountCreate(ctx, o)
	case *operation.AccountUpdate:
		return accountUpdate(ctx, o)
	case *operation.AccountDelete:
		return accountDelete(ctx, o)

	case *operation.Transfer:
		return transfer(ctx, o)
	case *operation.TransferToVesting:
		return transferToVesting(ctx, o)
	case *operation.WithdrawVesting:
		return withdrawVesting(ctx, o)

	case *operation.WitnessUpdate:
		return witnessUpdate(ctx, o)
	case *operation.WitnessStop:
		return witnessStop(ctx, o)
	case *operation.WitnessSetProperties:
		return witnessSetProperties(ctx, o)
	case *operation.AccountWitnessVote:
		return accountWitnessVote(ctx, o)
	case *operation.AccountWitnessProxy:
		return accountWitnessProxy(ctx, o)
	case *operation.FeedPublish:
		return feedPublish(ctx, o)

	case *operation.EscrowTransfer:
		return escrowTransfer(ctx, o)
	case *operation.EscrowApprove:
		return escrowApprove(ctx, o)
	case *operation.EscrowDispute:
		return escrowDispute(ctx, o)
	case *operation.EscrowRelease:
		return escrowRelease(ctx, o)

	case *operation.Custom:
		return nil
	case *operation.CustomJSON:
		return customContent(ctx, o.Sender, o.Recipients, o.AppID, o.JSON, nil)
	case *operation.CustomBinary:
		return customContent(ctx, o.Sender, o.Recipients, o.AppID, "", o.Data)

	case *operation.RequestAccountRecovery:
		return requestAccountRecovery(ctx, o)
	case *operation.RecoverAccount:
		return recoverAccount(ctx, o)
	case *operation.ChangeRecoveryAccount:
		return changeRecoveryAccount(ctx, o)

	case *operation.ApplicationCreate:
		return applicationCreate(ctx, o)
	case *operation.ApplicationUpdate:
		return applicationUpdate(ctx, o)
	case *operation.ApplicationDelete:
		return applicationDelete(ctx, o)
	case *operation.BuyApplication:
		return buyApplication(ctx, o)
	case *operation.CancelApplicationBuying:
		return cancelApplicationBuying(ctx, o)

	case *operation.TransferFromPromotionPool:
		return transferFromPromotionPool(ctx, o)
	case *operation.SponsorFees:
		return sponsorFees(ctx, o)

	case *operation.ReportOverProduction, *operation.ResetAccount, *operation.SetResetAccount:
		return fault.ErrOperationDisabled

	default:
		return errors.Wrapf(fault.ErrInvalidOperation, "no evaluator for: %s", op.Tag())
	}
}
