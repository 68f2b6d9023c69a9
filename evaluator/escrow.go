// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evaluator

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/ledger"
	"github.com/bitmark-inc/witnessd/operation"
)

func escrowTransfer(ctx *Context, op *operation.EscrowTransfer) error {
	l := ctx.Ledger

	if !op.RatificationDeadline.After(ctx.Now) || !op.EscrowExpiration.After(ctx.Now) {
		return errors.Wrapf(fault.ErrEscrowInvalidDeadline, "deadlines must be after: %s", ctx.Now)
	}
	for _, name := range []string{op.To, op.Agent} {
		if !l.AccountExists(name) {
			return errors.Wrapf(fault.ErrUnknownAccount, "%q", name)
		}
	}
	if l.EscrowExists(op.From, op.EscrowID) {
		return errors.Wrapf(fault.ErrEscrowExists, "from: %q id: %d", op.From, op.EscrowID)
	}

	total := op.Amount.Amount + op.Fee.Amount
	if err := l.AdjustBalance(op.From, asset.NativeAmount(-total)); nil != err {
		return err
	}

	l.PutEscrow(&ledger.Escrow{
		From:                 op.From,
		To:                   op.To,
		Agent:                op.Agent,
		EscrowID:             op.EscrowID,
		Balance:              op.Amount.Amount,
		PendingFee:           op.Fee.Amount,
		RatificationDeadline: op.RatificationDeadline,
		EscrowExpiration:     op.EscrowExpiration,
	})
	return nil
}

// the escrow must name the same receiver and agent as the operation
func getEscrow(l *ledger.Ledger, from string, id uint32, to string, agent string) (*ledger.Escrow, error) {
	e, err := l.GetEscrow(from, id)
	if nil != err {
		return nil, err
	}
	if e.To != to {
		return nil, errors.Wrapf(fault.ErrEscrowInvalidReceiver, "escrow to: %q operation to: %q", e.To, to)
	}
	if e.Agent != agent {
		return nil, errors.Wrapf(fault.ErrEscrowInvalidAgent, "escrow agent: %q operation agent: %q", e.Agent, agent)
	}
	return e, nil
}

func escrowApprove(ctx *Context, op *operation.EscrowApprove) error {
	l := ctx.Ledger

	e, err := getEscrow(l, op.From, op.EscrowID, op.To, op.Agent)
	if nil != err {
		return err
	}
	if e.RatificationDeadline.Before(ctx.Now) {
		return errors.Wrapf(fault.ErrEscrowRatificationPassed, "deadline: %s", e.RatificationDeadline)
	}

	if op.Who == e.To {
		if e.ToApproved {
			return errors.Wrapf(fault.ErrEscrowAlreadyApproved, "to: %q", e.To)
		}
		e.ToApproved = op.Approve
	}
	if op.Who == e.Agent {
		if e.AgentApproved {
			return errors.Wrapf(fault.ErrEscrowAlreadyApproved, "agent: %q", e.Agent)
		}
		e.AgentApproved = op.Approve
	}

	if !op.Approve {
		return refundEscrow(l, e)
	}

	if e.IsApproved() {
		if err := l.AdjustBalance(e.Agent, asset.NativeAmount(e.PendingFee)); nil != err {
			return err
		}
		e.PendingFee = 0
	}
	l.PutEscrow(e)
	return nil
}

// return balance and fee to the sender and remove the escrow
func refundEscrow(l *ledger.Ledger, e *ledger.Escrow) error {
	if err := l.AdjustBalance(e.From, asset.NativeAmount(e.Balance+e.PendingFee)); nil != err {
		return err
	}
	l.DeleteEscrow(e)
	return nil
}

func escrowDispute(ctx *Context, op *operation.EscrowDispute) error {
	l := ctx.Ledger

	e, err := getEscrow(l, op.From, op.EscrowID, op.To, op.Agent)
	if nil != err {
		return err
	}
	if !ctx.Now.Before(e.EscrowExpiration) {
		return errors.Wrapf(fault.ErrEscrowExpirationPassed, "expiration: %s", e.EscrowExpiration)
	}
	if !e.IsApproved() {
		return fault.ErrEscrowNotApproved
	}
	if e.Disputed {
		return fault.ErrEscrowAlreadyDisputed
	}

	e.Disputed = true
	l.PutEscrow(e)
	return nil
}

func escrowRelease(ctx *Context, op *operation.EscrowRelease) error {
	l := ctx.Ledger

	e, err := getEscrow(l, op.From, op.EscrowID, op.To, op.Agent)
	if nil != err {
		return err
	}
	if e.Balance < op.Amount.Amount {
		return errors.Wrapf(fault.ErrEscrowBalanceInsufficient, "balance: %s release: %s",
			asset.NativeAmount(e.Balance), op.Amount)
	}
	if !e.IsApproved() {
		return fault.ErrEscrowNotApproved
	}

	switch {
	case e.Disputed:
		// only the agent, to either party
		if op.Who != e.Agent {
			return errors.Wrapf(fault.ErrEscrowReleaseNotAgent, "agent: %q", e.Agent)
		}

	case op.Who != e.From && op.Who != e.To:
		return errors.Wrapf(fault.ErrEscrowReleaseNotParty, "who: %q", op.Who)

	case e.EscrowExpiration.After(ctx.Now):
		// before expiration each party may only pay the other
		if op.Who == e.From && op.Receiver != e.To {
			return errors.Wrapf(fault.ErrEscrowReleaseToOther, "from: %q may only release to: %q", e.From, e.To)
		}
		if op.Who == e.To && op.Receiver != e.From {
			return errors.Wrapf(fault.ErrEscrowReleaseToOther, "to: %q may only release to: %q", e.To, e.From)
		}
	}

	if err := l.AdjustBalance(op.Receiver, op.Amount); nil != err {
		return err
	}
	e.Balance -= op.Amount.Amount
	if 0 == e.Balance {
		l.DeleteEscrow(e)
	} else {
		l.PutEscrow(e)
	}
	return nil
}
