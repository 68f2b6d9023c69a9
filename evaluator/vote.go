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

func accountWitnessVote(ctx *Context, op *operation.AccountWitnessVote) error {
	l := ctx.Ledger

	voter, err := l.GetAccount(op.Account)
	if nil != err {
		return err
	}
	if "" != voter.Proxy {
		return errors.Wrapf(fault.ErrCannotVoteWithProxy, "account: %q proxy: %q", op.Account, voter.Proxy)
	}
	if _, err := l.GetWitness(op.Witness); nil != err {
		return err
	}

	weight := voter.WitnessVoteWeight()

	if !l.HasWitnessVote(op.Account, op.Witness) {
		if !op.Approve {
			return errors.Wrapf(fault.ErrVoteNotFound, "account: %q witness: %q", op.Account, op.Witness)
		}
		if voter.WitnessesVotedFor >= constants.MaxAccountWitnessVotes {
			return errors.Wrapf(fault.ErrTooManyWitnessVotes, "account: %q", op.Account)
		}
		l.PutWitnessVote(op.Account, op.Witness)
		l.AdjustWitnessVote(op.Witness, weight)
		voter.WitnessesVotedFor += 1
		l.PutAccount(voter)
		return nil
	}

	if op.Approve {
		return errors.Wrapf(fault.ErrVoteAlreadyExists, "account: %q witness: %q", op.Account, op.Witness)
	}
	l.AdjustWitnessVote(op.Witness, -weight)
	l.DeleteWitnessVote(op.Account, op.Witness)
	voter.WitnessesVotedFor -= 1
	l.PutAccount(voter)
	return nil
}

// the account's weight leaves its current chain before the new proxy
// is checked, the nested ledger undoes that on rejection
func accountWitnessProxy(ctx *Context, op *operation.AccountWitnessProxy) error {
	l := ctx.Ledger

	a, err := l.GetAccount(op.Account)
	if nil != err {
		return err
	}
	if a.Proxy == op.Proxy {
		return errors.Wrapf(fault.ErrProxyUnchanged, "account: %q proxy: %q", op.Account, op.Proxy)
	}

	delta := ledger.WitnessVoteDelta(a)
	l.AdjustProxiedWitnessVotes(op.Account, delta)

	if "" == op.Proxy {
		a = l.MustGetAccount(op.Account)
		a.Proxy = ""
		l.PutAccount(a)
		return nil
	}

	if err := checkProxyChain(l, op.Account, op.Proxy); nil != err {
		return err
	}

	l.ClearWitnessVotes(op.Account)
	a = l.MustGetAccount(op.Account)
	a.Proxy = op.Proxy
	l.PutAccount(a)

	l.AdjustProxiedWitnessVotes(op.Account, delta.Negate())
	return nil
}

// walk up from the new proxy: no account may appear twice and the
// chain is bounded
func checkProxyChain(l *ledger.Ledger, account string, proxy string) error {
	current, err := l.GetAccount(proxy)
	if nil != err {
		return err
	}

	chain := map[string]struct{}{
		account: {},
		proxy:   {},
	}
	for "" != current.Proxy {
		next := current.Proxy
		if _, seen := chain[next]; seen {
			return errors.Wrapf(fault.ErrProxyLoop, "account: %q proxy: %q", account, proxy)
		}
		chain[next] = struct{}{}
		if len(chain) > constants.MaxProxyRecursionDepth {
			return errors.Wrapf(fault.ErrProxyChainTooLong, "account: %q proxy: %q", account, proxy)
		}
		current = l.MustGetAccount(next)
	}
	return nil
}
