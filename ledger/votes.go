// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
)

// VoteDelta - a change of vote weight: slot zero is the account's own
// stake, slot i+1 the weight proxied to it at level i
type VoteDelta [constants.MaxProxyRecursionDepth + 1]int64

// WitnessVoteDelta - the weight an account currently contributes
// through its proxy, negated so that applying it removes it
func WitnessVoteDelta(a *Account) VoteDelta {
	delta := VoteDelta{}
	delta[0] = -a.VestingShares
	for i := 0; i < constants.MaxProxyRecursionDepth; i += 1 {
		delta[i+1] = -a.ProxiedVotes[i]
	}
	return delta
}

// Negate - the opposite change
func (d VoteDelta) Negate() VoteDelta {
	for i := range d {
		d[i] = -d[i]
	}
	return d
}

// AdjustProxiedWitnessVotes - move a weight change of every level up
// the proxy chain of the account or, at the end of the chain, onto the
// witnesses the final account votes for
func (l *Ledger) AdjustProxiedWitnessVotes(name string, delta VoteDelta) {
	l.adjustProxiedVotes(name, delta, 0)
}

func (l *Ledger) adjustProxiedVotes(name string, delta VoteDelta, depth int) {
	a := l.MustGetAccount(name)
	if "" != a.Proxy {
		if depth >= constants.MaxProxyRecursionDepth {
			return
		}
		proxy := l.MustGetAccount(a.Proxy)
		for i := constants.MaxProxyRecursionDepth - depth - 1; i >= 0; i -= 1 {
			proxy.ProxiedVotes[i+depth] += delta[i]
		}
		l.PutAccount(proxy)
		l.adjustProxiedVotes(proxy.Name, delta, depth+1)
		return
	}

	total := int64(0)
	for i := constants.MaxProxyRecursionDepth - depth; i >= 0; i -= 1 {
		total += delta[i]
	}
	l.AdjustWitnessVotes(name, total)
}

// AdjustProxiedWitnessVote - a change in the own stake of the account
func (l *Ledger) AdjustProxiedWitnessVote(name string, delta int64) {
	l.adjustProxiedVote(name, delta, 0)
}

func (l *Ledger) adjustProxiedVote(name string, delta int64, depth int) {
	a := l.MustGetAccount(name)
	if "" != a.Proxy {
		if depth >= constants.MaxProxyRecursionDepth {
			return
		}
		proxy := l.MustGetAccount(a.Proxy)
		proxy.ProxiedVotes[depth] += delta
		l.PutAccount(proxy)
		l.adjustProxiedVote(proxy.Name, delta, depth+1)
		return
	}
	l.AdjustWitnessVotes(name, delta)
}

// AdjustWitnessVotes - apply a weight change to every witness the
// account votes for
func (l *Ledger) AdjustWitnessVotes(name string, delta int64) {
	if 0 == delta {
		return
	}
	for _, witness := range l.WitnessVotesOf(name) {
		l.AdjustWitnessVote(witness, delta)
	}
}

// AdjustWitnessVote - apply a weight change to one witness
func (l *Ledger) AdjustWitnessVote(witness string, delta int64) {
	w, ok := l.FindWitness(witness)
	if !ok {
		fault.Panicf("ledger: vote for missing witness: %q", witness)
	}
	w.Votes += delta
	l.PutWitness(w)
}

// ClearWitnessVotes - remove every vote of the account, the witness
// totals must already exclude its weight
func (l *Ledger) ClearWitnessVotes(name string) {
	for _, witness := range l.WitnessVotesOf(name) {
		l.DeleteWitnessVote(name, witness)
	}
	a := l.MustGetAccount(name)
	a.WitnessesVotedFor = 0
	l.PutAccount(a)
}
