// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/storage"
)

// FindWitness - the witness or false
func (l *Ledger) FindWitness(owner string) (*Witness, bool) {
	w := &Witness{}
	if !l.get(l.pool.Witnesses, nameKey(owner), w) {
		return nil, false
	}
	return w, true
}

// GetWitness - the witness or a not found rejection
func (l *Ledger) GetWitness(owner string) (*Witness, error) {
	w, ok := l.FindWitness(owner)
	if !ok {
		return nil, errors.Wrapf(fault.ErrWitnessNotFound, "%q", owner)
	}
	return w, nil
}

// PutWitness - store the witness and its position in the ranking
func (l *Ledger) PutWitness(w *Witness) {
	if old, ok := l.FindWitness(w.Owner); ok {
		l.trx.Delete(l.pool.WitnessRank, rankKey(old.Votes, old.Owner))
	}
	l.putIndex(l.pool.WitnessRank, rankKey(w.Votes, w.Owner))
	l.put(l.pool.Witnesses, nameKey(w.Owner), w)
}

// most votes first, ties by name
func rankKey(votes int64, owner string) []byte {
	sortable := uint64(votes) ^ (1 << 63)
	return storage.NewKey().Uint64(^sortable).Name(owner).Bytes()
}

// RankedWitnesses - up to limit witness names in vote order, zero
// for all of them
func (l *Ledger) RankedWitnesses(limit int) []string {
	elements := l.trx.Range(l.pool.WitnessRank, nil)
	names := make([]string, 0, len(elements))
	for _, e := range elements {
		if limit > 0 && len(names) >= limit {
			break
		}
		r := storage.ReadKey(e.Key)
		r.Uint64()
		names = append(names, r.Name())
	}
	return names
}

// TopWitness - the witness with the most votes
func (l *Ledger) TopWitness() (string, bool) {
	e, ok := l.trx.First(l.pool.WitnessRank, nil)
	if !ok {
		return "", false
	}
	r := storage.ReadKey(e.Key)
	r.Uint64()
	return r.Name(), true
}

func voteKey(account string, witness string) []byte {
	return storage.NewKey().Name(account).Name(witness).Bytes()
}

// HasWitnessVote - true if account votes for witness
func (l *Ledger) HasWitnessVote(account string, witness string) bool {
	return l.trx.Has(l.pool.WitnessVotes, voteKey(account, witness))
}

// PutWitnessVote - record a vote
func (l *Ledger) PutWitnessVote(account string, witness string) {
	l.putIndex(l.pool.WitnessVotes, voteKey(account, witness))
}

// DeleteWitnessVote - remove a vote
func (l *Ledger) DeleteWitnessVote(account string, witness string) {
	l.trx.Delete(l.pool.WitnessVotes, voteKey(account, witness))
}

// WitnessVotesOf - the witnesses an account votes for, in name order
func (l *Ledger) WitnessVotesOf(account string) []string {
	elements := l.trx.Range(l.pool.WitnessVotes, nameKey(account))
	names := make([]string, 0, len(elements))
	for _, e := range elements {
		r := storage.ReadKey(e.Key)
		r.Name()
		names = append(names, r.Name())
	}
	return names
}
