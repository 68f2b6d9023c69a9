// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"

	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/counter"
	"github.com/bitmark-inc/witnessd/evaluator"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/interpreter"
	"github.com/bitmark-inc/witnessd/ledger"
	"github.com/bitmark-inc/witnessd/messagebus"
	"github.com/bitmark-inc/witnessd/storage"
)

// Statistics - counts since the processor was created
type Statistics struct {
	Blocks     counter.Counter
	Operations counter.Counter
	Rejected   counter.Counter
	Virtuals   counter.Counter
}

// Processor - applies blocks one at a time
type Processor struct {
	sync deadlock.Mutex

	log          *logger.L
	db           *storage.Database
	interpreters *interpreter.Registry
	testing      bool
	bus          *messagebus.BroadcastQueue

	Stats Statistics
}

// NewProcessor - a processor writing to db
//
// bus may be nil when nothing listens for virtual operations
func NewProcessor(db *storage.Database, interpreters *interpreter.Registry, testing bool, bus *messagebus.BroadcastQueue) *Processor {
	return &Processor{
		log:          logger.New("block"),
		db:           db,
		interpreters: interpreters,
		testing:      testing,
		bus:          bus,
	}
}

// Head - number and time of the last applied block
func (p *Processor) Head() (uint64, chaintime.Time, error) {
	trx, err := p.db.Begin()
	if nil != err {
		return 0, 0, err
	}
	defer trx.Abort()

	l := ledger.New(p.db, trx)
	if !l.IsInitialised() {
		return 0, 0, fault.ErrNotInitialised
	}
	props := l.Properties()
	return props.HeadBlockNumber, props.Time, nil
}

// Apply - apply every operation of the block in order then the per
// block maintenance
//
// any rejected operation rejects the whole block and leaves the
// ledger unchanged
func (p *Processor) Apply(b *Block, producing bool) error {
	p.sync.Lock()
	defer p.sync.Unlock()

	trx, err := p.db.Begin()
	if nil != err {
		return err
	}
	defer trx.Abort()

	l := ledger.New(p.db, trx)
	if !l.IsInitialised() {
		return fault.ErrNotInitialised
	}

	props := l.Properties()
	if props.HeadBlockNumber+1 != b.Number {
		return errors.Wrapf(fault.ErrBlockNumberMismatch, "block: %d head: %d", b.Number, props.HeadBlockNumber)
	}
	if !b.Timestamp.After(props.Time) {
		return errors.Wrapf(fault.ErrBlockTimeNotIncreasing, "block: %d time: %s head time: %s", b.Number, b.Timestamp, props.Time)
	}
	if !isScheduled(l, b.Witness) {
		return errors.Wrapf(fault.ErrNotScheduledWitness, "block: %d witness: %q", b.Number, b.Witness)
	}

	ctx := &evaluator.Context{
		Ledger:       l,
		Now:          b.Timestamp,
		HeadBlock:    b.Number,
		Producing:    producing,
		Testing:      p.testing,
		Interpreters: p.interpreters,
		Log:          p.log,
	}

	for i, tx := range b.Transactions {
		for j, envelope := range tx.Operations {
			if nil == envelope.Operation {
				return errors.Wrapf(fault.ErrInvalidOperation, "block: %d transaction: %d operation: %d is empty", b.Number, i, j)
			}
			if err := evaluator.Apply(ctx, envelope.Operation); nil != err {
				p.Stats.Rejected.Increment()
				p.log.Warnf("block: %d transaction: %d operation: %d rejected: %s", b.Number, i, j, err)
				return errors.Wrapf(err, "block: %d transaction: %d operation: %d", b.Number, i, j)
			}
		}
	}

	evaluator.Maintain(ctx)

	props = l.Properties()
	props.HeadBlockNumber = b.Number
	props.Time = b.Timestamp
	l.PutProperties(props)

	packed, err := b.Pack()
	if nil != err {
		return err
	}
	l.PutBlock(b.Number, packed)

	if err := trx.Commit(); nil != err {
		p.log.Criticalf("block: %d commit error: %s", b.Number, err)
		return err
	}

	virtuals := ctx.Virtuals()
	p.Stats.Blocks.Increment()
	p.Stats.Operations.Add(uint64(b.Operations()))
	p.Stats.Virtuals.Add(uint64(len(virtuals)))
	p.log.Debugf("applied block: %d operations: %d virtual: %d", b.Number, b.Operations(), len(virtuals))

	if nil != p.bus {
		for _, v := range virtuals {
			p.bus.Send(messagebus.CommandVirtual, b.Number, v)
		}
		p.bus.Send(messagebus.CommandBlockDone, b.Number, nil)
	}
	return nil
}

// only a producing witness of the current schedule may sign a block
func isScheduled(l *ledger.Ledger, name string) bool {
	w, ok := l.FindWitness(name)
	if !ok || w.Stopped {
		return false
	}
	for _, scheduled := range l.Schedule().CurrentWitnesses {
		if scheduled == name {
			return true
		}
	}
	return false
}
