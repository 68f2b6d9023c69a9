// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package evaluator - apply operations to the ledger
//
// each operation is applied by Apply inside a nested ledger: either
// every change it makes is kept or, on rejection, none is
package evaluator

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/interpreter"
	"github.com/bitmark-inc/witnessd/ledger"
	"github.com/bitmark-inc/witnessd/operation"
)

// Context - everything an evaluator may use
type Context struct {
	Ledger    *ledger.Ledger
	Now       chaintime.Time
	HeadBlock uint64

	// live production: interpreter failures reject the operation
	Producing bool

	// test chains lift the owner update rate limit
	Testing bool

	Interpreters *interpreter.Registry
	Log          *logger.L

	virtuals []operation.Operation
}

// Emit - record a virtual operation
func (ctx *Context) Emit(op operation.Operation) {
	ctx.virtuals = append(ctx.virtuals, op)
}

// Virtuals - the virtual operations emitted so far, oldest first
func (ctx *Context) Virtuals() []operation.Operation {
	return ctx.virtuals
}

// a context over a nested ledger, emissions are kept apart until the
// nested ledger is committed
func (ctx *Context) child() *Context {
	return &Context{
		Ledger:       ctx.Ledger.Begin(),
		Now:          ctx.Now,
		HeadBlock:    ctx.HeadBlock,
		Producing:    ctx.Producing,
		Testing:      ctx.Testing,
		Interpreters: ctx.Interpreters,
		Log:          ctx.Log,
	}
}

func (ctx *Context) debugf(format string, arguments ...interface{}) {
	if nil != ctx.Log {
		ctx.Log.Debugf(format, arguments...)
	}
}

func (ctx *Context) warnf(format string, arguments ...interface{}) {
	if nil != ctx.Log {
		ctx.Log.Warnf(format, arguments...)
	}
}
