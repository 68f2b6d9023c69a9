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
	"github.com/bitmark-inc/witnessd/publickey"
)

func witnessUpdate(ctx *Context, op *operation.WitnessUpdate) error {
	l := ctx.Ledger

	a, err := l.GetAccount(op.Owner)
	if nil != err {
		return err
	}

	required := l.Properties().WitnessRequiredVesting
	if a.VestingShares < required {
		return errors.Wrapf(fault.ErrInsufficientWitnessStake, "account: %q has: %s requires: %s",
			op.Owner, asset.VestingAmount(a.VestingShares), asset.VestingAmount(required))
	}

	w, found := l.FindWitness(op.Owner)
	if !found {
		w = &ledger.Witness{
			Owner:   op.Owner,
			Created: ctx.Now,
		}
	}

	if err := l.PayFee(op.Owner, op.Fee.Amount); nil != err {
		return err
	}

	w.URL = op.URL
	w.SetSigningKey(op.BlockSigningKey)
	w.Props = op.Props
	w.Props.PriceFeeds = nil

	// a new witness records no feeds
	if found {
		for _, rate := range op.Props.PriceFeeds {
			w.SetFeed(rate, ctx.Now)
		}
	}
	l.PutWitness(w)
	return nil
}

// stopping a non-witness changes nothing
func witnessStop(ctx *Context, op *operation.WitnessStop) error {
	l := ctx.Ledger

	w, found := l.FindWitness(op.Owner)
	if !found {
		return nil
	}
	w.SetSigningKey(publickey.Null)
	l.PutWitness(w)
	return nil
}

// every property is decoded before any is applied
func witnessSetProperties(ctx *Context, op *operation.WitnessSetProperties) error {
	l := ctx.Ledger

	w, err := l.GetWitness(op.Owner)
	if nil != err {
		return err
	}

	key, err := op.Props.SigningKey()
	if nil != err {
		return err
	}
	if key != w.SigningKey {
		return errors.Wrapf(fault.ErrSigningKeyMismatch, "witness: %q", op.Owner)
	}

	fee, hasFee, err := op.Props.AccountCreationFee()
	if nil != err {
		return err
	}
	size, hasSize, err := op.Props.MaximumBlockSize()
	if nil != err {
		return err
	}
	newKey, hasNewKey, err := op.Props.NewSigningKey()
	if nil != err {
		return err
	}
	rates, _, err := op.Props.ExchangeRates()
	if nil != err {
		return err
	}
	url, hasURL, err := op.Props.URL()
	if nil != err {
		return err
	}

	if hasFee {
		w.Props.AccountCreationFee = fee
	}
	if hasSize {
		w.Props.MaximumBlockSize = size
	}
	if hasNewKey {
		w.SetSigningKey(newKey)
	}
	for _, rate := range rates {
		w.SetFeed(rate, ctx.Now)
	}
	if hasURL {
		w.URL = url
	}
	l.PutWitness(w)
	return nil
}

func feedPublish(ctx *Context, op *operation.FeedPublish) error {
	l := ctx.Ledger

	w, err := l.GetWitness(op.Publisher)
	if nil != err {
		return err
	}
	w.SetFeed(op.ExchangeRate, ctx.Now)
	l.PutWitness(w)
	return nil
}
