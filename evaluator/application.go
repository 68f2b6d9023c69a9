// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evaluator

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/ledger"
	"github.com/bitmark-inc/witnessd/operation"
)

func applicationCreate(ctx *Context, op *operation.ApplicationCreate) error {
	l := ctx.Ledger

	if !l.AccountExists(op.Author) {
		return errors.Wrapf(fault.ErrUnknownAccount, "author: %q", op.Author)
	}
	if l.ApplicationNameExists(op.Name) {
		return errors.Wrapf(fault.ErrApplicationExists, "%q", op.Name)
	}

	l.CreateApplication(&ledger.Application{
		Name:       op.Name,
		Author:     op.Author,
		URL:        op.URL,
		Metadata:   op.Metadata,
		PriceParam: op.PriceParam,
	})
	return nil
}

// the application of name, which author must have created
func authoredApplication(l *ledger.Ledger, name string, author string) (*ledger.Application, error) {
	app, err := l.GetApplicationByName(name)
	if nil != err {
		return nil, err
	}
	if app.Author != author {
		return nil, errors.Wrapf(fault.ErrNotApplicationAuthor, "application: %q author: %q", name, app.Author)
	}
	return app, nil
}

func applicationUpdate(ctx *Context, op *operation.ApplicationUpdate) error {
	l := ctx.Ledger

	app, err := authoredApplication(l, op.Name, op.Author)
	if nil != err {
		return err
	}

	if "" != op.NewAuthor {
		if !l.AccountExists(op.NewAuthor) {
			return errors.Wrapf(fault.ErrUnknownAccount, "new author: %q", op.NewAuthor)
		}
		app.Author = op.NewAuthor
	}
	if nil != op.PriceParam {
		app.PriceParam = *op.PriceParam
	}
	if "" != op.URL {
		app.URL = op.URL
	}
	if "" != op.Metadata {
		app.Metadata = op.Metadata
	}
	l.PutApplication(app)
	return nil
}

func applicationDelete(ctx *Context, op *operation.ApplicationDelete) error {
	l := ctx.Ledger

	app, err := authoredApplication(l, op.Name, op.Author)
	if nil != err {
		return err
	}
	n := l.DeleteApplication(app)
	ctx.debugf("deleted application: %q with: %d buyings", app.Name, n)
	return nil
}

func buyApplication(ctx *Context, op *operation.BuyApplication) error {
	l := ctx.Ledger

	if !l.AccountExists(op.Buyer) {
		return errors.Wrapf(fault.ErrUnknownAccount, "buyer: %q", op.Buyer)
	}
	if _, err := l.GetApplication(op.AppID); nil != err {
		return err
	}
	if _, found := l.FindApplicationBuying(op.AppID, op.Buyer); found {
		return errors.Wrapf(fault.ErrApplicationBuyingExists, "app: %d buyer: %q", op.AppID, op.Buyer)
	}

	l.PutApplicationBuying(&ledger.ApplicationBuying{
		AppID:   op.AppID,
		Buyer:   op.Buyer,
		Created: ctx.Now,
	})
	return nil
}

func cancelApplicationBuying(ctx *Context, op *operation.CancelApplicationBuying) error {
	l := ctx.Ledger

	app, err := l.GetApplication(op.AppID)
	if nil != err {
		return err
	}
	if app.Author != op.AppOwner {
		return errors.Wrapf(fault.ErrNotApplicationAuthor, "app: %d author: %q", op.AppID, app.Author)
	}
	if _, found := l.FindApplicationBuying(op.AppID, op.Buyer); !found {
		return errors.Wrapf(fault.ErrApplicationBuyingNotFound, "app: %d buyer: %q", op.AppID, op.Buyer)
	}
	l.DeleteApplicationBuying(op.AppID, op.Buyer)
	return nil
}
