// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/configuration"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/genesis"
	"github.com/bitmark-inc/witnessd/interpreter"
	"github.com/bitmark-inc/witnessd/ledger"
	"github.com/bitmark-inc/witnessd/publickey"
	"github.com/bitmark-inc/witnessd/storage"
)

// compile every configured content script
func loadInterpreters(log *logger.L, list []configuration.InterpreterType) (*interpreter.Registry, error) {
	registry := interpreter.NewRegistry()
	for _, item := range list {
		script, err := interpreter.NewLuaFromFile(item.Script)
		if nil != err {
			return nil, errors.Wrapf(err, "app: %d script: %q", item.AppID, item.Script)
		}
		if err := registry.Register(item.AppID, script); nil != err {
			return nil, errors.Wrapf(err, "app: %d registered twice", item.AppID)
		}
		log.Infof("app: %d interpreter: %q", item.AppID, item.Script)
	}
	return registry, nil
}

// write the genesis state into an empty database, an initialised
// database is left unchanged
func initialiseGenesis(log *logger.L, db *storage.Database, options *configuration.Configuration) error {
	trx, err := db.Begin()
	if nil != err {
		return err
	}
	defer trx.Abort()

	l := ledger.New(db, trx)
	if l.IsInitialised() {
		log.Info("ledger already initialised")
		return nil
	}

	if "" == options.InitPublicKey {
		return errors.Wrap(fault.ErrInvalidPublicKey, "init_public_key is required for an empty database")
	}
	initKey, err := publickey.FromString(options.InitPublicKey)
	if nil != err {
		return err
	}

	d, err := genesis.ForChain(options.Chain, initKey)
	if nil != err {
		return err
	}
	if err := genesis.Apply(l, d); nil != err {
		return err
	}
	if err := trx.Commit(); nil != err {
		return err
	}

	log.Infof("genesis: chain: %s supply: %d init key: %s", options.Chain, d.InitSupply, initKey)
	return nil
}
