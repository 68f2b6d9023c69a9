// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/urfave/cli"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/witnessd/authority"
	"github.com/bitmark-inc/witnessd/publickey"
)

type keyPairDisplay struct {
	PublicKey  publickey.PublicKey `json:"public_key"`
	PrivateKey string              `json:"private_key"`
	Authority  authority.Authority `json:"authority"`
}

func runKeyPair(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	public, private, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return err
	}

	key, err := publickey.FromBytes(public)
	if nil != err {
		return err
	}

	output := keyPairDisplay{
		PublicKey:  key,
		PrivateKey: hex.EncodeToString(private.Seed()),
		Authority:  authority.NewKey(1, key, 1),
	}
	return printJson(m.w, output)
}
