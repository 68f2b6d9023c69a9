// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared helpers for package tests
package fixtures

import (
	"bytes"
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/witnessd/publickey"
)

const (
	LogCategory = "testing"
)

var dir string

// SetupTestLogger - log to a temporary directory, critical messages only
func SetupTestLogger() {
	var err error
	dir, err = os.MkdirTemp("", "witnessd-test-")
	if nil != err {
		fmt.Println("create log dir with error: ", err)
		return
	}

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the files
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	if "" == dir {
		return
	}
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// PrivateKey - a deterministic signing key derived from a seed byte
func PrivateKey(seed byte) ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(bytes.Repeat([]byte{seed}, ed25519.SeedSize))
}

// PublicKey - the public half of PrivateKey(seed)
func PublicKey(seed byte) publickey.PublicKey {
	k, err := publickey.FromBytes(PrivateKey(seed).Public().(ed25519.PublicKey))
	if nil != err {
		panic(err)
	}
	return k
}
