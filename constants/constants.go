// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

import (
	"time"
)

// asset symbols and their precision
const (
	NativeSymbol   = "WIT"
	VestingSymbol  = "VESTS"
	AssetPrecision = 6
)

// text prefix of public keys
const (
	PublicKeyPrefix = "WIT"
)

// reserved account names
const (
	NullAccount      = "null"
	TemporaryAccount = "temp"
	InitAccount      = "initminer"
)

// account names
const (
	MinAccountNameLength = 3
	MaxAccountNameLength = 16
)

// size limits on free text fields
const (
	MaxUrlLength      = 2048
	MaxMemoLength     = 2048
	MaxMetadataLength = 8192
)

// vesting withdrawals are paid in equal parts over this many intervals
const (
	VestingWithdrawIntervals = 13
	VestingWithdrawInterval  = 7 * 24 * time.Hour
)

// owner authority changes
const (
	OwnerUpdateLimit                 = time.Hour
	OwnerAuthorityRecoveryPeriod     = 30 * 24 * time.Hour
	AccountRecoveryRequestExpiration = 24 * time.Hour
)

// witness voting
const (
	MaxProxyRecursionDepth = 4
	MaxAccountWitnessVotes = 30
	MaxWitnesses           = 21
)

// block size limits a witness may propose
const (
	MinBlockSizeLimit = 65536
	MaxBlockSize      = 65536 * 3 * 2000
)

// chain property defaults before any witness has proposed values
const (
	DefaultAccountCreationFee = 1000000
	DefaultMaximumBlockSize   = 131072
	DefaultWitnessVesting     = 250000 * 1000000
)

// time between blocks
const (
	BlockInterval = 3 * time.Second
)
