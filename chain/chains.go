// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Witness = "witness"
	Testing = "testing"
	Local   = "local"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Witness, Testing, Local:
		return true
	default:
		return false
	}
}

// IsTesting - chains on which the owner update rate limit is lifted
func IsTesting(name string) bool {
	switch name {
	case Testing, Local:
		return true
	default:
		return false
	}
}
