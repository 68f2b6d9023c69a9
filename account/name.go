// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - rules for account names
//
// a name is a dot separated list of segments, each segment at least
// three characters, starting with a letter, ending with a letter or
// digit and otherwise containing only lower case letters, digits and
// single dashes
package account

import (
	"strings"

	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
)

// IsValidName - check the syntax of an account name
func IsValidName(name string) bool {
	if len(name) < constants.MinAccountNameLength || len(name) > constants.MaxAccountNameLength {
		return false
	}
	for _, segment := range strings.Split(name, ".") {
		if !validSegment(segment) {
			return false
		}
	}
	return true
}

// ValidateName - as IsValidName but returning the error for rejection
func ValidateName(name string) error {
	if !IsValidName(name) {
		return fault.ErrInvalidAccountName
	}
	return nil
}

func validSegment(s string) bool {
	if len(s) < constants.MinAccountNameLength {
		return false
	}
	if !isLower(s[0]) {
		return false
	}
	last := s[len(s)-1]
	if !isLower(last) && !isDigit(last) {
		return false
	}
	for i := 1; i < len(s)-1; i += 1 {
		c := s[i]
		switch {
		case isLower(c), isDigit(c):
		case '-' == c:
			if '-' == s[i-1] {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
