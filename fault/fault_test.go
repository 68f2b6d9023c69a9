// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/witnessd/fault"
)

var (
	ErrExistsOne   = fault.ExistsError("exists one")
	ErrInvalidOne  = fault.InvalidError("invalid one")
	ErrNotFoundOne = fault.NotFoundError("not found one")
	ErrProcessOne  = fault.ProcessError("process one")
)

// test that the error classes are distinguished, including through wrapping
func TestClasses(t *testing.T) {
	errorList := []struct {
		err      error
		exists   bool
		invalid  bool
		notFound bool
		process  bool
	}{
		{ErrExistsOne, true, false, false, false},
		{ErrInvalidOne, false, true, false, false},
		{ErrNotFoundOne, false, false, true, false},
		{ErrProcessOne, false, false, false, true},
		{errors.Wrap(ErrInvalidOne, "context"), false, true, false, false},
		{errors.Wrapf(fault.ErrUnknownAccount, "account: %q", "alice"), false, false, true, false},
		{errors.Wrap(errors.Wrap(fault.ErrEscrowExists, "inner"), "outer"), true, false, false, false},
		{errors.New("plain"), false, false, false, false},
	}

	for i, item := range errorList {
		assert.Equal(t, item.exists, fault.IsErrExists(item.err), "%d: exists: %v", i, item.err)
		assert.Equal(t, item.invalid, fault.IsErrInvalid(item.err), "%d: invalid: %v", i, item.err)
		assert.Equal(t, item.notFound, fault.IsErrNotFound(item.err), "%d: not found: %v", i, item.err)
		assert.Equal(t, item.process, fault.IsErrProcess(item.err), "%d: process: %v", i, item.err)
	}
}

func TestErrorText(t *testing.T) {
	err := errors.Wrap(fault.ErrRecentAuthorityNotFound, "recover_account")
	assert.Equal(t, "recover_account: recent authority not found in authority history", err.Error())
	assert.Equal(t, fault.ErrRecentAuthorityNotFound, errors.Cause(err))
}

func TestPanicIfError(t *testing.T) {
	assert.NotPanics(t, func() { fault.PanicIfError("nothing", nil) })
	assert.Panics(t, func() { fault.PanicIfError("something", fault.ErrDatabaseIsNotSet) })
}
