// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/witnessd/chain"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/fixtures"
	"github.com/bitmark-inc/witnessd/mode"
)

func TestModeLifecycle(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	assert.Equal(t, fault.ErrNotInitialised, mode.Finalise())
	assert.Equal(t, fault.ErrInvalidChain, mode.Initialise("no-such-chain"))

	assert.Nil(t, mode.Initialise(chain.Testing))
	assert.Equal(t, fault.ErrAlreadyInitialised, mode.Initialise(chain.Testing))

	assert.True(t, mode.Is(mode.Replay))
	assert.False(t, mode.IsProducing())
	assert.True(t, mode.IsTesting())
	assert.Equal(t, chain.Testing, mode.ChainName())

	mode.Set(mode.Producing)
	assert.True(t, mode.IsProducing())
	assert.Equal(t, "Producing", mode.String())

	// out of range is ignored
	mode.Set(mode.Mode(99))
	assert.True(t, mode.IsProducing())

	assert.Nil(t, mode.Finalise())
	assert.True(t, mode.Is(mode.Stopped))
	assert.Equal(t, "*Unknown*", mode.Mode(99).String())
}
