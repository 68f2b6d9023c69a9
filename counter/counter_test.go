// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/witnessd/counter"
)

func TestCounter(t *testing.T) {
	var c counter.Counter
	assert.True(t, c.IsZero())

	assert.Equal(t, uint64(1), c.Increment())
	assert.Equal(t, uint64(6), c.Add(5))
	assert.Equal(t, uint64(6), c.Uint64())
	assert.False(t, c.IsZero())
}

func TestCounterConcurrent(t *testing.T) {
	var c counter.Counter
	var wg sync.WaitGroup

	const workers = 8
	const increments = 1000
	for i := 0; i < workers; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j += 1 {
				c.Increment()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(workers*increments), c.Uint64())
}
