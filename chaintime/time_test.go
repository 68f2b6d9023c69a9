// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaintime_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/witnessd/chaintime"
)

func TestText(t *testing.T) {
	c := chaintime.Time(1530000000)
	text, err := c.MarshalText()
	assert.Nil(t, err)
	assert.Equal(t, "2018-06-26T08:00:00", string(text))

	var d chaintime.Time
	assert.Nil(t, d.UnmarshalText(text))
	assert.Equal(t, c, d)

	assert.Nil(t, d.UnmarshalText([]byte("2018-06-26T08:00:00Z")))
	assert.Equal(t, c, d)

	assert.NotNil(t, d.UnmarshalText([]byte("yesterday")))
}

func TestJSON(t *testing.T) {
	v := struct {
		Expiration chaintime.Time `json:"expiration"`
	}{
		Expiration: chaintime.Time(86400),
	}
	buffer, err := json.Marshal(v)
	assert.Nil(t, err)
	assert.Equal(t, `{"expiration":"1970-01-02T00:00:00"}`, string(buffer))
}

func TestArithmetic(t *testing.T) {
	c := chaintime.Time(1000)
	assert.Equal(t, chaintime.Time(4600), c.Add(time.Hour))
	assert.Equal(t, chaintime.Minimum, c.Add(-time.Hour))
	assert.Equal(t, chaintime.Maximum, chaintime.Maximum.Add(time.Second))
	assert.Equal(t, time.Hour, c.Add(time.Hour).Sub(c))
	assert.True(t, c.Before(c.Add(time.Second)))
	assert.True(t, c.Add(time.Second).After(c))
	assert.Equal(t, c, chaintime.FromTime(c.Time()))
}
