// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaintime - second resolution chain timestamps
package chaintime

import (
	"math"
	"strings"
	"time"

	"github.com/bitmark-inc/witnessd/fault"
)

// text layout, always UTC
const layout = "2006-01-02T15:04:05"

// Time - seconds since the unix epoch
type Time uint32

// sentinels
const (
	Minimum Time = 0
	Maximum Time = math.MaxUint32
)

// FromTime - truncate a wall clock time
func FromTime(t time.Time) Time {
	s := t.Unix()
	if s < 0 {
		return Minimum
	}
	if s > int64(Maximum) {
		return Maximum
	}
	return Time(s)
}

// Time - convert to a wall clock time
func (t Time) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// Add - saturating addition of a duration
func (t Time) Add(d time.Duration) Time {
	s := int64(t) + int64(d/time.Second)
	if s < 0 {
		return Minimum
	}
	if s > int64(Maximum) {
		return Maximum
	}
	return Time(s)
}

// Sub - the duration between two times
func (t Time) Sub(u Time) time.Duration {
	return time.Duration(int64(t)-int64(u)) * time.Second
}

// Before - ordering
func (t Time) Before(u Time) bool {
	return t < u
}

// After - ordering
func (t Time) After(u Time) bool {
	return t > u
}

// String - UTC text form
func (t Time) String() string {
	return t.Time().Format(layout)
}

// MarshalText - convert to text
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText - parse the UTC text form, an optional trailing Z is accepted
func (t *Time) UnmarshalText(s []byte) error {
	v, err := time.Parse(layout, strings.TrimSuffix(string(s), "Z"))
	if nil != err {
		return fault.ErrInvalidOperation
	}
	u := v.Unix()
	if u < 0 || u > int64(Maximum) {
		return fault.ErrInvalidOperation
	}
	*t = Time(u)
	return nil
}
