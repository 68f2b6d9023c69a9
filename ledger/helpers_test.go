// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/chaintime"
)

func errorsCause(err error) error {
	return errors.Cause(err)
}

var chaintimeMax = chaintime.Maximum
