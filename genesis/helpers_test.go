// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package genesis_test

import (
	"github.com/pkg/errors"
)

func errorsCause(err error) error {
	return errors.Cause(err)
}
