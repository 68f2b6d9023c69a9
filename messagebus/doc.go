// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - queues carrying the virtual operations and
// block notifications produced by applying blocks to the ledger
package messagebus
