// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/bitmark-inc/witnessd/asset"
)

// PromotionPoolWithdraw - funds actually paid from the promotion pool
type PromotionPoolWithdraw struct {
	virtual
	ToAccount string      `json:"to_account"`
	Withdrawn asset.Asset `json:"withdrawn"`
}

func (op *PromotionPoolWithdraw) Tag() TagType { return PromotionPoolWithdrawTag }

// FillVestingWithdraw - one scheduled vesting withdrawal payment
type FillVestingWithdraw struct {
	virtual
	Account   string      `json:"account"`
	Withdrawn asset.Asset `json:"withdrawn"`
	Deposited asset.Asset `json:"deposited"`
}

func (op *FillVestingWithdraw) Tag() TagType { return FillVestingWithdrawTag }
