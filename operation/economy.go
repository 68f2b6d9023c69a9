// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
)

// TransferFromPromotionPool - pay out of the promotion pool,
// authorised by the chain's initial account
type TransferFromPromotionPool struct {
	TransferTo string      `json:"transfer_to"`
	Amount     asset.Asset `json:"amount"`
}

func (op *TransferFromPromotionPool) Tag() TagType { return TransferFromPromotionTag }

func (op *TransferFromPromotionPool) Validate() error {
	if err := validateName("transfer_to", op.TransferTo); nil != err {
		return err
	}
	if err := validatePositive("amount", op.Amount); nil != err {
		return err
	}
	return validateSymbol("amount", op.Amount, asset.Native)
}

func (op *TransferFromPromotionPool) required(r *Required) {
	r.Active = append(r.Active, constants.InitAccount)
}

// SponsorFees - start or stop paying another account's fees; an empty
// sponsor lets the sponsored account end its sponsorship
type SponsorFees struct {
	Sponsor      string `json:"sponsor"`
	Sponsored    string `json:"sponsored"`
	IsSponsoring bool   `json:"is_sponsoring"`
}

func (op *SponsorFees) Tag() TagType { return SponsorFeesTag }

func (op *SponsorFees) Validate() error {
	if err := validateOptionalName("sponsor", op.Sponsor); nil != err {
		return err
	}
	if err := validateName("sponsored", op.Sponsored); nil != err {
		return err
	}
	if op.Sponsor == op.Sponsored {
		return fault.ErrInvalidOperation
	}
	return nil
}

func (op *SponsorFees) required(r *Required) {
	if "" == op.Sponsor {
		r.Active = append(r.Active, op.Sponsored)
	} else {
		r.Active = append(r.Active, op.Sponsor)
	}
}
