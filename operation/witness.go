// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/authority"
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/publickey"
)

// ChainProperties - the chain parameters a witness proposes
type ChainProperties struct {
	AccountCreationFee asset.Asset   `json:"account_creation_fee" cbor:"1,keyasint"`
	MaximumBlockSize   uint32        `json:"maximum_block_size" cbor:"2,keyasint"`
	PriceFeeds         []asset.Price `json:"price_feeds,omitempty" cbor:"3,keyasint,omitempty"`
}

// Validate - limits independent of chain state
func (p ChainProperties) Validate() error {
	if err := validateNonNegative("account_creation_fee", p.AccountCreationFee); nil != err {
		return err
	}
	if err := validateSymbol("account_creation_fee", p.AccountCreationFee, asset.Native); nil != err {
		return err
	}
	if p.MaximumBlockSize < constants.MinBlockSizeLimit {
		return fault.ErrBlockSizeTooSmall
	}
	if p.MaximumBlockSize > constants.MaxBlockSize {
		return fault.ErrBlockSizeTooLarge
	}
	for _, feed := range p.PriceFeeds {
		if err := feed.Validate(); nil != err {
			return errors.Wrap(err, "price_feeds")
		}
	}
	return nil
}

// WitnessUpdate - become a witness or change the witness settings
type WitnessUpdate struct {
	Owner           string              `json:"owner"`
	URL             string              `json:"url"`
	BlockSigningKey publickey.PublicKey `json:"block_signing_key"`
	Props           ChainProperties     `json:"props"`
	Fee             asset.Asset         `json:"fee"`
}

func (op *WitnessUpdate) Tag() TagType { return WitnessUpdateTag }

func (op *WitnessUpdate) Validate() error {
	if err := validateName("owner", op.Owner); nil != err {
		return err
	}
	if err := validateURL("url", op.URL, true); nil != err {
		return err
	}
	if err := validateNonNegative("fee", op.Fee); nil != err {
		return err
	}
	if err := validateSymbol("fee", op.Fee, asset.Native); nil != err {
		return err
	}
	return op.Props.Validate()
}

func (op *WitnessUpdate) required(r *Required) {
	r.Active = append(r.Active, op.Owner)
}

// WitnessStop - withdraw from block production by clearing the
// signing key
type WitnessStop struct {
	Owner string `json:"owner"`
}

func (op *WitnessStop) Tag() TagType { return WitnessStopTag }

func (op *WitnessStop) Validate() error {
	return validateName("owner", op.Owner)
}

func (op *WitnessStop) required(r *Required) {
	r.Active = append(r.Active, op.Owner)
}

// AccountWitnessVote - approve or remove approval of a witness
type AccountWitnessVote struct {
	Account string `json:"account"`
	Witness string `json:"witness"`
	Approve bool   `json:"approve"`
}

func (op *AccountWitnessVote) Tag() TagType { return AccountWitnessVoteTag }

func (op *AccountWitnessVote) Validate() error {
	if err := validateName("account", op.Account); nil != err {
		return err
	}
	return validateName("witness", op.Witness)
}

func (op *AccountWitnessVote) required(r *Required) {
	r.Active = append(r.Active, op.Account)
}

// AccountWitnessProxy - delegate witness voting, empty proxy clears
type AccountWitnessProxy struct {
	Account string `json:"account"`
	Proxy   string `json:"proxy"`
}

func (op *AccountWitnessProxy) Tag() TagType { return AccountWitnessProxyTag }

func (op *AccountWitnessProxy) Validate() error {
	if err := validateName("account", op.Account); nil != err {
		return err
	}
	if err := validateOptionalName("proxy", op.Proxy); nil != err {
		return err
	}
	if op.Proxy == op.Account {
		return fault.ErrProxyToSelf
	}
	return nil
}

func (op *AccountWitnessProxy) required(r *Required) {
	r.Active = append(r.Active, op.Account)
}

// FeedPublish - a witness reports an exchange rate
type FeedPublish struct {
	Publisher    string      `json:"publisher"`
	ExchangeRate asset.Price `json:"exchange_rate"`
}

func (op *FeedPublish) Tag() TagType { return FeedPublishTag }

func (op *FeedPublish) Validate() error {
	if err := validateName("publisher", op.Publisher); nil != err {
		return err
	}
	return op.ExchangeRate.Validate()
}

func (op *FeedPublish) required(r *Required) {
	r.Active = append(r.Active, op.Publisher)
}

// ReportOverProduction - no longer accepted
type ReportOverProduction struct {
	Reporter string `json:"reporter"`
}

func (op *ReportOverProduction) Tag() TagType { return ReportOverProductionTag }

func (op *ReportOverProduction) Validate() error {
	return validateName("reporter", op.Reporter)
}

func (op *ReportOverProduction) required(r *Required) {
	r.Active = append(r.Active, op.Reporter)
}

// for set properties the signature must come
// from the key named in the "key" property, a missing or undecodable
// key gives an authority that cannot be satisfied
func signingKeyAuthority(props WitnessProperties) authority.Authority {
	key, err := props.SigningKey()
	if nil != err {
		return authority.NullAccount()
	}
	return authority.NewKey(1, key, 1)
}
