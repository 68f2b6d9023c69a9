// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/authority"
	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/operation"
	"github.com/bitmark-inc/witnessd/publickey"
)

// ProxiedVotes - weight proxied to an account, one slot per level of
// proxy indirection
type ProxiedVotes [constants.MaxProxyRecursionDepth]int64

// Total - sum over all levels
func (p ProxiedVotes) Total() int64 {
	total := int64(0)
	for _, v := range p {
		total += v
	}
	return total
}

// Account - balances, voting and recovery state of a named account
type Account struct {
	Name         string              `cbor:"1,keyasint"`
	MemoKey      publickey.PublicKey `cbor:"2,keyasint"`
	JSONMetadata string              `cbor:"3,keyasint,omitempty"`
	Created      chaintime.Time      `cbor:"4,keyasint"`

	Balance       int64 `cbor:"5,keyasint"`
	VestingShares int64 `cbor:"6,keyasint"`

	VestingWithdrawRate   int64          `cbor:"7,keyasint"`
	NextVestingWithdrawal chaintime.Time `cbor:"8,keyasint"`
	ToWithdraw            int64          `cbor:"9,keyasint"`
	Withdrawn             int64          `cbor:"10,keyasint"`

	Proxy             string       `cbor:"11,keyasint,omitempty"`
	ProxiedVotes      ProxiedVotes `cbor:"12,keyasint"`
	WitnessesVotedFor uint16       `cbor:"13,keyasint"`

	RecoveryAccount     string         `cbor:"14,keyasint,omitempty"`
	LastAccountRecovery chaintime.Time `cbor:"15,keyasint"`
}

// WitnessVoteWeight - own stake plus everything proxied to it
func (a *Account) WitnessVoteWeight() int64 {
	return a.VestingShares + a.ProxiedVotes.Total()
}

// IsWithdrawing - a vesting withdrawal schedule is active
func (a *Account) IsWithdrawing() bool {
	return 0 != a.VestingWithdrawRate
}

// AccountAuthority - the owner and active authorities of an account
type AccountAuthority struct {
	Account         string              `cbor:"1,keyasint"`
	Owner           authority.Authority `cbor:"2,keyasint"`
	Active          authority.Authority `cbor:"3,keyasint"`
	LastOwnerUpdate chaintime.Time      `cbor:"4,keyasint"`
}

// OwnerHistory - an owner authority that was replaced
type OwnerHistory struct {
	Account                string              `cbor:"1,keyasint"`
	Sequence               uint64              `cbor:"2,keyasint"`
	PreviousOwnerAuthority authority.Authority `cbor:"3,keyasint"`
	LastValidTime          chaintime.Time      `cbor:"4,keyasint"`
}

// Feed - most recent exchange rate published by a witness
type Feed struct {
	Rate    asset.Price    `cbor:"1,keyasint"`
	Updated chaintime.Time `cbor:"2,keyasint"`
}

// Witness - a block producer candidate
type Witness struct {
	Owner      string                    `cbor:"1,keyasint"`
	Created    chaintime.Time            `cbor:"2,keyasint"`
	URL        string                    `cbor:"3,keyasint"`
	SigningKey publickey.PublicKey       `cbor:"4,keyasint"`
	Props      operation.ChainProperties `cbor:"5,keyasint"`
	Feeds      map[asset.Symbol]Feed     `cbor:"6,keyasint,omitempty"`
	Votes      int64                     `cbor:"7,keyasint"`
	Stopped    bool                      `cbor:"8,keyasint"`
}

// SetFeed - record a normalised rate under its quote symbol
func (w *Witness) SetFeed(rate asset.Price, now chaintime.Time) {
	rate = rate.Normalised()
	if nil == w.Feeds {
		w.Feeds = make(map[asset.Symbol]Feed)
	}
	w.Feeds[rate.Quote.Symbol] = Feed{
		Rate:    rate,
		Updated: now,
	}
}

// SetSigningKey - a null key withdraws the witness from production
func (w *Witness) SetSigningKey(key publickey.PublicKey) {
	w.SigningKey = key
	w.Stopped = key.IsNull()
}

// Escrow - funds held for a receiver subject to an agent
type Escrow struct {
	From                 string         `cbor:"1,keyasint"`
	To                   string         `cbor:"2,keyasint"`
	Agent                string         `cbor:"3,keyasint"`
	EscrowID             uint32         `cbor:"4,keyasint"`
	Balance              int64          `cbor:"5,keyasint"`
	PendingFee           int64          `cbor:"6,keyasint"`
	RatificationDeadline chaintime.Time `cbor:"7,keyasint"`
	EscrowExpiration     chaintime.Time `cbor:"8,keyasint"`
	ToApproved           bool           `cbor:"9,keyasint"`
	AgentApproved        bool           `cbor:"10,keyasint"`
	Disputed             bool           `cbor:"11,keyasint"`
}

// IsApproved - both the receiver and the agent have approved
func (e *Escrow) IsApproved() bool {
	return e.ToApproved && e.AgentApproved
}

// RecoveryRequest - a proposed owner authority awaiting recovery
type RecoveryRequest struct {
	AccountToRecover  string              `cbor:"1,keyasint"`
	NewOwnerAuthority authority.Authority `cbor:"2,keyasint"`
	Expires           chaintime.Time      `cbor:"3,keyasint"`
}

// ChangeRecoveryRequest - a pending change of recovery account
type ChangeRecoveryRequest struct {
	AccountToRecover string         `cbor:"1,keyasint"`
	RecoveryAccount  string         `cbor:"2,keyasint"`
	EffectiveOn      chaintime.Time `cbor:"3,keyasint"`
}

// Content - one recipient's copy of custom application content
type Content struct {
	ID                uint64         `cbor:"1,keyasint"`
	Sender            string         `cbor:"2,keyasint"`
	Recipient         string         `cbor:"3,keyasint"`
	AppID             uint64         `cbor:"4,keyasint"`
	SenderSequence    uint64         `cbor:"5,keyasint"`
	RecipientSequence uint64         `cbor:"6,keyasint"`
	JSON              string         `cbor:"7,keyasint,omitempty"`
	Binary            []byte         `cbor:"8,keyasint,omitempty"`
	Received          chaintime.Time `cbor:"9,keyasint"`
}

// Application - a registered application
type Application struct {
	ID         uint64               `cbor:"1,keyasint"`
	Name       string               `cbor:"2,keyasint"`
	Author     string               `cbor:"3,keyasint"`
	URL        string               `cbor:"4,keyasint,omitempty"`
	Metadata   string               `cbor:"5,keyasint,omitempty"`
	PriceParam operation.PriceParam `cbor:"6,keyasint"`
}

// ApplicationBuying - an account that bought an application
type ApplicationBuying struct {
	AppID   uint64         `cbor:"1,keyasint"`
	Buyer   string         `cbor:"2,keyasint"`
	Created chaintime.Time `cbor:"3,keyasint"`
}

// Properties - chain wide totals and the head block
type Properties struct {
	HeadBlockNumber        uint64         `cbor:"1,keyasint"`
	Time                   chaintime.Time `cbor:"2,keyasint"`
	CurrentSupply          int64          `cbor:"3,keyasint"`
	TotalVestingFund       int64          `cbor:"4,keyasint"`
	TotalVestingShares     int64          `cbor:"5,keyasint"`
	WitnessRequiredVesting int64          `cbor:"6,keyasint"`
}

// Economics - pools outside any account
type Economics struct {
	PromotionPool  int64 `cbor:"1,keyasint"`
	PendingRewards int64 `cbor:"2,keyasint"`
}

// Schedule - the chain properties agreed by the top witnesses
type Schedule struct {
	MedianProps      operation.ChainProperties `cbor:"1,keyasint"`
	CurrentWitnesses []string                  `cbor:"2,keyasint,omitempty"`
}
