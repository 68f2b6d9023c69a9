// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package operation - the closed set of ledger operations
//
// signed operations arrive from validated transactions; virtual
// operations are emitted by the evaluators as a record of side effects
package operation

import (
	"golang.org/x/exp/slices"

	"github.com/bitmark-inc/witnessd/authority"
)

// TagType - type code for operations
type TagType uint64

// enumerate the possible operation types
// the order is part of the wire format, append only
const (
	// null marks beginning of list - not used as an operation type
	NullTag = TagType(iota)

	AccountCreateTag           = TagType(iota)
	AccountUpdateTag           = TagType(iota)
	AccountDeleteTag           = TagType(iota)
	TransferTag                = TagType(iota)
	TransferToVestingTag       = TagType(iota)
	WithdrawVestingTag         = TagType(iota)
	WitnessUpdateTag           = TagType(iota)
	WitnessStopTag             = TagType(iota)
	WitnessSetPropertiesTag    = TagType(iota)
	AccountWitnessVoteTag      = TagType(iota)
	AccountWitnessProxyTag     = TagType(iota)
	FeedPublishTag             = TagType(iota)
	ReportOverProductionTag    = TagType(iota) // disabled
	EscrowTransferTag          = TagType(iota)
	EscrowApproveTag           = TagType(iota)
	EscrowDisputeTag           = TagType(iota)
	EscrowReleaseTag           = TagType(iota)
	CustomTag                  = TagType(iota)
	CustomJSONTag              = TagType(iota)
	CustomBinaryTag            = TagType(iota)
	RequestAccountRecoveryTag  = TagType(iota)
	RecoverAccountTag          = TagType(iota)
	ChangeRecoveryAccountTag   = TagType(iota)
	ResetAccountTag            = TagType(iota) // disabled
	SetResetAccountTag         = TagType(iota) // disabled
	ApplicationCreateTag       = TagType(iota)
	ApplicationUpdateTag       = TagType(iota)
	ApplicationDeleteTag       = TagType(iota)
	BuyApplicationTag          = TagType(iota)
	CancelApplicationBuyingTag = TagType(iota)
	TransferFromPromotionTag   = TagType(iota)
	SponsorFeesTag             = TagType(iota)

	// virtual operations
	PromotionPoolWithdrawTag = TagType(iota)
	FillVestingWithdrawTag   = TagType(iota)

	// this item must be last
	InvalidTag = TagType(iota)
)

// first of the virtual operations
const firstVirtualTag = PromotionPoolWithdrawTag

var names = map[TagType]string{
	AccountCreateTag:           "account_create",
	AccountUpdateTag:           "account_update",
	AccountDeleteTag:           "account_delete",
	TransferTag:                "transfer",
	TransferToVestingTag:       "transfer_to_vesting",
	WithdrawVestingTag:         "withdraw_vesting",
	WitnessUpdateTag:           "witness_update",
	WitnessStopTag:             "witness_stop",
	WitnessSetPropertiesTag:    "witness_set_properties",
	AccountWitnessVoteTag:      "account_witness_vote",
	AccountWitnessProxyTag:     "account_witness_proxy",
	FeedPublishTag:             "feed_publish",
	ReportOverProductionTag:    "report_over_production",
	EscrowTransferTag:          "escrow_transfer",
	EscrowApproveTag:           "escrow_approve",
	EscrowDisputeTag:           "escrow_dispute",
	EscrowReleaseTag:           "escrow_release",
	CustomTag:                  "custom",
	CustomJSONTag:              "custom_json",
	CustomBinaryTag:            "custom_binary",
	RequestAccountRecoveryTag:  "request_account_recovery",
	RecoverAccountTag:          "recover_account",
	ChangeRecoveryAccountTag:   "change_recovery_account",
	ResetAccountTag:            "reset_account",
	SetResetAccountTag:         "set_reset_account",
	ApplicationCreateTag:       "application_create",
	ApplicationUpdateTag:       "application_update",
	ApplicationDeleteTag:       "application_delete",
	BuyApplicationTag:          "buy_application",
	CancelApplicationBuyingTag: "cancel_application_buying",
	TransferFromPromotionTag:   "transfer_from_promotion_pool",
	SponsorFeesTag:             "sponsor_fees",
	PromotionPoolWithdrawTag:   "promotion_pool_withdraw",
	FillVestingWithdrawTag:     "fill_vesting_withdraw",
}

// RecordName - name of an operation type, empty if not valid
func (t TagType) RecordName() string {
	return names[t]
}

// String - name or a placeholder
func (t TagType) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return "*unknown*"
}

// IsVirtual - emitted by evaluators, never submitted
func (t TagType) IsVirtual() bool {
	return t >= firstVirtualTag && t < InvalidTag
}

// Operation - common interface of all operations
type Operation interface {
	Tag() TagType
	Validate() error
	required(r *Required)
}

// Required - the authorities that must have signed an operation
type Required struct {
	Active  []string
	Owner   []string
	Posting []string
	Other   []authority.Authority
}

// RequiredAuthorities - the authorities the signature layer must check
// before an operation is evaluated; names are sorted and unique
func RequiredAuthorities(op Operation) Required {
	r := Required{}
	op.required(&r)
	r.Active = sortUnique(r.Active)
	r.Owner = sortUnique(r.Owner)
	r.Posting = sortUnique(r.Posting)
	return r
}

func sortUnique(names []string) []string {
	if 0 == len(names) {
		return nil
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// virtual operations require nothing and are always valid
type virtual struct{}

func (virtual) Validate() error      { return nil }
func (virtual) required(r *Required) {}
