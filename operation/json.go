// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/fault"
)

// Envelope - JSON form of an operation: ["name", {fields}]
type Envelope struct {
	Operation Operation
}

// New - an empty operation of the given type
func New(tag TagType) (Operation, error) {
	switch tag {
	case AccountCreateTag:
		return &AccountCreate{}, nil
	case AccountUpdateTag:
		return &AccountUpdate{}, nil
	case AccountDeleteTag:
		return &AccountDelete{}, nil
	case TransferTag:
		return &Transfer{}, nil
	case TransferToVestingTag:
		return &TransferToVesting{}, nil
	case WithdrawVestingTag:
		return &WithdrawVesting{}, nil
	case WitnessUpdateTag:
		return &WitnessUpdate{}, nil
	case WitnessStopTag:
		return &WitnessStop{}, nil
	case WitnessSetPropertiesTag:
		return &WitnessSetProperties{}, nil
	case AccountWitnessVoteTag:
		return &AccountWitnessVote{}, nil
	case AccountWitnessProxyTag:
		return &AccountWitnessProxy{}, nil
	case FeedPublishTag:
		return &FeedPublish{}, nil
	case ReportOverProductionTag:
		return &ReportOverProduction{}, nil
	case EscrowTransferTag:
		return &EscrowTransfer{}, nil
	case EscrowApproveTag:
		return &EscrowApprove{}, nil
	case EscrowDisputeTag:
		return &EscrowDispute{}, nil
	case EscrowReleaseTag:
		return &EscrowRelease{}, nil
	case CustomTag:
		return &Custom{}, nil
	case CustomJSONTag:
		return &CustomJSON{}, nil
	case CustomBinaryTag:
		return &CustomBinary{}, nil
	case RequestAccountRecoveryTag:
		return &RequestAccountRecovery{}, nil
	case RecoverAccountTag:
		return &RecoverAccount{}, nil
	case ChangeRecoveryAccountTag:
		return &ChangeRecoveryAccount{}, nil
	case ResetAccountTag:
		return &ResetAccount{}, nil
	case SetResetAccountTag:
		return &SetResetAccount{}, nil
	case ApplicationCreateTag:
		return &ApplicationCreate{}, nil
	case ApplicationUpdateTag:
		return &ApplicationUpdate{}, nil
	case ApplicationDeleteTag:
		return &ApplicationDelete{}, nil
	case BuyApplicationTag:
		return &BuyApplication{}, nil
	case CancelApplicationBuyingTag:
		return &CancelApplicationBuying{}, nil
	case TransferFromPromotionTag:
		return &TransferFromPromotionPool{}, nil
	case SponsorFeesTag:
		return &SponsorFees{}, nil
	case PromotionPoolWithdrawTag:
		return &PromotionPoolWithdraw{}, nil
	case FillVestingWithdrawTag:
		return &FillVestingWithdraw{}, nil
	default:
		return nil, fault.ErrInvalidOperation
	}
}

// TagFromName - reverse of RecordName
func TagFromName(name string) (TagType, bool) {
	for tag, n := range names {
		if n == name {
			return tag, true
		}
	}
	return NullTag, false
}

// MarshalJSON - two element array of name and body
func (e Envelope) MarshalJSON() ([]byte, error) {
	if nil == e.Operation {
		return nil, fault.ErrInvalidOperation
	}
	return json.Marshal([]interface{}{e.Operation.Tag().RecordName(), e.Operation})
}

// UnmarshalJSON - decode by looking up the name
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); nil != err {
		return errors.Wrap(fault.ErrInvalidOperation, err.Error())
	}
	if 2 != len(parts) {
		return errors.Wrap(fault.ErrInvalidOperation, "expected [name, body]")
	}
	var name string
	if err := json.Unmarshal(parts[0], &name); nil != err {
		return errors.Wrap(fault.ErrInvalidOperation, err.Error())
	}
	tag, ok := TagFromName(name)
	if !ok {
		return errors.Wrapf(fault.ErrInvalidOperation, "unknown operation: %q", name)
	}
	op, err := New(tag)
	if nil != err {
		return err
	}
	if err := json.Unmarshal(parts[1], op); nil != err {
		return errors.Wrapf(fault.ErrInvalidOperation, "%s: %v", name, err)
	}
	e.Operation = op
	return nil
}
