// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/authority"
	"github.com/bitmark-inc/witnessd/fault"
)

// RequestAccountRecovery - the recovery account proposes a new owner
// authority; a zero threshold cancels a pending request
type RequestAccountRecovery struct {
	RecoveryAccount   string              `json:"recovery_account"`
	AccountToRecover  string              `json:"account_to_recover"`
	NewOwnerAuthority authority.Authority `json:"new_owner_authority"`
}

func (op *RequestAccountRecovery) Tag() TagType { return RequestAccountRecoveryTag }

func (op *RequestAccountRecovery) Validate() error {
	if err := validateName("recovery_account", op.RecoveryAccount); nil != err {
		return err
	}
	if err := validateName("account_to_recover", op.AccountToRecover); nil != err {
		return err
	}
	return validateAuthority("new_owner_authority", op.NewOwnerAuthority)
}

func (op *RequestAccountRecovery) required(r *Required) {
	r.Active = append(r.Active, op.RecoveryAccount)
}

// RecoverAccount - complete a recovery request, proving control of
// a recent owner authority
type RecoverAccount struct {
	AccountToRecover     string              `json:"account_to_recover"`
	NewOwnerAuthority    authority.Authority `json:"new_owner_authority"`
	RecentOwnerAuthority authority.Authority `json:"recent_owner_authority"`
}

func (op *RecoverAccount) Tag() TagType { return RecoverAccountTag }

func (op *RecoverAccount) Validate() error {
	if err := validateName("account_to_recover", op.AccountToRecover); nil != err {
		return err
	}
	if op.NewOwnerAuthority.Equal(op.RecentOwnerAuthority) {
		return fault.ErrRecoveryToRecentAuthority
	}
	if op.NewOwnerAuthority.IsImpossible() {
		return errors.Wrap(fault.ErrRecoveryAuthorityIsImpossible, "new_owner_authority")
	}
	if op.RecentOwnerAuthority.IsImpossible() {
		return errors.Wrap(fault.ErrRecoveryAuthorityIsImpossible, "recent_owner_authority")
	}
	if op.NewOwnerAuthority.IsOpen() {
		return errors.Wrap(fault.ErrOpenAuthority, "new_owner_authority")
	}
	if err := validateAuthority("new_owner_authority", op.NewOwnerAuthority); nil != err {
		return err
	}
	return validateAuthority("recent_owner_authority", op.RecentOwnerAuthority)
}

// both the proposed and the recent authority must sign
func (op *RecoverAccount) required(r *Required) {
	r.Other = append(r.Other, op.NewOwnerAuthority, op.RecentOwnerAuthority)
}

// ChangeRecoveryAccount - replace the recovery account after a delay
type ChangeRecoveryAccount struct {
	AccountToRecover   string `json:"account_to_recover"`
	NewRecoveryAccount string `json:"new_recovery_account"`
}

func (op *ChangeRecoveryAccount) Tag() TagType { return ChangeRecoveryAccountTag }

func (op *ChangeRecoveryAccount) Validate() error {
	if err := validateName("account_to_recover", op.AccountToRecover); nil != err {
		return err
	}
	return validateName("new_recovery_account", op.NewRecoveryAccount)
}

func (op *ChangeRecoveryAccount) required(r *Required) {
	r.Owner = append(r.Owner, op.AccountToRecover)
}

// ResetAccount - no longer accepted
type ResetAccount struct {
	ResetAccount      string              `json:"reset_account"`
	AccountToReset    string              `json:"account_to_reset"`
	NewOwnerAuthority authority.Authority `json:"new_owner_authority"`
}

func (op *ResetAccount) Tag() TagType { return ResetAccountTag }

func (op *ResetAccount) Validate() error {
	if err := validateName("reset_account", op.ResetAccount); nil != err {
		return err
	}
	return validateName("account_to_reset", op.AccountToReset)
}

func (op *ResetAccount) required(r *Required) {
	r.Active = append(r.Active, op.ResetAccount)
}

// SetResetAccount - no longer accepted
type SetResetAccount struct {
	Account             string `json:"account"`
	CurrentResetAccount string `json:"current_reset_account"`
	ResetAccount        string `json:"reset_account"`
}

func (op *SetResetAccount) Tag() TagType { return SetResetAccountTag }

func (op *SetResetAccount) Validate() error {
	return validateName("account", op.Account)
}

func (op *SetResetAccount) required(r *Required) {
	r.Owner = append(r.Owner, op.Account)
}
