// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/fault"
)

// EscrowTransfer - hold funds in escrow pending approval by the
// receiver and the agent
type EscrowTransfer struct {
	From                 string         `json:"from"`
	To                   string         `json:"to"`
	Agent                string         `json:"agent"`
	EscrowID             uint32         `json:"escrow_id"`
	Amount               asset.Asset    `json:"amount"`
	Fee                  asset.Asset    `json:"fee"`
	RatificationDeadline chaintime.Time `json:"ratification_deadline"`
	EscrowExpiration     chaintime.Time `json:"escrow_expiration"`
	JSONMeta             string         `json:"json_meta"`
}

func (op *EscrowTransfer) Tag() TagType { return EscrowTransferTag }

func (op *EscrowTransfer) Validate() error {
	if err := validateParties(op.From, op.To, op.Agent); nil != err {
		return err
	}
	if err := validatePositive("amount", op.Amount); nil != err {
		return err
	}
	if err := validateSymbol("amount", op.Amount, asset.Native); nil != err {
		return err
	}
	if err := validateNonNegative("fee", op.Fee); nil != err {
		return err
	}
	if err := validateSymbol("fee", op.Fee, asset.Native); nil != err {
		return err
	}
	if op.From == op.Agent || op.To == op.Agent {
		return fault.ErrEscrowInvalidAgent
	}
	if !op.RatificationDeadline.Before(op.EscrowExpiration) {
		return fault.ErrEscrowInvalidDeadline
	}
	return validateJSON("json_meta", op.JSONMeta)
}

func (op *EscrowTransfer) required(r *Required) {
	r.Active = append(r.Active, op.From)
}

// EscrowApprove - the receiver or agent accepts or rejects the escrow
type EscrowApprove struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Agent    string `json:"agent"`
	Who      string `json:"who"`
	EscrowID uint32 `json:"escrow_id"`
	Approve  bool   `json:"approve"`
}

func (op *EscrowApprove) Tag() TagType { return EscrowApproveTag }

func (op *EscrowApprove) Validate() error {
	if err := validateParties(op.From, op.To, op.Agent); nil != err {
		return err
	}
	if op.Who != op.To && op.Who != op.Agent {
		return fault.ErrEscrowInvalidApprover
	}
	return nil
}

func (op *EscrowApprove) required(r *Required) {
	r.Active = append(r.Active, op.Who)
}

// EscrowDispute - a principal asks the agent to arbitrate
type EscrowDispute struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Agent    string `json:"agent"`
	Who      string `json:"who"`
	EscrowID uint32 `json:"escrow_id"`
}

func (op *EscrowDispute) Tag() TagType { return EscrowDisputeTag }

func (op *EscrowDispute) Validate() error {
	if err := validateParties(op.From, op.To, op.Agent); nil != err {
		return err
	}
	if op.Who != op.From && op.Who != op.To {
		return fault.ErrEscrowInvalidDisputer
	}
	return nil
}

func (op *EscrowDispute) required(r *Required) {
	r.Active = append(r.Active, op.Who)
}

// EscrowRelease - pay some of the escrow balance to a principal
type EscrowRelease struct {
	From     string      `json:"from"`
	To       string      `json:"to"`
	Agent    string      `json:"agent"`
	Who      string      `json:"who"`
	Receiver string      `json:"receiver"`
	EscrowID uint32      `json:"escrow_id"`
	Amount   asset.Asset `json:"amount"`
}

func (op *EscrowRelease) Tag() TagType { return EscrowReleaseTag }

func (op *EscrowRelease) Validate() error {
	if err := validateParties(op.From, op.To, op.Agent); nil != err {
		return err
	}
	if op.Who != op.From && op.Who != op.To && op.Who != op.Agent {
		return fault.ErrEscrowInvalidReleaser
	}
	if op.Receiver != op.From && op.Receiver != op.To {
		return fault.ErrEscrowInvalidReceiver
	}
	if err := validatePositive("amount", op.Amount); nil != err {
		return err
	}
	return validateSymbol("amount", op.Amount, asset.Native)
}

func (op *EscrowRelease) required(r *Required) {
	r.Active = append(r.Active, op.Who)
}

func validateParties(from string, to string, agent string) error {
	if err := validateName("from", from); nil != err {
		return err
	}
	if err := validateName("to", to); nil != err {
		return err
	}
	return validateName("agent", agent)
}
