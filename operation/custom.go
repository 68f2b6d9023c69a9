// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/fault"
)

// Custom - opaque data signed by a set of accounts, no state change
type Custom struct {
	RequiredAuths []string `json:"required_auths"`
	ID            uint16   `json:"id"`
	Data          []byte   `json:"data"`
}

func (op *Custom) Tag() TagType { return CustomTag }

func (op *Custom) Validate() error {
	if 0 == len(op.RequiredAuths) {
		return errors.Wrap(fault.ErrInvalidOperation, "required_auths: must not be empty")
	}
	return validateNames("required_auths", op.RequiredAuths)
}

func (op *Custom) required(r *Required) {
	r.Active = append(r.Active, op.RequiredAuths...)
}

// CustomJSON - application content from a sender to recipients
type CustomJSON struct {
	Sender     string   `json:"sender"`
	Recipients []string `json:"recipients"`
	AppID      uint64   `json:"app_id"`
	JSON       string   `json:"json"`
}

func (op *CustomJSON) Tag() TagType { return CustomJSONTag }

func (op *CustomJSON) Validate() error {
	if err := validateContent(op.Sender, op.Recipients); nil != err {
		return err
	}
	if "" == op.JSON {
		return errors.Wrap(fault.ErrInvalidJSON, "json: must not be empty")
	}
	return validateJSON("json", op.JSON)
}

func (op *CustomJSON) required(r *Required) {
	r.Active = append(r.Active, op.Sender)
}

// CustomBinary - as CustomJSON with a binary payload
type CustomBinary struct {
	Sender     string   `json:"sender"`
	Recipients []string `json:"recipients"`
	AppID      uint64   `json:"app_id"`
	Data       []byte   `json:"data"`
}

func (op *CustomBinary) Tag() TagType { return CustomBinaryTag }

func (op *CustomBinary) Validate() error {
	if err := validateContent(op.Sender, op.Recipients); nil != err {
		return err
	}
	if len(op.Data) > constants.MaxMetadataLength {
		return errors.Wrap(fault.ErrInvalidOperation, "data: too long")
	}
	return nil
}

func (op *CustomBinary) required(r *Required) {
	r.Active = append(r.Active, op.Sender)
}

func validateContent(sender string, recipients []string) error {
	if err := validateName("sender", sender); nil != err {
		return err
	}
	return validateNames("recipients", recipients)
}
