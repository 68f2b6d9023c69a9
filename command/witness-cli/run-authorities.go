// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/witnessd/authority"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/operation"
)

type authoritiesDisplay struct {
	Operation string                `json:"operation"`
	Active    []string              `json:"active"`
	Owner     []string              `json:"owner"`
	Posting   []string              `json:"posting"`
	Other     []authority.Authority `json:"other"`
}

func runAuthorities(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	text := []byte(c.String("operation"))
	if 0 == len(text) {
		var err error
		text, err = io.ReadAll(os.Stdin)
		if nil != err {
			return err
		}
	}

	var envelope operation.Envelope
	if err := json.Unmarshal(text, &envelope); nil != err {
		return err
	}
	op := envelope.Operation
	if nil == op {
		return fault.ErrInvalidOperation
	}
	if op.Tag().IsVirtual() {
		return errors.Wrapf(fault.ErrInvalidOperation, "virtual operation: %s cannot be signed", op.Tag().RecordName())
	}
	if err := op.Validate(); nil != err {
		return errors.Wrapf(err, "operation: %s", op.Tag().RecordName())
	}

	required := operation.RequiredAuthorities(op)
	output := authoritiesDisplay{
		Operation: op.Tag().RecordName(),
		Active:    required.Active,
		Owner:     required.Owner,
		Posting:   required.Posting,
		Other:     required.Other,
	}
	return printJson(m.w, output)
}
