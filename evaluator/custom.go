// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evaluator

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/interpreter"
	"github.com/bitmark-inc/witnessd/ledger"
)

// one record per recipient, each party numbered independently per
// application; the sender sequence advances once per operation
func customContent(ctx *Context, sender string, recipients []string, appID uint64, json string, binary []byte) error {
	l := ctx.Ledger

	if !l.AccountExists(sender) {
		return errors.Wrapf(fault.ErrUnknownAccount, "sender: %q", sender)
	}
	for _, recipient := range recipients {
		if !l.AccountExists(recipient) {
			return errors.Wrapf(fault.ErrUnknownAccount, "recipient: %q", recipient)
		}
	}

	senderSequence := l.LastSenderSequence(appID, sender) + 1
	for _, recipient := range recipients {
		l.PutContent(&ledger.Content{
			Sender:            sender,
			Recipient:         recipient,
			AppID:             appID,
			SenderSequence:    senderSequence,
			RecipientSequence: l.LastRecipientSequence(appID, recipient) + 1,
			JSON:              json,
			Binary:            binary,
			Received:          ctx.Now,
		})
	}

	i, ok := ctx.Interpreters.Lookup(appID)
	if !ok {
		return nil
	}
	err := interpret(i, &interpreter.Message{
		Sender:     sender,
		Recipients: recipients,
		AppID:      appID,
		JSON:       json,
		Binary:     binary,
	})
	if nil == err {
		return nil
	}
	if ctx.Producing {
		return err
	}
	ctx.warnf("app: %d interpreter error ignored: %s", appID, err)
	return nil
}

// a panicking interpreter counts as a failed one
func interpret(i interpreter.Interpreter, m *interpreter.Message) (err error) {
	defer func() {
		if r := recover(); nil != r {
			err = errors.Wrap(fault.ErrInterpreterFailed, fmt.Sprint(r))
		}
	}()
	return i.Interpret(m)
}
