// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evaluator_test

import (
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/witnessd/evaluator"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/interpreter"
	"github.com/bitmark-inc/witnessd/interpreter/mocks"
	"github.com/bitmark-inc/witnessd/operation"
)

const testAppID = 7

func setupContent(t *testing.T) (*evaluator.Context, *mocks.MockInterpreter) {
	ctx := setupContext(t)
	addAccount(t, ctx, "sender", 0, 0)
	addAccount(t, ctx, "first", 0, 0)
	addAccount(t, ctx, "second", 0, 0)

	ctl := gomock.NewController(t)
	t.Cleanup(ctl.Finish)
	m := mocks.NewMockInterpreter(ctl)
	require.Nil(t, ctx.Interpreters.Register(testAppID, m))
	return ctx, m
}

func TestCustomJSONSequences(t *testing.T) {
	ctx, m := setupContent(t)
	m.EXPECT().Interpret(gomock.Any()).Return(nil).Times(2)

	apply(t, ctx, &operation.CustomJSON{
		Sender:     "sender",
		Recipients: []string{"first", "second"},
		AppID:      testAppID,
		JSON:       `{"n":1}`,
	})
	apply(t, ctx, &operation.CustomJSON{
		Sender:     "sender",
		Recipients: []string{"second"},
		AppID:      testAppID,
		JSON:       `{"n":2}`,
	})

	first := ctx.Ledger.ContentsReceived(testAppID, "first")
	require.Len(t, first, 1)
	assert.Equal(t, uint64(1), first[0].SenderSequence)
	assert.Equal(t, uint64(1), first[0].RecipientSequence)

	second := ctx.Ledger.ContentsReceived(testAppID, "second")
	require.Len(t, second, 2)
	assert.Equal(t, uint64(1), second[0].SenderSequence)
	assert.Equal(t, uint64(1), second[0].RecipientSequence)
	assert.Equal(t, uint64(2), second[1].SenderSequence)
	assert.Equal(t, uint64(2), second[1].RecipientSequence)
	assert.Equal(t, `{"n":2}`, second[1].JSON)
	assert.Equal(t, ctx.Now, second[1].Received)

	// both records of the first operation share one sender sequence
	sent := ctx.Ledger.ContentsSent(testAppID, "sender")
	require.Len(t, sent, 3)
	assert.Equal(t, uint64(1), sent[0].SenderSequence)
	assert.Equal(t, uint64(1), sent[1].SenderSequence)
	assert.Equal(t, uint64(2), sent[2].SenderSequence)
	assert.Equal(t, "first", sent[0].Recipient)
	assert.Equal(t, "second", sent[1].Recipient)

	assert.Equal(t, uint64(2), ctx.Ledger.LastSenderSequence(testAppID, "sender"))
	assert.Equal(t, uint64(0), ctx.Ledger.LastSenderSequence(testAppID+1, "sender"))
}

func TestCustomBinaryPassedToInterpreter(t *testing.T) {
	ctx, m := setupContent(t)
	m.EXPECT().Interpret(&interpreter.Message{
		Sender:     "sender",
		Recipients: []string{"first"},
		AppID:      testAppID,
		Binary:     []byte{1, 2, 3},
	}).Return(nil)

	apply(t, ctx, &operation.CustomBinary{
		Sender:     "sender",
		Recipients: []string{"first"},
		AppID:      testAppID,
		Data:       []byte{1, 2, 3},
	})

	received := ctx.Ledger.ContentsReceived(testAppID, "first")
	require.Len(t, received, 1)
	assert.Equal(t, []byte{1, 2, 3}, received[0].Binary)
}

func TestCustomContentUnknownParties(t *testing.T) {
	ctx, _ := setupContent(t)

	reject(t, ctx, &operation.CustomJSON{
		Sender:     "nobody",
		Recipients: []string{"first"},
		AppID:      testAppID,
		JSON:       `{}`,
	}, fault.ErrUnknownAccount)

	reject(t, ctx, &operation.CustomJSON{
		Sender:     "sender",
		Recipients: []string{"first", "nobody"},
		AppID:      testAppID,
		JSON:       `{}`,
	}, fault.ErrUnknownAccount)

	assert.Len(t, ctx.Ledger.ContentsReceived(testAppID, "first"), 0)
}

func TestCustomContentInterpreterFailure(t *testing.T) {
	ctx, m := setupContent(t)
	failure := fmt.Errorf("bad message")
	m.EXPECT().Interpret(gomock.Any()).Return(failure).Times(2)

	op := &operation.CustomJSON{
		Sender:     "sender",
		Recipients: []string{"first"},
		AppID:      testAppID,
		JSON:       `{}`,
	}

	// a producer refuses the operation
	ctx.Producing = true
	reject(t, ctx, op, failure)
	assert.Len(t, ctx.Ledger.ContentsReceived(testAppID, "first"), 0)

	// replay keeps the content
	ctx.Producing = false
	apply(t, ctx, op)
	assert.Len(t, ctx.Ledger.ContentsReceived(testAppID, "first"), 1)
}

func TestCustomContentInterpreterPanic(t *testing.T) {
	ctx, m := setupContent(t)
	m.EXPECT().Interpret(gomock.Any()).DoAndReturn(func(*interpreter.Message) error {
		panic("interpreter crashed")
	})

	ctx.Producing = true
	reject(t, ctx, &operation.CustomJSON{
		Sender:     "sender",
		Recipients: []string{"first"},
		AppID:      testAppID,
		JSON:       `{}`,
	}, fault.ErrInterpreterFailed)
}

func TestCustomContentWithoutInterpreter(t *testing.T) {
	ctx, _ := setupContent(t)

	apply(t, ctx, &operation.CustomJSON{
		Sender:     "sender",
		Recipients: []string{"first"},
		AppID:      testAppID + 1,
		JSON:       `{}`,
	})
	assert.Len(t, ctx.Ledger.ContentsReceived(testAppID+1, "first"), 1)
}

func TestCustomIsNoOp(t *testing.T) {
	ctx, _ := setupContent(t)
	apply(t, ctx, &operation.Custom{
		RequiredAuths: []string{"sender"},
		ID:            1,
		Data:          []byte("anything"),
	})
}
