// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interpreter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/interpreter"
)

const script = `
function interpret(message)
    if message.sender == "mallory" then
        return false, "sender is blocked"
    end
    local kind = json_get(message.json, "kind")
    if kind == nil then
        error("missing kind")
    end
    if json_get(message.json, "count") ~= 2 then
        return false
    end
    return #message.recipients > 0 and message.app_id == 7
end
`

func message(sender string, json string) *interpreter.Message {
	return &interpreter.Message{
		Sender:     sender,
		Recipients: []string{"bob"},
		AppID:      7,
		JSON:       json,
	}
}

func TestLuaInterpret(t *testing.T) {
	l, err := interpreter.NewLua("test.lua", script)
	require.Nil(t, err)

	assert.Nil(t, l.Interpret(message("alice", `{"kind":"move","count":2}`)))

	err = l.Interpret(message("mallory", `{"kind":"move","count":2}`))
	assert.Equal(t, fault.ErrInterpreterFailed, errors.Cause(err))
	assert.Contains(t, err.Error(), "sender is blocked")

	err = l.Interpret(message("alice", `{"count":2}`))
	assert.Equal(t, fault.ErrInterpreterFailed, errors.Cause(err))
	assert.Contains(t, err.Error(), "missing kind")

	err = l.Interpret(message("alice", `{"kind":"move","count":3}`))
	assert.Equal(t, fault.ErrInterpreterFailed, errors.Cause(err))
}

func TestLuaStateIsolated(t *testing.T) {
	l, err := interpreter.NewLua("counter.lua", `
calls = (calls or 0) + 1
function interpret(message)
    return calls == 1
end
`)
	require.Nil(t, err)

	assert.Nil(t, l.Interpret(message("alice", "{}")))
	assert.Nil(t, l.Interpret(message("alice", "{}")))
}

func TestLuaNoSystemAccess(t *testing.T) {
	l, err := interpreter.NewLua("os.lua", `
function interpret(message)
    return os.time() > 0
end
`)
	require.Nil(t, err)

	err = l.Interpret(message("alice", "{}"))
	assert.Equal(t, fault.ErrInterpreterFailed, errors.Cause(err))
}

func TestLuaCompileError(t *testing.T) {
	_, err := interpreter.NewLua("bad.lua", "function interpret(")
	assert.Equal(t, fault.ErrInterpreterFailed, errors.Cause(err))
}

func TestLuaFromFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "app.lua")
	require.Nil(t, os.WriteFile(fileName, []byte(script), 0600))

	l, err := interpreter.NewLuaFromFile(fileName)
	require.Nil(t, err)
	assert.Nil(t, l.Interpret(message("alice", `{"kind":"x","count":2}`)))

	_, err = interpreter.NewLuaFromFile(filepath.Join(t.TempDir(), "missing.lua"))
	assert.NotNil(t, err)
}

func TestRegistry(t *testing.T) {
	r := interpreter.NewRegistry()
	l, err := interpreter.NewLua("test.lua", script)
	require.Nil(t, err)

	require.Nil(t, r.Register(7, l))
	assert.Equal(t, fault.ErrAlreadyInitialised, r.Register(7, l))

	found, ok := r.Lookup(7)
	assert.True(t, ok)
	assert.Equal(t, l, found)

	_, ok = r.Lookup(8)
	assert.False(t, ok)

	var empty *interpreter.Registry
	_, ok = empty.Lookup(7)
	assert.False(t, ok)
}
