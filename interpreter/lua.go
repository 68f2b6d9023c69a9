// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interpreter

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/bitmark-inc/witnessd/fault"
)

// the global function a script must define
const entryPoint = "interpret"

// Lua - an interpreter implemented by a Lua script
//
// the script defines:
//
//	function interpret(message)
//	    -- message.sender, message.recipients, message.app_id,
//	    -- message.json, message.data
//	    return true
//	end
//
// returning false, "reason" or raising an error rejects the content.
// json_get(json, path) is available to query the payload
type Lua struct {
	name  string
	proto *lua.FunctionProto
}

// NewLuaFromFile - compile a script file
func NewLuaFromFile(fileName string) (*Lua, error) {
	source, err := os.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	return NewLua(fileName, string(source))
}

// NewLua - compile a script
func NewLua(name string, source string) (*Lua, error) {
	chunk, err := parse.Parse(strings.NewReader(source), name)
	if nil != err {
		return nil, errors.Wrap(fault.ErrInterpreterFailed, err.Error())
	}
	proto, err := lua.Compile(chunk, name)
	if nil != err {
		return nil, errors.Wrap(fault.ErrInterpreterFailed, err.Error())
	}
	return &Lua{
		name:  name,
		proto: proto,
	}, nil
}

// Interpret - run the script in a fresh state
func (l *Lua) Interpret(m *Message) error {
	L := newState()
	defer L.Close()

	L.Push(L.NewFunctionFromProto(l.proto))
	if err := L.PCall(0, lua.MultRet, nil); nil != err {
		return errors.Wrapf(fault.ErrInterpreterFailed, "%s: %s", l.name, err)
	}

	fn, ok := L.GetGlobal(entryPoint).(*lua.LFunction)
	if !ok {
		return errors.Wrapf(fault.ErrInterpreterFailed, "%s: no function: %s", l.name, entryPoint)
	}

	err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    2,
		Protect: true,
	}, messageTable(L, m))
	if nil != err {
		return errors.Wrapf(fault.ErrInterpreterFailed, "%s: %s", l.name, err)
	}

	result := L.Get(-2)
	reason := L.Get(-1)
	L.Pop(2)

	if lua.LVAsBool(result) {
		return nil
	}
	if lua.LNil == reason {
		return errors.Wrapf(fault.ErrInterpreterFailed, "%s: rejected", l.name)
	}
	return errors.Wrapf(fault.ErrInterpreterFailed, "%s: %s", l.name, reason.String())
}

// only the libraries that cannot reach outside the state
func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	L.SetGlobal("json_get", L.NewFunction(jsonGet))
	return L
}

func messageTable(L *lua.LState, m *Message) *lua.LTable {
	recipients := L.NewTable()
	for _, r := range m.Recipients {
		recipients.Append(lua.LString(r))
	}

	t := L.NewTable()
	t.RawSetString("sender", lua.LString(m.Sender))
	t.RawSetString("recipients", recipients)
	t.RawSetString("app_id", lua.LNumber(m.AppID))
	t.RawSetString("json", lua.LString(m.JSON))
	t.RawSetString("data", lua.LString(m.Binary))
	return t
}

// json_get(json, path) returns the string, number or boolean at the
// path, nil if absent
func jsonGet(L *lua.LState) int {
	result := gjson.Get(L.CheckString(1), L.CheckString(2))
	switch {
	case !result.Exists():
		L.Push(lua.LNil)
	case gjson.Number == result.Type:
		L.Push(lua.LNumber(result.Float()))
	case gjson.True == result.Type || gjson.False == result.Type:
		L.Push(lua.LBool(result.Bool()))
	default:
		L.Push(lua.LString(result.String()))
	}
	return 1
}
