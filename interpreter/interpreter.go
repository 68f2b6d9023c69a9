// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package interpreter - application specific processing of custom
// content, selected by application id
package interpreter

import (
	"github.com/sasha-s/go-deadlock"

	"github.com/bitmark-inc/witnessd/fault"
)

// Message - the custom content passed to an interpreter
type Message struct {
	Sender     string
	Recipients []string
	AppID      uint64
	JSON       string
	Binary     []byte
}

// Interpreter - processes the content of one application
type Interpreter interface {
	Interpret(*Message) error
}

// Registry - interpreters by application id
type Registry struct {
	sync         deadlock.RWMutex
	interpreters map[uint64]Interpreter
}

// NewRegistry - an empty registry
func NewRegistry() *Registry {
	return &Registry{
		interpreters: make(map[uint64]Interpreter),
	}
}

// Register - install the interpreter of an application, one per id
func (r *Registry) Register(appID uint64, i Interpreter) error {
	r.sync.Lock()
	defer r.sync.Unlock()

	if _, ok := r.interpreters[appID]; ok {
		return fault.ErrAlreadyInitialised
	}
	r.interpreters[appID] = i
	return nil
}

// Lookup - the interpreter of an application if one is registered
func (r *Registry) Lookup(appID uint64) (Interpreter, bool) {
	if nil == r {
		return nil, false
	}

	r.sync.RLock()
	defer r.sync.RUnlock()

	i, ok := r.interpreters[appID]
	return i, ok
}
