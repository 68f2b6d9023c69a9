// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"github.com/sasha-s/go-deadlock"

	"github.com/bitmark-inc/witnessd/operation"
)

// internal constants
const (
	defaultChanSize = 100
)

// message commands
const (
	CommandVirtual   = "virtual"
	CommandBlockDone = "block"
)

// Message - one item on a queue
//
// a virtual operation carries its Operation, a block notification
// only the block number
type Message struct {
	Command   string
	Block     uint64
	Operation operation.Operation
}

// BroadcastQueue - any number of consumers, each with its own buffer
//
// a consumer whose buffer is full misses the message; a message sent
// with no consumers is discarded
type BroadcastQueue struct {
	sync      deadlock.RWMutex
	listeners []chan Message
}

// BusType - all available queues
type BusType struct {
	Broadcast *BroadcastQueue
}

// Bus - the queues of this process
var Bus = BusType{
	Broadcast: &BroadcastQueue{},
}

// Send - deliver to every current listener without blocking
func (b *BroadcastQueue) Send(command string, block uint64, op operation.Operation) {
	m := Message{
		Command:   command,
		Block:     block,
		Operation: op,
	}

	b.sync.RLock()
	defer b.sync.RUnlock()

	for _, c := range b.listeners {
		select {
		case c <- m:
		default:
		}
	}
}

// Chan - a new listener; size <= 0 selects the default buffer size
func (b *BroadcastQueue) Chan(size int) <-chan Message {
	if size <= 0 {
		size = defaultChanSize
	}
	c := make(chan Message, size)

	b.sync.Lock()
	b.listeners = append(b.listeners, c)
	b.sync.Unlock()

	return c
}

// Release - close and remove every listener
func (b *BroadcastQueue) Release() {
	b.sync.Lock()
	defer b.sync.Unlock()

	for _, c := range b.listeners {
		close(c)
	}
	b.listeners = nil
}
