// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/witnessd/block"
	"github.com/bitmark-inc/witnessd/constants"
	"github.com/bitmark-inc/witnessd/messagebus"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// poll the blocks directory for newly produced blocks
type blockWatcher struct {
	processor *block.Processor
	directory string
}

func (w *blockWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := args.(*logger.L)
	seen := make(map[string]int64)

	ticker := time.NewTicker(constants.BlockInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			if _, err := replayDirectory(log, w.processor, w.directory, seen); nil != err {
				log.Errorf("block watcher: %s", err)
			}
		}
	}
	log.Info("block watcher stopped")
}

// log every virtual operation emitted by applied blocks
type virtualLogger struct {
	queue <-chan messagebus.Message
}

func (v *virtualLogger) Run(args interface{}, shutdown <-chan struct{}) {
	log := logger.New("virtual")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item, ok := <-v.queue:
			if !ok {
				break loop
			}
			switch item.Command {
			case messagebus.CommandVirtual:
				log.Infof("block: %d virtual: %s %+v", item.Block, item.Operation.Tag().RecordName(), item.Operation)
			case messagebus.CommandBlockDone:
				log.Debugf("block: %d done", item.Block)
			}
		}
	}
}

// periodic memory and processing statistics
type statistics struct {
	processor *block.Processor
}

func (s *statistics) Run(args interface{}, shutdown <-chan struct{}) {
	log := logger.New("memory")

	ticker := time.NewTicker(statsDelay)
	defer ticker.Stop()

loop:
	for {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		text, err := json.Marshal(m)
		if nil != err {
			log.Errorf("marshal error: %s", err)
		} else {
			log.Debugf("stats: %s", text)
		}
		a := m.Alloc / mega
		t := m.TotalAlloc / mega
		o := m.Sys / mega
		log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, o)

		stats := &s.processor.Stats
		log.Infof("blocks: %d  operations: %d  rejected: %d  virtual: %d",
			stats.Blocks.Uint64(), stats.Operations.Uint64(), stats.Rejected.Uint64(), stats.Virtuals.Uint64())

		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
		}
	}
}
