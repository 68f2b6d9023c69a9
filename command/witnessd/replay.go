// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/block"
	"github.com/bitmark-inc/witnessd/mode"
)

// block files are streams of JSON blocks
const blockFilePattern = "*.json"

// apply every block of a file that is beyond the current head
func replayFile(log *logger.L, processor *block.Processor, fileName string) (uint64, error) {
	head, _, err := processor.Head()
	if nil != err {
		return 0, err
	}

	f, err := os.Open(fileName)
	if nil != err {
		return head, err
	}
	defer f.Close()

	applied := 0
	reader := block.NewReader(f)
	for {
		b, err := reader.Next()
		if io.EOF == err {
			break
		}
		if nil != err {
			return head, errors.Wrapf(err, "file: %q", fileName)
		}

		// already part of the ledger
		if b.Number <= head {
			continue
		}

		if err := processor.Apply(b, mode.IsProducing()); nil != err {
			return head, errors.Wrapf(err, "file: %q", fileName)
		}
		head = b.Number
		applied += 1
	}

	if applied > 0 {
		log.Infof("file: %q applied: %d blocks head: %d", fileName, applied, head)
	}
	return head, nil
}

// apply the block files of a directory in name order
//
// files whose size is recorded in seen are skipped and the map is
// updated with each file processed
func replayDirectory(log *logger.L, processor *block.Processor, directory string, seen map[string]int64) (uint64, error) {
	names, err := filepath.Glob(filepath.Join(directory, blockFilePattern))
	if nil != err {
		return 0, err
	}
	sort.Strings(names)

	head, _, err := processor.Head()
	if nil != err {
		return 0, err
	}

	for _, name := range names {
		info, err := os.Stat(name)
		if nil != err {
			return head, err
		}
		if nil != seen {
			if size, ok := seen[name]; ok && size == info.Size() {
				continue
			}
		}

		head, err = replayFile(log, processor, name)
		if nil != err {
			return head, err
		}
		if nil != seen {
			seen[name] = info.Size()
		}
	}
	return head, nil
}
