// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/block"
	"github.com/bitmark-inc/witnessd/configuration"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/ledger"
	"github.com/bitmark-inc/witnessd/mode"
	"github.com/bitmark-inc/witnessd/storage"
)

// setup command handler
//
// commands that cannot access any internal database or states or
// the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "block", "b", "replay", "r", "head":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] [--chain=NAME] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  start                      (run)    - replay the blocks directory then apply new block files\n")
		fmt.Printf("                                        same as no arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  head                                - display the head block number and time\n")
		fmt.Printf("\n")

		fmt.Printf("  block S [E [FILE]]         (b)      - dump stored block(s) as a JSON structures to stdout/file\n")
		fmt.Printf("\n")

		fmt.Printf("  replay FILE...             (r)      - apply the blocks of each file then exit\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the ledger is open so these commands can access and/or change it
func processDataCommand(log *logger.L, arguments []string, db *storage.Database, processor *block.Processor) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "head":
		number, timestamp, err := processor.Head()
		if nil != err {
			exitwithstatus.Message("head error: %s", err)
		}
		fmt.Printf("block: %d  time: %s\n", number, timestamp)

	case "replay", "r":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing file name argument")
		}
		mode.Set(mode.Replay)
		for _, filename := range arguments {
			head, err := replayFile(log, processor, filename)
			if nil != err {
				exitwithstatus.Message("replay: %q  error: %s", filename, err)
			}
			fmt.Printf("file: %q head: %d\n", filename, head)
		}

	case "block", "b":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing block number argument")
		}

		n, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in block number: %s", err)
		}
		if n < 1 {
			exitwithstatus.Message("error: invalid block number: %d must be greater than 0", n)
		}

		output := "-"

		// optional end range
		nEnd := n
		if len(arguments) > 1 {
			nEnd, err = strconv.ParseUint(arguments[1], 10, 64)
			if nil != err {
				exitwithstatus.Message("error in ending block number: %s", err)
			}
			if nEnd < n {
				exitwithstatus.Message("error: invalid ending block number: %d must not be less than %d", nEnd, n)
			}
		}

		if len(arguments) > 2 {
			output = strings.TrimSpace(arguments[2])
		}
		fd := os.Stdout

		if output != "" && output != "-" {
			fd, err = os.Create(output)
			if nil != err {
				exitwithstatus.Message("error: creating: %q error: %s", output, err)
			}
		}

		if err := dumpBlocks(fd, db, n, nEnd); nil != err {
			exitwithstatus.Message("dump block error: %s", err)
		}
		fd.Close()

	default:
		exitwithstatus.Message("error: no such command: %s", command)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// write stored blocks as a JSON array
func dumpBlocks(fd io.Writer, db *storage.Database, start uint64, end uint64) error {
	trx, err := db.Begin()
	if nil != err {
		return err
	}
	defer trx.Abort()

	l := ledger.New(db, trx)

	fmt.Fprintf(fd, "[\n")
	for n := start; n <= end; n += 1 {
		packed, ok := l.GetBlock(n)
		if !ok {
			return errors.Wrapf(fault.ErrBlockNotFound, "block: %d", n)
		}
		b, err := block.Unpack(packed)
		if nil != err {
			return err
		}
		s, err := json.MarshalIndent(b, "  ", "  ")
		if nil != err {
			return err
		}
		separator := ","
		if n == end {
			separator = ""
		}
		fmt.Fprintf(fd, "  %s%s\n", s, separator)
	}
	fmt.Fprintf(fd, "]\n")
	return nil
}
