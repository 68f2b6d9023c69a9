// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/witnessd/background"
	"github.com/bitmark-inc/witnessd/block"
	"github.com/bitmark-inc/witnessd/configuration"
	"github.com/bitmark-inc/witnessd/messagebus"
	"github.com/bitmark-inc/witnessd/mode"
	"github.com/bitmark-inc/witnessd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "chain", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'C'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// a chain given on the command line is visible to the
	// configuration script as the global: chain_name
	variables := map[string]string{}
	if 1 == len(options["chain"]) {
		variables["chain_name"] = options["chain"][0]
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile, variables)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database.Name)

	// start the data storage
	log.Info("initialise storage")
	db, err := storage.Open(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer db.Close()

	log.Info("initialise interpreters")
	interpreters, err := loadInterpreters(log, theConfiguration.Interpreters)
	if nil != err {
		log.Criticalf("interpreter initialise error: %s", err)
		exitwithstatus.Message("interpreter initialise error: %s", err)
	}

	log.Info("initialise genesis")
	err = initialiseGenesis(log, db, theConfiguration)
	if nil != err {
		log.Criticalf("genesis initialise error: %s", err)
		exitwithstatus.Message("genesis initialise error: %s", err)
	}

	processor := block.NewProcessor(db, interpreters, mode.IsTesting(), messagebus.Bus.Broadcast)

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(log, arguments, db, processor) {
		return
	}

	// catch up with all block files already present
	mode.Set(mode.Replay)
	head, err := replayDirectory(log, processor, theConfiguration.BlocksDirectory, nil)
	if nil != err {
		log.Criticalf("replay error: %s", err)
		exitwithstatus.Message("replay error: %s", err)
	}
	log.Infof("replayed to block: %d", head)

	// new block files are produced live from now on
	mode.Set(mode.Producing)

	processes := background.Processes{
		&virtualLogger{queue: messagebus.Bus.Broadcast.Chan(0)},
		&blockWatcher{
			processor: processor,
			directory: theConfiguration.BlocksDirectory,
		},
	}
	if len(options["memory-stats"]) > 0 {
		processes = append(processes, &statistics{processor: processor})
	}
	bg := background.Start(processes, log)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)

	// releasing the bus ends the virtual logger
	messagebus.Bus.Broadcast.Release()
	bg.Stop()
}
