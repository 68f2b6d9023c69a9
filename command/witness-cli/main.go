// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/spf13/viper"
	"github.com/urfave/cli"
)

type metadata struct {
	config  *viper.Viper
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	logging := logger.Configuration{
		Directory: os.TempDir(),
		File:      "witness-cli.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// storage reports through the logger
	if err := logger.Initialise(logging); nil != err {
		fmt.Fprintf(os.Stderr, "logger setup failed with error: %s\n", err)
		os.Exit(1)
	}
	defer logger.Finalise()

	app := newApp(os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "witness-cli"
	app.Usage = "inspect a witnessd ledger and prepare operations"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: " read options from YAML `FILE`",
		},
		cli.StringFlag{
			Name:  "chain, n",
			Value: "",
			Usage: " chain `NAME` [witness|testing|local]",
		},
		cli.StringFlag{
			Name:  "database, d",
			Value: "",
			Usage: " leveldb `DIRECTORY` of the ledger",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "keypair",
			Usage:     "generate an ed25519 key pair",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runKeyPair,
		},
		{
			Name:      "authorities",
			Usage:     "validate an operation and list the authorities that must sign it",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "operation, o",
					Value: "",
					Usage: " operation `JSON` [\"name\", {fields}] (default: read stdin)",
				},
			},
			Action: runAuthorities,
		},
		{
			Name:      "head",
			Usage:     "display the head block and chain properties",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runHead,
		},
		{
			Name:      "account",
			Usage:     "display an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, a",
					Value: "",
					Usage: "*account `NAME`",
				},
			},
			Action: runAccount,
		},
		{
			Name:      "witness",
			Usage:     "display a witness",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*witness owner `NAME`",
				},
			},
			Action: runWitness,
		},
		{
			Name:      "escrow",
			Usage:     "display an escrow",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "from, f",
					Value: "",
					Usage: "*escrow sender `NAME`",
				},
				cli.UintFlag{
					Name:  "id, i",
					Value: 0,
					Usage: " escrow `ID`",
				},
			},
			Action: runEscrow,
		},
		{
			Name:   "version",
			Usage:  "display witness-cli version",
			Action: runVersion,
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {
		config, err := getConfiguration(c)
		if nil != err {
			return err
		}

		c.App.Metadata = map[string]interface{}{
			"config": &metadata{
				config:  config,
				verbose: c.GlobalBool("verbose"),
				e:       c.App.ErrWriter,
				w:       c.App.Writer,
			},
		}

		if c.GlobalBool("verbose") {
			fmt.Fprintf(c.App.ErrWriter, "chain: %s\n", config.GetString(chainKey))
			fmt.Fprintf(c.App.ErrWriter, "database: %s\n", config.GetString(databaseKey))
		}
		return nil
	}
	return app
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
