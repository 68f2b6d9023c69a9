// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/chain"
	"github.com/bitmark-inc/witnessd/fault"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultBlocksDirectory  = "blocks"

	defaultLogDirectory = "log"
	defaultLogFile      = "witnessd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		"main":            "info",
		"block":           "info",
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - location of the leveldb ledger
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// InterpreterType - a Lua content interpreter for one application
type InterpreterType struct {
	AppID  uint64 `gluamapper:"app_id" json:"app_id"`
	Script string `gluamapper:"script" json:"script"`
}

// Configuration - the witnessd configuration file
type Configuration struct {
	DataDirectory   string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile         string               `gluamapper:"pidfile" json:"pidfile"`
	Chain           string               `gluamapper:"chain" json:"chain"`
	InitPublicKey   string               `gluamapper:"init_public_key" json:"init_public_key"`
	BlocksDirectory string               `gluamapper:"blocks_directory" json:"blocks_directory"`
	Database        DatabaseType         `gluamapper:"database" json:"database"`
	Interpreters    []InterpreterType    `gluamapper:"interpreters" json:"interpreters"`
	Logging         logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read, decode and verify the configuration
func GetConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	levels := make(map[string]string, len(defaultLogLevels))
	for tag, level := range defaultLogLevels {
		levels[tag] = level
	}

	options := &Configuration{

		DataDirectory:   defaultDataDirectory,
		PidFile:         "", // no PidFile by default
		Chain:           chain.Witness,
		BlocksDirectory: defaultBlocksDirectory,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      "", // chain dependent
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    levels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	// abort if the chain name is not recognised
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, errors.Wrapf(fault.ErrInvalidChain, "chain: %q", options.Chain)
	}

	// database name follows the chain unless set
	if "" == options.Database.Name {
		options.Database.Name = options.Chain + ".leveldb"
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, errors.Wrapf(fault.ErrInvalidDirectory, "path: %q", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, errors.Wrapf(fault.ErrInvalidDirectory, "path: %q", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.BlocksDirectory,
		&options.Logging.Directory,
	}
	for i := range options.Interpreters {
		mustBeAbsolute = append(mustBeAbsolute, &options.Interpreters[i].Script)
	}
	for _, f := range mustBeAbsolute {
		*f = EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path separator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, errors.Wrapf(fault.ErrFileNotPlainName, "file: %q", *f[0])
		}
	}

	// create directories if they do not already exist
	for _, d := range []string{
		options.Database.Directory,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
