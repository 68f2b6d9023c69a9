// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/witnessd/chain"
	"github.com/bitmark-inc/witnessd/fault"
)

// option names, the environment form is WITNESS_<KEY>
const (
	chainKey    = "chain"
	databaseKey = "database"
	envPrefix   = "witness"
)

// options in priority order: flags, environment, YAML file, defaults
func getConfiguration(c *cli.Context) (*viper.Viper, error) {
	config := viper.New()

	config.SetDefault(chainKey, chain.Witness)
	config.SetDefault(databaseKey, "")

	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	config.AutomaticEnv()

	if file := c.GlobalString("config"); "" != file {
		config.SetConfigType("yaml")
		config.SetConfigFile(file)
		if err := config.ReadInConfig(); nil != err {
			return nil, errors.Wrapf(err, "config: %q", file)
		}
	}

	for _, key := range []string{chainKey, databaseKey} {
		if c.GlobalIsSet(key) {
			config.Set(key, c.GlobalString(key))
		}
	}

	name := strings.ToLower(config.GetString(chainKey))
	if !chain.Valid(name) {
		return nil, errors.Wrapf(fault.ErrInvalidChain, "chain: %q", name)
	}
	config.Set(chainKey, name)

	return config, nil
}
