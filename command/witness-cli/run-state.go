// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/witnessd/asset"
	"github.com/bitmark-inc/witnessd/authority"
	"github.com/bitmark-inc/witnessd/chaintime"
	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/ledger"
	"github.com/bitmark-inc/witnessd/operation"
	"github.com/bitmark-inc/witnessd/publickey"
	"github.com/bitmark-inc/witnessd/storage"
)

type headDisplay struct {
	Chain              string                    `json:"chain"`
	HeadBlockNumber    uint64                    `json:"head_block_number"`
	Time               chaintime.Time            `json:"time"`
	CurrentSupply      asset.Asset               `json:"current_supply"`
	TotalVestingFund   asset.Asset               `json:"total_vesting_fund"`
	TotalVestingShares asset.Asset               `json:"total_vesting_shares"`
	PromotionPool      asset.Asset               `json:"promotion_pool"`
	MedianProps        operation.ChainProperties `json:"median_props"`
	CurrentWitnesses   []string                  `json:"current_witnesses"`
}

type accountDisplay struct {
	Name                  string              `json:"name"`
	Created               chaintime.Time      `json:"created"`
	MemoKey               publickey.PublicKey `json:"memo_key"`
	JSONMetadata          string              `json:"json_metadata,omitempty"`
	Owner                 authority.Authority `json:"owner"`
	Active                authority.Authority `json:"active"`
	Balance               asset.Asset         `json:"balance"`
	VestingShares         asset.Asset         `json:"vesting_shares"`
	VestingWithdrawRate   asset.Asset         `json:"vesting_withdraw_rate"`
	NextVestingWithdrawal chaintime.Time      `json:"next_vesting_withdrawal"`
	Proxy                 string              `json:"proxy,omitempty"`
	WitnessVotes          []string            `json:"witness_votes"`
	WitnessVoteWeight     int64               `json:"witness_vote_weight"`
	RecoveryAccount       string              `json:"recovery_account,omitempty"`
	Sponsor               string              `json:"sponsor,omitempty"`
}

type witnessDisplay struct {
	Owner      string                    `json:"owner"`
	Created    chaintime.Time            `json:"created"`
	URL        string                    `json:"url"`
	SigningKey publickey.PublicKey       `json:"signing_key"`
	Props      operation.ChainProperties `json:"props"`
	Votes      int64                     `json:"votes"`
	Stopped    bool                      `json:"stopped"`
}

type escrowDisplay struct {
	From                 string         `json:"from"`
	To                   string         `json:"to"`
	Agent                string         `json:"agent"`
	EscrowID             uint32         `json:"escrow_id"`
	Balance              asset.Asset    `json:"balance"`
	PendingFee           asset.Asset    `json:"pending_fee"`
	RatificationDeadline chaintime.Time `json:"ratification_deadline"`
	EscrowExpiration     chaintime.Time `json:"escrow_expiration"`
	ToApproved           bool           `json:"to_approved"`
	AgentApproved        bool           `json:"agent_approved"`
	Disputed             bool           `json:"disputed"`
}

// run f over a read only view of the configured ledger
func withLedger(m *metadata, f func(l *ledger.Ledger) error) error {
	name := m.config.GetString(databaseKey)
	if "" == name {
		return errors.Wrap(fault.ErrDatabaseIsNotSet, "use --database or WITNESS_DATABASE")
	}

	db, err := storage.Open(name, storage.ReadOnly)
	if nil != err {
		return err
	}
	defer db.Close()

	trx, err := db.Begin()
	if nil != err {
		return err
	}
	defer trx.Abort()

	l := ledger.New(db, trx)
	if !l.IsInitialised() {
		return fault.ErrNotInitialised
	}
	return f(l)
}

func runHead(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	return withLedger(m, func(l *ledger.Ledger) error {
		props := l.Properties()
		schedule := l.Schedule()
		output := headDisplay{
			Chain:              m.config.GetString(chainKey),
			HeadBlockNumber:    props.HeadBlockNumber,
			Time:               props.Time,
			CurrentSupply:      asset.NativeAmount(props.CurrentSupply),
			TotalVestingFund:   asset.NativeAmount(props.TotalVestingFund),
			TotalVestingShares: asset.VestingAmount(props.TotalVestingShares),
			PromotionPool:      asset.NativeAmount(l.Economics().PromotionPool),
			MedianProps:        schedule.MedianProps,
			CurrentWitnesses:   schedule.CurrentWitnesses,
		}
		return printJson(m.w, output)
	})
}

func runAccount(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := c.String("name")
	if "" == name {
		return fault.ErrInvalidAccountName
	}

	return withLedger(m, func(l *ledger.Ledger) error {
		a, err := l.GetAccount(name)
		if nil != err {
			return err
		}
		auth := l.GetAuthority(name)
		sponsor, _ := l.FindSponsor(name)

		output := accountDisplay{
			Name:                  a.Name,
			Created:               a.Created,
			MemoKey:               a.MemoKey,
			JSONMetadata:          a.JSONMetadata,
			Owner:                 auth.Owner,
			Active:                auth.Active,
			Balance:               asset.NativeAmount(a.Balance),
			VestingShares:         asset.VestingAmount(a.VestingShares),
			VestingWithdrawRate:   asset.VestingAmount(a.VestingWithdrawRate),
			NextVestingWithdrawal: a.NextVestingWithdrawal,
			Proxy:                 a.Proxy,
			WitnessVotes:          l.WitnessVotesOf(name),
			WitnessVoteWeight:     a.WitnessVoteWeight(),
			RecoveryAccount:       a.RecoveryAccount,
			Sponsor:               sponsor,
		}
		return printJson(m.w, output)
	})
}

func runWitness(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner := c.String("owner")
	if "" == owner {
		return fault.ErrInvalidAccountName
	}

	return withLedger(m, func(l *ledger.Ledger) error {
		w, err := l.GetWitness(owner)
		if nil != err {
			return err
		}
		output := witnessDisplay{
			Owner:      w.Owner,
			Created:    w.Created,
			URL:        w.URL,
			SigningKey: w.SigningKey,
			Props:      w.Props,
			Votes:      w.Votes,
			Stopped:    w.Stopped,
		}
		return printJson(m.w, output)
	})
}

func runEscrow(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	from := c.String("from")
	if "" == from {
		return fault.ErrInvalidAccountName
	}
	id := uint32(c.Uint("id"))

	return withLedger(m, func(l *ledger.Ledger) error {
		e, err := l.GetEscrow(from, id)
		if nil != err {
			return err
		}
		output := escrowDisplay{
			From:                 e.From,
			To:                   e.To,
			Agent:                e.Agent,
			EscrowID:             e.EscrowID,
			Balance:              asset.NativeAmount(e.Balance),
			PendingFee:           asset.NativeAmount(e.PendingFee),
			RatificationDeadline: e.RatificationDeadline,
			EscrowExpiration:     e.EscrowExpiration,
			ToApproved:           e.ToApproved,
			AgentApproved:        e.AgentApproved,
			Disputed:             e.Disputed,
		}
		return printJson(m.w, output)
	})
}
