// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"github.com/pkg/errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccountExists                 = ExistsError("account already exists")
	ErrAccountCreationFeeTooLow      = InvalidError("account creation fee is below the minimum")
	ErrAlreadyInitialised            = ProcessError("already initialised")
	ErrApplicationBuyingExists       = ExistsError("application already bought")
	ErrApplicationBuyingNotFound     = NotFoundError("application buying not found")
	ErrApplicationExists             = ExistsError("application already exists")
	ErrApplicationNotFound           = NotFoundError("application not found")
	ErrBlockNotFound                 = NotFoundError("block not found")
	ErrBlockNumberMismatch           = InvalidError("block number is not the next block")
	ErrBlockSizeTooLarge             = InvalidError("maximum block size is too large")
	ErrBlockSizeTooSmall             = InvalidError("maximum block size is too small")
	ErrBlockTimeNotIncreasing        = InvalidError("block timestamp must be after the head block")
	ErrCannotVoteWithProxy           = InvalidError("a proxy is set so direct witness votes are not allowed")
	ErrConfigurationNotTable         = InvalidError("configuration must return a table")
	ErrDatabaseIsNotSet              = ProcessError("database is not set")
	ErrEscrowAlreadyApproved         = InvalidError("escrow already approved by this party")
	ErrEscrowAlreadyDisputed         = InvalidError("escrow is already under dispute")
	ErrEscrowBalanceInsufficient     = InvalidError("release amount exceeds escrow balance")
	ErrEscrowExists                  = ExistsError("escrow already exists")
	ErrEscrowExpirationPassed        = InvalidError("escrow expiration has passed")
	ErrEscrowInvalidAgent            = InvalidError("agent cannot be a principal of the escrow")
	ErrEscrowInvalidDeadline         = InvalidError("ratification deadline must be before escrow expiration")
	ErrEscrowInvalidDisputer         = InvalidError("only from or to may dispute an escrow")
	ErrEscrowInvalidReceiver         = InvalidError("escrow receiver must be from or to")
	ErrEscrowInvalidReleaser         = InvalidError("only from, to or agent may release an escrow")
	ErrEscrowInvalidApprover         = InvalidError("only to or agent may approve an escrow")
	ErrEscrowNotApproved             = InvalidError("escrow has not been approved by all parties")
	ErrEscrowNotFound                = NotFoundError("escrow not found")
	ErrEscrowRatificationPassed      = InvalidError("escrow ratification deadline has passed")
	ErrEscrowReleaseNotAgent         = InvalidError("only the agent may release a disputed escrow")
	ErrEscrowReleaseToOther          = InvalidError("funds may only be released to the other party before expiration")
	ErrEscrowReleaseNotParty         = InvalidError("only from or to may release a non-disputed escrow")
	ErrFileNotPlainName              = InvalidError("file name must not contain a directory")
	ErrInsufficientFunds             = InvalidError("insufficient funds")
	ErrInsufficientVestingShares     = InvalidError("insufficient vesting shares")
	ErrInsufficientWitnessStake      = InvalidError("vesting shares are below the witness requirement")
	ErrInterpreterFailed             = ProcessError("content interpreter failed")
	ErrInvalidAccountName            = InvalidError("account name is invalid")
	ErrInvalidAmount                 = InvalidError("amount is invalid")
	ErrInvalidAuthority              = InvalidError("authority is invalid")
	ErrInvalidBlock                  = InvalidError("block is invalid")
	ErrInvalidChain                  = InvalidError("invalid chain")
	ErrInvalidCount                  = InvalidError("invalid count")
	ErrInvalidDirectory              = InvalidError("path is not a valid directory")
	ErrInvalidJSON                   = InvalidError("json is invalid")
	ErrInvalidLoggerChannel          = ProcessError("invalid logger channel")
	ErrInvalidOperation              = InvalidError("operation is invalid")
	ErrInvalidPrice                  = InvalidError("price is invalid")
	ErrInvalidProperty               = InvalidError("witness property is invalid")
	ErrInvalidPublicKey              = InvalidError("public key is invalid")
	ErrInvalidSymbol                 = InvalidError("asset symbol is invalid")
	ErrInvalidUrl                    = InvalidError("url is invalid")
	ErrKeyChecksumMismatch           = InvalidError("public key checksum mismatch")
	ErrKeyLength                     = InvalidError("public key length is invalid")
	ErrMissingSigningKeyProperty     = InvalidError("witness properties must contain the signing key")
	ErrNotApplicationAuthor          = InvalidError("only the application author may change it")
	ErrNotInitialised                = ProcessError("not initialised")
	ErrNotRecoveryAccount            = InvalidError("not the recovery account of this account")
	ErrNotScheduledWitness           = InvalidError("witness is not scheduled to produce blocks")
	ErrNotSponsor                    = InvalidError("account is not the sponsor")
	ErrNotTopWitness                 = InvalidError("only the top witness may request recovery for this account")
	ErrNothingToCancel               = InvalidError("there is no vesting withdrawal to cancel")
	ErrOpenAuthority                 = InvalidError("cannot recover using an open authority")
	ErrOperationDisabled             = InvalidError("operation is disabled")
	ErrOwnerUpdateTooSoon            = InvalidError("owner authority can only be updated once per limit period")
	ErrProxyChainTooLong             = InvalidError("proxy chain exceeds the maximum depth")
	ErrProxyLoop                     = InvalidError("proxy chain would contain a loop")
	ErrProxyToSelf                   = InvalidError("cannot proxy to self")
	ErrProxyUnchanged                = InvalidError("proxy must change")
	ErrRecentAuthorityNotFound       = InvalidError("recent authority not found in authority history")
	ErrRecoveryAuthorityIsImpossible = InvalidError("cannot recover using an impossible authority")
	ErrRecoveryAuthorityMismatch     = InvalidError("new owner authority does not match the recovery request")
	ErrRecoveryRequestNotFound       = NotFoundError("no recovery request for this account")
	ErrRecoveryTooSoon               = InvalidError("account recovery is limited to once per limit period")
	ErrRecoveryToRecentAuthority     = InvalidError("new owner authority cannot be the recent owner authority")
	ErrSigningKeyMismatch            = InvalidError("signing key does not match the witness key")
	ErrSponsorshipExists             = ExistsError("account is already sponsored")
	ErrSponsorshipNotFound           = NotFoundError("account is not sponsored")
	ErrTempAccount                   = InvalidError("cannot update the temporary account")
	ErrTooManyWitnessVotes           = InvalidError("account has voted for the maximum number of witnesses")
	ErrUnknownAccount                = NotFoundError("account not found")
	ErrVoteAlreadyExists             = InvalidError("vote currently exists, user must indicate a desire to reject the witness")
	ErrVoteNotFound                  = InvalidError("vote does not exist, user must indicate a desire to approve the witness")
	ErrWithdrawRateUnchanged         = InvalidError("operation would not change the vesting withdraw rate")
	ErrWitnessNotFound               = NotFoundError("witness not found")
	ErrWrongPrecision                = InvalidError("amount has too many decimal places")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool   { _, ok := errors.Cause(e).(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := errors.Cause(e).(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := errors.Cause(e).(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := errors.Cause(e).(ProcessError); return ok }
