// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger state
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// All access is through a Transaction; nested transactions hold their
// writes in an overlay until committed into their parent, the root
// transaction writes a single leveldb batch.
//
// Notes:
// 1. each separate pool has a single byte prefix
// 2. ++           = concatenation of byte data
// 3. name         = account name ++ 0x00
// 4. time         = big endian uint32 seconds
// 5. id, app, seq = big endian uint64 (8 bytes)
// 6. data         = deterministic CBOR record
//
// Accounts:
//
//   A ++ name                  - account record
//   U ++ name                  - owner/active authorities and last owner update
//   H ++ name ++ seq           - owner authority history
//   h ++ time ++ name ++ seq   - owner authority history by last valid time
//   D ++ time ++ name          - accounts by next vesting withdrawal
//   F ++ name                  - fee sponsorship: data is the sponsor name
//
// Witnesses:
//
//   W ++ name                  - witness record
//   V ++ name ++ name          - witness vote (account, witness)
//   R ++ inverted votes ++ name - witness ranking, most votes first
//
// Escrow:
//
//   E ++ name ++ id            - escrow record (from, escrow id uint32)
//   e ++ time ++ name ++ id    - unratified escrows by ratification deadline
//
// Recovery:
//
//   Q ++ name                  - account recovery request
//   q ++ time ++ name          - recovery requests by expiration
//   C ++ name                  - change recovery account request
//   c ++ time ++ name          - change requests by effective time
//
// Custom content:
//
//   K ++ id                    - content record
//   S ++ name ++ app ++ seq ++ name - by sender, data: id
//   T ++ name ++ app ++ seq    - by recipient, data: id
//
// Applications:
//
//   P ++ id                    - application record
//   p ++ application name      - data: id
//   B ++ id ++ name            - application buying (app id, buyer)
//
// Chain:
//
//   G ++ key                   - global singletons
//   N ++ key                   - next identifier counters
//   Z ++ key                   - testing data
package storage
