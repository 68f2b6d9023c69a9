// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/bitmark-inc/logger"
	"github.com/sasha-s/go-deadlock"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/witnessd/fault"
)

// Pools - all storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type Pools struct {
	Accounts            *PoolHandle `prefix:"A"`
	Authorities         *PoolHandle `prefix:"U"`
	OwnerHistory        *PoolHandle `prefix:"H"`
	OwnerHistoryExpiry  *PoolHandle `prefix:"h"`
	VestingWithdrawals  *PoolHandle `prefix:"D"`
	Sponsorships        *PoolHandle `prefix:"F"`
	Witnesses           *PoolHandle `prefix:"W"`
	WitnessVotes        *PoolHandle `prefix:"V"`
	WitnessRank         *PoolHandle `prefix:"R"`
	Escrows             *PoolHandle `prefix:"E"`
	EscrowRatification  *PoolHandle `prefix:"e"`
	RecoveryRequests    *PoolHandle `prefix:"Q"`
	RecoveryExpiry      *PoolHandle `prefix:"q"`
	ChangeRecovery      *PoolHandle `prefix:"C"`
	ChangeRecoveryDue   *PoolHandle `prefix:"c"`
	Contents            *PoolHandle `prefix:"K"`
	ContentsBySender    *PoolHandle `prefix:"S"`
	ContentsByRecipient *PoolHandle `prefix:"T"`
	Applications        *PoolHandle `prefix:"P"`
	ApplicationNames    *PoolHandle `prefix:"p"`
	ApplicationBuyings  *PoolHandle `prefix:"B"`
	Blocks              *PoolHandle `prefix:"L"`
	Globals             *PoolHandle `prefix:"G"`
	Counters            *PoolHandle `prefix:"N"`
	TestData            *PoolHandle `prefix:"Z"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Database - an open ledger database
//
// only one root transaction may be open at a time
type Database struct {
	Pool Pools

	log      *logger.L
	db       *leveldb.DB
	readOnly bool
	writer   deadlock.Mutex
}

// Open - open or create a database file
func Open(name string, readOnly bool) (*Database, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, readOnly)
}

// OpenMemory - an empty database held in memory
func OpenMemory() (*Database, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, ReadWrite)
}

func setup(db *leveldb.DB, readOnly bool) (*Database, error) {
	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	log := logger.New("storage")

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if 0 == version {
		if readOnly {
			return nil, fault.ErrDatabaseIsNotSet
		}
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			return nil, err
		}
	} else if version < currentDBVersion {
		log.Criticalf("database version: %d < current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d < current version: %d", version, currentDBVersion)
	}

	d := &Database{
		log:      log,
		db:       db,
		readOnly: readOnly,
	}

	err = initialisePools(&d.Pool)
	if nil != err {
		return nil, err
	}

	ok = true // prevent db close
	return d, nil
}

// scan each field of the pool struct and create its handle from the prefix tag
func initialisePools(pools *Pools) error {

	// this will be a struct type
	poolType := reflect.TypeOf(*pools)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(pools).Elem()

	seen := make(map[byte]string)

	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		if other, ok := seen[prefix]; ok {
			return fmt.Errorf("pool: %s duplicates prefix of: %s", fieldInfo.Name, other)
		}
		seen[prefix] = fieldInfo.Name

		p := &PoolHandle{
			name:   fieldInfo.Name,
			prefix: prefix,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// Close - close the database connection
func (d *Database) Close() {
	d.writer.Lock()
	defer d.writer.Unlock()
	if nil != d.db {
		d.db.Close()
		d.db = nil
	}
}

// Begin - start a root transaction
//
// blocks until any other root transaction is committed or aborted
func (d *Database) Begin() (*Transaction, error) {
	d.writer.Lock()
	if nil == d.db {
		d.writer.Unlock()
		return nil, fault.ErrDatabaseIsNotSet
	}
	return newTransaction(d, nil), nil
}

// return the stored version, zero if none
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
