// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package claim_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/identity"
	"github.com/monitz87/Polymesh/storage"
)

// test database file prefix
const (
	databaseFileName = "test"
	testingDirName   = "testing"
)

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseFileName + "-state.leveldb")
	os.RemoveAll(testingDirName)
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	err = identity.Initialise()
	if nil != err {
		t.Fatalf("identity initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	_ = identity.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

// begin a batch, failing the test on error
func beginTransaction(t *testing.T) storage.Transaction {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}
	return trx
}

// register an identity, failing the test on error
func registerIdentity(t *testing.T, masterKey did.AccountKey) did.IdentityId {
	trx := beginTransaction(t)
	id, err := identity.Register(trx, masterKey, nil)
	if nil != err {
		t.Fatalf("register error: %s", err)
	}
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}
	return id
}
