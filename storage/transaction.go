// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
)

// Transaction - the unit of mutation for one ledger operation
//
// all writes are staged in a batch; nothing reaches the database
// until Commit, and Abort discards the lot, so a rejected operation
// leaves no partial state behind
type Transaction interface {
	Begin() error
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
	InUse() bool
}

type transactionData struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &transactionData{
		access: access,
	}
}

func (t *transactionData) Begin() error {
	return t.access.Begin()
}

func (t *transactionData) Put(pool *PoolHandle, key []byte, value []byte) {
	pool.put(key, value)
}

func (t *transactionData) PutN(pool *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	pool.put(key, buffer)
}

func (t *transactionData) Delete(pool *PoolHandle, key []byte) {
	pool.remove(key)
}

func (t *transactionData) Get(pool *PoolHandle, key []byte) []byte {
	return pool.Get(key)
}

func (t *transactionData) GetN(pool *PoolHandle, key []byte) (uint64, bool) {
	return pool.GetN(key)
}

func (t *transactionData) Has(pool *PoolHandle, key []byte) bool {
	return pool.Has(key)
}

func (t *transactionData) Commit() error {
	return t.access.Commit()
}

func (t *transactionData) Abort() {
	t.access.Abort()
}

func (t *transactionData) InUse() bool {
	return t.access.InUse()
}
