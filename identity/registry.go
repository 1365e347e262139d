// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/blake2b"

	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
	"github.com/monitz87/Polymesh/storage"
)

// domain separation tag for identity id derivation
var didDerivationTag = []byte("DID")

// deriveIdentityId - blake2b-256 over tag ⧺ sequence ⧺ master key
func deriveIdentityId(sequence uint64, masterKey did.AccountKey) did.IdentityId {
	buffer := make([]byte, 0, len(didDerivationTag)+8+did.AccountKeyLength)
	buffer = append(buffer, didDerivationTag...)

	sequenceBuffer := make([]byte, 8)
	binary.BigEndian.PutUint64(sequenceBuffer, sequence)
	buffer = append(buffer, sequenceBuffer...)

	buffer = append(buffer, masterKey[:]...)

	return did.IdentityId(blake2b.Sum256(buffer))
}

// Register - create a new identity controlled by a master key
//
// the master key must not be bound to any other identity; it becomes
// uniquely bound to the new identity
func Register(trx storage.Transaction, masterKey did.AccountKey, roles did.RoleSet) (did.IdentityId, error) {

	// the record stores a one byte role count
	if len(roles) > 255 {
		return did.IdentityId{}, fault.ErrInvalidLength
	}

	sequence := NextSequence(trx)
	identity := deriveIdentityId(sequence, masterKey)

	if trx.Has(storage.Pool.Identities, identity.Bytes()) {
		return did.IdentityId{}, fault.ErrIdentityAlreadyExists
	}

	err := BindKeyUnique(trx, masterKey, identity)
	if nil != err {
		return did.IdentityId{}, err
	}

	record := &Record{
		Roles:     roles,
		MasterKey: masterKey,
	}
	trx.Put(storage.Pool.Identities, identity.Bytes(), record.Pack())

	globalData.log.Infof("registered identity: %s", identity)

	return identity, nil
}

// IsRegistered - check an identity exists
func IsRegistered(identity did.IdentityId) bool {
	return storage.Pool.Identities.Has(identity.Bytes())
}

// FetchRecord - read the stored state of an identity
func FetchRecord(identity did.IdentityId) (*Record, error) {
	buffer := storage.Pool.Identities.Get(identity.Bytes())
	if nil == buffer {
		return nil, fault.ErrIdentityNotFound
	}
	return RecordFromBytes(buffer)
}

// the master key of a live identity must always resolve back to it;
// any other state is corruption and cannot be recovered in-process
func checkMasterBinding(identity did.IdentityId, record *Record) {
	binding, err := Resolve(record.MasterKey)
	if nil != err || nil == binding || BindingUnique != binding.Tag || identity != binding.Identity {
		globalData.log.Criticalf("master key of %s has broken binding: %#v", identity, binding)
		logger.Panicf("identity: master key binding violated for: %s", identity)
	}
}

// RotateMasterKey - replace the master key of an identity
//
// the new key must be entirely unbound; the old key loses its unique
// binding and the new key gains it
func RotateMasterKey(trx storage.Transaction, identity did.IdentityId, newKey did.AccountKey) error {

	record, err := FetchRecord(identity)
	if nil != err {
		return err
	}
	checkMasterBinding(identity, record)

	if newKey == record.MasterKey {
		return fault.ErrKeyAlreadyBound
	}

	err = UnbindKey(trx, record.MasterKey, identity)
	if nil != err {
		return err
	}
	err = BindKeyUnique(trx, newKey, identity)
	if nil != err {
		return err
	}

	record.MasterKey = newKey
	trx.Put(storage.Pool.Identities, identity.Bytes(), record.Pack())

	globalData.log.Infof("rotated master key of: %s", identity)

	return nil
}
