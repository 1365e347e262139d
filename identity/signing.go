// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"math"

	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
	"github.com/monitz87/Polymesh/storage"
)

// marker value for the frozen pool
var frozenMarker = []byte{0x01}

// AddSigningItem - attach a delegated signatory to an identity
//
// key signers are bound as a side effect: multisig keys join the
// group binding, all others bind uniquely
func AddSigningItem(trx storage.Transaction, identity did.IdentityId, item did.SigningItem) error {

	record, err := FetchRecord(identity)
	if nil != err {
		return err
	}
	checkMasterBinding(identity, record)

	for _, existing := range record.SigningItems {
		if existing.Signer.Equal(item.Signer) {
			return fault.ErrSignerAlreadyExists
		}
	}

	// the record stores a two byte item count
	if len(record.SigningItems) >= math.MaxUint16 {
		return fault.ErrInvalidLength
	}

	if !item.Signer.IsIdentity() {
		if did.SignerMultiSig == item.Type {
			err = BindKeyGroup(trx, item.Signer.Key, identity)
		} else {
			err = BindKeyUnique(trx, item.Signer.Key, identity)
		}
		if nil != err {
			return err
		}
	}

	record.SigningItems = append(record.SigningItems, item)
	trx.Put(storage.Pool.Identities, identity.Bytes(), record.Pack())

	return nil
}

// RevokeSigningItem - detach a delegated signatory from an identity
//
// key signers lose their binding as a side effect
func RevokeSigningItem(trx storage.Transaction, identity did.IdentityId, signer did.Signatory) error {

	record, err := FetchRecord(identity)
	if nil != err {
		return err
	}
	checkMasterBinding(identity, record)

	items := make([]did.SigningItem, 0, len(record.SigningItems))
	found := false
	for _, item := range record.SigningItems {
		if item.Signer.Equal(signer) {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return fault.ErrSignerNotFound
	}

	if !signer.IsIdentity() {
		err = UnbindKey(trx, signer.Key, identity)
		if nil != err {
			return err
		}
	}

	record.SigningItems = items
	trx.Put(storage.Pool.Identities, identity.Bytes(), record.Pack())

	return nil
}

// IsMasterKey - check a key is the master key of an identity
func IsMasterKey(identity did.IdentityId, key did.AccountKey) (bool, error) {
	record, err := FetchRecord(identity)
	if nil != err {
		return false, err
	}
	return key == record.MasterKey, nil
}

// IsSignerAuthorized - check a signatory may act for an identity
//
// the master key and the identity itself are always authorized;
// delegated signatories are suspended while the identity is frozen
func IsSignerAuthorized(identity did.IdentityId, signer did.Signatory) (bool, error) {
	return hasPermission(identity, signer, did.PermissionSet(0))
}

// HasPermission - check a signatory holds all required capabilities
//
// the master key and the identity itself hold every capability
func HasPermission(identity did.IdentityId, signer did.Signatory, required did.PermissionSet) (bool, error) {
	return hasPermission(identity, signer, required)
}

func hasPermission(identity did.IdentityId, signer did.Signatory, required did.PermissionSet) (bool, error) {

	record, err := FetchRecord(identity)
	if nil != err {
		return false, err
	}

	if signer.IsIdentity() {
		if identity == signer.Identity {
			return true, nil
		}
	} else if record.MasterKey == signer.Key {
		return true, nil
	}

	if IsFrozen(identity) {
		return false, nil
	}

	for _, item := range record.SigningItems {
		if item.Signer.Equal(signer) {
			return item.Permissions.Has(required), nil
		}
	}

	return false, nil
}

// Freeze - suspend all delegated signatories of an identity
//
// the master key stays in force
func Freeze(trx storage.Transaction, identity did.IdentityId) error {
	if !IsRegistered(identity) {
		return fault.ErrIdentityNotFound
	}
	trx.Put(storage.Pool.Frozen, identity.Bytes(), frozenMarker)
	return nil
}

// Unfreeze - restore the delegated signatories of an identity
func Unfreeze(trx storage.Transaction, identity did.IdentityId) error {
	if !IsRegistered(identity) {
		return fault.ErrIdentityNotFound
	}
	trx.Delete(storage.Pool.Frozen, identity.Bytes())
	return nil
}

// IsFrozen - check whether delegated signatories are suspended
func IsFrozen(identity did.IdentityId) bool {
	return storage.Pool.Frozen.Has(identity.Bytes())
}
