// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
	"github.com/monitz87/Polymesh/identity"
)

func TestRegisterRejectsOversizedRoles(t *testing.T) {
	setup(t)
	defer teardown(t)

	// the record stores a one byte role count
	trx := beginTransaction(t)
	_, err := identity.Register(trx, did.AccountKey{1}, make(did.RoleSet, 256))
	assert.Equal(t, fault.ErrInvalidLength, err, "oversized role set accepted")
	trx.Abort()

	// the largest countable set still round trips
	trx = beginTransaction(t)
	id, err := identity.Register(trx, did.AccountKey{1}, make(did.RoleSet, 255))
	assert.Nil(t, err, "register error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	record, err := identity.FetchRecord(id)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, 255, len(record.Roles), "wrong role count")
}

func TestRegister(t *testing.T) {
	setup(t)
	defer teardown(t)

	masterKey := did.AccountKey{1, 2, 3}

	trx := beginTransaction(t)
	id, err := identity.Register(trx, masterKey, did.RoleSet{did.RoleIssuer})
	assert.Nil(t, err, "register error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	assert.True(t, identity.IsRegistered(id), "identity missing")

	record, err := identity.FetchRecord(id)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, masterKey, record.MasterKey, "wrong master key")
	assert.Equal(t, did.RoleSet{did.RoleIssuer}, record.Roles, "wrong roles")
	assert.Equal(t, 0, len(record.SigningItems), "unexpected signing items")

	// the master key resolves back to the identity
	resolved, err := identity.ResolveUnique(masterKey)
	assert.Nil(t, err, "resolve error")
	assert.Equal(t, id, resolved, "wrong binding")

	assert.Equal(t, uint64(0), identity.Nonce(id), "fresh nonce not zero")
}

func TestRegisterRejectsBoundKey(t *testing.T) {
	setup(t)
	defer teardown(t)

	masterKey := did.AccountKey{4, 5, 6}

	trx := beginTransaction(t)
	_, err := identity.Register(trx, masterKey, nil)
	assert.Nil(t, err, "register error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	trx = beginTransaction(t)
	_, err = identity.Register(trx, masterKey, nil)
	assert.Equal(t, fault.ErrKeyAlreadyBound, err, "bound key accepted")
	trx.Abort()
}

func TestBindUnbindRebind(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx := beginTransaction(t)
	id1, err := identity.Register(trx, did.AccountKey{1}, nil)
	assert.Nil(t, err, "register error")
	id2, err := identity.Register(trx, did.AccountKey{2}, nil)
	assert.Nil(t, err, "register error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	key := did.AccountKey{0xaa}

	// bind to first identity
	trx = beginTransaction(t)
	err = identity.BindKeyUnique(trx, key, id1)
	assert.Nil(t, err, "bind error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	resolved, err := identity.ResolveUnique(key)
	assert.Nil(t, err, "resolve error")
	assert.Equal(t, id1, resolved, "wrong binding")

	// a bound key cannot bind again
	trx = beginTransaction(t)
	err = identity.BindKeyUnique(trx, key, id2)
	assert.Equal(t, fault.ErrKeyAlreadyBound, err, "double bind accepted")
	trx.Abort()

	// unbind then rebind to the second identity
	trx = beginTransaction(t)
	err = identity.UnbindKey(trx, key, id1)
	assert.Nil(t, err, "unbind error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	_, err = identity.ResolveUnique(key)
	assert.Equal(t, fault.ErrKeyNotBound, err, "stale binding")

	trx = beginTransaction(t)
	err = identity.BindKeyUnique(trx, key, id2)
	assert.Nil(t, err, "rebind error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	resolved, err = identity.ResolveUnique(key)
	assert.Nil(t, err, "resolve error")
	assert.Equal(t, id2, resolved, "wrong rebinding")
}

func TestGroupBinding(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx := beginTransaction(t)
	id1, err := identity.Register(trx, did.AccountKey{1}, nil)
	assert.Nil(t, err, "register error")
	id2, err := identity.Register(trx, did.AccountKey{2}, nil)
	assert.Nil(t, err, "register error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	shared := did.AccountKey{0xbb}

	trx = beginTransaction(t)
	err = identity.BindKeyGroup(trx, shared, id1)
	assert.Nil(t, err, "group bind error")
	err = identity.BindKeyGroup(trx, shared, id2)
	assert.Nil(t, err, "group bind error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	binding, err := identity.Resolve(shared)
	assert.Nil(t, err, "resolve error")
	assert.Equal(t, identity.BindingGroup, binding.Tag, "wrong binding tag")
	assert.Equal(t, []did.IdentityId{id1, id2}, binding.Group, "wrong group")

	// a group bound key never resolves uniquely
	_, err = identity.ResolveUnique(shared)
	assert.Equal(t, fault.ErrNotIdentityBound, err, "group key resolved uniquely")

	// shedding the last member removes the record
	trx = beginTransaction(t)
	err = identity.UnbindKey(trx, shared, id1)
	assert.Nil(t, err, "unbind error")
	err = identity.UnbindKey(trx, shared, id2)
	assert.Nil(t, err, "unbind error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	binding, err = identity.Resolve(shared)
	assert.Nil(t, err, "resolve error")
	assert.Nil(t, binding, "empty group not removed")
}

func TestSigningItems(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx := beginTransaction(t)
	id, err := identity.Register(trx, did.AccountKey{1}, nil)
	assert.Nil(t, err, "register error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	delegateKey := did.AccountKey{0xcc}
	delegate := did.SignatoryFromKey(delegateKey)
	item := did.SigningItem{
		Signer:      delegate,
		Type:        did.SignerExternal,
		Permissions: did.NewPermissionSet(did.Operator),
	}

	trx = beginTransaction(t)
	err = identity.AddSigningItem(trx, id, item)
	assert.Nil(t, err, "add error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	// external signer keys bind uniquely
	resolved, err := identity.ResolveUnique(delegateKey)
	assert.Nil(t, err, "resolve error")
	assert.Equal(t, id, resolved, "wrong binding")

	// duplicate signer
	trx = beginTransaction(t)
	err = identity.AddSigningItem(trx, id, item)
	assert.Equal(t, fault.ErrSignerAlreadyExists, err, "duplicate signer accepted")
	trx.Abort()

	// permissions
	ok, err := identity.HasPermission(id, delegate, did.NewPermissionSet(did.Operator))
	assert.Nil(t, err, "permission error")
	assert.True(t, ok, "operator permission missing")

	ok, err = identity.HasPermission(id, delegate, did.NewPermissionSet(did.Admin))
	assert.Nil(t, err, "permission error")
	assert.False(t, ok, "admin permission wrongly granted")

	// revoke
	trx = beginTransaction(t)
	err = identity.RevokeSigningItem(trx, id, delegate)
	assert.Nil(t, err, "revoke error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	ok, err = identity.IsSignerAuthorized(id, delegate)
	assert.Nil(t, err, "authorized error")
	assert.False(t, ok, "revoked signer still authorized")

	_, err = identity.ResolveUnique(delegateKey)
	assert.Equal(t, fault.ErrKeyNotBound, err, "revoked signer still bound")

	// revoking again
	trx = beginTransaction(t)
	err = identity.RevokeSigningItem(trx, id, delegate)
	assert.Equal(t, fault.ErrSignerNotFound, err, "missing signer revoked")
	trx.Abort()
}

func TestMasterKeyAlwaysAuthorized(t *testing.T) {
	setup(t)
	defer teardown(t)

	masterKey := did.AccountKey{7, 7, 7}

	trx := beginTransaction(t)
	id, err := identity.Register(trx, masterKey, nil)
	assert.Nil(t, err, "register error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	master := did.SignatoryFromKey(masterKey)

	ok, err := identity.HasPermission(id, master, did.NewPermissionSet(did.Admin, did.Operator, did.SpendFunds))
	assert.Nil(t, err, "permission error")
	assert.True(t, ok, "master key lacks permission")

	isMaster, err := identity.IsMasterKey(id, masterKey)
	assert.Nil(t, err, "master check error")
	assert.True(t, isMaster, "master key not recognised")

	// the identity acting for itself is always authorized
	ok, err = identity.IsSignerAuthorized(id, did.SignatoryFromIdentity(id))
	assert.Nil(t, err, "authorized error")
	assert.True(t, ok, "identity not self authorized")
}

func TestFreezeSuspendsSigningItems(t *testing.T) {
	setup(t)
	defer teardown(t)

	masterKey := did.AccountKey{9}

	trx := beginTransaction(t)
	id, err := identity.Register(trx, masterKey, nil)
	assert.Nil(t, err, "register error")

	delegate := did.SignatoryFromKey(did.AccountKey{0xdd})
	err = identity.AddSigningItem(trx, id, did.SigningItem{
		Signer:      delegate,
		Type:        did.SignerExternal,
		Permissions: did.NewPermissionSet(did.Full),
	})
	assert.Nil(t, err, "add error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	trx = beginTransaction(t)
	err = identity.Freeze(trx, id)
	assert.Nil(t, err, "freeze error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")
	assert.True(t, identity.IsFrozen(id), "identity not frozen")

	// frozen: delegates suspended, master key unaffected
	ok, err := identity.IsSignerAuthorized(id, delegate)
	assert.Nil(t, err, "authorized error")
	assert.False(t, ok, "frozen delegate still authorized")

	ok, err = identity.IsSignerAuthorized(id, did.SignatoryFromKey(masterKey))
	assert.Nil(t, err, "authorized error")
	assert.True(t, ok, "master key frozen out")

	trx = beginTransaction(t)
	err = identity.Unfreeze(trx, id)
	assert.Nil(t, err, "unfreeze error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	ok, err = identity.IsSignerAuthorized(id, delegate)
	assert.Nil(t, err, "authorized error")
	assert.True(t, ok, "unfrozen delegate not restored")
}

func TestRotateMasterKey(t *testing.T) {
	setup(t)
	defer teardown(t)

	oldKey := did.AccountKey{1, 1}
	newKey := did.AccountKey{2, 2}

	trx := beginTransaction(t)
	id, err := identity.Register(trx, oldKey, nil)
	assert.Nil(t, err, "register error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	trx = beginTransaction(t)
	err = identity.RotateMasterKey(trx, id, newKey)
	assert.Nil(t, err, "rotate error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	record, err := identity.FetchRecord(id)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, newKey, record.MasterKey, "wrong master key")

	// old key is free, new key bound
	_, err = identity.ResolveUnique(oldKey)
	assert.Equal(t, fault.ErrKeyNotBound, err, "old key still bound")

	resolved, err := identity.ResolveUnique(newKey)
	assert.Nil(t, err, "resolve error")
	assert.Equal(t, id, resolved, "new key not bound")
}

func TestNonce(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx := beginTransaction(t)
	id, err := identity.Register(trx, did.AccountKey{3}, nil)
	assert.Nil(t, err, "register error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	assert.Equal(t, uint64(0), identity.Nonce(id), "fresh nonce not zero")

	trx = beginTransaction(t)
	n := identity.IncrementNonce(trx, id)
	assert.Equal(t, uint64(1), n, "wrong incremented nonce")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	assert.Equal(t, uint64(1), identity.Nonce(id), "nonce not persisted")
}

func TestNextSequenceMonotonic(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx := beginTransaction(t)
	first := identity.NextSequence(trx)
	second := identity.NextSequence(trx)
	err := trx.Commit()
	assert.Nil(t, err, "commit error")

	assert.Equal(t, uint64(1), first, "sequence must start at one")
	assert.Equal(t, first+1, second, "sequence not monotonic")
}
