// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authorization - two phase consent for privileged operations
//
// an authorizer records an offer against a target signatory; nothing
// changes until the target accepts. every pending offer captures the
// target identity's nonce at creation, so advancing the nonce
// invalidates the whole backlog at once.
//
// pending offers for one signatory form a doubly linked list with the
// same mechanics as the link registry
package authorization

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
	"github.com/monitz87/Polymesh/identity"
	"github.com/monitz87/Polymesh/storage"
)

// list terminator; the global sequence never yields zero
const terminator uint64 = 0

// Authorization - one pending offer against a target signatory
type Authorization struct {
	Id           uint64
	AuthorizedBy did.Signatory
	Data         Data
	Nonce        uint64 // target identity nonce captured at creation
	Expiry       uint64 // zero for no expiry

	next uint64
	prev uint64
}

// IsExpired - an offer with a non-zero expiry at or before now is dead
func (auth *Authorization) IsExpired(now uint64) bool {
	return 0 != auth.Expiry && auth.Expiry <= now
}

// storage key: packed signatory ⧺ 8 byte big endian id
func authKey(target did.Signatory, id uint64) []byte {
	buffer := make([]byte, 0, did.SignatoryLength+8)
	buffer = append(buffer, target.Bytes()...)

	idBuffer := make([]byte, 8)
	binary.BigEndian.PutUint64(idBuffer, id)
	return append(buffer, idBuffer...)
}

// record layout: authorized by 33 ⧺ nonce 8 ⧺ expiry 8 ⧺ next 8 ⧺ prev 8 ⧺ packed payload
func (auth *Authorization) pack() []byte {
	buffer := make([]byte, 0, did.SignatoryLength+32+1+did.AccountKeyLength)
	buffer = append(buffer, auth.AuthorizedBy.Bytes()...)

	numbers := make([]byte, 32)
	binary.BigEndian.PutUint64(numbers[0:8], auth.Nonce)
	binary.BigEndian.PutUint64(numbers[8:16], auth.Expiry)
	binary.BigEndian.PutUint64(numbers[16:24], auth.next)
	binary.BigEndian.PutUint64(numbers[24:32], auth.prev)
	buffer = append(buffer, numbers...)

	return append(buffer, auth.Data.pack()...)
}

func authorizationFromBytes(id uint64, buffer []byte) (*Authorization, error) {
	if len(buffer) < did.SignatoryLength+32+1 {
		return nil, fault.ErrNotPacked
	}
	authorizedBy, err := did.SignatoryFromBytes(buffer[:did.SignatoryLength])
	if nil != err {
		return nil, err
	}
	n := did.SignatoryLength
	data, err := dataFromBytes(buffer[n+32:])
	if nil != err {
		return nil, err
	}
	return &Authorization{
		Id:           id,
		AuthorizedBy: authorizedBy,
		Data:         data,
		Nonce:        binary.BigEndian.Uint64(buffer[n : n+8]),
		Expiry:       binary.BigEndian.Uint64(buffer[n+8 : n+16]),
		next:         binary.BigEndian.Uint64(buffer[n+16 : n+24]),
		prev:         binary.BigEndian.Uint64(buffer[n+24 : n+32]),
	}, nil
}

// nonce captured for a target; bare keys have no nonce
func nonceOf(target did.Signatory) uint64 {
	if target.IsIdentity() {
		return identity.Nonce(target.Identity)
	}
	return 0
}

// Get - fetch one pending authorization of a target
func Get(target did.Signatory, id uint64) (*Authorization, error) {
	buffer := storage.Pool.Authorizations.Get(authKey(target, id))
	if nil == buffer {
		return nil, fault.ErrAuthorizationNotFound
	}
	return authorizationFromBytes(id, buffer)
}

// a neighbour named by a live record must exist
func mustGet(target did.Signatory, id uint64) *Authorization {
	auth, err := Get(target, id)
	if nil != err {
		logger.Panicf("authorization: broken list for target: %s at id: %d  error: %s", target, id, err)
	}
	return auth
}

// Add - record a pending authorization against a target
//
// returns the id drawn from the global sequence
func Add(trx storage.Transaction, authorizedBy did.Signatory, target did.Signatory, data Data, expiry uint64) (uint64, error) {

	err := data.check()
	if nil != err {
		return 0, err
	}

	id := identity.NextSequence(trx)

	last, _ := trx.GetN(storage.Pool.AuthHeads, target.Bytes())

	auth := &Authorization{
		Id:           id,
		AuthorizedBy: authorizedBy,
		Data:         data,
		Nonce:        nonceOf(target),
		Expiry:       expiry,
		next:         terminator,
		prev:         last,
	}

	if terminator != last {
		previous := mustGet(target, last)
		previous.next = id
		trx.Put(storage.Pool.Authorizations, authKey(target, last), previous.pack())
	}

	trx.Put(storage.Pool.Authorizations, authKey(target, id), auth.pack())
	trx.PutN(storage.Pool.AuthHeads, target.Bytes(), id)

	return id, nil
}

// remove - unlink and delete one pending authorization
func remove(trx storage.Transaction, target did.Signatory, auth *Authorization) {

	if terminator != auth.prev {
		previous := mustGet(target, auth.prev)
		previous.next = auth.next
		trx.Put(storage.Pool.Authorizations, authKey(target, auth.prev), previous.pack())
	}

	if terminator != auth.next {
		following := mustGet(target, auth.next)
		following.prev = auth.prev
		trx.Put(storage.Pool.Authorizations, authKey(target, auth.next), following.pack())
	} else {
		// removing the newest offer moves the head back
		if terminator == auth.prev {
			trx.Delete(storage.Pool.AuthHeads, target.Bytes())
		} else {
			trx.PutN(storage.Pool.AuthHeads, target.Bytes(), auth.prev)
		}
	}

	trx.Delete(storage.Pool.Authorizations, authKey(target, auth.Id))
}

// validity checks shared by every consuming path
func checkLive(target did.Signatory, auth *Authorization, now uint64) error {
	if auth.IsExpired(now) {
		return fault.ErrAuthorizationExpired
	}
	if auth.Nonce != nonceOf(target) {
		return fault.ErrNonceMismatch
	}
	return nil
}

// Consume - validate and unlink an authorization on behalf of its authorizer
//
// the offer must still be live: present, unexpired and created against
// the target's current nonce
func Consume(trx storage.Transaction, from did.Signatory, target did.Signatory, id uint64, now uint64) (*Authorization, error) {

	auth, err := Get(target, id)
	if nil != err {
		return nil, err
	}
	if !auth.AuthorizedBy.Equal(from) {
		return nil, fault.ErrNotAuthorized
	}
	err = checkLive(target, auth, now)
	if nil != err {
		return nil, err
	}

	remove(trx, target, auth)
	return auth, nil
}

// PendingFor - all pending authorizations of a target in insertion order
func PendingFor(target did.Signatory) []Authorization {

	id, found := storage.Pool.AuthHeads.GetN(target.Bytes())
	if !found {
		return nil
	}

	pending := []Authorization(nil)
	for terminator != id {
		auth := mustGet(target, id)
		pending = append(pending, *auth)
		id = auth.prev
	}

	// walked newest to oldest
	for i, j := 0, len(pending)-1; i < j; i, j = i+1, j-1 {
		pending[i], pending[j] = pending[j], pending[i]
	}
	return pending
}
