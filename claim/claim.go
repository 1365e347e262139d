// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package claim - attestations issued about identities
//
// one cell exists per (target, key, issuer) triple; re-issuing a
// claim overwrites the cell. visibility is strict: a claim expiring
// exactly now is already gone
package claim

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
	"github.com/monitz87/Polymesh/identity"
	"github.com/monitz87/Polymesh/storage"
)

// Claim - one attestation about a target identity
type Claim struct {
	Issuer did.IdentityId
	Key    []byte
	Value  Value
	Expiry uint64 // zero for no expiry
}

// IsVisible - a claim is visible while its expiry is strictly after now
func (c *Claim) IsVisible(now uint64) bool {
	return 0 == c.Expiry || c.Expiry > now
}

// storage key: target ⧺ claim key ⧺ issuer
//
// identical full keys imply identical claim key lengths, so the
// triple is recoverable without a separator
func cellKey(target did.IdentityId, key []byte, issuer did.IdentityId) []byte {
	buffer := make([]byte, 0, did.IdentityIdLength+len(key)+did.IdentityIdLength)
	buffer = append(buffer, target[:]...)
	buffer = append(buffer, key...)
	return append(buffer, issuer[:]...)
}

// record layout: expiry 8 ⧺ packed value
func (c *Claim) pack() []byte {
	buffer := make([]byte, 8, 8+3+len(c.Value.Value))
	binary.BigEndian.PutUint64(buffer, c.Expiry)
	return append(buffer, c.Value.Pack()...)
}

func claimFromBytes(issuer did.IdentityId, key []byte, buffer []byte) (*Claim, error) {
	if len(buffer) < 8+3 {
		return nil, fault.ErrNotPacked
	}
	value, _, err := ValueFromBytes(buffer[8:])
	if nil != err {
		return nil, err
	}
	return &Claim{
		Issuer: issuer,
		Key:    key,
		Value:  value,
		Expiry: binary.BigEndian.Uint64(buffer[0:8]),
	}, nil
}

// Add - issue or refresh a claim about a target
//
// the signer must be authorized to act for the issuer identity
func Add(trx storage.Transaction, target did.IdentityId, issuer did.IdentityId, signer did.Signatory, key []byte, value Value, expiry uint64) error {

	ok, err := identity.IsSignerAuthorized(issuer, signer)
	if nil != err {
		return err
	}
	if !ok {
		return fault.ErrNotAuthorized
	}

	if !identity.IsRegistered(target) {
		return fault.ErrIdentityNotFound
	}

	if !value.IsValid() {
		return fault.ErrNotPacked
	}

	c := &Claim{
		Issuer: issuer,
		Key:    key,
		Value:  value,
		Expiry: expiry,
	}
	trx.Put(storage.Pool.Claims, cellKey(target, key, issuer), c.pack())

	return nil
}

// Revoke - remove a claim
//
// the signer must be authorized to act for the issuer identity
func Revoke(trx storage.Transaction, target did.IdentityId, issuer did.IdentityId, signer did.Signatory, key []byte) error {

	ok, err := identity.IsSignerAuthorized(issuer, signer)
	if nil != err {
		return err
	}
	if !ok {
		return fault.ErrNotAuthorized
	}

	cell := cellKey(target, key, issuer)
	if !trx.Has(storage.Pool.Claims, cell) {
		return fault.ErrClaimNotFound
	}
	trx.Delete(storage.Pool.Claims, cell)

	return nil
}

// Fetch - one issuer's claim, only while visible
func Fetch(target did.IdentityId, key []byte, issuer did.IdentityId, now uint64) (*Claim, error) {

	buffer := storage.Pool.Claims.Get(cellKey(target, key, issuer))
	if nil == buffer {
		return nil, fault.ErrClaimNotFound
	}

	c, err := claimFromBytes(issuer, key, buffer)
	if nil != err {
		return nil, err
	}
	if !c.IsVisible(now) {
		return nil, fault.ErrClaimNotFound
	}
	return c, nil
}

// ClaimsFor - every issuer's cell under one claim key
//
// expired cells are included; callers filter with IsVisible
func ClaimsFor(target did.IdentityId, key []byte) ([]Claim, error) {

	prefix := make([]byte, 0, did.IdentityIdLength+len(key))
	prefix = append(prefix, target[:]...)
	prefix = append(prefix, key...)

	wantLength := len(prefix) + did.IdentityIdLength

	claims := []Claim(nil)

	cursor := storage.Pool.Claims.NewFetchCursor().Seek(prefix)
	err := cursor.Map(func(cellKey []byte, buffer []byte) error {
		if !bytes.HasPrefix(cellKey, prefix) {
			// keys are sorted so the range is exhausted
			return errStopScan
		}
		// a longer claim key sharing this prefix packs to a different length
		if wantLength != len(cellKey) {
			return nil
		}
		issuer := did.IdentityId{}
		copy(issuer[:], cellKey[len(prefix):])

		c, err := claimFromBytes(issuer, key, buffer)
		if nil != err {
			return err
		}
		claims = append(claims, *c)
		return nil
	})
	if nil != err && errStopScan != err {
		return nil, err
	}
	return claims, nil
}

// terminates a cursor scan once the key range is exhausted
var errStopScan = errors.New("stop scan")
