// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package claim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/monitz87/Polymesh/claim"
	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
)

var kycKey = []byte("kyc")

func TestAddAndFetch(t *testing.T) {
	setup(t)
	defer teardown(t)

	issuerKey := did.AccountKey{1}
	issuer := registerIdentity(t, issuerKey)
	target := registerIdentity(t, did.AccountKey{2})

	trx := beginTransaction(t)
	err := claim.Add(trx, target, issuer, did.SignatoryFromKey(issuerKey), kycKey, claim.BoolValue(true), 0)
	assert.Nil(t, err, "add error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	c, err := claim.Fetch(target, kycKey, issuer, 10)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, issuer, c.Issuer, "wrong issuer")
	assert.True(t, c.Value.Equal(claim.BoolValue(true)), "wrong value")

	// unknown cell
	_, err = claim.Fetch(target, []byte("aml"), issuer, 10)
	assert.Equal(t, fault.ErrClaimNotFound, err, "missing claim found")
}

func TestAddRejectsOversizedValue(t *testing.T) {
	setup(t)
	defer teardown(t)

	issuerKey := did.AccountKey{1}
	issuer := registerIdentity(t, issuerKey)
	target := registerIdentity(t, did.AccountKey{2})

	// a bytes payload beyond the two byte length prefix is not packable
	value := claim.BytesValue(make([]byte, 70000))
	assert.False(t, value.IsValid(), "oversized value valid")

	trx := beginTransaction(t)
	err := claim.Add(trx, target, issuer, did.SignatoryFromKey(issuerKey), kycKey, value, 0)
	assert.Equal(t, fault.ErrNotPacked, err, "oversized value stored")
	trx.Abort()
}

func TestAddRequiresAuthorizedSigner(t *testing.T) {
	setup(t)
	defer teardown(t)

	issuer := registerIdentity(t, did.AccountKey{1})
	target := registerIdentity(t, did.AccountKey{2})

	trx := beginTransaction(t)
	err := claim.Add(trx, target, issuer, did.SignatoryFromKey(did.AccountKey{0xff}), kycKey, claim.BoolValue(true), 0)
	assert.Equal(t, fault.ErrNotAuthorized, err, "stranger issued a claim")
	trx.Abort()
}

func TestAddRequiresRegisteredTarget(t *testing.T) {
	setup(t)
	defer teardown(t)

	issuerKey := did.AccountKey{1}
	issuer := registerIdentity(t, issuerKey)

	trx := beginTransaction(t)
	err := claim.Add(trx, did.IdentityId{0xde, 0xad}, issuer, did.SignatoryFromKey(issuerKey), kycKey, claim.BoolValue(true), 0)
	assert.Equal(t, fault.ErrIdentityNotFound, err, "claim issued about unknown identity")
	trx.Abort()
}

func TestOverwriteSameCell(t *testing.T) {
	setup(t)
	defer teardown(t)

	issuerKey := did.AccountKey{1}
	issuer := registerIdentity(t, issuerKey)
	target := registerIdentity(t, did.AccountKey{2})
	signer := did.SignatoryFromKey(issuerKey)

	trx := beginTransaction(t)
	err := claim.Add(trx, target, issuer, signer, kycKey, claim.U8Value(1), 0)
	assert.Nil(t, err, "add error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	trx = beginTransaction(t)
	err = claim.Add(trx, target, issuer, signer, kycKey, claim.U8Value(2), 0)
	assert.Nil(t, err, "overwrite error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	claims, err := claim.ClaimsFor(target, kycKey)
	assert.Nil(t, err, "list error")
	assert.Equal(t, 1, len(claims), "overwrite created a second cell")
	assert.True(t, claims[0].Value.Equal(claim.U8Value(2)), "wrong value after overwrite")
}

func TestExpiryIsStrict(t *testing.T) {
	setup(t)
	defer teardown(t)

	issuerKey := did.AccountKey{1}
	issuer := registerIdentity(t, issuerKey)
	target := registerIdentity(t, did.AccountKey{2})

	trx := beginTransaction(t)
	err := claim.Add(trx, target, issuer, did.SignatoryFromKey(issuerKey), kycKey, claim.BoolValue(true), 100)
	assert.Nil(t, err, "add error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	// visible strictly before the expiry instant
	_, err = claim.Fetch(target, kycKey, issuer, 99)
	assert.Nil(t, err, "fetch error")

	// a claim expiring exactly now is already gone
	_, err = claim.Fetch(target, kycKey, issuer, 100)
	assert.Equal(t, fault.ErrClaimNotFound, err, "visible at expiry instant")

	_, err = claim.Fetch(target, kycKey, issuer, 101)
	assert.Equal(t, fault.ErrClaimNotFound, err, "visible after expiry")

	// the cell itself survives for listing
	claims, err := claim.ClaimsFor(target, kycKey)
	assert.Nil(t, err, "list error")
	assert.Equal(t, 1, len(claims), "expired cell dropped from listing")
	assert.False(t, claims[0].IsVisible(100), "expired cell visible")
}

func TestRevoke(t *testing.T) {
	setup(t)
	defer teardown(t)

	issuerKey := did.AccountKey{1}
	issuer := registerIdentity(t, issuerKey)
	target := registerIdentity(t, did.AccountKey{2})
	signer := did.SignatoryFromKey(issuerKey)

	trx := beginTransaction(t)
	err := claim.Add(trx, target, issuer, signer, kycKey, claim.BoolValue(true), 0)
	assert.Nil(t, err, "add error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	trx = beginTransaction(t)
	err = claim.Revoke(trx, target, issuer, signer, kycKey)
	assert.Nil(t, err, "revoke error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	_, err = claim.Fetch(target, kycKey, issuer, 10)
	assert.Equal(t, fault.ErrClaimNotFound, err, "revoked claim visible")

	// revoking an absent cell
	trx = beginTransaction(t)
	err = claim.Revoke(trx, target, issuer, signer, kycKey)
	assert.Equal(t, fault.ErrClaimNotFound, err, "absent cell revoked")
	trx.Abort()
}

func TestClaimsForSeparatesIssuersAndKeys(t *testing.T) {
	setup(t)
	defer teardown(t)

	key1 := did.AccountKey{1}
	key2 := did.AccountKey{2}
	issuer1 := registerIdentity(t, key1)
	issuer2 := registerIdentity(t, key2)
	target := registerIdentity(t, did.AccountKey{3})

	trx := beginTransaction(t)
	err := claim.Add(trx, target, issuer1, did.SignatoryFromKey(key1), kycKey, claim.U8Value(1), 0)
	assert.Nil(t, err, "add error")
	err = claim.Add(trx, target, issuer2, did.SignatoryFromKey(key2), kycKey, claim.U8Value(2), 0)
	assert.Nil(t, err, "add error")

	// a longer key sharing the prefix must not leak into the scan
	err = claim.Add(trx, target, issuer1, did.SignatoryFromKey(key1), []byte("kyc-level"), claim.U8Value(9), 0)
	assert.Nil(t, err, "add error")
	err = trx.Commit()
	assert.Nil(t, err, "commit error")

	claims, err := claim.ClaimsFor(target, kycKey)
	assert.Nil(t, err, "list error")
	assert.Equal(t, 2, len(claims), "wrong cell count")
	issuers := map[did.IdentityId]bool{}
	for _, c := range claims {
		issuers[c.Issuer] = true
	}
	assert.True(t, issuers[issuer1], "issuer one missing")
	assert.True(t, issuers[issuer2], "issuer two missing")
}
