// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package authorization

import (
	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
	"github.com/monitz87/Polymesh/identity"
	"github.com/monitz87/Polymesh/storage"
)

// TransferAcceptor - applies ownership transfer effects
//
// the asset registry registers itself here during initialisation;
// the indirection keeps this package free of asset imports
type TransferAcceptor interface {
	ApplyTickerTransfer(trx storage.Transaction, to did.IdentityId, auth *Authorization, now uint64) error
	ApplyTokenTransfer(trx storage.Transaction, to did.IdentityId, auth *Authorization, now uint64) error
}

var acceptor TransferAcceptor

// RegisterAcceptor - install the ownership transfer applier
func RegisterAcceptor(a TransferAcceptor) {
	acceptor = a
}

// check the caller may act on the target's side of an offer
func checkCaller(caller did.Signatory, target did.Signatory, required did.PermissionSet) error {
	if target.IsIdentity() {
		ok, err := identity.HasPermission(target.Identity, caller, required)
		if nil != err {
			return err
		}
		if !ok {
			return fault.ErrNotAuthorized
		}
		return nil
	}
	if !caller.Equal(target) {
		return fault.ErrNotAuthorized
	}
	return nil
}

// Accept - consume a pending authorization and apply its effect
//
// the caller must be entitled to act for the target; accepting
// advances the target identity's nonce, so every other offer created
// against the old nonce dies with this one
func Accept(trx storage.Transaction, caller did.Signatory, target did.Signatory, id uint64, now uint64) error {

	auth, err := Get(target, id)
	if nil != err {
		return err
	}

	required := did.PermissionSet(0)
	if RotateMasterKey == auth.Data.Tag {
		required = did.NewPermissionSet(did.Admin)
	}
	err = checkCaller(caller, target, required)
	if nil != err {
		return err
	}

	err = checkLive(target, auth, now)
	if nil != err {
		return err
	}

	err = applyEffect(trx, target, auth, now)
	if nil != err {
		return err
	}

	remove(trx, target, auth)

	if target.IsIdentity() {
		identity.IncrementNonce(trx, target.Identity)
	}

	return nil
}

// dispatch on the payload variant
func applyEffect(trx storage.Transaction, target did.Signatory, auth *Authorization, now uint64) error {

	switch auth.Data.Tag {

	case NoData, Custom, AttestMasterKeyRotation:
		// consuming the offer is the whole effect
		return nil

	case RotateMasterKey:
		if !target.IsIdentity() {
			return fault.ErrWrongAuthorizationType
		}
		return identity.RotateMasterKey(trx, target.Identity, auth.Data.Key)

	case TransferTicker:
		if !target.IsIdentity() {
			return fault.ErrWrongAuthorizationType
		}
		if nil == acceptor {
			return fault.ErrNotInitialised
		}
		return acceptor.ApplyTickerTransfer(trx, target.Identity, auth, now)

	case TransferTokenOwnership:
		if !target.IsIdentity() {
			return fault.ErrWrongAuthorizationType
		}
		if nil == acceptor {
			return fault.ErrNotInitialised
		}
		return acceptor.ApplyTokenTransfer(trx, target.Identity, auth, now)

	case AddMultiSigSigner:
		if target.IsIdentity() || !auth.AuthorizedBy.IsIdentity() {
			return fault.ErrWrongAuthorizationType
		}
		return identity.AddSigningItem(trx, auth.AuthorizedBy.Identity, did.SigningItem{
			Signer: target,
			Type:   did.SignerMultiSig,
		})

	default:
		return fault.ErrWrongAuthorizationType
	}
}

// Reject - drop a pending authorization without applying it
//
// only the target's side may reject; expired offers can still be
// rejected to clear them out
func Reject(trx storage.Transaction, caller did.Signatory, target did.Signatory, id uint64) error {

	auth, err := Get(target, id)
	if nil != err {
		return err
	}

	err = checkCaller(caller, target, did.PermissionSet(0))
	if nil != err {
		return err
	}

	remove(trx, target, auth)
	return nil
}

// Revoke - withdraw a pending authorization
//
// only its authorizer may revoke
func Revoke(trx storage.Transaction, from did.Signatory, target did.Signatory, id uint64) error {

	auth, err := Get(target, id)
	if nil != err {
		return err
	}
	if !auth.AuthorizedBy.Equal(from) {
		return fault.ErrNotAuthorized
	}

	remove(trx, target, auth)
	return nil
}
