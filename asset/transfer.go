// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/monitz87/Polymesh/authorization"
	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
	"github.com/monitz87/Polymesh/link"
	"github.com/monitz87/Polymesh/storage"
)

// transferApplier - installed into the authorization module so that
// accepting a transfer offer lands back here without an import cycle
type transferApplier struct{}

// move a ticker claim to the accepting identity
//
// the offer is only honoured while its authorizer still owns the
// claim; the old owner's link is replaced by one for the new owner
func (transferApplier) ApplyTickerTransfer(trx storage.Transaction, to did.IdentityId, auth *authorization.Authorization, now uint64) error {

	symbol := auth.Data.Ticker

	if storage.Pool.Tokens.Has(symbol.Bytes()) {
		return fault.ErrTickerAlreadyRegistered
	}

	registration, err := TickerRegistrationFor(symbol)
	if nil != err {
		return err
	}
	if registration.IsExpired(now) {
		return fault.ErrTickerNotFound
	}

	authorizer, err := callerIdentity(auth.AuthorizedBy)
	if nil != err {
		return err
	}
	if authorizer != registration.Owner {
		return fault.ErrNotTransferAuthorized
	}

	err = link.Remove(trx, did.SignatoryFromIdentity(registration.Owner), registration.LinkId)
	if nil != err {
		return err
	}
	linkId := link.Add(trx, did.SignatoryFromIdentity(to), link.TickerOwnedData(symbol), registration.Expiry)

	registration.Owner = to
	registration.LinkId = linkId
	trx.Put(storage.Pool.Tickers, symbol.Bytes(), registration.pack())

	globalData.log.Infof("ticker: %s transferred to: %s", symbol, to)

	return nil
}

// move token ownership to the accepting identity
func (transferApplier) ApplyTokenTransfer(trx storage.Transaction, to did.IdentityId, auth *authorization.Authorization, now uint64) error {

	symbol := auth.Data.Ticker

	token, err := TokenFor(symbol)
	if nil != err {
		return err
	}

	authorizer, err := callerIdentity(auth.AuthorizedBy)
	if nil != err {
		return err
	}
	if authorizer != token.Owner {
		return fault.ErrNotTransferAuthorized
	}

	err = link.Remove(trx, did.SignatoryFromIdentity(token.Owner), token.LinkId)
	if nil != err {
		return err
	}
	linkId := link.Add(trx, did.SignatoryFromIdentity(to), link.TokenOwnedData(symbol), 0)

	token.Owner = to
	token.LinkId = linkId
	trx.Put(storage.Pool.Tokens, symbol.Bytes(), token.pack())

	// ticker ownership follows the token
	registration, err := TickerRegistrationFor(symbol)
	if nil == err && registration.Owner != to {
		err = link.Remove(trx, did.SignatoryFromIdentity(registration.Owner), registration.LinkId)
		if nil != err && !fault.IsErrNotFound(err) {
			return err
		}
		registration.Owner = to
		registration.LinkId = link.Add(trx, did.SignatoryFromIdentity(to), link.TickerOwnedData(symbol), 0)
		trx.Put(storage.Pool.Tickers, symbol.Bytes(), registration.pack())
	}

	globalData.log.Infof("token: %s transferred to: %s", symbol, to)

	return nil
}

// AcceptTickerTransfer - accept a pending ticker transfer offer
//
// convenience wrapper over the generic accept path
func AcceptTickerTransfer(trx storage.Transaction, to did.IdentityId, authId uint64, now uint64) error {
	target := did.SignatoryFromIdentity(to)
	return authorization.Accept(trx, target, target, authId, now)
}

// AcceptTokenTransfer - accept a pending token ownership transfer offer
func AcceptTokenTransfer(trx storage.Transaction, to did.IdentityId, authId uint64, now uint64) error {
	target := did.SignatoryFromIdentity(to)
	return authorization.Accept(trx, target, target, authId, now)
}
