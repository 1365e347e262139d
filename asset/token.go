// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/monitz87/Polymesh/compliance"
	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
	"github.com/monitz87/Polymesh/identity"
	"github.com/monitz87/Polymesh/link"
	"github.com/monitz87/Polymesh/storage"
	"github.com/monitz87/Polymesh/ticker"
)

// TokenFor - the live token behind a ticker symbol
func TokenFor(symbol ticker.Ticker) (*Token, error) {
	buffer := storage.Pool.Tokens.Get(symbol.Bytes())
	if nil == buffer {
		return nil, fault.ErrTokenNotFound
	}
	return tokenFromBytes(buffer)
}

// CreateToken - issue a token under a ticker the caller has claimed
//
// the ticker claim becomes permanent: its expiry is cleared and the
// symbol can never lapse back into availability
func CreateToken(trx storage.Transaction, caller did.Signatory, symbol ticker.Ticker, now uint64) error {

	owner, err := callerIdentity(caller)
	if nil != err {
		return err
	}

	if storage.Pool.Tokens.Has(symbol.Bytes()) {
		return fault.ErrTokenAlreadyExists
	}

	registration, err := TickerRegistrationFor(symbol)
	if nil != err {
		return err
	}
	if registration.IsExpired(now) {
		return fault.ErrTickerNotFound
	}
	if owner != registration.Owner {
		return fault.ErrNotAuthorized
	}

	linkId := link.Add(trx, did.SignatoryFromIdentity(owner), link.TokenOwnedData(symbol), 0)

	token := &Token{
		Owner:  owner,
		LinkId: linkId,
	}
	trx.Put(storage.Pool.Tokens, symbol.Bytes(), token.pack())

	// the claim no longer lapses
	registration.Expiry = 0
	trx.Put(storage.Pool.Tickers, symbol.Bytes(), registration.pack())

	globalData.log.Infof("token: %s created by: %s", symbol, owner)

	return nil
}

// token ownership check installed into the compliance module
func checkTokenOwner(symbol ticker.Ticker, caller did.Signatory) error {
	token, err := TokenFor(symbol)
	if nil != err {
		return err
	}
	ok, err := identity.IsSignerAuthorized(token.Owner, caller)
	if nil != err {
		return err
	}
	if !ok {
		return fault.ErrNotAuthorized
	}
	return nil
}

// TransferAllowed - evaluate compliance for one proposed transfer
//
// balance arithmetic stays with the caller; this is only the claims
// compliance verdict
func TransferAllowed(symbol ticker.Ticker, sender did.IdentityId, receiver did.IdentityId, now uint64) bool {
	if !storage.Pool.Tokens.Has(symbol.Bytes()) {
		return false
	}
	return compliance.CanTransfer(symbol, sender, receiver, now)
}
