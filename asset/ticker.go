// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
	"github.com/monitz87/Polymesh/identity"
	"github.com/monitz87/Polymesh/link"
	"github.com/monitz87/Polymesh/storage"
	"github.com/monitz87/Polymesh/ticker"
)

// resolve a caller to the identity it acts for
func callerIdentity(caller did.Signatory) (did.IdentityId, error) {
	if caller.IsIdentity() {
		return caller.Identity, nil
	}
	return identity.ResolveUnique(caller.Key)
}

// TickerRegistrationFor - current registration of a ticker symbol
func TickerRegistrationFor(symbol ticker.Ticker) (*TickerRegistration, error) {
	buffer := storage.Pool.Tickers.Get(symbol.Bytes())
	if nil == buffer {
		return nil, fault.ErrTickerNotFound
	}
	return tickerRegistrationFromBytes(buffer)
}

// IsTickerAvailable - a symbol is free when no token exists and any
// registration has lapsed
func IsTickerAvailable(symbol ticker.Ticker, now uint64) bool {
	if storage.Pool.Tokens.Has(symbol.Bytes()) {
		return false
	}
	registration, err := TickerRegistrationFor(symbol)
	if nil != err {
		return true
	}
	return registration.IsExpired(now)
}

// RegisterTicker - claim a ticker symbol for a limited period
//
// a lapsed claim may be taken over; the stale owner's link is removed
// as part of the takeover
func RegisterTicker(trx storage.Transaction, caller did.Signatory, symbol ticker.Ticker, expiry uint64, now uint64) error {

	// a claim lapsed at birth is useless
	if 0 != expiry && expiry <= now {
		return fault.ErrExpiryInPast
	}

	owner, err := callerIdentity(caller)
	if nil != err {
		return err
	}

	if storage.Pool.Tokens.Has(symbol.Bytes()) {
		return fault.ErrTickerAlreadyRegistered
	}

	registration, err := TickerRegistrationFor(symbol)
	if nil == err {
		if !registration.IsExpired(now) {
			return fault.ErrTickerAlreadyRegistered
		}

		// lapsed claim: drop the stale owner's link
		staleOwner := did.SignatoryFromIdentity(registration.Owner)
		err = link.Remove(trx, staleOwner, registration.LinkId)
		if nil != err && !fault.IsErrNotFound(err) {
			return err
		}
	} else if !fault.IsErrNotFound(err) {
		return err
	}

	linkId := link.Add(trx, did.SignatoryFromIdentity(owner), link.TickerOwnedData(symbol), expiry)

	registration = &TickerRegistration{
		Owner:  owner,
		Expiry: expiry,
		LinkId: linkId,
	}
	trx.Put(storage.Pool.Tickers, symbol.Bytes(), registration.pack())

	globalData.log.Infof("ticker: %s registered to: %s", symbol, owner)

	return nil
}
