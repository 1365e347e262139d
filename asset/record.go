// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/binary"

	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
)

// TickerRegistration - a time limited claim on a ticker symbol
type TickerRegistration struct {
	Owner  did.IdentityId
	Expiry uint64 // zero once a token exists
	LinkId uint64 // the owner's TickerOwned link
}

// IsExpired - a claim with a non-zero expiry at or before now is dead
func (registration *TickerRegistration) IsExpired(now uint64) bool {
	return 0 != registration.Expiry && registration.Expiry <= now
}

// layout: owner 32 ⧺ expiry 8 ⧺ link id 8
func (registration *TickerRegistration) pack() []byte {
	buffer := make([]byte, did.IdentityIdLength+16)
	copy(buffer, registration.Owner[:])
	binary.BigEndian.PutUint64(buffer[did.IdentityIdLength:], registration.Expiry)
	binary.BigEndian.PutUint64(buffer[did.IdentityIdLength+8:], registration.LinkId)
	return buffer
}

func tickerRegistrationFromBytes(buffer []byte) (*TickerRegistration, error) {
	if did.IdentityIdLength+16 != len(buffer) {
		return nil, fault.ErrNotPacked
	}
	registration := &TickerRegistration{
		Expiry: binary.BigEndian.Uint64(buffer[did.IdentityIdLength:]),
		LinkId: binary.BigEndian.Uint64(buffer[did.IdentityIdLength+8:]),
	}
	copy(registration.Owner[:], buffer)
	return registration, nil
}

// Token - a live security token
type Token struct {
	Owner  did.IdentityId
	LinkId uint64 // the owner's TokenOwned link
}

// layout: owner 32 ⧺ link id 8
func (token *Token) pack() []byte {
	buffer := make([]byte, did.IdentityIdLength+8)
	copy(buffer, token.Owner[:])
	binary.BigEndian.PutUint64(buffer[did.IdentityIdLength:], token.LinkId)
	return buffer
}

func tokenFromBytes(buffer []byte) (*Token, error) {
	if did.IdentityIdLength+8 != len(buffer) {
		return nil, fault.ErrNotPacked
	}
	token := &Token{
		LinkId: binary.BigEndian.Uint64(buffer[did.IdentityIdLength:]),
	}
	copy(token.Owner[:], buffer)
	return token, nil
}
