// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/storage"
)

// single key inside the sequence pool
var sequenceKey = []byte{0x00}

// NextSequence - draw the next value from the global id sequence
//
// values start at 1; zero is reserved as a list terminator
func NextSequence(trx storage.Transaction) uint64 {
	sequence, _ := trx.GetN(storage.Pool.Sequence, sequenceKey)
	sequence += 1
	trx.PutN(storage.Pool.Sequence, sequenceKey, sequence)
	return sequence
}

// Nonce - current authorization nonce of an identity
//
// an unregistered or fresh identity reads as zero
func Nonce(identity did.IdentityId) uint64 {
	nonce, _ := storage.Pool.Nonces.GetN(identity.Bytes())
	return nonce
}

// IncrementNonce - advance the authorization nonce of an identity
//
// this invalidates every pending authorization created against the
// previous nonce
func IncrementNonce(trx storage.Transaction, identity did.IdentityId) uint64 {
	nonce, _ := trx.GetN(storage.Pool.Nonces, identity.Bytes())
	nonce += 1
	trx.PutN(storage.Pool.Nonces, identity.Bytes(), nonce)
	return nonce
}
