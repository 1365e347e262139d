// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package did

import (
	"bytes"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/monitz87/Polymesh/fault"
)

// IdentityIdLength - number of bytes in an identity identifier
const IdentityIdLength = 32

// IdentityId - opaque fixed size identifier of an on-ledger identity
//
// never reused and never deleted once registered
type IdentityId [IdentityIdLength]byte

// number of checksum bytes appended to the Base58 text form
const checksumLength = 4

// IdentityIdFromBytes - convert a byte slice to an identity id
func IdentityIdFromBytes(identity *IdentityId, buffer []byte) error {
	if IdentityIdLength != len(buffer) {
		return fault.ErrCannotDecodeIdentity
	}
	copy(identity[:], buffer)
	return nil
}

// IdentityIdFromBase58 - decode the checksummed Base58 text form
func IdentityIdFromBase58(s string) (IdentityId, error) {
	identity := IdentityId{}
	decoded, err := base58.Decode(s)
	if nil != err {
		return identity, fault.ErrCannotDecodeIdentity
	}
	if IdentityIdLength+checksumLength != len(decoded) {
		return identity, fault.ErrCannotDecodeIdentity
	}
	checksum := sha3.Sum256(decoded[:IdentityIdLength])
	if !bytes.Equal(checksum[:checksumLength], decoded[IdentityIdLength:]) {
		return identity, fault.ErrChecksumMismatch
	}
	copy(identity[:], decoded[:IdentityIdLength])
	return identity, nil
}

// Bytes - byte slice for storage keys
func (identity IdentityId) Bytes() []byte {
	return identity[:]
}

// String - checksummed Base58 text form
func (identity IdentityId) String() string {
	checksum := sha3.Sum256(identity[:])
	buffer := make([]byte, 0, IdentityIdLength+checksumLength)
	buffer = append(buffer, identity[:]...)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - for JSON output
func (identity IdentityId) MarshalText() ([]byte, error) {
	return []byte(identity.String()), nil
}

// UnmarshalText - convert checksummed Base58 text to an identity id
func (identity *IdentityId) UnmarshalText(s []byte) error {
	id, err := IdentityIdFromBase58(string(s))
	if nil != err {
		return err
	}
	*identity = id
	return nil
}

// GoString - for %#v
func (identity IdentityId) GoString() string {
	return fmt.Sprintf("did:poly:%x", identity[:])
}
