// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package did

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/monitz87/Polymesh/fault"
)

// AccountKeyLength - number of bytes in a public key identifier
const AccountKeyLength = 32

// AccountKey - fixed size public key identifier
//
// signature verification happens outside of this core: an AccountKey
// is only ever compared for equality and used as a storage key
type AccountKey [AccountKeyLength]byte

// AccountKeyFromBytes - convert a byte slice to an account key
func AccountKeyFromBytes(key *AccountKey, buffer []byte) error {
	if AccountKeyLength != len(buffer) {
		return fault.ErrCannotDecodeAccountKey
	}
	copy(key[:], buffer)
	return nil
}

// AccountKeyFromBase58 - decode the checksummed Base58 text form
func AccountKeyFromBase58(s string) (AccountKey, error) {
	key := AccountKey{}
	decoded, err := base58.Decode(s)
	if nil != err {
		return key, fault.ErrCannotDecodeAccountKey
	}
	if AccountKeyLength+checksumLength != len(decoded) {
		return key, fault.ErrCannotDecodeAccountKey
	}
	checksum := sha3.Sum256(decoded[:AccountKeyLength])
	if !bytes.Equal(checksum[:checksumLength], decoded[AccountKeyLength:]) {
		return key, fault.ErrChecksumMismatch
	}
	copy(key[:], decoded[:AccountKeyLength])
	return key, nil
}

// Bytes - byte slice for storage keys
func (key AccountKey) Bytes() []byte {
	return key[:]
}

// String - checksummed Base58 text form
func (key AccountKey) String() string {
	checksum := sha3.Sum256(key[:])
	buffer := make([]byte, 0, AccountKeyLength+checksumLength)
	buffer = append(buffer, key[:]...)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - for JSON output
func (key AccountKey) MarshalText() ([]byte, error) {
	return []byte(key.String()), nil
}

// UnmarshalText - convert checksummed Base58 text to an account key
func (key *AccountKey) UnmarshalText(s []byte) error {
	k, err := AccountKeyFromBase58(string(s))
	if nil != err {
		return err
	}
	*key = k
	return nil
}
