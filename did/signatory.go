// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package did

import (
	"github.com/monitz87/Polymesh/fault"
)

// SignatoryTag - discriminator for the signatory variants
type SignatoryTag byte

// closed set of signatory variants
const (
	SignatoryIdentity SignatoryTag = 0x01 // an on-ledger identity
	SignatoryKey      SignatoryTag = 0x02 // an external account key
)

// SignatoryLength - bytes in the packed form: tag + 32 byte payload
const SignatoryLength = 1 + 32

// Signatory - an entity able to act on behalf of an identity
//
// either an identity or a bare account key; the unused field is zero
type Signatory struct {
	Tag      SignatoryTag
	Identity IdentityId
	Key      AccountKey
}

// SignatoryFromIdentity - identity variant
func SignatoryFromIdentity(identity IdentityId) Signatory {
	return Signatory{
		Tag:      SignatoryIdentity,
		Identity: identity,
	}
}

// SignatoryFromKey - account key variant
func SignatoryFromKey(key AccountKey) Signatory {
	return Signatory{
		Tag: SignatoryKey,
		Key: key,
	}
}

// SignatoryFromBytes - unpack a signatory from its storage form
func SignatoryFromBytes(buffer []byte) (Signatory, error) {
	signatory := Signatory{}
	if SignatoryLength != len(buffer) {
		return signatory, fault.ErrNotPacked
	}
	switch SignatoryTag(buffer[0]) {
	case SignatoryIdentity:
		signatory.Tag = SignatoryIdentity
		copy(signatory.Identity[:], buffer[1:])
	case SignatoryKey:
		signatory.Tag = SignatoryKey
		copy(signatory.Key[:], buffer[1:])
	default:
		return signatory, fault.ErrNotPacked
	}
	return signatory, nil
}

// Bytes - packed form, usable as a storage key component
func (signatory Signatory) Bytes() []byte {
	buffer := make([]byte, 0, SignatoryLength)
	buffer = append(buffer, byte(signatory.Tag))
	switch signatory.Tag {
	case SignatoryIdentity:
		buffer = append(buffer, signatory.Identity[:]...)
	case SignatoryKey:
		buffer = append(buffer, signatory.Key[:]...)
	default:
		// zero tag would corrupt the key space
		panic("did: invalid signatory tag")
	}
	return buffer
}

// String - text form of the active variant
func (signatory Signatory) String() string {
	switch signatory.Tag {
	case SignatoryIdentity:
		return signatory.Identity.String()
	case SignatoryKey:
		return signatory.Key.String()
	default:
		return "invalid"
	}
}

// Equal - compare two signatories
func (signatory Signatory) Equal(other Signatory) bool {
	return signatory.Tag == other.Tag &&
		signatory.Identity == other.Identity &&
		signatory.Key == other.Key
}

// IsIdentity - true for the identity variant
func (signatory Signatory) IsIdentity() bool {
	return SignatoryIdentity == signatory.Tag
}
