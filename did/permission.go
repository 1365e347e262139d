// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package did

// Permission - a single capability bit for a signing item
type Permission uint64

// capability bits
const (
	Full       Permission = 0x01 // implies every other capability
	Admin      Permission = 0x02
	Operator   Permission = 0x04
	SpendFunds Permission = 0x08
)

// PermissionSet - a set of capability bits
type PermissionSet uint64

// NewPermissionSet - build a set from individual permissions
func NewPermissionSet(permissions ...Permission) PermissionSet {
	set := PermissionSet(0)
	for _, p := range permissions {
		set |= PermissionSet(p)
	}
	return set
}

// Has - true if the set covers all required capabilities
//
// Full is a superset of everything
func (set PermissionSet) Has(required PermissionSet) bool {
	if 0 != set&PermissionSet(Full) {
		return true
	}
	return required == set&required
}

// SignerType - how the signing key relates to identities
type SignerType byte

// signer types
//
// external keys bind uniquely to one identity; multisig keys may be
// shared by a group of identities
const (
	SignerExternal SignerType = 0x00
	SignerIdentity SignerType = 0x01
	SignerMultiSig SignerType = 0x02
)

// SigningItemLength - bytes in the packed form
const SigningItemLength = SignatoryLength + 1 + 8

// SigningItem - an authorized signatory of an identity with its capabilities
type SigningItem struct {
	Signer      Signatory
	Type        SignerType
	Permissions PermissionSet
}
