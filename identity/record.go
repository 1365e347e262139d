// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"encoding/binary"

	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
)

// Record - the stored state of one registered identity
//
// the master key is never removed, only replaced by an attested
// rotation; signing items are the delegated signatories
type Record struct {
	Roles        did.RoleSet
	MasterKey    did.AccountKey
	SigningItems []did.SigningItem
}

// Pack - serialise an identity record
//
// layout:
//   1 byte   role count
//   n bytes  roles
//   32 bytes master key
//   2 bytes  signing item count (big endian)
//   m bytes  packed signing items
func (record *Record) Pack() []byte {

	buffer := make([]byte, 0, 1+len(record.Roles)+did.AccountKeyLength+2+len(record.SigningItems)*did.SigningItemLength)

	buffer = append(buffer, byte(len(record.Roles)))
	for _, role := range record.Roles {
		buffer = append(buffer, byte(role))
	}

	buffer = append(buffer, record.MasterKey[:]...)

	countBuffer := make([]byte, 2)
	binary.BigEndian.PutUint16(countBuffer, uint16(len(record.SigningItems)))
	buffer = append(buffer, countBuffer...)

	for _, item := range record.SigningItems {
		buffer = append(buffer, item.Pack()...)
	}

	return buffer
}

// RecordFromBytes - deserialise an identity record
func RecordFromBytes(buffer []byte) (*Record, error) {

	if len(buffer) < 1 {
		return nil, fault.ErrNotPacked
	}

	roleCount := int(buffer[0])
	n := 1

	if len(buffer) < n+roleCount+did.AccountKeyLength+2 {
		return nil, fault.ErrNotPacked
	}

	roles := make(did.RoleSet, roleCount)
	for i := 0; i < roleCount; i += 1 {
		roles[i] = did.Role(buffer[n+i])
	}
	n += roleCount

	record := &Record{
		Roles: roles,
	}
	copy(record.MasterKey[:], buffer[n:n+did.AccountKeyLength])
	n += did.AccountKeyLength

	itemCount := int(binary.BigEndian.Uint16(buffer[n : n+2]))
	n += 2

	if len(buffer) != n+itemCount*did.SigningItemLength {
		return nil, fault.ErrNotPacked
	}

	items := make([]did.SigningItem, itemCount)
	for i := 0; i < itemCount; i += 1 {
		item, err := did.SigningItemFromBytes(buffer[n : n+did.SigningItemLength])
		if nil != err {
			return nil, err
		}
		items[i] = item
		n += did.SigningItemLength
	}
	record.SigningItems = items

	return record, nil
}
