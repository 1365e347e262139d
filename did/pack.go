// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package did

import (
	"encoding/binary"

	"github.com/monitz87/Polymesh/fault"
)

// Pack - pack a signing item to its fixed width storage form
func (item SigningItem) Pack() []byte {
	buffer := make([]byte, 0, SigningItemLength)
	buffer = append(buffer, item.Signer.Bytes()...)
	buffer = append(buffer, byte(item.Type))

	permissions := make([]byte, 8)
	binary.BigEndian.PutUint64(permissions, uint64(item.Permissions))
	buffer = append(buffer, permissions...)

	return buffer
}

// SigningItemFromBytes - unpack a signing item
func SigningItemFromBytes(buffer []byte) (SigningItem, error) {
	item := SigningItem{}
	if SigningItemLength != len(buffer) {
		return item, fault.ErrNotPacked
	}
	signer, err := SignatoryFromBytes(buffer[:SignatoryLength])
	if nil != err {
		return item, err
	}
	item.Signer = signer
	item.Type = SignerType(buffer[SignatoryLength])
	item.Permissions = PermissionSet(binary.BigEndian.Uint64(buffer[SignatoryLength+1:]))
	return item, nil
}
