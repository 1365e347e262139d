// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"encoding/binary"
	"math"

	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
	"github.com/monitz87/Polymesh/storage"
)

// BindingTag - discriminator for the key binding variants
type BindingTag byte

// binding variants
//
// an external key binds uniquely to one identity; a multisig key may
// be shared by a group of identities
const (
	BindingUnique BindingTag = 0x01
	BindingGroup  BindingTag = 0x02
)

// Binding - resolution of an account key to its identities
type Binding struct {
	Tag      BindingTag
	Identity did.IdentityId   // unique variant
	Group    []did.IdentityId // group variant
}

// Pack - serialise a key binding
//
// layout:
//   1 byte   tag
//   unique: 32 bytes identity
//   group:  2 bytes count (big endian) + 32 bytes per identity
func (binding *Binding) Pack() []byte {
	switch binding.Tag {
	case BindingUnique:
		buffer := make([]byte, 0, 1+did.IdentityIdLength)
		buffer = append(buffer, byte(BindingUnique))
		buffer = append(buffer, binding.Identity[:]...)
		return buffer
	case BindingGroup:
		buffer := make([]byte, 0, 1+2+len(binding.Group)*did.IdentityIdLength)
		buffer = append(buffer, byte(BindingGroup))
		countBuffer := make([]byte, 2)
		binary.BigEndian.PutUint16(countBuffer, uint16(len(binding.Group)))
		buffer = append(buffer, countBuffer...)
		for _, identity := range binding.Group {
			buffer = append(buffer, identity[:]...)
		}
		return buffer
	default:
		panic("identity: invalid binding tag")
	}
}

// BindingFromBytes - deserialise a key binding
func BindingFromBytes(buffer []byte) (*Binding, error) {
	if len(buffer) < 1 {
		return nil, fault.ErrNotPacked
	}
	binding := &Binding{
		Tag: BindingTag(buffer[0]),
	}
	switch binding.Tag {
	case BindingUnique:
		if 1+did.IdentityIdLength != len(buffer) {
			return nil, fault.ErrNotPacked
		}
		copy(binding.Identity[:], buffer[1:])
	case BindingGroup:
		if len(buffer) < 3 {
			return nil, fault.ErrNotPacked
		}
		count := int(binary.BigEndian.Uint16(buffer[1:3]))
		if 3+count*did.IdentityIdLength != len(buffer) {
			return nil, fault.ErrNotPacked
		}
		group := make([]did.IdentityId, count)
		for i := 0; i < count; i += 1 {
			copy(group[i][:], buffer[3+i*did.IdentityIdLength:])
		}
		binding.Group = group
	default:
		return nil, fault.ErrNotPacked
	}
	return binding, nil
}

// Resolve - look up the binding of an account key
//
// returns nil without error for an unbound key
func Resolve(key did.AccountKey) (*Binding, error) {
	buffer := storage.Pool.Keys.Get(key.Bytes())
	if nil == buffer {
		return nil, nil
	}
	return BindingFromBytes(buffer)
}

// ResolveUnique - the identity an external key acts for
func ResolveUnique(key did.AccountKey) (did.IdentityId, error) {
	binding, err := Resolve(key)
	if nil != err {
		return did.IdentityId{}, err
	}
	if nil == binding {
		return did.IdentityId{}, fault.ErrKeyNotBound
	}
	if BindingUnique != binding.Tag {
		return did.IdentityId{}, fault.ErrNotIdentityBound
	}
	return binding.Identity, nil
}

// BindKeyUnique - bind an external key exclusively to one identity
//
// fails if the key is bound in any way, unique or group
func BindKeyUnique(trx storage.Transaction, key did.AccountKey, identity did.IdentityId) error {
	binding, err := Resolve(key)
	if nil != err {
		return err
	}
	if nil != binding {
		return fault.ErrKeyAlreadyBound
	}
	binding = &Binding{
		Tag:      BindingUnique,
		Identity: identity,
	}
	trx.Put(storage.Pool.Keys, key.Bytes(), binding.Pack())
	return nil
}

// BindKeyGroup - add an identity to the group a multisig key acts for
//
// fails if the key is already uniquely bound
func BindKeyGroup(trx storage.Transaction, key did.AccountKey, identity did.IdentityId) error {
	binding, err := Resolve(key)
	if nil != err {
		return err
	}
	if nil == binding {
		binding = &Binding{
			Tag: BindingGroup,
		}
	} else if BindingUnique == binding.Tag {
		return fault.ErrKeyAlreadyBound
	}
	for _, member := range binding.Group {
		if identity == member {
			return fault.ErrKeyAlreadyBound
		}
	}
	// the binding stores a two byte member count
	if len(binding.Group) >= math.MaxUint16 {
		return fault.ErrInvalidLength
	}
	binding.Group = append(binding.Group, identity)
	trx.Put(storage.Pool.Keys, key.Bytes(), binding.Pack())
	return nil
}

// UnbindKey - remove the association between a key and an identity
//
// group bindings only shed the one identity; the final member removes
// the whole record
func UnbindKey(trx storage.Transaction, key did.AccountKey, identity did.IdentityId) error {
	binding, err := Resolve(key)
	if nil != err {
		return err
	}
	if nil == binding {
		return fault.ErrKeyNotBound
	}
	switch binding.Tag {
	case BindingUnique:
		if identity != binding.Identity {
			return fault.ErrKeyNotBound
		}
		trx.Delete(storage.Pool.Keys, key.Bytes())
	case BindingGroup:
		group := make([]did.IdentityId, 0, len(binding.Group))
		found := false
		for _, member := range binding.Group {
			if identity == member {
				found = true
				continue
			}
			group = append(group, member)
		}
		if !found {
			return fault.ErrKeyNotBound
		}
		if 0 == len(group) {
			trx.Delete(storage.Pool.Keys, key.Bytes())
		} else {
			binding.Group = group
			trx.Put(storage.Pool.Keys, key.Bytes(), binding.Pack())
		}
	}
	return nil
}
