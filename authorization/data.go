// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package authorization

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
	"github.com/monitz87/Polymesh/ticker"
)

// DataTag - discriminator for the authorization payload variants
type DataTag byte

// closed set of authorization payload variants
const (
	NoData                  DataTag = 0x00
	RotateMasterKey         DataTag = 0x01 // 32 byte replacement key
	AttestMasterKeyRotation DataTag = 0x02 // 32 byte identity being rotated
	TransferTicker          DataTag = 0x03 // 12 byte ticker symbol
	TransferTokenOwnership  DataTag = 0x04 // 12 byte ticker symbol
	AddMultiSigSigner       DataTag = 0x05
	Custom                  DataTag = 0x06 // length prefixed bytes
)

// Data - the payload carried by one authorization
//
// only the field selected by the tag is meaningful
type Data struct {
	Tag      DataTag
	Key      did.AccountKey // RotateMasterKey
	Identity did.IdentityId // AttestMasterKeyRotation
	Ticker   ticker.Ticker  // TransferTicker, TransferTokenOwnership
	Custom   []byte         // Custom
}

// EmptyData - payload free authorization
func EmptyData() Data {
	return Data{
		Tag: NoData,
	}
}

// RotateMasterKeyData - master key replacement payload
func RotateMasterKeyData(key did.AccountKey) Data {
	return Data{
		Tag: RotateMasterKey,
		Key: key,
	}
}

// AttestMasterKeyRotationData - rotation attestation payload
func AttestMasterKeyRotationData(identity did.IdentityId) Data {
	return Data{
		Tag:      AttestMasterKeyRotation,
		Identity: identity,
	}
}

// TransferTickerData - ticker registration transfer payload
func TransferTickerData(symbol ticker.Ticker) Data {
	return Data{
		Tag:    TransferTicker,
		Ticker: symbol,
	}
}

// TransferTokenOwnershipData - token ownership transfer payload
func TransferTokenOwnershipData(symbol ticker.Ticker) Data {
	return Data{
		Tag:    TransferTokenOwnership,
		Ticker: symbol,
	}
}

// AddMultiSigSignerData - multisig signer admission payload
func AddMultiSigSignerData() Data {
	return Data{
		Tag: AddMultiSigSigner,
	}
}

// CustomData - opaque payload
func CustomData(payload []byte) Data {
	return Data{
		Tag:    Custom,
		Custom: payload,
	}
}

// reject a payload that cannot survive a pack round trip
//
// the custom variant carries a two byte length prefix
func (data Data) check() error {
	switch data.Tag {
	case NoData, RotateMasterKey, AttestMasterKeyRotation,
		TransferTicker, TransferTokenOwnership, AddMultiSigSigner:
		return nil
	case Custom:
		if len(data.Custom) > math.MaxUint16 {
			return fault.ErrInvalidLength
		}
		return nil
	default:
		return fault.ErrWrongAuthorizationType
	}
}

// pack the payload: tag byte then the variant bytes
func (data Data) pack() []byte {
	switch data.Tag {
	case NoData, AddMultiSigSigner:
		return []byte{byte(data.Tag)}
	case RotateMasterKey:
		buffer := make([]byte, 0, 1+did.AccountKeyLength)
		buffer = append(buffer, byte(RotateMasterKey))
		buffer = append(buffer, data.Key[:]...)
		return buffer
	case AttestMasterKeyRotation:
		buffer := make([]byte, 0, 1+did.IdentityIdLength)
		buffer = append(buffer, byte(AttestMasterKeyRotation))
		buffer = append(buffer, data.Identity[:]...)
		return buffer
	case TransferTicker, TransferTokenOwnership:
		buffer := make([]byte, 0, 1+ticker.Length)
		buffer = append(buffer, byte(data.Tag))
		buffer = append(buffer, data.Ticker.Bytes()...)
		return buffer
	case Custom:
		buffer := make([]byte, 0, 1+2+len(data.Custom))
		buffer = append(buffer, byte(Custom))
		lengthBuffer := make([]byte, 2)
		binary.BigEndian.PutUint16(lengthBuffer, uint16(len(data.Custom)))
		buffer = append(buffer, lengthBuffer...)
		buffer = append(buffer, data.Custom...)
		return buffer
	default:
		panic("authorization: invalid data tag")
	}
}

// unpack the payload
func dataFromBytes(buffer []byte) (Data, error) {
	data := Data{}
	if len(buffer) < 1 {
		return data, fault.ErrNotPacked
	}
	data.Tag = DataTag(buffer[0])
	switch data.Tag {
	case NoData, AddMultiSigSigner:
		if 1 != len(buffer) {
			return data, fault.ErrNotPacked
		}
	case RotateMasterKey:
		if 1+did.AccountKeyLength != len(buffer) {
			return data, fault.ErrNotPacked
		}
		copy(data.Key[:], buffer[1:])
	case AttestMasterKeyRotation:
		if 1+did.IdentityIdLength != len(buffer) {
			return data, fault.ErrNotPacked
		}
		copy(data.Identity[:], buffer[1:])
	case TransferTicker, TransferTokenOwnership:
		if 1+ticker.Length != len(buffer) {
			return data, fault.ErrNotPacked
		}
		copy(data.Ticker[:], buffer[1:])
	case Custom:
		if len(buffer) < 3 {
			return data, fault.ErrNotPacked
		}
		length := int(binary.BigEndian.Uint16(buffer[1:3]))
		if 3+length != len(buffer) {
			return data, fault.ErrNotPacked
		}
		data.Custom = make([]byte, length)
		copy(data.Custom, buffer[3:])
	default:
		return data, fault.ErrNotPacked
	}
	return data, nil
}

// String - human readable payload for diagnostics
func (data Data) String() string {
	switch data.Tag {
	case NoData:
		return "no data"
	case RotateMasterKey:
		return fmt.Sprintf("rotate master key to: %s", data.Key)
	case AttestMasterKeyRotation:
		return fmt.Sprintf("attest rotation of: %s", data.Identity)
	case TransferTicker:
		return fmt.Sprintf("transfer ticker: %s", data.Ticker)
	case TransferTokenOwnership:
		return fmt.Sprintf("transfer token: %s", data.Ticker)
	case AddMultiSigSigner:
		return "add multisig signer"
	case Custom:
		return fmt.Sprintf("custom: %x", data.Custom)
	default:
		return "invalid"
	}
}
