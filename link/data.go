// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package link

import (
	"fmt"

	"github.com/monitz87/Polymesh/fault"
	"github.com/monitz87/Polymesh/ticker"
)

// DataTag - discriminator for the link payload variants
type DataTag byte

// closed set of link payload variants
const (
	NoData        DataTag = 0x00
	DocumentOwned DataTag = 0x01 // 32 byte document digest
	TickerOwned   DataTag = 0x02 // 12 byte ticker symbol
	TokenOwned    DataTag = 0x03 // 12 byte ticker symbol
)

// DocumentDigestLength - bytes in a document digest
const DocumentDigestLength = 32

// Data - the payload carried by one link
//
// only the field selected by the tag is meaningful
type Data struct {
	Tag      DataTag
	Document [DocumentDigestLength]byte
	Ticker   ticker.Ticker
}

// TickerOwnedData - ticker ownership payload
func TickerOwnedData(symbol ticker.Ticker) Data {
	return Data{
		Tag:    TickerOwned,
		Ticker: symbol,
	}
}

// TokenOwnedData - token ownership payload
func TokenOwnedData(symbol ticker.Ticker) Data {
	return Data{
		Tag:    TokenOwned,
		Ticker: symbol,
	}
}

// DocumentOwnedData - document ownership payload
func DocumentOwnedData(digest [DocumentDigestLength]byte) Data {
	return Data{
		Tag:      DocumentOwned,
		Document: digest,
	}
}

// pack the payload: tag byte then the variant bytes
func (data Data) pack() []byte {
	switch data.Tag {
	case NoData:
		return []byte{byte(NoData)}
	case DocumentOwned:
		buffer := make([]byte, 0, 1+DocumentDigestLength)
		buffer = append(buffer, byte(DocumentOwned))
		buffer = append(buffer, data.Document[:]...)
		return buffer
	case TickerOwned, TokenOwned:
		buffer := make([]byte, 0, 1+ticker.Length)
		buffer = append(buffer, byte(data.Tag))
		buffer = append(buffer, data.Ticker.Bytes()...)
		return buffer
	default:
		panic("link: invalid data tag")
	}
}

// unpack the payload
func dataFromBytes(buffer []byte) (Data, error) {
	data := Data{}
	if len(buffer) < 1 {
		return data, fault.ErrNotLinkRecord
	}
	data.Tag = DataTag(buffer[0])
	switch data.Tag {
	case NoData:
		if 1 != len(buffer) {
			return data, fault.ErrNotLinkRecord
		}
	case DocumentOwned:
		if 1+DocumentDigestLength != len(buffer) {
			return data, fault.ErrNotLinkRecord
		}
		copy(data.Document[:], buffer[1:])
	case TickerOwned, TokenOwned:
		if 1+ticker.Length != len(buffer) {
			return data, fault.ErrNotLinkRecord
		}
		copy(data.Ticker[:], buffer[1:])
	default:
		return data, fault.ErrNotLinkRecord
	}
	return data, nil
}

// String - human readable payload for diagnostics
func (data Data) String() string {
	switch data.Tag {
	case NoData:
		return "no data"
	case DocumentOwned:
		return fmt.Sprintf("document: %x", data.Document)
	case TickerOwned:
		return fmt.Sprintf("ticker owned: %s", data.Ticker)
	case TokenOwned:
		return fmt.Sprintf("token owned: %s", data.Ticker)
	default:
		return "invalid"
	}
}
