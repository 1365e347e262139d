// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package claim

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/monitz87/Polymesh/fault"
)

// DataType - wire type of a claim value
type DataType byte

// closed set of claim value types
const (
	U8    DataType = 0x01
	U16   DataType = 0x02
	U32   DataType = 0x03
	U64   DataType = 0x04
	Bool  DataType = 0x05
	Bytes DataType = 0x06
)

// expected payload size per type; -1 for variable
func (t DataType) payloadLength() int {
	switch t {
	case U8:
		return 1
	case U16:
		return 2
	case U32:
		return 4
	case U64:
		return 8
	case Bool:
		return 1
	case Bytes:
		return -1
	default:
		return 0
	}
}

// Value - a typed claim value
//
// numeric payloads are big endian; a bool is a single 0x00/0x01 byte
type Value struct {
	Type  DataType
	Value []byte
}

// typed constructors

// U8Value - one byte unsigned
func U8Value(v uint8) Value {
	return Value{Type: U8, Value: []byte{v}}
}

// U16Value - two byte unsigned
func U16Value(v uint16) Value {
	buffer := make([]byte, 2)
	binary.BigEndian.PutUint16(buffer, v)
	return Value{Type: U16, Value: buffer}
}

// U32Value - four byte unsigned
func U32Value(v uint32) Value {
	buffer := make([]byte, 4)
	binary.BigEndian.PutUint32(buffer, v)
	return Value{Type: U32, Value: buffer}
}

// U64Value - eight byte unsigned
func U64Value(v uint64) Value {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, v)
	return Value{Type: U64, Value: buffer}
}

// BoolValue - single byte flag
func BoolValue(v bool) Value {
	b := byte(0x00)
	if v {
		b = 0x01
	}
	return Value{Type: Bool, Value: []byte{b}}
}

// BytesValue - opaque bytes
func BytesValue(v []byte) Value {
	return Value{Type: Bytes, Value: v}
}

// IsValid - check the payload size fits the type
//
// variable payloads are capped by the two byte length prefix
func (v Value) IsValid() bool {
	expected := v.Type.payloadLength()
	if -1 == expected {
		return len(v.Value) <= math.MaxUint16
	}
	return expected == len(v.Value)
}

// Equal - same type and same payload
func (v Value) Equal(other Value) bool {
	return v.Type == other.Type && bytes.Equal(v.Value, other.Value)
}

// Pack - type byte ⧺ 2 byte length ⧺ payload
func (v Value) Pack() []byte {
	buffer := make([]byte, 0, 3+len(v.Value))
	buffer = append(buffer, byte(v.Type))
	lengthBuffer := make([]byte, 2)
	binary.BigEndian.PutUint16(lengthBuffer, uint16(len(v.Value)))
	buffer = append(buffer, lengthBuffer...)
	return append(buffer, v.Value...)
}

// ValueFromBytes - unpack a typed value, returning the bytes consumed
func ValueFromBytes(buffer []byte) (Value, int, error) {
	v := Value{}
	if len(buffer) < 3 {
		return v, 0, fault.ErrNotPacked
	}
	v.Type = DataType(buffer[0])
	length := int(binary.BigEndian.Uint16(buffer[1:3]))
	if len(buffer) < 3+length {
		return v, 0, fault.ErrNotPacked
	}
	v.Value = make([]byte, length)
	copy(v.Value, buffer[3:3+length])
	if !v.IsValid() {
		return v, 0, fault.ErrNotPacked
	}
	return v, 3 + length, nil
}

// String - diagnostic form
func (v Value) String() string {
	switch v.Type {
	case U8, U16, U32, U64:
		n := uint64(0)
		for _, b := range v.Value {
			n = n<<8 | uint64(b)
		}
		return fmt.Sprintf("%d", n)
	case Bool:
		if 1 == len(v.Value) && 0x01 == v.Value[0] {
			return "true"
		}
		return "false"
	case Bytes:
		return fmt.Sprintf("%x", v.Value)
	default:
		return "invalid"
	}
}
