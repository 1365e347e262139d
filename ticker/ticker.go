// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ticker - fixed width asset ticker symbol
package ticker

import (
	"bytes"

	"github.com/monitz87/Polymesh/fault"
)

// Length - number of bytes in a ticker symbol
const Length = 12

// Ticker - upper case ASCII symbol, zero padded to a fixed width
type Ticker [Length]byte

// FromSlice - build a canonical ticker from a byte slice
//
// lower case ASCII is folded to upper case; fails on overlength input
func FromSlice(s []byte) (Ticker, error) {
	symbol := Ticker{}
	if 0 == len(s) || len(s) > Length {
		return symbol, fault.ErrTickerLength
	}
	for i, b := range s {
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		symbol[i] = b
	}
	return symbol, nil
}

// FromString - build a canonical ticker from a string
func FromString(s string) (Ticker, error) {
	return FromSlice([]byte(s))
}

// TickerFromBytes - unpack a ticker from its fixed width storage form
func TickerFromBytes(symbol *Ticker, buffer []byte) error {
	if Length != len(buffer) {
		return fault.ErrTickerLength
	}
	copy(symbol[:], buffer)
	return nil
}

// Bytes - byte slice for storage keys
func (symbol Ticker) Bytes() []byte {
	return symbol[:]
}

// String - trimmed text form
func (symbol Ticker) String() string {
	return string(bytes.TrimRight(symbol[:], "\x00"))
}

// MarshalText - for JSON output
func (symbol Ticker) MarshalText() ([]byte, error) {
	return []byte(symbol.String()), nil
}

// UnmarshalText - canonise a text ticker
func (symbol *Ticker) UnmarshalText(s []byte) error {
	t, err := FromSlice(s)
	if nil != err {
		return err
	}
	*symbol = t
	return nil
}
