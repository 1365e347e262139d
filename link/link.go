// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package link - per-signatory registry of ownership records
//
// links for one signatory form a doubly linked list threaded through
// the key space: each record stores the ids of its neighbours and a
// head pointer tracks the most recently added link, so insertion and
// removal touch a constant number of records however long the list
// grows
package link

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
	"github.com/monitz87/Polymesh/identity"
	"github.com/monitz87/Polymesh/storage"
)

// list terminator; the global sequence never yields zero
const terminator uint64 = 0

// Link - one ownership record of a signatory
type Link struct {
	Id     uint64
	Data   Data
	Expiry uint64 // zero for no expiry

	next uint64
	prev uint64
}

// IsExpired - a link with a non-zero expiry at or before now is dead
func (l *Link) IsExpired(now uint64) bool {
	return 0 != l.Expiry && l.Expiry <= now
}

// storage key: packed signatory ⧺ 8 byte big endian id
func linkKey(signer did.Signatory, id uint64) []byte {
	buffer := make([]byte, 0, did.SignatoryLength+8)
	buffer = append(buffer, signer.Bytes()...)

	idBuffer := make([]byte, 8)
	binary.BigEndian.PutUint64(idBuffer, id)
	return append(buffer, idBuffer...)
}

// record layout: expiry 8 ⧺ next 8 ⧺ prev 8 ⧺ packed payload
func (l *Link) pack() []byte {
	buffer := make([]byte, 24, 24+1+DocumentDigestLength)
	binary.BigEndian.PutUint64(buffer[0:8], l.Expiry)
	binary.BigEndian.PutUint64(buffer[8:16], l.next)
	binary.BigEndian.PutUint64(buffer[16:24], l.prev)
	return append(buffer, l.Data.pack()...)
}

func linkFromBytes(id uint64, buffer []byte) (*Link, error) {
	if len(buffer) < 25 {
		return nil, fault.ErrNotLinkRecord
	}
	data, err := dataFromBytes(buffer[24:])
	if nil != err {
		return nil, err
	}
	return &Link{
		Id:     id,
		Data:   data,
		Expiry: binary.BigEndian.Uint64(buffer[0:8]),
		next:   binary.BigEndian.Uint64(buffer[8:16]),
		prev:   binary.BigEndian.Uint64(buffer[16:24]),
	}, nil
}

// Get - fetch one link of a signatory
func Get(signer did.Signatory, id uint64) (*Link, error) {
	buffer := storage.Pool.Links.Get(linkKey(signer, id))
	if nil == buffer {
		return nil, fault.ErrLinkNotFound
	}
	return linkFromBytes(id, buffer)
}

// a neighbour named by a live record must exist
func mustGet(signer did.Signatory, id uint64) *Link {
	l, err := Get(signer, id)
	if nil != err {
		logger.Panicf("link: broken list for signer: %s at id: %d  error: %s", signer, id, err)
	}
	return l
}

// Add - append a link to a signatory's list
//
// returns the id drawn from the global sequence
func Add(trx storage.Transaction, signer did.Signatory, data Data, expiry uint64) uint64 {

	id := identity.NextSequence(trx)

	last, _ := trx.GetN(storage.Pool.LinkHeads, signer.Bytes())

	l := &Link{
		Id:     id,
		Data:   data,
		Expiry: expiry,
		next:   terminator,
		prev:   last,
	}

	if terminator != last {
		previous := mustGet(signer, last)
		previous.next = id
		trx.Put(storage.Pool.Links, linkKey(signer, last), previous.pack())
	}

	trx.Put(storage.Pool.Links, linkKey(signer, id), l.pack())
	trx.PutN(storage.Pool.LinkHeads, signer.Bytes(), id)

	return id
}

// Remove - unlink and delete one link of a signatory
func Remove(trx storage.Transaction, signer did.Signatory, id uint64) error {

	l, err := Get(signer, id)
	if nil != err {
		return err
	}

	if terminator != l.prev {
		previous := mustGet(signer, l.prev)
		previous.next = l.next
		trx.Put(storage.Pool.Links, linkKey(signer, l.prev), previous.pack())
	}

	if terminator != l.next {
		following := mustGet(signer, l.next)
		following.prev = l.prev
		trx.Put(storage.Pool.Links, linkKey(signer, l.next), following.pack())
	} else {
		// removing the newest link moves the head back
		if terminator == l.prev {
			trx.Delete(storage.Pool.LinkHeads, signer.Bytes())
		} else {
			trx.PutN(storage.Pool.LinkHeads, signer.Bytes(), l.prev)
		}
	}

	trx.Delete(storage.Pool.Links, linkKey(signer, id))

	return nil
}

// ListFor - all links of a signatory in insertion order
func ListFor(signer did.Signatory) []Link {

	id, found := storage.Pool.LinkHeads.GetN(signer.Bytes())
	if !found {
		return nil
	}

	links := []Link(nil)
	for terminator != id {
		l := mustGet(signer, id)
		links = append(links, *l)
		id = l.prev
	}

	// walked newest to oldest
	for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
		links[i], links[j] = links[j], links[i]
	}
	return links
}
