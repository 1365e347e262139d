// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the ledger state in a key-value store
//
// All state is kept in a single LevelDB database.  Each logical table
// is a pool selected by a single byte key prefix:
//
// Identity layer:
//
//   I ⧺ did          - identity record
//                      data: roles ⧺ master key ⧺ signing items
//   K ⧺ key          - key binding
//                      data: 00 ⧺ did (unique) | 01 ⧺ did… (group)
//   N ⧺ did          - authorization nonce
//                      data: count
//   G                - global id sequence for links and authorizations
//                      data: count
//   F ⧺ did          - marker present while signing items are frozen
//
// Resource chains (intrusive doubly linked lists, id 0 terminates):
//
//   L ⧺ signatory ⧺ id  - link record
//                         data: link data ⧺ expiry ⧺ next ⧺ previous
//   H ⧺ signatory       - head id of the link chain
//   A ⧺ signatory ⧺ id  - authorization record
//                         data: auth data ⧺ issuer ⧺ nonce ⧺ expiry ⧺ next ⧺ previous
//   B ⧺ signatory       - head id of the authorization chain
//
// Claims and compliance:
//
//   C ⧺ did ⧺ claim key ⧺ issuer - claim record
//                                  data: expiry ⧺ value type ⧺ value
//   R ⧺ ticker                   - asset transfer rule lists
//
// Asset registries:
//
//   T ⧺ ticker       - ticker registration: owner ⧺ expiry ⧺ link id
//   E ⧺ ticker       - token record: owner ⧺ link id
//
//   Z ⧺ …            - reserved for testing
//
// Writes are batched in a Transaction and only reach the database on
// Commit, so a failed operation leaves no partial mutation behind.
package storage
