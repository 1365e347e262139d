// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package did - primitive types for the identity layer
//
// An identity (DID) is a permanent on-ledger principal, distinct from
// any single cryptographic key.  Keys and identities can both act as
// signatories for an identity, subject to a permission set recorded in
// the identity's signing items.
//
// All types here are fixed size so that they can be used directly as
// storage keys and packed into storage records.
package did
