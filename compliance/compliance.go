// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package compliance - claim predicates gating token transfers
//
// each token carries one asset rule; a transfer is allowed only when
// every sender predicate holds for the sender and every receiver
// predicate for the receiver. a token with no rule set allows nothing
package compliance

import (
	"bytes"
	"encoding/binary"

	"github.com/monitz87/Polymesh/claim"
	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
	"github.com/monitz87/Polymesh/storage"
	"github.com/monitz87/Polymesh/ticker"
)

// OwnershipCheck - verifies a caller controls a token
//
// the asset registry registers its check here during initialisation;
// the indirection keeps this package free of asset imports
type OwnershipCheck func(symbol ticker.Ticker, caller did.Signatory) error

var ownershipCheck OwnershipCheck

// RegisterOwnershipCheck - install the token ownership check
func RegisterOwnershipCheck(check OwnershipCheck) {
	ownershipCheck = check
}

// SetRule - attach or replace the asset rule of a token
//
// only the token owner's side may set rules
func SetRule(trx storage.Transaction, caller did.Signatory, symbol ticker.Ticker, rule AssetRule) error {

	if nil == ownershipCheck {
		return fault.ErrNotInitialised
	}
	err := ownershipCheck(symbol, caller)
	if nil != err {
		return err
	}

	err = rule.check()
	if nil != err {
		return err
	}

	trx.Put(storage.Pool.Rules, symbol.Bytes(), rule.Pack())
	return nil
}

// RuleFor - the asset rule of a token
func RuleFor(symbol ticker.Ticker) (*AssetRule, error) {
	buffer := storage.Pool.Rules.Get(symbol.Bytes())
	if nil == buffer {
		return nil, fault.ErrRuleNotFound
	}
	return AssetRuleFromBytes(buffer)
}

// CanTransfer - evaluate the asset rule for one proposed transfer
//
// a missing rule denies; expired claims never satisfy a predicate
func CanTransfer(symbol ticker.Ticker, sender did.IdentityId, receiver did.IdentityId, now uint64) bool {

	assetRule, err := RuleFor(symbol)
	if nil != err {
		return false
	}

	for i := range assetRule.SenderRules {
		if !ruleSatisfied(sender, &assetRule.SenderRules[i], now) {
			return false
		}
	}
	for i := range assetRule.ReceiverRules {
		if !ruleSatisfied(receiver, &assetRule.ReceiverRules[i], now) {
			return false
		}
	}
	return true
}

// a predicate holds when any visible claim from a trusted issuer
// satisfies the comparison
func ruleSatisfied(target did.IdentityId, rule *Rule, now uint64) bool {

	claims, err := claim.ClaimsFor(target, rule.Key)
	if nil != err {
		return false
	}

claims:
	for i := range claims {
		c := &claims[i]
		if !c.IsVisible(now) {
			continue claims
		}
		if !issuerTrusted(rule, c.Issuer) {
			continue claims
		}
		if compare(c.Value, rule.Operator, rule.Value) {
			return true
		}
	}
	return false
}

// an empty trusted issuer list trusts every issuer
func issuerTrusted(rule *Rule, issuer did.IdentityId) bool {
	if 0 == len(rule.TrustedIssuers) {
		return true
	}
	for _, trusted := range rule.TrustedIssuers {
		if issuer == trusted {
			return true
		}
	}
	return false
}

// typed comparison of a claim value against a rule value
//
// values of different types never compare true
func compare(have claim.Value, operator Operator, want claim.Value) bool {

	if have.Type != want.Type {
		return false
	}

	ordering := 0
	switch have.Type {
	case claim.U8, claim.U16, claim.U32, claim.U64, claim.Bool:
		haveNumber := beUint64(have.Value)
		wantNumber := beUint64(want.Value)
		if haveNumber < wantNumber {
			ordering = -1
		} else if haveNumber > wantNumber {
			ordering = 1
		}
	case claim.Bytes:
		ordering = bytes.Compare(have.Value, want.Value)
	default:
		return false
	}

	switch operator {
	case EqualTo:
		return 0 == ordering
	case NotEqualTo:
		return 0 != ordering
	case LessThan:
		return ordering < 0
	case GreaterThan:
		return ordering > 0
	case LessOrEqualTo:
		return ordering <= 0
	case GreaterOrEqualTo:
		return ordering >= 0
	default:
		return false
	}
}

// big endian bytes to uint64, short payloads zero extended
func beUint64(buffer []byte) uint64 {
	padded := make([]byte, 8)
	copy(padded[8-len(buffer):], buffer)
	return binary.BigEndian.Uint64(padded)
}
