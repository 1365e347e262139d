// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compliance

import (
	"encoding/binary"
	"math"

	"github.com/monitz87/Polymesh/claim"
	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/fault"
)

// Operator - the comparison a rule applies to a claim value
type Operator byte

// closed set of comparison operators
const (
	EqualTo          Operator = 0x01
	NotEqualTo       Operator = 0x02
	LessThan         Operator = 0x03
	GreaterThan      Operator = 0x04
	LessOrEqualTo    Operator = 0x05
	GreaterOrEqualTo Operator = 0x06
)

// Rule - one predicate over the claims of a transfer party
//
// an empty trusted issuer list trusts every issuer
type Rule struct {
	Key            []byte
	Value          claim.Value
	Operator       Operator
	TrustedIssuers []did.IdentityId
}

// AssetRule - the conjunctive rule sets attached to one token
//
// every sender rule must hold for the sender and every receiver rule
// for the receiver
type AssetRule struct {
	SenderRules   []Rule
	ReceiverRules []Rule
}

// reject rules whose counts or lengths overflow their prefixes
func checkRules(rules []Rule) error {
	if len(rules) > math.MaxUint16 {
		return fault.ErrInvalidLength
	}
	for i := range rules {
		rule := &rules[i]
		if len(rule.Key) > math.MaxUint16 {
			return fault.ErrInvalidLength
		}
		if !rule.Value.IsValid() {
			return fault.ErrNotPacked
		}
		if len(rule.TrustedIssuers) > math.MaxUint16 {
			return fault.ErrInvalidLength
		}
	}
	return nil
}

func (assetRule *AssetRule) check() error {
	err := checkRules(assetRule.SenderRules)
	if nil != err {
		return err
	}
	return checkRules(assetRule.ReceiverRules)
}

// pack one rule:
//   2 bytes key length ⧺ key
//   packed value
//   1 byte operator
//   2 bytes issuer count ⧺ 32 bytes per issuer
func (rule *Rule) pack() []byte {

	buffer := make([]byte, 0, 2+len(rule.Key)+3+len(rule.Value.Value)+1+2+len(rule.TrustedIssuers)*did.IdentityIdLength)

	keyLength := make([]byte, 2)
	binary.BigEndian.PutUint16(keyLength, uint16(len(rule.Key)))
	buffer = append(buffer, keyLength...)
	buffer = append(buffer, rule.Key...)

	buffer = append(buffer, rule.Value.Pack()...)
	buffer = append(buffer, byte(rule.Operator))

	issuerCount := make([]byte, 2)
	binary.BigEndian.PutUint16(issuerCount, uint16(len(rule.TrustedIssuers)))
	buffer = append(buffer, issuerCount...)
	for _, issuer := range rule.TrustedIssuers {
		buffer = append(buffer, issuer[:]...)
	}

	return buffer
}

// unpack one rule, returning the bytes consumed
func ruleFromBytes(buffer []byte) (Rule, int, error) {

	rule := Rule{}
	if len(buffer) < 2 {
		return rule, 0, fault.ErrNotPacked
	}

	keyLength := int(binary.BigEndian.Uint16(buffer[0:2]))
	n := 2
	if len(buffer) < n+keyLength {
		return rule, 0, fault.ErrNotPacked
	}
	rule.Key = make([]byte, keyLength)
	copy(rule.Key, buffer[n:n+keyLength])
	n += keyLength

	value, consumed, err := claim.ValueFromBytes(buffer[n:])
	if nil != err {
		return rule, 0, err
	}
	rule.Value = value
	n += consumed

	if len(buffer) < n+3 {
		return rule, 0, fault.ErrNotPacked
	}
	rule.Operator = Operator(buffer[n])
	n += 1

	issuerCount := int(binary.BigEndian.Uint16(buffer[n : n+2]))
	n += 2
	if len(buffer) < n+issuerCount*did.IdentityIdLength {
		return rule, 0, fault.ErrNotPacked
	}
	if issuerCount > 0 {
		issuers := make([]did.IdentityId, issuerCount)
		for i := 0; i < issuerCount; i += 1 {
			copy(issuers[i][:], buffer[n:])
			n += did.IdentityIdLength
		}
		rule.TrustedIssuers = issuers
	}

	return rule, n, nil
}

func packRules(rules []Rule) []byte {
	buffer := make([]byte, 2)
	binary.BigEndian.PutUint16(buffer, uint16(len(rules)))
	for i := range rules {
		buffer = append(buffer, rules[i].pack()...)
	}
	return buffer
}

func rulesFromBytes(buffer []byte) ([]Rule, int, error) {
	if len(buffer) < 2 {
		return nil, 0, fault.ErrNotPacked
	}
	count := int(binary.BigEndian.Uint16(buffer[0:2]))
	n := 2
	if 0 == count {
		return nil, n, nil
	}
	rules := make([]Rule, count)
	for i := 0; i < count; i += 1 {
		rule, consumed, err := ruleFromBytes(buffer[n:])
		if nil != err {
			return nil, 0, err
		}
		rules[i] = rule
		n += consumed
	}
	return rules, n, nil
}

// Pack - serialise an asset rule
func (assetRule *AssetRule) Pack() []byte {
	buffer := packRules(assetRule.SenderRules)
	return append(buffer, packRules(assetRule.ReceiverRules)...)
}

// AssetRuleFromBytes - deserialise an asset rule
func AssetRuleFromBytes(buffer []byte) (*AssetRule, error) {
	senderRules, n, err := rulesFromBytes(buffer)
	if nil != err {
		return nil, err
	}
	receiverRules, m, err := rulesFromBytes(buffer[n:])
	if nil != err {
		return nil, err
	}
	if n+m != len(buffer) {
		return nil, fault.ErrNotPacked
	}
	return &AssetRule{
		SenderRules:   senderRules,
		ReceiverRules: receiverRules,
	}, nil
}
