// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package did

// Role - a role tag attached to an identity at registration
type Role byte

// role tags
const (
	RoleIssuer      Role = 0x01
	RoleClaimIssuer Role = 0x02
	RoleInvestor    Role = 0x03
	RoleValidator   Role = 0x04
	RoleCustodian   Role = 0x05
)

// RoleSet - ordered set of role tags
type RoleSet []Role

// Contains - membership test
func (roles RoleSet) Contains(role Role) bool {
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}
