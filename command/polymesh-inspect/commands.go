// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/monitz87/Polymesh/authorization"
	"github.com/monitz87/Polymesh/claim"
	"github.com/monitz87/Polymesh/did"
	"github.com/monitz87/Polymesh/identity"
	"github.com/monitz87/Polymesh/link"
)

// parse a command argument as identity or account key text form
func signatoryFromArgument(argument string) (did.Signatory, error) {
	id, err := did.IdentityIdFromBase58(argument)
	if nil == err {
		return did.SignatoryFromIdentity(id), nil
	}
	key, err := did.AccountKeyFromBase58(argument)
	if nil == err {
		return did.SignatoryFromKey(key), nil
	}
	return did.Signatory{}, fmt.Errorf("not an identity or account key: %q", argument)
}

func runIdentity(c *cli.Context) error {

	argument := c.Args().Get(0)
	if "" == argument {
		return fmt.Errorf("missing DID argument")
	}
	id, err := did.IdentityIdFromBase58(argument)
	if nil != err {
		return err
	}

	record, err := identity.FetchRecord(id)
	if nil != err {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "identity:   %s\n", id)
	fmt.Fprintf(w, "master key: %s\n", record.MasterKey)
	fmt.Fprintf(w, "roles:      %v\n", record.Roles)
	fmt.Fprintf(w, "nonce:      %d\n", identity.Nonce(id))
	fmt.Fprintf(w, "frozen:     %t\n", identity.IsFrozen(id))
	fmt.Fprintf(w, "signing items: %d\n", len(record.SigningItems))
	for i, item := range record.SigningItems {
		fmt.Fprintf(w, "  %d: signer: %s  type: %d  permissions: %x\n",
			i, item.Signer, item.Type, uint64(item.Permissions))
	}
	return nil
}

func runLinks(c *cli.Context) error {

	argument := c.Args().Get(0)
	if "" == argument {
		return fmt.Errorf("missing DID|KEY argument")
	}
	signer, err := signatoryFromArgument(argument)
	if nil != err {
		return err
	}

	now := c.GlobalUint64("now")

	w := c.App.Writer
	for _, l := range link.ListFor(signer) {
		status := ""
		if 0 != now && l.IsExpired(now) {
			status = "  (expired)"
		}
		fmt.Fprintf(w, "%d: %s  expiry: %d%s\n", l.Id, l.Data, l.Expiry, status)
	}
	return nil
}

func runPending(c *cli.Context) error {

	argument := c.Args().Get(0)
	if "" == argument {
		return fmt.Errorf("missing DID|KEY argument")
	}
	target, err := signatoryFromArgument(argument)
	if nil != err {
		return err
	}

	now := c.GlobalUint64("now")

	w := c.App.Writer
	for _, auth := range authorization.PendingFor(target) {
		status := ""
		if 0 != now && auth.IsExpired(now) {
			status = "  (expired)"
		}
		fmt.Fprintf(w, "%d: %s  by: %s  nonce: %d  expiry: %d%s\n",
			auth.Id, auth.Data, auth.AuthorizedBy, auth.Nonce, auth.Expiry, status)
	}
	return nil
}

func runClaims(c *cli.Context) error {

	argument := c.Args().Get(0)
	if "" == argument {
		return fmt.Errorf("missing DID argument")
	}
	id, err := did.IdentityIdFromBase58(argument)
	if nil != err {
		return err
	}

	key := c.Args().Get(1)
	if "" == key {
		return fmt.Errorf("missing CLAIM-KEY argument")
	}

	now := c.GlobalUint64("now")

	claims, err := claim.ClaimsFor(id, []byte(key))
	if nil != err {
		return err
	}

	w := c.App.Writer
	for _, item := range claims {
		status := ""
		if 0 != now && !item.IsVisible(now) {
			status = "  (expired)"
		}
		fmt.Fprintf(w, "issuer: %s  value: %s  expiry: %d%s\n",
			item.Issuer, item.Value, item.Expiry, status)
	}
	return nil
}
