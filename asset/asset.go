// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - ticker registrations and token ownership
//
// tickers are claimed for a limited period; creating a token makes
// the claim permanent. ownership moves only through accepted
// authorizations, never unilaterally
package asset

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/monitz87/Polymesh/authorization"
	"github.com/monitz87/Polymesh/compliance"
	"github.com/monitz87/Polymesh/fault"
)

// globals for this module
type assetData struct {
	sync.RWMutex

	log *logger.L

	// set once during initialise
	initialised bool
}

// global data
var globalData assetData

// Initialise - setup the asset registry
//
// installs the transfer applier and the token ownership check used by
// the authorization and compliance modules
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("asset")
	globalData.log.Info("starting…")

	authorization.RegisterAcceptor(transferApplier{})
	compliance.RegisterOwnershipCheck(checkTokenOwner)

	globalData.initialised = true

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false

	return nil
}
