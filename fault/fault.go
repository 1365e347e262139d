// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Polymath Studios Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type ExpiredError GenericError
type InvalidError GenericError
type NonceError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type UnauthorizedError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised      = ProcessError("already initialised")
	ErrAuthorizationExpired    = ExpiredError("authorization expired")
	ErrAuthorizationNotFound   = NotFoundError("authorization not found")
	ErrCannotDecodeAccountKey  = InvalidError("cannot decode account key")
	ErrCannotDecodeIdentity    = InvalidError("cannot decode identity")
	ErrChecksumMismatch        = InvalidError("checksum mismatch")
	ErrClaimNotFound           = NotFoundError("claim not found")
	ErrExpiryInPast            = InvalidError("expiry is in the past")
	ErrIdentityAlreadyExists   = ExistsError("identity already exists")
	ErrIdentityNotFound        = NotFoundError("identity not found")
	ErrInvalidCount            = InvalidError("invalid count")
	ErrInvalidCursor           = InvalidError("invalid cursor")
	ErrInvalidLength           = InvalidError("invalid length")
	ErrKeyAlreadyBound         = ExistsError("key is already bound")
	ErrKeyNotBound             = NotFoundError("key is not bound")
	ErrLinkExpired             = ExpiredError("link expired")
	ErrLinkNotFound            = NotFoundError("link not found")
	ErrNonceMismatch           = NonceError("authorization nonce mismatch")
	ErrNotAuthorized           = UnauthorizedError("not authorized")
	ErrNotIdentityBound        = InvalidError("signatory is not identity bound")
	ErrNotInitialised          = ProcessError("not initialised")
	ErrNotLinkRecord           = InvalidError("not a link record")
	ErrNotPacked               = InvalidError("not a packed record")
	ErrNotTransferAuthorized   = UnauthorizedError("transfer is not authorized")
	ErrRuleNotFound            = NotFoundError("asset rule not found")
	ErrSignerAlreadyExists     = ExistsError("signer already exists")
	ErrSignerNotFound          = NotFoundError("signer not found")
	ErrTickerAlreadyRegistered = ExistsError("ticker is already registered")
	ErrTickerLength            = InvalidError("ticker length is invalid")
	ErrTickerNotFound          = NotFoundError("ticker not found")
	ErrTokenAlreadyExists      = ExistsError("token already exists")
	ErrTokenNotFound           = NotFoundError("token not found")
	ErrWrongAuthorizationType  = InvalidError("wrong authorization type")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string       { return string(e) }
func (e ExpiredError) Error() string      { return string(e) }
func (e InvalidError) Error() string      { return string(e) }
func (e NonceError) Error() string        { return string(e) }
func (e NotFoundError) Error() string     { return string(e) }
func (e ProcessError) Error() string      { return string(e) }
func (e UnauthorizedError) Error() string { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool       { _, ok := e.(ExistsError); return ok }
func IsErrExpired(e error) bool      { _, ok := e.(ExpiredError); return ok }
func IsErrInvalid(e error) bool      { _, ok := e.(InvalidError); return ok }
func IsErrNonce(e error) bool        { _, ok := e.(NonceError); return ok }
func IsErrNotFound(e error) bool     { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool      { _, ok := e.(ProcessError); return ok }
func IsErrUnauthorized(e error) bool { _, ok := e.(UnauthorizedError); return ok }
