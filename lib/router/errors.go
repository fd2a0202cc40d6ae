// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"errors"

	"github.com/assetcert-foundation/assetcert/lib/httpcert"
)

// Configuration errors, detected during CertifyAssets. Any of these
// fails the whole batch; the router's published state is untouched.
var (
	// ErrDuplicateConfigPath reports two File configs (or a File
	// config and an alias) claiming the same path.
	ErrDuplicateConfigPath = errors.New("router: duplicate file config path")

	// ErrInvalidGlob reports a Pattern config whose glob does not
	// compile.
	ErrInvalidGlob = errors.New("router: invalid glob pattern")

	// ErrEmptyChunk reports a chunked variant that produced an empty
	// chunk body.
	ErrEmptyChunk = errors.New("router: empty chunk body")
)

// Routing errors, detected during ServeAsset. Each maps to an HTTP
// status via [ErrorResponse].
var (
	// ErrNotFound reports a request path with no exact asset, no
	// redirect, and no fallback at any ancestor scope.
	ErrNotFound = errors.New("router: no asset matches the request path")

	// ErrMethodNotAllowed reports a request method outside GET/HEAD.
	ErrMethodNotAllowed = errors.New("router: method not allowed")

	// ErrRangeNotSatisfiable reports a Range header that does not
	// start on a chunk boundary of the selected asset.
	ErrRangeNotSatisfiable = errors.New("router: range not satisfiable")
)

// ErrorResponse maps a ServeAsset error to an uncertified HTTP
// response. Responses built here carry no certificate headers; hosts
// that must answer every request with certified bytes should instead
// configure fallback assets so these paths are never reached.
func ErrorResponse(err error) *httpcert.Response {
	switch {
	case errors.Is(err, ErrMethodNotAllowed):
		return httpcert.MethodNotAllowed([]byte("405 Method Not Allowed"))
	case errors.Is(err, ErrRangeNotSatisfiable):
		return httpcert.RangeNotSatisfiable([]byte("416 Range Not Satisfiable"))
	default:
		return httpcert.NotFound([]byte("404 Not Found"))
	}
}
