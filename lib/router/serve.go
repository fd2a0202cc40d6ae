// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/assetcert-foundation/assetcert/lib/assetstore"
	"github.com/assetcert-foundation/assetcert/lib/httpcert"
)

// ServeResult is a routed certified response plus the material the
// caller needs to assemble the IC-Certificate header: the CBOR
// witness over the certification tree and the CBOR expression path.
type ServeResult struct {
	Response     *httpcert.Response
	ExprPath     []string
	ExprPathCBOR []byte
	WitnessCBOR  []byte
}

// ServeAsset routes a request to its certified response.
//
// Resolution order: exact asset (best acceptable encoding), then
// redirect, then fallback scopes walking from the request path
// toward the root. Chunked assets honor a Range header whose start
// sits on a chunk boundary. Errors map to HTTP statuses via
// [ErrorResponse].
func (r *Router) ServeAsset(request *httpcert.Request) (*ServeResult, error) {
	method := strings.ToUpper(request.Method)
	if method != "GET" && method != "HEAD" {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotAllowed, request.Method)
	}

	rawPath, err := request.Path()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	path := normalizePath(rawPath)
	encodings := acceptableEncodings(request)

	// Exact asset.
	for _, encoding := range encodings {
		first, ok := r.store.GetExact(assetstore.Key{Path: path, Encoding: encoding})
		if !ok {
			continue
		}
		entry, err := r.selectChunk(request, first, func(index int) (*assetstore.Entry, bool) {
			return r.store.GetExact(assetstore.Key{Path: path, Encoding: encoding, ChunkIndex: index})
		})
		if err != nil {
			return nil, err
		}
		return r.result(entry)
	}

	// Redirect.
	if entry, ok := r.store.GetRedirect(path); ok {
		return r.result(entry)
	}

	// Fallback scopes, nearest first. The request path itself is the
	// nearest scope: a fallback for /js answers a request for /js.
	for scope := path; scope != ""; scope = parentScope(scope) {
		for _, encoding := range encodings {
			first, ok := r.store.GetFallback(assetstore.Key{Path: scope, Encoding: encoding})
			if !ok {
				continue
			}
			entry, err := r.selectChunk(request, first, func(index int) (*assetstore.Entry, bool) {
				return r.store.GetFallback(assetstore.Key{Path: scope, Encoding: encoding, ChunkIndex: index})
			})
			if err != nil {
				return nil, err
			}
			return r.result(entry)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// selectChunk applies Range selection to a variant whose first chunk
// is already in hand. Requests without a Range header get the first
// chunk. A Range start must sit exactly on a chunk boundary and
// address an existing chunk.
func (r *Router) selectChunk(request *httpcert.Request, first *assetstore.Entry, lookup func(int) (*assetstore.Entry, bool)) (*assetstore.Entry, error) {
	rangeHeader, hasRange := request.Header("Range")
	if !hasRange {
		return first, nil
	}

	start, err := parseRangeStart(rangeHeader)
	if err != nil {
		return nil, err
	}
	if start%assetstore.ChunkSize != 0 {
		return nil, fmt.Errorf("%w: start %d is not a chunk boundary", ErrRangeNotSatisfiable, start)
	}

	entry, ok := lookup(start / assetstore.ChunkSize)
	if !ok {
		return nil, fmt.Errorf("%w: start %d is past the end", ErrRangeNotSatisfiable, start)
	}
	return entry, nil
}

// parseRangeStart extracts the starting byte offset from a Range
// header of the form "bytes=<start>-" (a closed end is accepted and
// ignored; chunk extents are fixed).
func parseRangeStart(header string) (int, error) {
	rangeSpec, found := strings.CutPrefix(strings.TrimSpace(header), "bytes=")
	if !found {
		return 0, fmt.Errorf("%w: unsupported range unit in %q", ErrRangeNotSatisfiable, header)
	}
	startText, _, found := strings.Cut(rangeSpec, "-")
	if !found {
		return 0, fmt.Errorf("%w: malformed range %q", ErrRangeNotSatisfiable, header)
	}
	start, err := strconv.Atoi(strings.TrimSpace(startText))
	if err != nil || start < 0 {
		return 0, fmt.Errorf("%w: malformed range start %q", ErrRangeNotSatisfiable, header)
	}
	return start, nil
}

// result packages a stored entry with its witness and encoded
// expression path.
func (r *Router) result(entry *assetstore.Entry) (*ServeResult, error) {
	witness := r.tree.Witness(exprPathLabels(entry.ExprPath))
	witnessCBOR, err := witness.MarshalCBOR()
	if err != nil {
		return nil, fmt.Errorf("router: encoding witness: %w", err)
	}
	exprPathCBOR, err := EncodeExprPath(entry.ExprPath)
	if err != nil {
		return nil, fmt.Errorf("router: encoding expression path: %w", err)
	}

	return &ServeResult{
		Response:     entry.Response.Clone(),
		ExprPath:     append([]string(nil), entry.ExprPath...),
		ExprPathCBOR: exprPathCBOR,
		WitnessCBOR:  witnessCBOR,
	}, nil
}

// CertificateHeader assembles the IC-Certificate header for a serve
// result using the host-supplied data certificate.
func (s *ServeResult) CertificateHeader(dataCertificate []byte) string {
	return httpcert.CertificateHeader(dataCertificate, s.WitnessCBOR, s.ExprPathCBOR)
}
