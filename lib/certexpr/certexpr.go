// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package certexpr

import (
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/assetcert-foundation/assetcert/lib/codec"
	"github.com/assetcert-foundation/assetcert/lib/reprhash"
)

// HeaderName is the response header carrying the hex-encoded CBOR
// certification expression. The header is inserted before response
// hashing, so the expression itself is covered by the certificate.
const HeaderName = "IC-CertificateExpression"

// CertificateHeaderName is the response header carrying the
// certificate, witness, and expression path. It is assembled by the
// caller after routing and is never part of the certified header set.
const CertificateHeaderName = "IC-Certificate"

// ErrResponseCertificationShape reports a full expression whose
// response certification does not select exactly one of the
// inclusive and exclusive header sets.
var ErrResponseCertificationShape = errors.New(
	"certexpr: response certification must use exactly one of certified_response_headers and response_header_exclusions")

// RequestCertification names the request fields covered by a full
// expression. The asset router never certifies requests, so this is
// carried for schema completeness and for callers that certify
// dynamic endpoints alongside static assets.
type RequestCertification struct {
	CertifiedRequestHeaders  []string
	CertifiedQueryParameters []string
}

// ResponseCertification names the response headers covered by a full
// expression. Exactly one of the two sets must be non-nil: Certified
// lists headers inclusively, Exclusions certifies everything except
// the listed headers. An empty non-nil slice is meaningful in both
// forms.
type ResponseCertification struct {
	Certified  []string
	Exclusions []string
}

// Expression is a declarative description of which request and
// response fields a certified response covers.
//
// The zero value is the no-certification expression, encoding as the
// empty CBOR map. A full expression has a non-nil
// ResponseCertification and optionally a RequestCertification.
type Expression struct {
	Request  *RequestCertification
	Response *ResponseCertification
}

// DefaultResponseOnly returns the expression the asset router uses:
// no request certification, inclusive response certification over the
// given headers. [HeaderName] is always part of the certified set and
// is added if missing. Header names are deduplicated preserving first
// occurrence; matching is case-insensitive but the canonical spelling
// of the first occurrence is kept.
func DefaultResponseOnly(certifiedHeaders []string) Expression {
	certified := make([]string, 0, len(certifiedHeaders)+1)
	seen := make(map[string]struct{}, len(certifiedHeaders)+1)
	for _, name := range certifiedHeaders {
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		certified = append(certified, name)
	}
	if _, present := seen[strings.ToLower(HeaderName)]; !present {
		certified = append(certified, HeaderName)
	}

	return Expression{
		Response: &ResponseCertification{Certified: certified},
	}
}

// IsNoCertification reports whether the expression is the empty
// no-certification shape.
func (e Expression) IsNoCertification() bool {
	return e.Request == nil && e.Response == nil
}

// CertifiedResponseHeaders returns the inclusive certified header
// set, or nil when the expression uses exclusions or no
// certification.
func (e Expression) CertifiedResponseHeaders() []string {
	if e.Response == nil {
		return nil
	}
	return slices.Clone(e.Response.Certified)
}

// Validate checks the expression shape.
func (e Expression) Validate() error {
	if e.IsNoCertification() {
		return nil
	}
	if e.Response == nil {
		return fmt.Errorf("certexpr: full expression requires response certification")
	}
	if (e.Response.Certified == nil) == (e.Response.Exclusions == nil) {
		return ErrResponseCertificationShape
	}
	return nil
}

// MarshalCBOR encodes the expression per the gateway schema:
//
//	Expression   = { "request_certification"? : RequestCert,
//	                 "response_certification"  : ResponseCert }
//	RequestCert  = { "certified_request_headers": [tstr],
//	                 "certified_query_parameters": [tstr] }
//	ResponseCert = { "certified_response_headers": [tstr] } /
//	               { "response_header_exclusions": [tstr] }
//
// The no-certification expression encodes as {}. Encoding is
// deterministic via lib/codec, so the same expression always hashes
// identically.
func (e Expression) MarshalCBOR() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	root := map[string]any{}
	if e.Request != nil {
		root["request_certification"] = map[string]any{
			"certified_request_headers":  stringList(e.Request.CertifiedRequestHeaders),
			"certified_query_parameters": stringList(e.Request.CertifiedQueryParameters),
		}
	}
	if e.Response != nil {
		responseCert := map[string]any{}
		if e.Response.Certified != nil {
			responseCert["certified_response_headers"] = stringList(e.Response.Certified)
		} else {
			responseCert["response_header_exclusions"] = stringList(e.Response.Exclusions)
		}
		root["response_certification"] = responseCert
	}

	return codec.Marshal(root)
}

// Hash returns the 32-byte SHA-256 digest of the canonical CBOR
// encoding. This is the expression hash committed to the
// certification tree ahead of the response hash.
func (e Expression) Hash() (reprhash.Hash, error) {
	encoded, err := e.MarshalCBOR()
	if err != nil {
		return reprhash.Hash{}, err
	}
	return reprhash.HashBytes(encoded), nil
}

// HeaderValue returns the value of the IC-CertificateExpression
// header: the lowercase hex encoding of the canonical CBOR.
func (e Expression) HeaderValue() (string, error) {
	encoded, err := e.MarshalCBOR()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(encoded), nil
}

// stringList converts to []any so the CBOR encoder emits a definite-
// length text-string array even for empty input.
func stringList(items []string) []any {
	list := make([]any, len(items))
	for i, item := range items {
		list[i] = item
	}
	return list
}
