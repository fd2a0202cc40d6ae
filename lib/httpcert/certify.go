// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package httpcert

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/assetcert-foundation/assetcert/lib/certexpr"
	"github.com/assetcert-foundation/assetcert/lib/reprhash"
)

// statusPseudoHeader is the pseudo-header carrying the status code in
// the response header hash. The name is part of the verification
// contract.
const statusPseudoHeader = ":ic-cert-status"

// Certify attaches the certification expression to the response and
// returns the leaf value to commit to the certification tree.
//
// The expression's hex-encoded CBOR is appended as the
// IC-CertificateExpression header before hashing, so the expression
// itself is covered. The leaf value is
//
//	H(expression_hash || H(header_map_hash || H(body)))
//
// where the header map covers the status pseudo-header and every
// response header named by the expression's certified set, in
// lowercase.
func Certify(response *Response, expression certexpr.Expression) (reprhash.Hash, error) {
	headerValue, err := expression.HeaderValue()
	if err != nil {
		return reprhash.Hash{}, fmt.Errorf("httpcert: encoding certification expression: %w", err)
	}
	response.AddHeader(certexpr.HeaderName, headerValue)

	expressionHash, err := expression.Hash()
	if err != nil {
		return reprhash.Hash{}, fmt.Errorf("httpcert: hashing certification expression: %w", err)
	}

	responseHash := ResponseHash(response, expression)

	return LeafValue(expressionHash, responseHash), nil
}

// ResponseHash computes H_r: the hash of the response's certified
// headers (plus status pseudo-header) concatenated with the body
// hash. The response must already carry its IC-CertificateExpression
// header.
func ResponseHash(response *Response, expression certexpr.Expression) reprhash.Hash {
	headerMapHash := reprhash.HashMap(certifiedHeaderMap(response, expression))
	bodyHash := reprhash.HashBytes(response.Body)

	hasher := sha256.New()
	hasher.Write(headerMapHash[:])
	hasher.Write(bodyHash[:])

	var result reprhash.Hash
	copy(result[:], hasher.Sum(nil))
	return result
}

// LeafValue combines the expression hash and the response hash into
// the value stored at the response's tree leaf.
func LeafValue(expressionHash, responseHash reprhash.Hash) reprhash.Hash {
	hasher := sha256.New()
	hasher.Write(expressionHash[:])
	hasher.Write(responseHash[:])

	var result reprhash.Hash
	copy(result[:], hasher.Sum(nil))
	return result
}

// certifiedHeaderMap assembles the ordered typed map fed into the
// representation-independent hash: the status pseudo-header followed
// by each certified response header, names lowercased, in response
// order. Headers not named by the expression are omitted and
// therefore not covered.
func certifiedHeaderMap(response *Response, expression certexpr.Expression) []reprhash.KeyValue {
	certified := make(map[string]struct{})
	for _, name := range expression.CertifiedResponseHeaders() {
		certified[strings.ToLower(name)] = struct{}{}
	}

	pairs := []reprhash.KeyValue{
		{Name: statusPseudoHeader, Value: reprhash.Unsigned(uint64(response.StatusCode))},
	}
	for _, h := range response.Headers {
		name := strings.ToLower(h.Name)
		if _, ok := certified[name]; !ok {
			continue
		}
		pairs = append(pairs, reprhash.KeyValue{Name: name, Value: reprhash.String(h.Value)})
	}
	return pairs
}
