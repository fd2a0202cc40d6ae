// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"encoding/hex"
	"testing"

	"github.com/assetcert-foundation/assetcert/lib/assetcfg"
	"github.com/assetcert-foundation/assetcert/lib/certexpr"
	"github.com/assetcert-foundation/assetcert/lib/codec"
	"github.com/assetcert-foundation/assetcert/lib/hashtree"
	"github.com/assetcert-foundation/assetcert/lib/httpcert"
	"github.com/assetcert-foundation/assetcert/lib/reprhash"
)

// verifyServed replays what an independent client does with a served
// response: recover the expression from the IC-CertificateExpression
// header, recompute the leaf value from status+headers+body, find
// that leaf in the witness at the expression path, and reconstruct
// the root hash from the witness alone.
func verifyServed(t *testing.T, result *ServeResult, wantRoot reprhash.Hash) {
	t.Helper()

	headerValue, ok := result.Response.Header(certexpr.HeaderName)
	if !ok {
		t.Fatal("served response has no IC-CertificateExpression header")
	}
	expressionCBOR, err := hex.DecodeString(headerValue)
	if err != nil {
		t.Fatalf("expression header is not hex: %v", err)
	}
	expressionHash := reprhash.HashBytes(expressionCBOR)

	// Recover the certified header list from the expression itself.
	var decoded struct {
		ResponseCertification struct {
			CertifiedResponseHeaders []string `cbor:"certified_response_headers"`
		} `cbor:"response_certification"`
	}
	if err := codec.Unmarshal(expressionCBOR, &decoded); err != nil {
		t.Fatalf("decoding expression: %v", err)
	}
	expression := certexpr.Expression{
		Response: &certexpr.ResponseCertification{
			Certified: decoded.ResponseCertification.CertifiedResponseHeaders,
		},
	}

	leaf := httpcert.LeafValue(expressionHash, httpcert.ResponseHash(result.Response, expression))

	var witness hashtree.Witness
	if err := witness.UnmarshalCBOR(result.WitnessCBOR); err != nil {
		t.Fatalf("decoding witness: %v", err)
	}

	labels := make([][]byte, len(result.ExprPath))
	for i, segment := range result.ExprPath {
		labels[i] = []byte(segment)
	}
	revealed, ok := witness.LookupValue(labels)
	if !ok {
		t.Fatal("witness does not reveal a leaf at the expression path")
	}
	if revealed != leaf {
		t.Fatal("recomputed leaf value does not match the witnessed leaf")
	}

	if witness.RootHash() != wantRoot {
		t.Fatal("witness does not reconstruct the published root hash")
	}

	// The expression path in the certificate header decodes back to
	// the same segments.
	var pathSegments []string
	if err := codec.Unmarshal(result.ExprPathCBOR, &pathSegments); err != nil {
		t.Fatalf("decoding expression path: %v", err)
	}
	if len(pathSegments) != len(result.ExprPath) {
		t.Fatal("encoded expression path length mismatch")
	}
	for i := range pathSegments {
		if pathSegments[i] != result.ExprPath[i] {
			t.Fatal("encoded expression path segment mismatch")
		}
	}
}

// P2: every served response verifies against the root.
func TestServedResponsesVerifyAgainstRoot(t *testing.T) {
	r := New(nil)
	mustCertify(t, r,
		[]Asset{
			NewAsset("index.html", []byte("<h1>Hi</h1>")),
			NewAsset("app.js", []byte("console.log(1)")),
			NewAsset("app.js.gz", gzipBytes(t, []byte("console.log(1)"))),
		},
		[]assetcfg.Config{
			assetcfg.FileConfig{
				Path:        "index.html",
				ContentType: "text/html",
				Headers:     []httpcert.Header{{Name: "Cache-Control", Value: "no-store"}},
				FallbackFor: []assetcfg.FallbackConfig{{Scope: "/"}},
				AliasedBy:   []string{"/"},
			},
			assetcfg.FileConfig{
				Path:        "app.js",
				ContentType: "text/javascript",
				Encodings:   []assetcfg.EncodingPair{assetcfg.EncodingGzip.DefaultPair()},
			},
			assetcfg.RedirectConfig{From: "/old", To: "/new", Kind: assetcfg.RedirectPermanent},
		})

	root := r.RootHash()

	requests := []*httpcert.Request{
		httpcert.Get("/"),
		httpcert.Get("/index.html"),
		httpcert.Get("/app.js"),
		httpcert.Get("/app.js").WithHeader("Accept-Encoding", "gzip"),
		httpcert.Get("/old"),
		httpcert.Get("/deep/missing/path"),
	}
	for _, request := range requests {
		result := mustServe(t, r, request)
		verifyServed(t, result, root)
	}
}

// P2 for chunked responses: both chunks verify independently.
func TestChunkedResponsesVerifyAgainstRoot(t *testing.T) {
	r := New(nil)
	body := make([]byte, 3*1024*1024)
	for i := range body {
		body[i] = byte(i)
	}
	mustCertify(t, r,
		[]Asset{NewAsset("big.bin", body)},
		[]assetcfg.Config{assetcfg.FileConfig{Path: "big.bin", ContentType: "application/octet-stream"}})

	root := r.RootHash()
	verifyServed(t, mustServe(t, r, httpcert.Get("/big.bin")), root)
	verifyServed(t, mustServe(t, r, httpcert.Get("/big.bin").WithHeader("Range", "bytes=2097152-")), root)
}
