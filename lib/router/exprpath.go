// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"fmt"
	"strings"

	"github.com/assetcert-foundation/assetcert/lib/codec"
)

// Expression path segments. The root segment namespaces HTTP
// certification inside the host's certified-data tree; the terminals
// distinguish exact matches from wildcard fallbacks.
const (
	exprPathRoot     = "http_expr"
	exactTerminal    = "<$>"
	wildcardTerminal = "<*>"
)

// exactExprPath returns the expression path for an exact-match
// response at a normalized path: ["http_expr", seg..., "<$>"]. The
// root path "/" has no segments.
func exactExprPath(normalizedPath string) []string {
	return append(append([]string{exprPathRoot}, pathSegments(normalizedPath)...), exactTerminal)
}

// fallbackExprPath returns the expression path for a fallback
// response scoped to a normalized prefix:
// ["http_expr", seg..., "<*>"].
func fallbackExprPath(scope string) []string {
	return append(append([]string{exprPathRoot}, pathSegments(scope)...), wildcardTerminal)
}

// chunkExprPath extends a base expression path for a non-first chunk:
// a "range-<start>" segment is inserted ahead of the terminal, so
// every chunk keeps the exact/wildcard marker as its final segment.
func chunkExprPath(base []string, rangeStart int) []string {
	extended := make([]string, 0, len(base)+1)
	extended = append(extended, base[:len(base)-1]...)
	extended = append(extended, fmt.Sprintf("range-%d", rangeStart), base[len(base)-1])
	return extended
}

// pathSegments splits a normalized path into its non-empty segments.
func pathSegments(normalizedPath string) []string {
	var segments []string
	for _, segment := range strings.Split(normalizedPath, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// exprPathLabels converts segments to the byte labels the tree keys
// on.
func exprPathLabels(segments []string) [][]byte {
	labels := make([][]byte, len(segments))
	for i, segment := range segments {
		labels[i] = []byte(segment)
	}
	return labels
}

// EncodeExprPath returns the CBOR encoding of an expression path: an
// array of text strings. This is the expr_path payload of the
// IC-Certificate header.
func EncodeExprPath(segments []string) ([]byte, error) {
	return codec.Marshal(segments)
}
