// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package assetcfg

import "fmt"

// Encoding identifies the content encoding of a stored asset body.
// Bodies are supplied pre-encoded by the caller; this module never
// compresses or decompresses.
type Encoding int

// The closed encoding set.
const (
	EncodingIdentity Encoding = iota
	EncodingGzip
	EncodingDeflate
	EncodingBrotli
	EncodingZstd
)

// PriorityOrder lists encodings from most to least preferred. The
// router serves the highest-priority encoding that is both certified
// and acceptable to the client.
var PriorityOrder = []Encoding{
	EncodingBrotli,
	EncodingZstd,
	EncodingGzip,
	EncodingDeflate,
	EncodingIdentity,
}

// ContentEncoding returns the canonical Content-Encoding header value.
func (e Encoding) ContentEncoding() string {
	switch e {
	case EncodingIdentity:
		return "identity"
	case EncodingGzip:
		return "gzip"
	case EncodingDeflate:
		return "deflate"
	case EncodingBrotli:
		return "br"
	case EncodingZstd:
		return "zstd"
	default:
		panic(fmt.Sprintf("assetcfg: unknown encoding %d", int(e)))
	}
}

// String returns the canonical Content-Encoding value.
func (e Encoding) String() string {
	return e.ContentEncoding()
}

// Suffix returns the default filename suffix for the encoding,
// without the leading dot. Identity has none.
func (e Encoding) Suffix() string {
	switch e {
	case EncodingIdentity:
		return ""
	case EncodingGzip:
		return "gz"
	case EncodingDeflate:
		return "zz"
	case EncodingBrotli:
		return "br"
	case EncodingZstd:
		return "zst"
	default:
		panic(fmt.Sprintf("assetcfg: unknown encoding %d", int(e)))
	}
}

// EncodingPair couples an encoding with the filename suffix used to
// locate its pre-encoded sibling asset.
type EncodingPair struct {
	Encoding Encoding
	Suffix   string
}

// DefaultPair returns the encoding with its default filename suffix.
// Earlier revisions of the configuration surface exposed this under
// two names (a bare default and a default-config form) with identical
// meaning; this is the single replacement for both.
func (e Encoding) DefaultPair() EncodingPair {
	return EncodingPair{Encoding: e, Suffix: e.Suffix()}
}

// CustomPair returns the encoding with a caller-chosen filename
// suffix, for asset pipelines that do not use the default extensions.
func (e Encoding) CustomPair(suffix string) EncodingPair {
	return EncodingPair{Encoding: e, Suffix: suffix}
}

// ParseAcceptEncoding maps an Accept-Encoding token to an Encoding.
// The boolean is false for tokens outside the closed set (including
// the "*" wildcard, which the router handles separately).
func ParseAcceptEncoding(token string) (Encoding, bool) {
	switch token {
	case "identity":
		return EncodingIdentity, true
	case "gzip":
		return EncodingGzip, true
	case "deflate":
		return EncodingDeflate, true
	case "br":
		return EncodingBrotli, true
	case "zstd":
		return EncodingZstd, true
	default:
		return EncodingIdentity, false
	}
}
