// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package assetcfg

import "github.com/assetcert-foundation/assetcert/lib/httpcert"

// Config is a per-asset certification configuration: one of
// [FileConfig], [PatternConfig], or [RedirectConfig].
type Config interface {
	isAssetConfig()
}

// FileConfig targets a single asset by exact path.
type FileConfig struct {
	// Path must exactly match the path of an asset handed to
	// CertifyAssets alongside this config.
	Path string

	// ContentType, when non-empty, is served (and certified) as the
	// Content-Type header. When empty no Content-Type is inserted and
	// browsers will sniff — and an uncertified header could be forged
	// by the serving node, so production configs should set it.
	ContentType string

	// Headers are additional response headers, certified and served
	// verbatim for every variant of this asset.
	Headers []httpcert.Header

	// FallbackFor registers this asset as the fallback response for
	// each listed scope. A request whose path has a scope as prefix
	// and matches no exact asset is answered by this asset with the
	// scope's status code.
	FallbackFor []FallbackConfig

	// AliasedBy lists additional exact paths serving this asset's
	// body and headers. Each alias is certified independently at its
	// own expression path.
	AliasedBy []string

	// Encodings lists alternative encodings to certify. For each
	// entry the router looks for a sibling asset at
	// "<path>.<suffix>" and certifies it when present. The identity
	// variant from the original bytes is always certified.
	Encodings []EncodingPair
}

// PatternConfig targets every asset matching a glob pattern. Pattern
// configs apply in insertion order: the first match wins.
type PatternConfig struct {
	// Pattern is a glob over asset paths; see [CompileGlob] for the
	// accepted syntax.
	Pattern string

	ContentType string
	Headers     []httpcert.Header
	Encodings   []EncodingPair
}

// RedirectConfig certifies a redirect response. Redirects are not
// matched against assets; they occupy a path of their own.
type RedirectConfig struct {
	// From is the request path answered by this redirect.
	From string

	// To becomes the Location header value.
	To string

	Kind    RedirectKind
	Headers []httpcert.Header
}

// FallbackConfig scopes a fallback asset to a path prefix.
type FallbackConfig struct {
	// Scope is the path prefix served by the fallback.
	Scope string

	// StatusCode for the fallback response; 0 means 200.
	StatusCode int
}

// EffectiveStatusCode resolves the default.
func (f FallbackConfig) EffectiveStatusCode() int {
	if f.StatusCode == 0 {
		return 200
	}
	return f.StatusCode
}

// RedirectKind selects the redirect status code.
type RedirectKind int

const (
	// RedirectPermanent is a 301 redirect; clients cache it.
	RedirectPermanent RedirectKind = iota

	// RedirectTemporary is a 307 redirect; clients re-request the old
	// location next time.
	RedirectTemporary
)

// StatusCode returns the HTTP status for the redirect kind.
func (k RedirectKind) StatusCode() int {
	if k == RedirectPermanent {
		return 301
	}
	return 307
}

func (FileConfig) isAssetConfig()     {}
func (PatternConfig) isAssetConfig()  {}
func (RedirectConfig) isAssetConfig() {}
