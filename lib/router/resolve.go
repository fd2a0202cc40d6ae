// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"fmt"
	"slices"
	"strings"

	"github.com/assetcert-foundation/assetcert/lib/assetcfg"
	"github.com/assetcert-foundation/assetcert/lib/assetstore"
	"github.com/assetcert-foundation/assetcert/lib/certexpr"
	"github.com/assetcert-foundation/assetcert/lib/httpcert"
	"github.com/assetcert-foundation/assetcert/lib/reprhash"
)

// variantKind selects the index a staged variant belongs to.
type variantKind int

const (
	kindExact variantKind = iota
	kindFallback
	kindRedirect
)

// stagedVariant is one fully built certified response waiting to be
// committed. Resolution builds the complete staging set before
// touching the router, so a failed batch changes nothing.
type stagedVariant struct {
	kind  variantKind
	key   assetstore.Key
	entry *assetstore.Entry
	leaf  reprhash.Hash
}

func (v *stagedVariant) apply(r *Router) {
	r.tree.Insert(exprPathLabels(v.entry.ExprPath), v.leaf)
	switch v.kind {
	case kindExact:
		r.store.PutExact(v.key, v.entry)
	case kindFallback:
		r.store.PutFallback(v.key, v.entry)
	case kindRedirect:
		r.store.PutRedirect(v.key.Path, v.entry)
	}
}

func (v *stagedVariant) remove(r *Router) {
	r.tree.Delete(exprPathLabels(v.entry.ExprPath))
	switch v.kind {
	case kindExact:
		r.store.DeleteExact(v.key)
	case kindFallback:
		r.store.DeleteFallback(v.key)
	case kindRedirect:
		r.store.DeleteRedirect(v.key.Path)
	}
}

// compiledPattern is a Pattern config with its glob compiled.
type compiledPattern struct {
	glob   *assetcfg.Glob
	config assetcfg.PatternConfig
}

// resolvedConfig is the per-asset configuration after File/Pattern
// matching, reduced to the fields variant emission needs.
type resolvedConfig struct {
	contentType string
	headers     []httpcert.Header
	fallbackFor []assetcfg.FallbackConfig
	aliasedBy   []string
	encodings   []assetcfg.EncodingPair
}

// resolve expands (assets, configs) into the complete set of staged
// certified response variants, per the resolution algorithm: File
// configs match by exact path, Pattern configs in insertion order,
// everything else gets the default (identity-only) config. Assets
// consumed as encoding siblings of another asset are not certified
// standalone.
func (r *Router) resolve(assets []Asset, configs []assetcfg.Config) ([]*stagedVariant, error) {
	assetsByPath := make(map[string]*Asset, len(assets))
	for i := range assets {
		assetsByPath[assets[i].Path] = &assets[i]
	}

	fileConfigs := make(map[string]assetcfg.FileConfig)
	claimedPaths := make(map[string]string) // normalized path → claiming config path
	var patterns []compiledPattern
	var redirects []assetcfg.RedirectConfig

	claim := func(path, by string) error {
		if previous, taken := claimedPaths[path]; taken {
			return fmt.Errorf("%w: %q claimed by both %q and %q",
				ErrDuplicateConfigPath, path, previous, by)
		}
		claimedPaths[path] = by
		return nil
	}

	for _, config := range configs {
		switch c := config.(type) {
		case assetcfg.FileConfig:
			normalized := normalizePath(c.Path)
			if err := claim(normalized, c.Path); err != nil {
				return nil, err
			}
			fileConfigs[normalized] = c
			for _, alias := range c.AliasedBy {
				if err := claim(normalizePath(alias), c.Path); err != nil {
					return nil, err
				}
			}

		case assetcfg.PatternConfig:
			glob, err := assetcfg.CompileGlob(c.Pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidGlob, err)
			}
			patterns = append(patterns, compiledPattern{glob: glob, config: c})

		case assetcfg.RedirectConfig:
			redirects = append(redirects, c)
		}
	}

	// First pass: resolve each asset's config and collect the paths
	// consumed as encoding siblings.
	resolved := make(map[string]resolvedConfig, len(assets))
	siblings := make(map[string]bool)
	for _, asset := range assets {
		config := r.configFor(asset, fileConfigs, patterns)
		resolved[asset.Path] = config
		for _, pair := range config.encodings {
			siblingPath := asset.Path + "." + pair.Suffix
			if _, exists := assetsByPath[siblingPath]; exists {
				siblings[siblingPath] = true
			}
		}
	}

	// Second pass: emit variants for every asset that is not itself a
	// sibling of another asset.
	var staged []*stagedVariant
	for _, asset := range assets {
		if siblings[asset.Path] {
			continue
		}
		variants, err := r.emitAsset(asset, resolved[asset.Path], assetsByPath)
		if err != nil {
			return nil, err
		}
		staged = append(staged, variants...)
	}

	for _, redirect := range redirects {
		staged = append(staged, emitRedirect(redirect))
	}

	return staged, nil
}

// configFor locates the configuration for an asset: exact File
// config first, then the first matching Pattern, then the default.
func (r *Router) configFor(asset Asset, fileConfigs map[string]assetcfg.FileConfig, patterns []compiledPattern) resolvedConfig {
	if c, ok := fileConfigs[normalizePath(asset.Path)]; ok {
		return resolvedConfig{
			contentType: c.ContentType,
			headers:     c.Headers,
			fallbackFor: c.FallbackFor,
			aliasedBy:   c.AliasedBy,
			encodings:   c.Encodings,
		}
	}

	matchPath := strings.TrimPrefix(asset.Path, "/")
	for _, p := range patterns {
		if p.glob.Match(matchPath) {
			return resolvedConfig{
				contentType: p.config.ContentType,
				headers:     p.config.Headers,
				encodings:   p.config.Encodings,
			}
		}
	}

	return resolvedConfig{}
}

// emitAsset builds every variant one asset produces: the identity
// response plus one response per present encoding sibling, for the
// exact path and each fallback scope, and an identity response for
// each alias.
func (r *Router) emitAsset(asset Asset, config resolvedConfig, assetsByPath map[string]*Asset) ([]*stagedVariant, error) {
	type encodedBody struct {
		encoding assetcfg.Encoding
		body     []byte
	}
	bodies := []encodedBody{{assetcfg.EncodingIdentity, asset.Content}}
	for _, pair := range config.encodings {
		siblingPath := asset.Path + "." + pair.Suffix
		sibling, ok := assetsByPath[siblingPath]
		if !ok {
			r.log.Debug("encoding sibling not provided, skipping",
				"asset", asset.Path, "encoding", pair.Encoding.String(), "sibling", siblingPath)
			continue
		}
		bodies = append(bodies, encodedBody{pair.Encoding, sibling.Content})
	}

	normalized := normalizePath(asset.Path)
	var staged []*stagedVariant

	for _, eb := range bodies {
		variants, err := emitVariantSet(kindExact, normalized, 200, eb.encoding, eb.body, config)
		if err != nil {
			return nil, err
		}
		staged = append(staged, variants...)

		for _, fallback := range config.fallbackFor {
			scope := normalizePath(fallback.Scope)
			variants, err := emitVariantSet(kindFallback, scope, fallback.EffectiveStatusCode(), eb.encoding, eb.body, config)
			if err != nil {
				return nil, err
			}
			staged = append(staged, variants...)
		}
	}

	// Aliases serve the identity body under their own paths and
	// expression paths.
	for _, alias := range config.aliasedBy {
		variants, err := emitVariantSet(kindExact, normalizePath(alias), 200, assetcfg.EncodingIdentity, asset.Content, config)
		if err != nil {
			return nil, err
		}
		staged = append(staged, variants...)
	}

	return staged, nil
}

// emitVariantSet builds the staged variants for one (path-or-scope,
// encoding, body) triple: a single response, or one response per
// chunk for bodies over the chunk size.
func emitVariantSet(kind variantKind, path string, status int, encoding assetcfg.Encoding, body []byte, config resolvedConfig) ([]*stagedVariant, error) {
	var basePath []string
	if kind == kindFallback {
		basePath = fallbackExprPath(path)
	} else {
		basePath = exactExprPath(path)
	}

	total := len(body)
	count := assetstore.ChunkCount(total)
	chunked := count > 1

	staged := make([]*stagedVariant, 0, count)
	for index := 0; index < count; index++ {
		start, end := assetstore.ChunkBounds(total, index)
		chunk := body[start:end]
		if chunked && len(chunk) == 0 {
			return nil, fmt.Errorf("%w: %s chunk %d", ErrEmptyChunk, path, index)
		}

		response := &httpcert.Response{
			StatusCode: status,
			Headers:    slices.Clone(config.headers),
			Body:       chunk,
		}
		if config.contentType != "" && !response.HasHeader("Content-Type") {
			response.AddHeader("Content-Type", config.contentType)
		}
		if encoding != assetcfg.EncodingIdentity {
			response.AddHeader("Content-Encoding", encoding.ContentEncoding())
		}
		if chunked {
			response.AddHeader("Content-Length", fmt.Sprintf("%d", len(chunk)))
			if index > 0 {
				response.AddHeader("Content-Range",
					fmt.Sprintf("bytes %d-%d/%d", start, end-1, total))
			}
		}

		certified := make([]string, 0, len(response.Headers))
		for _, h := range response.Headers {
			certified = append(certified, h.Name)
		}
		expression := certexpr.DefaultResponseOnly(certified)

		leaf, err := httpcert.Certify(response, expression)
		if err != nil {
			return nil, fmt.Errorf("certifying %s: %w", path, err)
		}

		exprPath := basePath
		if index > 0 {
			exprPath = chunkExprPath(basePath, start)
		}

		staged = append(staged, &stagedVariant{
			kind: kind,
			key:  assetstore.Key{Path: path, Encoding: encoding, ChunkIndex: index},
			entry: &assetstore.Entry{
				Response:    response,
				ExprPath:    exprPath,
				BodyRef:     assetstore.ContentRef(chunk),
				TotalLength: total,
				RangeStart:  start,
			},
			leaf: leaf,
		})
	}
	return staged, nil
}

// emitRedirect builds the staged variant for a redirect config.
func emitRedirect(config assetcfg.RedirectConfig) *stagedVariant {
	var response *httpcert.Response
	if config.Kind == assetcfg.RedirectPermanent {
		response = httpcert.MovedPermanently(config.To, slices.Clone(config.Headers)...)
	} else {
		response = httpcert.TemporaryRedirect(config.To, slices.Clone(config.Headers)...)
	}

	certified := make([]string, 0, len(response.Headers))
	for _, h := range response.Headers {
		certified = append(certified, h.Name)
	}
	expression := certexpr.DefaultResponseOnly(certified)

	// Redirect bodies are empty; certification cannot fail past the
	// expression encoding, which is static here.
	leaf, err := httpcert.Certify(response, expression)
	if err != nil {
		panic("router: certifying redirect: " + err.Error())
	}

	from := normalizePath(config.From)
	return &stagedVariant{
		kind: kindRedirect,
		key:  assetstore.Key{Path: from, Encoding: assetcfg.EncodingIdentity},
		entry: &assetstore.Entry{
			Response: response,
			ExprPath: exactExprPath(from),
			BodyRef:  assetstore.ContentRef(nil),
		},
		leaf: leaf,
	}
}
