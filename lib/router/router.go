// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"log/slog"

	"github.com/assetcert-foundation/assetcert/lib/assetcfg"
	"github.com/assetcert-foundation/assetcert/lib/assetstore"
	"github.com/assetcert-foundation/assetcert/lib/hashtree"
	"github.com/assetcert-foundation/assetcert/lib/reprhash"
)

// Asset is a static web asset: a virtual filesystem path and its raw
// content bytes. Content arrives pre-encoded when an encoding sibling
// is supplied; the router never compresses or decompresses.
type Asset struct {
	Path    string
	Content []byte
}

// NewAsset returns an asset. The path may be given with or without a
// leading slash; it is normalized during certification.
func NewAsset(path string, content []byte) Asset {
	return Asset{Path: path, Content: content}
}

// Router certifies static assets and routes requests to certified
// responses.
//
// All state is in memory. Mutations are atomic: a failed
// CertifyAssets leaves the tree, the store, and the root hash exactly
// as they were. After any successful mutation the caller re-publishes
// [Router.RootHash] to the host.
type Router struct {
	tree  *hashtree.Tree
	store *assetstore.Store
	log   *slog.Logger
}

// New returns an empty router. A nil logger discards log output.
func New(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Router{
		tree:  hashtree.New(),
		store: assetstore.New(),
		log:   logger,
	}
}

// RootHash returns the 32-byte digest committing every certified
// response. The host publishes this as its certified data.
func (r *Router) RootHash() reprhash.Hash {
	return r.tree.RootHash()
}

// CertifyAssets certifies assets against configs and adds the
// resulting response variants to the router. Existing variants at the
// same expression paths are overwritten. On error nothing is
// modified.
func (r *Router) CertifyAssets(assets []Asset, configs []assetcfg.Config) error {
	staged, err := r.resolve(assets, configs)
	if err != nil {
		return err
	}

	for _, variant := range staged {
		variant.apply(r)
	}
	return nil
}

// DeleteAssets removes the response variants that certifying the same
// assets against the same configs produced. Certify-then-delete
// restores the previous root hash.
func (r *Router) DeleteAssets(assets []Asset, configs []assetcfg.Config) error {
	staged, err := r.resolve(assets, configs)
	if err != nil {
		return err
	}

	for _, variant := range staged {
		variant.remove(r)
	}
	return nil
}

// DeleteAssetsByPath removes every exact-match variant (all
// encodings, all chunks) and any redirect at the normalized path.
// Fallback variants are untouched; use [Router.DeleteFallbackAssetsByPath].
func (r *Router) DeleteAssetsByPath(path string) {
	normalized := normalizePath(path)

	for _, key := range r.store.ExactKeys() {
		if key.Path != normalized {
			continue
		}
		if entry, ok := r.store.GetExact(key); ok {
			r.tree.Delete(exprPathLabels(entry.ExprPath))
			r.store.DeleteExact(key)
		}
	}

	if entry, ok := r.store.GetRedirect(normalized); ok {
		r.tree.Delete(exprPathLabels(entry.ExprPath))
		r.store.DeleteRedirect(normalized)
	}
}

// DeleteFallbackAssetsByPath removes every fallback variant scoped to
// the normalized path. Exact-match variants and redirects are
// untouched.
func (r *Router) DeleteFallbackAssetsByPath(scope string) {
	normalized := normalizePath(scope)

	for _, key := range r.store.FallbackKeys() {
		if key.Path != normalized {
			continue
		}
		if entry, ok := r.store.GetFallback(key); ok {
			r.tree.Delete(exprPathLabels(entry.ExprPath))
			r.store.DeleteFallback(key)
		}
	}
}

// DeleteAllAssets removes everything. The root hash returns to the
// empty-tree root.
func (r *Router) DeleteAllAssets() {
	r.tree = hashtree.New()
	r.store.DeleteAll()
}

// AssetInfo describes one certified response variant in a listing.
type AssetInfo struct {
	// Path is the served path, or the fallback scope.
	Path string

	// Encoding of the stored body.
	Encoding assetcfg.Encoding

	// Size of this variant's body in bytes (one chunk for chunked
	// assets).
	Size int

	// BodyRef is the short content reference for the body bytes.
	BodyRef string

	// Fallback is true for fallback-scope variants.
	Fallback bool

	// ChunkIndex of this variant.
	ChunkIndex int
}

// GetAssets lists every certified asset variant: exact responses
// first, then fallbacks, both in sorted order. Redirects are not
// listed.
func (r *Router) GetAssets() []AssetInfo {
	var infos []AssetInfo
	for _, key := range r.store.ExactKeys() {
		entry, _ := r.store.GetExact(key)
		infos = append(infos, AssetInfo{
			Path:       key.Path,
			Encoding:   key.Encoding,
			Size:       len(entry.Response.Body),
			BodyRef:    entry.BodyRef,
			ChunkIndex: key.ChunkIndex,
		})
	}
	for _, key := range r.store.FallbackKeys() {
		entry, _ := r.store.GetFallback(key)
		infos = append(infos, AssetInfo{
			Path:       key.Path,
			Encoding:   key.Encoding,
			Size:       len(entry.Response.Body),
			BodyRef:    entry.BodyRef,
			Fallback:   true,
			ChunkIndex: key.ChunkIndex,
		})
	}
	return infos
}
