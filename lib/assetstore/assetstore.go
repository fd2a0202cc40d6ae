// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package assetstore

import (
	"encoding/hex"
	"sort"

	"github.com/zeebo/blake3"

	"github.com/assetcert-foundation/assetcert/lib/assetcfg"
	"github.com/assetcert-foundation/assetcert/lib/httpcert"
)

// ChunkSize is the certification chunk size. Bodies larger than this
// are split into consecutive, independently certified chunks. The
// value is a protocol constant: changing it changes every chunked
// response and therefore the root hash.
const ChunkSize = 2 * 1024 * 1024

// Key addresses one stored certified response.
type Key struct {
	// Path is the normalized request path (or fallback scope).
	Path string

	// Encoding is the body's content encoding.
	Encoding assetcfg.Encoding

	// ChunkIndex is 0 for unchunked responses and for the first chunk.
	ChunkIndex int
}

// Entry is a stored certified response with the metadata needed to
// serve and witness it.
type Entry struct {
	// Response is the fully built response, expression header
	// included. Stored by value: mutations of caller memory after
	// certification cannot reach it.
	Response *httpcert.Response

	// ExprPath is the expression path the response's leaf lives at.
	ExprPath []string

	// BodyRef identifies the body bytes in logs. Alias variants of
	// the same asset share a ref.
	BodyRef string

	// TotalLength is the length of the complete asset body; equal to
	// len(Response.Body) for unchunked responses.
	TotalLength int

	// RangeStart is the byte offset of this chunk within the
	// complete body.
	RangeStart int
}

// Store is the in-memory index of certified responses. Exact
// responses, fallback responses, and redirects live in separate
// indices: deletion by path must not disturb fallback scopes and vice
// versa.
//
// Not safe for concurrent mutation; the execution model is single-
// threaded and run-to-completion.
type Store struct {
	exact     map[Key]*Entry
	fallbacks map[Key]*Entry
	redirects map[string]*Entry
}

// New returns an empty store.
func New() *Store {
	return &Store{
		exact:     make(map[Key]*Entry),
		fallbacks: make(map[Key]*Entry),
		redirects: make(map[string]*Entry),
	}
}

// PutExact stores an exact-match response variant.
func (s *Store) PutExact(key Key, entry *Entry) {
	s.exact[key] = cloneEntry(entry)
}

// GetExact returns the exact-match variant for key.
func (s *Store) GetExact(key Key) (*Entry, bool) {
	entry, ok := s.exact[key]
	return entry, ok
}

// DeleteExact removes one exact-match variant.
func (s *Store) DeleteExact(key Key) {
	delete(s.exact, key)
}

// PutFallback stores a fallback variant; Key.Path is the scope.
func (s *Store) PutFallback(key Key, entry *Entry) {
	s.fallbacks[key] = cloneEntry(entry)
}

// GetFallback returns the fallback variant for a scope.
func (s *Store) GetFallback(key Key) (*Entry, bool) {
	entry, ok := s.fallbacks[key]
	return entry, ok
}

// DeleteFallback removes one fallback variant.
func (s *Store) DeleteFallback(key Key) {
	delete(s.fallbacks, key)
}

// PutRedirect stores the redirect response for a path.
func (s *Store) PutRedirect(path string, entry *Entry) {
	s.redirects[path] = cloneEntry(entry)
}

// GetRedirect returns the redirect at path.
func (s *Store) GetRedirect(path string) (*Entry, bool) {
	entry, ok := s.redirects[path]
	return entry, ok
}

// DeleteRedirect removes the redirect at path.
func (s *Store) DeleteRedirect(path string) {
	delete(s.redirects, path)
}

// DeleteAll empties every index.
func (s *Store) DeleteAll() {
	s.exact = make(map[Key]*Entry)
	s.fallbacks = make(map[Key]*Entry)
	s.redirects = make(map[string]*Entry)
}

// Len returns the total number of stored responses across all
// indices.
func (s *Store) Len() int {
	return len(s.exact) + len(s.fallbacks) + len(s.redirects)
}

// ExactKeys returns the exact-index keys sorted by path, encoding,
// chunk. Listing output must be deterministic.
func (s *Store) ExactKeys() []Key {
	return sortedKeys(s.exact)
}

// FallbackKeys returns the fallback-index keys, sorted.
func (s *Store) FallbackKeys() []Key {
	return sortedKeys(s.fallbacks)
}

// RedirectPaths returns the redirect paths, sorted.
func (s *Store) RedirectPaths() []string {
	paths := make([]string, 0, len(s.redirects))
	for path := range s.redirects {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func sortedKeys(index map[Key]*Entry) []Key {
	keys := make([]Key, 0, len(index))
	for key := range index {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Path != keys[j].Path {
			return keys[i].Path < keys[j].Path
		}
		if keys[i].Encoding != keys[j].Encoding {
			return keys[i].Encoding < keys[j].Encoding
		}
		return keys[i].ChunkIndex < keys[j].ChunkIndex
	})
	return keys
}

func cloneEntry(entry *Entry) *Entry {
	clone := *entry
	clone.Response = entry.Response.Clone()
	clone.ExprPath = append([]string(nil), entry.ExprPath...)
	return &clone
}

// ChunkCount returns the number of certified responses a body of the
// given length produces. Bodies up to ChunkSize (including empty
// bodies) are a single response.
func ChunkCount(totalLength int) int {
	if totalLength <= ChunkSize {
		return 1
	}
	return (totalLength + ChunkSize - 1) / ChunkSize
}

// ChunkBounds returns the [start, end) byte interval of the chunk at
// index within a body of the given length.
func ChunkBounds(totalLength, index int) (start, end int) {
	start = index * ChunkSize
	end = start + ChunkSize
	if end > totalLength {
		end = totalLength
	}
	return start, end
}

// ContentRef returns the short content reference for a body: the
// "ast-" prefix followed by the first 12 hex characters of the body's
// BLAKE3 hash. Refs identify bodies in logs and listings; they play
// no part in certification, which is SHA-256 throughout.
func ContentRef(body []byte) string {
	sum := blake3.Sum256(body)
	return "ast-" + hex.EncodeToString(sum[:6])
}
