// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

// Package assetstore holds the certified responses between
// certification and serving.
//
// Responses are keyed by (path, encoding, chunk index) and stored by
// value. Exact responses, fallback responses (keyed by scope), and
// redirects occupy separate indices because their deletion semantics
// differ: deleting assets at a path leaves fallback scopes intact,
// and a fallback scope is not a servable path of its own.
package assetstore
