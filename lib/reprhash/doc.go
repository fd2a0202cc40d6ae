// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

// Package reprhash implements representation-independent hashing of
// ordered maps of typed values.
//
// The certification engine hashes HTTP response headers (plus a
// status pseudo-header) through this package. The digest is stable
// across implementations and languages: it depends only on the
// logical names and values, never on serialization details, field
// order, or integer widths. A verifying client reassembling the same
// header set from a received response must arrive at the same 32
// bytes, so the pair-sorting and LEB128 rules here are an external
// contract and cannot change.
package reprhash
