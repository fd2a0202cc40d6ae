// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec centralizes CBOR encoding and decoding for the module.
//
// All certification artifacts that cross the wire — certification
// expressions, tree witnesses, expression paths — are CBOR. Encoding
// uses Core Deterministic Encoding (RFC 8949 §4.2) so that the same
// logical value always produces identical bytes; the expression hash
// and every hash derived from encoded output depend on this.
//
// Consumers import only this package, not fxamacker/cbor directly,
// so the encoding configuration cannot drift between call sites.
package codec
