// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

// Package certexpr models certification expressions: the declarative
// record, attached to every certified response, stating which request
// and response fields the certificate covers.
//
// An expression serializes to deterministic CBOR; its SHA-256 digest
// is the first input hashed into the leaf value committed to the
// certification tree. The hex-encoded CBOR travels with the response in the
// IC-CertificateExpression header so a verifying client can recompute
// the digest without out-of-band schema knowledge.
package certexpr
