// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

// Package httpcert models HTTP requests and responses for the
// certification pipeline and computes per-response certification
// hashes.
//
// Responses keep headers as an ordered list — certification hashes
// canonicalize internally, but the served bytes must reproduce the
// exact header sequence that was certified. The package also
// assembles the IC-Certificate header from the host certificate, the
// tree witness, and the expression path.
package httpcert
