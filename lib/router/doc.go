// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

// Package router is the asset certification router: it expands
// declarative configurations over static assets into a set of
// certified HTTP response variants, commits them to the certification
// tree, and routes incoming requests to the right variant.
//
// Certification builds everything in a staging set before touching
// the router, so a failed batch changes nothing. Serving selects by
// exact path, then redirect, then fallback scope, honoring the
// client's Accept-Encoding against the server's encoding priority
// and Range headers on chunked assets. The routed result carries the
// tree witness and expression path the caller needs to assemble the
// IC-Certificate header once the host hands it the data certificate.
package router
