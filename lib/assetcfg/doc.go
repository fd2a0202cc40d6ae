// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

// Package assetcfg defines the declarative per-asset configuration
// surface: which assets get which content types and headers, which
// encodings are certified, which paths alias or fall back to which
// assets, and which paths redirect.
//
// Configurations are inert data. The resolver in lib/router matches
// them against assets and expands the certified response set.
package assetcfg
