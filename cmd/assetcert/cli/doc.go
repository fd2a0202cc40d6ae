// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the minimal command dispatcher for the assetcert
// tool: named subcommands, pflag flag sets, and generated help text.
package cli
