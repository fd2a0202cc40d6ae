// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

// Package hashtree implements the certification tree: a labeled
// Merkle trie keyed by expression path.
//
// Each certified response occupies one leaf. The 32-byte root hash
// commits the entire response set and is what the host publishes as
// certified data. Witnesses are pruned copies of the tree revealing
// a single path — the verifier recomputes the root from the witness
// and compares it against the certificate.
//
// The node hashing rule (domain separators, label hashing, edge
// ordering) is an external contract shared with the host's
// certified-data tree; the constants in this package must not change
// independently.
package hashtree
