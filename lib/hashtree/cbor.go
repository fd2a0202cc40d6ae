// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package hashtree

import (
	"fmt"

	"github.com/assetcert-foundation/assetcert/lib/codec"
	"github.com/assetcert-foundation/assetcert/lib/reprhash"
)

// Witness wire tags. Each witness node encodes as a CBOR array whose
// first element is the tag:
//
//	[1, [[label, subtree], ...]]  interior node
//	[3, value]                    leaf
//	[4, hash]                     pruned stub
//
// Labels, values, and hashes are byte strings. The encoding is part
// of the certificate header contract consumed by verifying clients.
const (
	wireNode   = 1
	wireLeaf   = 3
	wirePruned = 4
)

// MarshalCBOR encodes the witness with deterministic CBOR.
func (w *Witness) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(w.root.wire())
}

func (wn *witnessNode) wire() []any {
	switch wn.kind {
	case witnessLeafKind:
		return []any{wireLeaf, wn.value[:]}
	case witnessPrunedKind:
		return []any{wirePruned, wn.pruned[:]}
	default:
		entries := make([]any, 0, len(wn.edges))
		for _, e := range wn.edges {
			entries = append(entries, []any{e.label, e.child.wire()})
		}
		return []any{wireNode, entries}
	}
}

// UnmarshalCBOR decodes a witness previously produced by
// [Witness.MarshalCBOR]. Used by tests that verify the full serve
// round trip.
func (w *Witness) UnmarshalCBOR(data []byte) error {
	var raw any
	if err := codec.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("hashtree: decoding witness: %w", err)
	}
	root, err := unwire(raw)
	if err != nil {
		return err
	}
	w.root = root
	return nil
}

func unwire(raw any) (*witnessNode, error) {
	entry, ok := raw.([]any)
	if !ok || len(entry) < 1 {
		return nil, fmt.Errorf("hashtree: witness node is not a tagged array")
	}
	tag, ok := toInt(entry[0])
	if !ok {
		return nil, fmt.Errorf("hashtree: witness node tag is not an integer")
	}

	switch tag {
	case wireLeaf:
		value, err := toHash(entry, "leaf value")
		if err != nil {
			return nil, err
		}
		return &witnessNode{kind: witnessLeafKind, value: value}, nil

	case wirePruned:
		hash, err := toHash(entry, "pruned hash")
		if err != nil {
			return nil, err
		}
		return &witnessNode{kind: witnessPrunedKind, pruned: hash}, nil

	case wireNode:
		if len(entry) != 2 {
			return nil, fmt.Errorf("hashtree: interior witness node has %d elements, want 2", len(entry))
		}
		rawEdges, ok := entry[1].([]any)
		if !ok {
			return nil, fmt.Errorf("hashtree: interior witness node edges are not an array")
		}
		result := &witnessNode{kind: witnessNodeKind}
		for _, rawEdge := range rawEdges {
			pair, ok := rawEdge.([]any)
			if !ok || len(pair) != 2 {
				return nil, fmt.Errorf("hashtree: witness edge is not a [label, subtree] pair")
			}
			label, ok := pair[0].([]byte)
			if !ok {
				return nil, fmt.Errorf("hashtree: witness edge label is not a byte string")
			}
			child, err := unwire(pair[1])
			if err != nil {
				return nil, err
			}
			result.edges = append(result.edges, witnessEdge{label: label, child: child})
		}
		return result, nil

	default:
		return nil, fmt.Errorf("hashtree: unknown witness node tag %d", tag)
	}
}

func toHash(entry []any, what string) (reprhash.Hash, error) {
	var hash reprhash.Hash
	if len(entry) != 2 {
		return hash, fmt.Errorf("hashtree: %s node has %d elements, want 2", what, len(entry))
	}
	raw, ok := entry[1].([]byte)
	if !ok || len(raw) != 32 {
		return hash, fmt.Errorf("hashtree: %s is not a 32-byte string", what)
	}
	copy(hash[:], raw)
	return hash, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case uint64:
		return int(n), true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
