// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package hashtree

import (
	"bytes"
	"crypto/sha256"

	"github.com/assetcert-foundation/assetcert/lib/reprhash"
)

// Witness is a pruned view of a tree. Every node on the path from
// root to the target keeps its full labeled edge set; off-path
// subtrees are replaced by hash-only stubs. If the target leaf is
// present it is kept; if absent, the deepest node reached reveals its
// complete edge set (children pruned), which proves the labeled gap
// because the node hash commits to the full edge list.
type Witness struct {
	root *witnessNode
}

// witnessKind discriminates witness node shapes.
type witnessKind int

const (
	witnessNodeKind witnessKind = iota
	witnessLeafKind
	witnessPrunedKind
)

type witnessNode struct {
	kind   witnessKind
	value  reprhash.Hash // leaf
	pruned reprhash.Hash // pruned stub
	edges  []witnessEdge // interior
}

type witnessEdge struct {
	label []byte
	child *witnessNode
}

// Witness builds the pruned tree for path. It never fails: an absent
// path yields an absence proof.
func (t *Tree) Witness(path [][]byte) *Witness {
	return &Witness{root: witnessWalk(t.root, path)}
}

func witnessWalk(n *node, path [][]byte) *witnessNode {
	if n.leaf {
		// Path continues below a leaf (absence) or terminates here
		// (presence). Either way the leaf is revealed.
		return &witnessNode{kind: witnessLeafKind, value: n.value}
	}

	result := &witnessNode{kind: witnessNodeKind}
	for _, e := range n.edges {
		onPath := len(path) > 0 && bytes.Equal(e.label, path[0])

		var child *witnessNode
		if onPath {
			child = witnessWalk(e.child, path[1:])
		} else {
			child = &witnessNode{kind: witnessPrunedKind, pruned: e.child.hash()}
		}
		result.edges = append(result.edges, witnessEdge{
			label: append([]byte(nil), e.label...),
			child: child,
		})
	}
	return result
}

// RootHash recomputes the root digest from the witness. A verifier
// compares this against the published certified-data root.
func (w *Witness) RootHash() reprhash.Hash {
	return w.root.hash()
}

// LookupValue returns the leaf value at path inside the witness, if
// the witness reveals one.
func (w *Witness) LookupValue(path [][]byte) (reprhash.Hash, bool) {
	current := w.root
	for _, label := range path {
		if current.kind != witnessNodeKind {
			return reprhash.Hash{}, false
		}
		var next *witnessNode
		for _, e := range current.edges {
			if bytes.Equal(e.label, label) {
				next = e.child
				break
			}
		}
		if next == nil {
			return reprhash.Hash{}, false
		}
		current = next
	}
	if current.kind != witnessLeafKind {
		return reprhash.Hash{}, false
	}
	return current.value, true
}

func (wn *witnessNode) hash() reprhash.Hash {
	switch wn.kind {
	case witnessPrunedKind:
		return wn.pruned
	case witnessLeafKind:
		hasher := sha256.New()
		hasher.Write([]byte(leafDomainSep))
		hasher.Write(wn.value[:])
		var result reprhash.Hash
		copy(result[:], hasher.Sum(nil))
		return result
	default:
		hasher := sha256.New()
		hasher.Write([]byte(nodeDomainSep))
		for _, e := range wn.edges {
			labelHash := sha256.Sum256(e.label)
			childHash := e.child.hash()
			hasher.Write(labelHash[:])
			hasher.Write(childHash[:])
		}
		var result reprhash.Hash
		copy(result[:], hasher.Sum(nil))
		return result
	}
}
