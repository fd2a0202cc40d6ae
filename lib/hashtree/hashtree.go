// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package hashtree

import (
	"bytes"
	"crypto/sha256"
	"sort"

	"github.com/assetcert-foundation/assetcert/lib/reprhash"
)

// Domain separators for node hashing. These are external contract
// constants — they must match the host's certified-data tree
// reference implementation bit-exactly. Changing them changes every
// root hash ever published.
const (
	nodeDomainSep = "node"
	leafDomainSep = "leaf"
)

// Tree is a labeled Merkle trie. Edges carry arbitrary byte-string
// labels; leaves carry 32-byte value hashes. A path is a sequence of
// labels walked from the root.
//
// The zero value is not usable; create trees with [New]. Tree is not
// safe for concurrent mutation; the execution model is single-
// threaded and run-to-completion.
type Tree struct {
	root *node

	// rootHash caches the last computed root. Mutations reset it to
	// nil. Computing the root is linear in the tree size, so callers
	// that publish after a batch of inserts only pay once.
	rootHash *reprhash.Hash
}

// node is either a leaf (leaf true, value set) or an interior node
// (edges sorted by label). A node is never both.
type node struct {
	leaf  bool
	value reprhash.Hash
	edges []edge
}

type edge struct {
	label []byte
	child *node
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{root: &node{}}
}

// EmptyRootHash is the root hash of a tree with no leaves.
func EmptyRootHash() reprhash.Hash {
	return (&node{}).hash()
}

// Insert places valueHash at path, creating interior nodes as needed.
// An existing leaf at the same path is overwritten. If the path runs
// through an existing leaf, or ends at an existing interior node, the
// previous occupant is replaced — last write wins.
func (t *Tree) Insert(path [][]byte, valueHash reprhash.Hash) {
	t.rootHash = nil

	current := t.root
	for _, label := range path[:len(path)-1] {
		next := current.findEdge(label)
		if next == nil || next.leaf {
			replacement := &node{}
			current.setEdge(label, replacement)
			next = replacement
		}
		current = next
	}

	last := path[len(path)-1]
	current.setEdge(last, &node{leaf: true, value: valueHash})
}

// Delete removes the leaf at path and garbage-collects interior nodes
// left empty. Deleting a path with no leaf is a no-op.
func (t *Tree) Delete(path [][]byte) {
	t.rootHash = nil

	// Record the walk so empty interiors can be unlinked bottom-up.
	walked := make([]*node, 0, len(path))
	current := t.root
	for _, label := range path[:len(path)-1] {
		walked = append(walked, current)
		current = current.findEdge(label)
		if current == nil || current.leaf {
			return
		}
	}

	last := path[len(path)-1]
	target := current.findEdge(last)
	if target == nil || !target.leaf {
		return
	}
	current.removeEdge(last)

	for i := len(walked) - 1; i >= 0; i-- {
		if len(current.edges) > 0 {
			break
		}
		walked[i].removeEdge(path[i])
		current = walked[i]
	}
}

// Lookup returns the value hash at path and whether a leaf exists
// there.
func (t *Tree) Lookup(path [][]byte) (reprhash.Hash, bool) {
	current := t.root
	for _, label := range path {
		current = current.findEdge(label)
		if current == nil {
			return reprhash.Hash{}, false
		}
	}
	if !current.leaf {
		return reprhash.Hash{}, false
	}
	return current.value, true
}

// RootHash returns the 32-byte digest committing the full tree. The
// result is cached until the next mutation.
func (t *Tree) RootHash() reprhash.Hash {
	if t.rootHash == nil {
		hash := t.root.hash()
		t.rootHash = &hash
	}
	return *t.rootHash
}

// hash computes a node's digest.
//
// Leaf: H("leaf" || value). Interior: H("node" || for each edge in
// label order: H(label) || H(child)). The empty tree is an interior
// node with no edges, H("node").
func (n *node) hash() reprhash.Hash {
	hasher := sha256.New()
	if n.leaf {
		hasher.Write([]byte(leafDomainSep))
		hasher.Write(n.value[:])
	} else {
		hasher.Write([]byte(nodeDomainSep))
		for _, e := range n.edges {
			labelHash := sha256.Sum256(e.label)
			childHash := e.child.hash()
			hasher.Write(labelHash[:])
			hasher.Write(childHash[:])
		}
	}

	var result reprhash.Hash
	copy(result[:], hasher.Sum(nil))
	return result
}

// findEdge returns the child for label, or nil.
func (n *node) findEdge(label []byte) *node {
	i, found := n.searchEdge(label)
	if !found {
		return nil
	}
	return n.edges[i].child
}

// setEdge inserts or replaces the edge for label, keeping edges
// sorted.
func (n *node) setEdge(label []byte, child *node) {
	i, found := n.searchEdge(label)
	if found {
		n.edges[i].child = child
		return
	}
	n.edges = append(n.edges, edge{})
	copy(n.edges[i+1:], n.edges[i:])
	n.edges[i] = edge{label: append([]byte(nil), label...), child: child}
}

// removeEdge deletes the edge for label if present.
func (n *node) removeEdge(label []byte) {
	i, found := n.searchEdge(label)
	if !found {
		return
	}
	n.edges = append(n.edges[:i], n.edges[i+1:]...)
}

// searchEdge returns the index where label is or would be, and
// whether it is present.
func (n *node) searchEdge(label []byte) (int, bool) {
	i := sort.Search(len(n.edges), func(i int) bool {
		return bytes.Compare(n.edges[i].label, label) >= 0
	})
	return i, i < len(n.edges) && bytes.Equal(n.edges[i].label, label)
}
