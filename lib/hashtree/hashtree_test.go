// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package hashtree

import (
	"testing"

	"github.com/assetcert-foundation/assetcert/lib/reprhash"
)

func path(segments ...string) [][]byte {
	result := make([][]byte, len(segments))
	for i, s := range segments {
		result[i] = []byte(s)
	}
	return result
}

func valueHash(s string) reprhash.Hash {
	return reprhash.HashBytes([]byte(s))
}

func TestEmptyTreeRootHash(t *testing.T) {
	if New().RootHash() != EmptyRootHash() {
		t.Error("fresh tree root does not equal the empty root")
	}
}

func TestInsertLookup(t *testing.T) {
	tree := New()
	tree.Insert(path("http_expr", "app.js", "<$>"), valueHash("app"))
	tree.Insert(path("http_expr", "css", "site.css", "<$>"), valueHash("css"))

	got, ok := tree.Lookup(path("http_expr", "app.js", "<$>"))
	if !ok || got != valueHash("app") {
		t.Error("lookup of inserted leaf failed")
	}
	if _, ok := tree.Lookup(path("http_expr", "missing", "<$>")); ok {
		t.Error("lookup of absent path succeeded")
	}
	// Interior nodes are not leaves.
	if _, ok := tree.Lookup(path("http_expr", "css")); ok {
		t.Error("interior node reported as leaf")
	}
}

func TestInsertOverwrites(t *testing.T) {
	tree := New()
	p := path("http_expr", "index.html", "<$>")

	tree.Insert(p, valueHash("one"))
	firstRoot := tree.RootHash()
	tree.Insert(p, valueHash("two"))

	got, _ := tree.Lookup(p)
	if got != valueHash("two") {
		t.Error("second insert did not overwrite")
	}
	if tree.RootHash() == firstRoot {
		t.Error("overwriting a leaf did not change the root")
	}
}

func TestRootHashIsOrderIndependent(t *testing.T) {
	forward := New()
	forward.Insert(path("a", "<$>"), valueHash("1"))
	forward.Insert(path("b", "<$>"), valueHash("2"))
	forward.Insert(path("a", "b", "<*>"), valueHash("3"))

	backward := New()
	backward.Insert(path("a", "b", "<*>"), valueHash("3"))
	backward.Insert(path("b", "<$>"), valueHash("2"))
	backward.Insert(path("a", "<$>"), valueHash("1"))

	if forward.RootHash() != backward.RootHash() {
		t.Error("root hash depends on insertion order")
	}
}

func TestDeleteRoundTrip(t *testing.T) {
	tree := New()
	empty := tree.RootHash()

	tree.Insert(path("http_expr", "a", "b", "<$>"), valueHash("x"))
	tree.Insert(path("http_expr", "a", "c", "<$>"), valueHash("y"))
	tree.Delete(path("http_expr", "a", "b", "<$>"))
	tree.Delete(path("http_expr", "a", "c", "<$>"))

	if tree.RootHash() != empty {
		t.Error("deleting all leaves did not restore the empty root")
	}
}

func TestDeleteGarbageCollectsInteriors(t *testing.T) {
	tree := New()
	tree.Insert(path("a", "<$>"), valueHash("keep"))
	withOne := tree.RootHash()

	tree.Insert(path("b", "c", "d", "<$>"), valueHash("drop"))
	tree.Delete(path("b", "c", "d", "<$>"))

	if tree.RootHash() != withOne {
		t.Error("empty interior chain was not collected")
	}
}

func TestDeleteAbsentPathIsNoop(t *testing.T) {
	tree := New()
	tree.Insert(path("a", "<$>"), valueHash("keep"))
	before := tree.RootHash()

	tree.Delete(path("a", "b", "<$>"))
	tree.Delete(path("z", "<$>"))
	tree.Delete(path("a")) // interior, not a leaf

	if tree.RootHash() != before {
		t.Error("deleting absent paths changed the tree")
	}
}

func TestRootHashCacheInvalidation(t *testing.T) {
	tree := New()
	tree.Insert(path("a", "<$>"), valueHash("1"))

	first := tree.RootHash()
	if tree.RootHash() != first {
		t.Error("cached root differs from computed root")
	}

	tree.Insert(path("b", "<$>"), valueHash("2"))
	second := tree.RootHash()
	if second == first {
		t.Error("insert did not invalidate the root cache")
	}

	tree.Delete(path("b", "<$>"))
	if tree.RootHash() != first {
		t.Error("delete did not invalidate the root cache")
	}
}

func TestWitnessPresence(t *testing.T) {
	tree := New()
	target := path("http_expr", "assets", "app.js", "<$>")
	tree.Insert(target, valueHash("app"))
	tree.Insert(path("http_expr", "assets", "site.css", "<$>"), valueHash("css"))
	tree.Insert(path("http_expr", "<*>"), valueHash("fallback"))

	witness := tree.Witness(target)
	if witness.RootHash() != tree.RootHash() {
		t.Error("witness root does not match tree root")
	}

	value, ok := witness.LookupValue(target)
	if !ok || value != valueHash("app") {
		t.Error("witness does not reveal the target leaf")
	}
	// Sibling leaves are pruned, not revealed.
	if _, ok := witness.LookupValue(path("http_expr", "assets", "site.css", "<$>")); ok {
		t.Error("witness reveals a sibling leaf")
	}
	if _, ok := witness.LookupValue(path("http_expr", "<*>")); ok {
		t.Error("witness reveals an off-path leaf")
	}
}

func TestWitnessAbsence(t *testing.T) {
	tree := New()
	tree.Insert(path("http_expr", "a", "<$>"), valueHash("a"))
	tree.Insert(path("http_expr", "c", "<$>"), valueHash("c"))

	witness := tree.Witness(path("http_expr", "b", "<$>"))
	if witness.RootHash() != tree.RootHash() {
		t.Error("absence witness root does not match tree root")
	}
	if _, ok := witness.LookupValue(path("http_expr", "b", "<$>")); ok {
		t.Error("absence witness claims the missing leaf exists")
	}
}

func TestWitnessOnEmptyTree(t *testing.T) {
	tree := New()
	witness := tree.Witness(path("http_expr", "anything", "<$>"))
	if witness.RootHash() != EmptyRootHash() {
		t.Error("witness over empty tree does not reproduce the empty root")
	}
}

func TestWitnessCBORRoundTrip(t *testing.T) {
	tree := New()
	target := path("http_expr", "index.html", "<$>")
	tree.Insert(target, valueHash("index"))
	tree.Insert(path("http_expr", "app.js", "<$>"), valueHash("app"))

	witness := tree.Witness(target)
	encoded, err := witness.MarshalCBOR()
	if err != nil {
		t.Fatalf("MarshalCBOR: %v", err)
	}

	var decoded Witness
	if err := decoded.UnmarshalCBOR(encoded); err != nil {
		t.Fatalf("UnmarshalCBOR: %v", err)
	}
	if decoded.RootHash() != tree.RootHash() {
		t.Error("decoded witness root does not match tree root")
	}
	value, ok := decoded.LookupValue(target)
	if !ok || value != valueHash("index") {
		t.Error("decoded witness lost the target leaf")
	}
}

func TestWitnessCBORRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"not an array", []byte{0xa0}},          // {}
		{"unknown tag", []byte{0x82, 0x09, 0x80}}, // [9, []]
		{"truncated", []byte{0x82}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var w Witness
			if err := w.UnmarshalCBOR(tc.data); err == nil {
				t.Error("malformed witness accepted")
			}
		})
	}
}

func TestSubtreeShadowing(t *testing.T) {
	// Inserting a leaf where a subtree lives replaces the subtree,
	// and inserting through a leaf replaces the leaf. Expression
	// paths never collide this way, but the tree must stay
	// consistent if they do.
	tree := New()
	tree.Insert(path("a", "b", "<$>"), valueHash("deep"))
	tree.Insert(path("a"), valueHash("shallow"))

	if _, ok := tree.Lookup(path("a", "b", "<$>")); ok {
		t.Error("replaced subtree still reachable")
	}
	got, ok := tree.Lookup(path("a"))
	if !ok || got != valueHash("shallow") {
		t.Error("leaf did not replace subtree")
	}

	tree.Insert(path("a", "c", "<$>"), valueHash("deeper"))
	if _, ok := tree.Lookup(path("a")); ok {
		t.Error("replaced leaf still reachable")
	}
}
