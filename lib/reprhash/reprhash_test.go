// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package reprhash

import (
	"bytes"
	"crypto/sha256"
	"testing"
)

func TestHashMapIgnoresInsertionOrder(t *testing.T) {
	forward := []KeyValue{
		{Name: "content-type", Value: String("text/html")},
		{Name: "cache-control", Value: String("no-store")},
		{Name: ":ic-cert-status", Value: Unsigned(200)},
	}
	reversed := []KeyValue{forward[2], forward[1], forward[0]}

	if HashMap(forward) != HashMap(reversed) {
		t.Error("map hash depends on insertion order")
	}
}

func TestHashMapDistinguishesValues(t *testing.T) {
	base := []KeyValue{{Name: "content-type", Value: String("text/html")}}
	changed := []KeyValue{{Name: "content-type", Value: String("text/css")}}
	renamed := []KeyValue{{Name: "content-length", Value: String("text/html")}}

	if HashMap(base) == HashMap(changed) {
		t.Error("changing a value did not change the map hash")
	}
	if HashMap(base) == HashMap(renamed) {
		t.Error("changing a name did not change the map hash")
	}
}

func TestHashMapDuplicateNames(t *testing.T) {
	// Duplicate names are legal (repeated headers). Both occurrences
	// contribute a pair digest.
	single := []KeyValue{{Name: "set-cookie", Value: String("a=1")}}
	double := []KeyValue{
		{Name: "set-cookie", Value: String("a=1")},
		{Name: "set-cookie", Value: String("b=2")},
	}
	if HashMap(single) == HashMap(double) {
		t.Error("repeated header occurrence did not change the map hash")
	}
}

func TestHashValueStringMatchesRawSHA256(t *testing.T) {
	want := sha256.Sum256([]byte("hello"))
	if HashValue(String("hello")) != Hash(want) {
		t.Error("string value must hash as its raw bytes")
	}
	if HashValue(ByteString([]byte("hello"))) != Hash(want) {
		t.Error("byte-string value must hash as its raw bytes")
	}
}

func TestHashValueArrayConcatenatesElementHashes(t *testing.T) {
	first := HashValue(String("a"))
	second := HashValue(String("b"))
	want := sha256.Sum256(append(append([]byte{}, first[:]...), second[:]...))

	if HashValue(Array(String("a"), String("b"))) != Hash(want) {
		t.Error("array hash is not the hash of concatenated element hashes")
	}
}

func TestHashValueIntegerWidthIndependence(t *testing.T) {
	// The LEB128 encoding hashes small numbers identically regardless
	// of the Go type the caller held them in; spot-check boundaries
	// around the 7-bit group size.
	cases := []struct {
		n    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{624485, []byte{0xe5, 0x8e, 0x26}},
	}
	for _, tc := range cases {
		got := appendULEB128(nil, tc.n)
		if !bytes.Equal(got, tc.want) {
			t.Errorf("ULEB128(%d) = %x, want %x", tc.n, got, tc.want)
		}
		want := sha256.Sum256(tc.want)
		if HashValue(Unsigned(tc.n)) != Hash(want) {
			t.Errorf("Unsigned(%d) hash does not match its LEB128 bytes", tc.n)
		}
	}
}

func TestSLEB128(t *testing.T) {
	cases := []struct {
		n    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{-1, []byte{0x7f}},
		{63, []byte{0x3f}},
		{64, []byte{0xc0, 0x00}},
		{-64, []byte{0x40}},
		{-65, []byte{0xbf, 0x7f}},
		{-123456, []byte{0xc0, 0xbb, 0x78}},
	}
	for _, tc := range cases {
		got := appendSLEB128(nil, tc.n)
		if !bytes.Equal(got, tc.want) {
			t.Errorf("SLEB128(%d) = %x, want %x", tc.n, got, tc.want)
		}
	}
}

func TestNestedMapHash(t *testing.T) {
	inner := Map(KeyValue{Name: "x", Value: Unsigned(1)})
	outer := []KeyValue{{Name: "nested", Value: inner}}

	want := HashMap([]KeyValue{{Name: "x", Value: Unsigned(1)}})
	if HashValue(inner) != want {
		t.Error("nested map value must hash via HashMap")
	}
	// The outer map hash must be reproducible.
	if HashMap(outer) != HashMap(outer) {
		t.Error("nested map hashing is not deterministic")
	}
}

func TestFormatParseHashRoundTrip(t *testing.T) {
	hash := HashBytes([]byte("round trip"))
	parsed, err := ParseHash(FormatHash(hash))
	if err != nil {
		t.Fatalf("ParseHash: %v", err)
	}
	if parsed != hash {
		t.Error("hash did not survive format/parse round trip")
	}

	if _, err := ParseHash("zz"); err == nil {
		t.Error("ParseHash accepted invalid hex")
	}
	if _, err := ParseHash("abcd"); err == nil {
		t.Error("ParseHash accepted short input")
	}
}
