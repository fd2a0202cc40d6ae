// Copyright 2026 The Assetcert Authors
// SPDX-License-Identifier: Apache-2.0

package reprhash

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// Hash is a 32-byte SHA-256 digest. Every digest the certification
// pipeline produces — value hashes, map hashes, node hashes, the root
// hash — is this size.
type Hash [32]byte

// Kind discriminates the representation-independent value types.
type Kind int

// Value kinds. The closed set mirrors what certified header values
// can carry: text, raw bytes, numbers, and nested collections.
const (
	KindString Kind = iota
	KindByteString
	KindUnsigned
	KindSigned
	KindArray
	KindMap
)

// Value is a typed value participating in representation-independent
// hashing. Exactly one field, selected by Kind, is meaningful.
type Value struct {
	Kind     Kind
	Str      string
	Bytes    []byte
	Unsigned uint64
	Signed   int64
	Array    []Value
	Map      []KeyValue
}

// KeyValue is one entry of an ordered map of typed values.
type KeyValue struct {
	Name  string
	Value Value
}

// String returns a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// ByteString returns a byte-string value.
func ByteString(b []byte) Value { return Value{Kind: KindByteString, Bytes: b} }

// Unsigned returns an unsigned integer value.
func Unsigned(n uint64) Value { return Value{Kind: KindUnsigned, Unsigned: n} }

// Signed returns a signed integer value.
func Signed(n int64) Value { return Value{Kind: KindSigned, Signed: n} }

// Array returns an array value.
func Array(elems ...Value) Value { return Value{Kind: KindArray, Array: elems} }

// Map returns a nested map value.
func Map(pairs ...KeyValue) Value { return Value{Kind: KindMap, Map: pairs} }

// HashValue computes the representation-independent hash of a single
// value. Strings and byte strings hash as their raw bytes. Integers
// hash as their LEB128 encoding (signed LEB128 for signed values), so
// the digest does not depend on a machine word size. Arrays hash as
// the concatenation of their element hashes. Maps hash recursively
// via [HashMap].
func HashValue(v Value) Hash {
	switch v.Kind {
	case KindString:
		return sha256.Sum256([]byte(v.Str))
	case KindByteString:
		return sha256.Sum256(v.Bytes)
	case KindUnsigned:
		return sha256.Sum256(appendULEB128(nil, v.Unsigned))
	case KindSigned:
		return sha256.Sum256(appendSLEB128(nil, v.Signed))
	case KindArray:
		var concat []byte
		for _, elem := range v.Array {
			h := HashValue(elem)
			concat = append(concat, h[:]...)
		}
		return sha256.Sum256(concat)
	case KindMap:
		return HashMap(v.Map)
	default:
		panic(fmt.Sprintf("reprhash: unknown value kind %d", v.Kind))
	}
}

// HashMap computes the representation-independent hash of an ordered
// map. Each pair digests to SHA-256(name) || SHA-256(value); the
// 64-byte pair digests are sorted lexicographically and the result is
// the SHA-256 of their concatenation. Sorting makes the digest
// independent of insertion order, so two implementations that
// assemble the same logical header set in different orders agree.
func HashMap(pairs []KeyValue) Hash {
	pairDigests := make([][]byte, 0, len(pairs))
	for _, pair := range pairs {
		nameHash := sha256.Sum256([]byte(pair.Name))
		valueHash := HashValue(pair.Value)

		digest := make([]byte, 0, 64)
		digest = append(digest, nameHash[:]...)
		digest = append(digest, valueHash[:]...)
		pairDigests = append(pairDigests, digest)
	}

	sort.Slice(pairDigests, func(i, j int) bool {
		return bytes.Compare(pairDigests[i], pairDigests[j]) < 0
	})

	hasher := sha256.New()
	for _, digest := range pairDigests {
		hasher.Write(digest)
	}

	var result Hash
	copy(result[:], hasher.Sum(nil))
	return result
}

// HashBytes is SHA-256 over raw bytes. Response bodies and CBOR
// encodings hash with this.
func HashBytes(data []byte) Hash {
	return sha256.Sum256(data)
}

// FormatHash returns the hex-encoded string representation of a hash.
// This is the canonical format used in CLI output and logs.
func FormatHash(hash Hash) string {
	return hex.EncodeToString(hash[:])
}

// ParseHash parses a 64-character hex string into a Hash.
func ParseHash(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing hash: %w", err)
	}
	if len(decoded) != 32 {
		return hash, fmt.Errorf("hash is %d bytes, want 32", len(decoded))
	}
	copy(hash[:], decoded)
	return hash, nil
}

// appendULEB128 appends the unsigned LEB128 encoding of n.
func appendULEB128(dst []byte, n uint64) []byte {
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if n == 0 {
			return dst
		}
	}
}

// appendSLEB128 appends the signed LEB128 encoding of n.
func appendSLEB128(dst []byte, n int64) []byte {
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if (n == 0 && b&0x40 == 0) || (n == -1 && b&0x40 != 0) {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}
