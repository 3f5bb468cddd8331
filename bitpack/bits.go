// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bitpack provides the bit- and byte-level primitives shared by the
// wire encoder and decoder: a bit-count scalar, alignment helpers, and the
// wire sentinels for null pointers and null handles.
package bitpack

// Bits counts a number of bits. Mojo bit-packs booleans, so embed sizes are
// tracked in bits rather than bytes until a value needs to land in a byte
// buffer.
type Bits int

// Bytes returns the number of bytes needed to hold b bits, rounding up.
func (b Bits) Bytes() int {
	return (int(b) + 7) / 8
}

// Mul returns b multiplied by n, as when computing the embed size of n
// repeated elements.
func (b Bits) Mul(n int) Bits {
	return Bits(int(b) * n)
}

// Add returns the sum of b and o.
func (b Bits) Add(o Bits) Bits {
	return b + o
}

const (
	// NullPointer is the wire value of a relative pointer that points at
	// nothing.
	NullPointer uint64 = 0

	// NullHandleIndex is the wire value of a HandleRef that refers to no
	// handle.
	NullHandleIndex uint32 = 0xFFFFFFFF

	// DataHeaderSize is the fixed size, in bytes, of the 8-byte header that
	// prefixes every pointer-typed region (struct, array, union-as-pointer,
	// map).
	DataHeaderSize = 8

	// UnionDataSize is the size, in bytes, of an inline union cell:
	// 4-byte size + 4-byte tag + 8-byte inner payload.
	UnionDataSize = 16

	// MapDataSize is the size, in bytes, of a map's own struct header
	// (excluding the keys/values arrays it points to).
	MapDataSize = 24
)

// AlignDefault rounds n up to the next multiple of 8, the alignment every
// pointer-typed sub-region is required to start on.
func AlignDefault(n int) int {
	return (n + 7) &^ 7
}

// AlignBytes rounds n up to the next multiple of align, which must be a
// power of two.
func AlignBytes(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
