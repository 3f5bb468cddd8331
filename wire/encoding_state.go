// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"math"

	"github.com/gomojo/wire/bitpack"
)

// EncodingState is a cursor into one region of the message buffer. It
// writes that region's inline payload: typed scalars, bit-packed bools,
// pointers (computed relative to the pointer field's own location), and the
// null sentinels for each nullable category.
type EncodingState struct {
	buf  *Buffer
	base int // absolute offset of this region's start
	pos  int // next byte to write, relative to base
	bit  int // next bit to write within buf[base+pos]; 0 means byte-aligned
}

func newEncodingState(buf *Buffer, base int) *EncodingState {
	return &EncodingState{buf: buf, base: base}
}

// AlignToByte ends any in-progress bit-packed bool run, advancing the
// cursor to the next byte boundary.
func (s *EncodingState) AlignToByte() {
	if s.bit != 0 {
		s.bit = 0
		s.pos++
	}
}

// AlignToBytes pads the cursor, from the region base, to the next multiple
// of n bytes.
func (s *EncodingState) AlignToBytes(n int) {
	s.AlignToByte()
	s.pos = bitpack.AlignBytes(s.pos, n)
}

// reserve ends any bit run, aligns the cursor to align bytes, and advances
// it past size bytes, returning the offset (relative to base) the
// reservation starts at.
func (s *EncodingState) reserve(align, size int) int {
	s.AlignToBytes(align)
	off := s.pos
	s.pos += size
	return off
}

// EncodeBool writes one bit into the current byte at the current bit
// position. Consecutive bools pack into the same byte; any other write
// re-aligns to a byte boundary first.
func (s *EncodingState) EncodeBool(v bool) {
	if v {
		s.buf.b[s.base+s.pos] |= 1 << uint(s.bit)
	}
	s.bit++
	if s.bit == 8 {
		s.bit = 0
		s.pos++
	}
}

// EncodeUint8 writes an 8-bit unsigned scalar.
func (s *EncodingState) EncodeUint8(v uint8) {
	off := s.reserve(1, 1)
	s.buf.b[s.base+off] = v
}

// EncodeInt8 writes an 8-bit signed scalar.
func (s *EncodingState) EncodeInt8(v int8) { s.EncodeUint8(uint8(v)) }

// EncodeUint16 writes a 16-bit unsigned scalar, little-endian.
func (s *EncodingState) EncodeUint16(v uint16) {
	off := s.reserve(2, 2)
	binary.LittleEndian.PutUint16(s.buf.b[s.base+off:], v)
}

// EncodeInt16 writes a 16-bit signed scalar, little-endian.
func (s *EncodingState) EncodeInt16(v int16) { s.EncodeUint16(uint16(v)) }

// EncodeUint32 writes a 32-bit unsigned scalar, little-endian.
func (s *EncodingState) EncodeUint32(v uint32) {
	off := s.reserve(4, 4)
	binary.LittleEndian.PutUint32(s.buf.b[s.base+off:], v)
}

// EncodeInt32 writes a 32-bit signed scalar, little-endian.
func (s *EncodingState) EncodeInt32(v int32) { s.EncodeUint32(uint32(v)) }

// EncodeUint64 writes a 64-bit unsigned scalar, little-endian.
func (s *EncodingState) EncodeUint64(v uint64) {
	off := s.reserve(8, 8)
	binary.LittleEndian.PutUint64(s.buf.b[s.base+off:], v)
}

// EncodeInt64 writes a 64-bit signed scalar, little-endian.
func (s *EncodingState) EncodeInt64(v int64) { s.EncodeUint64(uint64(v)) }

// EncodeFloat32 writes a 32-bit IEEE-754 scalar, little-endian.
func (s *EncodingState) EncodeFloat32(v float32) { s.EncodeUint32(math.Float32bits(v)) }

// EncodeFloat64 writes a 64-bit IEEE-754 scalar, little-endian.
func (s *EncodingState) EncodeFloat64(v float64) { s.EncodeUint64(math.Float64bits(v)) }

// EncodePointer writes a relative pointer to absoluteTargetOffset. A target
// of 0 writes the null sentinel.
func (s *EncodingState) EncodePointer(absoluteTargetOffset int) {
	off := s.reserve(8, 8)
	if absoluteTargetOffset == 0 {
		binary.LittleEndian.PutUint64(s.buf.b[s.base+off:], bitpack.NullPointer)
		return
	}
	selfAbs := s.base + off
	delta := uint64(absoluteTargetOffset - selfAbs)
	binary.LittleEndian.PutUint64(s.buf.b[s.base+off:], delta)
}

// EncodeNullPointer writes a null pointer field.
func (s *EncodingState) EncodeNullPointer() { s.EncodePointer(0) }

// EncodeNullUnion writes a fully-zero inline union cell: size 0, tag 0,
// zero payload, which decodes as an absent union.
func (s *EncodingState) EncodeNullUnion() {
	s.reserve(8, bitpack.UnionDataSize)
}

// EncodeNullHandle writes the null handle sentinel.
func (s *EncodingState) EncodeNullHandle() {
	off := s.reserve(4, 4)
	binary.LittleEndian.PutUint32(s.buf.b[s.base+off:], bitpack.NullHandleIndex)
}

// EncodeNullInterface writes a null handle followed by a zero version,
// together denoting an absent interface reference.
func (s *EncodingState) EncodeNullInterface() {
	s.EncodeNullHandle()
	s.EncodeUint32(0)
}

// EncodeHandleIndex writes a handle field's index into the message's
// handle vector.
func (s *EncodingState) EncodeHandleIndex(index uint32) {
	off := s.reserve(4, 4)
	binary.LittleEndian.PutUint32(s.buf.b[s.base+off:], index)
}
