// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gomojo/wire/bitpack"
	werr "github.com/gomojo/wire/internal/errors"
)

// StructVersion is one entry of a generated struct's version table: the
// (version, size) pair a received struct header must match exactly. Size is
// the struct's payload size, excluding the 8-byte data header.
type StructVersion struct {
	Version uint32
	Size    uint32
}

// DecoderState is the read-side mirror of EncodingState: a cursor into one
// claimed region, bounds-checked against that region's declared size.
type DecoderState struct {
	dec  *Decoder
	base int
	size int
	pos  int
	bit  int
}

// Base returns the region's absolute offset in the buffer.
func (s *DecoderState) Base() int { return s.base }

// AlignToByte ends any in-progress bit-packed bool run.
func (s *DecoderState) AlignToByte() {
	if s.bit != 0 {
		s.bit = 0
		s.pos++
	}
}

// AlignToBytes pads the cursor, from the region base, to the next multiple
// of n bytes.
func (s *DecoderState) AlignToBytes(n int) {
	s.AlignToByte()
	s.pos = bitpack.AlignBytes(s.pos, n)
}

// reserve mirrors EncodingState.reserve. A decode that overruns its
// region's declared size is a defect in the Encodable implementation doing
// the reading, not a malformed-input condition — array and struct headers
// are validated before any element is read, so a correct implementation
// never trips this.
func (s *DecoderState) reserve(align, size int) int {
	s.AlignToBytes(align)
	off := s.pos
	if off+size > s.size {
		panic(fmt.Sprintf("wire: decode cursor overrun in region [%d,%d): tried to read %d bytes at +%d", s.base, s.base+s.size, size, off))
	}
	s.pos += size
	return off
}

func (s *DecoderState) peekReserve(align, size int) (off int, rollback func()) {
	savedPos, savedBit := s.pos, s.bit
	off = s.reserve(align, size)
	return off, func() { s.pos, s.bit = savedPos, savedBit }
}

// DecodeBool reads one bit from the current byte at the current bit
// position.
func (s *DecoderState) DecodeBool() bool {
	v := s.dec.buf[s.base+s.pos]&(1<<uint(s.bit)) != 0
	s.bit++
	if s.bit == 8 {
		s.bit = 0
		s.pos++
	}
	return v
}

// DecodeUint8 reads an 8-bit unsigned scalar.
func (s *DecoderState) DecodeUint8() uint8 {
	off := s.reserve(1, 1)
	return s.dec.buf[s.base+off]
}

// DecodeInt8 reads an 8-bit signed scalar.
func (s *DecoderState) DecodeInt8() int8 { return int8(s.DecodeUint8()) }

// DecodeUint16 reads a 16-bit unsigned scalar, little-endian.
func (s *DecoderState) DecodeUint16() uint16 {
	off := s.reserve(2, 2)
	return binary.LittleEndian.Uint16(s.dec.buf[s.base+off:])
}

// DecodeInt16 reads a 16-bit signed scalar, little-endian.
func (s *DecoderState) DecodeInt16() int16 { return int16(s.DecodeUint16()) }

// DecodeUint32 reads a 32-bit unsigned scalar, little-endian.
func (s *DecoderState) DecodeUint32() uint32 {
	off := s.reserve(4, 4)
	return binary.LittleEndian.Uint32(s.dec.buf[s.base+off:])
}

// DecodeInt32 reads a 32-bit signed scalar, little-endian.
func (s *DecoderState) DecodeInt32() int32 { return int32(s.DecodeUint32()) }

// DecodeUint64 reads a 64-bit unsigned scalar, little-endian.
func (s *DecoderState) DecodeUint64() uint64 {
	off := s.reserve(8, 8)
	return binary.LittleEndian.Uint64(s.dec.buf[s.base+off:])
}

// DecodeInt64 reads a 64-bit signed scalar, little-endian.
func (s *DecoderState) DecodeInt64() int64 { return int64(s.DecodeUint64()) }

// DecodeFloat32 reads a 32-bit IEEE-754 scalar, little-endian.
func (s *DecoderState) DecodeFloat32() float32 {
	return math.Float32frombits(s.DecodeUint32())
}

// DecodeFloat64 reads a 64-bit IEEE-754 scalar, little-endian.
func (s *DecoderState) DecodeFloat64() float64 {
	return math.Float64frombits(s.DecodeUint64())
}

// DecodePointer reads a relative pointer field. ok is false if the pointer
// was null; target is meaningless in that case.
func (s *DecoderState) DecodePointer() (target int, ok bool, err error) {
	off := s.reserve(8, 8)
	raw := binary.LittleEndian.Uint64(s.dec.buf[s.base+off:])
	if raw == bitpack.NullPointer {
		return 0, false, nil
	}
	selfAbs := s.base + off
	abs := selfAbs + int(raw)
	if abs < 0 || abs >= len(s.dec.buf) {
		return 0, false, werr.New(werr.IllegalPointer, "pointer target %d out of buffer (len %d)", abs, len(s.dec.buf))
	}
	return abs, true, nil
}

// DecodeHandleIndex reads a handle field's raw index.
func (s *DecoderState) DecodeHandleIndex() uint32 {
	off := s.reserve(4, 4)
	return binary.LittleEndian.Uint32(s.dec.buf[s.base+off:])
}

// SkipIfNullPointer peeks a pointer field; if it is null, it consumes the
// field and reports true. Otherwise the cursor is left untouched so the
// real decode can read the same bytes.
func (s *DecoderState) SkipIfNullPointer() (bool, error) {
	off, rollback := s.peekReserve(8, 8)
	raw := binary.LittleEndian.Uint64(s.dec.buf[s.base+off:])
	if raw == bitpack.NullPointer {
		return true, nil
	}
	rollback()
	return false, nil
}

// SkipIfNullUnion peeks an inline union cell. A null union is encoded as 16
// zero bytes, which a real union can never produce (its size word is
// always UnionDataSize). If the size word reads 0, the cell is consumed and
// true is reported; otherwise the cursor is rolled back.
func (s *DecoderState) SkipIfNullUnion() (bool, error) {
	off, rollback := s.peekReserve(8, bitpack.UnionDataSize)
	size := binary.LittleEndian.Uint32(s.dec.buf[s.base+off:])
	if size == 0 {
		return true, nil
	}
	rollback()
	return false, nil
}

// SkipIfNullHandle peeks a handle field; if it is the null sentinel, it
// consumes the field and reports true.
func (s *DecoderState) SkipIfNullHandle() bool {
	off, rollback := s.peekReserve(4, 4)
	idx := binary.LittleEndian.Uint32(s.dec.buf[s.base+off:])
	if idx == bitpack.NullHandleIndex {
		return true
	}
	rollback()
	return false
}

// SkipIfNullInterface peeks an interface field (handle + version); the
// handle half being null implies the whole interface reference is null.
func (s *DecoderState) SkipIfNullInterface() bool {
	off, rollback := s.peekReserve(4, 8)
	idx := binary.LittleEndian.Uint32(s.dec.buf[s.base+off:])
	if idx == bitpack.NullHandleIndex {
		return true
	}
	rollback()
	return false
}

// DecodeStructHeader reads and validates the region's (size, version)
// header against versions, advancing past it. versions must be non-empty.
func (s *DecoderState) DecodeStructHeader(versions []StructVersion) (uint32, error) {
	size := binary.LittleEndian.Uint32(s.dec.buf[s.base:])
	version := binary.LittleEndian.Uint32(s.dec.buf[s.base+4:])
	ok := false
	for _, v := range versions {
		if v.Version == version && v.Size+bitpack.DataHeaderSize == size {
			ok = true
			break
		}
	}
	if !ok {
		return 0, werr.New(werr.UnexpectedStructHeader, "no version table entry for size=%d version=%d", size, version)
	}
	s.pos, s.bit = bitpack.DataHeaderSize, 0
	return version, nil
}

// DecodeArrayHeader reads and validates the region's (size, num_elements)
// header, checking that size is consistent with num_elements elements of
// elemEmbedBits each, and advances past it.
func (s *DecoderState) DecodeArrayHeader(elemEmbedBits bitpack.Bits) (uint32, error) {
	size := binary.LittleEndian.Uint32(s.dec.buf[s.base:])
	n := binary.LittleEndian.Uint32(s.dec.buf[s.base+4:])
	want := bitpack.DataHeaderSize
	if n > 0 {
		want += elemEmbedBits.Mul(int(n)).Bytes()
	}
	if int(size) != want {
		return 0, werr.New(werr.UnexpectedArrayHeader, "array size %d inconsistent with %d elements of %d bits", size, n, int(elemEmbedBits))
	}
	s.pos, s.bit = bitpack.DataHeaderSize, 0
	return n, nil
}

// DecodeFixedArrayHeader is DecodeArrayHeader with the additional
// constraint that num_elements must equal arity exactly.
func (s *DecoderState) DecodeFixedArrayHeader(elemEmbedBits bitpack.Bits, arity int) error {
	n, err := s.DecodeArrayHeader(elemEmbedBits)
	if err != nil {
		return err
	}
	if int(n) != arity {
		return werr.New(werr.UnexpectedArrayHeader, "fixed array expected %d elements, got %d", arity, n)
	}
	return nil
}

// DecodeMapHeader reads and validates a map's own struct header (always
// version 0, size MapDataSize), advancing past it.
func (s *DecoderState) DecodeMapHeader() error {
	_, err := s.DecodeStructHeader([]StructVersion{{Version: 0, Size: bitpack.MapDataSize - bitpack.DataHeaderSize}})
	return err
}
