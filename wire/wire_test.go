// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"testing"

	werr "github.com/gomojo/wire/internal/errors"
)

func TestEncodingStateScalarsAreLittleEndianAndAligned(t *testing.T) {
	buf := NewBuffer(16)
	s := newEncodingState(buf, 0)

	s.EncodeUint8(0xAB)
	s.EncodeUint16(0x1234) // must pad to offset 2, not write at offset 1
	s.EncodeUint32(0xDEADBEEF)

	if got := buf.b[0]; got != 0xAB {
		t.Fatalf("uint8 at offset 0: got %#x", got)
	}
	if got := binary.LittleEndian.Uint16(buf.b[2:4]); got != 0x1234 {
		t.Fatalf("uint16 at offset 2: got %#x, want 0x1234 (field must be 2-byte aligned)", got)
	}
	if got := binary.LittleEndian.Uint32(buf.b[4:8]); got != 0xDEADBEEF {
		t.Fatalf("uint32 at offset 4: got %#x", got)
	}
}

func TestEncodingStateBoolsPackIntoOneByte(t *testing.T) {
	buf := NewBuffer(8)
	s := newEncodingState(buf, 0)
	s.EncodeBool(true)
	s.EncodeBool(false)
	s.EncodeBool(true)
	s.AlignToByte()
	s.EncodeUint8(1)

	if buf.b[0] != 0b101 {
		t.Fatalf("packed bools: got %08b, want %08b", buf.b[0], 0b101)
	}
	if buf.b[1] != 1 {
		t.Fatalf("byte after bool run: got %d, want 1 (bools must not bleed into the next field)", buf.b[1])
	}
}

func TestEncodingStatePointerIsRelativeToItsOwnField(t *testing.T) {
	buf := NewBuffer(24)
	s := newEncodingState(buf, 0)
	s.EncodeUint64(0) // 8 bytes of filler before the pointer field
	s.EncodePointer(16)

	got := binary.LittleEndian.Uint64(buf.b[8:16])
	if got != 8 {
		t.Fatalf("relative pointer: got delta %d, want 8 (16 - field offset 8)", got)
	}
}

func TestEncodingStateNullPointerIsZero(t *testing.T) {
	buf := NewBuffer(8)
	s := newEncodingState(buf, 0)
	s.EncodeNullPointer()
	if got := binary.LittleEndian.Uint64(buf.b[0:8]); got != 0 {
		t.Fatalf("null pointer: got %d, want 0", got)
	}
}

func TestEncoderAddRejectsOversizedRegion(t *testing.T) {
	enc := &Encoder{buf: NewBuffer(0), handles: &HandleVector{}}
	_, _, _, err := enc.Add(1<<32, VersionHeader(0))
	if err == nil {
		t.Fatal("expected an error for a region >= 2^32 bytes")
	}
	ve, ok := err.(*werr.ValidationError)
	if !ok {
		t.Fatalf("expected *errors.ValidationError, got %T", err)
	}
	if ve.Kind != werr.IllegalPointer {
		t.Fatalf("got Kind %v, want IllegalPointer", ve.Kind)
	}
}

func TestRoundTripSimpleScalar(t *testing.T) {
	enc := NewEncoder(16)
	_, state, _, err := enc.Add(16, VersionHeader(0))
	if err != nil {
		t.Fatal(err)
	}
	v := Int32(-7)
	v.Encode(enc, state, Context{})
	buf, _ := enc.Finalize()

	dec := NewDecoder(buf, nil)
	dstate, err := dec.Claim(0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dstate.DecodeStructHeader([]StructVersion{{Version: 0, Size: 8}}); err != nil {
		t.Fatal(err)
	}
	var got Int32
	if err := got.Decode(dec, dstate, Context{}); err != nil {
		t.Fatal(err)
	}
	if got != -7 {
		t.Fatalf("got %d, want -7", got)
	}
}

func TestSomeAndNoneSetPresent(t *testing.T) {
	some := Some(Int32(42))
	if !some.Present {
		t.Fatal("Some() must mark Present")
	}
	none := None[Int32]()
	if none.Present {
		t.Fatal("None() must not mark Present")
	}
}
