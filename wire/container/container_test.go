// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

import (
	"testing"

	werr "github.com/gomojo/wire/internal/errors"
	"github.com/gomojo/wire/wire"
)

func TestArrayOfUint32RoundTrip(t *testing.T) {
	a := NewArray[wire.Uint32, *wire.Uint32](1, 2, 3)
	buf, handles := wire.AutoSerialize(a)

	got, err := wire.Deserialize[Array[wire.Uint32, *wire.Uint32], *Array[wire.Uint32, *wire.Uint32]](buf, handles)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Elements) != 3 || got.Elements[0] != 1 || got.Elements[1] != 2 || got.Elements[2] != 3 {
		t.Fatalf("got %v, want [1 2 3]", got.Elements)
	}
}

func TestArrayEmpty(t *testing.T) {
	a := NewArray[wire.Uint8, *wire.Uint8]()
	buf, handles := wire.AutoSerialize(a)

	got, err := wire.Deserialize[Array[wire.Uint8, *wire.Uint8], *Array[wire.Uint8, *wire.Uint8]](buf, handles)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Elements) != 0 {
		t.Fatalf("got %v, want empty", got.Elements)
	}
}

func TestStrRoundTrip(t *testing.T) {
	s := Str("hello")
	buf, handles := wire.AutoSerialize(s)

	got, err := wire.Deserialize[Str, *Str](buf, handles)
	if err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Fatalf("got %q, want %q", got, s)
	}
}

func TestStrRejectsInvalidUTF8(t *testing.T) {
	// Encode a raw array-of-u8 region with an invalid byte sequence in
	// place of a legitimate Str, since Str itself can't hold invalid UTF-8
	// in a Go string literal.
	bad := []byte{0xff, 0xfe}
	arr := NewArray[wire.Uint8, *wire.Uint8](wire.Uint8(bad[0]), wire.Uint8(bad[1]))
	buf, handles := wire.AutoSerialize(arr)

	_, err := wire.Deserialize[Str, *Str](buf, handles)
	if err == nil {
		t.Fatal("expected an error decoding invalid UTF-8 as a Str")
	}
	ve, ok := err.(*werr.ValidationError)
	if !ok {
		t.Fatalf("expected *errors.ValidationError, got %T", err)
	}
	if ve.Kind != werr.InvalidUTF8 {
		t.Fatalf("got Kind %v, want InvalidUTF8", ve.Kind)
	}
}

func TestFixedArrayRejectsWrongArity(t *testing.T) {
	// DecodeFixedArray reads a pointer field, so the 2-element array is
	// placed behind a parent struct holding one pointer (8-byte payload).
	a := NewArray[wire.Uint32, *wire.Uint32](1, 2)
	enc := wire.NewEncoder(16 + a.ComputeSize(wire.Context{}))
	_, encState, _, err := enc.Add(16, wire.VersionHeader(0))
	if err != nil {
		t.Fatal(err)
	}
	a.Encode(enc, encState, wire.Context{})
	buf, handles := enc.Finalize()

	dec := wire.NewDecoder(buf, handles)
	state, err := dec.Claim(0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := state.DecodeStructHeader([]wire.StructVersion{{Version: 0, Size: 8}}); err != nil {
		t.Fatal(err)
	}
	_, err = DecodeFixedArray[wire.Uint32, *wire.Uint32](dec, state, 3)
	if err == nil {
		t.Fatal("expected an error decoding a 2-element array as a fixed array of arity 3")
	}
	ve, ok := err.(*werr.ValidationError)
	if !ok || ve.Kind != werr.UnexpectedArrayHeader {
		t.Fatalf("got %v, want UnexpectedArrayHeader", err)
	}
}

func TestMapRoundTrip(t *testing.T) {
	m := NewMap[Str, *Str, wire.Uint8, *wire.Uint8](map[Str]wire.Uint8{"a": 1, "b": 2})
	buf, handles := wire.AutoSerialize(m)

	got, err := wire.Deserialize[Map[Str, *Str, wire.Uint8, *wire.Uint8], *Map[Str, *Str, wire.Uint8, *wire.Uint8]](buf, handles)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Entries) != 2 || got.Entries["a"] != 1 || got.Entries["b"] != 2 {
		t.Fatalf("got %v, want map[a:1 b:2]", got.Entries)
	}
}

func TestMapEmpty(t *testing.T) {
	m := NewMap[Str, *Str, wire.Uint8, *wire.Uint8](map[Str]wire.Uint8{})
	buf, handles := wire.AutoSerialize(m)

	got, err := wire.Deserialize[Map[Str, *Str, wire.Uint8, *wire.Uint8], *Map[Str, *Str, wire.Uint8, *wire.Uint8]](buf, handles)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Entries) != 0 {
		t.Fatalf("got %v, want empty", got.Entries)
	}
}
