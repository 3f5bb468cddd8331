// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handle

import (
	"testing"

	"github.com/gomojo/wire/bitpack"
	werr "github.com/gomojo/wire/internal/errors"
	"github.com/gomojo/wire/wire"
)

// sharedBufferField is the kind of tiny generated struct a SharedBuffer
// field would live in: one handle, embedded directly (Category-handle
// fields never need a pointer indirection).
type sharedBufferField struct {
	Buffer SharedBuffer
}

const sharedBufferFieldVersion = 0
const sharedBufferFieldSize = 8 // one handle field, padded to 8 bytes

func (sharedBufferField) Category() wire.Category             { return wire.CategoryPointer }
func (sharedBufferField) Alignment() int                      { return 8 }
func (sharedBufferField) EmbedSize(wire.Context) bitpack.Bits { return 64 }

func (sharedBufferField) HeaderData() wire.HeaderValue {
	return wire.VersionHeader(sharedBufferFieldVersion)
}

func (sharedBufferField) SerializedSize(wire.Context) int {
	return bitpack.DataHeaderSize + sharedBufferFieldSize
}

func (f sharedBufferField) ComputeSize(ctx wire.Context) int {
	return bitpack.AlignBytes(f.SerializedSize(ctx), 8)
}

func (f sharedBufferField) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeAsPointer(f, enc, state, ctx)
}

func (f sharedBufferField) EncodeValue(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	f.Buffer.Encode(enc, state, ctx)
}

func (f *sharedBufferField) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	v, err := wire.DecodeNonNullPointer[sharedBufferField, *sharedBufferField](dec, state)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (f *sharedBufferField) DecodeValue(dec *wire.Decoder, state *wire.DecoderState, ctx wire.Context) error {
	if _, err := state.DecodeStructHeader([]wire.StructVersion{{Version: sharedBufferFieldVersion, Size: sharedBufferFieldSize}}); err != nil {
		return err
	}
	var buf SharedBuffer
	if err := buf.Decode(dec, state, ctx); err != nil {
		return err
	}
	f.Buffer = buf
	return nil
}

// TestSharedBufferRoundTrip exercises SharedBuffer's real OS path: its fd is
// backed by an unlinked temp file, mapped read-write. AddHandle transfers
// ownership of orig to the message, so only the handle decoded back out —
// got.Buffer, the same fd by a new name — is ever closed.
func TestSharedBufferRoundTrip(t *testing.T) {
	orig, err := NewSharedBuffer(4096)
	if err != nil {
		t.Fatal(err)
	}

	mem, err := orig.Map()
	if err != nil {
		t.Fatal(err)
	}
	mem[0] = 0x42

	buf, handles := wire.AutoSerialize(sharedBufferField{Buffer: orig})

	dec := wire.NewDecoder(buf, handles)
	got, err := wire.DecodePointerNew[sharedBufferField, *sharedBufferField](dec, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer got.Buffer.Close()

	if got.Buffer.Size() != orig.Size() {
		t.Fatalf("got size %d, want %d", got.Buffer.Size(), orig.Size())
	}
	gotMem, err := got.Buffer.Map()
	if err != nil {
		t.Fatal(err)
	}
	if gotMem[0] != 0x42 {
		t.Fatalf("decoded SharedBuffer doesn't see the byte written through the original mapping: got %#x", gotMem[0])
	}
}

// TestSharedBufferDuplicate exercises Duplicate's independent fd.
func TestSharedBufferDuplicate(t *testing.T) {
	orig, err := NewSharedBuffer(64)
	if err != nil {
		t.Fatal(err)
	}
	defer orig.Close()

	dup, err := orig.Duplicate()
	if err != nil {
		t.Fatal(err)
	}
	defer dup.Close()

	if dup.NativeID() == orig.NativeID() {
		t.Fatal("Duplicate must mint an independent native identity")
	}
	if dup.Kind() != wire.KindSharedBuffer {
		t.Fatalf("got Kind %v, want KindSharedBuffer", dup.Kind())
	}
}

// TestDataPipeRoundTrip encodes a consumer/producer pair as two handle
// fields and decodes them back, each claiming the right vector slot.
func TestDataPipeRoundTrip(t *testing.T) {
	consumer, producer := NewDataPipe[wire.Uint8]()

	enc := wire.NewEncoder(0)
	cIdx := enc.AddHandle(consumer)
	pIdx := enc.AddHandle(producer)
	_, handles := enc.Finalize()

	dec := wire.NewDecoder(nil, handles)
	gotConsumer, err := dec.ClaimHandle(cIdx, wire.KindDataPipeConsumer)
	if err != nil {
		t.Fatal(err)
	}
	gotProducer, err := dec.ClaimHandle(pIdx, wire.KindDataPipeProducer)
	if err != nil {
		t.Fatal(err)
	}
	if gotConsumer.NativeID() != consumer.NativeID() {
		t.Fatal("claimed consumer's native identity doesn't match the encoded one")
	}
	if gotProducer.NativeID() != producer.NativeID() {
		t.Fatal("claimed producer's native identity doesn't match the encoded one")
	}
}

// TestClaimHandleKindMismatchIsIllegalHandle asserts the central kind-check
// invariant every handle kind in this package relies on: claiming a slot at
// the wrong kind is rejected, never silently downcast.
func TestClaimHandleKindMismatchIsIllegalHandle(t *testing.T) {
	sb, err := NewSharedBuffer(16)
	if err != nil {
		t.Fatal(err)
	}
	consumer, _ := NewDataPipe[wire.Uint8]()

	enc := wire.NewEncoder(0)
	sbIdx := enc.AddHandle(sb)
	cIdx := enc.AddHandle(consumer)
	_, handles := enc.Finalize()

	dec := wire.NewDecoder(nil, handles)

	if _, err := dec.ClaimHandle(sbIdx, wire.KindDataPipeConsumer); err == nil {
		t.Fatal("expected an error claiming a SharedBuffer slot as a DataPipeConsumer")
	} else if ve, ok := err.(*werr.ValidationError); !ok || ve.Kind != werr.IllegalHandle {
		t.Fatalf("got %v, want IllegalHandle", err)
	}

	if _, err := dec.ClaimHandle(cIdx, wire.KindSharedBuffer); err == nil {
		t.Fatal("expected an error claiming a DataPipeConsumer slot as a SharedBuffer")
	} else if ve, ok := err.(*werr.ValidationError); !ok || ve.Kind != werr.IllegalHandle {
		t.Fatalf("got %v, want IllegalHandle", err)
	}

	// Both slots were rejected by kind, never claimed; releasing them here
	// closes sb's real fd exactly once.
	dec.CloseUnclaimedHandles()
}
