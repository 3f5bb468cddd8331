// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package example holds hand-written types in the shape a Mojom code
// generator would emit: plain structs and messages built directly out of
// the wire, container, envelope, and handle packages, exercising the full
// contract end to end.
package example

import (
	"github.com/gomojo/wire/bitpack"
	"github.com/gomojo/wire/wire"
)

// Rect is the simplest possible generated struct: four plain int32 fields,
// no pointers, no nesting.
type Rect struct {
	X, Y, Width, Height int32
}

const rectVersion = 0
const rectSize = 16 // four int32 fields

func (Rect) Category() wire.Category             { return wire.CategoryPointer }
func (Rect) Alignment() int                      { return 8 }
func (Rect) EmbedSize(wire.Context) bitpack.Bits { return 64 }

func (Rect) HeaderData() wire.HeaderValue { return wire.VersionHeader(rectVersion) }

func (Rect) SerializedSize(wire.Context) int { return bitpack.DataHeaderSize + rectSize }

func (r Rect) ComputeSize(ctx wire.Context) int {
	return bitpack.AlignBytes(r.SerializedSize(ctx), 8)
}

func (r Rect) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeAsPointer(r, enc, state, ctx)
}

func (r Rect) EncodeValue(_ *wire.Encoder, state *wire.EncodingState, _ wire.Context) {
	state.EncodeInt32(r.X)
	state.EncodeInt32(r.Y)
	state.EncodeInt32(r.Width)
	state.EncodeInt32(r.Height)
}

func (r *Rect) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	v, err := wire.DecodeNonNullPointer[Rect, *Rect](dec, state)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func (r *Rect) DecodeValue(_ *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	if _, err := state.DecodeStructHeader([]wire.StructVersion{{Version: rectVersion, Size: rectSize}}); err != nil {
		return err
	}
	r.X = state.DecodeInt32()
	r.Y = state.DecodeInt32()
	r.Width = state.DecodeInt32()
	r.Height = state.DecodeInt32()
	return nil
}
