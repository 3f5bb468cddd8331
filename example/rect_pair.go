// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package example

import (
	"github.com/gomojo/wire/bitpack"
	"github.com/gomojo/wire/wire"
)

// RectPair demonstrates a nullable Pointer-category field: both members are
// optional, so the wire form is two pointer fields, either of which may be
// null.
type RectPair struct {
	First, Second wire.Nullable[Rect]
}

const rectPairVersion = 0
const rectPairSize = 16 // two pointer fields

func (RectPair) Category() wire.Category             { return wire.CategoryPointer }
func (RectPair) Alignment() int                      { return 8 }
func (RectPair) EmbedSize(wire.Context) bitpack.Bits { return 64 }

func (RectPair) HeaderData() wire.HeaderValue { return wire.VersionHeader(rectPairVersion) }

func (RectPair) SerializedSize(wire.Context) int { return bitpack.DataHeaderSize + rectPairSize }

func (p RectPair) ComputeSize(ctx wire.Context) int {
	own := bitpack.AlignBytes(p.SerializedSize(ctx), 8)
	return own + p.First.ComputeSize(ctx) + p.Second.ComputeSize(ctx)
}

func (p RectPair) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeAsPointer(p, enc, state, ctx)
}

func (p RectPair) EncodeValue(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	p.First.Encode(enc, state, ctx)
	p.Second.Encode(enc, state, ctx)
}

func (p *RectPair) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	v, err := wire.DecodeNonNullPointer[RectPair, *RectPair](dec, state)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p *RectPair) DecodeValue(dec *wire.Decoder, state *wire.DecoderState, ctx wire.Context) error {
	if _, err := state.DecodeStructHeader([]wire.StructVersion{{Version: rectPairVersion, Size: rectPairSize}}); err != nil {
		return err
	}
	first, err := wire.DecodeNullable[Rect, *Rect](dec, state, ctx)
	if err != nil {
		return err
	}
	second, err := wire.DecodeNullable[Rect, *Rect](dec, state, ctx)
	if err != nil {
		return err
	}
	p.First, p.Second = first, second
	return nil
}
