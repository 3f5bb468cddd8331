// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

import (
	"github.com/gomojo/wire/bitpack"
	werr "github.com/gomojo/wire/internal/errors"
	"github.com/gomojo/wire/wire"
)

// FixedArray is an Array of exactly Arity elements: the same wire form as
// Array, but decode rejects any other element count with
// UnexpectedArrayHeader.
//
// Unlike Array, FixedArray does not implement wire.Decodable itself: its
// arity has to be known before decoding starts, and the generic
// Decodable/PointerDecodable methods only ever have a zero value to work
// from. Generated code that needs to decode a fixed-length array field
// calls DecodeFixedArray directly with the arity the IDL declared.
type FixedArray[T wire.Encodable, PT interface {
	*T
	wire.Decodable
}] struct {
	Elements []T
	Arity    int
}

// NewFixedArray builds a FixedArray, panicking if elems doesn't already
// have exactly arity elements — a caller-side programmer error, not a
// wire-validation failure.
func NewFixedArray[T wire.Encodable, PT interface {
	*T
	wire.Decodable
}](arity int, elems ...T) FixedArray[T, PT] {
	if len(elems) != arity {
		panic("wire: FixedArray arity mismatch at construction")
	}
	return FixedArray[T, PT]{Elements: elems, Arity: arity}
}

func (a FixedArray[T, PT]) Category() wire.Category            { return wire.CategoryPointer }
func (a FixedArray[T, PT]) Alignment() int                      { return 8 }
func (a FixedArray[T, PT]) EmbedSize(wire.Context) bitpack.Bits { return 64 }

func (a FixedArray[T, PT]) elemEmbedBits() bitpack.Bits {
	var zero T
	return zero.EmbedSize(wire.Context{})
}

func (a FixedArray[T, PT]) HeaderData() wire.HeaderValue {
	return wire.ElementsHeader(uint32(len(a.Elements)))
}

func (a FixedArray[T, PT]) SerializedSize(wire.Context) int {
	bits := a.elemEmbedBits().Mul(len(a.Elements))
	return bitpack.DataHeaderSize + bits.Bytes()
}

func (a FixedArray[T, PT]) ComputeSize(ctx wire.Context) int {
	total := bitpack.AlignBytes(a.SerializedSize(ctx), 8)
	for i := range a.Elements {
		total += a.Elements[i].ComputeSize(wire.Context{})
	}
	return total
}

func (a FixedArray[T, PT]) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeAsPointer(a, enc, state, ctx)
}

func (a FixedArray[T, PT]) EncodeValue(enc *wire.Encoder, state *wire.EncodingState, _ wire.Context) {
	for i := range a.Elements {
		a.Elements[i].Encode(enc, state, wire.Context{})
	}
}

// DecodeFixedArray reads a non-nullable fixed-array pointer field and
// decodes its region, rejecting any element count other than arity.
//
// Elements are materialized into a growable slice one at a time with
// early-return on failure, per the documented leaking policy for
// partially-decoded fixed arrays: a slot already claimed by a handle stays
// claimed (tracked by the handle vector, not by this slice) even if a later
// slot fails, so no destructor ever runs twice over a half-built value.
func DecodeFixedArray[T wire.Encodable, PT interface {
	*T
	wire.Decodable
}](dec *wire.Decoder, state *wire.DecoderState, arity int) (FixedArray[T, PT], error) {
	target, ok, err := state.DecodePointer()
	if err != nil {
		return FixedArray[T, PT]{}, err
	}
	if !ok {
		return FixedArray[T, PT]{}, werr.New(werr.UnexpectedNullPointer, "fixed array field is not nullable")
	}
	regionState, err := dec.Claim(target)
	if err != nil {
		return FixedArray[T, PT]{}, err
	}
	var zero T
	if err := regionState.DecodeFixedArrayHeader(zero.EmbedSize(wire.Context{}), arity); err != nil {
		return FixedArray[T, PT]{}, err
	}
	elems := make([]T, 0, arity)
	for i := 0; i < arity; i++ {
		var e T
		if err := PT(&e).Decode(dec, regionState, wire.Context{}); err != nil {
			return FixedArray[T, PT]{}, err
		}
		elems = append(elems, e)
	}
	return FixedArray[T, PT]{Elements: elems, Arity: arity}, nil
}
