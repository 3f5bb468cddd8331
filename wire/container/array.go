// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package container implements the Pointer sub-protocol for the
// collection types every generated struct field can be built out of:
// variable-length arrays, fixed-length arrays, strings, and maps.
package container

import (
	"github.com/gomojo/wire/bitpack"
	"github.com/gomojo/wire/wire"
)

// Array is a variable-length array of T: on the wire, {u32 size, u32
// num_elements, packed elements}, referenced from its parent by relative
// pointer. PT must be *T implementing wire.Decodable — the standard
// two-parameter pattern this module uses everywhere a generic type needs
// to decode its own element type in place.
type Array[T wire.Encodable, PT interface {
	*T
	wire.Decodable
}] struct {
	Elements []T
}

// NewArray builds an Array from a literal element list.
func NewArray[T wire.Encodable, PT interface {
	*T
	wire.Decodable
}](elems ...T) Array[T, PT] {
	return Array[T, PT]{Elements: elems}
}

func (a Array[T, PT]) Category() wire.Category            { return wire.CategoryPointer }
func (a Array[T, PT]) Alignment() int                      { return 8 }
func (a Array[T, PT]) EmbedSize(wire.Context) bitpack.Bits { return 64 }

func (a Array[T, PT]) elemEmbedBits() bitpack.Bits {
	var zero T
	return zero.EmbedSize(wire.Context{})
}

// HeaderData reports this array's element count.
func (a Array[T, PT]) HeaderData() wire.HeaderValue {
	return wire.ElementsHeader(uint32(len(a.Elements)))
}

// SerializedSize is the array's own region size: header plus packed
// elements, rounded up to a whole byte.
func (a Array[T, PT]) SerializedSize(wire.Context) int {
	bits := a.elemEmbedBits().Mul(len(a.Elements))
	return bitpack.DataHeaderSize + bits.Bytes()
}

// ComputeSize is the array's own region (align_default'd) plus the
// recursive external size of every element.
func (a Array[T, PT]) ComputeSize(ctx wire.Context) int {
	total := bitpack.AlignBytes(a.SerializedSize(ctx), 8)
	for i := range a.Elements {
		total += a.Elements[i].ComputeSize(wire.Context{})
	}
	return total
}

// Encode allocates the array's region and writes the pointer field.
func (a Array[T, PT]) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeAsPointer(a, enc, state, ctx)
}

// EncodeValue writes every element, in order, via the inline state.
func (a Array[T, PT]) EncodeValue(enc *wire.Encoder, state *wire.EncodingState, _ wire.Context) {
	for i := range a.Elements {
		a.Elements[i].Encode(enc, state, wire.Context{})
	}
}

// Decode reads the array's pointer field and decodes its region; a null
// pointer here is UnexpectedNullPointer — wrap the field in wire.Nullable
// for an optional array.
func (a *Array[T, PT]) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	v, err := wire.DecodeNonNullPointer[Array[T, PT], *Array[T, PT]](dec, state)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// DecodeValue reads the array header and every element out of its own
// claimed region.
func (a *Array[T, PT]) DecodeValue(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	var zero T
	n, err := state.DecodeArrayHeader(zero.EmbedSize(wire.Context{}))
	if err != nil {
		return err
	}
	elems := make([]T, n)
	for i := range elems {
		pe := PT(&elems[i])
		if err := pe.Decode(dec, state, wire.Context{}); err != nil {
			return err
		}
	}
	a.Elements = elems
	return nil
}
