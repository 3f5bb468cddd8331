// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"

	"github.com/gomojo/wire/bitpack"
	werr "github.com/gomojo/wire/internal/errors"
)

// EncodeUnionInline writes u into its parent's current 16-byte cell: this
// is the form used when a union is itself a top-level struct field. The
// cell's own size word is always UnionDataSize, never the enclosing
// struct's region size — a union region never claims its own pointer.
func EncodeUnionInline(u UnionType, enc *Encoder, state *EncodingState, ctx Context) {
	start := state.reserve(8, bitpack.UnionDataSize)
	sizeOff, tagOff := start, start+4
	binary.LittleEndian.PutUint32(state.buf.b[state.base+sizeOff:], uint32(bitpack.UnionDataSize))
	binary.LittleEndian.PutUint32(state.buf.b[state.base+tagOff:], u.Tag())

	inner := &EncodingState{buf: state.buf, base: state.base + start + 8}
	u.EncodeValue(enc, inner, ctx.WithUnion(true))
}

// EncodeUnionNested allocates u its own sub-region and writes a pointer to
// it: the form required when a union appears inside another union, or any
// other context where Context.IsUnion is already true.
func EncodeUnionNested(u UnionType, enc *Encoder, state *EncodingState, ctx Context) {
	offset, regionState, newCtx := allocateUnionRegion(u, enc)
	u.EncodeValue(enc, regionState, newCtx)
	state.EncodePointer(offset)
}

func allocateUnionRegion(u UnionType, enc *Encoder) (int, *EncodingState, Context) {
	offset, state, ctx, err := enc.Add(bitpack.UnionDataSize, UnionTagHeader(u.Tag()))
	if err != nil {
		panic("wire: " + err.Error())
	}
	return offset, state, ctx.WithUnion(true)
}

// EncodeUnion picks EncodeUnionInline or EncodeUnionNested according to
// whether the field itself sits directly inside another union's payload.
func EncodeUnion(u UnionType, enc *Encoder, state *EncodingState, ctx Context) {
	if ctx.IsUnion() {
		EncodeUnionNested(u, enc, state, ctx)
		return
	}
	EncodeUnionInline(u, enc, state, ctx)
}

// DecodeUnionInline reads a union directly out of the parent's current
// 16-byte cell, returning the tag so the caller can switch on it before
// constructing the right variant and calling its DecodeValue.
func DecodeUnionInline(state *DecoderState) (tag uint32, inner *DecoderState, ctx Context, err error) {
	start := state.reserve(8, bitpack.UnionDataSize)
	size := binary.LittleEndian.Uint32(state.dec.buf[state.base+start:])
	tag = binary.LittleEndian.Uint32(state.dec.buf[state.base+start+4:])
	if size != uint32(bitpack.UnionDataSize) {
		return 0, nil, Context{}, werr.New(werr.UnexpectedStructHeader, "union cell size %d != %d", size, bitpack.UnionDataSize)
	}
	inner = &DecoderState{dec: state.dec, base: state.base + start + 8, size: 8}
	return tag, inner, Context{base: state.base}.WithUnion(true), nil
}

// DecodeUnionNested reads a pointer to the union's own sub-region, claims
// it, and returns its tag and decoder state the same way DecodeUnionInline
// does.
func DecodeUnionNested(dec *Decoder, state *DecoderState) (tag uint32, inner *DecoderState, ctx Context, err error) {
	target, ok, err := state.DecodePointer()
	if err != nil {
		return 0, nil, Context{}, err
	}
	if !ok {
		return 0, nil, Context{}, werr.New(werr.UnexpectedNullPointer, "nested union pointer is null")
	}
	regionState, err := dec.Claim(target)
	if err != nil {
		return 0, nil, Context{}, err
	}
	size := binary.LittleEndian.Uint32(dec.buf[target:])
	tag = binary.LittleEndian.Uint32(dec.buf[target+4:])
	if size != uint32(bitpack.UnionDataSize) {
		return 0, nil, Context{}, werr.New(werr.UnexpectedStructHeader, "union cell size %d != %d", size, bitpack.UnionDataSize)
	}
	regionState.pos = 8
	return tag, regionState, Context{base: target}.WithUnion(true), nil
}

// DecodeUnion picks DecodeUnionInline or DecodeUnionNested according to
// whether the field sits directly inside another union's payload.
func DecodeUnion(dec *Decoder, state *DecoderState, ctx Context) (tag uint32, inner *DecoderState, innerCtx Context, err error) {
	if ctx.IsUnion() {
		return DecodeUnionNested(dec, state)
	}
	return DecodeUnionInline(state)
}
