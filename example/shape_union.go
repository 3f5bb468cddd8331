// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package example

import (
	"github.com/gomojo/wire/bitpack"
	werr "github.com/gomojo/wire/internal/errors"
	"github.com/gomojo/wire/wire"
)

// ShapeTag enumerates ShapeUnion's active field.
type ShapeTag uint32

const (
	ShapeTagRadius ShapeTag = iota
	ShapeTagBox
)

// ShapeUnion is the simplest possible generated union: a float32 in one
// field, a pointer-category Rect in the other. Which embedding form it uses
// on the wire (inline 16-byte cell, or a pointer to a freshly-allocated
// cell) is decided by the context it is encoded in, not by anything on
// ShapeUnion itself; see ShapeHolder and ShapeBoxUnion.
type ShapeUnion struct {
	tag    ShapeTag
	radius float32
	box    Rect
}

// NewShapeRadius builds a ShapeUnion holding a radius.
func NewShapeRadius(radius float32) ShapeUnion {
	return ShapeUnion{tag: ShapeTagRadius, radius: radius}
}

// NewShapeBox builds a ShapeUnion holding a Rect.
func NewShapeBox(box Rect) ShapeUnion {
	return ShapeUnion{tag: ShapeTagBox, box: box}
}

// Tag reports which field is active.
func (s ShapeUnion) Tag() uint32 { return uint32(s.tag) }

// Radius reports the radius field; only meaningful when Tag is
// ShapeTagRadius.
func (s ShapeUnion) Radius() float32 { return s.radius }

// Box reports the box field; only meaningful when Tag is ShapeTagBox.
func (s ShapeUnion) Box() Rect { return s.box }

func (ShapeUnion) Category() wire.Category { return wire.CategoryUnion }
func (ShapeUnion) Alignment() int          { return 8 }

// EmbedSize is 128 bits (the full inline cell: size + tag + 8-byte payload)
// unless this union is itself a union's payload field, in which case it is
// embedded by pointer instead (64 bits).
func (ShapeUnion) EmbedSize(ctx wire.Context) bitpack.Bits {
	if ctx.IsUnion() {
		return 64
	}
	return 128
}

// ComputeSize is the union's externally-allocated payload (a Box variant
// needs its Rect's own region) plus, when nested, the union's own 16-byte
// cell — EncodeUnionNested allocates that cell the same way any other
// sub-region is allocated, so ComputeSize has to account for it up front.
func (s ShapeUnion) ComputeSize(ctx wire.Context) int {
	total := s.payloadExternalSize()
	if ctx.IsUnion() {
		total += bitpack.UnionDataSize
	}
	return total
}

func (s ShapeUnion) payloadExternalSize() int {
	switch s.tag {
	case ShapeTagBox:
		return s.box.ComputeSize(wire.Context{})
	default:
		return 0
	}
}

func (s ShapeUnion) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeUnion(s, enc, state, ctx)
}

// EncodeValue writes the active field into the union's 8-byte payload cell.
func (s ShapeUnion) EncodeValue(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	switch s.tag {
	case ShapeTagRadius:
		state.EncodeFloat32(s.radius)
	case ShapeTagBox:
		wire.EncodeAsPointer(s.box, enc, state, ctx)
	}
}

func (s *ShapeUnion) Decode(dec *wire.Decoder, state *wire.DecoderState, ctx wire.Context) error {
	tag, inner, innerCtx, err := wire.DecodeUnion(dec, state, ctx)
	if err != nil {
		return err
	}
	s.tag = ShapeTag(tag)
	return s.DecodeValue(dec, inner, innerCtx)
}

func (s *ShapeUnion) DecodeValue(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	switch s.tag {
	case ShapeTagRadius:
		s.radius = state.DecodeFloat32()
		return nil
	case ShapeTagBox:
		box, err := wire.DecodeNonNullPointer[Rect, *Rect](dec, state)
		if err != nil {
			return err
		}
		s.box = box
		return nil
	default:
		return werr.New(werr.UnexpectedStructHeader, "unknown shape union tag %d", s.tag)
	}
}

// ShapeHolder wraps a ShapeUnion as a plain struct field: since the field
// isn't itself inside another union's payload, it always uses the inline
// embedding form.
type ShapeHolder struct {
	Shape ShapeUnion
}

const shapeHolderVersion = 0
const shapeHolderSize = bitpack.UnionDataSize // the union cell, embedded inline

func (ShapeHolder) Category() wire.Category             { return wire.CategoryPointer }
func (ShapeHolder) Alignment() int                      { return 8 }
func (ShapeHolder) EmbedSize(wire.Context) bitpack.Bits { return 64 }

func (ShapeHolder) HeaderData() wire.HeaderValue { return wire.VersionHeader(shapeHolderVersion) }

func (ShapeHolder) SerializedSize(wire.Context) int { return bitpack.DataHeaderSize + shapeHolderSize }

func (h ShapeHolder) ComputeSize(ctx wire.Context) int {
	own := bitpack.AlignBytes(h.SerializedSize(ctx), 8)
	return own + h.Shape.ComputeSize(ctx)
}

func (h ShapeHolder) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeAsPointer(h, enc, state, ctx)
}

func (h ShapeHolder) EncodeValue(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	h.Shape.Encode(enc, state, ctx)
}

func (h *ShapeHolder) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	v, err := wire.DecodeNonNullPointer[ShapeHolder, *ShapeHolder](dec, state)
	if err != nil {
		return err
	}
	*h = v
	return nil
}

func (h *ShapeHolder) DecodeValue(dec *wire.Decoder, state *wire.DecoderState, ctx wire.Context) error {
	if _, err := state.DecodeStructHeader([]wire.StructVersion{{Version: shapeHolderVersion, Size: shapeHolderSize}}); err != nil {
		return err
	}
	var shape ShapeUnion
	if err := shape.Decode(dec, state, ctx); err != nil {
		return err
	}
	h.Shape = shape
	return nil
}

// ShapeBoxTag enumerates ShapeBoxUnion's active field.
type ShapeBoxTag uint32

const ShapeBoxTagInner ShapeBoxTag = iota

// ShapeBoxUnion nests a ShapeUnion inside its own single field, to exercise
// the nested embedding form: EncodeUnionInline and EncodeUnionNested both
// pass their caller's payload an already-true Context.IsUnion, so Inner is
// always encoded nested, regardless of whether ShapeBoxUnion itself was
// inlined or nested at the point it was reached from.
type ShapeBoxUnion struct {
	tag   ShapeBoxTag
	inner ShapeUnion
}

// NewShapeBoxInner builds a ShapeBoxUnion wrapping inner.
func NewShapeBoxInner(inner ShapeUnion) ShapeBoxUnion {
	return ShapeBoxUnion{tag: ShapeBoxTagInner, inner: inner}
}

// Inner reports the wrapped union.
func (s ShapeBoxUnion) Inner() ShapeUnion { return s.inner }

func (s ShapeBoxUnion) Tag() uint32 { return uint32(s.tag) }

func (ShapeBoxUnion) Category() wire.Category { return wire.CategoryUnion }
func (ShapeBoxUnion) Alignment() int          { return 8 }

func (ShapeBoxUnion) EmbedSize(ctx wire.Context) bitpack.Bits {
	if ctx.IsUnion() {
		return 64
	}
	return 128
}

func (s ShapeBoxUnion) ComputeSize(ctx wire.Context) int {
	// Inner is always encoded with ctx.IsUnion() forced true, whatever ctx
	// ShapeBoxUnion itself was reached with.
	total := s.inner.ComputeSize(wire.Context{}.WithUnion(true))
	if ctx.IsUnion() {
		total += bitpack.UnionDataSize
	}
	return total
}

func (s ShapeBoxUnion) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeUnion(s, enc, state, ctx)
}

func (s ShapeBoxUnion) EncodeValue(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	switch s.tag {
	case ShapeBoxTagInner:
		wire.EncodeUnion(s.inner, enc, state, ctx)
	}
}

func (s *ShapeBoxUnion) Decode(dec *wire.Decoder, state *wire.DecoderState, ctx wire.Context) error {
	tag, inner, innerCtx, err := wire.DecodeUnion(dec, state, ctx)
	if err != nil {
		return err
	}
	s.tag = ShapeBoxTag(tag)
	return s.DecodeValue(dec, inner, innerCtx)
}

func (s *ShapeBoxUnion) DecodeValue(dec *wire.Decoder, state *wire.DecoderState, ctx wire.Context) error {
	switch s.tag {
	case ShapeBoxTagInner:
		tag, inner, innerCtx, err := wire.DecodeUnion(dec, state, ctx)
		if err != nil {
			return err
		}
		var v ShapeUnion
		v.tag = ShapeTag(tag)
		if err := v.DecodeValue(dec, inner, innerCtx); err != nil {
			return err
		}
		s.inner = v
		return nil
	default:
		return werr.New(werr.UnexpectedStructHeader, "unknown shape box tag %d", s.tag)
	}
}

// ShapeBoxHolder wraps a ShapeBoxUnion as a plain struct field, the nested
// counterpart to ShapeHolder.
type ShapeBoxHolder struct {
	Box ShapeBoxUnion
}

const shapeBoxHolderVersion = 0
const shapeBoxHolderSize = bitpack.UnionDataSize

func (ShapeBoxHolder) Category() wire.Category             { return wire.CategoryPointer }
func (ShapeBoxHolder) Alignment() int                      { return 8 }
func (ShapeBoxHolder) EmbedSize(wire.Context) bitpack.Bits { return 64 }

func (ShapeBoxHolder) HeaderData() wire.HeaderValue {
	return wire.VersionHeader(shapeBoxHolderVersion)
}

func (ShapeBoxHolder) SerializedSize(wire.Context) int {
	return bitpack.DataHeaderSize + shapeBoxHolderSize
}

func (h ShapeBoxHolder) ComputeSize(ctx wire.Context) int {
	own := bitpack.AlignBytes(h.SerializedSize(ctx), 8)
	return own + h.Box.ComputeSize(ctx)
}

func (h ShapeBoxHolder) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeAsPointer(h, enc, state, ctx)
}

func (h ShapeBoxHolder) EncodeValue(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	h.Box.Encode(enc, state, ctx)
}

func (h *ShapeBoxHolder) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	v, err := wire.DecodeNonNullPointer[ShapeBoxHolder, *ShapeBoxHolder](dec, state)
	if err != nil {
		return err
	}
	*h = v
	return nil
}

func (h *ShapeBoxHolder) DecodeValue(dec *wire.Decoder, state *wire.DecoderState, ctx wire.Context) error {
	if _, err := state.DecodeStructHeader([]wire.StructVersion{{Version: shapeBoxHolderVersion, Size: shapeBoxHolderSize}}); err != nil {
		return err
	}
	var box ShapeBoxUnion
	if err := box.Decode(dec, state, ctx); err != nil {
		return err
	}
	h.Box = box
	return nil
}
