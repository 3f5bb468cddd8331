// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"

	"github.com/gomojo/wire/bitpack"
	werr "github.com/gomojo/wire/internal/errors"
)

// Category is the one of five wire categories a type belongs to. It governs
// how a Nullable wrapper represents an absent value, and how a union embeds
// a field of that type.
type Category uint8

const (
	// CategorySimple: primitives and bool. Not representable as absent;
	// nullability for these is expressed in the IDL as a different field
	// type entirely (e.g. a boxed/pointer wrapper), never as Nullable
	// directly over the primitive.
	CategorySimple Category = iota
	// CategoryPointer: struct, array, string, map — anything allocated in
	// its own sub-region and referenced by relative pointer.
	CategoryPointer
	// CategoryUnion: an inline-or-nested tagged cell.
	CategoryUnion
	// CategoryHandle: an owned OS handle, referenced by vector index.
	CategoryHandle
	// CategoryInterface: a handle paired with an interface version.
	CategoryInterface
)

// Encodable is implemented by every wire type: primitives and bool
// implement it directly (see primitive.go); pointer, union, handle, and
// interface category types implement it via the more specific PointerType/
// UnionType/handle-field helpers below.
type Encodable interface {
	// Category reports which of the five wire categories this type
	// belongs to.
	Category() Category
	// Alignment is this type's byte alignment. Undefined for bool, which
	// is bit-aligned instead.
	Alignment() int
	// EmbedSize is the space, in bits, this value occupies inline in its
	// parent region.
	EmbedSize(ctx Context) bitpack.Bits
	// ComputeSize is the additional number of bytes this value requires
	// in externally-allocated sub-regions, recursively.
	ComputeSize(ctx Context) int
	// Encode writes this value's inline bytes into state, allocating any
	// external sub-regions via enc.
	Encode(enc *Encoder, state *EncodingState, ctx Context)
}

// Decodable is implemented on a pointer receiver by every decodable wire
// type: Decode populates the zero value the receiver points to.
type Decodable interface {
	Decode(dec *Decoder, state *DecoderState, ctx Context) error
}

// PointerType is additionally implemented by every Pointer-category type:
// on encode, a pointer is written inline and the value itself is serialized
// into a freshly-allocated sub-region.
type PointerType interface {
	Encodable
	// HeaderData is this region's per-kind header metadata (struct
	// version, array/string element count, or map version 0).
	HeaderData() HeaderValue
	// SerializedSize is the size, in bytes, of this value's own region
	// (header included), not counting the sub-regions of its children.
	SerializedSize(ctx Context) int
	// EncodeValue writes this value's own region's payload.
	EncodeValue(enc *Encoder, state *EncodingState, ctx Context)
}

// PointerDecodable is implemented on a pointer receiver by every
// Pointer-category type.
type PointerDecodable interface {
	DecodeValue(dec *Decoder, state *DecoderState, ctx Context) error
}

// EncodePointerNew allocates a new sub-region for v, sized by
// v.SerializedSize, and writes v's payload into it via EncodeValue. The
// caller still has to write the pointer field itself (EncodingState.
// EncodePointer) — EncodePointerNew only returns the absolute offset to
// point at.
func EncodePointerNew(v PointerType, enc *Encoder, ctx Context) int {
	size := v.SerializedSize(ctx)
	offset, state, newCtx, err := enc.Add(size, v.HeaderData())
	if err != nil {
		// ComputeSize is expected to have already rejected any value
		// whose region would be this large.
		panic(fmt.Sprintf("wire: %v", err))
	}
	v.EncodeValue(enc, state, newCtx)
	return offset
}

// EncodeAsPointer is the standard top-level Encode body for every
// Pointer-category type: allocate v its own region via EncodePointerNew,
// then write the pointer field itself into the caller's state.
func EncodeAsPointer(v PointerType, enc *Encoder, state *EncodingState, ctx Context) {
	offset := EncodePointerNew(v, enc, ctx)
	state.EncodePointer(offset)
}

// DecodePointerNew claims the region at offset and decodes a T's payload
// out of it via DecodeValue. PT must be *T implementing PointerDecodable —
// the usual Go pattern for "T decodes itself through its pointer".
//
// Decoding a null pointer (offset == 0) at a non-nullable field is the
// caller's responsibility to reject before calling DecodePointerNew: it
// does not check for it. Claim(0) succeeds when offset 0 is the first
// region claimed (the root); after that, it fails with IllegalPointer.
func DecodePointerNew[T any, PT interface {
	*T
	PointerDecodable
}](dec *Decoder, offset int) (T, error) {
	var v T
	state, err := dec.Claim(offset)
	if err != nil {
		return v, err
	}
	pv := PT(&v)
	if err := pv.DecodeValue(dec, state, Context{base: offset}); err != nil {
		return v, err
	}
	return v, nil
}

// DecodeNonNullPointer reads a pointer field from state and decodes the
// region it points to; it rejects a null pointer with
// UnexpectedNullPointer, the standard top-level Decode body for every
// non-nullable Pointer-category field.
func DecodeNonNullPointer[T any, PT interface {
	*T
	PointerDecodable
}](dec *Decoder, state *DecoderState) (T, error) {
	var zero T
	target, ok, err := state.DecodePointer()
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, werr.New(werr.UnexpectedNullPointer, "non-nullable pointer field was null")
	}
	return DecodePointerNew[T, PT](dec, target)
}

// UnionType is implemented by every Union-category type: on encode it is
// inlined unless its parent region is itself a union's payload (Context.
// IsUnion), in which case it is allocated by pointer instead.
type UnionType interface {
	Encodable
	// Tag is the union's currently active field tag.
	Tag() uint32
	// EncodeValue writes the union's active field into its own 8-byte
	// inner payload (inline form) or its freshly-allocated 16-byte cell
	// (nested form) — the caller (EncodeUnionInline/EncodeUnionNested)
	// decides which.
	EncodeValue(enc *Encoder, state *EncodingState, ctx Context)
}

// UnionDecodable is implemented on a pointer receiver by every
// Union-category type.
type UnionDecodable interface {
	DecodeValue(dec *Decoder, state *DecoderState, ctx Context) error
}

// Nullable wraps a Pointer/Union/Handle/Interface-category value to make it
// an optional field, dispatching on Category to pick the right null
// sentinel (spec.md §4.4). T must never be Simple-category: there is no
// wire representation for an absent primitive.
type Nullable[T Encodable] struct {
	Value   T
	Present bool
}

// Some wraps a present value.
func Some[T Encodable](v T) Nullable[T] { return Nullable[T]{Value: v, Present: true} }

// None returns an absent Nullable of T's zero value.
func None[T Encodable]() Nullable[T] {
	var zero T
	return Nullable[T]{Value: zero, Present: false}
}

// Category reports T's category, regardless of presence.
func (n Nullable[T]) Category() Category { return n.Value.Category() }

// Alignment reports T's alignment.
func (n Nullable[T]) Alignment() int { return n.Value.Alignment() }

// EmbedSize reports T's embed size; a Nullable occupies the same inline
// space whether present or absent.
func (n Nullable[T]) EmbedSize(ctx Context) bitpack.Bits { return n.Value.EmbedSize(ctx) }

// ComputeSize is 0 when absent, otherwise T's own ComputeSize.
func (n Nullable[T]) ComputeSize(ctx Context) int {
	if !n.Present {
		return 0
	}
	return n.Value.ComputeSize(ctx)
}

// Encode writes T's encoding when present, or the category-appropriate null
// sentinel when absent.
func (n Nullable[T]) Encode(enc *Encoder, state *EncodingState, ctx Context) {
	if n.Present {
		n.Value.Encode(enc, state, ctx)
		return
	}
	switch n.Value.Category() {
	case CategoryPointer:
		state.EncodeNullPointer()
	case CategoryUnion:
		state.EncodeNullUnion()
	case CategoryHandle:
		state.EncodeNullHandle()
	case CategoryInterface:
		state.EncodeNullInterface()
	default:
		panic("wire: Nullable over a Simple-category type has no null representation")
	}
}

// DecodeNullable decodes a Nullable[T] field: it consults the
// category-appropriate skip helper, and only calls through to T's own
// Decode if the field wasn't the null sentinel. PT must be *T implementing
// Decodable.
func DecodeNullable[T Encodable, PT interface {
	*T
	Decodable
}](dec *Decoder, state *DecoderState, ctx Context) (Nullable[T], error) {
	var zero T
	switch zero.Category() {
	case CategoryPointer:
		skipped, err := state.SkipIfNullPointer()
		if err != nil || skipped {
			return Nullable[T]{}, err
		}
	case CategoryUnion:
		skipped, err := state.SkipIfNullUnion()
		if err != nil || skipped {
			return Nullable[T]{}, err
		}
	case CategoryHandle:
		if state.SkipIfNullHandle() {
			return Nullable[T]{}, nil
		}
	case CategoryInterface:
		if state.SkipIfNullInterface() {
			return Nullable[T]{}, nil
		}
	default:
		panic("wire: Nullable over a Simple-category type has no null representation")
	}
	var v T
	pv := PT(&v)
	if err := pv.Decode(dec, state, ctx); err != nil {
		return Nullable[T]{}, err
	}
	return Nullable[T]{Value: v, Present: true}, nil
}

// EncodeHandleField appends h to the encoder's handle vector and writes its
// index inline, the shared implementation every handle kind in package
// handle calls from its own Encode method.
func EncodeHandleField(enc *Encoder, state *EncodingState, h Handle) {
	idx := enc.AddHandle(h)
	state.EncodeHandleIndex(idx)
}

// DecodeHandleField reads a handle index inline and claims it at the
// expected kind, the shared implementation every handle kind in package
// handle calls from its own Decode method.
func DecodeHandleField(dec *Decoder, state *DecoderState, kind HandleKind) (Handle, error) {
	idx := state.DecodeHandleIndex()
	return dec.ClaimHandle(idx, kind)
}

// EncodeInterfaceField writes a non-null interface reference: a handle
// index followed by its version. Nullability is handled one level up, by
// wrapping the interface field's type in a Nullable.
func EncodeInterfaceField(enc *Encoder, state *EncodingState, h Handle, version uint32) {
	idx := enc.AddHandle(h)
	state.EncodeHandleIndex(idx)
	state.EncodeUint32(version)
}

// DecodeInterfaceField reads a non-null interface reference.
func DecodeInterfaceField(dec *Decoder, state *DecoderState, kind HandleKind) (Handle, uint32, error) {
	idx := state.DecodeHandleIndex()
	version := state.DecodeUint32()
	h, err := dec.ClaimHandle(idx, kind)
	return h, version, err
}
