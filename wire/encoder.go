// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gomojo/wire/bitpack"
	werr "github.com/gomojo/wire/internal/errors"
)

// HeaderKind identifies which per-kind metadata word follows a region's
// 8-byte data header's size field.
type HeaderKind uint8

const (
	// HeaderVersion: the second word is a struct (or map) version.
	HeaderVersion HeaderKind = iota
	// HeaderElements: the second word is an array or string element count.
	HeaderElements
	// HeaderUnionTag: the second word is a union's active tag.
	HeaderUnionTag
)

// HeaderValue is the per-kind metadata word recorded in a region's data
// header, alongside its size.
type HeaderValue struct {
	Kind  HeaderKind
	Value uint32
}

// VersionHeader builds the header value for a struct or map region.
func VersionHeader(v uint32) HeaderValue { return HeaderValue{Kind: HeaderVersion, Value: v} }

// ElementsHeader builds the header value for an array or string region.
func ElementsHeader(n uint32) HeaderValue { return HeaderValue{Kind: HeaderElements, Value: n} }

// UnionTagHeader builds the header value for a union region.
func UnionTagHeader(tag uint32) HeaderValue { return HeaderValue{Kind: HeaderUnionTag, Value: tag} }

// Encoder orchestrates the sub-regions of one message: it owns the single
// growable write head into the buffer and the handle vector every handle
// field is appended to.
type Encoder struct {
	buf     *Buffer
	pos     int
	handles *HandleVector
}

// NewEncoder allocates an encoder over a buffer of exactly size bytes, as
// precomputed by ComputeSize. size must be the final message size; the
// buffer never grows.
func NewEncoder(size int) *Encoder {
	return &Encoder{buf: NewBuffer(size), handles: &HandleVector{}}
}

// Add reserves a new, 8-byte-aligned sub-region of size bytes (header
// included) and writes its 8-byte data header. It returns the region's
// absolute offset, a fresh EncodingState positioned just past the header,
// and a fresh Context based at that offset.
//
// Add fails only if size itself is unrepresentable (spec.md §9's open
// question: a single region may not be 2^32 bytes or larger, since the
// wire header's size field is u32). A size that doesn't fit the
// pre-computed buffer is a caller bug, not a recoverable error.
func (e *Encoder) Add(size int, value HeaderValue) (int, *EncodingState, Context, error) {
	if size < bitpack.DataHeaderSize {
		panic(fmt.Sprintf("wire: region size %d smaller than data header", size))
	}
	if uint64(size) > uint64(math.MaxUint32) {
		return 0, nil, Context{}, werr.New(werr.IllegalPointer, "region size %d exceeds the 2^32 byte limit", size)
	}
	e.pos = bitpack.AlignDefault(e.pos)
	offset := e.pos
	if offset+size > e.buf.Len() {
		panic(fmt.Sprintf("wire: buffer too small: need %d bytes at offset %d, have %d", size, offset, e.buf.Len()))
	}
	binary.LittleEndian.PutUint32(e.buf.b[offset:], uint32(size))
	binary.LittleEndian.PutUint32(e.buf.b[offset+4:], value.Value)
	e.pos = offset + size

	state := newEncodingState(e.buf, offset)
	state.pos = bitpack.DataHeaderSize
	ctx := Context{base: offset}
	return offset, state, ctx, nil
}

// AddHandle appends an owned handle to the encoder's handle vector,
// transferring ownership to the encoder, and returns its index.
func (e *Encoder) AddHandle(h Handle) uint32 {
	return e.handles.Append(h)
}

// Abort releases every handle appended to the encoder so far. Call it when
// encoding fails partway through.
func (e *Encoder) Abort() {
	e.handles.CloseAll()
}

// Finalize consumes the encoder, returning the completed buffer bytes and
// handle vector.
func (e *Encoder) Finalize() ([]byte, *HandleVector) {
	return e.buf.Bytes(), e.handles
}
