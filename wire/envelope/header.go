// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package envelope implements the top-level message wrapper every
// interface call is sent as: a version-tagged header followed by a
// payload struct, plus the send/receive error surface around them.
package envelope

import (
	"github.com/gomojo/wire/bitpack"
	werr "github.com/gomojo/wire/internal/errors"
	"github.com/gomojo/wire/wire"
)

// Header is the fixed leading struct of every message: which interface and
// method it targets, delivery flags, and (for methods with a response) the
// request id used to correlate the reply.
type Header struct {
	InterfaceID uint32
	Name        uint32
	Flags       uint32
	RequestID   uint64
}

const headerVersion = 0
const headerSize = 24 // 4+4+4 fields, padded to 8, then an 8-byte request id

func (Header) Category() wire.Category            { return wire.CategoryPointer }
func (Header) Alignment() int                      { return 8 }
func (Header) EmbedSize(wire.Context) bitpack.Bits { return 64 }

func (Header) HeaderData() wire.HeaderValue { return wire.VersionHeader(headerVersion) }

func (Header) SerializedSize(wire.Context) int { return bitpack.DataHeaderSize + headerSize }

// ComputeSize is just the header's own fixed region: it holds no pointers.
func (h Header) ComputeSize(ctx wire.Context) int {
	return bitpack.AlignBytes(h.SerializedSize(ctx), 8)
}

func (h Header) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeAsPointer(h, enc, state, ctx)
}

func (h Header) EncodeValue(_ *wire.Encoder, state *wire.EncodingState, _ wire.Context) {
	state.EncodeUint32(h.InterfaceID)
	state.EncodeUint32(h.Name)
	state.EncodeUint32(h.Flags)
	state.AlignToBytes(8)
	state.EncodeUint64(h.RequestID)
}

func (h *Header) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	v, err := wire.DecodeNonNullPointer[Header, *Header](dec, state)
	if err != nil {
		return err
	}
	*h = v
	return nil
}

func (h *Header) DecodeValue(_ *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	if _, err := state.DecodeStructHeader([]wire.StructVersion{{Version: headerVersion, Size: headerSize}}); err != nil {
		return err
	}
	h.InterfaceID = state.DecodeUint32()
	h.Name = state.DecodeUint32()
	h.Flags = state.DecodeUint32()
	state.AlignToBytes(8)
	h.RequestID = state.DecodeUint64()
	return nil
}

// decodeHeaderAt claims the region at offset 0 of buf using a decoder with
// no handle vector — spec.md §4.9 requires the header to decode with an
// empty handle vector, since it never itself carries handles. It returns
// the header and the byte offset the payload region starts at.
func decodeHeaderAt(buf []byte) (Header, int, error) {
	dec := wire.NewDecoder(buf, wire.NewHandleVector(nil))
	state, err := dec.Claim(0)
	if err != nil {
		return Header{}, 0, werr.New(werr.IllegalPointer, "message too short for a header: %v", err)
	}
	var h Header
	if err := h.DecodeValue(dec, state, wire.Context{}); err != nil {
		return Header{}, 0, err
	}
	payloadOffset := bitpack.AlignBytes(0+Header{}.SerializedSize(wire.Context{}), 8)
	return h, payloadOffset, nil
}
