// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package example

import (
	"github.com/gomojo/wire/bitpack"
	"github.com/gomojo/wire/wire"
	"github.com/gomojo/wire/wire/container"
	"github.com/gomojo/wire/wire/handle"
)

// HandleTripleArity is the fixed length of HandleTriple.Endpoints.
const HandleTripleArity = 3

// HandleTriple wraps a fixed-length array of three handles: truncating the
// message's handle vector before decoding one should surface IllegalHandle
// on whichever slot runs off the end.
type HandleTriple struct {
	Endpoints container.FixedArray[handle.MessageEndpoint, *handle.MessageEndpoint]
}

// NewHandleTriple builds a HandleTriple from exactly three endpoints.
func NewHandleTriple(a, b, c handle.MessageEndpoint) HandleTriple {
	return HandleTriple{Endpoints: container.NewFixedArray[handle.MessageEndpoint, *handle.MessageEndpoint](
		HandleTripleArity, a, b, c,
	)}
}

const handleTripleVersion = 0
const handleTripleSize = 8 // one pointer field

func (HandleTriple) Category() wire.Category             { return wire.CategoryPointer }
func (HandleTriple) Alignment() int                      { return 8 }
func (HandleTriple) EmbedSize(wire.Context) bitpack.Bits { return 64 }

func (HandleTriple) HeaderData() wire.HeaderValue { return wire.VersionHeader(handleTripleVersion) }

func (HandleTriple) SerializedSize(wire.Context) int { return bitpack.DataHeaderSize + handleTripleSize }

func (h HandleTriple) ComputeSize(ctx wire.Context) int {
	own := bitpack.AlignBytes(h.SerializedSize(ctx), 8)
	return own + h.Endpoints.ComputeSize(ctx)
}

func (h HandleTriple) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeAsPointer(h, enc, state, ctx)
}

func (h HandleTriple) EncodeValue(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	h.Endpoints.Encode(enc, state, ctx)
}

func (h *HandleTriple) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	v, err := wire.DecodeNonNullPointer[HandleTriple, *HandleTriple](dec, state)
	if err != nil {
		return err
	}
	*h = v
	return nil
}

func (h *HandleTriple) DecodeValue(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	if _, err := state.DecodeStructHeader([]wire.StructVersion{{Version: handleTripleVersion, Size: handleTripleSize}}); err != nil {
		return err
	}
	endpoints, err := container.DecodeFixedArray[handle.MessageEndpoint, *handle.MessageEndpoint](dec, state, HandleTripleArity)
	if err != nil {
		return err
	}
	h.Endpoints = endpoints
	return nil
}
