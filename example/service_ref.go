// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package example

import (
	"github.com/gomojo/wire/bitpack"
	"github.com/gomojo/wire/wire"
	"github.com/gomojo/wire/wire/handle"
)

// ServiceRef is a Category-interface field: a handle bound to an interface
// version, the wire shape for a Mojo interface request or pointer (spec.md
// §4.7). It is the only Encodable in this package whose own EmbedSize isn't
// a multiple of 64 bits by coincidence — it's always exactly that, since the
// category is defined as a handle index (32 bits) followed by a version (32
// bits).
type ServiceRef struct {
	Endpoint handle.MessageEndpoint
	Version  uint32
}

func (ServiceRef) Category() wire.Category             { return wire.CategoryInterface }
func (ServiceRef) Alignment() int                      { return 4 }
func (ServiceRef) EmbedSize(wire.Context) bitpack.Bits { return 64 }
func (ServiceRef) ComputeSize(wire.Context) int        { return 0 }

func (s ServiceRef) Encode(enc *wire.Encoder, state *wire.EncodingState, _ wire.Context) {
	wire.EncodeInterfaceField(enc, state, s.Endpoint, s.Version)
}

func (s *ServiceRef) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	h, version, err := wire.DecodeInterfaceField(dec, state, wire.KindMessageEndpoint)
	if err != nil {
		return err
	}
	ep, err := handle.MessageEndpointFromUntyped(handle.AsUntyped(h))
	if err != nil {
		return err
	}
	s.Endpoint = ep
	s.Version = version
	return nil
}

// ServiceRefPair demonstrates a non-nullable interface field alongside a
// nullable one: Fallback absent encodes as a null handle index (§4.3's null
// sentinel) followed by a zero version, and decoding it back must not touch
// the handle vector at all.
type ServiceRefPair struct {
	Primary  ServiceRef
	Fallback wire.Nullable[ServiceRef]
}

const serviceRefPairVersion = 0
const serviceRefPairSize = 16 // two interface fields, 8 bytes each

func (ServiceRefPair) Category() wire.Category             { return wire.CategoryPointer }
func (ServiceRefPair) Alignment() int                      { return 8 }
func (ServiceRefPair) EmbedSize(wire.Context) bitpack.Bits { return 64 }

func (ServiceRefPair) HeaderData() wire.HeaderValue {
	return wire.VersionHeader(serviceRefPairVersion)
}

func (ServiceRefPair) SerializedSize(wire.Context) int {
	return bitpack.DataHeaderSize + serviceRefPairSize
}

func (p ServiceRefPair) ComputeSize(ctx wire.Context) int {
	own := bitpack.AlignBytes(p.SerializedSize(ctx), 8)
	return own + p.Primary.ComputeSize(ctx) + p.Fallback.ComputeSize(ctx)
}

func (p ServiceRefPair) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeAsPointer(p, enc, state, ctx)
}

func (p ServiceRefPair) EncodeValue(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	p.Primary.Encode(enc, state, ctx)
	p.Fallback.Encode(enc, state, ctx)
}

func (p *ServiceRefPair) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	v, err := wire.DecodeNonNullPointer[ServiceRefPair, *ServiceRefPair](dec, state)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p *ServiceRefPair) DecodeValue(dec *wire.Decoder, state *wire.DecoderState, ctx wire.Context) error {
	if _, err := state.DecodeStructHeader([]wire.StructVersion{{Version: serviceRefPairVersion, Size: serviceRefPairSize}}); err != nil {
		return err
	}
	var primary ServiceRef
	if err := primary.Decode(dec, state, ctx); err != nil {
		return err
	}
	fallback, err := wire.DecodeNullable[ServiceRef, *ServiceRef](dec, state, ctx)
	if err != nil {
		return err
	}
	p.Primary, p.Fallback = primary, fallback
	return nil
}
