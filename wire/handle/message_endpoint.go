// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handle

import (
	"github.com/gomojo/wire/bitpack"
	"github.com/gomojo/wire/wire"
)

// MessageEndpoint is one end of a message pipe: a handle that can be sent
// over the wire like any other, while package transport supplies the
// actual read/write behavior for a connected pair.
type MessageEndpoint struct{ UntypedHandle }

// NewMessageEndpointPair mints two linked identities for a freshly created
// pipe. The identities carry no behavior themselves — transport.NewPipe
// pairs one with a live connection.
func NewMessageEndpointPair() (MessageEndpoint, MessageEndpoint) {
	a := MessageEndpoint{UntypedHandle{id: newNativeID(), kind: wire.KindMessageEndpoint}}
	b := MessageEndpoint{UntypedHandle{id: newNativeID(), kind: wire.KindMessageEndpoint}}
	return a, b
}

// WithCloser returns a copy of m whose Close calls fn exactly once.
func (m MessageEndpoint) WithCloser(fn func()) MessageEndpoint {
	m.closeFn = fn
	return m
}

// AsUntyped erases this handle's kind.
func (m MessageEndpoint) AsUntyped() UntypedHandle { return m.UntypedHandle }

// MessageEndpointFromUntyped downcasts u, failing if it wasn't created as
// a MessageEndpoint.
func MessageEndpointFromUntyped(u UntypedHandle) (MessageEndpoint, error) {
	if u.Kind() != wire.KindMessageEndpoint {
		return MessageEndpoint{}, castErr(u.Kind(), wire.KindMessageEndpoint)
	}
	return MessageEndpoint{u}, nil
}

func (MessageEndpoint) Category() wire.Category            { return wire.CategoryHandle }
func (MessageEndpoint) Alignment() int                      { return 4 }
func (MessageEndpoint) EmbedSize(wire.Context) bitpack.Bits { return 32 }
func (MessageEndpoint) ComputeSize(wire.Context) int        { return 0 }

func (m MessageEndpoint) Encode(enc *wire.Encoder, state *wire.EncodingState, _ wire.Context) {
	wire.EncodeHandleField(enc, state, m)
}

func (m *MessageEndpoint) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	h, err := wire.DecodeHandleField(dec, state, wire.KindMessageEndpoint)
	if err != nil {
		return err
	}
	v, err := MessageEndpointFromUntyped(AsUntyped(h))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
