// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package example

import (
	"github.com/gomojo/wire/bitpack"
	"github.com/gomojo/wire/wire"
	"github.com/gomojo/wire/wire/container"
	"github.com/gomojo/wire/wire/envelope"
)

// GreetingInterfaceID and GreetingMethodOrdinal stand in for the values a
// real Mojom generator would derive from the .mojom interface declaration.
const (
	GreetingInterfaceID   = 1
	GreetingMethodOrdinal = 0
	GreetingMinVersion    = 0
)

// Greeting is a one-field request message carrying a single string, the
// simplest possible envelope.MessageType.
type Greeting struct {
	Text container.Str
}

const greetingVersion = 0
const greetingSize = 8 // one pointer field

func (Greeting) Category() wire.Category             { return wire.CategoryPointer }
func (Greeting) Alignment() int                      { return 8 }
func (Greeting) EmbedSize(wire.Context) bitpack.Bits { return 64 }

func (Greeting) HeaderData() wire.HeaderValue { return wire.VersionHeader(greetingVersion) }

func (Greeting) SerializedSize(wire.Context) int { return bitpack.DataHeaderSize + greetingSize }

func (g Greeting) ComputeSize(ctx wire.Context) int {
	own := bitpack.AlignBytes(g.SerializedSize(ctx), 8)
	return own + g.Text.ComputeSize(ctx)
}

func (g Greeting) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeAsPointer(g, enc, state, ctx)
}

func (g Greeting) EncodeValue(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	g.Text.Encode(enc, state, ctx)
}

func (g *Greeting) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	v, err := wire.DecodeNonNullPointer[Greeting, *Greeting](dec, state)
	if err != nil {
		return err
	}
	*g = v
	return nil
}

func (g *Greeting) DecodeValue(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	if _, err := state.DecodeStructHeader([]wire.StructVersion{{Version: greetingVersion, Size: greetingSize}}); err != nil {
		return err
	}
	var text container.Str
	if err := text.Decode(dec, state, wire.Context{}); err != nil {
		return err
	}
	g.Text = text
	return nil
}

// MinVersion reports the interface version required to accept this message.
func (Greeting) MinVersion() uint32 { return GreetingMinVersion }

// CreateHeader builds the header this message is sent under; RequestID is
// filled in by envelope.CreateRequest.
func (Greeting) CreateHeader() envelope.Header {
	return envelope.Header{InterfaceID: GreetingInterfaceID, Name: GreetingMethodOrdinal}
}

var _ envelope.MessageType = Greeting{}
