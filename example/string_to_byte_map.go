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

// StringToByteMapInterfaceID and StringToByteMapMethodOrdinal stand in for
// generator-derived constants. The interface ID differs from Greeting's, so
// the two message types belong to separate interfaces and both can use
// method ordinal 0 without colliding.
const (
	StringToByteMapInterfaceID   = 2
	StringToByteMapMethodOrdinal = 0
	StringToByteMapMinVersion    = 0
)

// StringToByteMap is a one-field message wrapping a map[string]uint8,
// exercising the parallel-array map encoding end to end.
type StringToByteMap struct {
	Entries container.Map[container.Str, *container.Str, wire.Uint8, *wire.Uint8]
}

// NewStringToByteMap builds a StringToByteMap from a plain Go map.
func NewStringToByteMap(entries map[string]byte) StringToByteMap {
	wired := make(map[container.Str]wire.Uint8, len(entries))
	for k, v := range entries {
		wired[container.Str(k)] = wire.Uint8(v)
	}
	return StringToByteMap{Entries: container.NewMap[container.Str, *container.Str, wire.Uint8, *wire.Uint8](wired)}
}

const stringToByteMapVersion = 0
const stringToByteMapSize = 8 // one pointer field

func (StringToByteMap) Category() wire.Category             { return wire.CategoryPointer }
func (StringToByteMap) Alignment() int                      { return 8 }
func (StringToByteMap) EmbedSize(wire.Context) bitpack.Bits { return 64 }

func (StringToByteMap) HeaderData() wire.HeaderValue { return wire.VersionHeader(stringToByteMapVersion) }

func (StringToByteMap) SerializedSize(wire.Context) int {
	return bitpack.DataHeaderSize + stringToByteMapSize
}

func (m StringToByteMap) ComputeSize(ctx wire.Context) int {
	own := bitpack.AlignBytes(m.SerializedSize(ctx), 8)
	return own + m.Entries.ComputeSize(ctx)
}

func (m StringToByteMap) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeAsPointer(m, enc, state, ctx)
}

func (m StringToByteMap) EncodeValue(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	m.Entries.Encode(enc, state, ctx)
}

func (m *StringToByteMap) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	v, err := wire.DecodeNonNullPointer[StringToByteMap, *StringToByteMap](dec, state)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m *StringToByteMap) DecodeValue(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	if _, err := state.DecodeStructHeader([]wire.StructVersion{{Version: stringToByteMapVersion, Size: stringToByteMapSize}}); err != nil {
		return err
	}
	var entries container.Map[container.Str, *container.Str, wire.Uint8, *wire.Uint8]
	if err := entries.Decode(dec, state, wire.Context{}); err != nil {
		return err
	}
	m.Entries = entries
	return nil
}

// MinVersion reports the interface version required to accept this message.
func (StringToByteMap) MinVersion() uint32 { return StringToByteMapMinVersion }

// CreateHeader builds the header this message is sent under.
func (StringToByteMap) CreateHeader() envelope.Header {
	return envelope.Header{InterfaceID: StringToByteMapInterfaceID, Name: StringToByteMapMethodOrdinal}
}

var _ envelope.MessageType = StringToByteMap{}
