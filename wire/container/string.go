// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

import (
	"unicode/utf8"

	"github.com/gomojo/wire/bitpack"
	werr "github.com/gomojo/wire/internal/errors"
	"github.com/gomojo/wire/wire"
)

// Str is a wire string: encoded exactly like Array[byte] (header +
// tightly-packed bytes), with the additional requirement that decoded
// bytes be valid UTF-8.
type Str string

func (Str) Category() wire.Category            { return wire.CategoryPointer }
func (Str) Alignment() int                      { return 8 }
func (Str) EmbedSize(wire.Context) bitpack.Bits { return 64 }

func (s Str) HeaderData() wire.HeaderValue { return wire.ElementsHeader(uint32(len(s))) }

func (s Str) SerializedSize(wire.Context) int { return bitpack.DataHeaderSize + len(s) }

// ComputeSize is just the array's own region: a string holds no nested
// pointers.
func (s Str) ComputeSize(ctx wire.Context) int {
	return bitpack.AlignBytes(s.SerializedSize(ctx), 8)
}

func (s Str) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeAsPointer(s, enc, state, ctx)
}

func (s Str) EncodeValue(_ *wire.Encoder, state *wire.EncodingState, _ wire.Context) {
	for i := 0; i < len(s); i++ {
		state.EncodeUint8(s[i])
	}
}

// Decode reads the string's pointer field and decodes its region; a null
// pointer here is UnexpectedNullPointer — wrap the field in wire.Nullable
// for an optional string.
func (s *Str) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	v, err := wire.DecodeNonNullPointer[Str, *Str](dec, state)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// DecodeValue reads the array-of-u8 header, the raw bytes, and validates
// UTF-8.
func (s *Str) DecodeValue(_ *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	n, err := state.DecodeArrayHeader(8)
	if err != nil {
		return err
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = state.DecodeUint8()
	}
	if !utf8.Valid(b) {
		return werr.New(werr.InvalidUTF8, "string field is not valid UTF-8")
	}
	*s = Str(b)
	return nil
}
