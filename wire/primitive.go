// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import "github.com/gomojo/wire/bitpack"

// Bool, Uint8, Int8, Uint16, Int16, Uint32, Int32, Uint64, Int64, Float32,
// and Float64 are the named Simple-category wrapper types generated fields
// use when they need to satisfy Encodable generically (an Array[Uint32], a
// Nullable-adjacent map value, and so on). Hand-written and generated
// struct fields are free to use the underlying Go primitive directly and
// call the matching EncodingState/DecoderState method themselves — these
// wrappers exist only for the generic container code in package container,
// which needs every element type to be an Encodable.
type (
	Bool    bool
	Uint8   uint8
	Int8    int8
	Uint16  uint16
	Int16   int16
	Uint32  uint32
	Int32   int32
	Uint64  uint64
	Int64   int64
	Float32 float32
	Float64 float64
)

func (Bool) Category() Category                        { return CategorySimple }
func (Bool) Alignment() int                             { return 1 }
func (Bool) EmbedSize(Context) bitpack.Bits             { return 1 }
func (Bool) ComputeSize(Context) int                    { return 0 }
func (v Bool) Encode(_ *Encoder, s *EncodingState, _ Context) { s.EncodeBool(bool(v)) }
func (v *Bool) Decode(_ *Decoder, s *DecoderState, _ Context) error {
	*v = Bool(s.DecodeBool())
	return nil
}

func (Uint8) Category() Category                        { return CategorySimple }
func (Uint8) Alignment() int                             { return 1 }
func (Uint8) EmbedSize(Context) bitpack.Bits             { return 8 }
func (Uint8) ComputeSize(Context) int                    { return 0 }
func (v Uint8) Encode(_ *Encoder, s *EncodingState, _ Context) { s.EncodeUint8(uint8(v)) }
func (v *Uint8) Decode(_ *Decoder, s *DecoderState, _ Context) error {
	*v = Uint8(s.DecodeUint8())
	return nil
}

func (Int8) Category() Category                        { return CategorySimple }
func (Int8) Alignment() int                             { return 1 }
func (Int8) EmbedSize(Context) bitpack.Bits             { return 8 }
func (Int8) ComputeSize(Context) int                    { return 0 }
func (v Int8) Encode(_ *Encoder, s *EncodingState, _ Context) { s.EncodeInt8(int8(v)) }
func (v *Int8) Decode(_ *Decoder, s *DecoderState, _ Context) error {
	*v = Int8(s.DecodeInt8())
	return nil
}

func (Uint16) Category() Category                        { return CategorySimple }
func (Uint16) Alignment() int                             { return 2 }
func (Uint16) EmbedSize(Context) bitpack.Bits             { return 16 }
func (Uint16) ComputeSize(Context) int                    { return 0 }
func (v Uint16) Encode(_ *Encoder, s *EncodingState, _ Context) { s.EncodeUint16(uint16(v)) }
func (v *Uint16) Decode(_ *Decoder, s *DecoderState, _ Context) error {
	*v = Uint16(s.DecodeUint16())
	return nil
}

func (Int16) Category() Category                        { return CategorySimple }
func (Int16) Alignment() int                             { return 2 }
func (Int16) EmbedSize(Context) bitpack.Bits             { return 16 }
func (Int16) ComputeSize(Context) int                    { return 0 }
func (v Int16) Encode(_ *Encoder, s *EncodingState, _ Context) { s.EncodeInt16(int16(v)) }
func (v *Int16) Decode(_ *Decoder, s *DecoderState, _ Context) error {
	*v = Int16(s.DecodeInt16())
	return nil
}

func (Uint32) Category() Category                        { return CategorySimple }
func (Uint32) Alignment() int                             { return 4 }
func (Uint32) EmbedSize(Context) bitpack.Bits             { return 32 }
func (Uint32) ComputeSize(Context) int                    { return 0 }
func (v Uint32) Encode(_ *Encoder, s *EncodingState, _ Context) { s.EncodeUint32(uint32(v)) }
func (v *Uint32) Decode(_ *Decoder, s *DecoderState, _ Context) error {
	*v = Uint32(s.DecodeUint32())
	return nil
}

func (Int32) Category() Category                        { return CategorySimple }
func (Int32) Alignment() int                             { return 4 }
func (Int32) EmbedSize(Context) bitpack.Bits             { return 32 }
func (Int32) ComputeSize(Context) int                    { return 0 }
func (v Int32) Encode(_ *Encoder, s *EncodingState, _ Context) { s.EncodeInt32(int32(v)) }
func (v *Int32) Decode(_ *Decoder, s *DecoderState, _ Context) error {
	*v = Int32(s.DecodeInt32())
	return nil
}

func (Uint64) Category() Category                        { return CategorySimple }
func (Uint64) Alignment() int                             { return 8 }
func (Uint64) EmbedSize(Context) bitpack.Bits             { return 64 }
func (Uint64) ComputeSize(Context) int                    { return 0 }
func (v Uint64) Encode(_ *Encoder, s *EncodingState, _ Context) { s.EncodeUint64(uint64(v)) }
func (v *Uint64) Decode(_ *Decoder, s *DecoderState, _ Context) error {
	*v = Uint64(s.DecodeUint64())
	return nil
}

func (Int64) Category() Category                        { return CategorySimple }
func (Int64) Alignment() int                             { return 8 }
func (Int64) EmbedSize(Context) bitpack.Bits             { return 64 }
func (Int64) ComputeSize(Context) int                    { return 0 }
func (v Int64) Encode(_ *Encoder, s *EncodingState, _ Context) { s.EncodeInt64(int64(v)) }
func (v *Int64) Decode(_ *Decoder, s *DecoderState, _ Context) error {
	*v = Int64(s.DecodeInt64())
	return nil
}

func (Float32) Category() Category                        { return CategorySimple }
func (Float32) Alignment() int                             { return 4 }
func (Float32) EmbedSize(Context) bitpack.Bits             { return 32 }
func (Float32) ComputeSize(Context) int                    { return 0 }
func (v Float32) Encode(_ *Encoder, s *EncodingState, _ Context) { s.EncodeFloat32(float32(v)) }
func (v *Float32) Decode(_ *Decoder, s *DecoderState, _ Context) error {
	*v = Float32(s.DecodeFloat32())
	return nil
}

func (Float64) Category() Category                        { return CategorySimple }
func (Float64) Alignment() int                             { return 8 }
func (Float64) EmbedSize(Context) bitpack.Bits             { return 64 }
func (Float64) ComputeSize(Context) int                    { return 0 }
func (v Float64) Encode(_ *Encoder, s *EncodingState, _ Context) { s.EncodeFloat64(float64(v)) }
func (v *Float64) Decode(_ *Decoder, s *DecoderState, _ Context) error {
	*v = Float64(s.DecodeFloat64())
	return nil
}
