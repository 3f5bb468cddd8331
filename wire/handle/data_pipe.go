// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handle

import (
	"github.com/gomojo/wire/bitpack"
	"github.com/gomojo/wire/wire"
)

// DataPipeConsumer is the read end of a data pipe typed by element T,
// mirroring the original bindings' data_pipe::Consumer<T>. T never appears
// at runtime — it only constrains which element type a generated struct
// field is allowed to pair a Consumer/Producer with.
type DataPipeConsumer[T any] struct{ UntypedHandle }

// DataPipeProducer is the write end of a data pipe typed by element T.
type DataPipeProducer[T any] struct{ UntypedHandle }

// NewDataPipe mints a linked consumer/producer identity pair. As with
// MessageEndpoint, the identities carry no behavior of their own; a real
// transport would pair one with a live byte stream.
func NewDataPipe[T any]() (DataPipeConsumer[T], DataPipeProducer[T]) {
	c := DataPipeConsumer[T]{UntypedHandle{id: newNativeID(), kind: wire.KindDataPipeConsumer}}
	p := DataPipeProducer[T]{UntypedHandle{id: newNativeID(), kind: wire.KindDataPipeProducer}}
	return c, p
}

// WithCloser returns a copy of c whose Close calls fn exactly once.
func (c DataPipeConsumer[T]) WithCloser(fn func()) DataPipeConsumer[T] {
	c.closeFn = fn
	return c
}

// WithCloser returns a copy of p whose Close calls fn exactly once.
func (p DataPipeProducer[T]) WithCloser(fn func()) DataPipeProducer[T] {
	p.closeFn = fn
	return p
}

// AsUntyped erases c's kind and element type.
func (c DataPipeConsumer[T]) AsUntyped() UntypedHandle { return c.UntypedHandle }

// AsUntyped erases p's kind and element type.
func (p DataPipeProducer[T]) AsUntyped() UntypedHandle { return p.UntypedHandle }

// DataPipeConsumerFromUntyped downcasts u, failing if it wasn't created as
// a DataPipeConsumer.
func DataPipeConsumerFromUntyped[T any](u UntypedHandle) (DataPipeConsumer[T], error) {
	if u.Kind() != wire.KindDataPipeConsumer {
		return DataPipeConsumer[T]{}, castErr(u.Kind(), wire.KindDataPipeConsumer)
	}
	return DataPipeConsumer[T]{u}, nil
}

// DataPipeProducerFromUntyped downcasts u, failing if it wasn't created as
// a DataPipeProducer.
func DataPipeProducerFromUntyped[T any](u UntypedHandle) (DataPipeProducer[T], error) {
	if u.Kind() != wire.KindDataPipeProducer {
		return DataPipeProducer[T]{}, castErr(u.Kind(), wire.KindDataPipeProducer)
	}
	return DataPipeProducer[T]{u}, nil
}

func (DataPipeConsumer[T]) Category() wire.Category             { return wire.CategoryHandle }
func (DataPipeConsumer[T]) Alignment() int                      { return 4 }
func (DataPipeConsumer[T]) EmbedSize(wire.Context) bitpack.Bits { return 32 }
func (DataPipeConsumer[T]) ComputeSize(wire.Context) int        { return 0 }

func (c DataPipeConsumer[T]) Encode(enc *wire.Encoder, state *wire.EncodingState, _ wire.Context) {
	wire.EncodeHandleField(enc, state, c)
}

func (c *DataPipeConsumer[T]) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	h, err := wire.DecodeHandleField(dec, state, wire.KindDataPipeConsumer)
	if err != nil {
		return err
	}
	v, err := DataPipeConsumerFromUntyped[T](AsUntyped(h))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (DataPipeProducer[T]) Category() wire.Category             { return wire.CategoryHandle }
func (DataPipeProducer[T]) Alignment() int                      { return 4 }
func (DataPipeProducer[T]) EmbedSize(wire.Context) bitpack.Bits { return 32 }
func (DataPipeProducer[T]) ComputeSize(wire.Context) int        { return 0 }

func (p DataPipeProducer[T]) Encode(enc *wire.Encoder, state *wire.EncodingState, _ wire.Context) {
	wire.EncodeHandleField(enc, state, p)
}

func (p *DataPipeProducer[T]) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	h, err := wire.DecodeHandleField(dec, state, wire.KindDataPipeProducer)
	if err != nil {
		return err
	}
	v, err := DataPipeProducerFromUntyped[T](AsUntyped(h))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
