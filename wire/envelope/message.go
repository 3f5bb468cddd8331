// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package envelope

import (
	werr "github.com/gomojo/wire/internal/errors"
	"github.com/gomojo/wire/wire"
)

// EncodeMessage builds the complete wire bytes for header followed by
// payload, sized in one pass so the buffer is allocated exactly once.
func EncodeMessage(header Header, payload wire.PointerType) ([]byte, *wire.HandleVector) {
	size := header.ComputeSize(wire.Context{}) + payload.ComputeSize(wire.Context{})
	enc := wire.NewEncoder(size)
	wire.EncodePointerNew(header, enc, wire.Context{})
	wire.EncodePointerNew(payload, enc, wire.Context{})
	return enc.Finalize()
}

// DecodePayload decodes a message's payload region (the bytes past the
// header) into a T, given the handle vector the whole message arrived
// with.
func DecodePayload[T any, PT interface {
	*T
	wire.PointerDecodable
}](payload []byte, handles *wire.HandleVector) (T, error) {
	dec := wire.NewDecoder(payload, handles)
	return wire.DecodePointerNew[T, PT](dec, 0)
}

// MessageType is implemented by a generated payload struct: in addition to
// being encodable, it knows the interface version it requires and how to
// build the header it should be sent under.
type MessageType interface {
	wire.PointerType
	MinVersion() uint32
	CreateHeader() Header
}

// CreateRequest builds the full wire bytes for m, stamping requestID into
// the header m.CreateHeader() produces.
func CreateRequest(m MessageType, requestID uint64) ([]byte, *wire.HandleVector) {
	header := m.CreateHeader()
	header.RequestID = requestID
	return EncodeMessage(header, m)
}

// MessageOption is implemented by a hand-written "generated" dispatch type
// that knows how to decode any message variant of one interface — a tagged
// union over all of that interface's methods, keyed by the header's Name
// field (the method's Mojom ordinal).
type MessageOption interface {
	DecodePayload(header Header, payload []byte, handles *wire.HandleVector) error
}

// DecodeMessage splits buf into header and payload, decodes the header
// with an empty handle vector, and dispatches the payload decode to dst,
// returning the header's request id on success.
func DecodeMessage(dst MessageOption, buf []byte, handles []wire.Handle) (requestID uint64, err error) {
	header, payloadOffset, err := decodeHeaderAt(buf)
	if err != nil {
		return 0, err
	}
	if payloadOffset > len(buf) {
		return 0, werr.New(werr.IllegalPointer, "message too short for its declared payload (want %d bytes, have %d)", payloadOffset, len(buf))
	}
	if err := dst.DecodePayload(header, buf[payloadOffset:], wire.NewHandleVector(handles)); err != nil {
		return 0, err
	}
	return header.RequestID, nil
}

// MessagePipe is the minimal transport surface an interface needs: write
// and read whole messages, bytes and handles together. package transport's
// Pipe satisfies it.
type MessagePipe interface {
	Write(buf []byte, handles []wire.Handle) error
	Read() ([]byte, []wire.Handle, error)
}

// InterfaceSender sends messages of type R over a MessagePipe, refusing to
// send if the peer's declared Version is older than R requires.
type InterfaceSender[R MessageType] struct {
	Pipe    MessagePipe
	Version uint32
}

// SendRequest encodes and writes payload under a fresh header stamped with
// requestID.
func (s InterfaceSender[R]) SendRequest(requestID uint64, payload R) error {
	if s.Version < payload.MinVersion() {
		return NewOldVersion(s.Version, payload.MinVersion())
	}
	buf, handles := CreateRequest(payload, requestID)
	if err := s.Pipe.Write(buf, handles.Handles()); err != nil {
		return NewFailedWrite(0)
	}
	return nil
}

// InterfaceReceiver receives messages over a MessagePipe and dispatches
// each one into the MessageOption-implementing container passed to Recv.
type InterfaceReceiver[C MessageOption] struct {
	Pipe MessagePipe
}

// Recv reads one message and decodes it into dst, returning its request id.
func (r InterfaceReceiver[C]) Recv(dst C) (requestID uint64, err error) {
	buf, handles, err := r.Pipe.Read()
	if err != nil {
		return 0, NewFailedRead(0)
	}
	reqID, decErr := DecodeMessage(dst, buf, handles)
	if decErr != nil {
		if ve, ok := decErr.(*werr.ValidationError); ok {
			return 0, NewFailedValidation(ve)
		}
		return 0, decErr
	}
	return reqID, nil
}
