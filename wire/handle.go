// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import werr "github.com/gomojo/wire/internal/errors"

// HandleKind identifies the concrete kind of an owned Handle. Decoding a
// handle field validates the claimed slot's Kind against the field's
// expected kind (spec.md §4.3, IllegalHandle on mismatch).
type HandleKind uint8

// The set of handle kinds the wire format knows how to carry. Concrete
// implementations live in package handle; this package only needs the tag.
const (
	KindUnknown HandleKind = iota
	KindMessageEndpoint
	KindSharedBuffer
	KindDataPipeConsumer
	KindDataPipeProducer
)

func (k HandleKind) String() string {
	switch k {
	case KindMessageEndpoint:
		return "MessageEndpoint"
	case KindSharedBuffer:
		return "SharedBuffer"
	case KindDataPipeConsumer:
		return "DataPipeConsumer"
	case KindDataPipeProducer:
		return "DataPipeProducer"
	default:
		return "Unknown"
	}
}

// Handle is the opaque, owned primitive the core codec sees: a native
// identity and a kind tag, nothing about its content. The OS-level handle
// primitive itself is an external collaborator (spec.md §1); package handle
// supplies the concrete kinds.
type Handle interface {
	// NativeID is the platform-native identity, for diagnostics only —
	// never part of the wire encoding, which only ever carries a handle's
	// index into the message's HandleVector.
	NativeID() uintptr
	// Kind identifies the handle's concrete type.
	Kind() HandleKind
	// Close releases the handle. Close is infallible at this layer.
	Close()
}

// HandleVector is the ordered vector of owned handles that travels
// alongside a message's byte buffer. The encoder appends to it; the decoder
// claims slots out of it by index, each at most once.
type HandleVector struct {
	handles []Handle
	claimed []bool
}

// NewHandleVector wraps an existing slice of handles, as when a decoder
// receives the handle vector a transport produced. Every slot starts
// unclaimed.
func NewHandleVector(handles []Handle) *HandleVector {
	return &HandleVector{handles: handles, claimed: make([]bool, len(handles))}
}

// Len reports the number of handle slots, claimed or not.
func (hv *HandleVector) Len() int {
	if hv == nil {
		return 0
	}
	return len(hv.handles)
}

// Append adds an owned handle to the vector, transferring ownership to the
// vector, and returns the index it was appended at.
func (hv *HandleVector) Append(h Handle) uint32 {
	hv.handles = append(hv.handles, h)
	hv.claimed = append(hv.claimed, false)
	return uint32(len(hv.handles) - 1)
}

// Handles returns the underlying slice, in index order. The slice is only
// meaningful after a successful decode's worth of claims; callers must not
// retain it across further mutation of hv.
func (hv *HandleVector) Handles() []Handle {
	if hv == nil {
		return nil
	}
	return hv.handles
}

// Claim consumes the handle slot at index, validating its kind, and
// transfers ownership of the handle to the caller. A slot can be claimed at
// most once.
func (hv *HandleVector) Claim(index uint32, kind HandleKind) (Handle, error) {
	if hv == nil || int(index) >= len(hv.handles) {
		return nil, werr.New(werr.IllegalHandle, "index %d out of range (len %d)", index, hv.Len())
	}
	if hv.claimed[index] {
		return nil, werr.New(werr.IllegalHandle, "index %d already claimed", index)
	}
	h := hv.handles[index]
	if h.Kind() != kind {
		return nil, werr.New(werr.IllegalHandle, "index %d has kind %s, want %s", index, h.Kind(), kind)
	}
	hv.claimed[index] = true
	return h, nil
}

// CloseUnclaimed closes every handle slot that was never claimed. Called
// when a decode fails partway through, or succeeds with handles left over
// (spec.md §5, §8 concrete scenario 4).
func (hv *HandleVector) CloseUnclaimed() {
	if hv == nil {
		return
	}
	for i, claimed := range hv.claimed {
		if !claimed {
			hv.handles[i].Close()
			hv.claimed[i] = true
		}
	}
}

// CloseAll closes every handle in the vector that has not been claimed and
// marks it claimed, used when encoding fails partway through and must
// release everything already appended. Claimed handles are left alone.
func (hv *HandleVector) CloseAll() {
	if hv == nil {
		return
	}
	for i, h := range hv.handles {
		if !hv.claimed[i] {
			h.Close()
			hv.claimed[i] = true
		}
	}
}
