// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handle

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/gomojo/wire/bitpack"
	"github.com/gomojo/wire/wire"
)

// SharedBuffer is the one handle kind in this package backed by a real OS
// resource rather than an in-process mock: a memory-mappable region backed
// by an unlinked temp file, the same shape a real Mojo shared buffer has
// (a VM object you can map and duplicate).
type SharedBuffer struct {
	UntypedHandle
	fd   int
	size uint64
}

// NewSharedBuffer allocates a size-byte anonymous shared buffer.
func NewSharedBuffer(size uint64) (SharedBuffer, error) {
	f, err := os.CreateTemp("", "mojowire-sharedbuffer-*")
	if err != nil {
		return SharedBuffer{}, fmt.Errorf("handle: create shared buffer backing file: %w", err)
	}
	os.Remove(f.Name()) // unlinked immediately; the fd keeps it alive
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return SharedBuffer{}, fmt.Errorf("handle: size shared buffer: %w", err)
	}
	fd, err := unix.Dup(int(f.Fd()))
	f.Close()
	if err != nil {
		return SharedBuffer{}, fmt.Errorf("handle: dup shared buffer fd: %w", err)
	}
	sb := SharedBuffer{fd: fd, size: size}
	sb.UntypedHandle = UntypedHandle{id: uintptr(fd), kind: wire.KindSharedBuffer, closeFn: sb.closeFd}
	return sb, nil
}

func (sb SharedBuffer) closeFd() { unix.Close(sb.fd) }

// Duplicate returns a second handle over the same underlying memory,
// mirroring shared_buffer::SharedBuffer::duplicate in the original
// bindings.
func (sb SharedBuffer) Duplicate() (SharedBuffer, error) {
	newFd, err := unix.Dup(sb.fd)
	if err != nil {
		return SharedBuffer{}, fmt.Errorf("handle: duplicate shared buffer: %w", err)
	}
	dup := SharedBuffer{fd: newFd, size: sb.size}
	dup.UntypedHandle = UntypedHandle{id: uintptr(newFd), kind: wire.KindSharedBuffer, closeFn: dup.closeFd}
	return dup, nil
}

// Map maps the whole buffer read-write into this process's address space.
func (sb SharedBuffer) Map() ([]byte, error) {
	return unix.Mmap(sb.fd, 0, int(sb.size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

// Size reports the buffer's length in bytes.
func (sb SharedBuffer) Size() uint64 { return sb.size }

// AsUntyped erases this handle's kind.
func (sb SharedBuffer) AsUntyped() UntypedHandle { return sb.UntypedHandle }

// SharedBufferFromUntyped downcasts u, failing if it wasn't created as a
// SharedBuffer. The buffer's size is read back from its backing file.
func SharedBufferFromUntyped(u UntypedHandle) (SharedBuffer, error) {
	if u.Kind() != wire.KindSharedBuffer {
		return SharedBuffer{}, castErr(u.Kind(), wire.KindSharedBuffer)
	}
	fd := int(u.NativeID())
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return SharedBuffer{}, fmt.Errorf("handle: stat shared buffer: %w", err)
	}
	return SharedBuffer{UntypedHandle: u, fd: fd, size: uint64(st.Size)}, nil
}

func (SharedBuffer) Category() wire.Category             { return wire.CategoryHandle }
func (SharedBuffer) Alignment() int                      { return 4 }
func (SharedBuffer) EmbedSize(wire.Context) bitpack.Bits { return 32 }
func (SharedBuffer) ComputeSize(wire.Context) int        { return 0 }

func (sb SharedBuffer) Encode(enc *wire.Encoder, state *wire.EncodingState, _ wire.Context) {
	wire.EncodeHandleField(enc, state, sb)
}

func (sb *SharedBuffer) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	h, err := wire.DecodeHandleField(dec, state, wire.KindSharedBuffer)
	if err != nil {
		return err
	}
	v, err := SharedBufferFromUntyped(AsUntyped(h))
	if err != nil {
		return err
	}
	*sb = v
	return nil
}
