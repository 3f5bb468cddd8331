// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

// Buffer is the owned, growable byte buffer a message is encoded into. Its
// size is computed exactly once up front (ComputeSize), so in practice it
// is allocated at its final size and never needs to grow; Grow exists for
// callers that build a Buffer incrementally (tests, mostly).
type Buffer struct {
	b []byte
}

// NewBuffer allocates a zero-filled buffer of the given size. Regions are
// written into pre-zeroed space so that unset nullable fields, padding
// bytes, and reserved struct tail bytes all read back as zero without extra
// writes.
func NewBuffer(size int) *Buffer {
	return &Buffer{b: make([]byte, size)}
}

// Bytes returns the buffer's backing slice.
func (buf *Buffer) Bytes() []byte { return buf.b }

// Len reports the buffer's current size in bytes.
func (buf *Buffer) Len() int { return len(buf.b) }

// Grow extends the buffer by n zero-filled bytes and returns the offset the
// new space starts at.
func (buf *Buffer) Grow(n int) int {
	off := len(buf.b)
	buf.b = append(buf.b, make([]byte, n)...)
	return off
}
