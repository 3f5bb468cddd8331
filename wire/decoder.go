// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"sort"

	"github.com/gomojo/wire/bitpack"
	werr "github.com/gomojo/wire/internal/errors"
)

type claimedRegion struct{ start, end int }

// Decoder mirrors Encoder: it owns the message's byte buffer, its handle
// vector, and the set of byte ranges already claimed by a sub-region, so
// that two pointers can never be validated into overlapping space.
type Decoder struct {
	buf     []byte
	handles *HandleVector
	claims  []claimedRegion
	opts    DecodeOptions
}

// NewDecoder wraps a received message's buffer and handle vector, with
// StrictDecodeOptions. Neither the buffer nor the handle vector is copied;
// the decoder takes ownership of both for the duration of the decode.
func NewDecoder(buf []byte, handles *HandleVector) *Decoder {
	return NewDecoderWithOptions(buf, handles, StrictDecodeOptions())
}

// NewDecoderWithOptions is NewDecoder with explicit DecodeOptions.
func NewDecoderWithOptions(buf []byte, handles *HandleVector, opts DecodeOptions) *Decoder {
	return &Decoder{buf: buf, handles: handles, opts: opts}
}

// Options returns the DecodeOptions this decoder was constructed with.
func (d *Decoder) Options() DecodeOptions { return d.opts }

// Len reports the size of the underlying buffer.
func (d *Decoder) Len() int { return len(d.buf) }

// Handles returns the decoder's handle vector.
func (d *Decoder) Handles() *HandleVector { return d.handles }

// ClaimHandle consumes the handle slot at index, validating its kind.
func (d *Decoder) ClaimHandle(index uint32, kind HandleKind) (Handle, error) {
	return d.handles.Claim(index, kind)
}

// CloseUnclaimedHandles closes every handle slot not yet claimed. Call it
// when a decode fails, or once a successful decode is done claiming.
func (d *Decoder) CloseUnclaimedHandles() { d.handles.CloseUnclaimed() }

// Claim marks [offset, offset+size) — where size is read from the region's
// own data header — as owned by a new sub-region, and returns a
// DecoderState cursored at the region's start. Claim fails with
// IllegalPointer if offset is misaligned, past the end of the buffer, or
// overlaps a previously claimed region.
func (d *Decoder) Claim(offset int) (*DecoderState, error) {
	if offset < 0 || offset%8 != 0 {
		return nil, werr.New(werr.IllegalPointer, "offset %d is not 8-byte aligned", offset)
	}
	if offset+bitpack.DataHeaderSize > len(d.buf) {
		return nil, werr.New(werr.IllegalPointer, "offset %d leaves no room for a data header (buffer len %d)", offset, len(d.buf))
	}
	size := binary.LittleEndian.Uint32(d.buf[offset:])
	if size < bitpack.DataHeaderSize {
		return nil, werr.New(werr.IllegalPointer, "region size %d smaller than the data header", size)
	}
	end := offset + int(size)
	if end > len(d.buf) {
		return nil, werr.New(werr.IllegalPointer, "region [%d,%d) extends past end of buffer (len %d)", offset, end, len(d.buf))
	}

	i := sort.Search(len(d.claims), func(i int) bool { return d.claims[i].start >= offset })
	if i > 0 && d.claims[i-1].end > offset {
		return nil, werr.New(werr.IllegalPointer, "region [%d,%d) overlaps claimed region [%d,%d)", offset, end, d.claims[i-1].start, d.claims[i-1].end)
	}
	if i < len(d.claims) && d.claims[i].start < end {
		return nil, werr.New(werr.IllegalPointer, "region [%d,%d) overlaps claimed region [%d,%d)", offset, end, d.claims[i].start, d.claims[i].end)
	}
	d.claims = append(d.claims, claimedRegion{})
	copy(d.claims[i+1:], d.claims[i:])
	d.claims[i] = claimedRegion{start: offset, end: end}

	return &DecoderState{dec: d, base: offset, size: int(size)}, nil
}
