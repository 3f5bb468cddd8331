// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package example

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomojo/wire/bitpack"
	werr "github.com/gomojo/wire/internal/errors"
	"github.com/gomojo/wire/wire"
	"github.com/gomojo/wire/wire/container"
	"github.com/gomojo/wire/wire/handle"
)

// Scenario 1: Rect{1,1,1,1} round-trips; compute_size is exactly 24.
func TestRectRoundTrip(t *testing.T) {
	r := Rect{X: 1, Y: 1, Width: 1, Height: 1}
	assert.Equal(t, 24, r.ComputeSize(wire.Context{}))

	buf, handles := wire.AutoSerialize(r)
	assert.Equal(t, 24, len(buf))

	got, err := wire.Deserialize[Rect, *Rect](buf, handles)
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

// Scenario 2: RectPair{Some(Rect), None} round-trips; the wire form has two
// pointer fields, the second zero.
func TestRectPairRoundTrip(t *testing.T) {
	p := RectPair{
		First:  wire.Some(Rect{X: 1, Y: 1, Width: 1, Height: 1}),
		Second: wire.None[Rect](),
	}
	buf, handles := wire.AutoSerialize(p)

	// p's own region starts at offset 0: 8-byte data header, then two
	// 8-byte pointer fields at +8 and +16.
	secondPointer := buf[16:24]
	assert.Equal(t, make([]byte, 8), secondPointer, "absent Second must be a null (zero) pointer")

	got, err := wire.Deserialize[RectPair, *RectPair](buf, handles)
	require.NoError(t, err)
	assert.True(t, got.First.Present)
	assert.Equal(t, Rect{X: 1, Y: 1, Width: 1, Height: 1}, got.First.Value)
	assert.False(t, got.Second.Present)
}

// Scenario 3: a fixed-length array of 3 handles, decoded against a
// truncated handle vector, fails with IllegalHandle.
func TestHandleTripleTruncatedVector(t *testing.T) {
	a, _ := handle.NewMessageEndpointPair()
	b, _ := handle.NewMessageEndpointPair()
	c, _ := handle.NewMessageEndpointPair()
	triple := NewHandleTriple(a, b, c)

	buf, handles := wire.AutoSerialize(triple)
	require.Equal(t, 3, handles.Len())

	truncated := wire.NewHandleVector(handles.Handles()[:1])
	dec := wire.NewDecoder(buf, truncated)
	_, err := wire.DecodePointerNew[HandleTriple, *HandleTriple](dec, 0)
	require.Error(t, err)
	ve, ok := err.(*werr.ValidationError)
	require.True(t, ok, "expected a *errors.ValidationError, got %T", err)
	assert.Equal(t, werr.IllegalHandle, ve.Kind)
}

// Scenario 4: same setup as (3); after the decode failure, releasing the
// handle slots that were not claimed must not panic. The first element
// claims the vector's only slot before the second element fails.
func TestHandleTripleClosesUnclaimedOnFailure(t *testing.T) {
	a, _ := handle.NewMessageEndpointPair()
	b, _ := handle.NewMessageEndpointPair()
	c, _ := handle.NewMessageEndpointPair()
	triple := NewHandleTriple(a, b, c)

	buf, handles := wire.AutoSerialize(triple)
	truncated := wire.NewHandleVector(handles.Handles()[:1])

	dec := wire.NewDecoder(buf, truncated)
	_, err := wire.DecodePointerNew[HandleTriple, *HandleTriple](dec, 0)
	require.Error(t, err)

	// Slot 0 was claimed by the first element, so there is nothing left to
	// close; this just exercises that the call doesn't panic after a
	// partial decode.
	dec.CloseUnclaimedHandles()
}

// Scenario 5: the string "hello" encodes as {size=13, num_elements=5,
// 'h','e','l','l','o'} in its own region, preceded by an 8-byte pointer
// field whose relative value is 8.
func TestGreetingHello(t *testing.T) {
	g := Greeting{Text: "hello"}
	buf, handles := wire.AutoSerialize(g)

	// Greeting's region: [data header][pointer to Text], 16 bytes, at
	// offset 0. Text's region starts right after, at offset 16.
	pointerField := buf[8:16]
	assert.Equal(t, uint64(8), binary.LittleEndian.Uint64(pointerField))

	textRegion := buf[16:]
	assert.Equal(t, uint32(13), binary.LittleEndian.Uint32(textRegion[0:4]), "size = 8-byte header + 5 bytes")
	assert.Equal(t, uint32(5), binary.LittleEndian.Uint32(textRegion[4:8]), "num_elements")
	assert.Equal(t, "hello", string(textRegion[8:13]))

	got, err := wire.Deserialize[Greeting, *Greeting](buf, handles)
	require.NoError(t, err)
	assert.Equal(t, container.Str("hello"), got.Text)
}

// Scenario 6: map{"a":1,"b":2} round-trips; a version with mismatched key
// and value counts is rejected as DifferentSizedArraysInMap.
func TestStringToByteMapRoundTrip(t *testing.T) {
	m := NewStringToByteMap(map[string]byte{"a": 1, "b": 2})
	buf, handles := wire.AutoSerialize(m.Entries)

	got, err := wire.Deserialize[
		container.Map[container.Str, *container.Str, wire.Uint8, *wire.Uint8],
		*container.Map[container.Str, *container.Str, wire.Uint8, *wire.Uint8],
	](buf, handles)
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)
	assert.EqualValues(t, 1, got.Entries[container.Str("a")])
	assert.EqualValues(t, 2, got.Entries[container.Str("b")])
}

func TestStringToByteMapDifferentSizedArrays(t *testing.T) {
	keys := container.NewArray[container.Str, *container.Str](container.Str("a"), container.Str("b"))
	vals := container.NewArray[wire.Uint8, *wire.Uint8](wire.Uint8(1))

	size := bitpack.MapDataSize + keys.ComputeSize(wire.Context{}) + vals.ComputeSize(wire.Context{})
	enc := wire.NewEncoder(size)
	_, state, _, err := enc.Add(bitpack.MapDataSize, wire.VersionHeader(0))
	require.NoError(t, err)
	keys.Encode(enc, state, wire.Context{})
	vals.Encode(enc, state, wire.Context{})
	buf, handles := enc.Finalize()

	_, err = wire.Deserialize[
		container.Map[container.Str, *container.Str, wire.Uint8, *wire.Uint8],
		*container.Map[container.Str, *container.Str, wire.Uint8, *wire.Uint8],
	](buf, handles)
	require.Error(t, err)
	ve, ok := err.(*werr.ValidationError)
	require.True(t, ok, "expected a *errors.ValidationError, got %T", err)
	assert.Equal(t, werr.DifferentSizedArraysInMap, ve.Kind)
}
